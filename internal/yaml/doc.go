// Package yaml loads module declarations from YAML files. Each file is one
// module and its path is the module location:
//
//	components:
//	  - name: store
//	    kind: env
//	    arguments:
//	      prefix: APP_
//	exports:
//	  - ref: store
//	    interface: env.Lookup
//	    name: settings
//	imports:
//	  - name: greeting
//	    interface: fmt.Stringer
//
// Argument values are static: they become hcl.StaticExpr values so that the
// same Converter decodes them as HCL arguments.
package yaml
