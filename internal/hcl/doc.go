// Package hcl provides the concrete HCL implementation of the declaration
// loader defined in the `config` package, together with the Converter that
// binds component arguments to Go structs.
//
// Each .hcl file is one module and its path is the module location:
//
//	component "store" {
//	  kind = "env"
//	  lazy = true
//	  arguments {
//	    prefix = "APP_"
//	  }
//	}
//
//	export "store" {
//	  interface = "env.Lookup"
//	  name      = "settings"
//	}
//
//	import "greeting" {
//	  interface = "fmt.Stringer"
//	}
package hcl
