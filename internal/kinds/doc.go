// Package kinds is the catalog that links the string identifiers used in
// declaration files to compiled Go code.
//
// A component's `kind` names a registered Kind (its input struct and
// constructor), and the `interface` attribute of an export or import names a
// registered Go type. Go modules fill the catalog at startup through the
// Module interface; declarations are then resolved against it.
package kinds
