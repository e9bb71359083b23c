package binding

import (
	"fmt"
	"reflect"

	"github.com/specialistvlad/modlink/internal/ref"
)

// NoSuchExportError is returned when an import is resolved and the root has
// no export binding for its service.
type NoSuchExportError struct {
	Service   string
	Interface reflect.Type
}

func (e *NoSuchExportError) Error() string {
	return fmt.Sprintf("can't find export declaration for lookup(%s, %s)", e.Service, ref.TypeName(e.Interface))
}

// TypeMismatchError is returned when the type behind a binding does not
// satisfy the interface it is required to provide.
type TypeMismatchError struct {
	Name     string
	Required reflect.Type
	Actual   reflect.Type
}

func (e *TypeMismatchError) Error() string {
	return fmt.Sprintf("service '%s' is expected to be of type %s but was actually of type %s",
		e.Name, ref.TypeName(e.Required), ref.TypeName(e.Actual))
}

// ResolveError wraps a container failure while resolving an export.
type ResolveError struct {
	Target string
	Err    error
}

func (e *ResolveError) Error() string {
	return fmt.Sprintf("failed to resolve export target '%s': %v", e.Target, e.Err)
}

func (e *ResolveError) Unwrap() error {
	return e.Err
}
