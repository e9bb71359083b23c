package ref

import "reflect"

// Type is the handle used for declared service interfaces.
type Type = reflect.Type

// TypeOf returns the type handle for T. Unlike reflect.TypeOf it works for
// interface types, which is the common case for service contracts.
func TypeOf[T any]() Type {
	return reflect.TypeOf((*T)(nil)).Elem()
}

// Satisfies reports whether a value of the provided type can be used where the
// required type is expected. The relation is reflexive, and transitive along
// interface embedding and implementation.
//
// A nil required type accepts anything. A nil provided type only satisfies a
// nil or empty interface requirement.
func Satisfies(provided, required Type) bool {
	if required == nil {
		return true
	}
	if provided == nil {
		return required.Kind() == reflect.Interface && required.NumMethod() == 0
	}
	return provided.AssignableTo(required)
}

// TypeName renders a type handle for messages.
func TypeName(t Type) string {
	if t == nil {
		return "<nil>"
	}
	return t.String()
}
