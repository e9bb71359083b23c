package app

import (
	"errors"
	"fmt"
)

var (
	errNotAssembled     = errors.New("application is not assembled")
	errAlreadyAssembled = errors.New("application is already assembled")
)

// ModuleError reports a module that could not be assembled.
type ModuleError struct {
	Location string
	Err      error
}

func (e *ModuleError) Error() string {
	return fmt.Sprintf("failed to assemble module %s: %v", e.Location, e.Err)
}

func (e *ModuleError) Unwrap() error {
	return e.Err
}

// UnusedExportsError is returned when unused exports are treated as fatal.
type UnusedExportsError struct {
	Services []string
}

func (e *UnusedExportsError) Error() string {
	return fmt.Sprintf("unused exports found: %v", e.Services)
}
