package container

import (
	"errors"
	"fmt"
	"strings"
)

// ErrClosed is returned by Get after Close.
var ErrClosed = errors.New("container is closed")

// NoSuchComponentError is returned for an identifier the container does not
// define or import.
type NoSuchComponentError struct {
	Location string
	ID       string
}

func (e *NoSuchComponentError) Error() string {
	return fmt.Sprintf("no component named '%s' in module %s", e.ID, e.Location)
}

// DuplicateComponentError is returned when a name is defined twice in one
// module, or a component name collides with an import name.
type DuplicateComponentError struct {
	Location string
	ID       string
}

func (e *DuplicateComponentError) Error() string {
	return fmt.Sprintf("component '%s' is defined more than once in module %s", e.ID, e.Location)
}

// CircularReferenceError is returned when creating a component requires the
// component itself. Path lists the chain of components, closing the loop.
type CircularReferenceError struct {
	Path []string
}

func (e *CircularReferenceError) Error() string {
	return fmt.Sprintf("circular reference while creating components: %s", strings.Join(e.Path, " -> "))
}

// CreationError wraps a failing constructor.
type CreationError struct {
	Location string
	ID       string
	Err      error
}

func (e *CreationError) Error() string {
	return fmt.Sprintf("error creating component '%s' in module %s: %v", e.ID, e.Location, e.Err)
}

func (e *CreationError) Unwrap() error {
	return e.Err
}
