package dag

import (
	"fmt"
	"strings"
)

// CyclicDependencyError is returned by Sort when cycles are prohibited and
// some locations could be peeled from neither end of the order.
type CyclicDependencyError struct {
	Locations []string
}

func (e *CyclicDependencyError) Error() string {
	return fmt.Sprintf("cyclic dependencies found in modules: [%s]", strings.Join(e.Locations, ", "))
}

// UnknownLocationError is returned by NewSorter when a declaration names a
// location that is not part of the sorted set.
type UnknownLocationError struct {
	ServiceName string
	Location    string
}

func (e *UnknownLocationError) Error() string {
	return fmt.Sprintf("service '%s' is declared in unknown module '%s'", e.ServiceName, e.Location)
}
