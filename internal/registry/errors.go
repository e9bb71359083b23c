package registry

import (
	"errors"
	"fmt"

	"github.com/specialistvlad/modlink/internal/ref"
)

// ErrFrozen is returned when a declaration is added after Freeze.
var ErrFrozen = errors.New("registry is frozen: declarations can no longer be added")

// DuplicateExportError is returned when two locations export the same
// service name.
type DuplicateExportError struct {
	ServiceName      string
	Location         string
	PreviousLocation string
}

func (e *DuplicateExportError) Error() string {
	return fmt.Sprintf("double export was defined: %s in %s. Previous export was in %s",
		e.ServiceName, e.Location, e.PreviousLocation)
}

// UnsatisfiedImportError describes an import without a matching export.
// Location is the first importer of the name.
type UnsatisfiedImportError struct {
	ServiceName string
	Location    string
}

func (e *UnsatisfiedImportError) Error() string {
	return fmt.Sprintf("unsatisfied import found in %s: there is no service with name '%s'", e.Location, e.ServiceName)
}

// IncompatibleImportError describes an importer whose required interface is
// not satisfied by the exporter's declared interface.
type IncompatibleImportError struct {
	Mismatch Mismatch
}

func (e *IncompatibleImportError) Error() string {
	m := e.Mismatch
	return fmt.Sprintf("import of '%s' in %s requires %s, but the export in %s declares %s",
		m.Export.ServiceName, m.Import.Location,
		ref.TypeName(m.Import.Interface), m.Export.Location, ref.TypeName(m.Export.Interface))
}
