// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// This file defines the Registry, the accumulator of export and import
// declarations for one assembly.
//
// Population is a single-writer phase: declaration discovery calls AddExport
// and AddImport in the order the declarations are encountered, then Freeze.
// No locking is done here; the app serializes discovery before any
// validation or sort pass starts.
package registry

import (
	"github.com/specialistvlad/modlink/internal/ref"
)

// Registry holds all export and import declarations of an assembly.
type Registry struct {
	exports map[string]ref.Info
	imports map[string][]ref.Info

	// Key insertion order, so diagnostics come out deterministically.
	exportOrder []string
	importOrder []string

	frozen bool
}

// New creates and initializes a new Registry instance.
func New() *Registry {
	return &Registry{
		exports: make(map[string]ref.Info),
		imports: make(map[string][]ref.Info),
	}
}

// AddExport records an export. A second export of the same service name is a
// configuration error that names both declaring locations.
func (r *Registry) AddExport(info ref.Info) error {
	if r.frozen {
		return ErrFrozen
	}
	if prev, exists := r.exports[info.ServiceName]; exists {
		return &DuplicateExportError{
			ServiceName:      info.ServiceName,
			Location:         info.Location,
			PreviousLocation: prev.Location,
		}
	}
	r.exports[info.ServiceName] = info
	r.exportOrder = append(r.exportOrder, info.ServiceName)
	return nil
}

// AddImport appends an import to the list kept for its service name. Many
// modules may import the same name, so this only fails once the registry is
// frozen.
func (r *Registry) AddImport(info ref.Info) error {
	if r.frozen {
		return ErrFrozen
	}
	if _, exists := r.imports[info.ServiceName]; !exists {
		r.importOrder = append(r.importOrder, info.ServiceName)
	}
	r.imports[info.ServiceName] = append(r.imports[info.ServiceName], info)
	return nil
}

// Freeze ends the discovery phase. Later Add calls return ErrFrozen.
func (r *Registry) Freeze() {
	r.frozen = true
}

// Exports returns a copy of the export map.
func (r *Registry) Exports() map[string]ref.Info {
	out := make(map[string]ref.Info, len(r.exports))
	for k, v := range r.exports {
		out[k] = v
	}
	return out
}

// Imports returns a copy of the import map. The per-name lists are copied
// too, so callers may not mutate registry state through them.
func (r *Registry) Imports() map[string][]ref.Info {
	out := make(map[string][]ref.Info, len(r.imports))
	for k, v := range r.imports {
		out[k] = append([]ref.Info(nil), v...)
	}
	return out
}

// Export returns the export declared for a service name.
func (r *Registry) Export(serviceName string) (ref.Info, bool) {
	info, ok := r.exports[serviceName]
	return info, ok
}

// ImportsOf returns the importers of a service name in declaration order.
func (r *Registry) ImportsOf(serviceName string) []ref.Info {
	return append([]ref.Info(nil), r.imports[serviceName]...)
}
