package registry

import (
	"context"

	"github.com/specialistvlad/modlink/internal/ctxlog"
	"github.com/specialistvlad/modlink/internal/ref"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

// Mismatch pairs an export with one importer it cannot serve.
type Mismatch struct {
	Export ref.Info
	Import ref.Info
}

// Report collects the findings of all validation passes.
type Report struct {
	// Unsatisfied holds the first importer of every name nobody exports.
	Unsatisfied []ref.Info
	// Unused holds every export nobody imports.
	Unused       []ref.Info
	Incompatible []Mismatch
}

// HasProblems reports whether any pass found something, unused exports
// included.
func (r *Report) HasProblems() bool {
	return len(r.Unsatisfied) > 0 || len(r.Unused) > 0 || len(r.Incompatible) > 0
}

// Err combines the findings that prevent a safe assembly into one error:
// unsatisfied imports and incompatible import types. Unused exports are
// never part of it.
func (r *Report) Err() error {
	var err error
	for _, info := range r.Unsatisfied {
		err = multierr.Append(err, &UnsatisfiedImportError{ServiceName: info.ServiceName, Location: info.Location})
	}
	for _, m := range r.Incompatible {
		err = multierr.Append(err, &IncompatibleImportError{Mismatch: m})
	}
	return err
}

// UnsatisfiedImports reports whether some imported service has no export.
// For each such name the first importer is logged.
func (r *Registry) UnsatisfiedImports(ctx context.Context) bool {
	return len(r.unsatisfied(ctx)) > 0
}

// UnusedExports reports whether some exported service is never imported.
func (r *Registry) UnusedExports(ctx context.Context) bool {
	return len(r.unused(ctx)) > 0
}

// IncompatibleImportTypes reports whether any importer requires an interface
// that the exporter's declared interface does not satisfy. Every mismatch is
// logged on its own.
func (r *Registry) IncompatibleImportTypes(ctx context.Context) bool {
	return len(r.incompatible(ctx)) > 0
}

// Check runs all three passes and returns their findings.
func (r *Registry) Check(ctx context.Context) *Report {
	return &Report{
		Unsatisfied:  r.unsatisfied(ctx),
		Unused:       r.unused(ctx),
		Incompatible: r.incompatible(ctx),
	}
}

func (r *Registry) unsatisfied(ctx context.Context) []ref.Info {
	logger := ctxlog.FromContext(ctx)
	var found []ref.Info

	for _, name := range r.importOrder {
		if _, ok := r.exports[name]; ok {
			continue
		}
		first := r.imports[name][0]
		logger.Error("Unsatisfied import found: there is no service with this name.",
			zap.String("location", first.Location),
			zap.String("service", name),
		)
		found = append(found, first)
	}
	return found
}

func (r *Registry) unused(ctx context.Context) []ref.Info {
	logger := ctxlog.FromContext(ctx)
	var found []ref.Info

	for _, name := range r.exportOrder {
		if _, ok := r.imports[name]; ok {
			continue
		}
		logger.Warn("Unused service detected: exported but never imported.", zap.String("service", name))
		found = append(found, r.exports[name])
	}
	return found
}

func (r *Registry) incompatible(ctx context.Context) []Mismatch {
	logger := ctxlog.FromContext(ctx)
	var found []Mismatch

	for _, name := range r.exportOrder {
		export := r.exports[name]
		for _, imp := range r.imports[name] {
			if ref.Satisfies(export.Interface, imp.Interface) {
				continue
			}
			logger.Error("Imported service requires an interface the export does not provide.",
				zap.String("service", name),
				zap.String("import_location", imp.Location),
				zap.String("import_interface", ref.TypeName(imp.Interface)),
				zap.String("export_location", export.Location),
				zap.String("export_interface", ref.TypeName(export.Interface)),
			)
			found = append(found, Mismatch{Export: export, Import: imp})
		}
	}
	return found
}
