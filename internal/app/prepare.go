package app

import (
	"context"
	"fmt"
	"sort"

	"github.com/specialistvlad/modlink/internal/config"
	"github.com/specialistvlad/modlink/internal/ctxlog"
	"github.com/specialistvlad/modlink/internal/dag"
	"github.com/specialistvlad/modlink/internal/fsutil"
	"github.com/specialistvlad/modlink/internal/ref"
	"github.com/specialistvlad/modlink/internal/registry"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// extensioner is implemented by loaders that know which files they read.
type extensioner interface {
	Extensions() []string
}

// Prepare loads the declarations, registers their contracts, validates
// them and computes the initialization order. It runs at most once; later
// calls return the first result.
func (a *App) Prepare(ctx context.Context) error {
	a.mutex.Lock()
	defer a.mutex.Unlock()
	return a.prepare(a.Context(ctx))
}

func (a *App) prepare(ctx context.Context) error {
	if a.prepared {
		return a.prepareErr
	}
	a.prepared = true
	a.prepareErr = a.doPrepare(ctx)
	return a.prepareErr
}

func (a *App) doPrepare(ctx context.Context) error {
	logger := ctxlog.FromContext(ctx)

	files, err := a.discover(ctx)
	if err != nil {
		return err
	}

	model, err := a.loader.Load(ctx, files...)
	if err != nil {
		return fmt.Errorf("failed to load declarations: %w", err)
	}
	a.model = model
	logger.Debug("Declarations loaded and translated into unified model.", zap.Int("modules", len(model.Modules)))

	reg, err := a.register(ctx, model)
	if err != nil {
		return err
	}
	reg.Freeze()
	a.registry = reg

	sorter, err := dag.NewSorter(model.Locations(), reg.Imports(), reg.Exports(),
		dag.WithProhibitCycles(!a.config.AllowCycles))
	if err != nil {
		return err
	}
	a.sorter = sorter
	sorter.LogGraph(ctx)

	if err := a.validate(ctx); err != nil {
		return err
	}

	order, err := sorter.Sort(ctx)
	if err != nil {
		return fmt.Errorf("failed to sort modules: %w", err)
	}
	a.order = order
	a.conflict = sorter.ConflictGroup()
	a.metrics.ConflictGroup(len(a.conflict))
	logger.Info("Module order computed.", zap.Strings("order", order), zap.Strings("conflict_group", a.conflict))
	a.logDependencies(ctx)
	return nil
}

// logDependencies reports, per module, where its imports come from, who
// imports from it and how many importers each of its exports has.
func (a *App) logDependencies(ctx context.Context) {
	logger := ctxlog.FromContext(ctx)
	if !logger.Core().Enabled(zapcore.DebugLevel) {
		return
	}

	graph := a.sorter.ImportGraph()
	for _, location := range a.order {
		mod, ok := a.model.Module(location)
		if !ok {
			continue
		}
		importers := make(map[string]int, len(mod.Exports))
		for _, exp := range mod.Exports {
			importers[exp.ServiceName()] = len(a.registry.ImportsOf(exp.ServiceName()))
		}
		dependencies, _ := graph.Dependencies(location)
		dependents, _ := graph.Dependents(location)
		logger.Debug("Module dependencies.",
			zap.String("location", location),
			zap.Strings("imports_from", dependencies),
			zap.Strings("imported_by", dependents),
			zap.Any("export_importers", importers))
	}
}

// discover resolves the configured paths to declaration files.
func (a *App) discover(ctx context.Context) ([]string, error) {
	exts := []string{".hcl"}
	if e, ok := a.loader.(extensioner); ok {
		exts = e.Extensions()
		sort.Strings(exts)
	}

	files, err := fsutil.FindFiles(a.config.Paths, exts...)
	if err != nil {
		return nil, fmt.Errorf("failed to discover declaration files: %w", err)
	}
	files, err = config.Exclude(files, a.config.Exclude)
	if err != nil {
		return nil, err
	}
	ctxlog.FromContext(ctx).Debug("Discovered declaration files.", zap.Strings("files", files))
	return files, nil
}

// register feeds every export and import of the model to a new registry, in
// file order and declaration order within a file.
func (a *App) register(ctx context.Context, model *config.Model) (*registry.Registry, error) {
	reg := registry.New()
	for _, mod := range model.Modules {
		local := make(map[string]struct{}, len(mod.Components)+len(mod.Imports))
		for _, c := range mod.Components {
			local[c.Name] = struct{}{}
		}
		for _, imp := range mod.Imports {
			local[imp.Name] = struct{}{}
		}

		for _, exp := range mod.Exports {
			if _, ok := local[exp.Ref]; !ok {
				return nil, fmt.Errorf("export of unknown component '%s' in %s", exp.Ref, mod.Location)
			}
			iface, err := a.resolveContract(mod.Location, exp.Root, exp.Interface)
			if err != nil {
				return nil, err
			}
			if err := reg.AddExport(ref.New(exp.ServiceName(), iface, mod.Location)); err != nil {
				return nil, err
			}
		}
		for _, imp := range mod.Imports {
			iface, err := a.resolveContract(mod.Location, imp.Root, imp.Interface)
			if err != nil {
				return nil, err
			}
			if err := reg.AddImport(ref.New(imp.Name, iface, mod.Location)); err != nil {
				return nil, err
			}
		}
	}
	ctxlog.FromContext(ctx).Debug("Registry populated from declarations.",
		zap.Int("exports", len(reg.Exports())),
		zap.Int("imports", len(reg.Imports())))
	return reg, nil
}

func (a *App) resolveContract(location, root, ifaceName string) (ref.Type, error) {
	if root != "" && root != a.config.RootName {
		return nil, fmt.Errorf("unknown root container '%s' in %s", root, location)
	}
	iface, err := a.catalog.Interface(ifaceName)
	if err != nil {
		return nil, fmt.Errorf("in %s: %w", location, err)
	}
	return iface, nil
}

// validate runs the contract checks. Unsatisfied and incompatible imports
// are fatal; unused exports only when configured so.
func (a *App) validate(ctx context.Context) error {
	a.report = a.registry.Check(ctx)
	if err := a.report.Err(); err != nil {
		return fmt.Errorf("declaration validation failed: %w", err)
	}
	if a.config.FailOnUnused && len(a.report.Unused) > 0 {
		services := make([]string, 0, len(a.report.Unused))
		for _, info := range a.report.Unused {
			services = append(services, info.ServiceName)
		}
		return &UnusedExportsError{Services: services}
	}
	ctxlog.FromContext(ctx).Debug("Registry validation passed.")
	return nil
}
