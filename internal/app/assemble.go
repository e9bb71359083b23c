package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/specialistvlad/modlink/internal/binding"
	"github.com/specialistvlad/modlink/internal/config"
	"github.com/specialistvlad/modlink/internal/container"
	"github.com/specialistvlad/modlink/internal/ctxlog"
	"github.com/specialistvlad/modlink/internal/hcl"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

// Assemble prepares the declarations and builds one container per module in
// the computed order. Modules of the conflict group are built together:
// all of their exports are registered before any of them is instantiated.
//
// With strict error handling the first failing module aborts assembly.
// Otherwise the failure is recorded in FailedLocations and assembly goes on.
func (a *App) Assemble(ctx context.Context) error {
	a.mutex.Lock()
	defer a.mutex.Unlock()

	ctx = a.Context(ctx)
	if a.assembled {
		return errAlreadyAssembled
	}
	start := time.Now()

	if err := a.prepare(ctx); err != nil {
		return err
	}
	a.assembled = true

	a.root = container.NewRoot(a.config.RootName, binding.WithObserver(a.metrics))
	for _, batch := range a.batches() {
		if err := a.assembleBatch(ctx, batch); err != nil {
			return err
		}
	}

	a.metrics.AssemblyFinished(time.Since(start))
	ctxlog.FromContext(ctx).Info("Assembly finished.",
		zap.Int("modules", len(a.ready)),
		zap.Int("failed", len(a.failed)),
		zap.Int("exports", len(a.root.Bindings())),
		zap.Duration("duration", time.Since(start)))
	return nil
}

// batches splits the order into groups that are built together: one group
// per module, except for the conflict group, which is a single batch.
func (a *App) batches() [][]string {
	inConflict := make(map[string]struct{}, len(a.conflict))
	for _, loc := range a.conflict {
		inConflict[loc] = struct{}{}
	}

	var out [][]string
	for i := 0; i < len(a.order); {
		j := i + 1
		if _, ok := inConflict[a.order[i]]; ok {
			for j < len(a.order) {
				if _, ok := inConflict[a.order[j]]; !ok {
					break
				}
				j++
			}
		}
		out = append(out, a.order[i:j])
		i = j
	}
	return out
}

func (a *App) assembleBatch(ctx context.Context, locations []string) error {
	logger := ctxlog.FromContext(ctx)

	var built []*container.Container
	for _, location := range locations {
		mod, ok := a.model.Module(location)
		if !ok {
			return fmt.Errorf("module %s is in the order but was never loaded", location)
		}
		c, err := a.buildModule(ctx, mod)
		if err != nil {
			if err := a.moduleFailed(ctx, location, err); err != nil {
				return err
			}
			continue
		}
		built = append(built, c)
	}

	for i, c := range built {
		if err := c.Instantiate(ctx); err != nil {
			if cerr := c.Close(); cerr != nil {
				err = multierr.Append(err, cerr)
			}
			if err := a.moduleFailed(ctx, c.Location(), err); err != nil {
				// Later modules of the batch may already hold components.
				for _, rest := range built[i+1:] {
					err = multierr.Append(err, rest.Close())
				}
				return err
			}
			continue
		}
		a.containers[c.Location()] = c
		a.ready = append(a.ready, c.Location())
		a.metrics.ModuleAssembled()
		logger.Info("Module assembled.", zap.String("location", c.Location()))
	}
	return nil
}

// buildModule creates the container of a module, defines its components,
// wires its imports and registers its exports on the root.
func (a *App) buildModule(ctx context.Context, mod *config.Module) (*container.Container, error) {
	c := container.New(mod.Location)
	evalCtx := hcl.EvalContext(mod.Location)

	for _, comp := range mod.Components {
		kind, ok := a.catalog.Kind(comp.Kind)
		if !ok {
			return nil, fmt.Errorf("unknown kind '%s' for component '%s': known kinds are %v", comp.Kind, comp.Name, a.catalog.KindNames())
		}

		var input any
		if kind.Input != nil {
			input = kind.Input()
			if err := a.converter.DecodeArguments(ctx, input, comp.Arguments, evalCtx); err != nil {
				return nil, fmt.Errorf("component '%s': %w", comp.Name, err)
			}
		} else if len(comp.Arguments) > 0 {
			return nil, fmt.Errorf("component '%s' of kind '%s' takes no arguments", comp.Name, comp.Kind)
		}

		if err := c.Define(&container.Definition{
			Name:     comp.Name,
			KindName: comp.Kind,
			Kind:     kind,
			Input:    input,
			Lazy:     comp.Lazy,
		}); err != nil {
			return nil, err
		}
	}

	for _, imp := range mod.Imports {
		iface, err := a.catalog.Interface(imp.Interface)
		if err != nil {
			return nil, err
		}
		if err := c.Import(imp.Name, a.root.Lookup(imp.Name, iface)); err != nil {
			return nil, err
		}
	}

	for _, exp := range mod.Exports {
		iface, err := a.catalog.Interface(exp.Interface)
		if err != nil {
			return nil, err
		}
		a.root.Export(ctx, exp.ServiceName(), binding.NewExport(exp.Ref, iface, c, binding.WithObserver(a.metrics)))
	}
	ctxlog.FromContext(ctx).Debug("Module built.",
		zap.String("location", mod.Location),
		zap.Strings("components", c.Names()))
	return c, nil
}

func (a *App) moduleFailed(ctx context.Context, location string, err error) error {
	merr := &ModuleError{Location: location, Err: err}
	if a.config.StrictErrors {
		return merr
	}
	ctxlog.FromContext(ctx).Error("Module failed to assemble.", zap.String("location", location), zap.Error(err))
	a.failed[location] = merr
	a.metrics.ModuleFailed()
	return nil
}

// Close closes the module containers in reverse initialization order and
// stops the health check server.
func (a *App) Close() error {
	a.mutex.Lock()
	defer a.mutex.Unlock()

	var err error
	if serr := a.closeHealthCheckServer(); serr != nil {
		err = multierr.Append(err, serr)
	}
	for i := len(a.ready) - 1; i >= 0; i-- {
		c := a.containers[a.ready[i]]
		if cerr := c.Close(); cerr != nil && !errors.Is(cerr, container.ErrClosed) {
			err = multierr.Append(err, cerr)
		}
	}
	a.logger.Debug("Application closed.", zap.Error(err))
	return err
}
