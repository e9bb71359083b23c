package app

import (
	"context"
	"io"
	"net/http"
	"sync"

	"github.com/google/uuid"
	"github.com/specialistvlad/modlink/internal/config"
	"github.com/specialistvlad/modlink/internal/container"
	"github.com/specialistvlad/modlink/internal/ctxlog"
	"github.com/specialistvlad/modlink/internal/dag"
	"github.com/specialistvlad/modlink/internal/hcl"
	"github.com/specialistvlad/modlink/internal/kinds"
	"github.com/specialistvlad/modlink/internal/metrics"
	"github.com/specialistvlad/modlink/internal/registry"
	"go.uber.org/zap"
)

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	outW      io.Writer
	logger    *zap.Logger
	config    *Config
	loader    config.Loader
	catalog   *kinds.Catalog
	converter *hcl.Converter
	metrics   *metrics.Collector

	mutex      sync.Mutex
	prepared   bool
	prepareErr error
	assembled  bool
	model      *config.Model
	registry   *registry.Registry
	report     *registry.Report
	sorter     *dag.Sorter
	order      []string
	conflict   []string
	root       *container.Root
	containers map[string]*container.Container
	ready      []string
	failed     map[string]error

	httpServer *http.Server
}

// NewApp is the constructor for the main application. It returns an App
// with its own isolated logger, catalog and metrics. A nil loader selects
// the default HCL and YAML loader; no modules selects the core modules.
func NewApp(outW io.Writer, cfg *Config, loader config.Loader, modules ...kinds.Module) *App {
	logger := newLogger(cfg.LogLevel, cfg.LogFormat, outW)
	id := uuid.New()
	logger = logger.With(zap.String("assembly_id", id.String()))
	logger.Debug("Logger configured successfully.")

	if loader == nil {
		loader = NewLoader()
	}

	catalog := kinds.New(logger)
	builtins{}.Register(catalog)
	if len(modules) == 0 {
		modules = coreModules
	}
	for _, mod := range modules {
		mod.Register(catalog)
	}
	logger.Debug("All Go modules registered.",
		zap.Int("count", len(modules)),
		zap.Strings("kinds", catalog.KindNames()),
		zap.Strings("interfaces", catalog.InterfaceNames()))

	return &App{
		outW:       outW,
		logger:     logger,
		config:     cfg,
		loader:     loader,
		catalog:    catalog,
		converter:  hcl.NewConverter(),
		metrics:    metrics.New(),
		containers: make(map[string]*container.Container),
		failed:     make(map[string]error),
	}
}

// Context returns ctx carrying the app's logger.
func (a *App) Context(ctx context.Context) context.Context {
	return ctxlog.WithLogger(ctx, a.logger)
}

// Metrics returns the app's metric collector.
func (a *App) Metrics() *metrics.Collector { return a.metrics }

// Registry returns the application's registry. It is nil before Assemble.
func (a *App) Registry() *registry.Registry { return a.registry }

// Report returns the result of contract validation.
func (a *App) Report() *registry.Report { return a.report }

// Order returns the module initialization order.
func (a *App) Order() []string { return append([]string(nil), a.order...) }

// ConflictGroup returns the modules that were initialized together because
// of a cycle.
func (a *App) ConflictGroup() []string { return append([]string(nil), a.conflict...) }

// Graph returns the cross-module import graph. It is nil before the
// declarations are loaded.
func (a *App) Graph() *dag.Graph {
	if a.sorter == nil {
		return nil
	}
	return a.sorter.ImportGraph()
}

// Container returns the container of a successfully assembled module.
func (a *App) Container(location string) (*container.Container, bool) {
	c, ok := a.containers[location]
	return c, ok
}

// FailedLocations returns the modules that failed to assemble with their
// errors. It is only populated when strict error handling is off.
func (a *App) FailedLocations() map[string]error {
	out := make(map[string]error, len(a.failed))
	for k, v := range a.failed {
		out[k] = v
	}
	return out
}

// Lookup resolves an exported service from the root container.
func (a *App) Lookup(ctx context.Context, serviceName string) (any, error) {
	if a.root == nil {
		return nil, errNotAssembled
	}
	return a.root.Lookup(serviceName, nil).Get(a.Context(ctx))
}
