// Package metrics holds the Prometheus collectors of one application
// instance. Each App owns its own registry so that several apps (and tests)
// never share counters.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/specialistvlad/modlink/internal/binding"
)

// Outcome labels of the resolution counter.
const (
	OutcomeResolved = "resolved"
	OutcomeFailed   = "failed"
)

// Collector records assembly and binding metrics.
type Collector struct {
	registry *prometheus.Registry

	modulesAssembled  prometheus.Gauge
	modulesFailed     prometheus.Gauge
	conflictGroupSize prometheus.Gauge
	assemblyDuration  prometheus.Histogram
	resolutions       *prometheus.CounterVec
	races             *prometheus.CounterVec
}

var _ binding.Observer = (*Collector)(nil)

// New creates a Collector with its own registry.
func New() *Collector {
	c := &Collector{
		registry: prometheus.NewRegistry(),
		modulesAssembled: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "modlink_modules_assembled",
			Help: "Number of modules assembled successfully.",
		}),
		modulesFailed: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "modlink_modules_failed",
			Help: "Number of modules that failed to assemble.",
		}),
		conflictGroupSize: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "modlink_conflict_group_size",
			Help: "Number of modules in the cyclic conflict group of the last sort.",
		}),
		assemblyDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "modlink_assembly_duration_seconds",
			Help:    "Time taken to assemble the application.",
			Buckets: prometheus.DefBuckets,
		}),
		resolutions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "modlink_binding_resolutions_total",
			Help: "Number of binding resolutions by binding kind and outcome.",
		}, []string{"kind", "outcome"}),
		races: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "modlink_binding_races_total",
			Help: "Number of redundant concurrent resolutions discarded, by binding kind.",
		}, []string{"kind"}),
	}

	c.registry.MustRegister(
		c.modulesAssembled,
		c.modulesFailed,
		c.conflictGroupSize,
		c.assemblyDuration,
		c.resolutions,
		c.races,
	)
	return c
}

// Registry returns the underlying Prometheus registry.
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}

// ModuleAssembled counts a successfully assembled module.
func (c *Collector) ModuleAssembled() {
	c.modulesAssembled.Inc()
}

// ModuleFailed counts a module that failed to assemble.
func (c *Collector) ModuleFailed() {
	c.modulesFailed.Inc()
}

// ConflictGroup records the size of the conflict group.
func (c *Collector) ConflictGroup(size int) {
	c.conflictGroupSize.Set(float64(size))
}

// AssemblyFinished records how long assembly took.
func (c *Collector) AssemblyFinished(d time.Duration) {
	c.assemblyDuration.Observe(d.Seconds())
}

// Resolved implements binding.Observer.
func (c *Collector) Resolved(kind binding.Kind, _ string) {
	c.resolutions.WithLabelValues(string(kind), OutcomeResolved).Inc()
}

// Failed implements binding.Observer.
func (c *Collector) Failed(kind binding.Kind, _ string, _ error) {
	c.resolutions.WithLabelValues(string(kind), OutcomeFailed).Inc()
}

// Raced implements binding.Observer.
func (c *Collector) Raced(kind binding.Kind, _ string) {
	c.races.WithLabelValues(string(kind)).Inc()
}
