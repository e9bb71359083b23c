package binding

//go:generate mockgen -source=binding.go -destination=mock_binding_test.go -package=binding

import (
	"context"
	"reflect"
	"sync/atomic"
)

// Container is the module container a binding resolves its target from.
type Container interface {
	Get(ctx context.Context, id string) (any, error)
}

// TypeResolver is implemented by containers that can report the type of a
// component without creating it.
type TypeResolver interface {
	TypeOf(id string) (reflect.Type, bool)
}

// Root exposes the export bindings registered on the root container.
type Root interface {
	ExportBinding(id string) (*ExportBinding, bool)
}

// Kind names the side of a binding in logs and metrics.
type Kind string

const (
	KindExport Kind = "export"
	KindImport Kind = "import"
)

// Observer is told about resolution outcomes.
type Observer interface {
	Resolved(kind Kind, name string)
	Failed(kind Kind, name string, err error)
	Raced(kind Kind, name string)
}

// Option configures a binding.
type Option func(*options)

type options struct {
	observer Observer
}

// WithObserver attaches an Observer to the binding.
func WithObserver(o Observer) Option {
	return func(opts *options) {
		opts.observer = o
	}
}

func newOptions(opts []Option) options {
	o := options{observer: nopObserver{}}
	for _, opt := range opts {
		opt(&o)
	}
	if o.observer == nil {
		o.observer = nopObserver{}
	}
	return o
}

type nopObserver struct{}

func (nopObserver) Resolved(Kind, string)      {}
func (nopObserver) Failed(Kind, string, error) {}
func (nopObserver) Raced(Kind, string)         {}

// ExportID derives the root-level identifier under which the export binding
// of a service is registered.
func ExportID(serviceName string) string {
	return serviceName + "_exportBinding"
}

// resolved boxes a value so that nil instances can still be published.
type resolved struct {
	value any
}

// cell is a write-once slot. The first publish wins.
type cell struct {
	p atomic.Pointer[resolved]
}

func (c *cell) load() (any, bool) {
	if r := c.p.Load(); r != nil {
		return r.value, true
	}
	return nil, false
}

// publish stores v unless a value is already present, and returns the stored
// value along with whether this call was the one that stored it.
func (c *cell) publish(v any) (any, bool) {
	if c.p.CompareAndSwap(nil, &resolved{value: v}) {
		return v, true
	}
	return c.p.Load().value, false
}
