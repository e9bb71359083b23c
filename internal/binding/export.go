package binding

import (
	"context"
	"fmt"
	"reflect"

	"github.com/specialistvlad/modlink/internal/ctxlog"
	"github.com/specialistvlad/modlink/internal/ref"
	"go.uber.org/zap"
)

// ExportBinding resolves a component of the exporting module once and hands
// the same instance to every caller afterwards.
type ExportBinding struct {
	target string
	iface  reflect.Type
	source Container
	opts   options

	value cell
}

// NewExport creates a binding for the component `target` of `source`, which
// must satisfy `iface`.
func NewExport(target string, iface reflect.Type, source Container, opts ...Option) *ExportBinding {
	return &ExportBinding{
		target: target,
		iface:  iface,
		source: source,
		opts:   newOptions(opts),
	}
}

// Target returns the component identifier inside the source container.
func (b *ExportBinding) Target() string { return b.target }

// Interface returns the declared interface of the export.
func (b *ExportBinding) Interface() reflect.Type { return b.iface }

// IsStatic reports that the resolved value never changes once bound.
func (b *ExportBinding) IsStatic() bool { return true }

// Resolved reports whether Get has already succeeded.
func (b *ExportBinding) Resolved() bool {
	_, ok := b.value.load()
	return ok
}

// Get returns the target instance, resolving it on first use.
func (b *ExportBinding) Get(ctx context.Context) (any, error) {
	if v, ok := b.value.load(); ok {
		return v, nil
	}

	instance, err := b.source.Get(ctx, b.target)
	if err != nil {
		err = &ResolveError{Target: b.target, Err: err}
		b.opts.observer.Failed(KindExport, b.target, err)
		return nil, err
	}

	actual := reflect.TypeOf(instance)
	if tr, ok := b.source.(TypeResolver); ok {
		if t, ok := tr.TypeOf(b.target); ok {
			actual = t
		}
	}
	if !ref.Satisfies(actual, b.iface) {
		err := &TypeMismatchError{Name: b.target, Required: b.iface, Actual: actual}
		b.opts.observer.Failed(KindExport, b.target, err)
		return nil, err
	}

	v, won := b.value.publish(instance)
	if won {
		b.opts.observer.Resolved(KindExport, b.target)
	} else {
		ctxlog.FromContext(ctx).Info("Redundant creation of export target caused by concurrency has been detected. Ignoring new instance.",
			zap.String("target", b.target))
		b.opts.observer.Raced(KindExport, b.target)
	}
	return v, nil
}

// Key returns an identity string built from the fixed fields only.
func (b *ExportBinding) Key() string {
	return fmt.Sprintf("export:%s(%s)", b.target, ref.TypeName(b.iface))
}

// Equal reports whether both bindings describe the same export. The cached
// value is not compared.
func (b *ExportBinding) Equal(other *ExportBinding) bool {
	if b == nil || other == nil {
		return b == other
	}
	return b.target == other.target && b.iface == other.iface && b.source == other.source
}

func (b *ExportBinding) String() string {
	return fmt.Sprintf("ExportBinding[target=%s,interface=%s]", b.target, ref.TypeName(b.iface))
}
