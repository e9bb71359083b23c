package container

import (
	"context"
	"reflect"
	"sync"

	"github.com/specialistvlad/modlink/internal/binding"
	"github.com/specialistvlad/modlink/internal/ctxlog"
	"go.uber.org/zap"
)

// DefaultRootName is the name of the root container declarations use when
// they do not name one.
const DefaultRootName = "root"

// Root holds the export bindings published by all modules.
type Root struct {
	name string
	opts []binding.Option

	mutex   sync.RWMutex
	exports map[string]*binding.ExportBinding
	order   []string
}

var _ binding.Root = (*Root)(nil)

// NewRoot creates a root container. The options are applied to every import
// binding created through Lookup.
func NewRoot(name string, opts ...binding.Option) *Root {
	return &Root{
		name:    name,
		opts:    opts,
		exports: make(map[string]*binding.ExportBinding),
	}
}

// Name returns the root container name.
func (r *Root) Name() string {
	return r.name
}

// Export registers the export binding of a service. The first registration
// wins; later ones are ignored and reported as false.
func (r *Root) Export(ctx context.Context, serviceName string, b *binding.ExportBinding) bool {
	id := binding.ExportID(serviceName)

	r.mutex.Lock()
	defer r.mutex.Unlock()

	if _, exists := r.exports[id]; exists {
		ctxlog.FromContext(ctx).Debug("Export binding already registered.", zap.String("service", serviceName))
		return false
	}
	r.exports[id] = b
	r.order = append(r.order, id)
	ctxlog.FromContext(ctx).Debug("Registered export binding.",
		zap.String("service", serviceName),
		zap.Stringer("binding", b))
	return true
}

// ExportBinding returns the export binding registered under id.
func (r *Root) ExportBinding(id string) (*binding.ExportBinding, bool) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	b, ok := r.exports[id]
	return b, ok
}

// Lookup creates an import binding for a service. The export does not have
// to be registered yet.
func (r *Root) Lookup(serviceName string, iface reflect.Type) *binding.ImportBinding {
	return binding.NewImport(serviceName, binding.ExportID(serviceName), iface, r, r.opts...)
}

// Bindings lists the registered export bindings in registration order.
func (r *Root) Bindings() []*binding.ExportBinding {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	out := make([]*binding.ExportBinding, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.exports[id])
	}
	return out
}
