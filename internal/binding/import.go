package binding

import (
	"context"
	"fmt"
	"reflect"

	"github.com/specialistvlad/modlink/internal/ctxlog"
	"github.com/specialistvlad/modlink/internal/ref"
	"go.uber.org/zap"
)

// ImportBinding resolves a service through the export binding registered on
// the root container.
type ImportBinding struct {
	serviceName string
	exportID    string
	iface       reflect.Type
	root        Root
	opts        options

	value cell
}

// NewImport creates a binding for `serviceName` that looks up the export
// binding `exportID` on `root` and requires it to satisfy `iface`.
func NewImport(serviceName, exportID string, iface reflect.Type, root Root, opts ...Option) *ImportBinding {
	return &ImportBinding{
		serviceName: serviceName,
		exportID:    exportID,
		iface:       iface,
		root:        root,
		opts:        newOptions(opts),
	}
}

// ServiceName returns the imported service name.
func (b *ImportBinding) ServiceName() string { return b.serviceName }

// ExportID returns the identifier of the export binding on the root.
func (b *ImportBinding) ExportID() string { return b.exportID }

// Interface returns the interface the importer requires.
func (b *ImportBinding) Interface() reflect.Type { return b.iface }

// IsStatic is false: resolution may be deferred past construction.
func (b *ImportBinding) IsStatic() bool { return false }

// Resolved reports whether Get has already succeeded.
func (b *ImportBinding) Resolved() bool {
	_, ok := b.value.load()
	return ok
}

// Get returns the imported instance, resolving it on first use.
func (b *ImportBinding) Get(ctx context.Context) (any, error) {
	if v, ok := b.value.load(); ok {
		return v, nil
	}

	export, ok := b.root.ExportBinding(b.exportID)
	if !ok || export == nil {
		err := &NoSuchExportError{Service: b.serviceName, Interface: b.iface}
		b.opts.observer.Failed(KindImport, b.serviceName, err)
		return nil, err
	}
	if !ref.Satisfies(export.Interface(), b.iface) {
		err := &TypeMismatchError{Name: b.serviceName, Required: b.iface, Actual: export.Interface()}
		b.opts.observer.Failed(KindImport, b.serviceName, err)
		return nil, err
	}

	instance, err := export.Get(ctx)
	if err != nil {
		err = fmt.Errorf("import '%s': %w", b.serviceName, err)
		b.opts.observer.Failed(KindImport, b.serviceName, err)
		return nil, err
	}

	v, won := b.value.publish(instance)
	if won {
		b.opts.observer.Resolved(KindImport, b.serviceName)
	} else {
		ctxlog.FromContext(ctx).Warn("Imported service was resolved earlier.", zap.String("service", b.serviceName))
		b.opts.observer.Raced(KindImport, b.serviceName)
	}
	return v, nil
}

// Key returns an identity string built from the fixed fields only.
func (b *ImportBinding) Key() string {
	return fmt.Sprintf("import:%s->%s(%s)", b.serviceName, b.exportID, ref.TypeName(b.iface))
}

// Equal reports whether both bindings describe the same import. The cached
// value is not compared.
func (b *ImportBinding) Equal(other *ImportBinding) bool {
	if b == nil || other == nil {
		return b == other
	}
	return b.serviceName == other.serviceName &&
		b.exportID == other.exportID &&
		b.iface == other.iface &&
		b.root == other.root
}

func (b *ImportBinding) String() string {
	return fmt.Sprintf("ImportBinding[service=%s,export=%s,interface=%s]",
		b.serviceName, b.exportID, ref.TypeName(b.iface))
}
