package kinds

import (
	"context"
	"fmt"
	"reflect"
	"sort"

	"go.uber.org/zap"
)

// Resolver is what a constructor uses to reach other components of its own
// module, including the imported services.
type Resolver interface {
	Get(ctx context.Context, id string) (any, error)
}

// Kind holds the compiled Go parts of a component kind.
type Kind struct {
	// Input returns a pointer to a fresh argument struct. Nil means the kind
	// takes no arguments.
	Input func() any
	// Type is the declared type of the instances New produces. It is used for
	// compatibility checks before the instance exists.
	Type reflect.Type
	New  func(ctx context.Context, r Resolver, input any) (any, error)
}

// Module is the interface that Go modules implement to be registered.
type Module interface {
	Register(c *Catalog)
}

// Catalog holds all registered kinds and interface types.
type Catalog struct {
	logger     *zap.Logger
	kinds      map[string]*Kind
	interfaces map[string]reflect.Type
}

// New creates an empty catalog that reports registrations to logger. A nil
// logger discards them.
func New(logger *zap.Logger) *Catalog {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Catalog{
		logger:     logger,
		kinds:      make(map[string]*Kind),
		interfaces: make(map[string]reflect.Type),
	}
}

// RegisterKind registers a component kind.
func (c *Catalog) RegisterKind(name string, kind *Kind) {
	if _, exists := c.kinds[name]; exists {
		panic(fmt.Sprintf("component kind with name '%s' already registered", name))
	}
	if kind == nil || kind.New == nil {
		panic(fmt.Sprintf("component kind '%s' has no constructor", name))
	}
	c.logger.Debug("Registering component kind.", zap.String("name", name))
	c.kinds[name] = kind
}

// RegisterInterface registers the Go type that declarations refer to by name.
func (c *Catalog) RegisterInterface(name string, iface reflect.Type) {
	if _, exists := c.interfaces[name]; exists {
		panic(fmt.Sprintf("interface with name '%s' already registered", name))
	}
	c.logger.Debug("Registering interface.", zap.String("name", name), zap.String("type", iface.String()))
	c.interfaces[name] = iface
}

// Kind looks up a component kind.
func (c *Catalog) Kind(name string) (*Kind, bool) {
	k, ok := c.kinds[name]
	return k, ok
}

// Interface resolves an interface name to its Go type.
func (c *Catalog) Interface(name string) (reflect.Type, error) {
	iface, ok := c.interfaces[name]
	if !ok {
		return nil, fmt.Errorf("unknown interface '%s': known interfaces are %v", name, c.InterfaceNames())
	}
	return iface, nil
}

// InterfaceNames returns the registered interface names, sorted.
func (c *Catalog) InterfaceNames() []string {
	names := make([]string, 0, len(c.interfaces))
	for name := range c.interfaces {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// KindNames returns the registered kind names, sorted.
func (c *Catalog) KindNames() []string {
	names := make([]string, 0, len(c.kinds))
	for name := range c.kinds {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
