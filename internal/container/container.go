package container

import (
	"context"
	"fmt"
	"io"
	"reflect"
	"sync"

	"github.com/specialistvlad/modlink/internal/binding"
	"github.com/specialistvlad/modlink/internal/ctxlog"
	"github.com/specialistvlad/modlink/internal/kinds"
	"go.uber.org/multierr"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// Definition describes one component of a module.
type Definition struct {
	Name     string
	KindName string
	Kind     *kinds.Kind
	// Input is the decoded argument struct passed to the constructor.
	Input any
	// Lazy components are only created when something asks for them.
	Lazy bool
}

// Container holds the components of one module.
type Container struct {
	location string

	defs    map[string]*Definition
	order   []string
	imports map[string]*binding.ImportBinding

	mutex     sync.Mutex
	instances map[string]any
	created   []string
	closed    bool

	group singleflight.Group
}

var (
	_ binding.Container    = (*Container)(nil)
	_ binding.TypeResolver = (*Container)(nil)
	_ kinds.Resolver       = (*Container)(nil)
)

// New creates an empty container for the module at location.
func New(location string) *Container {
	return &Container{
		location:  location,
		defs:      make(map[string]*Definition),
		imports:   make(map[string]*binding.ImportBinding),
		instances: make(map[string]any),
	}
}

// Location returns the module identifier.
func (c *Container) Location() string {
	return c.location
}

// Define adds a component definition.
func (c *Container) Define(def *Definition) error {
	if def == nil || def.Kind == nil {
		return fmt.Errorf("component definition in module %s has no kind", c.location)
	}
	if c.has(def.Name) {
		return &DuplicateComponentError{Location: c.location, ID: def.Name}
	}
	c.defs[def.Name] = def
	c.order = append(c.order, def.Name)
	return nil
}

// Import makes an imported service reachable under name.
func (c *Container) Import(name string, b *binding.ImportBinding) error {
	if c.has(name) {
		return &DuplicateComponentError{Location: c.location, ID: name}
	}
	c.imports[name] = b
	return nil
}

func (c *Container) has(name string) bool {
	_, isDef := c.defs[name]
	_, isImport := c.imports[name]
	return isDef || isImport
}

// Names returns the component names in definition order.
func (c *Container) Names() []string {
	return append([]string(nil), c.order...)
}

// TypeOf returns the declared type of a component or import without
// creating it.
func (c *Container) TypeOf(id string) (reflect.Type, bool) {
	if def, ok := c.defs[id]; ok {
		return def.Kind.Type, def.Kind.Type != nil
	}
	if b, ok := c.imports[id]; ok {
		return b.Interface(), b.Interface() != nil
	}
	return nil, false
}

// Get returns the component or imported service named id, creating the
// component on first use.
func (c *Container) Get(ctx context.Context, id string) (any, error) {
	if b, ok := c.imports[id]; ok {
		return b.Get(ctx)
	}

	def, ok := c.defs[id]
	if !ok {
		return nil, &NoSuchComponentError{Location: c.location, ID: id}
	}

	c.mutex.Lock()
	if c.closed {
		c.mutex.Unlock()
		return nil, ErrClosed
	}
	if v, ok := c.instances[id]; ok {
		c.mutex.Unlock()
		return v, nil
	}
	c.mutex.Unlock()

	ctx, err := enter(ctx, c, id)
	if err != nil {
		return nil, err
	}

	s := step{c: c, id: id}
	if err := waits.wait(ctx, s); err != nil {
		return nil, err
	}
	defer waits.done(ctx)

	v, err, _ := c.group.Do(id, func() (any, error) {
		defer waits.own(ctx, s)()
		return c.create(ctx, def)
	})
	return v, err
}

func (c *Container) create(ctx context.Context, def *Definition) (any, error) {
	c.mutex.Lock()
	if v, ok := c.instances[def.Name]; ok {
		c.mutex.Unlock()
		return v, nil
	}
	c.mutex.Unlock()

	logger := ctxlog.FromContext(ctx)
	logger.Debug("Creating component.",
		zap.String("location", c.location),
		zap.String("component", def.Name),
		zap.String("kind", def.KindName))

	v, err := def.Kind.New(ctx, c, def.Input)
	if err != nil {
		return nil, &CreationError{Location: c.location, ID: def.Name, Err: err}
	}

	c.mutex.Lock()
	defer c.mutex.Unlock()
	c.instances[def.Name] = v
	c.created = append(c.created, def.Name)
	return v, nil
}

// Instantiate creates every component that is not lazy, in definition
// order, and stops at the first failure.
func (c *Container) Instantiate(ctx context.Context) error {
	for _, name := range c.order {
		if c.defs[name].Lazy {
			continue
		}
		if _, err := c.Get(ctx, name); err != nil {
			return err
		}
	}
	return nil
}

// Close closes the created components that implement io.Closer, newest
// first. Later Get calls return ErrClosed.
func (c *Container) Close() error {
	c.mutex.Lock()
	if c.closed {
		c.mutex.Unlock()
		return nil
	}
	c.closed = true
	created := c.created
	instances := c.instances
	c.mutex.Unlock()

	var err error
	for i := len(created) - 1; i >= 0; i-- {
		if closer, ok := instances[created[i]].(io.Closer); ok {
			if cerr := closer.Close(); cerr != nil {
				err = multierr.Append(err, fmt.Errorf("close component '%s' in module %s: %w", created[i], c.location, cerr))
			}
		}
	}
	return err
}
