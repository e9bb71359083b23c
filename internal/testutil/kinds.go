package testutil

import (
	"context"
	"fmt"
	"reflect"
	"sync"

	"github.com/specialistvlad/modlink/internal/kinds"
)

// Greeter is the service interface of the test kinds.
type Greeter interface {
	Greet() string
}

// Recorder remembers the order components were created and closed in.
type Recorder struct {
	mu      sync.Mutex
	created []string
	closed  []string
}

// Created returns the names of created components in creation order.
func (r *Recorder) Created() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.created...)
}

// Closed returns the names of closed components in close order.
func (r *Recorder) Closed() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.closed...)
}

func (r *Recorder) add(list *[]string, name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	*list = append(*list, name)
}

// GreeterInput defines the arguments of the `greeter` test kind.
type GreeterInput struct {
	Name string `modlink:"name,required"`
	// Uses names another Greeter to delegate to: a local component or an
	// import.
	Uses string `modlink:"uses"`
	Fail bool   `modlink:"fail"`
}

type greeter struct {
	name     string
	delegate Greeter
	rec      *Recorder
}

func (g *greeter) Greet() string {
	if g.delegate != nil {
		return g.name + " -> " + g.delegate.Greet()
	}
	return g.name
}

func (g *greeter) Close() error {
	g.rec.add(&g.rec.closed, g.name)
	return nil
}

// GreeterModule registers the `greeter` kind and the `test.Greeter`
// interface.
type GreeterModule struct {
	Recorder *Recorder
}

// Register implements kinds.Module.
func (m *GreeterModule) Register(c *kinds.Catalog) {
	if m.Recorder == nil {
		m.Recorder = &Recorder{}
	}
	c.RegisterInterface("test.Greeter", reflect.TypeOf((*Greeter)(nil)).Elem())
	c.RegisterInterface("test.Other", reflect.TypeOf((*fmt.Stringer)(nil)).Elem())
	c.RegisterKind("greeter", &kinds.Kind{
		Input: func() any { return new(GreeterInput) },
		Type:  reflect.TypeOf((*greeter)(nil)),
		New: func(ctx context.Context, r kinds.Resolver, input any) (any, error) {
			in := input.(*GreeterInput)
			if in.Fail {
				return nil, fmt.Errorf("greeter '%s' refused to start", in.Name)
			}
			g := &greeter{name: in.Name, rec: m.Recorder}
			if in.Uses != "" {
				dep, err := r.Get(ctx, in.Uses)
				if err != nil {
					return nil, err
				}
				d, ok := dep.(Greeter)
				if !ok {
					return nil, fmt.Errorf("'%s' is not a greeter", in.Uses)
				}
				g.delegate = d
			}
			m.Recorder.add(&m.Recorder.created, in.Name)
			return g, nil
		},
	})
}
