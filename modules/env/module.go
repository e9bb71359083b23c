// Package env provides component kinds that read the process environment.
package env

import (
	"context"
	"fmt"
	"os"
	"reflect"
	"sort"
	"strings"

	"github.com/specialistvlad/modlink/internal/kinds"
)

// Lookup is the service interface published by `env` components.
type Lookup interface {
	Lookup(key string) (string, bool)
}

// Module implements the kinds.Module interface for this package.
type Module struct {
	// Environ overrides os.Environ, for tests.
	Environ func() []string
}

// Input defines the arguments of the `env` kind.
type Input struct {
	Prefix   string            `modlink:"prefix"`
	Defaults map[string]string `modlink:"defaults"`
}

// ValueInput defines the arguments of the `env_value` kind.
type ValueInput struct {
	Source string `modlink:"source,required"`
	Key    string `modlink:"key,required"`
}

// Vars is a snapshot of environment variables taken when the component is
// created.
type Vars struct {
	values map[string]string
}

// Lookup returns the value of key.
func (v *Vars) Lookup(key string) (string, bool) {
	val, ok := v.values[key]
	return val, ok
}

// Keys returns the variable names, sorted.
func (v *Vars) Keys() []string {
	keys := make([]string, 0, len(v.values))
	for k := range v.values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Value is a single resolved variable.
type Value struct {
	Key   string
	Value string
}

func (v *Value) String() string {
	return v.Value
}

// NewVars snapshots the variables that start with the prefix. The prefix is
// stripped from the names. Defaults fill in variables that are not set.
func (m *Module) NewVars(_ context.Context, _ kinds.Resolver, input any) (any, error) {
	in := input.(*Input)

	environ := os.Environ
	if m.Environ != nil {
		environ = m.Environ
	}

	values := make(map[string]string, len(in.Defaults))
	for k, v := range in.Defaults {
		values[k] = v
	}
	for _, e := range environ() {
		pair := strings.SplitN(e, "=", 2)
		if len(pair) != 2 || !strings.HasPrefix(pair[0], in.Prefix) {
			continue
		}
		values[strings.TrimPrefix(pair[0], in.Prefix)] = pair[1]
	}
	return &Vars{values: values}, nil
}

// NewValue reads one key from a Lookup component.
func NewValue(ctx context.Context, r kinds.Resolver, input any) (any, error) {
	in := input.(*ValueInput)

	src, err := r.Get(ctx, in.Source)
	if err != nil {
		return nil, err
	}
	lookup, ok := src.(Lookup)
	if !ok {
		return nil, fmt.Errorf("component '%s' is a %T, not an env lookup", in.Source, src)
	}
	val, ok := lookup.Lookup(in.Key)
	if !ok {
		return nil, fmt.Errorf("environment variable '%s' is not set", in.Key)
	}
	return &Value{Key: in.Key, Value: val}, nil
}

// Register registers the kinds and interfaces with the catalog.
func (m *Module) Register(c *kinds.Catalog) {
	c.RegisterInterface("env.Lookup", reflect.TypeOf((*Lookup)(nil)).Elem())
	c.RegisterKind("env", &kinds.Kind{
		Input: func() any { return new(Input) },
		Type:  reflect.TypeOf((*Vars)(nil)),
		New:   m.NewVars,
	})
	c.RegisterKind("env_value", &kinds.Kind{
		Input: func() any { return new(ValueInput) },
		Type:  reflect.TypeOf((*Value)(nil)),
		New:   NewValue,
	})
}
