package kinds

import (
	"context"
	"io"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func noopKind() *Kind {
	return &Kind{
		Type: reflect.TypeOf(""),
		New:  func(context.Context, Resolver, any) (any, error) { return "x", nil },
	}
}

func TestCatalog_RegisterKind(t *testing.T) {
	c := New(nil)
	c.RegisterKind("noop", noopKind())

	k, ok := c.Kind("noop")
	require.True(t, ok)
	assert.Equal(t, reflect.TypeOf(""), k.Type)

	_, ok = c.Kind("missing")
	assert.False(t, ok)

	assert.Panics(t, func() { c.RegisterKind("noop", noopKind()) })
	assert.Panics(t, func() { c.RegisterKind("broken", &Kind{}) })
	assert.Equal(t, []string{"noop"}, c.KindNames())
}

func TestCatalog_Interface(t *testing.T) {
	c := New(nil)
	c.RegisterInterface("Reader", reflect.TypeOf((*io.Reader)(nil)).Elem())
	c.RegisterInterface("Closer", reflect.TypeOf((*io.Closer)(nil)).Elem())

	iface, err := c.Interface("Reader")
	require.NoError(t, err)
	assert.Equal(t, "io.Reader", iface.String())

	_, err = c.Interface("Writer")
	assert.ErrorContains(t, err, "unknown interface 'Writer'")
	assert.Equal(t, []string{"Closer", "Reader"}, c.InterfaceNames())

	assert.Panics(t, func() { c.RegisterInterface("Reader", reflect.TypeOf("")) })
}

func TestCatalog_LogsRegistrations(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	c := New(zap.New(core))

	c.RegisterKind("noop", noopKind())
	c.RegisterInterface("Reader", reflect.TypeOf((*io.Reader)(nil)).Elem())

	require.Equal(t, 2, logs.Len())
	assert.Equal(t, "noop", logs.FilterMessage("Registering component kind.").All()[0].ContextMap()["name"])
	assert.Equal(t, "io.Reader", logs.FilterMessage("Registering interface.").All()[0].ContextMap()["type"])
}
