package env

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/specialistvlad/modlink/internal/kinds"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type resolverFunc func(ctx context.Context, id string) (any, error)

func (f resolverFunc) Get(ctx context.Context, id string) (any, error) { return f(ctx, id) }

func TestNewVars(t *testing.T) {
	m := &Module{Environ: func() []string {
		return []string{"APP_HOST=example.org", "APP_PORT=80", "OTHER=x", "BROKEN"}
	}}

	v, err := m.NewVars(context.Background(), nil, &Input{
		Prefix:   "APP_",
		Defaults: map[string]string{"PORT": "8080", "MODE": "dev"},
	})
	require.NoError(t, err)

	vars := v.(*Vars)
	assert.Equal(t, []string{"HOST", "MODE", "PORT"}, vars.Keys())
	port, ok := vars.Lookup("PORT")
	assert.True(t, ok)
	assert.Equal(t, "80", port, "the environment wins over defaults")
	_, ok = vars.Lookup("OTHER")
	assert.False(t, ok)
}

func TestNewValue(t *testing.T) {
	vars := &Vars{values: map[string]string{"HOST": "example.org"}}
	resolver := resolverFunc(func(_ context.Context, id string) (any, error) {
		switch id {
		case "vars":
			return vars, nil
		case "text":
			return "plain", nil
		}
		return nil, errors.New("no such component")
	})

	v, err := NewValue(context.Background(), resolver, &ValueInput{Source: "vars", Key: "HOST"})
	require.NoError(t, err)
	assert.Equal(t, "example.org", fmt.Sprint(v))

	_, err = NewValue(context.Background(), resolver, &ValueInput{Source: "vars", Key: "MISSING"})
	assert.ErrorContains(t, err, "'MISSING' is not set")

	_, err = NewValue(context.Background(), resolver, &ValueInput{Source: "text", Key: "HOST"})
	assert.ErrorContains(t, err, "not an env lookup")

	_, err = NewValue(context.Background(), resolver, &ValueInput{Source: "nope", Key: "HOST"})
	assert.Error(t, err)
}

func TestRegister(t *testing.T) {
	c := kinds.New(nil)
	(&Module{}).Register(c)

	assert.Equal(t, []string{"env", "env_value"}, c.KindNames())
	iface, err := c.Interface("env.Lookup")
	require.NoError(t, err)

	k, ok := c.Kind("env")
	require.True(t, ok)
	assert.True(t, k.Type.Implements(iface))
}
