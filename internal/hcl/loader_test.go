package hcl

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zclconf/go-cty/cty"
)

func writeHCL(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoader_Load(t *testing.T) {
	path := writeHCL(t, "users.hcl", `
component "store" {
  kind = "env"
  lazy = true
  arguments {
    prefix = "APP_${module.name}_"
  }
}

component "printer" {
  kind = "print"
}

export "store" {
  interface = "env.Lookup"
  name      = "settings"
}

export "printer" {
  interface = "any"
  root      = "other"
}

import "greeting" {
  interface = "fmt.Stringer"
}
`)

	model, err := NewLoader().Load(context.Background(), path)
	require.NoError(t, err)
	require.Len(t, model.Modules, 1)

	mod := model.Modules[0]
	assert.Equal(t, path, mod.Location)

	require.Len(t, mod.Components, 2)
	assert.Equal(t, "store", mod.Components[0].Name)
	assert.Equal(t, "env", mod.Components[0].Kind)
	assert.True(t, mod.Components[0].Lazy)
	assert.Contains(t, mod.Components[0].Arguments, "prefix")
	assert.Equal(t, "printer", mod.Components[1].Name)
	assert.False(t, mod.Components[1].Lazy)
	assert.Empty(t, mod.Components[1].Arguments)

	require.Len(t, mod.Exports, 2)
	assert.Equal(t, "settings", mod.Exports[0].ServiceName())
	assert.Equal(t, "env.Lookup", mod.Exports[0].Interface)
	assert.Equal(t, "printer", mod.Exports[1].ServiceName())
	assert.Equal(t, "other", mod.Exports[1].Root)

	require.Len(t, mod.Imports, 1)
	assert.Equal(t, "greeting", mod.Imports[0].Name)
	assert.Equal(t, "fmt.Stringer", mod.Imports[0].Interface)
}

func TestLoader_Errors(t *testing.T) {
	testCases := []struct {
		name    string
		content string
		wantErr string
	}{
		{name: "syntax error", content: `component "x" {`, wantErr: "failed to parse HCL file"},
		{name: "missing kind", content: `component "x" {}`, wantErr: "failed to decode HCL file"},
		{name: "unknown block", content: `widget "x" {}`, wantErr: "failed to decode HCL file"},
		{name: "nested block in arguments", content: `
component "x" {
  kind = "print"
  arguments {
    inner {}
  }
}`, wantErr: "in component 'x'"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			path := writeHCL(t, "broken.hcl", tc.content)
			_, err := NewLoader().Load(context.Background(), path)
			assert.ErrorContains(t, err, tc.wantErr)
		})
	}
}

func TestEvalContext(t *testing.T) {
	ctx := EvalContext("modules/users.hcl")
	module := ctx.Variables["module"]
	assert.Equal(t, cty.StringVal("modules/users.hcl"), module.GetAttr("location"))
	assert.Equal(t, cty.StringVal("users"), module.GetAttr("name"))
}
