package hcl

import (
	"path/filepath"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/zclconf/go-cty/cty"
)

// EvalContext returns the context component arguments of a module are
// evaluated in. It exposes `module.location` and `module.name`, the file
// name without its extension.
func EvalContext(location string) *hcl.EvalContext {
	base := filepath.Base(location)
	name := strings.TrimSuffix(base, filepath.Ext(base))

	return &hcl.EvalContext{
		Variables: map[string]cty.Value{
			"module": cty.ObjectVal(map[string]cty.Value{
				"location": cty.StringVal(location),
				"name":     cty.StringVal(name),
			}),
		},
	}
}
