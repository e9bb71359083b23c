package hcl

import (
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/specialistvlad/modlink/internal/config"
)

// translateModule converts the decoded file into the agnostic model.
func (l *Loader) translateModule(location string, root *fileRoot) (*config.Module, error) {
	mod := &config.Module{Location: location}

	for _, c := range root.Components {
		args, err := extractBodyAttributes(c.Arguments)
		if err != nil {
			return nil, fmt.Errorf("in component '%s' of %s: %w", c.Name, location, err)
		}
		mod.Components = append(mod.Components, &config.Component{
			Name:      c.Name,
			Kind:      c.Kind,
			Lazy:      c.Lazy,
			Arguments: args,
		})
	}
	for _, e := range root.Exports {
		mod.Exports = append(mod.Exports, &config.Export{
			Ref:       e.Ref,
			Name:      e.Name,
			Interface: e.Interface,
			Root:      e.Root,
		})
	}
	for _, i := range root.Imports {
		mod.Imports = append(mod.Imports, &config.Import{
			Name:      i.Name,
			Interface: i.Interface,
			Root:      i.Root,
		})
	}
	return mod, nil
}

// extractBodyAttributes converts an arguments block into a map of expressions.
func extractBodyAttributes(block *argumentsBlock) (map[string]hcl.Expression, error) {
	if block == nil || block.Body == nil {
		return nil, nil
	}
	attrs, diags := block.Body.JustAttributes()
	if diags.HasErrors() {
		return nil, diags
	}
	exprMap := make(map[string]hcl.Expression, len(attrs))
	for name, attr := range attrs {
		exprMap[name] = attr.Expr
	}
	return exprMap, nil
}
