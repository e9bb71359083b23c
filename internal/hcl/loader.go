package hcl

import (
	"context"
	"fmt"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/specialistvlad/modlink/internal/config"
	"github.com/specialistvlad/modlink/internal/ctxlog"
	"go.uber.org/zap"
)

// Extension is the file extension the loader handles.
const Extension = ".hcl"

// Loader is the HCL-specific implementation of the config.Loader interface.
type Loader struct{}

var _ config.Loader = (*Loader)(nil)

// NewLoader creates a new HCL declaration loader.
func NewLoader() *Loader {
	return &Loader{}
}

// Load parses each file into one module. Declarations keep the order they
// appear in within the file.
func (l *Loader) Load(ctx context.Context, paths ...string) (*config.Model, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("HCL loader started.", zap.Int("path_count", len(paths)))

	model := &config.Model{}
	parser := hclparse.NewParser()

	for _, file := range paths {
		hclFile, diags := parser.ParseHCLFile(file)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to parse HCL file %s: %w", file, diags)
		}

		var root fileRoot
		diags = gohcl.DecodeBody(hclFile.Body, nil, &root)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to decode HCL file %s: %w", file, diags)
		}

		mod, err := l.translateModule(file, &root)
		if err != nil {
			return nil, err
		}
		logger.Debug("Loaded module.",
			zap.String("location", file),
			zap.Int("components", len(mod.Components)),
			zap.Int("exports", len(mod.Exports)),
			zap.Int("imports", len(mod.Imports)))
		model.Modules = append(model.Modules, mod)
	}

	logger.Debug("HCL loading complete.", zap.Int("modules", len(model.Modules)))
	return model, nil
}
