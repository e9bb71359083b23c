package yaml

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/hashicorp/hcl/v2"
	"github.com/specialistvlad/modlink/internal/config"
	"github.com/specialistvlad/modlink/internal/ctxlog"
	ctyjson "github.com/zclconf/go-cty/cty/json"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// Extensions are the file extensions the loader handles.
var Extensions = []string{".yaml", ".yml"}

type fileRoot struct {
	Components []componentDecl `yaml:"components"`
	Exports    []exportDecl    `yaml:"exports"`
	Imports    []importDecl    `yaml:"imports"`
}

type componentDecl struct {
	Name      string         `yaml:"name"`
	Kind      string         `yaml:"kind"`
	Lazy      bool           `yaml:"lazy"`
	Arguments map[string]any `yaml:"arguments"`
}

type exportDecl struct {
	Ref       string `yaml:"ref"`
	Interface string `yaml:"interface"`
	Name      string `yaml:"name"`
	Root      string `yaml:"root"`
}

type importDecl struct {
	Name      string `yaml:"name"`
	Interface string `yaml:"interface"`
	Root      string `yaml:"root"`
}

// Loader is the YAML implementation of the config.Loader interface.
type Loader struct{}

var _ config.Loader = (*Loader)(nil)

// NewLoader creates a new YAML declaration loader.
func NewLoader() *Loader {
	return &Loader{}
}

// Load parses each file into one module.
func (l *Loader) Load(ctx context.Context, paths ...string) (*config.Model, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("YAML loader started.", zap.Int("path_count", len(paths)))

	model := &config.Model{}
	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read YAML file %s: %w", path, err)
		}
		mod, err := parse(path, data)
		if err != nil {
			return nil, err
		}
		model.Modules = append(model.Modules, mod)
	}

	logger.Debug("YAML loading complete.", zap.Int("modules", len(model.Modules)))
	return model, nil
}

func parse(location string, data []byte) (*config.Module, error) {
	var root fileRoot
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&root); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to decode YAML file %s: %w", location, err)
	}

	mod := &config.Module{Location: location}
	for i, c := range root.Components {
		if c.Name == "" || c.Kind == "" {
			return nil, fmt.Errorf("component %d in %s: name and kind are required", i, location)
		}
		args, err := staticArguments(location, c.Arguments)
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
	for i, e := range root.Exports {
		if e.Ref == "" || e.Interface == "" {
			return nil, fmt.Errorf("export %d in %s: ref and interface are required", i, location)
		}
		mod.Exports = append(mod.Exports, &config.Export{
			Ref:       e.Ref,
			Name:      e.Name,
			Interface: e.Interface,
			Root:      e.Root,
		})
	}
	for i, imp := range root.Imports {
		if imp.Name == "" || imp.Interface == "" {
			return nil, fmt.Errorf("import %d in %s: name and interface are required", i, location)
		}
		mod.Imports = append(mod.Imports, &config.Import{
			Name:      imp.Name,
			Interface: imp.Interface,
			Root:      imp.Root,
		})
	}
	return mod, nil
}

// staticArguments turns each YAML value into a static expression over the
// cty value implied by its JSON form.
func staticArguments(location string, args map[string]any) (map[string]hcl.Expression, error) {
	if len(args) == 0 {
		return nil, nil
	}
	out := make(map[string]hcl.Expression, len(args))
	for name, raw := range args {
		data, err := json.Marshal(raw)
		if err != nil {
			return nil, fmt.Errorf("argument '%s': %w", name, err)
		}
		ty, err := ctyjson.ImpliedType(data)
		if err != nil {
			return nil, fmt.Errorf("argument '%s': %w", name, err)
		}
		val, err := ctyjson.Unmarshal(data, ty)
		if err != nil {
			return nil, fmt.Errorf("argument '%s': %w", name, err)
		}
		out[name] = hcl.StaticExpr(val, hcl.Range{Filename: location})
	}
	return out, nil
}
