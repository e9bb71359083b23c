package config

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
)

// Loader is the interface for a format-specific declaration loader.
type Loader interface {
	// Load reads the given files and translates them into the
	// format-agnostic model, one module per file.
	Load(ctx context.Context, paths ...string) (*Model, error)
}

// MultiLoader dispatches files to a Loader by extension and merges the
// results, keeping the order of the given paths.
type MultiLoader struct {
	loaders map[string]Loader
}

// NewMultiLoader creates an empty MultiLoader.
func NewMultiLoader() *MultiLoader {
	return &MultiLoader{loaders: make(map[string]Loader)}
}

// Register assigns a loader to one or more file extensions, e.g. ".hcl".
func (m *MultiLoader) Register(l Loader, exts ...string) {
	for _, ext := range exts {
		m.loaders[strings.ToLower(ext)] = l
	}
}

// Extensions returns the registered extensions.
func (m *MultiLoader) Extensions() []string {
	out := make([]string, 0, len(m.loaders))
	for ext := range m.loaders {
		out = append(out, ext)
	}
	return out
}

// Load implements Loader.
func (m *MultiLoader) Load(ctx context.Context, paths ...string) (*Model, error) {
	model := &Model{}
	for _, path := range paths {
		ext := strings.ToLower(filepath.Ext(path))
		l, ok := m.loaders[ext]
		if !ok {
			return nil, fmt.Errorf("no loader registered for file %s", path)
		}
		part, err := l.Load(ctx, path)
		if err != nil {
			return nil, err
		}
		model.Modules = append(model.Modules, part.Modules...)
	}
	return model, nil
}

// Exclude drops the paths that match any of the glob patterns. A pattern is
// matched against the full path and against the base name.
func Exclude(paths []string, patterns []string) ([]string, error) {
	if len(patterns) == 0 {
		return paths, nil
	}
	out := make([]string, 0, len(paths))
	for _, path := range paths {
		excluded := false
		for _, pattern := range patterns {
			full, err := filepath.Match(pattern, path)
			if err != nil {
				return nil, fmt.Errorf("invalid exclude pattern '%s': %w", pattern, err)
			}
			base, _ := filepath.Match(pattern, filepath.Base(path))
			if full || base {
				excluded = true
				break
			}
		}
		if !excluded {
			out = append(out, path)
		}
	}
	return out, nil
}
