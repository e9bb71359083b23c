package config

import (
	"github.com/hashicorp/hcl/v2"
)

// Model is the unified, format-agnostic representation of every module
// declaration the application is assembled from.
type Model struct {
	Modules []*Module
}

// Locations returns the module locations in load order.
func (m *Model) Locations() []string {
	out := make([]string, 0, len(m.Modules))
	for _, mod := range m.Modules {
		out = append(out, mod.Location)
	}
	return out
}

// Module returns the module declared at location.
func (m *Model) Module(location string) (*Module, bool) {
	for _, mod := range m.Modules {
		if mod.Location == location {
			return mod, true
		}
	}
	return nil, false
}

// Module is one configuration unit. Location identifies it, usually the
// path of the file it was read from.
type Module struct {
	Location   string
	Components []*Component
	Exports    []*Export
	Imports    []*Import
}

// Component is the format-agnostic representation of a `component` block.
type Component struct {
	Name      string
	Kind      string
	Lazy      bool
	Arguments map[string]hcl.Expression
}

// Export publishes a component of the module as a named service.
type Export struct {
	// Ref is the component being exported.
	Ref string
	// Name is the service name. It defaults to Ref.
	Name string
	// Interface names the type the service is published as.
	Interface string
	// Root names the root container; empty means the default root.
	Root string
}

// ServiceName returns Name, or Ref when no name was given.
func (e *Export) ServiceName() string {
	if e.Name != "" {
		return e.Name
	}
	return e.Ref
}

// Import requires a service from some other module. Inside the module the
// service is reachable under Name.
type Import struct {
	Name      string
	Interface string
	Root      string
}
