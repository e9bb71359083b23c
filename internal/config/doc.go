// Package config defines the format-agnostic declaration model for the
// application, along with the Loader interface for reading declarations from
// various sources.
//
// The `config.Model` is the single source of truth for the registry and the
// container assembly. Concrete implementations of the Loader, such as for
// HCL and YAML, are provided in separate packages.
package config
