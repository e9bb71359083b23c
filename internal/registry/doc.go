// Package registry provides the bookkeeping for cross-module service
// contracts.
//
// While declarations are discovered, every export and import a module states
// is recorded here as a ref.Info. Exports are unique per service name; imports
// are kept as an insertion-ordered list per name because many modules may
// consume the same service.
//
// Once discovery is over the registry is frozen and only read: the validation
// passes (unsatisfied imports, unused exports, incompatible import types) and
// the dependency sorter work from the same two maps. The registry reports what
// it finds but never decides what to do about it; that policy belongs to the
// caller.
package registry
