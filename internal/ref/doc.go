// Package ref holds the service reference value shared by the registry, the
// dependency sorter and the app, together with the type-compatibility check
// used to decide whether an exporter's declared interface satisfies what an
// importer expects.
package ref
