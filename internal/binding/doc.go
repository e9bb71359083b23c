// Package binding provides the lazy indirections that connect modules.
//
// An ExportBinding stands for a component a module publishes; an
// ImportBinding stands for a service a module consumes and resolves through
// the ExportBinding registered on the root container. Neither touches its
// target until Get is first called, so a module can hold an import before
// the exporting module has finished initializing.
//
// Resolution publishes into a write-once cell with an atomic
// compare-and-swap. Concurrent first callers may each look the target up,
// but only one result is kept and every caller gets that one. A failed
// resolution never writes the cell, so a later call can try again.
package binding
