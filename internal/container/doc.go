// Package container is the reference module container.
//
// Each module gets a Container holding its component definitions. Components
// are singletons created on first Get (or eagerly by Instantiate), and
// imported services are reachable under their import name through an
// ImportBinding. A single Root holds the export bindings every module
// publishes, keyed by binding.ExportID.
package container
