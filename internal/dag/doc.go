// Package dag decides the order in which modules are initialized.
//
// A Sorter is built from the module locations and the registry's import and
// export maps. Sort peels locations from both ends of the dependency chain:
// first every location whose imports are already provided is pulled to the
// head, then every location whose exports nobody left still needs is pulled
// to the tail. Whatever cannot be peeled from either side is a cycle. It is
// either rejected, or returned in the middle of the order as the conflict
// group so the container can initialize it together.
//
// The package also renders the cross-location import graph as DOT for
// troubleshooting. The graph is diagnostic only and never affects the order.
package dag
