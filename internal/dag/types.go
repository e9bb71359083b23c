package dag

import "sync"

// Graph is the cross-location import graph: an edge goes from an importing
// location to the location that exports the service, labelled with every
// service name crossing it. All operations on the graph are concurrency-safe.
type Graph struct {
	// mutex protects the nodes map during concurrent access.
	mutex sync.RWMutex
	// nodes stores all nodes in the graph, keyed by location.
	nodes map[string]*node
	// order keeps node insertion order for deterministic output.
	order []string
}

// node represents a single location in the graph. It is un-exported to
// enforce interaction with the graph via the public API (using string IDs),
// not by direct struct manipulation.
type node struct {
	// id is the location identifier.
	id string
	// deps holds the locations this one imports from, with the service
	// names per target in the order they were added.
	deps map[string][]string
	// depOrder keeps the order in which targets were first linked.
	depOrder []string
	// dependents holds the set of locations that import from this one.
	dependents map[string]struct{}
}

// Edge is one labelled edge of the import graph.
type Edge struct {
	From     string
	To       string
	Services []string
}
