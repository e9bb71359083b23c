package dag

import (
	"fmt"
	"sort"
)

// NewGraph creates and returns an initialized, empty Graph.
func NewGraph() *Graph {
	return &Graph{
		nodes: make(map[string]*node),
	}
}

// AddNode adds a new node with the given ID to the graph. If a node with
// the same ID already exists, the function does nothing.
func (g *Graph) AddNode(id string) {
	g.mutex.Lock()
	defer g.mutex.Unlock()

	if _, ok := g.nodes[id]; ok {
		return
	}

	g.nodes[id] = &node{
		id:         id,
		deps:       make(map[string][]string),
		dependents: make(map[string]struct{}),
	}
	g.order = append(g.order, id)
}

// AddEdge records that `fromID` imports `service` from `toID`. Repeated
// calls for the same pair accumulate service names on one edge. An error is
// returned if either node does not exist or if the edge would create a
// self-reference.
func (g *Graph) AddEdge(fromID, toID, service string) error {
	if fromID == toID {
		return fmt.Errorf("self-referential edge not allowed: %s -> %s", fromID, fromID)
	}

	g.mutex.Lock()
	defer g.mutex.Unlock()

	fromNode, ok := g.nodes[fromID]
	if !ok {
		return fmt.Errorf("source node not found: %s", fromID)
	}

	toNode, ok := g.nodes[toID]
	if !ok {
		return fmt.Errorf("destination node not found: %s", toID)
	}

	if _, linked := fromNode.deps[toID]; !linked {
		fromNode.depOrder = append(fromNode.depOrder, toID)
	}
	for _, existing := range fromNode.deps[toID] {
		if existing == service {
			return nil
		}
	}
	fromNode.deps[toID] = append(fromNode.deps[toID], service)
	toNode.dependents[fromID] = struct{}{}

	return nil
}

// Nodes returns all node IDs in insertion order.
func (g *Graph) Nodes() []string {
	g.mutex.RLock()
	defer g.mutex.RUnlock()

	return append([]string(nil), g.order...)
}

// Edges returns every edge, grouped by source in node insertion order and
// by target in linking order.
func (g *Graph) Edges() []Edge {
	g.mutex.RLock()
	defer g.mutex.RUnlock()

	var edges []Edge
	for _, id := range g.order {
		n := g.nodes[id]
		for _, to := range n.depOrder {
			edges = append(edges, Edge{
				From:     id,
				To:       to,
				Services: append([]string(nil), n.deps[to]...),
			})
		}
	}
	return edges
}

// Dependencies returns the locations the given location imports from.
func (g *Graph) Dependencies(id string) ([]string, error) {
	g.mutex.RLock()
	defer g.mutex.RUnlock()

	n, ok := g.nodes[id]
	if !ok {
		return nil, fmt.Errorf("node not found: %s", id)
	}

	return append([]string(nil), n.depOrder...), nil
}

// Dependents returns the locations that import from the given location,
// sorted.
func (g *Graph) Dependents(id string) ([]string, error) {
	g.mutex.RLock()
	defer g.mutex.RUnlock()

	n, ok := g.nodes[id]
	if !ok {
		return nil, fmt.Errorf("node not found: %s", id)
	}

	dependents := make([]string, 0, len(n.dependents))
	for depID := range n.dependents {
		dependents = append(dependents, depID)
	}
	sort.Strings(dependents)
	return dependents, nil
}
