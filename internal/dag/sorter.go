// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// This file implements the Sorter, which computes the initialization order
// of modules from their cross-module imports and exports.
//
// The order is built from both ends. The head pass repeatedly takes the
// first remaining location whose imports are all exported by locations
// already taken, and restarts its scan after each take. The tail pass then
// scans the remainder in reverse and takes any location whose tracked
// exports are all "annihilated" (no remaining location imports them). When a
// location is taken from the tail, each of its imports becomes annihilated
// once no other remaining location imports that name.
//
// Locations left over after both passes form the conflict group. They sit in
// the middle of the final order, between the head and the tail.
package dag

import (
	"context"
	"sort"

	"github.com/specialistvlad/modlink/internal/ctxlog"
	"github.com/specialistvlad/modlink/internal/ref"
	"go.uber.org/zap"
)

// Sorter orders module locations for initialization.
type Sorter struct {
	locations      []*Location
	exports        map[string]ref.Info
	prohibitCycles bool
	conflictGroup  []string
}

// Option configures a Sorter.
type Option func(*Sorter)

// WithProhibitCycles controls whether Sort fails on a cycle (the default) or
// returns an order with the cycle isolated in the conflict group.
func WithProhibitCycles(prohibit bool) Option {
	return func(s *Sorter) {
		s.prohibitCycles = prohibit
	}
}

// NewSorter builds a Sorter for the given locations. Imports and exports are
// partitioned by the location that declared them. An export is only tracked
// when some location imports its name, since an export nobody consumes can
// never hold anything back.
func NewSorter(locations []string, imports map[string][]ref.Info, exports map[string]ref.Info, opts ...Option) (*Sorter, error) {
	s := &Sorter{
		exports:        exports,
		prohibitCycles: true,
		conflictGroup:  []string{},
	}
	for _, opt := range opts {
		opt(s)
	}

	byName := make(map[string]*Location, len(locations))
	for _, name := range locations {
		if _, dup := byName[name]; dup {
			continue
		}
		loc := &Location{Name: name}
		byName[name] = loc
		s.locations = append(s.locations, loc)
	}

	imported := make(map[string]struct{}, len(imports))
	for _, serviceName := range sortedKeys(imports) {
		for _, info := range imports[serviceName] {
			loc, ok := byName[info.Location]
			if !ok {
				return nil, &UnknownLocationError{ServiceName: info.ServiceName, Location: info.Location}
			}
			loc.imports = append(loc.imports, info)
			imported[info.ServiceName] = struct{}{}
		}
	}

	for _, serviceName := range sortedKeys(exports) {
		info := exports[serviceName]
		loc, ok := byName[info.Location]
		if !ok {
			return nil, &UnknownLocationError{ServiceName: info.ServiceName, Location: info.Location}
		}
		if _, ok := imported[serviceName]; ok {
			loc.exports = append(loc.exports, info)
		}
	}

	return s, nil
}

// Sort returns the location names in initialization order. Each call works
// on a fresh pool, so repeated calls are independent and give the same
// result.
func (s *Sorter) Sort(ctx context.Context) ([]string, error) {
	logger := ctxlog.FromContext(ctx)

	pool := append([]*Location(nil), s.locations...)
	s.conflictGroup = []string{}

	head, pool := pullHead(pool)
	if len(pool) == 0 {
		return locationNames(head), nil
	}

	tail, pool := pullTail(pool)

	conflict := locationNames(pool)
	if len(conflict) > 0 {
		if s.prohibitCycles {
			return nil, &CyclicDependencyError{Locations: conflict}
		}
		logger.Warn("Cyclic dependencies found in modules.", zap.Strings("locations", conflict))
	}
	s.conflictGroup = conflict

	order := make([]string, 0, len(head)+len(pool)+len(tail))
	order = append(order, locationNames(head)...)
	order = append(order, conflict...)
	order = append(order, locationNames(tail)...)
	return order, nil
}

// ConflictGroup returns the locations the last Sort left in a cycle. It is
// empty before any sort and when there was no cycle.
func (s *Sorter) ConflictGroup() []string {
	return append([]string{}, s.conflictGroup...)
}

// Locations returns the locations in the order they were given.
func (s *Sorter) Locations() []*Location {
	return append([]*Location(nil), s.locations...)
}

// ImportGraph builds the cross-location import graph. Imports of names with
// no exporter are skipped, as are imports a location satisfies itself.
func (s *Sorter) ImportGraph() *Graph {
	g := NewGraph()
	for _, loc := range s.locations {
		g.AddNode(loc.Name)
	}
	for _, loc := range s.locations {
		for _, info := range loc.imports {
			export, ok := s.exports[info.ServiceName]
			if !ok || export.Location == loc.Name {
				continue
			}
			// Both ends were registered above, so AddEdge cannot fail.
			_ = g.AddEdge(loc.Name, export.Location, info.ServiceName)
		}
	}
	return g
}

func pullHead(pool []*Location) ([]*Location, []*Location) {
	resolved := make(map[string]struct{})
	var head []*Location

	for i := 0; i < len(pool); {
		loc := pool[i]
		if !containsAll(resolved, loc.ImportNames()) {
			i++
			continue
		}
		for _, name := range loc.ExportNames() {
			resolved[name] = struct{}{}
		}
		head = append(head, loc)
		pool = remove(pool, i)
		i = 0
	}
	return head, pool
}

func pullTail(pool []*Location) ([]*Location, []*Location) {
	annihilated := make(map[string]struct{})
	var tail []*Location

	for i := len(pool) - 1; i >= 0; {
		loc := pool[i]
		if !containsAll(annihilated, loc.ExportNames()) {
			i--
			continue
		}
		pool = remove(pool, i)
		tail = append([]*Location{loc}, tail...)

		for _, name := range loc.ImportNames() {
			if !importedBy(pool, name) {
				annihilated[name] = struct{}{}
			}
		}
		i = len(pool) - 1
	}
	return tail, pool
}

func importedBy(pool []*Location, name string) bool {
	for _, loc := range pool {
		if loc.importsName(name) {
			return true
		}
	}
	return false
}

func remove(pool []*Location, i int) []*Location {
	out := make([]*Location, 0, len(pool)-1)
	out = append(out, pool[:i]...)
	return append(out, pool[i+1:]...)
}

func locationNames(locs []*Location) []string {
	out := make([]string, 0, len(locs))
	for _, loc := range locs {
		out = append(out, loc.Name)
	}
	return out
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
