package dag

import "github.com/specialistvlad/modlink/internal/ref"

// Location is one module as the sorter sees it: the names it imports and the
// names it exports that some other location imports.
type Location struct {
	Name    string
	imports []ref.Info
	exports []ref.Info
}

// ImportNames returns the distinct imported service names in insertion order.
func (l *Location) ImportNames() []string {
	return names(l.imports)
}

// ExportNames returns the distinct tracked export names in insertion order.
func (l *Location) ExportNames() []string {
	return names(l.exports)
}

func (l *Location) importsName(name string) bool {
	for _, info := range l.imports {
		if info.ServiceName == name {
			return true
		}
	}
	return false
}

func (l *Location) String() string {
	return l.Name
}

func names(infos []ref.Info) []string {
	seen := make(map[string]struct{}, len(infos))
	out := make([]string, 0, len(infos))
	for _, info := range infos {
		if _, ok := seen[info.ServiceName]; ok {
			continue
		}
		seen[info.ServiceName] = struct{}{}
		out = append(out, info.ServiceName)
	}
	return out
}

// containsAll reports whether every name is in the set.
func containsAll(set map[string]struct{}, names []string) bool {
	for _, n := range names {
		if _, ok := set[n]; !ok {
			return false
		}
	}
	return true
}
