package dag

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/specialistvlad/modlink/internal/ctxlog"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// WriteDOT renders the graph in Graphviz DOT format. Locations are shortened
// to their path relative to the directory all of them share, and each edge
// is labelled with the service names that cross it.
func (g *Graph) WriteDOT(w io.Writer) error {
	short := shortener(g.Nodes())
	if _, err := fmt.Fprintln(w, "digraph G {"); err != nil {
		return err
	}
	for _, e := range g.Edges() {
		if _, err := fmt.Fprintf(w, "  %q -> %q [label = %q];\n",
			short(e.From), short(e.To), strings.Join(e.Services, "\n")); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(w, "}")
	return err
}

// shortener returns a func that strips the longest directory shared by all
// locations. A location it cannot be made relative to is kept as is.
func shortener(locations []string) func(string) string {
	if len(locations) == 0 {
		return func(loc string) string { return loc }
	}

	common := filepath.Dir(locations[0])
	for _, loc := range locations[1:] {
		dir := filepath.Dir(loc)
		for !within(dir, common) {
			parent := filepath.Dir(common)
			if parent == common {
				break
			}
			common = parent
		}
	}

	return func(loc string) string {
		rel, err := filepath.Rel(common, loc)
		if err != nil || !within(loc, common) {
			return loc
		}
		return filepath.ToSlash(rel)
	}
}

func within(dir, base string) bool {
	rel, err := filepath.Rel(base, dir)
	return err == nil && rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}

// String returns the DOT rendering of the graph.
func (g *Graph) String() string {
	var b strings.Builder
	_ = g.WriteDOT(&b)
	return b.String()
}

// LogGraph writes the import graph to the debug log when debug logging is
// enabled. It has no effect on sorting.
func (s *Sorter) LogGraph(ctx context.Context) {
	logger := ctxlog.FromContext(ctx).Named("dependencies.graph")
	if !logger.Core().Enabled(zapcore.DebugLevel) {
		return
	}
	logger.Debug("Module import graph.", zap.String("dot", s.ImportGraph().String()))
}
