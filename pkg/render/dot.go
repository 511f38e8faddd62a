// Package render exports a resolved dependency closure as Graphviz output.
package render

import (
	"bytes"
	"context"
	"fmt"

	"github.com/goccy/go-graphviz"

	"github.com/nupull/nupull/pkg/resolve"
)

// Edge is one resolved dependency relation between two packages in the
// closure, identified by their (id, version) display names.
type Edge struct {
	From string
	To   string
}

// ToDOT converts a resolved set and its edges to Graphviz DOT format.
// Nodes are labelled "id\nversion"; duplicate edges (a shared dependency
// reached from several parents resolves the same relation twice) are
// emitted once.
func ToDOT(set *resolve.Set, edges []Edge) string {
	var buf bytes.Buffer
	buf.WriteString("digraph packages {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white];\n")
	buf.WriteString("\n")

	for _, p := range set.Packages() {
		fmt.Fprintf(&buf, "  %q [label=%q];\n", p.FullName(), p.ID+"\n"+p.Version)
	}

	buf.WriteString("\n")
	seen := make(map[Edge]struct{}, len(edges))
	for _, e := range edges {
		if _, dup := seen[e]; dup {
			continue
		}
		seen[e] = struct{}{}
		fmt.Fprintf(&buf, "  %q -> %q;\n", e.From, e.To)
	}

	buf.WriteString("}\n")
	return buf.String()
}

// Render renders a DOT graph to the given format using Graphviz.
func Render(ctx context.Context, dot string, format graphviz.Format) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, format, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return buf.Bytes(), nil
}

// RenderSVG renders a DOT graph to SVG.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	return Render(ctx, dot, graphviz.SVG)
}

// RenderPNG renders a DOT graph to PNG.
func RenderPNG(ctx context.Context, dot string) ([]byte, error) {
	return Render(ctx, dot, graphviz.PNG)
}
