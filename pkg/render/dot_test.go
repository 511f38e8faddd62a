package render

import (
	"strings"
	"testing"

	"github.com/nupull/nupull/pkg/resolve"
)

func TestToDOT(t *testing.T) {
	set := resolve.NewSet()
	set.Add(&resolve.Package{ID: "root", Version: "1.0"})
	set.Add(&resolve.Package{ID: "leaf", Version: "2.1"})

	edges := []Edge{
		{From: "root 1.0", To: "leaf 2.1"},
		{From: "root 1.0", To: "leaf 2.1"}, // duplicate must collapse
	}

	dot := ToDOT(set, edges)

	if !strings.HasPrefix(dot, "digraph packages {") {
		t.Errorf("unexpected header: %s", dot)
	}
	// %q escapes the newline in the label, so the DOT text contains a
	// literal backslash-n (matched here with a raw string).
	if !strings.Contains(dot, `"root 1.0" [label="root\n1.0"];`) {
		t.Errorf("missing root node:\n%s", dot)
	}
	if got := strings.Count(dot, `"root 1.0" -> "leaf 2.1";`); got != 1 {
		t.Errorf("expected exactly 1 edge line, got %d:\n%s", got, dot)
	}
}
