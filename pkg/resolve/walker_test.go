package resolve

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
)

// graphFeed builds a fakeFeed where each package has exactly one candidate
// version, which keeps walker tests focused on traversal behavior.
func graphFeed(pkgs ...*Package) *fakeFeed {
	m := make(map[string][]*Package)
	for _, p := range pkgs {
		m[p.ID] = append(m[p.ID], p)
	}
	return &fakeFeed{packages: m}
}

func walkIDs(set *Set) []string {
	ids := make([]string, 0, set.Len())
	for _, p := range set.Packages() {
		ids = append(ids, p.ID)
	}
	return ids
}

func TestWalker_DepthFirstPreOrder(t *testing.T) {
	// root depends on a then d; a depends on b then c. Depth-first
	// pre-order discovery must be root, a, b, c, d.
	root := candidate("root", "1.0", deps(dep(t, "a", "1.0"), dep(t, "d", "1.0")))
	feed := graphFeed(
		candidate("a", "1.0", deps(dep(t, "b", "1.0"), dep(t, "c", "1.0"))),
		candidate("b", "1.0"),
		candidate("c", "1.0"),
		candidate("d", "1.0"),
	)

	var lines []string
	w := NewWalker(NewResolver(feed, false), Options{
		Logger: func(format string, args ...any) {
			lines = append(lines, fmt.Sprintf(format, args...))
		},
	})
	set, err := w.Walk(context.Background(), root)
	if err != nil {
		t.Fatalf("Walk: %v", err)
	}

	want := []string{"root", "a", "b", "c", "d"}
	got := walkIDs(set)
	if strings.Join(got, ",") != strings.Join(want, ",") {
		t.Errorf("discovery order = %v, want %v", got, want)
	}

	wantLines := []string{
		"root 1.0 -> a 1.0",
		"a 1.0 -> b 1.0",
		"a 1.0 -> c 1.0",
		"root 1.0 -> d 1.0",
	}
	if strings.Join(lines, "\n") != strings.Join(wantLines, "\n") {
		t.Errorf("edge progress:\n%s\nwant:\n%s", strings.Join(lines, "\n"), strings.Join(wantLines, "\n"))
	}
}

func TestWalker_CyclicGraphTerminates(t *testing.T) {
	root := candidate("a", "1.0", deps(dep(t, "b", "1.0")))
	feed := graphFeed(
		candidate("b", "1.0", deps(dep(t, "a", "1.0"))),
	)
	feed.packages["a"] = []*Package{root}

	set, err := NewWalker(NewResolver(feed, false), Options{}).Walk(context.Background(), root)
	if err != nil {
		t.Fatalf("Walk: %v", err)
	}

	if set.Len() != 2 {
		t.Fatalf("cycle a -> b -> a should yield exactly {a, b}, got %v", walkIDs(set))
	}
	if !set.Contains("a", "1.0") || !set.Contains("b", "1.0") {
		t.Errorf("missing members: %v", walkIDs(set))
	}
}

func TestWalker_SharedDependencyResolvedOnce(t *testing.T) {
	// Diamond: root -> {a, b}, both depend on common. common's own
	// dependencies must only be expanded once.
	root := candidate("root", "1.0", deps(dep(t, "a", "1.0"), dep(t, "b", "1.0")))
	feed := graphFeed(
		candidate("a", "1.0", deps(dep(t, "common", "1.0"))),
		candidate("b", "1.0", deps(dep(t, "common", "1.0"))),
		candidate("common", "1.0", deps(dep(t, "leaf", "1.0"))),
		candidate("leaf", "1.0"),
	)

	set, err := NewWalker(NewResolver(feed, false), Options{}).Walk(context.Background(), root)
	if err != nil {
		t.Fatalf("Walk: %v", err)
	}

	if set.Len() != 5 {
		t.Errorf("expected 5 packages, got %v", walkIDs(set))
	}
	leafQueries := 0
	for _, q := range feed.queries {
		if q == "leaf" {
			leafQueries++
		}
	}
	if leafQueries != 1 {
		t.Errorf("leaf should only be resolved once, got %d queries", leafQueries)
	}
}

func TestWalker_FrameworkFiltering(t *testing.T) {
	root := candidate("root", "1.0")
	root.Dependencies = []DependencySpec{
		{ID: "anyfw", Range: VersionRange{}},
		{ID: "net6", Range: VersionRange{}, Framework: "net6.0"},
		{ID: "net48", Range: VersionRange{}, Framework: "net48"},
	}
	feed := graphFeed(
		candidate("anyfw", "1.0"),
		candidate("net6", "1.0"),
		candidate("net48", "1.0"),
	)

	w := NewWalker(NewResolver(feed, false), Options{Frameworks: []string{"NET6.0"}})
	set, err := w.Walk(context.Background(), root)
	if err != nil {
		t.Fatalf("Walk: %v", err)
	}

	if set.Contains("net48", "1.0") {
		t.Error("net48-scoped dependency should be filtered out")
	}
	if !set.Contains("anyfw", "1.0") {
		t.Error("unscoped dependency always applies")
	}
	if !set.Contains("net6", "1.0") {
		t.Error("framework match is case-insensitive")
	}
}

func TestWalker_EmptyFrameworkSetAcceptsEverything(t *testing.T) {
	root := candidate("root", "1.0")
	root.Dependencies = []DependencySpec{
		{ID: "net6", Range: VersionRange{}, Framework: "net6.0"},
	}
	feed := graphFeed(candidate("net6", "1.0"))

	set, err := NewWalker(NewResolver(feed, false), Options{}).Walk(context.Background(), root)
	if err != nil {
		t.Fatalf("Walk: %v", err)
	}
	if !set.Contains("net6", "1.0") {
		t.Error("empty accepted set must accept every framework")
	}
}

func TestWalker_MissingDependencySkippedWithWarning(t *testing.T) {
	root := candidate("root", "1.0", deps(dep(t, "ghost", "[9.0]"), dep(t, "real", "1.0")))
	feed := graphFeed(candidate("real", "1.0"))

	var lines []string
	w := NewWalker(NewResolver(feed, false), Options{
		Logger: func(format string, args ...any) {
			lines = append(lines, fmt.Sprintf(format, args...))
		},
	})
	set, err := w.Walk(context.Background(), root)
	if err != nil {
		t.Fatalf("a missing dependency must not abort the walk: %v", err)
	}

	if set.Contains("ghost", "9.0") {
		t.Error("unresolved dependency must stay out of the set")
	}
	if !set.Contains("real", "1.0") {
		t.Error("siblings after a skipped dependency must still resolve")
	}

	warned := false
	for _, l := range lines {
		if strings.HasPrefix(l, "warning:") && strings.Contains(l, "ghost") {
			warned = true
		}
	}
	if !warned {
		t.Errorf("expected a warning line for ghost, got %v", lines)
	}
}

func TestWalker_CancellationLeavesPartialSet(t *testing.T) {
	// A long chain; cancel after the second edge resolves.
	root := candidate("p0", "1.0", deps(dep(t, "p1", "1.0")))
	feed := graphFeed(
		candidate("p1", "1.0", deps(dep(t, "p2", "1.0"))),
		candidate("p2", "1.0", deps(dep(t, "p3", "1.0"))),
		candidate("p3", "1.0", deps(dep(t, "p4", "1.0"))),
		candidate("p4", "1.0"),
	)

	ctx, cancel := context.WithCancel(context.Background())
	edges := 0
	w := NewWalker(NewResolver(feed, false), Options{
		OnEdge: func(from, to *Package) {
			edges++
			if edges == 2 {
				cancel()
			}
		},
	})

	set, err := w.Walk(ctx, root)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if set.Len() == 0 {
		t.Fatal("cancelled walk must return the partial set")
	}
	if set.Len() >= 5 {
		t.Errorf("expected a strict subset of the closure, got %v", walkIDs(set))
	}
}

func TestWalker_FeedFailureAborts(t *testing.T) {
	boom := errors.New("feed offline")
	root := candidate("root", "1.0", deps(dep(t, "down", "1.0")))

	_, err := NewWalker(NewResolver(&failingFeed{err: boom}, false), Options{}).Walk(context.Background(), root)
	if !errors.Is(err, boom) {
		t.Fatalf("non-NotFound resolver failures must abort the walk, got %v", err)
	}
}

type failingFeed struct{ err error }

func (f *failingFeed) Versions(ctx context.Context, id string) ([]*Package, error) {
	return nil, f.err
}
