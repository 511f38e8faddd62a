package resolve

import (
	"context"
	"errors"
)

// Walker expands a resolved root package into the full closure of required
// packages. The traversal is depth-first and pre-order: each dependency's
// subtree is fully explored before its next sibling, in declared order, so
// discovery order is a pure function of the feed's responses.
type Walker struct {
	resolver *Resolver
	opts     Options
}

// NewWalker creates a Walker using resolver for every dependency edge.
func NewWalker(resolver *Resolver, opts Options) *Walker {
	return &Walker{resolver: resolver, opts: opts.WithDefaults()}
}

// frame tracks one package mid-traversal: which of its accepted dependency
// specs have been processed so far.
type frame struct {
	pkg  *Package
	deps []DependencySpec
	next int
}

// Walk builds the dependency closure of root. The returned Set always
// contains root and grows in discovery order.
//
// The walk maintains an explicit frame stack rather than recursing, so
// depth is bounded by the number of distinct packages, not the call stack.
// It only descends into (id, version) pairs not yet in the Set, which both
// suppresses duplicates and breaks cycles.
//
// An unresolvable dependency edge is reported through the progress sink and
// skipped together with its subtree; any other resolver failure aborts the
// walk. On context cancellation the partially populated Set is returned
// alongside the context error.
func (w *Walker) Walk(ctx context.Context, root *Package) (*Set, error) {
	set := NewSet()
	set.Add(root)

	stack := []frame{{pkg: root, deps: w.accepted(root)}}
	for len(stack) > 0 {
		top := &stack[len(stack)-1]
		if top.next >= len(top.deps) {
			stack = stack[:len(stack)-1]
			continue
		}

		if err := ctx.Err(); err != nil {
			return set, err
		}

		spec := top.deps[top.next]
		top.next++
		parent := top.pkg

		child, err := w.resolver.InRange(ctx, spec.ID, spec.Range)
		if err != nil {
			if errors.Is(err, ErrNotFound) {
				w.opts.Logger("warning: %s requires %s %s: no matching version, skipping", parent.FullName(), spec.ID, spec.Range)
				continue
			}
			return set, err
		}

		w.opts.Logger("%s -> %s", parent.FullName(), child.FullName())
		w.opts.OnEdge(parent, child)

		if set.Add(child) {
			stack = append(stack, frame{pkg: child, deps: w.accepted(child)})
		}
	}
	return set, nil
}

// accepted returns pkg's dependency specs filtered to the accepted
// framework set, preserving declared order.
func (w *Walker) accepted(pkg *Package) []DependencySpec {
	deps := make([]DependencySpec, 0, len(pkg.Dependencies))
	for _, spec := range pkg.Dependencies {
		if w.opts.accepts(spec.Framework) {
			deps = append(deps, spec)
		}
	}
	return deps
}
