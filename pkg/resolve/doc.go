// Package resolve selects concrete package versions against a remote feed
// and expands a root package into its full transitive dependency closure.
//
// # Overview
//
// [Resolver] answers "which version of package X?" for the three constraint
// shapes a feed query can take: latest, exact, and range. [Walker] drives a
// depth-first, pre-order traversal over dependency specs, resolving each
// edge with the Resolver and accumulating the result in a [Set] that is
// unique by (id, version). Because the walk only descends into packages not
// already in the Set, it terminates on cyclic dependency graphs.
//
// Cancellation is cooperative: the context is consulted before each
// dependency edge, never mid-request. A cancelled walk returns the
// partially populated Set together with the context error.
//
// # Example
//
//	resolver := resolve.NewResolver(feedClient, false)
//	root, err := resolver.Latest(ctx, "newtonsoft.json")
//	// ...
//	walker := resolve.NewWalker(resolver, resolve.Options{
//		Frameworks: []string{"net6.0"},
//		Logger:     log.Printf,
//	})
//	set, err := walker.Walk(ctx, root)
package resolve
