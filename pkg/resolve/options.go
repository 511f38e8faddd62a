package resolve

import "strings"

// Options configures a dependency walk.
type Options struct {
	// Frameworks is the accepted target-framework set. Empty accepts every
	// framework. Comparison is case-insensitive.
	Frameworks []string

	// Logger receives human-readable progress lines, one per resolution
	// event. Optional.
	Logger func(format string, args ...any)

	// OnEdge is called for each resolved dependency edge, including edges
	// into packages already in the set. Optional; used for graph export.
	OnEdge func(from, to *Package)
}

// WithDefaults returns a copy of o with nil callbacks replaced by no-ops.
func (o Options) WithDefaults() Options {
	opts := o
	if opts.Logger == nil {
		opts.Logger = func(string, ...any) {}
	}
	if opts.OnEdge == nil {
		opts.OnEdge = func(*Package, *Package) {}
	}
	return opts
}

// accepts reports whether a dependency spec scoped to framework applies
// under the accepted set. An unscoped spec always applies.
func (o Options) accepts(framework string) bool {
	if framework == "" || len(o.Frameworks) == 0 {
		return true
	}
	for _, fw := range o.Frameworks {
		if strings.EqualFold(fw, framework) {
			return true
		}
	}
	return false
}
