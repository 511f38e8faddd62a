package resolve

import (
	"context"
	"fmt"

	goversion "github.com/hashicorp/go-version"
)

// Feed lists the candidate versions a feed knows for a package id.
type Feed interface {
	// Versions returns every candidate record for id, in feed order.
	// An unknown id yields an error wrapping [ErrNotFound].
	Versions(ctx context.Context, id string) ([]*Package, error)
}

// Resolver picks one concrete version for a package id under a constraint.
// The tie-break rule is uniform across all three operations: the highest
// version wins. Candidates whose version string does not parse are ignored.
type Resolver struct {
	feed       Feed
	prerelease bool
}

// NewResolver creates a Resolver over feed. When prerelease is false,
// Latest and InRange skip prerelease candidates; Exact never filters, since
// an explicitly requested version overrides the switch.
func NewResolver(feed Feed, prerelease bool) *Resolver {
	return &Resolver{feed: feed, prerelease: prerelease}
}

// Latest resolves the newest version of id. With prerelease excluded, only
// non-prerelease candidates flagged as latest release by the feed are
// considered.
func (r *Resolver) Latest(ctx context.Context, id string) (*Package, error) {
	candidates, err := r.feed.Versions(ctx, id)
	if err != nil {
		return nil, err
	}

	best := r.pick(candidates, func(c *Package, v *goversion.Version) bool {
		return r.prerelease || (!c.Prerelease && c.Latest)
	})
	if best == nil {
		return nil, fmt.Errorf("%w: no release of %s", ErrNotFound, id)
	}
	return best, nil
}

// Exact resolves the candidate whose version compares equal to raw.
func (r *Resolver) Exact(ctx context.Context, id, raw string) (*Package, error) {
	want, err := parseVersion(raw)
	if err != nil {
		return nil, err
	}

	candidates, err := r.feed.Versions(ctx, id)
	if err != nil {
		return nil, err
	}
	for _, c := range candidates {
		v, err := goversion.NewVersion(c.Version)
		if err != nil {
			continue
		}
		if v.Equal(want) {
			return c, nil
		}
	}
	return nil, fmt.Errorf("%w: %s %s", ErrNotFound, id, raw)
}

// InRange resolves the highest version of id satisfying rng.
func (r *Resolver) InRange(ctx context.Context, id string, rng VersionRange) (*Package, error) {
	candidates, err := r.feed.Versions(ctx, id)
	if err != nil {
		return nil, err
	}

	best := r.pick(candidates, func(c *Package, v *goversion.Version) bool {
		if !r.prerelease && c.Prerelease {
			return false
		}
		return rng.Contains(v)
	})
	if best == nil {
		return nil, fmt.Errorf("%w: no version of %s satisfies %s", ErrNotFound, id, rng)
	}
	return best, nil
}

// pick returns the highest-versioned candidate passing the filter.
func (r *Resolver) pick(candidates []*Package, keep func(*Package, *goversion.Version) bool) *Package {
	var best *Package
	var bestVer *goversion.Version
	for _, c := range candidates {
		v, err := goversion.NewVersion(c.Version)
		if err != nil {
			continue
		}
		if !keep(c, v) {
			continue
		}
		if best == nil || v.GreaterThan(bestVer) {
			best, bestVer = c, v
		}
	}
	return best
}
