package resolve

import (
	"fmt"
	"strings"
)

// Package is one concrete version of a package as reported by the feed.
// It carries every field the rest of the pipeline needs, including the
// download URL, so no further feed lookups or type discrimination are
// required once a Package is in hand. Immutable after construction.
type Package struct {
	ID          string
	Version     string
	Title       string
	Prerelease  bool
	Latest      bool // flagged "latest release" by the feed
	DownloadURL string

	// Dependencies lists the package's dependency specs in the order the
	// feed declared them. Specs scoped to a framework outside the accepted
	// set are filtered out during the walk, not here.
	Dependencies []DependencySpec
}

// FullName returns the "id version" display form, e.g. "serilog 3.1.1".
func (p *Package) FullName() string {
	return p.ID + " " + p.Version
}

// ArchiveName returns the deterministic archive file name for the package.
func (p *Package) ArchiveName() string {
	return fmt.Sprintf("%s.%s.nupkg", p.ID, p.Version)
}

// DependencySpec names a child package together with the version range it
// must satisfy. Framework scopes the spec to one target framework; empty
// means the spec applies everywhere.
type DependencySpec struct {
	ID        string
	Range     VersionRange
	Framework string
}

// Set accumulates resolved packages in discovery order, unique by
// (id, version) with case-insensitive ids. It is owned by a single walk and
// is not safe for concurrent use; each walk builds its own.
type Set struct {
	order []*Package
	seen  map[setKey]struct{}
}

type setKey struct {
	id, version string
}

// NewSet creates an empty Set.
func NewSet() *Set {
	return &Set{seen: make(map[setKey]struct{})}
}

// Add appends p unless its (id, version) is already present.
// Reports whether p was added.
func (s *Set) Add(p *Package) bool {
	k := keyOf(p.ID, p.Version)
	if _, dup := s.seen[k]; dup {
		return false
	}
	s.seen[k] = struct{}{}
	s.order = append(s.order, p)
	return true
}

// Contains reports whether (id, version) is already in the set.
func (s *Set) Contains(id, version string) bool {
	_, ok := s.seen[keyOf(id, version)]
	return ok
}

// Packages returns the resolved packages in discovery order.
// The returned slice is shared; callers must not modify it.
func (s *Set) Packages() []*Package { return s.order }

// Len returns the number of resolved packages.
func (s *Set) Len() int { return len(s.order) }

func keyOf(id, version string) setKey {
	return setKey{id: strings.ToLower(id), version: version}
}
