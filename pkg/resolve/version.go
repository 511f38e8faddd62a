package resolve

import (
	"fmt"
	"strings"

	goversion "github.com/hashicorp/go-version"
)

// VersionRange bounds acceptable versions from below and/or above. Each
// bound is independently inclusive or exclusive; a nil bound is unbounded
// on that side. The zero value accepts every version.
type VersionRange struct {
	Min          *goversion.Version
	Max          *goversion.Version
	MinInclusive bool
	MaxInclusive bool
}

// ParseRange parses interval notation as used in feed dependency metadata:
//
//	1.0          minimum 1.0, inclusive (shorthand)
//	[1.0]        exactly 1.0
//	[1.0, 2.0)   1.0 <= v < 2.0
//	(, 2.0]      v <= 2.0
//
// An empty string yields the unbounded range.
func ParseRange(s string) (VersionRange, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return VersionRange{}, nil
	}

	open := strings.HasPrefix(s, "[") || strings.HasPrefix(s, "(")
	closed := strings.HasSuffix(s, "]") || strings.HasSuffix(s, ")")
	if !open && !closed {
		// Bare version: minimum bound, inclusive.
		min, err := parseVersion(s)
		if err != nil {
			return VersionRange{}, err
		}
		return VersionRange{Min: min, MinInclusive: true}, nil
	}
	if !open || !closed {
		return VersionRange{}, fmt.Errorf("%w: unbalanced range %q", ErrInvalidVersion, s)
	}

	rng := VersionRange{
		MinInclusive: s[0] == '[',
		MaxInclusive: s[len(s)-1] == ']',
	}
	inner := s[1 : len(s)-1]

	parts := strings.Split(inner, ",")
	switch len(parts) {
	case 1:
		// [1.0] pins an exact version; exclusive brackets make it empty,
		// which is never intended.
		if !rng.MinInclusive || !rng.MaxInclusive {
			return VersionRange{}, fmt.Errorf("%w: exact range %q must use []", ErrInvalidVersion, s)
		}
		v, err := parseVersion(parts[0])
		if err != nil {
			return VersionRange{}, err
		}
		rng.Min, rng.Max = v, v
		return rng, nil
	case 2:
		if min := strings.TrimSpace(parts[0]); min != "" {
			v, err := parseVersion(min)
			if err != nil {
				return VersionRange{}, err
			}
			rng.Min = v
		}
		if max := strings.TrimSpace(parts[1]); max != "" {
			v, err := parseVersion(max)
			if err != nil {
				return VersionRange{}, err
			}
			rng.Max = v
		}
		return rng, nil
	default:
		return VersionRange{}, fmt.Errorf("%w: range %q", ErrInvalidVersion, s)
	}
}

// Contains reports whether v satisfies both bounds.
func (r VersionRange) Contains(v *goversion.Version) bool {
	if r.Min != nil {
		if r.MinInclusive {
			if v.LessThan(r.Min) {
				return false
			}
		} else if v.LessThanOrEqual(r.Min) {
			return false
		}
	}
	if r.Max != nil {
		if r.MaxInclusive {
			if v.GreaterThan(r.Max) {
				return false
			}
		} else if v.GreaterThanOrEqual(r.Max) {
			return false
		}
	}
	return true
}

// String renders the range in interval notation.
func (r VersionRange) String() string {
	if r.Min == nil && r.Max == nil {
		return "(, )"
	}
	if r.Min != nil && r.Max != nil && r.MinInclusive && r.MaxInclusive && r.Min.Equal(r.Max) {
		return "[" + r.Min.Original() + "]"
	}

	var b strings.Builder
	if r.MinInclusive {
		b.WriteByte('[')
	} else {
		b.WriteByte('(')
	}
	if r.Min != nil {
		b.WriteString(r.Min.Original())
	}
	b.WriteString(", ")
	if r.Max != nil {
		b.WriteString(r.Max.Original())
	}
	if r.MaxInclusive {
		b.WriteByte(']')
	} else {
		b.WriteByte(')')
	}
	return b.String()
}

func parseVersion(s string) (*goversion.Version, error) {
	v, err := goversion.NewVersion(strings.TrimSpace(s))
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidVersion, s)
	}
	return v, nil
}
