package graph

import (
	"slices"
	"strings"
)

// VarSet is a set of variable identifiers. It is the universal currency of
// the package: adjacency, latent flags, observed sets and separator results
// are all VarSets. The zero value is not usable - use NewVarSet.
type VarSet map[string]struct{}

// NewVarSet creates a set containing the given variables.
func NewVarSet(vars ...string) VarSet {
	s := make(VarSet, len(vars))
	for _, v := range vars {
		s[v] = struct{}{}
	}
	return s
}

// Add inserts v into the set.
func (s VarSet) Add(v string) { s[v] = struct{}{} }

// Has reports whether v is a member of the set.
func (s VarSet) Has(v string) bool {
	_, ok := s[v]
	return ok
}

// Len returns the number of members.
func (s VarSet) Len() int { return len(s) }

// Clone returns an independent copy of the set.
func (s VarSet) Clone() VarSet {
	out := make(VarSet, len(s))
	for v := range s {
		out[v] = struct{}{}
	}
	return out
}

// Union returns a new set with the members of both sets.
func (s VarSet) Union(o VarSet) VarSet {
	out := s.Clone()
	for v := range o {
		out[v] = struct{}{}
	}
	return out
}

// Intersect returns a new set with the members present in both sets.
func (s VarSet) Intersect(o VarSet) VarSet {
	out := NewVarSet()
	for v := range s {
		if o.Has(v) {
			out[v] = struct{}{}
		}
	}
	return out
}

// Difference returns a new set with the members of s not present in o.
func (s VarSet) Difference(o VarSet) VarSet {
	out := NewVarSet()
	for v := range s {
		if !o.Has(v) {
			out[v] = struct{}{}
		}
	}
	return out
}

// Equal reports whether both sets have exactly the same members.
func (s VarSet) Equal(o VarSet) bool {
	if len(s) != len(o) {
		return false
	}
	for v := range s {
		if !o.Has(v) {
			return false
		}
	}
	return true
}

// SubsetOf reports whether every member of s is a member of o.
func (s VarSet) SubsetOf(o VarSet) bool {
	if len(s) > len(o) {
		return false
	}
	for v := range s {
		if !o.Has(v) {
			return false
		}
	}
	return true
}

// ProperSubsetOf reports whether s is a subset of o and strictly smaller.
func (s VarSet) ProperSubsetOf(o VarSet) bool {
	return len(s) < len(o) && s.SubsetOf(o)
}

// Disjoint reports whether the sets share no member.
func (s VarSet) Disjoint(o VarSet) bool {
	small, large := s, o
	if len(o) < len(s) {
		small, large = o, s
	}
	for v := range small {
		if large.Has(v) {
			return false
		}
	}
	return true
}

// Sorted returns the members in ascending order. Ordering matters only for
// deterministic output, never for algorithmic correctness.
func (s VarSet) Sorted() []string {
	out := make([]string, 0, len(s))
	for v := range s {
		out = append(out, v)
	}
	slices.Sort(out)
	return out
}

// String renders the set as a comma-separated sorted list.
func (s VarSet) String() string { return strings.Join(s.Sorted(), ", ") }
