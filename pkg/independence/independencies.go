// Package independence models conditional independence assertions and the
// semi-graphoid reasoning over them: closure under the symmetry,
// decomposition, weak union and contraction axioms, reduction to a
// non-redundant core, and entailment between assertion collections.
package independence

import (
	"strings"

	"github.com/caugraph/caugraph/pkg/graph"
)

// Independencies is an ordered collection of assertions. Insertion order is
// preserved and duplicates are allowed; Reduce produces a deduplicated,
// non-redundant collection, and equality ignores both order and duplicates.
type Independencies struct {
	assertions []*Assertion
}

// New creates a collection holding the given assertions.
func New(assertions ...*Assertion) *Independencies {
	ind := &Independencies{}
	ind.Add(assertions...)
	return ind
}

// Add appends assertions in order.
func (ind *Independencies) Add(assertions ...*Assertion) {
	ind.assertions = append(ind.assertions, assertions...)
}

// AddFromLists appends one assertion per (event1, event2, event3) triple.
// The third list of each triple may be nil. Unlike Add, triples equal to an
// already stored assertion are skipped.
func (ind *Independencies) AddFromLists(triples ...[3][]string) error {
	for _, t := range triples {
		a, err := NewAssertion(t[0], t[1], t[2])
		if err != nil {
			return err
		}
		if ind.Contains(a) {
			continue
		}
		ind.assertions = append(ind.assertions, a)
	}
	return nil
}

// Assertions returns the assertions in insertion order. The slice is shared
// with the receiver and must not be modified.
func (ind *Independencies) Assertions() []*Assertion { return ind.assertions }

// Len returns the number of stored assertions, duplicates included.
func (ind *Independencies) Len() int { return len(ind.assertions) }

// AllVariables returns the union of all events across all assertions.
func (ind *Independencies) AllVariables() graph.VarSet {
	all := graph.NewVarSet()
	for _, a := range ind.assertions {
		all = all.Union(a.AllVars())
	}
	return all
}

// Contains reports whether an equal assertion is present.
func (ind *Independencies) Contains(a *Assertion) bool {
	k := a.key()
	for _, b := range ind.assertions {
		if b.key() == k {
			return true
		}
	}
	return false
}

// Equal reports whether both collections hold the same set of assertions,
// ignoring order and duplicates.
func (ind *Independencies) Equal(other *Independencies) bool {
	return keySet(ind).Equal(keySet(other))
}

// Entails reports whether every assertion of other follows from the receiver
// under the semi-graphoid axioms.
func (ind *Independencies) Entails(other *Independencies) bool {
	closed := keySet(ind.Closure())
	for _, a := range other.assertions {
		if !closed.Has(a.key()) {
			return false
		}
	}
	return true
}

// IsEquivalent reports whether both collections entail each other.
func (ind *Independencies) IsEquivalent(other *Independencies) bool {
	return ind.Entails(other) && other.Entails(ind)
}

// Reduce returns a copy without duplicates and without any assertion that
// already follows from a single other assertion in the collection. With
// preserveUnique true, assertions none of whose variables appear in any
// other surviving assertion are dropped as well.
func (ind *Independencies) Reduce(preserveUnique bool) *Independencies {
	out := New(ind.assertions...)
	return out.ReduceInPlace(preserveUnique)
}

// ReduceInPlace is Reduce rewriting the receiver, which is also returned.
func (ind *Independencies) ReduceInPlace(preserveUnique bool) *Independencies {
	seen := graph.NewVarSet()
	var unique []*Assertion
	for _, a := range ind.assertions {
		k := a.key()
		if seen.Has(k) {
			continue
		}
		seen.Add(k)
		unique = append(unique, a)
	}

	var kept []*Assertion
	for i, a := range unique {
		redundant := false
		for j, b := range unique {
			if i == j {
				continue
			}
			if keySet(New(b).Closure()).Has(a.key()) {
				redundant = true
				break
			}
		}
		if !redundant {
			kept = append(kept, a)
		}
	}

	if preserveUnique {
		kept = dropIsolated(kept)
	}

	ind.assertions = kept
	return ind
}

// dropIsolated removes assertions sharing no variable with any other
// assertion in the slice.
func dropIsolated(assertions []*Assertion) []*Assertion {
	if len(assertions) < 2 {
		return assertions
	}
	var kept []*Assertion
	for i, a := range assertions {
		shared := false
		for j, b := range assertions {
			if i == j {
				continue
			}
			if a.AllVars().Intersect(b.AllVars()).Len() > 0 {
				shared = true
				break
			}
		}
		if shared {
			kept = append(kept, a)
		}
	}
	return kept
}

// String renders the collection one assertion per line, in insertion order.
func (ind *Independencies) String() string {
	lines := make([]string, len(ind.assertions))
	for i, a := range ind.assertions {
		lines[i] = a.String()
	}
	return strings.Join(lines, "\n")
}

// Latex renders each assertion in LaTeX notation, in insertion order.
func (ind *Independencies) Latex() []string {
	out := make([]string, len(ind.assertions))
	for i, a := range ind.assertions {
		out[i] = a.Latex()
	}
	return out
}

func keySet(ind *Independencies) graph.VarSet {
	keys := graph.NewVarSet()
	for _, a := range ind.assertions {
		keys.Add(a.key())
	}
	return keys
}
