package independence

import (
	"slices"

	"github.com/caugraph/caugraph/pkg/graph"
)

// closure.go implements the semi-graphoid fixpoint. Each axiom is written
// for one side of an assertion and lifted to both sides through the symmetry
// axiom (sg0), mirroring how the axioms are usually stated:
//
//	symmetry       X ⊥ Y | Z          ⟹  Y ⊥ X | Z
//	decomposition  X ⊥ Y∪W | Z        ⟹  X ⊥ Y | Z
//	weak union     X ⊥ Y∪W | Z        ⟹  X ⊥ Y | W∪Z
//	contraction    X ⊥ W | Y∪Z  and  X ⊥ Y | Z  ⟹  X ⊥ W∪Y | Z

// Closure returns every assertion derivable from the collection under the
// semi-graphoid axioms. The result is deduplicated under the symmetric
// equality rule and deterministically ordered.
func (ind *Independencies) Closure() *Independencies {
	all := make(map[string]*Assertion)
	fresh := make(map[string]*Assertion)
	for _, a := range ind.assertions {
		fresh[a.key()] = a
	}

	for len(fresh) > 0 {
		for k, a := range fresh {
			all[k] = a
		}
		next := make(map[string]*Assertion)
		collect := func(derived []*Assertion) {
			for _, a := range derived {
				k := a.key()
				if _, known := all[k]; !known {
					next[k] = a
				}
			}
		}
		for _, a := range fresh {
			collect(decompose(a))
			collect(weakUnion(a))
		}
		for _, a := range fresh {
			for _, b := range all {
				collect(contract(a, b))
				collect(contract(b, a))
			}
		}
		fresh = next
	}

	keys := make([]string, 0, len(all))
	for k := range all {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	out := &Independencies{assertions: make([]*Assertion, 0, len(all))}
	for _, k := range keys {
		out.assertions = append(out.assertions, all[k])
	}
	return out
}

// sg0 is the symmetry axiom.
func sg0(a *Assertion) *Assertion {
	return newAssertion(a.event2, a.event1, a.event3)
}

// decompose applies the decomposition axiom to both sides of a.
func decompose(a *Assertion) []*Assertion {
	return append(decomposeRight(a), decomposeRight(sg0(a))...)
}

// decomposeRight drops one member of event2 at a time.
func decomposeRight(a *Assertion) []*Assertion {
	if a.event2.Len() <= 1 {
		return nil
	}
	out := make([]*Assertion, 0, a.event2.Len())
	for _, elem := range a.event2.Sorted() {
		rest := a.event2.Difference(graph.NewVarSet(elem))
		out = append(out, newAssertion(a.event1, rest, a.event3))
	}
	return out
}

// weakUnion applies the weak union axiom to both sides of a.
func weakUnion(a *Assertion) []*Assertion {
	return append(weakUnionRight(a), weakUnionRight(sg0(a))...)
}

// weakUnionRight moves one member of event2 into the conditioning set at a
// time.
func weakUnionRight(a *Assertion) []*Assertion {
	if a.event2.Len() <= 1 {
		return nil
	}
	out := make([]*Assertion, 0, a.event2.Len())
	for _, elem := range a.event2.Sorted() {
		rest := a.event2.Difference(graph.NewVarSet(elem))
		cond := a.event3.Union(graph.NewVarSet(elem))
		out = append(out, newAssertion(a.event1, rest, cond))
	}
	return out
}

// contract applies the contraction axiom to the pair, trying all four
// symmetry variants.
func contract(a, b *Assertion) []*Assertion {
	var out []*Assertion
	for _, a := range [2]*Assertion{a, sg0(a)} {
		for _, b := range [2]*Assertion{b, sg0(b)} {
			if derived := contractOne(a, b); derived != nil {
				out = append(out, derived)
			}
		}
	}
	return out
}

// contractOne matches a = X ⊥ W | Y∪Z against b = X ⊥ Y | Z and derives
// X ⊥ W∪Y | Z. Y and Z must be disjoint proper subsets of a's conditioning
// set for the conditioning sets to nest as the axiom requires.
func contractOne(a, b *Assertion) *Assertion {
	if !a.event1.Equal(b.event1) {
		return nil
	}
	y, z, yz := b.event2, b.event3, a.event3
	if !y.ProperSubsetOf(yz) || !z.ProperSubsetOf(yz) || !y.Disjoint(z) {
		return nil
	}
	return newAssertion(a.event1, a.event2.Union(y), z)
}
