package independence

import (
	"testing"

	"github.com/caugraph/caugraph/pkg/graph"
)

func wantVars(t *testing.T, got graph.VarSet, want ...string) {
	t.Helper()
	if !got.Equal(graph.NewVarSet(want...)) {
		t.Errorf("vars = %v, want %v", got.Sorted(), want)
	}
}

func fromLists(t *testing.T, triples ...[3][]string) *Independencies {
	t.Helper()
	ind := New()
	if err := ind.AddFromLists(triples...); err != nil {
		t.Fatalf("AddFromLists: %v", err)
	}
	return ind
}

func TestIndependenciesEqual(t *testing.T) {
	ind3 := fromLists(t,
		[3][]string{{"a"}, {"b", "c", "d"}, {"e", "f", "g"}},
		[3][]string{{"c"}, {"d", "e", "f"}, {"g", "h"}},
	)
	ind4 := fromLists(t,
		[3][]string{{"f", "d", "e"}, {"c"}, {"h", "g"}},
		[3][]string{{"b", "c", "d"}, {"a"}, {"f", "g", "e"}},
	)
	ind5 := fromLists(t,
		[3][]string{{"a"}, {"b", "c", "d"}, {"e", "f", "g"}},
		[3][]string{{"c"}, {"d", "e", "f"}, {"g"}},
	)

	if !ind3.Equal(ind4) {
		t.Error("order and symmetry should not affect equality")
	}
	if ind3.Equal(ind5) || ind4.Equal(ind5) {
		t.Error("different conditioning sets should not compare equal")
	}
	if !New().Equal(New()) {
		t.Error("empty collections should compare equal")
	}
	if New().Equal(fromLists(t, [3][]string{{"A"}, {"B"}, {"C"}})) {
		t.Error("empty and non-empty collections compared equal")
	}

	wantVars(t, ind3.AllVariables(), "a", "b", "c", "d", "e", "f", "g", "h")
	wantVars(t, ind4.AllVariables(), "a", "b", "c", "d", "e", "f", "g", "h")
	wantVars(t, ind5.AllVariables(), "a", "b", "c", "d", "e", "f", "g")
}

func TestClosureSingleAssertion(t *testing.T) {
	ind := fromLists(t, [3][]string{{"A"}, {"B", "C"}, {"D"}})
	closure := ind.Closure()
	expected := fromLists(t,
		[3][]string{{"A"}, {"B", "C"}, {"D"}},
		[3][]string{{"A"}, {"B"}, {"C", "D"}},
		[3][]string{{"A"}, {"C"}, {"B", "D"}},
		[3][]string{{"A"}, {"B"}, {"D"}},
		[3][]string{{"A"}, {"C"}, {"D"}},
	)
	if !closure.Equal(expected) {
		t.Errorf("closure =\n%v\nwant\n%v", closure, expected)
	}
}

func TestClosureUnconditional(t *testing.T) {
	ind := fromLists(t, [3][]string{{"W"}, {"X", "Y", "Z"}, nil})
	closure := ind.Closure()
	expected := fromLists(t,
		[3][]string{{"W"}, {"Y"}, nil},
		[3][]string{{"W"}, {"Y"}, {"X"}},
		[3][]string{{"W"}, {"Y"}, {"Z"}},
		[3][]string{{"W"}, {"Y"}, {"X", "Z"}},
		[3][]string{{"W"}, {"X", "Y"}, nil},
		[3][]string{{"W"}, {"X"}, {"Y", "Z"}},
		[3][]string{{"W"}, {"X", "Z"}, {"Y"}},
		[3][]string{{"W"}, {"X"}, nil},
		[3][]string{{"W"}, {"X", "Z"}, nil},
		[3][]string{{"W"}, {"Y", "Z"}, {"X"}},
		[3][]string{{"W"}, {"X", "Y", "Z"}, nil},
		[3][]string{{"W"}, {"X"}, {"Z"}},
		[3][]string{{"W"}, {"Y", "Z"}, nil},
		[3][]string{{"W"}, {"Z"}, {"X"}},
		[3][]string{{"W"}, {"Z"}, nil},
		[3][]string{{"W"}, {"Y", "X"}, {"Z"}},
		[3][]string{{"W"}, {"X"}, {"Y"}},
		[3][]string{{"W"}, {"Z"}, {"Y", "X"}},
		[3][]string{{"W"}, {"Z"}, {"Y"}},
	)
	if !closure.Equal(expected) {
		t.Errorf("closure has %d assertions, want 19:\n%v", closure.Len(), closure)
	}
}

func TestClosureLargeFixpoint(t *testing.T) {
	ind := fromLists(t,
		[3][]string{{"c"}, {"a"}, {"b", "e", "d"}},
		[3][]string{{"e", "c"}, {"b"}, {"a", "d"}},
		[3][]string{{"b", "d"}, {"e"}, {"a"}},
		[3][]string{{"e"}, {"b", "d"}, {"c"}},
		[3][]string{{"e"}, {"b", "c"}, {"d"}},
		[3][]string{{"e", "c"}, {"a"}, {"b"}},
	)
	if got := ind.Closure().Len(); got != 78 {
		t.Errorf("closure size = %d, want 78", got)
	}
}

func TestEntails(t *testing.T) {
	ind1 := fromLists(t, [3][]string{{"A", "B"}, {"C", "D"}, {"E"}})
	ind2 := fromLists(t, [3][]string{{"A"}, {"C"}, {"E"}})
	if !ind1.Entails(ind2) {
		t.Error("decomposition consequence should be entailed")
	}
	if ind2.Entails(ind1) {
		t.Error("weaker statement should not entail the stronger one")
	}

	ind3 := fromLists(t, [3][]string{{"W"}, {"X", "Y", "Z"}, nil})
	if !ind3.Entails(ind3.Closure()) {
		t.Error("a collection should entail its own closure")
	}
	if !ind3.Closure().Entails(ind3) {
		t.Error("a closure should entail its generators")
	}
}

func TestIsEquivalent(t *testing.T) {
	ind1 := fromLists(t, [3][]string{{"X"}, {"Y", "W"}, {"Z"}})
	ind2 := fromLists(t,
		[3][]string{{"X"}, {"Y"}, {"Z"}},
		[3][]string{{"X"}, {"W"}, {"Z"}},
	)
	ind3 := fromLists(t,
		[3][]string{{"X"}, {"Y"}, {"Z"}},
		[3][]string{{"X"}, {"W"}, {"Z"}},
		[3][]string{{"X"}, {"Y"}, {"W", "Z"}},
	)
	if ind1.IsEquivalent(ind2) {
		t.Error("decomposition alone does not recover the joint statement")
	}
	if !ind1.IsEquivalent(ind3) {
		t.Error("adding the weak union consequence restores equivalence")
	}
}

func TestReduce(t *testing.T) {
	// Duplicates collapse. Add keeps duplicates so reduce must drop one.
	dup := mustAssertion(t, []string{"X"}, []string{"Y"}, []string{"Z"})
	ind := New(dup, dup)
	if ind.Len() != 2 {
		t.Fatalf("Add should keep duplicates, len = %d", ind.Len())
	}
	reduced := ind.Reduce(false)
	if reduced.Len() != 1 {
		t.Fatalf("reduced length = %d, want 1", reduced.Len())
	}
	if !reduced.Contains(mustAssertion(t, []string{"X"}, []string{"Y"}, []string{"Z"})) {
		t.Error("surviving assertion is wrong")
	}

	// Unrelated assertions survive.
	ind = fromLists(t,
		[3][]string{{"A"}, {"B"}, {"C"}},
		[3][]string{{"D"}, {"E"}, {"F"}},
	)
	reduced = ind.Reduce(false)
	if reduced.Len() != 2 {
		t.Errorf("reduced length = %d, want 2", reduced.Len())
	}

	// An assertion implied by another is dropped.
	ind = fromLists(t,
		[3][]string{{"W"}, {"X", "Y", "Z"}, nil},
		[3][]string{{"W"}, {"X"}, {"Y"}},
	)
	reduced = ind.Reduce(false)
	if reduced.Len() != 1 || !reduced.Contains(mustAssertion(t, []string{"W"}, []string{"X", "Y", "Z"}, nil)) {
		t.Errorf("reduced = %v, want only the joint assertion", reduced)
	}

	// Mixed case with an unrelated survivor.
	ind = fromLists(t,
		[3][]string{{"A"}, {"B", "C"}, {"D"}},
		[3][]string{{"A"}, {"B"}, {"D"}},
		[3][]string{{"A"}, {"C"}, {"D"}},
		[3][]string{{"E"}, {"F"}, {"G"}},
	)
	reduced = ind.Reduce(false)
	if ind.Len() != 4 {
		t.Errorf("non-inplace reduce should not mutate the receiver, len = %d", ind.Len())
	}
	if reduced.Len() != 2 {
		t.Fatalf("reduced length = %d, want 2", reduced.Len())
	}
	if !reduced.Contains(mustAssertion(t, []string{"A"}, []string{"B", "C"}, []string{"D"})) ||
		!reduced.Contains(mustAssertion(t, []string{"E"}, []string{"F"}, []string{"G"})) {
		t.Errorf("reduced = %v", reduced)
	}

	// Inplace rewrites the receiver.
	ind = New(dup, dup, mustAssertion(t, []string{"A"}, []string{"B"}, []string{"C"}))
	if got := ind.ReduceInPlace(false); got != ind {
		t.Error("inplace reduce should return the receiver")
	}
	if ind.Len() != 2 {
		t.Errorf("inplace reduced length = %d, want 2", ind.Len())
	}

	// Empty and singleton collections pass through.
	if got := New().Reduce(false).Len(); got != 0 {
		t.Errorf("empty reduce length = %d", got)
	}
	single := fromLists(t, [3][]string{{"X"}, {"Y"}, {"Z"}})
	if got := single.Reduce(false).Len(); got != 1 {
		t.Errorf("singleton reduce length = %d", got)
	}
}

func TestReducePreserveUnique(t *testing.T) {
	// (E ⊥ F | G) shares no variable with the other assertions and is
	// dropped in the stricter mode only.
	ind := fromLists(t,
		[3][]string{{"A"}, {"B"}, {"C"}},
		[3][]string{{"B"}, {"C"}, {"A"}},
		[3][]string{{"E"}, {"F"}, {"G"}},
	)
	if got := ind.Reduce(false).Len(); got != 3 {
		t.Errorf("plain reduce length = %d, want 3", got)
	}
	reduced := ind.Reduce(true)
	if reduced.Len() != 2 {
		t.Fatalf("preserve-unique reduce length = %d, want 2", reduced.Len())
	}
	if reduced.Contains(mustAssertion(t, []string{"E"}, []string{"F"}, []string{"G"})) {
		t.Error("isolated assertion should be dropped")
	}

	// A lone pair of connected assertions survives.
	connected := fromLists(t,
		[3][]string{{"A"}, {"B"}, nil},
		[3][]string{{"A"}, {"C"}, {"B"}},
	)
	if got := connected.Reduce(true).Len(); got != 2 {
		t.Errorf("connected reduce length = %d, want 2", got)
	}
}

func TestAddFromListsDeduplicates(t *testing.T) {
	ind := fromLists(t,
		[3][]string{{"X"}, {"Y"}, {"Z"}},
		[3][]string{{"Y"}, {"X"}, {"Z"}},
	)
	if ind.Len() != 1 {
		t.Errorf("len = %d, want 1 after symmetric dedup", ind.Len())
	}

	// Add does not deduplicate.
	a := mustAssertion(t, []string{"X"}, []string{"Y"}, []string{"Z"})
	ind.Add(a)
	if ind.Len() != 2 {
		t.Errorf("len = %d, want 2 after Add", ind.Len())
	}
}
