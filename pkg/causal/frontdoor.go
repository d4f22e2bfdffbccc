package causal

import (
	"github.com/caugraph/caugraph/pkg/graph"
)

// ValidateFrontdoor reports whether the model's frontdoor set satisfies the
// frontdoor criterion for its exposure X and outcome Y:
//
//  1. at least one directed path runs from X to Y,
//  2. the set intercepts every directed path from X to Y,
//  3. no unblocked backdoor path runs from X to any member of the set,
//  4. X blocks every backdoor path from each member of the set to Y.
func (m *Model) ValidateFrontdoor() (bool, error) {
	exposure, err := m.singleRole(RoleExposure)
	if err != nil {
		return false, err
	}
	outcome, err := m.singleRole(RoleOutcome)
	if err != nil {
		return false, err
	}
	frontdoor := graph.NewVarSet(m.Role(RoleFrontdoor)...)

	paths, err := m.dag.AllSimplePaths(exposure, outcome)
	if err != nil {
		return false, err
	}
	if len(paths) == 0 {
		return false, nil
	}
	for _, path := range paths {
		intercepted := false
		for _, node := range path[1:] {
			if frontdoor.Has(node) {
				intercepted = true
				break
			}
		}
		if !intercepted {
			return false, nil
		}
	}

	for _, z := range frontdoor.Sorted() {
		// X to z, no adjustment.
		probe := NewModel(m.dag)
		if err := probe.SetRole(RoleExposure, exposure); err != nil {
			return false, err
		}
		if err := probe.SetRole(RoleOutcome, z); err != nil {
			return false, err
		}
		ok, err := probe.ValidateAdjustment()
		if err != nil {
			return false, err
		}
		if !ok {
			return false, nil
		}

		// z to Y, adjusting for X.
		probe = NewModel(m.dag)
		if err := probe.SetRole(RoleExposure, z); err != nil {
			return false, err
		}
		if err := probe.SetRole(RoleOutcome, outcome); err != nil {
			return false, err
		}
		if err := probe.SetRole(RoleAdjustment, exposure); err != nil {
			return false, err
		}
		ok, err = probe.ValidateAdjustment()
		if err != nil {
			return false, err
		}
		if !ok {
			return false, nil
		}
	}
	return true, nil
}

// FindFrontdoorSet searches the observed variables for the first set
// satisfying the frontdoor criterion, trying smaller sets before larger ones
// and in lexicographic order within a size. It returns the set and true on
// success, or nil and false when no set qualifies.
func (m *Model) FindFrontdoorSet() (graph.VarSet, bool, error) {
	sets, err := m.frontdoorSets(true)
	if err != nil {
		return nil, false, err
	}
	if len(sets) == 0 {
		return nil, false, nil
	}
	return sets[0], true, nil
}

// AllFrontdoorSets returns every subset of the observed variables satisfying
// the frontdoor criterion, ordered by size then lexicographically.
func (m *Model) AllFrontdoorSets() ([]graph.VarSet, error) {
	return m.frontdoorSets(false)
}

func (m *Model) frontdoorSets(firstOnly bool) ([]graph.VarSet, error) {
	if err := m.Validate(); err != nil {
		return nil, err
	}
	exposure := graph.NewVarSet(m.Role(RoleExposure)...)
	outcome := graph.NewVarSet(m.Role(RoleOutcome)...)

	var candidates []string
	for _, n := range m.dag.Nodes() {
		if exposure.Has(n) || outcome.Has(n) || m.dag.IsLatent(n) {
			continue
		}
		candidates = append(candidates, n)
	}

	var found []graph.VarSet
	for _, subset := range subsetsBySize(candidates) {
		probe := m.Copy()
		probe.ClearRole(RoleFrontdoor)
		if err := probe.SetRole(RoleFrontdoor, subset...); err != nil {
			return nil, err
		}
		ok, err := probe.ValidateFrontdoor()
		if err != nil {
			return nil, err
		}
		if ok {
			found = append(found, graph.NewVarSet(subset...))
			if firstOnly {
				return found, nil
			}
		}
	}
	return found, nil
}

// subsetsBySize enumerates all subsets of items ordered by size, then
// lexicographically within a size. items must be sorted.
func subsetsBySize(items []string) [][]string {
	var out [][]string
	for size := 0; size <= len(items); size++ {
		var pick func(start int, current []string)
		pick = func(start int, current []string) {
			if len(current) == size {
				sub := make([]string, size)
				copy(sub, current)
				out = append(out, sub)
				return
			}
			for i := start; i < len(items); i++ {
				pick(i+1, append(current, items[i]))
			}
		}
		pick(0, nil)
	}
	return out
}
