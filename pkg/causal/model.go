// Package causal layers role annotations over a DAG and implements the
// identification checks that use them: backdoor adjustment validation and
// frontdoor criterion search. Roles name the function of a variable in a
// query (exposure, outcome, adjustment set, frontdoor set) without changing
// the graph itself.
package causal

import (
	"errors"
	"fmt"
	"slices"

	"github.com/caugraph/caugraph/pkg/graph"
)

// Role names used by the identification checks. Arbitrary additional role
// names are allowed; these are the ones with built-in meaning.
const (
	RoleExposure   = "exposure"
	RoleOutcome    = "outcome"
	RoleAdjustment = "adjustment"
	RoleFrontdoor  = "frontdoor"
)

var (
	// ErrMissingRole is returned when a check requires a role that has no
	// members.
	ErrMissingRole = errors.New("causal: required role not defined")

	// ErrMultipleRoles is returned when a check supports only a single
	// member for a role and more were assigned.
	ErrMultipleRoles = errors.New("causal: role supports only a single variable")
)

// Model is a DAG with role annotations. The graph is shared, the role map is
// owned by the model; Copy clones the roles and keeps sharing the graph,
// which the identification checks never mutate.
type Model struct {
	dag   *graph.DAG
	roles map[string]graph.VarSet
}

// NewModel wraps a DAG with an empty role map.
func NewModel(d *graph.DAG) *Model {
	return &Model{dag: d, roles: make(map[string]graph.VarSet)}
}

// DAG returns the underlying graph.
func (m *Model) DAG() *graph.DAG { return m.dag }

// SetRole assigns the role to the given variables, accumulating with any
// previous members. Every variable must exist in the graph.
func (m *Model) SetRole(role string, variables ...string) error {
	for _, v := range variables {
		if !m.dag.HasNode(v) {
			return fmt.Errorf("%w: %q", graph.ErrNodeNotFound, v)
		}
	}
	set, ok := m.roles[role]
	if !ok {
		set = graph.NewVarSet()
		m.roles[role] = set
	}
	for _, v := range variables {
		set.Add(v)
	}
	return nil
}

// ClearRole removes the given variables from the role, or all members when
// no variables are named. Unknown roles are a no-op.
func (m *Model) ClearRole(role string, variables ...string) {
	set, ok := m.roles[role]
	if !ok {
		return
	}
	if len(variables) == 0 {
		m.roles[role] = graph.NewVarSet()
		return
	}
	for _, v := range variables {
		delete(set, v)
	}
}

// Role returns the members of the role in ascending order. An unknown role
// yields an empty slice.
func (m *Model) Role(role string) []string {
	return m.roles[role].Sorted()
}

// HasRole reports whether the role has at least one member.
func (m *Model) HasRole(role string) bool { return m.roles[role].Len() > 0 }

// Roles returns the role names with at least one member, sorted.
func (m *Model) Roles() []string {
	out := make([]string, 0, len(m.roles))
	for role, set := range m.roles {
		if set.Len() > 0 {
			out = append(out, role)
		}
	}
	slices.Sort(out)
	return out
}

// RoleDict returns a copy of the role map with sorted member lists.
func (m *Model) RoleDict() map[string][]string {
	out := make(map[string][]string, len(m.roles))
	for role, set := range m.roles {
		out[role] = set.Sorted()
	}
	return out
}

// Copy returns a model with an independent role map over the same graph.
func (m *Model) Copy() *Model {
	out := NewModel(m.dag)
	for role, set := range m.roles {
		out.roles[role] = set.Clone()
	}
	return out
}

// Validate checks that the model names both an exposure and an outcome.
func (m *Model) Validate() error {
	var problems []string
	if !m.HasRole(RoleExposure) {
		problems = append(problems, RoleExposure)
	}
	if !m.HasRole(RoleOutcome) {
		problems = append(problems, RoleOutcome)
	}
	if len(problems) > 0 {
		return fmt.Errorf("%w: %v", ErrMissingRole, problems)
	}
	return nil
}

// singleRole returns the sole member of the role, failing when the role is
// empty or has several members.
func (m *Model) singleRole(role string) (string, error) {
	members := m.Role(role)
	switch len(members) {
	case 0:
		return "", fmt.Errorf("%w: %s", ErrMissingRole, role)
	case 1:
		return members[0], nil
	default:
		return "", fmt.Errorf("%w: %s has %d members", ErrMultipleRoles, role, len(members))
	}
}
