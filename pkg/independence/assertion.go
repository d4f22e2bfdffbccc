package independence

import (
	"errors"
	"fmt"
	"strings"

	"github.com/caugraph/caugraph/pkg/graph"
)

// ErrEmptyEvent is returned when an assertion is constructed with an empty
// event1 or event2. The conditioning event3 may be empty.
var ErrEmptyEvent = errors.New("independence: event needs to be specified")

// Assertion is a single conditional independence statement
// event1 ⊥ event2 | event3. Assertions are symmetric in event1 and event2:
// (X ⊥ Y | Z) and (Y ⊥ X | Z) compare equal and share a canonical rendering.
type Assertion struct {
	event1 graph.VarSet
	event2 graph.VarSet
	event3 graph.VarSet
}

// NewAssertion builds an assertion from variable lists. event3 may be nil or
// empty for an unconditional statement.
func NewAssertion(event1, event2, event3 []string) (*Assertion, error) {
	if len(event1) == 0 {
		return nil, fmt.Errorf("%w: event1", ErrEmptyEvent)
	}
	if len(event2) == 0 {
		return nil, fmt.Errorf("%w: event2", ErrEmptyEvent)
	}
	return &Assertion{
		event1: graph.NewVarSet(event1...),
		event2: graph.NewVarSet(event2...),
		event3: graph.NewVarSet(event3...),
	}, nil
}

// newAssertion wraps pre-built sets without copying. Callers must not mutate
// the sets afterwards.
func newAssertion(event1, event2, event3 graph.VarSet) *Assertion {
	return &Assertion{event1: event1, event2: event2, event3: event3}
}

// Event1 returns a copy of the first event.
func (a *Assertion) Event1() graph.VarSet { return a.event1.Clone() }

// Event2 returns a copy of the second event.
func (a *Assertion) Event2() graph.VarSet { return a.event2.Clone() }

// Event3 returns a copy of the conditioning event.
func (a *Assertion) Event3() graph.VarSet { return a.event3.Clone() }

// AllVars returns the union of all three events.
func (a *Assertion) AllVars() graph.VarSet {
	return a.event1.Union(a.event2).Union(a.event3)
}

// IsUnconditional reports whether the conditioning event is empty.
func (a *Assertion) IsUnconditional() bool { return a.event3.Len() == 0 }

// sides returns the two independent events with the lexicographically
// smaller rendering first, so symmetric constructions render identically.
func (a *Assertion) sides() (string, string) {
	s1 := strings.Join(a.event1.Sorted(), ", ")
	s2 := strings.Join(a.event2.Sorted(), ", ")
	if s2 < s1 {
		s1, s2 = s2, s1
	}
	return s1, s2
}

// String renders the assertion as (X ⊥ Y | Z) with sorted members.
func (a *Assertion) String() string {
	s1, s2 := a.sides()
	if a.IsUnconditional() {
		return fmt.Sprintf("(%s ⊥ %s)", s1, s2)
	}
	return fmt.Sprintf("(%s ⊥ %s | %s)", s1, s2, strings.Join(a.event3.Sorted(), ", "))
}

// Latex renders the assertion in LaTeX notation.
func (a *Assertion) Latex() string {
	s1, s2 := a.sides()
	if a.IsUnconditional() {
		return fmt.Sprintf("%s \\perp %s", s1, s2)
	}
	return fmt.Sprintf("%s \\perp %s \\mid %s", s1, s2, strings.Join(a.event3.Sorted(), ", "))
}

// Equal reports equality under the symmetric rule: event1 and event2 may be
// swapped, event3 must match exactly.
func (a *Assertion) Equal(b *Assertion) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.key() == b.key()
}

// encodeMembers renders sorted set members with length prefixes, so the
// encoding stays unambiguous for arbitrary variable identifiers.
func encodeMembers(vars []string) string {
	var b strings.Builder
	for _, v := range vars {
		fmt.Fprintf(&b, "%d:%s", len(v), v)
	}
	return b.String()
}

// key is the canonical identity of the assertion.
func (a *Assertion) key() string {
	s1 := encodeMembers(a.event1.Sorted())
	s2 := encodeMembers(a.event2.Sorted())
	if s2 < s1 {
		s1, s2 = s2, s1
	}
	return s1 + "|" + s2 + "|" + encodeMembers(a.event3.Sorted())
}
