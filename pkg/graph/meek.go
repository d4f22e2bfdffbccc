package graph

// meek.go runs the orientation rules that complete a PDAG into its
// equivalence-class representative. Each rule names a local pattern that
// forces an undirected edge into a single orientation; the engine applies
// forced orientations until a full pass over the undirected edges changes
// nothing.

// ApplyMeeksRules repeatedly applies orientation rules R1-R3, plus R4 when
// applyR4 is true, until a fixpoint is reached:
//
//	R1: a→b and b–c with a, c non-adjacent orients b→c.
//	R2: a→b→c with a–c orients a→c.
//	R3: a–b with two non-adjacent undirected neighbors of a both directed
//	    into b orients a→b.
//	R4: a–b and a–c with c→d, d→b and b, c non-adjacent orients a→b.
//
// An orientation is only committed when exactly one direction of the edge is
// forced; when the rules force both directions, or a forced direction would
// close a directed cycle, the edge is left undirected. With inplace true the
// receiver is completed and returned, otherwise a completed copy is returned
// and the receiver is untouched.
func (p *PDAG) ApplyMeeksRules(applyR4, inplace bool) *PDAG {
	target := p
	if !inplace {
		target = p.Copy()
	}
	for changed := true; changed; {
		changed = false
		for _, e := range target.UndirectedEdges() {
			u, v := e.From, e.To
			if !target.HasUndirectedEdge(u, v) {
				continue
			}
			forcedUV := target.meekForces(u, v, applyR4) && !target.HasDirectedPath(v, u)
			forcedVU := target.meekForces(v, u, applyR4) && !target.HasDirectedPath(u, v)
			switch {
			case forcedUV && forcedVU:
				// Conflicting evidence, the edge stays undirected.
			case forcedUV:
				target.orient(u, v)
				changed = true
			case forcedVU:
				target.orient(v, u)
				changed = true
			}
		}
	}
	return target
}

// meekForces reports whether any rule forces the undirected edge a–b into
// the orientation a→b.
func (p *PDAG) meekForces(a, b string, applyR4 bool) bool {
	// R1: w→a with w, b non-adjacent.
	for w := range p.dparents[a] {
		if !p.IsAdjacent(w, b) {
			return true
		}
	}
	// R2: a→w→b.
	for w := range p.dchildren[a] {
		if p.dparents[b].Has(w) {
			return true
		}
	}
	// R3: undirected neighbors w1, w2 of a, non-adjacent, both directed
	// into b.
	into := p.uneighbors[a].Intersect(p.dparents[b]).Sorted()
	for i := 0; i < len(into); i++ {
		for j := i + 1; j < len(into); j++ {
			if !p.IsAdjacent(into[i], into[j]) {
				return true
			}
		}
	}
	if !applyR4 {
		return false
	}
	// R4: a–c, c→d, d→b with b, c non-adjacent.
	for c := range p.uneighbors[a] {
		if c == b || p.IsAdjacent(c, b) {
			continue
		}
		for d := range p.dchildren[c] {
			if p.dparents[b].Has(d) {
				return true
			}
		}
	}
	return false
}
