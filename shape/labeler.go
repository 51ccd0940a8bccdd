package shape

import (
	"fmt"

	"github.com/emre-synnada/mithril/core"
)

// Labeler computes the composite-scoped uN display numbering (spec §4.1:
// "each composite's first unknown dim prints as u1") without mutating the
// shared Solver. A fresh Labeler is built per composite, from that
// composite's own dim-var introduction order, right before rendering.
type Labeler struct {
	solver   *Solver
	numOf    map[int]int // class root index -> 1-based display number
	symbolic bool         // if true, never resolve a concrete binding
}

// NewLabeler assigns u1, u2, ... to the classes of the dim-vars in
// seenOrder, in the order given (spec: first-seen order within the
// enclosing composite). Dim-vars whose class already carries a concrete
// binding are skipped — they render as their integer value, not a uN.
func NewLabeler(s *Solver, seenOrder []core.DimID) *Labeler {
	return newLabeler(s, seenOrder, false)
}

// NewLabelerSymbolic is NewLabeler but never resolves a concrete binding:
// every dim-var, bound or not, gets a uN label. Used by the engine's
// symbolic display mode, where a caller wants to see the shape algebra
// itself rather than whatever integers the solver happened to pin down.
func NewLabelerSymbolic(s *Solver, seenOrder []core.DimID) *Labeler {
	return newLabeler(s, seenOrder, true)
}

func newLabeler(s *Solver, seenOrder []core.DimID, symbolic bool) *Labeler {
	l := &Labeler{solver: s, numOf: make(map[int]int), symbolic: symbolic}
	next := 1
	for _, id := range seenOrder {
		root := s.ClassOf(id)
		if !symbolic {
			if _, concrete := s.Concrete(id); concrete {
				continue
			}
		}
		if _, ok := l.numOf[root]; ok {
			continue
		}
		l.numOf[root] = next
		next++
	}
	return l
}

// Name renders a single dim-var: its concrete binding if bound (unless this
// Labeler is symbolic), else its uN label, else (for a dim-var this Labeler
// never saw — a bug in the caller's seenOrder bookkeeping) a best-effort
// "u?<root>" placeholder.
func (l *Labeler) Name(id core.DimID) string {
	if !l.symbolic {
		if v, ok := l.solver.Concrete(id); ok {
			return fmt.Sprintf("%d", v)
		}
	}
	root := l.solver.ClassOf(id)
	if n, ok := l.numOf[root]; ok {
		return fmt.Sprintf("u%d", n)
	}
	return fmt.Sprintf("u?%d", root)
}

// Render renders a full shape term using this Labeler's numbering.
func (l *Labeler) Render(t Term) string {
	return t.Render(l)
}
