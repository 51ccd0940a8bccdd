package shape

import (
	"testing"

	"github.com/emre-synnada/mithril/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLabelerAssignsFirstSeenNumbering(t *testing.T) {
	s := NewSolver()
	a, b, c := core.DimID(1), core.DimID(2), core.DimID(3)
	l := NewLabeler(s, []core.DimID{b, a, c})
	assert.Equal(t, "u1", l.Name(b))
	assert.Equal(t, "u2", l.Name(a))
	assert.Equal(t, "u3", l.Name(c))
}

func TestLabelerSkipsConcreteDimsInNumbering(t *testing.T) {
	s := NewSolver()
	a, b := core.DimID(1), core.DimID(2)
	require.NoError(t, s.BindConcrete(a, 42))
	l := NewLabeler(s, []core.DimID{a, b})
	assert.Equal(t, "42", l.Name(a))
	assert.Equal(t, "u1", l.Name(b))
}

func TestLabelerSymbolicIgnoresConcreteBinding(t *testing.T) {
	s := NewSolver()
	a := core.DimID(1)
	require.NoError(t, s.BindConcrete(a, 42))
	l := NewLabelerSymbolic(s, []core.DimID{a})
	assert.Equal(t, "u1", l.Name(a))
}

func TestLabelerSharesNumberAcrossUnifiedClass(t *testing.T) {
	s := NewSolver()
	a, b := core.DimID(1), core.DimID(2)
	require.NoError(t, s.UnionDims(a, b))
	l := NewLabeler(s, []core.DimID{a, b})
	assert.Equal(t, l.Name(a), l.Name(b))
}
