package verify

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cuckatoo/pkg/cuckatoo/core"
)

func ring(n uint32) []core.Edge {
	edges := make([]core.Edge, n)
	for i := uint32(0); i < n; i++ {
		edges[i] = core.Edge{Index: i, U: i, V: (i + 1) % n}
	}
	return edges
}

func TestCycleAcceptsRing(t *testing.T) {
	require.NoError(t, Cycle(ring(42)))
}

func TestCycleRejectsWrongLength(t *testing.T) {
	assert.Error(t, Cycle(ring(40)))
	assert.Error(t, Cycle(ring(44)))
	assert.Error(t, Cycle(nil))
}

func TestCycleRejectsBrokenRing(t *testing.T) {
	edges := ring(42)
	edges[21].U = 4096 // disconnect one U-pair join
	assert.Error(t, Cycle(edges))
}

func TestCycleRejectsNonClosingChain(t *testing.T) {
	edges := ring(42)
	// Re-point the last edge's V endpoint away from the first edge's
	// pair so the walk cannot close.
	edges[41].V = 4098
	assert.Error(t, Cycle(edges))
}

func TestCycleRejectsTwoDisjointRings(t *testing.T) {
	// Two 21-rings over disjoint node ranges: 42 edges but not a single
	// 42-cycle.
	edges := make([]core.Edge, 0, 42)
	for i := uint32(0); i < 21; i++ {
		edges = append(edges, core.Edge{Index: i, U: i, V: (i + 1) % 21})
	}
	for i := uint32(0); i < 21; i++ {
		edges = append(edges, core.Edge{Index: 21 + i, U: 1000 + i, V: 1000 + (i+1)%21})
	}
	assert.Error(t, Cycle(edges))
}
