// Package verify checks candidate solutions against the graph
// definition: 42 edges re-derived through the oracle must form a single
// simple cycle, with consecutive edges joined alternately by U-pairs
// and V-pairs (nodes differing only in the low bit).
package verify

import (
	"cuckatoo/pkg/cuckatoo/core"
	"cuckatoo/pkg/cuckatoo/siphash"
)

// Solution re-derives the solution's edges through the oracle and
// verifies the cycle. Returns nil when the solution is valid.
func Solution(h *siphash.Hasher, edgeBits uint32, sol *core.Solution) error {
	if !sol.IsSorted() {
		return core.NewInvalidParameterError("solution is not strictly ascending", nil)
	}
	if !sol.InRange(edgeBits) {
		return core.NewInvalidParameterError("solution has edge index out of range",
			map[string]interface{}{"edge_bits": edgeBits})
	}

	edges := make([]core.Edge, core.CycleLength)
	for i, idx := range sol {
		u, v := h.Endpoints(uint64(idx))
		edges[i] = core.Edge{Index: idx, U: u, V: v}
	}
	return Cycle(edges)
}

// Cycle verifies that the given 42 edges form one simple 42-cycle under
// the pair relation. The walk starts at the first edge, leaves it
// through its U-pair, and must return to it through its V-pair after
// visiting every edge exactly once.
func Cycle(edges []core.Edge) error {
	if len(edges) != core.CycleLength {
		return core.NewInvalidParameterError("cycle must have exactly 42 edges",
			map[string]interface{}{"edges": len(edges)})
	}

	byU := make(map[uint32][]int, len(edges))
	byV := make(map[uint32][]int, len(edges))
	for i, e := range edges {
		byU[e.U] = append(byU[e.U], i)
		byV[e.V] = append(byV[e.V], i)
	}

	visited := make([]bool, len(edges))
	visited[0] = true
	cur := 0

	for step := 1; step < core.CycleLength; step++ {
		var candidates []int
		if step%2 == 1 {
			candidates = byU[edges[cur].U^1]
		} else {
			candidates = byV[edges[cur].V^1]
		}

		next := -1
		for _, c := range candidates {
			if visited[c] {
				continue
			}
			if next != -1 {
				return core.NewInvalidParameterError("cycle branches: node pair joins more than two edges",
					map[string]interface{}{"step": step})
			}
			next = c
		}
		if next == -1 {
			return core.NewInvalidParameterError("cycle breaks: no mate for node pair",
				map[string]interface{}{"step": step, "edge": edges[cur].Index})
		}
		visited[next] = true
		cur = next
	}

	if edges[cur].V^1 != edges[0].V {
		return core.NewInvalidParameterError("cycle does not close back to its first edge", nil)
	}
	return nil
}
