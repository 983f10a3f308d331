package lean

import (
	"fmt"
	"math/bits"

	"cuckatoo/pkg/cuckatoo/bitmap"
	"cuckatoo/pkg/cuckatoo/core"
	"cuckatoo/pkg/cuckatoo/siphash"
)

// Trimmer prunes edges whose endpoint pair is untouched by any other
// edge, using two flat bitmaps: one bit per possible edge and one bit
// per node of the partition currently under analysis. Nothing is
// allocated per round.
type Trimmer struct {
	edgeBits      uint32
	numberOfEdges uint64
	edges         *bitmap.Bitmap
	nodes         *bitmap.Bitmap
}

// NewTrimmer allocates the two bitmaps for the given graph size. The
// caller validates edgeBits and checks the memory footprint first.
func NewTrimmer(edgeBits uint32) *Trimmer {
	n := core.NumberOfEdges(edgeBits)
	return &Trimmer{
		edgeBits:      edgeBits,
		numberOfEdges: n,
		edges:         bitmap.New(n),
		nodes:         bitmap.New(n),
	}
}

// EdgeBits returns the graph size the trimmer was built for.
func (t *Trimmer) EdgeBits() uint32 {
	return t.edgeBits
}

// Edges exposes the edges bitmap; bit e is set iff edge e is alive.
func (t *Trimmer) Edges() *bitmap.Bitmap {
	return t.edges
}

// Trim resets the edges bitmap to all-ones and runs mark/sweep rounds
// until the rounds are used up or a round removes no edges. Each
// round inspects partition U (even nonces) then partition V (odd
// nonces). Returns the number of surviving edges.
func (t *Trimmer) Trim(h *siphash.Hasher, rounds uint32) uint64 {
	t.edges.SetAll()

	alive := t.edges.Count()
	for round := uint32(0); round < rounds; round++ {
		t.mark(h, 0)
		t.sweep(h, 0)
		t.mark(h, 1)
		t.sweep(h, 1)

		remaining := t.edges.Count()
		if remaining == alive {
			break
		}
		alive = remaining
	}
	return alive
}

// mark zeroes the nodes bitmap and sets the bit of every alive edge's
// endpoint on the selected side (0 for U, 1 for V).
func (t *Trimmer) mark(h *siphash.Hasher, side uint64) {
	t.nodes.ClearAll()

	for wi, w := range t.edges.Words() {
		base := uint64(wi) * 64
		for w != 0 {
			e := base + uint64(bits.TrailingZeros64(w))
			t.nodes.Set(h.Hash(2*e + side))
			w &= w - 1
		}
	}
}

// sweep recomputes each alive edge's endpoint on the selected side and
// clears the edge unless the endpoint's pair bit is set: an untouched
// pair means no edge can continue a cycle through this node. Each word
// is accumulated from its pre-sweep snapshot and stored whole, so there
// is no cross-word dependency.
func (t *Trimmer) sweep(h *siphash.Hasher, side uint64) {
	words := t.edges.Words()
	for wi, w := range words {
		if w == 0 {
			continue
		}
		base := uint64(wi) * 64
		var next uint64
		for w != 0 {
			tz := bits.TrailingZeros64(w)
			e := base + uint64(tz)
			if t.nodes.IsSet(h.Hash(2*e+side) ^ 1) {
				next |= 1 << tz
			}
			w &= w - 1
		}
		words[wi] = next
	}
}

// Survivors scans the surviving bits in ascending order and
// re-evaluates the oracle to materialize (index, u, v) triples. The
// cycle finder consumes the slice exactly once.
func (t *Trimmer) Survivors(h *siphash.Hasher) []core.Edge {
	survivors := make([]core.Edge, 0, t.edges.Count())
	t.edges.ForEach(func(e uint64) {
		u, v := h.Endpoints(e)
		if uint64(u) >= t.numberOfEdges || uint64(v) >= t.numberOfEdges {
			panic(fmt.Sprintf(
				"lean: survivor %d has endpoint (%d, %d) outside node range %d",
				e, u, v, t.numberOfEdges))
		}
		survivors = append(survivors, core.Edge{Index: uint32(e), U: u, V: v})
	})
	return survivors
}
