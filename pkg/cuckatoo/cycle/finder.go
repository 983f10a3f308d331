// Package cycle searches a trimmed survivor stream for a 42-edge cycle.
//
// Edges are inserted in ascending index order. Each partition keeps, per
// node, a newest-first chain of the edges that touch it; two nodes on
// the same partition are paired when they differ only in the low bit,
// and a cycle alternates U-pair and V-pair joins. Whenever an inserted
// edge leaves both of its endpoints with a populated pair, a bounded
// depth-first walk across the two partitions tries to close a 42-cycle.
package cycle

import (
	"fmt"
	"sort"

	"cuckatoo/pkg/cuckatoo/core"
)

// none marks the end of a chain in the link arena.
const none = int32(-1)

// link is one entry of a newest-connection chain. It records the node
// the chain is keyed by, the edge's opposite endpoint (the node reached
// when the walk crosses this edge into the other partition), the edge
// index, and the previous chain entry.
type link struct {
	node      uint32
	other     uint32
	edgeIndex uint32
	prev      int32
}

// Finder holds the per-attempt search state. It is not safe for
// concurrent use; reset it at the start of each attempt.
type Finder struct {
	uNewest  map[uint32]int32
	vNewest  map[uint32]int32
	uVisited map[uint32]uint32
	vVisited map[uint32]uint32
	links    []link
	root     uint32
}

// NewFinder creates an empty Finder.
func NewFinder() *Finder {
	return &Finder{
		uNewest:  make(map[uint32]int32),
		vNewest:  make(map[uint32]int32),
		uVisited: make(map[uint32]uint32, core.CycleLength/2),
		vVisited: make(map[uint32]uint32, core.CycleLength/2),
	}
}

// Reset clears all chains and visited state and pre-sizes the link
// arena for the expected number of survivors (two links per edge).
func (f *Finder) Reset(expectedEdges int) {
	f.uNewest = make(map[uint32]int32, expectedEdges)
	f.vNewest = make(map[uint32]int32, expectedEdges)
	f.uVisited = make(map[uint32]uint32, core.CycleLength/2)
	f.vVisited = make(map[uint32]uint32, core.CycleLength/2)
	if cap(f.links) < 2*expectedEdges {
		f.links = make([]link, 0, 2*expectedEdges)
	} else {
		f.links = f.links[:0]
	}
	f.root = 0
}

// Find consumes the survivor stream, ordered by edge index, and returns
// the sorted 42-cycle solution if one is found.
func (f *Finder) Find(edges []core.Edge) (*core.Solution, bool) {
	for i := range edges {
		e := &edges[i]

		f.prepend(f.uNewest, e.U, e.V, e.Index)
		f.prepend(f.vNewest, e.V, e.U, e.Index)
		f.root = e.V

		// A cycle through this edge needs a mate at both endpoints' pairs.
		if _, ok := f.uNewest[e.U^1]; !ok {
			continue
		}
		if _, ok := f.vNewest[e.V^1]; !ok {
			continue
		}

		if sol, found := f.search(e.U, e.Index); found {
			return sol, true
		}
	}
	return nil, false
}

// prepend adds a chain entry for node, recording other as the edge's
// opposite endpoint, and makes it the newest head.
func (f *Finder) prepend(newest map[uint32]int32, node, other, edgeIndex uint32) {
	head := none
	if h, ok := newest[node]; ok {
		head = h
	}
	f.links = append(f.links, link{
		node:      node,
		other:     other,
		edgeIndex: edgeIndex,
		prev:      head,
	})
	newest[node] = int32(len(f.links) - 1)
}

// search walks the graph from the just-inserted edge's U endpoint. The
// straight-through path alternates partitions while each pair has a
// single connection; a pair with multiple connections branches into the
// recursive helpers.
func (f *Finder) search(startNode, startIndex uint32) (*core.Solution, bool) {
	for k := range f.uVisited {
		delete(f.uVisited, k)
	}
	for k := range f.vVisited {
		delete(f.vVisited, k)
	}

	cycleSize := 1
	currentNode := startNode
	currentIndex := startIndex

	for {
		f.uVisited[currentNode>>1] = currentIndex

		head, ok := f.uNewest[currentNode^1]
		if !ok {
			return nil, false
		}

		if f.links[head].prev != none {
			// The pair has multiple connections: branch over all of them.
			for li := head; li != none; li = f.links[li].prev {
				ln := f.links[li]
				if _, seen := f.vVisited[ln.other>>1]; seen {
					continue
				}
				if ln.other^1 == f.root {
					if cycleSize == core.CycleLength-1 {
						return f.solution(ln.edgeIndex, true), true
					}
				} else if cycleSize != core.CycleLength-1 {
					if _, ok := f.vNewest[ln.other^1]; ok {
						if f.searchV(cycleSize+1, ln.other^1, ln.edgeIndex) {
							return f.solution(0, false), true
						}
					}
				}
			}
			return nil, false
		}

		// Single connection: cross its edge into partition V.
		ln := f.links[head]
		currentIndex = ln.edgeIndex
		currentNode = ln.other

		if _, seen := f.vVisited[currentNode>>1]; seen {
			return nil, false
		}
		if currentNode^1 == f.root {
			if cycleSize == core.CycleLength-1 {
				return f.solution(currentIndex, true), true
			}
			return nil, false
		}
		if cycleSize == core.CycleLength-1 {
			return nil, false
		}
		if _, ok := f.vNewest[currentNode^1]; !ok {
			return nil, false
		}

		f.vVisited[currentNode>>1] = currentIndex

		headV := f.vNewest[currentNode^1]
		if f.links[headV].prev != none {
			for li := headV; li != none; li = f.links[li].prev {
				ln := f.links[li]
				if _, ok := f.uNewest[ln.other^1]; !ok {
					continue
				}
				if _, seen := f.uVisited[ln.other>>1]; seen {
					continue
				}
				if f.searchU(cycleSize+2, ln.other^1, ln.edgeIndex) {
					return f.solution(0, false), true
				}
			}
			return nil, false
		}

		// Single connection: cross back into partition U.
		lnV := f.links[headV]
		currentIndex = lnV.edgeIndex
		currentNode = lnV.other

		if _, seen := f.uVisited[currentNode>>1]; seen {
			return nil, false
		}
		if _, ok := f.uNewest[currentNode^1]; !ok {
			return nil, false
		}

		cycleSize += 2
	}
}

// searchU explores the U-partition chain at node. Closure is tested
// here because the walk re-enters partition V, where the root lives.
func (f *Finder) searchU(cycleSize int, node, index uint32) bool {
	f.uVisited[node>>1] = index

	if head, ok := f.uNewest[node]; ok {
		for li := head; li != none; li = f.links[li].prev {
			ln := f.links[li]
			if _, seen := f.vVisited[ln.other>>1]; seen {
				continue
			}
			if ln.other^1 == f.root {
				if cycleSize == core.CycleLength-1 {
					f.vVisited[ln.other>>1] = ln.edgeIndex
					return true
				}
			} else if cycleSize != core.CycleLength-1 {
				if _, ok := f.vNewest[ln.other^1]; ok {
					if f.searchV(cycleSize+1, ln.other^1, ln.edgeIndex) {
						return true
					}
				}
			}
		}
	}

	delete(f.uVisited, node>>1)
	return false
}

// searchV explores the V-partition chain at node.
func (f *Finder) searchV(cycleSize int, node, index uint32) bool {
	f.vVisited[node>>1] = index

	if head, ok := f.vNewest[node]; ok {
		for li := head; li != none; li = f.links[li].prev {
			ln := f.links[li]
			if _, ok := f.uNewest[ln.other^1]; !ok {
				continue
			}
			if _, seen := f.uVisited[ln.other>>1]; seen {
				continue
			}
			if f.searchU(cycleSize+1, ln.other^1, ln.edgeIndex) {
				return true
			}
		}
	}

	delete(f.vVisited, node>>1)
	return false
}

// solution collects the edge indices recorded in the two visited maps,
// plus the closing edge when the walk (rather than a recursive helper)
// closed the cycle, and sorts them ascending.
func (f *Finder) solution(closing uint32, hasClosing bool) *core.Solution {
	total := len(f.uVisited) + len(f.vVisited)
	if hasClosing {
		total++
	}
	if total != core.CycleLength {
		panic(fmt.Sprintf(
			"cycle: visited maps hold %d U + %d V entries (closing=%v), want %d total",
			len(f.uVisited), len(f.vVisited), hasClosing, core.CycleLength))
	}

	var sol core.Solution
	i := 0
	for _, e := range f.uVisited {
		sol[i] = e
		i++
	}
	for _, e := range f.vVisited {
		sol[i] = e
		i++
	}
	if hasClosing {
		sol[i] = closing
	}

	sort.Slice(sol[:], func(a, b int) bool { return sol[a] < sol[b] })
	return &sol
}
