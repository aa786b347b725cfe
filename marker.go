package graphir

import (
	"fmt"

	"github.com/kestrelir/graphir/hazmat/ir"
)

// NodeMarker is a per-pass tag carved out of a Graph-wide monotonically
// increasing range, so a Reducer can stamp nodes with small integer state
// (unvisited/on-stack/visited, say) in O(1) without a side map, and without
// colliding with any other marker live on the same graph.
//
// Nodes created before a NodeMarker exists, or never touched by it, read
// back as state 0 — the marker's implicit default.
type NodeMarker struct {
	g      *Graph
	lo, hi uint32
	arity  uint32
}

// NewNodeMarker reserves arity consecutive states on g and returns a
// marker that can tag any node in g with one of them.
func NewNodeMarker(g *Graph, arity uint32) *NodeMarker {
	if arity == 0 {
		panic("graphir: NodeMarker arity must be positive")
	}
	lo := g.nextMarkerLo(arity)
	return &NodeMarker{g: g, lo: lo, hi: lo + arity, arity: arity}
}

// Get returns n's current state under this marker: 0 if n was never Set
// (or was last Set by a different marker's overlapping range, which cannot
// happen for markers obtained from the same Graph).
func (m *NodeMarker) Get(n *ir.Node) uint32 {
	if n.Marker >= m.lo && n.Marker < m.hi {
		return n.Marker - m.lo
	}
	return 0
}

// Set tags n with state, which must be less than the marker's arity.
func (m *NodeMarker) Set(n *ir.Node, state uint32) {
	if state >= m.arity {
		panic(fmt.Sprintf("graphir: marker state %d out of range [0,%d)", state, m.arity))
	}
	n.Marker = m.lo + state
}

// Range returns the half-open [lo, hi) range of raw Node.Marker values this
// marker owns, mostly useful for diagnostics.
func (m *NodeMarker) Range() (lo, hi uint32) { return m.lo, m.hi }
