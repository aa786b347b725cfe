package graphir

import (
	"iter"

	"github.com/kestrelir/graphir/hazmat/ir"
)

// SubGraph is a handle onto one function body or global initializer,
// identified purely by the identity of its tail node (conventionally an
// End or a Return reachable from it). Two SubGraph values
// compare Equal iff they share a tail.
//
// A SubGraph does not own any nodes; it is a view computed lazily by
// walking inputs backward from the tail. Nodes() and Edges() re-walk the
// graph on every call, so callers doing repeated traversals should cache
// the result themselves.
type SubGraph struct {
	tail *ir.Node
}

// NewSubGraph wraps tail as a SubGraph handle.
func NewSubGraph(tail *ir.Node) SubGraph { return SubGraph{tail: tail} }

// Tail returns the node identifying this region.
func (sg SubGraph) Tail() *ir.Node { return sg.tail }

// Equal reports whether sg and other share a tail.
func (sg SubGraph) Equal(other SubGraph) bool { return sg.tail == other.tail }

// Nodes yields every node reachable from the tail by walking inputs,
// breadth-first, each exactly once. Order is deterministic for a given
// graph shape but is not otherwise specified.
func (sg SubGraph) Nodes() iter.Seq[*ir.Node] {
	return func(yield func(*ir.Node) bool) {
		if sg.tail == nil {
			return
		}
		seen := map[*ir.Node]bool{sg.tail: true}
		queue := []*ir.Node{sg.tail}
		for len(queue) > 0 {
			n := queue[0]
			queue = queue[1:]
			if !yield(n) {
				return
			}
			for _, in := range n.Inputs() {
				if in != nil && !seen[in] {
					seen[in] = true
					queue = append(queue, in)
				}
			}
		}
	}
}

// Edges yields one Use per input slot of every node Nodes would yield,
// skipping unmaterialized (nil) slots.
func (sg SubGraph) Edges() iter.Seq[Use] {
	return func(yield func(Use) bool) {
		for n := range sg.Nodes() {
			for i, in := range n.Inputs() {
				if in == nil {
					continue
				}
				u := Use{Source: n, Dest: in, Kind: n.PartitionKind(i)}
				if !yield(u) {
					return
				}
			}
		}
	}
}
