// Package schedule groups a SubGraph's nodes by their nearest enclosing
// control point. It is deliberately not a scheduler: it assigns no order
// within a block, inserts no copies, and makes no attempt to place
// pinned-vs-floating nodes correctly in the presence of loops. Think of it
// as the read-only shape a real scheduler would start from.
package schedule

import (
	graphir "github.com/kestrelir/graphir"
	"github.com/kestrelir/graphir/hazmat/ir"
)

// BasicBlockShape is the set of nodes whose nearest control point is
// Point, in no particular intra-block order.
type BasicBlockShape struct {
	Point *ir.Node
	Nodes []*ir.Node
}

// Blocks partitions every node reachable from sg by FindNearestCtrlPoint,
// returning one BasicBlockShape per distinct control point observed. A node
// with no reachable control point (an orphaned constant subexpression) is
// omitted; callers that care about those should walk sg.Nodes() directly.
func Blocks(sg graphir.SubGraph) []BasicBlockShape {
	order := make([]*ir.Node, 0)
	byPoint := make(map[*ir.Node][]*ir.Node)

	for n := range sg.Nodes() {
		point := graphir.FindNearestCtrlPoint(n)
		if point == nil {
			continue
		}
		if _, ok := byPoint[point]; !ok {
			order = append(order, point)
		}
		byPoint[point] = append(byPoint[point], n)
	}

	out := make([]BasicBlockShape, len(order))
	for i, point := range order {
		out[i] = BasicBlockShape{Point: point, Nodes: byPoint[point]}
	}
	return out
}
