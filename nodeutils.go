package graphir

import "github.com/kestrelir/graphir/hazmat/ir"

// FindNearestCtrlPoint walks backward from n over its own control inputs,
// then falls back to a breadth-first search of every input, until it finds
// a node satisfying ir.Opcode.IsCtrlPoint. It returns nil if n is not
// (transitively) control-anchored to anything — an orphaned constant
// subexpression, say.
func FindNearestCtrlPoint(n *ir.Node) *ir.Node {
	if n.Op.IsCtrlPoint() {
		return n
	}
	if n.NumControlInputs() > 0 {
		return FindNearestCtrlPoint(n.GetControlInput(0))
	}

	seen := map[*ir.Node]bool{n: true}
	queue := append([]*ir.Node(nil), n.Inputs()...)
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		if cur == nil || seen[cur] {
			continue
		}
		seen[cur] = true
		if cur.Op.IsCtrlPoint() {
			return cur
		}
		queue = append(queue, cur.Inputs()...)
	}
	return nil
}

// Adjacency is a BGL-style generic graph adapter: it lets a worklist
// algorithm written against this interface walk the node graph without
// depending on Graph or SubGraph directly.
type Adjacency interface {
	// Neighbors returns the nodes reachable from n along one hop of the
	// given kind, or of any kind when kind is ir.None.
	Neighbors(n *ir.Node, kind ir.PartitionKind) []*ir.Node
}

// InputAdjacency walks in the uses-to-defs direction: Neighbors(n, k)
// returns n's own inputs of kind k.
type InputAdjacency struct{}

func (InputAdjacency) Neighbors(n *ir.Node, kind ir.PartitionKind) []*ir.Node {
	if kind == ir.None {
		return n.Inputs()
	}
	all := n.Inputs()
	out := make([]*ir.Node, 0, len(all))
	for i, in := range all {
		if in != nil && n.PartitionKind(i) == kind {
			out = append(out, in)
		}
	}
	return out
}

// UserAdjacency walks in the defs-to-uses direction: Neighbors(n, k)
// returns every distinct node that uses n as an input of kind k.
type UserAdjacency struct{}

func (UserAdjacency) Neighbors(n *ir.Node, kind ir.PartitionKind) []*ir.Node {
	switch kind {
	case ir.Value:
		return n.ValueUsers()
	case ir.Control:
		return n.ControlUsers()
	case ir.Effect:
		return n.EffectUsers()
	default:
		return n.Users()
	}
}

var (
	_ Adjacency = InputAdjacency{}
	_ Adjacency = UserAdjacency{}
)
