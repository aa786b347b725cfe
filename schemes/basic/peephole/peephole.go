// Package peephole implements the constant-folding and identity-rewriting
// reducer: arithmetic and relational ops over two ConstantInt operands fold
// to their result, trivial identities (x+0, x*1, x-x, ...) collapse to one
// of their operands, and Phi nodes whose inputs are all the same value
// collapse to that value. It is a concrete Reducer consumed by
// graphir.Run, not part of the core.
package peephole

import (
	graphir "github.com/kestrelir/graphir"
	"github.com/kestrelir/graphir/hazmat/ir"
)

// Reducer is the fixed-point peephole pass. Its zero value is ready to use;
// it carries no state between Reduce calls.
type Reducer struct{}

// New returns a ready-to-run peephole Reducer.
func New() *Reducer { return &Reducer{} }

func (*Reducer) Name() string { return "peephole" }

func (*Reducer) Reduce(e graphir.Editor, n *ir.Node) graphir.Reduction {
	switch {
	case n.Op.IsBinOp():
		if red, ok := reduceBinOp(e, n); ok {
			return red
		}
	case n.Op == ir.OpPhi:
		if red, ok := reducePhi(n); ok {
			return red
		}
	}
	return graphir.Unchanged()
}

func reduceBinOp(e graphir.Editor, n *ir.Node) (graphir.Reduction, bool) {
	lhs, rhs := graphir.BinOpLHS(n), graphir.BinOpRHS(n)

	if lhs.Op == ir.OpConstantInt && rhs.Op == ir.OpConstantInt {
		a, b := graphir.ConstantIntValue(lhs), graphir.ConstantIntValue(rhs)
		if v, ok := foldConstants(n.Op, a, b); ok {
			return graphir.Changed(e.Graph().ConstantInt(v)), true
		}
	}

	if repl, ok := foldIdentity(e.Graph(), n.Op, lhs, rhs); ok {
		return graphir.Changed(repl), true
	}

	return graphir.Reduction{}, false
}

func foldConstants(op ir.Opcode, a, b int64) (int64, bool) {
	switch op {
	case ir.OpBinAdd:
		return a + b, true
	case ir.OpBinSub:
		return a - b, true
	case ir.OpBinMul:
		return a * b, true
	case ir.OpBinDiv:
		if b == 0 {
			return 0, false
		}
		return a / b, true
	case ir.OpBinLe:
		return boolInt(a <= b), true
	case ir.OpBinLt:
		return boolInt(a < b), true
	case ir.OpBinGe:
		return boolInt(a >= b), true
	case ir.OpBinGt:
		return boolInt(a > b), true
	case ir.OpBinEq:
		return boolInt(a == b), true
	case ir.OpBinNe:
		return boolInt(a != b), true
	default:
		return 0, false
	}
}

func boolInt(b bool) int64 {
	if b {
		return 1
	}
	return 0
}

// foldIdentity recognizes x+0, 0+x, x*1, 1*x, x-0, x-x, x*0, 0*x. Division
// identities are deliberately omitted: x/1 is sound but x/x is not when x
// may be zero, and the pass doesn't carry the range information needed to
// tell the two cases apart.
func foldIdentity(g *graphir.Graph, op ir.Opcode, lhs, rhs *ir.Node) (*ir.Node, bool) {
	isZero := func(n *ir.Node) bool { return n.Op == ir.OpConstantInt && graphir.ConstantIntValue(n) == 0 }
	isOne := func(n *ir.Node) bool { return n.Op == ir.OpConstantInt && graphir.ConstantIntValue(n) == 1 }

	switch op {
	case ir.OpBinAdd:
		if isZero(rhs) {
			return lhs, true
		}
		if isZero(lhs) {
			return rhs, true
		}
	case ir.OpBinSub:
		if isZero(rhs) {
			return lhs, true
		}
		if lhs == rhs {
			return g.ConstantInt(0), true
		}
	case ir.OpBinMul:
		if isOne(rhs) {
			return lhs, true
		}
		if isOne(lhs) {
			return rhs, true
		}
		if isZero(rhs) || isZero(lhs) {
			return g.ConstantInt(0), true
		}
	}
	return nil, false
}

// reducePhi collapses a Phi whose value inputs (or, for an effect Phi, whose
// effect inputs) are all the same node into that node.
func reducePhi(n *ir.Node) (graphir.Reduction, bool) {
	if nv := n.NumValueInputs(); nv > 0 {
		common := n.GetValueInput(0)
		for i := 1; i < nv; i++ {
			if n.GetValueInput(i) != common {
				return graphir.Reduction{}, false
			}
		}
		return graphir.Changed(common), true
	}
	if ne := n.NumEffectInputs(); ne > 0 {
		common := n.GetEffectInput(0)
		for i := 1; i < ne; i++ {
			if n.GetEffectInput(i) != common {
				return graphir.Reduction{}, false
			}
		}
		return graphir.Changed(common), true
	}
	return graphir.Reduction{}, false
}

var _ graphir.Reducer = (*Reducer)(nil)
