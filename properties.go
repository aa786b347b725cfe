package graphir

import (
	"fmt"

	"github.com/kestrelir/graphir/hazmat/ir"
)

// This file is the read-only counterpart to builder.go: one accessor per
// opcode shape, each assuming (and panicking if not) that n really is the
// opcode it claims to read. Properties never mutate; anything that needs
// to change a node's shape belongs in builder.go or the reducer instead.

func requireOp(n *ir.Node, want ir.Opcode) {
	if n.Op != want {
		panic(fmt.Sprintf("graphir: expected %s, got %s", want, n))
	}
}

// BinOpLHS and BinOpRHS read the two operands of any VirtBinOps member.
func BinOpLHS(n *ir.Node) *ir.Node {
	if !n.Op.IsBinOp() {
		panic(fmt.Sprintf("graphir: %s is not a binary op", n))
	}
	return n.GetValueInput(0)
}

func BinOpRHS(n *ir.Node) *ir.Node {
	if !n.Op.IsBinOp() {
		panic(fmt.Sprintf("graphir: %s is not a binary op", n))
	}
	return n.GetValueInput(1)
}

// MemBaseAddr and MemOffset read the address operands shared by MemLoad
// and MemStore (VirtMemOps).
func MemBaseAddr(n *ir.Node) *ir.Node {
	if !n.Op.IsMemOp() {
		panic(fmt.Sprintf("graphir: %s is not a memory op", n))
	}
	return n.GetValueInput(0)
}

func MemOffset(n *ir.Node) *ir.Node {
	if !n.Op.IsMemOp() {
		panic(fmt.Sprintf("graphir: %s is not a memory op", n))
	}
	return n.GetValueInput(1)
}

// MemSrcVal reads the value being written by a MemStore.
func MemSrcVal(n *ir.Node) *ir.Node {
	requireOp(n, ir.OpMemStore)
	return n.GetValueInput(2)
}

// MemEffectIn reads the effect a memory op is ordered after.
func MemEffectIn(n *ir.Node) *ir.Node {
	if !n.Op.IsMemOp() {
		panic(fmt.Sprintf("graphir: %s is not a memory op", n))
	}
	return n.GetEffectInput(0)
}

// IfCond reads the branch condition of an If.
func IfCond(n *ir.Node) *ir.Node {
	requireOp(n, ir.OpIf)
	return n.GetValueInput(0)
}

// IfBranchOf reads the If node a VirtIfBranches projection (IfTrue or
// IfFalse) belongs to.
func IfBranchOf(n *ir.Node) *ir.Node {
	if !n.Op.IsIfBranch() {
		panic(fmt.Sprintf("graphir: %s is not an if-branch projection", n))
	}
	return n.GetControlInput(0)
}

// LoopEntry and LoopBackedge read a Loop pivot's two control predecessors.
func LoopEntry(n *ir.Node) *ir.Node {
	requireOp(n, ir.OpLoop)
	return n.GetControlInput(0)
}

func LoopBackedge(n *ir.Node) *ir.Node {
	requireOp(n, ir.OpLoop)
	return n.GetControlInput(1)
}

// MergePredecessors reads every control predecessor of a Merge, in input
// order.
func MergePredecessors(n *ir.Node) []*ir.Node {
	requireOp(n, ir.OpMerge)
	out := make([]*ir.Node, n.NumControlInputs())
	for i := range out {
		out[i] = n.GetControlInput(i)
	}
	return out
}

// CtrlPivot reads the Merge or Loop a Phi is control-dependent on. It
// panics for any other opcode, EffectMerge included.
func CtrlPivot(n *ir.Node) *ir.Node {
	requireOp(n, ir.OpPhi)
	return n.GetControlInput(0)
}

// MapCtrlNode maps the i-th control predecessor of a Phi's pivot to the
// corresponding i-th input of n in the given partition: index i of the
// pivot's Merge/Loop predecessor list lines up with value input i (for a
// value Phi) or effect input i (for an effect Phi).
func MapCtrlNode(n *ir.Node, i int, kind ir.PartitionKind) *ir.Node {
	requireOp(n, ir.OpPhi)
	switch kind {
	case ir.Value:
		return n.GetValueInput(i)
	case ir.Effect:
		return n.GetEffectInput(i)
	default:
		panic(fmt.Sprintf("graphir: MapCtrlNode: unsupported kind %s", kind))
	}
}

// EffectMergeInputs reads every effect chain an EffectMerge joins.
func EffectMergeInputs(n *ir.Node) []*ir.Node {
	requireOp(n, ir.OpEffectMerge)
	out := make([]*ir.Node, n.NumEffectInputs())
	for i := range out {
		out[i] = n.GetEffectInput(i)
	}
	return out
}

// CallFuncStub reads the FunctionStub a Call targets.
func CallFuncStub(n *ir.Node) *ir.Node {
	requireOp(n, ir.OpCall)
	return n.GetValueInput(0)
}

// CallParams reads a Call's actual parameters, in order.
func CallParams(n *ir.Node) []*ir.Node {
	requireOp(n, ir.OpCall)
	out := make([]*ir.Node, n.NumValueInputs()-1)
	for i := range out {
		out[i] = n.GetValueInput(i + 1)
	}
	return out
}

// FunctionStart walks the FunctionStub's referenced body backward from its
// tail and returns the first node with opcode Start that the walk reaches.
func FunctionStart(n *ir.Node) *ir.Node {
	requireOp(n, ir.OpFunctionStub)
	for body := range NewSubGraph(n.AuxNode).Nodes() {
		if body.Op == ir.OpStart {
			return body
		}
	}
	panic(fmt.Sprintf("graphir: %s: no Start node reachable from its tail", n))
}

// ConstantIntValue reads a ConstantInt's literal value.
func ConstantIntValue(n *ir.Node) int64 {
	requireOp(n, ir.OpConstantInt)
	return n.AuxInt
}

// ConstantStrValue reads a ConstantStr's literal value.
func ConstantStrValue(n *ir.Node) string {
	requireOp(n, ir.OpConstantStr)
	return n.AuxStr
}

// ArgumentIndex reads an Argument's ordinal position in its function's
// parameter list.
func ArgumentIndex(n *ir.Node) int {
	requireOp(n, ir.OpArgument)
	return int(n.AuxInt)
}

// SrcName reads the declared name of a SrcVarDecl or SrcArrayDecl.
func SrcName(n *ir.Node) string {
	if n.Op != ir.OpSrcVarDecl && n.Op != ir.OpSrcArrayDecl {
		panic(fmt.Sprintf("graphir: %s is not a source declaration", n))
	}
	return ConstantStrValue(n.GetValueInput(0))
}

// SrcDims reads the per-dimension bound (or index) expressions of a
// SrcArrayDecl or SrcArrayAccess: both lay their dimension list out
// starting at value-input index 1, the declaration (or self-name) sitting
// at index 0.
func SrcDims(n *ir.Node) []*ir.Node {
	if n.Op != ir.OpSrcArrayDecl && n.Op != ir.OpSrcArrayAccess {
		panic(fmt.Sprintf("graphir: %s does not carry dimensions", n))
	}
	out := make([]*ir.Node, n.NumValueInputs()-1)
	for i := range out {
		out[i] = n.GetValueInput(i + 1)
	}
	return out
}

// SrcAccessDecl reads the declaration a SrcVarAccess or SrcArrayAccess
// refers to.
func SrcAccessDecl(n *ir.Node) *ir.Node {
	if n.Op != ir.OpSrcVarAccess && n.Op != ir.OpSrcArrayAccess {
		panic(fmt.Sprintf("graphir: %s is not a source access", n))
	}
	return n.GetValueInput(0)
}

// SrcAssignTarget and SrcAssignValue read the two sides of an assignment.
func SrcAssignTarget(n *ir.Node) *ir.Node {
	requireOp(n, ir.OpSrcAssignStmt)
	return n.GetValueInput(0)
}

func SrcAssignValue(n *ir.Node) *ir.Node {
	requireOp(n, ir.OpSrcAssignStmt)
	return n.GetValueInput(1)
}
