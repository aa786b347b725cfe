package graphir

import (
	"github.com/kestrelir/graphir/diag"
	"github.com/kestrelir/graphir/hazmat/ir"
)

// Builder is the front-end's typed construction surface over a Graph: one
// method per opcode, validating where the opcode has a shape invariant a
// raw ir.New call can't enforce, and delegating to Graph's pools where the
// opcode is idempotent.
//
// A Builder is cheap to construct and carries no state of its own beyond
// the Graph and diag.Sink it was given; front ends typically keep one per
// function being lowered.
type Builder struct {
	g    *Graph
	sink *diag.Sink
}

// NewBuilder returns a Builder that constructs nodes in g and reports
// validation failures to sink.
func NewBuilder(g *Graph, sink *diag.Sink) *Builder {
	return &Builder{g: g, sink: sink}
}

func (b *Builder) insert(n *ir.Node) *ir.Node { return b.g.insertNode(n) }

// Dead returns g's Dead sentinel.
func (b *Builder) Dead() *ir.Node { return b.g.DeadNode() }

// ConstantInt returns the pooled ConstantInt node for v.
func (b *Builder) ConstantInt(v int64) *ir.Node { return b.g.ConstantInt(v) }

// ConstantStr returns the pooled ConstantStr node for s.
func (b *Builder) ConstantStr(s string) *ir.Node { return b.g.ConstantStr(s) }

// FunctionStub returns the pooled stub referring to the function body
// ending at tail.
func (b *Builder) FunctionStub(tail *ir.Node) *ir.Node { return b.g.FunctionStub(tail) }

// Argument constructs the index-th formal parameter of a function.
func (b *Builder) Argument(index int) *ir.Node {
	n := ir.New(ir.OpArgument, nil, nil, nil)
	n.AuxInt = int64(index)
	return b.insert(n)
}

// FunctionPrototype validates that every node in params is an Argument and,
// if so, builds the function's Start node with params as its value inputs.
// On validation failure it reports a diagnostic and returns nil.
func (b *Builder) FunctionPrototype(params ...*ir.Node) *ir.Node {
	for _, p := range params {
		if p.Op != ir.OpArgument {
			b.sink.Errorf("graphir: function prototype parameter must be Argument, got %s", p)
			return nil
		}
	}
	return b.insert(ir.New(ir.OpStart, params, nil, nil))
}

// End constructs the tail node closing a function body, over its final
// control points.
func (b *Builder) End(controls ...*ir.Node) *ir.Node {
	return b.insert(ir.New(ir.OpEnd, nil, controls, nil))
}

// Return constructs a return control point, carrying the returned values
// and the effects they depend on.
func (b *Builder) Return(ctrl *ir.Node, values, effects []*ir.Node) *ir.Node {
	return b.insert(ir.New(ir.OpReturn, values, []*ir.Node{ctrl}, effects))
}

// Alloca constructs a stack allocation site.
func (b *Builder) Alloca() *ir.Node {
	return b.insert(ir.New(ir.OpAlloca, nil, nil, nil))
}

// If constructs a branch point over cond, control-dependent on ctrl.
func (b *Builder) If(ctrl, cond *ir.Node) *ir.Node {
	return b.insert(ir.New(ir.OpIf, []*ir.Node{cond}, []*ir.Node{ctrl}, nil))
}

// IfTrue constructs the taken-branch projection of ifNode.
func (b *Builder) IfTrue(ifNode *ir.Node) *ir.Node {
	if !ifNode.Op.IsCtrlPoint() || ifNode.Op != ir.OpIf {
		b.sink.Errorf("graphir: IfTrue requires an If node, got %s", ifNode)
		return nil
	}
	return b.insert(ir.New(ir.OpIfTrue, nil, []*ir.Node{ifNode}, nil))
}

// IfFalse constructs the not-taken-branch projection of ifNode.
func (b *Builder) IfFalse(ifNode *ir.Node) *ir.Node {
	if ifNode.Op != ir.OpIf {
		b.sink.Errorf("graphir: IfFalse requires an If node, got %s", ifNode)
		return nil
	}
	return b.insert(ir.New(ir.OpIfFalse, nil, []*ir.Node{ifNode}, nil))
}

// Merge constructs a control confluence point over the given predecessors.
func (b *Builder) Merge(ctrls ...*ir.Node) *ir.Node {
	return b.insert(ir.New(ir.OpMerge, nil, ctrls, nil))
}

// Loop constructs a loop header's control pivot, over its entry edge and
// its single backedge.
func (b *Builder) Loop(entry, backedge *ir.Node) *ir.Node {
	return b.insert(ir.New(ir.OpLoop, nil, []*ir.Node{entry, backedge}, nil))
}

// Phi constructs a value- or effect-merging node control-pivoted on pivot
// (a Merge or Loop). Exactly one of values or effects should be non-empty;
// the other threads through EffectMerge instead when both are needed.
func (b *Builder) Phi(pivot *ir.Node, values, effects []*ir.Node) *ir.Node {
	return b.insert(ir.New(ir.OpPhi, values, []*ir.Node{pivot}, effects))
}

// EffectMerge constructs a confluence of independent effect chains,
// analogous to Phi but for the effect partition alone.
func (b *Builder) EffectMerge(effects ...*ir.Node) *ir.Node {
	return b.insert(ir.New(ir.OpEffectMerge, nil, nil, effects))
}

// Call constructs a call to stub with the given parameters, threaded
// through effectIn.
func (b *Builder) Call(stub *ir.Node, params []*ir.Node, effectIn *ir.Node) *ir.Node {
	values := make([]*ir.Node, 0, len(params)+1)
	values = append(values, stub)
	values = append(values, params...)
	return b.insert(ir.New(ir.OpCall, values, nil, []*ir.Node{effectIn}))
}

// MemLoad constructs a load from baseAddr+offset, ordered after effectIn.
func (b *Builder) MemLoad(baseAddr, offset, effectIn *ir.Node) *ir.Node {
	return b.insert(ir.New(ir.OpMemLoad, []*ir.Node{baseAddr, offset}, nil, []*ir.Node{effectIn}))
}

// MemStore constructs a store of srcVal to baseAddr+offset, ordered after
// effectIn.
func (b *Builder) MemStore(baseAddr, offset, srcVal, effectIn *ir.Node) *ir.Node {
	return b.insert(ir.New(ir.OpMemStore, []*ir.Node{baseAddr, offset, srcVal}, nil, []*ir.Node{effectIn}))
}

func (b *Builder) binOp(op ir.Opcode, lhs, rhs *ir.Node) *ir.Node {
	return b.insert(ir.New(op, []*ir.Node{lhs, rhs}, nil, nil))
}

func (b *Builder) BinAdd(lhs, rhs *ir.Node) *ir.Node { return b.binOp(ir.OpBinAdd, lhs, rhs) }
func (b *Builder) BinSub(lhs, rhs *ir.Node) *ir.Node { return b.binOp(ir.OpBinSub, lhs, rhs) }
func (b *Builder) BinMul(lhs, rhs *ir.Node) *ir.Node { return b.binOp(ir.OpBinMul, lhs, rhs) }
func (b *Builder) BinDiv(lhs, rhs *ir.Node) *ir.Node { return b.binOp(ir.OpBinDiv, lhs, rhs) }
func (b *Builder) BinLe(lhs, rhs *ir.Node) *ir.Node  { return b.binOp(ir.OpBinLe, lhs, rhs) }
func (b *Builder) BinLt(lhs, rhs *ir.Node) *ir.Node  { return b.binOp(ir.OpBinLt, lhs, rhs) }
func (b *Builder) BinGe(lhs, rhs *ir.Node) *ir.Node  { return b.binOp(ir.OpBinGe, lhs, rhs) }
func (b *Builder) BinGt(lhs, rhs *ir.Node) *ir.Node  { return b.binOp(ir.OpBinGt, lhs, rhs) }
func (b *Builder) BinEq(lhs, rhs *ir.Node) *ir.Node  { return b.binOp(ir.OpBinEq, lhs, rhs) }
func (b *Builder) BinNe(lhs, rhs *ir.Node) *ir.Node  { return b.binOp(ir.OpBinNe, lhs, rhs) }

// SrcVarDecl constructs a named scalar source-level variable declaration.
func (b *Builder) SrcVarDecl(name string) *ir.Node {
	nameNode := b.g.ConstantStr(name)
	return b.insert(ir.New(ir.OpSrcVarDecl, []*ir.Node{nameNode}, nil, nil))
}

// SrcArrayDecl constructs a named array declaration with the given
// per-dimension bound expressions.
func (b *Builder) SrcArrayDecl(name string, dims []*ir.Node) *ir.Node {
	nameNode := b.g.ConstantStr(name)
	values := make([]*ir.Node, 0, len(dims)+1)
	values = append(values, nameNode)
	values = append(values, dims...)
	return b.insert(ir.New(ir.OpSrcArrayDecl, values, nil, nil))
}

// SrcVarAccess constructs a read reference to decl.
func (b *Builder) SrcVarAccess(decl *ir.Node) *ir.Node {
	if decl.Op != ir.OpSrcVarDecl {
		b.sink.Errorf("graphir: SrcVarAccess requires a SrcVarDecl, got %s", decl)
		return nil
	}
	return b.insert(ir.New(ir.OpSrcVarAccess, []*ir.Node{decl}, nil, nil))
}

// SrcArrayAccess constructs an indexed read reference to decl. The number
// of indices must match decl's declared dimensionality.
func (b *Builder) SrcArrayAccess(decl *ir.Node, indices []*ir.Node) *ir.Node {
	if decl.Op != ir.OpSrcArrayDecl {
		b.sink.Errorf("graphir: SrcArrayAccess requires a SrcArrayDecl, got %s", decl)
		return nil
	}
	wantDims := decl.NumValueInputs() - 1
	if len(indices) != wantDims {
		b.sink.Errorf("graphir: SrcArrayAccess to %s expects %d indices, got %d", decl, wantDims, len(indices))
		return nil
	}
	values := make([]*ir.Node, 0, len(indices)+1)
	values = append(values, decl)
	values = append(values, indices...)
	return b.insert(ir.New(ir.OpSrcArrayAccess, values, nil, nil))
}

// SrcAssignStmt constructs an assignment of value to target (a
// SrcVarAccess or SrcArrayAccess), ordered after effectIn.
func (b *Builder) SrcAssignStmt(target, value, effectIn *ir.Node) *ir.Node {
	return b.insert(ir.New(ir.OpSrcAssignStmt, []*ir.Node{target, value}, nil, []*ir.Node{effectIn}))
}

// SrcInitialArray constructs a static initializer list for decl.
func (b *Builder) SrcInitialArray(decl *ir.Node, elems []*ir.Node) *ir.Node {
	values := make([]*ir.Node, 0, len(elems)+1)
	values = append(values, decl)
	values = append(values, elems...)
	return b.insert(ir.New(ir.OpSrcInitialArray, values, nil, nil))
}
