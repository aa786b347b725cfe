// Package graphtest provides deterministic fixture builders and a small
// splitmix64-seeded generator for exercising graphir: nothing here needs to
// be indistinguishable from random, only reproducible across runs.
package graphtest

import (
	"github.com/hashicorp/go-hclog"
	"github.com/kestrelir/graphir"
	"github.com/kestrelir/graphir/diag"
	"github.com/kestrelir/graphir/hazmat/ir"
	"github.com/kestrelir/graphir/internal/support"
)

// Gen is a small deterministic generator seeded from a string label, used
// to pick reproducible but varied shapes in fixtures and fuzz corpora.
type Gen struct{ state uint64 }

// NewGen returns a Gen seeded from label.
func NewGen(label string) *Gen {
	h := support.HashString(0, label)
	if h == 0 {
		h = 0x9e3779b97f4a7c15
	}
	return &Gen{state: h}
}

// Uint64 returns the next splitmix64 output and advances the generator.
func (g *Gen) Uint64() uint64 {
	g.state += 0x9e3779b97f4a7c15
	z := g.state
	z = (z ^ (z >> 30)) * 0xbf58476d1ce4e5b9
	z = (z ^ (z >> 27)) * 0x94d049bb133111eb
	return z ^ (z >> 31)
}

// Intn returns a deterministic value in [0, n).
func (g *Gen) Intn(n int) int {
	if n <= 0 {
		return 0
	}
	return int(g.Uint64() % uint64(n))
}

// Bytes returns n deterministic bytes.
func (g *Gen) Bytes(n int) []byte {
	out := make([]byte, n)
	for i := range out {
		if i%8 == 0 {
			g.Uint64()
		}
		out[i] = byte(g.state >> (8 * uint(i%8)))
	}
	return out
}

// NewGraph returns a Graph, a Builder over it, and the Builder's diag.Sink,
// all sharing one null hclog logger, wired together the way a real
// front-end pairs them. name is not used.
func NewGraph(name string) (*graphir.Graph, *graphir.Builder, *diag.Sink) {
	logger := hclog.NewNullLogger()
	g := graphir.New(logger)
	sink := diag.NewSink(logger)
	b := graphir.NewBuilder(g, sink)
	return g, b, sink
}

// StraightLine builds a function with a single scalar variable, one write,
// and one read of it, mirroring the ParseExpr.t.cc fixture shape this
// port's distillation dropped: declare a var, assign to it, read it back,
// return the result. Returns the function's tail (End) node.
func StraightLine(g *graphir.Graph, b *graphir.Builder) *ir.Node {
	start := b.FunctionPrototype()
	decl := b.SrcVarDecl("x")
	g.MarkGlobalVar(decl)

	target := b.SrcVarAccess(decl)
	write := b.SrcAssignStmt(target, b.ConstantInt(42), nil)

	read := b.SrcVarAccess(decl)
	ret := b.Return(start, []*ir.Node{read}, []*ir.Node{write})
	return b.End(ret)
}

// Branching builds a function with an If over a constant-true condition
// whose two arms each assign a different constant to the same variable,
// merging back through a Phi before a single read, exercising the
// value-promotion join path.
func Branching(g *graphir.Graph, b *graphir.Builder) *ir.Node {
	start := b.FunctionPrototype()
	decl := b.SrcVarDecl("x")
	g.MarkGlobalVar(decl)

	ifNode := b.If(start, b.ConstantInt(1))
	trueCtrl := b.IfTrue(ifNode)
	falseCtrl := b.IfFalse(ifNode)

	writeTrue := b.SrcAssignStmt(b.SrcVarAccess(decl), b.ConstantInt(1), nil)
	writeFalse := b.SrcAssignStmt(b.SrcVarAccess(decl), b.ConstantInt(2), nil)

	merge := b.Merge(trueCtrl, falseCtrl)
	effectPhi := b.Phi(merge, nil, []*ir.Node{writeTrue, writeFalse})

	read := b.SrcVarAccess(decl)
	ret := b.Return(merge, []*ir.Node{read}, []*ir.Node{effectPhi})
	return b.End(ret)
}

// Looping builds a function with a Loop header whose body reassigns the
// loop variable, exercising the backedge cycle value-promotion must
// terminate on.
func Looping(g *graphir.Graph, b *graphir.Builder) *ir.Node {
	start := b.FunctionPrototype()
	decl := b.SrcVarDecl("i")
	g.MarkGlobalVar(decl)

	init := b.SrcAssignStmt(b.SrcVarAccess(decl), b.ConstantInt(0), nil)

	// Placeholder backedge control, patched to a self-loop below: this
	// fixture only needs a real cycle through the header's effect Phi, not
	// a faithfully schedulable loop body.
	loop := b.Loop(start, start)
	placeholder := b.ConstantInt(0)
	headerEffect := b.Phi(loop, nil, []*ir.Node{init, placeholder})

	bump := b.SrcAssignStmt(b.SrcVarAccess(decl), b.ConstantInt(1), headerEffect)
	headerEffect.SetEffectInput(1, bump)
	loop.SetControlInput(1, loop)

	read := b.SrcVarAccess(decl)
	ret := b.Return(loop, []*ir.Node{read}, []*ir.Node{headerEffect})
	return b.End(ret)
}
