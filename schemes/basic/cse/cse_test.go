package cse_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	graphir "github.com/kestrelir/graphir"
	"github.com/kestrelir/graphir/hazmat/ir"
	"github.com/kestrelir/graphir/schemes/basic/cse"
)

func TestCommutativeBinOpDeduped(t *testing.T) {
	g := graphir.New(nil)
	b := graphir.NewBuilder(g, nil)

	x := b.Argument(0)
	y := b.Argument(1)
	fp := b.FunctionPrototype(x, y)

	// Same operands in opposite order: commutative canonicalization must
	// still recognize these as the same expression.
	first := b.BinAdd(x, y)
	second := b.BinAdd(y, x)

	ret := b.Return(fp, []*ir.Node{first, second}, nil)
	tail := b.End(ret)

	graphir.Run(g, []graphir.SubGraph{graphir.NewSubGraph(tail)}, cse.New())

	assert.Same(t, ret.GetValueInput(0), ret.GetValueInput(1), "x+y and y+x must CSE to one node")
}

func TestNonCommutativeRequiresExactOrder(t *testing.T) {
	g := graphir.New(nil)
	b := graphir.NewBuilder(g, nil)

	x := b.Argument(0)
	y := b.Argument(1)
	fp := b.FunctionPrototype(x, y)

	first := b.BinSub(x, y)
	second := b.BinSub(y, x)

	ret := b.Return(fp, []*ir.Node{first, second}, nil)
	tail := b.End(ret)

	graphir.Run(g, []graphir.SubGraph{graphir.NewSubGraph(tail)}, cse.New())

	assert.NotSame(t, ret.GetValueInput(0), ret.GetValueInput(1), "x-y and y-x are different expressions")
}

func TestMemLoadDeduped(t *testing.T) {
	g := graphir.New(nil)
	b := graphir.NewBuilder(g, nil)

	fp := b.FunctionPrototype()
	base := b.Alloca()
	offset := b.ConstantInt(0)

	first := b.MemLoad(base, offset, fp)
	second := b.MemLoad(base, offset, fp)

	ret := b.Return(fp, []*ir.Node{first, second}, nil)
	tail := b.End(ret)

	graphir.Run(g, []graphir.SubGraph{graphir.NewSubGraph(tail)}, cse.New())

	assert.Same(t, ret.GetValueInput(0), ret.GetValueInput(1), "two loads of the same address after the same effect must CSE")
}

func TestMemLoadNotDedupedAcrossDifferentEffects(t *testing.T) {
	g := graphir.New(nil)
	b := graphir.NewBuilder(g, nil)

	fp := b.FunctionPrototype()
	base := b.Alloca()
	offset := b.ConstantInt(0)

	store := b.MemStore(base, offset, b.ConstantInt(1), fp)
	first := b.MemLoad(base, offset, fp)
	second := b.MemLoad(base, offset, store)

	ret := b.Return(fp, []*ir.Node{first, second}, []*ir.Node{store})
	tail := b.End(ret)

	graphir.Run(g, []graphir.SubGraph{graphir.NewSubGraph(tail)}, cse.New())

	assert.NotSame(t, ret.GetValueInput(0), ret.GetValueInput(1), "a store between the two loads invalidates the dedup")
}
