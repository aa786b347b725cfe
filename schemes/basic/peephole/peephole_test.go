package peephole_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	graphir "github.com/kestrelir/graphir"
	"github.com/kestrelir/graphir/hazmat/ir"
	"github.com/kestrelir/graphir/schemes/basic/peephole"
)

func runPeephole(t *testing.T, g *graphir.Graph, tail *ir.Node) {
	t.Helper()
	graphir.Run(g, []graphir.SubGraph{graphir.NewSubGraph(tail)}, peephole.New())
}

func TestFoldConstants(t *testing.T) {
	cases := []struct {
		name string
		op   func(b *graphir.Builder, a, c *ir.Node) *ir.Node
		a, b int64
		want int64
	}{
		{"add", (*graphir.Builder).BinAdd, 2, 3, 5},
		{"sub", (*graphir.Builder).BinSub, 5, 3, 2},
		{"mul", (*graphir.Builder).BinMul, 4, 3, 12},
		{"div", (*graphir.Builder).BinDiv, 9, 3, 3},
		{"le_true", (*graphir.Builder).BinLe, 2, 3, 1},
		{"lt_false", (*graphir.Builder).BinLt, 3, 3, 0},
		{"eq_true", (*graphir.Builder).BinEq, 7, 7, 1},
		{"ne_false", (*graphir.Builder).BinNe, 7, 7, 0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			g := graphir.New(nil)
			b := graphir.NewBuilder(g, nil)

			start := b.FunctionPrototype()
			expr := tc.op(b, b.ConstantInt(tc.a), b.ConstantInt(tc.b))
			ret := b.Return(start, []*ir.Node{expr}, nil)
			tail := b.End(ret)

			runPeephole(t, g, tail)

			got := ret.GetValueInput(0)
			require.Equal(t, ir.OpConstantInt, got.Op)
			assert.Equal(t, tc.want, graphir.ConstantIntValue(got))
		})
	}
}

func TestDivByZeroDoesNotFold(t *testing.T) {
	g := graphir.New(nil)
	b := graphir.NewBuilder(g, nil)

	start := b.FunctionPrototype()
	expr := b.BinDiv(b.ConstantInt(9), b.ConstantInt(0))
	ret := b.Return(start, []*ir.Node{expr}, nil)
	tail := b.End(ret)

	runPeephole(t, g, tail)

	got := ret.GetValueInput(0)
	assert.Equal(t, ir.OpBinDiv, got.Op, "a division by a literal zero must survive folding untouched")
}

func TestIdentities(t *testing.T) {
	g := graphir.New(nil)
	b := graphir.NewBuilder(g, nil)

	x := b.Argument(0)
	fp := b.FunctionPrototype(x)

	ret := b.Return(fp, []*ir.Node{
		b.BinAdd(x, b.ConstantInt(0)),
		b.BinAdd(b.ConstantInt(0), x),
		b.BinMul(x, b.ConstantInt(1)),
		b.BinMul(b.ConstantInt(1), x),
		b.BinSub(x, b.ConstantInt(0)),
	}, nil)
	tail := b.End(ret)

	runPeephole(t, g, tail)

	for i := 0; i < 5; i++ {
		assert.Same(t, x, ret.GetValueInput(i), "identity %d should collapse to the argument itself", i)
	}
}

func TestSelfSubtractFoldsToZero(t *testing.T) {
	g := graphir.New(nil)
	b := graphir.NewBuilder(g, nil)
	x := b.Argument(0)
	fp := b.FunctionPrototype(x)

	expr := b.BinSub(x, x)
	ret := b.Return(fp, []*ir.Node{expr}, nil)
	tail := b.End(ret)

	runPeephole(t, g, tail)

	got := ret.GetValueInput(0)
	require.Equal(t, ir.OpConstantInt, got.Op)
	assert.Equal(t, int64(0), graphir.ConstantIntValue(got))
}

func TestPhiCollapse(t *testing.T) {
	g := graphir.New(nil)
	b := graphir.NewBuilder(g, nil)
	start := b.FunctionPrototype()

	ifNode := b.If(start, b.ConstantInt(1))
	trueCtrl := b.IfTrue(ifNode)
	falseCtrl := b.IfFalse(ifNode)
	merge := b.Merge(trueCtrl, falseCtrl)

	same := b.ConstantInt(7)
	phi := b.Phi(merge, []*ir.Node{same, same}, nil)

	ret := b.Return(merge, []*ir.Node{phi}, nil)
	tail := b.End(ret)

	runPeephole(t, g, tail)

	assert.Same(t, same, ret.GetValueInput(0), "a Phi whose inputs are all the same node collapses to it")
}
