package graphir_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	graphir "github.com/kestrelir/graphir"
	"github.com/kestrelir/graphir/hazmat/ir"
)

func TestSubGraphWithNoInputsYieldsExactlyOneNode(t *testing.T) {
	g := graphir.New(nil)
	b := graphir.NewBuilder(g, nil)
	tail := b.End()

	var seen []*ir.Node
	for n := range graphir.NewSubGraph(tail).Nodes() {
		seen = append(seen, n)
	}
	assert.Equal(t, []*ir.Node{tail}, seen)
}

func TestSubGraphEqualOnTailIdentity(t *testing.T) {
	g := graphir.New(nil)
	b := graphir.NewBuilder(g, nil)
	tailA := b.End(b.FunctionPrototype())
	tailB := b.End(b.FunctionPrototype())

	sgA1 := graphir.NewSubGraph(tailA)
	sgA2 := graphir.NewSubGraph(tailA)
	sgB := graphir.NewSubGraph(tailB)

	assert.True(t, sgA1.Equal(sgA2))
	assert.False(t, sgA1.Equal(sgB))
}

func TestSubGraphNodesVisitsEachNodeOnce(t *testing.T) {
	g := graphir.New(nil)
	b := graphir.NewBuilder(g, nil)

	shared := b.ConstantInt(7)
	start := b.FunctionPrototype()
	sum := b.BinAdd(shared, shared)
	ret := b.Return(start, []*ir.Node{sum}, nil)
	tail := b.End(ret)

	counts := map[*ir.Node]int{}
	for n := range graphir.NewSubGraph(tail).Nodes() {
		counts[n]++
	}
	assert.Equal(t, 1, counts[shared], "a node reached by two distinct input slots is still yielded once")
}

func TestSubGraphEdgesCarryPartitionKind(t *testing.T) {
	g := graphir.New(nil)
	b := graphir.NewBuilder(g, nil)

	start := b.FunctionPrototype()
	cond := b.ConstantInt(1)
	ifNode := b.If(start, cond)
	trueCtrl := b.IfTrue(ifNode)
	falseCtrl := b.IfFalse(ifNode)
	merge := b.Merge(trueCtrl, falseCtrl)
	tail := b.End(merge)

	var sawValue, sawControl bool
	for u := range graphir.NewSubGraph(tail).Edges() {
		switch u.Kind {
		case ir.Value:
			sawValue = true
		case ir.Control:
			sawControl = true
		}
	}
	assert.True(t, sawValue, "If's condition is a value edge")
	assert.True(t, sawControl, "Merge's predecessors are control edges")
}
