package graphir_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	graphir "github.com/kestrelir/graphir"
	"github.com/kestrelir/graphir/diag"
	"github.com/kestrelir/graphir/hazmat/ir"
)

func TestFunctionPrototypeRejectsNonArgument(t *testing.T) {
	g := graphir.New(nil)
	sink := diag.NewSink(nil)
	b := graphir.NewBuilder(g, sink)

	notArg := b.ConstantInt(1)
	before := g.NumNodes()
	got := b.FunctionPrototype(notArg)

	assert.Nil(t, got, "a rejected builder call returns nil")
	assert.Equal(t, before, g.NumNodes(), "validation runs before any node is allocated")
	assert.True(t, sink.HasErrors())
}

func TestFunctionPrototypeAcceptsArguments(t *testing.T) {
	g := graphir.New(nil)
	b := graphir.NewBuilder(g, diag.NewSink(nil))

	x, y := b.Argument(0), b.Argument(1)
	start := b.FunctionPrototype(x, y)
	require.NotNil(t, start)
	assert.Equal(t, ir.OpStart, start.Op)
}

func TestSrcArrayAccessRequiresMatchingDimensionCount(t *testing.T) {
	g := graphir.New(nil)
	sink := diag.NewSink(nil)
	b := graphir.NewBuilder(g, sink)

	decl := b.SrcArrayDecl("a", []*ir.Node{b.ConstantInt(4), b.ConstantInt(4)})
	idx := b.ConstantInt(0)
	before := g.NumNodes()

	got := b.SrcArrayAccess(decl, []*ir.Node{idx})

	assert.Nil(t, got)
	assert.Equal(t, before, g.NumNodes())
	assert.True(t, sink.HasErrors())
}

func TestSrcArrayAccessAcceptsMatchingDimensionCount(t *testing.T) {
	g := graphir.New(nil)
	b := graphir.NewBuilder(g, diag.NewSink(nil))

	decl := b.SrcArrayDecl("a", []*ir.Node{b.ConstantInt(4), b.ConstantInt(4)})
	got := b.SrcArrayAccess(decl, []*ir.Node{b.ConstantInt(0), b.ConstantInt(1)})
	require.NotNil(t, got)
	assert.Equal(t, ir.OpSrcArrayAccess, got.Op)
}

func TestIfTrueIfFalseRequireAnIfNode(t *testing.T) {
	g := graphir.New(nil)
	sink := diag.NewSink(nil)
	b := graphir.NewBuilder(g, sink)

	notIf := b.ConstantInt(1)
	assert.Nil(t, b.IfTrue(notIf))
	assert.Nil(t, b.IfFalse(notIf))
	assert.True(t, sink.HasErrors())
}

func TestSrcVarAccessRequiresASrcVarDecl(t *testing.T) {
	g := graphir.New(nil)
	sink := diag.NewSink(nil)
	b := graphir.NewBuilder(g, sink)

	notDecl := b.ConstantInt(1)
	assert.Nil(t, b.SrcVarAccess(notDecl))
	assert.True(t, sink.HasErrors())
}

func TestSinkWarningIsNotAnError(t *testing.T) {
	sink := diag.NewSink(nil)
	sink.Warningf("just a warning")
	assert.False(t, sink.HasErrors())
	assert.Len(t, sink.Diagnostics(), 1)
}
