package graphir_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	graphir "github.com/kestrelir/graphir"
)

func TestNodeMarkerIsolation(t *testing.T) {
	g := graphir.New(nil)
	b := graphir.NewBuilder(g, nil)
	preexisting := b.ConstantInt(1)

	m1 := graphir.NewNodeMarker(g, 3)
	lo1, hi1 := m1.Range()
	assert.Equal(t, uint32(0), m1.Get(preexisting), "a node older than the marker reads back its default state")

	n := b.ConstantInt(2)
	m1.Set(n, 2)
	assert.Equal(t, uint32(2), m1.Get(n))

	m2 := graphir.NewNodeMarker(g, 5)
	lo2, hi2 := m2.Range()

	assert.GreaterOrEqual(t, lo2, hi1, "a later marker's range must not overlap an earlier one's")
	assert.Equal(t, hi1-lo1, uint32(3))
	assert.Equal(t, hi2-lo2, uint32(5))

	// n was tagged under m1; m2 has never touched it, so it reads as m2's
	// default even though its raw word is nonzero.
	assert.Equal(t, uint32(0), m2.Get(n))
}

func TestNodeMarkerRejectsOutOfRangeState(t *testing.T) {
	g := graphir.New(nil)
	b := graphir.NewBuilder(g, nil)
	n := b.ConstantInt(1)

	m := graphir.NewNodeMarker(g, 2)
	assert.Panics(t, func() { m.Set(n, 2) })
}

func TestNodeMarkerZeroArityRejected(t *testing.T) {
	g := graphir.New(nil)
	assert.Panics(t, func() { graphir.NewNodeMarker(g, 0) })
}
