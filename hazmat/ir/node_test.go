package ir

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPartitionOffsets(t *testing.T) {
	v0, v1 := New(OpConstantInt, nil, nil, nil), New(OpConstantInt, nil, nil, nil)
	c0 := New(OpStart, nil, nil, nil)
	e0 := New(OpStart, nil, nil, nil)

	n := New(OpBinAdd, []*Node{v0, v1}, []*Node{c0}, []*Node{e0})

	require.Equal(t, 2, n.NumValueInputs())
	require.Equal(t, 1, n.NumControlInputs())
	require.Equal(t, 1, n.NumEffectInputs())

	assert.Equal(t, Value, n.PartitionKind(0))
	assert.Equal(t, Value, n.PartitionKind(1))
	assert.Equal(t, Control, n.PartitionKind(2))
	assert.Equal(t, Effect, n.PartitionKind(3))
}

func TestUserListConsistency(t *testing.T) {
	a := New(OpConstantInt, nil, nil, nil)
	b := New(OpConstantInt, nil, nil, nil)
	add := New(OpBinAdd, []*Node{a, b}, nil, nil)

	assert.Equal(t, []*Node{add}, a.Users())
	assert.Equal(t, []*Node{add}, b.Users())

	// Appending a duplicate occurrence grows the multiset.
	add.AppendValueInput(a)
	assert.ElementsMatch(t, []*Node{add, add}, a.Users())
	assert.Equal(t, 3, add.NumValueInputs())

	// Removing one occurrence shrinks it back by exactly one.
	add.RemoveValueInput(2)
	assert.Equal(t, []*Node{add}, a.Users())
}

func TestSetInputMaintainsUsers(t *testing.T) {
	a := New(OpConstantInt, nil, nil, nil)
	b := New(OpConstantInt, nil, nil, nil)
	add := New(OpBinAdd, []*Node{a, b}, nil, nil)

	add.SetValueInput(0, b)

	assert.Empty(t, a.Users())
	assert.ElementsMatch(t, []*Node{add, add}, b.Users())
}

func TestReplaceUseOfWithFirstOccurrenceOnly(t *testing.T) {
	a := New(OpConstantInt, nil, nil, nil)
	b := New(OpConstantInt, nil, nil, nil)
	repl := New(OpConstantInt, nil, nil, nil)
	n := New(OpBinAdd, []*Node{a, a}, nil, nil)

	ok := n.ReplaceUseOfWith(a, repl, Value)
	require.True(t, ok)
	assert.Equal(t, repl, n.GetValueInput(0))
	assert.Equal(t, a, n.GetValueInput(1))
	_ = b
}

func TestReplaceWithAllKinds(t *testing.T) {
	a := New(OpConstantInt, nil, nil, nil)
	ctrl := New(OpStart, nil, nil, nil)
	repl := New(OpConstantInt, nil, nil, nil)

	user := New(OpIf, []*Node{a}, []*Node{ctrl}, nil)
	user.AppendControlInput(a) // a now appears as both a value and a control input

	a.ReplaceWith(repl, None)

	assert.Empty(t, a.Users())
	assert.Equal(t, repl, user.GetValueInput(0))
	assert.Equal(t, repl, user.GetControlInput(1))
	assert.Equal(t, ctrl, user.GetControlInput(0))
}

func TestReplaceWithRestrictedKind(t *testing.T) {
	a := New(OpConstantInt, nil, nil, nil)
	repl := New(OpConstantInt, nil, nil, nil)

	user := New(OpBinAdd, []*Node{a}, nil, nil)
	user.AppendControlInput(a)

	a.ReplaceWith(repl, Value)

	assert.Equal(t, repl, user.GetValueInput(0))
	assert.Equal(t, a, user.GetControlInput(0), "control edge untouched by a value-only replace")
	assert.ElementsMatch(t, []*Node{user}, a.Users())
}

func TestKillIdempotent(t *testing.T) {
	dead := New(OpDead, nil, nil, nil)
	a := New(OpConstantInt, nil, nil, nil)
	user := New(OpBinAdd, []*Node{a, a}, nil, nil)

	a.Kill(dead)
	assert.True(t, a.IsKilled())
	assert.Equal(t, dead, user.GetValueInput(0))
	assert.Equal(t, dead, user.GetValueInput(1))

	usersAfterFirstKill := dead.Users()

	a.Kill(dead) // second call is a documented no-op
	assert.Equal(t, usersAfterFirstKill, dead.Users())
}

func TestKillRewritesOwnInputsToDead(t *testing.T) {
	dead := New(OpDead, nil, nil, nil)
	a := New(OpConstantInt, nil, nil, nil)
	b := New(OpConstantInt, nil, nil, nil)
	n := New(OpBinAdd, []*Node{a, b}, nil, nil)

	n.Kill(dead)

	assert.Equal(t, dead, n.GetValueInput(0))
	assert.Equal(t, dead, n.GetValueInput(1))
	assert.Empty(t, a.Users())
	assert.Empty(t, b.Users())
}

func TestFilteredUserViewsDeduplicate(t *testing.T) {
	a := New(OpConstantInt, nil, nil, nil)
	user := New(OpBinAdd, []*Node{a, a}, nil, nil)

	assert.Equal(t, []*Node{user}, a.ValueUsers())
	assert.Empty(t, a.ControlUsers())
}

func TestDropAllInputsClearsWithoutTouchingUsers(t *testing.T) {
	a := New(OpConstantInt, nil, nil, nil)
	n := New(OpBinAdd, []*Node{a, a}, nil, nil)

	n.DropAllInputs()

	assert.Zero(t, n.NumInputs())
	assert.Empty(t, a.Users())
}

func TestZeroArityNode(t *testing.T) {
	n := New(OpStart, nil, nil, nil)
	assert.Zero(t, n.NumInputs())
	assert.Empty(t, n.Users())
}

func TestOpcodeClassification(t *testing.T) {
	assert.True(t, OpBinAdd.IsBinOp())
	assert.True(t, OpBinAdd.IsCommutative())
	assert.False(t, OpBinSub.IsCommutative())
	assert.True(t, OpBinLt.IsRelation())
	assert.True(t, OpMemLoad.IsMemOp())
	assert.True(t, OpIfTrue.IsIfBranch())
	assert.True(t, OpMerge.IsCtrlPoint())
	assert.True(t, OpAlloca.IsGlobalValue())
	assert.False(t, OpBinAdd.IsGlobalValue())
}
