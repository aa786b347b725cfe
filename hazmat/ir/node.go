package ir

import "fmt"

// Node is a single vertex of the sea-of-nodes graph: an opcode, a fixed
// layout of inputs partitioned into value/control/effect ranges, and the
// multiset of nodes that reference it.
//
// A Node's inputs are stored as one contiguous slice laid out
// [value0..valueV-1 | control0..controlC-1 | effect0..effectE-1], with the
// partition boundaries tracked by nv/nc/ne. Every mutation goes
// through a method on this type so the reverse "users" multiset — for every
// input i of n, n appears in i.users exactly as many times as i appears in
// n.inputs — never drifts out of sync.
type Node struct {
	ID     uint32
	Op     Opcode
	Marker uint32

	// Aux carries opcode-specific payload that doesn't fit the
	// edge model: the literal value of a ConstantInt/ConstantStr, or the
	// tail (End) node a FunctionStub refers to.
	AuxInt  int64
	AuxStr  string
	AuxNode *Node

	inputs     []*Node
	nv, nc, ne int

	users  []*Node
	killed bool
}

// New constructs a Node with the given value, control, and effect inputs,
// registering itself as a user of each. It does not register the node with
// any Graph; that is the caller's (package graphir's) responsibility.
func New(op Opcode, values, controls, effects []*Node) *Node {
	n := &Node{Op: op}
	n.inputs = make([]*Node, 0, len(values)+len(controls)+len(effects))
	n.inputs = append(n.inputs, values...)
	n.inputs = append(n.inputs, controls...)
	n.inputs = append(n.inputs, effects...)
	n.nv, n.nc, n.ne = len(values), len(controls), len(effects)
	for _, in := range n.inputs {
		if in != nil {
			in.addUser(n)
		}
	}
	return n
}

func (n *Node) String() string {
	return fmt.Sprintf("%s#%d", n.Op, n.ID)
}

// IsKilled reports whether Kill has already run on n.
func (n *Node) IsKilled() bool { return n.killed }

// NumValueInputs, NumControlInputs, and NumEffectInputs return the size of
// each input partition.
func (n *Node) NumValueInputs() int   { return n.nv }
func (n *Node) NumControlInputs() int { return n.nc }
func (n *Node) NumEffectInputs() int  { return n.ne }
func (n *Node) NumInputs() int        { return len(n.inputs) }

// PartitionKind classifies a raw input index: Value iff i < V, Control iff
// V <= i < V+C, Effect iff V+C <= i < V+C+E.
func (n *Node) PartitionKind(i int) PartitionKind {
	switch {
	case i < n.nv:
		return Value
	case i < n.nv+n.nc:
		return Control
	case i < n.nv+n.nc+n.ne:
		return Effect
	default:
		panic(fmt.Sprintf("ir: %s: input index %d out of range", n, i))
	}
}

func (n *Node) partitionRange(kind PartitionKind) (lo, hi int) {
	switch kind {
	case Value:
		return 0, n.nv
	case Control:
		return n.nv, n.nv + n.nc
	case Effect:
		return n.nv + n.nc, n.nv + n.nc + n.ne
	default: // None: the whole array, in partition order.
		return 0, len(n.inputs)
	}
}

// GetValueInput, GetControlInput, and GetEffectInput are O(1) reads of one
// partition entry.
func (n *Node) GetValueInput(i int) *Node   { return n.inputs[n.index(Value, i)] }
func (n *Node) GetControlInput(i int) *Node { return n.inputs[n.index(Control, i)] }
func (n *Node) GetEffectInput(i int) *Node  { return n.inputs[n.index(Effect, i)] }

func (n *Node) index(kind PartitionKind, i int) int {
	lo, hi := n.partitionRange(kind)
	idx := lo + i
	if i < 0 || idx >= hi {
		panic(fmt.Sprintf("ir: %s: %s input index %d out of range", n, kind, i))
	}
	return idx
}

// Inputs returns a copy of the full, ordered input array (value, then
// control, then effect). Callers must not rely on it reflecting later
// mutations.
func (n *Node) Inputs() []*Node {
	out := make([]*Node, len(n.inputs))
	copy(out, n.inputs)
	return out
}

// Users returns a copy of the user multiset: one entry per incoming edge,
// of any kind, possibly repeated.
func (n *Node) Users() []*Node {
	out := make([]*Node, len(n.users))
	copy(out, n.users)
	return out
}

func (n *Node) addUser(u *Node) {
	n.users = append(n.users, u)
}

// removeUserOnce removes exactly one occurrence of u from n's user list.
// Panics if u is not present: every call site removes a user it just
// verified is there via an input-array entry, so absence means the
// invariant has already drifted.
func (n *Node) removeUserOnce(u *Node) {
	for i, x := range n.users {
		if x == u {
			n.users[i] = n.users[len(n.users)-1]
			n.users = n.users[:len(n.users)-1]
			return
		}
	}
	panic(fmt.Sprintf("ir: %s: user %s not found during removal", n, u))
}

func (n *Node) setRaw(idx int, to *Node) {
	if to != nil && to.killed {
		panic(fmt.Sprintf("ir: %s: cannot set input to killed node %s", n, to))
	}
	old := n.inputs[idx]
	n.inputs[idx] = to
	if old != nil {
		old.removeUserOnce(n)
	}
	if to != nil {
		to.addUser(n)
	}
}

// SetValueInput, SetControlInput, and SetEffectInput replace one partition
// entry, maintaining the user-list invariant.
func (n *Node) SetValueInput(i int, to *Node)   { n.setRaw(n.index(Value, i), to) }
func (n *Node) SetControlInput(i int, to *Node) { n.setRaw(n.index(Control, i), to) }
func (n *Node) SetEffectInput(i int, to *Node)  { n.setRaw(n.index(Effect, i), to) }

func (n *Node) insertAt(idx int, to *Node) {
	n.inputs = append(n.inputs, nil)
	copy(n.inputs[idx+1:], n.inputs[idx:len(n.inputs)-1])
	n.inputs[idx] = to
	if to != nil {
		to.addUser(n)
	}
}

// AppendValueInput, AppendControlInput, and AppendEffectInput grow a
// partition at its tail, shifting later partitions one slot right.
func (n *Node) AppendValueInput(to *Node) {
	n.insertAt(n.nv, to)
	n.nv++
}

func (n *Node) AppendControlInput(to *Node) {
	n.insertAt(n.nv+n.nc, to)
	n.nc++
}

func (n *Node) AppendEffectInput(to *Node) {
	n.insertAt(n.nv+n.nc+n.ne, to)
	n.ne++
}

func (n *Node) removeAt(idx int, kind PartitionKind) {
	old := n.inputs[idx]
	copy(n.inputs[idx:], n.inputs[idx+1:])
	n.inputs = n.inputs[:len(n.inputs)-1]
	switch kind {
	case Value:
		n.nv--
	case Control:
		n.nc--
	case Effect:
		n.ne--
	}
	if old != nil {
		old.removeUserOnce(n)
	}
}

// RemoveValueInput, RemoveControlInput, and RemoveEffectInput delete the
// i-th entry of their partition, the inverse of the corresponding Append.
func (n *Node) RemoveValueInput(i int)   { n.removeAt(n.index(Value, i), Value) }
func (n *Node) RemoveControlInput(i int) { n.removeAt(n.index(Control, i), Control) }
func (n *Node) RemoveEffectInput(i int)  { n.removeAt(n.index(Effect, i), Effect) }

func (n *Node) removeAllIn(kind PartitionKind, target *Node) int {
	removed := 0
	lo, hi := n.partitionRange(kind)
	for i := hi - 1; i >= lo; i-- {
		if n.inputs[i] == target {
			n.removeAt(i, kind)
			removed++
		}
	}
	return removed
}

// RemoveValueInputAll, RemoveControlInputAll, and RemoveEffectInputAll
// remove every occurrence of target from the named partition, returning
// the count removed. Used by the trim pass to clear the Dead sentinel's
// remaining edges.
func (n *Node) RemoveValueInputAll(target *Node) int   { return n.removeAllIn(Value, target) }
func (n *Node) RemoveControlInputAll(target *Node) int { return n.removeAllIn(Control, target) }
func (n *Node) RemoveEffectInputAll(target *Node) int  { return n.removeAllIn(Effect, target) }

// ReplaceUseOfWith locates from in the partition named by kind (or, when
// kind is None, anywhere in the raw input array) and rewrites that single
// occurrence to to. It reports whether a replacement happened. Only the
// first matching occurrence is rewritten; callers that need every
// occurrence gone call it in a loop.
func (n *Node) ReplaceUseOfWith(from, to *Node, kind PartitionKind) bool {
	lo, hi := n.partitionRange(kind)
	for i := lo; i < hi; i++ {
		if n.inputs[i] == from {
			n.setRaw(i, to)
			return true
		}
	}
	return false
}

// ReplaceWith splices repl into every use site that currently has n as an
// input of the given kind (or of any kind, when kind is None).
// It iterates a snapshot of n's user list: each entry corresponds to
// exactly one incoming edge, so one ReplaceUseOfWith call per snapshot
// entry retires exactly that edge, and new edges wired to repl mid-loop are
// never revisited.
func (n *Node) ReplaceWith(repl *Node, kind PartitionKind) {
	snapshot := n.Users()
	for _, u := range snapshot {
		u.ReplaceUseOfWith(n, repl, kind)
	}
}

// ValueUsers, ControlUsers, and EffectUsers return each distinct user that
// currently has n in the named partition, once per user regardless of
// edge multiplicity.
func (n *Node) ValueUsers() []*Node   { return n.filterUsers(Value) }
func (n *Node) ControlUsers() []*Node { return n.filterUsers(Control) }
func (n *Node) EffectUsers() []*Node  { return n.filterUsers(Effect) }

func (n *Node) filterUsers(kind PartitionKind) []*Node {
	seen := make(map[*Node]bool, len(n.users))
	var out []*Node
	for _, u := range n.users {
		if seen[u] {
			continue
		}
		lo, hi := u.partitionRange(kind)
		for i := lo; i < hi; i++ {
			if u.inputs[i] == n {
				seen[u] = true
				out = append(out, u)
				break
			}
		}
	}
	return out
}

// Kill rewrites every one of n's own inputs to dead, then rewrites every
// user of n (across all kinds) to use dead instead, and finally marks n
// killed. A node already killed is left untouched: Kill is idempotent
// beyond its first call.
func (n *Node) Kill(dead *Node) {
	if n.killed {
		return
	}
	for i := range n.inputs {
		n.setRaw(i, dead)
	}
	n.ReplaceWith(dead, None)
	n.killed = true
}

// DropAllInputs clears n's entire input array without touching its user
// list, severing the links kill left behind so n can be physically
// reclaimed. It is only valid to call this on
// a killed node about to be removed from its owning Graph.
func (n *Node) DropAllInputs() {
	for _, in := range n.inputs {
		if in != nil {
			in.removeUserOnce(n)
		}
	}
	n.inputs = nil
	n.nv, n.nc, n.ne = 0, 0, 0
}
