// Package cse implements common subexpression elimination: a VirtBinOps
// node is canonicalized (commutative operands sorted by node ID) and its
// opcode and operand IDs are hashed together into one shared bucket table;
// a second node with the same opcode and operands is replaced by the first. MemLoad is deduplicated the same way,
// keyed on (baseAddr, offset, effect input).
package cse

import (
	graphir "github.com/kestrelir/graphir"
	"github.com/kestrelir/graphir/hazmat/ir"
	"github.com/kestrelir/graphir/internal/support"
)

// Reducer is a stateful fixed-point pass: its bucket table accumulates the
// canonical representative of every expression shape seen so far during one
// Run. Construct a fresh Reducer per pass; reusing one across unrelated
// graphs would dedupe across graphs that happen to allocate the same node
// IDs.
type Reducer struct {
	buckets map[uint64][]*ir.Node
}

// New returns an empty CSE Reducer.
func New() *Reducer {
	return &Reducer{buckets: make(map[uint64][]*ir.Node)}
}

func (*Reducer) Name() string { return "cse" }

func (r *Reducer) Reduce(e graphir.Editor, n *ir.Node) graphir.Reduction {
	switch {
	case n.Op.IsBinOp():
		return r.reduceBinOp(e, n)
	case n.Op == ir.OpMemLoad:
		return r.reduceMemLoad(e, n)
	default:
		return graphir.Unchanged()
	}
}

func (r *Reducer) reduceBinOp(e graphir.Editor, n *ir.Node) graphir.Reduction {
	lhs, rhs := graphir.BinOpLHS(n), graphir.BinOpRHS(n)
	if n.Op.IsCommutative() && lhs.ID > rhs.ID {
		lhs, rhs = rhs, lhs
	}

	h := support.HashUint32(support.HashUint32(uint64(n.Op), lhs.ID), rhs.ID)
	return r.lookupOrInsert(e, h, n, func(cand *ir.Node) bool {
		cl, cr := graphir.BinOpLHS(cand), graphir.BinOpRHS(cand)
		if cand.Op.IsCommutative() && cl.ID > cr.ID {
			cl, cr = cr, cl
		}
		return cand.Op == n.Op && cl == lhs && cr == rhs
	})
}

func (r *Reducer) reduceMemLoad(e graphir.Editor, n *ir.Node) graphir.Reduction {
	base, offset := graphir.MemBaseAddr(n), graphir.MemOffset(n)
	effect := graphir.MemEffectIn(n)

	h := support.HashUint32(support.HashUint32(support.HashUint32(uint64(ir.OpMemLoad), base.ID), offset.ID), effect.ID)
	return r.lookupOrInsert(e, h, n, func(cand *ir.Node) bool {
		return graphir.MemBaseAddr(cand) == base && graphir.MemOffset(cand) == offset && graphir.MemEffectIn(cand) == effect
	})
}

// lookupOrInsert scans bucket h for a node (other than n itself) for which
// matches reports true. On a hit, n is folded into it and every other
// member of bucket h is revisited, since a CSE hit can expose a further
// CSE opportunity one level up; nodes of the same opcode that hashed into
// other buckets are not revisited. On a miss, n is recorded as the
// bucket's new member.
func (r *Reducer) lookupOrInsert(e graphir.Editor, h uint64, n *ir.Node, matches func(*ir.Node) bool) graphir.Reduction {
	for _, cand := range r.buckets[h] {
		if cand == n || cand.IsKilled() {
			continue
		}
		if matches(cand) {
			for _, sibling := range r.buckets[h] {
				if sibling != cand && sibling != n {
					e.Revisit(sibling)
				}
			}
			return graphir.Changed(cand)
		}
	}
	r.buckets[h] = append(r.buckets[h], n)
	return graphir.Unchanged()
}

var _ graphir.Reducer = (*Reducer)(nil)
