// Package valuepromotion replaces each SrcVarAccess with the SSA value its
// variable holds at that point, found by walking SrcAssignStmt effect
// chains, inserting value Phi nodes at control merges the way a front-end's
// own lowering would have, had it tracked variable definitions itself
// instead of leaving that to this pass. MemLoad nodes are not promoted, and
// the SrcAssignStmt nodes and their effect chains are left in place.
//
// Unlike peephole and cse, this is not a local, per-node rewrite: resolving
// "what value does this read see" requires walking the effect chain back to
// the nearest write, joining at Merge/Loop pivots with a Phi when different
// branches disagree. It is still expressed as a graphir.Reducer so it
// composes with graphir.Run like any other pass, but it does its real work
// once per function, triggered the first time it observes that function's
// End node (by then every node in the function has been constructed).
package valuepromotion

import (
	graphir "github.com/kestrelir/graphir"
	"github.com/kestrelir/graphir/hazmat/ir"
)

// Reducer promotes scalar SrcVarDecl variables to SSA form within each
// function it is run over.
type Reducer struct {
	promoted map[*ir.Node]bool
}

// New returns a ready-to-run ValuePromotion Reducer.
func New() *Reducer {
	return &Reducer{promoted: make(map[*ir.Node]bool)}
}

func (*Reducer) Name() string { return "valuepromotion" }

func (r *Reducer) Reduce(e graphir.Editor, n *ir.Node) graphir.Reduction {
	if n.Op != ir.OpEnd || r.promoted[n] {
		return graphir.Unchanged()
	}
	r.promoted[n] = true
	promoteFunction(e, graphir.NewSubGraph(n))
	return graphir.Unchanged()
}

// promoteFunction replaces every SrcVarAccess reachable from sg with the
// value of its declaration reaching that point, resolved by walking
// backward along effect chains and inserting a Phi at any Merge/Loop where
// predecessor chains disagree.
func promoteFunction(e graphir.Editor, sg graphir.SubGraph) {
	p := &promoter{g: e.Graph(), memo: make(map[key]*ir.Node)}

	var accesses []*ir.Node
	for node := range sg.Nodes() {
		if node.Op == ir.OpSrcVarAccess {
			accesses = append(accesses, node)
		}
	}

	for _, access := range accesses {
		if access.IsKilled() {
			continue
		}
		decl := graphir.SrcAccessDecl(access)
		anchor := nearestEffectUser(access)
		val := p.resolve(decl, anchor)
		if val != access {
			e.Replace(access, val)
		}
	}
}

// key identifies one (variable, join-point) pair being resolved, used both
// to memoize completed joins and to detect the backedge cycle a Loop
// introduces.
type key struct {
	decl, effect *ir.Node
}

type promoter struct {
	g    *graphir.Graph
	memo map[key]*ir.Node
}

// resolve returns the value decl holds immediately before atEffect executes
// (nil atEffect means "function entry": no write has happened yet, so the
// variable reads as its implicit zero value).
func (p *promoter) resolve(decl, atEffect *ir.Node) *ir.Node {
	if atEffect == nil {
		return p.g.ConstantInt(0)
	}

	k := key{decl, atEffect}
	if v, ok := p.memo[k]; ok {
		return v
	}

	switch {
	case atEffect.Op == ir.OpSrcAssignStmt:
		target := graphir.SrcAssignTarget(atEffect)
		if target.Op == ir.OpSrcVarAccess && graphir.SrcAccessDecl(target) == decl {
			v := graphir.SrcAssignValue(atEffect)
			p.memo[k] = v
			return v
		}
		return p.resolve(decl, effectPredecessor(atEffect))

	case atEffect.Op == ir.OpPhi && atEffect.NumEffectInputs() > 0:
		return p.resolveJoin(decl, atEffect, atEffect.NumEffectInputs(), func(i int) *ir.Node {
			return atEffect.GetEffectInput(i)
		})

	case atEffect.NumEffectInputs() == 1:
		return p.resolve(decl, effectPredecessor(atEffect))

	case atEffect.NumEffectInputs() > 1:
		// An EffectMerge joining independent chains with no single control
		// pivot (unlike an effect Phi): not a variable-merge point this pass
		// knows how to reconcile, so it conservatively follows the first
		// incoming chain rather than assuming the variable was never
		// written.
		return p.resolve(decl, atEffect.GetEffectInput(0))

	default:
		return p.g.ConstantInt(0)
	}
}

// resolveJoin resolves decl along each of the join's n predecessor chains
// (pred(i) for i in [0,n)). A new value Phi over join's control pivot is
// built first and recorded in the memo table before the predecessors are
// resolved, so a Loop's backedge, which depends on this very join,
// terminates instead of recursing forever. If every predecessor then
// agrees, the Phi is killed and that common value is returned; otherwise
// the Phi's inputs are patched to the resolved values and the Phi returned.
func (p *promoter) resolveJoin(decl, join *ir.Node, n int, pred func(int) *ir.Node) *ir.Node {
	pivot := graphir.CtrlPivot(join)
	placeholder := p.g.ConstantInt(0)
	values := make([]*ir.Node, n)
	for i := range values {
		values[i] = placeholder
	}

	b := graphir.NewBuilder(p.g, nil)
	phi := b.Phi(pivot, values, nil)
	p.memo[key{decl, join}] = phi

	resolved := make([]*ir.Node, n)
	allEqual := true
	for i := 0; i < n; i++ {
		resolved[i] = p.resolve(decl, pred(i))
		if i > 0 && resolved[i] != resolved[0] {
			allEqual = false
		}
	}

	if allEqual {
		p.memo[key{decl, join}] = resolved[0]
		phi.Kill(p.g.DeadNode())
		return resolved[0]
	}

	for i, v := range resolved {
		phi.SetValueInput(i, v)
	}
	return phi
}

// effectPredecessor returns n's single effect input, or nil if n has none
// (the function entry, by convention, carries no effect input).
func effectPredecessor(n *ir.Node) *ir.Node {
	if n.NumEffectInputs() != 1 {
		return nil
	}
	return n.GetEffectInput(0)
}

// nearestEffectUser finds, by breadth-first search, the first effect-bearing
// node reachable forward through access's value users — the point in
// program order a read's result actually gets consumed by something
// ordered — and returns that node's single effect input (nil if it has
// more than one). A read that never reaches an effectful consumer (a dead
// subexpression) resolves against function entry.
func nearestEffectUser(access *ir.Node) *ir.Node {
	seen := map[*ir.Node]bool{access: true}
	queue := access.ValueUsers()
	for len(queue) > 0 {
		u := queue[0]
		queue = queue[1:]
		if seen[u] {
			continue
		}
		seen[u] = true
		if u.NumEffectInputs() > 0 {
			return effectPredecessor(u)
		}
		queue = append(queue, u.ValueUsers()...)
	}
	return nil
}

var _ graphir.Reducer = (*Reducer)(nil)
