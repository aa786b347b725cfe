package graphir

import (
	"github.com/kestrelir/graphir/hazmat/ir"
	"github.com/kestrelir/graphir/internal/support"
)

// Reduction is the verdict a Reducer returns for one node: either
// "unchanged" (the zero value) or "replace n with this node" — there is no
// third state. A reducer that wants to mutate n in place without replacing
// it does so through the Editor it was handed and still returns Unchanged.
type Reduction struct {
	replacement *ir.Node
}

// Unchanged reports that a Reducer made no change to the node it inspected.
func Unchanged() Reduction { return Reduction{} }

// Changed reports that the inspected node should be replaced by repl.
func Changed(repl *ir.Node) Reduction { return Reduction{replacement: repl} }

// IsChanged reports whether this Reduction carries a replacement.
func (r Reduction) IsChanged() bool { return r.replacement != nil }

// Replacement returns the replacement node. Only meaningful when IsChanged.
func (r Reduction) Replacement() *ir.Node { return r.replacement }

// Reducer is one rewrite rule in a fixed-point pass: peephole folding, CSE,
// value promotion, or any other pass implementing this module's schemes.
type Reducer interface {
	// Name identifies the reducer in diagnostics and benchmarks.
	Name() string
	// Reduce inspects n and returns a Reduction. It must not mutate n's own
	// shape directly; structural changes go through the Editor.
	Reduce(e Editor, n *ir.Node) Reduction
}

// Editor is the mutation surface a Reducer is handed during a run. It
// exists so reducers never touch Graph or Node internals directly, and so
// the engine always learns about a structural change in time to revisit
// whatever it affects.
type Editor interface {
	Graph() *Graph
	// Replace rewires every current user of n onto repl. n itself is left
	// in place, unreachable; the next Trim call reclaims it.
	Replace(n, repl *ir.Node)
	// Revisit schedules n to be run through every reducer again, used when
	// a reducer changes a node's inputs without replacing the node itself.
	Revisit(n *ir.Node)
}

// marker states used by the reduction engine's NodeMarker.
const (
	stateUnvisited uint32 = iota
	stateRevisit
	stateOnStack
	stateVisited
)

type editor struct {
	g       *Graph
	marker  *NodeMarker
	stack   *support.Stack[*ir.Node]
	revisit *support.Stack[*ir.Node]
}

func (e *editor) Graph() *Graph { return e.g }

func (e *editor) Replace(n, repl *ir.Node) {
	users := n.Users()
	n.ReplaceWith(repl, ir.None)
	e.Revisit(repl)
	for _, u := range users {
		e.Revisit(u)
	}
}

func (e *editor) Revisit(n *ir.Node) {
	if e.marker.Get(n) == stateOnStack {
		return
	}
	e.marker.Set(n, stateRevisit)
	e.revisit.Push(n)
}

// Stats reports what one Run accomplished.
type Stats struct {
	NodesVisited int
	Replacements int
	NodesTrimmed int
}

// Run drives reducers to a fixed point over every node reachable from
// tails, then trims whatever became unreachable. It is the composition
// callers reach for by default; RunWithEditor runs the same fixed-point
// loop without the trim step.
func Run(g *Graph, tails []SubGraph, reducers ...Reducer) Stats {
	stats := RunWithEditor(g, tails, reducers...)
	stats.NodesTrimmed = Trim(g, tails)
	g.logger.Info("trim complete", "nodes_trimmed", stats.NodesTrimmed)
	return stats
}

// RunWithEditor drives reducers to a fixed point without trimming
// afterward, returning visit and replacement counts.
//
// Seeding walks a DFS postorder over every tail so leaves (constants,
// declarations) are offered to reducers before the nodes that consume
// them, matching the bottom-up shape constant folding and CSE expect. From
// there it alternates draining the reduction stack (freshly seeded nodes,
// and nodes moved over from the revisit stack) and the revisit stack (each
// replacement, the former users of a replaced node, and nodes a reducer
// asked to see again) until both are empty.
func RunWithEditor(g *Graph, tails []SubGraph, reducers ...Reducer) Stats {
	names := make([]string, len(reducers))
	for i, r := range reducers {
		names[i] = r.Name()
	}
	g.logger.Info("reducer pass starting", "reducers", names, "subregions", len(tails))

	marker := NewNodeMarker(g, 4)
	var stack, revisitStack support.Stack[*ir.Node]
	ed := &editor{g: g, marker: marker, stack: &stack, revisit: &revisitStack}

	// seedPostorder returns leaves before the nodes that consume them; stack
	// is LIFO, so push in reverse to pop leaves first.
	postorder := seedPostorder(tails)
	for i := len(postorder) - 1; i >= 0; i-- {
		n := postorder[i]
		if marker.Get(n) == stateUnvisited {
			marker.Set(n, stateOnStack)
			stack.Push(n)
		}
	}

	var stats Stats
	for !stack.Empty() || !revisitStack.Empty() {
		for !stack.Empty() {
			n := stack.Pop()
			if marker.Get(n) == stateVisited || n.IsKilled() {
				continue
			}
			stats.NodesVisited++
			g.logger.Debug("reducing node", "node", n.String())
			reduceOnce(ed, marker, reducers, n, &stats)
		}
		for !revisitStack.Empty() {
			n := revisitStack.Pop()
			if marker.Get(n) != stateRevisit || n.IsKilled() {
				continue
			}
			marker.Set(n, stateOnStack)
			stack.Push(n)
		}
	}
	g.logger.Info("reducer pass reached fixed point", "nodes_visited", stats.NodesVisited, "replacements", stats.Replacements)
	return stats
}

// reduceOnce offers n to each reducer in turn and stops at the first one
// that reports a change. A replacement goes through the Editor so that repl
// and every former user of n (whose input set just shifted onto repl) are
// both scheduled for another look, which is what lets a fold or CSE hit
// cascade upward instead of stopping at the node it first touched.
func reduceOnce(ed Editor, marker *NodeMarker, reducers []Reducer, n *ir.Node, stats *Stats) {
	for _, r := range reducers {
		red := r.Reduce(ed, n)
		if !red.IsChanged() {
			continue
		}
		stats.Replacements++
		ed.Replace(n, red.Replacement())
		return
	}
	marker.Set(n, stateVisited)
}

func seedPostorder(tails []SubGraph) []*ir.Node {
	roots := make([]*ir.Node, len(tails))
	for i, sg := range tails {
		roots[i] = sg.Tail()
	}
	return support.PostorderDFS(roots, (*ir.Node).Inputs)
}

// Trim sweeps g for nodes unreachable from every tail in tails, after a
// reducer has run to a fixed point, and physically removes them. A node
// survives regardless of reachability if it is a declared global variable
// or its opcode satisfies VirtGlobalValues (ir.Opcode.IsGlobalValue) —
// pooled constants, declarations, and function stubs are kept alive even
// when nothing currently references them, so a later builder call can
// still find them in the pool.
//
// After the sweep, every remaining user of the Dead sentinel has its edges
// to Dead cleared across all three partitions — value, control, and
// effect — not just whichever partition happened to hold the edge that
// got killed.
func Trim(g *Graph, tails []SubGraph) int {
	marker := NewNodeMarker(g, 2)
	const (
		unreached uint32 = iota
		reached
	)

	for _, sg := range tails {
		for n := range sg.Nodes() {
			marker.Set(n, reached)
		}
	}

	trimmed := 0
	for _, n := range g.AllNodes() {
		if marker.Get(n) == reached {
			continue
		}
		if n.Op.IsGlobalValue() || g.IsGlobalVar(n) || n == g.dead {
			continue
		}
		g.RemoveNode(n)
		trimmed++
	}

	if dead := g.dead; dead != nil {
		for _, u := range dead.Users() {
			u.RemoveValueInputAll(dead)
			u.RemoveControlInputAll(dead)
			u.RemoveEffectInputAll(dead)
		}
	}

	return trimmed
}

var _ Editor = (*editor)(nil)
