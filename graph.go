// Package graphir implements a sea-of-nodes intermediate representation:
// a single graph of Nodes linked by value, control, and effect edges, a
// pooling/ownership layer over package ir's low-level primitives, and a
// generic fixed-point Reducer engine for rewriting it.
//
// Package layout mirrors the dangerous/safe split used throughout this
// module: hazmat/ir holds the primitives that drift out of invariant if
// misused directly, and this package is the only thing that is meant to
// construct and mutate a Node in anger.
package graphir

import (
	"fmt"

	"github.com/hashicorp/go-hclog"

	"github.com/kestrelir/graphir/hazmat/ir"
)

// Graph owns every Node reachable from its SubGraph tails, plus the pools
// that keep ConstantInt, ConstantStr, FunctionStub, and the Dead sentinel
// idempotent within it.
//
// A Graph is not safe for concurrent use; callers that need to build or
// reduce graphs from multiple goroutines must serialize access themselves.
type Graph struct {
	logger hclog.Logger

	nodes  map[uint32]*ir.Node
	nextID uint32

	dead *ir.Node

	constInt map[int64]*ir.Node
	constStr map[string]*ir.Node
	funcStub map[*ir.Node]*ir.Node // keyed by tail (End) node identity.

	subregions   []SubGraph
	subregionSet map[*ir.Node]bool

	globals map[*ir.Node]bool

	attrs map[*ir.Node][]Attribute

	markerCeiling uint32

	// PatchHook, when set, is consulted by external traversal code (the
	// scheduler, for instance) that wants to rewrite an edge the moment
	// it's observed. Nothing in this package calls it; the reducer and
	// SubGraph iteration leave it unset.
	PatchHook func(Use) Use
}

// New returns an empty Graph. A nil logger is replaced with hclog's null
// logger.
func New(logger hclog.Logger) *Graph {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &Graph{
		logger:       logger,
		nodes:        make(map[uint32]*ir.Node),
		constInt:     make(map[int64]*ir.Node),
		constStr:     make(map[string]*ir.Node),
		funcStub:     make(map[*ir.Node]*ir.Node),
		subregionSet: make(map[*ir.Node]bool),
		globals:      make(map[*ir.Node]bool),
		attrs:        make(map[*ir.Node][]Attribute),
	}
}

// insertNode assigns n a fresh, graph-unique ID and takes ownership of it.
func (g *Graph) insertNode(n *ir.Node) *ir.Node {
	g.nextID++
	n.ID = g.nextID
	g.nodes[n.ID] = n
	return n
}

// NumNodes returns the number of nodes currently owned by g, including
// killed nodes that have not yet been removed.
func (g *Graph) NumNodes() int { return len(g.nodes) }

// AllNodes returns every node g currently owns, live or killed-but-not-yet-
// trimmed, in no particular order. Used by the trim pass (which must
// consider every node, not just those reachable from a tail) and by
// debugging/dump code.
func (g *Graph) AllNodes() []*ir.Node {
	out := make([]*ir.Node, 0, len(g.nodes))
	for _, n := range g.nodes {
		out = append(out, n)
	}
	return out
}

// IsGlobalVar reports whether n was registered via MarkGlobalVar.
func (g *Graph) IsGlobalVar(n *ir.Node) bool { return g.globals[n] }

// Node looks up a live node by ID, returning (nil, false) if it has been
// removed or never existed in g.
func (g *Graph) Node(id uint32) (*ir.Node, bool) {
	n, ok := g.nodes[id]
	return n, ok
}

// DeadNode returns g's Dead sentinel, creating it on first use. Every
// killed node in g ends up pointing at this single instance.
func (g *Graph) DeadNode() *ir.Node {
	if g.dead == nil {
		g.dead = g.insertNode(ir.New(ir.OpDead, nil, nil, nil))
	}
	return g.dead
}

// ConstantInt returns the pooled ConstantInt node for v, constructing it on
// first request.
func (g *Graph) ConstantInt(v int64) *ir.Node {
	if n, ok := g.constInt[v]; ok {
		return n
	}
	n := ir.New(ir.OpConstantInt, nil, nil, nil)
	n.AuxInt = v
	g.insertNode(n)
	g.constInt[v] = n
	return n
}

// ConstantStr returns the pooled ConstantStr node for s, constructing it on
// first request.
func (g *Graph) ConstantStr(s string) *ir.Node {
	if n, ok := g.constStr[s]; ok {
		return n
	}
	n := ir.New(ir.OpConstantStr, nil, nil, nil)
	n.AuxStr = s
	g.insertNode(n)
	g.constStr[s] = n
	return n
}

// FunctionStub returns the pooled FunctionStub node for the function whose
// body ends at tail, constructing it on first request. Two calls with the
// same tail identity return the same node: a SubGraph, and so a
// FunctionStub referring to it, is identified purely by tail-node identity.
func (g *Graph) FunctionStub(tail *ir.Node) *ir.Node {
	if n, ok := g.funcStub[tail]; ok {
		return n
	}
	n := ir.New(ir.OpFunctionStub, nil, nil, nil)
	n.AuxNode = tail
	g.insertNode(n)
	g.funcStub[tail] = n
	return n
}

// RemoveNode evicts n from g. If n has not already been killed, it is
// killed against g's Dead sentinel first; its own (now-dead) input links
// are then dropped so it can be physically reclaimed without leaving a
// dangling user entry on Dead.
func (g *Graph) RemoveNode(n *ir.Node) {
	if !n.IsKilled() {
		n.Kill(g.DeadNode())
	}
	n.DropAllInputs()
	delete(g.nodes, n.ID)
}

// MarkGlobalVar records n as a root the trim pass must keep even when no
// SubGraph reaches it. Only a variable or array declaration or an Alloca may
// be marked; pooled constants and function stubs satisfy IsGlobalValue for
// trim's purposes but are never themselves a global variable, so marking one
// here is a programming error.
func (g *Graph) MarkGlobalVar(n *ir.Node) {
	switch n.Op {
	case ir.OpSrcVarDecl, ir.OpSrcArrayDecl, ir.OpAlloca:
	default:
		panic(fmt.Sprintf("graphir: %s is not a declaration opcode", n))
	}
	g.globals[n] = true
}

// ReplaceGlobalVar moves global-root status from old to replacement, used
// by reducers that fold a global declaration into a different node of the
// same kind without losing trim-pass reachability.
func (g *Graph) ReplaceGlobalVar(old, replacement *ir.Node) {
	if !g.globals[old] {
		panic(fmt.Sprintf("graphir: %s is not a tracked global", old))
	}
	delete(g.globals, old)
	g.MarkGlobalVar(replacement)
}

// GlobalVars returns every node currently marked as a global root.
func (g *Graph) GlobalVars() []*ir.Node {
	out := make([]*ir.Node, 0, len(g.globals))
	for n := range g.globals {
		out = append(out, n)
	}
	return out
}

// AddSubRegion registers sg as one of g's live regions, deduplicating on
// tail identity.
func (g *Graph) AddSubRegion(sg SubGraph) {
	if g.subregionSet[sg.tail] {
		return
	}
	g.subregionSet[sg.tail] = true
	g.subregions = append(g.subregions, sg)
}

// SubRegions returns every region registered with AddSubRegion, in
// registration order.
func (g *Graph) SubRegions() []SubGraph {
	out := make([]SubGraph, len(g.subregions))
	copy(out, g.subregions)
	return out
}

func (g *Graph) nextMarkerLo(arity uint32) uint32 {
	lo := g.markerCeiling
	g.markerCeiling += arity
	return lo
}
