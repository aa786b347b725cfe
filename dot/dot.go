// Package dot renders a SubGraph for human inspection: a Graphviz digraph
// for a proper rendered diagram, and a compact ASCII reachability tree for a
// terminal. Neither is consulted by the reducer engine or any builder; both
// exist purely as debugging aids.
package dot

import (
	"fmt"
	"io"

	"github.com/xlab/treeprint"

	graphir "github.com/kestrelir/graphir"
	"github.com/kestrelir/graphir/hazmat/ir"
)

// edgeStyle returns the Graphviz color and line style for one partition
// kind: value edges are black and solid, control edges blue and solid,
// effect edges red and dashed, so the three edge families stay visually
// distinct in a rendered graph.
func edgeStyle(kind ir.PartitionKind) (color string, dashed bool) {
	switch kind {
	case ir.Control:
		return "blue", false
	case ir.Effect:
		return "red", true
	default:
		return "black", false
	}
}

func nodeLabel(n *ir.Node) string {
	switch n.Op {
	case ir.OpConstantInt:
		return fmt.Sprintf("%s\\n%d", n.Op, graphir.ConstantIntValue(n))
	case ir.OpConstantStr:
		return fmt.Sprintf("%s\\n%q", n.Op, graphir.ConstantStrValue(n))
	case ir.OpSrcVarDecl, ir.OpSrcArrayDecl:
		return fmt.Sprintf("%s\\n%s", n.Op, graphir.SrcName(n))
	case ir.OpArgument:
		return fmt.Sprintf("%s\\n#%d", n.Op, graphir.ArgumentIndex(n))
	default:
		return n.Op.String()
	}
}

// Dump writes a Graphviz "digraph" description of every node reachable from
// sg's tail to w. The caller is responsible for feeding it to dot(1) or an
// equivalent renderer; this package produces text only.
func Dump(w io.Writer, sg graphir.SubGraph) error {
	bw := newErrWriter(w)
	bw.Printf("digraph G {\n")
	bw.Printf("  rankdir=BT;\n")
	bw.Printf("  node [shape=box, fontname=\"monospace\"];\n")

	for n := range sg.Nodes() {
		bw.Printf("  n%d [label=%q];\n", n.ID, nodeLabel(n))
	}
	for u := range sg.Edges() {
		color, dashed := edgeStyle(u.Kind)
		style := "solid"
		if dashed {
			style = "dashed"
		}
		bw.Printf("  n%d -> n%d [color=%s, style=%s];\n", u.Source.ID, u.Dest.ID, color, style)
	}

	bw.Printf("}\n")
	return bw.err
}

// errWriter accumulates the first write error instead of surfacing it at
// every call site: a dump with dozens of small Fprintf calls is much
// easier to read with one error check at the end than one per line.
type errWriter struct {
	w   io.Writer
	err error
}

func newErrWriter(w io.Writer) *errWriter { return &errWriter{w: w} }

func (e *errWriter) Printf(format string, args ...any) {
	if e.err != nil {
		return
	}
	_, e.err = fmt.Fprintf(e.w, format, args...)
}

// Tree renders sg as an ASCII reachability tree rooted at its tail, using
// treeprint. Each node's inputs are expanded the first time the walk meets
// it; every later edge into the same node adds a "(repeat)" leaf and is not
// expanded again — useful for eyeballing a single function's shape, not for
// a graph-wide dedup audit.
func Tree(sg graphir.SubGraph) string {
	root := treeprint.New()
	tail := sg.Tail()
	if tail == nil {
		return root.String()
	}
	root.SetValue(nodeLabel(tail))
	populate(root, tail, map[*ir.Node]bool{tail: true})
	return root.String()
}

func populate(t treeprint.Tree, n *ir.Node, seen map[*ir.Node]bool) {
	for _, in := range n.Inputs() {
		if in == nil {
			continue
		}
		if seen[in] {
			t.AddNode(fmt.Sprintf("%s (repeat)", nodeLabel(in)))
			continue
		}
		seen[in] = true
		branch := t.AddBranch(nodeLabel(in))
		populate(branch, in, seen)
	}
}
