package graphir

import "github.com/kestrelir/graphir/hazmat/ir"

// Attribute is a boolean fact a builder can stamp onto a node in addition
// to its opcode: whether it touches memory, and how, plus a couple of
// front-end-only markers consulted by Graph.HasAttribute.
type Attribute int

const (
	NoMem Attribute = iota
	ReadMem
	WriteMem
	HasSideEffect
	IsBuiltin
)

// AttributeBuilder is a fluent attribute setter scoped to one node,
// obtained from Graph.Attributes.
type AttributeBuilder struct {
	g *Graph
	n *ir.Node
}

// Attributes begins an attribute-setting chain for n.
func (g *Graph) Attributes(n *ir.Node) *AttributeBuilder {
	return &AttributeBuilder{g: g, n: n}
}

func (ab *AttributeBuilder) set(a Attribute) *AttributeBuilder {
	for _, existing := range ab.g.attrs[ab.n] {
		if existing == a {
			return ab
		}
	}
	ab.g.attrs[ab.n] = append(ab.g.attrs[ab.n], a)
	return ab
}

func (ab *AttributeBuilder) NoMem() *AttributeBuilder         { return ab.set(NoMem) }
func (ab *AttributeBuilder) ReadMem() *AttributeBuilder       { return ab.set(ReadMem) }
func (ab *AttributeBuilder) WriteMem() *AttributeBuilder      { return ab.set(WriteMem) }
func (ab *AttributeBuilder) HasSideEffect() *AttributeBuilder { return ab.set(HasSideEffect) }
func (ab *AttributeBuilder) IsBuiltin() *AttributeBuilder     { return ab.set(IsBuiltin) }

// HasAttribute reports whether n has been stamped with a.
func (g *Graph) HasAttribute(n *ir.Node, a Attribute) bool {
	for _, existing := range g.attrs[n] {
		if existing == a {
			return true
		}
	}
	return false
}
