package graphir

import (
	"fmt"

	"github.com/kestrelir/graphir/hazmat/ir"
)

// Use describes one edge as observed during a SubGraph walk: Source is the
// node that owns the input slot, Dest is the node it points at, and Kind
// says which of Source's three input partitions the slot belongs to.
//
// Use is a read-only snapshot. Mutating the graph after observing a Use
// does not retroactively change it.
type Use struct {
	Source *ir.Node
	Dest   *ir.Node
	Kind   ir.PartitionKind
}

func (u Use) String() string {
	return fmt.Sprintf("%s --%s--> %s", u.Source, u.Kind, u.Dest)
}
