// Package ir provides the low-level node and edge primitives of a
// sea-of-nodes intermediate representation: opcodes, the tri-partitioned
// input array, and the multiset user list.
//
// Everything in this package maintains its invariants only if callers go
// through the documented entry points. Setting an input directly on the
// slice, for instance, silently desynchronizes the user-list invariant.
// Ownership, pooling, and the safe builder surface
// live one layer up, in package graphir.
package ir

import "fmt"

// Opcode identifies the operation a Node performs. The enumeration is
// closed and shared with the (out-of-scope) scheduler and DLX lowering
// passes: some values below are never constructed by any builder in this
// repository and exist only so opcode-keyed tables and umbrella predicates
// have a complete domain to classify.
type Opcode uint16

const (
	OpInvalid Opcode = iota

	// Structural.
	OpDead
	OpStart
	OpEnd
	OpArgument
	OpFunctionStub

	// Control flow.
	OpIf
	OpIfTrue
	OpIfFalse
	OpMerge
	OpLoop
	OpReturn

	// Constants.
	OpConstantInt
	OpConstantStr

	// Memory.
	OpAlloca
	OpMemLoad
	OpMemStore
	OpEffectMerge

	// SSA.
	OpPhi

	// Interprocedural.
	OpCall

	// Source-level declarations and accesses.
	OpSrcVarDecl
	OpSrcArrayDecl
	OpSrcVarAccess
	OpSrcArrayAccess
	OpSrcAssignStmt
	OpSrcInitialArray

	// Binary arithmetic.
	OpBinAdd
	OpBinSub
	OpBinMul
	OpBinDiv

	// Binary relations.
	OpBinLe
	OpBinLt
	OpBinGe
	OpBinGt
	OpBinEq
	OpBinNe

	// Target machine (DLX), never constructed by a builder in this repo;
	// present only so Opcode is a genuinely closed, stable namespace
	// shared with the out-of-scope lowering pass.
	OpDLXAdd
	OpDLXSub
	OpDLXLoad
	OpDLXStore
	OpDLXBranch

	opcodeCount
)

var opcodeNames = [...]string{
	OpInvalid:         "Invalid",
	OpDead:            "Dead",
	OpStart:           "Start",
	OpEnd:             "End",
	OpArgument:        "Argument",
	OpFunctionStub:    "FunctionStub",
	OpIf:              "If",
	OpIfTrue:          "IfTrue",
	OpIfFalse:         "IfFalse",
	OpMerge:           "Merge",
	OpLoop:            "Loop",
	OpReturn:          "Return",
	OpConstantInt:     "ConstantInt",
	OpConstantStr:     "ConstantStr",
	OpAlloca:          "Alloca",
	OpMemLoad:         "MemLoad",
	OpMemStore:        "MemStore",
	OpEffectMerge:     "EffectMerge",
	OpPhi:             "Phi",
	OpCall:            "Call",
	OpSrcVarDecl:      "SrcVarDecl",
	OpSrcArrayDecl:    "SrcArrayDecl",
	OpSrcVarAccess:    "SrcVarAccess",
	OpSrcArrayAccess:  "SrcArrayAccess",
	OpSrcAssignStmt:   "SrcAssignStmt",
	OpSrcInitialArray: "SrcInitialArray",
	OpBinAdd:          "BinAdd",
	OpBinSub:          "BinSub",
	OpBinMul:          "BinMul",
	OpBinDiv:          "BinDiv",
	OpBinLe:           "BinLe",
	OpBinLt:           "BinLt",
	OpBinGe:           "BinGe",
	OpBinGt:           "BinGt",
	OpBinEq:           "BinEq",
	OpBinNe:           "BinNe",
	OpDLXAdd:          "DLXAdd",
	OpDLXSub:          "DLXSub",
	OpDLXLoad:         "DLXLoad",
	OpDLXStore:        "DLXStore",
	OpDLXBranch:       "DLXBranch",
}

// String returns the opcode's name, as used by the Graphviz dumper's
// opcode printer.
func (op Opcode) String() string {
	if int(op) < len(opcodeNames) && opcodeNames[op] != "" {
		return opcodeNames[op]
	}
	return fmt.Sprintf("Opcode(%d)", op)
}

// IsBinOp reports whether op is one of the trivial binary arithmetic or
// relation opcodes — the VirtBinOps umbrella predicate.
func (op Opcode) IsBinOp() bool {
	switch op {
	case OpBinAdd, OpBinSub, OpBinMul, OpBinDiv,
		OpBinLe, OpBinLt, OpBinGe, OpBinGt, OpBinEq, OpBinNe:
		return true
	}
	return false
}

// IsCommutative reports whether op's two arguments may be swapped without
// changing its result. Used by CSE to canonicalize argument order.
func (op Opcode) IsCommutative() bool {
	switch op {
	case OpBinAdd, OpBinMul, OpBinEq, OpBinNe:
		return true
	}
	return false
}

// IsRelation reports whether op is one of the ordering/equality relations.
func (op Opcode) IsRelation() bool {
	switch op {
	case OpBinLe, OpBinLt, OpBinGe, OpBinGt, OpBinEq, OpBinNe:
		return true
	}
	return false
}

// IsMemOp is the VirtMemOps umbrella predicate: memory-effecting ops whose
// Properties expose BaseAddr/Offset (and, for MemStore, SrcVal).
func (op Opcode) IsMemOp() bool {
	switch op {
	case OpMemLoad, OpMemStore:
		return true
	}
	return false
}

// IsCtrlPoint is the VirtCtrlPoints umbrella predicate used by
// findNearestCtrlPoint.
func (op Opcode) IsCtrlPoint() bool {
	switch op {
	case OpStart, OpEnd, OpIf, OpIfTrue, OpIfFalse, OpMerge, OpLoop, OpReturn:
		return true
	}
	return false
}

// IsIfBranch is the VirtIfBranches umbrella predicate.
func (op Opcode) IsIfBranch() bool {
	return op == OpIfTrue || op == OpIfFalse
}

// IsGlobalValue is the VirtGlobalValues umbrella predicate consulted by
// the trim pass: nodes of these opcodes survive
// trimming even when unreachable from any SubGraph tail.
func (op Opcode) IsGlobalValue() bool {
	switch op {
	case OpSrcVarDecl, OpSrcArrayDecl, OpAlloca, OpFunctionStub, OpConstantInt, OpConstantStr:
		return true
	}
	return false
}

// PartitionKind classifies one of a Node's three input partitions.
type PartitionKind int

const (
	// None is the kind of an edge not yet materialized and
	// the kind value of Node.ReplaceWith's "all kinds" sentinel.
	None PartitionKind = iota
	Value
	Control
	Effect
)

func (k PartitionKind) String() string {
	switch k {
	case Value:
		return "value"
	case Control:
		return "control"
	case Effect:
		return "effect"
	default:
		return "none"
	}
}
