// Package bytecode defines the stack-machine instruction set, the function
// metadata table and the serialized module artifact produced by the
// compiler.
package bytecode

// Opcode identifies a stack-machine instruction. One byte on the wire.
type Opcode uint8

const (
	// Stack operations.

	// PushI32 pushes a 32-bit integer constant (operand: the value).
	PushI32 Opcode = iota
	// PushBool pushes a boolean constant (operand: 1 or 0).
	PushBool
	// PushStr pushes a string constant (operand: pool index).
	PushStr
	// Pop discards the top of the stack.
	Pop
	// Dup duplicates the top of the stack.
	Dup
	// Swap exchanges the two topmost values.
	Swap

	// Variable operations.

	// Load pushes a local variable (operand: slot index).
	Load
	// Store pops into a local variable (operand: slot index).
	Store
	// LoadRef pushes a reference to a local (operand: slot index).
	LoadRef
	// StoreRef stores through a reference.
	StoreRef

	// Arithmetic.

	// AddI32 adds two integers.
	AddI32
	// SubI32 subtracts two integers.
	SubI32
	// MulI32 multiplies two integers.
	MulI32
	// DivI32 divides two integers.
	DivI32
	// NegI32 negates an integer.
	NegI32

	// Comparisons.

	// EqI32 compares for equality.
	EqI32
	// NeI32 compares for inequality.
	NeI32
	// LtI32 compares less-than.
	LtI32
	// GtI32 compares greater-than.
	GtI32
	// LeI32 compares less-or-equal.
	LeI32
	// GeI32 compares greater-or-equal.
	GeI32

	// Logical.

	// And is logical conjunction.
	And
	// Or is logical disjunction.
	Or
	// Not is logical negation.
	Not

	// Control flow. Jump operands are absolute instruction indices into
	// the flat instruction vector, not relative offsets.

	// Jmp jumps unconditionally (operand: target index).
	Jmp
	// JmpIf jumps when the popped condition is true (operand: target index).
	JmpIf
	// JmpIfNot jumps when the popped condition is false (operand: target index).
	JmpIfNot
	// Call invokes a function (operand: function table index).
	Call
	// Ret returns without a value.
	Ret
	// RetVal returns the top of the stack.
	RetVal

	// References.

	// Borrow creates an immutable reference.
	Borrow
	// BorrowMut creates a mutable reference.
	BorrowMut
	// Deref reads through a reference.
	Deref
	// DerefMut reads through a mutable reference.
	DerefMut
)

var opcodeNames = [...]string{
	PushI32:   "PUSH_I32",
	PushBool:  "PUSH_BOOL",
	PushStr:   "PUSH_STR",
	Pop:       "POP",
	Dup:       "DUP",
	Swap:      "SWAP",
	Load:      "LOAD",
	Store:     "STORE",
	LoadRef:   "LOAD_REF",
	StoreRef:  "STORE_REF",
	AddI32:    "ADD_I32",
	SubI32:    "SUB_I32",
	MulI32:    "MUL_I32",
	DivI32:    "DIV_I32",
	NegI32:    "NEG_I32",
	EqI32:     "EQ_I32",
	NeI32:     "NE_I32",
	LtI32:     "LT_I32",
	GtI32:     "GT_I32",
	LeI32:     "LE_I32",
	GeI32:     "GE_I32",
	And:       "AND",
	Or:        "OR",
	Not:       "NOT",
	Jmp:       "JMP",
	JmpIf:     "JMP_IF",
	JmpIfNot:  "JMP_IF_NOT",
	Call:      "CALL",
	Ret:       "RET",
	RetVal:    "RET_VAL",
	Borrow:    "BORROW",
	BorrowMut: "BORROW_MUT",
	Deref:     "DEREF",
	DerefMut:  "DEREF_MUT",
}

func (op Opcode) String() string {
	if int(op) < len(opcodeNames) {
		return opcodeNames[op]
	}
	return "UNKNOWN_OPCODE"
}

// HasOperand reports whether the operand word of an instruction with this
// opcode is meaningful. Решает только опкод, состояние не участвует.
func (op Opcode) HasOperand() bool {
	switch op {
	case PushI32, PushBool, PushStr, Load, Store, LoadRef, Jmp, JmpIf, JmpIfNot, Call:
		return true
	default:
		return false
	}
}
