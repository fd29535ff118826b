package ast

import (
	"nust/internal/source"
	"nust/internal/types"
)

// BinOp enumerates binary operators.
type BinOp uint8

const (
	// OpAdd is integer addition.
	OpAdd BinOp = iota
	// OpSub is integer subtraction.
	OpSub
	// OpMul is integer multiplication.
	OpMul
	// OpDiv is integer division.
	OpDiv
	// OpEq is equality comparison.
	OpEq
	// OpNe is inequality comparison.
	OpNe
	// OpLt is less-than comparison.
	OpLt
	// OpGt is greater-than comparison.
	OpGt
	// OpLe is less-or-equal comparison.
	OpLe
	// OpGe is greater-or-equal comparison.
	OpGe
	// OpAnd is logical conjunction.
	OpAnd
	// OpOr is logical disjunction.
	OpOr
	// OpAssign is assignment; LHS обязан быть идентификатором, это
	// гарантирует парсер.
	OpAssign
)

func (op BinOp) String() string {
	switch op {
	case OpAdd:
		return "+"
	case OpSub:
		return "-"
	case OpMul:
		return "*"
	case OpDiv:
		return "/"
	case OpEq:
		return "=="
	case OpNe:
		return "!="
	case OpLt:
		return "<"
	case OpGt:
		return ">"
	case OpLe:
		return "<="
	case OpGe:
		return ">="
	case OpAnd:
		return "&&"
	case OpOr:
		return "||"
	case OpAssign:
		return "="
	}
	return "?"
}

// UnOp enumerates unary operators.
type UnOp uint8

const (
	// OpNeg is arithmetic negation.
	OpNeg UnOp = iota
	// OpNot is logical negation.
	OpNot
)

func (op UnOp) String() string {
	if op == OpNeg {
		return "-"
	}
	return "!"
}

// exprBase carries the span and the mutable inferred-type slot shared by
// every expression. The slot is the single mutation channel the type
// checker has into the tree.
type exprBase struct {
	span source.Span
	typ  *types.Type
}

func (e *exprBase) Span() source.Span     { return e.span }
func (e *exprBase) Type() *types.Type     { return e.typ }
func (e *exprBase) SetType(t *types.Type) { e.typ = t }
func (*exprBase) exprNode()               {}

// IntLit is a decimal i32 literal.
type IntLit struct {
	exprBase
	Value int32
}

// NewIntLit constructs an integer literal node.
func NewIntLit(span source.Span, value int32) *IntLit {
	return &IntLit{exprBase: exprBase{span: span}, Value: value}
}

// BoolLit is a `true`/`false` literal.
type BoolLit struct {
	exprBase
	Value bool
}

// NewBoolLit constructs a boolean literal node.
func NewBoolLit(span source.Span, value bool) *BoolLit {
	return &BoolLit{exprBase: exprBase{span: span}, Value: value}
}

// StringLit is a double-quoted string literal. Value holds the raw text
// between the quotes; escape sequences are kept uninterpreted.
type StringLit struct {
	exprBase
	Value string
}

// NewStringLit constructs a string literal node.
func NewStringLit(span source.Span, value string) *StringLit {
	return &StringLit{exprBase: exprBase{span: span}, Value: value}
}

// Ident is a name use. MutBinding is discovered and written back by the
// type checker: whether the name resolved to a mutable binding.
type Ident struct {
	exprBase
	Name       string
	MutBinding bool
}

// NewIdent constructs an identifier node.
func NewIdent(span source.Span, name string) *Ident {
	return &Ident{exprBase: exprBase{span: span}, Name: name}
}

// BinaryExpr is a binary operation, including assignment.
type BinaryExpr struct {
	exprBase
	Op    BinOp
	Left  Expr
	Right Expr
}

// NewBinaryExpr constructs a binary expression node.
func NewBinaryExpr(span source.Span, op BinOp, left, right Expr) *BinaryExpr {
	return &BinaryExpr{exprBase: exprBase{span: span}, Op: op, Left: left, Right: right}
}

// UnaryExpr is negation or logical not.
type UnaryExpr struct {
	exprBase
	Op UnOp
	X  Expr
}

// NewUnaryExpr constructs a unary expression node.
func NewUnaryExpr(span source.Span, op UnOp, x Expr) *UnaryExpr {
	return &UnaryExpr{exprBase: exprBase{span: span}, Op: op, X: x}
}

// BorrowExpr is `&e` or `&mut e`.
type BorrowExpr struct {
	exprBase
	IsMut bool
	X     Expr
}

// NewBorrowExpr constructs a borrow expression node.
func NewBorrowExpr(span source.Span, isMut bool, x Expr) *BorrowExpr {
	return &BorrowExpr{exprBase: exprBase{span: span}, IsMut: isMut, X: x}
}

// CallExpr is a call with an ordered argument list.
type CallExpr struct {
	exprBase
	Callee Expr
	Args   []Expr
}

// NewCallExpr constructs a call expression node.
func NewCallExpr(span source.Span, callee Expr, args []Expr) *CallExpr {
	return &CallExpr{exprBase: exprBase{span: span}, Callee: callee, Args: args}
}
