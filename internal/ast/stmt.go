package ast

import (
	"nust/internal/source"
	"nust/internal/types"
)

// stmtBase carries the span and enclosing scope shared by every statement.
type stmtBase struct {
	span  source.Span
	scope *Scope
}

func (s *stmtBase) Span() source.Span { return s.span }
func (s *stmtBase) Scope() *Scope     { return s.scope }
func (*stmtBase) stmtNode()           {}

// LetStmt is a `let [mut] name: type = init;` binding.
type LetStmt struct {
	stmtBase
	IsMut bool
	Name  string
	Type  *types.Type
	Init  Expr
}

// NewLetStmt constructs a let statement node.
func NewLetStmt(span source.Span, scope *Scope, isMut bool, name string, typ *types.Type, init Expr) *LetStmt {
	return &LetStmt{
		stmtBase: stmtBase{span: span, scope: scope},
		IsMut:    isMut,
		Name:     name,
		Type:     typ,
		Init:     init,
	}
}

// ExprStmt is an expression evaluated for its effect.
type ExprStmt struct {
	stmtBase
	X Expr
}

// NewExprStmt constructs an expression statement node.
func NewExprStmt(span source.Span, scope *Scope, x Expr) *ExprStmt {
	return &ExprStmt{stmtBase: stmtBase{span: span, scope: scope}, X: x}
}

// IfStmt is a conditional with an optional else arm. Else may itself be an
// IfStmt (else-if chains) or a BlockStmt.
type IfStmt struct {
	stmtBase
	Cond Expr
	Then Stmt
	Else Stmt // nil if absent
}

// NewIfStmt constructs an if statement node.
func NewIfStmt(span source.Span, scope *Scope, cond Expr, then, els Stmt) *IfStmt {
	return &IfStmt{stmtBase: stmtBase{span: span, scope: scope}, Cond: cond, Then: then, Else: els}
}

// WhileStmt is a pre-tested loop.
type WhileStmt struct {
	stmtBase
	Cond Expr
	Body Stmt
}

// NewWhileStmt constructs a while statement node.
func NewWhileStmt(span source.Span, scope *Scope, cond Expr, body Stmt) *WhileStmt {
	return &WhileStmt{stmtBase: stmtBase{span: span, scope: scope}, Cond: cond, Body: body}
}

// BlockStmt is an ordered statement list in braces.
type BlockStmt struct {
	stmtBase
	Stmts []Stmt
}

// NewBlockStmt constructs a block node.
func NewBlockStmt(span source.Span, scope *Scope, stmts []Stmt) *BlockStmt {
	return &BlockStmt{stmtBase: stmtBase{span: span, scope: scope}, Stmts: stmts}
}
