// Package ast defines the syntax tree produced by the parser. The node
// families are closed variant sets: sealed interfaces with one struct per
// node kind, consumed by exhaustive type switches downstream.
package ast

import (
	"nust/internal/source"
	"nust/internal/types"
)

// Node represents any AST node with an associated source span.
type Node interface {
	Span() source.Span
}

// Item represents a top-level declaration.
type Item interface {
	Node
	itemNode()
}

// Stmt represents a statement node. Every statement carries the lexical
// scope that was active at its point of occurrence.
type Stmt interface {
	Node
	Scope() *Scope
	stmtNode()
}

// Expr represents an expression node. The type slot is empty until the
// type checker fills it in.
type Expr interface {
	Node
	Type() *types.Type
	SetType(t *types.Type)
	exprNode()
}

// Program is an ordered sequence of top-level items.
type Program struct {
	Items []Item
	span  source.Span
}

// NewProgram constructs the root node.
func NewProgram(span source.Span, items []Item) *Program {
	return &Program{Items: items, span: span}
}

// Span returns the span covering the entire program.
func (p *Program) Span() source.Span { return p.span }

// Param is a single function parameter.
type Param struct {
	IsMut bool
	Name  string
	Type  *types.Type
	Span  source.Span
}

// FunctionDecl is a top-level `fn` declaration.
type FunctionDecl struct {
	Name       string
	Params     []Param
	ReturnType *types.Type
	Body       *BlockStmt
	span       source.Span
}

// NewFunctionDecl constructs a function declaration node.
func NewFunctionDecl(span source.Span, name string, params []Param, ret *types.Type, body *BlockStmt) *FunctionDecl {
	return &FunctionDecl{
		Name:       name,
		Params:     params,
		ReturnType: ret,
		Body:       body,
		span:       span,
	}
}

func (d *FunctionDecl) Span() source.Span { return d.span }
func (*FunctionDecl) itemNode()           {}
