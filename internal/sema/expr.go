package sema

import (
	"fmt"

	"nust/internal/ast"
	"nust/internal/diag"
	"nust/internal/types"
)

func (c *Checker) checkExpr(expr ast.Expr) bool {
	switch e := expr.(type) {
	case *ast.IntLit:
		e.SetType(types.New(types.KindI32, e.Span()))
		return true

	case *ast.BoolLit:
		e.SetType(types.New(types.KindBool, e.Span()))
		return true

	case *ast.StringLit:
		e.SetType(types.New(types.KindStr, e.Span()))
		return true

	case *ast.Ident:
		return c.checkIdent(e)

	case *ast.BinaryExpr:
		return c.checkBinary(e)

	case *ast.UnaryExpr:
		return c.checkUnary(e)

	case *ast.BorrowExpr:
		return c.checkBorrow(e)

	case *ast.CallExpr:
		return c.checkCall(e)
	}

	return true
}

func (c *Checker) checkIdent(e *ast.Ident) bool {
	// Имена функций разрешаются раньше переменных. Голое имя функции
	// проходит проверку, но типа не несёт: оно легально только как
	// callee вызова.
	if c.isFunctionName(e.Name) {
		return true
	}

	b, ok := c.lookup(e.Name)
	if !ok {
		c.report(diag.SemaUndefinedVariable, e.Span(), "undefined variable: "+e.Name)
		return false
	}

	t := b.typ.Clone()
	t.Span = e.Span()
	e.SetType(t)
	e.MutBinding = b.isMut
	return true
}

func (c *Checker) checkBinary(e *ast.BinaryExpr) bool {
	if e.Op == ast.OpAssign {
		return c.checkAssign(e)
	}

	if !c.checkExpr(e.Left) || !c.checkExpr(e.Right) {
		return false
	}

	leftType, rightType := e.Left.Type(), e.Right.Type()
	if leftType == nil || rightType == nil {
		// Операнд мог быть именем функции: тип отсутствует.
		c.report(diag.SemaInvalidOperand, e.Span(), "invalid operands in binary expression")
		return false
	}

	switch e.Op {
	case ast.OpAdd, ast.OpSub, ast.OpMul, ast.OpDiv:
		if leftType.Kind != types.KindI32 || rightType.Kind != types.KindI32 {
			c.report(diag.SemaArithOperands, e.Span(), "arithmetic operations require integer operands")
			return false
		}
		e.SetType(types.New(types.KindI32, e.Span()))

	case ast.OpEq, ast.OpNe, ast.OpLt, ast.OpGt, ast.OpLe, ast.OpGe:
		if !compatible(leftType, rightType) {
			c.report(diag.SemaCompareOperands, e.Span(), "incompatible types in comparison")
			return false
		}
		e.SetType(types.New(types.KindBool, e.Span()))

	case ast.OpAnd, ast.OpOr:
		if leftType.Kind != types.KindBool || rightType.Kind != types.KindBool {
			c.report(diag.SemaLogicalOperands, e.Span(), "logical operations require boolean operands")
			return false
		}
		e.SetType(types.New(types.KindBool, e.Span()))
	}

	return true
}

// checkAssign — `x = e`. Порядок проверок повторяет порядок диагностик:
// существование, активное мутабельное заимствование, мутабельность
// привязки, затем типовая совместимость.
func (c *Checker) checkAssign(e *ast.BinaryExpr) bool {
	target, ok := e.Left.(*ast.Ident)
	if !ok {
		// Парсер такое отбрасывает; сюда попадает только вручную
		// собранное дерево.
		c.report(diag.SemaAssignTargetNotIdent, e.Span(), "left side of assignment must be an identifier")
		return false
	}

	b, found := c.lookup(target.Name)
	if !found {
		c.report(diag.SemaUndefinedVariable, e.Span(), "undefined variable: "+target.Name)
		return false
	}

	if b.typ.IsMutRef() {
		c.report(diag.SemaUseWhileMutBorrowed, e.Span(), "cannot use variable while mutably borrowed: "+target.Name)
		return false
	}

	if !b.isMut {
		c.report(diag.SemaAssignImmutable, e.Span(), "cannot assign to immutable variable: "+target.Name)
		return false
	}

	if !c.checkExpr(e.Right) {
		return false
	}

	if rightType := e.Right.Type(); rightType == nil || !assignable(b.typ, rightType) {
		c.report(diag.SemaAssignTypeMismatch, e.Span(), "type mismatch in assignment")
		return false
	}

	e.SetType(e.Right.Type().Clone())
	return true
}

func (c *Checker) checkUnary(e *ast.UnaryExpr) bool {
	if !c.checkExpr(e.X) {
		return false
	}

	operandType := e.X.Type()
	if operandType == nil {
		c.report(diag.SemaInvalidOperand, e.Span(), "invalid operand in unary expression")
		return false
	}

	switch e.Op {
	case ast.OpNeg:
		if operandType.Kind != types.KindI32 {
			c.report(diag.SemaNegOperand, e.Span(), "negation requires integer operand")
			return false
		}
		e.SetType(types.New(types.KindI32, e.Span()))
	case ast.OpNot:
		if operandType.Kind != types.KindBool {
			c.report(diag.SemaNotOperand, e.Span(), "logical not requires boolean operand")
			return false
		}
		e.SetType(types.New(types.KindBool, e.Span()))
	}

	return true
}

func (c *Checker) checkBorrow(e *ast.BorrowExpr) bool {
	if !c.checkExpr(e.X) {
		return false
	}

	operandType := e.X.Type()
	if operandType == nil {
		c.report(diag.SemaInvalidOperand, e.Span(), "invalid operand in borrow expression")
		return false
	}

	if e.IsMut {
		if ident, isIdent := e.X.(*ast.Ident); isIdent {
			if !ident.MutBinding {
				c.report(diag.SemaBorrowImmutable, e.Span(), "cannot borrow immutable variable as mutable")
				return false
			}
			if b, found := c.lookup(ident.Name); found && b.typ.IsMutRef() {
				c.report(diag.SemaAlreadyMutBorrowed, e.Span(), "variable already mutably borrowed: "+ident.Name)
				return false
			}
			c.markMutBorrowed(ident.Name, e.Span())
		}
	}

	e.SetType(types.NewRef(e.IsMut, operandType.Clone(), e.Span()))
	return true
}

func (c *Checker) checkCall(e *ast.CallExpr) bool {
	if !c.checkExpr(e.Callee) {
		return false
	}

	callee, ok := e.Callee.(*ast.Ident)
	if !ok {
		c.report(diag.SemaCalleeNotFunction, e.Span(), "function call requires a function name")
		return false
	}

	fn := c.findFunction(callee.Name)
	if fn == nil {
		c.report(diag.SemaUndefinedFunction, e.Span(), "undefined function: "+callee.Name)
		return false
	}

	if len(e.Args) != len(fn.Params) {
		c.report(diag.SemaArgCount, e.Span(), "wrong number of arguments for function "+callee.Name)
		return false
	}

	for i, arg := range e.Args {
		if !c.checkExpr(arg) {
			return false
		}
		argType := arg.Type()
		if argType == nil {
			c.report(diag.SemaInvalidOperand, e.Span(), "invalid argument in function call")
			return false
		}
		if !assignable(fn.Params[i].Type, argType) {
			c.report(diag.SemaArgTypeMismatch, arg.Span(),
				fmt.Sprintf("type mismatch in argument %d of function %s", i+1, callee.Name))
			return false
		}
	}

	ret := fn.ReturnType.Clone()
	ret.Span = e.Span()
	e.SetType(ret)
	return true
}
