package sema

import (
	"nust/internal/ast"
	"nust/internal/diag"
	"nust/internal/types"
)

func (c *Checker) checkFunction(fn *ast.FunctionDecl) bool {
	c.enterScope()
	defer c.exitScope()

	for i := range fn.Params {
		param := &fn.Params[i]
		if !c.declare(param.Name, param.Type.Clone(), param.IsMut) {
			c.report(diag.SemaDuplicateParam, param.Span, "duplicate parameter name: "+param.Name)
			return false
		}
	}

	ok := c.checkStmt(fn.Body)

	// Хвостовое выражение тела — неявное возвращаемое значение: его тип
	// обязан быть присваиваем в объявленный возвращаемый тип. Тип читаем
	// из аннотации, оставленной проверкой тела; nil означает, что само
	// выражение уже не прошло проверку и ошибка уже зарегистрирована.
	if stmts := fn.Body.Stmts; len(stmts) > 0 {
		if tail, isExpr := stmts[len(stmts)-1].(*ast.ExprStmt); isExpr {
			if tailType := tail.X.Type(); tailType != nil && !assignable(fn.ReturnType, tailType) {
				c.report(diag.SemaReturnTypeMismatch, tail.Span(), "function return type mismatch")
				ok = false
			}
		}
	}

	return ok
}

func (c *Checker) checkStmt(stmt ast.Stmt) bool {
	switch s := stmt.(type) {
	case *ast.LetStmt:
		return c.checkLet(s)

	case *ast.ExprStmt:
		return c.checkExpr(s.X)

	case *ast.IfStmt:
		if !c.checkExpr(s.Cond) {
			return false
		}
		if condType := s.Cond.Type(); condType == nil || condType.Kind != types.KindBool {
			c.report(diag.SemaCondNotBool, s.Cond.Span(), "if condition must be boolean")
			return false
		}
		c.enterScope()
		thenOK := c.checkStmt(s.Then)
		c.exitScope()
		if s.Else == nil {
			return thenOK
		}
		c.enterScope()
		elseOK := c.checkStmt(s.Else)
		c.exitScope()
		return thenOK && elseOK

	case *ast.WhileStmt:
		if !c.checkExpr(s.Cond) {
			return false
		}
		if condType := s.Cond.Type(); condType == nil || condType.Kind != types.KindBool {
			c.report(diag.SemaCondNotBool, s.Cond.Span(), "while condition must be boolean")
			return false
		}
		c.enterScope()
		ok := c.checkStmt(s.Body)
		c.exitScope()
		return ok

	case *ast.BlockStmt:
		c.enterScope()
		for _, inner := range s.Stmts {
			if !c.checkStmt(inner) {
				c.exitScope()
				return false
			}
		}
		c.exitScope()
		return true
	}

	return true
}

func (c *Checker) checkLet(s *ast.LetStmt) bool {
	if !c.checkExpr(s.Init) {
		return false
	}

	if initType := s.Init.Type(); initType == nil || !assignable(s.Type, initType) {
		c.report(diag.SemaLetTypeMismatch, s.Span(), "type mismatch in let binding")
		return false
	}

	if !c.declare(s.Name, s.Type.Clone(), s.IsMut) {
		c.report(diag.SemaDuplicateVariable, s.Span(), "duplicate variable name: "+s.Name)
		return false
	}
	return true
}
