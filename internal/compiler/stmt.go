package compiler

import (
	"fmt"

	"nust/internal/ast"
	"nust/internal/bytecode"
)

func (c *Compiler) compileStmt(stmt ast.Stmt) error {
	switch s := stmt.(type) {
	case *ast.LetStmt:
		return c.compileLet(s)
	case *ast.ExprStmt:
		if err := c.compileExpr(s.X); err != nil {
			return err
		}
		// Значение никем не используется.
		c.emit(bytecode.Instr(bytecode.Pop))
		return nil
	case *ast.IfStmt:
		return c.compileIf(s)
	case *ast.WhileStmt:
		return c.compileWhile(s)
	case *ast.BlockStmt:
		for _, inner := range s.Stmts {
			if err := c.compileStmt(inner); err != nil {
				return err
			}
		}
		return nil
	default:
		return fmt.Errorf("unexpected statement node %T", stmt)
	}
}

func (c *Compiler) compileLet(stmt *ast.LetStmt) error {
	if err := c.compileExpr(stmt.Init); err != nil {
		return err
	}

	// Новое имя получает следующий свободный слот; повторное связывание
	// того же имени переиспользует его слот, даже из вложенного блока.
	if _, ok := c.locals[stmt.Name]; !ok {
		c.locals[stmt.Name] = c.nextLocal
		c.nextLocal++
	}
	slot, err := c.slotOf(stmt.Name)
	if err != nil {
		return err
	}
	c.emit(bytecode.InstrOp(bytecode.Store, slot))
	return nil
}

func (c *Compiler) compileIf(stmt *ast.IfStmt) error {
	if err := c.compileExpr(stmt.Cond); err != nil {
		return err
	}
	elseJump := c.emitPlaceholder(bytecode.JmpIfNot)

	if err := c.compileStmt(stmt.Then); err != nil {
		return err
	}

	if stmt.Else == nil {
		c.patch(elseJump)
		return nil
	}

	endJump := c.emitPlaceholder(bytecode.Jmp)
	c.patch(elseJump)
	if err := c.compileStmt(stmt.Else); err != nil {
		return err
	}
	c.patch(endJump)
	return nil
}

func (c *Compiler) compileWhile(stmt *ast.WhileStmt) error {
	loopStart := c.here()

	if err := c.compileExpr(stmt.Cond); err != nil {
		return err
	}
	exitJump := c.emitPlaceholder(bytecode.JmpIfNot)

	if err := c.compileStmt(stmt.Body); err != nil {
		return err
	}

	c.emit(bytecode.InstrOp(bytecode.Jmp, loopStart))
	c.patch(exitJump)
	return nil
}
