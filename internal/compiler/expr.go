package compiler

import (
	"fmt"

	"fortio.org/safecast"

	"nust/internal/ast"
	"nust/internal/bytecode"
)

func (c *Compiler) compileExpr(expr ast.Expr) error {
	switch e := expr.(type) {
	case *ast.IntLit:
		c.emit(bytecode.InstrOp(bytecode.PushI32, uint32(e.Value)))
		return nil
	case *ast.BoolLit:
		operand := uint32(0)
		if e.Value {
			operand = 1
		}
		c.emit(bytecode.InstrOp(bytecode.PushBool, operand))
		return nil
	case *ast.StringLit:
		c.emit(bytecode.InstrOp(bytecode.PushStr, c.addConstant(e.Value)))
		return nil
	case *ast.Ident:
		slot, err := c.slotOf(e.Name)
		if err != nil {
			return err
		}
		c.emit(bytecode.InstrOp(bytecode.Load, slot))
		return nil
	case *ast.BinaryExpr:
		return c.compileBinary(e)
	case *ast.UnaryExpr:
		if err := c.compileExpr(e.X); err != nil {
			return err
		}
		if e.Op == ast.OpNeg {
			c.emit(bytecode.Instr(bytecode.NegI32))
		} else {
			c.emit(bytecode.Instr(bytecode.Not))
		}
		return nil
	case *ast.BorrowExpr:
		if err := c.compileExpr(e.X); err != nil {
			return err
		}
		if e.IsMut {
			c.emit(bytecode.Instr(bytecode.BorrowMut))
		} else {
			c.emit(bytecode.Instr(bytecode.Borrow))
		}
		return nil
	case *ast.CallExpr:
		return c.compileCall(e)
	default:
		return fmt.Errorf("unexpected expression node %T", expr)
	}
}

var binaryOpcodes = map[ast.BinOp]bytecode.Opcode{
	ast.OpAdd: bytecode.AddI32,
	ast.OpSub: bytecode.SubI32,
	ast.OpMul: bytecode.MulI32,
	ast.OpDiv: bytecode.DivI32,
	ast.OpEq:  bytecode.EqI32,
	ast.OpNe:  bytecode.NeI32,
	ast.OpLt:  bytecode.LtI32,
	ast.OpGt:  bytecode.GtI32,
	ast.OpLe:  bytecode.LeI32,
	ast.OpGe:  bytecode.GeI32,
	ast.OpAnd: bytecode.And,
	ast.OpOr:  bytecode.Or,
}

func (c *Compiler) compileBinary(expr *ast.BinaryExpr) error {
	if expr.Op == ast.OpAssign {
		return c.compileAssign(expr)
	}

	if err := c.compileExpr(expr.Left); err != nil {
		return err
	}
	if err := c.compileExpr(expr.Right); err != nil {
		return err
	}

	op, ok := binaryOpcodes[expr.Op]
	if !ok {
		return fmt.Errorf("unexpected binary operator %s", expr.Op)
	}
	c.emit(bytecode.Instr(op))
	return nil
}

// compileAssign lowers `x = e` as value, store, reload: присваивание —
// само по себе выражение и оставляет значение на стеке.
func (c *Compiler) compileAssign(expr *ast.BinaryExpr) error {
	if err := c.compileExpr(expr.Right); err != nil {
		return err
	}

	target, ok := expr.Left.(*ast.Ident)
	if !ok {
		return fmt.Errorf("assignment target must be an identifier, got %T", expr.Left)
	}
	slot, err := c.slotOf(target.Name)
	if err != nil {
		return err
	}
	c.emit(bytecode.InstrOp(bytecode.Store, slot))
	c.emit(bytecode.InstrOp(bytecode.Load, slot))
	return nil
}

func (c *Compiler) compileCall(expr *ast.CallExpr) error {
	// Аргументы в обратном порядке: вызываемая функция читает их из
	// слотов в исходном.
	for i := len(expr.Args) - 1; i >= 0; i-- {
		if err := c.compileExpr(expr.Args[i]); err != nil {
			return err
		}
	}

	callee, ok := expr.Callee.(*ast.Ident)
	if !ok {
		return fmt.Errorf("callee must be an identifier, got %T", expr.Callee)
	}
	index, ok := c.table.IndexOf(callee.Name)
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownFunction, callee.Name)
	}
	c.emit(bytecode.InstrOp(bytecode.Call, index))
	return nil
}

// addConstant appends a string literal to the pool and returns its index.
func (c *Compiler) addConstant(s string) uint32 {
	index, err := safecast.Conv[uint32](len(c.strings))
	if err != nil {
		panic(fmt.Errorf("string pool overflow: %w", err))
	}
	c.strings = append(c.strings, s)
	return index
}
