// Package compiler lowers a type-checked tree into stack-machine
// instructions and the function metadata table. Вход обязан пройти
// проверку типов: ошибки здесь — нарушение внутренних инвариантов,
// а не пользовательская диагностика.
package compiler

import (
	"errors"
	"fmt"

	"fortio.org/safecast"

	"nust/internal/ast"
	"nust/internal/bytecode"
)

// Sentinel errors for internal-invariant violations. Достижимы только
// на непроверенном входе.
var (
	// ErrUnknownLocal reports a reference to a local that was never
	// assigned a slot.
	ErrUnknownLocal = errors.New("unknown local variable")
	// ErrUnknownFunction reports a call to a name missing from the
	// function table.
	ErrUnknownFunction = errors.New("unknown function")
)

// Compiler holds the working state of one compilation: the growing
// instruction vector, the string constant pool, and the per-function
// слот-карта локальных переменных.
type Compiler struct {
	instructions []bytecode.Instruction
	strings      []string
	locals       map[string]uint32
	nextLocal    uint32
	table        *bytecode.FunctionTable
}

// New creates a compiler.
func New() *Compiler {
	return &Compiler{}
}

// Compile lowers the program and returns the flat instruction vector.
// The function table and string pool are available afterwards through
// FunctionTable and StringConstants. State is reset on every call, so
// one Compiler can serve repeated compilations.
func (c *Compiler) Compile(program *ast.Program) ([]bytecode.Instruction, error) {
	c.instructions = nil
	c.strings = nil
	c.locals = nil
	c.nextLocal = 0
	c.table = bytecode.NewFunctionTable()

	// Первый проход: все функции попадают в таблицу с нулевой точкой
	// входа. Это делает возможными вызовы вперёд.
	for _, item := range program.Items {
		if fn, ok := item.(*ast.FunctionDecl); ok {
			c.table.Add(fn, 0)
		}
	}

	// Второй проход: тела в порядке объявления, с допиской настоящей
	// точки входа и числа локалов.
	for _, item := range program.Items {
		fn, ok := item.(*ast.FunctionDecl)
		if !ok {
			continue
		}
		entry := c.here()
		if err := c.compileFunction(fn); err != nil {
			return nil, err
		}
		index, ok := c.table.IndexOf(fn.Name)
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrUnknownFunction, fn.Name)
		}
		info := c.table.Get(index)
		info.EntryPoint = entry
		info.NumLocals = c.nextLocal
	}

	return c.instructions, nil
}

// FunctionTable returns the table built by the last Compile call.
func (c *Compiler) FunctionTable() *bytecode.FunctionTable {
	return c.table
}

// StringConstants returns the string pool built by the last Compile
// call. Literals are pooled per occurrence, without deduplication.
func (c *Compiler) StringConstants() []string {
	return c.strings
}

func (c *Compiler) compileFunction(fn *ast.FunctionDecl) error {
	c.locals = make(map[string]uint32)
	c.nextLocal = 0

	// Параметры занимают первые слоты в порядке объявления.
	for i := range fn.Params {
		c.locals[fn.Params[i].Name] = c.nextLocal
		c.nextLocal++
	}

	if err := c.compileStmt(fn.Body); err != nil {
		return err
	}

	// Тело без явного возврата значения получает голый RET.
	if n := len(c.instructions); n == 0 || c.instructions[n-1].Op != bytecode.RetVal {
		c.emit(bytecode.Instr(bytecode.Ret))
	}
	return nil
}

// slotOf resolves a name to its local slot.
func (c *Compiler) slotOf(name string) (uint32, error) {
	slot, ok := c.locals[name]
	if !ok {
		return 0, fmt.Errorf("%w: %s", ErrUnknownLocal, name)
	}
	return slot, nil
}

// here returns the index the next emitted instruction will occupy.
func (c *Compiler) here() uint32 {
	index, err := safecast.Conv[uint32](len(c.instructions))
	if err != nil {
		panic(fmt.Errorf("instruction vector overflow: %w", err))
	}
	return index
}

func (c *Compiler) emit(in bytecode.Instruction) {
	c.instructions = append(c.instructions, in)
}

// emitPlaceholder emits a jump with a zero target and returns its index
// for later patching.
func (c *Compiler) emitPlaceholder(op bytecode.Opcode) uint32 {
	index := c.here()
	c.emit(bytecode.InstrOp(op, 0))
	return index
}

// patch rewrites the operand of an earlier instruction to the current
// position. Цели переходов — абсолютные индексы в общем векторе.
func (c *Compiler) patch(index uint32) {
	c.instructions[index].Operand = c.here()
}
