package bytecode

import (
	"fmt"
)

// Instruction — опкод плюс одно слово операнда. Для PUSH_I32 операнд
// хранит битовое представление int32-константы; для остальных
// операндоносных опкодов — беззнаковый индекс (слот, цель перехода,
// индекс таблицы функций или пула строк).
type Instruction struct {
	Op      Opcode
	Operand uint32
}

// Instr builds an instruction without a meaningful operand.
func Instr(op Opcode) Instruction {
	return Instruction{Op: op}
}

// InstrOp builds an instruction with an operand.
func InstrOp(op Opcode, operand uint32) Instruction {
	return Instruction{Op: op, Operand: operand}
}

func (in Instruction) String() string {
	if !in.Op.HasOperand() {
		return in.Op.String()
	}
	if in.Op == PushI32 {
		return fmt.Sprintf("%s %d", in.Op, int32(in.Operand))
	}
	return fmt.Sprintf("%s %d", in.Op, in.Operand)
}
