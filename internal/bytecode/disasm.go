package bytecode

import (
	"fmt"
	"io"
)

// Disassemble пишет текстовую форму: по инструкции на строку, имя опкода
// и — только для операндоносных опкодов — десятичный операнд.
func Disassemble(w io.Writer, instrs []Instruction) error {
	for _, in := range instrs {
		if _, err := fmt.Fprintln(w, in.String()); err != nil {
			return err
		}
	}
	return nil
}
