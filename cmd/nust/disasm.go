package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"nust/internal/bytecode"
)

var disasmCmd = &cobra.Command{
	Use:   "disasm <file.no>",
	Short: "Print the contents of a compiled module",
	Args:  cobra.ExactArgs(1),
	RunE:  disasmExecution,
}

func disasmExecution(cmd *cobra.Command, args []string) error {
	module, err := bytecode.ReadFile(args[0])
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	for i, fn := range module.Functions {
		fmt.Fprintf(out, "; fn %d %s entry=%d params=%d locals=%d\n",
			i, fn.Name, fn.EntryPoint, fn.NumParams, fn.NumLocals)
	}
	for i, s := range module.Strings {
		fmt.Fprintf(out, "; str %d %q\n", i, s)
	}
	return bytecode.Disassemble(out, module.Instructions)
}
