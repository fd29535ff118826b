package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"nust/internal/driver"
)

var checkCmd = &cobra.Command{
	Use:   "check <file.nu> [more files...]",
	Short: "Parse and type-check source files without generating code",
	Args:  cobra.MinimumNArgs(1),
	RunE:  checkExecution,
}

func checkExecution(cmd *cobra.Command, args []string) error {
	colored, err := colorEnabled(cmd)
	if err != nil {
		return err
	}
	opts, _, err := buildOptions(cmd)
	if err != nil {
		return err
	}
	opts.CheckOnly = true

	results, err := driver.BuildFiles(cmd.Context(), args, opts)
	if err != nil {
		return err
	}

	failed := 0
	for i := range results {
		res := &results[i]
		printDiagnostics(res, colored)
		if res.Failed() {
			failed++
		}
	}

	if failed > 0 {
		return fmt.Errorf("check failed for %d of %d files", failed, len(results))
	}
	return nil
}
