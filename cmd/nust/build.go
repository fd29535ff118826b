package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"nust/internal/bytecode"
	"nust/internal/diag"
	"nust/internal/diagfmt"
	"nust/internal/driver"
	"nust/internal/project"
)

var buildCmd = &cobra.Command{
	Use:   "build <file.nu> [more files...]",
	Short: "Compile source files to bytecode modules",
	Long: "Compile nust source files. Each successfully built file produces a " +
		"textual disassembly (.ns) and a binary module (.no) next to it, or in " +
		"[build].out_dir when a nust.toml manifest governs the directory.",
	Args: cobra.MinimumNArgs(1),
	RunE: buildExecution,
}

func buildExecution(cmd *cobra.Command, args []string) error {
	colored, err := colorEnabled(cmd)
	if err != nil {
		return err
	}
	opts, manifest, err := buildOptions(cmd)
	if err != nil {
		return err
	}

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
			continue
		}
		if err := writeOutputs(res, manifest); err != nil {
			fmt.Fprintf(os.Stderr, "%s: %v\n", res.Path, err)
			failed++
		}
	}

	if failed > 0 {
		return fmt.Errorf("build failed for %d of %d files", failed, len(results))
	}
	return nil
}

func printDiagnostics(res *driver.Result, colored bool) {
	if res.Bag.Len() > 0 {
		diagfmt.Pretty(os.Stderr, res.Path, res.Source, res.Bag, diagfmt.PrettyOpts{
			Color:   colored,
			Preview: true,
		})
	}
	if res.Err != nil {
		// Сбои компилятора — нарушение внутренних инвариантов, не
		// пользовательская диагностика.
		fmt.Fprintf(os.Stderr, "%s: %s: %v\n", res.Path, diag.CmpInternal.ID(), res.Err)
	}
}

// outputStem derives the output path without extension, honouring the
// manifest's out_dir when present.
func outputStem(path string, manifest *project.Manifest) string {
	base := filepath.Base(path)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	dir := filepath.Dir(path)
	if manifest != nil && manifest.Config.Build.OutDir != "." {
		dir = filepath.Join(manifest.Root, manifest.Config.Build.OutDir)
	}
	return filepath.Join(dir, stem)
}

func writeOutputs(res *driver.Result, manifest *project.Manifest) error {
	stem := outputStem(res.Path, manifest)
	if err := os.MkdirAll(filepath.Dir(stem), 0o755); err != nil {
		return err
	}

	var asm bytes.Buffer
	if err := bytecode.Disassemble(&asm, res.Instructions); err != nil {
		return err
	}
	if err := os.WriteFile(stem+".ns", asm.Bytes(), 0o644); err != nil {
		return err
	}

	module := bytecode.NewModule(res.Instructions, res.Strings, res.Table)
	return module.WriteFile(stem + ".no")
}
