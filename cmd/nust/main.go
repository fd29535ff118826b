// Package main implements the nust CLI.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"nust/internal/driver"
	"nust/internal/project"
	"nust/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "nust",
	Short: "Nust language compiler",
	Long:  `Nust is a compiler for a small statically-typed language with borrow semantics`,
}

func main() {
	// Версия для автоматического флага --version
	rootCmd.Version = version.Version

	rootCmd.AddCommand(buildCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(disasmCmd)
	rootCmd.AddCommand(versionCmd)

	// Глобальные флаги
	rootCmd.PersistentFlags().String("color", "auto", "colorize output (auto|on|off)")
	rootCmd.PersistentFlags().Int("max-diagnostics", 0, "maximum number of diagnostics to show (0 = project default)")
	rootCmd.PersistentFlags().Int("jobs", 0, "number of parallel build jobs (0 = number of CPUs)")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// isTerminal проверяет, является ли файл терминалом
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// colorEnabled resolves the --color flag against the output terminal.
func colorEnabled(cmd *cobra.Command) (bool, error) {
	mode, err := cmd.Flags().GetString("color")
	if err != nil {
		return false, err
	}
	switch mode {
	case "on":
		return true, nil
	case "off":
		return false, nil
	case "auto":
		return isTerminal(os.Stderr), nil
	default:
		return false, fmt.Errorf("unsupported --color value %q (must be auto, on or off)", mode)
	}
}

// buildOptions merges flags with the project manifest, когда он есть.
// Явный флаг всегда выигрывает у манифеста.
func buildOptions(cmd *cobra.Command) (driver.Options, *project.Manifest, error) {
	maxDiagnostics, err := cmd.Flags().GetInt("max-diagnostics")
	if err != nil {
		return driver.Options{}, nil, err
	}
	jobs, err := cmd.Flags().GetInt("jobs")
	if err != nil {
		return driver.Options{}, nil, err
	}

	manifest, found, err := project.Load(".")
	if err != nil {
		return driver.Options{}, nil, err
	}
	if found && maxDiagnostics <= 0 {
		maxDiagnostics = manifest.Config.Build.MaxDiagnostics
	}

	return driver.Options{
		MaxDiagnostics: maxDiagnostics,
		Jobs:           jobs,
	}, manifest, nil
}
