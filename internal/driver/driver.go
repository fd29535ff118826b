// Package driver ties the pipeline stages together: parse, check,
// compile, with per-file diagnostics collection.
package driver

import (
	"errors"
	"os"

	"nust/internal/ast"
	"nust/internal/bytecode"
	"nust/internal/compiler"
	"nust/internal/diag"
	"nust/internal/parser"
	"nust/internal/project"
	"nust/internal/sema"
)

// Options configures a build.
type Options struct {
	// MaxDiagnostics caps the bag size; non-positive falls back to the
	// project default.
	MaxDiagnostics int
	// CheckOnly stops after the type checker.
	CheckOnly bool
	// Jobs ограничивает параллелизм BuildFiles; 0 — по числу CPU.
	Jobs int
}

func (o Options) maxDiagnostics() int {
	if o.MaxDiagnostics > 0 {
		return o.MaxDiagnostics
	}
	return project.DefaultMaxDiagnostics
}

// Result holds everything one file's build produced. Failed input leaves
// the code-generation fields nil.
type Result struct {
	Path         string
	Source       string
	Program      *ast.Program
	Bag          *diag.Bag
	Instructions []bytecode.Instruction
	Table        *bytecode.FunctionTable
	Strings      []string
	// Err — сбой вне пользовательских диагностик: I/O или внутренняя
	// ошибка компилятора.
	Err error
}

// Failed reports whether the build produced no usable output.
func (r *Result) Failed() bool {
	return r.Err != nil || r.Bag.HasErrors()
}

// BuildSource runs the pipeline over in-memory source text.
func BuildSource(path, src string, opts Options) Result {
	res := Result{
		Path:   path,
		Source: src,
		Bag:    diag.NewBag(opts.maxDiagnostics()),
	}

	program, err := parser.Parse(src)
	if err != nil {
		var perr *parser.Error
		if errors.As(err, &perr) {
			res.Bag.Add(perr.Diagnostic())
		} else {
			res.Err = err
		}
		return res
	}
	res.Program = program

	sema.Check(program, diag.BagReporter{Bag: res.Bag})
	res.Bag.Sort()
	if res.Bag.HasErrors() || opts.CheckOnly {
		return res
	}

	c := compiler.New()
	instrs, err := c.Compile(program)
	if err != nil {
		res.Err = err
		return res
	}
	res.Instructions = instrs
	res.Table = c.FunctionTable()
	res.Strings = c.StringConstants()
	return res
}

// BuildFile reads a file from disk and runs the pipeline over it.
func BuildFile(path string, opts Options) Result {
	data, err := os.ReadFile(path)
	if err != nil {
		return Result{
			Path: path,
			Bag:  diag.NewBag(opts.maxDiagnostics()),
			Err:  err,
		}
	}
	return BuildSource(path, string(data), opts)
}
