package diagfmt

import (
	"strings"
	"testing"

	"nust/internal/diag"
	"nust/internal/source"
)

func bagWith(items ...diag.Diagnostic) *diag.Bag {
	bag := diag.NewBag(16)
	for _, d := range items {
		bag.Add(d)
	}
	return bag
}

func TestPrettyPlain(t *testing.T) {
	src := "fn main() {\n\tghost;\n}\n"
	// "ghost" начинается на смещении 13.
	bag := bagWith(diag.Diagnostic{
		Severity: diag.SevError,
		Code:     diag.SemaUndefinedVariable,
		Message:  "undefined variable: ghost",
		Primary:  source.Mk(13, 18),
	})

	var sb strings.Builder
	Pretty(&sb, "main.nu", src, bag, PrettyOpts{})

	want := "main.nu:2:2: ERROR SEM3001: undefined variable: ghost\n"
	if sb.String() != want {
		t.Errorf("output:\n%q\nwant:\n%q", sb.String(), want)
	}
}

func TestPrettyPreview(t *testing.T) {
	src := "let x: i32 = true;"
	bag := bagWith(diag.Diagnostic{
		Severity: diag.SevError,
		Code:     diag.SemaLetTypeMismatch,
		Message:  "type mismatch in let binding",
		Primary:  source.Mk(13, 17),
	})

	var sb strings.Builder
	Pretty(&sb, "a.nu", src, bag, PrettyOpts{Preview: true})

	want := "a.nu:1:14: ERROR SEM3005: type mismatch in let binding\n" +
		"  let x: i32 = true;\n" +
		"               ^~~~\n"
	if sb.String() != want {
		t.Errorf("output:\n%q\nwant:\n%q", sb.String(), want)
	}
}

func TestPrettyEmptySpanAtEOF(t *testing.T) {
	src := "fn"
	bag := bagWith(diag.Diagnostic{
		Severity: diag.SevError,
		Code:     diag.SynExpectedIdentifier,
		Message:  "expected identifier",
		Primary:  source.Mk(2, 2),
	})

	var sb strings.Builder
	Pretty(&sb, "a.nu", src, bag, PrettyOpts{Preview: true})

	want := "a.nu:1:3: ERROR SYN2002: expected identifier\n" +
		"  fn\n" +
		"    ^\n"
	if sb.String() != want {
		t.Errorf("output:\n%q\nwant:\n%q", sb.String(), want)
	}
}

func TestPrettySeverityLabels(t *testing.T) {
	if got := severityLabel(diag.SevWarning, false); got != "WARNING" {
		t.Errorf("label = %q", got)
	}
	if got := codeLabel(diag.CmpInternal, false); got != "CMP4001" {
		t.Errorf("code label = %q", got)
	}
}
