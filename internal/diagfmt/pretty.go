// Package diagfmt renders diagnostics for humans.
package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"nust/internal/diag"
	"nust/internal/source"
)

// PrettyOpts configures pretty-printing of diagnostics.
type PrettyOpts struct {
	Color   bool
	Preview bool // строка-контекст с подчёркиванием под спаном
}

var (
	errorColor   = color.New(color.FgRed, color.Bold)
	warningColor = color.New(color.FgYellow, color.Bold)
	infoColor    = color.New(color.FgCyan, color.Bold)
	codeColor    = color.New(color.Bold)
)

// Pretty форматирует диагностики в человекочитаемый вид.
// Идёт по bag.Items() (ожидается bag.Sort() заранее).
// Для каждого diag печатает:
// <path>:<line>:<col>: <sev> <CODE>: <Message>
// затем при Preview контекст строки с подчёркиванием ^~~~ по Span.
func Pretty(w io.Writer, path, src string, bag *diag.Bag, opts PrettyOpts) {
	for _, d := range bag.Items() {
		line, col := lineCol(src, int(d.Primary.Start))
		fmt.Fprintf(w, "%s:%d:%d: %s %s: %s\n",
			path, line, col,
			severityLabel(d.Severity, opts.Color),
			codeLabel(d.Code, opts.Color),
			d.Message,
		)
		if opts.Preview {
			writePreview(w, src, d.Primary)
		}
	}
}

func severityLabel(sev diag.Severity, colored bool) string {
	label := sev.String()
	if !colored {
		return label
	}
	switch sev {
	case diag.SevError:
		return errorColor.Sprint(label)
	case diag.SevWarning:
		return warningColor.Sprint(label)
	default:
		return infoColor.Sprint(label)
	}
}

func codeLabel(code diag.Code, colored bool) string {
	if colored {
		return codeColor.Sprint(code.ID())
	}
	return code.ID()
}

// lineCol converts a byte offset to 1-based line and column. Колонка
// считается в байтах.
func lineCol(src string, offset int) (line, col int) {
	if offset > len(src) {
		offset = len(src)
	}
	line = 1 + strings.Count(src[:offset], "\n")
	lineStart := strings.LastIndexByte(src[:offset], '\n') + 1
	return line, offset - lineStart + 1
}

func writePreview(w io.Writer, src string, span source.Span) {
	offset := int(span.Start)
	if offset > len(src) {
		offset = len(src)
	}
	lineStart := strings.LastIndexByte(src[:offset], '\n') + 1
	lineEnd := len(src)
	if i := strings.IndexByte(src[lineStart:], '\n'); i >= 0 {
		lineEnd = lineStart + i
	}

	// Подчёркивание не выходит за конец строки и занимает минимум один
	// символ.
	markLen := int(span.Len())
	if avail := lineEnd - offset; markLen > avail {
		markLen = avail
	}
	if markLen < 1 {
		markLen = 1
	}

	fmt.Fprintf(w, "  %s\n", src[lineStart:lineEnd])
	fmt.Fprintf(w, "  %s^%s\n",
		strings.Repeat(" ", offset-lineStart),
		strings.Repeat("~", markLen-1),
	)
}
