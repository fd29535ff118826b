package parser

import (
	"fmt"
	"strconv"

	"nust/internal/diag"
	"nust/internal/source"
)

// Error — фатальная синтаксическая ошибка. Первое структурное нарушение
// прерывает весь разбор: восстановления нет.
type Error struct {
	Offset int
	Code   diag.Code
	Msg    string
}

func (e *Error) Error() string {
	return fmt.Sprintf("parse error at byte %d: %s", e.Offset, e.Msg)
}

// Diagnostic converts the parse error for uniform reporting alongside
// type-check diagnostics.
func (e *Error) Diagnostic() diag.Diagnostic {
	off := uint32(e.Offset)
	return diag.Diagnostic{
		Severity: diag.SevError,
		Code:     e.Code,
		Message:  e.Msg,
		Primary:  source.Mk(off, off),
	}
}

func (p *Parser) errHere(code diag.Code, msg string) *Error {
	return &Error{Offset: p.pos, Code: code, Msg: msg}
}

func (p *Parser) errAt(code diag.Code, offset int, msg string) *Error {
	return &Error{Offset: offset, Code: code, Msg: msg}
}

func (p *Parser) expectedTokenError(lit string) *Error {
	return p.errHere(diag.SynExpectedToken, "expected "+strconv.Quote(lit))
}
