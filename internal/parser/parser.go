// Package parser turns nust source text into an ast.Program.
//
// Парсер сканерless: работает прямо по байтам исходника, без отдельного
// токенизатора — позиция курсора и есть байтовое смещение для диагностик.
// Любая структурная ошибка немедленно прерывает разбор (*Error).
package parser

import (
	"strings"

	"nust/internal/ast"
	"nust/internal/source"
)

// Parser — состояние разбора одного исходного файла.
type Parser struct {
	src   string
	pos   int
	scope *ast.Scope // активная лексическая область
}

// Parse разбирает исходный текст целиком.
// Возвращаемая ошибка всегда имеет тип *Error.
func Parse(src string) (*ast.Program, error) {
	p := &Parser{
		src:   src,
		scope: ast.NewScope(nil),
	}
	return p.parseProgram()
}

func (p *Parser) parseProgram() (*ast.Program, error) {
	start := p.pos
	var items []ast.Item

	p.skipTrivia()
	for !p.atEnd() {
		fn, err := p.parseFunction()
		if err != nil {
			return nil, err
		}
		items = append(items, fn)
		p.skipTrivia()
	}

	return ast.NewProgram(p.spanFrom(start), items), nil
}

// --- cursor helpers ---

func (p *Parser) atEnd() bool {
	return p.pos >= len(p.src)
}

func (p *Parser) spanFrom(start int) source.Span {
	return source.Mk(uint32(start), uint32(p.pos))
}

// peekLit reports whether the input at the cursor starts with lit.
func (p *Parser) peekLit(lit string) bool {
	return strings.HasPrefix(p.src[p.pos:], lit)
}

// match consumes lit if the input starts with it.
func (p *Parser) match(lit string) bool {
	if p.peekLit(lit) {
		p.pos += len(lit)
		return true
	}
	return false
}

// matchKw consumes kw only at a word boundary, so that `letter` is an
// identifier and not `let` + `ter`.
func (p *Parser) matchKw(kw string) bool {
	if !p.peekLit(kw) {
		return false
	}
	if next := p.pos + len(kw); next < len(p.src) && isIdentChar(p.src[next]) {
		return false
	}
	p.pos += len(kw)
	return true
}

func (p *Parser) expect(lit string) error {
	if !p.match(lit) {
		return p.expectedTokenError(lit)
	}
	return nil
}

// skipTrivia пропускает пробелы и строчные комментарии `// ...`.
func (p *Parser) skipTrivia() {
	for p.pos < len(p.src) {
		switch c := p.src[p.pos]; {
		case c == ' ' || c == '\t' || c == '\n' || c == '\r':
			p.pos++
		case c == '/' && p.pos+1 < len(p.src) && p.src[p.pos+1] == '/':
			p.pos += 2
			for p.pos < len(p.src) && p.src[p.pos] != '\n' && p.src[p.pos] != '\r' {
				p.pos++
			}
		default:
			return
		}
	}
}

func isIdentStart(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isIdentChar(c byte) bool {
	return isIdentStart(c) || isDigit(c)
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

// --- scope management ---

// enterScope pushes a fresh scope whose parent is the current one.
func (p *Parser) enterScope() *ast.Scope {
	s := ast.NewScope(p.scope)
	p.scope = s
	return s
}

func (p *Parser) exitScope() {
	if p.scope.Parent != nil {
		p.scope = p.scope.Parent
	}
}
