package parser

import (
	"strconv"

	"nust/internal/ast"
	"nust/internal/diag"
	"nust/internal/source"
)

// Каскад приоритетов, от самого слабого к самому сильному:
// assignment → or → and → equality → comparison → term → factor → unary →
// call → primary.

func (p *Parser) parseExpr() (ast.Expr, error) {
	return p.parseAssignment()
}

// parseAssignment — правоассоциативное `=`. Левый операнд обязан быть
// идентификатором уже на этапе разбора; скобки к этому моменту раскрыты,
// так что `(x) = 5` допустим.
func (p *Parser) parseAssignment() (ast.Expr, error) {
	lhs, err := p.parseOr()
	if err != nil {
		return nil, err
	}
	p.skipTrivia()

	if !p.match("=") {
		return lhs, nil
	}
	if _, ok := lhs.(*ast.Ident); !ok {
		return nil, p.errAt(diag.SynInvalidAssignTarget, int(lhs.Span().Start), "invalid assignment target")
	}
	p.skipTrivia()

	rhs, err := p.parseAssignment()
	if err != nil {
		return nil, err
	}
	span := source.Mk(lhs.Span().Start, uint32(p.pos))
	return ast.NewBinaryExpr(span, ast.OpAssign, lhs, rhs), nil
}

func (p *Parser) parseOr() (ast.Expr, error) {
	expr, err := p.parseAnd()
	if err != nil {
		return nil, err
	}

	for {
		p.skipTrivia()
		if !p.match("||") {
			return expr, nil
		}
		p.skipTrivia()
		right, err := p.parseAnd()
		if err != nil {
			return nil, err
		}
		span := source.Mk(expr.Span().Start, uint32(p.pos))
		expr = ast.NewBinaryExpr(span, ast.OpOr, expr, right)
	}
}

func (p *Parser) parseAnd() (ast.Expr, error) {
	expr, err := p.parseEquality()
	if err != nil {
		return nil, err
	}

	for {
		p.skipTrivia()
		if !p.match("&&") {
			return expr, nil
		}
		p.skipTrivia()
		right, err := p.parseEquality()
		if err != nil {
			return nil, err
		}
		span := source.Mk(expr.Span().Start, uint32(p.pos))
		expr = ast.NewBinaryExpr(span, ast.OpAnd, expr, right)
	}
}

func (p *Parser) parseEquality() (ast.Expr, error) {
	expr, err := p.parseComparison()
	if err != nil {
		return nil, err
	}

	for {
		p.skipTrivia()
		var op ast.BinOp
		switch {
		case p.match("=="):
			op = ast.OpEq
		case p.match("!="):
			op = ast.OpNe
		default:
			return expr, nil
		}
		p.skipTrivia()
		right, err := p.parseComparison()
		if err != nil {
			return nil, err
		}
		span := source.Mk(expr.Span().Start, uint32(p.pos))
		expr = ast.NewBinaryExpr(span, op, expr, right)
	}
}

func (p *Parser) parseComparison() (ast.Expr, error) {
	expr, err := p.parseTerm()
	if err != nil {
		return nil, err
	}

	for {
		p.skipTrivia()
		var op ast.BinOp
		// Двухсимвольные операторы раньше односимвольных.
		switch {
		case p.match("<="):
			op = ast.OpLe
		case p.match(">="):
			op = ast.OpGe
		case p.match("<"):
			op = ast.OpLt
		case p.match(">"):
			op = ast.OpGt
		default:
			return expr, nil
		}
		p.skipTrivia()
		right, err := p.parseTerm()
		if err != nil {
			return nil, err
		}
		span := source.Mk(expr.Span().Start, uint32(p.pos))
		expr = ast.NewBinaryExpr(span, op, expr, right)
	}
}

func (p *Parser) parseTerm() (ast.Expr, error) {
	expr, err := p.parseFactor()
	if err != nil {
		return nil, err
	}

	for {
		p.skipTrivia()
		var op ast.BinOp
		switch {
		case p.match("+"):
			op = ast.OpAdd
		case p.match("-"):
			op = ast.OpSub
		default:
			return expr, nil
		}
		p.skipTrivia()
		right, err := p.parseFactor()
		if err != nil {
			return nil, err
		}
		span := source.Mk(expr.Span().Start, uint32(p.pos))
		expr = ast.NewBinaryExpr(span, op, expr, right)
	}
}

func (p *Parser) parseFactor() (ast.Expr, error) {
	expr, err := p.parseUnary()
	if err != nil {
		return nil, err
	}

	for {
		p.skipTrivia()
		var op ast.BinOp
		switch {
		case p.match("*"):
			op = ast.OpMul
		case p.match("/"):
			op = ast.OpDiv
		default:
			return expr, nil
		}
		p.skipTrivia()
		right, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		span := source.Mk(expr.Span().Start, uint32(p.pos))
		expr = ast.NewBinaryExpr(span, op, expr, right)
	}
}

// parseUnary — `-`, `!` и заимствования `&`/`&mut`, все рекурсивно
// вложимы: `&&x` это заимствование заимствования, `&mut &mut x` разбирается.
func (p *Parser) parseUnary() (ast.Expr, error) {
	p.skipTrivia()
	start := p.pos

	switch {
	case p.match("-"):
		x, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return ast.NewUnaryExpr(p.spanFrom(start), ast.OpNeg, x), nil
	case p.match("!"):
		x, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return ast.NewUnaryExpr(p.spanFrom(start), ast.OpNot, x), nil
	case p.match("&"):
		isMut := p.matchKw("mut")
		if isMut {
			p.skipTrivia()
		}
		x, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return ast.NewBorrowExpr(p.spanFrom(start), isMut, x), nil
	}

	return p.parseCall()
}

func (p *Parser) parseCall() (ast.Expr, error) {
	start := p.pos
	expr, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}

	for {
		p.skipTrivia()
		if !p.match("(") {
			return expr, nil
		}

		var args []ast.Expr
		p.skipTrivia()
		if !p.peekLit(")") {
			for {
				arg, err := p.parseExpr()
				if err != nil {
					return nil, err
				}
				args = append(args, arg)
				p.skipTrivia()
				if !p.match(",") {
					break
				}
			}
		}

		if err := p.expect(")"); err != nil {
			return nil, err
		}
		expr = ast.NewCallExpr(p.spanFrom(start), expr, args)
	}
}

func (p *Parser) parsePrimary() (ast.Expr, error) {
	p.skipTrivia()
	start := p.pos

	if p.atEnd() {
		return nil, p.errHere(diag.SynExpectedExpression, "expected expression")
	}

	switch c := p.src[p.pos]; {
	case isDigit(c):
		value, err := p.consumeInt()
		if err != nil {
			return nil, err
		}
		return ast.NewIntLit(p.spanFrom(start), value), nil
	case p.matchKw("true"):
		return ast.NewBoolLit(p.spanFrom(start), true), nil
	case p.matchKw("false"):
		return ast.NewBoolLit(p.spanFrom(start), false), nil
	case c == '"':
		value, err := p.consumeString()
		if err != nil {
			return nil, err
		}
		return ast.NewStringLit(p.spanFrom(start), value), nil
	case isIdentStart(c):
		name, err := p.consumeIdent()
		if err != nil {
			return nil, err
		}
		return ast.NewIdent(p.spanFrom(start), name), nil
	case p.match("("):
		expr, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		p.skipTrivia()
		if err := p.expect(")"); err != nil {
			return nil, err
		}
		return expr, nil
	}

	return nil, p.errHere(diag.SynExpectedExpression, "expected expression")
}

// --- literal consumption ---

func (p *Parser) consumeIdent() (string, error) {
	if p.atEnd() || !isIdentStart(p.src[p.pos]) {
		return "", p.errHere(diag.SynExpectedIdentifier, "expected identifier")
	}
	start := p.pos
	for p.pos < len(p.src) && isIdentChar(p.src[p.pos]) {
		p.pos++
	}
	return p.src[start:p.pos], nil
}

func (p *Parser) consumeInt() (int32, error) {
	start := p.pos
	for p.pos < len(p.src) && isDigit(p.src[p.pos]) {
		p.pos++
	}
	text := p.src[start:p.pos]
	value, err := strconv.ParseInt(text, 10, 32)
	if err != nil {
		return 0, p.errAt(diag.SynBadIntLiteral, start, "integer literal out of i32 range: "+text)
	}
	return int32(value), nil
}

// consumeString возвращает сырой текст между кавычками; escape-пары
// сохраняются как есть, интерпретация — дело бэкенда.
func (p *Parser) consumeString() (string, error) {
	if p.atEnd() || p.src[p.pos] != '"' {
		return "", p.errHere(diag.SynExpectedExpression, "expected string")
	}
	openAt := p.pos
	p.pos++ // открывающая кавычка

	start := p.pos
	for p.pos < len(p.src) && p.src[p.pos] != '"' {
		if p.src[p.pos] == '\\' {
			p.pos++
			if p.pos >= len(p.src) {
				return "", p.errAt(diag.SynUnterminatedString, openAt, "unterminated string literal")
			}
		}
		p.pos++
	}

	if p.pos >= len(p.src) {
		return "", p.errAt(diag.SynUnterminatedString, openAt, "unterminated string literal")
	}

	value := p.src[start:p.pos]
	p.pos++ // закрывающая кавычка
	return value, nil
}
