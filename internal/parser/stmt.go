package parser

import (
	"nust/internal/ast"
)

// parseStatement — `let | if | while | block | expr ";"?`.
// Точка с запятой после выражения обязательна везде, кроме конца блока
// и конца входа.
func (p *Parser) parseStatement() (ast.Stmt, error) {
	p.skipTrivia()
	start := p.pos

	switch {
	case p.matchKw("let"):
		return p.parseLet(start)
	case p.matchKw("if"):
		return p.parseIf(start)
	case p.matchKw("while"):
		return p.parseWhile(start)
	case p.peekLit("{"):
		return p.parseBlock()
	}

	expr, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	p.skipTrivia()

	if !p.peekLit("}") && !p.atEnd() {
		if err := p.expect(";"); err != nil {
			return nil, err
		}
	}

	return ast.NewExprStmt(p.spanFrom(start), p.scope, expr), nil
}

// parseLet разбирает остаток `let` после уже съеденного ключевого слова.
func (p *Parser) parseLet(start int) (*ast.LetStmt, error) {
	p.skipTrivia()
	isMut := p.matchKw("mut")
	if isMut {
		p.skipTrivia()
	}

	name, err := p.consumeIdent()
	if err != nil {
		return nil, err
	}
	p.skipTrivia()

	if err := p.expect(":"); err != nil {
		return nil, err
	}
	p.skipTrivia()

	typ, err := p.parseType()
	if err != nil {
		return nil, err
	}
	p.skipTrivia()

	if err := p.expect("="); err != nil {
		return nil, err
	}
	p.skipTrivia()

	init, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	p.skipTrivia()
	if err := p.expect(";"); err != nil {
		return nil, err
	}

	p.scope.Declare(name)

	return ast.NewLetStmt(p.spanFrom(start), p.scope, isMut, name, typ, init), nil
}

func (p *Parser) parseIf(start int) (*ast.IfStmt, error) {
	p.skipTrivia()

	cond, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	p.skipTrivia()

	p.enterScope()
	then, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	p.exitScope()
	p.skipTrivia()

	var els ast.Stmt
	if p.matchKw("else") {
		p.skipTrivia()
		p.enterScope()
		nestedStart := p.pos
		if p.matchKw("if") {
			els, err = p.parseIf(nestedStart)
		} else {
			els, err = p.parseBlock()
		}
		if err != nil {
			return nil, err
		}
		p.exitScope()
	}

	return ast.NewIfStmt(p.spanFrom(start), p.scope, cond, then, els), nil
}

func (p *Parser) parseWhile(start int) (*ast.WhileStmt, error) {
	p.skipTrivia()

	cond, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	p.skipTrivia()

	p.enterScope()
	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	p.exitScope()

	return ast.NewWhileStmt(p.spanFrom(start), p.scope, cond, body), nil
}

func (p *Parser) parseBlock() (*ast.BlockStmt, error) {
	start := p.pos
	if err := p.expect("{"); err != nil {
		return nil, err
	}

	blockScope := p.enterScope()
	var stmts []ast.Stmt

	p.skipTrivia()
	for !p.atEnd() && !p.peekLit("}") {
		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		stmts = append(stmts, stmt)
		p.skipTrivia()
	}

	if err := p.expect("}"); err != nil {
		return nil, err
	}

	block := ast.NewBlockStmt(p.spanFrom(start), blockScope, stmts)
	p.exitScope()
	return block, nil
}
