package parser

import (
	"nust/internal/ast"
	"nust/internal/diag"
	"nust/internal/types"
)

// parseFunction — `fn name(params?) ("->" type)? block`.
func (p *Parser) parseFunction() (*ast.FunctionDecl, error) {
	start := p.pos
	if !p.matchKw("fn") {
		return nil, p.expectedTokenError("fn")
	}
	p.skipTrivia()

	name, err := p.consumeIdent()
	if err != nil {
		return nil, err
	}
	p.skipTrivia()

	if err := p.expect("("); err != nil {
		return nil, err
	}
	params, err := p.parseParams()
	if err != nil {
		return nil, err
	}
	if err := p.expect(")"); err != nil {
		return nil, err
	}
	p.skipTrivia()

	var ret *types.Type
	if p.match("->") {
		p.skipTrivia()
		ret, err = p.parseType()
		if err != nil {
			return nil, err
		}
		p.skipTrivia()
	} else {
		// Без стрелки возвращаемый тип по умолчанию i32.
		ret = types.New(types.KindI32, p.spanFrom(p.pos))
	}

	// Параметры живут в отдельной области, объемлющей тело.
	fnScope := p.enterScope()
	for i := range params {
		fnScope.Declare(params[i].Name)
	}

	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	p.exitScope()

	return ast.NewFunctionDecl(p.spanFrom(start), name, params, ret, body), nil
}

func (p *Parser) parseParams() ([]ast.Param, error) {
	var params []ast.Param

	p.skipTrivia()
	if p.peekLit(")") {
		return params, nil
	}

	for {
		p.skipTrivia()
		paramStart := p.pos
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

		params = append(params, ast.Param{
			IsMut: isMut,
			Name:  name,
			Type:  typ,
			Span:  p.spanFrom(paramStart),
		})

		p.skipTrivia()
		if !p.match(",") {
			break
		}
	}

	return params, nil
}

// parseType — `type := "&" "mut"? type | "i32" | "bool" | "str"`.
func (p *Parser) parseType() (*types.Type, error) {
	start := p.pos

	if p.match("&") {
		isMut := p.matchKw("mut")
		if isMut {
			p.skipTrivia()
		}
		inner, err := p.parseType()
		if err != nil {
			return nil, err
		}
		return types.NewRef(isMut, inner, p.spanFrom(start)), nil
	}

	switch {
	case p.matchKw("i32"):
		return types.New(types.KindI32, p.spanFrom(start)), nil
	case p.matchKw("bool"):
		return types.New(types.KindBool, p.spanFrom(start)), nil
	case p.matchKw("str"):
		return types.New(types.KindStr, p.spanFrom(start)), nil
	}

	return nil, p.errHere(diag.SynExpectedType, "expected type")
}
