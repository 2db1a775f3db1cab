package parser

import (
	"strconv"

	"matlang/interpreter-go/pkg/ast"
)

func (p *Parser) parseIntLiteral() (ast.Expression, error) {
	tok := p.current
	val, err := strconv.ParseInt(tok.Value, 10, 64)
	if err != nil {
		return nil, p.errorf(tok, "invalid integer literal %q", tok.Value)
	}
	p.nextToken()
	lit := ast.NewIntLiteral(val)
	p.span(lit, tok.Position)
	return lit, nil
}

func (p *Parser) parseFloatLiteral() (ast.Expression, error) {
	tok := p.current
	val, err := strconv.ParseFloat(tok.Value, 64)
	if err != nil {
		return nil, p.errorf(tok, "invalid float literal %q", tok.Value)
	}
	p.nextToken()
	lit := ast.NewFloatLiteral(val)
	p.span(lit, tok.Position)
	return lit, nil
}

func (p *Parser) parseStringLiteral() (ast.Expression, error) {
	tok := p.current
	p.nextToken()
	lit := ast.NewStringLiteral(tok.Value)
	p.span(lit, tok.Position)
	return lit, nil
}
