package parser

import (
	"matlang/interpreter-go/pkg/ast"
)

var assignmentOperators = map[TokenType]ast.AssignmentOperator{
	TokenAssign:    ast.AssignmentAssign,
	TokenAddAssign: ast.AssignmentAdd,
	TokenSubAssign: ast.AssignmentSub,
	TokenMulAssign: ast.AssignmentMul,
	TokenDivAssign: ast.AssignmentDiv,
}

func (p *Parser) parseInstructions(terminator TokenType) ([]ast.Statement, error) {
	nodes := make([]ast.Statement, 0)
	for p.current.Type != terminator {
		if p.current.Type == TokenEOF {
			return nil, p.unexpected()
		}
		stmt, err := p.parseInstruction()
		if err != nil {
			return nil, err
		}
		nodes = append(nodes, stmt)
	}
	return nodes, nil
}

func (p *Parser) parseInstruction() (ast.Statement, error) {
	switch p.current.Type {
	case TokenLBrace:
		return p.parseBlock()
	case TokenIf:
		return p.parseIf()
	case TokenWhile:
		return p.parseWhile()
	case TokenFor:
		return p.parseFor()
	}
	stmt, err := p.parseSimpleStatement()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(TokenSemicolon); err != nil {
		return nil, err
	}
	return stmt, nil
}

func (p *Parser) parseBlock() (ast.Statement, error) {
	start := p.current.Position
	p.nextToken()
	contentStart := p.current.Position
	nodes, err := p.parseInstructions(TokenRBrace)
	if err != nil {
		return nil, err
	}
	content := ast.NewInstructions(nodes)
	if len(nodes) > 0 {
		p.span(content, contentStart)
	}
	p.nextToken()
	block := ast.NewBlock(content)
	p.span(block, start)
	return block, nil
}

func (p *Parser) parseCondition() (ast.Expression, error) {
	if _, err := p.expect(TokenLParen); err != nil {
		return nil, err
	}
	cond, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(TokenRParen); err != nil {
		return nil, err
	}
	return cond, nil
}

func (p *Parser) parseIf() (ast.Statement, error) {
	start := p.current.Position
	p.nextToken()
	cond, err := p.parseCondition()
	if err != nil {
		return nil, err
	}
	body, err := p.parseInstruction()
	if err != nil {
		return nil, err
	}
	var elseBody ast.Statement
	// A dangling else binds to the nearest if.
	if p.current.Type == TokenElse {
		p.nextToken()
		elseBody, err = p.parseInstruction()
		if err != nil {
			return nil, err
		}
	}
	stmt := ast.NewIfStatement(cond, body, elseBody)
	p.span(stmt, start)
	return stmt, nil
}

func (p *Parser) parseWhile() (ast.Statement, error) {
	start := p.current.Position
	p.nextToken()
	cond, err := p.parseCondition()
	if err != nil {
		return nil, err
	}
	body, err := p.parseInstruction()
	if err != nil {
		return nil, err
	}
	stmt := ast.NewWhileLoop(cond, body)
	p.span(stmt, start)
	return stmt, nil
}

// parseFor parses `for ID = start : end instruction`.
func (p *Parser) parseFor() (ast.Statement, error) {
	start := p.current.Position
	p.nextToken()
	nameTok, err := p.expect(TokenIdentifier)
	if err != nil {
		return nil, err
	}
	iterator := ast.NewVariable(nameTok.Value)
	p.span(iterator, nameTok.Position)
	if _, err := p.expect(TokenAssign); err != nil {
		return nil, err
	}
	rangeStart := p.current.Position
	from, err := p.parseArithmetic()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(TokenColon); err != nil {
		return nil, err
	}
	to, err := p.parseArithmetic()
	if err != nil {
		return nil, err
	}
	rng := ast.NewRange(from, to)
	p.span(rng, rangeStart)
	body, err := p.parseInstruction()
	if err != nil {
		return nil, err
	}
	stmt := ast.NewForLoop(iterator, rng, body)
	p.span(stmt, start)
	return stmt, nil
}

func (p *Parser) parseSimpleStatement() (ast.Statement, error) {
	start := p.current.Position
	switch p.current.Type {
	case TokenBreak, TokenContinue:
		kind := ast.FlowBreak
		if p.current.Type == TokenContinue {
			kind = ast.FlowContinue
		}
		p.nextToken()
		stmt := ast.NewFlowKeyword(kind)
		p.span(stmt, start)
		return stmt, nil
	case TokenReturn:
		p.nextToken()
		var value ast.Expression
		if p.current.Type != TokenSemicolon {
			expr, err := p.parseExpression()
			if err != nil {
				return nil, err
			}
			value = expr
		}
		stmt := ast.NewReturnStatement(value)
		p.span(stmt, start)
		return stmt, nil
	case TokenPrint:
		p.nextToken()
		args, err := p.parseExpressionList()
		if err != nil {
			return nil, err
		}
		stmt := ast.NewPrintStatement(args)
		p.span(stmt, start)
		return stmt, nil
	case TokenIdentifier:
		return p.parseAssignment()
	default:
		return nil, p.unexpected()
	}
}

func (p *Parser) parseAssignment() (ast.Statement, error) {
	start := p.current.Position
	target, err := p.parseVariable()
	if err != nil {
		return nil, err
	}
	op, ok := assignmentOperators[p.current.Type]
	if !ok {
		tok := p.current
		if tok.Type == TokenEOF {
			return nil, p.errorf(tok, "expected assignment operator, reached end of input")
		}
		return nil, p.errorf(tok, "expected assignment operator, found %s %q", tok.Type, tok.Value)
	}
	p.nextToken()
	value, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	stmt := ast.NewAssignment(op, target, value)
	p.span(stmt, start)
	return stmt, nil
}
