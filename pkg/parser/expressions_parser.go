package parser

import (
	"matlang/interpreter-go/pkg/ast"
)

var comparisonOperators = map[TokenType]string{
	TokenLt: "<",
	TokenGt: ">",
	TokenEq: "==",
	TokenNe: "!=",
	TokenLe: "<=",
	TokenGe: ">=",
}

// Binary arithmetic levels from loosest to tightest binding.
var arithmeticLevels = []map[TokenType]string{
	{TokenPlus: ast.OpAdd, TokenMinus: ast.OpSub},
	{TokenDotPlus: ast.OpDotAdd, TokenDotMinus: ast.OpDotSub},
	{TokenStar: ast.OpMul, TokenSlash: ast.OpDiv},
	{TokenDotStar: ast.OpDotMul, TokenDotSlash: ast.OpDotDiv},
}

// parseExpression parses an arithmetic expression optionally followed by a
// single comparison. Comparisons do not chain.
func (p *Parser) parseExpression() (ast.Expression, error) {
	start := p.current.Position
	left, err := p.parseArithmetic()
	if err != nil {
		return nil, err
	}
	op, ok := comparisonOperators[p.current.Type]
	if !ok {
		return left, nil
	}
	p.nextToken()
	right, err := p.parseArithmetic()
	if err != nil {
		return nil, err
	}
	if _, chained := comparisonOperators[p.current.Type]; chained {
		return nil, p.errorf(p.current, "comparison operators cannot be chained")
	}
	expr := ast.NewComparison(op, left, right)
	p.span(expr, start)
	return expr, nil
}

func (p *Parser) parseArithmetic() (ast.Expression, error) {
	return p.parseBinaryLevel(0)
}

func (p *Parser) parseBinaryLevel(level int) (ast.Expression, error) {
	if level >= len(arithmeticLevels) {
		return p.parseUnary()
	}
	start := p.current.Position
	left, err := p.parseBinaryLevel(level + 1)
	if err != nil {
		return nil, err
	}
	for {
		op, ok := arithmeticLevels[level][p.current.Type]
		if !ok {
			return left, nil
		}
		p.nextToken()
		right, err := p.parseBinaryLevel(level + 1)
		if err != nil {
			return nil, err
		}
		expr := ast.NewArithmeticOperation(op, left, right)
		p.span(expr, start)
		left = expr
	}
}

func (p *Parser) parseUnary() (ast.Expression, error) {
	if p.current.Type != TokenMinus {
		return p.parsePostfix()
	}
	start := p.current.Position
	p.nextToken()
	operand, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	expr := ast.NewUnaryExpression(ast.UnaryNegate, operand)
	p.span(expr, start)
	return expr, nil
}

func (p *Parser) parsePostfix() (ast.Expression, error) {
	start := p.current.Position
	expr, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}
	for p.current.Type == TokenQuote {
		p.nextToken()
		transposed := ast.NewUnaryExpression(ast.UnaryTranspose, expr)
		p.span(transposed, start)
		expr = transposed
	}
	return expr, nil
}

func (p *Parser) parsePrimary() (ast.Expression, error) {
	switch p.current.Type {
	case TokenInt:
		return p.parseIntLiteral()
	case TokenFloat:
		return p.parseFloatLiteral()
	case TokenString:
		return p.parseStringLiteral()
	case TokenIdentifier:
		return p.parseVariable()
	case TokenEye, TokenZeros, TokenOnes:
		return p.parseFunctionCall()
	case TokenLBracket:
		return p.parseVectorOrMatrix()
	case TokenLParen:
		p.nextToken()
		expr, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(TokenRParen); err != nil {
			return nil, err
		}
		return expr, nil
	default:
		return nil, p.unexpected()
	}
}

// parseVariable parses `ID` followed by any number of `[coords]` subscripts.
func (p *Parser) parseVariable() (ast.AssignmentTarget, error) {
	start := p.current.Position
	tok, err := p.expect(TokenIdentifier)
	if err != nil {
		return nil, err
	}
	variable := ast.NewVariable(tok.Value)
	p.span(variable, start)
	var target ast.AssignmentTarget = variable
	for p.current.Type == TokenLBracket {
		p.nextToken()
		coords, err := p.parseExpressionList()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(TokenRBracket); err != nil {
			return nil, err
		}
		ref := ast.NewReference(target, coords)
		p.span(ref, start)
		target = ref
	}
	return target, nil
}

func (p *Parser) parseFunctionCall() (ast.Expression, error) {
	start := p.current.Position
	name := p.current.Value
	p.nextToken()
	if _, err := p.expect(TokenLParen); err != nil {
		return nil, err
	}
	args, err := p.parseExpressionList()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(TokenRParen); err != nil {
		return nil, err
	}
	call := ast.NewFunctionCall(name, args)
	p.span(call, start)
	return call, nil
}

// parseVectorOrMatrix parses `[]`, `[a, b]` and `[a, b; c, d]`. A matrix row
// made of a single vector literal is that vector, so `[[1,2];[3,4]]` and
// `[1,2;3,4]` build the same matrix.
func (p *Parser) parseVectorOrMatrix() (ast.Expression, error) {
	start := p.current.Position
	p.nextToken()
	if p.current.Type == TokenRBracket {
		p.nextToken()
		vec := ast.NewVectorLiteral([]ast.Expression{})
		p.span(vec, start)
		return vec, nil
	}
	rows := make([]*ast.VectorLiteral, 0, 1)
	isMatrix := false
	for {
		rowStart := p.current.Position
		elems, err := p.parseExpressionList()
		if err != nil {
			return nil, err
		}
		row := ast.NewVectorLiteral(elems)
		p.span(row, rowStart)
		rows = append(rows, row)
		if p.current.Type != TokenSemicolon {
			break
		}
		isMatrix = true
		p.nextToken()
	}
	if _, err := p.expect(TokenRBracket); err != nil {
		return nil, err
	}
	if !isMatrix {
		vec := rows[0]
		p.span(vec, start)
		return vec, nil
	}
	for i, row := range rows {
		if len(row.Elements) == 1 {
			if inner, ok := row.Elements[0].(*ast.VectorLiteral); ok {
				rows[i] = inner
			}
		}
	}
	matrix := ast.NewMatrixLiteral(rows)
	p.span(matrix, start)
	return matrix, nil
}

func (p *Parser) parseExpressionList() ([]ast.Expression, error) {
	first, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	list := []ast.Expression{first}
	for p.current.Type == TokenComma {
		p.nextToken()
		next, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		list = append(list, next)
	}
	return list, nil
}
