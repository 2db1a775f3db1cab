package parser

import (
	"errors"
	"fmt"

	"matlang/interpreter-go/pkg/ast"
)

// SyntaxError reports the first token the grammar could not accept.
// Incomplete is set when that token was the end of input.
type SyntaxError struct {
	Line       int
	Column     int
	Message    string
	Incomplete bool
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("Syntax error at line %d, column %d: %s", e.Line, e.Column, e.Message)
}

// IsIncomplete reports whether err is a syntax error that more input could fix.
func IsIncomplete(err error) bool {
	var syntaxErr *SyntaxError
	return errors.As(err, &syntaxErr) && syntaxErr.Incomplete
}

// Parser is a recursive-descent parser over a Lexer token stream.
type Parser struct {
	lexer   *Lexer
	current Token
	peek    Token
	last    Token
}

// NewParser creates a parser positioned at the first token of input.
func NewParser(input string) *Parser {
	p := &Parser{lexer: NewLexer(input)}
	// Read two tokens to initialize current and peek
	p.nextToken()
	p.nextToken()
	return p
}

// ParseProgram parses source into the program's top-level instruction list.
func ParseProgram(source []byte) (*ast.Instructions, error) {
	return NewParser(string(source)).ParseProgram()
}

// ParseProgram parses instructions until end of input.
func (p *Parser) ParseProgram() (*ast.Instructions, error) {
	start := p.current.Position
	nodes, err := p.parseInstructions(TokenEOF)
	if err != nil {
		return nil, err
	}
	program := ast.NewInstructions(nodes)
	if len(nodes) > 0 {
		p.span(program, start)
	}
	return program, nil
}

func (p *Parser) nextToken() {
	p.last = p.current
	p.current = p.peek
	p.peek = p.lexer.NextToken()
}

func (p *Parser) errorf(tok Token, format string, args ...any) error {
	return &SyntaxError{
		Line:       tok.Position.Line,
		Column:     tok.Position.Column,
		Message:    fmt.Sprintf(format, args...),
		Incomplete: tok.Type == TokenEOF,
	}
}

func (p *Parser) unexpected() error {
	tok := p.current
	switch tok.Type {
	case TokenEOF:
		return p.errorf(tok, "unexpected end of input")
	case TokenIllegal:
		return p.errorf(tok, "illegal character %q", tok.Value)
	default:
		return p.errorf(tok, "unexpected token %s %q", tok.Type, tok.Value)
	}
}

// expect consumes the current token when it has type typ.
func (p *Parser) expect(typ TokenType) (Token, error) {
	if p.current.Type != typ {
		tok := p.current
		if tok.Type == TokenEOF {
			return tok, p.errorf(tok, "expected %s, reached end of input", typ)
		}
		return tok, p.errorf(tok, "expected %s, found %s %q", typ, tok.Type, tok.Value)
	}
	tok := p.current
	p.nextToken()
	return tok, nil
}

// span sets node's span from start to the last consumed token.
func (p *Parser) span(node ast.Node, start ast.Position) {
	end := p.last.Position
	end.Column += len(p.last.Value)
	ast.SetSpan(node, ast.Span{Start: start, End: end})
}
