package parser

import (
	"matlang/interpreter-go/pkg/ast"
)

// Lexer tokenizes matlang source code.
type Lexer struct {
	input        string
	position     int  // current position in input (points to current char)
	readPosition int  // current reading position in input (after current char)
	ch           byte // current char under examination
	line         int
	column       int
}

// NewLexer creates a new Lexer instance.
func NewLexer(input string) *Lexer {
	l := &Lexer{input: input, line: 1}
	l.readChar()
	return l
}

func (l *Lexer) readChar() {
	if l.ch == '\n' {
		l.line++
		l.column = 0
	}
	if l.readPosition >= len(l.input) {
		l.ch = 0
	} else {
		l.ch = l.input[l.readPosition]
	}
	l.position = l.readPosition
	l.readPosition++
	l.column++
}

func (l *Lexer) peekChar() byte {
	if l.readPosition >= len(l.input) {
		return 0
	}
	return l.input[l.readPosition]
}

// skipIgnored skips whitespace and `#` comments.
func (l *Lexer) skipIgnored() {
	for {
		switch l.ch {
		case ' ', '\t', '\n', '\r':
			l.readChar()
		case '#':
			for l.ch != '\n' && l.ch != 0 {
				l.readChar()
			}
		default:
			return
		}
	}
}

// NextToken returns the next token from the input.
func (l *Lexer) NextToken() Token {
	l.skipIgnored()

	tok := Token{Position: ast.Position{Line: l.line, Column: l.column}}

	switch {
	case l.ch == 0 && l.position >= len(l.input):
		tok.Type = TokenEOF
		return tok
	case isLetter(l.ch):
		tok.Value = l.readIdentifier()
		if kw, ok := keywords[tok.Value]; ok {
			tok.Type = kw
		} else {
			tok.Type = TokenIdentifier
		}
		return tok
	case isDigit(l.ch), l.ch == '.' && isDigit(l.peekChar()):
		tok.Type, tok.Value = l.readNumber()
		return tok
	case l.ch == '"':
		return l.readString(tok)
	}

	switch l.ch {
	case '.':
		switch l.peekChar() {
		case '+':
			tok = l.twoChar(tok, TokenDotPlus)
		case '-':
			tok = l.twoChar(tok, TokenDotMinus)
		case '*':
			tok = l.twoChar(tok, TokenDotStar)
		case '/':
			tok = l.twoChar(tok, TokenDotSlash)
		default:
			tok = l.oneChar(tok, TokenIllegal)
		}
	case '+':
		tok = l.withAssign(tok, TokenPlus, TokenAddAssign)
	case '-':
		tok = l.withAssign(tok, TokenMinus, TokenSubAssign)
	case '*':
		tok = l.withAssign(tok, TokenStar, TokenMulAssign)
	case '/':
		tok = l.withAssign(tok, TokenSlash, TokenDivAssign)
	case '=':
		tok = l.withAssign(tok, TokenAssign, TokenEq)
	case '<':
		tok = l.withAssign(tok, TokenLt, TokenLe)
	case '>':
		tok = l.withAssign(tok, TokenGt, TokenGe)
	case '!':
		if l.peekChar() == '=' {
			tok = l.twoChar(tok, TokenNe)
		} else {
			tok = l.oneChar(tok, TokenIllegal)
		}
	case '\'':
		tok = l.oneChar(tok, TokenQuote)
	case '(':
		tok = l.oneChar(tok, TokenLParen)
	case ')':
		tok = l.oneChar(tok, TokenRParen)
	case '{':
		tok = l.oneChar(tok, TokenLBrace)
	case '}':
		tok = l.oneChar(tok, TokenRBrace)
	case '[':
		tok = l.oneChar(tok, TokenLBracket)
	case ']':
		tok = l.oneChar(tok, TokenRBracket)
	case ',':
		tok = l.oneChar(tok, TokenComma)
	case ';':
		tok = l.oneChar(tok, TokenSemicolon)
	case ':':
		tok = l.oneChar(tok, TokenColon)
	default:
		tok = l.oneChar(tok, TokenIllegal)
	}
	return tok
}

func (l *Lexer) oneChar(tok Token, typ TokenType) Token {
	tok.Type = typ
	tok.Value = string(l.ch)
	l.readChar()
	return tok
}

func (l *Lexer) twoChar(tok Token, typ TokenType) Token {
	start := l.position
	l.readChar()
	l.readChar()
	tok.Type = typ
	tok.Value = l.input[start:l.position]
	return tok
}

// withAssign picks the two-character form when the next char is '='.
func (l *Lexer) withAssign(tok Token, single, withEq TokenType) Token {
	if l.peekChar() == '=' {
		return l.twoChar(tok, withEq)
	}
	return l.oneChar(tok, single)
}

func (l *Lexer) readIdentifier() string {
	start := l.position
	for isLetter(l.ch) || isDigit(l.ch) {
		l.readChar()
	}
	return l.input[start:l.position]
}

// readNumber reads `123`, `1.5`, `.5`, `1.` and exponent forms of floats.
func (l *Lexer) readNumber() (TokenType, string) {
	start := l.position
	typ := TokenInt
	for isDigit(l.ch) {
		l.readChar()
	}
	if l.ch == '.' && !isDotOperator(l.peekChar()) {
		typ = TokenFloat
		l.readChar()
		for isDigit(l.ch) {
			l.readChar()
		}
	}
	if (l.ch == 'e' || l.ch == 'E') && l.exponentFollows() {
		typ = TokenFloat
		l.readChar()
		if l.ch == '+' || l.ch == '-' {
			l.readChar()
		}
		for isDigit(l.ch) {
			l.readChar()
		}
	}
	return typ, l.input[start:l.position]
}

func (l *Lexer) exponentFollows() bool {
	next := l.peekChar()
	if isDigit(next) {
		return true
	}
	if (next == '+' || next == '-') && l.readPosition+1 < len(l.input) {
		return isDigit(l.input[l.readPosition+1])
	}
	return false
}

// readString reads a double-quoted string; there are no escape sequences.
func (l *Lexer) readString(tok Token) Token {
	l.readChar()
	start := l.position
	for l.ch != '"' {
		if l.ch == 0 && l.position >= len(l.input) {
			tok.Type = TokenIllegal
			tok.Value = "unterminated string"
			return tok
		}
		l.readChar()
	}
	tok.Type = TokenString
	tok.Value = l.input[start:l.position]
	l.readChar()
	return tok
}

// isDotOperator reports whether '.' followed by ch starts an elementwise operator.
func isDotOperator(ch byte) bool {
	return ch == '+' || ch == '-' || ch == '*' || ch == '/'
}

func isLetter(ch byte) bool {
	return ('a' <= ch && ch <= 'z') || ('A' <= ch && ch <= 'Z') || ch == '_'
}

func isDigit(ch byte) bool {
	return '0' <= ch && ch <= '9'
}
