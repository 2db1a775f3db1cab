package parser

import "matlang/interpreter-go/pkg/ast"

// TokenType classifies lexical tokens.
type TokenType int

const (
	TokenEOF TokenType = iota
	TokenIllegal

	// Literals
	TokenInt    // 42
	TokenFloat  // 3.14, .5, 1., 1e3
	TokenString // "hello"

	TokenIdentifier

	// Keywords
	TokenIf
	TokenElse
	TokenFor
	TokenWhile
	TokenBreak
	TokenContinue
	TokenReturn
	TokenPrint
	TokenEye
	TokenZeros
	TokenOnes

	// Operators
	TokenPlus      // +
	TokenMinus     // -
	TokenStar      // *
	TokenSlash     // /
	TokenDotPlus   // .+
	TokenDotMinus  // .-
	TokenDotStar   // .*
	TokenDotSlash  // ./
	TokenAssign    // =
	TokenAddAssign // +=
	TokenSubAssign // -=
	TokenMulAssign // *=
	TokenDivAssign // /=
	TokenEq        // ==
	TokenNe        // !=
	TokenLt        // <
	TokenGt        // >
	TokenLe        // <=
	TokenGe        // >=
	TokenQuote     // '

	// Delimiters
	TokenLParen    // (
	TokenRParen    // )
	TokenLBrace    // {
	TokenRBrace    // }
	TokenLBracket  // [
	TokenRBracket  // ]
	TokenComma     // ,
	TokenSemicolon // ;
	TokenColon     // :
)

var tokenNames = map[TokenType]string{
	TokenEOF:        "EOF",
	TokenIllegal:    "ILLEGAL",
	TokenInt:        "INTNUM",
	TokenFloat:      "FLOATNUM",
	TokenString:     "STRING",
	TokenIdentifier: "ID",
	TokenIf:         "IF",
	TokenElse:       "ELSE",
	TokenFor:        "FOR",
	TokenWhile:      "WHILE",
	TokenBreak:      "BREAK",
	TokenContinue:   "CONTINUE",
	TokenReturn:     "RETURN",
	TokenPrint:      "PRINT",
	TokenEye:        "EYE",
	TokenZeros:      "ZEROS",
	TokenOnes:       "ONES",
	TokenPlus:       "'+'",
	TokenMinus:      "'-'",
	TokenStar:       "'*'",
	TokenSlash:      "'/'",
	TokenDotPlus:    "DOTADD",
	TokenDotMinus:   "DOTSUB",
	TokenDotStar:    "DOTMUL",
	TokenDotSlash:   "DOTDIV",
	TokenAssign:     "'='",
	TokenAddAssign:  "ADDASSIGN",
	TokenSubAssign:  "SUBASSIGN",
	TokenMulAssign:  "MULASSIGN",
	TokenDivAssign:  "DIVASSIGN",
	TokenEq:         "EQ",
	TokenNe:         "NEQ",
	TokenLt:         "'<'",
	TokenGt:         "'>'",
	TokenLe:         "LEQ",
	TokenGe:         "GEQ",
	TokenQuote:      "'\\''",
	TokenLParen:     "'('",
	TokenRParen:     "')'",
	TokenLBrace:     "'{'",
	TokenRBrace:     "'}'",
	TokenLBracket:   "'['",
	TokenRBracket:   "']'",
	TokenComma:      "','",
	TokenSemicolon:  "';'",
	TokenColon:      "':'",
}

func (t TokenType) String() string {
	if name, ok := tokenNames[t]; ok {
		return name
	}
	return "UNKNOWN"
}

var keywords = map[string]TokenType{
	"if":       TokenIf,
	"else":     TokenElse,
	"for":      TokenFor,
	"while":    TokenWhile,
	"break":    TokenBreak,
	"continue": TokenContinue,
	"return":   TokenReturn,
	"print":    TokenPrint,
	"eye":      TokenEye,
	"zeros":    TokenZeros,
	"ones":     TokenOnes,
}

// Token is a lexical token with the position of its first character.
type Token struct {
	Type     TokenType
	Value    string
	Position ast.Position
}
