package parser

import "testing"

func TestLexerNumbers(t *testing.T) {
	tests := []struct {
		input string
		want  []Token
	}{
		{"42", []Token{{Type: TokenInt, Value: "42"}, {Type: TokenEOF}}},
		{"3.14", []Token{{Type: TokenFloat, Value: "3.14"}, {Type: TokenEOF}}},
		{".5", []Token{{Type: TokenFloat, Value: ".5"}, {Type: TokenEOF}}},
		{"1.", []Token{{Type: TokenFloat, Value: "1."}, {Type: TokenEOF}}},
		{"1.5e-3", []Token{{Type: TokenFloat, Value: "1.5e-3"}, {Type: TokenEOF}}},
		{"2E4", []Token{{Type: TokenFloat, Value: "2E4"}, {Type: TokenEOF}}},
		{"2e", []Token{{Type: TokenInt, Value: "2"}, {Type: TokenIdentifier, Value: "e"}, {Type: TokenEOF}}},
		{"1.*2", []Token{{Type: TokenInt, Value: "1"}, {Type: TokenDotStar, Value: ".*"}, {Type: TokenInt, Value: "2"}, {Type: TokenEOF}}},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			l := NewLexer(tt.input)
			for i, want := range tt.want {
				tok := l.NextToken()
				if tok.Type != want.Type {
					t.Fatalf("token[%d] type = %s, want %s", i, tok.Type, want.Type)
				}
				if tok.Value != want.Value {
					t.Fatalf("token[%d] value = %q, want %q", i, tok.Value, want.Value)
				}
			}
		})
	}
}

func TestLexerKeywordsAndIdentifiers(t *testing.T) {
	l := NewLexer("if else for while break continue return print eye zeros ones iffy _x1")
	want := []TokenType{
		TokenIf, TokenElse, TokenFor, TokenWhile, TokenBreak, TokenContinue,
		TokenReturn, TokenPrint, TokenEye, TokenZeros, TokenOnes,
		TokenIdentifier, TokenIdentifier, TokenEOF,
	}
	for i, typ := range want {
		tok := l.NextToken()
		if tok.Type != typ {
			t.Fatalf("token[%d] = %s %q, want %s", i, tok.Type, tok.Value, typ)
		}
	}
}

func TestLexerOperators(t *testing.T) {
	l := NewLexer("+ - * / .+ .- .* ./ = += -= *= /= == != < > <= >= ' ( ) { } [ ] , ; :")
	want := []TokenType{
		TokenPlus, TokenMinus, TokenStar, TokenSlash,
		TokenDotPlus, TokenDotMinus, TokenDotStar, TokenDotSlash,
		TokenAssign, TokenAddAssign, TokenSubAssign, TokenMulAssign, TokenDivAssign,
		TokenEq, TokenNe, TokenLt, TokenGt, TokenLe, TokenGe, TokenQuote,
		TokenLParen, TokenRParen, TokenLBrace, TokenRBrace, TokenLBracket, TokenRBracket,
		TokenComma, TokenSemicolon, TokenColon, TokenEOF,
	}
	for i, typ := range want {
		tok := l.NextToken()
		if tok.Type != typ {
			t.Fatalf("token[%d] = %s %q, want %s", i, tok.Type, tok.Value, typ)
		}
	}
}

func TestLexerStringsCommentsAndPositions(t *testing.T) {
	l := NewLexer("# leading comment\nprint \"a b\"; # trailing\n  x")

	tok := l.NextToken()
	if tok.Type != TokenPrint || tok.Position.Line != 2 || tok.Position.Column != 1 {
		t.Fatalf("unexpected first token %+v", tok)
	}
	tok = l.NextToken()
	if tok.Type != TokenString || tok.Value != "a b" || tok.Position.Column != 7 {
		t.Fatalf("unexpected string token %+v", tok)
	}
	if tok = l.NextToken(); tok.Type != TokenSemicolon {
		t.Fatalf("expected semicolon, got %+v", tok)
	}
	tok = l.NextToken()
	if tok.Type != TokenIdentifier || tok.Position.Line != 3 || tok.Position.Column != 3 {
		t.Fatalf("unexpected identifier token %+v", tok)
	}
	if tok = l.NextToken(); tok.Type != TokenEOF {
		t.Fatalf("expected EOF, got %+v", tok)
	}
}

func TestLexerIllegalInput(t *testing.T) {
	for _, input := range []string{"\"open", "@", "!"} {
		tok := NewLexer(input).NextToken()
		if tok.Type != TokenIllegal {
			t.Fatalf("%q: expected ILLEGAL, got %s", input, tok.Type)
		}
	}
}
