package parser

import (
	"testing"
)

func TestLexerNewLexer(t *testing.T) {
	lexer := NewLexer([]byte("class Foo {}"), "Test.java")
	pos := lexer.Position()

	if pos.File != "Test.java" {
		t.Errorf("File = %q, want %q", pos.File, "Test.java")
	}
	if pos.Line != 1 {
		t.Errorf("Line = %d, want %d", pos.Line, 1)
	}
	if pos.Column != 1 {
		t.Errorf("Column = %d, want %d", pos.Column, 1)
	}
	if pos.Offset != 0 {
		t.Errorf("Offset = %d, want %d", pos.Offset, 0)
	}
}

func TestLexerKeywords(t *testing.T) {
	tests := []struct {
		input string
		kind  TokenKind
	}{
		{"class", TokenClass},
		{"public", TokenPublic},
		{"private", TokenPrivate},
		{"protected", TokenProtected},
		{"static", TokenStatic},
		{"final", TokenFinal},
		{"abstract", TokenAbstract},
		{"interface", TokenInterface},
		{"extends", TokenExtends},
		{"implements", TokenImplements},
		{"void", TokenVoid},
		{"int", TokenInt},
		{"boolean", TokenBoolean},
		{"if", TokenIf},
		{"else", TokenElse},
		{"for", TokenFor},
		{"while", TokenWhile},
		{"return", TokenReturn},
		{"fastreturn", TokenFastReturn},
		{"new", TokenNew},
		{"this", TokenThis},
		{"super", TokenSuper},
		{"true", TokenTrue},
		{"false", TokenFalse},
		{"null", TokenNull},
		{"instanceof", TokenInstanceof},
		{"non-sealed", TokenNonSealed},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			lexer := NewLexer([]byte(tt.input), "test.java")
			tok := lexer.NextToken()
			if tok.Kind != tt.kind {
				t.Errorf("Kind = %v, want %v", tok.Kind, tt.kind)
			}
			if tok.Literal != tt.input {
				t.Errorf("Literal = %q, want %q", tok.Literal, tt.input)
			}
		})
	}
}

func TestLexerContextualKeywords(t *testing.T) {
	tests := []struct {
		input string
		kind  TokenKind
	}{
		{"var", TokenVar},
		{"yield", TokenYield},
		{"record", TokenRecord},
		{"sealed", TokenSealed},
		{"permits", TokenPermits},
		{"when", TokenWhen},
		{"module", TokenModule},
		{"open", TokenOpen},
		{"requires", TokenRequires},
		{"exports", TokenExports},
		{"opens", TokenOpens},
		{"uses", TokenUses},
		{"provides", TokenProvides},
		{"to", TokenTo},
		{"with", TokenWith},
		{"transitive", TokenTransitive},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			lexer := NewLexer([]byte(tt.input), "test.java")
			tok := lexer.NextToken()
			if tok.Kind != tt.kind {
				t.Errorf("Kind = %v, want %v", tok.Kind, tt.kind)
			}
			if !isLaxIdentifier(tok.Kind) {
				t.Errorf("%v should be usable as an identifier", tok.Kind)
			}
		})
	}
}

func TestLexerIdentifiers(t *testing.T) {
	tests := []string{
		"foo",
		"Bar",
		"_private",
		"$special",
		"camelCase",
		"SCREAMING_CASE",
		"with123Numbers",
		"non",
	}

	for _, input := range tests {
		t.Run(input, func(t *testing.T) {
			lexer := NewLexer([]byte(input), "test.java")
			tok := lexer.NextToken()
			if tok.Kind != TokenIdent {
				t.Errorf("Kind = %v, want %v", tok.Kind, TokenIdent)
			}
			if tok.Literal != input {
				t.Errorf("Literal = %q, want %q", tok.Literal, input)
			}
		})
	}
}

func TestLexerNumbers(t *testing.T) {
	tests := []struct {
		input string
		kind  TokenKind
		radix int
	}{
		{"0", TokenIntLiteral, 10},
		{"123", TokenIntLiteral, 10},
		{"123L", TokenLongLiteral, 10},
		{"123l", TokenLongLiteral, 10},
		{"0x1F", TokenIntLiteral, 16},
		{"0xCAFEL", TokenLongLiteral, 16},
		{"0b1010", TokenIntLiteral, 2},
		{"0b11L", TokenLongLiteral, 2},
		{"0777", TokenIntLiteral, 8},
		{"1_000_000", TokenIntLiteral, 10},
		{"3.14", TokenFloatLiteral, 0},
		{"3.14f", TokenFloatLiteral, 0},
		{"1e10", TokenFloatLiteral, 0},
		{"2.5d", TokenFloatLiteral, 0},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			lexer := NewLexer([]byte(tt.input), "test.java")
			tok := lexer.NextToken()
			if tok.Kind != tt.kind {
				t.Errorf("Kind = %v, want %v", tok.Kind, tt.kind)
			}
			if tok.Radix != tt.radix {
				t.Errorf("Radix = %d, want %d", tok.Radix, tt.radix)
			}
			if tok.Literal != tt.input {
				t.Errorf("Literal = %q, want %q", tok.Literal, tt.input)
			}
		})
	}
}

func TestLexerComments(t *testing.T) {
	tests := []struct {
		name  string
		input string
		kind  TokenKind
	}{
		{"line", "// hello", TokenLineComment},
		{"block", "/* hello */", TokenComment},
		{"doc", "/** hello */", TokenDocComment},
		{"empty block is not doc", "/**/", TokenComment},
		{"doc with stars", "/** @param x the x */", TokenDocComment},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lexer := NewLexer([]byte(tt.input), "test.java")
			tok := lexer.NextToken()
			if tok.Kind != tt.kind {
				t.Errorf("Kind = %v, want %v", tok.Kind, tt.kind)
			}
		})
	}
}

func TestLexerOperators(t *testing.T) {
	input := ">>>= >>= <<= >>> >> << -> :: ... == != <= >= && || ++ -- += -= *= /= %= &= |= ^="
	expected := []TokenKind{
		TokenUShrAssign, TokenShrAssign, TokenShlAssign,
		TokenUShr, TokenShr, TokenShl,
		TokenArrow, TokenColonColon, TokenEllipsis,
		TokenEQ, TokenNE, TokenLE, TokenGE,
		TokenAnd, TokenOr, TokenIncrement, TokenDecrement,
		TokenPlusAssign, TokenMinusAssign, TokenStarAssign,
		TokenSlashAssign, TokenPercentAssign,
		TokenAndAssign, TokenOrAssign, TokenXorAssign,
		TokenEOF,
	}

	lexer := NewLexer([]byte(input), "test.java")
	var got []TokenKind
	for {
		tok := lexer.NextToken()
		if tok.Kind != TokenWhitespace {
			got = append(got, tok.Kind)
		}
		if tok.Kind == TokenEOF {
			break
		}
	}

	if len(got) != len(expected) {
		t.Fatalf("got %d tokens, want %d", len(got), len(expected))
	}
	for i := range got {
		if got[i] != expected[i] {
			t.Errorf("token %d: got %v, want %v", i, got[i], expected[i])
		}
	}
}

func TestLexerTextBlock(t *testing.T) {
	input := "\"\"\"\nHello\nworld\"\"\""
	lexer := NewLexer([]byte(input), "test.java")
	tok := lexer.NextToken()
	if tok.Kind != TokenTextBlock {
		t.Errorf("Kind = %v, want %v", tok.Kind, TokenTextBlock)
	}
}

func TestLexerPositions(t *testing.T) {
	input := "class\nFoo"
	lexer := NewLexer([]byte(input), "test.java")

	first := lexer.NextToken()
	if first.Span.Start.Line != 1 || first.Span.Start.Column != 1 {
		t.Errorf("first token at %v, want 1:1", first.Span.Start)
	}
	if first.Span.End.Offset != 5 {
		t.Errorf("first token ends at offset %d, want 5", first.Span.End.Offset)
	}

	lexer.NextToken() // whitespace
	second := lexer.NextToken()
	if second.Span.Start.Line != 2 || second.Span.Start.Column != 1 {
		t.Errorf("second token at %v, want 2:1", second.Span.Start)
	}
}
