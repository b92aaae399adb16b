package parser

import (
	"unicode"
	"unicode/utf8"
)

// Lexer turns raw bytes into a token sequence. It is deliberately
// forgiving: malformed input produces TokenError tokens rather than
// failures, so the parser's recovery machinery sees every byte.
type Lexer struct {
	input  []byte
	file   string
	pos    int
	line   int
	column int
}

func NewLexer(input []byte, file string) *Lexer {
	return &Lexer{
		input:  input,
		file:   file,
		pos:    0,
		line:   1,
		column: 1,
	}
}

func (l *Lexer) Position() Position {
	return Position{
		File:   l.file,
		Offset: l.pos,
		Line:   l.line,
		Column: l.column,
	}
}

func (l *Lexer) peek() byte {
	if l.pos >= len(l.input) {
		return 0
	}
	return l.input[l.pos]
}

func (l *Lexer) peekN(n int) byte {
	if l.pos+n >= len(l.input) {
		return 0
	}
	return l.input[l.pos+n]
}

func (l *Lexer) advance() byte {
	if l.pos >= len(l.input) {
		return 0
	}
	ch := l.input[l.pos]
	l.pos++
	if ch == '\n' {
		l.line++
		l.column = 1
	} else {
		l.column++
	}
	return ch
}

func (l *Lexer) advanceN(n int) {
	for i := 0; i < n; i++ {
		l.advance()
	}
}

func (l *Lexer) NextToken() Token {
	startPos := l.Position()

	if l.pos >= len(l.input) {
		return Token{Kind: TokenEOF, Span: Span{Start: startPos, End: startPos}}
	}

	ch := l.peek()

	if ch == '/' && l.peekN(1) == '/' {
		return l.scanLineComment(startPos)
	}
	if ch == '/' && l.peekN(1) == '*' {
		return l.scanBlockComment(startPos)
	}

	if ch == ' ' || ch == '\t' || ch == '\r' || ch == '\n' {
		return l.scanWhitespace(startPos)
	}

	if isJavaLetter(ch) {
		return l.scanIdentOrKeyword(startPos)
	}

	if isDigit(ch) {
		return l.scanNumber(startPos)
	}

	if ch == '\'' {
		return l.scanCharLiteral(startPos)
	}

	if ch == '"' {
		if l.peekN(1) == '"' && l.peekN(2) == '"' {
			return l.scanTextBlock(startPos)
		}
		return l.scanStringLiteral(startPos)
	}

	return l.scanOperator(startPos)
}

func (l *Lexer) scanWhitespace(start Position) Token {
	for {
		ch := l.peek()
		if ch == ' ' || ch == '\t' || ch == '\r' || ch == '\n' {
			l.advance()
		} else {
			break
		}
	}
	return l.token(TokenWhitespace, start)
}

func (l *Lexer) scanLineComment(start Position) Token {
	l.advanceN(2)
	for l.peek() != 0 && l.peek() != '\n' {
		l.advance()
	}
	return l.token(TokenLineComment, start)
}

func (l *Lexer) scanBlockComment(start Position) Token {
	l.advanceN(2)
	// "/**" opens a documentation comment, but "/**/" is an empty
	// ordinary comment.
	isDoc := l.peek() == '*' && l.peekN(1) != '/'
	for {
		if l.peek() == 0 {
			break
		}
		if l.peek() == '*' && l.peekN(1) == '/' {
			l.advanceN(2)
			break
		}
		l.advance()
	}
	kind := TokenComment
	if isDoc {
		kind = TokenDocComment
	}
	return l.token(kind, start)
}

func (l *Lexer) scanIdentOrKeyword(start Position) Token {
	for isJavaLetterOrDigit(l.peek()) {
		l.advance()
	}
	end := l.Position()
	literal := string(l.input[start.Offset:end.Offset])

	// "non-sealed" is the only hyphenated keyword.
	if literal == "non" && l.peek() == '-' {
		remaining := l.input[l.pos:]
		if len(remaining) >= 7 && string(remaining[:7]) == "-sealed" {
			if len(remaining) == 7 || !isJavaLetterOrDigit(remaining[7]) {
				l.advanceN(7)
				end = l.Position()
				return Token{
					Kind:    TokenNonSealed,
					Span:    Span{Start: start, End: end},
					Literal: "non-sealed",
				}
			}
		}
	}

	kind := LookupKeyword(literal)
	return Token{
		Kind:    kind,
		Span:    Span{Start: start, End: end},
		Literal: literal,
	}
}

func (l *Lexer) scanNumber(start Position) Token {
	if l.peek() == '0' && (l.peekN(1) == 'x' || l.peekN(1) == 'X') {
		return l.scanHexNumber(start)
	}
	if l.peek() == '0' && (l.peekN(1) == 'b' || l.peekN(1) == 'B') {
		return l.scanBinaryNumber(start)
	}

	// A leading zero followed by digits is an octal literal, unless a
	// fraction or exponent turns it into a decimal floating literal.
	radix := 10
	if l.peek() == '0' && (isDigit(l.peekN(1)) || l.peekN(1) == '_') {
		radix = 8
	}

	isFloat := false
	isLong := false
	for isDigit(l.peek()) || l.peek() == '_' {
		l.advance()
	}

	if l.peek() == '.' && isDigit(l.peekN(1)) {
		isFloat = true
		l.advance()
		for isDigit(l.peek()) || l.peek() == '_' {
			l.advance()
		}
	}

	if l.peek() == 'e' || l.peek() == 'E' {
		isFloat = true
		l.advance()
		if l.peek() == '+' || l.peek() == '-' {
			l.advance()
		}
		for isDigit(l.peek()) || l.peek() == '_' {
			l.advance()
		}
	}

	ch := l.peek()
	if ch == 'f' || ch == 'F' || ch == 'd' || ch == 'D' {
		isFloat = true
		l.advance()
	} else if ch == 'l' || ch == 'L' {
		isLong = true
		l.advance()
	}

	kind := TokenIntLiteral
	switch {
	case isFloat:
		kind = TokenFloatLiteral
		radix = 10
	case isLong:
		kind = TokenLongLiteral
	}
	tok := l.token(kind, start)
	if !isFloat {
		tok.Radix = radix
	}
	return tok
}

func (l *Lexer) scanHexNumber(start Position) Token {
	l.advanceN(2)
	for isHexDigit(l.peek()) || l.peek() == '_' {
		l.advance()
	}
	isFloat := false
	isLong := false
	if l.peek() == '.' {
		isFloat = true
		l.advance()
		for isHexDigit(l.peek()) || l.peek() == '_' {
			l.advance()
		}
	}
	if l.peek() == 'p' || l.peek() == 'P' {
		isFloat = true
		l.advance()
		if l.peek() == '+' || l.peek() == '-' {
			l.advance()
		}
		for isDigit(l.peek()) || l.peek() == '_' {
			l.advance()
		}
	}
	if isFloat {
		if l.peek() == 'f' || l.peek() == 'F' || l.peek() == 'd' || l.peek() == 'D' {
			l.advance()
		}
	} else if l.peek() == 'l' || l.peek() == 'L' {
		isLong = true
		l.advance()
	}
	kind := TokenIntLiteral
	switch {
	case isFloat:
		kind = TokenFloatLiteral
	case isLong:
		kind = TokenLongLiteral
	}
	tok := l.token(kind, start)
	if !isFloat {
		tok.Radix = 16
	}
	return tok
}

func (l *Lexer) scanBinaryNumber(start Position) Token {
	l.advanceN(2)
	// Consume any digits here; the parser reports invalid binary digits.
	for isDigit(l.peek()) || l.peek() == '_' {
		l.advance()
	}
	kind := TokenIntLiteral
	if l.peek() == 'l' || l.peek() == 'L' {
		kind = TokenLongLiteral
		l.advance()
	}
	tok := l.token(kind, start)
	tok.Radix = 2
	return tok
}

func (l *Lexer) scanCharLiteral(start Position) Token {
	l.advance()
	for l.peek() != 0 && l.peek() != '\'' {
		if l.peek() == '\\' {
			l.advance()
		}
		l.advance()
	}
	if l.peek() == '\'' {
		l.advance()
	}
	return l.token(TokenCharLiteral, start)
}

func (l *Lexer) scanStringLiteral(start Position) Token {
	l.advance()
	for l.peek() != 0 && l.peek() != '"' && l.peek() != '\n' {
		if l.peek() == '\\' {
			l.advance()
		}
		l.advance()
	}
	if l.peek() == '"' {
		l.advance()
	}
	return l.token(TokenStringLiteral, start)
}

func (l *Lexer) scanTextBlock(start Position) Token {
	l.advanceN(3)
	for l.peek() != 0 {
		if l.peek() == '"' && l.peekN(1) == '"' && l.peekN(2) == '"' {
			l.advanceN(3)
			break
		}
		if l.peek() == '\\' {
			l.advance()
		}
		l.advance()
	}
	return l.token(TokenTextBlock, start)
}

func (l *Lexer) scanOperator(start Position) Token {
	ch := l.peek()

	switch ch {
	case '(':
		l.advance()
		return l.token(TokenLParen, start)
	case ')':
		l.advance()
		return l.token(TokenRParen, start)
	case '{':
		l.advance()
		return l.token(TokenLBrace, start)
	case '}':
		l.advance()
		return l.token(TokenRBrace, start)
	case '[':
		l.advance()
		return l.token(TokenLBracket, start)
	case ']':
		l.advance()
		return l.token(TokenRBracket, start)
	case ';':
		l.advance()
		return l.token(TokenSemicolon, start)
	case ',':
		l.advance()
		return l.token(TokenComma, start)
	case '@':
		l.advance()
		return l.token(TokenAt, start)
	case '~':
		l.advance()
		return l.token(TokenBitNot, start)
	case '?':
		l.advance()
		return l.token(TokenQuestion, start)

	case '.':
		if l.peekN(1) == '.' && l.peekN(2) == '.' {
			l.advanceN(3)
			return l.token(TokenEllipsis, start)
		}
		l.advance()
		return l.token(TokenDot, start)

	case ':':
		if l.peekN(1) == ':' {
			l.advanceN(2)
			return l.token(TokenColonColon, start)
		}
		l.advance()
		return l.token(TokenColon, start)

	case '=':
		if l.peekN(1) == '=' {
			l.advanceN(2)
			return l.token(TokenEQ, start)
		}
		l.advance()
		return l.token(TokenAssign, start)

	case '!':
		if l.peekN(1) == '=' {
			l.advanceN(2)
			return l.token(TokenNE, start)
		}
		l.advance()
		return l.token(TokenNot, start)

	case '<':
		if l.peekN(1) == '<' {
			if l.peekN(2) == '=' {
				l.advanceN(3)
				return l.token(TokenShlAssign, start)
			}
			l.advanceN(2)
			return l.token(TokenShl, start)
		}
		if l.peekN(1) == '=' {
			l.advanceN(2)
			return l.token(TokenLE, start)
		}
		l.advance()
		return l.token(TokenLT, start)

	case '>':
		if l.peekN(1) == '>' {
			if l.peekN(2) == '>' {
				if l.peekN(3) == '=' {
					l.advanceN(4)
					return l.token(TokenUShrAssign, start)
				}
				l.advanceN(3)
				return l.token(TokenUShr, start)
			}
			if l.peekN(2) == '=' {
				l.advanceN(3)
				return l.token(TokenShrAssign, start)
			}
			l.advanceN(2)
			return l.token(TokenShr, start)
		}
		if l.peekN(1) == '=' {
			l.advanceN(2)
			return l.token(TokenGE, start)
		}
		l.advance()
		return l.token(TokenGT, start)

	case '&':
		if l.peekN(1) == '&' {
			l.advanceN(2)
			return l.token(TokenAnd, start)
		}
		if l.peekN(1) == '=' {
			l.advanceN(2)
			return l.token(TokenAndAssign, start)
		}
		l.advance()
		return l.token(TokenBitAnd, start)

	case '|':
		if l.peekN(1) == '|' {
			l.advanceN(2)
			return l.token(TokenOr, start)
		}
		if l.peekN(1) == '=' {
			l.advanceN(2)
			return l.token(TokenOrAssign, start)
		}
		l.advance()
		return l.token(TokenBitOr, start)

	case '^':
		if l.peekN(1) == '=' {
			l.advanceN(2)
			return l.token(TokenXorAssign, start)
		}
		l.advance()
		return l.token(TokenBitXor, start)

	case '+':
		if l.peekN(1) == '+' {
			l.advanceN(2)
			return l.token(TokenIncrement, start)
		}
		if l.peekN(1) == '=' {
			l.advanceN(2)
			return l.token(TokenPlusAssign, start)
		}
		l.advance()
		return l.token(TokenPlus, start)

	case '-':
		if l.peekN(1) == '-' {
			l.advanceN(2)
			return l.token(TokenDecrement, start)
		}
		if l.peekN(1) == '=' {
			l.advanceN(2)
			return l.token(TokenMinusAssign, start)
		}
		if l.peekN(1) == '>' {
			l.advanceN(2)
			return l.token(TokenArrow, start)
		}
		l.advance()
		return l.token(TokenMinus, start)

	case '*':
		if l.peekN(1) == '=' {
			l.advanceN(2)
			return l.token(TokenStarAssign, start)
		}
		l.advance()
		return l.token(TokenStar, start)

	case '/':
		if l.peekN(1) == '=' {
			l.advanceN(2)
			return l.token(TokenSlashAssign, start)
		}
		l.advance()
		return l.token(TokenSlash, start)

	case '%':
		if l.peekN(1) == '=' {
			l.advanceN(2)
			return l.token(TokenPercentAssign, start)
		}
		l.advance()
		return l.token(TokenPercent, start)
	}

	l.advance()
	return l.token(TokenError, start)
}

func (l *Lexer) token(kind TokenKind, start Position) Token {
	end := l.Position()
	return Token{
		Kind:    kind,
		Span:    Span{Start: start, End: end},
		Literal: string(l.input[start.Offset:end.Offset]),
	}
}

func isDigit(ch byte) bool {
	return ch >= '0' && ch <= '9'
}

func isHexDigit(ch byte) bool {
	return (ch >= '0' && ch <= '9') || (ch >= 'a' && ch <= 'f') || (ch >= 'A' && ch <= 'F')
}

func isJavaLetter(ch byte) bool {
	if ch >= 128 {
		r, _ := utf8.DecodeRune([]byte{ch})
		return unicode.IsLetter(r) || r == '_' || r == '$'
	}
	return (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z') || ch == '_' || ch == '$'
}

func isJavaLetterOrDigit(ch byte) bool {
	if ch >= 128 {
		r, _ := utf8.DecodeRune([]byte{ch})
		return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' || r == '$'
	}
	return isJavaLetter(ch) || isDigit(ch)
}
