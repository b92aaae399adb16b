package parser

// TokenStream is the parser's only view of the input. It hands out
// significant tokens while keeping the surrounding trivia (whitespace
// and comments) addressable for the comment table.
//
// Speculative parses snapshot the stream, explore, and either restore
// or keep the cursor. Restoring also rolls back any shift tokens that
// were split while exploring.
type TokenStream struct {
	tokens []Token   // significant tokens, terminated by EOF
	trivia [][]Token // trivia[i] precedes tokens[i]

	index    int
	splitLog []splitEntry
}

type splitEntry struct {
	index    int
	original Token
}

// Cursor is an opaque resumption point for snapshot/restore.
type Cursor struct {
	index  int
	splits int
}

func NewTokenStream(input []byte, file string) *TokenStream {
	lexer := NewLexer(input, file)
	s := &TokenStream{}
	var pending []Token
	for {
		tok := lexer.NextToken()
		switch tok.Kind {
		case TokenWhitespace, TokenComment, TokenLineComment, TokenDocComment:
			pending = append(pending, tok)
			continue
		}
		s.tokens = append(s.tokens, tok)
		s.trivia = append(s.trivia, pending)
		pending = nil
		if tok.Kind == TokenEOF {
			return s
		}
	}
}

func (s *TokenStream) current() Token {
	return s.tokens[s.index]
}

// peek returns the token k positions ahead of the current one without
// consuming anything. peek(0) is the current token; past the end it
// keeps returning EOF.
func (s *TokenStream) peek(k int) Token {
	i := s.index + k
	if i >= len(s.tokens) {
		i = len(s.tokens) - 1
	}
	return s.tokens[i]
}

// advance consumes and returns the current token. EOF is sticky.
func (s *TokenStream) advance() Token {
	tok := s.tokens[s.index]
	if tok.Kind != TokenEOF {
		s.index++
	}
	return tok
}

func (s *TokenStream) snapshot() Cursor {
	return Cursor{index: s.index, splits: len(s.splitLog)}
}

func (s *TokenStream) restore(c Cursor) {
	for len(s.splitLog) > c.splits {
		entry := s.splitLog[len(s.splitLog)-1]
		s.tokens[entry.index] = entry.original
		s.splitLog = s.splitLog[:len(s.splitLog)-1]
	}
	s.index = c.index
}

// commentsBefore returns the trivia tokens lexically preceding the
// significant token at stream position i.
func (s *TokenStream) commentsBefore(i int) []Token {
	if i < 0 || i >= len(s.trivia) {
		return nil
	}
	return s.trivia[i]
}

// pos is the stream position of the current token, usable with
// commentsBefore and for progress checks.
func (s *TokenStream) pos() int {
	return s.index
}

// splitGT consumes a single ">" out of the current composite
// shift/comparison token, leaving the remainder in place with its span
// advanced past the consumed character. The caller must have checked
// that the current token starts with ">". Returns the consumed ">".
func (s *TokenStream) splitGT() Token {
	tok := s.tokens[s.index]

	var rest TokenKind
	switch tok.Kind {
	case TokenShr:
		rest = TokenGT
	case TokenUShr:
		rest = TokenShr
	case TokenShrAssign:
		rest = TokenGE
	case TokenUShrAssign:
		rest = TokenShrAssign
	case TokenGE:
		rest = TokenAssign
	default:
		return s.advance()
	}

	s.splitLog = append(s.splitLog, splitEntry{index: s.index, original: tok})

	mid := tok.Span.Start
	mid.Offset++
	mid.Column++

	consumed := Token{
		Kind:    TokenGT,
		Span:    Span{Start: tok.Span.Start, End: mid},
		Literal: ">",
	}
	s.tokens[s.index] = Token{
		Kind:    rest,
		Span:    Span{Start: mid, End: tok.Span.End},
		Literal: tok.Literal[1:],
	}
	return consumed
}
