package parser

// Disambiguation of the grammar's lookahead-unfriendly spots. Every
// classifier here is a pure forward scan over peek(k): nothing is
// consumed, no tree is built, and no diagnostic is reported. The
// expression and statement parsers commit based on the returned class.

// parensResult classifies what a "(" in expression position opens.
type parensResult int

const (
	parensCast parensResult = iota
	parensExplicitLambda
	parensImplicitLambda
	parensParens
)

func (r parensResult) String() string {
	switch r {
	case parensCast:
		return "cast"
	case parensExplicitLambda:
		return "explicit-lambda"
	case parensImplicitLambda:
		return "implicit-lambda"
	}
	return "parens"
}

// patternResult classifies the operand after instanceof or a case label.
type patternResult int

const (
	patternExpression patternResult = iota
	patternPattern
)

// peekKind returns the token kind at lookahead offset k from the
// current token.
func (p *Parser) peekKind(k int) TokenKind {
	return p.peekN(k).Kind
}

// analyzeParens classifies the "(" at lookahead 0. It scans forward
// with an angle-bracket depth counter and a flag recording whether the
// scanned prefix is type-like, deciding as soon as a token sequence is
// conclusive. An identifier followed by "," at depth 0 makes
// implicit-lambda the fallback for an otherwise inconclusive scan.
func (p *Parser) analyzeParens(m mode) parensResult {
	depth := 0
	typ := false
	defaultResult := parensParens

	for lookahead := 0; ; lookahead++ {
		tk := p.peekKind(lookahead)
		switch tk {
		case TokenComma:
			typ = true

		case TokenExtends, TokenSuper, TokenDot, TokenBitAnd:
			// skip

		case TokenQuestion:
			if p.peekKind(lookahead+1) == TokenExtends ||
				p.peekKind(lookahead+1) == TokenSuper {
				// wildcard
				typ = true
			}

		case TokenByte, TokenShort, TokenInt, TokenLong, TokenFloat,
			TokenDouble, TokenBoolean, TokenChar, TokenVoid:
			if p.peekKind(lookahead+1) == TokenRParen {
				// primitive, ')' -> cast
				return parensCast
			}
			if isLaxIdentifier(p.peekKind(lookahead + 1)) {
				// primitive, identifier -> explicit lambda
				return parensExplicitLambda
			}

		case TokenLParen:
			if lookahead != 0 {
				// '(' in a non-starting position -> parens
				return parensParens
			}
			if p.peekKind(lookahead+1) == TokenRParen {
				// '()' -> explicit lambda
				return parensExplicitLambda
			}

		case TokenRParen:
			if typ {
				return parensCast
			}
			// Disambiguate cast vs. parenthesized expression on the
			// token after ')': anything that can start an operand
			// means cast.
			switch p.peekKind(lookahead + 1) {
			case TokenNot, TokenBitNot,
				TokenLParen, TokenThis, TokenSuper,
				TokenIntLiteral, TokenLongLiteral, TokenFloatLiteral,
				TokenCharLiteral, TokenStringLiteral, TokenTextBlock,
				TokenTrue, TokenFalse, TokenNull,
				TokenNew, TokenSwitch,
				TokenByte, TokenShort, TokenChar, TokenInt,
				TokenLong, TokenFloat, TokenDouble, TokenBoolean, TokenVoid:
				return parensCast
			default:
				if isLaxIdentifier(p.peekKind(lookahead + 1)) {
					return parensCast
				}
				return defaultResult
			}

		case TokenFinal, TokenEllipsis:
			// only legal in an explicit lambda's parameter list
			return parensExplicitLambda

		case TokenAt:
			typ = true
			lookahead = p.skipAnnotationLookahead(lookahead)

		case TokenLBracket:
			if p.peekKind(lookahead+1) == TokenRBracket &&
				isLaxIdentifier(p.peekKind(lookahead+2)) {
				// '[]', identifier -> explicit lambda
				return parensExplicitLambda
			}
			if p.peekKind(lookahead+1) == TokenRBracket &&
				(p.peekKind(lookahead+2) == TokenRParen || p.peekKind(lookahead+2) == TokenBitAnd) {
				// '[]' then ')' or '&' -> cast
				return parensCast
			}
			if p.peekKind(lookahead+1) == TokenRBracket {
				typ = true
				lookahead++
				break
			}
			return parensParens

		case TokenLT:
			depth++

		case TokenGT, TokenShr, TokenUShr:
			switch tk {
			case TokenUShr:
				depth -= 3
			case TokenShr:
				depth -= 2
			default:
				depth--
			}
			if depth == 0 {
				if p.peekKind(lookahead+1) == TokenRParen ||
					p.peekKind(lookahead+1) == TokenBitAnd {
					// '>', ')' or '>', '&' -> cast
					return parensCast
				}
				if (isLaxIdentifier(p.peekKind(lookahead+1)) &&
					(p.peekKind(lookahead+2) == TokenComma ||
						(p.peekKind(lookahead+2) == TokenRParen && p.peekKind(lookahead+3) == TokenArrow))) ||
					p.peekKind(lookahead+1) == TokenEllipsis {
					return parensExplicitLambda
				}
				// looks like a type, but could still be a cast to a
				// generic type, an unbound method reference, or an
				// explicit lambda
				typ = true
			} else if depth < 0 {
				// unbalanced angle brackets: not a generic type
				return parensParens
			}

		default:
			if isLaxIdentifier(tk) {
				if isLaxIdentifier(p.peekKind(lookahead + 1)) {
					// two identifiers in a row -> explicit lambda
					return parensExplicitLambda
				}
				if p.peekKind(lookahead+1) == TokenRParen &&
					p.peekKind(lookahead+2) == TokenArrow {
					if m.has(modeNoLambda) {
						return parensParens
					}
					return parensImplicitLambda
				}
				if depth == 0 && p.peekKind(lookahead+1) == TokenComma {
					defaultResult = parensImplicitLambda
				}
				typ = false
				break
			}
			// includes EOF
			return defaultResult
		}
	}
}

// analyzePattern classifies the tokens starting at the given lookahead
// offset as a pattern or an expression, for instanceof operands and
// case labels. Record patterns nest through parentheses; a pending
// classification inside parentheses only wins if the scan survives to
// the matching close.
func (p *Parser) analyzePattern(lookahead int) patternResult {
	typeDepth := 0
	parenDepth := 0
	pending := patternExpression

	for {
		tk := p.peekKind(lookahead)
		switch tk {
		case TokenByte, TokenShort, TokenInt, TokenLong, TokenFloat,
			TokenDouble, TokenBoolean, TokenChar, TokenVoid:
			if typeDepth == 0 && isLaxIdentifier(p.peekKind(lookahead+1)) {
				if parenDepth == 0 {
					return patternPattern
				}
				pending = patternPattern
			} else if typeDepth == 0 && parenDepth == 0 &&
				(p.peekKind(lookahead+1) == TokenArrow || p.peekKind(lookahead+1) == TokenComma) {
				return patternExpression
			}

		case TokenDot, TokenQuestion, TokenExtends, TokenSuper, TokenComma:
			// skip

		case TokenLT:
			typeDepth++

		case TokenGT, TokenShr, TokenUShr:
			switch tk {
			case TokenUShr:
				typeDepth -= 3
			case TokenShr:
				typeDepth -= 2
			default:
				typeDepth--
			}
			if typeDepth == 0 && p.peekKind(lookahead+1) != TokenDot {
				if isLaxIdentifier(p.peekKind(lookahead+1)) ||
					p.peekKind(lookahead+1) == TokenLParen {
					return patternPattern
				}
				return patternExpression
			}
			if typeDepth < 0 {
				return patternExpression
			}

		case TokenAt:
			lookahead = p.skipAnnotationLookahead(lookahead)

		case TokenLBracket:
			if p.peekKind(lookahead+1) == TokenRBracket &&
				isLaxIdentifier(p.peekKind(lookahead+2)) {
				return patternPattern
			}
			if p.peekKind(lookahead+1) == TokenRBracket {
				lookahead++
				break
			}
			// a potential guard, if we are already in a pattern
			return pending

		case TokenLParen:
			if p.peekKind(lookahead+1) == TokenRParen {
				if parenDepth != 0 && p.peekKind(lookahead+2) == TokenArrow {
					return patternExpression
				}
				return patternPattern
			}
			parenDepth++

		case TokenRParen:
			parenDepth--
			if parenDepth == 0 && typeDepth == 0 &&
				p.peekKind(lookahead+1) == TokenWhen {
				return patternPattern
			}

		case TokenArrow:
			if parenDepth > 0 {
				return patternExpression
			}
			return pending

		case TokenFinal:
			if parenDepth > 0 {
				return patternPattern
			}
			return pending

		default:
			if isLaxIdentifier(tk) {
				// "_ )" and "_ ," close a record pattern component.
				if p.peekN(lookahead).Literal == "_" && typeDepth == 0 &&
					(p.peekKind(lookahead+1) == TokenRParen || p.peekKind(lookahead+1) == TokenComma) {
					return patternPattern
				}
				if typeDepth == 0 && isLaxIdentifier(p.peekKind(lookahead+1)) {
					if parenDepth == 0 {
						return patternPattern
					}
					pending = patternPattern
				} else if typeDepth == 0 && parenDepth == 0 &&
					(p.peekKind(lookahead+1) == TokenArrow || p.peekKind(lookahead+1) == TokenComma) {
					return patternExpression
				}
				break
			}
			return pending
		}
		lookahead++
	}
}

// skipAnnotationLookahead advances the lookahead offset past an
// annotation starting at '@', including a parenthesized value list.
func (p *Parser) skipAnnotationLookahead(lookahead int) int {
	lookahead++ // '@'
	for p.peekKind(lookahead+1) == TokenDot {
		lookahead += 2
	}
	if p.peekKind(lookahead+1) == TokenLParen {
		lookahead += 2
		nesting := 1
		for ; ; lookahead++ {
			switch p.peekKind(lookahead) {
			case TokenEOF:
				return lookahead
			case TokenLParen:
				nesting++
			case TokenRParen:
				nesting--
				if nesting == 0 {
					return lookahead
				}
			}
		}
	}
	return lookahead
}

// isUnboundMemberRef reports whether an identifier followed by "<"
// opens a generic unbound method reference (Ident<...>:: or
// Ident<...>. or Ident<...>[) rather than a comparison. It scans for
// the matching ">" over type-ish tokens only.
func (p *Parser) isUnboundMemberRef() bool {
	depth := 0
	for pos := 0; ; pos++ {
		tk := p.peekKind(pos)
		switch tk {
		case TokenQuestion, TokenExtends, TokenSuper,
			TokenDot, TokenRBracket, TokenLBracket, TokenComma,
			TokenByte, TokenShort, TokenInt, TokenLong, TokenFloat,
			TokenDouble, TokenBoolean, TokenChar,
			TokenAt:
			// type-ish, keep scanning

		case TokenLParen:
			// skip annotation values
			nesting := 0
			matched := false
			for !matched {
				switch p.peekKind(pos) {
				case TokenEOF:
					return false
				case TokenLParen:
					nesting++
				case TokenRParen:
					nesting--
					if nesting == 0 {
						matched = true
						continue
					}
				}
				pos++
			}

		case TokenLT:
			depth++

		case TokenGT, TokenShr, TokenUShr:
			switch tk {
			case TokenUShr:
				depth -= 3
			case TokenShr:
				depth -= 2
			default:
				depth--
			}
			if depth == 0 {
				next := p.peekKind(pos + 1)
				return next == TokenDot || next == TokenLBracket || next == TokenColonColon
			}
			if depth < 0 {
				return false
			}

		default:
			if !isLaxIdentifier(tk) {
				return false
			}
		}
	}
}

// skipTypeArguments consumes a balanced type-argument list starting at
// "<". Used only by speculative scans; it stops at EOF and at tokens
// that cannot occur inside type arguments.
func (p *Parser) skipTypeArguments() {
	depth := 0
	for {
		switch p.peek().Kind {
		case TokenLT:
			depth++
		case TokenGT:
			depth--
		case TokenShr:
			depth -= 2
		case TokenUShr:
			depth -= 3
		case TokenEOF, TokenSemicolon, TokenLBrace, TokenRBrace:
			return
		}
		p.advance()
		if depth <= 0 {
			return
		}
	}
}
