package parser

// Error recovery. The parser never unwinds: on a syntax error it
// reports a diagnostic, synthesizes an Error node, and skips forward to
// an anchor token chosen by the calling production. The skipped region
// is covered by the Error node's span so the tree still accounts for
// every token.

// stopSet selects which anchor classes terminate a skip.
type stopSet struct {
	imports    bool
	memberDecl bool
	identifier bool
	statement  bool
}

// maxStuckRecoveries bounds consecutive recoveries that fail to move
// the cursor. Exceeding it is an internal defect, not an input error.
const maxStuckRecoveries = 64

// syntaxError reports an error at the current token and records its end
// position so that enclosing nodes cannot finish before the error
// region. Repeated errors at the same position are suppressed.
func (p *Parser) syntaxError(msg string, expected ...TokenKind) {
	tok := p.peek()
	if tok.Kind == TokenEOF {
		p.incomplete = true
	}
	p.diags.errorAt(tok.Span, msg)
	p.endPos.setErrorEnd(tok.Span.End)
}

// errorNodeSkip reports, builds an Error node, and skips to the given
// anchors. The node spans from the offending token to wherever the skip
// stopped.
func (p *Parser) errorNodeSkip(msg string, stops stopSet, expected ...TokenKind) *Node {
	tok := p.peek()
	if tok.Kind == TokenEOF {
		p.incomplete = true
	}
	p.diags.errorAt(tok.Span, msg)
	p.endPos.setErrorEnd(tok.Span.End)

	node := &Node{
		Kind: KindError,
		Span: Span{Start: tok.Span.Start, End: tok.Span.End},
		Error: &Error{
			Message:  msg,
			Expected: expected,
			Got:      &tok,
		},
	}

	p.guardRecovery()
	p.skip(stops.imports, stops.memberDecl, stops.identifier, stops.statement)
	p.endPos.storeEnd(node, p.prevTokenEnd())
	return node
}

// errorNode reports and returns an Error node without consuming
// anything. Expression productions use it so the token that stopped
// them stays available to the enclosing statement for resynchronization.
func (p *Parser) errorNode(msg string, expected ...TokenKind) *Node {
	tok := p.peek()
	if tok.Kind == TokenEOF {
		p.incomplete = true
	}
	p.diags.errorAt(tok.Span, msg)
	p.endPos.setErrorEnd(tok.Span.End)

	node := &Node{
		Kind: KindError,
		Span: Span{Start: tok.Span.Start, End: tok.Span.Start},
		Error: &Error{
			Message:  msg,
			Expected: expected,
			Got:      &tok,
		},
	}
	p.endPos.storeEnd(node, tok.Span.Start)
	return node
}

func (p *Parser) guardRecovery() {
	offset := p.peek().Span.Start.Offset
	if offset == p.lastRecoveryOffset {
		p.stuckRecoveries++
		if p.stuckRecoveries > maxStuckRecoveries {
			panic("parser: recovery loop made no progress at " + p.peek().Span.Start.String())
		}
	} else {
		p.lastRecoveryOffset = offset
		p.stuckRecoveries = 0
	}
}

// skip consumes tokens until one that can plausibly start the next
// construct of the requested classes, or a closing brace or EOF. A
// semicolon is consumed and ends the skip; anchors are left for the
// caller to consume.
func (p *Parser) skip(stopAtImport, stopAtMemberDecl, stopAtIdentifier, stopAtStatement bool) {
	for {
		switch p.peek().Kind {
		case TokenSemicolon:
			p.advance()
			return
		case TokenEOF, TokenRBrace:
			return
		case TokenLBrace:
			if stopAtStatement || stopAtMemberDecl {
				return
			}
		case TokenImport:
			if stopAtImport {
				return
			}
		case TokenPublic, TokenProtected, TokenPrivate, TokenStatic,
			TokenAbstract, TokenFinal, TokenNative, TokenSynchronized,
			TokenTransient, TokenVolatile, TokenStrictfp,
			TokenClass, TokenInterface, TokenEnum,
			TokenAt,
			TokenByte, TokenShort, TokenChar, TokenInt, TokenLong,
			TokenFloat, TokenDouble, TokenBoolean, TokenVoid:
			if stopAtMemberDecl {
				return
			}
		case TokenIdent:
			if stopAtIdentifier {
				return
			}
		case TokenCase, TokenDefault, TokenIf, TokenFor, TokenWhile,
			TokenDo, TokenTry, TokenSwitch, TokenReturn, TokenFastReturn,
			TokenThrow, TokenBreak, TokenContinue, TokenElse,
			TokenFinally, TokenCatch, TokenAssert, TokenYield:
			if stopAtStatement {
				return
			}
		}
		p.advance()
	}
}
