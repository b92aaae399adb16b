package parser

func (p *Parser) parseBlock() *Node {
	node := p.startNode(KindBlock)
	p.expect(TokenLBrace)
	p.parseBlockStatements(node)
	p.expect(TokenRBrace)
	return p.finishNode(node)
}

// parseBlockStatements fills node with statements until a closing brace
// or EOF. Every iteration must consume at least one token; recovery
// inside parseStatement guarantees that, and mustProgress backstops it
// by consuming the stuck token so the following statements still parse.
func (p *Parser) parseBlockStatements(node *Node) {
	for !p.check(TokenRBrace) && !p.check(TokenEOF) {
		progress := p.mustProgress()
		node.AddChild(p.parseStatement())
		progress()
	}
}

func (p *Parser) parseStatement() *Node {
	switch p.peek().Kind {
	case TokenLBrace:
		return p.parseBlock()
	case TokenSemicolon:
		node := p.startNode(KindEmptyStmt)
		p.advance()
		return p.finishNode(node)
	case TokenIf:
		return p.parseIfStmt()
	case TokenFor:
		return p.parseForStmt()
	case TokenWhile:
		return p.parseWhileStmt()
	case TokenDo:
		return p.parseDoStmt()
	case TokenSwitch:
		return p.parseSwitchStmt()
	case TokenTry:
		return p.parseTryStmt()
	case TokenSynchronized:
		if p.peekN(1).Kind == TokenLParen {
			return p.parseSynchronizedStmt()
		}
	case TokenReturn:
		return p.parseReturnStmt(KindReturnStmt)
	case TokenFastReturn:
		return p.parseReturnStmt(KindFastReturnStmt)
	case TokenThrow:
		return p.parseThrowStmt()
	case TokenBreak:
		return p.parseBreakStmt()
	case TokenContinue:
		return p.parseContinueStmt()
	case TokenAssert:
		return p.parseAssertStmt()
	case TokenYield:
		if p.yieldStatementAhead() {
			return p.parseYieldStmt()
		}
	case TokenClass, TokenInterface, TokenEnum:
		return p.parseLocalClassDecl()
	case TokenRecord:
		if isLaxIdentifier(p.peekN(1).Kind) {
			return p.parseLocalClassDecl()
		}
	case TokenAt:
		if p.peekN(1).Kind == TokenInterface {
			return p.parseLocalClassDecl()
		}
		return p.parseModifiedStatement()
	case TokenFinal, TokenStatic, TokenAbstract:
		return p.parseModifiedStatement()
	case TokenCase, TokenDefault:
		// A case label outside a switch body; report it here rather
		// than letting the expression parser trip over it.
		return p.errorNodeSkip("case label outside switch", stopSet{statement: true})
	case TokenElse:
		return p.errorNodeSkip("else without if", stopSet{statement: true})
	case TokenCatch:
		return p.errorNodeSkip("catch without try", stopSet{statement: true})
	case TokenFinally:
		return p.errorNodeSkip("finally without try", stopSet{statement: true})
	}

	// Labeled statement: Ident ':' Statement
	if p.isIdentifierLike() && p.peekN(1).Kind == TokenColon {
		return p.parseLabeledStmt()
	}

	return p.parseExpressionOrDeclaration()
}

// parseModifiedStatement handles statements opening with modifiers:
// either a local class/interface/record or a local variable declaration.
func (p *Parser) parseModifiedStatement() *Node {
	docAnchor := p.stream.pos()
	modifiers := p.parseModifiers()

	switch p.peek().Kind {
	case TokenClass, TokenInterface, TokenEnum:
		node := p.startNode(KindLocalClassDecl)
		node.AddChild(p.docAttached(p.classLikeDecl(modifiers), docAnchor))
		return p.finishNode(node)
	case TokenRecord:
		if isLaxIdentifier(p.peekN(1).Kind) {
			node := p.startNode(KindLocalClassDecl)
			node.AddChild(p.docAttached(p.parseRecordDecl(modifiers), docAnchor))
			return p.finishNode(node)
		}
	case TokenAt:
		if p.peekN(1).Kind == TokenInterface {
			node := p.startNode(KindLocalClassDecl)
			node.AddChild(p.docAttached(p.parseAnnotationDecl(modifiers), docAnchor))
			return p.finishNode(node)
		}
	}

	typ := p.parseType()
	return p.parseLocalVarDecl(modifiers, typ)
}

func (p *Parser) classLikeDecl(modifiers *Node) *Node {
	switch p.peek().Kind {
	case TokenClass:
		return p.parseClassDecl(modifiers)
	case TokenInterface:
		return p.parseInterfaceDecl(modifiers)
	default:
		return p.parseEnumDecl(modifiers)
	}
}

func (p *Parser) parseLocalClassDecl() *Node {
	node := p.startNode(KindLocalClassDecl)
	modifiers := p.parseModifiers()
	switch p.peek().Kind {
	case TokenRecord:
		node.AddChild(p.parseRecordDecl(modifiers))
	case TokenAt:
		node.AddChild(p.parseAnnotationDecl(modifiers))
	default:
		node.AddChild(p.classLikeDecl(modifiers))
	}
	return p.finishNode(node)
}

// parseExpressionOrDeclaration resolves the statement-level ambiguity
// between an expression statement and a local variable declaration by
// parsing once in the combined EXPR|TYPE mode and reinterpreting: if
// the parse resolved to something type-like and an identifier follows,
// it was the type of a declaration.
func (p *Parser) parseExpressionOrDeclaration() *Node {
	start := p.peek().Span.Start
	t, rm := p.term(modeExpr | modeType)

	if rm.has(modeType) && p.isIdentifierLike() {
		typ := t
		if typ.Kind != KindType && typ.Kind != KindArrayType && typ.Kind != KindParameterizedType {
			typ = &Node{Kind: KindType, Span: t.Span, Children: []*Node{t}}
			p.endPos.storeEnd(typ, t.Span.End)
		}
		return p.parseLocalVarDecl(nil, typ)
	}

	node := &Node{Kind: KindExprStmt, Span: Span{Start: start}}
	node.AddChild(t)
	if p.expect(TokenSemicolon) == nil {
		p.skip(false, false, false, true)
	}
	return p.finishNode(node)
}

func (p *Parser) parseLocalVarDecl(modifiers *Node, typ *Node) *Node {
	node := &Node{Kind: KindLocalVarDecl, Span: Span{Start: typ.Span.Start}}
	if modifiers != nil {
		node.Span.Start = modifiers.Span.Start
		if len(modifiers.Children) > 0 {
			node.AddChild(modifiers)
		}
	}
	node.AddChild(typ)

	p.parseVarDeclarators(node)

	if p.expect(TokenSemicolon) == nil {
		p.skip(false, false, false, true)
	}
	return p.finishNode(node)
}

func (p *Parser) parseVarDeclarators(node *Node) {
	for {
		progress := p.mustProgress()
		if id := p.parseVariableDeclaratorId(); id != nil {
			node.AddChild(id)
		}

		for p.check(TokenLBracket) {
			p.advance()
			p.expect(TokenRBracket)
		}

		if p.check(TokenAssign) {
			p.advance()
			node.AddChild(p.parseVarInitializer())
		}

		if !p.check(TokenComma) {
			break
		}
		p.advance()
		if !progress() {
			break
		}
	}
}

// parseVariableDeclaratorId parses a declared name, including the
// unnamed variable "_".
func (p *Parser) parseVariableDeclaratorId() *Node {
	if !p.isIdentifierLike() {
		p.syntaxError("expected identifier", TokenIdent)
		return nil
	}
	tok := p.advance()
	if tok.Literal == "_" {
		node := &Node{Kind: KindUnnamedVariable, Token: &tok, Span: tok.Span}
		p.endPos.storeEnd(node, tok.Span.End)
		return node
	}
	node := p.identNode(tok)
	p.endPos.storeEnd(node, tok.Span.End)
	return node
}

func (p *Parser) parseIfStmt() *Node {
	node := p.startNode(KindIfStmt)
	p.expect(TokenIf)
	p.expect(TokenLParen)
	cond, _ := p.term(modeExpr)
	node.AddChild(cond)
	p.expect(TokenRParen)
	node.AddChild(p.parseStatement())

	if p.check(TokenElse) {
		p.advance()
		node.AddChild(p.parseStatement())
	}

	return p.finishNode(node)
}

func (p *Parser) parseForStmt() *Node {
	if p.isEnhancedFor() {
		return p.parseEnhancedForStmt()
	}

	node := p.startNode(KindForStmt)
	p.expect(TokenFor)
	p.expect(TokenLParen)

	init := p.startNode(KindForInit)
	if !p.check(TokenSemicolon) {
		p.parseForInit(init)
	}
	node.AddChild(p.finishNode(init))
	p.expect(TokenSemicolon)

	if !p.check(TokenSemicolon) {
		cond, _ := p.term(modeExpr)
		node.AddChild(cond)
	}
	p.expect(TokenSemicolon)

	update := p.startNode(KindForUpdate)
	for !p.check(TokenRParen) && !p.check(TokenEOF) {
		progress := p.mustProgress()
		expr, _ := p.term(modeExpr)
		update.AddChild(expr)
		if !p.check(TokenComma) {
			break
		}
		p.advance()
		if !progress() {
			break
		}
	}
	node.AddChild(p.finishNode(update))

	p.expect(TokenRParen)
	node.AddChild(p.parseStatement())
	return p.finishNode(node)
}

// parseForInit parses either a local variable declaration (without the
// trailing semicolon) or a comma-separated expression list, using the
// same dual parse as statement position.
func (p *Parser) parseForInit(init *Node) {
	var modifiers *Node
	if p.check(TokenFinal) || p.check(TokenAt) {
		modifiers = p.parseModifiers()
	}

	t, rm := p.term(modeExpr | modeType)
	if modifiers != nil || (rm.has(modeType) && p.isIdentifierLike()) {
		typ := t
		if typ.Kind != KindType && typ.Kind != KindArrayType && typ.Kind != KindParameterizedType {
			typ = &Node{Kind: KindType, Span: t.Span, Children: []*Node{t}}
			p.endPos.storeEnd(typ, t.Span.End)
		}
		decl := &Node{Kind: KindLocalVarDecl, Span: Span{Start: typ.Span.Start}}
		if modifiers != nil {
			decl.Span.Start = modifiers.Span.Start
			if len(modifiers.Children) > 0 {
				decl.AddChild(modifiers)
			}
		}
		decl.AddChild(typ)
		p.parseVarDeclarators(decl)
		init.AddChild(p.finishNode(decl))
		return
	}

	init.AddChild(t)
	for p.check(TokenComma) {
		p.advance()
		expr, _ := p.term(modeExpr)
		init.AddChild(expr)
	}
}

// isEnhancedFor speculatively parses the for header up to a ":" at
// paren depth zero.
func (p *Parser) isEnhancedFor() bool {
	fork := p.fork()
	defer fork.discard()

	if !fork.check(TokenFor) {
		return false
	}
	fork.advance()
	if !fork.check(TokenLParen) {
		return false
	}
	fork.advance()

	depth := 1
	for !fork.check(TokenEOF) {
		switch fork.peek().Kind {
		case TokenLParen:
			depth++
		case TokenRParen:
			depth--
			if depth == 0 {
				return false
			}
		case TokenSemicolon:
			return false
		case TokenColon:
			if depth == 1 {
				return true
			}
		case TokenLBrace, TokenRBrace:
			return false
		}
		fork.advance()
	}
	return false
}

func (p *Parser) parseEnhancedForStmt() *Node {
	node := p.startNode(KindEnhancedForStmt)
	p.expect(TokenFor)
	p.expect(TokenLParen)

	decl := p.startNode(KindLocalVarDecl)
	modifiers := p.parseModifiers()
	if len(modifiers.Children) > 0 {
		decl.AddChild(modifiers)
	}
	decl.AddChild(p.parseType())
	if id := p.parseVariableDeclaratorId(); id != nil {
		decl.AddChild(id)
	}
	node.AddChild(p.finishNode(decl))

	p.expect(TokenColon)
	iterable, _ := p.term(modeExpr)
	node.AddChild(iterable)
	p.expect(TokenRParen)
	node.AddChild(p.parseStatement())
	return p.finishNode(node)
}

func (p *Parser) parseWhileStmt() *Node {
	node := p.startNode(KindWhileStmt)
	p.expect(TokenWhile)
	p.expect(TokenLParen)
	cond, _ := p.term(modeExpr)
	node.AddChild(cond)
	p.expect(TokenRParen)
	node.AddChild(p.parseStatement())
	return p.finishNode(node)
}

func (p *Parser) parseDoStmt() *Node {
	node := p.startNode(KindDoStmt)
	p.expect(TokenDo)
	node.AddChild(p.parseStatement())
	p.expect(TokenWhile)
	p.expect(TokenLParen)
	cond, _ := p.term(modeExpr)
	node.AddChild(cond)
	p.expect(TokenRParen)
	p.expect(TokenSemicolon)
	return p.finishNode(node)
}

func (p *Parser) parseSwitchStmt() *Node {
	node := p.startNode(KindSwitchStmt)
	p.expect(TokenSwitch)
	p.expect(TokenLParen)
	selector, _ := p.term(modeExpr)
	node.AddChild(selector)
	p.expect(TokenRParen)
	p.parseSwitchBlock(node)
	return p.finishNode(node)
}

// parseSwitchBlock parses the braced case groups shared by switch
// statements and switch expressions. Arrow and colon forms must not be
// mixed within one switch.
func (p *Parser) parseSwitchBlock(node *Node) {
	p.expect(TokenLBrace)

	sawArrow := false
	sawColon := false
	for !p.check(TokenRBrace) && !p.check(TokenEOF) {
		progress := p.mustProgress()
		if !p.check(TokenCase) && !p.check(TokenDefault) {
			node.AddChild(p.errorNodeSkip("expected case or default",
				stopSet{statement: true}, TokenCase, TokenDefault))
			progress()
			continue
		}
		c := p.parseSwitchCase()
		if c.isArrowCase {
			if sawColon {
				p.diags.errorAt(c.Span, "mixed arrow and colon case groups in one switch")
			}
			sawArrow = true
		} else {
			if sawArrow {
				p.diags.errorAt(c.Span, "mixed arrow and colon case groups in one switch")
			}
			sawColon = true
		}
		node.AddChild(c)
		progress()
	}

	p.expect(TokenRBrace)
}

// parseSwitchCase parses one case group: its labels (several labels
// may share one group), the arrow or colon, and the group body.
func (p *Parser) parseSwitchCase() *Node {
	node := p.startNode(KindSwitchCase)

	for p.check(TokenCase) || p.check(TokenDefault) {
		node.AddChild(p.parseSwitchLabel())
		if p.check(TokenColon) && (p.peekN(1).Kind == TokenCase || p.peekN(1).Kind == TokenDefault) {
			p.advance()
			continue
		}
		break
	}

	if p.check(TokenArrow) {
		node.isArrowCase = true
		p.advance()
		switch p.peek().Kind {
		case TokenLBrace:
			node.AddChild(p.parseBlock())
		case TokenThrow:
			node.AddChild(p.parseThrowStmt())
		default:
			stmt := p.startNode(KindExprStmt)
			expr, _ := p.term(modeExpr)
			stmt.AddChild(expr)
			p.expect(TokenSemicolon)
			node.AddChild(p.finishNode(stmt))
		}
		return p.finishNode(node)
	}

	p.expect(TokenColon)
	for !p.check(TokenCase) && !p.check(TokenDefault) &&
		!p.check(TokenRBrace) && !p.check(TokenEOF) {
		progress := p.mustProgress()
		node.AddChild(p.parseStatement())
		progress()
	}
	return p.finishNode(node)
}

// parseSwitchLabel parses "default" or "case" with a comma-separated
// label list; each label is null, default, a pattern, or a constant
// expression, optionally guarded by "when".
func (p *Parser) parseSwitchLabel() *Node {
	node := p.startNode(KindSwitchLabel)

	if p.check(TokenDefault) {
		tok := p.advance()
		node.AddChild(p.identNode(tok))
		return p.finishNode(node)
	}

	p.expect(TokenCase)

	for {
		progress := p.mustProgress()
		switch {
		case p.check(TokenNull):
			tok := p.advance()
			node.AddChild(&Node{Kind: KindLiteral, Token: &tok, Span: tok.Span})
		case p.check(TokenDefault):
			tok := p.advance()
			node.AddChild(p.identNode(tok))
		case p.caseLabelIsPattern():
			node.AddChild(p.parsePattern())
		default:
			expr, _ := p.term(modeExpr | modeNoLambda)
			node.AddChild(expr)
		}

		if !p.check(TokenComma) {
			break
		}
		p.advance()
		if !progress() {
			break
		}
	}

	if p.check(TokenWhen) {
		node.AddChild(p.parseGuard())
	}

	return p.finishNode(node)
}

func (p *Parser) caseLabelIsPattern() bool {
	if p.check(TokenFinal) || (p.check(TokenAt) && p.peekN(1).Kind != TokenInterface) {
		return true
	}
	return p.analyzePattern(0) == patternPattern
}

func (p *Parser) parseGuard() *Node {
	node := p.startNode(KindGuard)
	p.expect(TokenWhen)
	expr, _ := p.term(modeExpr | modeNoLambda)
	node.AddChild(expr)
	return p.finishNode(node)
}

// parsePattern parses a type pattern or a record pattern, used by
// instanceof and case labels.
func (p *Parser) parsePattern() *Node {
	start := p.peek().Span.Start

	var modifiers *Node
	if p.check(TokenFinal) || (p.check(TokenAt) && p.peekN(1).Kind != TokenInterface) {
		modifiers = p.parseModifiers()
	}

	typ := p.parseType()

	if p.check(TokenLParen) {
		node := &Node{Kind: KindRecordPattern, Span: Span{Start: start}}
		if modifiers != nil && len(modifiers.Children) > 0 {
			node.AddChild(modifiers)
		}
		node.AddChild(typ)
		p.advance()
		for !p.check(TokenRParen) && !p.check(TokenEOF) {
			progress := p.mustProgress()
			node.AddChild(p.parsePattern())
			if !p.check(TokenComma) {
				break
			}
			p.advance()
			if !progress() {
				break
			}
		}
		p.expect(TokenRParen)
		return p.finishNode(node)
	}

	node := &Node{Kind: KindTypePattern, Span: Span{Start: start}}
	if modifiers != nil && len(modifiers.Children) > 0 {
		node.AddChild(modifiers)
	}
	node.AddChild(typ)
	if p.isIdentifierLike() {
		if id := p.parseVariableDeclaratorId(); id != nil {
			node.AddChild(id)
		}
	}
	return p.finishNode(node)
}

func (p *Parser) parseReturnStmt(kind NodeKind) *Node {
	node := p.startNode(kind)
	p.advance() // return or fastreturn

	if !p.check(TokenSemicolon) && !p.check(TokenRBrace) && !p.check(TokenEOF) {
		expr, _ := p.term(modeExpr)
		node.AddChild(expr)
	}

	if p.expect(TokenSemicolon) == nil {
		p.skip(false, false, false, true)
	}
	return p.finishNode(node)
}

func (p *Parser) parseBreakStmt() *Node {
	node := p.startNode(KindBreakStmt)
	p.expect(TokenBreak)
	if p.isIdentifierLike() {
		tok := p.advance()
		node.AddChild(p.identNode(tok))
	}
	p.expect(TokenSemicolon)
	return p.finishNode(node)
}

func (p *Parser) parseContinueStmt() *Node {
	node := p.startNode(KindContinueStmt)
	p.expect(TokenContinue)
	if p.isIdentifierLike() {
		tok := p.advance()
		node.AddChild(p.identNode(tok))
	}
	p.expect(TokenSemicolon)
	return p.finishNode(node)
}

func (p *Parser) parseThrowStmt() *Node {
	node := p.startNode(KindThrowStmt)
	p.expect(TokenThrow)
	expr, _ := p.term(modeExpr)
	node.AddChild(expr)
	if p.expect(TokenSemicolon) == nil {
		p.skip(false, false, false, true)
	}
	return p.finishNode(node)
}

func (p *Parser) parseTryStmt() *Node {
	node := p.startNode(KindTryStmt)
	p.expect(TokenTry)

	hasResources := false
	if p.check(TokenLParen) {
		hasResources = true
		resources := p.startNode(KindResources)
		p.advance()
		for !p.check(TokenRParen) && !p.check(TokenEOF) {
			progress := p.mustProgress()
			resources.AddChild(p.parseResource())
			if p.check(TokenSemicolon) {
				p.advance()
			}
			if !progress() {
				break
			}
		}
		p.expect(TokenRParen)
		node.AddChild(p.finishNode(resources))
	}

	node.AddChild(p.parseBlock())

	hasHandler := false
	for p.check(TokenCatch) {
		hasHandler = true
		node.AddChild(p.parseCatchClause())
	}

	if p.check(TokenFinally) {
		hasHandler = true
		node.AddChild(p.parseFinallyClause())
	}

	// Structural, recoverable: the body parsed fine, the statement is
	// just missing all of its completion paths.
	if !hasResources && !hasHandler {
		p.diags.errorAt(node.Span, "try without catch, finally or resource declarations")
	}

	return p.finishNode(node)
}

// parseResource parses one try-with-resources resource: either a
// variable declaration or an existing-variable reference. The
// declaration form runs on a forked parser whose results are kept only
// when the input has a declaration shape; otherwise the fork is
// discarded and the resource is re-parsed as a plain expression, with
// none of the attempt's diagnostics surviving.
func (p *Parser) parseResource() *Node {
	fork := p.fork()
	if decl := fork.parseResourceDecl(); decl != nil {
		fork.keep()
		return decl
	}
	fork.discard()

	t, _ := p.term(modeExpr)
	return t
}

// parseResourceDecl parses the declaration form of a resource,
// returning nil when the input does not have one.
func (p *Parser) parseResourceDecl() *Node {
	var modifiers *Node
	if p.check(TokenFinal) || p.check(TokenAt) {
		modifiers = p.parseModifiers()
	}

	t, rm := p.term(modeExpr | modeType)
	if modifiers == nil && (!rm.has(modeType) || !p.isIdentifierLike()) {
		return nil
	}

	typ := t
	if typ.Kind != KindType && typ.Kind != KindArrayType && typ.Kind != KindParameterizedType {
		typ = &Node{Kind: KindType, Span: t.Span, Children: []*Node{t}}
		p.endPos.storeEnd(typ, t.Span.End)
	}
	decl := &Node{Kind: KindLocalVarDecl, Span: Span{Start: typ.Span.Start}}
	if modifiers != nil {
		decl.Span.Start = modifiers.Span.Start
		if len(modifiers.Children) > 0 {
			decl.AddChild(modifiers)
		}
	}
	decl.AddChild(typ)
	if id := p.parseVariableDeclaratorId(); id != nil {
		decl.AddChild(id)
	}
	if p.expect(TokenAssign) != nil {
		decl.AddChild(p.parseVarInitializer())
	}
	return p.finishNode(decl)
}

func (p *Parser) parseCatchClause() *Node {
	node := p.startNode(KindCatchClause)
	p.expect(TokenCatch)
	p.expect(TokenLParen)

	param := p.startNode(KindParameter)
	if modifiers := p.parseModifiers(); len(modifiers.Children) > 0 {
		param.AddChild(modifiers)
	}

	// Multi-catch: T1 | T2 | T3
	typ := p.parseType()
	if p.check(TokenBitOr) {
		union := &Node{Kind: KindIntersectionType, Span: Span{Start: typ.Span.Start}}
		union.AddChild(typ)
		for p.check(TokenBitOr) {
			p.advance()
			union.AddChild(p.parseType())
		}
		typ = p.finishNode(union)
	}
	param.AddChild(typ)

	if id := p.parseVariableDeclaratorId(); id != nil {
		param.AddChild(id)
	}
	node.AddChild(p.finishNode(param))

	p.expect(TokenRParen)
	node.AddChild(p.parseBlock())
	return p.finishNode(node)
}

func (p *Parser) parseFinallyClause() *Node {
	node := p.startNode(KindFinallyClause)
	p.expect(TokenFinally)
	node.AddChild(p.parseBlock())
	return p.finishNode(node)
}

func (p *Parser) parseSynchronizedStmt() *Node {
	node := p.startNode(KindSynchronizedStmt)
	p.expect(TokenSynchronized)
	p.expect(TokenLParen)
	lock, _ := p.term(modeExpr)
	node.AddChild(lock)
	p.expect(TokenRParen)
	node.AddChild(p.parseBlock())
	return p.finishNode(node)
}

func (p *Parser) parseAssertStmt() *Node {
	node := p.startNode(KindAssertStmt)
	p.expect(TokenAssert)
	cond, _ := p.term(modeExpr)
	node.AddChild(cond)
	if p.check(TokenColon) {
		p.advance()
		msg, _ := p.term(modeExpr)
		node.AddChild(msg)
	}
	p.expect(TokenSemicolon)
	return p.finishNode(node)
}

// yieldStatementAhead decides whether a leading "yield" is the
// statement keyword or a plain identifier, by whether the next token
// can begin an expression operand.
func (p *Parser) yieldStatementAhead() bool {
	next := p.peekN(1)
	switch next.Kind {
	case TokenPlus, TokenMinus, TokenNot, TokenBitNot,
		TokenIncrement, TokenDecrement,
		TokenLParen, TokenThis, TokenSuper, TokenNew, TokenSwitch,
		TokenIntLiteral, TokenLongLiteral, TokenFloatLiteral,
		TokenCharLiteral, TokenStringLiteral, TokenTextBlock,
		TokenTrue, TokenFalse, TokenNull,
		TokenByte, TokenShort, TokenChar, TokenInt,
		TokenLong, TokenFloat, TokenDouble, TokenBoolean, TokenVoid:
		return true
	}
	return isLaxIdentifier(next.Kind)
}

func (p *Parser) parseYieldStmt() *Node {
	node := p.startNode(KindYieldStmt)
	p.expect(TokenYield)
	expr, _ := p.term(modeExpr)
	node.AddChild(expr)
	if p.expect(TokenSemicolon) == nil {
		p.skip(false, false, false, true)
	}
	return p.finishNode(node)
}

func (p *Parser) parseLabeledStmt() *Node {
	node := p.startNode(KindLabeledStmt)
	tok := p.advance()
	node.AddChild(p.identNode(tok))
	p.expect(TokenColon)
	node.AddChild(p.parseStatement())
	return p.finishNode(node)
}
