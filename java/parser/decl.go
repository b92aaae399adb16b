package parser

func (p *Parser) parseTypeDecl() *Node {
	docAnchor := p.stream.pos()
	modifiers := p.parseModifiers()

	var node *Node
	switch p.peek().Kind {
	case TokenClass:
		node = p.parseClassDecl(modifiers)
	case TokenInterface:
		node = p.parseInterfaceDecl(modifiers)
	case TokenEnum:
		node = p.parseEnumDecl(modifiers)
	case TokenRecord:
		node = p.parseRecordDecl(modifiers)
	case TokenAt:
		if p.peekN(1).Kind == TokenInterface {
			node = p.parseAnnotationDecl(modifiers)
		}
	}
	if node != nil {
		p.attachDocCommentAt(node, docAnchor)
		return node
	}

	if modifiers != nil && len(modifiers.Children) > 0 {
		return p.errorNodeSkip("expected class, interface, enum, record, or @interface",
			stopSet{memberDecl: true},
			TokenClass, TokenInterface, TokenEnum, TokenRecord)
	}
	return p.errorNodeSkip("expected type declaration",
		stopSet{memberDecl: true},
		TokenClass, TokenInterface, TokenEnum, TokenRecord)
}

// attachDocCommentAt attaches the doc comment that preceded the token
// at stream position anchor, which may be earlier than the current
// token when modifiers were consumed before the node was started.
func (p *Parser) attachDocCommentAt(n *Node, anchor int) {
	trivia := p.stream.commentsBefore(anchor)
	var docs []Token
	for _, t := range trivia {
		if t.Kind == TokenDocComment {
			docs = append(docs, t)
		}
	}
	if len(docs) == 0 {
		return
	}
	primary := docs[len(docs)-1]
	dangling := docs[:len(docs)-1]
	p.comments.attach(n, primary, dangling)
	for _, d := range dangling {
		p.diags.warningAt(d.Span, "dangling documentation comment")
	}
}

func (p *Parser) parseModifiers() *Node {
	node := p.startNode(KindModifiers)

	for {
		switch p.peek().Kind {
		case TokenAt:
			if p.peekN(1).Kind == TokenInterface {
				return p.finishNode(node)
			}
			node.AddChild(p.parseAnnotation())
		case TokenPublic, TokenProtected, TokenPrivate,
			TokenAbstract, TokenStatic, TokenFinal,
			TokenStrictfp, TokenNative, TokenSynchronized,
			TokenTransient, TokenVolatile, TokenDefault,
			TokenSealed, TokenNonSealed:
			tok := p.advance()
			node.AddChild(p.identNode(tok))
		default:
			return p.finishNode(node)
		}
	}
}

func hasModifier(modifiers *Node, kind TokenKind) bool {
	if modifiers == nil {
		return false
	}
	for _, child := range modifiers.Children {
		if child.Token != nil && child.Token.Kind == kind {
			return true
		}
	}
	return false
}

func (p *Parser) parseAnnotation() *Node {
	node := p.startNode(KindAnnotation)
	p.expect(TokenAt)
	node.AddChild(p.parseQualifiedName())

	if p.check(TokenLParen) {
		p.advance()
		if !p.check(TokenRParen) {
			if p.isIdentifierLike() && p.peekN(1).Kind == TokenAssign {
				for {
					progress := p.mustProgress()
					node.AddChild(p.parseAnnotationElement())
					if !p.check(TokenComma) {
						break
					}
					p.advance()
					if !progress() {
						break
					}
				}
			} else {
				node.AddChild(p.parseAnnotationValue())
			}
		}
		p.expect(TokenRParen)
	}

	return p.finishNode(node)
}

func (p *Parser) parseAnnotationElement() *Node {
	node := p.startNode(KindAnnotationElement)
	if tok := p.expectIdentifier(); tok != nil {
		node.AddChild(p.identNode(*tok))
	}
	p.expect(TokenAssign)
	node.AddChild(p.parseAnnotationValue())
	return p.finishNode(node)
}

func (p *Parser) parseAnnotationValue() *Node {
	if p.check(TokenAt) {
		return p.parseAnnotation()
	}
	if p.check(TokenLBrace) {
		node := p.startNode(KindArrayInit)
		p.advance()
		for !p.check(TokenRBrace) && !p.check(TokenEOF) {
			progress := p.mustProgress()
			node.AddChild(p.parseAnnotationValue())
			if !p.check(TokenComma) {
				break
			}
			p.advance()
			if !progress() {
				break
			}
		}
		p.expect(TokenRBrace)
		return p.finishNode(node)
	}
	expr, _ := p.term(modeExpr)
	return expr
}

// parseSuperTypeList parses a comma-separated list of types as used in
// implements, permits, and interface extends clauses.
func (p *Parser) parseSuperTypeList(kind NodeKind) *Node {
	node := p.startNode(kind)
	p.advance() // the clause keyword, checked by the caller
	for {
		progress := p.mustProgress()
		node.AddChild(p.parseType())
		if !p.check(TokenComma) {
			break
		}
		p.advance()
		if !progress() {
			break
		}
	}
	return p.finishNode(node)
}

// checkPermits reports the structural error for a permits clause on a
// declaration that is not sealed. The clause is still parsed and kept.
func (p *Parser) checkPermits(modifiers *Node) {
	if !hasModifier(modifiers, TokenSealed) {
		p.diags.errorAt(p.peek().Span, "permits clause on a declaration without a sealed modifier")
	}
}

func (p *Parser) parseClassDecl(modifiers *Node) *Node {
	node := p.startNode(KindClassDecl)
	if modifiers != nil && len(modifiers.Children) > 0 {
		node.Span.Start = modifiers.Span.Start
		node.AddChild(modifiers)
	}

	p.expect(TokenClass)

	name := ""
	if tok := p.expectIdentifier(); tok != nil {
		name = tok.Literal
		node.AddChild(p.identNode(*tok))
	}

	if p.check(TokenLT) {
		node.AddChild(p.parseTypeParameters())
	}

	if p.check(TokenExtends) {
		extends := p.startNode(KindExtendsClause)
		p.advance()
		extends.AddChild(p.parseType())
		node.AddChild(p.finishNode(extends))
	}

	if p.check(TokenImplements) {
		node.AddChild(p.parseSuperTypeList(KindImplementsClause))
	}

	if p.check(TokenPermits) {
		p.checkPermits(modifiers)
		node.AddChild(p.parseSuperTypeList(KindPermitsClause))
	}

	node.AddChild(p.parseClassBody(name, nil))
	return p.finishNode(node)
}

func (p *Parser) parseInterfaceDecl(modifiers *Node) *Node {
	node := p.startNode(KindInterfaceDecl)
	if modifiers != nil && len(modifiers.Children) > 0 {
		node.Span.Start = modifiers.Span.Start
		node.AddChild(modifiers)
	}

	p.expect(TokenInterface)

	name := ""
	if tok := p.expectIdentifier(); tok != nil {
		name = tok.Literal
		node.AddChild(p.identNode(*tok))
	}

	if p.check(TokenLT) {
		node.AddChild(p.parseTypeParameters())
	}

	if p.check(TokenExtends) {
		node.AddChild(p.parseSuperTypeList(KindExtendsClause))
	}

	if p.check(TokenPermits) {
		p.checkPermits(modifiers)
		node.AddChild(p.parseSuperTypeList(KindPermitsClause))
	}

	node.AddChild(p.parseClassBody(name, nil))
	return p.finishNode(node)
}

func (p *Parser) parseEnumDecl(modifiers *Node) *Node {
	node := p.startNode(KindEnumDecl)
	if modifiers != nil && len(modifiers.Children) > 0 {
		node.Span.Start = modifiers.Span.Start
		node.AddChild(modifiers)
	}

	p.expect(TokenEnum)

	name := ""
	if tok := p.expectIdentifier(); tok != nil {
		name = tok.Literal
		node.AddChild(p.identNode(*tok))
	}

	if p.check(TokenImplements) {
		node.AddChild(p.parseSuperTypeList(KindImplementsClause))
	}

	p.expect(TokenLBrace)

	// Enumerators come first. Before the separating semicolon an
	// identifier is an enumerator even when it is followed by "(" or
	// "{"; only something that cannot open an enumerator ends the run.
	for !p.check(TokenRBrace) && !p.check(TokenEOF) && !p.check(TokenSemicolon) {
		if !p.looksLikeEnumerator() {
			break
		}
		progress := p.mustProgress()
		node.AddChild(p.parseEnumConstant(name))
		if p.check(TokenComma) {
			p.advance()
		} else if !p.check(TokenSemicolon) && !p.check(TokenRBrace) {
			p.syntaxError("expected , or ; in enum body", TokenComma, TokenSemicolon)
			p.skip(false, true, false, false)
		}
		if !progress() {
			break
		}
	}

	if p.check(TokenSemicolon) {
		p.advance()
	}
	for !p.check(TokenRBrace) && !p.check(TokenEOF) {
		progress := p.mustProgress()
		node.AddChild(p.parseClassMember(name, nil))
		progress()
	}

	p.expect(TokenRBrace)
	return p.finishNode(node)
}

// looksLikeEnumerator classifies the next construct in an enum body
// before the member separator: annotations followed by an identifier
// that is immediately followed by "(", "{", ",", ";", or "}".
func (p *Parser) looksLikeEnumerator() bool {
	fork := p.fork()
	for fork.check(TokenAt) && fork.peekN(1).Kind != TokenInterface {
		fork.parseAnnotation()
	}
	ok := false
	if isLaxIdentifier(fork.peek().Kind) {
		switch fork.peekN(1).Kind {
		case TokenLParen, TokenLBrace, TokenComma, TokenSemicolon, TokenRBrace:
			ok = true
		}
	}
	fork.discard()
	return ok
}

func (p *Parser) parseEnumConstant(enumName string) *Node {
	docAnchor := p.stream.pos()
	node := p.startNode(KindEnumConstant)

	for p.check(TokenAt) {
		node.AddChild(p.parseAnnotation())
	}

	p.attachDocCommentAt(node, docAnchor)

	if tok := p.expectIdentifier(); tok != nil {
		node.AddChild(p.identNode(*tok))
	}

	if p.check(TokenLParen) {
		node.AddChild(p.parseArguments())
	}

	if p.check(TokenLBrace) {
		node.AddChild(p.parseClassBody(enumName, nil))
	}

	return p.finishNode(node)
}

func (p *Parser) parseRecordDecl(modifiers *Node) *Node {
	node := p.startNode(KindRecordDecl)
	if modifiers != nil && len(modifiers.Children) > 0 {
		node.Span.Start = modifiers.Span.Start
		node.AddChild(modifiers)
	}

	p.expect(TokenRecord)

	name := ""
	if tok := p.expectIdentifier(); tok != nil {
		name = tok.Literal
		node.AddChild(p.identNode(*tok))
	}

	if p.check(TokenLT) {
		node.AddChild(p.parseTypeParameters())
	}

	header := p.parseParameters()
	node.AddChild(header)

	if p.check(TokenImplements) {
		node.AddChild(p.parseSuperTypeList(KindImplementsClause))
	}

	node.AddChild(p.parseClassBody(name, header))
	return p.finishNode(node)
}

func (p *Parser) parseAnnotationDecl(modifiers *Node) *Node {
	node := p.startNode(KindAnnotationDecl)
	if modifiers != nil && len(modifiers.Children) > 0 {
		node.Span.Start = modifiers.Span.Start
		node.AddChild(modifiers)
	}

	p.expect(TokenAt)
	p.expect(TokenInterface)

	name := ""
	if tok := p.expectIdentifier(); tok != nil {
		name = tok.Literal
		node.AddChild(p.identNode(*tok))
	}

	node.AddChild(p.parseClassBody(name, nil))
	return p.finishNode(node)
}

func (p *Parser) parseTypeParameters() *Node {
	node := p.startNode(KindTypeParameters)
	p.expect(TokenLT)

	for {
		progress := p.mustProgress()
		node.AddChild(p.parseTypeParameter())
		if !p.check(TokenComma) {
			break
		}
		p.advance()
		if !progress() {
			break
		}
	}

	p.expectGT()
	return p.finishNode(node)
}

func (p *Parser) parseTypeParameter() *Node {
	node := p.startNode(KindTypeParameter)

	for p.check(TokenAt) {
		node.AddChild(p.parseAnnotation())
	}

	if tok := p.expectIdentifier(); tok != nil {
		node.AddChild(p.identNode(*tok))
	}

	if p.check(TokenExtends) {
		p.advance()
		bound := p.startNode(KindIntersectionType)
		for {
			bound.AddChild(p.parseType())
			if !p.check(TokenBitAnd) {
				break
			}
			p.advance()
		}
		p.finishNode(bound)
		if len(bound.Children) == 1 {
			node.AddChild(bound.Children[0])
		} else {
			node.AddChild(bound)
		}
	}

	return p.finishNode(node)
}

func (p *Parser) parseType() *Node {
	return p.parseTypeIn(modeType)
}

// parseTypeIn parses a type under the given mode: modeTypeArg admits a
// wildcard, modeDiamond admits the empty argument list on the type's
// own arguments. Creator expressions pass modeDiamond; type-argument
// lists pass modeTypeArg to their elements.
func (p *Parser) parseTypeIn(m mode) *Node {
	if m.has(modeTypeArg) {
		if p.check(TokenQuestion) {
			return p.parseWildcard()
		}
		if p.check(TokenAt) && p.peekN(1).Kind != TokenInterface && p.annotatedWildcardAhead() {
			return p.parseWildcard()
		}
	}

	listMode := modeType
	if m.has(modeDiamond) {
		listMode |= modeDiamond
	}

	node := p.startNode(KindType)

	for p.check(TokenAt) {
		node.AddChild(p.parseAnnotation())
	}

	switch p.peek().Kind {
	case TokenBoolean, TokenByte, TokenChar, TokenShort,
		TokenInt, TokenLong, TokenFloat, TokenDouble, TokenVoid, TokenVar:
		tok := p.advance()
		node.AddChild(p.identNode(tok))
	default:
		if !p.isIdentifierLike() {
			return p.errorNode("expected type", TokenIdent)
		}
		node.AddChild(p.parseQualifiedName())
		if p.check(TokenLT) {
			node.Kind = KindParameterizedType
			node.AddChild(p.parseTypeArgumentList(listMode))
		}
		// Parameterized inner class types: Outer<T>.Inner or Outer<T>.Inner<U>
		for p.check(TokenDot) && isLaxIdentifier(p.peekN(1).Kind) {
			p.advance()
			node.AddChild(p.parseQualifiedName())
			if p.check(TokenLT) {
				node.Kind = KindParameterizedType
				node.AddChild(p.parseTypeArgumentList(listMode))
			}
		}
	}

	for p.check(TokenAt) || p.check(TokenLBracket) {
		progress := p.mustProgress()
		wrapper := p.startNode(KindArrayType)
		for p.check(TokenAt) {
			wrapper.AddChild(p.parseAnnotation())
		}
		if !p.check(TokenLBracket) {
			break
		}
		p.advance()
		p.expect(TokenRBracket)
		wrapper.AddChild(node)
		node = p.finishNode(wrapper)
		if !progress() {
			break
		}
	}

	return p.finishNode(node)
}

// parseTypeArguments parses explicit type arguments on a method call,
// method reference, or constructor invocation, where wildcards and the
// diamond form are not legal.
func (p *Parser) parseTypeArguments() *Node {
	return p.parseTypeArgumentList(modeExpr)
}

// parseTypeArgumentList parses "<" TypeArgument {"," TypeArgument} ">".
// The diamond form "<>" is legal only under modeDiamond, which creator
// expressions set; wildcard elements are legal except under modeExpr.
func (p *Parser) parseTypeArgumentList(m mode) *Node {
	node := p.startNode(KindTypeArguments)
	p.expect(TokenLT)

	if p.check(TokenGT) {
		if !m.has(modeDiamond) {
			p.syntaxError("empty type arguments are only legal with new", TokenIdent)
		}
		p.advance()
		return p.finishNode(node)
	}

	elem := modeType | modeTypeArg
	if m.has(modeExpr) {
		elem = modeType
	}
	for {
		progress := p.mustProgress()
		node.AddChild(p.parseTypeIn(elem))
		if !p.check(TokenComma) {
			break
		}
		p.advance()
		if !progress() {
			break
		}
	}

	p.expectGT()
	return p.finishNode(node)
}

// expectGT closes a type-argument or type-parameter list. Composite
// tokens beginning with ">" are split in place so that ">>" can close
// two nested lists while keeping the position of the remainder.
func (p *Parser) expectGT() bool {
	switch p.peek().Kind {
	case TokenGT:
		p.advance()
		return true
	case TokenShr, TokenUShr, TokenGE, TokenShrAssign, TokenUShrAssign:
		p.stream.splitGT()
		return true
	}
	p.syntaxError("expected >", TokenGT)
	return false
}

// annotatedWildcardAhead decides whether leading annotations apply to a
// wildcard or to the type itself.
func (p *Parser) annotatedWildcardAhead() bool {
	fork := p.fork()
	for fork.check(TokenAt) {
		fork.parseAnnotation()
	}
	isWildcard := fork.check(TokenQuestion)
	fork.discard()
	return isWildcard
}

func (p *Parser) parseWildcard() *Node {
	node := p.startNode(KindWildcard)

	for p.check(TokenAt) {
		node.AddChild(p.parseAnnotation())
	}

	p.expect(TokenQuestion)

	if p.check(TokenExtends) || p.check(TokenSuper) {
		tok := p.advance()
		node.AddChild(p.identNode(tok))
		node.AddChild(p.parseType())
	}

	return p.finishNode(node)
}

func (p *Parser) parseClassBody(className string, recordHeader *Node) *Node {
	node := p.startNode(KindBlock)
	p.expect(TokenLBrace)

	for !p.check(TokenRBrace) && !p.check(TokenEOF) {
		progress := p.mustProgress()
		node.AddChild(p.parseClassMember(className, recordHeader))
		progress()
	}

	p.expect(TokenRBrace)
	return p.finishNode(node)
}

func (p *Parser) parseClassMember(className string, recordHeader *Node) *Node {
	if p.check(TokenLBrace) {
		node := p.startNode(KindInitializerBlock)
		node.AddChild(p.parseBlock())
		return p.finishNode(node)
	}

	if p.check(TokenStatic) && p.peekN(1).Kind == TokenLBrace {
		node := p.startNode(KindInitializerBlock)
		tok := p.advance()
		node.AddChild(p.identNode(tok))
		node.AddChild(p.parseBlock())
		return p.finishNode(node)
	}

	if p.check(TokenSemicolon) {
		node := p.startNode(KindEmptyStmt)
		p.advance()
		return p.finishNode(node)
	}

	docAnchor := p.stream.pos()
	modifiers := p.parseModifiers()

	switch p.peek().Kind {
	case TokenClass:
		return p.docAttached(p.parseClassDecl(modifiers), docAnchor)
	case TokenInterface:
		return p.docAttached(p.parseInterfaceDecl(modifiers), docAnchor)
	case TokenEnum:
		return p.docAttached(p.parseEnumDecl(modifiers), docAnchor)
	case TokenAt:
		if p.peekN(1).Kind == TokenInterface {
			return p.docAttached(p.parseAnnotationDecl(modifiers), docAnchor)
		}
	case TokenRecord:
		if isLaxIdentifier(p.peekN(1).Kind) {
			return p.docAttached(p.parseRecordDecl(modifiers), docAnchor)
		}
	}

	if p.check(TokenLT) {
		typeParams := p.parseTypeParameters()
		return p.docAttached(p.parseMethodOrConstructor(modifiers, typeParams, className), docAnchor)
	}

	if p.isIdentifierLike() && p.peekN(1).Kind == TokenLParen && p.peek().Literal == className {
		return p.docAttached(p.parseConstructor(modifiers, nil), docAnchor)
	}

	// Compact constructor in a record body: modifiers Name { ... }
	if p.isIdentifierLike() && p.peekN(1).Kind == TokenLBrace && p.peek().Literal == className {
		return p.docAttached(p.parseCompactConstructor(modifiers, recordHeader), docAnchor)
	}

	typ := p.parseType()

	if p.isIdentifierLike() {
		if p.peekN(1).Kind == TokenLParen {
			return p.docAttached(p.parseMethod(modifiers, nil, typ), docAnchor)
		}
		return p.docAttached(p.parseField(modifiers, typ), docAnchor)
	}

	return p.errorNodeSkip("expected member declaration",
		stopSet{memberDecl: true},
		TokenClass, TokenInterface, TokenEnum, TokenRecord, TokenIdent)
}

func (p *Parser) docAttached(n *Node, anchor int) *Node {
	if n != nil && !n.IsError() {
		p.attachDocCommentAt(n, anchor)
	}
	return n
}

func (p *Parser) parseMethodOrConstructor(modifiers *Node, typeParams *Node, className string) *Node {
	if p.isIdentifierLike() && p.peekN(1).Kind == TokenLParen && p.peek().Literal == className {
		return p.parseConstructor(modifiers, typeParams)
	}

	typ := p.parseType()
	return p.parseMethod(modifiers, typeParams, typ)
}

func (p *Parser) parseConstructor(modifiers *Node, typeParams *Node) *Node {
	node := p.startNode(KindConstructorDecl)
	if typeParams != nil {
		node.Span.Start = typeParams.Span.Start
	}
	if modifiers != nil && len(modifiers.Children) > 0 {
		node.Span.Start = modifiers.Span.Start
		node.AddChild(modifiers)
	}
	if typeParams != nil {
		node.AddChild(typeParams)
	}

	if tok := p.expectIdentifier(); tok != nil {
		node.AddChild(p.identNode(*tok))
	}

	node.AddChild(p.parseParameters())

	if p.check(TokenThrows) {
		node.AddChild(p.parseThrowsList())
	}

	node.AddChild(p.parseConstructorBody())
	return p.finishNode(node)
}

// parseCompactConstructor parses a record compact constructor, which
// declares no parameter list of its own. The parameters are
// materialized from the record header so that consumers see the same
// shape as a canonical constructor; the synthesized node is marked
// Synthetic and spans the constructor's name.
func (p *Parser) parseCompactConstructor(modifiers *Node, recordHeader *Node) *Node {
	node := p.startNode(KindCompactConstructorDecl)
	if modifiers != nil && len(modifiers.Children) > 0 {
		node.Span.Start = modifiers.Span.Start
		node.AddChild(modifiers)
	}

	var nameSpan Span
	if tok := p.expectIdentifier(); tok != nil {
		nameSpan = tok.Span
		node.AddChild(p.identNode(*tok))
	}

	params := &Node{
		Kind:      KindParameters,
		Span:      nameSpan,
		Synthetic: true,
	}
	if recordHeader != nil {
		for _, component := range recordHeader.Children {
			params.Children = append(params.Children, component)
		}
	}
	node.AddChild(params)

	node.AddChild(p.parseBlock())
	return p.finishNode(node)
}

func (p *Parser) parseConstructorBody() *Node {
	node := p.startNode(KindBlock)
	p.expect(TokenLBrace)

	if p.isExplicitConstructorInvocation() {
		node.AddChild(p.parseExplicitConstructorInvocation())
	}

	p.parseBlockStatements(node)

	p.expect(TokenRBrace)
	return p.finishNode(node)
}

func (p *Parser) isExplicitConstructorInvocation() bool {
	fork := p.fork()
	if fork.check(TokenLT) {
		fork.skipTypeArguments()
	}
	unqualified := false
	if fork.check(TokenThis) || fork.check(TokenSuper) {
		fork.advance()
		unqualified = fork.check(TokenLParen)
	}
	fork.discard()
	if unqualified {
		return true
	}
	return p.isQualifiedSuperInvocation()
}

// isQualifiedSuperInvocation checks for outer.super(...),
// outer.<T>super(...), and (expr).super(...).
func (p *Parser) isQualifiedSuperInvocation() bool {
	fork := p.fork()
	defer fork.discard()

	if fork.isIdentifierLike() {
		for fork.isIdentifierLike() {
			fork.advance()
			if fork.check(TokenDot) {
				fork.advance()
			} else {
				return false
			}
			if fork.check(TokenLT) || fork.check(TokenSuper) {
				break
			}
		}
	} else if fork.check(TokenLParen) {
		fork.advance()
		depth := 1
		for depth > 0 && !fork.check(TokenEOF) {
			if fork.check(TokenLParen) {
				depth++
			} else if fork.check(TokenRParen) {
				depth--
			}
			fork.advance()
		}
		if !fork.check(TokenDot) {
			return false
		}
		fork.advance()
	} else {
		return false
	}

	if fork.check(TokenLT) {
		fork.skipTypeArguments()
	}

	if fork.check(TokenSuper) {
		fork.advance()
		return fork.check(TokenLParen)
	}
	return false
}

func (p *Parser) parseExplicitConstructorInvocation() *Node {
	node := p.startNode(KindExplicitConstructorInvocation)

	if !p.check(TokenLT) && !p.check(TokenThis) && !p.check(TokenSuper) {
		node.AddChild(p.parseQualifiedSuperQualifier())

		if p.check(TokenLT) {
			node.AddChild(p.parseTypeArguments())
		}

		if p.check(TokenSuper) {
			tok := p.advance()
			node.AddChild(&Node{Kind: KindSuper, Token: &tok, Span: tok.Span})
		}
	} else {
		if p.check(TokenLT) {
			node.AddChild(p.parseTypeArguments())
		}

		if p.check(TokenThis) {
			tok := p.advance()
			node.AddChild(&Node{Kind: KindThis, Token: &tok, Span: tok.Span})
		} else if p.check(TokenSuper) {
			tok := p.advance()
			node.AddChild(&Node{Kind: KindSuper, Token: &tok, Span: tok.Span})
		}
	}

	node.AddChild(p.parseArguments())
	p.expect(TokenSemicolon)

	return p.finishNode(node)
}

// parseQualifiedSuperQualifier parses the expression qualifying a
// .super(...) invocation, stopping before the dot that precedes super
// or its type arguments.
func (p *Parser) parseQualifiedSuperQualifier() *Node {
	if p.isIdentifierLike() {
		tok := p.advance()
		node := p.identNode(tok)

		for p.check(TokenDot) {
			next := p.peekN(1).Kind
			if next == TokenLT || next == TokenSuper {
				p.advance()
				return node
			}
			if !isLaxIdentifier(next) {
				return node
			}
			p.advance()
			qual := &Node{Kind: KindQualifiedName, Span: Span{Start: node.Span.Start}}
			qual.AddChild(node)
			identTok := p.advance()
			qual.AddChild(p.identNode(identTok))
			node = p.finishNode(qual)
		}
		return node
	}

	expr, _ := p.term(modeExpr)
	p.expect(TokenDot)
	return expr
}

func (p *Parser) parseMethod(modifiers *Node, typeParams *Node, returnType *Node) *Node {
	node := p.startNode(KindMethodDecl)
	if returnType != nil {
		node.Span.Start = returnType.Span.Start
	}
	if typeParams != nil {
		node.Span.Start = typeParams.Span.Start
	}
	if modifiers != nil && len(modifiers.Children) > 0 {
		node.Span.Start = modifiers.Span.Start
		node.AddChild(modifiers)
	}
	if typeParams != nil {
		node.AddChild(typeParams)
	}
	if returnType != nil {
		node.AddChild(returnType)
	}

	if tok := p.expectIdentifier(); tok != nil {
		node.AddChild(p.identNode(*tok))
	}

	node.AddChild(p.parseParameters())

	for p.check(TokenLBracket) {
		p.advance()
		p.expect(TokenRBracket)
	}

	if p.check(TokenThrows) {
		node.AddChild(p.parseThrowsList())
	}

	if p.check(TokenLBrace) {
		node.AddChild(p.parseBlock())
	} else if p.check(TokenDefault) {
		p.advance()
		node.AddChild(p.parseAnnotationValue())
		p.expect(TokenSemicolon)
	} else if p.expect(TokenSemicolon) == nil {
		p.skip(false, true, false, false)
	}

	return p.finishNode(node)
}

func (p *Parser) parseField(modifiers *Node, typ *Node) *Node {
	node := p.startNode(KindFieldDecl)
	if typ != nil {
		node.Span.Start = typ.Span.Start
	}
	if modifiers != nil && len(modifiers.Children) > 0 {
		node.Span.Start = modifiers.Span.Start
		node.AddChild(modifiers)
	}
	if typ != nil {
		node.AddChild(typ)
	}

	for {
		progress := p.mustProgress()
		if tok := p.expectIdentifier(); tok != nil {
			node.AddChild(p.identNode(*tok))
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

	if p.expect(TokenSemicolon) == nil {
		p.skip(false, true, false, false)
	}
	return p.finishNode(node)
}

func (p *Parser) parseVarInitializer() *Node {
	if p.check(TokenLBrace) {
		return p.parseArrayInitializer()
	}
	expr, _ := p.term(modeExpr)
	return expr
}

func (p *Parser) parseArrayInitializer() *Node {
	node := p.startNode(KindArrayInit)
	p.expect(TokenLBrace)

	for !p.check(TokenRBrace) && !p.check(TokenEOF) {
		progress := p.mustProgress()
		node.AddChild(p.parseVarInitializer())
		if !p.check(TokenComma) {
			break
		}
		p.advance()
		if p.check(TokenRBrace) {
			break
		}
		if !progress() {
			break
		}
	}

	p.expect(TokenRBrace)
	return p.finishNode(node)
}

func (p *Parser) parseParameters() *Node {
	node := p.startNode(KindParameters)
	p.expect(TokenLParen)

	if !p.check(TokenRParen) {
		if p.isReceiverParameter() {
			node.AddChild(p.parseReceiverParameter())
			if p.check(TokenComma) {
				p.advance()
			}
		}
		for !p.check(TokenRParen) && !p.check(TokenEOF) {
			progress := p.mustProgress()
			node.AddChild(p.parseParameter())
			if !p.check(TokenComma) {
				break
			}
			p.advance()
			if !progress() {
				break
			}
		}
	}

	p.expect(TokenRParen)
	return p.finishNode(node)
}

func (p *Parser) isReceiverParameter() bool {
	fork := p.fork()
	defer fork.discard()

	for fork.check(TokenAt) {
		fork.parseAnnotation()
	}

	switch {
	case isPrimitiveType(fork.peek().Kind):
		fork.advance()
	case fork.isIdentifierLike():
		fork.parseQualifiedName()
		if fork.check(TokenLT) {
			fork.skipTypeArguments()
		}
	default:
		return false
	}

	for fork.check(TokenLBracket) {
		fork.advance()
		if fork.check(TokenRBracket) {
			fork.advance()
		}
	}

	if fork.isIdentifierLike() {
		fork.advance()
		if fork.check(TokenDot) {
			fork.advance()
			return fork.check(TokenThis)
		}
		return false
	}
	return fork.check(TokenThis)
}

func (p *Parser) parseReceiverParameter() *Node {
	node := p.startNode(KindReceiverParameter)

	for p.check(TokenAt) {
		node.AddChild(p.parseAnnotation())
	}

	node.AddChild(p.parseType())

	if p.isIdentifierLike() {
		tok := p.advance()
		node.AddChild(p.identNode(tok))
		p.expect(TokenDot)
	}

	p.expect(TokenThis)
	return p.finishNode(node)
}

func (p *Parser) parseParameter() *Node {
	node := p.startNode(KindParameter)
	if modifiers := p.parseModifiers(); len(modifiers.Children) > 0 {
		node.AddChild(modifiers)
	}

	node.AddChild(p.parseType())

	if p.check(TokenEllipsis) {
		tok := p.advance()
		node.AddChild(p.identNode(tok))
	}

	if id := p.parseVariableDeclaratorId(); id != nil {
		node.AddChild(id)
	}

	for p.check(TokenLBracket) {
		p.advance()
		p.expect(TokenRBracket)
	}

	return p.finishNode(node)
}

func (p *Parser) parseThrowsList() *Node {
	node := p.startNode(KindThrowsList)
	p.expect(TokenThrows)

	for {
		progress := p.mustProgress()
		node.AddChild(p.parseType())
		if !p.check(TokenComma) {
			break
		}
		p.advance()
		if !progress() {
			break
		}
	}

	return p.finishNode(node)
}
