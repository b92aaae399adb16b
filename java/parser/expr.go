package parser

import "strings"

// Operator precedence levels. Assignment and the ternary operator live
// above this ladder and are handled by term and term1.
const (
	notAnOperator = -1
	orPrec        = 4
	andPrec       = 5
	bitOrPrec     = 6
	bitXorPrec    = 7
	bitAndPrec    = 8
	eqPrec        = 9
	ordPrec       = 10
	shiftPrec     = 11
	addPrec       = 12
	mulPrec       = 13
)

func opPrec(kind TokenKind) int {
	switch kind {
	case TokenOr:
		return orPrec
	case TokenAnd:
		return andPrec
	case TokenBitOr:
		return bitOrPrec
	case TokenBitXor:
		return bitXorPrec
	case TokenBitAnd:
		return bitAndPrec
	case TokenEQ, TokenNE:
		return eqPrec
	case TokenLT, TokenGT, TokenLE, TokenGE, TokenInstanceof:
		return ordPrec
	case TokenShl, TokenShr, TokenUShr:
		return shiftPrec
	case TokenPlus, TokenMinus:
		return addPrec
	case TokenStar, TokenSlash, TokenPercent:
		return mulPrec
	}
	return notAnOperator
}

func isAssignOp(kind TokenKind) bool {
	switch kind {
	case TokenAssign,
		TokenPlusAssign, TokenMinusAssign, TokenStarAssign,
		TokenSlashAssign, TokenPercentAssign,
		TokenAndAssign, TokenOrAssign, TokenXorAssign,
		TokenShlAssign, TokenShrAssign, TokenUShrAssign:
		return true
	}
	return false
}

// term parses an expression or a type, depending on which categories
// the mode admits, and returns the category the input actually
// resolved to. Assignment is right-associative and lowest.
func (p *Parser) term(m mode) (*Node, mode) {
	t, rm := p.term1(m)
	if rm.has(modeExpr) && isAssignOp(p.peek().Kind) {
		return p.termRest(t), modeExpr
	}
	return t, rm
}

func (p *Parser) termRest(t *Node) *Node {
	node := &Node{Kind: KindAssignExpr, Span: Span{Start: t.Span.Start}}
	op := p.advance()
	node.Token = &op
	node.AddChild(t)
	rhs, _ := p.term(modeExpr)
	node.AddChild(rhs)
	return p.finishNode(node)
}

// term1 parses the ternary level.
func (p *Parser) term1(m mode) (*Node, mode) {
	t, rm := p.term2(m)
	if rm.has(modeExpr) && p.check(TokenQuestion) {
		node := &Node{Kind: KindTernaryExpr, Span: Span{Start: t.Span.Start}}
		node.AddChild(t)
		p.advance()
		thenExpr, _ := p.term(modeExpr)
		node.AddChild(thenExpr)
		p.expect(TokenColon)
		elseExpr, _ := p.term1(modeExpr)
		node.AddChild(elseExpr)
		return p.finishNode(node), modeExpr
	}
	return t, rm
}

// term2 parses the binary operator ladder.
func (p *Parser) term2(m mode) (*Node, mode) {
	t, rm := p.term3(m)
	if rm.has(modeExpr) && opPrec(p.peek().Kind) >= orPrec {
		return p.term2Rest(t, orPrec), modeExpr
	}
	return t, rm
}

// term2Rest folds binary operators with explicit operand and operator
// stacks. The stacks are bounded by the number of precedence levels,
// not by input size. instanceof is handled inline because its right
// operand is a type or pattern, not an expression.
func (p *Parser) term2Rest(t *Node, minPrec int) *Node {
	var odStack [mulPrec - orPrec + 2]*Node
	var opStack [mulPrec - orPrec + 2]Token

	top := 0
	odStack[0] = t
	topOp := Token{Kind: TokenEOF}

	for opPrec(p.peek().Kind) >= minPrec {
		opStack[top] = topOp
		if p.check(TokenInstanceof) {
			odStack[top] = p.parseInstanceof(odStack[top])
		} else {
			topOp = p.advance()
			top++
			operand, _ := p.term3(modeExpr)
			odStack[top] = operand
		}
		for top > 0 && opPrec(topOp.Kind) >= opPrec(p.peek().Kind) {
			op := topOp
			left, right := odStack[top-1], odStack[top]
			bin := &Node{
				Kind:  KindBinaryExpr,
				Token: &op,
				Span:  Span{Start: left.Span.Start, End: right.Span.End},
			}
			bin.AddChild(left)
			bin.AddChild(right)
			p.endPos.storeEnd(bin, right.Span.End)
			odStack[top-1] = bin
			top--
			topOp = opStack[top]
		}
	}

	t = odStack[0]
	if t.Kind == KindBinaryExpr && t.Token != nil && t.Token.Kind == TokenPlus {
		t = p.foldStrings(t)
	}
	return t
}

// foldStrings merges every run of adjacent string literals joined by
// "+" into a single literal, wherever the run sits in the chain. The
// left-leaning "+" spine is flattened into its operands, literal runs
// collapse in source order, and the spine is rebuilt around the
// survivors; operands that are not plain string literals, and the
// operators joining them, keep their original nodes and spans.
func (p *Parser) foldStrings(t *Node) *Node {
	var operands []*Node
	var ops []Token
	flattenPlusChain(t, &operands, &ops)

	folded := []*Node{operands[0]}
	var foldedOps []Token
	changed := false
	for i, right := range operands[1:] {
		last := folded[len(folded)-1]
		if isStringLiteralNode(last) && isStringLiteralNode(right) {
			folded[len(folded)-1] = p.mergeStringLiterals(last, right)
			changed = true
			continue
		}
		foldedOps = append(foldedOps, ops[i])
		folded = append(folded, right)
	}
	if !changed {
		return t
	}

	res := folded[0]
	for i, right := range folded[1:] {
		op := foldedOps[i]
		bin := &Node{
			Kind:  KindBinaryExpr,
			Token: &op,
			Span:  Span{Start: res.Span.Start, End: right.Span.End},
		}
		bin.AddChild(res)
		bin.AddChild(right)
		p.endPos.storeEnd(bin, right.Span.End)
		res = bin
	}
	return res
}

// flattenPlusChain walks the left spine of a "+" chain, appending the
// operands in source order with the "+" tokens between them. Subtrees
// rooted at other operators are opaque operands.
func flattenPlusChain(t *Node, operands *[]*Node, ops *[]Token) {
	if t.Kind == KindBinaryExpr && t.Token != nil && t.Token.Kind == TokenPlus && len(t.Children) == 2 {
		flattenPlusChain(t.Children[0], operands, ops)
		*ops = append(*ops, *t.Token)
		*operands = append(*operands, t.Children[1])
		return
	}
	*operands = append(*operands, t)
}

func (p *Parser) mergeStringLiterals(left, right *Node) *Node {
	merged := &Token{
		Kind:    TokenStringLiteral,
		Literal: foldLiteralText(left.Token.Literal, right.Token.Literal),
		Span:    Span{Start: left.Span.Start, End: right.Span.End},
	}
	folded := &Node{
		Kind:      KindLiteral,
		Token:     merged,
		Span:      merged.Span,
		Synthetic: true,
	}
	p.endPos.storeEnd(folded, right.Span.End)
	return folded
}

func isStringLiteralNode(n *Node) bool {
	return n.Kind == KindLiteral && n.Token != nil && n.Token.Kind == TokenStringLiteral
}

func foldLiteralText(left, right string) string {
	return left[:len(left)-1] + strings.TrimPrefix(right, `"`)
}

// parseInstanceof consumes "instanceof" and its right operand, which
// the pattern classifier decides is a type or a pattern.
func (p *Parser) parseInstanceof(left *Node) *Node {
	node := &Node{Kind: KindInstanceofExpr, Span: Span{Start: left.Span.Start}}
	node.AddChild(left)
	p.expect(TokenInstanceof)

	if p.check(TokenFinal) || p.analyzePattern(0) == patternPattern {
		node.AddChild(p.parsePattern())
	} else {
		node.AddChild(p.parseType())
	}
	return p.finishNode(node)
}

// term3 parses the unary level: prefix operators, casts, lambdas,
// parenthesized expressions, and primaries with their suffix chains.
func (p *Parser) term3(m mode) (*Node, mode) {
	switch p.peek().Kind {
	case TokenPlus, TokenMinus, TokenNot, TokenBitNot, TokenIncrement, TokenDecrement:
		if m.has(modeExpr) {
			node := p.startNode(KindUnaryExpr)
			op := p.advance()
			node.Token = &op
			operand, _ := p.term3(modeExpr)
			node.AddChild(operand)
			return p.finishNode(node), modeExpr
		}
		return p.errorNode("expected type"), m

	case TokenLParen:
		if m.has(modeExpr) {
			switch p.analyzeParens(m) {
			case parensCast:
				return p.parseCastExpr(), modeExpr
			case parensExplicitLambda:
				return p.parseLambdaExpr(true), modeExpr
			case parensImplicitLambda:
				return p.parseLambdaExpr(false), modeExpr
			}
			node := p.startNode(KindParenExpr)
			p.advance()
			inner, _ := p.term(modeExpr)
			node.AddChild(inner)
			p.expect(TokenRParen)
			return p.parseSuffixes(p.finishNode(node), modeExpr)
		}
		return p.errorNode("expected type"), m
	}

	primary, rm := p.parsePrimary(m)
	return p.parseSuffixes(primary, rm)
}

func (p *Parser) parsePrimary(m mode) (*Node, mode) {
	tok := p.peek()
	switch tok.Kind {
	case TokenIntLiteral, TokenLongLiteral, TokenFloatLiteral,
		TokenCharLiteral, TokenStringLiteral, TokenTextBlock,
		TokenTrue, TokenFalse, TokenNull:
		p.validateNumericLiteral(tok)
		p.advance()
		node := &Node{Kind: KindLiteral, Token: &tok, Span: tok.Span}
		p.endPos.storeEnd(node, tok.Span.End)
		return node, modeExpr

	case TokenThis:
		p.advance()
		return &Node{Kind: KindThis, Token: &tok, Span: tok.Span}, modeExpr

	case TokenSuper:
		p.advance()
		return &Node{Kind: KindSuper, Token: &tok, Span: tok.Span}, modeExpr

	case TokenNew:
		return p.parseNewExpr(), modeExpr

	case TokenSwitch:
		if p.peekN(1).Kind == TokenLParen {
			return p.parseSwitchExpr(), modeExpr
		}

	case TokenBoolean, TokenByte, TokenChar, TokenShort,
		TokenInt, TokenLong, TokenFloat, TokenDouble, TokenVoid:
		p.advance()
		node := &Node{Kind: KindType, Token: &tok, Span: tok.Span}
		p.endPos.storeEnd(node, tok.Span.End)
		return node, modeType
	}

	if p.isIdentifierLike() {
		// Bare single-parameter lambda: x -> expr
		if m.has(modeExpr) && !m.has(modeNoLambda) && p.peekN(1).Kind == TokenArrow {
			return p.parseBareLambda(), modeExpr
		}

		if p.peekN(1).Kind == TokenLT {
			if !m.has(modeType) && p.isUnboundMemberRef() {
				// Ident<...> followed by :: or "." is parsed as a type
				// so the member-ref suffix can hang off the generic
				// prefix.
				return p.parseType(), m & (modeExpr | modeType)
			}
			if m.has(modeType) && p.genericTypeAhead() {
				return p.parseType(), m & (modeExpr | modeType)
			}
		}

		name := p.advance()
		node := p.identNode(name)
		p.endPos.storeEnd(node, name.Span.End)
		return node, m & (modeExpr | modeType)
	}

	return p.errorNode("expected expression"), m
}

// genericTypeAhead reports whether the "<" after the current identifier
// opens a syntactically well-formed type-argument list whose closing
// ">" is followed by something a type can precede. Used to commit the
// EXPR|TYPE dual parse to a type without consuming anything.
func (p *Parser) genericTypeAhead() bool {
	depth := 0
	for pos := 1; ; pos++ {
		tk := p.peekKind(pos)
		switch tk {
		case TokenQuestion, TokenExtends, TokenSuper,
			TokenDot, TokenComma,
			TokenByte, TokenShort, TokenInt, TokenLong, TokenFloat,
			TokenDouble, TokenBoolean, TokenChar:
			// type-ish

		case TokenLBracket:
			if p.peekKind(pos+1) != TokenRBracket {
				return false
			}
			pos++

		case TokenAt:
			pos = p.skipAnnotationLookahead(pos)

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
			if depth <= 0 {
				next := p.peekKind(pos + 1)
				return isLaxIdentifier(next) ||
					next == TokenDot || next == TokenColonColon || next == TokenLBracket
			}

		default:
			if !isLaxIdentifier(tk) {
				return false
			}
		}
	}
}

// parseSuffixes extends a primary with selector, call, index, method
// reference, and postfix operator suffixes, narrowing the mode as each
// suffix commits to expression or type.
func (p *Parser) parseSuffixes(expr *Node, rm mode) (*Node, mode) {
	for {
		switch p.peek().Kind {
		case TokenDot:
			next := p.peekN(1)
			switch {
			case next.Kind == TokenClass:
				node := &Node{Kind: KindClassLiteral, Span: Span{Start: expr.Span.Start}}
				p.advance()
				p.advance()
				node.AddChild(expr)
				expr = p.finishNode(node)
				rm = modeExpr

			case next.Kind == TokenThis || next.Kind == TokenSuper:
				node := &Node{Kind: KindFieldAccess, Span: Span{Start: expr.Span.Start}}
				p.advance()
				keyword := p.advance()
				node.AddChild(expr)
				kind := KindThis
				if keyword.Kind == TokenSuper {
					kind = KindSuper
				}
				node.AddChild(&Node{Kind: kind, Token: &keyword, Span: keyword.Span})
				expr = p.finishNode(node)
				rm = modeExpr

			case next.Kind == TokenNew:
				p.advance()
				expr = p.parseInnerNewExpr(expr)
				rm = modeExpr

			case next.Kind == TokenLT:
				// expr.<T>method(args)
				node := &Node{Kind: KindFieldAccess, Span: Span{Start: expr.Span.Start}}
				p.advance()
				node.AddChild(expr)
				node.AddChild(p.parseTypeArguments())
				if tok := p.expectIdentifier(); tok != nil {
					node.AddChild(p.identNode(*tok))
				}
				expr = p.finishNode(node)
				rm = modeExpr

			case isLaxIdentifier(next.Kind):
				node := &Node{Kind: KindFieldAccess, Span: Span{Start: expr.Span.Start}}
				p.advance()
				name := p.advance()
				node.AddChild(expr)
				node.AddChild(p.identNode(name))
				expr = p.finishNode(node)

			default:
				return expr, rm
			}

		case TokenLParen:
			if !rm.has(modeExpr) {
				return expr, rm
			}
			node := &Node{Kind: KindCallExpr, Span: Span{Start: expr.Span.Start}}
			node.AddChild(expr)
			node.AddChild(p.parseArguments())
			expr = p.finishNode(node)
			rm = modeExpr

		case TokenLBracket:
			if p.peekN(1).Kind == TokenRBracket {
				if !rm.has(modeType) {
					return expr, rm
				}
				wrapper := &Node{Kind: KindArrayType, Span: Span{Start: expr.Span.Start}}
				p.advance()
				p.expect(TokenRBracket)
				wrapper.AddChild(expr)
				expr = p.finishNode(wrapper)
				// still either: int[].class and String[]::new are
				// expressions, a declaration type is a type
			} else {
				if !rm.has(modeExpr) {
					return expr, rm
				}
				node := &Node{Kind: KindArrayAccess, Span: Span{Start: expr.Span.Start}}
				p.advance()
				node.AddChild(expr)
				index, _ := p.term(modeExpr)
				node.AddChild(index)
				p.expect(TokenRBracket)
				expr = p.finishNode(node)
				rm = modeExpr
			}

		case TokenColonColon:
			node := &Node{Kind: KindMethodRef, Span: Span{Start: expr.Span.Start}}
			p.advance()
			node.AddChild(expr)
			if p.check(TokenLT) {
				node.AddChild(p.parseTypeArguments())
			}
			if p.check(TokenNew) {
				tok := p.advance()
				node.AddChild(p.identNode(tok))
			} else if tok := p.expectIdentifier(); tok != nil {
				node.AddChild(p.identNode(*tok))
			}
			expr = p.finishNode(node)
			rm = modeExpr

		case TokenIncrement, TokenDecrement:
			if !rm.has(modeExpr) {
				return expr, rm
			}
			node := &Node{Kind: KindPostfixExpr, Span: Span{Start: expr.Span.Start}}
			op := p.advance()
			node.Token = &op
			node.AddChild(expr)
			expr = p.finishNode(node)
			rm = modeExpr

		default:
			return expr, rm
		}
	}
}

// validateNumericLiteral checks the digits of an integer literal
// against the radix its prefix announced.
func (p *Parser) validateNumericLiteral(tok Token) {
	if tok.Radix == 0 || tok.Radix == 16 {
		return
	}
	digits := tok.Literal
	if tok.Radix == 2 {
		digits = digits[2:]
	} else if tok.Radix == 8 {
		digits = digits[1:]
	}
	max := byte('0' + tok.Radix - 1)
	for i := 0; i < len(digits); i++ {
		ch := digits[i]
		if ch == '_' || ch == 'l' || ch == 'L' {
			continue
		}
		if ch < '0' || ch > max {
			p.diags.errorAt(tok.Span, "invalid digit in radix-"+itoa(tok.Radix)+" literal")
			return
		}
	}
}

func (p *Parser) parseCastExpr() *Node {
	node := p.startNode(KindCastExpr)
	p.expect(TokenLParen)

	typ := p.parseType()
	if p.check(TokenBitAnd) {
		intersection := &Node{Kind: KindIntersectionType, Span: Span{Start: typ.Span.Start}}
		intersection.AddChild(typ)
		for p.check(TokenBitAnd) {
			p.advance()
			intersection.AddChild(p.parseType())
		}
		typ = p.finishNode(intersection)
	}
	node.AddChild(typ)

	p.expect(TokenRParen)
	operand, _ := p.term3(modeExpr)
	node.AddChild(operand)
	return p.finishNode(node)
}

// parseBareLambda parses the unparenthesized single-parameter form.
func (p *Parser) parseBareLambda() *Node {
	node := p.startNode(KindLambdaExpr)
	params := p.startNode(KindParameters)

	param := p.startNode(KindParameter)
	tok := p.advance()
	param.AddChild(p.identNode(tok))
	params.AddChild(p.finishNode(param))

	node.AddChild(p.finishNode(params))
	p.expect(TokenArrow)
	node.AddChild(p.parseLambdaBody())
	return p.finishNode(node)
}

func (p *Parser) parseLambdaExpr(explicit bool) *Node {
	node := p.startNode(KindLambdaExpr)

	if explicit {
		params := p.parseParameters()
		p.classifyLambdaParameters(params)
		node.AddChild(params)
	} else {
		params := p.startNode(KindParameters)
		p.expect(TokenLParen)
		for !p.check(TokenRParen) && !p.check(TokenEOF) {
			progress := p.mustProgress()
			param := p.startNode(KindParameter)
			if tok := p.expectIdentifier(); tok != nil {
				param.AddChild(p.identNode(*tok))
			}
			params.AddChild(p.finishNode(param))
			if !p.check(TokenComma) {
				break
			}
			p.advance()
			if !progress() {
				break
			}
		}
		p.expect(TokenRParen)
		node.AddChild(p.finishNode(params))
	}

	p.expect(TokenArrow)
	node.AddChild(p.parseLambdaBody())
	return p.finishNode(node)
}

// classifyLambdaParameters enforces that an explicitly typed parameter
// list does not mix declared types, var, and bare names. The
// parenthesized-form classifier commits to an explicit lambda on two
// consecutive identifiers, so a mixed list like (x, int y) arrives
// here with x parsed as a type and no name.
func (p *Parser) classifyLambdaParameters(params *Node) {
	const (
		kindUnset = iota
		kindVar
		kindExplicit
		kindImplicit
	)
	seen := kindUnset
	for _, param := range params.Children {
		if param.Kind != KindParameter && param.Kind != KindReceiverParameter {
			continue
		}
		typ := param.FirstChildOfKind(KindType)
		k := kindExplicit
		switch {
		case typ != nil && typ.Token == nil && len(typ.Children) > 0 &&
			typ.Children[0].Token != nil && typ.Children[0].Token.Kind == TokenVar:
			k = kindVar
		case typ == nil || param.FirstChildOfKind(KindIdentifier) == nil:
			k = kindImplicit
		}
		if seen == kindUnset {
			seen = k
			continue
		}
		if seen != k {
			p.diags.errorAt(param.Span, "invalid lambda parameter declaration: cannot mix implicit, var, and explicitly typed parameters")
			return
		}
	}
}

func (p *Parser) parseLambdaBody() *Node {
	if p.check(TokenLBrace) {
		return p.parseBlock()
	}
	body, _ := p.term(modeExpr)
	return body
}

func (p *Parser) parseArguments() *Node {
	node := p.startNode(KindArguments)
	p.expect(TokenLParen)

	for !p.check(TokenRParen) && !p.check(TokenEOF) {
		progress := p.mustProgress()
		arg, _ := p.term(modeExpr)
		node.AddChild(arg)
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

func (p *Parser) parseNewExpr() *Node {
	node := p.startNode(KindNewExpr)
	p.expect(TokenNew)

	if p.check(TokenLT) {
		node.AddChild(p.parseTypeArguments())
	}

	typ := p.parseTypeIn(modeType | modeDiamond)
	node.AddChild(typ)

	switch p.peek().Kind {
	case TokenLParen:
		node.AddChild(p.parseArguments())
		if p.check(TokenLBrace) {
			node.AddChild(p.parseClassBody("", nil))
		}
		return p.finishNode(node)

	case TokenLBracket:
		node.Kind = KindNewArrayExpr
		return p.parseNewArrayRest(node)

	case TokenLBrace:
		// new int[]{...} arrives with the brackets already folded into
		// the type by parseType; the initializer follows directly.
		node.Kind = KindNewArrayExpr
		node.AddChild(p.parseArrayInitializer())
		return p.finishNode(node)
	}

	p.syntaxError("expected ( or [ after new", TokenLParen, TokenLBracket)
	return p.finishNode(node)
}

func (p *Parser) parseNewArrayRest(node *Node) *Node {
	sawEmpty := false
	for p.check(TokenLBracket) {
		p.advance()
		if p.check(TokenRBracket) {
			p.advance()
			sawEmpty = true
			continue
		}
		if sawEmpty {
			p.syntaxError("dimension expression after empty dimension")
		}
		dim, _ := p.term(modeExpr)
		node.AddChild(dim)
		p.expect(TokenRBracket)
	}

	if p.check(TokenLBrace) {
		node.AddChild(p.parseArrayInitializer())
	}
	return p.finishNode(node)
}

func (p *Parser) parseInnerNewExpr(outer *Node) *Node {
	node := &Node{Kind: KindNewExpr, Span: Span{Start: outer.Span.Start}}
	node.AddChild(outer)
	p.expect(TokenNew)

	if p.check(TokenLT) {
		node.AddChild(p.parseTypeArguments())
	}

	inner := p.startNode(KindType)
	if tok := p.expectIdentifier(); tok != nil {
		inner.AddChild(p.identNode(*tok))
	}
	if p.check(TokenLT) {
		inner.Kind = KindParameterizedType
		inner.AddChild(p.parseTypeArgumentList(modeType | modeDiamond))
	}
	node.AddChild(p.finishNode(inner))

	node.AddChild(p.parseArguments())
	if p.check(TokenLBrace) {
		node.AddChild(p.parseClassBody("", nil))
	}
	return p.finishNode(node)
}

func (p *Parser) parseSwitchExpr() *Node {
	node := p.startNode(KindSwitchExpr)
	p.expect(TokenSwitch)
	p.expect(TokenLParen)
	selector, _ := p.term(modeExpr)
	node.AddChild(selector)
	p.expect(TokenRParen)
	p.parseSwitchBlock(node)
	return p.finishNode(node)
}
