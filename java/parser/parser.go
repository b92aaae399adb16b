package parser

import "io"

type Option func(*Parser)

func WithFile(path string) Option {
	return func(p *Parser) {
		p.file = path
	}
}

func WithComments() Option {
	return func(p *Parser) {
		p.includeComments = true
	}
}

func WithPositions() Option {
	return func(p *Parser) {
		p.includePositions = true
	}
}

type parseFunc func(*Parser) *Node

// Parser is a single-use, error-tolerant recursive-descent parser.
// Finish always produces a tree; problems surface as Error nodes in the
// tree and as entries in Diagnostics, never as a Go error or a panic on
// any input.
type Parser struct {
	file             string
	includeComments  bool
	includePositions bool
	reader           io.Reader
	input            []byte
	stream           *TokenStream
	entry            parseFunc

	diags    *diagnostics
	endPos   *EndPosTable
	comments *CommentTable

	// speculative marks a forked parser whose results may be thrown
	// away; it reports into scratch sinks and never attaches comments.
	speculative bool

	lastRecoveryOffset int
	stuckRecoveries    int

	incomplete bool
}

func (p *Parser) IncludesPositions() bool {
	return p.includePositions
}

func ParseCompilationUnit(r io.Reader, opts ...Option) *Parser {
	p := &Parser{
		reader: r,
		entry:  (*Parser).parseCompilationUnit,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func ParseExpression(r io.Reader, opts ...Option) *Parser {
	p := &Parser{
		reader: r,
		entry:  (*Parser).parseStandaloneExpression,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func (p *Parser) readAll() error {
	if p.input != nil {
		return nil
	}
	data, err := io.ReadAll(p.reader)
	if err != nil {
		return err
	}
	p.input = data
	return nil
}

// Finish runs the parse and returns the tree. The tree is best-effort:
// on malformed input it contains Error nodes and the diagnostics list
// is non-empty, but it is never nil for non-empty input.
func (p *Parser) Finish() *Node {
	if err := p.readAll(); err != nil {
		return nil
	}
	if len(p.input) == 0 {
		return nil
	}
	p.stream = NewTokenStream(p.input, p.file)
	p.diags = newDiagnostics()
	p.endPos = newEndPosTable()
	p.comments = newCommentTable()
	p.lastRecoveryOffset = -1
	p.incomplete = false
	return p.entry(p)
}

// IsComplete reports whether the input parses to a complete node
// without hitting end of input mid-construct. "1 + " is incomplete.
func (p *Parser) IsComplete() bool {
	if err := p.readAll(); err != nil {
		return false
	}
	if len(p.input) == 0 {
		return false
	}
	trial := &Parser{
		file:  p.file,
		input: p.input,
		entry: p.entry,
	}
	trial.stream = NewTokenStream(trial.input, trial.file)
	trial.diags = newDiagnostics()
	trial.endPos = newEndPosTable()
	trial.comments = newCommentTable()
	trial.lastRecoveryOffset = -1
	trial.entry(trial)
	return !trial.incomplete
}

// Diagnostics returns everything reported during Finish, in source
// order. Valid only after Finish.
func (p *Parser) Diagnostics() []Diagnostic {
	if p.diags == nil {
		return nil
	}
	return p.diags.list
}

// DocComments returns the comment table populated during Finish.
func (p *Parser) DocComments() *CommentTable {
	return p.comments
}

// EndPositions returns the end-position table populated during Finish.
func (p *Parser) EndPositions() *EndPosTable {
	return p.endPos
}

// Tokens re-lexes the input and returns the significant token stream.
// Used by callers that want tokens without a tree.
func (p *Parser) Tokens() []Token {
	if err := p.readAll(); err != nil {
		return nil
	}
	return NewTokenStream(p.input, p.file).tokens
}

func (p *Parser) Reset(r io.Reader) {
	p.reader = r
	p.input = nil
	p.stream = nil
	p.diags = nil
	p.endPos = nil
	p.comments = nil
	p.incomplete = false
}

func (p *Parser) peek() Token {
	return p.stream.current()
}

func (p *Parser) peekN(n int) Token {
	return p.stream.peek(n)
}

func (p *Parser) advance() Token {
	return p.stream.advance()
}

func (p *Parser) check(kind TokenKind) bool {
	return p.peek().Kind == kind
}

func (p *Parser) match(kinds ...TokenKind) bool {
	for _, kind := range kinds {
		if p.check(kind) {
			return true
		}
	}
	return false
}

// expect consumes the current token when it has the wanted kind.
// Otherwise it reports a syntax error at the current position, does not
// consume anything, and returns nil.
func (p *Parser) expect(kind TokenKind) *Token {
	tok := p.peek()
	if tok.Kind == kind {
		p.advance()
		return &tok
	}
	p.syntaxError("expected "+kind.String(), kind)
	return nil
}

func (p *Parser) expectIdentifier() *Token {
	if p.isIdentifierLike() {
		tok := p.advance()
		return &tok
	}
	p.syntaxError("expected identifier", TokenIdent)
	return nil
}

func (p *Parser) isIdentifierLike() bool {
	return isLaxIdentifier(p.peek().Kind)
}

// mustProgress returns a function that checks if the parser has
// advanced. Call it at the start of a loop iteration, then call the
// returned function at the end: when no progress was made it consumes
// the stuck token (never EOF) and returns false. Statement-sequence
// loops ignore the result and try again from the next token; delimited
// list loops break instead, since their closer is already lost.
func (p *Parser) mustProgress() func() bool {
	saved := p.stream.pos()
	return func() bool {
		if p.stream.pos() == saved {
			if !p.check(TokenEOF) {
				p.advance()
			}
			return false
		}
		return true
	}
}

func (p *Parser) startNode(kind NodeKind) *Node {
	return &Node{
		Kind: kind,
		Span: Span{Start: p.peek().Span.Start},
	}
}

func (p *Parser) finishNode(n *Node) *Node {
	end := p.prevTokenEnd()
	p.endPos.storeEnd(n, end)
	return n
}

func (p *Parser) prevTokenEnd() Position {
	i := p.stream.pos()
	if i > 0 {
		return p.stream.tokens[i-1].Span.End
	}
	return p.stream.tokens[0].Span.Start
}

func (p *Parser) identNode(tok Token) *Node {
	return &Node{Kind: KindIdentifier, Token: &tok, Span: tok.Span}
}

func (p *Parser) parseCompilationUnit() *Node {
	node := p.startNode(KindCompilationUnit)

	if p.check(TokenPackage) || p.isAnnotatedPackage() {
		p.attachDocComment(node)
		node.AddChild(p.parsePackageDecl())
	}

	for p.check(TokenImport) {
		node.AddChild(p.parseImportDecl())
	}

	if p.isModularCompilationUnit() {
		node.AddChild(p.parseModuleDecl())
	} else if p.isCompactCompilationUnit() {
		for !p.check(TokenEOF) {
			progress := p.mustProgress()
			node.AddChild(p.parseClassMember("", nil))
			progress()
		}
	} else {
		for !p.check(TokenEOF) {
			if p.check(TokenSemicolon) {
				p.advance()
				continue
			}
			progress := p.mustProgress()
			node.AddChild(p.parseTypeDecl())
			progress()
		}
	}

	return p.finishNode(node)
}

func (p *Parser) parseStandaloneExpression() *Node {
	expr, _ := p.term(modeExpr)
	if !p.check(TokenEOF) {
		p.syntaxError("unexpected trailing input")
	}
	return expr
}

func (p *Parser) isAnnotatedPackage() bool {
	if !p.check(TokenAt) {
		return false
	}
	fork := p.fork()
	for fork.check(TokenAt) {
		fork.parseAnnotation()
	}
	isPackage := fork.check(TokenPackage)
	fork.discard()
	return isPackage
}

func (p *Parser) isModularCompilationUnit() bool {
	if p.check(TokenEOF) {
		return false
	}
	fork := p.fork()
	for fork.check(TokenAt) {
		fork.parseAnnotation()
	}
	if fork.check(TokenOpen) {
		fork.advance()
	}
	isModule := fork.check(TokenModule) && isLaxIdentifier(fork.peekN(1).Kind)
	fork.discard()
	return isModule
}

// isCompactCompilationUnit detects top-level members without an
// enclosing type declaration: anything at top level that is not a type
// declaration after modifiers and annotations.
func (p *Parser) isCompactCompilationUnit() bool {
	if p.check(TokenEOF) {
		return false
	}
	fork := p.fork()
	for fork.check(TokenAt) && fork.peekN(1).Kind != TokenInterface {
		fork.parseAnnotation()
	}
	for fork.match(TokenPublic, TokenProtected, TokenPrivate,
		TokenAbstract, TokenStatic, TokenFinal,
		TokenStrictfp, TokenNative, TokenSynchronized,
		TokenTransient, TokenVolatile, TokenDefault,
		TokenSealed, TokenNonSealed) {
		fork.advance()
	}

	isTypeDecl := false
	switch fork.peek().Kind {
	case TokenClass, TokenInterface, TokenEnum:
		isTypeDecl = true
	case TokenRecord:
		isTypeDecl = isLaxIdentifier(fork.peekN(1).Kind)
	case TokenAt:
		isTypeDecl = fork.peekN(1).Kind == TokenInterface
	}
	fork.discard()
	return !isTypeDecl
}

func (p *Parser) parsePackageDecl() *Node {
	node := p.startNode(KindPackageDecl)

	for p.check(TokenAt) {
		node.AddChild(p.parseAnnotation())
	}

	p.expect(TokenPackage)
	node.AddChild(p.parseQualifiedName())
	p.expect(TokenSemicolon)

	return p.finishNode(node)
}

func (p *Parser) parseImportDecl() *Node {
	node := p.startNode(KindImportDecl)
	p.expect(TokenImport)

	if p.check(TokenStatic) {
		tok := p.advance()
		node.AddChild(p.identNode(tok))
	}

	if p.check(TokenModule) && isLaxIdentifier(p.peekN(1).Kind) && p.peekN(1).Kind != TokenModule {
		node.Kind = KindModuleImportDecl
		p.advance()
		node.AddChild(p.parseQualifiedName())
		p.expect(TokenSemicolon)
		return p.finishNode(node)
	}

	name := p.startNode(KindQualifiedName)
	if tok := p.expectIdentifier(); tok != nil {
		name.AddChild(p.identNode(*tok))
	}
	for p.check(TokenDot) {
		p.advance()
		if p.check(TokenStar) {
			tok := p.advance()
			name.AddChild(p.identNode(tok))
			break
		}
		if tok := p.expectIdentifier(); tok != nil {
			name.AddChild(p.identNode(*tok))
		} else {
			break
		}
	}
	node.AddChild(p.finishNode(name))

	if p.expect(TokenSemicolon) == nil {
		p.skip(true, false, false, false)
	}
	return p.finishNode(node)
}

func (p *Parser) parseQualifiedName() *Node {
	node := p.startNode(KindQualifiedName)

	if tok := p.expectIdentifier(); tok != nil {
		node.AddChild(p.identNode(*tok))
	} else {
		return p.finishNode(node)
	}

	for p.check(TokenDot) && isLaxIdentifier(p.peekN(1).Kind) {
		p.advance()
		tok := p.advance()
		node.AddChild(p.identNode(tok))
	}

	return p.finishNode(node)
}

func (p *Parser) parseModuleDecl() *Node {
	node := p.startNode(KindModuleDecl)
	p.attachDocComment(node)

	for p.check(TokenAt) {
		node.AddChild(p.parseAnnotation())
	}

	if p.check(TokenOpen) {
		tok := p.advance()
		node.AddChild(p.identNode(tok))
	}

	p.expect(TokenModule)
	node.AddChild(p.parseQualifiedName())

	p.expect(TokenLBrace)
	for !p.check(TokenRBrace) && !p.check(TokenEOF) {
		progress := p.mustProgress()
		node.AddChild(p.parseModuleDirective())
		progress()
	}
	p.expect(TokenRBrace)

	return p.finishNode(node)
}

func (p *Parser) parseModuleDirective() *Node {
	switch {
	case p.check(TokenRequires):
		return p.parseRequiresDirective()
	case p.check(TokenExports):
		return p.parseExportsDirective()
	case p.check(TokenOpens):
		return p.parseOpensDirective()
	case p.check(TokenUses):
		return p.parseUsesDirective()
	case p.check(TokenProvides):
		return p.parseProvidesDirective()
	default:
		return p.errorNodeSkip("expected module directive", stopSet{statement: true},
			TokenRequires, TokenExports, TokenOpens, TokenUses, TokenProvides)
	}
}

func (p *Parser) parseRequiresDirective() *Node {
	node := p.startNode(KindRequiresDirective)
	p.expect(TokenRequires)

	for p.check(TokenTransitive) || p.check(TokenStatic) {
		// "requires transitive;" names a module called transitive.
		if p.check(TokenTransitive) && p.peekN(1).Kind == TokenSemicolon {
			break
		}
		tok := p.advance()
		node.AddChild(p.identNode(tok))
	}

	node.AddChild(p.parseQualifiedName())
	p.expect(TokenSemicolon)
	return p.finishNode(node)
}

func (p *Parser) parseExportsDirective() *Node {
	node := p.startNode(KindExportsDirective)
	p.expect(TokenExports)

	node.AddChild(p.parseQualifiedName())

	if p.check(TokenTo) {
		p.advance()
		node.AddChild(p.parseQualifiedName())
		for p.check(TokenComma) {
			p.advance()
			node.AddChild(p.parseQualifiedName())
		}
	}

	p.expect(TokenSemicolon)
	return p.finishNode(node)
}

func (p *Parser) parseOpensDirective() *Node {
	node := p.startNode(KindOpensDirective)
	p.expect(TokenOpens)

	node.AddChild(p.parseQualifiedName())

	if p.check(TokenTo) {
		p.advance()
		node.AddChild(p.parseQualifiedName())
		for p.check(TokenComma) {
			p.advance()
			node.AddChild(p.parseQualifiedName())
		}
	}

	p.expect(TokenSemicolon)
	return p.finishNode(node)
}

func (p *Parser) parseUsesDirective() *Node {
	node := p.startNode(KindUsesDirective)
	p.expect(TokenUses)
	node.AddChild(p.parseQualifiedName())
	p.expect(TokenSemicolon)
	return p.finishNode(node)
}

func (p *Parser) parseProvidesDirective() *Node {
	node := p.startNode(KindProvidesDirective)
	p.expect(TokenProvides)
	node.AddChild(p.parseQualifiedName())

	if p.expect(TokenWith) != nil {
		node.AddChild(p.parseQualifiedName())
		for p.check(TokenComma) {
			p.advance()
			node.AddChild(p.parseQualifiedName())
		}
	}

	p.expect(TokenSemicolon)
	return p.finishNode(node)
}
