package parser

// EndPosTable records the end position of finished nodes. Whenever an
// error is reported the table remembers the farthest position recovery
// reached; subsequent stores clamp to it so that an enclosing node can
// never end before the error region it contains.
type EndPosTable struct {
	ends     map[*Node]Position
	errorEnd Position
}

func newEndPosTable() *EndPosTable {
	return &EndPosTable{ends: make(map[*Node]Position)}
}

func (t *EndPosTable) storeEnd(n *Node, end Position) {
	if t.errorEnd.Offset > end.Offset {
		end = t.errorEnd
	}
	t.ends[n] = end
	n.Span.End = end
}

func (t *EndPosTable) End(n *Node) (Position, bool) {
	p, ok := t.ends[n]
	return p, ok
}

func (t *EndPosTable) setErrorEnd(p Position) {
	if p.Offset > t.errorEnd.Offset {
		t.errorEnd = p
	}
}

func (t *EndPosTable) merge(other *EndPosTable) {
	for n, p := range other.ends {
		t.ends[n] = p
	}
	t.setErrorEnd(other.errorEnd)
}

// CommentTable associates declarations with their documentation
// comments. Each node gets at most one primary comment (the doc comment
// nearest its first token); any earlier doc comments in the same run
// are dangling and are kept for reporting.
type CommentTable struct {
	primary  map[*Node]Token
	dangling map[*Node][]Token
}

func newCommentTable() *CommentTable {
	return &CommentTable{
		primary:  make(map[*Node]Token),
		dangling: make(map[*Node][]Token),
	}
}

func (t *CommentTable) attach(n *Node, primary Token, dangling []Token) {
	t.primary[n] = primary
	if len(dangling) > 0 {
		t.dangling[n] = dangling
	}
}

// DocComment returns the primary documentation comment for n, if any.
func (t *CommentTable) DocComment(n *Node) (Token, bool) {
	tok, ok := t.primary[n]
	return tok, ok
}

func (t *CommentTable) Dangling(n *Node) []Token {
	return t.dangling[n]
}

func (t *CommentTable) merge(other *CommentTable) {
	for n, tok := range other.primary {
		t.primary[n] = tok
	}
	for n, toks := range other.dangling {
		t.dangling[n] = toks
	}
}
