// Package parser provides a single-pass, error-tolerant parser for Java
// source code.
//
// # Overview
//
// The parser consumes a byte slice and produces a concrete syntax tree
// alongside a diagnostics list, an end-position table, and a
// documentation-comment table. It is designed for IDE-like tooling where
// incomplete or malformed input is common: parsing never returns an
// error and never panics on any input, however mangled.
//
// # Architecture
//
//	┌─────────────┐     ┌──────────────┐     ┌─────────────┐
//	│   Input     │────▶│ TokenStream  │────▶│   Parser    │
//	│  (bytes)    │     │ peek/advance │     │   (tree)    │
//	└─────────────┘     └──────────────┘     └─────────────┘
//	                           │                    │
//	                           ▼                    ▼
//	                    ┌──────────────┐     ┌─────────────┐
//	                    │ snapshot /   │     │ Diagnostics │
//	                    │ restore      │     │ + Tables    │
//	                    └──────────────┘     └─────────────┘
//
// # Disambiguation
//
// Java's grammar is not decidable with single-token lookahead. The
// parser classifies the hard spots ("(" opening a cast, a lambda, or a
// parenthesized expression; the operand after "instanceof" and inside
// "case" labels being a pattern or a constant expression; "Ident<"
// being a generic method reference or a comparison) with bounded
// forward scans over the token stream that consume nothing. Only classification
// looks ahead; parsing itself remains a single forward pass, except for
// a handful of speculative sub-parses that snapshot the stream and
// either keep or discard the attempt wholesale.
//
// # Error Recovery
//
// On a syntax error the parser reports a diagnostic, wraps the
// offending region in an Error node, and skips forward to a token that
// can start the next construct of the enclosing production (next
// member, next statement, closing brace). Recovery always terminates:
// every recovery step either consumes a token or returns to a strictly
// enclosing production, and a loop guard turns any violation of that
// invariant into a panic identifying an internal defect.
//
// # Entry Points
//
//	// ParseCompilationUnit parses a complete .java source file:
//	// ordinary, compact (top-level members without a type declaration),
//	// or modular (module-info).
//	func ParseCompilationUnit(r io.Reader, opts ...Option) *Parser
//
//	// ParseExpression parses a standalone expression.
//	func ParseExpression(r io.Reader, opts ...Option) *Parser
//
// Call Finish to run the parse, then Diagnostics, DocComments, and
// EndPositions for the side tables.
//
// # Thread Safety
//
// A Parser instance is not safe for concurrent use. Create separate
// instances for concurrent parsing of different files.
package parser

// attachDocComment records the documentation comment preceding the
// current token as the primary doc comment of n. When several doc
// comments pile up before one declaration only the last one counts;
// the earlier ones are dangling and are reported as warnings.
func (p *Parser) attachDocComment(n *Node) {
	trivia := p.stream.commentsBefore(p.stream.pos())
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
