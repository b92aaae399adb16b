package parser

// speculation is a throwaway parser over the parent's token stream.
// It shares the cursor but writes diagnostics and table entries into
// scratch sinks. discard rewinds the stream and forgets everything;
// keep leaves the cursor where the speculative parse ended and merges
// the scratch sinks into the parent.
type speculation struct {
	*Parser
	parent *Parser
	cursor Cursor
}

func (p *Parser) fork() *speculation {
	forked := &Parser{
		file:               p.file,
		input:              p.input,
		stream:             p.stream,
		diags:              newDiagnostics(),
		endPos:             newEndPosTable(),
		comments:           newCommentTable(),
		speculative:        true,
		lastRecoveryOffset: -1,
	}
	return &speculation{
		Parser: forked,
		parent: p,
		cursor: p.stream.snapshot(),
	}
}

func (s *speculation) discard() {
	s.parent.stream.restore(s.cursor)
}

func (s *speculation) keep() {
	s.parent.diags.list = append(s.parent.diags.list, s.Parser.diags.list...)
	if s.Parser.diags.lastErrorOffset >= 0 {
		s.parent.diags.lastErrorOffset = s.Parser.diags.lastErrorOffset
	}
	s.parent.endPos.merge(s.Parser.endPos)
	s.parent.comments.merge(s.Parser.comments)
	if s.Parser.incomplete {
		s.parent.incomplete = true
	}
}
