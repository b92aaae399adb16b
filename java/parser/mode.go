package parser

// mode selects which grammatical categories a term production may
// produce. It is threaded through the expression parser as an explicit
// parameter; productions return the mode they actually resolved to
// instead of mutating shared state.
type mode uint8

const (
	modeExpr mode = 1 << iota
	modeType
	// modeTypeArg marks parsing inside a type-argument list, where a
	// wildcard is a legal element.
	modeTypeArg
	// modeDiamond admits the empty type-argument list "<>", legal only
	// in creator expressions.
	modeDiamond
	// modeNoLambda suppresses lambda interpretation, used when the
	// parenthesized classifier must not commit to an implicit lambda.
	modeNoLambda
)

func (m mode) has(flag mode) bool { return m&flag != 0 }

func (m mode) String() string {
	s := ""
	add := func(name string) {
		if s != "" {
			s += "|"
		}
		s += name
	}
	if m.has(modeExpr) {
		add("EXPR")
	}
	if m.has(modeType) {
		add("TYPE")
	}
	if m.has(modeTypeArg) {
		add("TYPEARG")
	}
	if m.has(modeDiamond) {
		add("DIAMOND")
	}
	if m.has(modeNoLambda) {
		add("NOLAMBDA")
	}
	if s == "" {
		s = "NONE"
	}
	return s
}
