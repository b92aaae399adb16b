package parser

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func parseExpr(t *testing.T, src string) (*Parser, *Node) {
	t.Helper()
	p := ParseExpression(strings.NewReader(src))
	node := p.Finish()
	if node == nil {
		t.Fatalf("Finish returned nil for %q", src)
	}
	return p, node
}

// The same "(...)" prefix must resolve to a cast, a lambda, or a
// parenthesized expression from bounded lookahead alone.
func TestParenDisambiguation(t *testing.T) {
	tests := []struct {
		input string
		kind  NodeKind
	}{
		{"(x) -> x", KindLambdaExpr},
		{"(x, y) -> x", KindLambdaExpr},
		{"() -> 0", KindLambdaExpr},
		{"(int x) -> x", KindLambdaExpr},
		{"(var x) -> x", KindLambdaExpr},
		{"(final int x) -> x", KindLambdaExpr},
		{"(int... xs) -> 0", KindLambdaExpr},
		{"(List<String> l) -> l", KindLambdaExpr},
		{"(Foo) bar", KindCastExpr},
		{"(Foo) (bar)", KindCastExpr},
		{"(int) x", KindCastExpr},
		{"(int[]) x", KindCastExpr},
		{"(Foo[]) x", KindCastExpr},
		{"(Foo<Bar>) x", KindCastExpr},
		{"(Foo & Cloneable) x", KindCastExpr},
		{"(int) -x", KindCastExpr},
		{"(x)", KindParenExpr},
		{"(x.y)", KindParenExpr},
		{"(x + y) * z", KindBinaryExpr},
		{"(x) + y", KindBinaryExpr},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			p, node := parseExpr(t, tt.input)
			if node.Kind != tt.kind {
				t.Errorf("got %v, want %v", node.Kind, tt.kind)
			}
			if p.diags.hasErrors() {
				t.Errorf("unexpected diagnostics: %v", p.Diagnostics())
			}
		})
	}
}

func TestCastOfParenthesizedOperand(t *testing.T) {
	_, node := parseExpr(t, "(Foo)(bar)")
	if node.Kind != KindCastExpr {
		t.Fatalf("got %v, want CastExpr", node.Kind)
	}
	if findKind(node, KindParenExpr) == nil {
		t.Error("cast operand should stay parenthesized")
	}
}

func TestLambdaParameterStyles(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr string
	}{
		{"all implicit", "(a, b) -> a", ""},
		{"all explicit", "(int a, int b) -> a", ""},
		{"all var", "(var a, var b) -> a", ""},
		{"mixed implicit and explicit", "(a, int b) -> a", "invalid lambda parameter declaration"},
		{"mixed var and explicit", "(var a, int b) -> a", "invalid lambda parameter declaration"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, node := parseExpr(t, tt.input)
			if node.Kind != KindLambdaExpr {
				t.Fatalf("got %v, want LambdaExpr", node.Kind)
			}
			if tt.wantErr == "" {
				if p.diags.hasErrors() {
					t.Errorf("unexpected diagnostics: %v", p.Diagnostics())
				}
				return
			}
			found := false
			for _, d := range p.Diagnostics() {
				if strings.Contains(d.Message, tt.wantErr) {
					found = true
				}
			}
			if !found {
				t.Errorf("missing %q diagnostic, got %v", tt.wantErr, p.Diagnostics())
			}
		})
	}
}

func TestPrecedence(t *testing.T) {
	// x + y * z parses as x + (y * z): the root's right child is the
	// multiplication.
	_, node := parseExpr(t, "x + y * z")
	if node.Kind != KindBinaryExpr {
		t.Fatalf("got %v, want BinaryExpr", node.Kind)
	}
	if node.Token == nil || node.Token.Kind != TokenPlus {
		t.Fatalf("root operator = %v, want +", node.Token)
	}
	right := node.Children[1]
	if right.Kind != KindBinaryExpr || right.Token.Kind != TokenStar {
		t.Errorf("right child = %v %v, want * BinaryExpr", right.Kind, right.Token)
	}
}

func TestLeftAssociativity(t *testing.T) {
	// a - b - c parses as (a - b) - c.
	_, node := parseExpr(t, "a - b - c")
	if node.Kind != KindBinaryExpr || node.Token.Kind != TokenMinus {
		t.Fatalf("root = %v, want -", node.Kind)
	}
	left := node.Children[0]
	if left.Kind != KindBinaryExpr || left.Token.Kind != TokenMinus {
		t.Errorf("left child = %v, want nested -", left.Kind)
	}
	if node.Children[1].Kind != KindIdentifier {
		t.Errorf("right child = %v, want Identifier", node.Children[1].Kind)
	}
}

func TestAssignmentRightAssociativity(t *testing.T) {
	// a = b = c parses as a = (b = c).
	_, node := parseExpr(t, "a = b = c")
	if node.Kind != KindAssignExpr {
		t.Fatalf("root = %v, want AssignExpr", node.Kind)
	}
	if node.Children[1].Kind != KindAssignExpr {
		t.Errorf("right child = %v, want AssignExpr", node.Children[1].Kind)
	}
}

func TestStringFolding(t *testing.T) {
	p, node := parseExpr(t, `"a" + "b" + "c"`)
	if node.Kind != KindLiteral {
		t.Fatalf("got %v, want folded Literal", node.Kind)
	}
	if !node.Synthetic {
		t.Error("folded literal should be marked synthetic")
	}
	if node.Token.Literal != `"abc"` {
		t.Errorf("folded literal = %q, want %q", node.Token.Literal, `"abc"`)
	}
	// The folded node spans from the first literal to the last.
	if node.Span.Start.Offset != 0 {
		t.Errorf("span starts at %d, want 0", node.Span.Start.Offset)
	}
	if node.Span.End.Offset != len(`"a" + "b" + "c"`) {
		t.Errorf("span ends at %d, want %d", node.Span.End.Offset, len(`"a" + "b" + "c"`))
	}
	if p.diags.hasErrors() {
		t.Errorf("unexpected diagnostics: %v", p.Diagnostics())
	}
}

func TestStringFoldingStopsAtNonLiteral(t *testing.T) {
	// "a" + x + "b": nothing to fold, the identifier breaks the chain.
	_, node := parseExpr(t, `"a" + x + "b"`)
	if node.Kind != KindBinaryExpr {
		t.Fatalf("got %v, want BinaryExpr", node.Kind)
	}
	if got := countKind(node, KindLiteral); got != 2 {
		t.Errorf("literals = %d, want 2", got)
	}
}

func TestStringFoldingRuns(t *testing.T) {
	// Every run of adjacent literals folds, wherever it sits in the
	// chain; non-literal operands survive between the folded runs.
	tests := []struct {
		name   string
		input  string
		folded []string
		idents int
	}{
		{"leading run", `"a" + "b" + x`, []string{`"ab"`}, 1},
		{"interior run", `x + "a" + "b" + y`, []string{`"ab"`}, 2},
		{"trailing run", `"a" + "b" + x + "c" + "d"`, []string{`"ab"`, `"cd"`}, 1},
		{"two runs", `"a" + "b" + x + y + "c" + "d"`, []string{`"ab"`, `"cd"`}, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, node := parseExpr(t, tt.input)
			if node.Kind != KindBinaryExpr {
				t.Fatalf("got %v, want BinaryExpr", node.Kind)
			}
			var folded []string
			for _, lit := range collectKind(node, KindLiteral) {
				if lit.Synthetic {
					folded = append(folded, lit.Token.Literal)
				}
			}
			if diff := cmp.Diff(tt.folded, folded); diff != "" {
				t.Errorf("folded literals mismatch (-want +got):\n%s", diff)
			}
			if got := countKind(node, KindIdentifier); got != tt.idents {
				t.Errorf("identifiers = %d, want %d", got, tt.idents)
			}
			if p.diags.hasErrors() {
				t.Errorf("unexpected diagnostics: %v", p.Diagnostics())
			}
		})
	}
}

func TestStringFoldingTrailingRunSpan(t *testing.T) {
	// The folded trailing run spans from its first literal to its last.
	src := `"a" + "b" + x + "c" + "d"`
	_, node := parseExpr(t, src)
	lits := collectKind(node, KindLiteral)
	var last *Node
	for _, lit := range lits {
		if lit.Synthetic {
			last = lit
		}
	}
	if last == nil || last.Token.Literal != `"cd"` {
		t.Fatalf("trailing run not folded: %v", lits)
	}
	if last.Span.Start.Offset != strings.Index(src, `"c"`) {
		t.Errorf("span starts at %d, want %d", last.Span.Start.Offset, strings.Index(src, `"c"`))
	}
	if last.Span.End.Offset != len(src) {
		t.Errorf("span ends at %d, want %d", last.Span.End.Offset, len(src))
	}
}

func TestInstanceofPatterns(t *testing.T) {
	tests := []struct {
		input   string
		pattern NodeKind
	}{
		{"x instanceof Foo", KindType},
		{"x instanceof Foo f", KindTypePattern},
		{"x instanceof final Foo f", KindTypePattern},
		{"x instanceof Point(int a, int b)", KindRecordPattern},
		{"x instanceof List<String> l", KindTypePattern},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			p, node := parseExpr(t, tt.input)
			if node.Kind != KindInstanceofExpr {
				t.Fatalf("got %v, want InstanceofExpr", node.Kind)
			}
			if findKind(node.Children[1], tt.pattern) == nil && node.Children[1].Kind != tt.pattern {
				t.Errorf("rhs = %v, want %v", node.Children[1].Kind, tt.pattern)
			}
			if p.diags.hasErrors() {
				t.Errorf("unexpected diagnostics: %v", p.Diagnostics())
			}
		})
	}
}

func TestMethodReferences(t *testing.T) {
	tests := []string{
		"obj::method",
		"Foo::new",
		"Foo::<String>method",
		"int[]::new",
		"List<String>::size",
		"super::toString",
	}

	for _, input := range tests {
		t.Run(input, func(t *testing.T) {
			p, node := parseExpr(t, input)
			if node.Kind != KindMethodRef {
				t.Errorf("got %v, want MethodRef", node.Kind)
			}
			if p.diags.hasErrors() {
				t.Errorf("unexpected diagnostics: %v", p.Diagnostics())
			}
		})
	}
}

func TestGenericCallDisambiguation(t *testing.T) {
	// a < b is a comparison even though it could open type arguments.
	_, node := parseExpr(t, "a < b")
	if node.Kind != KindBinaryExpr || node.Token.Kind != TokenLT {
		t.Errorf("got %v, want < BinaryExpr", node.Kind)
	}

	// (a < b) && (c > d) keeps both comparisons.
	_, node = parseExpr(t, "a < b && c > d")
	if node.Kind != KindBinaryExpr || node.Token.Kind != TokenAnd {
		t.Errorf("got %v %v, want && BinaryExpr", node.Kind, node.Token)
	}
}

func TestNewExpressions(t *testing.T) {
	tests := []struct {
		name  string
		input string
		kind  NodeKind
	}{
		{"simple", "new Foo()", KindNewExpr},
		{"generic", "new Foo<String>()", KindNewExpr},
		{"diamond", "new Foo<>()", KindNewExpr},
		{"anonymous class", "new Foo() { void f() {} }", KindNewExpr},
		{"array with dims", "new int[3][4]", KindNewArrayExpr},
		{"array with init", "new int[] {1, 2, 3}", KindNewArrayExpr},
		{"array partial dims", "new int[3][]", KindNewArrayExpr},
		{"inner new", "outer.new Inner()", KindNewExpr},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, node := parseExpr(t, tt.input)
			if findKind(node, tt.kind) == nil {
				t.Errorf("got %v, want %v somewhere in tree", node.Kind, tt.kind)
			}
			if p.diags.hasErrors() {
				t.Errorf("unexpected diagnostics: %v", p.Diagnostics())
			}
		})
	}
}

func TestNewArrayDimensionAfterEmpty(t *testing.T) {
	p, _ := parseExpr(t, "new int[][3]")
	found := false
	for _, d := range p.Diagnostics() {
		if strings.Contains(d.Message, "dimension") {
			found = true
		}
	}
	if !found {
		t.Errorf("missing dimension diagnostic, got %v", p.Diagnostics())
	}
}

func TestNumericLiteralValidation(t *testing.T) {
	tests := []struct {
		input   string
		wantErr bool
	}{
		{"0b1010", false},
		{"0b102", true},
		{"0777", false},
		{"0778", true},
		{"0x1F", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			p, _ := parseExpr(t, tt.input)
			if got := p.diags.hasErrors(); got != tt.wantErr {
				t.Errorf("hasErrors = %v, want %v (%v)", got, tt.wantErr, p.Diagnostics())
			}
		})
	}
}

func TestTernaryNesting(t *testing.T) {
	// a ? b : c ? d : e parses as a ? b : (c ? d : e).
	_, node := parseExpr(t, "a ? b : c ? d : e")
	if node.Kind != KindTernaryExpr {
		t.Fatalf("root = %v, want TernaryExpr", node.Kind)
	}
	if node.Children[2].Kind != KindTernaryExpr {
		t.Errorf("else branch = %v, want nested TernaryExpr", node.Children[2].Kind)
	}
}

func TestSwitchExpressionYield(t *testing.T) {
	p, node := parseExpr(t, `switch (x) {
		case 1 -> "one";
		case 2, 3 -> { yield "few"; }
		default -> "many";
	}`)
	if node.Kind != KindSwitchExpr {
		t.Fatalf("got %v, want SwitchExpr", node.Kind)
	}
	if got := countKind(node, KindSwitchCase); got != 3 {
		t.Errorf("cases = %d, want 3", got)
	}
	if findKind(node, KindYieldStmt) == nil {
		t.Error("no YieldStmt in tree")
	}
	if p.diags.hasErrors() {
		t.Errorf("unexpected diagnostics: %v", p.Diagnostics())
	}
}
