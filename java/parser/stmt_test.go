package parser

import (
	"strings"
	"testing"
)

// parseBody wraps src in a method body, parses it, and returns the
// parser and the first statement.
func parseBody(t *testing.T, src string) (*Parser, *Node) {
	t.Helper()
	p, root := parseUnit(t, "class T { void m() { "+src+" } }")
	method := findKind(root, KindMethodDecl)
	if method == nil {
		t.Fatal("no MethodDecl in tree")
	}
	block := method.FirstChildOfKind(KindBlock)
	if block == nil || len(block.Children) == 0 {
		t.Fatal("method body is empty")
	}
	return p, block.Children[0]
}

func TestParseStatements(t *testing.T) {
	tests := []struct {
		input string
		kind  NodeKind
	}{
		{";", KindEmptyStmt},
		{"x = 1;", KindExprStmt},
		{"f();", KindExprStmt},
		{"x++;", KindExprStmt},
		{"int x;", KindLocalVarDecl},
		{"int x = 1, y = 2;", KindLocalVarDecl},
		{"final int x = 1;", KindLocalVarDecl},
		{"var x = f();", KindLocalVarDecl},
		{"List<String> l = f();", KindLocalVarDecl},
		{"Map<String, List<Integer>> m;", KindLocalVarDecl},
		{"int[] a = {1, 2};", KindLocalVarDecl},
		{"Foo.Bar fb;", KindLocalVarDecl},
		{"if (x) f();", KindIfStmt},
		{"if (x) f(); else g();", KindIfStmt},
		{"while (x) f();", KindWhileStmt},
		{"do f(); while (x);", KindDoStmt},
		{"for (int i = 0; i < n; i++) f();", KindForStmt},
		{"for (;;) f();", KindForStmt},
		{"for (String s : items) f(s);", KindEnhancedForStmt},
		{"for (var e : map.entrySet()) f(e);", KindEnhancedForStmt},
		{"return;", KindReturnStmt},
		{"return x + 1;", KindReturnStmt},
		{"fastreturn;", KindFastReturnStmt},
		{"fastreturn x;", KindFastReturnStmt},
		{"break;", KindBreakStmt},
		{"break outer;", KindBreakStmt},
		{"continue;", KindContinueStmt},
		{"throw new RuntimeException();", KindThrowStmt},
		{"synchronized (lock) { f(); }", KindSynchronizedStmt},
		{"assert x > 0;", KindAssertStmt},
		{"assert x > 0 : \"message\";", KindAssertStmt},
		{"outer: while (x) break outer;", KindLabeledStmt},
		{"{ f(); g(); }", KindBlock},
		{"class Local {}", KindLocalClassDecl},
		{"record Pair(int a, int b) {}", KindLocalClassDecl},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			_, stmt := parseBody(t, tt.input)
			if stmt.Kind != tt.kind {
				t.Errorf("got %v, want %v", stmt.Kind, tt.kind)
			}
		})
	}
}

func TestLocalVarVersusExpression(t *testing.T) {
	// a < b && c > d is an expression even though "a < b" could open a
	// generic type.
	_, stmt := parseBody(t, "boolean r = a < b && c > d;")
	if stmt.Kind != KindLocalVarDecl {
		t.Fatalf("got %v, want LocalVarDecl", stmt.Kind)
	}

	_, stmt = parseBody(t, "f(a < b, c > d);")
	if stmt.Kind != KindExprStmt {
		t.Errorf("got %v, want ExprStmt", stmt.Kind)
	}

	// record used as an identifier, not a declaration.
	_, stmt = parseBody(t, "record = 1;")
	if stmt.Kind != KindExprStmt {
		t.Errorf("got %v, want ExprStmt", stmt.Kind)
	}
}

func TestUnnamedVariable(t *testing.T) {
	_, stmt := parseBody(t, "var _ = f();")
	if stmt.Kind != KindLocalVarDecl {
		t.Fatalf("got %v, want LocalVarDecl", stmt.Kind)
	}
	if findKind(stmt, KindUnnamedVariable) == nil {
		t.Error("no UnnamedVariable in tree")
	}
}

func TestYieldDisambiguation(t *testing.T) {
	// yield as a statement inside a switch expression body.
	_, stmt := parseBody(t, "int r = switch (x) { default -> { yield 1; } };")
	if findKind(stmt, KindYieldStmt) == nil {
		t.Error("no YieldStmt in tree")
	}

	// yield as a plain identifier.
	_, stmt = parseBody(t, "yield = 1;")
	if stmt.Kind != KindExprStmt {
		t.Errorf("got %v, want ExprStmt", stmt.Kind)
	}

	// yield(x) calls a method named yield... but yield followed by an
	// expression starter is the statement.
	_, stmt = parseBody(t, "yield x;")
	if stmt.Kind != KindYieldStmt {
		t.Errorf("got %v, want YieldStmt", stmt.Kind)
	}
}

func TestSwitchStatementColonGroups(t *testing.T) {
	p, stmt := parseBody(t, `switch (x) {
	case 1:
	case 2:
		f();
		break;
	default:
		g();
	}`)
	if stmt.Kind != KindSwitchStmt {
		t.Fatalf("got %v, want SwitchStmt", stmt.Kind)
	}
	if p.diags.hasErrors() {
		t.Errorf("unexpected diagnostics: %v", p.Diagnostics())
	}
	// case 1 and case 2 share one group.
	if got := countKind(stmt, KindSwitchCase); got != 2 {
		t.Errorf("case groups = %d, want 2", got)
	}
	if got := countKind(stmt, KindSwitchLabel); got != 3 {
		t.Errorf("labels = %d, want 3", got)
	}
}

func TestSwitchStatementArrowGroups(t *testing.T) {
	p, stmt := parseBody(t, `switch (x) {
	case 1, 2 -> f();
	case 3 -> { g(); }
	default -> throw new IllegalStateException();
	}`)
	if stmt.Kind != KindSwitchStmt {
		t.Fatalf("got %v, want SwitchStmt", stmt.Kind)
	}
	if p.diags.hasErrors() {
		t.Errorf("unexpected diagnostics: %v", p.Diagnostics())
	}
	if got := countKind(stmt, KindSwitchCase); got != 3 {
		t.Errorf("case groups = %d, want 3", got)
	}
}

func TestSwitchMixedGroupsRejected(t *testing.T) {
	p, _ := parseBody(t, `switch (x) {
	case 1 -> f();
	case 2:
		g();
	}`)
	found := false
	for _, d := range p.Diagnostics() {
		if strings.Contains(d.Message, "mixed arrow and colon") {
			found = true
		}
	}
	if !found {
		t.Errorf("missing mixed-groups diagnostic, got %v", p.Diagnostics())
	}
}

func TestSwitchPatternLabels(t *testing.T) {
	p, stmt := parseBody(t, `switch (shape) {
	case Circle c when c.radius() > 10 -> big(c);
	case Square(int side) -> square(side);
	case null, default -> other();
	}`)
	if p.diags.hasErrors() {
		t.Fatalf("unexpected diagnostics: %v", p.Diagnostics())
	}
	if findKind(stmt, KindTypePattern) == nil {
		t.Error("no TypePattern in tree")
	}
	if findKind(stmt, KindRecordPattern) == nil {
		t.Error("no RecordPattern in tree")
	}
	if findKind(stmt, KindGuard) == nil {
		t.Error("no Guard in tree")
	}
}

func TestNestedRecordPattern(t *testing.T) {
	p, stmt := parseBody(t, `switch (x) {
	case Line(Point(int x1, int y1), Point p2) -> f();
	default -> g();
	}`)
	if p.diags.hasErrors() {
		t.Fatalf("unexpected diagnostics: %v", p.Diagnostics())
	}
	if got := countKind(stmt, KindRecordPattern); got != 2 {
		t.Errorf("record patterns = %d, want 2", got)
	}
}

func TestTryStatements(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"try catch", "try { f(); } catch (Exception e) { g(); }"},
		{"try finally", "try { f(); } finally { g(); }"},
		{"try catch finally", "try { f(); } catch (Exception e) {} finally {}"},
		{"multi catch", "try { f(); } catch (IOException | SQLException e) {}"},
		{"with resources", "try (var in = open()) { f(in); }"},
		{"with two resources", "try (var a = open(); var b = open()) {}"},
		{"with existing variable", "try (resource) { f(); }"},
		{"with qualified expression resource", "try (this.res) { f(); }"},
		{"resources without handler", "try (var in = open()) {}"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, stmt := parseBody(t, tt.input)
			if stmt.Kind != KindTryStmt {
				t.Fatalf("got %v, want TryStmt", stmt.Kind)
			}
			if p.diags.hasErrors() {
				t.Errorf("unexpected diagnostics: %v", p.Diagnostics())
			}
		})
	}
}

func TestTryWithoutHandlersDiagnostic(t *testing.T) {
	p, root := parseBodyAllowErrors(t, "try { f(); } g();")
	found := false
	for _, d := range p.Diagnostics() {
		if strings.Contains(d.Message, "try without catch") {
			found = true
		}
	}
	if !found {
		t.Errorf("missing try-without-handlers diagnostic, got %v", p.Diagnostics())
	}
	// Recovery keeps the try body and the following statement.
	if findKind(root, KindTryStmt) == nil {
		t.Error("no TryStmt in tree")
	}
	if got := countKind(root, KindCallExpr); got != 2 {
		t.Errorf("calls = %d, want 2", got)
	}
}

func TestTryResourceDeclarationRequiresInitializer(t *testing.T) {
	// The declaration attempt is committed once the resource has a
	// declaration shape, so its diagnostics survive.
	p, root := parseBodyAllowErrors(t, "try (Closeable c) { f(); }")
	found := false
	for _, d := range p.Diagnostics() {
		if strings.Contains(d.Message, "expected =") {
			found = true
		}
	}
	if !found {
		t.Errorf("missing expected-= diagnostic, got %v", p.Diagnostics())
	}
	if findKind(root, KindResources) == nil || findKind(root, KindLocalVarDecl) == nil {
		t.Error("resource declaration was lost")
	}
}

func TestEmptyTypeArgumentsOnlyWithNew(t *testing.T) {
	// new ArrayList<>() is fine; a diamond on a declared type is not.
	_, stmt := parseBody(t, "List<String> xs = new ArrayList<>();")
	if stmt.Kind != KindLocalVarDecl {
		t.Fatalf("got %v, want LocalVarDecl", stmt.Kind)
	}

	p, _ := parseBodyAllowErrors(t, "List<> xs = new ArrayList<>();")
	found := false
	for _, d := range p.Diagnostics() {
		if strings.Contains(d.Message, "only legal with new") {
			found = true
		}
	}
	if !found {
		t.Errorf("missing diamond diagnostic, got %v", p.Diagnostics())
	}
}

func TestWildcardOnlyInTypeArgumentLists(t *testing.T) {
	// Legal as a type argument of a type.
	_, stmt := parseBody(t, "List<?> xs = f();")
	if stmt.Kind != KindLocalVarDecl {
		t.Fatalf("got %v, want LocalVarDecl", stmt.Kind)
	}
	if findKind(stmt, KindWildcard) == nil {
		t.Error("no Wildcard in tree")
	}

	// Not legal as an explicit method type argument.
	p, _ := parseBodyAllowErrors(t, "x.<?>f();")
	found := false
	for _, d := range p.Diagnostics() {
		if strings.Contains(d.Message, "expected type") {
			found = true
		}
	}
	if !found {
		t.Errorf("missing expected-type diagnostic, got %v", p.Diagnostics())
	}
}

// parseBodyAllowErrors parses a method body without failing on
// diagnostics.
func parseBodyAllowErrors(t *testing.T, src string) (*Parser, *Node) {
	t.Helper()
	p := ParseCompilationUnit(strings.NewReader("class T { void m() { " + src + " } }"))
	root := p.Finish()
	if root == nil {
		t.Fatal("Finish returned nil")
	}
	return p, root
}

func TestForInitVariants(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"declaration init", "for (int i = 0, j = n; i < j; i++, j--) f();"},
		{"expression init", "for (i = 0; i < n; i++) f();"},
		{"multiple expression init", "for (i = 0, j = n; i < j; i++) f();"},
		{"empty clauses", "for (;;) { break; }"},
		{"final in enhanced for", "for (final var x : items) f(x);"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, _ := parseBody(t, tt.input)
			if p.diags.hasErrors() {
				t.Errorf("unexpected diagnostics: %v", p.Diagnostics())
			}
		})
	}
}

func TestDanglingElse(t *testing.T) {
	// The else binds to the inner if.
	_, stmt := parseBody(t, "if (a) if (b) f(); else g();")
	if stmt.Kind != KindIfStmt {
		t.Fatalf("got %v, want IfStmt", stmt.Kind)
	}
	if len(stmt.Children) != 2 {
		t.Fatalf("outer if has %d children, want 2 (no else)", len(stmt.Children))
	}
	inner := stmt.Children[1]
	if inner.Kind != KindIfStmt || len(inner.Children) != 3 {
		t.Errorf("inner if = %v with %d children, want IfStmt with 3", inner.Kind, len(inner.Children))
	}
}
