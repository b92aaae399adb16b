package parser

import (
	"strings"
	"testing"
)

// findKind returns the first node of the wanted kind in depth-first
// order, or nil.
func findKind(n *Node, kind NodeKind) *Node {
	if n == nil {
		return nil
	}
	if n.Kind == kind {
		return n
	}
	for _, child := range n.Children {
		if found := findKind(child, kind); found != nil {
			return found
		}
	}
	return nil
}

func countKind(n *Node, kind NodeKind) int {
	if n == nil {
		return 0
	}
	count := 0
	if n.Kind == kind {
		count++
	}
	for _, child := range n.Children {
		count += countKind(child, kind)
	}
	return count
}

// parseUnit parses src as a compilation unit and fails the test on any
// error diagnostic.
func parseUnit(t *testing.T, src string) (*Parser, *Node) {
	t.Helper()
	p := ParseCompilationUnit(strings.NewReader(src), WithFile("Test.java"))
	root := p.Finish()
	if root == nil {
		t.Fatal("Finish returned nil")
	}
	for _, d := range p.Diagnostics() {
		if d.Severity == SeverityError {
			t.Fatalf("unexpected diagnostic: %v", d)
		}
	}
	return p, root
}

func TestParseExpression(t *testing.T) {
	tests := []struct {
		input string
		kind  NodeKind
	}{
		{"42", KindLiteral},
		{"x", KindIdentifier},
		{"x + y", KindBinaryExpr},
		{"x * y + z", KindBinaryExpr},
		{"-x", KindUnaryExpr},
		{"!x", KindUnaryExpr},
		{"x++", KindPostfixExpr},
		{"a ? b : c", KindTernaryExpr},
		{"x = 5", KindAssignExpr},
		{"x += 5", KindAssignExpr},
		{"(x)", KindParenExpr},
		{"obj.field", KindFieldAccess},
		{"obj.method()", KindCallExpr},
		{"arr[0]", KindArrayAccess},
		{"new Foo()", KindNewExpr},
		{"new Foo<>()", KindNewExpr},
		{"new int[10]", KindNewArrayExpr},
		{"new int[] {1, 2}", KindNewArrayExpr},
		{"x -> x + 1", KindLambdaExpr},
		{"(a, b) -> a + b", KindLambdaExpr},
		{"() -> 1", KindLambdaExpr},
		{"obj::method", KindMethodRef},
		{"Foo::new", KindMethodRef},
		{"x instanceof Foo", KindInstanceofExpr},
		{"x instanceof Foo f", KindInstanceofExpr},
		{"(int) x", KindCastExpr},
		{"String.class", KindClassLiteral},
		{"String[].class", KindClassLiteral},
		{"int.class", KindClassLiteral},
		{"int[].class", KindClassLiteral},
		{"this", KindThis},
		{"Foo.this", KindFieldAccess},
		{"switch (x) { default -> 1; }", KindSwitchExpr},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			p := ParseExpression(strings.NewReader(tt.input))
			node := p.Finish()
			if node == nil {
				t.Fatal("Finish returned nil")
			}
			if node.Kind != tt.kind {
				t.Errorf("got %v, want %v", node.Kind, tt.kind)
			}
		})
	}
}

func TestParseCompilationUnit(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"empty class", "class Foo {}"},
		{"class with package", "package com.example;\nclass Foo {}"},
		{"annotated package", "@Deprecated\npackage com.example;\nclass Foo {}"},
		{"class with import", "import java.util.List;\nclass Foo {}"},
		{"static import", "import static java.util.Collections.emptyList;\nclass Foo {}"},
		{"wildcard import", "import java.util.*;\nclass Foo {}"},
		{"module import", "import module java.base;\nclass Foo {}"},
		{"class with field", "class Foo { int x; }"},
		{"class with multiple declarators", "class Foo { int x, y = 1, z[]; }"},
		{"class with method", "class Foo { void bar() {} }"},
		{"class with constructor", "class Foo { Foo() {} }"},
		{"constructor with this call", "class Foo { Foo() { this(1); } Foo(int x) {} }"},
		{"constructor with super call", "class Foo { Foo() { super(); } }"},
		{"class with initializer", "class Foo { { x = 1; } static { y = 2; } int x; static int y; }"},
		{"generic class", "class Foo<T extends Comparable<T> & Cloneable, U> {}"},
		{"generic method", "class Foo { <T> T id(T x) { return x; } }"},
		{"varargs method", "class Foo { void f(int... xs) {} }"},
		{"receiver parameter", "class Foo { void f(Foo this, int x) {} }"},
		{"throws clause", "class Foo { void f() throws IOException, RuntimeException {} }"},
		{"extends and implements", "class Foo extends Bar implements Baz, Qux {}"},
		{"sealed class", "sealed class Shape permits Circle, Square {}"},
		{"non-sealed class", "non-sealed class Circle extends Shape {}"},
		{"interface", "interface Foo { int f(); default int g() { return 1; } }"},
		{"nested class", "class Outer { class Inner {} static class Nested {} }"},
		{"annotation declaration", "@interface Marker { String value() default \"\"; }"},
		{"annotated method", "class Foo { @Override @SuppressWarnings(\"all\") void f() {} }"},
		{"semicolons between types", "class A {};\nclass B {}"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, root := parseUnit(t, tt.input)
			if root.Kind != KindCompilationUnit {
				t.Errorf("root = %v, want CompilationUnit", root.Kind)
			}
		})
	}
}

func TestParseEnum(t *testing.T) {
	_, root := parseUnit(t, `
enum Planet {
	MERCURY(3.3e23),
	EARTH(5.9e24) { void greet() {} },
	MARS;

	Planet(double mass) {}
	Planet() {}
	void greet() {}
}`)

	enum := findKind(root, KindEnumDecl)
	if enum == nil {
		t.Fatal("no EnumDecl in tree")
	}
	if got := countKind(enum, KindEnumConstant); got != 3 {
		t.Errorf("enum constants = %d, want 3", got)
	}
	if got := countKind(enum, KindConstructorDecl); got != 2 {
		t.Errorf("constructors = %d, want 2", got)
	}
	// EARTH's body declares greet, plus the enum's own greet.
	if got := countKind(enum, KindMethodDecl); got != 2 {
		t.Errorf("methods = %d, want 2", got)
	}
}

func TestParseEnumConstantNamedLikeMember(t *testing.T) {
	// An enumerator whose name matches the enum is still an enumerator
	// before the first semicolon.
	_, root := parseUnit(t, "enum E { E(1); E(int x) {} }")
	if got := countKind(root, KindEnumConstant); got != 1 {
		t.Errorf("enum constants = %d, want 1", got)
	}
	if got := countKind(root, KindConstructorDecl); got != 1 {
		t.Errorf("constructors = %d, want 1", got)
	}
}

func TestParseRecord(t *testing.T) {
	_, root := parseUnit(t, `
record Point(int x, int y) implements Comparable<Point> {
	static Point origin() { return new Point(0, 0); }
}`)

	rec := findKind(root, KindRecordDecl)
	if rec == nil {
		t.Fatal("no RecordDecl in tree")
	}
	params := findKind(rec, KindParameters)
	if params == nil {
		t.Fatal("no record header")
	}
	if got := len(params.ChildrenOfKind(KindParameter)); got != 2 {
		t.Errorf("record components = %d, want 2", got)
	}
}

func TestParseModuleDecl(t *testing.T) {
	_, root := parseUnit(t, `
module com.example.app {
	requires java.base;
	requires transitive java.sql;
	exports com.example.api;
	exports com.example.spi to com.example.impl, com.example.other;
	opens com.example.internal to com.example.test;
	uses com.example.spi.Plugin;
	provides com.example.spi.Plugin with com.example.impl.DefaultPlugin;
}`)

	mod := findKind(root, KindModuleDecl)
	if mod == nil {
		t.Fatal("no ModuleDecl in tree")
	}

	counts := []struct {
		kind NodeKind
		want int
	}{
		{KindRequiresDirective, 2},
		{KindExportsDirective, 2},
		{KindOpensDirective, 1},
		{KindUsesDirective, 1},
		{KindProvidesDirective, 1},
	}
	for _, c := range counts {
		if got := countKind(mod, c.kind); got != c.want {
			t.Errorf("%v = %d, want %d", c.kind, got, c.want)
		}
	}
}

func TestParseOpenModule(t *testing.T) {
	_, root := parseUnit(t, "open module m { requires transitive; }")
	if findKind(root, KindModuleDecl) == nil {
		t.Fatal("no ModuleDecl in tree")
	}
	// "requires transitive;" requires the module named transitive.
	req := findKind(root, KindRequiresDirective)
	if req == nil {
		t.Fatal("no RequiresDirective in tree")
	}
}

func TestParseCompactSourceFile(t *testing.T) {
	_, root := parseUnit(t, "void main() { greet(); }\nvoid greet() {}")
	if got := countKind(root, KindMethodDecl); got != 2 {
		t.Errorf("methods = %d, want 2", got)
	}
}

func TestParseGenericsInDeclarations(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"nested type arguments", "class F { Map<String, List<Integer>> m; }"},
		{"deeply nested closers", "class F { List<List<List<String>>> l; }"},
		{"wildcard extends", "class F { List<? extends Number> l; }"},
		{"wildcard super", "class F { List<? super Integer> l; }"},
		{"bare wildcard", "class F { List<?> l; }"},
		{"diamond", "class F { List<String> l = new ArrayList<>(); }"},
		{"qualified generic", "class F { Outer<A>.Inner<B> x; }"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			parseUnit(t, tt.input)
		})
	}
}

func TestParseExpressionTrailingInput(t *testing.T) {
	p := ParseExpression(strings.NewReader("1 + 2 ;"))
	p.Finish()
	if !p.diags.hasErrors() {
		t.Error("trailing input should produce a diagnostic")
	}
}

func TestIsComplete(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"1 + 2", true},
		{"1 + ", false},
		{"foo(", false},
		{"foo()", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			p := ParseExpression(strings.NewReader(tt.input))
			if got := p.IsComplete(); got != tt.want {
				t.Errorf("IsComplete() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestReset(t *testing.T) {
	p := ParseCompilationUnit(strings.NewReader("class A {}"))
	first := p.Finish()
	if first == nil || countKind(first, KindClassDecl) != 1 {
		t.Fatal("first parse failed")
	}

	p.Reset(strings.NewReader("class B {} class C {}"))
	second := p.Finish()
	if second == nil || countKind(second, KindClassDecl) != 2 {
		t.Fatal("parse after Reset failed")
	}
}

func TestNodeJSON(t *testing.T) {
	_, root := parseUnit(t, "class A { int x; }")
	data, err := root.MarshalJSON()
	if err != nil {
		t.Fatalf("MarshalJSON: %v", err)
	}
	s := string(data)
	for _, want := range []string{`"kind":"CompilationUnit"`, `"kind":"ClassDecl"`, `"kind":"FieldDecl"`} {
		if !strings.Contains(s, want) {
			t.Errorf("JSON missing %s", want)
		}
	}
}
