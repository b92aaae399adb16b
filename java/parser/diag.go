package parser

type Severity int

const (
	SeverityError Severity = iota
	SeverityWarning
)

func (s Severity) String() string {
	if s == SeverityWarning {
		return "warning"
	}
	return "error"
}

// Diagnostic is one reported problem. Parsing never aborts on a
// diagnostic; the full list travels with the tree.
type Diagnostic struct {
	Severity Severity
	Span     Span
	Message  string
}

func (d Diagnostic) String() string {
	return d.Span.Start.String() + ": " + d.Severity.String() + ": " + d.Message
}

// diagnostics collects reports in source order. Consecutive syntax
// errors at the same position collapse into the first one, so a single
// stuck token does not flood the output while recovery skips forward.
type diagnostics struct {
	list            []Diagnostic
	lastErrorOffset int
}

func newDiagnostics() *diagnostics {
	return &diagnostics{lastErrorOffset: -1}
}

func (d *diagnostics) errorAt(span Span, message string) {
	if span.Start.Offset == d.lastErrorOffset {
		return
	}
	d.lastErrorOffset = span.Start.Offset
	d.list = append(d.list, Diagnostic{
		Severity: SeverityError,
		Span:     span,
		Message:  message,
	})
}

func (d *diagnostics) warningAt(span Span, message string) {
	d.list = append(d.list, Diagnostic{
		Severity: SeverityWarning,
		Span:     span,
		Message:  message,
	})
}

// hasErrors reports whether any error-severity diagnostic was recorded.
func (d *diagnostics) hasErrors() bool {
	for _, diag := range d.list {
		if diag.Severity == SeverityError {
			return true
		}
	}
	return false
}
