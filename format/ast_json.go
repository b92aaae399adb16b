package format

import (
	"encoding/json"
	"io"

	"github.com/dhamidi/javaparse/java/parser"
)

// ASTJSONEncoder writes a parse tree as indented JSON. Diagnostics, when
// provided, are included alongside the tree so that one document carries
// the whole parse result.
type ASTJSONEncoder struct {
	w io.Writer
}

func NewASTJSONEncoder(w io.Writer) *ASTJSONEncoder {
	return &ASTJSONEncoder{w: w}
}

func (e *ASTJSONEncoder) Encode(node *parser.Node) error {
	text, err := e.MarshalText(node)
	if err != nil {
		return err
	}
	_, err = e.w.Write(text)
	return err
}

// EncodeResult writes the tree together with its diagnostics.
func (e *ASTJSONEncoder) EncodeResult(node *parser.Node, diags []parser.Diagnostic) error {
	doc := astJSONResult{
		Tree: nodeToJSON(node),
	}
	for _, d := range diags {
		doc.Diagnostics = append(doc.Diagnostics, astJSONDiagnostic{
			Severity: d.Severity.String(),
			Line:     d.Span.Start.Line,
			Column:   d.Span.Start.Column,
			Message:  d.Message,
		})
	}
	text, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return err
	}
	_, err = e.w.Write(text)
	return err
}

func (e *ASTJSONEncoder) MarshalText(node *parser.Node) ([]byte, error) {
	return json.MarshalIndent(nodeToJSON(node), "", "  ")
}

type astJSONResult struct {
	Tree        *astJSONNode        `json:"tree"`
	Diagnostics []astJSONDiagnostic `json:"diagnostics,omitempty"`
}

type astJSONDiagnostic struct {
	Severity string `json:"severity"`
	Line     int    `json:"line"`
	Column   int    `json:"column"`
	Message  string `json:"message"`
}

type astJSONNode struct {
	Kind      string         `json:"kind"`
	Span      *astJSONSpan   `json:"span,omitempty"`
	Token     string         `json:"token,omitempty"`
	Error     *astJSONError  `json:"error,omitempty"`
	Synthetic bool           `json:"synthetic,omitempty"`
	Children  []*astJSONNode `json:"children,omitempty"`
}

type astJSONSpan struct {
	Start astJSONPosition `json:"start"`
	End   astJSONPosition `json:"end"`
}

type astJSONPosition struct {
	Offset int `json:"offset"`
	Line   int `json:"line"`
	Column int `json:"column"`
}

type astJSONError struct {
	Message  string   `json:"message"`
	Expected []string `json:"expected,omitempty"`
	Got      string   `json:"got,omitempty"`
}

func nodeToJSON(n *parser.Node) *astJSONNode {
	jn := &astJSONNode{
		Kind:      n.Kind.String(),
		Synthetic: n.Synthetic,
	}

	if n.Span.Start.Line != 0 || n.Span.End.Line != 0 {
		jn.Span = &astJSONSpan{
			Start: astJSONPosition{Offset: n.Span.Start.Offset, Line: n.Span.Start.Line, Column: n.Span.Start.Column},
			End:   astJSONPosition{Offset: n.Span.End.Offset, Line: n.Span.End.Line, Column: n.Span.End.Column},
		}
	}

	if n.Token != nil {
		jn.Token = n.Token.Literal
	}

	if n.Error != nil {
		jn.Error = &astJSONError{
			Message: n.Error.Message,
		}
		for _, exp := range n.Error.Expected {
			jn.Error.Expected = append(jn.Error.Expected, exp.String())
		}
		if n.Error.Got != nil {
			jn.Error.Got = n.Error.Got.Literal
		}
	}

	if len(n.Children) > 0 {
		jn.Children = make([]*astJSONNode, len(n.Children))
		for i, child := range n.Children {
			jn.Children[i] = nodeToJSON(child)
		}
	}

	return jn
}
