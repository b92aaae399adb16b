package format

import (
	"io"

	"github.com/dhamidi/javaparse/java/parser"
)

// TreeEncoder writes a parse tree as an indented text outline, one node
// per line.
type TreeEncoder struct {
	w         io.Writer
	positions bool
}

func NewTreeEncoder(w io.Writer) *TreeEncoder {
	return &TreeEncoder{w: w}
}

// WithPositions makes the encoder append each node's span.
func (e *TreeEncoder) WithPositions() *TreeEncoder {
	e.positions = true
	return e
}

func (e *TreeEncoder) Encode(node *parser.Node) error {
	var out string
	if e.positions {
		out = node.StringWithPositions()
	} else {
		out = node.String()
	}
	_, err := io.WriteString(e.w, out)
	return err
}
