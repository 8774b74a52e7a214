package diagfmt

import (
	"fmt"
	"io"

	"susc/internal/ast"
	"susc/internal/source"
)

// formatSpan formats a source.Span into a string.
// If fs is non-nil, it resolves the span to start and end positions and returns "startLine:startCol-endLine:endCol".
// If fs is nil, it returns "span(start-end)".
func formatSpan(span source.Span, fs *source.FileSet) string {
	if fs != nil {
		start, end := fs.Resolve(span)
		return fmt.Sprintf("%d:%d-%d:%d", start.Line, start.Col, end.Line, end.Col)
	}
	return fmt.Sprintf("span(%d-%d)", span.Start, span.End)
}

// FormatTreePretty writes a parse tree with box-drawing connectors:
//
//	File (1:1-3:2)
//	└─ Compound (1:1-3:2) [doc]
//	   ├─ type ident "A" (1:10-1:11)
//	   ...
func FormatTreePretty(w io.Writer, root *ast.Node, fs *source.FileSet) error {
	if root == nil {
		_, err := fmt.Fprintln(w, "<no tree>")
		return err
	}
	if _, err := fmt.Fprintln(w, nodeLabel(root, fs)); err != nil {
		return err
	}
	return formatChildren(w, root, fs, "")
}

func formatChildren(w io.Writer, n *ast.Node, fs *source.FileSet, prefix string) error {
	for i, c := range n.Children {
		branch, next := "├─ ", "│  "
		if i == len(n.Children)-1 {
			branch, next = "└─ ", "   "
		}
		if _, err := fmt.Fprintf(w, "%s%s%s\n", prefix, branch, nodeLabel(c, fs)); err != nil {
			return err
		}
		if err := formatChildren(w, c, fs, prefix+next); err != nil {
			return err
		}
	}
	return nil
}

func nodeLabel(n *ast.Node, fs *source.FileSet) string {
	if n.IsLeaf() {
		label := fmt.Sprintf("%s %q (%s)", n.Tok.Kind, n.Tok.Text, formatSpan(n.Span, fs))
		if n.Tok.Synthetic {
			label += " [inserted]"
		}
		return label
	}
	label := fmt.Sprintf("%s (%s)", n.Name, formatSpan(n.Span, fs))
	if n.Doc != nil {
		label += " [doc]"
	}
	return label
}
