package ast

import (
	"fmt"
	"io"
	"strings"
)

// Dump writes an indented textual form of the tree, one node per line.
func Dump(w io.Writer, n *Node) error {
	return dump(w, n, 0)
}

func dump(w io.Writer, n *Node, depth int) error {
	indent := strings.Repeat("  ", depth)
	var err error
	if n.IsLeaf() {
		_, err = fmt.Fprintf(w, "%s%v %q\n", indent, n.Tok.Kind, n.Tok.Text)
		return err
	}
	if _, err = fmt.Fprintf(w, "%s%s\n", indent, n.Name); err != nil {
		return err
	}
	for _, c := range n.Children {
		if err = dump(w, c, depth+1); err != nil {
			return err
		}
	}
	return nil
}
