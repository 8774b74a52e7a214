// Package ast defines the parse tree built by the parser driver.
//
// Interior nodes are named after grammar nonterminals (see grammar.N* names).
// Leaves wrap the tokens that carry information: identifiers, numbers,
// literals. Punctuation and keywords are not kept as leaves; their positions
// are still covered by the parent's Span.
package ast

import (
	"susc/internal/source"
	"susc/internal/token"
)

// Node is a parse tree node. Exactly one of Name or Tok is set.
type Node struct {
	Name     string
	Tok      *token.Token
	Children []*Node
	Span     source.Span
	// Doc is the docstring written before the first token of the node, if any.
	Doc *token.Trivia
}

// Leaf wraps a token.
func Leaf(t token.Token) *Node {
	n := &Node{Tok: &t, Span: t.Span}
	if d, ok := t.Doc(); ok {
		n.Doc = &d
	}
	return n
}

// IsLeaf reports whether the node wraps a token.
func (n *Node) IsLeaf() bool {
	return n.Tok != nil
}

// Is reports whether the node is an interior node with the given name.
func (n *Node) Is(name string) bool {
	return n != nil && n.Tok == nil && n.Name == name
}

// Child returns the first interior child with the given name.
func (n *Node) Child(name string) *Node {
	for _, c := range n.Children {
		if c.Is(name) {
			return c
		}
	}
	return nil
}

// ChildrenNamed returns every interior child with the given name.
func (n *Node) ChildrenNamed(name string) []*Node {
	var out []*Node
	for _, c := range n.Children {
		if c.Is(name) {
			out = append(out, c)
		}
	}
	return out
}

// Tokens returns the leaf tokens of the given kind among direct children.
func (n *Node) Tokens(kind token.Kind) []token.Token {
	var out []token.Token
	for _, c := range n.Children {
		if c.IsLeaf() && c.Tok.Kind == kind {
			out = append(out, *c.Tok)
		}
	}
	return out
}

// Token returns the first leaf token of the given kind among direct children.
func (n *Node) Token(kind token.Kind) (token.Token, bool) {
	for _, c := range n.Children {
		if c.IsLeaf() && c.Tok.Kind == kind {
			return *c.Tok, true
		}
	}
	return token.Token{}, false
}

// Walk visits n and its descendants depth-first; returning false skips children.
func Walk(n *Node, visit func(*Node) bool) {
	if n == nil || !visit(n) {
		return
	}
	for _, c := range n.Children {
		Walk(c, visit)
	}
}
