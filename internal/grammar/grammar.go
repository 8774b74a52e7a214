// Package grammar builds LALR(1) parse tables.
//
// Terminals are token kinds; nonterminals are named. A Grammar is assembled
// with Rule calls and compiled once by Build into an immutable Table that may
// be shared read-only by any number of parsers.
//
// Nonterminals whose name starts with "_" are helpers: the parser splices their
// children into the parent node instead of creating a node for them.
package grammar

import (
	"fmt"
	"strings"

	"susc/internal/token"
)

// Symbol is a terminal (token.Kind, below token.Count) or a nonterminal.
type Symbol int

// IsTerminal reports whether the symbol is a token kind.
func (s Symbol) IsTerminal() bool {
	return int(s) < token.Count
}

// Kind returns the token kind of a terminal symbol.
func (s Symbol) Kind() token.Kind {
	return token.Kind(s) // #nosec G115 -- terminals are below token.Count
}

// Production is one alternative of a nonterminal.
type Production struct {
	Lhs  Symbol
	Rhs  []Symbol
	Name string // name of Lhs
}

// Inline reports whether nodes of this production are spliced into their parent.
func (p Production) Inline() bool {
	return strings.HasPrefix(p.Name, "_")
}

// Grammar is a context-free grammar under construction.
type Grammar struct {
	names []string // nonterminal names
	index map[string]Symbol
	prods []Production
	start Symbol
}

// New creates a grammar whose start nonterminal is start.
func New(start string) *Grammar {
	g := &Grammar{index: make(map[string]Symbol)}
	// production 0 is the augmented start: $accept -> start
	accept := g.nonterm("$accept")
	g.start = g.nonterm(start)
	g.prods = append(g.prods, Production{Lhs: accept, Rhs: []Symbol{g.start}, Name: "$accept"})
	return g
}

func (g *Grammar) nonterm(name string) Symbol {
	if s, ok := g.index[name]; ok {
		return s
	}
	s := Symbol(token.Count + len(g.names))
	g.names = append(g.names, name)
	g.index[name] = s
	return s
}

// Rule adds the production lhs -> rhs. Elements of rhs are nonterminal names
// (string) or terminals (token.Kind). An empty rhs is an epsilon production.
func (g *Grammar) Rule(lhs string, rhs ...any) {
	p := Production{Lhs: g.nonterm(lhs), Name: lhs, Rhs: make([]Symbol, 0, len(rhs))}
	for _, r := range rhs {
		switch v := r.(type) {
		case string:
			p.Rhs = append(p.Rhs, g.nonterm(v))
		case token.Kind:
			p.Rhs = append(p.Rhs, Symbol(v))
		default:
			panic(fmt.Sprintf("grammar: rule %s: unsupported symbol %T", lhs, r))
		}
	}
	g.prods = append(g.prods, p)
}

// Name returns a printable name of any symbol.
func (g *Grammar) Name(s Symbol) string {
	if s.IsTerminal() {
		return s.Kind().String()
	}
	return g.names[int(s)-token.Count]
}

func (g *Grammar) validate() error {
	defined := make(map[Symbol]bool, len(g.names))
	for _, p := range g.prods {
		defined[p.Lhs] = true
	}
	for _, p := range g.prods {
		for _, s := range p.Rhs {
			if !s.IsTerminal() && !defined[s] {
				return fmt.Errorf("grammar: nonterminal %q used in %q has no productions", g.Name(s), p.Name)
			}
		}
	}
	return nil
}
