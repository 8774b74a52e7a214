package parser

import (
	"slices"
	"strings"

	"susc/internal/ast"
	"susc/internal/grammar"
	"susc/internal/source"
	"susc/internal/token"
)

// Automaton is the explicit state of a table-driven parse: the LR state stack
// and the value stack next to it. values[i] is the value that led to states[i+1].
// It is owned by a single parse; Clone gives recovery a scratch copy.
type Automaton struct {
	tbl     *grammar.Table
	file    source.FileID
	states  []int
	values  []*ast.Node
	lastEnd uint32 // end offset of the last real token shifted
}

func newAutomaton(tbl *grammar.Table, file source.FileID) *Automaton {
	return &Automaton{
		tbl:    tbl,
		file:   file,
		states: []int{0},
	}
}

// Clone returns an independent copy; value nodes are shared, never mutated.
func (a *Automaton) Clone() *Automaton {
	return &Automaton{
		tbl:     a.tbl,
		file:    a.file,
		states:  slices.Clone(a.states),
		values:  slices.Clone(a.values),
		lastEnd: a.lastEnd,
	}
}

func (a *Automaton) top() int {
	return a.states[len(a.states)-1]
}

// Values returns the value stack, bottom first. Callers must not modify it.
func (a *Automaton) Values() []*ast.Node {
	return a.values
}

// wouldShift reports whether kind can be shifted (or accepted) after the
// reductions it triggers, without touching the automaton.
func (a *Automaton) wouldShift(kind token.Kind) bool {
	st := slices.Clone(a.states)
	for {
		act := a.tbl.Action(st[len(st)-1], kind)
		switch act.Kind {
		case grammar.ActShift, grammar.ActAccept:
			return true
		case grammar.ActReduce:
			p := a.tbl.Production(act.Target)
			st = st[:len(st)-len(p.Rhs)]
			next, ok := a.tbl.Goto(st[len(st)-1], p.Lhs)
			if !ok {
				return false
			}
			st = append(st, next)
		default:
			return false
		}
	}
}

// Expected returns the terminals that the automaton can actually consume next.
func (a *Automaton) Expected() []token.Kind {
	var out []token.Kind
	for _, k := range a.tbl.Expected(a.top()) {
		if a.wouldShift(k) {
			out = append(out, k)
		}
	}
	return out
}

// Feed consumes one token. ok is false on a syntax fault, in which case the
// automaton is left unchanged. accepted is true once EOF completed the file.
func (a *Automaton) Feed(tok token.Token) (accepted, ok bool) {
	if !a.wouldShift(tok.Kind) {
		return false, false
	}
	for {
		act := a.tbl.Action(a.top(), tok.Kind)
		switch act.Kind {
		case grammar.ActShift:
			a.states = append(a.states, act.Target)
			a.values = append(a.values, ast.Leaf(tok))
			if !tok.Synthetic {
				a.lastEnd = tok.Span.End
			}
			return false, true
		case grammar.ActReduce:
			a.reduce(act.Target)
		case grammar.ActAccept:
			return true, true
		default:
			return false, false
		}
	}
}

// FeedAll feeds tokens in order and stops at the first fault.
func (a *Automaton) FeedAll(toks ...token.Token) bool {
	for _, t := range toks {
		if _, ok := a.Feed(t); !ok {
			return false
		}
	}
	return true
}

func (a *Automaton) reduce(prod int) {
	p := a.tbl.Production(prod)
	n := len(p.Rhs)
	vals := a.values[len(a.values)-n:]

	node := &ast.Node{Name: p.Name}
	covered := false
	for i, v := range vals {
		if i == 0 {
			node.Doc = v.Doc
		}
		if !v.Span.Empty() {
			if !covered {
				node.Span = v.Span
				covered = true
			} else {
				node.Span = node.Span.Cover(v.Span)
			}
		}
		switch {
		case v.IsLeaf() && v.Tok.Kind.Fixed():
			// пунктуация и ключевые слова в дерево не попадают
		case !v.IsLeaf() && strings.HasPrefix(v.Name, "_"):
			node.Children = append(node.Children, v.Children...)
		default:
			node.Children = append(node.Children, v)
		}
	}
	if !covered {
		node.Span = source.Span{File: a.file, Start: a.lastEnd, End: a.lastEnd}
	}

	a.states = a.states[:len(a.states)-n]
	a.values = a.values[:len(a.values)-n]
	next, ok := a.tbl.Goto(a.top(), p.Lhs)
	if !ok {
		// таблица согласована, сюда попасть нельзя
		panic("parser: missing goto for " + p.Name)
	}
	a.states = append(a.states, next)
	a.values = append(a.values, node)
}

// unwindToBrace pops both stacks until an open brace is on top. A '{' whose
// '}' is already shifted, waiting for its reduction, is not open.
// Returns false, leaving the automaton unchanged, when there is no open brace.
func (a *Automaton) unwindToBrace() bool {
	closed := 0
	for i := len(a.values) - 1; i >= 0; i-- {
		v := a.values[i]
		if !v.IsLeaf() {
			continue
		}
		switch v.Tok.Kind {
		case token.RBrace:
			closed++
		case token.LBrace:
			if closed > 0 {
				closed--
				continue
			}
			a.values = a.values[:i+1]
			a.states = a.states[:i+2]
			return true
		}
	}
	return false
}

// flatten splices helper nodes so that callers see real items only.
func flatten(values []*ast.Node) []*ast.Node {
	var out []*ast.Node
	for _, v := range values {
		if !v.IsLeaf() && strings.HasPrefix(v.Name, "_") {
			out = append(out, flatten(v.Children)...)
			continue
		}
		out = append(out, v)
	}
	return out
}
