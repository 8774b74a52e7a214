package grammar

import (
	"fmt"

	"susc/internal/token"
)

// ActionKind tells the parser what to do on a terminal.
type ActionKind uint8

const (
	ActError ActionKind = iota
	ActShift
	ActReduce
	ActAccept
)

// Action is an ACTION table entry. Target is a state for shifts and a
// production index for reductions.
type Action struct {
	Kind   ActionKind
	Target int
}

// Conflict describes an ambiguity found while building the table.
// Shift/reduce conflicts are resolved as shift, reduce/reduce by the earlier production.
type Conflict struct {
	State    int
	Terminal token.Kind
	Desc     string
}

func (c Conflict) String() string {
	return fmt.Sprintf("state %d on %v: %s", c.State, c.Terminal, c.Desc)
}

// Table holds the ACTION and GOTO tables of a grammar.
type Table struct {
	grammar   *Grammar
	action    [][]Action // [state][terminal]
	gotos     []map[Symbol]int
	Conflicts []Conflict
}

// States returns the number of automaton states.
func (t *Table) States() int { return len(t.action) }

// Action looks up the ACTION entry for a state and a terminal.
func (t *Table) Action(state int, k token.Kind) Action {
	return t.action[state][k]
}

// Goto looks up the GOTO entry after reducing to nonterminal nt.
func (t *Table) Goto(state int, nt Symbol) (int, bool) {
	s, ok := t.gotos[state][nt]
	return s, ok
}

// Production returns the production with the given index.
func (t *Table) Production(i int) Production {
	return t.grammar.prods[i]
}

// Expected lists every terminal with a non-error action in the state.
func (t *Table) Expected(state int) []token.Kind {
	var set termSet
	for k, a := range t.action[state] {
		if a.Kind != ActError {
			set.add(token.Kind(k))
		}
	}
	return set.kinds()
}

// Accepts reports whether the state has a non-error action on k.
func (t *Table) Accepts(state int, k token.Kind) bool {
	return t.action[state][k].Kind != ActError
}

// Name returns a printable symbol name.
func (t *Table) Name(s Symbol) string {
	return t.grammar.Name(s)
}
