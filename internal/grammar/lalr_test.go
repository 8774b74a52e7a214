package grammar

import (
	"testing"

	"susc/internal/token"
)

// run drives the table over kinds and reports whether the input is accepted.
func run(t *testing.T, tbl *Table, input ...token.Kind) bool {
	t.Helper()
	input = append(input, token.EOF)
	states := []int{0}
	pos := 0
	for steps := 0; steps < 10000; steps++ {
		top := states[len(states)-1]
		act := tbl.Action(top, input[pos])
		switch act.Kind {
		case ActShift:
			states = append(states, act.Target)
			pos++
		case ActReduce:
			p := tbl.Production(act.Target)
			states = states[:len(states)-len(p.Rhs)]
			next, ok := tbl.Goto(states[len(states)-1], p.Lhs)
			if !ok {
				t.Fatalf("missing goto for %s", p.Name)
			}
			states = append(states, next)
		case ActAccept:
			return true
		default:
			return false
		}
	}
	t.Fatal("parser did not terminate")
	return false
}

// Классическая грамматика, которая LALR(1), но не SLR(1):
//
//	S -> L = R | R ; L -> * R | id ; R -> L
//
// with '=' as Colon, '*' as Plus, id as Ident.
func TestLALRButNotSLR(t *testing.T) {
	g := New("S")
	g.Rule("S", "L", token.Colon, "R")
	g.Rule("S", "R")
	g.Rule("L", token.Plus, "R")
	g.Rule("L", token.Ident)
	g.Rule("R", "L")
	tbl, err := g.Build()
	if err != nil {
		t.Fatal(err)
	}
	if len(tbl.Conflicts) != 0 {
		t.Fatalf("unexpected conflicts: %v", tbl.Conflicts)
	}

	accept := [][]token.Kind{
		{token.Ident},
		{token.Ident, token.Colon, token.Ident},
		{token.Plus, token.Ident, token.Colon, token.Plus, token.Plus, token.Ident},
	}
	for _, in := range accept {
		if !run(t, tbl, in...) {
			t.Errorf("expected %v to be accepted", in)
		}
	}
	reject := [][]token.Kind{
		{},
		{token.Colon},
		{token.Ident, token.Colon},
		{token.Ident, token.Ident},
	}
	for _, in := range reject {
		if run(t, tbl, in...) {
			t.Errorf("expected %v to be rejected", in)
		}
	}
}

func TestAmbiguousGrammarReportsConflict(t *testing.T) {
	g := New("E")
	g.Rule("E", "E", token.Plus, "E")
	g.Rule("E", token.Ident)
	tbl, err := g.Build()
	if err != nil {
		t.Fatal(err)
	}
	if len(tbl.Conflicts) == 0 {
		t.Fatal("expected a shift/reduce conflict")
	}
	// конфликт решается в пользу shift, разбор всё равно работает
	if !run(t, tbl, token.Ident, token.Plus, token.Ident, token.Plus, token.Ident) {
		t.Error("expected input to be accepted")
	}
}

func TestEpsilonProductions(t *testing.T) {
	g := New("list")
	g.Rule("list")
	g.Rule("list", "list", token.Ident)
	tbl, err := g.Build()
	if err != nil {
		t.Fatal(err)
	}
	if !run(t, tbl) || !run(t, tbl, token.Ident, token.Ident) {
		t.Error("expected empty and non-empty lists to be accepted")
	}
}

func TestUndefinedNonterminal(t *testing.T) {
	g := New("S")
	g.Rule("S", "missing")
	if _, err := g.Build(); err == nil {
		t.Fatal("expected an error for an undefined nonterminal")
	}
}

func TestIDLTableIsConflictFree(t *testing.T) {
	tbl := IDL()
	for _, c := range tbl.Conflicts {
		t.Errorf("conflict: %s", c)
	}
	if IDL() != tbl {
		t.Error("IDL table must be built once")
	}
}

func TestIDLExpectedAtStart(t *testing.T) {
	tbl := IDL()
	got := map[token.Kind]bool{}
	for _, k := range tbl.Expected(0) {
		got[k] = true
	}
	for _, k := range []token.Kind{token.KwInclude, token.KwSet, token.KwEnum, token.KwBitfield,
		token.KwEntity, token.KwCompound, token.KwConfirmation, token.KwGlobalMethod, token.EOF} {
		if !got[k] {
			t.Errorf("%v must be expected at the start of a file", k)
		}
	}
	if got[token.KwMethod] {
		t.Errorf("'method' is only valid inside an entity")
	}
}

func TestIDLAcceptsDeclarations(t *testing.T) {
	tbl := IDL()
	// compound A { x: opt(1) List(Str[len: 1..5], 2)[cnt: 0+]; }
	in := []token.Kind{
		token.KwCompound, token.TypeIdent, token.LBrace,
		token.Ident, token.Colon, token.KwOpt, token.LParen, token.Number, token.RParen,
		token.TypeIdent, token.LParen,
		token.TypeIdent, token.LBracket, token.Ident, token.Colon, token.Number, token.DotDot, token.Number, token.RBracket,
		token.Comma, token.Number, token.RParen,
		token.LBracket, token.Ident, token.Colon, token.Number, token.Plus, token.RBracket,
		token.Semicolon,
		token.RBrace,
	}
	if !run(t, tbl, in...) {
		t.Error("compound was rejected")
	}
	// confirmation C(0) { response { } }
	conf := []token.Kind{
		token.KwConfirmation, token.TypeIdent, token.LParen, token.Number, token.RParen, token.LBrace,
		token.KwResponse, token.LBrace, token.RBrace, token.RBrace,
	}
	if !run(t, tbl, conf...) {
		t.Error("confirmation was rejected")
	}
}
