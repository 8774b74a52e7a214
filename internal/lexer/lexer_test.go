package lexer_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"susc/internal/diag"
	"susc/internal/lexer"
	"susc/internal/source"
	"susc/internal/token"
)

func lexString(t *testing.T, src string) ([]token.Token, *diag.Bag) {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.sus", []byte(src))
	bag := diag.NewBag(100)
	toks := lexer.All(fs.Get(id), lexer.Options{Reporter: diag.BagReporter{Bag: bag}})
	return toks, bag
}

func kinds(toks []token.Token) []token.Kind {
	out := make([]token.Kind, 0, len(toks))
	for _, t := range toks {
		out = append(out, t.Kind)
	}
	return out
}

func texts(toks []token.Token) []string {
	out := make([]string, 0, len(toks))
	for _, t := range toks {
		out = append(out, t.Text)
	}
	return out
}

func TestLexEntityHeader(t *testing.T) {
	toks, bag := lexString(t, "entity User(0) {\n  id: Int(8);\n}")
	want := []token.Kind{
		token.KwEntity, token.TypeIdent, token.LParen, token.Number, token.RParen, token.LBrace,
		token.Ident, token.Colon, token.TypeIdent, token.LParen, token.Number, token.RParen, token.Semicolon,
		token.RBrace, token.EOF,
	}
	if diff := cmp.Diff(want, kinds(toks)); diff != "" {
		t.Errorf("kinds mismatch (-want +got):\n%s", diff)
	}
	if bag.Len() != 0 {
		t.Errorf("unexpected diagnostics: %+v", bag.Items())
	}
}

func TestClassifyIdent(t *testing.T) {
	tests := map[string]token.Kind{
		"Foo":      token.TypeIdent,
		"FooBar2":  token.TypeIdent,
		"foo":      token.Ident,
		"foo_bar2": token.Ident,
		"_hidden":  token.Ident,
		"myField":  token.BadIdent,
		"My_Type":  token.BadIdent,
	}
	for in, want := range tests {
		if got := lexer.ClassifyIdent(in); got != want {
			t.Errorf("ClassifyIdent(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestLexValidators(t *testing.T) {
	toks, bag := lexString(t, "Str[len: 1..32, match: /^[a-z]+\\/x$/i] Int(2)[val: -5+]")
	want := []string{
		"Str", "[", "len", ":", "1", "..", "32", ",", "match", ":", `/^[a-z]+\/x$/i`, "]",
		"Int", "(", "2", ")", "[", "val", ":", "-5", "+", "]", "",
	}
	if diff := cmp.Diff(want, texts(toks)); diff != "" {
		t.Errorf("texts mismatch (-want +got):\n%s", diff)
	}
	if toks[10].Kind != token.Regex {
		t.Errorf("expected regex token, got %v", toks[10].Kind)
	}
	if bag.Len() != 0 {
		t.Errorf("unexpected diagnostics: %+v", bag.Items())
	}
}

func TestLexDuration(t *testing.T) {
	toks, _ := lexString(t, "ratelimit 10 every 5mo;")
	want := []token.Kind{token.KwRateLimit, token.Number, token.KwEvery, token.Duration, token.Semicolon, token.EOF}
	if diff := cmp.Diff(want, kinds(toks)); diff != "" {
		t.Errorf("kinds mismatch (-want +got):\n%s", diff)
	}
	if toks[3].Text != "5mo" {
		t.Errorf("duration text = %q", toks[3].Text)
	}
}

func TestLexBadNumberSuffix(t *testing.T) {
	toks, bag := lexString(t, "12abc")
	if toks[0].Kind != token.Number || toks[0].Text != "12" {
		t.Errorf("got %v %q", toks[0].Kind, toks[0].Text)
	}
	if bag.Len() != 1 || bag.Items()[0].Code != diag.LexBadNumber {
		t.Errorf("expected one LexBadNumber, got %+v", bag.Items())
	}
}

func TestLexIncludeAndSet(t *testing.T) {
	toks, bag := lexString(t, "include impostor.sus\ninclude \"dir/a b.sus\"\nset output ts py  \nset html_topbar_title My API # not a comment\n")
	want := []token.Kind{
		token.KwInclude, token.Path,
		token.KwInclude, token.Path,
		token.KwSet, token.Ident, token.Value,
		token.KwSet, token.Ident, token.Value,
		token.EOF,
	}
	if diff := cmp.Diff(want, kinds(toks)); diff != "" {
		t.Fatalf("kinds mismatch (-want +got):\n%s", diff)
	}
	if toks[1].Text != "impostor.sus" || toks[3].Text != `"dir/a b.sus"` {
		t.Errorf("paths: %q %q", toks[1].Text, toks[3].Text)
	}
	if toks[6].Text != "ts py" {
		t.Errorf("value = %q", toks[6].Text)
	}
	if sp := toks[6].Span; sp.Len() != uint32(len("ts py")) {
		t.Errorf("value span %v ends past the trimmed text", sp)
	}
	if toks[9].Text != "My API # not a comment" {
		t.Errorf("value = %q", toks[9].Text)
	}
	if bag.Len() != 0 {
		t.Errorf("unexpected diagnostics: %+v", bag.Items())
	}
}

func TestLexSetInsideBraceIsKeyword(t *testing.T) {
	// внутри фигурных скобок `set` не включает режим значения
	toks, _ := lexString(t, "compound A { set: Str; }")
	want := []token.Kind{
		token.KwCompound, token.TypeIdent, token.LBrace,
		token.KwSet, token.Colon, token.TypeIdent, token.Semicolon,
		token.RBrace, token.EOF,
	}
	if diff := cmp.Diff(want, kinds(toks)); diff != "" {
		t.Errorf("kinds mismatch (-want +got):\n%s", diff)
	}
}

func TestDocstringIsLeadingTrivia(t *testing.T) {
	toks, bag := lexString(t, "# comment\n@> Describes\n   a user <@\nentity User(1) {}")
	if toks[0].Kind != token.KwEntity {
		t.Fatalf("first token = %v", toks[0].Kind)
	}
	doc, ok := toks[0].Doc()
	if !ok {
		t.Fatalf("docstring not attached")
	}
	if doc.Text != "@> Describes\n   a user <@" {
		t.Errorf("doc = %q", doc.Text)
	}
	if bag.Len() != 0 {
		t.Errorf("unexpected diagnostics: %+v", bag.Items())
	}
}

func TestUnterminatedDocstring(t *testing.T) {
	_, bag := lexString(t, "@> never closed\nentity")
	if bag.Len() != 1 || bag.Items()[0].Code != diag.LexUnterminatedDocstring {
		t.Errorf("expected LexUnterminatedDocstring, got %+v", bag.Items())
	}
}

func TestUnknownCharacterSkipped(t *testing.T) {
	toks, bag := lexString(t, "compound A $ { }")
	want := []token.Kind{token.KwCompound, token.TypeIdent, token.LBrace, token.RBrace, token.EOF}
	if diff := cmp.Diff(want, kinds(toks)); diff != "" {
		t.Errorf("kinds mismatch (-want +got):\n%s", diff)
	}
	if bag.Len() != 1 || bag.Items()[0].Code != diag.LexUnknownChar {
		t.Errorf("expected one LexUnknownChar, got %+v", bag.Items())
	}
}

func TestLimit(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("t.sus", []byte("compound Abc { }"))
	toks := lexer.All(fs.Get(id), lexer.Options{Limit: 11})
	want := []string{"compound", "Ab", ""}
	if diff := cmp.Diff(want, texts(toks)); diff != "" {
		t.Errorf("texts mismatch (-want +got):\n%s", diff)
	}
}

func TestPeekDoesNotConsume(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("t.sus", []byte("enum(1)"))
	lx := lexer.New(fs.Get(id), lexer.Options{})
	if lx.Peek().Kind != token.KwEnum || lx.Next().Kind != token.KwEnum {
		t.Fatalf("peek/next mismatch")
	}
	if lx.Next().Kind != token.LParen {
		t.Fatalf("expected '('")
	}
}
