package parser

import (
	"slices"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"susc/internal/ast"
	"susc/internal/diag"
	"susc/internal/grammar"
	"susc/internal/source"
	"susc/internal/token"
)

func parseString(t *testing.T, src string) (Result, []diag.Diagnostic) {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.sus", []byte(src))
	bag := diag.NewBag(0)
	res := ParseFile(fs.Get(id), Options{Reporter: diag.BagReporter{Bag: bag}})
	return res, bag.Items()
}

func codes(diags []diag.Diagnostic) []diag.Code {
	out := make([]diag.Code, 0, len(diags))
	for _, d := range diags {
		out = append(out, d.Code)
	}
	return out
}

func itemNames(n *ast.Node) []string {
	var out []string
	for _, c := range n.Children {
		out = append(out, c.Name)
	}
	return out
}

func TestParseCleanFile(t *testing.T) {
	src := `include impostor
set output ts
@> A user <@
entity User(0) {
    id: Int(8);
    name: Str[len: 1..32];
    email: opt(0) Str[match: /^.+@.+$/];
    staticmethod find(1) {
        query: Str;
        returns { users: List(User(), 10)[cnt: 0+]; }
        errors { invalid_id, }
        confirmations { Captcha }
        ratelimit 10 every 1m;
    }
    method rename(2) { name: Str; }
}
enum(1) Color { red(0), green(1), blue(2), }
bitfield(1) Flags { }
compound Pair { a: Bool; b: Bin[len: 0..16]; }
confirmation Captcha(0) {
    request { url: Str; }
    response { answer: Str; }
}
globalmethod ping(0) { }
`
	res, diags := parseString(t, src)
	if len(diags) != 0 {
		t.Fatalf("unexpected diagnostics: %+v", diags)
	}
	if res.Aborted || res.Tree == nil {
		t.Fatalf("parse aborted")
	}
	want := []string{
		grammar.NInclude, grammar.NSetting, grammar.NEntity, grammar.NEnum, grammar.NBitfield,
		grammar.NCompound, grammar.NConfirmation, grammar.NGlobalMethod,
	}
	if diff := cmp.Diff(want, itemNames(res.Tree)); diff != "" {
		t.Errorf("items mismatch (-want +got):\n%s", diff)
	}

	entity := res.Tree.Children[2]
	if entity.Doc == nil || entity.Doc.Text != "@> A user <@" {
		t.Errorf("entity docstring not attached: %+v", entity.Doc)
	}
	wantEntity := []string{"", "", grammar.NField, grammar.NField, grammar.NField, grammar.NStaticMethod, grammar.NNormalMethod}
	if diff := cmp.Diff(wantEntity, itemNames(entity)); diff != "" {
		t.Errorf("entity children mismatch (-want +got):\n%s", diff)
	}
}

func TestParseEmptyFile(t *testing.T) {
	res, diags := parseString(t, "  # only a comment\n")
	if res.Tree == nil || len(res.Tree.Children) != 0 || len(diags) != 0 {
		t.Fatalf("expected an empty tree, got %+v %+v", res.Tree, diags)
	}
}

func TestRecoverPascalCase(t *testing.T) {
	res, diags := parseString(t, "compound example { }")
	if diff := cmp.Diff([]diag.Code{diag.SynNamingConvention}, codes(diags)); diff != "" {
		t.Fatalf("codes mismatch (-want +got):\n%s", diff)
	}
	name, _ := res.Tree.Children[0].Token(token.TypeIdent)
	if name.Text != "Example" {
		t.Errorf("name = %q, want Example", name.Text)
	}
}

func TestRecoverSnakeCase(t *testing.T) {
	res, diags := parseString(t, "compound A { myField: Str; }")
	if diff := cmp.Diff([]diag.Code{diag.SynNamingConvention}, codes(diags)); diff != "" {
		t.Fatalf("codes mismatch (-want +got):\n%s", diff)
	}
	field := res.Tree.Children[0].Child(grammar.NField)
	name, _ := field.Token(token.Ident)
	if name.Text != "myfield" {
		t.Errorf("name = %q, want myfield", name.Text)
	}
}

func TestRecoverMissingSemicolon(t *testing.T) {
	res, diags := parseString(t, "compound A {\n  a: Str\n  b: Str;\n}")
	if diff := cmp.Diff([]diag.Code{diag.SynMissingPunctuation}, codes(diags)); diff != "" {
		t.Fatalf("codes mismatch (-want +got):\n%s", diff)
	}
	if got := len(res.Tree.Children[0].ChildrenNamed(grammar.NField)); got != 2 {
		t.Errorf("expected both fields to survive, got %d", got)
	}
}

func TestRecoverMissingCloseParenAndSemicolon(t *testing.T) {
	res, diags := parseString(t, "compound A {\n  a: Str;\n  b: Bool(\n}")
	if res.Aborted {
		t.Fatalf("parse aborted: %+v", diags)
	}
	if diff := cmp.Diff([]diag.Code{diag.SynMissingPunctuation}, codes(diags)); diff != "" {
		t.Fatalf("codes mismatch (-want +got):\n%s", diff)
	}
	if !strings.Contains(diags[0].Message, "')' and ';'") {
		t.Errorf("message = %q", diags[0].Message)
	}
	if got := len(res.Tree.Children[0].ChildrenNamed(grammar.NField)); got != 2 {
		t.Errorf("expected both fields to survive, got %d", got)
	}
}

func TestRecoverMissingValue(t *testing.T) {
	res, diags := parseString(t, "entity Example { }\nenum Color { red(0) }")
	if diff := cmp.Diff([]diag.Code{diag.SynMissingValue, diag.SynMissingValue}, codes(diags)); diff != "" {
		t.Fatalf("codes mismatch (-want +got):\n%s", diff)
	}
	num, ok := res.Tree.Children[0].Token(token.Number)
	if !ok || num.Text != "0" || !num.Synthetic {
		t.Errorf("expected synthesized value 0, got %+v", num)
	}
}

func TestRecoverMissingName(t *testing.T) {
	res, diags := parseString(t, "compound { a: Str; }")
	if diff := cmp.Diff([]diag.Code{diag.SynMissingName}, codes(diags)); diff != "" {
		t.Fatalf("codes mismatch (-want +got):\n%s", diff)
	}
	name, _ := res.Tree.Children[0].Token(token.TypeIdent)
	if name.Text != "Unnamed" {
		t.Errorf("name = %q", name.Text)
	}
}

func TestRecoverMissingNameBeforeValue(t *testing.T) {
	for _, tc := range []struct {
		src   string
		kind  token.Kind
		name  string
		codes []diag.Code
	}{
		{"entity { id: Int(8); }", token.TypeIdent, "Unnamed", []diag.Code{diag.SynMissingName, diag.SynMissingValue}},
		{"entity (3) { id: Int(8); }", token.TypeIdent, "Unnamed", []diag.Code{diag.SynMissingName}},
		{"globalmethod (0) { }", token.Ident, "unnamed", []diag.Code{diag.SynMissingName}},
		{"globalmethod { }", token.Ident, "unnamed", []diag.Code{diag.SynMissingName, diag.SynMissingValue}},
	} {
		res, diags := parseString(t, tc.src)
		if res.Aborted {
			t.Errorf("%q: aborted, diagnostics %+v", tc.src, diags)
			continue
		}
		if diff := cmp.Diff(tc.codes, codes(diags)); diff != "" {
			t.Errorf("%q: codes mismatch (-want +got):\n%s", tc.src, diff)
		}
		if name, _ := res.Tree.Children[0].Token(tc.kind); name.Text != tc.name {
			t.Errorf("%q: name = %q", tc.src, name.Text)
		}
	}
}

func TestRecoverChainsRepairs(t *testing.T) {
	src := "entity Foo(0) { id: Int(8); bad bad bad; }\ncompound B { x: Str; }"
	res, diags := parseString(t, src)
	if res.Aborted {
		t.Fatalf("aborted, diagnostics %+v", diags)
	}
	want := []diag.Code{diag.SynMissingPunctuation, diag.SynNamingConvention, diag.SynMissingPunctuation, diag.SynDiscardedConstruct}
	if diff := cmp.Diff(want, codes(diags)); diff != "" {
		t.Errorf("codes mismatch (-want +got):\n%s", diff)
	}
	if got := itemNames(res.Tree); !slices.Equal(got, []string{grammar.NEntity, grammar.NCompound}) {
		t.Fatalf("items = %v", got)
	}
	if n := len(res.Tree.Children[1].ChildrenNamed(grammar.NField)); n != 1 {
		t.Errorf("the next declaration must survive, has %d fields", n)
	}
}

func TestRecoverUnmatchedBrace(t *testing.T) {
	res, diags := parseString(t, "compound A { x: Str; } }\ncompound B { }")
	if diff := cmp.Diff([]diag.Code{diag.SynDiscardedConstruct}, codes(diags)); diff != "" {
		t.Fatalf("codes mismatch (-want +got):\n%s", diff)
	}
	if got := itemNames(res.Tree); !slices.Equal(got, []string{grammar.NCompound, grammar.NCompound}) {
		t.Fatalf("items = %v", got)
	}
	if n := len(res.Tree.Children[0].ChildrenNamed(grammar.NField)); n != 1 {
		t.Errorf("the closed declaration lost its fields, has %d", n)
	}
}

func TestRecoverUnwindOnBrace(t *testing.T) {
	src := "compound A {\n  a: Str;\n  b: \n}\ncompound B { c: Str; }"
	res, diags := parseString(t, src)
	if diff := cmp.Diff([]diag.Code{diag.SynDiscardedConstruct}, codes(diags)); diff != "" {
		t.Fatalf("codes mismatch (-want +got):\n%s", diff)
	}
	if got := itemNames(res.Tree); !slices.Equal(got, []string{grammar.NCompound, grammar.NCompound}) {
		t.Fatalf("items = %v", got)
	}
	if n := len(res.Tree.Children[0].ChildrenNamed(grammar.NField)); n != 0 {
		t.Errorf("the broken block should be emptied, has %d fields", n)
	}
	if n := len(res.Tree.Children[1].ChildrenNamed(grammar.NField)); n != 1 {
		t.Errorf("the next declaration must survive, has %d fields", n)
	}
}

func TestRecoverUnwindOnSemicolon(t *testing.T) {
	src := "compound A {\n  a: ;\n  b: Str;\n}\ncompound B { }"
	res, diags := parseString(t, src)
	if diff := cmp.Diff([]diag.Code{diag.SynDiscardedConstruct}, codes(diags)); diff != "" {
		t.Fatalf("codes mismatch (-want +got):\n%s", diff)
	}
	if got := itemNames(res.Tree); !slices.Equal(got, []string{grammar.NCompound, grammar.NCompound}) {
		t.Fatalf("items = %v", got)
	}
}

func TestAbortKeepsIncludes(t *testing.T) {
	src := "include impostor\nset output ts\ncompound A { 5 }\n"
	res, diags := parseString(t, src)
	if !res.Aborted || res.Tree != nil {
		t.Fatalf("expected abort")
	}
	last := diags[len(diags)-1]
	if last.Code != diag.SynUnexpectedToken || !strings.Contains(last.Message, "Expected one of") {
		t.Errorf("last diagnostic = %+v", last)
	}
	var names []string
	for _, n := range res.Partial {
		names = append(names, n.Name)
	}
	if !slices.Contains(names, grammar.NInclude) || !slices.Contains(names, grammar.NSetting) {
		t.Errorf("partial items = %v", names)
	}
}

func TestContextualKeywordAsFieldName(t *testing.T) {
	res, diags := parseString(t, "compound A { entity: Str; errors: Str; }\nglobalmethod m(0) { errors: Int(1); errors { x } }")
	if len(diags) != 0 {
		t.Fatalf("unexpected diagnostics: %+v", diags)
	}
	fields := res.Tree.Children[0].ChildrenNamed(grammar.NField)
	if len(fields) != 2 {
		t.Fatalf("fields = %d", len(fields))
	}
	if name, _ := fields[0].Token(token.Ident); name.Text != "entity" {
		t.Errorf("name = %q", name.Text)
	}
	method := res.Tree.Children[1]
	if method.Child(grammar.NField) == nil || method.Child(grammar.NErrors) == nil {
		t.Errorf("method children = %v", itemNames(method))
	}
}

func TestRepairBudget(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("t.sus", []byte("compound a {} compound b {} compound c {}"))
	bag := diag.NewBag(0)
	res := ParseFile(fs.Get(id), Options{Reporter: diag.BagReporter{Bag: bag}, MaxRepairs: 2})
	if !res.Aborted {
		t.Fatal("expected abort after the repair budget")
	}
	if got := bag.Items()[len(bag.Items())-1].Code; got != diag.SynTooManyRepairs {
		t.Errorf("last code = %v", got)
	}
}

func TestInsight(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("t.sus", []byte("compound A {\n  a: \n}\n"))
	f := fs.Get(id)

	in, ok := InsightAt(f, f.Offset(2, 6))
	if !ok {
		t.Fatal("expected an insight")
	}
	if !slices.Contains(in.Expected, token.TypeIdent) || !slices.Contains(in.Expected, token.KwOpt) {
		t.Errorf("expected = %v", in.Expected)
	}
	top := in.Stack[len(in.Stack)-1]
	if !top.IsLeaf() || top.Tok.Kind != token.Colon {
		t.Errorf("top of stack = %+v", top)
	}

	if _, ok := InsightAt(f, 0); ok {
		t.Error("an empty prefix parses cleanly")
	}
	whole := fs.AddVirtual("ok.sus", []byte("compound A { }\n"))
	if _, ok := InsightAt(fs.Get(whole), uint32(len(fs.Get(whole).Content))); ok {
		t.Error("a complete file has no insight")
	}
}
