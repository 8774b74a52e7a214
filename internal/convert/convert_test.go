package convert

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"susc/internal/diag"
	"susc/internal/parser"
	"susc/internal/source"
	"susc/internal/things"
)

func convertString(t *testing.T, src string) ([]things.Thing, []diag.Diagnostic) {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.sus", []byte(src))
	bag := diag.NewBag(0)
	rep := diag.BagReporter{Bag: bag}
	res := parser.ParseFile(fs.Get(id), parser.Options{Reporter: rep})
	if res.Aborted {
		t.Fatalf("parse aborted: %+v", bag.Items())
	}
	return New(rep).ConvertFile(res.Tree), bag.Items()
}

func codes(diags []diag.Diagnostic) []diag.Code {
	out := make([]diag.Code, 0, len(diags))
	for _, d := range diags {
		out = append(out, d.Code)
	}
	return out
}

func TestConvertEntity(t *testing.T) {
	src := `@>
    A user of the system.
      Indented line.
<@
entity User(3) {
    id: Int(8);
    @> Display name <@
    name: opt(2) Str[len: 1..32, match: /^[a-z]+$/i];
    staticmethod find(1) {
        query: Str;
        returns { users: List(User, 10)[cnt: 0+]; }
        errors { invalid_id, not_found }
        confirmations { Captcha }
        ratelimit 5 every 2m;
    }
    method rename(2) { name: Str; }
}`
	out, diags := convertString(t, src)
	if len(diags) != 0 {
		t.Fatalf("unexpected diagnostics: %+v", diags)
	}
	if len(out) != 1 {
		t.Fatalf("got %d things", len(out))
	}
	e, ok := out[0].(*things.Entity)
	if !ok {
		t.Fatalf("got %T, want *things.Entity", out[0])
	}
	if e.Name != "User" || e.Value != 3 {
		t.Errorf("header = %s(%d)", e.Name, e.Value)
	}
	if want := "A user of the system.\n  Indented line."; e.Doc != want {
		t.Errorf("doc = %q, want %q", e.Doc, want)
	}
	if e.Span.Start != uint32(strings.Index(src, "User")) {
		t.Errorf("entity span starts at %d", e.Span.Start)
	}

	name := e.Field("name")
	if name == nil || name.Optional == nil || *name.Optional != 2 || name.Doc != "Display name" {
		t.Fatalf("bad name field: %+v", name)
	}
	if got := name.Type.String(); got != "Str[len: 1..32, match: /^[a-z]+$/i]" {
		t.Errorf("name type = %s", got)
	}
	p := name.Type.Validators[1].Restriction.(*things.Pattern)
	if !p.Re.MatchString("ABC") {
		t.Error("case-insensitive flag not applied")
	}

	if len(e.Methods) != 2 {
		t.Fatalf("got %d methods", len(e.Methods))
	}
	find := e.Methods[0]
	if !find.Static || e.Methods[1].Static {
		t.Error("static flags are wrong")
	}
	if diff := cmp.Diff([]string{"invalid_id", "not_found"}, find.Errors); diff != "" {
		t.Errorf("errors (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"Captcha"}, find.Confirmations); diff != "" {
		t.Errorf("confirmations (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(&things.RateLimit{Count: 5, Window: 120000}, find.RateLimit); diff != "" {
		t.Errorf("rate limit (-want +got):\n%s", diff)
	}
	users := find.Returns[0].Type
	if users.Args[0].Type.Name != "User" || users.Args[1].Num != 10 {
		t.Errorf("list args = %s", users)
	}
}

func TestConvertEnumsAndConfirmation(t *testing.T) {
	src := `enum(2) Color { red(0), green(1), }
bitfield(1) Flags { a(0), b(7) }
compound Point { x: Int(4); y: Int(4); }
confirmation Captcha(2) {
    request { url: Str; }
    response { code: Str; }
}
globalmethod ping(5) { }`
	out, diags := convertString(t, src)
	if len(diags) != 0 {
		t.Fatalf("unexpected diagnostics: %+v", diags)
	}
	var kinds []string
	for _, th := range out {
		kinds = append(kinds, th.Kind().String()+" "+th.Head().Name)
	}
	want := []string{"enum Color", "bitfield Flags", "compound Point", "confirmation Captcha", "method ping"}
	if diff := cmp.Diff(want, kinds); diff != "" {
		t.Fatalf("things (-want +got):\n%s", diff)
	}
	color := out[0].(*things.Enum)
	if color.Size != 2 || len(color.Members) != 2 || color.Members[1].Value != 1 {
		t.Errorf("bad enum %s", things.Display(color))
	}
	conf := out[3].(*things.Confirmation)
	if conf.Value != 2 || conf.Request[0].Name != "url" || conf.Response[0].Name != "code" {
		t.Errorf("bad confirmation %s", things.Display(conf))
	}
	if m := out[4].(*things.Method); !m.Global || m.Static || m.Value != 5 {
		t.Errorf("bad global method %+v", m)
	}
}

func TestOpenRangeUpperBound(t *testing.T) {
	src := `compound A {
    a: Int(1)[val: 3+];
    b: Int(8)[val: 0+];
    c: Str[len: 2+];
}`
	out, _ := convertString(t, src)
	fields := out[0].(*things.Compound).Fields
	want := []things.Range{
		{Min: 3, Max: 255, Open: true},
		{Min: 0, Max: 1<<63 - 1, Open: true},
		{Min: 2, Max: 1<<63 - 1, Open: true},
	}
	for i, f := range fields {
		if got := f.Type.Validators[0].Restriction; got != want[i] {
			t.Errorf("%s: got %+v, want %+v", f.Name, got, want[i])
		}
	}
}

func TestDurations(t *testing.T) {
	tests := map[string]int64{
		"7ms": 7,
		"3s":  3000,
		"2h":  2 * 3600 * 1000,
		"1d":  86400000,
		"1mo": 30 * 86400000,
		"1y":  365 * 86400000,
	}
	for lit, want := range tests {
		out, diags := convertString(t, "globalmethod f(0) { ratelimit 1 every "+lit+"; }")
		if len(diags) != 0 {
			t.Errorf("%s: unexpected diagnostics %+v", lit, diags)
			continue
		}
		if got := out[0].(*things.Method).RateLimit.Window; got != want {
			t.Errorf("%s = %d ms, want %d", lit, got, want)
		}
	}
}

func TestInvalidRegexPosition(t *testing.T) {
	src := "compound A { s: Str[match: /ab(c/]; }"
	_, diags := convertString(t, src)
	if diff := cmp.Diff([]diag.Code{diag.SynInvalidRegex}, codes(diags)); diff != "" {
		t.Fatalf("codes (-want +got):\n%s", diff)
	}
	body := uint32(strings.Index(src, "/ab") + 1)
	if got := diags[0].Locations[0].Start; got < body || got > body+4 {
		t.Errorf("error at %d, want inside the body starting at %d", got, body)
	}
}

func TestUnknownRegexFlag(t *testing.T) {
	src := "compound A { s: Str[match: /a/x]; }"
	_, diags := convertString(t, src)
	if diff := cmp.Diff([]diag.Code{diag.SynInvalidRegex}, codes(diags)); diff != "" {
		t.Fatalf("codes (-want +got):\n%s", diff)
	}
	if got, want := diags[0].Locations[0].Start, uint32(strings.Index(src, "x")); got != want {
		t.Errorf("flag error at %d, want %d", got, want)
	}
}

func TestNumberOverflow(t *testing.T) {
	_, diags := convertString(t, "entity A(99999999999999999999) { }")
	if diff := cmp.Diff([]diag.Code{diag.SynInvalidNumber}, codes(diags)); diff != "" {
		t.Fatalf("codes (-want +got):\n%s", diff)
	}
}

func TestDuplicateListMemberWarns(t *testing.T) {
	out, diags := convertString(t, "globalmethod f(0) { errors { a, b, a } }")
	if diff := cmp.Diff([]diag.Code{diag.SynDuplicateListMember}, codes(diags)); diff != "" {
		t.Fatalf("codes (-want +got):\n%s", diff)
	}
	if diags[0].Severity != diag.SevWarning {
		t.Errorf("severity = %v", diags[0].Severity)
	}
	if got := out[0].(*things.Method).Errors; len(got) != 3 {
		t.Errorf("errors = %v, duplicates are kept", got)
	}
}

func TestTypeShapeReportedInline(t *testing.T) {
	_, diags := convertString(t, "compound A { a: Int; b: Bool[len: 1..2]; c: Custom; }")
	if diff := cmp.Diff([]diag.Code{diag.SynTypeShape, diag.SynTypeShape}, codes(diags)); diff != "" {
		t.Fatalf("codes (-want +got):\n%s", diff)
	}
}

func TestDocstring(t *testing.T) {
	tests := []struct{ raw, want string }{
		{"@> simple <@", "simple"},
		{"@>\n    one\n    two\n<@", "one\ntwo"},
		{"@>\n\tfirst\n\n\t  nested\n<@", "first\n\n  nested"},
		{"@><@", ""},
	}
	for _, tt := range tests {
		if got := Docstring(tt.raw); got != tt.want {
			t.Errorf("Docstring(%q) = %q, want %q", tt.raw, got, tt.want)
		}
	}
}
