package driver

import (
	"context"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"susc/internal/diag"
	"susc/internal/things"
	"susc/internal/token"
)

func writeFile(t *testing.T, dir, name, text string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(p), 0o750); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(p, []byte(text), 0o600); err != nil {
		t.Fatal(err)
	}
	return p
}

func parseText(t *testing.T, text string) (*Unit, []things.Thing, []diag.Diagnostic) {
	t.Helper()
	t.Setenv(StdlibEnv, "")
	u := New(Options{})
	u.LoadFromText(text, "")
	all, diags, err := u.Parse(context.Background())
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	return u, all, diags
}

func codes(diags []diag.Diagnostic) []diag.Code {
	out := make([]diag.Code, 0, len(diags))
	for _, d := range diags {
		out = append(out, d.Code)
	}
	return out
}

func names(all []things.Thing) []string {
	out := make([]string, 0, len(all))
	for _, t := range all {
		out = append(out, t.Head().Name)
	}
	return out
}

func TestIncludeBundledStdlib(t *testing.T) {
	u, all, diags := parseText(t, "include impostor\nglobalmethod ping(0) { errors { rate_limit } }\n")
	if len(diags) != 0 {
		t.Fatalf("unexpected diagnostics: %+v", diags)
	}
	deps := u.Dependencies()
	if len(deps) != 1 || deps[0].Path() != "<stdlib>/impostor.sus" {
		t.Fatalf("dependencies = %v", deps)
	}
	got := names(all)
	if got[0] != "ping" || !slices.Contains(got, "ErrorCode") || !slices.Contains(got, "Captcha") {
		t.Errorf("things = %v", got)
	}
}

func TestIncludeRelativeToFile(t *testing.T) {
	t.Setenv(StdlibEnv, "")
	dir := t.TempDir()
	root := writeFile(t, dir, "api/main.sus", "include types\ncompound A { b: B; }\n")
	writeFile(t, dir, "api/types.sus", "compound B { x: Str; }\n")

	u := New(Options{})
	if err := u.LoadFromFile(root); err != nil {
		t.Fatal(err)
	}
	all, diags, err := u.Parse(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(diags) != 0 {
		t.Fatalf("unexpected diagnostics: %+v", diags)
	}
	if diff := cmp.Diff([]string{"A", "B"}, names(all)); diff != "" {
		t.Errorf("flatten order (-want +got):\n%s", diff)
	}
	if own := u.Dependencies()[0].Things(); len(own) != 1 || own[0].Head().Name != "B" {
		t.Errorf("dependency things = %v", names(own))
	}
}

func TestIncludeNotFound(t *testing.T) {
	_, _, diags := parseText(t, "include nowhere/at_all\n")
	if diff := cmp.Diff([]diag.Code{diag.ResIncludeNotFound}, codes(diags)); diff != "" {
		t.Fatalf("codes (-want +got):\n%s", diff)
	}
	lines := strings.Split(diags[0].Message, "\n")
	// as written and next to the text coincide
	if len(lines) != 1+4 {
		t.Fatalf("message lists %d candidates, want 4:\n%s", len(lines)-1, diags[0].Message)
	}
	if !strings.HasSuffix(lines[len(lines)-1], "<stdlib>/nowhere/at_all.sus") {
		t.Errorf("last candidate = %q", lines[len(lines)-1])
	}
}

func TestDuplicateInclude(t *testing.T) {
	u, _, diags := parseText(t, "include impostor\ninclude impostor.sus\n")
	if diff := cmp.Diff([]diag.Code{diag.ResDuplicateInclude}, codes(diags)); diff != "" {
		t.Fatalf("codes (-want +got):\n%s", diff)
	}
	loc := u.FileSet().Location(diags[0].Locations[0])
	if loc.Line != 2 {
		t.Errorf("reported at %s, want the second include", loc)
	}
	if len(u.Dependencies()) != 1 {
		t.Errorf("dependencies = %d", len(u.Dependencies()))
	}
}

func TestSettings(t *testing.T) {
	t.Setenv(StdlibEnv, "")
	u := New(Options{Settings: map[string]string{"output": "go", "html_topbar_title": "API"}})
	u.LoadFromText("set outptu rust\nset output ts\n", "")
	_, diags, err := u.Parse(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]diag.Code{diag.ResUnknownSetting}, codes(diags)); diff != "" {
		t.Fatalf("codes (-want +got):\n%s", diff)
	}
	want := map[string]string{"outptu": "rust", "output": "ts", "html_topbar_title": "API"}
	if diff := cmp.Diff(want, u.Settings()); diff != "" {
		t.Errorf("settings (-want +got):\n%s", diff)
	}
}

func TestGeneratedEntityExtras(t *testing.T) {
	src := `include impostor
entity User(1) {
    id: Int(8);
    name: opt(0) Str;
    bio: opt(9) Str;
}
`
	_, all, diags := parseText(t, src)
	if len(diags) != 0 {
		t.Fatalf("unexpected diagnostics: %+v", diags)
	}
	user := things.Lookup(all, "User").(*things.Entity)
	static, instance := user.StaticMethods(), user.InstanceMethods()
	if len(static) != 1 || static[0].Name != "get" || static[0].Value != GeneratedMethodValue {
		t.Errorf("static methods = %+v", static)
	}
	if len(instance) != 1 || instance[0].Name != "update" || instance[0].Value != GeneratedMethodValue {
		t.Errorf("instance methods = %+v", instance)
	}
	if got := static[0].Returns[0].Type.Name; got != "User" {
		t.Errorf("get returns %s", got)
	}

	sel, ok := things.Lookup(all, "UserFieldSelect").(*things.Bitfield)
	if !ok {
		t.Fatalf("no field select bitfield in %v", names(all))
	}
	if sel.Size != 2 || len(sel.Members) != 2 || sel.Members[1].Value != 9 {
		t.Errorf("field select = size %d, %d members", sel.Size, len(sel.Members))
	}
}

func TestGeneratedMethodCollides(t *testing.T) {
	src := `include impostor
entity User(1) {
    id: Int(8);
    staticmethod fetch(127) { }
}
`
	_, all, diags := parseText(t, src)
	if diff := cmp.Diff([]diag.Code{diag.LnkValueCollision}, codes(diags)); diff != "" {
		t.Fatalf("codes (-want +got):\n%s", diff)
	}
	if things.Lookup(all, "UserFieldSelect") != nil {
		t.Error("an entity without optional fields has no field select")
	}
}

func TestEntityFieldClashes(t *testing.T) {
	for _, tc := range []struct {
		fields string
		want   diag.Code
	}{
		{"a: opt(44) Str; b: opt(44) Str;", diag.LnkDuplicateOptional},
		{"a: opt(1) Str; a: opt(2) Str;", diag.LnkDuplicateField},
	} {
		_, _, diags := parseText(t, "include impostor\nentity Foo(0) { id: Int(8); "+tc.fields+" }\n")
		if diff := cmp.Diff([]diag.Code{tc.want}, codes(diags)); diff != "" {
			t.Errorf("%s: codes (-want +got):\n%s", tc.fields, diff)
		}
	}
}

func TestMissingIDWithoutErrorCodeEnum(t *testing.T) {
	_, _, diags := parseText(t, "entity Foo(0) { name: Str; }\n")
	got := codes(diags)
	if !slices.Contains(got, diag.LnkMissingID) || !slices.Contains(got, diag.LnkNoErrorCodeEnum) {
		t.Fatalf("codes = %v", got)
	}
	for _, d := range diags {
		if d.Code == diag.LnkNoErrorCodeEnum && len(d.Locations) != 0 {
			t.Errorf("the missing ErrorCode enum is located at %v", d.Locations)
		}
	}
}

func TestAbortedFileKeepsIncludes(t *testing.T) {
	u, all, diags := parseText(t, "include impostor\ncompound A { 5 }\n")
	if !u.Aborted() {
		t.Fatal("expected an aborted parse")
	}
	if !diag.HasErrors(diags) {
		t.Error("an aborted parse reports an error")
	}
	got := names(all)
	if slices.Contains(got, "A") || !slices.Contains(got, "ErrorCode") {
		t.Errorf("things = %v", got)
	}
}

func TestInsight(t *testing.T) {
	u := New(Options{})
	u.LoadFromText("compound A {\n  a: \n}\n", "")
	in, ok := u.Insight(2, 6)
	if !ok {
		t.Fatal("expected an insight")
	}
	if !slices.Contains(in.Expected, token.TypeIdent) {
		t.Errorf("expected = %v", in.Expected)
	}
	if _, ok := New(Options{}).Insight(1, 1); ok {
		t.Error("an unloaded unit has no insight")
	}
}

func TestParseBeforeLoad(t *testing.T) {
	if _, _, err := New(Options{}).Parse(context.Background()); err == nil {
		t.Error("expected an error")
	}
}

func TestUnreadableIncludeIsHardError(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("permissions are not enforced for root")
	}
	t.Setenv(StdlibEnv, "")
	dir := t.TempDir()
	root := writeFile(t, dir, "main.sus", "include secret\n")
	secret := writeFile(t, dir, "secret.sus", "compound S { }\n")
	if err := os.Chmod(secret, 0); err != nil {
		t.Fatal(err)
	}

	u := New(Options{})
	if err := u.LoadFromFile(root); err != nil {
		t.Fatal(err)
	}
	_, _, err := u.Parse(context.Background())
	if err == nil || !strings.Contains(err.Error(), "secret.sus") {
		t.Errorf("err = %v", err)
	}
}

func TestStdlibDirOverride(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "custom.sus", "compound Custom { }\n")
	t.Setenv(StdlibEnv, dir)

	u := New(Options{})
	u.LoadFromText("include custom\n", "")
	all, diags, err := u.Parse(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(diags) != 0 || things.Lookup(all, "Custom") == nil {
		t.Errorf("things = %v, diagnostics = %+v", names(all), diags)
	}
}

func TestIncludable(t *testing.T) {
	t.Setenv(StdlibEnv, "")
	dir := t.TempDir()
	root := writeFile(t, dir, "main.sus", "")
	writeFile(t, dir, "types.sus", "")
	writeFile(t, dir, "sub/more.sus", "")
	writeFile(t, dir, "notes.txt", "")
	writeFile(t, dir, ".git/hidden.sus", "")

	u := New(Options{})
	if err := u.LoadFromFile(root); err != nil {
		t.Fatal(err)
	}
	want := []string{"impostor", "sub/more", "types"}
	if diff := cmp.Diff(want, u.Includable()); diff != "" {
		t.Errorf("includable (-want +got):\n%s", diff)
	}
}
