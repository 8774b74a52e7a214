package things

import (
	"regexp"
	"strings"
	"testing"

	"susc/internal/source"
)

func typ(name string, args ...any) *Type {
	t := &Type{Header: Header{Name: name}}
	for _, a := range args {
		switch a := a.(type) {
		case int:
			t.Args = append(t.Args, TypeArg{Num: int64(a)})
		case *Type:
			t.Args = append(t.Args, TypeArg{Type: a})
		case *Validator:
			t.Validators = append(t.Validators, a)
		}
	}
	return t
}

func val(name string, r Restriction) *Validator {
	return &Validator{Header: Header{Name: name}, Restriction: r}
}

func TestTypeCheck(t *testing.T) {
	known := func(name string) bool { return name == "User" || name == "Entity" }
	re := &Pattern{Source: "a+", Re: regexp.MustCompile("a+")}

	tests := []struct {
		name string
		typ  *Type
		want string // substring of the error, "" for valid
	}{
		{"int ok", typ("Int", 8, val("val", Range{Min: 0, Max: 10})), ""},
		{"int no args", typ("Int"), "requires one argument"},
		{"int zero", typ("Int", 0), "positive integer"},
		{"int type arg", typ("Int", typ("Str")), "positive integer"},
		{"int bad validator", typ("Int", 1, val("len", Range{})), "valid for Int: 'val'"},
		{"int number restriction", typ("Int", 1, val("val", Number(3))), "Int[val] must be a range"},
		{"str ok", typ("Str", val("len", Range{Min: 1, Max: 5}), val("match", re)), ""},
		{"str args", typ("Str", 1), "Str takes no arguments"},
		{"str match not regex", typ("Str", val("match", Range{})), "regular expression"},
		{"str cnt", typ("Str", val("cnt", Range{})), "'len', 'match'"},
		{"list ok", typ("List", typ("User"), 10, val("cnt", Range{Min: 1, Max: 2})), ""},
		{"list one arg", typ("List", typ("Str")), "two arguments"},
		{"list first not type", typ("List", 1, 2), "should be a type"},
		{"list nested error", typ("List", typ("Int"), 2), "requires one argument"},
		{"list zero count", typ("List", typ("Str"), 0), "positive integer"},
		{"bool ok", typ("Bool"), ""},
		{"bool validated", typ("Bool", val("len", Range{})), "can't be validated"},
		{"bin ok", typ("Bin", val("len", Range{Min: 0, Max: 1})), ""},
		{"bin match", typ("Bin", val("match", re)), "valid for Bin: 'len'"},
		{"magic", typ("Entity"), ""},
		{"declared", typ("User"), ""},
		{"unknown", typ("Nope"), "unknown type 'Nope'"},
		{"declared with args", typ("User", 1), "User takes no arguments"},
		{"declared validated", typ("User", val("len", Range{})), "User can't be validated"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.typ.Check(known)
			switch {
			case tt.want == "" && err != nil:
				t.Fatalf("unexpected error: %v", err)
			case tt.want != "" && err == nil:
				t.Fatalf("expected error containing %q", tt.want)
			case tt.want != "" && !strings.Contains(err.Error(), tt.want):
				t.Fatalf("error %q does not contain %q", err, tt.want)
			}
		})
	}
}

func TestShapeCheckAcceptsAnyName(t *testing.T) {
	if err := typ("Whatever").Check(nil); err != nil {
		t.Fatalf("shape check rejected a custom name: %v", err)
	}
	if err := typ("List", typ("Whatever"), 3).Check(nil); err != nil {
		t.Fatalf("shape check rejected a nested custom name: %v", err)
	}
	if err := typ("Whatever", 1).Check(nil); err == nil {
		t.Fatal("shape check accepted arguments on a custom type")
	}
}

func TestIdentifiers(t *testing.T) {
	all := []Thing{
		&Entity{Header: Header{Name: "User"}},
		&Method{Header: Header{Name: "login"}, Global: true},
		&Enum{Header: Header{Name: "ErrorCode"}},
	}
	known := Identifiers(all)
	for _, name := range []string{"User", "ErrorCode", "Entity"} {
		if !known(name) {
			t.Errorf("%s should be known", name)
		}
	}
	if known("login") {
		t.Error("method names must not be type identifiers")
	}
}

func TestDisplay(t *testing.T) {
	one := int64(1)
	e := &Entity{
		Header: Header{Name: "User"},
		Value:  3,
		Fields: []*Field{
			{Header: Header{Name: "id"}, Type: typ("Int", 8)},
			{Header: Header{Name: "name"}, Type: typ("Str", val("len", Range{Min: 3, Max: 8}), val("match", &Pattern{Source: "[a-z]+", Flags: "i"})), Optional: &one},
		},
		Methods: []*Method{{Header: Header{Name: "get"}, Static: true, Value: 127}},
	}
	want := strings.Join([]string{
		"entity User(3) {",
		"    id: Int(8);",
		"    name: opt(1) Str[len: 3..8, match: /[a-z]+/i];",
		"    staticmethod get(127)",
		"}",
	}, "\n")
	if got := Display(e); got != want {
		t.Errorf("Display mismatch\n got:\n%s\nwant:\n%s", got, want)
	}

	open := typ("Int", 2, val("val", Range{Min: 5, Max: 65535, Open: true}))
	if got := open.String(); got != "Int(2)[val: 5+]" {
		t.Errorf("open range = %q", got)
	}
}

func TestAtFindsInnermost(t *testing.T) {
	span := func(s, e uint32) source.Span { return source.Span{File: 1, Start: s, End: e} }
	field := &Field{Header: Header{Name: "id", Span: span(20, 22)}, Type: &Type{Header: Header{Name: "Int", Span: span(24, 27)}}}
	gen := &Method{Header: Header{Name: "get", Span: span(7, 11), Generated: true}}
	e := &Entity{Header: Header{Name: "User", Span: span(7, 11)}, Fields: []*Field{field}, Methods: []*Method{gen}}

	got, chain := At([]Thing{e}, 1, 25)
	if got != field.Type {
		t.Fatalf("At(25) = %v, want the field type", got)
	}
	if len(chain) != 2 || chain[0] != e || chain[1] != field {
		t.Errorf("unexpected chain %v", chain)
	}
	if got, _ := At([]Thing{e}, 1, 8); got != e {
		t.Errorf("At(8) = %v, want the entity, generated methods are skipped", got)
	}
	if got, _ := At([]Thing{e}, 2, 8); got != nil {
		t.Errorf("other file matched: %v", got)
	}
}
