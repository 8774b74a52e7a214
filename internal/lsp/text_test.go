package lsp

import (
	"testing"

	"susc/internal/source"
)

func TestApplyChanges(t *testing.T) {
	text := "compound A {\n  a: Str;\n}\n"
	got := applyChanges(text, []contentChange{
		{Range: &lspRange{Start: position{1, 5}, End: position{1, 8}}, Text: "Int(1)"},
		{Range: &lspRange{Start: position{0, 9}, End: position{0, 10}}, Text: "Apple"},
	})
	if want := "compound Apple {\n  a: Int(1);\n}\n"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
	if got := applyChanges(text, []contentChange{{Text: "x"}}); got != "x" {
		t.Errorf("full replace gave %q", got)
	}
	// positions past the end clamp
	if got := applyChanges("ab", []contentChange{
		{Range: &lspRange{Start: position{5, 0}, End: position{9, 9}}, Text: "!"},
	}); got != "ab!" {
		t.Errorf("got %q", got)
	}
}

func TestPositionsCountUTF16(t *testing.T) {
	fs := source.NewFileSet()
	// "é" is 2 bytes and 1 unit, "𝄞" is 4 bytes and 2 units
	id := fs.AddVirtual("t.sus", []byte("a\né𝄞x\n"))
	f := fs.Get(id)

	if off := offsetAt(f, position{Line: 1, Character: 3}); off != 8 {
		t.Errorf("offsetAt = %d, want 8", off)
	}
	if pos := positionAt(f, 8); pos != (position{Line: 1, Character: 3}) {
		t.Errorf("positionAt = %+v", pos)
	}
	if off := offsetAt(f, position{Line: 1, Character: 99}); off != 9 {
		t.Errorf("offsetAt clamps to the line end, got %d", off)
	}
	if off := offsetAt(f, position{Line: 7}); int(off) != len(f.Content) {
		t.Errorf("offsetAt past the last line = %d", off)
	}
	if off := offsetInText("a\né𝄞x\n", position{Line: 1, Character: 3}); off != 8 {
		t.Errorf("offsetInText = %d, want 8", off)
	}
}
