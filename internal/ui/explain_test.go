package ui

import (
	"strings"
	"testing"

	"susc/internal/diag"
)

func TestRenderExplanationAnnotatesExamples(t *testing.T) {
	e, ok := diag.Explain(diag.SynUnexpectedToken)
	if !ok {
		t.Fatal("no explanation")
	}
	var examples []string
	out := RenderExplanation(e, func(example string) string {
		examples = append(examples, example)
		return "error here"
	}, false, 0)

	if len(examples) != 1 || !strings.HasPrefix(examples[0], "compound Example {") {
		t.Fatalf("examples = %q", examples)
	}
	if !strings.HasPrefix(out, e.Code.ID()+": ") {
		t.Errorf("header missing:\n%s", out)
	}
	if !strings.Contains(out, "    compound Example {") || !strings.Contains(out, "    error here") {
		t.Errorf("example not indented or annotated:\n%s", out)
	}
	if strings.Contains(out, fence) {
		t.Errorf("fences left in output:\n%s", out)
	}
}

func TestTruncate(t *testing.T) {
	cases := []struct {
		in    string
		width int
		want  string
	}{
		{"short.sus", 20, "short.sus"},
		{"a/very/long/path.sus", 10, "a/very/..."},
		{"abcdef", 2, "ab"},
		{"abc", 0, "abc"},
	}
	for _, c := range cases {
		if got := truncate(c.in, c.width); got != c.want {
			t.Errorf("truncate(%q, %d) = %q, want %q", c.in, c.width, got, c.want)
		}
	}
}
