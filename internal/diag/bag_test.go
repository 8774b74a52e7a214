package diag

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"susc/internal/source"
)

func sp(start uint32) source.Span {
	return source.Span{File: 0, Start: start, End: start + 1}
}

func TestSortAndDedupCollapsesSameLocation(t *testing.T) {
	items := []Diagnostic{
		{Severity: SevWarning, Code: LnkValueOverflow, Message: "warn", Locations: []source.Span{sp(1)}},
		{Severity: SevError, Code: LnkTypeError, Message: "err", Locations: []source.Span{sp(1)}},
	}
	got := SortAndDedup(items)
	if len(got) != 1 || got[0].Severity != SevError {
		t.Fatalf("expected only the error to survive, got %+v", got)
	}
}

func TestSortAndDedupKeepsEarlierOnTie(t *testing.T) {
	items := []Diagnostic{
		{Severity: SevError, Code: LnkTypeError, Message: "first", Locations: []source.Span{sp(1)}},
		{Severity: SevError, Code: SynTypeShape, Message: "second", Locations: []source.Span{sp(1)}},
	}
	got := SortAndDedup(items)
	if len(got) != 1 || got[0].Message != "first" {
		t.Fatalf("got %+v", got)
	}
}

func TestSortAndDedupPartialCoverage(t *testing.T) {
	items := []Diagnostic{
		{Severity: SevError, Message: "a", Locations: []source.Span{sp(1), sp(2)}},
		{Severity: SevError, Message: "b", Locations: []source.Span{sp(2)}},        // covered
		{Severity: SevError, Message: "c", Locations: []source.Span{sp(2), sp(3)}}, // sp(3) is new
	}
	got := SortAndDedup(items)
	var msgs []string
	for _, d := range got {
		msgs = append(msgs, d.Message)
	}
	if diff := cmp.Diff([]string{"a", "c"}, msgs); diff != "" {
		t.Errorf("messages mismatch (-want +got):\n%s", diff)
	}
}

func TestSortAndDedupOrder(t *testing.T) {
	items := []Diagnostic{
		{Severity: SevInfo, Message: "i", Locations: []source.Span{sp(1)}},
		{Severity: SevWarning, Message: "w", Locations: []source.Span{sp(2)}},
		{Severity: SevError, Message: "e1", Locations: []source.Span{sp(3)}},
		{Severity: SevError, Message: "e2", Locations: []source.Span{sp(4)}},
	}
	got := SortAndDedup(items)
	var msgs []string
	for _, d := range got {
		msgs = append(msgs, d.Message)
	}
	if diff := cmp.Diff([]string{"e1", "e2", "w", "i"}, msgs); diff != "" {
		t.Errorf("order mismatch (-want +got):\n%s", diff)
	}
	// вход не должен меняться
	if items[0].Message != "i" {
		t.Errorf("input slice was reordered")
	}
}

func TestSortAndDedupLocationless(t *testing.T) {
	items := []Diagnostic{
		{Severity: SevError, Code: IOLoadFileFail, Message: "cannot read a.sus"},
		{Severity: SevError, Code: IOLoadFileFail, Message: "cannot read a.sus"},
		{Severity: SevError, Code: IOLoadFileFail, Message: "cannot read b.sus"},
	}
	if got := SortAndDedup(items); len(got) != 2 {
		t.Fatalf("expected 2 diagnostics, got %d", len(got))
	}
}

func TestBagLimit(t *testing.T) {
	b := NewBag(2)
	for i := 0; i < 3; i++ {
		b.Add(Diagnostic{Severity: SevWarning, Locations: []source.Span{sp(uint32(i))}})
	}
	if b.Len() != 2 {
		t.Fatalf("expected limit of 2, got %d", b.Len())
	}
	if b.HasErrors() {
		t.Errorf("no errors were added")
	}
	if Count(b.Items(), SevWarning) != 2 {
		t.Errorf("warnings = %d", Count(b.Items(), SevWarning))
	}
}

func TestCodeIDsAndRanges(t *testing.T) {
	tests := []struct {
		code  Code
		id    string
		phase string
	}{
		{LexUnknownChar, "LEX1001", "lexer"},
		{SynNamingConvention, "SYN2002", "parser"},
		{SynInvalidRegex, "SYN2102", "converter"},
		{LnkRedefinition, "LNK3005", "linker"},
		{IOLoadFileFail, "IO4001", "io"},
		{ResIncludeNotFound, "RES5001", "resolver"},
	}
	for _, tt := range tests {
		if got := tt.code.ID(); got != tt.id {
			t.Errorf("%d.ID() = %q, want %q", tt.code, got, tt.id)
		}
		if got := tt.code.Phase(); got != tt.phase {
			t.Errorf("%d.Phase() = %q, want %q", tt.code, got, tt.phase)
		}
		if c, ok := ParseCode(tt.id); !ok || c != tt.code {
			t.Errorf("ParseCode(%q) = %d, %v", tt.id, c, ok)
		}
	}
	for _, c := range Codes() {
		if c.Title() == codeDescription[UnknownCode] {
			t.Errorf("code %d has no title", c)
		}
	}
}

func TestExplanationsHaveKnownCodes(t *testing.T) {
	for c := range explanations {
		if _, ok := codeDescription[c]; !ok {
			t.Errorf("explanation for unknown code %d", c)
		}
	}
	if _, ok := Explain(LnkRedefinition); !ok {
		t.Errorf("LNK3005 must be documented")
	}
}

func TestSeverityFilter(t *testing.T) {
	for in, want := range map[string]Severity{"info": SevInfo, "Note": SevInfo, "WARNING": SevWarning, "error": SevError} {
		got, err := ParseSeverity(in)
		if err != nil || got != want {
			t.Errorf("ParseSeverity(%q) = %v, %v", in, got, err)
		}
	}
	if _, err := ParseSeverity("fatal"); err == nil {
		t.Error("expected an error")
	}

	items := []Diagnostic{
		{Severity: SevInfo, Code: ResInfo},
		{Severity: SevError, Code: LnkTypeError},
		{Severity: SevWarning, Code: LnkValueOverflow},
	}
	got := AtLeast(items, SevWarning)
	if len(got) != 2 {
		t.Fatalf("AtLeast kept %d", len(got))
	}
	if diff := cmp.Diff([]Code{LnkTypeError, LnkValueOverflow}, []Code{got[0].Code, got[1].Code}); diff != "" {
		t.Errorf("AtLeast (-want +got):\n%s", diff)
	}
}
