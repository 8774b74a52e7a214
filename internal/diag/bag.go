package diag

import (
	"cmp"
	"slices"

	"susc/internal/source"
)

// Bag collects diagnostics of one compilation up to a limit; 0 means no limit.
type Bag struct {
	items []Diagnostic
	max   int
}

func NewBag(limit int) *Bag {
	return &Bag{items: make([]Diagnostic, 0, min(max(limit, 0), 64)), max: limit}
}

// Add добавляет диагностику; false, если лимит уже достигнут.
func (b *Bag) Add(d Diagnostic) bool {
	if b.max > 0 && len(b.items) >= b.max {
		return false
	}
	b.items = append(b.items, d)
	return true
}

func (b *Bag) HasErrors() bool { return HasErrors(b.items) }

func (b *Bag) Len() int { return len(b.items) }

// Items returns the bag's own slice; callers must not modify it.
func (b *Bag) Items() []Diagnostic { return b.items }

// Sort orders by primary location, then by severity (errors first), then by
// code. Diagnostics without a location come first.
func (b *Bag) Sort() {
	slices.SortStableFunc(b.items, func(x, y Diagnostic) int {
		px, okx := x.Primary()
		py, oky := y.Primary()
		if okx != oky {
			if okx {
				return 1
			}
			return -1
		}
		return cmp.Or(
			cmp.Compare(px.File, py.File),
			cmp.Compare(px.Start, py.Start),
			cmp.Compare(px.End, py.End),
			cmp.Compare(y.Severity, x.Severity),
			cmp.Compare(x.Code, y.Code),
		)
	})
}

// SortAndDedup returns the diagnostics of a project the way they are shown:
// most severe first, keeping input order among equals, without those whose
// every location was already reported by a diagnostic kept before. Two
// diagnostics at the same place thus collapse to the more severe, or to the
// earlier one on a tie. Diagnostics without a location are only dropped as
// exact repeats of code and message.
func SortAndDedup(items []Diagnostic) []Diagnostic {
	sorted := slices.Clone(items)
	slices.SortStableFunc(sorted, func(x, y Diagnostic) int {
		return cmp.Compare(y.Severity, x.Severity)
	})

	type unlocated struct {
		code Code
		msg  string
	}
	seen := map[source.Span]bool{}
	seenUnlocated := map[unlocated]bool{}
	out := sorted[:0]
	for _, d := range sorted {
		if len(d.Locations) == 0 {
			key := unlocated{d.Code, d.Message}
			if !seenUnlocated[key] {
				seenUnlocated[key] = true
				out = append(out, d)
			}
			continue
		}
		if !slices.ContainsFunc(d.Locations, func(sp source.Span) bool { return !seen[sp] }) {
			continue
		}
		for _, sp := range d.Locations {
			seen[sp] = true
		}
		out = append(out, d)
	}
	return out
}

// HasErrors reports whether any diagnostic is an error.
func HasErrors(items []Diagnostic) bool {
	return slices.ContainsFunc(items, func(d Diagnostic) bool { return d.Severity >= SevError })
}

// Count returns the number of diagnostics with exactly the given severity.
func Count(items []Diagnostic, sev Severity) int {
	n := 0
	for _, d := range items {
		if d.Severity == sev {
			n++
		}
	}
	return n
}
