package driver

import (
	"susc/internal/parser"
)

// Insight re-parses the unit's text up to the 1-based line and column and
// returns the parser state at the first fault, for completion. ok is false
// when the prefix parses cleanly. Nothing is repaired or reported.
func (u *Unit) Insight(line, col uint32) (*parser.Insight, bool) {
	f := u.Source()
	if f == nil {
		return nil, false
	}
	return parser.InsightAt(f, f.Offset(line, col))
}
