package parser

import "susc/internal/source"

// InsightAt parses the first offset bytes of the file without recovery and
// reports the automaton state at the first fault. ok is false when the prefix
// parses cleanly.
func InsightAt(file *source.File, offset uint32) (*Insight, bool) {
	if offset == 0 {
		// пустой префикс: корректный пустой файл
		return nil, false
	}
	res := ParseFile(file, Options{NoRecovery: true, Limit: offset})
	if res.Insight == nil {
		return nil, false
	}
	return res.Insight, true
}
