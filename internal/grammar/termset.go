package grammar

import "susc/internal/token"

// termSet is a set of terminals; token kinds fit into one machine word.
type termSet uint64

func init() {
	if token.Count > 64 {
		panic("grammar: too many token kinds for termSet")
	}
}

func (s termSet) has(k token.Kind) bool { return s&(1<<k) != 0 }

func (s *termSet) add(k token.Kind) { *s |= 1 << k }

func (s termSet) kinds() []token.Kind {
	var out []token.Kind
	for k := 0; k < token.Count; k++ {
		if s.has(token.Kind(k)) {
			out = append(out, token.Kind(k))
		}
	}
	return out
}
