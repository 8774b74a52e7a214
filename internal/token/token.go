package token

import (
	"strings"

	"susc/internal/source"
)

// Token represents a single source token with its location and trivia.
type Token struct {
	Kind      Kind
	Span      source.Span
	Text      string
	Leading   []Trivia
	Synthetic bool // inserted by parser recovery, not present in the source
}

// IsIdent reports whether the token is any kind of identifier.
func (t Token) IsIdent() bool {
	return t.Kind == Ident || t.Kind == TypeIdent || t.Kind == BadIdent
}

// Doc returns the text of the last docstring in the leading trivia, markers included.
func (t Token) Doc() (Trivia, bool) {
	for i := len(t.Leading) - 1; i >= 0; i-- {
		if t.Leading[i].Kind == TriviaDocstring {
			return t.Leading[i], true
		}
	}
	return Trivia{}, false
}

// Synthesize builds a recovery token of the given kind positioned at pos.
func Synthesize(kind Kind, text string, pos source.Span) Token {
	if text == "" {
		text = kind.Text()
	}
	return Token{
		Kind:      kind,
		Span:      source.Span{File: pos.File, Start: pos.Start, End: pos.Start},
		Text:      text,
		Synthetic: true,
	}
}

// IsAlpha reports whether the text consists of ASCII letters only.
func IsAlpha(text string) bool {
	if text == "" {
		return false
	}
	return strings.IndexFunc(text, func(r rune) bool {
		return (r < 'a' || r > 'z') && (r < 'A' || r > 'Z')
	}) < 0
}
