package token

import "susc/internal/source"

// TriviaKind classifies non-significant source text.
type TriviaKind uint8

const (
	TriviaSpace TriviaKind = iota
	TriviaNewline
	TriviaComment   // # до конца строки
	TriviaDocstring // @> ... <@
)

// Trivia is whitespace, a comment or a docstring preceding a token.
type Trivia struct {
	Kind TriviaKind
	Span source.Span
	Text string
}

func (k TriviaKind) String() string {
	switch k {
	case TriviaSpace:
		return "space"
	case TriviaNewline:
		return "newline"
	case TriviaComment:
		return "comment"
	case TriviaDocstring:
		return "docstring"
	}
	return "unknown"
}
