package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"susc/internal/source"
	"susc/internal/token"
)

// TokenOutput is one token of `susc tokens --format json`.
type TokenOutput struct {
	Kind    string      `json:"kind"`
	Text    string      `json:"text,omitempty"`
	Span    source.Span `json:"span"`
	Leading []string    `json:"leading,omitempty"`
	Doc     string      `json:"doc,omitempty"`
}

// untilEOF yields tokens up to and including the first EOF.
func untilEOF(tokens []token.Token) []token.Token {
	for i, tok := range tokens {
		if tok.Kind == token.EOF {
			return tokens[:i+1]
		}
	}
	return tokens
}

func newTokenOutput(tok token.Token) TokenOutput {
	out := TokenOutput{Kind: tok.Kind.String(), Text: tok.Text, Span: tok.Span}
	for _, tr := range tok.Leading {
		out.Leading = append(out.Leading, tr.Kind.String())
	}
	if d, ok := tok.Doc(); ok {
		out.Doc = d.Text
	}
	return out
}

// FormatTokensPretty печатает по строке на токен:
//
//	3: type identifier  "User" at 2:8-2:12 (leading: newline, space)
func FormatTokensPretty(w io.Writer, tokens []token.Token, fs *source.FileSet) error {
	for i, tok := range untilEOF(tokens) {
		out := newTokenOutput(tok)
		from, to := fs.Resolve(tok.Span)
		line := fmt.Sprintf("%3d: %-16s", i+1, out.Kind)
		if out.Text != "" {
			line += fmt.Sprintf(" %q", out.Text)
		}
		line += fmt.Sprintf(" at %d:%d-%d:%d", from.Line, from.Col, to.Line, to.Col)
		if len(out.Leading) > 0 {
			line += " (leading: " + strings.Join(out.Leading, ", ") + ")"
		}
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

func FormatTokensJSON(w io.Writer, tokens []token.Token) error {
	tokens = untilEOF(tokens)
	out := make([]TokenOutput, len(tokens))
	for i, tok := range tokens {
		out[i] = newTokenOutput(tok)
	}
	return encode(w, out)
}
