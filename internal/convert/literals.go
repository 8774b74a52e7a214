package convert

import (
	"errors"
	"math"
	"strconv"
	"strings"

	"susc/internal/diag"
	"susc/internal/token"
)

// Milliseconds per duration unit. A month is 30 days, a year 365.
var durationUnits = map[string]int64{
	"ms": 1,
	"s":  1000,
	"m":  60 * 1000,
	"h":  3600 * 1000,
	"d":  24 * 3600 * 1000,
	"mo": 30 * 24 * 3600 * 1000,
	"y":  365 * 24 * 3600 * 1000,
}

func (c *Converter) parseInt(tok token.Token) int64 {
	v, err := strconv.ParseInt(tok.Text, 10, 64)
	if err != nil {
		msg := "invalid number '" + tok.Text + "'"
		if errors.Is(err, strconv.ErrRange) {
			msg = "number '" + tok.Text + "' does not fit in 64 bits"
		}
		diag.Error(c.rep, diag.SynInvalidNumber, tok.Span, msg)
		return 0
	}
	return v
}

// duration converts a Duration token such as `10m` to milliseconds.
func (c *Converter) duration(tok token.Token) int64 {
	digits := strings.TrimRightFunc(tok.Text, func(r rune) bool { return r < '0' || r > '9' })
	unit := tok.Text[len(digits):]
	mul, ok := durationUnits[unit]
	if !ok || digits == "" {
		diag.Error(c.rep, diag.SynInvalidDuration, tok.Span, "invalid duration '"+tok.Text+"'")
		return 0
	}
	n, err := strconv.ParseInt(digits, 10, 64)
	if err != nil || n > math.MaxInt64/mul {
		diag.Error(c.rep, diag.SynInvalidDuration, tok.Span,
			"duration '"+tok.Text+"' does not fit in 64 bits of milliseconds")
		return 0
	}
	return n * mul
}

// Docstring strips the @> <@ markers, removes the common indentation of the
// lines and trims the result.
func Docstring(raw string) string {
	s := strings.TrimSpace(raw)
	s = strings.TrimPrefix(s, "@>")
	s = strings.TrimSuffix(s, "<@")
	s = strings.Trim(s, "\r\n")
	return strings.TrimSpace(dedent(s))
}

// dedent removes the longest whitespace prefix shared by all non-blank lines.
// Blank lines are emptied.
func dedent(s string) string {
	lines := strings.Split(s, "\n")
	prefix := ""
	first := true
	for _, l := range lines {
		if strings.TrimSpace(l) == "" {
			continue
		}
		indent := l[:len(l)-len(strings.TrimLeft(l, " \t"))]
		if first {
			prefix, first = indent, false
			continue
		}
		for !strings.HasPrefix(indent, prefix) {
			prefix = prefix[:len(prefix)-1]
		}
	}
	for i, l := range lines {
		if strings.TrimSpace(l) == "" {
			lines[i] = ""
			continue
		}
		lines[i] = strings.TrimPrefix(l, prefix)
	}
	return strings.Join(lines, "\n")
}
