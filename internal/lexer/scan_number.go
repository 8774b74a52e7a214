package lexer

import (
	"susc/internal/diag"
	"susc/internal/token"
)

// durationUnits are the suffixes accepted after a number in `ratelimit ... every`.
var durationUnits = map[string]struct{}{
	"ms": {}, "s": {}, "m": {}, "h": {}, "d": {}, "mo": {}, "y": {},
}

// scanNumber: -?[0-9]+ с опциональным суффиксом единицы времени.
// Неверный суффикс репортится и съедается, токен остаётся Number.
func (lx *Lexer) scanNumber() token.Token {
	start := lx.cursor.mark()
	if lx.cursor.peek() == '-' {
		lx.cursor.next()
		if !isDec(lx.cursor.peek()) {
			sp := lx.cursor.spanFrom(start)
			lx.errLex(diag.LexUnknownChar, sp, "unexpected '-', expected a digit after it")
			return token.Token{Kind: token.Invalid, Span: lx.emptySpan()}
		}
	}
	lx.cursor.skipWhile(isDec)
	digits := lx.cursor.spanFrom(start)

	if !isIdentStartByte(lx.cursor.peek()) {
		return token.Token{Kind: token.Number, Span: digits, Text: lx.text(digits)}
	}

	suffixStart := lx.cursor.mark()
	lx.cursor.skipWhile(isIdentContinueByte)
	suffix := lx.text(lx.cursor.spanFrom(suffixStart))
	sp := lx.cursor.spanFrom(start)
	if _, ok := durationUnits[suffix]; ok && lx.file.Content[start] != '-' {
		return token.Token{Kind: token.Duration, Span: sp, Text: lx.text(sp)}
	}
	lx.errLex(diag.LexBadNumber, sp, "malformed number '"+lx.text(sp)+"'")
	return token.Token{Kind: token.Number, Span: sp, Text: lx.text(digits)}
}
