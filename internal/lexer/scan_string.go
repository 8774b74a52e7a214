package lexer

import (
	"fmt"
	"strings"

	"fortio.org/safecast"

	"susc/internal/diag"
	"susc/internal/token"
)

// scanString: "..." на одной строке, escape \" и \\.
func (lx *Lexer) scanString(kind token.Kind) token.Token {
	start := lx.cursor.mark()
	lx.cursor.next() // "
	for {
		b := lx.cursor.peek()
		if lx.cursor.eof() || b == '\n' {
			sp := lx.cursor.spanFrom(start)
			lx.errLex(diag.LexUnterminatedString, sp, "unterminated string literal")
			return token.Token{Kind: kind, Span: sp, Text: lx.text(sp)}
		}
		lx.cursor.next()
		if b == '\\' {
			lx.cursor.next()
			continue
		}
		if b == '"' {
			return lx.emit(kind, start)
		}
	}
}

// scanRegex: /pattern/flags на одной строке; \/ экранирует слеш.
func (lx *Lexer) scanRegex() token.Token {
	start := lx.cursor.mark()
	lx.cursor.next() // /
	for {
		b := lx.cursor.peek()
		if lx.cursor.eof() || b == '\n' {
			sp := lx.cursor.spanFrom(start)
			lx.errLex(diag.LexUnterminatedRegex, sp, "unterminated regex literal, expected '/'")
			return token.Token{Kind: token.Regex, Span: sp, Text: lx.text(sp)}
		}
		lx.cursor.next()
		if b == '\\' {
			lx.cursor.next()
			continue
		}
		if b == '/' {
			break
		}
	}
	lx.cursor.skipWhile(isLower)
	return lx.emit(token.Regex, start)
}

// scanPath reads the operand of `include`: a quoted string or a bare run of
// characters up to whitespace or ';'.
func (lx *Lexer) scanPath() token.Token {
	if lx.cursor.peek() == '"' {
		return lx.scanString(token.Path)
	}
	start := lx.cursor.mark()
	lx.cursor.skipWhile(func(b byte) bool { return !isSpace(b) && b != ';' && b != '#' })
	if lx.cursor.mark() == start {
		return lx.scanPunct()
	}
	return lx.emit(token.Path, start)
}

// scanSettingValue reads the rest of the line after `set <key>`.
// Returns false when the line is empty, leaving the cursor untouched.
func (lx *Lexer) scanSettingValue() (token.Token, bool) {
	save := lx.cursor.mark()
	lx.cursor.skipWhile(func(b byte) bool { return b == ' ' || b == '\t' })
	spaceSpan := lx.cursor.spanFrom(save)
	start := lx.cursor.mark()
	lx.cursor.skipTo('\n')
	sp := lx.cursor.spanFrom(start)
	raw := lx.text(sp)
	trimmed := strings.TrimRight(raw, " \t\r")
	if trimmed == "" {
		lx.cursor.reset(save)
		return token.Token{}, false
	}
	n, err := safecast.Conv[uint32](len(trimmed))
	if err != nil {
		panic(fmt.Errorf("value length overflow: %w", err))
	}
	sp.End = sp.Start + n
	var leading []token.Trivia
	if !spaceSpan.Empty() {
		leading = []token.Trivia{{Kind: token.TriviaSpace, Span: spaceSpan, Text: lx.text(spaceSpan)}}
	}
	return token.Token{Kind: token.Value, Span: sp, Text: trimmed, Leading: leading}, true
}
