package lexer

import (
	"susc/internal/diag"
	"susc/internal/token"
)

// collectLeadingTrivia собирает подряд идущие trivia перед значимым токеном.
// - ' ' и '\t' коалесцируются в один TriviaSpace
// - последовательные '\n' коалесцируются в один TriviaNewline
// - # ... до \n -> TriviaComment
// - @> ... <@ -> TriviaDocstring (если не закрыт, репорт и обрезаем на EOF)
// Остальные неизвестные символы репортятся и пропускаются.
func (lx *Lexer) collectLeadingTrivia() {
	for !lx.cursor.eof() {
		start := lx.cursor.mark()
		b := lx.cursor.peek()

		switch {
		case b == ' ' || b == '\t' || b == '\r':
			lx.cursor.skipWhile(isBlank)
			lx.pushTrivia(token.TriviaSpace, start)

		case b == '\n':
			lx.cursor.skipWhile(func(b byte) bool { return b == '\n' })
			lx.pushTrivia(token.TriviaNewline, start)

		case b == '#':
			lx.cursor.skipTo('\n')
			lx.pushTrivia(token.TriviaComment, start)

		case b == '@':
			if !lx.cursor.eat("@>") {
				return
			}
			closed := false
			for !closed && !lx.cursor.eof() {
				if closed = lx.cursor.eat("<@"); !closed {
					lx.cursor.next()
				}
			}
			if !closed {
				lx.errLex(diag.LexUnterminatedDocstring, lx.cursor.spanFrom(start), "unterminated docstring, expected '<@'")
			}
			lx.pushTrivia(token.TriviaDocstring, start)

		default:
			return
		}
	}
}

func (lx *Lexer) pushTrivia(kind token.TriviaKind, start mark) {
	sp := lx.cursor.spanFrom(start)
	lx.hold = append(lx.hold, token.Trivia{Kind: kind, Span: sp, Text: lx.text(sp)})
}
