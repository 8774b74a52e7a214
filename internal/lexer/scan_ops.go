package lexer

import (
	"fmt"

	"susc/internal/diag"
	"susc/internal/token"
)

func (lx *Lexer) scanPunct() token.Token {
	start := lx.cursor.mark()
	if lx.cursor.eat("..") {
		return lx.emit(token.DotDot, start)
	}
	b := lx.cursor.next()
	var kind token.Kind
	switch b {
	case '(':
		kind = token.LParen
	case ')':
		kind = token.RParen
	case '{':
		kind = token.LBrace
	case '}':
		kind = token.RBrace
	case '[':
		kind = token.LBracket
	case ']':
		kind = token.RBracket
	case ',':
		kind = token.Comma
	case ';':
		kind = token.Semicolon
	case ':':
		kind = token.Colon
	case '+':
		kind = token.Plus
	default:
		// съедаем остаток UTF-8 последовательности, чтобы не репортить каждый байт
		for !lx.cursor.eof() && lx.cursor.peek()&0xC0 == 0x80 {
			lx.cursor.next()
		}
		sp := lx.cursor.spanFrom(start)
		lx.errLex(diag.LexUnknownChar, sp, fmt.Sprintf("unknown character %q", lx.text(sp)))
		return token.Token{Kind: token.Invalid, Span: lx.emptySpan()}
	}
	return lx.emit(kind, start)
}

func (lx *Lexer) emit(kind token.Kind, start mark) token.Token {
	sp := lx.cursor.spanFrom(start)
	return token.Token{Kind: kind, Span: sp, Text: lx.text(sp)}
}
