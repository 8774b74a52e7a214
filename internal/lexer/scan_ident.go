package lexer

import (
	"susc/internal/token"
)

// scanIdentOrKeyword сканирует [A-Za-z_][A-Za-z0-9_]* и классифицирует:
// ключевое слово, TypeIdent (PascalCase), Ident (snake_case) или BadIdent.
// Token.Text: ровно исходный срез.
func (lx *Lexer) scanIdentOrKeyword() token.Token {
	start := lx.cursor.mark()
	lx.cursor.next()
	lx.cursor.skipWhile(isIdentContinueByte)
	sp := lx.cursor.spanFrom(start)
	text := lx.text(sp)

	if k, ok := token.LookupKeyword(text); ok {
		return token.Token{Kind: k, Span: sp, Text: text}
	}
	return token.Token{Kind: ClassifyIdent(text), Span: sp, Text: text}
}

// ClassifyIdent tells PascalCase type identifiers from snake_case identifiers.
func ClassifyIdent(text string) token.Kind {
	if text == "" {
		return token.Invalid
	}
	switch {
	case isUpper(text[0]):
		for i := 1; i < len(text); i++ {
			if !isUpper(text[i]) && !isLower(text[i]) && !isDec(text[i]) {
				return token.BadIdent
			}
		}
		return token.TypeIdent
	case isLower(text[0]) || text[0] == '_':
		for i := 1; i < len(text); i++ {
			if !isLower(text[i]) && !isDec(text[i]) && text[i] != '_' {
				return token.BadIdent
			}
		}
		return token.Ident
	}
	return token.BadIdent
}
