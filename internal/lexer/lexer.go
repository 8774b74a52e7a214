package lexer

import (
	"susc/internal/source"
	"susc/internal/token"
)

type Lexer struct {
	file   *source.File
	cursor cursor
	opts   Options
	look   *token.Token   // 1 элементный буфер для токена
	hold   []token.Trivia // накопленные leading trivia

	depth int        // brace depth; include/set are recognised at depth 0 only
	prev  token.Kind // kind of the last emitted token
	prev2 token.Kind
}

func New(file *source.File, opts Options) *Lexer {
	return &Lexer{
		file:   file,
		cursor: newCursor(file, opts.Limit),
		opts:   opts,
		prev:   token.EOF,
		prev2:  token.EOF,
	}
}

// All lexes the whole file, EOF included.
func All(file *source.File, opts Options) []token.Token {
	lx := New(file, opts)
	var out []token.Token
	for {
		t := lx.Next()
		out = append(out, t)
		if t.Kind == token.EOF {
			return out
		}
	}
}

// Next возвращает следующий **значимый** токен с уже собранным Leading.
// После EOF всегда возвращает EOF.
func (lx *Lexer) Next() token.Token {
	if lx.look != nil {
		tok := *lx.look
		lx.look = nil
		return tok
	}

	tok := lx.scan()
	switch tok.Kind {
	case token.LBrace:
		lx.depth++
	case token.RBrace:
		if lx.depth > 0 {
			lx.depth--
		}
	}
	lx.prev2, lx.prev = lx.prev, tok.Kind
	return tok
}

// Peek возвращает следующий токен, не потребляя его.
func (lx *Lexer) Peek() token.Token {
	if lx.look != nil {
		return *lx.look
	}
	t := lx.Next()
	lx.look = &t
	return t
}

func (lx *Lexer) scan() token.Token {
	// `set <key> <value...>`: the value is the raw rest of the line
	if lx.depth == 0 && lx.prev2 == token.KwSet && lx.prev == token.Ident {
		if tok, ok := lx.scanSettingValue(); ok {
			return tok
		}
	}

	lx.collectLeadingTrivia()

	if lx.cursor.eof() {
		tok := token.Token{Kind: token.EOF, Span: lx.emptySpan()}
		tok.Leading, lx.hold = lx.hold, nil
		return tok
	}

	var tok token.Token
	ch := lx.cursor.peek()
	switch {
	case lx.depth == 0 && lx.prev == token.KwInclude:
		tok = lx.scanPath()
	case isIdentStartByte(ch):
		tok = lx.scanIdentOrKeyword()
	case isDec(ch):
		tok = lx.scanNumber()
	case ch == '-':
		tok = lx.scanNumber()
	case ch == '/':
		tok = lx.scanRegex()
	case ch == '"':
		tok = lx.scanString(token.String)
	default:
		tok = lx.scanPunct()
	}
	if tok.Kind == token.Invalid && tok.Span.Empty() {
		// ничего не съели: неизвестный символ уже зарепорчен, пробуем дальше
		return lx.scan()
	}

	tok.Leading, lx.hold = lx.hold, nil
	return tok
}

func (lx *Lexer) emptySpan() source.Span {
	return lx.cursor.here()
}

func (lx *Lexer) text(sp source.Span) string {
	return string(lx.file.Content[sp.Start:sp.End])
}
