package lexer

import (
	"susc/internal/diag"
	"susc/internal/source"
)

type Options struct {
	Reporter diag.Reporter // может быть nil, тогда ошибки игнорируем (но продолжаем лексить)
	// Limit stops lexing at this byte offset (exclusive) when non-zero.
	// Used by insight queries that look at a file prefix.
	Limit uint32
}

func (lx *Lexer) errLex(code diag.Code, sp source.Span, msg string) {
	if lx.opts.Reporter != nil {
		diag.Error(lx.opts.Reporter, code, sp, msg)
	}
}
