package convert

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"regexp/syntax"
	"strings"

	"fortio.org/safecast"

	"susc/internal/ast"
	"susc/internal/diag"
	"susc/internal/grammar"
	"susc/internal/source"
	"susc/internal/things"
	"susc/internal/token"
)

func (c *Converter) typ(n *ast.Node) *things.Type {
	t := &things.Type{Header: c.header(n, token.TypeIdent)}
	for _, ch := range n.Children {
		switch {
		case ch.IsLeaf() && ch.Tok.Kind == token.Number:
			t.Args = append(t.Args, things.TypeArg{Num: c.parseInt(*ch.Tok)})
		case ch.Is(grammar.NType):
			t.Args = append(t.Args, things.TypeArg{Type: c.typ(ch)})
		case ch.Is(grammar.NValidator):
			t.Validators = append(t.Validators, c.validator(ch, t))
		}
	}
	return t
}

func (c *Converter) validator(n *ast.Node, owner *things.Type) *things.Validator {
	v := &things.Validator{Header: c.header(n, token.Ident)}
	for _, ch := range n.Children {
		switch {
		case ch.IsLeaf() && ch.Tok.Kind == token.Number:
			v.Restriction = things.Number(c.parseInt(*ch.Tok))
		case ch.IsLeaf() && ch.Tok.Kind == token.Regex:
			if p := c.pattern(*ch.Tok); p != nil {
				v.Restriction = p
			}
		case ch.Is(grammar.NRange):
			v.Restriction = c.rangeOf(ch, owner)
		}
	}
	return v
}

// rangeOf converts `a..b` (inclusive) or `a+`. The open upper bound is the
// largest value of the owning Int when it is narrower than 8 bytes.
func (c *Converter) rangeOf(n *ast.Node, owner *things.Type) things.Range {
	toks := n.Tokens(token.Number)
	if len(toks) == 0 {
		return things.Range{}
	}
	r := things.Range{Min: c.parseInt(toks[0])}
	if len(toks) > 1 {
		r.Max = c.parseInt(toks[1])
		return r
	}
	r.Open = true
	r.Max = math.MaxInt64
	if owner.Name == "Int" && len(owner.Args) == 1 && !owner.Args[0].IsType() {
		if w := owner.Args[0].Num; w > 0 && w < 8 {
			r.Max = int64(1)<<(8*w) - 1
		}
	}
	return r
}

// pattern compiles a `/body/flags` literal. Errors are reported at the
// offending part of the body.
func (c *Converter) pattern(tok token.Token) *things.Pattern {
	text := strings.TrimPrefix(tok.Text, "/")
	body, flags := text, ""
	if i := strings.LastIndexByte(text, '/'); i >= 0 {
		body, flags = text[:i], text[i+1:]
	}
	for i, f := range flags {
		if !strings.ContainsRune("ims", f) {
			at, err := safecast.Conv[uint32](len(body) + i)
			if err != nil {
				panic(fmt.Errorf("regex flag offset overflow: %w", err))
			}
			at += tok.Span.Start + 2
			sp := source.Span{File: tok.Span.File, Start: at, End: at + 1}
			diag.Error(c.rep, diag.SynInvalidRegex, sp,
				fmt.Sprintf("unknown regular expression flag '%c', expected one of 'i', 'm', 's'", f))
			return nil
		}
	}

	expr := body
	if flags != "" {
		expr = "(?" + flags + ")" + body
	}
	re, err := regexp.Compile(expr)
	if err != nil {
		sp := source.Span{File: tok.Span.File, Start: tok.Span.Start + 1, End: tok.Span.Start + 1}
		msg := err.Error()
		var serr *syntax.Error
		if errors.As(err, &serr) {
			msg = serr.Code.String()
			if off := strings.Index(body, serr.Expr); serr.Expr != "" && off >= 0 {
				start, errStart := safecast.Conv[uint32](off)
				n, errLen := safecast.Conv[uint32](len(serr.Expr))
				if errStart == nil && errLen == nil {
					sp.Start += start
					sp.End = sp.Start + n
				}
			}
			if serr.Expr != "" {
				msg += ": `" + serr.Expr + "`"
			}
		}
		diag.Error(c.rep, diag.SynInvalidRegex, sp, "invalid regular expression: "+msg)
		return nil
	}
	return &things.Pattern{Source: body, Flags: flags, Re: re}
}
