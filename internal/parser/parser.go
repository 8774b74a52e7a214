// Package parser drives the LALR tables of internal/grammar over the token
// stream and repairs common syntax errors on the fly.
//
// A parse either produces a tree (possibly after repairs, each reported as one
// diagnostic) or aborts. An aborted parse still returns the items that were
// complete on the value stack at the fault, so that includes and settings
// seen before the error are not lost.
package parser

import (
	"fmt"
	"strings"

	"susc/internal/ast"
	"susc/internal/diag"
	"susc/internal/grammar"
	"susc/internal/lexer"
	"susc/internal/source"
	"susc/internal/token"
)

// DefaultMaxRepairs bounds the number of repairs per file.
const DefaultMaxRepairs = 64

type Options struct {
	Reporter diag.Reporter
	// MaxRepairs aborts the parse after that many repairs; 0 means DefaultMaxRepairs.
	MaxRepairs int
	// NoRecovery stops at the first fault and captures an Insight instead of
	// repairing. Nothing is reported in this mode.
	NoRecovery bool
	// Limit parses only the first Limit bytes of the file when non-zero.
	Limit uint32
}

// Result of parsing one file.
type Result struct {
	Tree *ast.Node // nil when aborted
	// Partial holds the complete items found on the value stack of an aborted parse.
	Partial []*ast.Node
	Aborted bool
	Repairs int
	// Insight is set in NoRecovery mode when the input has a fault.
	Insight *Insight
}

// Insight is a snapshot of the automaton at the first fault.
type Insight struct {
	Expected []token.Kind
	Stack    []*ast.Node
	Token    token.Token
}

type parse struct {
	file *source.File
	lx   *lexer.Lexer
	a    *Automaton
	opts Options
	// chained is set while recover accepts repairs that only feed their own tokens.
	chained bool
}

// ParseFile parses one file. It never panics on malformed input.
func ParseFile(file *source.File, opts Options) Result {
	if opts.MaxRepairs == 0 {
		opts.MaxRepairs = DefaultMaxRepairs
	}
	if opts.Reporter == nil || opts.NoRecovery {
		opts.Reporter = diag.NopReporter{}
	}
	p := &parse{
		file: file,
		lx:   lexer.New(file, lexer.Options{Reporter: opts.Reporter, Limit: opts.Limit}),
		a:    newAutomaton(grammar.IDL(), file.ID),
		opts: opts,
	}
	return p.run()
}

func (p *parse) run() Result {
	var res Result
	cur := p.lx.Next()
	for {
		cur = p.contextual(cur)
		accepted, ok := p.a.Feed(cur)
		if ok {
			if accepted {
				res.Tree = p.a.values[len(p.a.values)-1]
				return res
			}
			cur = p.lx.Next()
			continue
		}

		if p.opts.NoRecovery {
			res.Insight = &Insight{
				Expected: p.a.Expected(),
				Stack:    append([]*ast.Node(nil), p.a.values...),
				Token:    cur,
			}
			res.Aborted = true
			return res
		}

		if res.Repairs >= p.opts.MaxRepairs {
			diag.Error(p.opts.Reporter, diag.SynTooManyRepairs, cur.Span,
				fmt.Sprintf("too many syntax errors, giving up at %s", describe(cur)))
			return p.abort(res)
		}
		r, found := p.recover(cur)
		if !found {
			diag.Error(p.opts.Reporter, diag.SynUnexpectedToken, cur.Span,
				fmt.Sprintf("unexpected %s. Expected one of: %s", describe(cur), kindList(p.a.Expected())))
			return p.abort(res)
		}
		res.Repairs++
		diag.Error(p.opts.Reporter, r.code, r.span, r.msg)
		cur = p.apply(r, cur)
	}
}

func (p *parse) abort(res Result) Result {
	res.Aborted = true
	for _, n := range flatten(p.a.values) {
		if !n.IsLeaf() {
			res.Partial = append(res.Partial, n)
		}
	}
	return res
}

// contextual turns a keyword into an identifier where only an identifier fits,
// or where it is immediately followed by ':' (a field called like a keyword).
func (p *parse) contextual(t token.Token) token.Token {
	if !t.Kind.IsKeyword() || !p.a.wouldShift(token.Ident) {
		return t
	}
	if !p.a.wouldShift(t.Kind) || p.lx.Peek().Kind == token.Colon {
		t.Kind = token.Ident
	}
	return t
}

func describe(t token.Token) string {
	if t.Kind == token.EOF {
		return "end of file"
	}
	return fmt.Sprintf("'%s'", t.Text)
}

func kindList(kinds []token.Kind) string {
	parts := make([]string, 0, len(kinds))
	for _, k := range kinds {
		parts = append(parts, k.String())
	}
	return strings.Join(parts, ", ")
}
