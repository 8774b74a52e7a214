package parser

import (
	"fmt"
	"slices"
	"strings"

	"susc/internal/diag"
	"susc/internal/source"
	"susc/internal/token"
)

// repair is what a recovery strategy asks the driver to do before retrying.
type repair struct {
	insert  []token.Token // fed before the current token
	replace *token.Token  // replaces the current token
	unwind  bool          // pop to the innermost open '{' and close it
	skip    bool          // drop the current token

	code diag.Code
	span source.Span
	msg  string
}

// strategy inspects a fault and proposes a repair.
type strategy func(p *parse, cur token.Token, expected []token.Kind) (repair, bool)

// strategies are tried in this order; the first applicable one wins.
var strategies = []strategy{
	fixPascalCase,
	fixSnakeCase,
	insertPunctuation,
	insertValueClause,
	insertPlaceholderName,
	unwindBlock,
}

// repairPunct are the tokens that may be inserted on their own.
var repairPunct = []token.Kind{
	token.Semicolon, token.Colon, token.RParen, token.RBrace, token.RBracket, token.Comma,
}

// valueKeywords are declarations followed by a (value) clause.
var valueKeywords = []token.Kind{
	token.KwEntity, token.KwConfirmation, token.KwMethod, token.KwStaticMethod, token.KwGlobalMethod,
}

// recover picks a repair for the fault at cur. A repair that lets cur
// through is preferred; failing that, one whose inserted tokens feed is taken
// and cur meets the strategies again as a new fault.
func (p *parse) recover(cur token.Token) (repair, bool) {
	expected := p.a.Expected()
	defer func() { p.chained = false }()
	for _, chained := range []bool{false, true} {
		p.chained = chained
		for _, s := range strategies {
			if r, ok := s(p, cur, expected); ok {
				return r, true
			}
		}
	}
	return repair{}, false
}

// validate checks on a scratch automaton that the inserted tokens feed and,
// unless repairs are being chained, that cur goes through after them.
func (p *parse) validate(insert []token.Token, cur token.Token) bool {
	scratch := p.a.Clone()
	if !scratch.FeedAll(insert...) {
		return false
	}
	return p.chained || scratch.FeedAll(cur)
}

// apply performs a validated repair and returns the token to feed next.
func (p *parse) apply(r repair, cur token.Token) token.Token {
	if r.skip {
		return p.lx.Next()
	}
	if r.unwind {
		p.a.unwindToBrace()
		if cur.Kind == token.RBrace {
			return cur
		}
		// ';' посреди блока: выбрасываем всё до парной '}'
		depth := 0
		for {
			t := p.lx.Next()
			switch t.Kind {
			case token.EOF:
				p.a.Feed(token.Synthesize(token.RBrace, "", t.Span))
				return t
			case token.LBrace:
				depth++
			case token.RBrace:
				if depth == 0 {
					return t
				}
				depth--
			}
		}
	}
	for _, t := range r.insert {
		p.a.Feed(t)
	}
	if r.replace != nil {
		return *r.replace
	}
	return cur
}

func fixPascalCase(p *parse, cur token.Token, expected []token.Kind) (repair, bool) {
	if !slices.Contains(expected, token.TypeIdent) || cur.Kind == token.TypeIdent || !token.IsAlpha(cur.Text) {
		return repair{}, false
	}
	fixed := cur
	fixed.Kind = token.TypeIdent
	fixed.Text = strings.ToUpper(cur.Text[:1]) + cur.Text[1:]
	if !p.validate(nil, fixed) {
		return repair{}, false
	}
	return repair{
		replace: &fixed,
		code:    diag.SynNamingConvention,
		span:    cur.Span,
		msg:     fmt.Sprintf("type names are PascalCase: '%s' was read as '%s'", cur.Text, fixed.Text),
	}, true
}

func fixSnakeCase(p *parse, cur token.Token, expected []token.Kind) (repair, bool) {
	if !slices.Contains(expected, token.Ident) || cur.Kind == token.Ident || !token.IsAlpha(cur.Text) {
		return repair{}, false
	}
	fixed := cur
	fixed.Kind = token.Ident
	fixed.Text = strings.ToLower(cur.Text)
	if kw, ok := token.LookupKeyword(fixed.Text); ok && slices.Contains(expected, kw) {
		fixed.Kind = kw
	}
	if !p.validate(nil, fixed) {
		return repair{}, false
	}
	return repair{
		replace: &fixed,
		code:    diag.SynNamingConvention,
		span:    cur.Span,
		msg:     fmt.Sprintf("field, member, method and validator names are snake_case: '%s' was read as '%s'", cur.Text, fixed.Text),
	}, true
}

func insertPunctuation(p *parse, cur token.Token, expected []token.Kind) (repair, bool) {
	var cands []token.Kind
	for _, k := range repairPunct {
		if slices.Contains(expected, k) {
			cands = append(cands, k)
		}
	}
	if len(cands) != 1 {
		return repair{}, false
	}
	k := cands[0]
	if k == token.Colon && cur.Kind == token.RBrace {
		return repair{}, false
	}
	insert := []token.Token{token.Synthesize(k, "", cur.Span)}
	if (k == token.RParen || k == token.RBracket) && cur.Kind != token.Semicolon && !p.validate(insert, cur) {
		insert = append(insert, token.Synthesize(token.Semicolon, "", cur.Span))
	}
	if !p.validate(insert, cur) {
		return repair{}, false
	}
	texts := make([]string, 0, len(insert))
	for _, t := range insert {
		texts = append(texts, "'"+t.Text+"'")
	}
	return repair{
		insert: insert,
		code:   diag.SynMissingPunctuation,
		span:   cur.Span,
		msg:    fmt.Sprintf("missing %s before %s", strings.Join(texts, " and "), describe(cur)),
	}, true
}

func insertValueClause(p *parse, cur token.Token, expected []token.Kind) (repair, bool) {
	if !slices.Contains(expected, token.LParen) {
		return repair{}, false
	}
	vals := p.a.values
	if len(vals) == 0 || !vals[len(vals)-1].IsLeaf() {
		return repair{}, false
	}
	top := vals[len(vals)-1].Tok
	what := ""
	switch {
	case top.Kind == token.KwEnum || top.Kind == token.KwBitfield:
		what = "size"
	case (top.Kind == token.TypeIdent || top.Kind == token.Ident) && len(vals) >= 2 &&
		vals[len(vals)-2].IsLeaf() && slices.Contains(valueKeywords, vals[len(vals)-2].Tok.Kind):
		what = "value"
	default:
		return repair{}, false
	}
	insert := []token.Token{
		token.Synthesize(token.LParen, "", cur.Span),
		token.Synthesize(token.Number, "0", cur.Span),
		token.Synthesize(token.RParen, "", cur.Span),
	}
	if !p.validate(insert, cur) {
		return repair{}, false
	}
	return repair{
		insert: insert,
		code:   diag.SynMissingValue,
		span:   top.Span,
		msg:    fmt.Sprintf("missing %s, assuming (0)", what),
	}, true
}

func insertPlaceholderName(p *parse, cur token.Token, expected []token.Kind) (repair, bool) {
	switch cur.Kind {
	case token.LBrace:
	case token.LParen:
		// a declaration keyword followed directly by its value clause
		vals := p.a.values
		if len(vals) == 0 || !vals[len(vals)-1].IsLeaf() || !slices.Contains(valueKeywords, vals[len(vals)-1].Tok.Kind) {
			return repair{}, false
		}
	default:
		return repair{}, false
	}
	var name token.Token
	switch {
	case slices.Contains(expected, token.TypeIdent):
		name = token.Synthesize(token.TypeIdent, "Unnamed", cur.Span)
	case slices.Contains(expected, token.Ident):
		name = token.Synthesize(token.Ident, "unnamed", cur.Span)
	default:
		return repair{}, false
	}
	insert := []token.Token{name}
	if !p.validate(insert, cur) {
		return repair{}, false
	}
	return repair{
		insert: insert,
		code:   diag.SynMissingName,
		span:   cur.Span,
		msg:    fmt.Sprintf("missing name before %s, assuming '%s'", describe(cur), name.Text),
	}, true
}

func unwindBlock(p *parse, cur token.Token, _ []token.Kind) (repair, bool) {
	if cur.Kind != token.RBrace && cur.Kind != token.Semicolon {
		return repair{}, false
	}
	scratch := p.a.Clone()
	if !scratch.unwindToBrace() {
		if cur.Kind != token.RBrace {
			return repair{}, false
		}
		return repair{
			skip: true,
			code: diag.SynDiscardedConstruct,
			span: cur.Span,
			msg:  "unmatched '}' was discarded",
		}, true
	}
	if !scratch.wouldShift(token.RBrace) {
		return repair{}, false
	}
	return repair{
		unwind: true,
		code:   diag.SynDiscardedConstruct,
		span:   cur.Span,
		msg:    fmt.Sprintf("malformed construct before %s was discarded up to the enclosing '{'", describe(cur)),
	}, true
}
