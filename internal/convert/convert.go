// Package convert turns parse trees into things.
//
// Conversion never fails: malformed literals are reported and replaced with
// zero values, so that later phases still see every declaration. Types are
// checked for shape only; names are resolved by the linker once every file
// of the project is known.
package convert

import (
	"susc/internal/ast"
	"susc/internal/diag"
	"susc/internal/grammar"
	"susc/internal/things"
	"susc/internal/token"
)

// Converter holds the reporter shared by one file's conversions.
type Converter struct {
	rep diag.Reporter
}

// New creates a converter that reports to r. A nil r drops diagnostics.
func New(r diag.Reporter) *Converter {
	if r == nil {
		r = diag.NopReporter{}
	}
	return &Converter{rep: r}
}

// Convert converts one top-level item. It returns nil for items that are not
// declarations (include, set).
func (c *Converter) Convert(n *ast.Node) things.Thing {
	switch {
	case n.Is(grammar.NEnum):
		return &things.Enum{Header: c.header(n, token.TypeIdent), Size: c.number(n, 0), Members: c.members(n)}
	case n.Is(grammar.NBitfield):
		return &things.Bitfield{Header: c.header(n, token.TypeIdent), Size: c.number(n, 0), Members: c.members(n)}
	case n.Is(grammar.NEntity):
		return c.entity(n)
	case n.Is(grammar.NCompound):
		return &things.Compound{Header: c.header(n, token.TypeIdent), Fields: c.fields(n)}
	case n.Is(grammar.NConfirmation):
		conf := &things.Confirmation{Header: c.header(n, token.TypeIdent), Value: c.number(n, 0)}
		if req := n.Child(grammar.NRequest); req != nil {
			conf.Request = c.fields(req)
		}
		if resp := n.Child(grammar.NResponse); resp != nil {
			conf.Response = c.fields(resp)
		}
		return conf
	case n.Is(grammar.NGlobalMethod):
		m := c.method(n)
		m.Global = true
		return m
	default:
		return nil
	}
}

// ConvertFile converts every declaration of a file tree in order.
func (c *Converter) ConvertFile(root *ast.Node) []things.Thing {
	if root == nil {
		return nil
	}
	var out []things.Thing
	for _, item := range root.Children {
		if t := c.Convert(item); t != nil {
			out = append(out, t)
		}
	}
	return out
}

func (c *Converter) entity(n *ast.Node) *things.Entity {
	e := &things.Entity{Header: c.header(n, token.TypeIdent), Value: c.number(n, 0)}
	for _, ch := range n.Children {
		switch {
		case ch.Is(grammar.NField):
			e.Fields = append(e.Fields, c.field(ch))
		case ch.Is(grammar.NStaticMethod):
			m := c.method(ch)
			m.Static = true
			e.Methods = append(e.Methods, m)
		case ch.Is(grammar.NNormalMethod):
			e.Methods = append(e.Methods, c.method(ch))
		}
	}
	return e
}

func (c *Converter) method(n *ast.Node) *things.Method {
	m := &things.Method{Header: c.header(n, token.Ident), Value: c.number(n, 0)}
	for _, ch := range n.Children {
		switch {
		case ch.Is(grammar.NField):
			m.Params = append(m.Params, c.field(ch))
		case ch.Is(grammar.NReturns):
			m.Returns = append(m.Returns, c.fields(ch)...)
		case ch.Is(grammar.NErrors):
			m.Errors = c.nameList(m.Errors, ch, token.Ident)
		case ch.Is(grammar.NConfirmList):
			m.Confirmations = c.nameList(m.Confirmations, ch, token.TypeIdent)
		case ch.Is(grammar.NRateLimit):
			m.RateLimit = c.rateLimit(ch)
		}
	}
	return m
}

// nameList appends the names of an errors{} or confirmations{} block.
// Repeated names are kept but warned about.
func (c *Converter) nameList(list []string, n *ast.Node, kind token.Kind) []string {
	for _, tok := range n.Tokens(kind) {
		for _, seen := range list {
			if seen == tok.Text {
				diag.Warn(c.rep, diag.SynDuplicateListMember, tok.Span,
					"duplicate member '"+tok.Text+"' for this directive")
				break
			}
		}
		list = append(list, tok.Text)
	}
	return list
}

func (c *Converter) rateLimit(n *ast.Node) *things.RateLimit {
	rl := &things.RateLimit{Count: c.number(n, 0)}
	if tok, ok := n.Token(token.Duration); ok {
		rl.Window = c.duration(tok)
	}
	return rl
}

func (c *Converter) members(n *ast.Node) []*things.EnumMember {
	var out []*things.EnumMember
	for _, m := range n.ChildrenNamed(grammar.NMember) {
		out = append(out, &things.EnumMember{Header: c.header(m, token.Ident), Value: c.number(m, 0)})
	}
	return out
}

func (c *Converter) fields(n *ast.Node) []*things.Field {
	var out []*things.Field
	for _, f := range n.ChildrenNamed(grammar.NField) {
		out = append(out, c.field(f))
	}
	return out
}

func (c *Converter) field(n *ast.Node) *things.Field {
	f := &things.Field{Header: c.header(n, token.Ident)}
	if opt := n.Child(grammar.NOpt); opt != nil {
		v := c.number(opt, 0)
		f.Optional = &v
	}
	if tn := n.Child(grammar.NType); tn != nil {
		f.Type = c.typ(tn)
		if err := f.Type.Check(nil); err != nil {
			diag.Error(c.rep, diag.SynTypeShape, f.Type.Span, err.Error())
		}
	}
	return f
}

// header takes the name from the first leaf of the given kind and the
// docstring from the node.
func (c *Converter) header(n *ast.Node, nameKind token.Kind) things.Header {
	h := things.Header{Span: n.Span}
	if tok, ok := n.Token(nameKind); ok {
		h.Name = tok.Text
		h.Span = tok.Span
	}
	if n.Doc != nil {
		h.Doc = Docstring(n.Doc.Text)
	}
	return h
}

// number parses the i-th Number leaf of n, reporting malformed values.
func (c *Converter) number(n *ast.Node, i int) int64 {
	toks := n.Tokens(token.Number)
	if i >= len(toks) {
		return 0
	}
	return c.parseInt(toks[i])
}
