package lsp

import (
	"strings"

	"susc/internal/things"
)

func (s *Server) hover(p positionParams) (any, error) {
	if doc := s.document(p.TextDocument.URI); doc != nil {
		return doc.hover(p.Position), nil
	}
	return nil, nil
}

// definition answers with at most one location; names declared in the
// bundled standard library have none.
func (s *Server) definition(p positionParams) (any, error) {
	locs := []location{}
	if doc := s.document(p.TextDocument.URI); doc != nil {
		if loc, ok := doc.definition(p.Position); ok {
			locs = append(locs, loc)
		}
	}
	return locs, nil
}

// at returns the thing named at pos and, for a type reference, the
// declaration it refers to.
func (d *document) at(pos position) (here, decl things.Thing) {
	file := d.unit.Source()
	if file == nil {
		return nil, nil
	}
	here, _ = things.At(d.things, file.ID, offsetAt(file, pos))
	if here == nil {
		return nil, nil
	}
	if t, ok := here.(*things.Type); ok {
		return here, things.Lookup(d.things, t.Name)
	}
	return here, here
}

func (d *document) hover(pos position) *hover {
	here, decl := d.at(pos)
	if here == nil {
		return nil
	}
	var b strings.Builder
	b.WriteString("```sus\n")
	switch {
	case decl != nil:
		b.WriteString(things.Display(decl))
	default:
		b.WriteString(things.Display(here))
	}
	b.WriteString("\n```")
	switch {
	case decl != nil && decl.Head().Doc != "":
		b.WriteString("\n\n" + decl.Head().Doc)
	case decl == nil && things.IsBuiltin(here.Head().Name):
		b.WriteString("\n\nbuilt-in type")
	}
	rng := rangeForSpan(d.unit.Source(), here.Head().Span)
	return &hover{
		Contents: markupContent{Kind: "markdown", Value: b.String()},
		Range:    &rng,
	}
}

func (d *document) definition(pos position) (location, bool) {
	_, decl := d.at(pos)
	if decl == nil {
		return location{}, false
	}
	return locationForSpan(d.unit.FileSet(), decl.Head().Span)
}
