package emit

import (
	"maps"

	"susc/internal/source"
	"susc/internal/things"
)

// Build converts linked things into a Document. fs may be nil, in which case
// locations are left out.
func Build(root string, all []things.Thing, settings map[string]string, fs *source.FileSet) Document {
	b := builder{fs: fs}
	doc := Document{
		Schema:   SchemaVersion,
		Root:     root,
		Settings: maps.Clone(settings),
		Things:   make([]Thing, 0, len(all)),
	}
	for _, t := range all {
		doc.Things = append(doc.Things, b.thing(t))
	}
	return doc
}

type builder struct {
	fs *source.FileSet
}

func ptr[T any](v T) *T { return &v }

func (b builder) thing(t things.Thing) Thing {
	h := t.Head()
	out := Thing{
		Kind:      t.Kind().String(),
		Name:      h.Name,
		Doc:       h.Doc,
		Generated: h.Generated,
		Location:  b.location(h.Span),
	}
	switch t := t.(type) {
	case *things.Enum:
		out.Size = ptr(t.Size)
		out.Members = members(t.Members)
	case *things.Bitfield:
		out.Size = ptr(t.Size)
		out.Members = members(t.Members)
	case *things.Entity:
		out.Value = ptr(t.Value)
		out.Fields = fields(t.Fields)
		for _, m := range t.Methods {
			out.Methods = append(out.Methods, method(m))
		}
	case *things.Compound:
		out.Fields = fields(t.Fields)
	case *things.Confirmation:
		out.Value = ptr(t.Value)
		out.Request = fields(t.Request)
		out.Response = fields(t.Response)
	case *things.Method:
		out.Kind = "globalmethod"
		out.Value = ptr(t.Value)
		out.Method = ptr(method(t))
	}
	return out
}

func (b builder) location(sp source.Span) *Location {
	if b.fs == nil || int(sp.File) >= b.fs.Len() {
		return nil
	}
	loc := b.fs.Location(sp)
	return &Location{File: loc.Path, Line: loc.Line, Col: loc.Col}
}

func members(in []*things.EnumMember) []Member {
	out := make([]Member, 0, len(in))
	for _, m := range in {
		out = append(out, Member{Name: m.Name, Doc: m.Doc, Value: m.Value})
	}
	return out
}

func fields(in []*things.Field) []Field {
	if len(in) == 0 {
		return nil
	}
	out := make([]Field, 0, len(in))
	for _, f := range in {
		out = append(out, Field{Name: f.Name, Doc: f.Doc, Optional: f.Optional, Type: typ(f.Type)})
	}
	return out
}

func typ(t *things.Type) Type {
	if t == nil {
		return Type{}
	}
	out := Type{Name: t.Name}
	for _, a := range t.Args {
		if a.IsType() {
			out.Args = append(out.Args, TypeArg{Type: ptr(typ(a.Type))})
		} else {
			out.Args = append(out.Args, TypeArg{Number: ptr(a.Num)})
		}
	}
	for _, v := range t.Validators {
		out.Validators = append(out.Validators, validator(v))
	}
	return out
}

func validator(v *things.Validator) Validator {
	out := Validator{Name: v.Name}
	switch r := v.Restriction.(type) {
	case things.Range:
		out.Kind = ValidatorRange
		out.Min = ptr(r.Min)
		out.Max = ptr(r.Max)
		out.Open = r.Open
	case things.Number:
		out.Kind = ValidatorNumber
		out.Number = ptr(int64(r))
	case *things.Pattern:
		out.Kind = ValidatorPattern
		out.Pattern = r.Source
		out.Flags = r.Flags
	}
	return out
}

func method(m *things.Method) Method {
	out := Method{
		Name:          m.Name,
		Doc:           m.Doc,
		Static:        m.Static,
		Generated:     m.Generated,
		Value:         m.Value,
		Params:        fields(m.Params),
		Returns:       fields(m.Returns),
		Errors:        m.Errors,
		Confirmations: m.Confirmations,
	}
	if m.RateLimit != nil {
		out.RateLimit = &RateLimit{Count: m.RateLimit.Count, WindowMS: m.RateLimit.Window}
	}
	return out
}
