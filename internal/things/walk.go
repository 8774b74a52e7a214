package things

import "susc/internal/source"

// Children returns the nested things of t in source order.
func Children(t Thing) []Thing {
	var out []Thing
	fields := func(fs []*Field) {
		for _, f := range fs {
			out = append(out, f)
		}
	}
	switch t := t.(type) {
	case *Enum:
		for _, m := range t.Members {
			out = append(out, m)
		}
	case *Bitfield:
		for _, m := range t.Members {
			out = append(out, m)
		}
	case *Entity:
		fields(t.Fields)
		for _, m := range t.Methods {
			out = append(out, m)
		}
	case *Compound:
		fields(t.Fields)
	case *Confirmation:
		fields(t.Request)
		fields(t.Response)
	case *Method:
		fields(t.Params)
		fields(t.Returns)
	case *Field:
		if t.Type != nil {
			out = append(out, t.Type)
		}
	case *Type:
		for _, a := range t.Args {
			if a.IsType() {
				out = append(out, a.Type)
			}
		}
		for _, v := range t.Validators {
			out = append(out, v)
		}
	case *EnumMember, *Validator:
	}
	return out
}

// Walk visits t and its descendants depth-first; returning false skips children.
func Walk(t Thing, visit func(Thing) bool) {
	if t == nil || !visit(t) {
		return
	}
	for _, c := range Children(t) {
		Walk(c, visit)
	}
}

// At returns the innermost thing whose name span contains off in file.
// The chain of enclosing things is returned as well, outermost first.
// Generated things share the span of their origin and are skipped.
func At(all []Thing, file source.FileID, off uint32) (Thing, []Thing) {
	var (
		best  Thing
		chain []Thing
	)
	var visit func(t Thing, parents []Thing)
	visit = func(t Thing, parents []Thing) {
		if t.Head().Generated {
			return
		}
		sp := t.Head().Span
		if sp.File == file && sp.Contains(off) && !sp.Empty() {
			best = t
			chain = append([]Thing(nil), parents...)
		}
		next := append(parents, t)
		for _, c := range Children(t) {
			visit(c, next)
		}
	}
	for _, t := range all {
		visit(t, nil)
	}
	return best, chain
}

// Lookup returns the first top-level thing with the given name.
func Lookup(all []Thing, name string) Thing {
	for _, t := range all {
		if t.Head().Name == name {
			return t
		}
	}
	return nil
}
