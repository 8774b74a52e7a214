// Package linker merges and validates the declarations of a whole project.
//
// Run is called once, by the root unit, over the flattened things of every
// file. Each stage only reports; none of them stops the pipeline. Groups that
// cannot be combined are left out of the result.
package linker

import (
	"context"
	"fmt"
	"strings"

	"susc/internal/diag"
	"susc/internal/things"
	"susc/internal/trace"
)

// Run links the flattened things of a project and returns the final list.
func Run(ctx context.Context, all []things.Thing, r diag.Reporter) []things.Thing {
	if r == nil {
		r = diag.NopReporter{}
	}
	l := &linker{rep: r, all: all, known: things.Identifiers(all)}

	ctx, root := trace.Start(ctx, trace.ScopePass, "link")
	defer root.End(fmt.Sprintf("things=%d", len(all)))
	phase := func(name string) func() {
		_, span := trace.Start(ctx, trace.ScopeModule, name)
		return func() { span.End("") }
	}

	done := phase("validate_fields")
	l.validateFields()
	done()

	done = phase("combine")
	out := l.combine()
	done()

	done = phase("validate_method_meta")
	l.validateMethodMeta(out)
	done()

	done = phase("validate_values")
	l.validateValues()
	done()

	done = phase("strip_docstrings")
	stripDocstrings(out)
	done()

	return out
}

type linker struct {
	rep   diag.Reporter
	all   []things.Thing
	known func(string) bool
}

func (l *linker) entities() []*things.Entity {
	var out []*things.Entity
	for _, t := range l.all {
		if e, ok := t.(*things.Entity); ok {
			out = append(out, e)
		}
	}
	return out
}

func (l *linker) confirmations() []*things.Confirmation {
	var out []*things.Confirmation
	for _, t := range l.all {
		if c, ok := t.(*things.Confirmation); ok {
			out = append(out, c)
		}
	}
	return out
}

// methodSets returns the global methods, then the static and the instance
// methods of every entity. Values are unique within a set.
func (l *linker) methodSets() [][]*things.Method {
	var global []*things.Method
	for _, t := range l.all {
		if m, ok := t.(*things.Method); ok {
			global = append(global, m)
		}
	}
	sets := [][]*things.Method{global}
	for _, e := range l.entities() {
		sets = append(sets, e.StaticMethods(), e.InstanceMethods())
	}
	return sets
}

// fieldSets returns every group of fields whose names and optional indices
// must be unique.
func (l *linker) fieldSets() [][]*things.Field {
	var sets [][]*things.Field
	for _, t := range l.all {
		switch t := t.(type) {
		case *things.Entity:
			sets = append(sets, t.Fields)
		case *things.Confirmation:
			sets = append(sets, t.Request, t.Response)
		case *things.Compound:
			sets = append(sets, t.Fields)
		}
	}
	for _, set := range l.methodSets() {
		for _, m := range set {
			sets = append(sets, m.Params, m.Returns)
		}
	}
	return sets
}

func stripDocstrings(out []things.Thing) {
	for _, t := range out {
		things.Walk(t, func(t things.Thing) bool {
			h := t.Head()
			h.Doc = strings.TrimSpace(h.Doc)
			return true
		})
	}
}
