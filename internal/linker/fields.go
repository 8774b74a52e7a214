package linker

import (
	"fmt"

	"susc/internal/diag"
	"susc/internal/things"
)

func (l *linker) validateFields() {
	for _, set := range l.fieldSets() {
		l.validateFieldSet(set)
	}
}

func (l *linker) validateFieldSet(fields []*things.Field) {
	for _, f := range fields {
		if f.Optional != nil && *f.Optional >= 256 {
			v := *f.Optional % 256
			diag.Warn(l.rep, diag.LnkValueOverflow, f.Span,
				fmt.Sprintf("optional value '%d' will be taken mod 256 ('%d')", *f.Optional, v))
			f.Optional = &v
		}
	}

	byName := make(map[string][]*things.Field)
	byOpt := make(map[int64][]*things.Field)
	var names []string
	var opts []int64
	for _, f := range fields {
		if _, ok := byName[f.Name]; !ok {
			names = append(names, f.Name)
		}
		byName[f.Name] = append(byName[f.Name], f)
		if f.Optional != nil {
			if _, ok := byOpt[*f.Optional]; !ok {
				opts = append(opts, *f.Optional)
			}
			byOpt[*f.Optional] = append(byOpt[*f.Optional], f)
		}
	}
	for _, name := range names {
		if same := byName[name]; len(same) > 1 {
			l.rep.Report(diag.LnkDuplicateField, diag.SevError, spansOf(same),
				fmt.Sprintf("multiple fields named '%s'", name))
		}
	}
	for _, opt := range opts {
		if same := byOpt[opt]; len(same) > 1 {
			l.rep.Report(diag.LnkDuplicateOptional, diag.SevError, spansOf(same),
				fmt.Sprintf("multiple fields with the optional value '%d'", opt))
		}
	}

	for _, f := range fields {
		if f.Type == nil {
			continue
		}
		if err := f.Type.Check(l.known); err != nil {
			diag.Error(l.rep, diag.LnkTypeError, f.Type.Span, err.Error())
		}
	}
}
