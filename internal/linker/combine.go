package linker

import (
	"fmt"
	"math"
	"strings"

	"susc/internal/diag"
	"susc/internal/source"
	"susc/internal/things"
)

func spansOf[T things.Thing](ts []T) []source.Span {
	out := make([]source.Span, 0, len(ts))
	for _, t := range ts {
		out = append(out, t.Head().Span)
	}
	return out
}

// combine groups things by name. Enums and bitfields declared several times
// with the same size are merged into one; every other repeated name is a
// redefinition and the whole group is dropped.
func (l *linker) combine() []things.Thing {
	groups := make(map[string][]things.Thing, len(l.all))
	var order []string
	for _, t := range l.all {
		name := t.Head().Name
		if _, seen := groups[name]; !seen {
			order = append(order, name)
		}
		groups[name] = append(groups[name], t)
	}

	out := make([]things.Thing, 0, len(order))
	for _, name := range order {
		group := groups[name]
		if len(group) == 1 {
			out = append(out, group[0])
			l.checkOverflow(group[0])
			continue
		}
		merged := l.merge(name, group)
		if merged == nil {
			continue
		}
		out = append(out, merged)
		l.checkOverflow(merged)
	}
	return out
}

func (l *linker) merge(name string, group []things.Thing) things.Thing {
	kind := group[0].Kind()
	for _, t := range group[1:] {
		if t.Kind() != kind {
			l.rep.Report(diag.LnkRedefinition, diag.SevError, spansOf(group),
				fmt.Sprintf("multiple things of different kinds share the name '%s'", name))
			return nil
		}
	}
	if kind != things.KindEnum && kind != things.KindBitfield {
		l.rep.Report(diag.LnkRedefinition, diag.SevError, spansOf(group),
			fmt.Sprintf("redefinition of '%s' (only enums and bitfields can be combined)", name))
		return nil
	}

	var (
		size    int64
		members []*things.EnumMember
		docs    []string
	)
	for i, t := range group {
		var s int64
		var ms []*things.EnumMember
		switch t := t.(type) {
		case *things.Enum:
			s, ms = t.Size, t.Members
		case *things.Bitfield:
			s, ms = t.Size, t.Members
		}
		if i == 0 {
			size = s
		} else if s != size {
			l.rep.Report(diag.LnkSizeMismatch, diag.SevError, spansOf(group),
				fmt.Sprintf("can't combine %ss named '%s' of different sizes", kind, name))
			return nil
		}
		members = append(members, ms...)
		if doc := t.Head().Doc; doc != "" {
			docs = append(docs, doc)
		}
	}

	head := *group[0].Head()
	head.Doc = strings.Join(docs, "\n")
	if kind == things.KindEnum {
		return &things.Enum{Header: head, Size: size, Members: members}
	}
	return &things.Bitfield{Header: head, Size: size, Members: members}
}

// checkOverflow warns about values that do not fit their numeric space and
// about members that clash by name or value.
func (l *linker) checkOverflow(t things.Thing) {
	switch t := t.(type) {
	case *things.Enum:
		l.checkMembers(t.Members, enumMax(t.Size))
	case *things.Bitfield:
		// generated field selects mirror fields already checked by validateFields
		if !t.Generated {
			l.checkMembers(t.Members, t.Size*8-1)
		}
	case *things.Entity:
		l.checkValue(t)
		for _, m := range t.Methods {
			l.checkValue(m)
		}
	case *things.Method, *things.Confirmation:
		l.checkValue(t)
	}
}

func enumMax(size int64) int64 {
	if size >= 8 {
		return math.MaxInt64
	}
	if size <= 0 {
		return -1
	}
	return int64(1)<<(8*size) - 1
}

func (l *linker) checkValue(t things.Thing) {
	v, _ := things.Value(t)
	maxv := things.MaxValue(t.Kind())
	if v < 0 || v > maxv {
		diag.Warn(l.rep, diag.LnkValueOverflow, t.Head().Span,
			fmt.Sprintf("value '%d' overflow (max '%d')", v, maxv))
	}
}

func (l *linker) checkMembers(members []*things.EnumMember, maxv int64) {
	byName := make(map[string]*things.EnumMember, len(members))
	byValue := make(map[int64]*things.EnumMember, len(members))
	for _, m := range members {
		if m.Value < 0 || m.Value > maxv {
			diag.Warn(l.rep, diag.LnkValueOverflow, m.Span,
				fmt.Sprintf("member value '%d' overflow (max '%d')", m.Value, maxv))
		}
		if prev, ok := byName[m.Name]; ok {
			l.rep.Report(diag.LnkMemberClash, diag.SevError, []source.Span{prev.Span, m.Span},
				fmt.Sprintf("multiple members named '%s'", m.Name))
		} else {
			byName[m.Name] = m
		}
		if prev, ok := byValue[m.Value]; ok {
			l.rep.Report(diag.LnkMemberClash, diag.SevError, []source.Span{prev.Span, m.Span},
				fmt.Sprintf("multiple members with the value '%d'", m.Value))
		} else {
			byValue[m.Value] = m
		}
	}
}
