package things

import (
	"fmt"
	"strconv"
	"strings"
)

// String renders the type the way it is written in source.
func (t *Type) String() string {
	if t == nil {
		return "<nil>"
	}
	var b strings.Builder
	b.WriteString(t.Name)
	if len(t.Args) > 0 {
		b.WriteByte('(')
		for i, a := range t.Args {
			if i > 0 {
				b.WriteString(", ")
			}
			if a.IsType() {
				b.WriteString(a.Type.String())
			} else {
				b.WriteString(strconv.FormatInt(a.Num, 10))
			}
		}
		b.WriteByte(')')
	}
	if len(t.Validators) > 0 {
		b.WriteByte('[')
		for i, v := range t.Validators {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString(v.String())
		}
		b.WriteByte(']')
	}
	return b.String()
}

func (v *Validator) String() string {
	return v.Name + ": " + RestrictionString(v.Restriction)
}

// RestrictionString renders a restriction in source syntax.
func RestrictionString(r Restriction) string {
	switch r := r.(type) {
	case Range:
		if r.Open {
			return fmt.Sprintf("%d+", r.Min)
		}
		return fmt.Sprintf("%d..%d", r.Min, r.Max)
	case Number:
		return strconv.FormatInt(int64(r), 10)
	case *Pattern:
		return "/" + r.Source + "/" + r.Flags
	default:
		return "?"
	}
}

func (f *Field) String() string {
	opt := ""
	if f.Optional != nil {
		opt = fmt.Sprintf("opt(%d) ", *f.Optional)
	}
	return fmt.Sprintf("%s: %s%s", f.Name, opt, f.Type)
}

// Display renders a thing as source-like text, used for hover and dumps.
func Display(t Thing) string {
	var b strings.Builder
	display(&b, t, "")
	return strings.TrimRight(b.String(), "\n")
}

func display(b *strings.Builder, t Thing, indent string) {
	fields := func(fs []*Field, indent string) {
		for _, f := range fs {
			fmt.Fprintf(b, "%s%s;\n", indent, f)
		}
	}
	members := func(ms []*EnumMember) {
		for _, m := range ms {
			fmt.Fprintf(b, "%s    %s(%d),\n", indent, m.Name, m.Value)
		}
	}

	switch t := t.(type) {
	case *Enum:
		fmt.Fprintf(b, "%senum(%d) %s {\n", indent, t.Size, t.Name)
		members(t.Members)
		fmt.Fprintf(b, "%s}\n", indent)
	case *Bitfield:
		fmt.Fprintf(b, "%sbitfield(%d) %s {\n", indent, t.Size, t.Name)
		members(t.Members)
		fmt.Fprintf(b, "%s}\n", indent)
	case *EnumMember:
		fmt.Fprintf(b, "%s%s(%d)\n", indent, t.Name, t.Value)
	case *Entity:
		fmt.Fprintf(b, "%sentity %s(%d) {\n", indent, t.Name, t.Value)
		fields(t.Fields, indent+"    ")
		for _, m := range t.Methods {
			fmt.Fprintf(b, "%s    %s\n", indent, signature(m))
		}
		fmt.Fprintf(b, "%s}\n", indent)
	case *Compound:
		fmt.Fprintf(b, "%scompound %s {\n", indent, t.Name)
		fields(t.Fields, indent+"    ")
		fmt.Fprintf(b, "%s}\n", indent)
	case *Confirmation:
		fmt.Fprintf(b, "%sconfirmation %s(%d) {\n", indent, t.Name, t.Value)
		fmt.Fprintf(b, "%s    request {\n", indent)
		fields(t.Request, indent+"        ")
		fmt.Fprintf(b, "%s    }\n%s    response {\n", indent, indent)
		fields(t.Response, indent+"        ")
		fmt.Fprintf(b, "%s    }\n%s}\n", indent, indent)
	case *Method:
		fmt.Fprintf(b, "%s%s {\n", indent, signature(t))
		fields(t.Params, indent+"    ")
		if len(t.Returns) > 0 {
			fmt.Fprintf(b, "%s    returns {\n", indent)
			fields(t.Returns, indent+"        ")
			fmt.Fprintf(b, "%s    }\n", indent)
		}
		if len(t.Errors) > 0 {
			fmt.Fprintf(b, "%s    errors { %s }\n", indent, strings.Join(t.Errors, ", "))
		}
		if len(t.Confirmations) > 0 {
			fmt.Fprintf(b, "%s    confirmations { %s }\n", indent, strings.Join(t.Confirmations, ", "))
		}
		if t.RateLimit != nil {
			fmt.Fprintf(b, "%s    ratelimit %d every %dms;\n", indent, t.RateLimit.Count, t.RateLimit.Window)
		}
		fmt.Fprintf(b, "%s}\n", indent)
	case *Field:
		fmt.Fprintf(b, "%s%s;\n", indent, t)
	case *Type:
		fmt.Fprintf(b, "%s%s\n", indent, t)
	case *Validator:
		fmt.Fprintf(b, "%s%s\n", indent, t)
	}
}

func signature(m *Method) string {
	kw := "method"
	switch {
	case m.Global:
		kw = "globalmethod"
	case m.Static:
		kw = "staticmethod"
	}
	return fmt.Sprintf("%s %s(%d)", kw, m.Name, m.Value)
}
