// Package things holds the semantic model of an IDL project: the declarations
// produced by the converter, merged and validated by the linker and handed to
// generators.
//
// Thing is a closed sum type. Every variant embeds Header, which carries the
// name, the location of the name token and the docstring. Traversals switch
// over the concrete types; adding a variant means visiting every switch in
// Walk, Display and the linker.
package things

import (
	"regexp"

	"susc/internal/source"
)

// Kind names a Thing variant.
type Kind uint8

const (
	KindEnum Kind = iota
	KindBitfield
	KindEntity
	KindCompound
	KindConfirmation
	KindMethod
	KindField
	KindType
	KindValidator
	KindMember
)

var kindNames = [...]string{
	KindEnum:         "enum",
	KindBitfield:     "bitfield",
	KindEntity:       "entity",
	KindCompound:     "compound",
	KindConfirmation: "confirmation",
	KindMethod:       "method",
	KindField:        "field",
	KindType:         "type",
	KindValidator:    "validator",
	KindMember:       "member",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// Header is shared by every Thing.
type Header struct {
	Name string      `json:"name"`
	Span source.Span `json:"-"`
	Doc  string      `json:"doc,omitempty"`
	// Generated marks things synthesised by the compiler rather than written.
	Generated bool `json:"generated,omitempty"`
}

// Head gives generic code access to the shared header.
func (h *Header) Head() *Header { return h }

// Thing is any declaration of the model.
type Thing interface {
	Kind() Kind
	Head() *Header
	thing()
}

// Enum is a fixed-size integer with named values.
type Enum struct {
	Header
	Size    int64         `json:"size"`
	Members []*EnumMember `json:"members"`
}

// Bitfield is a fixed-size set of named bits.
type Bitfield struct {
	Header
	Size    int64         `json:"size"`
	Members []*EnumMember `json:"members"`
}

// EnumMember is a member of an Enum or a Bitfield. For bitfields Value is the bit index.
type EnumMember struct {
	Header
	Value int64 `json:"value"`
}

// Entity is an addressable record with its own method sets.
type Entity struct {
	Header
	Value   int64     `json:"value"`
	Fields  []*Field  `json:"fields"`
	Methods []*Method `json:"methods"`
}

// StaticMethods returns the methods invoked without an instance.
func (e *Entity) StaticMethods() []*Method {
	var out []*Method
	for _, m := range e.Methods {
		if m.Static {
			out = append(out, m)
		}
	}
	return out
}

// InstanceMethods returns the methods invoked on an instance.
func (e *Entity) InstanceMethods() []*Method {
	var out []*Method
	for _, m := range e.Methods {
		if !m.Static {
			out = append(out, m)
		}
	}
	return out
}

// Field returns the field with the given name.
func (e *Entity) Field(name string) *Field {
	for _, f := range e.Fields {
		if f.Name == name {
			return f
		}
	}
	return nil
}

// Compound is a plain structure.
type Compound struct {
	Header
	Fields []*Field `json:"fields"`
}

// Confirmation is a request/response handshake.
type Confirmation struct {
	Header
	Value    int64    `json:"value"`
	Request  []*Field `json:"request"`
	Response []*Field `json:"response"`
}

// RateLimit allows Count calls per Window milliseconds.
type RateLimit struct {
	Count  int64 `json:"count"`
	Window int64 `json:"window_ms"`
}

// Method is either global or belongs to an entity.
type Method struct {
	Header
	Static        bool       `json:"static"`
	Global        bool       `json:"global"`
	Value         int64      `json:"value"`
	Params        []*Field   `json:"params"`
	Returns       []*Field   `json:"returns"`
	Errors        []string   `json:"errors"`
	Confirmations []string   `json:"confirmations"`
	RateLimit     *RateLimit `json:"rate_limit,omitempty"`
}

// Field is a named, typed member of a field set.
type Field struct {
	Header
	Type *Type `json:"type"`
	// Optional is the presence index given with opt(n), nil for required fields.
	Optional *int64 `json:"optional,omitempty"`
}

// Type is a reference to a built-in or declared type.
type Type struct {
	Header
	Args       []TypeArg    `json:"args,omitempty"`
	Validators []*Validator `json:"validators,omitempty"`
}

// TypeArg is either a number or a nested type.
type TypeArg struct {
	Num  int64 `json:"num,omitempty"`
	Type *Type `json:"type,omitempty"`
}

// IsType reports whether the argument is a nested type.
func (a TypeArg) IsType() bool { return a.Type != nil }

// Validator restricts the values of a type. Name is the parameter (val, len, match, cnt).
type Validator struct {
	Header
	Restriction Restriction `json:"-"`
}

// Restriction is one of Range, Number or *Pattern; nil means nothing was given.
type Restriction interface {
	restriction()
}

// Range is an inclusive interval. Open ranges were written as `a+`.
type Range struct {
	Min, Max int64
	Open     bool
}

// Number is a bare numeric validator value.
type Number int64

// Pattern is a compiled regular expression with the flags it was written with.
type Pattern struct {
	Source string
	Flags  string
	Re     *regexp.Regexp
}

func (Range) restriction()    {}
func (Number) restriction()   {}
func (*Pattern) restriction() {}

func (*Enum) Kind() Kind         { return KindEnum }
func (*Bitfield) Kind() Kind     { return KindBitfield }
func (*EnumMember) Kind() Kind   { return KindMember }
func (*Entity) Kind() Kind       { return KindEntity }
func (*Compound) Kind() Kind     { return KindCompound }
func (*Confirmation) Kind() Kind { return KindConfirmation }
func (*Method) Kind() Kind       { return KindMethod }
func (*Field) Kind() Kind        { return KindField }
func (*Type) Kind() Kind         { return KindType }
func (*Validator) Kind() Kind    { return KindValidator }

func (*Enum) thing()         {}
func (*Bitfield) thing()     {}
func (*EnumMember) thing()   {}
func (*Entity) thing()       {}
func (*Compound) thing()     {}
func (*Confirmation) thing() {}
func (*Method) thing()       {}
func (*Field) thing()        {}
func (*Type) thing()         {}
func (*Validator) thing()    {}

// MaxValue returns the largest numeric identifier a kind can carry, or -1 when
// the kind has none.
func MaxValue(k Kind) int64 {
	switch k {
	case KindEntity, KindMethod:
		return 127
	case KindConfirmation:
		return 15
	default:
		return -1
	}
}

// Value returns the numeric identifier of an entity, method or confirmation.
func Value(t Thing) (int64, bool) {
	switch t := t.(type) {
	case *Entity:
		return t.Value, true
	case *Method:
		return t.Value, true
	case *Confirmation:
		return t.Value, true
	default:
		return 0, false
	}
}
