// Package emit serialises a linked project for code generators.
//
// The output is a Document: the project's settings and its things in link
// order, with validators spelled out and every name located in the sources.
// The same model is written as indented JSON or as msgpack.
package emit

// SchemaVersion changes whenever Document changes incompatibly.
const SchemaVersion uint16 = 1

type Document struct {
	Schema   uint16            `json:"schema"`
	Root     string            `json:"root"`
	Settings map[string]string `json:"settings,omitempty"`
	Things   []Thing           `json:"things"`
}

// Thing is one top-level declaration. Which fields are set depends on Kind.
type Thing struct {
	Kind      string    `json:"kind"`
	Name      string    `json:"name"`
	Doc       string    `json:"doc,omitempty"`
	Generated bool      `json:"generated,omitempty"`
	Location  *Location `json:"location,omitempty"`

	Value *int64 `json:"value,omitempty"` // entity, confirmation, global method
	Size  *int64 `json:"size,omitempty"`  // enum, bitfield

	Members  []Member `json:"members,omitempty"`
	Fields   []Field  `json:"fields,omitempty"`
	Methods  []Method `json:"methods,omitempty"`
	Request  []Field  `json:"request,omitempty"`
	Response []Field  `json:"response,omitempty"`
	Method   *Method  `json:"method,omitempty"` // global method
}

type Location struct {
	File string `json:"file"`
	Line uint32 `json:"line"`
	Col  uint32 `json:"col"`
}

type Member struct {
	Name  string `json:"name"`
	Doc   string `json:"doc,omitempty"`
	Value int64  `json:"value"`
}

type Field struct {
	Name     string `json:"name"`
	Doc      string `json:"doc,omitempty"`
	Optional *int64 `json:"optional,omitempty"`
	Type     Type   `json:"type"`
}

type Type struct {
	Name       string      `json:"name"`
	Args       []TypeArg   `json:"args,omitempty"`
	Validators []Validator `json:"validators,omitempty"`
}

// TypeArg is either a number or a nested type.
type TypeArg struct {
	Number *int64 `json:"number,omitempty"`
	Type   *Type  `json:"type,omitempty"`
}

// Validator kinds.
const (
	ValidatorRange   = "range"
	ValidatorNumber  = "number"
	ValidatorPattern = "pattern"
)

type Validator struct {
	Name string `json:"name"`
	Kind string `json:"kind"`
	// range; an open range (`a+`) carries the largest value of its type as Max
	Min  *int64 `json:"min,omitempty"`
	Max  *int64 `json:"max,omitempty"`
	Open bool   `json:"open,omitempty"`
	// number
	Number *int64 `json:"number,omitempty"`
	// pattern, in RE2 syntax
	Pattern string `json:"pattern,omitempty"`
	Flags   string `json:"flags,omitempty"`
}

type Method struct {
	Name          string     `json:"name"`
	Doc           string     `json:"doc,omitempty"`
	Static        bool       `json:"static,omitempty"`
	Generated     bool       `json:"generated,omitempty"`
	Value         int64      `json:"value"`
	Params        []Field    `json:"params,omitempty"`
	Returns       []Field    `json:"returns,omitempty"`
	Errors        []string   `json:"errors,omitempty"`
	Confirmations []string   `json:"confirmations,omitempty"`
	RateLimit     *RateLimit `json:"rate_limit,omitempty"`
}

type RateLimit struct {
	Count    int64 `json:"count"`
	WindowMS int64 `json:"window_ms"`
}
