package token

// Kind represents the category of a source token.
type Kind uint8

const (
	// Invalid indicates an erroneous token.
	Invalid Kind = iota
	// EOF marks the end of the source input.
	EOF

	// TypeIdent is a PascalCase identifier: type, entity and confirmation names.
	TypeIdent
	// Ident is a snake_case identifier: fields, members, methods, validators.
	Ident
	// BadIdent is an identifier following neither naming convention.
	BadIdent
	// Number is an optionally signed decimal integer.
	Number
	// Duration is a number with a time unit suffix (10s, 5mo).
	Duration
	// Regex is a /pattern/flags literal.
	Regex
	// String is a double-quoted string literal.
	String
	// Path is the operand of an include directive.
	Path
	// Value is the raw rest of the line after `set <key>`.
	Value

	LParen    // (
	RParen    // )
	LBrace    // {
	RBrace    // }
	LBracket  // [
	RBracket  // ]
	Comma     // ,
	Semicolon // ;
	Colon     // :
	DotDot    // ..
	Plus      // +

	KwInclude       // include
	KwSet           // set
	KwEnum          // enum
	KwBitfield      // bitfield
	KwEntity        // entity
	KwCompound      // compound
	KwConfirmation  // confirmation
	KwMethod        // method
	KwStaticMethod  // staticmethod
	KwGlobalMethod  // globalmethod
	KwOpt           // opt
	KwReturns       // returns
	KwErrors        // errors
	KwConfirmations // confirmations
	KwRateLimit     // ratelimit
	KwEvery         // every
	KwRequest       // request
	KwResponse      // response

	kindCount
)

// Count is the number of token kinds; kinds index dense tables.
const Count = int(kindCount)

var kindNames = [...]string{
	Invalid:         "invalid token",
	EOF:             "end of file",
	TypeIdent:       "type identifier",
	Ident:           "identifier",
	BadIdent:        "malformed identifier",
	Number:          "number",
	Duration:        "duration",
	Regex:           "regex",
	String:          "string",
	Path:            "path",
	Value:           "value",
	LParen:          "'('",
	RParen:          "')'",
	LBrace:          "'{'",
	RBrace:          "'}'",
	LBracket:        "'['",
	RBracket:        "']'",
	Comma:           "','",
	Semicolon:       "';'",
	Colon:           "':'",
	DotDot:          "'..'",
	Plus:            "'+'",
	KwInclude:       "'include'",
	KwSet:           "'set'",
	KwEnum:          "'enum'",
	KwBitfield:      "'bitfield'",
	KwEntity:        "'entity'",
	KwCompound:      "'compound'",
	KwConfirmation:  "'confirmation'",
	KwMethod:        "'method'",
	KwStaticMethod:  "'staticmethod'",
	KwGlobalMethod:  "'globalmethod'",
	KwOpt:           "'opt'",
	KwReturns:       "'returns'",
	KwErrors:        "'errors'",
	KwConfirmations: "'confirmations'",
	KwRateLimit:     "'ratelimit'",
	KwEvery:         "'every'",
	KwRequest:       "'request'",
	KwResponse:      "'response'",
}

// String returns a human-readable name, quoted for fixed-text kinds.
func (k Kind) String() string {
	if int(k) < len(kindNames) && kindNames[k] != "" {
		return kindNames[k]
	}
	return "unknown"
}

// Fixed reports whether the kind always has the same text (punctuation and keywords).
// Such tokens carry no information beyond their kind and are dropped from parse trees.
func (k Kind) Fixed() bool {
	return k >= LParen && k < kindCount
}

// IsKeyword reports whether the kind is a keyword.
func (k Kind) IsKeyword() bool {
	return k >= KwInclude && k < kindCount
}

// IsPunct reports whether the kind is punctuation.
func (k Kind) IsPunct() bool {
	return k >= LParen && k <= Plus
}

// Text returns the canonical source text of a fixed kind, or "" otherwise.
func (k Kind) Text() string {
	switch k {
	case LParen:
		return "("
	case RParen:
		return ")"
	case LBrace:
		return "{"
	case RBrace:
		return "}"
	case LBracket:
		return "["
	case RBracket:
		return "]"
	case Comma:
		return ","
	case Semicolon:
		return ";"
	case Colon:
		return ":"
	case DotDot:
		return ".."
	case Plus:
		return "+"
	}
	if k.IsKeyword() {
		for text, kw := range keywords {
			if kw == k {
				return text
			}
		}
	}
	return ""
}
