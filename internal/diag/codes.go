package diag

import (
	"fmt"
	"slices"
)

type Code uint16

const (
	// Неизвестная ошибка
	UnknownCode Code = 0

	// Лексические
	LexInfo                  Code = 1000
	LexUnknownChar           Code = 1001
	LexUnterminatedString    Code = 1002
	LexUnterminatedDocstring Code = 1003
	LexUnterminatedRegex     Code = 1004
	LexBadNumber             Code = 1005

	// Парсерные
	SynInfo               Code = 2000
	SynUnexpectedToken    Code = 2001
	SynNamingConvention   Code = 2002
	SynMissingValue       Code = 2003
	SynMissingName        Code = 2004
	SynMissingPunctuation Code = 2005
	SynDiscardedConstruct Code = 2006
	SynTooManyRepairs     Code = 2007

	// AST -> Things
	SynInvalidNumber       Code = 2101
	SynInvalidRegex        Code = 2102
	SynInvalidDuration     Code = 2103
	SynDuplicateListMember Code = 2104
	SynTypeShape           Code = 2105

	// Линкер
	LnkInfo                  Code = 3000
	LnkValueOverflow         Code = 3001
	LnkDuplicateField        Code = 3002
	LnkDuplicateOptional     Code = 3003
	LnkTypeError             Code = 3004
	LnkRedefinition          Code = 3005
	LnkSizeMismatch          Code = 3006
	LnkMemberClash           Code = 3007
	LnkUndefinedConfirmation Code = 3008
	LnkNoErrorCodeEnum       Code = 3009
	LnkUndefinedErrorCode    Code = 3010
	LnkValueCollision        Code = 3011
	LnkMissingID             Code = 3012

	// IO
	IOInfo         Code = 4000
	IOLoadFileFail Code = 4001

	// Разрешение include / set
	ResInfo             Code = 5000
	ResIncludeNotFound  Code = 5001
	ResDuplicateInclude Code = 5002
	ResUnknownSetting   Code = 5003
)

var codeDescription = map[Code]string{
	UnknownCode:              "Unknown error",
	LexInfo:                  "Lexical information",
	LexUnknownChar:           "Unknown character",
	LexUnterminatedString:    "Unterminated string literal",
	LexUnterminatedDocstring: "Unterminated docstring",
	LexUnterminatedRegex:     "Unterminated regex literal",
	LexBadNumber:             "Malformed number",
	SynInfo:                  "Syntax information",
	SynUnexpectedToken:       "Syntax error",
	SynNamingConvention:      "Naming convention violation",
	SynMissingValue:          "Missing numeric value",
	SynMissingName:           "Missing name",
	SynMissingPunctuation:    "Missing punctuation",
	SynDiscardedConstruct:    "Malformed construct discarded",
	SynTooManyRepairs:        "Too many syntax errors",
	SynInvalidNumber:         "Number out of range",
	SynInvalidRegex:          "Invalid regular expression",
	SynInvalidDuration:       "Invalid duration",
	SynDuplicateListMember:   "Duplicate list member",
	SynTypeShape:             "Malformed type instantiation",
	LnkInfo:                  "Linker information",
	LnkValueOverflow:         "Value taken modulo its maximum",
	LnkDuplicateField:        "Duplicate field name",
	LnkDuplicateOptional:     "Duplicate optional field value",
	LnkTypeError:             "Type error",
	LnkRedefinition:          "Redefinition",
	LnkSizeMismatch:          "Combined declarations differ in size",
	LnkMemberClash:           "Combined declarations share a member",
	LnkUndefinedConfirmation: "Undefined confirmation",
	LnkNoErrorCodeEnum:       "ErrorCode enum not defined",
	LnkUndefinedErrorCode:    "Undefined error code",
	LnkValueCollision:        "Numeric value collision",
	LnkMissingID:             "Entity has no Int(8) id field",
	IOInfo:                   "IO information",
	IOLoadFileFail:           "Cannot read file",
	ResInfo:                  "Resolver information",
	ResIncludeNotFound:       "Included file not found",
	ResDuplicateInclude:      "File included multiple times",
	ResUnknownSetting:        "Unknown setting",
}

// Phase names the compiler stage that owns a code range.
func (c Code) Phase() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return "lexer"
	case ic >= 2000 && ic < 2100:
		return "parser"
	case ic >= 2100 && ic < 3000:
		return "converter"
	case ic >= 3000 && ic < 4000:
		return "linker"
	case ic >= 4000 && ic < 5000:
		return "io"
	case ic >= 5000 && ic < 6000:
		return "resolver"
	}
	return "unknown"
}

func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("LEX%04d", ic)
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("SYN%04d", ic)
	case ic >= 3000 && ic < 4000:
		return fmt.Sprintf("LNK%04d", ic)
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("IO%04d", ic)
	case ic >= 5000 && ic < 6000:
		return fmt.Sprintf("RES%04d", ic)
	}
	return "E0000"
}

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[UnknownCode]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}

// ParseCode accepts either the numeric form ("3005") or the ID form ("LNK3005").
func ParseCode(s string) (Code, bool) {
	for c := range codeDescription {
		if c == UnknownCode {
			continue
		}
		if s == c.ID() || s == fmt.Sprintf("%d", c) {
			return c, true
		}
	}
	return UnknownCode, false
}

// Codes returns every known code except UnknownCode, ascending.
func Codes() []Code {
	out := make([]Code, 0, len(codeDescription))
	for c := range codeDescription {
		if c != UnknownCode {
			out = append(out, c)
		}
	}
	slices.Sort(out)
	return out
}
