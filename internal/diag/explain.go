package diag

import "strings"

// Explanation documents a code for `susc explain`.
// Text may contain ``` fenced examples; the CLI compiles and annotates them.
type Explanation struct {
	Code     Code
	Severity Severity
	Text     string
}

// Explain returns the documentation entry of a code.
func Explain(c Code) (Explanation, bool) {
	e, ok := explanations[c]
	if !ok {
		return Explanation{}, false
	}
	return Explanation{Code: c, Severity: e.sev, Text: strings.TrimSpace(e.text)}, true
}

type explanation struct {
	sev  Severity
	text string
}

var explanations = map[Code]explanation{
	SynUnexpectedToken: {SevError, `
The parser met a token it could not fit anywhere and none of the automatic
repairs applied. The file produces no declarations.

` + "```" + `
compound Example {
    field:
}
` + "```"},
	SynNamingConvention: {SevError, `
Type, entity, compound and confirmation names are PascalCase. Fields, members,
methods and validators are snake_case. The parser fixes the case and goes on.

WRONG:
` + "```" + `
compound example { }
` + "```" + `
RIGHT:
` + "```" + `
compound Example { }
` + "```"},
	SynMissingValue: {SevError, `
The declaration must carry a numeric value (entities, methods, confirmations)
or a size (enums, bitfields). The parser assumes (0).

WRONG:
` + "```" + `
entity Example { }
` + "```" + `
RIGHT:
` + "```" + `
entity Example(0) { }
` + "```"},
	SynMissingName: {SevError, `
The name of the declaration was omitted.

WRONG:
` + "```" + `
compound { }
` + "```" + `
RIGHT:
` + "```" + `
compound Name { }
` + "```"},
	SynMissingPunctuation: {SevError, `
A single punctuation token was missing and has been inserted.

` + "```" + `
compound Example {
    a: Str
}
` + "```"},
	SynDiscardedConstruct: {SevError, `
A malformed construct was dropped up to the enclosing opening brace so that the
rest of the file stays parseable. Its earlier members are lost as well.

` + "```" + `
compound Example {
    a: Str;
    b: ;
}
` + "```"},
	SynInvalidRegex: {SevError, `
The regular expression of a match validator does not compile.

` + "```" + `
compound Example {
    a: Str[match: /(unclosed/];
}
` + "```"},
	SynTypeShape: {SevError, `
A built-in type was instantiated with the wrong arguments or validators.
See LNK3004.`},
	ResIncludeNotFound: {SevError, `
No file matched an include. The compiler tries the path as written, relative
to the including file and relative to the standard library, each with and
without the .sus extension.

` + "```" + `
include this_file_does_not_exist
` + "```"},
	ResDuplicateInclude: {SevError, `
A file was included more than once in one project. Paths that resolve to the
same file are the same include.

` + "```" + `
include impostor
include impostor.sus
` + "```"},
	ResUnknownSetting: {SevWarning, `
The setting is not known to the compiler. It is stored anyway, so generators
may still read it.

` + "```" + `
set example 123
` + "```"},
	LnkValueOverflow: {SevWarning, `
A numeric value was taken modulo its maximum:
  - opt(x): x <= 255
  - method, staticmethod, globalmethod name(x): x <= 127
  - entity Name(x): x <= 127
  - confirmation Name(x): x <= 15
  - enum(n) member(y): y <= 256^n - 1
  - bitfield(n) member(y): y <= n*8 - 1

The value identifies the thing on the wire in place of its name.

` + "```" + `
compound Example {
    field: opt(1000) Str;
}
` + "```"},
	LnkDuplicateField: {SevError, `
Several fields of one structure share a name.

` + "```" + `
compound Example {
    field: Str;
    field: Str;
}
` + "```"},
	LnkDuplicateOptional: {SevError, `
Several optional fields of one structure share an opt() value.

WRONG:
` + "```" + `
compound Example {
    first: opt(0) Str;
    second: opt(0) Str;
}
` + "```" + `
RIGHT:
` + "```" + `
compound Example {
    first: opt(0) Str;
    second: opt(1) Str;
}
` + "```"},
	LnkTypeError: {SevError, `
A type was instantiated with a wrong number or kind of arguments or
validators, or names a type that is not declared.

` + "```" + `
compound Example {
    a: Int;
    b: Int(Bool);
    c: Str(1);
    d: Str[len: /regexp?/i];
    e: Missing;
}
` + "```"},
	LnkRedefinition: {SevError, `
Declarations of enums and bitfields with the same name are combined, even
across files. Any other kind of declaration may only be declared once.

` + "```" + `
compound A { }
compound A { }
` + "```"},
	LnkSizeMismatch: {SevError, `
Combined enum or bitfield declarations must have the same size.

` + "```" + `
enum(1) A { a(0) }
enum(2) A { b(1) }
` + "```"},
	LnkMemberClash: {SevError, `
Combined enum or bitfield declarations declare the same member name or value.

` + "```" + `
enum(1) A { a(0) }
enum(1) A { a(1) }
` + "```"},
	LnkUndefinedConfirmation: {SevError, `
A method references a confirmation that is not declared.

` + "```" + `
globalmethod example(0) {
    confirmations { Example }
}
` + "```"},
	LnkNoErrorCodeEnum: {SevWarning, `
A method references error codes but no ErrorCode enum is declared.
Declare one or include impostor, which you may extend by declaring more
ErrorCode members yourself.

` + "```" + `
globalmethod example(0) {
    errors { invalid_id }
}
` + "```"},
	LnkUndefinedErrorCode: {SevError, `
A method references an error code that is not a member of ErrorCode.

` + "```" + `
include impostor
globalmethod example(0) {
    errors { not_a_thing }
}
` + "```"},
	LnkValueCollision: {SevError, `
Several things of one kind share a numeric value. Entities, confirmations,
global methods and the static and instance methods of each entity are
separate value spaces.

WRONG:
` + "```" + `
globalmethod example_a(0) { }
globalmethod example_b(0) { }
` + "```" + `
RIGHT:
` + "```" + `
globalmethod example_a(0) { }
globalmethod example_b(1) { }
` + "```"},
	LnkMissingID: {SevWarning, `
Every entity should have an id field of type Int(8).

WRONG:
` + "```" + `
include impostor
entity Example(0) {
    id: Str;
}
` + "```" + `
RIGHT:
` + "```" + `
include impostor
entity Example(0) {
    id: Int(8);
}
` + "```"},
}
