package things

import (
	"errors"
	"fmt"
	"slices"
)

// MagicIdentifiers are type names that are always known.
var MagicIdentifiers = []string{"Entity"}

// Builtins are the type names with their own validity rules.
var Builtins = []string{"Int", "Str", "List", "Bool", "Bin"}

// Validators lists the validator parameters each built-in accepts.
var Validators = map[string][]string{
	"Int":  {"val"},
	"Str":  {"len", "match"},
	"List": {"cnt"},
	"Bin":  {"len"},
}

// Check reports the first problem with the type, or nil.
//
// known decides whether a non-built-in name refers to a declared type. With a
// nil known only the shape of the type is checked and every name is accepted.
func (t *Type) Check(known func(string) bool) error {
	switch t.Name {
	case "Int":
		if len(t.Args) != 1 {
			return errors.New("Int requires one argument")
		}
		if t.Args[0].IsType() || t.Args[0].Num <= 0 {
			return errors.New("argument to Int should be a positive integer")
		}
		return t.checkRanges("Int", "val")
	case "Str":
		if len(t.Args) != 0 {
			return errors.New("Str takes no arguments")
		}
		for _, v := range t.Validators {
			switch v.Name {
			case "len":
				if _, ok := v.Restriction.(Range); !ok {
					return errors.New("Str[len] must be a range")
				}
			case "match":
				if _, ok := v.Restriction.(*Pattern); !ok {
					return errors.New("Str[match] must be a regular expression")
				}
			default:
				return errors.New("the following validators are valid for Str: 'len', 'match'")
			}
		}
		return nil
	case "List":
		if len(t.Args) != 2 {
			return errors.New("List takes two arguments")
		}
		if !t.Args[0].IsType() {
			return errors.New("first argument to List should be a type")
		}
		if err := t.Args[0].Type.Check(known); err != nil {
			return err
		}
		if t.Args[1].IsType() || t.Args[1].Num <= 0 {
			return errors.New("second argument to List should be a positive integer")
		}
		return t.checkRanges("List", "cnt")
	case "Bool":
		if len(t.Args) != 0 {
			return errors.New("Bool takes no arguments")
		}
		if len(t.Validators) != 0 {
			return errors.New("Bool can't be validated")
		}
		return nil
	case "Bin":
		if len(t.Args) != 0 {
			return errors.New("Bin takes no arguments")
		}
		return t.checkRanges("Bin", "len")
	}

	if known != nil && !known(t.Name) {
		return fmt.Errorf("unknown type '%s'", t.Name)
	}
	if len(t.Args) != 0 {
		return fmt.Errorf("%s takes no arguments", t.Name)
	}
	if len(t.Validators) != 0 {
		return fmt.Errorf("%s can't be validated", t.Name)
	}
	return nil
}

// checkRanges accepts only range restrictions for the single parameter param.
func (t *Type) checkRanges(name, param string) error {
	for _, v := range t.Validators {
		if v.Name != param {
			return fmt.Errorf("the following validators are valid for %s: '%s'", name, param)
		}
		if _, ok := v.Restriction.(Range); !ok {
			return fmt.Errorf("%s[%s] must be a range", name, param)
		}
	}
	return nil
}

// IsBuiltin reports whether name is one of the built-in types.
func IsBuiltin(name string) bool {
	return slices.Contains(Builtins, name)
}

// Identifiers returns the known-name predicate for a set of declarations:
// every non-method name plus the magic identifiers.
func Identifiers(all []Thing) func(string) bool {
	set := make(map[string]struct{}, len(all)+len(MagicIdentifiers))
	for _, t := range all {
		if t.Kind() == KindMethod {
			continue
		}
		set[t.Head().Name] = struct{}{}
	}
	for _, m := range MagicIdentifiers {
		set[m] = struct{}{}
	}
	return func(name string) bool {
		_, ok := set[name]
		return ok
	}
}
