package linker

import (
	"fmt"
	"slices"

	"susc/internal/diag"
	"susc/internal/things"
)

// ErrorCodeEnum is the enum whose members name the error codes methods may return.
const ErrorCodeEnum = "ErrorCode"

// validateMethodMeta checks the confirmations and error codes every method refers to.
func (l *linker) validateMethodMeta(combined []things.Thing) {
	var (
		errorCodes    []string
		haveErrorEnum bool
		confirmations []string
	)
	for _, t := range combined {
		switch t := t.(type) {
		case *things.Enum:
			if t.Name == ErrorCodeEnum {
				haveErrorEnum = true
				for _, m := range t.Members {
					errorCodes = append(errorCodes, m.Name)
				}
			}
		case *things.Confirmation:
			confirmations = append(confirmations, t.Name)
		}
	}

	warned := false
	for _, set := range l.methodSets() {
		for _, m := range set {
			for _, c := range m.Confirmations {
				if !slices.Contains(confirmations, c) {
					diag.Error(l.rep, diag.LnkUndefinedConfirmation, m.Span,
						fmt.Sprintf("undefined confirmation '%s'", c))
				}
			}
			if len(m.Errors) == 0 {
				continue
			}
			if !haveErrorEnum {
				if !warned {
					l.rep.Report(diag.LnkNoErrorCodeEnum, diag.SevWarning, nil,
						"no 'ErrorCode' enum defined, error codes are not checked. Include 'impostor.sus' or declare one")
					warned = true
				}
				continue
			}
			for _, e := range m.Errors {
				if !slices.Contains(errorCodes, e) {
					diag.Error(l.rep, diag.LnkUndefinedErrorCode, m.Span,
						fmt.Sprintf("undefined error code '%s'", e))
				}
			}
		}
	}
}
