package diag

import (
	"susc/internal/source"
)

// Diagnostic is one finding of a compiler phase.
// Locations are ordered; the first one is the primary location.
// A diagnostic may have no location at all (e.g. a root file that cannot be read).
type Diagnostic struct {
	Severity  Severity
	Code      Code
	Message   string
	Locations []source.Span
}

// Primary returns the first location, if any.
func (d Diagnostic) Primary() (source.Span, bool) {
	if len(d.Locations) == 0 {
		return source.Span{}, false
	}
	return d.Locations[0], true
}

// IsError reports whether the diagnostic blocks code generation.
func (d Diagnostic) IsError() bool {
	return d.Severity >= SevError
}
