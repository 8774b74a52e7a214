package diag

import (
	"fmt"
	"strings"
)

// Severity orders diagnostics: only SevError fails a project.
type Severity uint8

const (
	SevInfo Severity = iota
	SevWarning
	SevError
)

var severityNames = [...]string{SevInfo: "INFO", SevWarning: "WARNING", SevError: "ERROR"}

func (s Severity) String() string {
	if int(s) < len(severityNames) {
		return severityNames[s]
	}
	return "UNKNOWN"
}

// ParseSeverity accepts a severity name in any case; "note" means info.
func ParseSeverity(s string) (Severity, error) {
	if strings.EqualFold(s, "note") {
		return SevInfo, nil
	}
	for i, name := range severityNames {
		if strings.EqualFold(s, name) {
			return Severity(i), nil
		}
	}
	return SevInfo, fmt.Errorf("unknown severity %q (expected info|warning|error)", s)
}

// AtLeast returns the diagnostics of severity floor or above, keeping order.
func AtLeast(diags []Diagnostic, floor Severity) []Diagnostic {
	if floor == SevInfo {
		return diags
	}
	var out []Diagnostic
	for _, d := range diags {
		if d.Severity >= floor {
			out = append(out, d)
		}
	}
	return out
}
