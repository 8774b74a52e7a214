package diag

import "susc/internal/source"

// Reporter получает диагностики от фаз. Первая локация считается основной.
type Reporter interface {
	Report(code Code, sev Severity, locations []source.Span, msg string)
}

// Error reports an error located at one span. A nil Reporter drops it.
func Error(r Reporter, code Code, at source.Span, msg string) {
	report(r, SevError, code, at, msg)
}

// Warn reports a warning located at one span.
func Warn(r Reporter, code Code, at source.Span, msg string) {
	report(r, SevWarning, code, at, msg)
}

func report(r Reporter, sev Severity, code Code, at source.Span, msg string) {
	if r != nil {
		r.Report(code, sev, []source.Span{at}, msg)
	}
}

// BagReporter adds to Bag; a nil Bag drops everything.
type BagReporter struct{ Bag *Bag }

func (r BagReporter) Report(code Code, sev Severity, locations []source.Span, msg string) {
	if r.Bag != nil {
		r.Bag.Add(Diagnostic{Severity: sev, Code: code, Message: msg, Locations: locations})
	}
}

// NopReporter drops everything.
type NopReporter struct{}

func (NopReporter) Report(Code, Severity, []source.Span, string) {}
