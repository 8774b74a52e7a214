package lsp

import (
	"susc/internal/diag"
	"susc/internal/source"
)

func lspSeverity(s diag.Severity) int {
	switch s {
	case diag.SevError:
		return 1
	case diag.SevWarning:
		return 2
	default:
		return 3
	}
}

// publishable converts the diagnostics of a document's project. Those located
// in the document keep their range. Those without a location, or located in an
// included file, are shown at the start of the document with their location
// in the message.
func publishable(doc *document) []wireDiagnostic {
	fs := doc.unit.FileSet()
	self := doc.unit.Source()
	out := make([]wireDiagnostic, 0, len(doc.diags))
	for _, d := range doc.diags {
		ld := wireDiagnostic{
			Severity: lspSeverity(d.Severity),
			Code:     d.Code.ID(),
			Source:   "susc",
			Message:  d.Message,
		}
		primary, ok := d.Primary()
		switch {
		case ok && primary.File == self.ID:
			ld.Range = rangeForSpan(self, primary)
		case ok:
			ld.Message = fs.Location(primary).String() + ": " + d.Message
		}
		if ok {
			for _, sp := range d.Locations[1:] {
				if loc, found := locationForSpan(fs, sp); found {
					ld.RelatedInformation = append(ld.RelatedInformation, relatedInfo{
						Location: loc,
						Message:  "also here",
					})
				}
			}
		}
		out = append(out, ld)
	}
	return out
}

// spanAt returns a zero-width span at off in file.
func spanAt(file *source.File, off uint32) source.Span {
	return source.Span{File: file.ID, Start: off, End: off}
}
