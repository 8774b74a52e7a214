package diagfmt

import (
	"encoding/json"
	"io"

	"susc/internal/diag"
	"susc/internal/source"
)

// LocationJSON is one location of a diagnostic. Lines and columns are
// present with JSONOpts.IncludePositions.
type LocationJSON struct {
	File      string `json:"file"`
	StartByte uint32 `json:"start_byte"`
	EndByte   uint32 `json:"end_byte"`
	StartLine uint32 `json:"start_line,omitempty"`
	StartCol  uint32 `json:"start_col,omitempty"`
	EndLine   uint32 `json:"end_line,omitempty"`
	EndCol    uint32 `json:"end_col,omitempty"`
}

// DiagnosticJSON is one diagnostic. The first location is the primary one.
type DiagnosticJSON struct {
	Severity  string         `json:"severity"`
	Code      string         `json:"code"`
	Phase     string         `json:"phase"`
	Message   string         `json:"message"`
	Locations []LocationJSON `json:"locations"`
}

// DiagnosticsOutput is the JSON report of one project.
type DiagnosticsOutput struct {
	Root        string           `json:"root,omitempty"`
	Diagnostics []DiagnosticJSON `json:"diagnostics"`
	Count       int              `json:"count"`
	Errors      int              `json:"errors"`
	Warnings    int              `json:"warnings"`
	// SuggestExplain tells the reader that `susc explain <code>` has more.
	SuggestExplain bool `json:"suggest_explain,omitempty"`
}

type jsonBuilder struct {
	fs   *source.FileSet
	opts JSONOpts
}

func (b jsonBuilder) location(sp source.Span) LocationJSON {
	loc := LocationJSON{
		File:      formatPath(b.fs.Get(sp.File).Path, b.opts.PathMode, b.opts.BaseDir),
		StartByte: sp.Start,
		EndByte:   sp.End,
	}
	if b.opts.IncludePositions {
		from, to := b.fs.Resolve(sp)
		loc.StartLine, loc.StartCol = from.Line, from.Col
		loc.EndLine, loc.EndCol = to.Line, to.Col
	}
	return loc
}

func (b jsonBuilder) diagnostic(d diag.Diagnostic) DiagnosticJSON {
	out := DiagnosticJSON{
		Severity:  d.Severity.String(),
		Code:      d.Code.ID(),
		Phase:     d.Code.Phase(),
		Message:   d.Message,
		Locations: []LocationJSON{},
	}
	if b.fs != nil {
		for _, sp := range d.Locations {
			out.Locations = append(out.Locations, b.location(sp))
		}
	}
	return out
}

// BuildDiagnosticsOutput builds the report without encoding it. The counts
// cover every diagnostic even when opts.Max cuts the list.
func BuildDiagnosticsOutput(diags []diag.Diagnostic, fs *source.FileSet, opts JSONOpts) DiagnosticsOutput {
	b := jsonBuilder{fs: fs, opts: opts}
	shown := diags
	if opts.Max > 0 {
		shown = diags[:min(opts.Max, len(diags))]
	}
	out := DiagnosticsOutput{
		Diagnostics: make([]DiagnosticJSON, len(shown)),
		Count:       len(diags),
		Errors:      diag.Count(diags, diag.SevError),
		Warnings:    diag.Count(diags, diag.SevWarning),
	}
	for i, d := range shown {
		out.Diagnostics[i] = b.diagnostic(d)
	}
	return out
}

// JSON writes the report of diags, indented.
func JSON(w io.Writer, diags []diag.Diagnostic, fs *source.FileSet, opts JSONOpts) error {
	return encode(w, BuildDiagnosticsOutput(diags, fs, opts))
}

func encode(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
