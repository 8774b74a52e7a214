package diagfmt

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"fortio.org/safecast"
	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"susc/internal/diag"
	"susc/internal/source"
)

const tabWidth = 4

type palette struct {
	err, warn, info, note, gutter, code, bold *color.Color
}

func newPalette(enabled bool) palette {
	p := palette{
		err:    color.New(color.FgRed, color.Bold),
		warn:   color.New(color.FgYellow, color.Bold),
		info:   color.New(color.FgCyan, color.Bold),
		note:   color.New(color.FgBlue, color.Bold),
		gutter: color.New(color.FgBlue),
		code:   color.New(color.FgHiBlack),
		bold:   color.New(color.Bold),
	}
	for _, c := range []*color.Color{p.err, p.warn, p.info, p.note, p.gutter, p.code, p.bold} {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

func (p palette) severity(s diag.Severity) *color.Color {
	switch s {
	case diag.SevError:
		return p.err
	case diag.SevWarning:
		return p.warn
	default:
		return p.info
	}
}

// Pretty writes diagnostics in the order given (callers pass the result of
// diag.SortAndDedup). For each one it prints
//
//	<path>:<line>:<col>: <SEV> <CODE>: <message>
//
// followed by the source line with the span underlined ^~~~. Every further
// location is printed the same way under an "also here" note.
func Pretty(w io.Writer, diags []diag.Diagnostic, fs *source.FileSet, opts PrettyOpts) {
	p := newPalette(opts.Color)
	for i, d := range diags {
		if i > 0 {
			fmt.Fprintln(w) //nolint:errcheck
		}
		prettyOne(w, d, fs, opts, p)
	}
}

func prettyOne(w io.Writer, d diag.Diagnostic, fs *source.FileSet, opts PrettyOpts, p palette) {
	sev := p.severity(d.Severity)
	lines := strings.Split(d.Message, "\n")

	var sb strings.Builder
	if primary, ok := d.Primary(); ok && fs != nil {
		sb.WriteString(p.bold.Sprint(location(primary, fs, opts.PathMode, opts.BaseDir)))
		sb.WriteString(": ")
	}
	sb.WriteString(sev.Sprint(d.Severity.String()))
	sb.WriteString(" ")
	sb.WriteString(p.code.Sprint(d.Code.ID()))
	sb.WriteString(": ")
	sb.WriteString(p.bold.Sprint(lines[0]))
	fmt.Fprintln(w, sb.String()) //nolint:errcheck
	for _, l := range lines[1:] {
		fmt.Fprintf(w, "    %s\n", l) //nolint:errcheck
	}

	if fs == nil {
		return
	}
	for i, loc := range d.Locations {
		mark := sev
		if i > 0 {
			mark = p.note
			fmt.Fprintf(w, "  %s %s\n", p.note.Sprint("also here:"), location(loc, fs, opts.PathMode, opts.BaseDir)) //nolint:errcheck
		}
		snippet(w, fs, loc, opts, p, mark)
	}
}

func location(sp source.Span, fs *source.FileSet, mode PathMode, baseDir string) string {
	loc := fs.Location(sp)
	return fmt.Sprintf("%s:%d:%d", formatPath(loc.Path, mode, baseDir), loc.Line, loc.Col)
}

// snippet prints the line of sp's start with up to opts.Context lines above
// it and underlines the span up to the end of its first line.
func snippet(w io.Writer, fs *source.FileSet, sp source.Span, opts PrettyOpts, p palette, mark *color.Color) {
	f := fs.Get(sp.File)
	start, end := fs.Resolve(sp)
	first := start.Line
	if ctx, err := safecast.Conv[uint32](max(opts.Context, 0)); err == nil && ctx < first {
		first -= ctx
	} else {
		first = 1
	}
	gw := len(strconv.FormatUint(uint64(start.Line), 10))
	gutter := func(label string) string {
		return p.gutter.Sprint(fmt.Sprintf(" %*s |", gw, label))
	}

	for ln := first; ln <= start.Line; ln++ {
		text := expandTabs(f.GetLine(ln))
		if opts.Width > 0 {
			text = runewidth.Truncate(text, opts.Width, "…")
		}
		fmt.Fprintf(w, "%s %s\n", gutter(strconv.FormatUint(uint64(ln), 10)), text) //nolint:errcheck
	}

	line := f.GetLine(start.Line)
	from := clampCol(start.Col, line)
	to := len(line)
	if end.Line == start.Line {
		to = clampCol(end.Col, line)
	}
	pad := runewidth.StringWidth(expandTabs(line[:from]))
	width := runewidth.StringWidth(expandTabs(line[from:to]))
	if opts.Width > 0 && pad >= opts.Width {
		return
	}
	squiggle := "^"
	if width > 1 {
		squiggle += strings.Repeat("~", width-1)
	}
	fmt.Fprintf(w, "%s %s%s\n", gutter(""), strings.Repeat(" ", pad), mark.Sprint(squiggle)) //nolint:errcheck
}

// clampCol turns a 1-based byte column into an index into line.
func clampCol(col uint32, line string) int {
	idx, err := safecast.Conv[int](col)
	if err != nil || idx < 1 {
		return 0
	}
	return min(idx-1, len(line))
}

func expandTabs(s string) string {
	if !strings.Contains(s, "\t") {
		return s
	}
	var sb strings.Builder
	col := 0
	for _, r := range s {
		if r == '\t' {
			n := tabWidth - col%tabWidth
			sb.WriteString(strings.Repeat(" ", n))
			col += n
			continue
		}
		sb.WriteRune(r)
		col += runewidth.RuneWidth(r)
	}
	return sb.String()
}

// Short writes one line per diagnostic: path:line:col: SEV CODE: message.
// Multi-line messages are joined with "; ".
func Short(w io.Writer, diags []diag.Diagnostic, fs *source.FileSet, mode PathMode, baseDir string) {
	for _, d := range diags {
		prefix := "susc"
		if primary, ok := d.Primary(); ok && fs != nil {
			prefix = location(primary, fs, mode, baseDir)
		}
		msg := strings.ReplaceAll(d.Message, "\n", "; ")
		fmt.Fprintf(w, "%s: %s %s: %s\n", prefix, d.Severity, d.Code.ID(), msg) //nolint:errcheck
	}
}

// Summary returns e.g. "2 errors, 1 warning", or "" when diags is empty.
func Summary(diags []diag.Diagnostic) string {
	var parts []string
	for _, s := range []struct {
		sev  diag.Severity
		name string
	}{{diag.SevError, "error"}, {diag.SevWarning, "warning"}, {diag.SevInfo, "note"}} {
		n := diag.Count(diags, s.sev)
		switch {
		case n == 1:
			parts = append(parts, "1 "+s.name)
		case n > 1:
			parts = append(parts, fmt.Sprintf("%d %ss", n, s.name))
		}
	}
	return strings.Join(parts, ", ")
}
