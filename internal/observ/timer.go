// Package observ times the phases of one project.
package observ

import (
	"fmt"
	"strings"
	"time"
)

// Phase is one timed parse or link. Depth counts the phases that were open
// when it began, so an included file parsed inside its includer has depth 1.
type Phase struct {
	Name  string
	Start time.Time
	Dur   time.Duration
	Note  string
	Depth int
}

// Timer tracks phases of one project. It is not safe for concurrent use;
// driver.Compile gives every project its own.
type Timer struct {
	phases []Phase
	open   int
}

func NewTimer() *Timer { return &Timer{phases: make([]Phase, 0, 8)} }

// Begin starts a phase and returns its index for End.
func (t *Timer) Begin(name string) int {
	t.phases = append(t.phases, Phase{Name: name, Start: time.Now(), Depth: t.open})
	t.open++
	return len(t.phases) - 1
}

// End finishes the phase idx. Unknown indices are ignored.
func (t *Timer) End(idx int, note string) {
	if idx < 0 || idx >= len(t.phases) {
		return
	}
	p := &t.phases[idx]
	p.Dur = time.Since(p.Start)
	p.Note = note
	t.open = max(t.open-1, 0)
}

// PhaseReport is one phase in a Report.
type PhaseReport struct {
	Name       string  `json:"name"`
	DurationMS float64 `json:"duration_ms"`
	Note       string  `json:"note,omitempty"`
	Depth      int     `json:"depth,omitempty"`
}

// Report is the serialisable form of a Timer, used by --timings.
type Report struct {
	// TotalMS is the wall time from the first Begin to the last End.
	TotalMS float64       `json:"total_ms"`
	Phases  []PhaseReport `json:"phases"`
}

// Report lists the phases in the order they began.
func (t *Timer) Report() Report {
	if len(t.phases) == 0 {
		return Report{}
	}
	r := Report{Phases: make([]PhaseReport, 0, len(t.phases))}
	first, last := t.phases[0].Start, t.phases[0].Start
	for _, p := range t.phases {
		r.Phases = append(r.Phases, PhaseReport{Name: p.Name, DurationMS: millis(p.Dur), Note: p.Note, Depth: p.Depth})
		if end := p.Start.Add(p.Dur); end.After(last) {
			last = end
		}
	}
	r.TotalMS = millis(last.Sub(first))
	return r
}

// Summary renders the report as an indented table.
func (r Report) Summary() string {
	var b strings.Builder
	b.WriteString("timings:\n")
	for _, p := range r.Phases {
		name := strings.Repeat("  ", p.Depth) + p.Name
		fmt.Fprintf(&b, "  %-32s %8.2f ms", name, p.DurationMS)
		if p.Note != "" {
			b.WriteString("  // " + p.Note)
		}
		b.WriteByte('\n')
	}
	fmt.Fprintf(&b, "  %-32s %8.2f ms\n", "total", r.TotalMS)
	return b.String()
}

func millis(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}
