package driver

import (
	"time"

	"susc/internal/buildpipeline"
)

// PhaseEvent marks the start of a stage, or its end when Done is set.
// File names the file being parsed and is empty for the link stage.
type PhaseEvent struct {
	Stage   buildpipeline.Stage
	File    string
	Done    bool
	Elapsed time.Duration
}

// PhaseObserver is called on the goroutine that parses the unit.
type PhaseObserver func(PhaseEvent)

type phase struct {
	stage   buildpipeline.Stage
	file    string
	timerID int
	started time.Time
}

func (u *Unit) beginPhase(stage buildpipeline.Stage, file string) phase {
	ph := phase{stage: stage, file: file, timerID: -1, started: time.Now()}
	if t := u.opts.Timer; t != nil {
		label := string(stage)
		if file != "" {
			label += " " + file
		}
		ph.timerID = t.Begin(label)
	}
	u.observe(PhaseEvent{Stage: stage, File: file})
	return ph
}

func (u *Unit) endPhase(ph phase, note string) {
	if t := u.opts.Timer; t != nil {
		t.End(ph.timerID, note)
	}
	u.observe(PhaseEvent{Stage: ph.stage, File: ph.file, Done: true, Elapsed: time.Since(ph.started)})
}

func (u *Unit) observe(ev PhaseEvent) {
	if u.opts.OnPhase != nil {
		u.opts.OnPhase(ev)
	}
}
