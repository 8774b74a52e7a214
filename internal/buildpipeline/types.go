// Package buildpipeline describes how far each project of a compile has got.
package buildpipeline

import (
	"slices"
	"time"
)

// Stage is a step every project goes through, in the order of Stages.
type Stage string

const (
	StageLoad Stage = "load" // read the root file
	// StageParse covers parsing, converting and including every file.
	StageParse Stage = "parse"
	StageLink  Stage = "link"
)

// Stages lists the stages in the order a project goes through them.
var Stages = []Stage{StageLoad, StageParse, StageLink}

// Status of a project within its current stage.
type Status string

const (
	StatusQueued  Status = "queued"
	StatusWorking Status = "working"
	StatusDone    Status = "done" // only sent for StageLink
	StatusError   Status = "error"
)

// Final reports whether no further event follows for the project.
func (s Status) Final() bool { return s == StatusDone || s == StatusError }

// Event reports progress of the project whose root is File.
type Event struct {
	File    string
	Stage   Stage
	Status  Status
	Err     error
	Elapsed time.Duration // since the project started, on final events
}

// ProgressSink consumes progress events. driver.Compile calls it from
// several goroutines.
type ProgressSink interface {
	OnEvent(Event)
}

// Timings holds the duration of each stage of one project. The zero value
// is empty.
type Timings struct {
	dur [3]time.Duration
	set uint8
}

func stageIndex(s Stage) int { return slices.Index(Stages, s) }

// Set records the duration of stage; unknown stages are ignored.
func (t *Timings) Set(stage Stage, dur time.Duration) {
	i := stageIndex(stage)
	if t == nil || i < 0 {
		return
	}
	t.dur[i] = dur
	t.set |= 1 << i
}

func (t Timings) Has(stage Stage) bool {
	i := stageIndex(stage)
	return i >= 0 && t.set&(1<<i) != 0
}

// Duration returns the recorded duration for stage, 0 when unset.
func (t Timings) Duration(stage Stage) time.Duration {
	if !t.Has(stage) {
		return 0
	}
	return t.dur[stageIndex(stage)]
}

// Sum adds up the durations of stages.
func (t Timings) Sum(stages ...Stage) time.Duration {
	var total time.Duration
	for _, s := range stages {
		total += t.Duration(s)
	}
	return total
}
