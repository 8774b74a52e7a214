package buildpipeline

import (
	"testing"
	"time"
)

func TestTimings(t *testing.T) {
	var tm Timings
	if tm.Has(StageParse) || tm.Duration(StageParse) != 0 {
		t.Fatal("zero Timings should be empty")
	}
	tm.Set(StageParse, 3*time.Millisecond)
	tm.Set(StageLink, 2*time.Millisecond)
	if !tm.Has(StageParse) || tm.Has(StageLoad) {
		t.Errorf("Has mismatch")
	}
	if got := tm.Sum(Stages...); got != 5*time.Millisecond {
		t.Errorf("Sum = %v", got)
	}
}

func TestRecorderFinal(t *testing.T) {
	var r Recorder
	r.OnEvent(Event{File: "a.sus", Stage: StageLoad, Status: StatusQueued})
	r.OnEvent(Event{Stage: StageParse, Status: StatusWorking})
	r.OnEvent(Event{File: "a.sus", Stage: StageLink, Status: StatusDone})
	final := r.Final()
	if len(final) != 1 || final["a.sus"].Status != StatusDone {
		t.Errorf("final = %+v", final)
	}
	if len(r.Events()) != 3 {
		t.Errorf("events = %d", len(r.Events()))
	}
}
