package trace

import (
	"bytes"
	"context"
	"strings"
	"testing"
)

func TestSpansNestThroughContext(t *testing.T) {
	ring := NewRingTracer(8, LevelDetail)
	ctx := WithProject(WithTracer(context.Background(), ring), "/api/main.sus")

	inner, span := Start(ctx, ScopePass, "unit")
	if SpanID(inner) != span.ID() || SpanID(ctx) != 0 {
		t.Fatalf("span IDs: inner %d, outer %d", SpanID(inner), SpanID(ctx))
	}
	Point(inner, ScopeModule, "include", "a.sus")
	Point(inner, ScopeNode, "hidden", "")
	span.End("done")

	evs := ring.Snapshot()
	if len(evs) != 3 {
		t.Fatalf("got %d events, want 3", len(evs))
	}
	if evs[1].Kind != KindPoint || evs[1].ParentID != span.ID() || evs[1].Detail != "a.sus" {
		t.Errorf("point = %+v", evs[1])
	}
	if evs[2].Kind != KindSpanEnd || evs[2].Detail != "done" {
		t.Errorf("end = %+v", evs[2])
	}
	for _, ev := range evs {
		if ev.Project != "/api/main.sus" {
			t.Errorf("%s event lacks the project: %q", ev.Kind, ev.Project)
		}
	}
}

func TestLevelFilters(t *testing.T) {
	var buf bytes.Buffer
	ctx := WithProject(WithTracer(context.Background(), NewStreamTracer(&buf, LevelPhase, FormatText)), "/x/api.sus")
	hidden, span := Start(ctx, ScopeModule, "phase")
	span.End("")
	_ = FromContext(ctx).Flush()
	if buf.Len() != 0 || hidden != ctx {
		t.Fatalf("module scope leaked at phase level: %q", buf.String())
	}
	_, span = Start(ctx, ScopePass, "link")
	span.WithExtra("things", "3").End("")
	if err := FromContext(ctx).Flush(); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	if !strings.Contains(out, "[api.sus] → link") || !strings.Contains(out, "← link {things=3}") {
		t.Errorf("text output:\n%s", out)
	}
}

func TestNDJSONCarriesProject(t *testing.T) {
	ev := &Event{Kind: KindPoint, Scope: ScopeModule, Project: "/p/api.sus", Name: "include"}
	line := string(FormatEvent(ev, FormatNDJSON))
	if !strings.Contains(line, `"project":"/p/api.sus"`) || !strings.HasSuffix(line, "}\n") {
		t.Errorf("ndjson = %q", line)
	}
}

func TestNewOffIsNop(t *testing.T) {
	tr, err := New(Config{Level: LevelOff})
	if err != nil {
		t.Fatal(err)
	}
	if tr.Enabled() {
		t.Error("off tracer is enabled")
	}
	Point(WithTracer(context.Background(), tr), ScopeDriver, "x", "")
}

func TestParseFormat(t *testing.T) {
	for in, want := range map[string]Format{"": FormatAuto, "text": FormatText, "NDJSON": FormatNDJSON} {
		got, err := ParseFormat(in)
		if err != nil || got != want {
			t.Errorf("ParseFormat(%q) = %v, %v", in, got, err)
		}
	}
	if _, err := ParseFormat("chrome"); err == nil {
		t.Error("chrome should be rejected")
	}
}

func TestRingKeepsNewest(t *testing.T) {
	ring := NewRingTracer(3, LevelDebug)
	for i := range 5 {
		ring.Emit(&Event{Seq: uint64(i), Scope: ScopeNode})
	}
	evs := ring.Snapshot()
	if len(evs) != 3 || evs[0].Seq != 2 || evs[2].Seq != 4 {
		t.Errorf("snapshot = %+v", evs)
	}
}

func TestFindRing(t *testing.T) {
	tr, err := New(Config{Level: LevelPhase, Mode: ModeBoth, Output: &bytes.Buffer{}, RingSize: 4})
	if err != nil {
		t.Fatal(err)
	}
	ring, ok := FindRing(tr)
	if !ok {
		t.Fatal("both mode keeps a ring")
	}
	_, span := Start(WithTracer(context.Background(), tr), ScopeDriver, "compile")
	span.End("")
	if n := len(ring.Snapshot()); n != 2 {
		t.Errorf("ring holds %d events", n)
	}

	st, err := New(Config{Level: LevelPhase, Mode: ModeStream, Output: &bytes.Buffer{}})
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := FindRing(st); ok {
		t.Error("stream mode has no ring")
	}
}

func TestParseLevel(t *testing.T) {
	if l, err := ParseLevel("DETAIL"); err != nil || l != LevelDetail {
		t.Errorf("ParseLevel(DETAIL) = %v, %v", l, err)
	}
	if _, err := ParseLevel("loud"); err == nil {
		t.Error("expected an error")
	}
	if LevelDebug.String() != "debug" || Level(42).String() != "unknown" {
		t.Error("level names")
	}
}
