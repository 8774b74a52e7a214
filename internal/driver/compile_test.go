package driver

import (
	"context"
	"path/filepath"
	"testing"

	"susc/internal/buildpipeline"
	"susc/internal/diag"
)

func TestCompileIndependentProjects(t *testing.T) {
	t.Setenv(StdlibEnv, "")
	dir := t.TempDir()
	good := writeFile(t, dir, "good.sus", "include impostor\nentity User(0) { id: Int(8); }\n")
	bad := writeFile(t, dir, "bad.sus", "compound A { b: Missing; }\n")
	missing := filepath.Join(dir, "missing.sus")

	var rec buildpipeline.Recorder
	results, err := Compile(context.Background(), []string{good, bad, missing}, CompileOptions{
		Jobs:     2,
		Progress: &rec,
		Timings:  true,
	})
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 3 {
		t.Fatalf("got %d results", len(results))
	}

	if r := results[0]; r.Root != good || r.Failed() || len(r.Things) == 0 {
		t.Errorf("good project: failed=%t things=%d diags=%+v", r.Failed(), len(r.Things), r.Diagnostics)
	}
	if r := results[0]; !r.Timings.Has(buildpipeline.StageParse) || !r.Timings.Has(buildpipeline.StageLink) || len(r.Report.Phases) == 0 {
		t.Errorf("good project timings missing: %+v", r.Report)
	}

	r := results[1]
	if !r.Failed() || r.Err != nil {
		t.Errorf("bad project: failed=%t err=%v", r.Failed(), r.Err)
	}
	if len(r.Diagnostics) != 1 || r.Diagnostics[0].Code != diag.LnkTypeError {
		t.Errorf("bad project diagnostics = %+v", r.Diagnostics)
	}
	if !r.SuggestExplain {
		t.Error("a type error has an explanation")
	}

	r = results[2]
	if r.Err == nil || len(r.Diagnostics) != 1 || r.Diagnostics[0].Code != diag.IOLoadFileFail {
		t.Errorf("missing project: err=%v diags=%+v", r.Err, r.Diagnostics)
	}
	if _, ok := r.Diagnostics[0].Primary(); ok {
		t.Error("an unreadable root has no location")
	}

	final := rec.Final()
	want := map[string]buildpipeline.Status{
		good:    buildpipeline.StatusDone,
		bad:     buildpipeline.StatusError,
		missing: buildpipeline.StatusError,
	}
	for file, status := range want {
		if got := final[file].Status; got != status {
			t.Errorf("%s: final status %s, want %s", filepath.Base(file), got, status)
		}
	}
	if final[missing].Stage != buildpipeline.StageLoad {
		t.Errorf("missing root failed at %s", final[missing].Stage)
	}
}

func TestCompileCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Compile(ctx, []string{"a.sus"}, CompileOptions{})
	if err == nil {
		t.Error("expected the context error")
	}
}

func TestCompileNoRoots(t *testing.T) {
	results, err := Compile(context.Background(), nil, CompileOptions{})
	if err != nil || len(results) != 0 {
		t.Errorf("results = %v, err = %v", results, err)
	}
}
