package driver

import (
	"context"
	"runtime"
	"strconv"
	"time"

	"golang.org/x/sync/errgroup"

	"susc/internal/buildpipeline"
	"susc/internal/diag"
	"susc/internal/observ"
	"susc/internal/things"
	"susc/internal/trace"
)

// CompileOptions configures Compile.
type CompileOptions struct {
	Options
	// Jobs bounds the projects compiled at once; 0 means GOMAXPROCS.
	Jobs int
	// Progress receives per-project events; may be nil.
	Progress buildpipeline.ProgressSink
	// Timings records a phase timer per project.
	Timings bool
}

// Result is the outcome of compiling one project.
type Result struct {
	Root        string
	Unit        *Unit
	Things      []things.Thing
	Diagnostics []diag.Diagnostic
	Timings     buildpipeline.Timings
	// Report is filled when CompileOptions.Timings is set.
	Report observ.Report
	// Err is set when a file of the project could not be read.
	Err error
	// SuggestExplain is set when an error has an entry in `susc explain`.
	SuggestExplain bool
}

// Failed reports whether the project has errors or could not be read.
func (r *Result) Failed() bool {
	return r.Err != nil || diag.HasErrors(r.Diagnostics)
}

// Compile compiles every root as its own project. Projects run concurrently;
// each one is parsed and linked on a single goroutine. A project failing does
// not stop the others; the returned error is only set when ctx is cancelled.
// Results are in the order of roots.
func Compile(ctx context.Context, roots []string, opts CompileOptions) ([]Result, error) {
	results := make([]Result, len(roots))
	if len(roots) == 0 {
		return results, nil
	}
	for _, root := range roots {
		emit(opts.Progress, root, buildpipeline.StageLoad, buildpipeline.StatusQueued, nil, 0)
	}

	ctx, span := trace.Start(ctx, trace.ScopeDriver, "compile")

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(roots)))

	for i, root := range roots {
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}
			results[i] = compileOne(trace.WithProject(gctx, root), root, opts)
			return nil
		})
	}
	err := g.Wait()

	failed := 0
	for i := range results {
		if results[i].Failed() {
			failed++
		}
	}
	span.WithExtra("failed", strconv.Itoa(failed)).End(strconv.Itoa(len(roots)) + " projects")
	return results, err
}

func compileOne(ctx context.Context, root string, opts CompileOptions) Result {
	res := Result{Root: root}
	popts := opts.Options
	if opts.Timings {
		popts.Timer = observ.NewTimer()
	}

	// parsing runs once per included file; only the first start is reported
	started := map[buildpipeline.Stage]bool{}
	popts.OnPhase = func(ev PhaseEvent) {
		switch {
		case ev.Done:
			res.Timings.Set(ev.Stage, res.Timings.Duration(ev.Stage)+ev.Elapsed)
		case !started[ev.Stage]:
			started[ev.Stage] = true
			emit(opts.Progress, root, ev.Stage, buildpipeline.StatusWorking, nil, 0)
		}
	}

	emit(opts.Progress, root, buildpipeline.StageLoad, buildpipeline.StatusWorking, nil, 0)
	start := time.Now()
	u := New(popts)
	res.Unit = u
	if err := u.LoadFromFile(root); err != nil {
		res.Err = err
		res.Diagnostics = []diag.Diagnostic{{Severity: diag.SevError, Code: diag.IOLoadFileFail, Message: err.Error()}}
		emit(opts.Progress, root, buildpipeline.StageLoad, buildpipeline.StatusError, err, time.Since(start))
		return res
	}
	res.Timings.Set(buildpipeline.StageLoad, time.Since(start))

	all, diags, err := u.Parse(ctx)
	if popts.Timer != nil {
		res.Report = popts.Timer.Report()
	}
	if err != nil {
		res.Err = err
		res.Diagnostics = append(u.Diagnostics(), diag.Diagnostic{Severity: diag.SevError, Code: diag.IOLoadFileFail, Message: err.Error()})
		emit(opts.Progress, root, buildpipeline.StageParse, buildpipeline.StatusError, err, time.Since(start))
		return res
	}
	res.Things = all
	res.Diagnostics = diags
	res.SuggestExplain = suggestExplain(diags)

	status := buildpipeline.StatusDone
	if diag.HasErrors(diags) {
		status = buildpipeline.StatusError
	}
	emit(opts.Progress, root, buildpipeline.StageLink, status, nil, time.Since(start))
	return res
}

func suggestExplain(diags []diag.Diagnostic) bool {
	for _, d := range diags {
		if !d.IsError() {
			continue
		}
		if _, ok := diag.Explain(d.Code); ok {
			return true
		}
	}
	return false
}

func emit(sink buildpipeline.ProgressSink, file string, stage buildpipeline.Stage, status buildpipeline.Status, err error, elapsed time.Duration) {
	if sink == nil {
		return
	}
	sink.OnEvent(buildpipeline.Event{File: file, Stage: stage, Status: status, Err: err, Elapsed: elapsed})
}
