package main

import (
	"fmt"
	"io"
	"time"

	"susc/internal/buildpipeline"
	"susc/internal/driver"
	"susc/internal/observ"
)

func printStageTimings(out io.Writer, timings buildpipeline.Timings) {
	for _, stage := range buildpipeline.Stages {
		if !timings.Has(stage) {
			continue
		}
		if _, err := fmt.Fprintf(out, "  %-6s %.1f ms\n", stage, toMillis(timings.Duration(stage))); err != nil {
			panic(err)
		}
	}
}

// printTimings writes the stage timings and the phase report of every
// project, as text or, for json, as one object keyed by root.
func printTimings(out io.Writer, results []driver.Result, asJSON bool) error {
	if asJSON {
		reports := make(map[string]observ.Report, len(results))
		for _, r := range results {
			reports[r.Root] = r.Report
		}
		return writeJSON(out, reports)
	}
	for _, r := range results {
		if _, err := fmt.Fprintf(out, "%s:\n", r.Root); err != nil {
			return err
		}
		printStageTimings(out, r.Timings)
		if len(r.Report.Phases) > 0 {
			if _, err := io.WriteString(out, r.Report.Summary()); err != nil {
				return err
			}
		}
	}
	return nil
}

func toMillis(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}
