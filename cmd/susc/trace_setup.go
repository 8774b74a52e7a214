package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"susc/internal/prof"
	"susc/internal/trace"
)

// Set up once per invocation and torn down by closeTracing.
var (
	activeTracer  trace.Tracer = trace.Nop
	activeProfile *prof.Session
)

// setupTracing reads the trace and profiling flags, attaches the tracer to
// the command context and starts the requested profilers.
func setupTracing(cmd *cobra.Command, _ []string) error {
	flags := cmd.Root().PersistentFlags()

	traceOutput, err := flags.GetString("trace")
	if err != nil {
		return fmt.Errorf("failed to get trace flag: %w", err)
	}
	levelStr, err := flags.GetString("trace-level")
	if err != nil {
		return fmt.Errorf("failed to get trace-level flag: %w", err)
	}
	modeStr, err := flags.GetString("trace-mode")
	if err != nil {
		return fmt.Errorf("failed to get trace-mode flag: %w", err)
	}
	formatStr, err := flags.GetString("trace-format")
	if err != nil {
		return fmt.Errorf("failed to get trace-format flag: %w", err)
	}
	ringSize, err := flags.GetInt("trace-ring-size")
	if err != nil {
		return fmt.Errorf("failed to get trace-ring-size flag: %w", err)
	}
	verbose, err := flags.GetBool("verbose")
	if err != nil {
		return fmt.Errorf("failed to get verbose flag: %w", err)
	}

	level, err := trace.ParseLevel(levelStr)
	if err != nil {
		return err
	}
	// -v is a shorthand for detail tracing to stderr
	if verbose && level < trace.LevelDetail {
		level = trace.LevelDetail
	}
	// an output file without a level traces phases
	if level == trace.LevelOff && traceOutput != "" {
		level = trace.LevelPhase
	}
	mode, err := trace.ParseMode(modeStr)
	if err != nil {
		return err
	}
	format, err := trace.ParseFormat(formatStr)
	if err != nil {
		return err
	}

	tracer, err := trace.New(trace.Config{
		Level:      level,
		Mode:       mode,
		Format:     format,
		OutputPath: traceOutput,
		RingSize:   ringSize,
	})
	if err != nil {
		return fmt.Errorf("failed to create tracer: %w", err)
	}
	activeTracer = tracer

	ctx := trace.WithTracer(cmd.Context(), tracer)
	cmd.SetContext(ctx)
	cmd.Root().SetContext(ctx)

	return setupProfiling(cmd)
}

func setupProfiling(cmd *cobra.Command) error {
	flags := cmd.Root().PersistentFlags()
	var opts prof.Options
	var err error
	if opts.CPU, err = flags.GetString("cpu-profile"); err != nil {
		return fmt.Errorf("failed to get cpu-profile flag: %w", err)
	}
	if opts.Heap, err = flags.GetString("mem-profile"); err != nil {
		return fmt.Errorf("failed to get mem-profile flag: %w", err)
	}
	if opts.Trace, err = flags.GetString("runtime-trace"); err != nil {
		return fmt.Errorf("failed to get runtime-trace flag: %w", err)
	}
	s, err := prof.Start(opts)
	if err != nil {
		return err
	}
	if s.Active() {
		activeProfile = s
	}
	return nil
}

// closeTracing stops the profilers and flushes the tracer. After a failure
// the ring buffer, if any, is dumped to stderr.
func closeTracing(_ *cobra.Command, failed bool) {
	if err := activeProfile.Stop(); err != nil {
		fmt.Fprintf(os.Stderr, "failed to write profiles: %v\n", err)
	}
	activeProfile = nil

	if failed {
		if ring, ok := trace.FindRing(activeTracer); ok {
			fmt.Fprintln(os.Stderr, "--- last trace events ---")
			if err := ring.Dump(os.Stderr, trace.FormatText); err != nil {
				fmt.Fprintf(os.Stderr, "failed to dump trace: %v\n", err)
			}
		}
	}
	if err := activeTracer.Flush(); err != nil {
		fmt.Fprintf(os.Stderr, "failed to flush trace: %v\n", err)
	}
	if err := activeTracer.Close(); err != nil {
		fmt.Fprintf(os.Stderr, "failed to close trace: %v\n", err)
	}
	activeTracer = trace.Nop
}
