package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"susc/internal/diag"
	"susc/internal/diagfmt"
	"susc/internal/driver"
)

var checkCmd = &cobra.Command{
	Use:   "check [files...]",
	Short: "Parse, check and link projects and print diagnostics",
	Long: `Check compiles every file given as its own project. Without arguments the
roots of the nearest sus.toml are used. The exit status is 1 when any
project has errors.`,
	RunE: runCheck,
}

func init() {
	checkCmd.Flags().String("format", "pretty", "output format (pretty|short|json)")
	checkCmd.Flags().String("ui", "auto", "progress view (auto|on|off)")
	checkCmd.Flags().Int("jobs", 0, "projects compiled at once (0 = GOMAXPROCS)")
	checkCmd.Flags().String("path-mode", "auto", "path display (auto|absolute|relative|basename)")
	checkCmd.Flags().Int("context", 0, "source lines shown above each diagnostic")
	checkCmd.Flags().String("severity", "info", "lowest severity shown (info|warning|error)")
}

type checkFlags struct {
	format   string
	ui       uiMode
	jobs     int
	pathMode diagfmt.PathMode
	context  int
	severity diag.Severity
	color    bool
	quiet    bool
	timings  bool
}

func readCheckFlags(cmd *cobra.Command) (checkFlags, error) {
	var f checkFlags
	var err error
	if f.format, err = cmd.Flags().GetString("format"); err != nil {
		return f, fmt.Errorf("failed to get format flag: %w", err)
	}
	switch f.format {
	case "pretty", "short", "json":
	default:
		return f, fmt.Errorf("unknown format: %s", f.format)
	}
	uiValue, err := cmd.Flags().GetString("ui")
	if err != nil {
		return f, fmt.Errorf("failed to get ui flag: %w", err)
	}
	if f.ui, err = readUIMode(uiValue); err != nil {
		return f, err
	}
	if f.jobs, err = cmd.Flags().GetInt("jobs"); err != nil {
		return f, fmt.Errorf("failed to get jobs flag: %w", err)
	}
	pathValue, err := cmd.Flags().GetString("path-mode")
	if err != nil {
		return f, fmt.Errorf("failed to get path-mode flag: %w", err)
	}
	var ok bool
	if f.pathMode, ok = diagfmt.ParsePathMode(pathValue); !ok {
		return f, fmt.Errorf("unknown path mode: %s", pathValue)
	}
	if f.context, err = cmd.Flags().GetInt("context"); err != nil {
		return f, fmt.Errorf("failed to get context flag: %w", err)
	}
	sevValue, err := cmd.Flags().GetString("severity")
	if err != nil {
		return f, fmt.Errorf("failed to get severity flag: %w", err)
	}
	if f.severity, err = diag.ParseSeverity(sevValue); err != nil {
		return f, err
	}

	root := cmd.Root().PersistentFlags()
	colorValue, err := root.GetString("color")
	if err != nil {
		return f, fmt.Errorf("failed to get color flag: %w", err)
	}
	if f.color, err = useColor(colorValue, os.Stdout); err != nil {
		return f, err
	}
	if f.quiet, err = root.GetBool("quiet"); err != nil {
		return f, fmt.Errorf("failed to get quiet flag: %w", err)
	}
	if f.timings, err = root.GetBool("timings"); err != nil {
		return f, fmt.Errorf("failed to get timings flag: %w", err)
	}
	if f.quiet {
		f.severity = diag.SevError
	}
	return f, nil
}

func runCheck(cmd *cobra.Command, args []string) error {
	flags, err := readCheckFlags(cmd)
	if err != nil {
		return err
	}
	in, err := resolveInputs(cmd, args)
	if err != nil {
		return err
	}
	results, err := compile(cmd, in, flags.ui, flags.jobs, flags.timings)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if err := printResults(out, results, in.baseDir, flags); err != nil {
		return err
	}
	if flags.timings {
		if err := printTimings(cmd.ErrOrStderr(), results, flags.format == "json"); err != nil {
			return err
		}
	}
	if anyFailed(results) {
		return errFailed
	}
	return nil
}

// compile runs driver.Compile, with the progress view when mode asks for it.
func compile(cmd *cobra.Command, in inputs, mode uiMode, jobs int, timings bool) ([]driver.Result, error) {
	opts := driver.CompileOptions{Options: in.opts, Jobs: jobs, Timings: timings}
	if shouldUseTUI(mode, len(in.roots)) {
		return compileWithUI(cmd.Context(), "checking", in.roots, opts)
	}
	return driver.Compile(cmd.Context(), in.roots, opts)
}

func printResults(out io.Writer, results []driver.Result, baseDir string, f checkFlags) error {
	if f.format == "json" {
		return printJSON(out, results, baseDir, f)
	}

	var all []diag.Diagnostic
	suggest := false
	for _, r := range results {
		diags := diag.AtLeast(r.Diagnostics, f.severity)
		all = append(all, diags...)
		suggest = suggest || r.SuggestExplain
		fs := r.Unit.FileSet()
		switch f.format {
		case "short":
			diagfmt.Short(out, diags, fs, f.pathMode, baseDir)
		default:
			diagfmt.Pretty(out, diags, fs, diagfmt.PrettyOpts{
				Color:    f.color,
				Context:  f.context,
				PathMode: f.pathMode,
				BaseDir:  baseDir,
			})
			if len(diags) > 0 {
				fmt.Fprintln(out) //nolint:errcheck
			}
		}
	}
	if f.format == "short" || f.quiet {
		return nil
	}
	if summary := diagfmt.Summary(all); summary != "" {
		fmt.Fprintf(out, "%s in %d project(s)\n", summary, len(results)) //nolint:errcheck
	}
	if suggest {
		fmt.Fprintln(out, "run `susc explain <CODE>` for details on an error") //nolint:errcheck
	}
	return nil
}

func printJSON(out io.Writer, results []driver.Result, baseDir string, f checkFlags) error {
	projects := make(map[string]diagfmt.DiagnosticsOutput, len(results))
	for _, r := range results {
		o := diagfmt.BuildDiagnosticsOutput(diag.AtLeast(r.Diagnostics, f.severity), r.Unit.FileSet(), diagfmt.JSONOpts{
			IncludePositions: true,
			PathMode:         f.pathMode,
			BaseDir:          baseDir,
		})
		o.SuggestExplain = r.SuggestExplain
		projects[r.Root] = o
	}
	return writeJSON(out, projects)
}

func anyFailed(results []driver.Result) bool {
	for i := range results {
		if results[i].Failed() {
			return true
		}
	}
	return false
}

func writeJSON(out io.Writer, v any) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
