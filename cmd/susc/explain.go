package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"susc/internal/diag"
	"susc/internal/diagfmt"
	"susc/internal/driver"
	"susc/internal/ui"
)

var explainCmd = &cobra.Command{
	Use:   "explain <CODE>",
	Short: "Explain a diagnostic code",
	Long: `Explain prints the documentation of a diagnostic code such as LNK3004 or
3004. Every example is compiled and the diagnostics it produces are shown
under it.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runExplain,
}

func init() {
	explainCmd.Flags().Bool("list", false, "list every code")
}

func runExplain(cmd *cobra.Command, args []string) error {
	list, err := cmd.Flags().GetBool("list")
	if err != nil {
		return fmt.Errorf("failed to get list flag: %w", err)
	}
	out := cmd.OutOrStdout()
	if list {
		for _, c := range diag.Codes() {
			mark := " "
			if _, ok := diag.Explain(c); ok {
				mark = "*"
			}
			fmt.Fprintf(out, "%s %-8s %s\n", mark, c.ID(), c.Title()) //nolint:errcheck
		}
		return nil
	}
	if len(args) == 0 {
		return fmt.Errorf("missing code; see --list")
	}

	code, ok := diag.ParseCode(strings.ToUpper(args[0]))
	if !ok {
		return fmt.Errorf("unknown code %q", args[0])
	}
	e, ok := diag.Explain(code)
	if !ok {
		fmt.Fprintf(out, "%s: %s\nno further explanation is available\n", code.ID(), code.Title()) //nolint:errcheck
		return nil
	}

	colorValue, err := cmd.Root().PersistentFlags().GetString("color")
	if err != nil {
		return fmt.Errorf("failed to get color flag: %w", err)
	}
	colored, err := useColor(colorValue, os.Stdout)
	if err != nil {
		return err
	}
	width := 0
	if isTerminal(os.Stdout) {
		if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil { // #nosec G115 -- file descriptors fit in int
			width = min(w, 100)
		}
	}
	annotate := func(example string) string {
		return compileExample(cmd.Context(), example)
	}
	fmt.Fprint(out, ui.RenderExplanation(e, annotate, colored, width)) //nolint:errcheck
	return nil
}

// compileExample compiles an example as a file of its own and returns its
// diagnostics, one per line.
func compileExample(ctx context.Context, example string) string {
	u := driver.New(driver.Options{})
	u.LoadFromText(example, "")
	_, diags, err := u.Parse(ctx)
	if err != nil {
		return err.Error()
	}
	if len(diags) == 0 {
		return "compiles cleanly"
	}
	var b strings.Builder
	diagfmt.Short(&b, diags, u.FileSet(), diagfmt.PathModeBasename, "")
	return strings.TrimRight(b.String(), "\n")
}
