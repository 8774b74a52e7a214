// Command susc checks .sus interface definitions and hands the linked
// declarations to code generators.
package main

import (
	"errors"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"susc/internal/version"
)

// errFailed reports that the diagnostics were printed already; main only
// sets the exit status.
var errFailed = errors.New("compilation failed")

var rootCmd = &cobra.Command{
	Use:   "susc",
	Short: "Compiler front end for .sus interface definitions",
	Long: `susc parses, checks and links .sus interface definitions. It reports
diagnostics, serves editors over LSP and emits the linked declarations
for code generators.`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setupTracing,
	PersistentPostRun: func(cmd *cobra.Command, _ []string) { closeTracing(cmd, false) },
}

func init() {
	rootCmd.Version = version.Version

	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(emitCmd)
	rootCmd.AddCommand(tokensCmd)
	rootCmd.AddCommand(parseCmd)
	rootCmd.AddCommand(explainCmd)
	rootCmd.AddCommand(lspCmd)
	rootCmd.AddCommand(versionCmd)

	// Глобальные флаги
	flags := rootCmd.PersistentFlags()
	flags.String("color", "auto", "colorize output (auto|on|off)")
	flags.Bool("quiet", false, "suppress non-essential output")
	flags.Bool("timings", false, "show timing information")
	flags.Int("max-diagnostics", 100, "maximum number of diagnostics per file")
	flags.String("stdlib", "", "standard library directory (default: bundled, or $SUSC_STDLIB)")
	flags.String("trace", "", "trace output file (- for stderr)")
	flags.String("trace-level", "off", "trace level (off|error|phase|detail|debug)")
	flags.String("trace-mode", "stream", "trace storage (stream|ring|both)")
	flags.String("trace-format", "auto", "trace format (auto|text|ndjson)")
	flags.Int("trace-ring-size", 4096, "events kept in ring mode")
	flags.BoolP("verbose", "v", false, "trace at detail level to stderr")
	flags.String("cpu-profile", "", "write a CPU profile to this file")
	flags.String("mem-profile", "", "write a heap profile to this file")
	flags.String("runtime-trace", "", "write a Go runtime trace to this file")
}

func main() {
	cmd, err := rootCmd.ExecuteC()
	if err == nil {
		return
	}
	closeTracing(cmd, true)
	if !errors.Is(err, errFailed) {
		cmd.PrintErrln("susc: " + err.Error())
	}
	os.Exit(1)
}

// isTerminal проверяет, является ли файл терминалом
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd())) // #nosec G115 -- file descriptors fit in int
}
