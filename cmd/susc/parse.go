package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"susc/internal/convert"
	"susc/internal/diag"
	"susc/internal/diagfmt"
	"susc/internal/parser"
	"susc/internal/source"
	"susc/internal/things"
)

var parseCmd = &cobra.Command{
	Use:   "parse <file>",
	Short: "Print the parse tree of a file",
	Long: `Parse prints the tree of one file without resolving includes or linking.
With --things the converted declarations are printed instead.`,
	Args: cobra.ExactArgs(1),
	RunE: runParse,
}

func init() {
	parseCmd.Flags().Bool("things", false, "print converted declarations instead of the tree")
	parseCmd.Flags().Int("max-repairs", 0, "syntax repairs before giving up (0 = default)")
}

func runParse(cmd *cobra.Command, args []string) error {
	showThings, err := cmd.Flags().GetBool("things")
	if err != nil {
		return fmt.Errorf("failed to get things flag: %w", err)
	}
	maxRepairs, err := cmd.Flags().GetInt("max-repairs")
	if err != nil {
		return fmt.Errorf("failed to get max-repairs flag: %w", err)
	}

	fs := source.NewFileSet()
	id, err := fs.Load(args[0])
	if err != nil {
		return err
	}
	bag := diag.NewBag(0)
	reporter := diag.BagReporter{Bag: bag}
	res := parser.ParseFile(fs.Get(id), parser.Options{Reporter: reporter, MaxRepairs: maxRepairs})

	out := cmd.OutOrStdout()
	if !showThings {
		if err := diagfmt.FormatTreePretty(out, res.Tree, fs); err != nil {
			return err
		}
		return reportLocal(cmd, bag, fs)
	}

	conv := convert.New(reporter)
	var all []things.Thing
	if res.Tree != nil {
		all = conv.ConvertFile(res.Tree)
	} else {
		for _, n := range res.Partial {
			if t := conv.Convert(n); t != nil {
				all = append(all, t)
			}
		}
	}
	for _, t := range all {
		if _, err := fmt.Fprintln(out, things.Display(t)); err != nil {
			return err
		}
	}
	return reportLocal(cmd, bag, fs)
}
