package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"susc/internal/diag"
	"susc/internal/diagfmt"
	"susc/internal/lexer"
	"susc/internal/source"
)

var tokensCmd = &cobra.Command{
	Use:   "tokens <file>",
	Short: "Print the tokens of a file",
	Args:  cobra.ExactArgs(1),
	RunE:  runTokens,
}

func init() {
	tokensCmd.Flags().String("format", "pretty", "output format (pretty|json)")
}

func runTokens(cmd *cobra.Command, args []string) error {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	fs := source.NewFileSet()
	id, err := fs.Load(args[0])
	if err != nil {
		return err
	}
	bag := diag.NewBag(0)
	toks := lexer.All(fs.Get(id), lexer.Options{Reporter: diag.BagReporter{Bag: bag}})

	out := cmd.OutOrStdout()
	switch format {
	case "pretty":
		err = diagfmt.FormatTokensPretty(out, toks, fs)
	case "json":
		err = diagfmt.FormatTokensJSON(out, toks)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
	if err != nil {
		return err
	}
	return reportLocal(cmd, bag, fs)
}

// reportLocal prints the diagnostics of a single-file command to stderr.
func reportLocal(cmd *cobra.Command, bag *diag.Bag, fs *source.FileSet) error {
	if bag.Len() == 0 {
		return nil
	}
	bag.Sort()
	diagfmt.Short(cmd.ErrOrStderr(), bag.Items(), fs, diagfmt.PathModeAuto, "")
	if bag.HasErrors() {
		return errFailed
	}
	return nil
}
