package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"susc/internal/diag"
	"susc/internal/diagfmt"
	"susc/internal/emit"
)

var emitCmd = &cobra.Command{
	Use:   "emit [files...]",
	Short: "Write the linked declarations for code generators",
	Long: `Emit compiles like check and, when no project has errors, writes each
project's declarations as JSON or msgpack. With several projects, -o
names a directory that receives one file per root.`,
	RunE: runEmit,
}

func init() {
	emitCmd.Flags().String("format", "json", "output format (json|msgpack)")
	emitCmd.Flags().StringP("output", "o", "", "output file or directory (default stdout)")
	emitCmd.Flags().Int("jobs", 0, "projects compiled at once (0 = GOMAXPROCS)")
}

func runEmit(cmd *cobra.Command, args []string) error {
	formatValue, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	format, err := emit.ParseFormat(formatValue)
	if err != nil {
		return err
	}
	output, err := cmd.Flags().GetString("output")
	if err != nil {
		return fmt.Errorf("failed to get output flag: %w", err)
	}
	jobs, err := cmd.Flags().GetInt("jobs")
	if err != nil {
		return fmt.Errorf("failed to get jobs flag: %w", err)
	}
	if output == "" && format == emit.FormatMsgpack && isTerminal(os.Stdout) {
		return errors.New("refusing to write msgpack to a terminal; use -o")
	}

	in, err := resolveInputs(cmd, args)
	if err != nil {
		return err
	}
	results, err := compile(cmd, in, uiModeOff, jobs, false)
	if err != nil {
		return err
	}
	if anyFailed(results) {
		for _, r := range results {
			diagfmt.Short(cmd.ErrOrStderr(), diag.AtLeast(r.Diagnostics, diag.SevError), r.Unit.FileSet(), diagfmt.PathModeAuto, in.baseDir)
		}
		return errFailed
	}

	for _, r := range results {
		doc := emit.Build(r.Root, r.Things, r.Unit.Settings(), r.Unit.FileSet())
		if err := writeDocument(cmd.OutOrStdout(), output, len(results) > 1, doc, format); err != nil {
			return err
		}
	}
	return nil
}

func writeDocument(stdout io.Writer, output string, many bool, doc emit.Document, format emit.Format) (err error) {
	if output == "" {
		return emit.Write(stdout, doc, format)
	}
	path := output
	if many {
		if err := os.MkdirAll(output, 0o750); err != nil {
			return err
		}
		name := strings.TrimSuffix(filepath.Base(doc.Root), filepath.Ext(doc.Root))
		path = filepath.Join(output, name+"."+string(format))
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := f.Close(); err == nil {
			err = closeErr
		}
	}()
	return emit.Write(f, doc, format)
}
