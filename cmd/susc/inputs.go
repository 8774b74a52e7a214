package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"susc/internal/driver"
	"susc/internal/project"
)

// inputs are the roots to compile and the options every project shares.
type inputs struct {
	roots   []string
	opts    driver.Options
	baseDir string
}

// resolveInputs takes the roots from args or, without args, from the
// nearest sus.toml. The manifest also supplies the stdlib directory and
// default settings; --stdlib wins over both.
func resolveInputs(cmd *cobra.Command, args []string) (inputs, error) {
	var in inputs
	cwd, err := os.Getwd()
	if err != nil {
		return in, err
	}
	in.baseDir = cwd

	start := cwd
	if len(args) > 0 {
		start = filepath.Dir(args[0])
	}
	manifest, ok, err := project.Load(start)
	if err != nil {
		return in, err
	}

	switch {
	case len(args) > 0:
		for _, a := range args {
			abs, err := filepath.Abs(a)
			if err != nil {
				return in, err
			}
			in.roots = append(in.roots, abs)
		}
	case ok:
		if in.roots, err = manifest.RootPaths(); err != nil {
			return in, err
		}
	default:
		return in, errors.New("no input files and no sus.toml found")
	}

	if ok {
		in.opts.StdlibDir = manifest.StdlibDir()
		in.opts.Settings = manifest.Settings()
	}
	stdlib, err := cmd.Root().PersistentFlags().GetString("stdlib")
	if err != nil {
		return in, fmt.Errorf("failed to get stdlib flag: %w", err)
	}
	if stdlib != "" {
		in.opts.StdlibDir = stdlib
	}
	if in.opts.MaxDiagnostics, err = cmd.Root().PersistentFlags().GetInt("max-diagnostics"); err != nil {
		return in, fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	}
	return in, nil
}
