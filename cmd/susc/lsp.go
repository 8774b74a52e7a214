package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"susc/internal/lsp"
)

var lspCmd = &cobra.Command{
	Use:   "lsp",
	Short: "Run the language server over stdio",
	RunE:  runLSP,
}

func runLSP(cmd *cobra.Command, _ []string) error {
	flags := cmd.Root().PersistentFlags()
	stdlib, err := flags.GetString("stdlib")
	if err != nil {
		return fmt.Errorf("failed to get stdlib flag: %w", err)
	}
	maxDiags, err := flags.GetInt("max-diagnostics")
	if err != nil {
		return fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	}

	server := lsp.NewServer(os.Stdin, os.Stdout, lsp.ServerOptions{
		StdlibDir:      stdlib,
		MaxDiagnostics: maxDiags,
		Log:            os.Stderr,
	})
	if err := server.Run(cmd.Context()); err != nil {
		if errors.Is(err, lsp.ErrExit) {
			return nil
		}
		if errors.Is(err, lsp.ErrExitWithoutShutdown) {
			return fmt.Errorf("lsp exit without shutdown")
		}
		return err
	}
	return nil
}
