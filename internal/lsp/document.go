package lsp

import (
	"context"
	"fmt"
	"maps"
	"path/filepath"

	"susc/internal/diag"
	"susc/internal/driver"
	"susc/internal/project"
	"susc/internal/things"
)

// document is an open editor buffer and the result of compiling it as the
// root of a project. Every edit replaces the whole document.
type document struct {
	uri     string
	path    string // "" for buffers without a file
	version int
	text    string

	unit   *driver.Unit
	things []things.Thing
	diags  []diag.Diagnostic
}

// analyze compiles text as the root of a project. The project's sus.toml, if
// any, supplies the standard library directory and setting defaults.
func (s *Server) analyze(ctx context.Context, uri string, version int, text string) *document {
	doc := &document{uri: uri, path: uriToPath(uri), version: version, text: text}

	opts := driver.Options{
		StdlibDir:      s.opts.StdlibDir,
		MaxDiagnostics: s.opts.MaxDiagnostics,
		Settings:       maps.Clone(s.opts.Settings),
	}
	if doc.path != "" {
		m, ok, err := project.Load(filepath.Dir(doc.path))
		switch {
		case err != nil:
			s.logf("%s: %v", doc.path, err)
		case ok:
			if opts.StdlibDir == "" {
				opts.StdlibDir = m.StdlibDir()
			}
			settings := m.Settings()
			maps.Copy(settings, opts.Settings)
			opts.Settings = settings
		}
	}

	doc.unit = driver.New(opts)
	doc.unit.LoadFromText(text, doc.path)
	all, diags, err := doc.unit.Parse(ctx)
	if err != nil {
		diags = append(diags, diag.Diagnostic{
			Severity: diag.SevError,
			Code:     diag.IOLoadFileFail,
			Message:  fmt.Sprintf("cannot compile: %v", err),
		})
	}
	doc.things = all
	doc.diags = diags
	return doc
}
