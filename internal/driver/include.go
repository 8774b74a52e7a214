package driver

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"syscall"

	"susc/internal/ast"
	"susc/internal/diag"
	"susc/internal/source"
	"susc/internal/token"
	"susc/internal/trace"
	"susc/stdlib"
)

// SourceExt is appended to include paths that do not resolve as written.
const SourceExt = ".sus"

// StdlibEnv overrides the standard library directory for every project.
const StdlibEnv = "SUSC_STDLIB"

// stdlibPrefix marks candidates served from the bundled standard library.
const stdlibPrefix = "<stdlib>/"

// stdlibDir returns the on-disk standard library directory with a trailing
// slash, or stdlibPrefix for the bundled copy.
func stdlibDir(opts Options) string {
	dir := opts.StdlibDir
	if dir == "" {
		dir = os.Getenv(StdlibEnv)
	}
	if dir == "" {
		return stdlibPrefix
	}
	return absPath(dir) + "/"
}

func absPath(p string) string {
	if abs, err := filepath.Abs(p); err == nil {
		return filepath.ToSlash(abs)
	}
	return source.NormalizePath(p)
}

// candidates lists the places an include may refer to, in the order they are
// tried: as written, next to the including file, in the standard library, and
// each of those again with SourceExt appended. Duplicates are removed.
func (u *Unit) candidates(name string) []string {
	dir := "."
	if u.path != TextOrigin {
		dir = filepath.Dir(u.path)
	}
	bases := []string{
		absPath(name),
		absPath(filepath.Join(dir, name)),
		stdlibDir(u.root.opts) + path.Clean(filepath.ToSlash(name)),
	}
	var out []string
	seen := make(map[string]struct{}, 2*len(bases))
	add := func(c string) {
		if _, ok := seen[c]; ok {
			return
		}
		seen[c] = struct{}{}
		out = append(out, c)
	}
	for _, b := range bases {
		add(b)
	}
	if !strings.HasSuffix(name, SourceExt) {
		for _, b := range bases {
			add(b + SourceExt)
		}
	}
	return out
}

// open reads the first candidate that exists. A missing file moves on to the
// next candidate; any other read failure is returned as an error.
func (u *Unit) open(cands []string) (string, []byte, error) {
	for _, c := range cands {
		var (
			data []byte
			err  error
		)
		if rest, ok := strings.CutPrefix(c, stdlibPrefix); ok {
			data, err = fs.ReadFile(stdlib.FS(), rest)
		} else {
			// #nosec G304 -- include paths come from the project's sources
			data, err = os.ReadFile(c)
		}
		switch {
		case err == nil:
			return c, data, nil
		case errors.Is(err, fs.ErrNotExist), errors.Is(err, fs.ErrInvalid), errors.Is(err, syscall.EISDIR), errors.Is(err, syscall.ENOTDIR):
			continue
		default:
			return "", nil, fmt.Errorf("read %s: %w", c, err)
		}
	}
	return "", nil, nil
}

func includeName(tok token.Token) string {
	if strings.HasPrefix(tok.Text, `"`) {
		if s, err := strconv.Unquote(tok.Text); err == nil {
			return s
		}
		return strings.Trim(tok.Text, `"`)
	}
	return tok.Text
}

func (u *Unit) include(ctx context.Context, n *ast.Node) error {
	tok, ok := n.Token(token.Path)
	if !ok {
		return nil
	}
	name := includeName(tok)
	cands := u.candidates(name)
	found, data, err := u.open(cands)
	if err != nil {
		return err
	}
	if found == "" {
		diag.Error(diag.BagReporter{Bag: u.bag}, diag.ResIncludeNotFound, tok.Span,
			fmt.Sprintf("couldn't find '%s' in any of the following locations:\n%s", name, strings.Join(cands, "\n")))
		return nil
	}
	if _, dup := u.root.seen[found]; dup {
		diag.Error(diag.BagReporter{Bag: u.bag}, diag.ResDuplicateInclude, tok.Span,
			fmt.Sprintf("'%s' is already part of the project", found))
		return nil
	}
	u.root.markSeen(found)
	trace.Point(ctx, trace.ScopeModule, "include", found)

	dep := u.child()
	content, flags := source.Normalize(data)
	dep.path = found
	dep.file = u.files.Add(found, content, flags)
	dep.loaded = true
	u.deps = append(u.deps, dep)
	return nil
}

// maxIncludable bounds the directory walk of Includable.
const maxIncludable = 256

// Includable lists names an include directive of u could use: the source
// files under u's directory, relative to it, and the standard library's
// files. Names are given without SourceExt, sorted and unique.
func (u *Unit) Includable() []string {
	seen := make(map[string]struct{})
	self := ""
	if u.path != TextOrigin {
		self = absPath(u.path)
	}
	collect := func(fsys fs.FS, skip func(rel string) bool) {
		n := 0
		_ = fs.WalkDir(fsys, ".", func(p string, d fs.DirEntry, err error) error {
			if err != nil {
				return nil
			}
			if d.IsDir() {
				if p != "." && strings.HasPrefix(d.Name(), ".") {
					return fs.SkipDir
				}
				return nil
			}
			if !strings.HasSuffix(p, SourceExt) || (skip != nil && skip(p)) {
				return nil
			}
			seen[strings.TrimSuffix(p, SourceExt)] = struct{}{}
			if n++; n >= maxIncludable {
				return fs.SkipAll
			}
			return nil
		})
	}

	if self != "" {
		dir := filepath.Dir(self)
		collect(os.DirFS(dir), func(rel string) bool {
			return path.Join(filepath.ToSlash(dir), rel) == self
		})
	}
	if lib := stdlibDir(u.root.opts); lib == stdlibPrefix {
		collect(stdlib.FS(), nil)
	} else {
		collect(os.DirFS(lib), nil)
	}

	out := make([]string, 0, len(seen))
	for name := range seen {
		out = append(out, name)
	}
	slices.Sort(out)
	return out
}
