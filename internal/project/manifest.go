package project

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// SourceExt is the extension every root file must carry.
const SourceExt = ".sus"

var (
	// ErrProjectSectionMissing indicates that [project] is missing.
	ErrProjectSectionMissing = errors.New("missing [project]")
	// ErrNoRoots indicates that [project].roots is missing or empty.
	ErrNoRoots = errors.New("missing [project].roots")
)

// Manifest is a parsed sus.toml.
type Manifest struct {
	Path   string
	Root   string
	Config Config
}

// Config mirrors the layout of sus.toml:
//
//	[project]
//	name = "api"
//	roots = ["api.sus", "admin/admin.sus"]
//	stdlib = "vendor/sus"   # optional
//	output = "ts"           # optional, default for `set output`
//
//	[settings]
//	html_topbar_title = "API"
type Config struct {
	Project  ProjectConfig     `toml:"project"`
	Settings map[string]string `toml:"settings"`
}

// ProjectConfig is the [project] section.
type ProjectConfig struct {
	Name   string   `toml:"name"`
	Roots  []string `toml:"roots"`
	Stdlib string   `toml:"stdlib"`
	Output string   `toml:"output"`
}

// Load finds the manifest above startDir and parses it. ok is false when
// there is none.
func Load(startDir string) (*Manifest, bool, error) {
	path, ok, err := FindManifest(startDir)
	if err != nil || !ok {
		return nil, ok, err
	}
	m, err := LoadFile(path)
	if err != nil {
		return nil, true, err
	}
	return m, true, nil
}

// LoadFile parses and validates the manifest at path.
func LoadFile(path string) (*Manifest, error) {
	var cfg Config
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, k := range undecoded {
			keys = append(keys, k.String())
		}
		return nil, fmt.Errorf("%s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	if !meta.IsDefined("project") {
		return nil, fmt.Errorf("%s: %w", path, ErrProjectSectionMissing)
	}
	if !meta.IsDefined("project", "name") || strings.TrimSpace(cfg.Project.Name) == "" {
		return nil, fmt.Errorf("%s: missing [project].name", path)
	}
	if len(cfg.Project.Roots) == 0 {
		return nil, fmt.Errorf("%s: %w", path, ErrNoRoots)
	}
	for _, r := range cfg.Project.Roots {
		if filepath.Ext(r) != SourceExt {
			return nil, fmt.Errorf("%s: [project].roots entry %q must be a %s file", path, r, SourceExt)
		}
	}
	return &Manifest{Path: path, Root: filepath.Dir(path), Config: cfg}, nil
}

// RootPaths resolves [project].roots against the manifest directory and
// checks that each one exists.
func (m *Manifest) RootPaths() ([]string, error) {
	out := make([]string, 0, len(m.Config.Project.Roots))
	for _, r := range m.Config.Project.Roots {
		p := m.resolve(r)
		info, err := os.Stat(p)
		switch {
		case errors.Is(err, os.ErrNotExist):
			return nil, fmt.Errorf("%s: root does not exist: %s", m.Path, p)
		case err != nil:
			return nil, fmt.Errorf("%s: failed to stat root: %w", m.Path, err)
		case info.IsDir():
			return nil, fmt.Errorf("%s: root is a directory: %s", m.Path, p)
		}
		out = append(out, p)
	}
	return out, nil
}

// StdlibDir returns the configured standard library directory, resolved
// against the manifest directory, or "" for the bundled one.
func (m *Manifest) StdlibDir() string {
	if m.Config.Project.Stdlib == "" {
		return ""
	}
	return m.resolve(m.Config.Project.Stdlib)
}

// Settings returns the default `set` values: [settings] plus [project].output.
func (m *Manifest) Settings() map[string]string {
	out := make(map[string]string, len(m.Config.Settings)+1)
	for k, v := range m.Config.Settings {
		out[k] = v
	}
	if m.Config.Project.Output != "" {
		out["output"] = m.Config.Project.Output
	}
	return out
}

func (m *Manifest) resolve(p string) string {
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(m.Root, filepath.FromSlash(p))
}
