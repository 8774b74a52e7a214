package driver

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"susc/internal/ast"
	"susc/internal/buildpipeline"
	"susc/internal/convert"
	"susc/internal/diag"
	"susc/internal/grammar"
	"susc/internal/linker"
	"susc/internal/observ"
	"susc/internal/parser"
	"susc/internal/source"
	"susc/internal/things"
	"susc/internal/token"
	"susc/internal/trace"
)

// TextOrigin is the path of units loaded from text without a path.
const TextOrigin = "<from source>"

// KnownSettings are the `set` keys the compiler and generators understand.
var KnownSettings = []string{"output", "html_topbar_logo", "html_topbar_title"}

// Options configures a project.
type Options struct {
	// StdlibDir replaces the bundled standard library when set.
	StdlibDir string
	// MaxDiagnostics caps every unit's diagnostics; 0 means no limit.
	MaxDiagnostics int
	// MaxRepairs bounds syntax repairs per file; 0 uses the parser default.
	MaxRepairs int
	// Settings are defaults, overridden by `set` directives of the root file.
	Settings map[string]string
	// Timer, when set, receives per-phase timings of the project.
	Timer *observ.Timer
	// OnPhase, when set, is told when phases start and end.
	OnPhase PhaseObserver
}

// Setting is one `set` directive.
type Setting struct {
	Key   string
	Value string
	Span  source.Span
}

// Unit is one source file of a project together with the files it includes.
// The root unit owns the FileSet and the set of loaded paths shared by the
// whole project. A unit is not safe for concurrent use.
type Unit struct {
	path   string
	parent *Unit
	root   *Unit
	opts   Options

	files  *source.FileSet
	file   source.FileID
	loaded bool

	// root only
	seen    map[string]struct{}
	project []diag.Diagnostic

	settings []Setting
	deps     []*Unit
	own      []things.Thing
	things   []things.Thing
	bag      *diag.Bag
	aborted  bool
	parsed   bool
}

// New creates an empty root unit.
func New(opts Options) *Unit {
	u := &Unit{
		opts:  opts,
		files: source.NewFileSet(),
		seen:  make(map[string]struct{}),
		bag:   diag.NewBag(opts.MaxDiagnostics),
	}
	u.root = u
	return u
}

func (u *Unit) child() *Unit {
	return &Unit{
		parent: u,
		root:   u.root,
		opts:   u.opts,
		files:  u.files,
		bag:    diag.NewBag(u.opts.MaxDiagnostics),
	}
}

// LoadFromText uses text as the unit's source. An empty path becomes TextOrigin.
func (u *Unit) LoadFromText(text, path string) {
	if path == "" {
		path = TextOrigin
	}
	u.path = source.NormalizePath(path)
	u.file = u.files.AddText(path, text)
	u.loaded = true
	if path != TextOrigin {
		u.root.markSeen(absPath(path))
	}
}

// LoadFromFile reads the unit's source from disk.
func (u *Unit) LoadFromFile(path string) error {
	id, err := u.files.Load(path)
	if err != nil {
		return fmt.Errorf("load %s: %w", path, err)
	}
	u.path = source.NormalizePath(path)
	u.file = id
	u.loaded = true
	u.root.markSeen(absPath(path))
	return nil
}

func (u *Unit) markSeen(key string) {
	u.seen[key] = struct{}{}
}

// Path returns the path the unit was loaded from.
func (u *Unit) Path() string { return u.path }

// Source returns the unit's file.
func (u *Unit) Source() *source.File {
	if !u.loaded {
		return nil
	}
	return u.files.Get(u.file)
}

// FileSet returns the files of the whole project.
func (u *Unit) FileSet() *source.FileSet { return u.files }

// Things returns the unit's own declarations before Parse, and afterwards its
// flattened declarations; for the root these are the linked things.
func (u *Unit) Things() []things.Thing {
	if u.parsed {
		return u.things
	}
	return u.own
}

// Settings returns the settings of the unit in declaration order, with the
// project defaults first for the root.
func (u *Unit) Settings() map[string]string {
	out := make(map[string]string, len(u.settings)+len(u.opts.Settings))
	if u.parent == nil {
		for k, v := range u.opts.Settings {
			out[k] = v
		}
	}
	for _, s := range u.settings {
		out[s.Key] = s.Value
	}
	return out
}

// Dependencies returns the units included by this one, in include order.
func (u *Unit) Dependencies() []*Unit { return u.deps }

// Diagnostics returns the unit's own diagnostics; for a parsed root, every
// diagnostic of the project, sorted and deduplicated.
func (u *Unit) Diagnostics() []diag.Diagnostic {
	if u.parent == nil && u.parsed {
		return u.project
	}
	return u.bag.Items()
}

// Aborted reports whether the unit's parse gave up.
func (u *Unit) Aborted() bool { return u.aborted }

// Parse parses the unit and everything it includes. The root also links the
// project. The error is set only when an existing file could not be read.
func (u *Unit) Parse(ctx context.Context) ([]things.Thing, []diag.Diagnostic, error) {
	if !u.loaded {
		return nil, nil, errors.New("driver: Parse called before Load")
	}
	ctx, span := trace.Start(ctx, trace.ScopeDriver, "unit")
	span.WithExtra("path", u.path)

	all, err := u.parse(ctx)
	if err != nil {
		span.End("error")
		return nil, nil, err
	}
	if u.parent == nil {
		ph := u.beginPhase(buildpipeline.StageLink, "")
		all = linker.Run(ctx, all, diag.BagReporter{Bag: u.bag})
		u.endPhase(ph, fmt.Sprintf("%d things", len(all)))
		u.things = all

		var diags []diag.Diagnostic
		u.collect(&diags)
		u.project = diag.SortAndDedup(diags)
	}
	span.End(fmt.Sprintf("things=%d", len(all)))
	return all, u.Diagnostics(), nil
}

// parse handles this unit, then its dependencies, and returns the flattened
// things: this file's first, then each dependency's in include order.
func (u *Unit) parse(ctx context.Context) ([]things.Thing, error) {
	rep := diag.BagReporter{Bag: u.bag}

	ph := u.beginPhase(buildpipeline.StageParse, u.path)
	res := parser.ParseFile(u.Source(), parser.Options{Reporter: rep, MaxRepairs: u.opts.MaxRepairs})
	u.endPhase(ph, fmt.Sprintf("%d repairs", res.Repairs))
	trace.Point(ctx, trace.ScopeModule, "parsed", fmt.Sprintf("%s repairs=%d aborted=%t", u.path, res.Repairs, res.Aborted))

	items := res.Partial
	if !res.Aborted && res.Tree != nil {
		items = res.Tree.Children
	}
	u.aborted = res.Aborted

	conv := convert.New(rep)
	for _, item := range items {
		switch {
		case item.Is(grammar.NInclude):
			if err := u.include(ctx, item); err != nil {
				return nil, err
			}
		case item.Is(grammar.NSetting):
			u.setting(item)
		case res.Aborted:
			// an aborted file contributes no declarations
		default:
			t := conv.Convert(item)
			if t == nil {
				continue
			}
			u.own = append(u.own, t)
			trace.Point(ctx, trace.ScopeNode, "converted", t.Kind().String()+" "+t.Head().Name)
			if e, ok := t.(*things.Entity); ok {
				if sel := generateEntityExtras(e); sel != nil {
					u.own = append(u.own, sel)
				}
			}
		}
	}

	all := append([]things.Thing(nil), u.own...)
	for _, dep := range u.deps {
		sub, err := dep.parse(ctx)
		if err != nil {
			return nil, err
		}
		all = append(all, sub...)
	}
	u.things = all
	u.parsed = true
	return all, nil
}

func (u *Unit) setting(n *ast.Node) {
	key, _ := n.Token(token.Ident)
	value, _ := n.Token(token.Value)
	if !slices.Contains(KnownSettings, key.Text) {
		diag.Warn(diag.BagReporter{Bag: u.bag}, diag.ResUnknownSetting, key.Span,
			fmt.Sprintf("unknown setting '%s'", key.Text))
	}
	u.settings = append(u.settings, Setting{Key: key.Text, Value: value.Text, Span: key.Span})
}

// collect gathers the diagnostics of the unit and its dependencies, depth first.
func (u *Unit) collect(out *[]diag.Diagnostic) {
	*out = append(*out, u.bag.Items()...)
	for _, d := range u.deps {
		d.collect(out)
	}
}
