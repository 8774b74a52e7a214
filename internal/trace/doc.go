// Package trace records what the compiler is doing while it does it.
//
// Events are spans (begin/end pairs) and points. Spans nest through the
// context: Start opens a span under the one ctx carries and returns the
// context to pass down. Events emitted while compiling a project carry its
// root file (WithProject).
//
//	ctx = trace.WithTracer(ctx, tracer)
//	ctx, span := trace.Start(ctx, trace.ScopePass, "link")
//	defer span.End("")
//
// Verbosity is chosen with a Level. LevelPhase shows projects and units,
// LevelDetail adds per-file phases and includes, LevelDebug shows
// everything.
//
// A tracer either streams every event to a writer (text or NDJSON) or keeps
// the most recent ones in a ring that can be dumped when something goes
// wrong.
package trace
