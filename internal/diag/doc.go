// Package diag defines the diagnostic model shared by every compiler phase.
//
// Diagnostic is the central record: Severity, a numeric Code from one of the
// per-phase ranges (see codes.go), a message and an ordered list of locations,
// the first of which is primary.
//
// Phases emit through a Reporter (usually BagReporter) so that they do not
// depend on storage. The root of a project merges every phase's diagnostics
// and runs SortAndDedup once: errors first, then anything whose locations are
// all covered by an earlier diagnostic is dropped.
//
// Package diag does no formatting or IO; rendering lives in internal/diagfmt.
package diag
