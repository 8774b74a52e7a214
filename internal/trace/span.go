package trace

import (
	"context"
	"sync/atomic"
	"time"
)

var (
	seq     atomic.Uint64
	spanIDs atomic.Uint64
)

// Span is an open begin/end pair. The zero value and nil are no-ops.
type Span struct {
	tracer  Tracer
	id      uint64
	parent  uint64
	project string
	scope   Scope
	name    string
	started time.Time
	extra   map[string]string
}

// Start opens a span under the one carried by ctx and returns a context
// carrying the new span. When the tracer's level hides scope, ctx is
// returned unchanged.
func Start(ctx context.Context, scope Scope, name string) (context.Context, *Span) {
	f := frameOf(ctx)
	if !f.tracer.Enabled() || !f.tracer.Level().ShouldEmit(scope) {
		return ctx, &Span{}
	}
	now := time.Now()
	s := &Span{
		tracer:  f.tracer,
		id:      spanIDs.Add(1),
		parent:  f.span,
		project: f.project,
		scope:   scope,
		name:    name,
		started: now,
	}
	s.emit(KindSpanBegin, now, "", nil)
	f.span = s.id
	return withFrame(ctx, f), s
}

func (s *Span) emit(kind Kind, at time.Time, detail string, extra map[string]string) {
	s.tracer.Emit(&Event{
		Time:     at,
		Seq:      seq.Add(1),
		Kind:     kind,
		Scope:    s.scope,
		SpanID:   s.id,
		ParentID: s.parent,
		Project:  s.project,
		Name:     s.name,
		Detail:   detail,
		Extra:    extra,
	})
}

// End emits the end event and returns the span's duration.
func (s *Span) End(detail string) time.Duration {
	if s == nil || s.tracer == nil {
		return 0
	}
	now := time.Now()
	s.emit(KindSpanEnd, now, detail, s.extra)
	return now.Sub(s.started)
}

// WithExtra attaches a key-value pair to the end event.
func (s *Span) WithExtra(key, value string) *Span {
	if s == nil || s.tracer == nil {
		return s
	}
	if s.extra == nil {
		s.extra = make(map[string]string)
	}
	s.extra[key] = value
	return s
}

// ID returns the span ID; 0 for a span that is not traced.
func (s *Span) ID() uint64 {
	if s == nil {
		return 0
	}
	return s.id
}

// Point emits an instant event under the span carried by ctx.
func Point(ctx context.Context, scope Scope, name, detail string) {
	f := frameOf(ctx)
	if !f.tracer.Enabled() || !f.tracer.Level().ShouldEmit(scope) {
		return
	}
	f.tracer.Emit(&Event{
		Time:     time.Now(),
		Seq:      seq.Add(1),
		Kind:     KindPoint,
		Scope:    scope,
		ParentID: f.span,
		Project:  f.project,
		Name:     name,
		Detail:   detail,
	})
}
