package trace

import "context"

// frame is what a context carries for tracing: the tracer, the innermost
// open span and the project being compiled.
type frame struct {
	tracer  Tracer
	span    uint64
	project string
}

type frameKey struct{}

func frameOf(ctx context.Context) frame {
	if ctx != nil {
		if f, ok := ctx.Value(frameKey{}).(frame); ok {
			return f
		}
	}
	return frame{tracer: Nop}
}

func withFrame(ctx context.Context, f frame) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, frameKey{}, f)
}

// FromContext returns the tracer carried by ctx, or Nop.
func FromContext(ctx context.Context) Tracer {
	return frameOf(ctx).tracer
}

// WithTracer attaches t to ctx. Spans opened before are forgotten.
func WithTracer(ctx context.Context, t Tracer) context.Context {
	if t == nil {
		t = Nop
	}
	f := frameOf(ctx)
	return withFrame(ctx, frame{tracer: t, project: f.project})
}

// WithProject labels every event emitted under ctx with the project root.
func WithProject(ctx context.Context, root string) context.Context {
	f := frameOf(ctx)
	f.project = root
	return withFrame(ctx, f)
}

// SpanID returns the innermost span opened under ctx, 0 if none.
func SpanID(ctx context.Context) uint64 {
	return frameOf(ctx).span
}
