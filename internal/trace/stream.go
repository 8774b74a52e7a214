package trace

import (
	"bufio"
	"io"
	"sync"
)

// StreamTracer writes every event to a writer through a buffer. Events of
// ScopeDriver flush the buffer so that a project's outcome is visible while
// the others are still compiling.
type StreamTracer struct {
	mu     sync.Mutex
	out    io.Writer
	bw     *bufio.Writer
	level  Level
	format Format
}

// NewStreamTracer writes to w; FormatAuto means text.
func NewStreamTracer(w io.Writer, level Level, format Format) *StreamTracer {
	if format == FormatAuto {
		format = FormatText
	}
	return &StreamTracer{out: w, bw: bufio.NewWriter(w), level: level, format: format}
}

// Emit writes ev. Write errors are dropped; Flush reports them.
func (t *StreamTracer) Emit(ev *Event) {
	if !t.level.ShouldEmit(ev.Scope) {
		return
	}
	data := FormatEvent(ev, t.format)

	t.mu.Lock()
	defer t.mu.Unlock()
	_, _ = t.bw.Write(data) //nolint:errcheck
	if ev.Scope == ScopeDriver {
		_ = t.bw.Flush() //nolint:errcheck
	}
}

// Flush writes out buffered events.
func (t *StreamTracer) Flush() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.bw.Flush()
}

// Close flushes and closes the writer if it implements io.Closer.
func (t *StreamTracer) Close() error {
	if err := t.Flush(); err != nil {
		return err
	}
	if closer, ok := t.out.(io.Closer); ok {
		return closer.Close()
	}
	return nil
}

func (t *StreamTracer) Level() Level  { return t.level }
func (t *StreamTracer) Enabled() bool { return t.level > LevelOff }
