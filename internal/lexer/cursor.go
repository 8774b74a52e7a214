package lexer

import (
	"bytes"
	"fmt"

	"fortio.org/safecast"

	"susc/internal/source"
)

// cursor walks the bytes of one file up to an optional limit.
type cursor struct {
	file source.FileID
	src  []byte // content cut at the limit
	off  uint32
}

// mark is a saved offset.
type mark uint32

func newCursor(f *source.File, limit uint32) cursor {
	n, err := safecast.Conv[uint32](len(f.Content))
	if err != nil {
		panic(fmt.Errorf("%s: %w", f.Path, err))
	}
	if limit != 0 {
		n = min(n, limit)
	}
	return cursor{file: f.ID, src: f.Content[:n]}
}

func (c *cursor) eof() bool { return int(c.off) >= len(c.src) }

// peek returns the current byte, 0 at the end.
func (c *cursor) peek() byte {
	if c.eof() {
		return 0
	}
	return c.src[c.off]
}

// next consumes and returns the current byte, 0 at the end.
func (c *cursor) next() byte {
	b := c.peek()
	if !c.eof() {
		c.off++
	}
	return b
}

// eat consumes s if the input continues with it.
func (c *cursor) eat(s string) bool {
	if !bytes.HasPrefix(c.src[c.off:], []byte(s)) {
		return false
	}
	n, err := safecast.Conv[uint32](len(s))
	if err != nil {
		panic(fmt.Errorf("eat overflow: %w", err))
	}
	c.off += n
	return true
}

// skipWhile consumes bytes while ok holds.
func (c *cursor) skipWhile(ok func(byte) bool) {
	for !c.eof() && ok(c.src[c.off]) {
		c.off++
	}
}

// skipTo stops before the next stop byte, or at the end.
func (c *cursor) skipTo(stop byte) {
	c.skipWhile(func(b byte) bool { return b != stop })
}

func (c *cursor) mark() mark { return mark(c.off) }

func (c *cursor) reset(m mark) { c.off = uint32(m) }

// here is the empty span at the current offset.
func (c *cursor) here() source.Span {
	return source.Span{File: c.file, Start: c.off, End: c.off}
}

// spanFrom covers everything consumed since m.
func (c *cursor) spanFrom(m mark) source.Span {
	return source.Span{File: c.file, Start: uint32(m), End: c.off}
}
