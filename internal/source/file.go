// Package source holds the text of the files a project reads and turns byte
// offsets into lines and columns.
package source

import (
	"fmt"
	"slices"

	"fortio.org/safecast"
)

// FileID indexes a file within its FileSet.
type FileID uint32

// FileFlags records what loading did to a file's bytes.
type FileFlags uint8

const (
	FileVirtual FileFlags = 1 << iota // not read from disk
	FileHadBOM
	FileNormalizedCRLF
	FileNormalizedNFC
)

// File is one version of a source text. LineIdx holds the offset of every
// '\n' in Content.
type File struct {
	ID      FileID
	Path    string
	Content []byte
	LineIdx []uint32
	Flags   FileFlags
}

// LineCol is a 1-based line and a 1-based byte column.
type LineCol struct {
	Line uint32
	Col  uint32
}

// Location is the start of a span in the form people read.
type Location struct {
	Path string
	Line uint32
	Col  uint32
	Len  uint32 // in bytes
}

func (l Location) String() string {
	return fmt.Sprintf("%s:%d:%d", l.Path, l.Line, l.Col)
}

func newFile(id FileID, path string, content []byte, flags FileFlags) File {
	f := File{ID: id, Path: path, Content: content, Flags: flags}
	for i, b := range content {
		if b == '\n' {
			f.LineIdx = append(f.LineIdx, f.size(i))
		}
	}
	return f
}

func (f *File) size(n int) uint32 {
	v, err := safecast.Conv[uint32](n)
	if err != nil {
		panic(fmt.Errorf("%s: offset %d: %w", f.Path, n, err))
	}
	return v
}

// lineRange returns the byte range of a 1-based line without its newline.
// ok is false for line 0 and for lines past the end.
func (f *File) lineRange(line uint32) (start, end uint32, ok bool) {
	n := int(line)
	if n == 0 || n-1 > len(f.LineIdx) {
		return 0, 0, false
	}
	if n > 1 {
		start = f.LineIdx[n-2] + 1
	}
	end = f.size(len(f.Content))
	if n-1 < len(f.LineIdx) {
		end = f.LineIdx[n-1]
	}
	return start, end, true
}

// Position resolves a byte offset. The newline ending a line belongs to it.
func (f *File) Position(off uint32) LineCol {
	line, _ := slices.BinarySearch(f.LineIdx, off)
	var start uint32
	if line > 0 {
		start = f.LineIdx[line-1] + 1
	}
	return LineCol{Line: f.size(line + 1), Col: off - start + 1}
}

// Offset converts a 1-based line and column into a byte offset. Columns
// past the end of the line stop at the line end; lines past the end of the
// file give the file length.
func (f *File) Offset(line, col uint32) uint32 {
	if line == 0 {
		return 0
	}
	start, end, ok := f.lineRange(line)
	if !ok {
		return f.size(len(f.Content))
	}
	return start + min(max(col, 1)-1, end-start)
}

// GetLine returns the text of the 1-based line without its newline, or ""
// for a line that does not exist.
func (f *File) GetLine(line uint32) string {
	start, end, ok := f.lineRange(line)
	if !ok {
		return ""
	}
	return string(f.Content[start:end])
}
