package lsp

import (
	"slices"
	"strings"
	"unicode/utf16"

	"fortio.org/safecast"

	"susc/internal/source"
)

// byteCol returns how many bytes of line the first units UTF-16 code units
// span. A rune is never split and the count stops at the end of line.
func byteCol(line string, units int) int {
	n := 0
	for i, r := range line {
		w := utf16.RuneLen(r)
		if w < 0 {
			w = 1
		}
		if n+w > units {
			return i
		}
		n += w
	}
	return len(line)
}

// unitCol is the inverse of byteCol.
func unitCol(line string) int {
	n := 0
	for _, r := range line {
		if w := utf16.RuneLen(r); w > 0 {
			n += w
		} else {
			n++
		}
	}
	return n
}

func toOffset(n int) uint32 {
	v, err := safecast.Conv[uint32](max(n, 0))
	if err != nil {
		return ^uint32(0)
	}
	return v
}

// lineBounds returns the byte range of the zero-based line without its
// newline. ok is false past the last line.
func lineBounds(file *source.File, line int) (start, end int, ok bool) {
	idx := file.LineIdx
	if line > len(idx) {
		return 0, 0, false
	}
	if line > 0 {
		start = int(idx[line-1]) + 1
	}
	end = len(file.Content)
	if line < len(idx) {
		end = int(idx[line])
	}
	return start, end, true
}

// offsetAt converts an editor position to a byte offset in file, clamped to
// the line and to the file.
func offsetAt(file *source.File, pos position) uint32 {
	if file == nil || pos.Line < 0 || pos.Character < 0 {
		return 0
	}
	start, end, ok := lineBounds(file, pos.Line)
	if !ok {
		return toOffset(len(file.Content))
	}
	return toOffset(start + byteCol(string(file.Content[start:end]), pos.Character))
}

// offsetInText is offsetAt for a buffer that is not part of a FileSet.
func offsetInText(text string, pos position) int {
	if pos.Line < 0 || pos.Character < 0 {
		return 0
	}
	start := 0
	for range pos.Line {
		nl := strings.IndexByte(text[start:], '\n')
		if nl < 0 {
			return len(text)
		}
		start += nl + 1
	}
	line, _, _ := strings.Cut(text[start:], "\n")
	return start + byteCol(line, pos.Character)
}

// positionAt converts a byte offset in file to an editor position.
func positionAt(file *source.File, offset uint32) position {
	if file == nil {
		return position{}
	}
	offset = min(offset, toOffset(len(file.Content)))
	line, _ := slices.BinarySearch(file.LineIdx, offset)
	start, _, _ := lineBounds(file, line)
	return position{Line: line, Character: unitCol(string(file.Content[start:offset]))}
}

func rangeForSpan(file *source.File, span source.Span) lspRange {
	if file == nil {
		return lspRange{}
	}
	return lspRange{Start: positionAt(file, span.Start), End: positionAt(file, span.End)}
}

// locationForSpan resolves span to an editor location. Files of the bundled
// standard library have no URI and are not resolved.
func locationForSpan(fs *source.FileSet, span source.Span) (location, bool) {
	file := fs.Get(span.File)
	if file == nil || strings.HasPrefix(file.Path, "<") {
		return location{}, false
	}
	return location{URI: pathToURI(file.Path), Range: rangeForSpan(file, span)}, true
}
