package source

import (
	"fmt"
	"os"
	"path/filepath"

	"fortio.org/safecast"
)

// FileSet owns the files of one project. Adding the same path twice yields
// two files; spans keep pointing at the version they were made from.
// A FileSet is not safe for concurrent use.
type FileSet struct {
	files []File
}

func NewFileSet() *FileSet {
	return &FileSet{}
}

// NormalizePath cleans p and uses forward slashes, the form paths are
// stored and compared in.
func NormalizePath(p string) string {
	return filepath.ToSlash(filepath.Clean(p))
}

// Add stores already normalized content and returns its new id.
func (fs *FileSet) Add(path string, content []byte, flags FileFlags) FileID {
	n, err := safecast.Conv[uint32](len(fs.files))
	if err != nil {
		panic(fmt.Errorf("too many files: %w", err))
	}
	id := FileID(n)
	fs.files = append(fs.files, newFile(id, NormalizePath(path), content, flags))
	return id
}

// Load reads path from disk and adds its normalized content.
func (fs *FileSet) Load(path string) (FileID, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- path is provided by the caller
	if err != nil {
		return 0, err
	}
	content, flags := Normalize(data)
	return fs.Add(path, content, flags), nil
}

// AddText adds an in-memory buffer, such as an unsaved editor document,
// under path.
func (fs *FileSet) AddText(path, text string) FileID {
	content, flags := Normalize([]byte(text))
	return fs.Add(path, content, flags|FileVirtual)
}

// AddVirtual adds content as is.
func (fs *FileSet) AddVirtual(name string, content []byte) FileID {
	return fs.Add(name, content, FileVirtual)
}

func (fs *FileSet) Get(id FileID) *File {
	return &fs.files[id]
}

func (fs *FileSet) Len() int {
	return len(fs.files)
}

// Resolve returns the line and column of both ends of span.
func (fs *FileSet) Resolve(span Span) (start, end LineCol) {
	f := fs.Get(span.File)
	return f.Position(span.Start), f.Position(span.End)
}

func (fs *FileSet) Location(span Span) Location {
	f := fs.Get(span.File)
	pos := f.Position(span.Start)
	return Location{Path: f.Path, Line: pos.Line, Col: pos.Col, Len: span.Len()}
}
