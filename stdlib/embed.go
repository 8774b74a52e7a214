// Package stdlib provides the bundled standard library sources.
package stdlib

import (
	"embed"
	"io/fs"
)

//go:embed *.sus
var files embed.FS

// FS exposes the bundled .sus files, rooted at the library directory.
func FS() fs.FS {
	return files
}
