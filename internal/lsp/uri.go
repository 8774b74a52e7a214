package lsp

import (
	"net/url"
	"path/filepath"
)

// uriToPath returns the absolute path a document URI names. A bare path is
// accepted too; other schemes give "".
func uriToPath(uri string) string {
	u, err := url.Parse(uri)
	if uri == "" || err != nil {
		return ""
	}
	var p string
	switch u.Scheme {
	case "file":
		p = u.Path
	case "":
		p = uri
		if unescaped, err := url.PathUnescape(p); err == nil {
			p = unescaped
		}
	default:
		return ""
	}
	abs, err := filepath.Abs(filepath.FromSlash(p))
	if err != nil {
		return filepath.Clean(filepath.FromSlash(p))
	}
	return abs
}

func pathToURI(path string) string {
	if path == "" {
		return ""
	}
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}
	return (&url.URL{Scheme: "file", Path: filepath.ToSlash(path)}).String()
}

// canonicalURI makes URIs that name the same file compare equal.
func canonicalURI(uri string) string {
	return pathToURI(uriToPath(uri))
}
