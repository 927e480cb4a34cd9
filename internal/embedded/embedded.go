// Package embedded holds the HTML templates and static assets compiled into
// the binary.
package embedded

import (
	"embed"
	"io/fs"
)

//go:embed templates static
var files embed.FS

// Template globs, relative to Templates().
const (
	BaseGlob    = "layouts/*.html"
	PageGlob    = "*.html"
	SpecialGlob = "special/*.html"
)

// Templates returns the template tree.
func Templates() fs.FS {
	return mustSub("templates")
}

// Static returns the static asset tree served under /static/.
func Static() fs.FS {
	return mustSub("static")
}

func mustSub(dir string) fs.FS {
	sub, err := fs.Sub(files, dir)
	if err != nil {
		// only possible if dir is not a valid path
		panic(err)
	}
	return sub
}
