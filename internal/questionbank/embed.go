package questionbank

import (
	"embed"
	"io/fs"
)

//go:embed data/*.json
var bundled embed.FS

// BundledFS returns the question files shipped inside the binary.
func BundledFS() fs.FS {
	sub, err := fs.Sub(bundled, "data")
	if err != nil {
		// fs.Sub only fails on an invalid path literal.
		panic(err)
	}
	return sub
}
