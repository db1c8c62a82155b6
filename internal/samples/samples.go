// Package samples bundles descriptor documents used by the CLI and the
// example server.
package samples

import (
	"embed"
	"fmt"
	"io/fs"

	"github.com/goliatone/go-genui/pkg/descriptor"
)

//go:embed data/*.json data/*.yaml
var embedded embed.FS

// FS exposes the sample documents rooted at their directory.
func FS() fs.FS {
	sub, err := fs.Sub(embedded, "data")
	if err != nil {
		return embedded
	}
	return sub
}

// All parses every bundled document, sorted by path.
func All() ([]descriptor.Document, error) {
	return descriptor.LoadFS(FS())
}

// Get returns the document with the given name.
func Get(name string) (descriptor.Document, error) {
	docs, err := All()
	if err != nil {
		return descriptor.Document{}, err
	}
	for _, doc := range docs {
		if doc.Name == name {
			return doc, nil
		}
	}
	return descriptor.Document{}, fmt.Errorf("samples: %q not found", name)
}
