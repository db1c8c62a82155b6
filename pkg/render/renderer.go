package render

import (
	"context"

	"github.com/goliatone/go-genui/pkg/descriptor"
)

// Renderer turns a list of descriptors into a byte representation (HTML,
// terminal text, ...).
type Renderer interface {
	Name() string
	ContentType() string
	Render(ctx context.Context, descriptors []descriptor.Descriptor, options RenderOptions) ([]byte, error)
}
