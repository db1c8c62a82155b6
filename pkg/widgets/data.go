package widgets

import (
	"fmt"
	"path"
	"strings"

	"github.com/google/uuid"

	"github.com/goliatone/go-genui/pkg/actions"
	"github.com/goliatone/go-genui/pkg/descriptor"
	rendertemplate "github.com/goliatone/go-genui/pkg/render/template"
)

// DefaultStaticPrefix is where image filenames are resolved from.
const DefaultStaticPrefix = "/static/images"

// ResolveFunc renders any descriptor. Container widgets receive it instead of
// importing a resolver so the table never depends on its own dispatcher.
type ResolveFunc func(descriptor.Descriptor) (string, error)

// RenderData carries the collaborators a widget renderer may need.
type RenderData struct {
	Template rendertemplate.TemplateRenderer
	Resolve  ResolveFunc
	Actions  actions.URLs
	// StaticPrefix is prepended to image filenames.
	StaticPrefix string
	// Partials maps template keys (for example "widgets.item") to override
	// template paths, usually sourced from a theme.
	Partials map[string]string
	// NewID generates DOM ids for widgets that need one.
	NewID func() string
	// Config holds free-form renderer settings forwarded to templates.
	Config map[string]any
}

func (d RenderData) templateFor(key, fallback string) string {
	if d.Partials != nil {
		if candidate := strings.TrimSpace(d.Partials[key]); candidate != "" {
			return candidate
		}
	}
	return fallback
}

func (d RenderData) newID(prefix string) string {
	if d.NewID != nil {
		return prefix + d.NewID()
	}
	return prefix + uuid.NewString()
}

func (d RenderData) resolveChildren(props descriptor.Props) ([]string, error) {
	children := descriptor.Children(props)
	out := make([]string, 0, len(children))
	if d.Resolve == nil {
		return out, nil
	}
	for idx, child := range children {
		rendered, err := d.Resolve(child)
		if err != nil {
			return nil, fmt.Errorf("widgets: render child %d (%s): %w", idx, child.Type, err)
		}
		out = append(out, rendered)
	}
	return out, nil
}

var imageExtensions = map[string]struct{}{
	"jpeg": {},
	"jpg":  {},
	"gif":  {},
	"png":  {},
	"webp": {},
}

// ImageURL resolves filename under the static prefix. It reports false when
// filename is empty or its extension is not one of the supported lowercase
// image extensions, in which case widgets render a placeholder.
func (d RenderData) ImageURL(filename string) (string, bool) {
	name := strings.TrimSpace(filename)
	if name == "" {
		return "", false
	}
	ext := strings.TrimPrefix(path.Ext(name), ".")
	if _, ok := imageExtensions[ext]; !ok {
		return "", false
	}
	prefix := strings.TrimRight(d.StaticPrefix, "/")
	if prefix == "" {
		prefix = DefaultStaticPrefix
	}
	return prefix + path.Clean("/"+name), true
}
