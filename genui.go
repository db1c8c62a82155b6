// Package genui renders generative UI descriptors (headers, bar charts,
// tables, catalog items, orders, cards and carousels) to HTML or terminal
// text. The helpers here cover the common case; the orchestrator, renderer
// and widget packages stay available for callers that need more control.
package genui

import (
	"context"
	"io/fs"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-genui/pkg/descriptor"
	"github.com/goliatone/go-genui/pkg/orchestrator"
	"github.com/goliatone/go-genui/pkg/render"
	"github.com/goliatone/go-genui/pkg/renderers/vanilla"
)

// Descriptor aliases descriptor.Descriptor for callers building widgets in
// code.
type Descriptor = descriptor.Descriptor

// Props aliases descriptor.Props.
type Props = descriptor.Props

// RenderOptions describes per-request settings such as document mode, action
// URLs and theme configuration.
type RenderOptions = render.RenderOptions

// NewOrchestrator exposes the orchestrator constructor from the top-level
// module.
func NewOrchestrator(options ...orchestrator.Option) *orchestrator.Orchestrator {
	return orchestrator.New(options...)
}

// ParseDescriptors decodes a JSON or YAML descriptor document.
func ParseDescriptors(data []byte) ([]Descriptor, error) {
	return descriptor.Parse(data)
}

// RenderHTML renders descriptors with the vanilla HTML renderer.
func RenderHTML(ctx context.Context, descriptors []Descriptor, opts RenderOptions, options ...orchestrator.Option) ([]byte, error) {
	return generate(ctx, "vanilla", descriptors, opts, options)
}

// RenderText renders descriptors with the terminal renderer.
func RenderText(ctx context.Context, descriptors []Descriptor, opts RenderOptions, options ...orchestrator.Option) ([]byte, error) {
	return generate(ctx, "terminal", descriptors, opts, options)
}

func generate(ctx context.Context, renderer string, descriptors []Descriptor, opts RenderOptions, options []orchestrator.Option) ([]byte, error) {
	if descriptors == nil {
		descriptors = []Descriptor{}
	}
	return orchestrator.New(options...).Generate(ctx, orchestrator.Request{
		Descriptors:   descriptors,
		Renderer:      renderer,
		RenderOptions: opts,
	})
}

// WithThemeSelector passes a go-theme selector through to the orchestrator so
// theme and variant choices are resolved ahead of rendering.
func WithThemeSelector(selector theme.ThemeSelector) orchestrator.Option {
	return orchestrator.WithThemeSelector(selector)
}

// EmbeddedTemplates exposes the built-in widget templates so callers can
// reuse or extend them without importing the renderer package directly.
func EmbeddedTemplates() fs.FS {
	return vanilla.TemplatesFS()
}

// AssetsFS exposes the built-in widget stylesheets.
//
// Typical mount:
//
//	mux.Handle("/static/genui/",
//	  http.StripPrefix("/static/genui/",
//	    http.FileServerFS(genui.AssetsFS()),
//	  ),
//	)
func AssetsFS() fs.FS {
	return vanilla.AssetsFS()
}
