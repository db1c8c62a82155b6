package render

import (
	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-genui/pkg/actions"
)

// RenderOptions describe per-request data that renderers can use to customise
// their output. Zero values fall back to each renderer's defaults.
type RenderOptions struct {
	// Document wraps the rendered widgets in a full page with stylesheet
	// links. Renderers without a page concept ignore it.
	Document bool
	// Title is used as the page title in document mode.
	Title string
	// Actions overrides the URLs the item and order forms post to.
	Actions actions.URLs
	// StaticPrefix overrides the path image filenames resolve under.
	StaticPrefix string
	// Theme carries the resolved theme selection: template partials keyed as
	// "widgets.<tag>", design tokens, CSS variables, and an asset resolver.
	Theme *theme.RendererConfig
}

// ThemePartials returns the partial overrides of cfg, tolerating nil.
func ThemePartials(cfg *theme.RendererConfig) map[string]string {
	if cfg == nil {
		return nil
	}
	return cfg.Partials
}
