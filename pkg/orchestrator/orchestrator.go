package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"maps"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-genui/pkg/descriptor"
	"github.com/goliatone/go-genui/pkg/render"
	"github.com/goliatone/go-genui/pkg/renderers/terminal"
	"github.com/goliatone/go-genui/pkg/renderers/vanilla"
	"github.com/goliatone/go-genui/pkg/themes"
)

const defaultRendererName = "vanilla"

// Option customises the orchestrator configuration.
type Option func(*Orchestrator)

// WithRegistry injects a renderer registry.
func WithRegistry(registry *render.Registry) Option {
	return func(o *Orchestrator) {
		o.registry = registry
	}
}

// WithDefaultRenderer overrides the renderer used when a request omits an
// explicit Renderer field.
func WithDefaultRenderer(name string) Option {
	return func(o *Orchestrator) {
		o.defaultRenderer = name
	}
}

// WithTransformer registers a Transformer that rewrites descriptors after
// parsing and before rendering.
func WithTransformer(t Transformer) Option {
	return func(o *Orchestrator) {
		o.transformer = t
	}
}

// WithThemeSelector resolves theme and variant names from requests into
// renderer theme configuration.
func WithThemeSelector(selector theme.ThemeSelector) Option {
	return func(o *Orchestrator) {
		o.themeSelector = selector
	}
}

// WithThemeFallbacks replaces the partials used for widgets a theme does not
// override. Defaults to the built-in widget templates.
func WithThemeFallbacks(fallbacks map[string]string) Option {
	return func(o *Orchestrator) {
		o.themeFallbacks = maps.Clone(fallbacks)
	}
}

// WithLogger sets the logger handed to the default renderers.
func WithLogger(logger *slog.Logger) Option {
	return func(o *Orchestrator) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// Orchestrator coordinates the pipeline from a descriptor document to
// rendered output. It applies sensible defaults (vanilla and terminal
// renderers, embedded templates) while remaining open to dependency injection.
type Orchestrator struct {
	registry        *render.Registry
	defaultRenderer string
	transformer     Transformer
	themeSelector   theme.ThemeSelector
	themeFallbacks  map[string]string
	logger          *slog.Logger
	initialiseErr   error
}

// New constructs an Orchestrator applying any provided options.
func New(options ...Option) *Orchestrator {
	o := &Orchestrator{
		defaultRenderer: defaultRendererName,
		logger:          slog.Default(),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(o)
	}
	o.applyDefaults()
	return o
}

// Request describes one render.
type Request struct {
	// Source is a raw descriptor document (JSON or YAML). Ignored when
	// Descriptors is set.
	Source []byte

	// Descriptors allows callers to bypass parsing.
	Descriptors []descriptor.Descriptor

	// Renderer names the renderer to use. If empty, the orchestrator falls
	// back to the configured default renderer.
	Renderer string

	// ThemeName and ThemeVariant are resolved through the theme selector.
	// They are ignored when no selector is configured or RenderOptions.Theme
	// is already set.
	ThemeName    string
	ThemeVariant string

	RenderOptions render.RenderOptions
}

// Generate parses, transforms and renders a request.
func (o *Orchestrator) Generate(ctx context.Context, req Request) ([]byte, error) {
	if ctx == nil {
		return nil, errors.New("orchestrator: context is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := o.initialiseErr; err != nil {
		return nil, err
	}

	descriptors, err := o.resolveDescriptors(req)
	if err != nil {
		return nil, err
	}
	if o.transformer != nil {
		descriptors, err = o.transformer.Transform(ctx, descriptors)
		if err != nil {
			return nil, fmt.Errorf("orchestrator: transform descriptors: %w", err)
		}
	}

	options := req.RenderOptions
	if options.Theme == nil && o.themeSelector != nil {
		selection, err := o.themeSelector.Select(req.ThemeName, req.ThemeVariant)
		if err != nil {
			return nil, fmt.Errorf("orchestrator: select theme: %w", err)
		}
		options.Theme = themes.RendererConfig(selection, o.fallbacks())
	}

	renderer, err := o.rendererFor(req.Renderer)
	if err != nil {
		return nil, err
	}

	output, err := renderer.Render(ctx, descriptors, options)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: render output: %w", err)
	}
	return output, nil
}

// Renderer returns the renderer a request naming name would use.
func (o *Orchestrator) Renderer(name string) (render.Renderer, error) {
	if err := o.initialiseErr; err != nil {
		return nil, err
	}
	return o.rendererFor(name)
}

func (o *Orchestrator) resolveDescriptors(req Request) ([]descriptor.Descriptor, error) {
	if req.Descriptors != nil {
		return req.Descriptors, nil
	}
	if len(req.Source) == 0 {
		return nil, errors.New("orchestrator: source or descriptors are required")
	}
	descriptors, err := descriptor.Parse(req.Source)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: parse source: %w", err)
	}
	return descriptors, nil
}

func (o *Orchestrator) fallbacks() map[string]string {
	if o.themeFallbacks != nil {
		return o.themeFallbacks
	}
	return themes.DefaultFallbacks()
}

func (o *Orchestrator) rendererFor(name string) (render.Renderer, error) {
	if o.registry == nil {
		return nil, errors.New("orchestrator: renderer registry is nil")
	}

	target := name
	if target == "" {
		target = o.defaultRenderer
	}

	if target != "" {
		renderer, err := o.registry.Get(target)
		if err == nil {
			return renderer, nil
		}
		if name != "" {
			return nil, fmt.Errorf("orchestrator: renderer %q: %w", name, err)
		}
	}

	names := o.registry.List()
	if len(names) == 0 {
		return nil, errors.New("orchestrator: no renderers registered")
	}
	return o.registry.Get(names[0])
}

func (o *Orchestrator) applyDefaults() {
	if o.registry != nil {
		return
	}
	o.registry = render.NewRegistry()

	html, err := vanilla.New(vanilla.WithLogger(o.logger))
	if err != nil {
		o.initialiseErr = fmt.Errorf("orchestrator: default renderer: %w", err)
		return
	}
	o.registry.MustRegister(html)
	o.registry.MustRegister(terminal.New(terminal.WithLogger(o.logger)))
}
