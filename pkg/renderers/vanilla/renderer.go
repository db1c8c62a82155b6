// Package vanilla renders widget descriptors to server-side HTML using the
// embedded pongo2 templates. Interactive widgets post plain HTML forms to the
// action URLs served by the actions package.
package vanilla

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"sort"
	"strings"

	"github.com/goliatone/go-genui/pkg/descriptor"
	"github.com/goliatone/go-genui/pkg/render"
	rendertemplate "github.com/goliatone/go-genui/pkg/render/template"
	gotemplate "github.com/goliatone/go-genui/pkg/render/template/gotemplate"
	"github.com/goliatone/go-genui/pkg/widgets"
)

type Option func(*config)

type config struct {
	templateFS       fs.FS
	templateDir      string
	templateRenderer rendertemplate.TemplateRenderer
	table            *widgets.Table
	logger           *slog.Logger
	validator        render.Validator
	newID            func() string
	assetPrefix      string
	staticPrefix     string
}

// WithTemplatesFS supplies an alternate template bundle via fs.FS.
func WithTemplatesFS(files fs.FS) Option {
	return func(cfg *config) {
		if files != nil {
			cfg.templateFS = files
		}
	}
}

// WithTemplatesDir layers a directory on disk over the template bundle. It is
// the usual home for theme partials.
func WithTemplatesDir(path string) Option {
	return func(cfg *config) {
		cfg.templateDir = strings.TrimSpace(path)
	}
}

// WithTemplateRenderer injects a custom template renderer implementation.
func WithTemplateRenderer(renderer rendertemplate.TemplateRenderer) Option {
	return func(cfg *config) {
		if renderer != nil {
			cfg.templateRenderer = renderer
		}
	}
}

// WithTable replaces the built-in dispatch table, for example with one
// extended through widgets.Table.With.
func WithTable(table *widgets.Table) Option {
	return func(cfg *config) {
		if table != nil {
			cfg.table = table
		}
	}
}

// WithLogger sets the logger used for skipped widgets.
func WithLogger(logger *slog.Logger) Option {
	return func(cfg *config) {
		if logger != nil {
			cfg.logger = logger
		}
	}
}

// WithValidator enables strict mode.
func WithValidator(validator render.Validator) Option {
	return func(cfg *config) {
		cfg.validator = validator
	}
}

// WithIDGenerator overrides how carousel ids are generated.
func WithIDGenerator(fn func() string) Option {
	return func(cfg *config) {
		cfg.newID = fn
	}
}

// WithAssetPrefix sets the URL path stylesheets are linked under.
func WithAssetPrefix(prefix string) Option {
	return func(cfg *config) {
		if trimmed := strings.TrimSpace(prefix); trimmed != "" {
			cfg.assetPrefix = trimmed
		}
	}
}

// WithStaticPrefix sets the default path image filenames resolve under.
func WithStaticPrefix(prefix string) Option {
	return func(cfg *config) {
		cfg.staticPrefix = strings.TrimSpace(prefix)
	}
}

// Renderer renders descriptors to HTML. It holds no per-request state and is
// safe for concurrent use.
type Renderer struct {
	templates    rendertemplate.TemplateRenderer
	table        *widgets.Table
	logger       *slog.Logger
	validator    render.Validator
	newID        func() string
	assetPrefix  string
	staticPrefix string
}

var _ render.Renderer = (*Renderer)(nil)

// New constructs the vanilla renderer applying any provided options.
func New(options ...Option) (*Renderer, error) {
	cfg := config{
		templateFS:  TemplatesFS(),
		table:       widgets.Default(),
		logger:      slog.Default(),
		assetPrefix: DefaultAssetPrefix,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}

	renderer := cfg.templateRenderer
	if renderer == nil {
		engine, err := gotemplate.New(
			gotemplate.WithDir(cfg.templateDir),
			gotemplate.WithFS(cfg.templateFS),
			gotemplate.WithExtension(".tmpl"),
		)
		if err != nil {
			return nil, fmt.Errorf("vanilla renderer: configure template renderer: %w", err)
		}
		renderer = engine
	}

	return &Renderer{
		templates:    renderer,
		table:        cfg.table,
		logger:       cfg.logger,
		validator:    cfg.validator,
		newID:        cfg.newID,
		assetPrefix:  strings.TrimRight(cfg.assetPrefix, "/"),
		staticPrefix: cfg.staticPrefix,
	}, nil
}

func (r *Renderer) Name() string {
	return "vanilla"
}

func (r *Renderer) ContentType() string {
	return "text/html; charset=utf-8"
}

// Render resolves every descriptor in order. With options.Document set the
// fragment is wrapped in the page template, which links the stylesheets of
// the widgets that were actually rendered.
func (r *Renderer) Render(ctx context.Context, descriptors []descriptor.Descriptor, options render.RenderOptions) ([]byte, error) {
	if r.templates == nil {
		return nil, fmt.Errorf("vanilla renderer: template renderer is nil")
	}

	resolver := render.NewResolver(r.table,
		render.WithLogger(r.logger),
		render.WithValidator(r.validator),
		render.WithRenderData(r.renderData(options)),
	)
	content, err := resolver.RenderAll(ctx, descriptors)
	if err != nil {
		return nil, fmt.Errorf("vanilla renderer: %w", err)
	}
	if !options.Document {
		return []byte(content), nil
	}

	page := map[string]any{
		"title":       pageTitle(options.Title),
		"stylesheets": r.stylesheets(r.table.Assets(resolver.Used()), options),
		"content":     content,
	}
	if cfg := options.Theme; cfg != nil {
		page["theme"] = cfg.Theme
		page["variant"] = cfg.Variant
		page["style"] = cssVarsStyle(cfg.CSSVars)
	}

	result, err := r.templates.RenderTemplate(pageTemplate, map[string]any{"page": page})
	if err != nil {
		return nil, fmt.Errorf("vanilla renderer: render page: %w", err)
	}
	return []byte(result), nil
}

func (r *Renderer) renderData(options render.RenderOptions) widgets.RenderData {
	staticPrefix := options.StaticPrefix
	if staticPrefix == "" {
		staticPrefix = r.staticPrefix
	}
	data := widgets.RenderData{
		Template:     r.templates,
		Actions:      options.Actions.WithDefaults(),
		StaticPrefix: staticPrefix,
		Partials:     render.ThemePartials(options.Theme),
		NewID:        r.newID,
	}
	if cfg := options.Theme; cfg != nil {
		data.Config = map[string]any{
			"theme":   cfg.Theme,
			"variant": cfg.Variant,
			"tokens":  cfg.Tokens,
		}
	}
	return data
}

// stylesheets maps asset names to URLs, preferring theme-provided files.
func (r *Renderer) stylesheets(assets []string, options render.RenderOptions) []string {
	out := make([]string, 0, len(assets))
	for _, name := range assets {
		if cfg := options.Theme; cfg != nil && cfg.AssetURL != nil {
			if url := cfg.AssetURL(name); url != "" {
				out = append(out, url)
				continue
			}
		}
		out = append(out, r.assetPrefix+"/"+name)
	}
	return out
}

func pageTitle(title string) string {
	if trimmed := strings.TrimSpace(title); trimmed != "" {
		return trimmed
	}
	return "genui"
}

func cssVarsStyle(vars map[string]string) string {
	if len(vars) == 0 {
		return ""
	}
	keys := make([]string, 0, len(vars))
	for key := range vars {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var b strings.Builder
	for idx, key := range keys {
		if idx > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(key)
		b.WriteString(": ")
		b.WriteString(vars[key])
		b.WriteByte(';')
	}
	return b.String()
}
