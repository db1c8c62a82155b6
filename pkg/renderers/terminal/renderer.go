// Package terminal renders widget descriptors as styled plain text for
// terminals and logs. It shares the descriptor decoding, chart shaping and
// resolver with the HTML renderer but draws widgets with lipgloss.
package terminal

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/goliatone/go-genui/pkg/descriptor"
	"github.com/goliatone/go-genui/pkg/render"
	"github.com/goliatone/go-genui/pkg/widgets"
)

// DefaultBarWidth is the width in cells of the longest chart bar.
const DefaultBarWidth = 40

type Option func(*config)

type config struct {
	logger    *slog.Logger
	validator render.Validator
	barWidth  int
	styles    Styles
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

// WithBarWidth sets the width of the longest chart bar.
func WithBarWidth(width int) Option {
	return func(cfg *config) {
		if width > 0 {
			cfg.barWidth = width
		}
	}
}

// WithStyles replaces the default palette.
func WithStyles(styles Styles) Option {
	return func(cfg *config) {
		cfg.styles = styles
	}
}

// Renderer renders descriptors to text. It is safe for concurrent use.
type Renderer struct {
	table     *widgets.Table
	logger    *slog.Logger
	validator render.Validator
}

var _ render.Renderer = (*Renderer)(nil)

// New constructs the terminal renderer.
func New(options ...Option) *Renderer {
	cfg := config{
		logger:   slog.Default(),
		barWidth: DefaultBarWidth,
		styles:   DefaultStyles(),
	}
	for _, opt := range options {
		if opt != nil {
			opt(&cfg)
		}
	}
	return &Renderer{
		table:     widgets.MustNew(entries(cfg.styles, cfg.barWidth)...),
		logger:    cfg.logger,
		validator: cfg.validator,
	}
}

func (r *Renderer) Name() string {
	return "terminal"
}

func (r *Renderer) ContentType() string {
	return "text/plain; charset=utf-8"
}

// Tags lists the widgets this renderer draws.
func (r *Renderer) Tags() []string {
	return r.table.Tags()
}

// Render draws each descriptor as a block separated by a blank line. In
// document mode a non-empty title is printed first.
func (r *Renderer) Render(ctx context.Context, descriptors []descriptor.Descriptor, options render.RenderOptions) ([]byte, error) {
	resolver := render.NewResolver(r.table,
		render.WithLogger(r.logger),
		render.WithValidator(r.validator),
		render.WithRenderData(widgets.RenderData{
			Actions:      options.Actions.WithDefaults(),
			StaticPrefix: options.StaticPrefix,
		}),
	)

	var blocks []string
	if title := strings.TrimSpace(options.Title); options.Document && title != "" {
		blocks = append(blocks, title+"\n"+strings.Repeat("=", len([]rune(title))))
	}
	for _, d := range descriptors {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		block, err := resolver.Resolve(d)
		if err != nil {
			return nil, fmt.Errorf("terminal renderer: %w", err)
		}
		if block = strings.TrimRight(block, "\n"); block != "" {
			blocks = append(blocks, block)
		}
	}
	if len(blocks) == 0 {
		return nil, nil
	}
	return []byte(strings.Join(blocks, "\n\n") + "\n"), nil
}
