package render

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/goliatone/go-genui/pkg/descriptor"
	"github.com/goliatone/go-genui/pkg/validation"
	"github.com/goliatone/go-genui/pkg/widgets"
)

// Validator checks a descriptor before it is rendered.
type Validator interface {
	Validate(descriptor.Descriptor) validation.Result
}

// ResolverOption configures a Resolver.
type ResolverOption func(*Resolver)

// WithRenderData sets the collaborators handed to every widget renderer.
// The Resolve field is always replaced by the resolver itself.
func WithRenderData(data widgets.RenderData) ResolverOption {
	return func(r *Resolver) {
		r.data = data
	}
}

// WithValidator enables strict mode: descriptors that fail validation are
// skipped and their issues logged.
func WithValidator(v Validator) ResolverOption {
	return func(r *Resolver) {
		r.validator = v
	}
}

// WithLogger sets the logger used for skipped descriptors.
func WithLogger(logger *slog.Logger) ResolverOption {
	return func(r *Resolver) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// Resolver is the lookup-and-render indirection: it finds a descriptor's
// renderer in a dispatch table and runs it, handing itself to container
// widgets so nested children resolve the same way. A Resolver tracks the tags
// it rendered and is meant for a single render pass.
type Resolver struct {
	ctx       context.Context
	table     *widgets.Table
	data      widgets.RenderData
	validator Validator
	logger    *slog.Logger

	used  map[string]struct{}
	order []string
}

// NewResolver builds a resolver over table.
func NewResolver(table *widgets.Table, options ...ResolverOption) *Resolver {
	r := &Resolver{
		ctx:    context.Background(),
		table:  table,
		logger: slog.Default(),
		used:   make(map[string]struct{}),
	}
	for _, opt := range options {
		if opt != nil {
			opt(r)
		}
	}
	r.data.Resolve = r.Resolve
	return r
}

// Resolve renders a single descriptor. Unknown tags and descriptors rejected
// by the validator render as empty output; only renderer failures such as a
// broken template are returned as errors.
func (r *Resolver) Resolve(d descriptor.Descriptor) (string, error) {
	if err := r.ctx.Err(); err != nil {
		return "", err
	}

	tag := d.Tag()
	entry, ok := r.table.Lookup(tag)
	if !ok {
		r.logger.Warn("unknown widget skipped", "type", d.Type)
		return "", nil
	}

	if r.validator != nil {
		if result := r.validator.Validate(d); !result.Valid {
			r.logger.Warn("invalid widget skipped", "type", tag, "issues", formatIssues(result.Issues))
			return "", nil
		}
	}

	var buf bytes.Buffer
	if err := entry.Renderer(&buf, d.Props, r.data); err != nil {
		return "", fmt.Errorf("render: widget %q: %w", tag, err)
	}
	r.markUsed(tag)
	return buf.String(), nil
}

// RenderAll resolves descriptors in order and concatenates their output.
func (r *Resolver) RenderAll(ctx context.Context, descriptors []descriptor.Descriptor) (string, error) {
	if ctx != nil {
		r.ctx = ctx
	}
	var out strings.Builder
	for _, d := range descriptors {
		rendered, err := r.Resolve(d)
		if err != nil {
			return "", err
		}
		out.WriteString(rendered)
	}
	return out.String(), nil
}

// Used returns the tags rendered so far in first-use order, including nested
// children.
func (r *Resolver) Used() []string {
	return append([]string(nil), r.order...)
}

func (r *Resolver) markUsed(tag string) {
	if _, seen := r.used[tag]; seen {
		return
	}
	r.used[tag] = struct{}{}
	r.order = append(r.order, tag)
}

func formatIssues(issues []validation.Issue) string {
	parts := make([]string, 0, len(issues))
	for _, issue := range issues {
		if issue.Field != "" {
			parts = append(parts, issue.Field+": "+issue.Message)
			continue
		}
		parts = append(parts, issue.Message)
	}
	return strings.Join(parts, "; ")
}
