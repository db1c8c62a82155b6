package orchestrator

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-genui/pkg/descriptor"
)

// Transformer rewrites descriptors before they are rendered. Implementations
// can rename tags, inject default props, or drop widgets entirely.
type Transformer interface {
	Transform(ctx context.Context, descriptors []descriptor.Descriptor) ([]descriptor.Descriptor, error)
}

// TransformerFunc adapts plain functions to the Transformer interface.
type TransformerFunc func(ctx context.Context, descriptors []descriptor.Descriptor) ([]descriptor.Descriptor, error)

// Transform executes the wrapped function when non-nil.
func (fn TransformerFunc) Transform(ctx context.Context, descriptors []descriptor.Descriptor) ([]descriptor.Descriptor, error) {
	if fn == nil {
		return descriptors, nil
	}
	return fn(ctx, descriptors)
}

// PresetTransformer applies declarative rewrites loaded from a JSON or YAML
// document. Rewrites reach nested card and carousel children:
//
//	aliases:
//	  chart: bar_chart
//	defaults:
//	  item:
//	    description: "No description yet"
//	drop: [sparkline]
type PresetTransformer struct {
	document presetDocument
}

type presetDocument struct {
	Aliases  map[string]string         `yaml:"aliases" json:"aliases"`
	Defaults map[string]map[string]any `yaml:"defaults" json:"defaults"`
	Drop     []string                  `yaml:"drop" json:"drop"`
}

// NewPresetTransformer constructs a transformer from raw document bytes.
func NewPresetTransformer(data []byte) (*PresetTransformer, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, errors.New("preset transformer: document is empty")
	}
	var document presetDocument
	if err := yaml.Unmarshal(data, &document); err != nil {
		return nil, fmt.Errorf("preset transformer: parse document: %w", err)
	}

	normalised := presetDocument{
		Aliases:  make(map[string]string, len(document.Aliases)),
		Defaults: make(map[string]map[string]any, len(document.Defaults)),
	}
	for from, to := range document.Aliases {
		normalised.Aliases[descriptor.NormalizeTag(from)] = descriptor.NormalizeTag(to)
	}
	for tag, props := range document.Defaults {
		normalised.Defaults[descriptor.NormalizeTag(tag)] = props
	}
	for _, tag := range document.Drop {
		normalised.Drop = append(normalised.Drop, descriptor.NormalizeTag(tag))
	}
	return &PresetTransformer{document: normalised}, nil
}

// NewPresetTransformerFromFS loads a preset document from the provided
// filesystem path.
func NewPresetTransformerFromFS(fsys fs.FS, path string) (*PresetTransformer, error) {
	if fsys == nil {
		return nil, errors.New("preset transformer: filesystem is nil")
	}
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("preset transformer: path is required")
	}
	data, err := fs.ReadFile(fsys, path)
	if err != nil {
		return nil, fmt.Errorf("preset transformer: read %s: %w", path, err)
	}
	return NewPresetTransformer(data)
}

// Transform returns rewritten copies; the input descriptors are not modified.
func (t *PresetTransformer) Transform(ctx context.Context, descriptors []descriptor.Descriptor) ([]descriptor.Descriptor, error) {
	out := make([]descriptor.Descriptor, 0, len(descriptors))
	for _, d := range descriptors {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		rewritten, keep := t.rewrite(d)
		if keep {
			out = append(out, rewritten)
		}
	}
	return out, nil
}

func (t *PresetTransformer) rewrite(d descriptor.Descriptor) (descriptor.Descriptor, bool) {
	tag := d.Tag()
	if alias, ok := t.document.Aliases[tag]; ok && alias != "" {
		tag = alias
	}
	for _, dropped := range t.document.Drop {
		if dropped == tag {
			return descriptor.Descriptor{}, false
		}
	}

	props := make(descriptor.Props, len(d.Props))
	for key, value := range d.Props {
		props[key] = value
	}
	for key, value := range t.document.Defaults[tag] {
		if _, exists := props[key]; !exists {
			props[key] = value
		}
	}

	if _, nested := props["children"]; nested {
		children := descriptor.Children(props)
		rewritten := make([]any, 0, len(children))
		for _, child := range children {
			if next, keep := t.rewrite(child); keep {
				rewritten = append(rewritten, next)
			}
		}
		props["children"] = rewritten
	}

	return descriptor.New(tag, props), true
}
