// Package themes turns go-theme manifests into renderer configuration:
// template partials for the widget templates, design tokens exposed as CSS
// custom properties, and theme asset URLs.
package themes

import (
	"fmt"
	"maps"
	"path"
	"strings"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-genui/pkg/widgets"
)

// Selector picks a manifest and variant by name. It implements
// theme.ThemeSelector so it can stand in wherever go-theme selectors are
// accepted.
type Selector struct {
	manifests      map[string]*theme.Manifest
	defaultTheme   string
	defaultVariant string
}

var _ theme.ThemeSelector = (*Selector)(nil)

// NewSelector registers manifests and records the defaults used when Select
// is called with empty names. Manifests are checked by a go-theme registry so
// duplicate or malformed manifests fail here rather than at render time.
func NewSelector(defaultTheme, defaultVariant string, manifests ...*theme.Manifest) (*Selector, error) {
	registry := theme.NewRegistry()
	s := &Selector{
		manifests:      make(map[string]*theme.Manifest, len(manifests)),
		defaultTheme:   strings.TrimSpace(defaultTheme),
		defaultVariant: strings.TrimSpace(defaultVariant),
	}
	for _, manifest := range manifests {
		if manifest == nil {
			continue
		}
		if err := registry.Register(manifest); err != nil {
			return nil, fmt.Errorf("themes: register %q: %w", manifest.Name, err)
		}
		s.manifests[manifest.Name] = manifest
	}
	if s.defaultTheme == "" && len(manifests) == 1 && manifests[0] != nil {
		s.defaultTheme = manifests[0].Name
	}
	return s, nil
}

// Select resolves name and variant, falling back to the selector defaults.
// An unknown theme or a variant the manifest does not declare is an error.
func (s *Selector) Select(name, variant string, _ ...theme.QueryOption) (*theme.Selection, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		name = s.defaultTheme
	}
	manifest, ok := s.manifests[name]
	if !ok {
		return nil, fmt.Errorf("themes: theme %q not registered", name)
	}

	variant = strings.TrimSpace(variant)
	if variant == "" {
		if _, declared := manifest.Variants[s.defaultVariant]; declared {
			variant = s.defaultVariant
		}
	}
	if variant != "" {
		if _, declared := manifest.Variants[variant]; !declared {
			return nil, fmt.Errorf("themes: theme %q has no variant %q", name, variant)
		}
	}

	return &theme.Selection{
		Theme:    name,
		Variant:  variant,
		Manifest: manifest,
	}, nil
}

// DefaultFallbacks returns the built-in widget templates keyed by partial.
func DefaultFallbacks() map[string]string {
	return widgets.Partials()
}

// Resolve selects a theme and converts it into renderer configuration using
// the built-in widget templates as fallbacks.
func Resolve(selector theme.ThemeSelector, name, variant string) (*theme.RendererConfig, error) {
	if selector == nil {
		return nil, nil
	}
	selection, err := selector.Select(name, variant)
	if err != nil {
		return nil, err
	}
	return RendererConfig(selection, DefaultFallbacks()), nil
}

// RendererConfig flattens a selection. Partials start from fallbacks and are
// overridden by the manifest templates and then the variant templates; tokens
// and asset files follow the same base-then-variant order.
func RendererConfig(selection *theme.Selection, fallbacks map[string]string) *theme.RendererConfig {
	if selection == nil {
		return nil
	}

	cfg := &theme.RendererConfig{
		Theme:    selection.Theme,
		Variant:  selection.Variant,
		Partials: maps.Clone(fallbacks),
		Tokens:   map[string]string{},
		CSSVars:  map[string]string{},
	}
	if cfg.Partials == nil {
		cfg.Partials = map[string]string{}
	}

	manifest := selection.Manifest
	if manifest == nil {
		cfg.AssetURL = func(string) string { return "" }
		return cfg
	}

	prefix := manifest.Assets.Prefix
	files := maps.Clone(manifest.Assets.Files)
	if files == nil {
		files = map[string]string{}
	}
	maps.Copy(cfg.Partials, manifest.Templates)
	maps.Copy(cfg.Tokens, manifest.Tokens)

	if variant, ok := manifest.Variants[selection.Variant]; ok {
		maps.Copy(cfg.Partials, variant.Templates)
		maps.Copy(cfg.Tokens, variant.Tokens)
		maps.Copy(files, variant.Assets.Files)
		if variant.Assets.Prefix != "" {
			prefix = variant.Assets.Prefix
		}
	}

	for key, value := range cfg.Tokens {
		cfg.CSSVars["--"+key] = value
	}
	cfg.AssetURL = assetResolver(prefix, files)
	return cfg
}

func assetResolver(prefix string, files map[string]string) func(string) string {
	return func(key string) string {
		file, ok := files[key]
		if !ok || file == "" {
			return ""
		}
		if strings.HasPrefix(file, "/") || strings.Contains(file, "://") || prefix == "" {
			return file
		}
		return strings.TrimRight(prefix, "/") + "/" + path.Clean(strings.TrimLeft(file, "/"))
	}
}
