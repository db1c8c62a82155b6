package descriptor

import (
	"strings"
)

// Widget tags understood by the default dispatch tables.
const (
	TagCard     = "card"
	TagCarousel = "carousel"
	TagBarChart = "bar_chart"
	TagHeader   = "header"
	TagTable    = "table"
	TagItem     = "item"
	TagOrder    = "order"
)

// Tags lists every built-in widget tag in a stable order.
func Tags() []string {
	return []string{TagCard, TagCarousel, TagBarChart, TagHeader, TagTable, TagItem, TagOrder}
}

// Props is the loosely typed payload attached to a descriptor.
type Props map[string]any

// Descriptor names the widget to render and carries its payload. Descriptors
// are owned by the caller and treated as read-only by renderers.
type Descriptor struct {
	Type  string `json:"type" yaml:"type"`
	Props Props  `json:"props,omitempty" yaml:"props,omitempty"`
}

// New builds a descriptor for tag with the given props.
func New(tag string, props Props) Descriptor {
	return Descriptor{Type: tag, Props: props}
}

// Tag returns the normalised widget tag.
func (d Descriptor) Tag() string {
	return NormalizeTag(d.Type)
}

// NormalizeTag trims and lowercases a tag so lookups are case-insensitive.
func NormalizeTag(tag string) string {
	return strings.ToLower(strings.TrimSpace(tag))
}

// FromValue converts a decoded JSON/YAML value into a descriptor. It reports
// false when value is not an object with a string "type" key.
func FromValue(value any) (Descriptor, bool) {
	raw, ok := asMap(value)
	if !ok {
		return Descriptor{}, false
	}
	tag, ok := raw["type"].(string)
	if !ok || strings.TrimSpace(tag) == "" {
		return Descriptor{}, false
	}
	props, _ := asMap(raw["props"])
	return Descriptor{Type: tag, Props: props}, true
}

// Children decodes the "children" list of a container widget. Entries that
// are not descriptors are skipped; a missing list yields nil.
func Children(props Props) []Descriptor {
	list := asSlice(props["children"])
	if len(list) == 0 {
		return nil
	}
	out := make([]Descriptor, 0, len(list))
	for _, entry := range list {
		if child, ok := entry.(Descriptor); ok {
			out = append(out, child)
			continue
		}
		if child, ok := FromValue(entry); ok {
			out = append(out, child)
		}
	}
	return out
}
