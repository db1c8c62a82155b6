package widgets

import (
	"bytes"
	"fmt"
	"slices"

	"github.com/goliatone/go-genui/pkg/descriptor"
)

// Renderer writes the markup for one widget into buf. Renderers are pure
// functions of props and data; container widgets recurse through
// data.Resolve.
type Renderer func(buf *bytes.Buffer, props descriptor.Props, data RenderData) error

// Entry binds a renderer to its tag together with the stylesheets the widget
// needs once per page.
type Entry struct {
	Name        string
	Renderer    Renderer
	Stylesheets []string
}

// Table is an immutable dispatch table from widget tag to renderer. Build it
// with New; there is no way to change a table afterwards, so a single value
// can be shared by concurrent render passes.
type Table struct {
	entries map[string]Entry
}

// New builds a table from entries. Tags are normalised; a later entry with
// the same tag replaces an earlier one.
func New(entries ...Entry) (*Table, error) {
	table := &Table{entries: make(map[string]Entry, len(entries))}
	for _, entry := range entries {
		name := descriptor.NormalizeTag(entry.Name)
		if name == "" {
			return nil, fmt.Errorf("widgets: entry name is required")
		}
		if entry.Renderer == nil {
			return nil, fmt.Errorf("widgets: renderer for %q is nil", name)
		}
		entry.Name = name
		entry.Stylesheets = slices.Clone(entry.Stylesheets)
		table.entries[name] = entry
	}
	return table, nil
}

// MustNew mirrors New but panics on error, for init-time wiring.
func MustNew(entries ...Entry) *Table {
	table, err := New(entries...)
	if err != nil {
		panic(err)
	}
	return table
}

// With returns a new table holding the receiver's entries plus overrides.
// The receiver is left untouched.
func (t *Table) With(overrides ...Entry) (*Table, error) {
	merged := make([]Entry, 0, len(t.entries)+len(overrides))
	for _, name := range t.Tags() {
		merged = append(merged, t.entries[name])
	}
	merged = append(merged, overrides...)
	return New(merged...)
}

// Lookup returns the entry registered for tag. Unknown tags report false and
// are left to the caller to handle.
func (t *Table) Lookup(tag string) (Entry, bool) {
	if t == nil {
		return Entry{}, false
	}
	entry, ok := t.entries[descriptor.NormalizeTag(tag)]
	if !ok {
		return Entry{}, false
	}
	entry.Stylesheets = slices.Clone(entry.Stylesheets)
	return entry, true
}

// Tags returns the registered tags in sorted order.
func (t *Table) Tags() []string {
	if t == nil {
		return nil
	}
	names := make([]string, 0, len(t.entries))
	for name := range t.entries {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Assets returns the stylesheets needed by tags, deduplicated in first-seen
// order.
func (t *Table) Assets(tags []string) []string {
	if t == nil || len(tags) == 0 {
		return nil
	}
	seen := make(map[string]struct{})
	var out []string
	for _, tag := range tags {
		entry, ok := t.entries[descriptor.NormalizeTag(tag)]
		if !ok {
			continue
		}
		for _, href := range entry.Stylesheets {
			if href == "" {
				continue
			}
			if _, exists := seen[href]; exists {
				continue
			}
			seen[href] = struct{}{}
			out = append(out, href)
		}
	}
	return out
}
