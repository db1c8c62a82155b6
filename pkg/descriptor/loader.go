package descriptor

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// Document is a named list of descriptors loaded from a file.
type Document struct {
	Name        string
	Path        string
	Descriptors []Descriptor
}

// Parse decodes a descriptor document. Accepted shapes are a list of
// descriptors, an object with a "components" list, or a single descriptor.
// JSON input is detected by its leading bracket; anything else is read as
// YAML.
func Parse(data []byte) ([]Descriptor, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, nil
	}

	var raw any
	if trimmed[0] == '[' || trimmed[0] == '{' {
		if err := json.Unmarshal(trimmed, &raw); err != nil {
			return nil, fmt.Errorf("descriptor: decode json: %w", err)
		}
	} else {
		if err := yaml.Unmarshal(trimmed, &raw); err != nil {
			return nil, fmt.Errorf("descriptor: decode yaml: %w", err)
		}
	}
	return fromDocument(raw)
}

func fromDocument(raw any) ([]Descriptor, error) {
	if list := asSlice(raw); list != nil {
		return fromList(list)
	}
	object, ok := asMap(raw)
	if !ok {
		return nil, fmt.Errorf("descriptor: document must be a list or an object, got %T", raw)
	}
	if components, exists := object["components"]; exists {
		list := asSlice(components)
		if list == nil && components != nil {
			return nil, fmt.Errorf("descriptor: components must be a list, got %T", components)
		}
		return fromList(list)
	}
	single, ok := FromValue(object)
	if !ok {
		return nil, fmt.Errorf("descriptor: object has neither a type nor a components list")
	}
	return []Descriptor{single}, nil
}

func fromList(list []any) ([]Descriptor, error) {
	out := make([]Descriptor, 0, len(list))
	for idx, entry := range list {
		d, ok := FromValue(entry)
		if !ok {
			return nil, fmt.Errorf("descriptor: entry %d is not a descriptor", idx)
		}
		out = append(out, d)
	}
	return out, nil
}

// LoadFS walks fsys and parses every JSON/YAML document it finds. Documents
// are returned sorted by path; the document name is the file name without
// its extension.
func LoadFS(fsys fs.FS) ([]Document, error) {
	if fsys == nil {
		return nil, nil
	}

	var docs []Document
	err := fs.WalkDir(fsys, ".", func(path string, entry fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if entry.IsDir() || !isDocumentFile(path) {
			return nil
		}

		data, err := fs.ReadFile(fsys, path)
		if err != nil {
			return fmt.Errorf("descriptor: read %s: %w", path, err)
		}
		descriptors, err := Parse(data)
		if err != nil {
			return fmt.Errorf("descriptor: parse %s: %w", path, err)
		}

		base := filepath.Base(path)
		docs = append(docs, Document{
			Name:        strings.TrimSuffix(base, filepath.Ext(base)),
			Path:        path,
			Descriptors: descriptors,
		})
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(docs, func(i, j int) bool { return docs[i].Path < docs[j].Path })
	return docs, nil
}

func isDocumentFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".yaml", ".yml":
		return true
	default:
		return false
	}
}
