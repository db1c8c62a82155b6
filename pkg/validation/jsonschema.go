// Package validation checks descriptor payloads against per-widget schemas.
// Rendering is lenient by default; callers that want malformed payloads
// rejected at the boundary run descriptors through a Validator first.
package validation

import (
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-genui/pkg/descriptor"
)

//go:embed schemas.yaml
var defaultSchemas []byte

// Issue represents a validation error with optional location metadata.
type Issue struct {
	Path    string `json:"path,omitempty"`
	Field   string `json:"field,omitempty"`
	Message string `json:"message"`
}

// Result captures the validation outcome for one descriptor.
type Result struct {
	Tag    string  `json:"tag"`
	Valid  bool    `json:"valid"`
	Issues []Issue `json:"issues,omitempty"`
}

// Option configures a Validator.
type Option func(*config)

type config struct {
	document []byte
}

// WithSchemaDocument replaces the built-in schemas with an OpenAPI document
// whose components.schemas are keyed by widget tag. Schemas whose name starts
// with an underscore are shared definitions and are not bound to a tag.
func WithSchemaDocument(data []byte) Option {
	return func(cfg *config) {
		if len(data) > 0 {
			cfg.document = data
		}
	}
}

// Validator validates descriptor props against the schema registered for
// their tag. It is safe for concurrent use.
type Validator struct {
	schemas map[string]*openapi3.Schema
}

// New loads and validates the schema document.
func New(options ...Option) (*Validator, error) {
	cfg := config{document: defaultSchemas}
	for _, opt := range options {
		if opt != nil {
			opt(&cfg)
		}
	}

	loader := openapi3.NewLoader()
	doc, err := loader.LoadFromData(cfg.document)
	if err != nil {
		return nil, fmt.Errorf("validation: load schemas: %w", err)
	}
	if err := doc.Validate(context.Background(), openapi3.DisableExamplesValidation()); err != nil {
		return nil, fmt.Errorf("validation: invalid schema document: %w", err)
	}
	if doc.Components == nil || len(doc.Components.Schemas) == 0 {
		return nil, errors.New("validation: schema document defines no components.schemas")
	}

	v := &Validator{schemas: make(map[string]*openapi3.Schema, len(doc.Components.Schemas))}
	for name, ref := range doc.Components.Schemas {
		if ref == nil || ref.Value == nil || strings.HasPrefix(name, "_") {
			continue
		}
		v.schemas[descriptor.NormalizeTag(name)] = ref.Value
	}
	return v, nil
}

// MustNew mirrors New but panics on error.
func MustNew(options ...Option) *Validator {
	v, err := New(options...)
	if err != nil {
		panic(err)
	}
	return v
}

// Validate checks d's props. Tags without a schema are reported as invalid.
func (v *Validator) Validate(d descriptor.Descriptor) Result {
	tag := d.Tag()
	result := Result{Tag: tag, Valid: true}

	schema, ok := v.schemas[tag]
	if !ok {
		result.Valid = false
		result.Issues = []Issue{{Message: fmt.Sprintf("unknown widget %q", d.Type)}}
		return result
	}

	payload, err := jsonValue(payloadFor(tag, d.Props))
	if err != nil {
		result.Valid = false
		result.Issues = []Issue{{Message: err.Error()}}
		return result
	}

	if err := schema.VisitJSON(payload, openapi3.MultiErrors()); err != nil {
		result.Valid = false
		result.Issues = issuesFromError(err)
	}
	return result
}

// payloadFor mirrors the decoding rules of the widget renderers: items may be
// nested under an "item" key.
func payloadFor(tag string, props descriptor.Props) any {
	if props == nil {
		return map[string]any{}
	}
	if tag == descriptor.TagItem {
		if nested, ok := props["item"].(map[string]any); ok {
			return nested
		}
	}
	return props
}

// jsonValue normalises YAML-decoded numbers and typed descriptors into the
// plain JSON shapes the schema visitor expects.
func jsonValue(value any) (any, error) {
	data, err := json.Marshal(value)
	if err != nil {
		return nil, fmt.Errorf("validation: encode payload: %w", err)
	}
	var out any
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("validation: decode payload: %w", err)
	}
	return out, nil
}

// issuesFromError flattens the visitor's error tree. Schema errors are taken
// at face value rather than unwrapped so the reported pointer stays on the
// offending property.
func issuesFromError(err error) []Issue {
	switch e := err.(type) {
	case openapi3.MultiError:
		var out []Issue
		for _, nested := range e {
			out = append(out, issuesFromError(nested)...)
		}
		sort.SliceStable(out, func(i, j int) bool { return out[i].Path < out[j].Path })
		return out
	case *openapi3.SchemaError:
		return []Issue{schemaIssue(e)}
	}

	var schemaErr *openapi3.SchemaError
	if errors.As(err, &schemaErr) {
		return []Issue{schemaIssue(schemaErr)}
	}
	return []Issue{{Message: strings.TrimSpace(err.Error())}}
}

func schemaIssue(err *openapi3.SchemaError) Issue {
	pointer := err.JSONPointer()
	path := ""
	if len(pointer) > 0 {
		path = "/" + strings.Join(pointer, "/")
	}
	message := strings.TrimSpace(err.Reason)
	if message == "" {
		message = strings.TrimSpace(err.Error())
	}
	return Issue{
		Path:    path,
		Field:   fieldPathFromPointer(pointer),
		Message: message,
	}
}

// fieldPathFromPointer converts JSON pointer segments into a dotted field
// path, for example ["products", "0", "item"] to "products.0.item".
func fieldPathFromPointer(pointer []string) string {
	if len(pointer) == 0 {
		return ""
	}
	out := make([]string, 0, len(pointer))
	for _, segment := range pointer {
		segment = strings.ReplaceAll(segment, "~1", "/")
		segment = strings.ReplaceAll(segment, "~0", "~")
		if segment == "" {
			continue
		}
		out = append(out, segment)
	}
	return strings.Join(out, ".")
}
