// Package testsupport holds helpers shared by renderer tests.
package testsupport

import (
	"bytes"
	"context"
	"io"
	"os"
	"strings"
	"testing"

	"github.com/goliatone/go-genui/pkg/descriptor"
)

// MustLoadDescriptors parses a descriptor document from disk.
func MustLoadDescriptors(t *testing.T, path string) []descriptor.Descriptor {
	t.Helper()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read descriptors: %v", err)
	}
	out, err := descriptor.Parse(data)
	if err != nil {
		t.Fatalf("parse descriptors: %v", err)
	}
	return out
}

// MustParseDescriptors parses an inline descriptor document.
func MustParseDescriptors(t *testing.T, doc string) []descriptor.Descriptor {
	t.Helper()

	out, err := descriptor.Parse([]byte(doc))
	if err != nil {
		t.Fatalf("parse descriptors: %v", err)
	}
	return out
}

// Context returns a background context for tests.
func Context() context.Context {
	return context.Background()
}

// CaptureTemplateOutput executes a render function that writes to an io.Writer,
// returning both the string result and the writer contents.
func CaptureTemplateOutput(t *testing.T, render func(io.Writer) (string, error)) (string, string) {
	t.Helper()

	var buf bytes.Buffer
	out, err := render(&buf)
	if err != nil {
		t.Fatalf("render template: %v", err)
	}

	return out, buf.String()
}

// CollapseWhitespace folds runs of whitespace into single spaces and trims
// the space left between tags, so markup assertions ignore template
// indentation.
func CollapseWhitespace(s string) string {
	collapsed := strings.Join(strings.Fields(s), " ")
	return strings.ReplaceAll(collapsed, "> <", "><")
}
