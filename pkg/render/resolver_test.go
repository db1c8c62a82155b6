package render

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-genui/pkg/descriptor"
	"github.com/goliatone/go-genui/pkg/validation"
	"github.com/goliatone/go-genui/pkg/widgets"
)

func stubTable(t *testing.T) *widgets.Table {
	t.Helper()
	table, err := widgets.New(
		widgets.Entry{
			Name: descriptor.TagHeader,
			Renderer: func(buf *bytes.Buffer, props descriptor.Props, _ widgets.RenderData) error {
				buf.WriteString("<h>" + descriptor.HeaderFrom(props).Content + "</h>")
				return nil
			},
			Stylesheets: []string{"base.css"},
		},
		widgets.Entry{
			Name: descriptor.TagCard,
			Renderer: func(buf *bytes.Buffer, props descriptor.Props, data widgets.RenderData) error {
				buf.WriteString("<card>")
				for _, child := range descriptor.Children(props) {
					out, err := data.Resolve(child)
					if err != nil {
						return err
					}
					buf.WriteString(out)
				}
				buf.WriteString("</card>")
				return nil
			},
			Stylesheets: []string{"base.css", "card.css"},
		},
		widgets.Entry{
			Name: "broken",
			Renderer: func(*bytes.Buffer, descriptor.Props, widgets.RenderData) error {
				return errors.New("template missing")
			},
		},
	)
	if err != nil {
		t.Fatalf("build table: %v", err)
	}
	return table
}

func captureLogger() (*slog.Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	return slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})), &buf
}

func TestResolverRendersNestedChildren(t *testing.T) {
	resolver := NewResolver(stubTable(t))

	out, err := resolver.RenderAll(context.Background(), []descriptor.Descriptor{
		descriptor.New("card", descriptor.Props{"children": []any{
			map[string]any{"type": "header", "props": map[string]any{"content": "A"}},
			map[string]any{"type": "card", "props": map[string]any{"children": []any{
				map[string]any{"type": "header", "props": map[string]any{"content": "B"}},
			}}},
		}}),
	})
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	want := "<card><h>A</h><card><h>B</h></card></card>"
	if out != want {
		t.Fatalf("unexpected output\nwant %s\ngot  %s", want, out)
	}
	if diff := cmp.Diff([]string{"header", "card"}, resolver.Used()); diff != "" {
		t.Fatalf("used tags mismatch (-want +got):\n%s", diff)
	}
}

func TestResolverSkipsUnknownTags(t *testing.T) {
	logger, logs := captureLogger()
	resolver := NewResolver(stubTable(t), WithLogger(logger))

	out, err := resolver.RenderAll(context.Background(), []descriptor.Descriptor{
		descriptor.New("header", descriptor.Props{"content": "A"}),
		descriptor.New("sparkline", nil),
		descriptor.New("header", descriptor.Props{"content": "B"}),
	})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if out != "<h>A</h><h>B</h>" {
		t.Fatalf("unexpected output %q", out)
	}
	if !strings.Contains(logs.String(), "level=WARN") || !strings.Contains(logs.String(), "sparkline") {
		t.Fatalf("expected warning for unknown tag, got %q", logs.String())
	}
}

func TestResolverStrictModeSkipsInvalid(t *testing.T) {
	logger, logs := captureLogger()
	resolver := NewResolver(
		stubTable(t),
		WithLogger(logger),
		WithValidator(stubValidator{invalid: "bad"}),
	)

	out, err := resolver.RenderAll(context.Background(), []descriptor.Descriptor{
		descriptor.New("header", descriptor.Props{"content": "bad"}),
		descriptor.New("header", descriptor.Props{"content": "ok"}),
	})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if out != "<h>ok</h>" {
		t.Fatalf("unexpected output %q", out)
	}
	if !strings.Contains(logs.String(), "content: rejected") {
		t.Fatalf("expected validation issues logged, got %q", logs.String())
	}
}

func TestResolverPropagatesRendererErrors(t *testing.T) {
	resolver := NewResolver(stubTable(t))
	_, err := resolver.RenderAll(context.Background(), []descriptor.Descriptor{
		descriptor.New("card", descriptor.Props{"children": []any{
			map[string]any{"type": "broken"},
		}}),
	})
	if err == nil || !strings.Contains(err.Error(), "template missing") {
		t.Fatalf("expected renderer error, got %v", err)
	}
}

func TestResolverHonoursCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewResolver(stubTable(t)).RenderAll(ctx, []descriptor.Descriptor{
		descriptor.New("header", nil),
	})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

type stubValidator struct {
	invalid string
}

func (s stubValidator) Validate(d descriptor.Descriptor) validation.Result {
	result := validation.Result{Tag: d.Tag(), Valid: true}
	if descriptor.HeaderFrom(d.Props).Content == s.invalid {
		result.Valid = false
		result.Issues = []validation.Issue{{Field: "content", Message: "rejected"}}
	}
	return result
}
