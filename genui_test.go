package genui

import (
	"bytes"
	"context"
	"io/fs"
	"log/slog"
	"strings"
	"testing"

	"github.com/goliatone/go-genui/pkg/orchestrator"
)

const sample = `[
  {"type": "header", "props": {"content": "Orders"}},
  {"type": "card", "props": {"children": [
    {"type": "item", "props": {"id": "sku-1", "item_name": "Mug", "price": "20"}}
  ]}},
  {"type": "unknown"}
]`

func TestRenderHTMLAndText(t *testing.T) {
	descriptors, err := ParseDescriptors([]byte(sample))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	quiet := orchestrator.WithLogger(slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil)))

	html, err := RenderHTML(context.Background(), descriptors, RenderOptions{Document: true, Title: "Shop"}, quiet)
	if err != nil {
		t.Fatalf("render html: %v", err)
	}
	for _, fragment := range []string{"<title>Shop</title>", "Orders", "$20.00", "genui-commerce.css"} {
		if !strings.Contains(string(html), fragment) {
			t.Errorf("expected %q in html output", fragment)
		}
	}

	text, err := RenderText(context.Background(), descriptors, RenderOptions{}, quiet)
	if err != nil {
		t.Fatalf("render text: %v", err)
	}
	if !strings.Contains(string(text), "Orders") || !strings.Contains(string(text), "$20.00") {
		t.Fatalf("unexpected text output:\n%s", text)
	}
}

func TestRenderHTMLEmpty(t *testing.T) {
	out, err := RenderHTML(context.Background(), nil, RenderOptions{})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if len(out) != 0 {
		t.Fatalf("expected empty fragment, got %q", out)
	}
}

func TestEmbeddedFilesystems(t *testing.T) {
	if _, err := fs.Stat(EmbeddedTemplates(), "templates/widgets/item.tmpl"); err != nil {
		t.Fatalf("expected item template: %v", err)
	}
	if _, err := fs.Stat(AssetsFS(), "genui-base.css"); err != nil {
		t.Fatalf("expected base stylesheet: %v", err)
	}
}
