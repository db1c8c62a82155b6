package terminal

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-genui/pkg/descriptor"
	"github.com/goliatone/go-genui/pkg/render"
	"github.com/goliatone/go-genui/pkg/testsupport"
)

const dashboard = `
- type: header
  props:
    content: Weekly summary
- type: bar_chart
  props:
    columns:
      - {label: Mon, value: "10"}
      - {label: Tue, value: 5}
      - {label: Wed, value: "n/a"}
      - {value: 99}
- type: table
  props:
    columns: [{key: sku, title: SKU}, {key: qty, title: Qty}]
    rows:
      - values: [mug-1, 3, ignored]
      - values: [lamp-2]
- type: card
  props:
    children:
      - type: item
        props:
          id: mug-1
          item_name: Mug
          primary_image: mug.png
          description: "<b>Sturdy</b><script>alert(1)</script>"
          price: 19.999
      - type: order
        props:
          id: o-77
          status: shipped
          total: "12.5"
          products:
            - item: {item_name: Lamp, price: 4}
              quantity: 2
- type: sparkline
`

func renderText(t *testing.T, r *Renderer, opts render.RenderOptions) string {
	t.Helper()
	out, err := r.Render(testsupport.Context(), testsupport.MustParseDescriptors(t, dashboard), opts)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	return string(out)
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
}

func TestRendererDrawsEveryWidget(t *testing.T) {
	output := renderText(t, New(WithBarWidth(10), WithLogger(quietLogger())), render.RenderOptions{})

	for _, fragment := range []string{
		"Weekly summary",
		"Mon ██████████ 10",
		"Tue █████░░░░░ 5",
		"Wed ░░░░░░░░░░\n",
		"SKU     Qty",
		"mug-1   3",
		"lamp-2",
		"Mug",
		"[image /static/images/mug.png]",
		"Sturdy",
		"$20.00",
		"add to cart: POST /actions/add-to-cart id=mug-1",
		"Order o-77 · shipped",
		"2 × Lamp  $4.00",
		"Total: $12.50",
		"select order: POST /actions/select-order id=o-77",
		"╭",
	} {
		if !strings.Contains(output, fragment) {
			t.Errorf("expected %q in output:\n%s", fragment, output)
		}
	}
	for _, fragment := range []string{"ignored", "script", "alert", "99", "NaN"} {
		if strings.Contains(output, fragment) {
			t.Errorf("did not expect %q in output:\n%s", fragment, output)
		}
	}
}

func TestRendererDocumentTitle(t *testing.T) {
	output := renderText(t, New(WithLogger(quietLogger())), render.RenderOptions{Document: true, Title: "Report"})
	if !strings.HasPrefix(output, "Report\n======\n\n") {
		t.Fatalf("expected title block first, got:\n%s", output)
	}
}

func TestRendererCarouselPlacesSlidesSideBySide(t *testing.T) {
	out, err := New().Render(testsupport.Context(), []descriptor.Descriptor{
		descriptor.New("carousel", descriptor.Props{"children": []any{
			map[string]any{"type": "header", "props": map[string]any{"content": "Left"}},
			map[string]any{"type": "header", "props": map[string]any{"content": "Right"}},
		}}),
	}, render.RenderOptions{})
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	var middle string
	for _, line := range strings.Split(string(out), "\n") {
		if strings.Contains(line, "Left") {
			middle = line
		}
	}
	if !strings.Contains(middle, "Right") {
		t.Fatalf("expected slides on the same line, got:\n%s", out)
	}
}

func TestRendererOptionalChartAndQuantity(t *testing.T) {
	out, err := New(WithLogger(quietLogger())).Render(testsupport.Context(), []descriptor.Descriptor{
		descriptor.New("bar_chart", descriptor.Props{"title": "no rows"}),
		descriptor.New("order", descriptor.Props{
			"id":       "o-9",
			"products": []any{map[string]any{"item": map[string]any{"item_name": "Lamp"}}},
		}),
	}, render.RenderOptions{})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	output := string(out)
	if !strings.HasPrefix(output, "Order o-9") {
		t.Fatalf("expected the chart without columns to render nothing, got:\n%s", output)
	}
	if !strings.Contains(output, "× Lamp") || strings.Contains(output, "0 × Lamp") {
		t.Fatalf("expected a blank quantity, got:\n%s", output)
	}
}

func TestRendererEmptyInput(t *testing.T) {
	out, err := New().Render(testsupport.Context(), nil, render.RenderOptions{})
	if err != nil || len(out) != 0 {
		t.Fatalf("expected empty output, got %q, %v", out, err)
	}
}

func TestRendererTags(t *testing.T) {
	want := []string{"bar_chart", "card", "carousel", "header", "item", "order", "table"}
	if diff := cmp.Diff(want, New().Tags()); diff != "" {
		t.Fatalf("tags mismatch (-want +got):\n%s", diff)
	}
}

func TestBarCells(t *testing.T) {
	cases := []struct {
		value, peak float64
		want        int
	}{
		{10, 10, 20},
		{5, 10, 10},
		{0.01, 10, 1},
		{-3, 10, 0},
		{4, 0, 0},
	}
	for _, tc := range cases {
		if got := barCells(tc.value, tc.peak, 20); got != tc.want {
			t.Errorf("barCells(%v, %v) = %d, want %d", tc.value, tc.peak, got, tc.want)
		}
	}
}
