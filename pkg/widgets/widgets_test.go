package widgets

import (
	"bytes"
	"io"
	"math"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-genui/pkg/actions"
	"github.com/goliatone/go-genui/pkg/chart"
	"github.com/goliatone/go-genui/pkg/descriptor"
)

type recordingTemplate struct {
	calls []string
	data  []any
}

func (r *recordingTemplate) Render(name string, data any, out ...io.Writer) (string, error) {
	return r.RenderTemplate(name, data, out...)
}

func (r *recordingTemplate) RenderTemplate(name string, data any, _ ...io.Writer) (string, error) {
	r.calls = append(r.calls, name)
	r.data = append(r.data, data)
	return "<" + name + ">", nil
}

func (r *recordingTemplate) RenderString(string, any, ...io.Writer) (string, error) {
	return "", nil
}

func (r *recordingTemplate) RegisterFilter(string, func(any, any) (any, error)) error {
	return nil
}

func (r *recordingTemplate) GlobalContext(any) error {
	return nil
}

func TestDefaultTableHasSevenTags(t *testing.T) {
	want := []string{"bar_chart", "card", "carousel", "header", "item", "order", "table"}
	if diff := cmp.Diff(want, Default().Tags()); diff != "" {
		t.Fatalf("tags mismatch (-want +got):\n%s", diff)
	}
	first := Default()
	if first != Default() {
		t.Fatalf("expected default table to be built once")
	}
}

func TestTableLookupNormalisesTags(t *testing.T) {
	if _, ok := Default().Lookup("  Bar_Chart "); !ok {
		t.Fatalf("expected case-insensitive lookup")
	}
	if _, ok := Default().Lookup("unknown"); ok {
		t.Fatalf("expected unknown tag to be missing")
	}
}

func TestTableIsImmutable(t *testing.T) {
	noop := func(*bytes.Buffer, descriptor.Props, RenderData) error { return nil }
	base := MustNew(Entry{Name: "header", Renderer: noop, Stylesheets: []string{"a.css"}})

	entry, _ := base.Lookup("header")
	entry.Stylesheets[0] = "mutated.css"

	again, _ := base.Lookup("header")
	if again.Stylesheets[0] != "a.css" {
		t.Fatalf("lookup leaked internal state: %v", again.Stylesheets)
	}

	extended, err := base.With(Entry{Name: "extra", Renderer: noop})
	if err != nil {
		t.Fatalf("with: %v", err)
	}
	if _, ok := base.Lookup("extra"); ok {
		t.Fatalf("With must not modify the receiver")
	}
	if _, ok := extended.Lookup("extra"); !ok {
		t.Fatalf("expected extended table to contain new entry")
	}
}

func TestNewRejectsInvalidEntries(t *testing.T) {
	if _, err := New(Entry{Name: " ", Renderer: func(*bytes.Buffer, descriptor.Props, RenderData) error { return nil }}); err == nil {
		t.Fatalf("expected error for empty name")
	}
	if _, err := New(Entry{Name: "x"}); err == nil {
		t.Fatalf("expected error for nil renderer")
	}
}

func TestTableAssetsDeduplicates(t *testing.T) {
	got := Default().Assets([]string{"item", "order", "bar_chart", "missing"})
	want := []string{StylesheetBase, StylesheetCommerce, StylesheetChart}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("assets mismatch (-want +got):\n%s", diff)
	}
}

func TestCardResolvesChildrenInOrder(t *testing.T) {
	tmpl := &recordingTemplate{}
	var resolved []descriptor.Descriptor
	data := RenderData{
		Template: tmpl,
		Resolve: func(d descriptor.Descriptor) (string, error) {
			resolved = append(resolved, d)
			return "[" + descriptor.HeaderFrom(d.Props).Content + "]", nil
		},
	}

	entry, _ := Default().Lookup(descriptor.TagCard)
	var buf bytes.Buffer
	err := entry.Renderer(&buf, descriptor.Props{
		"children": []any{
			map[string]any{"type": "header", "props": map[string]any{"content": "Hi"}},
		},
	}, data)
	if err != nil {
		t.Fatalf("render card: %v", err)
	}

	if len(resolved) != 1 || resolved[0].Type != "header" {
		t.Fatalf("expected header resolved exactly once, got %+v", resolved)
	}
	payload := tmpl.data[0].(map[string]any)["widget"].(map[string]any)
	if diff := cmp.Diff([]string{"[Hi]"}, payload["children"]); diff != "" {
		t.Fatalf("children mismatch (-want +got):\n%s", diff)
	}
	if tmpl.calls[0] != "templates/widgets/card.tmpl" {
		t.Fatalf("unexpected template %q", tmpl.calls[0])
	}
}

func TestCardWithoutChildrenRendersEmptyContainer(t *testing.T) {
	tmpl := &recordingTemplate{}
	entry, _ := Default().Lookup(descriptor.TagCard)

	var buf bytes.Buffer
	if err := entry.Renderer(&buf, nil, RenderData{Template: tmpl}); err != nil {
		t.Fatalf("render: %v", err)
	}
	payload := tmpl.data[0].(map[string]any)["widget"].(map[string]any)
	if children := payload["children"].([]string); len(children) != 0 {
		t.Fatalf("expected no children, got %v", children)
	}
}

func TestCarouselUsesIDGenerator(t *testing.T) {
	tmpl := &recordingTemplate{}
	entry, _ := Default().Lookup(descriptor.TagCarousel)

	var buf bytes.Buffer
	err := entry.Renderer(&buf, descriptor.Props{"children": []any{
		map[string]any{"type": "item", "props": map[string]any{"id": 1}},
		map[string]any{"type": "item", "props": map[string]any{"id": 2}},
	}}, RenderData{
		Template: tmpl,
		Resolve:  func(d descriptor.Descriptor) (string, error) { return d.Type, nil },
		NewID:    func() string { return "fixed" },
	})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	payload := tmpl.data[0].(map[string]any)["widget"].(map[string]any)
	if payload["id"] != "genui-carousel-fixed" {
		t.Fatalf("unexpected carousel id %v", payload["id"])
	}
	if slides := payload["slides"].([]string); len(slides) != 2 {
		t.Fatalf("expected 2 slides, got %v", slides)
	}
}

func TestRendererUsesThemePartial(t *testing.T) {
	tmpl := &recordingTemplate{}
	entry, _ := Default().Lookup(descriptor.TagHeader)

	var buf bytes.Buffer
	err := entry.Renderer(&buf, descriptor.Props{"content": "x"}, RenderData{
		Template: tmpl,
		Partials: map[string]string{"widgets.header": "themes/acme/header.tmpl"},
	})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if tmpl.calls[0] != "themes/acme/header.tmpl" {
		t.Fatalf("theme partial not applied, got %q", tmpl.calls[0])
	}
	if buf.String() != "<themes/acme/header.tmpl>" {
		t.Fatalf("unexpected output %q", buf.String())
	}
}

func TestRendererRequiresTemplate(t *testing.T) {
	entry, _ := Default().Lookup(descriptor.TagHeader)
	err := entry.Renderer(&bytes.Buffer{}, nil, RenderData{})
	if err == nil || !strings.Contains(err.Error(), "template renderer not configured") {
		t.Fatalf("expected missing template error, got %v", err)
	}
}

func TestTableViewTruncatesPositionally(t *testing.T) {
	view := buildTableView(descriptor.Table{
		Columns: []descriptor.Column{{Title: "A"}, {Title: "B"}},
		Rows: []descriptor.Row{
			{Values: []string{"1", "2", "3"}},
			{Values: []string{"only"}},
		},
	})
	want := tableView{
		Columns: []string{"A", "B"},
		Rows:    [][]string{{"1", "2"}, {"only", ""}},
	}
	if diff := cmp.Diff(want, view); diff != "" {
		t.Fatalf("table view mismatch (-want +got):\n%s", diff)
	}
}

func TestItemViewPriceAndImage(t *testing.T) {
	priced := 19.999
	view := buildItemView(descriptor.Item{
		ID:           "sku-1",
		Name:         "Mug",
		PrimaryImage: "mug.png",
		Description:  `<b>Sturdy</b><script>alert(1)</script>`,
		Price:        &priced,
	}, RenderData{StaticPrefix: "/assets/img/"})

	if !view.HasPrice || view.Price != "$20.00" {
		t.Fatalf("expected $20.00, got %q (has=%v)", view.Price, view.HasPrice)
	}
	if !view.HasImage || view.ImageURL != "/assets/img/mug.png" {
		t.Fatalf("unexpected image %q (has=%v)", view.ImageURL, view.HasImage)
	}
	if strings.Contains(view.Description, "script") || !strings.Contains(view.Description, "<b>Sturdy</b>") {
		t.Fatalf("unexpected sanitised description %q", view.Description)
	}
	if view.ActionURL != actions.DefaultAddToCartPath {
		t.Fatalf("unexpected action url %q", view.ActionURL)
	}

	unpriced := buildItemView(descriptor.ItemFrom(descriptor.Props{"price": "abc", "primary_image": "doc.pdf"}), RenderData{})
	if unpriced.HasPrice || unpriced.Price != "" {
		t.Fatalf("expected no price, got %q", unpriced.Price)
	}
	if unpriced.HasImage {
		t.Fatalf("expected placeholder for unsupported extension")
	}
}

func TestImageURL(t *testing.T) {
	data := RenderData{}
	cases := []struct {
		name string
		url  string
		ok   bool
	}{
		{"photo.jpeg", "/static/images/photo.jpeg", true},
		{"a/b.webp", "/static/images/a/b.webp", true},
		{"../../etc/x.gif", "/static/images/etc/x.gif", true},
		{"noext", "", false},
		{"", "", false},
		{"clip.mp4", "", false},
		{"PHOTO.JPG", "", false},
	}
	for _, tc := range cases {
		url, ok := data.ImageURL(tc.name)
		if url != tc.url || ok != tc.ok {
			t.Errorf("ImageURL(%q) = %q, %v; want %q, %v", tc.name, url, ok, tc.url, tc.ok)
		}
	}
}

func TestChartViewGeometry(t *testing.T) {
	value := "10"
	half := "5"
	view := buildChartView(chart.Data([]chart.Row{
		{Label: "A", Value: &value},
		{Label: "B", Value: &half},
		{Label: "C"},
	}))

	if len(view.Bars) != 3 {
		t.Fatalf("expected 3 bars, got %d", len(view.Bars))
	}
	if view.Bars[0].Height != "260.00" || view.Bars[1].Height != "130.00" || view.Bars[2].Height != "0.00" {
		t.Fatalf("unexpected heights: %s %s %s", view.Bars[0].Height, view.Bars[1].Height, view.Bars[2].Height)
	}
	if view.Bars[0].Fill != chart.Fill || view.Bars[0].Key != "a" {
		t.Fatalf("unexpected bar styling: %+v", view.Bars[0])
	}
	if view.MaxLabel != "10" {
		t.Fatalf("unexpected max label %q", view.MaxLabel)
	}
}

func TestOrderViewDefaults(t *testing.T) {
	view := buildOrderView(descriptor.OrderFrom(descriptor.Props{
		"id":       "o-1",
		"total":    "12.5",
		"products": []any{map[string]any{"quantity": 3}},
	}), RenderData{Actions: actions.URLs{SelectOrder: "/pick"}})

	if view.Total != "$12.50" || !view.HasTotal {
		t.Fatalf("unexpected total %q", view.Total)
	}
	if len(view.Products) != 1 || view.Products[0].Quantity != "3" || view.Products[0].HasImage {
		t.Fatalf("unexpected products %+v", view.Products)
	}
	if view.ActionURL != "/pick" {
		t.Fatalf("unexpected action url %q", view.ActionURL)
	}
}

func TestBarChartRendersFromColumns(t *testing.T) {
	entry, _ := Default().Lookup(descriptor.TagBarChart)

	tmpl := &recordingTemplate{}
	var buf bytes.Buffer
	err := entry.Renderer(&buf, descriptor.Props{
		"columns": []any{
			map[string]any{"label": "A", "value": "10"},
			map[string]any{"label": "B", "value": "5"},
		},
	}, RenderData{Template: tmpl})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if len(tmpl.data) != 1 {
		t.Fatalf("expected one template call, got %d", len(tmpl.data))
	}
	view := tmpl.data[0].(map[string]any)["widget"].(chartView)
	if len(view.Bars) != 2 || view.Bars[0].Label != "A" || view.Bars[1].Value != "5" {
		t.Fatalf("unexpected bars %+v", view.Bars)
	}
}

func TestBarChartWithoutColumnsRendersNothing(t *testing.T) {
	entry, _ := Default().Lookup(descriptor.TagBarChart)

	for _, props := range []descriptor.Props{nil, {"columns": nil}, {"title": "Sales"}} {
		tmpl := &recordingTemplate{}
		var buf bytes.Buffer
		if err := entry.Renderer(&buf, props, RenderData{Template: tmpl}); err != nil {
			t.Fatalf("render: %v", err)
		}
		if buf.Len() != 0 || len(tmpl.calls) != 0 {
			t.Fatalf("expected no output for %v, got %q", props, buf.String())
		}
	}
}

func TestChartViewBlanksNonFiniteValues(t *testing.T) {
	value := "n/a"
	view := buildChartView(chart.Data([]chart.Row{{Label: "Thursday", Value: &value}}))
	if len(view.Bars) != 1 || view.Bars[0].Value != "" || view.Bars[0].Height != "0.00" {
		t.Fatalf("unexpected bar %+v", view.Bars)
	}
}

func TestFormatNumber(t *testing.T) {
	cases := []struct {
		value float64
		want  string
	}{
		{12, "12"},
		{1430.5, "1430.5"},
		{math.NaN(), ""},
		{math.Inf(1), ""},
	}
	for _, tc := range cases {
		if got := FormatNumber(tc.value); got != tc.want {
			t.Errorf("FormatNumber(%v) = %q, want %q", tc.value, got, tc.want)
		}
	}
}

func TestOrderViewBlankQuantity(t *testing.T) {
	view := buildOrderView(descriptor.OrderFrom(descriptor.Props{
		"id":       "o-2",
		"products": []any{map[string]any{"item": map[string]any{"item_name": "Lamp"}}},
	}), RenderData{})

	if len(view.Products) != 1 || view.Products[0].Quantity != "" || view.Products[0].Name != "Lamp" {
		t.Fatalf("unexpected products %+v", view.Products)
	}
}
