package widgets

import (
	"bytes"
	"fmt"
	"sync"

	"github.com/goliatone/go-genui/pkg/chart"
	"github.com/goliatone/go-genui/pkg/descriptor"
)

const templatePrefix = "templates/widgets/"

// Stylesheet asset names contributed by the built-in widgets.
const (
	StylesheetBase     = "genui-base.css"
	StylesheetChart    = "genui-chart.css"
	StylesheetCarousel = "genui-carousel.css"
	StylesheetCommerce = "genui-commerce.css"
)

var (
	defaultOnce  sync.Once
	defaultTable *Table
)

// Default returns the process-wide HTML dispatch table for the seven built-in
// tags. It is built on first use and never modified.
func Default() *Table {
	defaultOnce.Do(func() {
		defaultTable = MustNew(DefaultEntries()...)
	})
	return defaultTable
}

// DefaultEntries returns fresh copies of the built-in HTML entries so callers
// can assemble their own tables around them.
func DefaultEntries() []Entry {
	return []Entry{
		{
			Name:        descriptor.TagHeader,
			Renderer:    templateWidget("widgets.header", "header.tmpl", headerPayload),
			Stylesheets: []string{StylesheetBase},
		},
		{
			Name:        descriptor.TagBarChart,
			Renderer:    templateWidget("widgets.bar_chart", "bar_chart.tmpl", chartPayload),
			Stylesheets: []string{StylesheetBase, StylesheetChart},
		},
		{
			Name:        descriptor.TagTable,
			Renderer:    templateWidget("widgets.table", "table.tmpl", tablePayload),
			Stylesheets: []string{StylesheetBase},
		},
		{
			Name:        descriptor.TagItem,
			Renderer:    templateWidget("widgets.item", "item.tmpl", itemPayload),
			Stylesheets: []string{StylesheetBase, StylesheetCommerce},
		},
		{
			Name:        descriptor.TagOrder,
			Renderer:    templateWidget("widgets.order", "order.tmpl", orderPayload),
			Stylesheets: []string{StylesheetBase, StylesheetCommerce},
		},
		{
			Name:        descriptor.TagCard,
			Renderer:    templateWidget("widgets.card", "card.tmpl", cardPayload),
			Stylesheets: []string{StylesheetBase},
		},
		{
			Name:        descriptor.TagCarousel,
			Renderer:    templateWidget("widgets.carousel", "carousel.tmpl", carouselPayload),
			Stylesheets: []string{StylesheetBase, StylesheetCarousel},
		},
	}
}

// payloadFunc builds a template view. A nil view renders nothing.
type payloadFunc func(props descriptor.Props, data RenderData) (any, error)

// templateWidget renders the view produced by payload with the template at
// key, falling back to the built-in template when no theme partial overrides
// it.
func templateWidget(key, file string, payload payloadFunc) Renderer {
	fallback := templatePrefix + file
	return func(buf *bytes.Buffer, props descriptor.Props, data RenderData) error {
		if data.Template == nil {
			return fmt.Errorf("widgets: template renderer not configured for %q", key)
		}
		view, err := payload(props, data)
		if err != nil {
			return err
		}
		if view == nil {
			return nil
		}

		name := data.templateFor(key, fallback)
		rendered, err := data.Template.RenderTemplate(name, map[string]any{
			"widget": view,
			"config": data.Config,
		})
		if err != nil {
			return fmt.Errorf("widgets: render template %q: %w", name, err)
		}
		buf.WriteString(rendered)
		return nil
	}
}

func headerPayload(props descriptor.Props, _ RenderData) (any, error) {
	return headerView{Content: descriptor.HeaderFrom(props).Content}, nil
}

// chartPayload yields no view when the descriptor carries no rows list.
func chartPayload(props descriptor.Props, _ RenderData) (any, error) {
	rows, ok := descriptor.ChartRowsFrom(props)
	if !ok {
		return nil, nil
	}
	return buildChartView(chart.Data(rows)), nil
}

func tablePayload(props descriptor.Props, _ RenderData) (any, error) {
	return buildTableView(descriptor.TableFrom(props)), nil
}

func itemPayload(props descriptor.Props, data RenderData) (any, error) {
	return buildItemView(descriptor.ItemFrom(props), data), nil
}

func orderPayload(props descriptor.Props, data RenderData) (any, error) {
	return buildOrderView(descriptor.OrderFrom(props), data), nil
}

func cardPayload(props descriptor.Props, data RenderData) (any, error) {
	children, err := data.resolveChildren(props)
	if err != nil {
		return nil, err
	}
	return map[string]any{"children": children}, nil
}

func carouselPayload(props descriptor.Props, data RenderData) (any, error) {
	slides, err := data.resolveChildren(props)
	if err != nil {
		return nil, err
	}
	return map[string]any{
		"id":     data.newID("genui-carousel-"),
		"slides": slides,
	}, nil
}

// Partials returns the built-in template path for every partial key, in the
// "widgets.<tag>" form theme manifests use to override them.
func Partials() map[string]string {
	tags := descriptor.Tags()
	out := make(map[string]string, len(tags))
	for _, tag := range tags {
		out["widgets."+tag] = templatePrefix + tag + ".tmpl"
	}
	return out
}
