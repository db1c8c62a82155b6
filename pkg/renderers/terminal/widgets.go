package terminal

import (
	"bytes"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/goliatone/go-genui/pkg/chart"
	"github.com/goliatone/go-genui/pkg/descriptor"
	"github.com/goliatone/go-genui/pkg/widgets"
)

// Styles is the palette used to draw widgets.
type Styles struct {
	Header  lipgloss.Style
	Label   lipgloss.Style
	Muted   lipgloss.Style
	Value   lipgloss.Style
	Price   lipgloss.Style
	Bar     lipgloss.Style
	Border  lipgloss.Style
	Heading lipgloss.Style
}

// DefaultStyles returns the built-in palette.
func DefaultStyles() Styles {
	return Styles{
		Header:  lipgloss.NewStyle().Foreground(lipgloss.Color("#cdd6f4")).Bold(true),
		Label:   lipgloss.NewStyle().Foreground(lipgloss.Color("#bac2de")),
		Muted:   lipgloss.NewStyle().Foreground(lipgloss.Color("#6c7086")),
		Value:   lipgloss.NewStyle().Foreground(lipgloss.Color("#cdd6f4")),
		Price:   lipgloss.NewStyle().Foreground(lipgloss.Color("#a6e3a1")).Bold(true),
		Bar:     lipgloss.NewStyle().Foreground(lipgloss.Color(chart.Fill)),
		Border:  lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("#6c7086")).Padding(0, 1),
		Heading: lipgloss.NewStyle().Foreground(lipgloss.Color("#89b4fa")).Bold(true),
	}
}

func entries(s Styles, barWidth int) []widgets.Entry {
	return []widgets.Entry{
		{Name: descriptor.TagHeader, Renderer: s.header},
		{Name: descriptor.TagBarChart, Renderer: s.barChart(barWidth)},
		{Name: descriptor.TagTable, Renderer: s.table},
		{Name: descriptor.TagItem, Renderer: s.item},
		{Name: descriptor.TagOrder, Renderer: s.order},
		{Name: descriptor.TagCard, Renderer: s.card},
		{Name: descriptor.TagCarousel, Renderer: s.carousel},
	}
}

func (s Styles) header(buf *bytes.Buffer, props descriptor.Props, _ widgets.RenderData) error {
	buf.WriteString(s.Header.Render(descriptor.HeaderFrom(props).Content))
	return nil
}

func (s Styles) barChart(barWidth int) widgets.Renderer {
	return func(buf *bytes.Buffer, props descriptor.Props, _ widgets.RenderData) error {
		rows, ok := descriptor.ChartRowsFrom(props)
		if !ok {
			return nil
		}
		data := chart.Data(rows)
		if len(data) == 0 {
			buf.WriteString(s.Muted.Render("(no data)"))
			return nil
		}

		peak := 0.0
		labelWidth := 0
		for _, datum := range data {
			if !math.IsNaN(datum.Value) && !math.IsInf(datum.Value, 0) && datum.Value > peak {
				peak = datum.Value
			}
			labelWidth = max(labelWidth, lipgloss.Width(datum.Label))
		}

		lines := make([]string, 0, len(data))
		for _, datum := range data {
			filled := barCells(datum.Value, peak, barWidth)
			line := s.Label.Render(padRight(datum.Label, labelWidth)) + " " +
				s.Bar.Render(strings.Repeat("█", filled)) +
				s.Muted.Render(strings.Repeat("░", barWidth-filled))
			if value := widgets.FormatNumber(datum.Value); value != "" {
				line += " " + s.Value.Render(value)
			}
			lines = append(lines, line)
		}
		buf.WriteString(strings.Join(lines, "\n"))
		return nil
	}
}

// barCells mirrors the HTML chart: NaN and non-positive values draw no bar
// and the largest finite value fills the full width.
func barCells(value, peak float64, width int) int {
	if math.IsNaN(value) || value <= 0 || peak <= 0 {
		return 0
	}
	if math.IsInf(value, 1) || value >= peak {
		return width
	}
	filled := int(math.Round(float64(width) * value / peak))
	if filled < 1 {
		filled = 1
	}
	return min(filled, width)
}

func (s Styles) table(buf *bytes.Buffer, props descriptor.Props, _ widgets.RenderData) error {
	table := descriptor.TableFrom(props)
	if len(table.Columns) == 0 {
		return nil
	}

	widths := make([]int, len(table.Columns))
	titles := make([]string, len(table.Columns))
	for idx, column := range table.Columns {
		titles[idx] = column.Title
		widths[idx] = lipgloss.Width(column.Title)
	}
	rows := make([][]string, 0, len(table.Rows))
	for _, row := range table.Rows {
		cells := make([]string, len(table.Columns))
		copy(cells, row.Values)
		for idx, cell := range cells {
			widths[idx] = max(widths[idx], lipgloss.Width(cell))
		}
		rows = append(rows, cells)
	}

	lines := []string{s.Heading.Render(joinCells(titles, widths))}
	rules := make([]string, len(widths))
	for idx, width := range widths {
		rules[idx] = strings.Repeat("─", width)
	}
	lines = append(lines, s.Muted.Render(strings.Join(rules, "  ")))
	for _, cells := range rows {
		lines = append(lines, s.Value.Render(joinCells(cells, widths)))
	}
	buf.WriteString(strings.Join(lines, "\n"))
	return nil
}

func (s Styles) item(buf *bytes.Buffer, props descriptor.Props, data widgets.RenderData) error {
	item := descriptor.ItemFrom(props)

	lines := []string{s.Header.Render(item.Name)}
	lines = append(lines, s.Muted.Render(imageLine(item.PrimaryImage, data)))
	if text := widgets.PlainDescription(item.Description); text != "" {
		lines = append(lines, s.Value.Render(text))
	}
	if item.Price != nil {
		lines = append(lines, s.Price.Render(widgets.FormatMoney(*item.Price)))
	}
	lines = append(lines, s.Muted.Render("add to cart: POST "+data.Actions.WithDefaults().AddToCart+" id="+item.ID))
	buf.WriteString(strings.Join(lines, "\n"))
	return nil
}

func (s Styles) order(buf *bytes.Buffer, props descriptor.Props, data widgets.RenderData) error {
	order := descriptor.OrderFrom(props)

	heading := []string{"Order " + order.ID}
	for _, part := range []string{order.Status, order.Date} {
		if part != "" {
			heading = append(heading, part)
		}
	}
	lines := []string{s.Header.Render(strings.Join(heading, " · "))}

	for _, product := range order.Products {
		line := "  × " + product.Item.Name
		if product.Quantity != nil {
			line = "  " + widgets.FormatNumber(*product.Quantity) + " × " + product.Item.Name
		}
		if product.Item.Price != nil {
			line += "  " + s.Price.Render(widgets.FormatMoney(*product.Item.Price))
		}
		lines = append(lines, s.Value.Render(line))
	}
	if order.Total != nil {
		lines = append(lines, s.Label.Render("Total:")+" "+s.Price.Render(widgets.FormatMoney(*order.Total)))
	}
	lines = append(lines, s.Muted.Render("select order: POST "+data.Actions.WithDefaults().SelectOrder+" id="+order.ID))
	buf.WriteString(strings.Join(lines, "\n"))
	return nil
}

func (s Styles) card(buf *bytes.Buffer, props descriptor.Props, data widgets.RenderData) error {
	children, err := resolveChildren(props, data)
	if err != nil {
		return err
	}
	buf.WriteString(s.Border.Render(strings.Join(children, "\n\n")))
	return nil
}

// carousel lays slides out side by side, each in its own frame.
func (s Styles) carousel(buf *bytes.Buffer, props descriptor.Props, data widgets.RenderData) error {
	slides, err := resolveChildren(props, data)
	if err != nil {
		return err
	}
	framed := make([]string, 0, len(slides)*2)
	for idx, slide := range slides {
		if idx > 0 {
			framed = append(framed, " ")
		}
		framed = append(framed, s.Border.Render(slide))
	}
	buf.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, framed...))
	return nil
}

func resolveChildren(props descriptor.Props, data widgets.RenderData) ([]string, error) {
	children := descriptor.Children(props)
	out := make([]string, 0, len(children))
	if data.Resolve == nil {
		return out, nil
	}
	for _, child := range children {
		rendered, err := data.Resolve(child)
		if err != nil {
			return nil, err
		}
		if rendered = strings.TrimRight(rendered, "\n"); rendered != "" {
			out = append(out, rendered)
		}
	}
	return out, nil
}

func imageLine(filename string, data widgets.RenderData) string {
	if url, ok := data.ImageURL(filename); ok {
		return "[image " + url + "]"
	}
	return "[no image]"
}

func joinCells(cells []string, widths []int) string {
	padded := make([]string, len(cells))
	for idx, cell := range cells {
		padded[idx] = padRight(cell, widths[idx])
	}
	return strings.TrimRight(strings.Join(padded, "  "), " ")
}

func padRight(s string, width int) string {
	if gap := width - lipgloss.Width(s); gap > 0 {
		return s + strings.Repeat(" ", gap)
	}
	return s
}
