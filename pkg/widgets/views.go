package widgets

import (
	"fmt"
	"math"
	"strconv"

	"github.com/goliatone/go-genui/pkg/chart"
	"github.com/goliatone/go-genui/pkg/descriptor"
)

// Bar chart dimensions in SVG user units.
const (
	ChartWidth  = 600
	ChartHeight = 300

	chartPadTop    = 10
	chartPadRight  = 10
	chartPadBottom = 30
	chartPadLeft   = 48
	chartBarRatio  = 0.7
)

// FormatMoney renders an amount with two decimals and a dollar sign.
func FormatMoney(amount float64) string {
	return fmt.Sprintf("$%.2f", amount)
}

// FormatNumber renders a number without trailing zeros. NaN and infinite
// values render as an empty string.
func FormatNumber(value float64) string {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return ""
	}
	return strconv.FormatFloat(value, 'f', -1, 64)
}

type headerView struct {
	Content string `json:"content"`
}

// View models carry numbers pre-formatted as strings; templates see them
// after a JSON round trip and would otherwise print floats verbatim.
type barView struct {
	ID     string `json:"id"`
	Key    string `json:"key"`
	Label  string `json:"label"`
	Value  string `json:"value"`
	Fill   string `json:"fill"`
	X      string `json:"x"`
	Y      string `json:"y"`
	Width  string `json:"width"`
	Height string `json:"height"`
	LabelX string `json:"label_x"`
	LabelY string `json:"label_y"`
}

type chartView struct {
	Width     string    `json:"width"`
	Height    string    `json:"height"`
	PlotLeft  string    `json:"plot_left"`
	PlotRight string    `json:"plot_right"`
	Baseline  string    `json:"baseline"`
	PlotTop   string    `json:"plot_top"`
	MaxLabel  string    `json:"max_label"`
	Bars      []barView `json:"bars"`
}

// barHeight treats NaN and negative values as empty bars.
func barHeight(value, peak, plot float64) float64 {
	if math.IsNaN(value) || value <= 0 || peak <= 0 {
		return 0
	}
	if math.IsInf(value, 1) {
		return plot
	}
	return value / peak * plot
}

func coord(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

func buildChartView(data []chart.Datum) chartView {
	cfg := chart.ConfigFor(data)

	plotWidth := float64(ChartWidth - chartPadLeft - chartPadRight)
	plotHeight := float64(ChartHeight - chartPadTop - chartPadBottom)
	baseline := float64(ChartHeight - chartPadBottom)

	peak := 0.0
	for _, datum := range data {
		if !math.IsNaN(datum.Value) && !math.IsInf(datum.Value, 0) && datum.Value > peak {
			peak = datum.Value
		}
	}

	view := chartView{
		Width:     strconv.Itoa(ChartWidth),
		Height:    strconv.Itoa(ChartHeight),
		PlotLeft:  coord(chartPadLeft),
		PlotRight: coord(ChartWidth - chartPadRight),
		Baseline:  coord(baseline),
		PlotTop:   coord(chartPadTop),
		MaxLabel:  FormatNumber(peak),
		Bars:      make([]barView, 0, len(data)),
	}
	if len(data) == 0 {
		return view
	}

	slot := plotWidth / float64(len(data))
	width := slot * chartBarRatio
	for _, datum := range data {
		key := chart.FormatKey(datum.Label)
		fill := datum.Fill
		if series, ok := cfg[key]; ok && series.Color != "" {
			fill = series.Color
		}
		height := barHeight(datum.Value, peak, plotHeight)
		x := chartPadLeft + float64(datum.ID)*slot + (slot-width)/2
		view.Bars = append(view.Bars, barView{
			ID:     strconv.Itoa(datum.ID),
			Key:    key,
			Label:  datum.Label,
			Value:  FormatNumber(datum.Value),
			Fill:   fill,
			X:      coord(x),
			Y:      coord(baseline - height),
			Width:  coord(width),
			Height: coord(height),
			LabelX: coord(x + width/2),
			LabelY: coord(baseline + 18),
		})
	}
	return view
}

type tableView struct {
	Columns []string   `json:"columns"`
	Rows    [][]string `json:"rows"`
}

// buildTableView aligns row values to columns by position: extra values are
// dropped and missing ones render blank.
func buildTableView(table descriptor.Table) tableView {
	view := tableView{
		Columns: make([]string, len(table.Columns)),
		Rows:    make([][]string, 0, len(table.Rows)),
	}
	for idx, column := range table.Columns {
		view.Columns[idx] = column.Title
	}
	for _, row := range table.Rows {
		cells := make([]string, len(table.Columns))
		copy(cells, row.Values)
		view.Rows = append(view.Rows, cells)
	}
	return view
}

type itemView struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	ImageURL    string `json:"image_url"`
	HasImage    bool   `json:"has_image"`
	Price       string `json:"price"`
	HasPrice    bool   `json:"has_price"`
	ActionURL   string `json:"action_url"`
}

func buildItemView(item descriptor.Item, data RenderData) itemView {
	view := itemView{
		ID:          item.ID,
		Name:        item.Name,
		Description: SanitizeDescription(item.Description),
		ActionURL:   data.Actions.WithDefaults().AddToCart,
	}
	view.ImageURL, view.HasImage = data.ImageURL(item.PrimaryImage)
	if item.Price != nil {
		view.Price, view.HasPrice = FormatMoney(*item.Price), true
	}
	return view
}

type lineView struct {
	Name     string `json:"name"`
	ImageURL string `json:"image_url"`
	HasImage bool   `json:"has_image"`
	Quantity string `json:"quantity"`
	Price    string `json:"price"`
	HasPrice bool   `json:"has_price"`
}

type orderView struct {
	ID        string     `json:"id"`
	Status    string     `json:"status"`
	Date      string     `json:"date"`
	Total     string     `json:"total"`
	HasTotal  bool       `json:"has_total"`
	Products  []lineView `json:"products"`
	ActionURL string     `json:"action_url"`
}

func buildOrderView(order descriptor.Order, data RenderData) orderView {
	view := orderView{
		ID:        order.ID,
		Status:    order.Status,
		Date:      order.Date,
		Products:  make([]lineView, 0, len(order.Products)),
		ActionURL: data.Actions.WithDefaults().SelectOrder,
	}
	if order.Total != nil {
		view.Total, view.HasTotal = FormatMoney(*order.Total), true
	}
	for _, product := range order.Products {
		line := lineView{Name: product.Item.Name}
		if product.Quantity != nil {
			line.Quantity = FormatNumber(*product.Quantity)
		}
		line.ImageURL, line.HasImage = data.ImageURL(product.Item.PrimaryImage)
		if product.Item.Price != nil {
			line.Price, line.HasPrice = FormatMoney(*product.Item.Price), true
		}
		view.Products = append(view.Products, line)
	}
	return view
}
