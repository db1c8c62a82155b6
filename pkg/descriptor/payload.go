package descriptor

import (
	"github.com/goliatone/go-genui/pkg/chart"
)

// Header is the payload of the header widget.
type Header struct {
	Content string
}

// Column describes a table column. Key is informational; cells are matched to
// columns by position.
type Column struct {
	Key   string
	Title string
}

// Row holds the cell values of one table row.
type Row struct {
	Values []string
}

// Table is the payload of the table widget.
type Table struct {
	Columns []Column
	Rows    []Row
}

// Item is a catalog entry.
type Item struct {
	ID           string
	Name         string
	PrimaryImage string
	Description  string
	// Price is nil when the payload carries no finite numeric price.
	Price *float64
}

// Product is one order line.
type Product struct {
	Item Item
	// Quantity is nil when the line carries no finite numeric quantity.
	Quantity *float64
}

// Order is the payload of the order widget.
type Order struct {
	ID       string
	Total    *float64
	Date     string
	Status   string
	Products []Product
}

// HeaderFrom decodes a header payload.
func HeaderFrom(props Props) Header {
	return Header{Content: stringOf(props["content"])}
}

// ChartRowsFrom decodes the "columns" list of a bar chart into raw chart
// rows; "data" is accepted as an alias. The boolean is false when neither key
// carries a list, in which case the chart renders nothing. Numeric values are
// carried as text so the chart package applies a single parsing rule.
func ChartRowsFrom(props Props) ([]chart.Row, bool) {
	source, present := props["columns"]
	if source == nil {
		source, present = props["data"]
	}
	if !present || source == nil {
		return nil, false
	}
	list := asSlice(source)
	rows := make([]chart.Row, 0, len(list))
	for _, entry := range list {
		raw, ok := asMap(entry)
		if !ok {
			rows = append(rows, chart.Row{})
			continue
		}
		row := chart.Row{Label: stringOf(raw["label"])}
		if value, exists := raw["value"]; exists && value != nil {
			text := stringOf(value)
			row.Value = &text
		}
		rows = append(rows, row)
	}
	return rows, true
}

// TableFrom decodes a table payload.
func TableFrom(props Props) Table {
	var table Table
	for _, entry := range asSlice(props["columns"]) {
		raw, _ := asMap(entry)
		table.Columns = append(table.Columns, Column{
			Key:   stringOf(raw["key"]),
			Title: stringOf(raw["title"]),
		})
	}
	for _, entry := range asSlice(props["rows"]) {
		raw, _ := asMap(entry)
		values := asSlice(raw["values"])
		row := Row{Values: make([]string, 0, len(values))}
		for _, value := range values {
			row.Values = append(row.Values, stringOf(value))
		}
		table.Rows = append(table.Rows, row)
	}
	return table
}

// ItemFrom decodes a catalog item. The payload may carry the item fields
// directly or nest them under an "item" key.
func ItemFrom(props Props) Item {
	if nested, ok := asMap(props["item"]); ok {
		return itemFromMap(nested)
	}
	return itemFromMap(props)
}

func itemFromMap(raw map[string]any) Item {
	item := Item{
		ID:           stringOf(raw["id"]),
		Name:         stringOf(raw["item_name"]),
		PrimaryImage: stringOf(raw["primary_image"]),
		Description:  stringOf(raw["description"]),
	}
	if price, ok := finiteNumber(raw["price"]); ok {
		item.Price = &price
	}
	return item
}

// OrderFrom decodes an order payload. Products without an item still render
// with blank item fields.
func OrderFrom(props Props) Order {
	order := Order{
		ID:     stringOf(props["id"]),
		Date:   stringOf(props["date"]),
		Status: stringOf(props["status"]),
	}
	if total, ok := finiteNumber(props["total"]); ok {
		order.Total = &total
	}
	for _, entry := range asSlice(props["products"]) {
		raw, _ := asMap(entry)
		product := Product{}
		if nested, ok := asMap(raw["item"]); ok {
			product.Item = itemFromMap(nested)
		}
		if quantity, ok := finiteNumber(raw["quantity"]); ok {
			product.Quantity = &quantity
		}
		order.Products = append(order.Products, product)
	}
	return order
}
