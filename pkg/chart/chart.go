// Package chart shapes raw label/value rows into bar chart data and the
// per-label config keyed by a normalised identifier.
package chart

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

// Fill is the colour applied to every bar and config entry.
const Fill = "#000000"

// Row is a raw chart input row. A nil Value means the row carried no value.
type Row struct {
	Label string
	Value *string
}

// Datum is a shaped bar. ID is the position in the filtered sequence.
type Datum struct {
	ID    int     `json:"id"`
	Label string  `json:"label"`
	Value float64 `json:"value"`
	Fill  string  `json:"fill"`
}

// Series describes one config entry.
type Series struct {
	Label string `json:"label"`
	Color string `json:"color"`
}

// Config maps FormatKey(label) to its series description.
type Config map[string]Series

// FormatKey lowercases s and replaces every rune outside [a-zA-Z0-9] with an
// underscore. The result is only used as a lookup key.
func FormatKey(s string) string {
	lowered := strings.ToLower(s)
	var b strings.Builder
	b.Grow(len(lowered))
	for _, r := range lowered {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
			continue
		}
		b.WriteByte('_')
	}
	return b.String()
}

// Data drops rows without a label and shapes the rest in input order. Values
// are read with ParseLeadingFloat; an absent value becomes 0.
func Data(rows []Row) []Datum {
	filtered := make([]Row, 0, len(rows))
	for _, row := range rows {
		if row.Label == "" {
			continue
		}
		filtered = append(filtered, row)
	}

	out := make([]Datum, 0, len(filtered))
	for idx, row := range filtered {
		if row.Label == "" {
			panic(fmt.Sprintf("chart: row %d has no label after filtering", idx))
		}
		value := 0.0
		if row.Value != nil {
			value = ParseLeadingFloat(*row.Value)
		}
		out = append(out, Datum{
			ID:    idx,
			Label: row.Label,
			Value: value,
			Fill:  Fill,
		})
	}
	return out
}

// ConfigFor builds one entry per distinct key. Labels that normalise to the
// same key overwrite each other; the last one wins.
func ConfigFor(data []Datum) Config {
	cfg := make(Config, len(data))
	for _, datum := range data {
		cfg[FormatKey(datum.Label)] = Series{Label: datum.Label, Color: Fill}
	}
	return cfg
}

var leadingFloat = regexp.MustCompile(`^[+-]?(Infinity|[0-9]+(\.[0-9]*)?([eE][+-]?[0-9]+)?|\.[0-9]+([eE][+-]?[0-9]+)?)`)

// ParseLeadingFloat reads the longest decimal prefix of s after leading
// whitespace, so "12px" is 12. Input with no numeric prefix yields NaN.
func ParseLeadingFloat(s string) float64 {
	trimmed := strings.TrimLeft(s, " \t\n\r\v\f")
	match := leadingFloat.FindString(trimmed)
	if match == "" {
		return math.NaN()
	}
	switch strings.TrimLeft(match, "+-") {
	case "Infinity":
		if strings.HasPrefix(match, "-") {
			return math.Inf(-1)
		}
		return math.Inf(1)
	}
	// Out of range prefixes saturate to ±Inf, which ParseFloat returns with its error.
	value, _ := strconv.ParseFloat(match, 64)
	return value
}
