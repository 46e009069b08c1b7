// Package report prints pipeline results for the headless commands.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/olekukonko/tablewriter"

	"github.com/five82/binder/internal/browse"
	"github.com/five82/binder/internal/collection"
)

// Format selects the output encoding.
type Format string

const (
	FormatTable Format = "table"
	FormatJSON  Format = "json"
	FormatYAML  Format = "yaml"
)

// ParseFormat converts s to a Format. Empty means table.
func ParseFormat(s string) (Format, error) {
	format := Format(strings.ToLower(strings.TrimSpace(s)))
	switch format {
	case "":
		return FormatTable, nil
	case FormatTable, FormatJSON, FormatYAML:
		return format, nil
	}
	return "", fmt.Errorf("unknown output format %q (want table, json or yaml)", s)
}

// CardRow is one card as printed by list.
type CardRow struct {
	ID       int64    `json:"id" yaml:"id"`
	Name     string   `json:"name" yaml:"name"`
	Type     string   `json:"type" yaml:"type"`
	Rarity   string   `json:"rarity" yaml:"rarity"`
	Quantity int      `json:"quantity" yaml:"quantity"`
	Cost     float64  `json:"cmc" yaml:"cmc"`
	Colors   []string `json:"colors" yaml:"colors"`
	Set      string   `json:"set,omitempty" yaml:"set,omitempty"`
}

// Page is the list output.
type Page struct {
	Page       int       `json:"page" yaml:"page"`
	TotalPages int       `json:"total_pages" yaml:"total_pages"`
	Matched    int       `json:"matched" yaml:"matched"`
	Cards      []CardRow `json:"cards" yaml:"cards"`
}

// Bucket is one distribution entry.
type Bucket struct {
	Label string `json:"label" yaml:"label"`
	Count int    `json:"count" yaml:"count"`
}

// Summary is the stats output.
type Summary struct {
	TotalQuantity int      `json:"total_quantity" yaml:"total_quantity"`
	UniqueCount   int      `json:"unique_count" yaml:"unique_count"`
	AvgCost       float64  `json:"avg_cost" yaml:"avg_cost"`
	Grouping      string   `json:"grouping" yaml:"grouping"`
	Distribution  []Bucket `json:"distribution" yaml:"distribution"`
}

// NewPage converts a pipeline result into list output.
func NewPage(res browse.Result) Page {
	rows := make([]CardRow, 0, len(res.Page))
	for _, c := range res.Page {
		rows = append(rows, cardRow(c))
	}
	return Page{
		Page:       res.PageNumber,
		TotalPages: res.TotalPages,
		Matched:    len(res.Filtered),
		Cards:      rows,
	}
}

// NewSummary converts a pipeline result into stats output.
func NewSummary(res browse.Result, by browse.Grouping) Summary {
	buckets := make([]Bucket, 0, len(res.Distribution))
	for _, b := range res.Distribution {
		buckets = append(buckets, Bucket{Label: b.Label, Count: b.Count})
	}
	return Summary{
		TotalQuantity: res.Stats.TotalQuantity,
		UniqueCount:   res.Stats.UniqueCount,
		AvgCost:       res.Stats.AvgCost,
		Grouping:      by.String(),
		Distribution:  buckets,
	}
}

func cardRow(c collection.Card) CardRow {
	colors := c.Colors
	if colors == nil {
		colors = []string{}
	}
	return CardRow{
		ID:       c.ID,
		Name:     c.Name,
		Type:     c.Type,
		Rarity:   c.Rarity,
		Quantity: c.Quantity,
		Cost:     c.Cost,
		Colors:   colors,
		Set:      c.Set,
	}
}

// WritePage prints one page of cards followed by the page indicator.
func WritePage(w io.Writer, format Format, res browse.Result) error {
	page := NewPage(res)
	switch format {
	case FormatJSON:
		return writeJSON(w, page)
	case FormatYAML:
		return writeYAML(w, page)
	}

	rows := make([][]string, 0, len(page.Cards))
	for _, c := range page.Cards {
		colors := strings.Join(c.Colors, "/")
		if colors == "" {
			colors = "colorless"
		}
		rows = append(rows, []string{
			strconv.FormatInt(c.ID, 10),
			c.Name,
			c.Type,
			c.Rarity,
			strconv.Itoa(c.Quantity),
			formatCost(c.Cost),
			colors,
		})
	}
	if len(rows) == 0 {
		if _, err := fmt.Fprintln(w, "No cards match these filters."); err != nil {
			return err
		}
	} else if err := writeTable(w, []string{"ID", "Name", "Type", "Rarity", "Qty", "Cost", "Colors"}, rows); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "Page %d of %d (%d matching)\n", page.Page, page.TotalPages, page.Matched)
	return err
}

// WriteStats prints the stats display and the distribution.
func WriteStats(w io.Writer, format Format, res browse.Result, by browse.Grouping) error {
	summary := NewSummary(res, by)
	switch format {
	case FormatJSON:
		return writeJSON(w, summary)
	case FormatYAML:
		return writeYAML(w, summary)
	}

	if err := writeTable(w, []string{"Metric", "Value"}, [][]string{
		{"Total cards", strconv.Itoa(summary.TotalQuantity)},
		{"Unique cards", strconv.Itoa(summary.UniqueCount)},
		{"Average cost", strconv.FormatFloat(summary.AvgCost, 'f', 2, 64)},
	}); err != nil {
		return err
	}
	if len(summary.Distribution) == 0 {
		return nil
	}

	rows := make([][]string, 0, len(summary.Distribution))
	for _, b := range summary.Distribution {
		rows = append(rows, []string{b.Label, strconv.Itoa(b.Count)})
	}
	return writeTable(w, []string{summary.Grouping, "Count"}, rows)
}

func formatCost(cost float64) string {
	return strconv.FormatFloat(cost, 'f', -1, 64)
}

func writeTable(w io.Writer, headers []string, rows [][]string) error {
	table := tablewriter.NewTable(w)

	header := make([]any, len(headers))
	for i, h := range headers {
		header[i] = h
	}
	table.Header(header...)

	for _, row := range rows {
		cells := make([]any, len(row))
		for i, cell := range row {
			cells[i] = cell
		}
		if err := table.Append(cells...); err != nil {
			return err
		}
	}
	return table.Render()
}

func writeJSON(w io.Writer, v any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}

func writeYAML(w io.Writer, v any) error {
	data, err := yaml.MarshalWithOptions(v,
		yaml.Indent(2),
		yaml.IndentSequence(false),
	)
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}
