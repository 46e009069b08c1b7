package report

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/goccy/go-yaml"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/five82/binder/internal/browse"
	"github.com/five82/binder/internal/collection"
)

func sampleResult(t *testing.T, page int) browse.Result {
	t.Helper()
	cards := []collection.Card{
		{ID: 1, Name: "Dragon Whelp", Type: "Creature - Dragon", Rarity: "common", Quantity: 2, Colors: []string{"red"}, Cost: 3},
		{ID: 2, Name: "Serra Angel", Type: "Creature - Angel", Rarity: "rare", Quantity: 1, Colors: []string{"white"}, Cost: 5},
		{ID: 3, Name: "Sol Ring", Type: "Artifact", Rarity: "uncommon", Quantity: 1, Cost: 1},
	}
	return browse.Run(cards, browse.Query{Page: page, PageSize: 2})
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in   string
		want Format
	}{
		{"", FormatTable},
		{"table", FormatTable},
		{" JSON ", FormatJSON},
		{"yaml", FormatYAML},
	}
	for _, tt := range tests {
		got, err := ParseFormat(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}

	_, err := ParseFormat("csv")
	require.Error(t, err)
}

func TestWritePage_Table(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WritePage(&buf, FormatTable, sampleResult(t, 1)))

	out := buf.String()
	assert.Contains(t, out, "Dragon Whelp")
	assert.Contains(t, out, "Serra Angel")
	assert.NotContains(t, out, "Sol Ring")
	assert.Contains(t, out, "Page 1 of 2 (3 matching)")
}

func TestWritePage_ColorlessAndFractionalCost(t *testing.T) {
	res := browse.Run([]collection.Card{
		{ID: 9, Name: "Little Girl", Rarity: "common", Quantity: 1, Cost: 0.5},
	}, browse.Query{Page: 1, PageSize: 5})

	var buf bytes.Buffer
	require.NoError(t, WritePage(&buf, FormatTable, res))
	assert.Contains(t, buf.String(), "colorless")
	assert.Contains(t, buf.String(), "0.5")
}

func TestWritePage_Empty(t *testing.T) {
	res := browse.Run(nil, browse.Query{Page: 4, PageSize: 2})

	var buf bytes.Buffer
	require.NoError(t, WritePage(&buf, FormatTable, res))
	assert.Contains(t, buf.String(), "No cards match these filters.")
	assert.Contains(t, buf.String(), "Page 1 of 1 (0 matching)")
}

func TestWritePage_JSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WritePage(&buf, FormatJSON, sampleResult(t, 2)))

	var page Page
	require.NoError(t, json.Unmarshal(buf.Bytes(), &page))
	assert.Equal(t, 2, page.Page)
	assert.Equal(t, 2, page.TotalPages)
	assert.Equal(t, 3, page.Matched)
	require.Len(t, page.Cards, 1)
	assert.Equal(t, "Sol Ring", page.Cards[0].Name)
	assert.Equal(t, []string{}, page.Cards[0].Colors)
}

func TestWritePage_YAML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WritePage(&buf, FormatYAML, sampleResult(t, 1)))

	var page Page
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &page))
	require.Len(t, page.Cards, 2)
	assert.Equal(t, int64(1), page.Cards[0].ID)
	assert.Equal(t, []string{"red"}, page.Cards[0].Colors)
}

func TestWriteStats_Table(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteStats(&buf, FormatTable, sampleResult(t, 1), browse.ByRarity))

	out := buf.String()
	assert.Contains(t, out, "3.00")
	assert.Contains(t, out, "uncommon")
}

func TestWriteStats_JSON(t *testing.T) {
	res := browse.Run(sampleResult(t, 1).Filtered, browse.Query{Page: 1, PageSize: 2, Grouping: browse.ByType})

	var buf bytes.Buffer
	require.NoError(t, WriteStats(&buf, FormatJSON, res, browse.ByType))

	var summary Summary
	require.NoError(t, json.Unmarshal(buf.Bytes(), &summary))
	assert.Equal(t, 4, summary.TotalQuantity)
	assert.Equal(t, 3, summary.UniqueCount)
	assert.InDelta(t, 3.0, summary.AvgCost, 1e-9)
	assert.Equal(t, "type", summary.Grouping)
	assert.Equal(t, []Bucket{{Label: "Creature", Count: 3}, {Label: "Artifact", Count: 1}}, summary.Distribution)
}
