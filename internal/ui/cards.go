package ui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/five82/binder/internal/collection"
	"github.com/five82/binder/internal/render"
	"github.com/five82/binder/internal/state"
)

// tileKey identifies one rendered tile. Everything that changes a tile's
// text is part of the key, so a cached string never goes stale.
type tileKey struct {
	ID      int64
	Mode    state.ViewMode
	Marked  bool
	Focused bool
	Width   int
}

var colorKeys = []struct{ tag, letter string }{
	{"white", "W"},
	{"blue", "U"},
	{"black", "B"},
	{"red", "R"},
	{"green", "G"},
}

const compactCellWidth = 34

// renderCards renders the current page in the active view mode, or the
// loading, error or empty state.
func (m Model) renderCards(width int) string {
	switch {
	case m.snapshot.Unavailable():
		return m.renderError(width)
	case !m.snapshot.HasCards:
		return m.styles.MutedText.Render(" Loading collection...")
	case m.result.Empty():
		return m.renderEmpty()
	}

	switch m.view.Mode {
	case state.List:
		rows := make([]string, 0, len(m.nodes))
		for i, n := range m.nodes {
			rows = append(rows, m.tile(i, n, width))
		}
		return strings.Join(rows, "\n")
	case state.Compact:
		return m.layoutColumns(width, compactCellWidth)
	default:
		return m.layoutColumns(width, TileWidth)
	}
}

// layoutColumns flows tiles left to right, as many per row as fit.
func (m Model) layoutColumns(width, cell int) string {
	perRow := maxInt(1, width/cell)
	var rows []string
	for start := 0; start < len(m.nodes); start += perRow {
		end := start + perRow
		if end > len(m.nodes) {
			end = len(m.nodes)
		}
		row := make([]string, 0, end-start)
		for i := start; i < end; i++ {
			row = append(row, m.tile(i, m.nodes[i], cell))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, row...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

// tile returns the rendered text for the node at position i, building it at
// most once per key.
func (m Model) tile(i int, n render.Node, width int) string {
	k := tileKey{
		ID:      n.ID,
		Mode:    m.view.Mode,
		Marked:  m.view.IsMarked(n.ID),
		Focused: i == m.cursor,
		Width:   width,
	}
	return m.tiles.GetOrCreate(k, func() string {
		switch k.Mode {
		case state.List:
			return m.listRow(n, k)
		case state.Compact:
			return m.compactCell(n, k)
		default:
			return m.gridTile(n, k)
		}
	})
}

func (m Model) title(n render.Node, marked bool, limit int) string {
	text := truncate(n.Title, limit)
	if marked {
		return m.styles.Struck.Render(text)
	}
	return m.styles.Text.Bold(true).Render(text)
}

func (m Model) colorDots(colors []string) string {
	if len(colors) == 0 {
		return m.styles.FaintText.Render("colorless")
	}
	parts := make([]string, 0, len(colors))
	for _, tag := range colors {
		parts = append(parts, m.styles.ManaStyle(tag).Render(tag))
	}
	return strings.Join(parts, "/")
}

func (m Model) gridTile(n render.Node, k tileKey) string {
	s := m.styles
	style := s.Tile
	if k.Focused {
		style = s.TileFocus
	}
	inner := TileWidth - 4

	badge := s.RarityStyle(n.Rarity).Render("[" + n.Badge + "]")
	lines := []string{
		m.title(n, k.Marked, inner),
		s.MutedText.Render(truncate(n.Subtitle, inner)),
		badge + " " + s.MutedText.Render(padRight(n.Rarity, 9)) + s.Text.Render(fmt.Sprintf("x%d", n.Quantity)),
		s.AccentText.Render(n.Cost) + " " + m.colorDots(n.Colors),
	}
	return style.Width(TileWidth - 2).Render(strings.Join(lines, "\n"))
}

func (m Model) listRow(n render.Node, k tileKey) string {
	s := m.styles
	cursor := " "
	if k.Focused {
		cursor = s.Selected.Render("›")
	}
	nameWidth := 30
	typeWidth := 26
	if k.Width < 100 {
		nameWidth, typeWidth = 22, 16
	}
	return strings.Join([]string{
		cursor,
		s.Text.Render(fmt.Sprintf("x%-3d", n.Quantity)),
		m.title(n, k.Marked, nameWidth) + strings.Repeat(" ", maxInt(0, nameWidth-len([]rune(truncate(n.Title, nameWidth))))),
		s.MutedText.Render(padRight(truncate(n.Subtitle, typeWidth), typeWidth)),
		s.RarityStyle(n.Rarity).Render(padRight(n.Rarity, 9)),
		s.AccentText.Render(padRight(n.Cost, 6)),
		m.colorDots(n.Colors),
	}, " ")
}

func (m Model) compactCell(n render.Node, k tileKey) string {
	s := m.styles
	cursor := ternary(k.Focused, "›", " ")
	nameWidth := compactCellWidth - 12
	cell := cursor + " " +
		s.RarityStyle(n.Rarity).Render(n.Badge) + " " +
		m.title(n, k.Marked, nameWidth) + " " +
		s.MutedText.Render(fmt.Sprintf("x%d", n.Quantity))
	return lipgloss.NewStyle().Width(compactCellWidth).Render(cell)
}

func (m Model) renderEmpty() string {
	s := m.styles
	return lipgloss.NewStyle().Padding(1, 2).Render(
		s.Text.Bold(true).Render("No cards match these filters") + "\n" +
			s.FaintText.Render("press c to clear filters"),
	)
}

func (m Model) renderError(width int) string {
	s := m.styles
	err := m.snapshot.LastError
	headline := "Could not load the collection"
	var loadErr *collection.LoadError
	if errors.As(err, &loadErr) && loadErr.Source != "" {
		headline += " from " + loadErr.Source
	}
	return lipgloss.NewStyle().Padding(1, 2).Render(
		s.DangerText.Render(headline) + "\n" +
			s.MutedText.Render(truncate(err.Error(), maxInt(20, width-4))) + "\n\n" +
			s.FaintText.Render("Fix the source and restart, or run with --watch to reload on change."),
	)
}
