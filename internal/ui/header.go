package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/five82/binder/internal/browse"
)

// renderMain renders the full browser.
func (m Model) renderMain() string {
	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n")
	b.WriteString(m.renderFilterBar())
	b.WriteString("\n\n")
	b.WriteString(m.renderContent())
	b.WriteString("\n")
	if detail := m.renderDetail(); detail != "" {
		b.WriteString(detail)
		b.WriteString("\n")
	}
	b.WriteString(m.renderFooter())
	return b.String()
}

// renderHeader shows the source and the stats display.
func (m Model) renderHeader() string {
	s := m.styles
	left := s.Logo.Render("binder")
	if m.sourceName != "" {
		left += " " + s.MutedText.Render(truncate(m.sourceName, 40))
	}

	st := m.stats
	parts := []string{
		fmt.Sprintf("%d cards", st.TotalQuantity),
		fmt.Sprintf("%d unique", st.UniqueCount),
		fmt.Sprintf("avg cost %.2f", st.AvgCost),
	}
	if st.MarkedQuantity > 0 {
		parts = append(parts, fmt.Sprintf("%d struck, %d left", st.MarkedQuantity, st.Remaining()))
	}
	return s.Header.Width(m.width).Render(left + "  " + s.Text.Render(strings.Join(parts, " · ")))
}

// renderFilterBar shows the active criteria and the view mode.
func (m Model) renderFilterBar() string {
	s := m.styles
	c := m.view.Criteria

	var search string
	switch {
	case m.searching:
		search = m.search.View()
	case c.Search != "":
		search = s.AccentText.Render("/" + c.Search)
	default:
		search = s.FaintText.Render("/ to search")
	}

	rarity := s.MutedText.Render("any")
	if c.Rarity != "" {
		rarity = s.RarityStyle(c.Rarity).Render(c.Rarity)
	}

	colors := make([]string, 0, len(colorKeys))
	for _, ck := range colorKeys {
		if c.HasColor(ck.tag) {
			colors = append(colors, s.ManaStyle(ck.tag).Bold(true).Render("●"+ck.letter))
		} else {
			colors = append(colors, s.FaintText.Render("○"+ck.letter))
		}
	}

	return " " + search +
		s.FaintText.Render("  rarity ") + rarity +
		s.FaintText.Render("  colors ") + strings.Join(colors, " ") +
		s.FaintText.Render("  view ") + s.Text.Render(m.view.Mode.String())
}

// renderFooter shows the page indicator, reload problems and short help.
func (m Model) renderFooter() string {
	s := m.styles
	line := fmt.Sprintf("Page %d of %d · %d of %d shown",
		m.result.PageNumber, m.result.TotalPages, len(m.result.Filtered), len(m.snapshot.Cards))
	if strip := pageStrip(m.result.PageNumber, m.result.TotalPages, PageStripRadius); len(strip) > 0 {
		parts := make([]string, len(strip))
		for i, p := range strip {
			parts[i] = ternary(strings.HasPrefix(p, "["), s.AccentText.Bold(true).Render(p), s.FaintText.Render(p))
		}
		line += "  " + strings.Join(parts, " ")
	}
	if err := m.snapshot.LastError; err != nil && m.snapshot.HasCards {
		line += " · " + s.WarningText.Render("reload failed: "+truncate(err.Error(), 60))
	}
	line += "   " + m.help.ShortHelpView(m.keys.ShortHelp())
	return s.Footer.Width(m.width).Render(line)
}

// pageStrip lists the page numbers around current, always including the
// first and last page, with gaps marked by "…". The current page is
// bracketed. A single page yields nothing.
func pageStrip(current, total, radius int) []string {
	if total <= 1 {
		return nil
	}
	lo := maxInt(1, current-radius)
	hi := minInt(total, current+radius)

	var out []string
	if lo > 1 {
		out = append(out, "1")
		if lo > 2 {
			out = append(out, "…")
		}
	}
	for p := lo; p <= hi; p++ {
		if p == current {
			out = append(out, fmt.Sprintf("[%d]", p))
		} else {
			out = append(out, fmt.Sprint(p))
		}
	}
	if hi < total {
		if hi < total-1 {
			out = append(out, "…")
		}
		out = append(out, fmt.Sprint(total))
	}
	return out
}

// renderDetail describes the card under the cursor on one line.
func (m Model) renderDetail() string {
	if m.snapshot.Unavailable() || m.result.Empty() {
		return ""
	}
	node, ok := m.cursorNode()
	if !ok {
		return ""
	}
	s := m.styles
	parts := []string{
		s.Text.Bold(true).Render(node.Title),
		s.MutedText.Render(ternary(node.Subtitle != "", node.Subtitle, "no type")),
		s.RarityStyle(node.Rarity).Render(ternary(node.Rarity != "", node.Rarity, "no rarity")),
		s.Text.Render("cost " + node.Cost),
		s.MutedText.Render(node.ColorLabel()),
		s.Text.Render(fmt.Sprintf("x%d", node.Quantity)),
	}
	if node.Set != "" {
		parts = append(parts, s.FaintText.Render(node.Set))
	}
	sep := s.FaintText.Render(" · ")
	return " " + s.AccentText.Render("›") + " " + strings.Join(parts, sep)
}

// renderDistribution draws the rarity/type breakdown of the filtered cards
// as horizontal bars.
func (m Model) renderDistribution() string {
	s := m.styles
	title := s.AccentText.Bold(true).Render("By " + m.view.Grouping.String())

	const labelWidth, countWidth = 10, 5
	inner := SidebarWidth - 3
	barWidth := maxInt(1, inner-labelWidth-countWidth-1)

	buckets := m.result.Distribution
	lines := []string{title, ""}
	if len(buckets) == 0 {
		lines = append(lines, s.FaintText.Render("no cards"))
		return s.Sidebar.Width(SidebarWidth - 1).Render(strings.Join(lines, "\n"))
	}

	most := 0
	for _, b := range buckets {
		most = maxInt(most, b.Count)
	}
	for _, b := range buckets {
		n := 0
		if most > 0 {
			n = b.Count * barWidth / most
		}
		if n == 0 && b.Count > 0 {
			n = 1
		}
		label := padRight(truncate(b.Label, labelWidth), labelWidth)
		if m.view.Grouping == browse.ByRarity {
			label = s.RarityStyle(b.Label).Render(label)
		}
		bar := s.BarStyle().Render(padRight(strings.Repeat("█", n), barWidth))
		lines = append(lines, label+bar+" "+fmt.Sprintf("%*d", countWidth-1, b.Count))
	}
	return s.Sidebar.Width(SidebarWidth - 1).Render(strings.Join(lines, "\n"))
}

// renderContent lays out the cards next to the distribution sidebar when the
// terminal is wide enough.
func (m Model) renderContent() string {
	width := m.width
	sidebar := m.width >= LayoutSidebarWidth
	if sidebar {
		width -= SidebarWidth
	}
	body := m.renderCards(width)
	if !sidebar {
		return body
	}
	body = lipgloss.NewStyle().Width(width).Render(body)
	return lipgloss.JoinHorizontal(lipgloss.Top, body, m.renderDistribution())
}
