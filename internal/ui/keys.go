package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines all keyboard bindings for the browser.
type keyMap struct {
	// Global
	Quit key.Binding
	Help key.Binding

	// Filters
	Search      key.Binding
	CycleRarity key.Binding
	White       key.Binding
	Blue        key.Binding
	Black       key.Binding
	Red         key.Binding
	Green       key.Binding
	Clear       key.Binding

	// Paging
	PrevPage  key.Binding
	NextPage  key.Binding
	FirstPage key.Binding
	LastPage  key.Binding

	// Cards
	Up            key.Binding
	Down          key.Binding
	Mark          key.Binding
	CycleView     key.Binding
	CycleGrouping key.Binding

	// Search input
	Confirm key.Binding
	Cancel  key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() keyMap {
	return keyMap{
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "Quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "Toggle help"),
		),

		Search: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "Search"),
		),
		CycleRarity: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "Cycle rarity"),
		),
		White: key.NewBinding(
			key.WithKeys("1"),
			key.WithHelp("1", "White"),
		),
		Blue: key.NewBinding(
			key.WithKeys("2"),
			key.WithHelp("2", "Blue"),
		),
		Black: key.NewBinding(
			key.WithKeys("3"),
			key.WithHelp("3", "Black"),
		),
		Red: key.NewBinding(
			key.WithKeys("4"),
			key.WithHelp("4", "Red"),
		),
		Green: key.NewBinding(
			key.WithKeys("5"),
			key.WithHelp("5", "Green"),
		),
		Clear: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "Clear filters"),
		),

		PrevPage: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←/h", "Previous page"),
		),
		NextPage: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("→/l", "Next page"),
		),
		FirstPage: key.NewBinding(
			key.WithKeys("g", "home"),
			key.WithHelp("g", "First page"),
		),
		LastPage: key.NewBinding(
			key.WithKeys("G", "end"),
			key.WithHelp("G", "Last page"),
		),

		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/up", "Move up"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/down", "Move down"),
		),
		Mark: key.NewBinding(
			key.WithKeys(" ", "space"),
			key.WithHelp("space", "Strike out card"),
		),
		CycleView: key.NewBinding(
			key.WithKeys("v"),
			key.WithHelp("v", "Cycle view"),
		),
		CycleGrouping: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "Rarity/type breakdown"),
		),

		Confirm: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "Apply search"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "Clear search"),
		),
	}
}

// ShortHelp returns key bindings for the footer.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Search, k.CycleRarity, k.Clear, k.NextPage, k.CycleView, k.Help, k.Quit}
}

// FullHelp returns key bindings for the help overlay.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Search, k.Confirm, k.Cancel, k.CycleRarity, k.Clear},
		{k.White, k.Blue, k.Black, k.Red, k.Green},
		{k.PrevPage, k.NextPage, k.FirstPage, k.LastPage},
		{k.Up, k.Down, k.Mark, k.CycleView, k.CycleGrouping},
		{k.Help, k.Quit},
	}
}
