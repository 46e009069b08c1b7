package ui

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/five82/binder/internal/collection"
	"github.com/five82/binder/internal/debounce"
	"github.com/five82/binder/internal/prefs"
	"github.com/five82/binder/internal/state"
)

func testCards() []collection.Card {
	return []collection.Card{
		{ID: 1, Name: "Dragon Whelp", Type: "Creature - Dragon", Rarity: "common", Quantity: 2, Colors: []string{"red"}, Cost: 3},
		{ID: 2, Name: "Serra Angel", Type: "Creature - Angel", Rarity: "rare", Quantity: 1, Colors: []string{"white"}, Cost: 5},
		{ID: 3, Name: "Counterspell", Type: "Instant", Rarity: "uncommon", Quantity: 4, Colors: []string{"blue"}, Cost: 2},
		{ID: 4, Name: "Shivan Dragon", Type: "Creature - Dragon", Rarity: "rare", Quantity: 1, Colors: []string{"red"}, Cost: 6},
		{ID: 5, Name: "Llanowar Elves", Type: "Creature - Elf Druid", Rarity: "common", Quantity: 3, Colors: []string{"green"}, Cost: 1},
	}
}

type harness struct {
	t         *testing.T
	store     *state.Store
	prefsPath string
	m         Model
}

func newHarness(t *testing.T, pageSize int) *harness {
	t.Helper()
	h := &harness{
		t:         t,
		store:     &state.Store{},
		prefsPath: filepath.Join(t.TempDir(), "prefs.toml"),
	}
	h.store.Update(testCards(), 1, nil)
	h.m = New(Options{
		Store:      h.store,
		SourceName: "file:test.json",
		PageSize:   pageSize,
		PrefsPath:  h.prefsPath,
	})
	h.send(tea.WindowSizeMsg{Width: 120, Height: 40})
	h.send(snapshotMsg(h.store.Snapshot()))
	return h
}

func (h *harness) send(msg tea.Msg) tea.Cmd {
	h.t.Helper()
	next, cmd := h.m.Update(msg)
	m, ok := next.(Model)
	require.True(h.t, ok, "Update returned %T", next)
	h.m = m
	return cmd
}

func (h *harness) press(keys ...string) tea.Cmd {
	h.t.Helper()
	var cmd tea.Cmd
	for _, k := range keys {
		cmd = h.send(keyMsg(k))
	}
	return cmd
}

func (h *harness) ids() []int64 {
	ids := make([]int64, 0, len(h.m.nodes))
	for _, n := range h.m.nodes {
		ids = append(ids, n.ID)
	}
	return ids
}

func keyMsg(k string) tea.KeyMsg {
	switch k {
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "space":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
	}
}

// firedMsgs runs cmd and returns the debounce messages it produces. Commands
// that block (cursor blink) are abandoned after a short wait.
func firedMsgs(cmd tea.Cmd) []debounce.FiredMsg {
	if cmd == nil {
		return nil
	}
	ch := make(chan tea.Msg, 1)
	go func() { ch <- cmd() }()

	var msg tea.Msg
	select {
	case msg = <-ch:
	case <-time.After(50 * time.Millisecond):
		return nil
	}

	switch msg := msg.(type) {
	case tea.BatchMsg:
		var out []debounce.FiredMsg
		for _, c := range msg {
			out = append(out, firedMsgs(c)...)
		}
		return out
	case debounce.FiredMsg:
		return []debounce.FiredMsg{msg}
	}
	return nil
}

func TestModel_InitialPage(t *testing.T) {
	h := newHarness(t, 2)

	assert.Equal(t, []int64{1, 2}, h.ids())
	assert.Equal(t, 3, h.m.result.TotalPages)
	assert.Equal(t, 11, h.m.stats.TotalQuantity)
	assert.Equal(t, 5, h.m.stats.UniqueCount)

	out := h.m.View()
	assert.Contains(t, out, "Page 1 of 3")
	assert.Contains(t, out, "Dragon Whelp")
	assert.Contains(t, out, "11 cards")
	assert.NotContains(t, out, "Counterspell")
}

func TestModel_ViewBeforeResizeIsLoading(t *testing.T) {
	m := New(Options{})
	assert.Equal(t, "Loading...", m.View())
}

func TestModel_Paging(t *testing.T) {
	h := newHarness(t, 2)

	h.press("l")
	assert.Equal(t, 2, h.m.view.Page)
	assert.Equal(t, []int64{3, 4}, h.ids())

	h.press("right", "right", "right")
	assert.Equal(t, 3, h.m.view.Page, "next page stops at the last page")
	assert.Equal(t, []int64{5}, h.ids())

	h.press("h")
	assert.Equal(t, 2, h.m.view.Page)

	h.press("g")
	assert.Equal(t, 1, h.m.view.Page)
	h.press("G")
	assert.Equal(t, 3, h.m.view.Page)
	h.press("left", "left", "left")
	assert.Equal(t, 1, h.m.view.Page)
}

func TestModel_RarityCycleResetsPage(t *testing.T) {
	h := newHarness(t, 2)
	h.press("l")
	require.Equal(t, 2, h.m.view.Page)

	h.press("r")
	assert.Equal(t, "common", h.m.view.Criteria.Rarity)
	assert.Equal(t, 1, h.m.view.Page)
	assert.Equal(t, []int64{1, 5}, h.ids())

	h.press("r", "r")
	assert.Equal(t, "rare", h.m.view.Criteria.Rarity)
	assert.Equal(t, []int64{2, 4}, h.ids())
}

func TestModel_ToggleColor(t *testing.T) {
	h := newHarness(t, 10)

	h.press("4")
	assert.Equal(t, []int64{1, 4}, h.ids())
	assert.Equal(t, 3, h.m.stats.TotalQuantity)

	h.press("4")
	assert.Len(t, h.m.nodes, 5)
}

func TestModel_ClearFilters(t *testing.T) {
	h := newHarness(t, 2)
	h.press("r", "4", "space")
	require.False(t, h.m.view.Criteria.IsZero())

	h.press("c")
	assert.True(t, h.m.view.Criteria.IsZero())
	assert.Equal(t, 1, h.m.view.Page)
	assert.Equal(t, 3, h.m.result.TotalPages)
	assert.True(t, h.m.view.IsMarked(1), "clearing filters keeps struck-out cards")
}

func TestModel_EmptyResultState(t *testing.T) {
	h := newHarness(t, 2)
	h.press("r", "r", "2") // uncommon and blue: Counterspell only
	require.Equal(t, []int64{3}, h.ids())
	h.press("r") // rare and blue: nothing

	assert.Empty(t, h.m.nodes)
	assert.Equal(t, 1, h.m.result.TotalPages)
	out := h.m.View()
	assert.Contains(t, out, "No cards match these filters")
	assert.Contains(t, out, "Page 1 of 1")
}

func TestModel_SearchIsDebounced(t *testing.T) {
	h := newHarness(t, 10)

	h.press("/")
	require.True(t, h.m.searching)

	first := firedMsgs(h.press("d"))
	second := firedMsgs(h.press("r"))
	third := firedMsgs(h.press("a"))
	require.Len(t, first, 1)
	require.Len(t, second, 1)
	require.Len(t, third, 1)

	assert.Equal(t, "", h.m.view.Criteria.Search, "typing alone does not filter")
	assert.Len(t, h.m.nodes, 5)

	h.send(first[0])
	h.send(second[0])
	assert.Equal(t, "", h.m.view.Criteria.Search, "superseded runs are dropped")

	h.send(third[0])
	assert.Equal(t, "dra", h.m.view.Criteria.Search)
	assert.Equal(t, []int64{1, 4}, h.ids())
	assert.False(t, h.m.debounce.Pending(searchKey))
}

func TestModel_SearchEnterAppliesImmediately(t *testing.T) {
	h := newHarness(t, 10)
	h.m.searchDelay = time.Hour

	h.press("/", "a", "n", "g", "e", "l")
	assert.True(t, h.m.debounce.Pending(searchKey))
	assert.Len(t, h.m.nodes, 5)

	h.press("enter")
	assert.False(t, h.m.searching)
	assert.False(t, h.m.debounce.Pending(searchKey))
	assert.Equal(t, "angel", h.m.view.Criteria.Search)
	assert.Equal(t, []int64{2}, h.ids())
}

func TestModel_SearchEscClears(t *testing.T) {
	h := newHarness(t, 10)
	h.m.searchDelay = time.Hour
	h.press("/", "e", "l", "f", "enter")
	require.Equal(t, []int64{5}, h.ids())

	h.press("/", "x", "esc")
	assert.False(t, h.m.searching)
	assert.Equal(t, "", h.m.view.Criteria.Search)
	assert.Len(t, h.m.nodes, 5)
}

func TestModel_SearchResetsPage(t *testing.T) {
	h := newHarness(t, 2)
	h.press("l", "l")
	require.Equal(t, 3, h.m.view.Page)

	h.press("/", "r", "enter")
	assert.Equal(t, 1, h.m.view.Page)
}

func TestModel_KeysWhileSearchingGoToInput(t *testing.T) {
	h := newHarness(t, 2)
	h.m.searchDelay = time.Hour
	h.press("/", "q", "l")

	assert.True(t, h.m.searching)
	assert.Equal(t, "ql", h.m.search.Value())
	assert.Equal(t, 1, h.m.view.Page)
}

func TestModel_MarkStrikesCardOutOfTotals(t *testing.T) {
	h := newHarness(t, 10)
	h.press("j", "j") // Counterspell, quantity 4

	h.press("space")
	assert.True(t, h.m.view.IsMarked(3))
	assert.Equal(t, 4, h.m.stats.MarkedQuantity)
	assert.Equal(t, 7, h.m.stats.Remaining())
	assert.Contains(t, h.m.View(), "4 struck, 7 left")

	h.press("space")
	assert.False(t, h.m.view.IsMarked(3))
	assert.Equal(t, 0, h.m.stats.MarkedQuantity)
}

func TestModel_CursorStaysOnPage(t *testing.T) {
	h := newHarness(t, 2)
	h.press("j", "j", "j")
	assert.Equal(t, 1, h.m.cursor)
	h.press("k", "k")
	assert.Equal(t, 0, h.m.cursor)

	h.press("j", "l")
	assert.Equal(t, 0, h.m.cursor, "changing page moves the cursor to the top")
}

func TestModel_CycleViewSavesPrefs(t *testing.T) {
	h := newHarness(t, 2)

	cmd := h.press("v")
	assert.Equal(t, state.List, h.m.view.Mode)
	require.NotNil(t, cmd)
	msg, ok := cmd().(prefsSavedMsg)
	require.True(t, ok)
	require.NoError(t, msg.err)
	h.send(msg)

	p, err := prefs.Load(h.prefsPath)
	require.NoError(t, err)
	assert.Equal(t, "list", p.View)
	assert.Equal(t, "rarity", p.Grouping)

	assert.Contains(t, h.m.View(), "Dragon Whelp")
	h.press("v")
	assert.Equal(t, state.Compact, h.m.view.Mode)
	assert.Contains(t, h.m.View(), "Serra Angel")
	h.press("v")
	assert.Equal(t, state.Grid, h.m.view.Mode)
}

func TestModel_ViewModeDoesNotChangeCards(t *testing.T) {
	h := newHarness(t, 2)
	h.press("l")
	before := h.ids()

	h.press("v", "v")
	assert.Equal(t, before, h.ids())
	assert.Equal(t, 2, h.m.view.Page)
}

func TestModel_CycleGrouping(t *testing.T) {
	h := newHarness(t, 2)
	out := h.m.View()
	assert.Contains(t, out, "By rarity")

	cmd := h.press("d")
	require.NotNil(t, cmd)
	assert.Contains(t, h.m.View(), "By type")
	require.NotEmpty(t, h.m.result.Distribution)
	assert.Equal(t, "Creature", h.m.result.Distribution[0].Label)
}

func TestModel_ReloadResetsCachesAndClampsPage(t *testing.T) {
	h := newHarness(t, 2)
	h.press("G")
	require.Equal(t, 3, h.m.view.Page)
	require.Positive(t, h.m.renderer.CacheStats().Entries)

	h.store.Update(testCards()[:2], 2, nil)
	h.send(snapshotMsg(h.store.Snapshot()))

	assert.Equal(t, uint64(2), h.m.generation)
	assert.Equal(t, 1, h.m.view.Page, "page is clamped silently")
	assert.Equal(t, []int64{1, 2}, h.ids())
	stats := h.m.renderer.CacheStats()
	assert.Equal(t, 2, stats.Entries)
	assert.Equal(t, uint64(0), stats.Hits)
}

func TestModel_SameGenerationKeepsCache(t *testing.T) {
	h := newHarness(t, 2)
	h.store.Update(testCards(), 1, nil)
	h.send(snapshotMsg(h.store.Snapshot()))
	assert.Equal(t, uint64(2), h.m.renderer.CacheStats().Hits)
}

func TestModel_UnchangedSnapshotSkipsRefresh(t *testing.T) {
	h := newHarness(t, 2)
	before := h.m.renderer.CacheStats()

	h.send(snapshotMsg(h.store.Snapshot()))
	assert.Equal(t, before, h.m.renderer.CacheStats())

	assert.Nil(t, fetchSnapshotCmd(h.store, h.m.snapshot.LastUpdated)(), "nothing new in the store")
}

func TestModel_LoadErrorState(t *testing.T) {
	store := &state.Store{}
	store.Update(nil, 0, &collection.LoadError{Source: "file:/tmp/cards.json", Err: errors.New("no such file")})

	m := New(Options{Store: store, PageSize: 2})
	next, _ := m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	next, _ = next.(Model).Update(snapshotMsg(store.Snapshot()))
	out := next.(Model).View()

	assert.Contains(t, out, "Could not load the collection from file:/tmp/cards.json")
	assert.Contains(t, out, "no such file")
}

func TestModel_ReloadFailureKeepsCards(t *testing.T) {
	h := newHarness(t, 2)
	h.store.Update(nil, 0, errors.New("parse collection: bad json"))
	h.send(snapshotMsg(h.store.Snapshot()))

	assert.Equal(t, []int64{1, 2}, h.ids())
	assert.Contains(t, h.m.View(), "reload failed")
}

func TestModel_HelpOverlay(t *testing.T) {
	h := newHarness(t, 2)
	h.press("?")
	assert.Contains(t, h.m.View(), "Keyboard Shortcuts")

	h.press("l")
	assert.False(t, h.m.showHelp)
	assert.Equal(t, 1, h.m.view.Page, "the closing key is swallowed")
}

func TestModel_Quit(t *testing.T) {
	for _, k := range []string{"q", "ctrl+c"} {
		h := newHarness(t, 2)
		cmd := h.press(k)
		require.NotNil(t, cmd, k)
		_, ok := cmd().(tea.QuitMsg)
		assert.True(t, ok, k)
	}
}

func TestModel_TickFetchesSnapshot(t *testing.T) {
	h := newHarness(t, 2)
	h.store.Update(testCards()[:1], 5, nil)

	msg := fetchSnapshotCmd(h.store, h.m.snapshot.LastUpdated)()
	require.NotNil(t, msg)
	h.send(msg)
	assert.Equal(t, uint64(5), h.m.generation)
	assert.Equal(t, []int64{1}, h.ids())
}

func TestModel_DetailLineFollowsCursor(t *testing.T) {
	h := newHarness(t, 2)

	detail := h.m.renderDetail()
	assert.Contains(t, detail, "Dragon Whelp")
	assert.Contains(t, detail, "Creature - Dragon")
	assert.Contains(t, detail, "cost {3}")
	assert.Contains(t, detail, "x2")

	h.press("j")
	assert.Contains(t, h.m.renderDetail(), "Serra Angel")

	h.press("r", "r", "r") // rare only: Serra Angel, Shivan Dragon
	h.press("2")           // and blue: nothing
	require.Empty(t, h.m.nodes)
	assert.Empty(t, h.m.renderDetail())
}

func TestModel_FooterShowsPageStrip(t *testing.T) {
	h := newHarness(t, 2)
	assert.Contains(t, h.m.renderFooter(), "[1]")

	h.press("l")
	footer := h.m.renderFooter()
	assert.Contains(t, footer, "[2]")
	assert.Contains(t, footer, "3")
}

func TestPageStrip(t *testing.T) {
	tests := []struct {
		name           string
		current, total int
		want           []string
	}{
		{"single page", 1, 1, nil},
		{"fits", 3, 4, []string{"1", "2", "[3]", "4"}},
		{"first", 1, 3, []string{"[1]", "2", "3"}},
		{"gaps both sides", 6, 20, []string{"1", "…", "4", "5", "[6]", "7", "8", "…", "20"}},
		{"adjacent to ends", 4, 7, []string{"1", "2", "3", "[4]", "5", "6", "7"}},
		{"last", 10, 10, []string{"1", "…", "8", "9", "[10]"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, pageStrip(tt.current, tt.total, 2))
		})
	}
}

func TestModel_NarrowTerminalHidesSidebar(t *testing.T) {
	h := newHarness(t, 2)
	h.send(tea.WindowSizeMsg{Width: 60, Height: 30})
	assert.NotContains(t, h.m.View(), "By rarity")
}

func TestActionName(t *testing.T) {
	assert.Equal(t, "SetSearch", actionName(state.SetSearch{Text: "x"}))
	assert.Equal(t, "ClearFilters", actionName(state.ClearFilters{}))
}
