package ui

import (
	"context"
	"errors"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/five82/binder/internal/browse"
	"github.com/five82/binder/internal/debounce"
	"github.com/five82/binder/internal/prefs"
	"github.com/five82/binder/internal/render"
	"github.com/five82/binder/internal/state"
)

// Options configures the UI.
type Options struct {
	Context context.Context
	Store   *state.Store
	Logger  *zap.Logger

	// SourceName is shown in the header.
	SourceName string
	PageSize   int
	View       state.ViewMode
	Grouping   browse.Grouping
	// SearchDelay is the quiet period before typed search text is applied.
	// Zero applies it on the next message.
	SearchDelay time.Duration
	PollTick    time.Duration
	PrefsPath   string
}

// Model is the root application state for Bubble Tea.
type Model struct {
	// Configuration
	ctx         context.Context
	store       *state.Store
	logger      *zap.Logger
	sourceName  string
	prefsPath   string
	pollTick    time.Duration
	searchDelay time.Duration

	// UI state
	theme    Theme
	styles   Styles
	keys     keyMap
	help     help.Model
	width    int
	height   int
	ready    bool
	showHelp bool

	// Data state
	snapshot   state.Snapshot
	generation uint64

	// Browser state. view only changes through state.Reduce.
	view   state.View
	result browse.Result
	cursor int

	// Written by render.Refresh through the Surface methods.
	nodes []render.Node
	stats browse.Stats

	renderer *render.Renderer
	tiles    *render.Cache[tileKey, string]

	// Search input
	search    textinput.Model
	searching bool
	debounce  *debounce.Scheduler
}

var _ render.Surface = (*Model)(nil)

// New creates a new Bubble Tea model.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}

	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	pollTick := opts.PollTick
	if pollTick == 0 {
		pollTick = DefaultUIInterval
	}

	searchDelay := opts.SearchDelay
	if searchDelay < 0 {
		searchDelay = 0
	}

	prefsPath := opts.PrefsPath
	if prefsPath == "" {
		prefsPath = prefs.DefaultPath()
	}

	input := textinput.New()
	input.Prompt = "/"
	input.Placeholder = "name, type, rarity or colour"
	input.CharLimit = 64

	view := state.NewView(opts.PageSize, opts.View)
	view.Grouping = opts.Grouping

	theme := DefaultTheme()
	return Model{
		ctx:         ctx,
		store:       opts.Store,
		logger:      logger,
		sourceName:  opts.SourceName,
		prefsPath:   prefsPath,
		pollTick:    pollTick,
		searchDelay: searchDelay,
		theme:       theme,
		styles:      theme.Styles(),
		keys:        DefaultKeyMap(),
		help:        help.New(),
		view:        view,
		renderer:    render.NewRenderer(),
		tiles:       render.NewCache[tileKey, string](),
		search:      input,
		debounce:    debounce.NewScheduler(),
	}
}

// SetCards implements render.Surface.
func (m *Model) SetCards(nodes []render.Node) {
	m.nodes = nodes
}

// SetStats implements render.Surface.
func (m *Model) SetStats(stats browse.Stats) {
	m.stats = stats
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{tickCmd(m.pollTick)}
	if m.store != nil {
		cmds = append(cmds, fetchSnapshotCmd(m.store, m.snapshot.LastUpdated))
	}
	return tea.Batch(cmds...)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.ready = true
		// Tiles are sized from the terminal width.
		m.tiles.Reset()
		return m, nil

	case tickMsg:
		return m.handleTick()

	case snapshotMsg:
		m.applySnapshot(state.Snapshot(msg))
		return m, nil

	case debounce.FiredMsg:
		if !m.debounce.Accept(msg) {
			return m, nil
		}
		if text, ok := msg.Payload.(string); ok {
			m.dispatch(state.SetSearch{Text: text})
		}
		return m, nil

	case prefsSavedMsg:
		if msg.err != nil {
			m.logger.Warn("save prefs failed", zap.Error(msg.err))
		}
		return m, nil
	}

	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	if m.showHelp {
		return m.renderHelp()
	}
	return m.renderMain()
}

// dispatch applies a through the reducer and refreshes the surface.
func (m *Model) dispatch(a state.Action) {
	m.view = state.Reduce(m.view, a)
	if state.IsFilterAction(a) {
		m.cursor = 0
	}
	m.refresh()
	m.logger.Debug("action applied",
		zap.String("action", actionName(a)),
		zap.Int("page", m.view.Page),
		zap.Int("filtered", len(m.result.Filtered)),
	)
}

// refresh reruns the pipeline and clamps the page silently.
func (m *Model) refresh() {
	m.result = render.Refresh(m.snapshot.Cards, m.view, m.renderer, m)
	m.view.Page = m.result.PageNumber
	if m.cursor >= len(m.nodes) {
		m.cursor = len(m.nodes) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

// applySnapshot installs new collection data. A generation change means the
// cards were reloaded, so every cached node and tile is dropped.
func (m *Model) applySnapshot(snap state.Snapshot) {
	if snap.Generation == m.generation && snap.LastUpdated.Equal(m.snapshot.LastUpdated) {
		return
	}
	if snap.Generation != m.generation {
		m.renderer.Reset()
		m.tiles.Reset()
		m.logger.Debug("collection generation changed",
			zap.Uint64("from", m.generation),
			zap.Uint64("to", snap.Generation),
			zap.Int("cards", len(snap.Cards)),
		)
		m.generation = snap.Generation
	}
	m.snapshot = snap
	m.refresh()
}

func (m Model) handleTick() (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd
	if m.store != nil {
		cmds = append(cmds, fetchSnapshotCmd(m.store, m.snapshot.LastUpdated))
	}
	cmds = append(cmds, tickCmd(m.pollTick))
	return m, tea.Batch(cmds...)
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	if m.showHelp {
		// Any key closes help
		m.showHelp = false
		return m, nil
	}

	if m.searching {
		return m.handleSearchKey(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
		return m, nil

	case key.Matches(msg, m.keys.Search):
		m.searching = true
		m.search.SetValue(m.view.Criteria.Search)
		m.search.CursorEnd()
		cmd := m.search.Focus()
		return m, cmd

	case key.Matches(msg, m.keys.CycleRarity):
		m.dispatch(state.CycleRarity{Options: browse.Rarities})

	case key.Matches(msg, m.keys.White):
		m.dispatch(state.ToggleColor{Tag: "white"})
	case key.Matches(msg, m.keys.Blue):
		m.dispatch(state.ToggleColor{Tag: "blue"})
	case key.Matches(msg, m.keys.Black):
		m.dispatch(state.ToggleColor{Tag: "black"})
	case key.Matches(msg, m.keys.Red):
		m.dispatch(state.ToggleColor{Tag: "red"})
	case key.Matches(msg, m.keys.Green):
		m.dispatch(state.ToggleColor{Tag: "green"})

	case key.Matches(msg, m.keys.Clear):
		m.debounce.Cancel(searchKey)
		m.search.SetValue("")
		m.dispatch(state.ClearFilters{})

	case key.Matches(msg, m.keys.PrevPage):
		m.dispatch(state.PrevPage{})
		m.cursor = 0
	case key.Matches(msg, m.keys.NextPage):
		m.dispatch(state.NextPage{TotalPages: m.result.TotalPages})
		m.cursor = 0
	case key.Matches(msg, m.keys.FirstPage):
		m.dispatch(state.SetPage{N: 1})
		m.cursor = 0
	case key.Matches(msg, m.keys.LastPage):
		m.dispatch(state.SetPage{N: m.result.TotalPages})
		m.cursor = 0

	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.nodes)-1 {
			m.cursor++
		}

	case key.Matches(msg, m.keys.Mark):
		if node, ok := m.cursorNode(); ok {
			m.dispatch(state.ToggleMark{ID: node.ID})
		}

	case key.Matches(msg, m.keys.CycleView):
		m.dispatch(state.CycleView{})
		return m, m.savePrefs()

	case key.Matches(msg, m.keys.CycleGrouping):
		m.dispatch(state.CycleGrouping{})
		return m, m.savePrefs()
	}

	return m, nil
}

func (m Model) cursorNode() (render.Node, bool) {
	if m.cursor < 0 || m.cursor >= len(m.nodes) {
		return render.Node{}, false
	}
	return m.nodes[m.cursor], true
}

func (m Model) savePrefs() tea.Cmd {
	return savePrefsCmd(m.prefsPath, prefs.Prefs{
		View:     m.view.Mode.String(),
		Grouping: m.view.Grouping.String(),
	})
}

// Messages

type tickMsg time.Time

type snapshotMsg state.Snapshot

type prefsSavedMsg struct{ err error }

// Commands

func tickCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// fetchSnapshotCmd reads the store unless nothing was recorded since seen.
func fetchSnapshotCmd(store *state.Store, seen time.Time) tea.Cmd {
	return func() tea.Msg {
		if !seen.IsZero() && store.LastUpdated().Equal(seen) {
			return nil
		}
		return snapshotMsg(store.Snapshot())
	}
}

func savePrefsCmd(path string, p prefs.Prefs) tea.Cmd {
	return func() tea.Msg {
		return prefsSavedMsg{err: prefs.Save(path, p)}
	}
}

// Run starts the Bubble Tea program and blocks until it exits or ctx is
// cancelled.
func Run(opts Options) error {
	m := New(opts)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(m.ctx))
	_, err := p.Run()
	if errors.Is(err, tea.ErrProgramKilled) && m.ctx.Err() != nil {
		return nil
	}
	return err
}
