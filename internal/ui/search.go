package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/binder/internal/state"
)

// handleSearchKey routes input to the search box while it has focus. Typed
// text is applied through the debouncer so a burst of keystrokes runs the
// pipeline once.
func (m Model) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Confirm):
		m.endSearch()
		if text := m.search.Value(); text != m.view.Criteria.Search {
			m.dispatch(state.SetSearch{Text: text})
		}
		return m, nil

	case key.Matches(msg, m.keys.Cancel):
		m.endSearch()
		m.search.SetValue("")
		if m.view.Criteria.Search != "" {
			m.dispatch(state.SetSearch{Text: ""})
		}
		return m, nil
	}

	before := m.search.Value()
	var inputCmd tea.Cmd
	m.search, inputCmd = m.search.Update(msg)
	after := m.search.Value()
	if after == before {
		return m, inputCmd
	}

	_, fire := m.debounce.Schedule(searchKey, m.searchDelay, after)
	return m, tea.Batch(inputCmd, fire)
}

func (m *Model) endSearch() {
	m.searching = false
	m.search.Blur()
	m.debounce.Cancel(searchKey)
}

// actionName is the log label for an action, e.g. "SetSearch".
func actionName(a state.Action) string {
	name := fmt.Sprintf("%T", a)
	if i := strings.LastIndex(name, "."); i >= 0 {
		name = name[i+1:]
	}
	return name
}
