package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// Update handles all messages and updates the model state
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case ComparisonLoadedMsg:
		m.loaded = true
		m.err = msg.Err
		if msg.Err == nil {
			m.set = msg.Set
			m.refreshTable()
		}
		return m, nil

	case ReloadMsg:
		m.loaded = false
		return m, loadComparisonCmd(m.requestPath, m.assumptionsPath)
	}

	return m, nil
}

// handleKeyPress processes keyboard input
func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, key.NewBinding(key.WithKeys("ctrl+c", "q"))):
		return m, tea.Quit

	case key.Matches(msg, key.NewBinding(key.WithKeys("tab", "shift+tab"))):
		m.track = m.track.Next()
		m.refreshTable()
		return m, nil

	case key.Matches(msg, key.NewBinding(key.WithKeys("r"))):
		return m, func() tea.Msg { return ReloadMsg{} }
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}
