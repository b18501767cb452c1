// ABOUTME: Event handling and state updates for the TUI
// ABOUTME: Implements the Bubble Tea Update() function and message handlers

package tui

import (
	"fmt"
	"runtime/debug"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// Update handles messages and updates the model
//
//nolint:ireturn // Bubble Tea framework requires returning tea.Model interface
func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	defer func() {
		if r := recover(); r != nil {
			m.log.Error("update panic", "panic", r, "stack", string(debug.Stack()))
			panic(r) // Re-panic so Bubble Tea can handle it
		}
	}()

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.handleResize(msg.Width, msg.Height)

		return m, nil

	case catalogReloadedMsg:
		m.handleCatalogReloaded(msg)

		return m, m.waitForCatalogChange()

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Quit):
			m.quitting = true

			return m, tea.Quit

		case key.Matches(msg, keys.Submit):
			return m, m.submit()

		case key.Matches(msg, keys.Prev):
			m.recall(true)

			return m, nil

		case key.Matches(msg, keys.Next):
			m.recall(false)

			return m, nil

		case key.Matches(msg, keys.ScrollUp), key.Matches(msg, keys.ScrollDown):
			var cmd tea.Cmd
			m.output, cmd = m.output.Update(msg)

			return m, cmd
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)

	return m, cmd
}

// handleResize sizes the scrollback to the terminal
func (m *model) handleResize(width, height int) {
	m.width = width
	m.height = height

	m.output.Width = max(width, minViewportWidth)
	m.output.Height = max(height-totalUIChrome, minViewportHeight)
	m.input.Width = max(width-len(m.prompt)-1, minViewportWidth)

	m.updateViewportContent()
}

// handleCatalogReloaded swaps in the reloaded catalog or reports why it failed
func (m *model) handleCatalogReloaded(msg catalogReloadedMsg) {
	if msg.err != nil {
		m.log.Warn("catalog reload failed", "err", msg.err)
		m.setStatusMsg(fmt.Sprintf("Catalog reload failed: %v", msg.err))

		return
	}

	m.dispatcher.SetCatalog(msg.catalog)
	m.log.Info("catalog reloaded", "videos", msg.catalog.Len())
	m.setStatusMsg(fmt.Sprintf("Catalog reloaded: %d videos", msg.catalog.Len()))
}
