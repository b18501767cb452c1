// ABOUTME: Rendering and display functions for the TUI
// ABOUTME: Implements the Bubble Tea View() function and all render helpers

package tui

import (
	"fmt"
	"runtime/debug"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"

	"video-player/player"
)

// View renders the TUI
func (m model) View() string {
	defer func() {
		if r := recover(); r != nil {
			m.log.Error("view panic", "panic", r, "stack", string(debug.Stack()))
			panic(r) // Re-panic so Bubble Tea can handle it
		}
	}()

	if m.quitting {
		return ""
	}

	title := titleStyle.Render(fmt.Sprintf("Video Player | %d videos", m.dispatcher.Catalog().Len()))

	return title + "\n" +
		m.output.View() + "\n\n" +
		m.renderStatus() + "\n" +
		m.input.View() + "\n" +
		m.renderHelp()
}

// updateViewportContent renders the scrollback and keeps the newest line in view
func (m *model) updateViewportContent() {
	var b strings.Builder

	for i, l := range m.lines {
		if i > 0 {
			b.WriteByte('\n')
		}

		if l.echo {
			b.WriteString(echoStyle.Render(l.text))
		} else {
			b.WriteString(l.text)
		}
	}

	m.output.SetContent(b.String())
	m.output.GotoBottom()
}

// renderStatus renders the now-playing status bar
func (m model) renderStatus() string {
	if m.statusMsg != "" && time.Since(m.statusMsgAge) < statusMessageDuration {
		return statusStyle.Width(m.width).Render(m.statusMsg)
	}

	video, state := m.dispatcher.NowPlaying()

	var status string

	switch state {
	case player.Playing:
		status = playingStyle.Render("▶ Playing") + " " + video.String()
	case player.Paused:
		status = pausedStyle.Render("⏸ Paused") + " " + video.String()
	default:
		status = "■ Stopped"
	}

	if m.choices != nil {
		status += fmt.Sprintf(" | choose 1-%d", len(m.choices))
	}

	return statusStyle.Width(m.width).Render(status)
}

// renderHelp renders the key binding summary
func (m model) renderHelp() string {
	bindings := []key.Binding{keys.Submit, keys.Prev, keys.Next, keys.ScrollUp, keys.ScrollDown, keys.Quit}

	parts := make([]string, len(bindings))
	for i, b := range bindings {
		h := b.Help()
		parts[i] = h.Key + ": " + h.Desc
	}

	return helpStyle.Render(" " + strings.Join(parts, " | "))
}
