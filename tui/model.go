// ABOUTME: Terminal UI model and core state management
// ABOUTME: Bubble Tea model wrapping the command dispatcher with live catalog reload

// Package tui provides an interactive terminal front end for the video player.
package tui

import (
	"fmt"
	"io"
	"log/slog"
	"runtime/debug"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"video-player/catalog"
	"video-player/command"
)

// Layout constants for UI dimensions
const (
	// UI chrome heights (elements that reduce available viewport space)
	titleHeight     = 1
	statusBarHeight = 1
	inputHeight     = 1
	helpHeight      = 1
	spacingHeight   = 1
	totalUIChrome   = titleHeight + statusBarHeight + inputHeight + helpHeight + spacingHeight

	minViewportWidth  = 20
	minViewportHeight = 3
)

const (
	statusMessageDuration = 5 * time.Second
	choicePlaceholder     = "number of the video to play, anything else for no"
	commandPlaceholder    = "type HELP for a list of available commands"
)

// catalogReloadedMsg carries the result of re-reading the watched catalog file
type catalogReloadedMsg struct {
	catalog *catalog.Catalog
	err     error
}

// outputLine is one line of the scrollback
type outputLine struct {
	text string
	echo bool // Command typed by the user
}

// model holds the TUI state
type model struct {
	// Dependencies
	dispatcher  *command.Dispatcher
	log         *slog.Logger
	loadCatalog func(string) (*catalog.Catalog, error)
	watcher     *catalog.Watcher // nil when the catalog is not watched

	prompt  string
	input   textinput.Model
	output  viewport.Model
	lines   []outputLine
	history *History

	// Pending search results; the next submitted line answers the selection
	choices []catalog.Video

	// UI state
	width        int
	height       int
	quitting     bool
	farewell     []string
	statusMsg    string
	statusMsgAge time.Time
}

// Key bindings
type keyMap struct {
	Submit     key.Binding
	Prev       key.Binding
	Next       key.Binding
	ScrollUp   key.Binding
	ScrollDown key.Binding
	Quit       key.Binding
}

var keys = keyMap{
	Submit: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "run"),
	),
	Prev: key.NewBinding(
		key.WithKeys("up"),
		key.WithHelp("↑", "previous command"),
	),
	Next: key.NewBinding(
		key.WithKeys("down"),
		key.WithHelp("↓", "next command"),
	),
	ScrollUp: key.NewBinding(
		key.WithKeys("pgup"),
		key.WithHelp("pgup", "scroll up"),
	),
	ScrollDown: key.NewBinding(
		key.WithKeys("pgdown"),
		key.WithHelp("pgdn", "scroll down"),
	),
	Quit: key.NewBinding(
		key.WithKeys("esc", "ctrl+c"),
		key.WithHelp("esc", "quit"),
	),
}

// Styles
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("12"))

	echoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("10"))

	statusStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("236")).
			Foreground(lipgloss.Color("15")).
			Padding(0, 1)

	playingStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("10"))

	pausedStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("11"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))
)

// Run starts the TUI mode with injected dependencies
func Run(opts Options, deps Dependencies) error {
	var watcher *catalog.Watcher

	if opts.WatchPath != "" {
		w, err := catalog.NewWatcher(opts.WatchPath)
		if err != nil {
			return err
		}

		defer func() {
			if err := w.Close(); err != nil {
				fmt.Printf("Warning: failed to close catalog watcher: %v\n", err)
			}
		}()

		watcher = w
	}

	m := initModel(opts, deps, watcher)

	p := tea.NewProgram(m, tea.WithAltScreen())

	finalModel, err := p.Run()
	if err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}

	if m, ok := finalModel.(model); ok {
		for _, line := range m.farewell {
			fmt.Println(line)
		}
	}

	return nil
}

// initModel creates the initial model with injected dependencies
func initModel(opts Options, deps Dependencies, watcher *catalog.Watcher) model {
	logger := deps.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	loadCatalog := deps.LoadCatalog
	if loadCatalog == nil {
		loadCatalog = catalog.Load
	}

	input := textinput.New()
	input.Prompt = opts.Prompt
	input.Placeholder = commandPlaceholder
	input.Focus()

	m := model{
		dispatcher:  deps.Dispatcher,
		log:         logger,
		loadCatalog: loadCatalog,
		watcher:     watcher,

		prompt:  opts.Prompt,
		input:   input,
		output:  viewport.New(0, 0), // Width and height set on first WindowSizeMsg
		history: NewHistory(opts.HistorySize),
	}

	m.appendLines(fmt.Sprintf("Welcome to the video player: %d videos in the library.", deps.Dispatcher.Catalog().Len()))

	return m
}

// Init initializes the model
func (m model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.waitForCatalogChange())
}

// waitForCatalogChange blocks until the watched file changes, then reloads it.
// Returns nil when no file is watched.
func (m model) waitForCatalogChange() tea.Cmd {
	if m.watcher == nil {
		return nil
	}

	watcher, load, logger := m.watcher, m.loadCatalog, m.log

	return func() tea.Msg {
		defer func() {
			if r := recover(); r != nil {
				logger.Error("catalog watcher panic", "panic", r, "stack", string(debug.Stack()))
				panic(r)
			}
		}()

		changed := watcher.Wait(func(err error) {
			logger.Warn("catalog watcher error", "err", err)
		})
		if !changed {
			return nil
		}

		c, err := load(watcher.Path())

		return catalogReloadedMsg{catalog: c, err: err}
	}
}

// submit runs the line in the input field
func (m *model) submit() tea.Cmd {
	line := m.input.Value()
	m.input.Reset()
	m.appendEcho(line)

	var resp command.Response

	if m.choices != nil {
		choices := m.choices
		m.choices = nil
		resp = m.dispatcher.Choose(choices, line)
	} else {
		m.history.Push(strings.TrimSpace(line))
		resp = m.dispatcher.Execute(line)
	}

	m.appendLines(resp.Lines...)
	m.choices = resp.Choices

	if m.choices != nil {
		m.input.Placeholder = choicePlaceholder
	} else {
		m.input.Placeholder = commandPlaceholder
	}

	if resp.Quit {
		m.quitting = true
		m.farewell = resp.Lines

		return tea.Quit
	}

	return nil
}

// recall replaces the input with a history entry
func (m *model) recall(older bool) {
	var (
		line string
		ok   bool
	)

	if older {
		line, ok = m.history.Prev(m.input.Value())
	} else {
		line, ok = m.history.Next()
	}

	if ok {
		m.input.SetValue(line)
		m.input.CursorEnd()
	}
}

func (m *model) appendEcho(line string) {
	m.lines = append(m.lines, outputLine{text: m.prompt + line, echo: true})
	m.updateViewportContent()
}

func (m *model) appendLines(lines ...string) {
	for _, l := range lines {
		m.lines = append(m.lines, outputLine{text: l})
	}

	m.updateViewportContent()
}

// setStatusMsg shows a transient message in the status bar
func (m *model) setStatusMsg(msg string) {
	m.statusMsg = msg
	m.statusMsgAge = time.Now()
}
