// ABOUTME: TUI mode configuration and injected dependencies
// ABOUTME: Defines input parameters for running the visual player

package tui

import (
	"log/slog"

	"video-player/catalog"
	"video-player/command"
)

// Options contains configuration for running the TUI
type Options struct {
	Prompt      string // Shown before the input field
	HistorySize int    // Maximum number of recalled command lines
	WatchPath   string // Catalog file to reload on change; empty disables watching
}

// Dependencies holds all external dependencies for the TUI
type Dependencies struct {
	Dispatcher  *command.Dispatcher
	Logger      *slog.Logger
	LoadCatalog func(path string) (*catalog.Catalog, error) // Defaults to catalog.Load
}
