// ABOUTME: Shared initialization code for both modes (REPL and TUI)
// ABOUTME: Provides catalog loading and debug log setup

package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"golang.org/x/term"

	"video-player/catalog"
	"video-player/config"
)

const debugLogFile = "video-player-debug.log"

// LoadCatalog builds the catalog described by cfg.
// catalog_path wins over media_dir; with neither the built-in catalog is used.
func LoadCatalog(cfg config.Config, logger *slog.Logger) (*catalog.Catalog, error) {
	switch {
	case cfg.CatalogPath != "":
		c, err := catalog.Load(cfg.CatalogPath)
		if err != nil {
			return nil, err
		}

		logger.Info("catalog loaded", "path", cfg.CatalogPath, "videos", c.Len())

		return c, nil

	case cfg.MediaDir != "":
		result, err := catalog.ScanDir(cfg.MediaDir, 0)
		if err != nil {
			return nil, err
		}

		for path, reason := range result.Skipped {
			logger.Warn("skipped media file", "path", path, "err", reason)
		}

		logger.Info("media directory scanned", "dir", cfg.MediaDir, "videos", result.Catalog.Len(), "skipped", len(result.Skipped))

		return result.Catalog, nil

	default:
		return catalog.Default(), nil
	}
}

// SetupDebugLog creates a debug-level logger writing to filename.
// The returned function closes the file.
func SetupDebugLog(filename string) (*slog.Logger, func(), error) {
	f, err := os.Create(filename)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create debug log file: %w", err)
	}

	logger := slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: slog.LevelDebug}))

	if term.IsTerminal(int(os.Stdout.Fd())) {
		fmt.Printf("Debug logging enabled: %s\n", filename)
	}

	closeLog := func() {
		if err := f.Close(); err != nil {
			fmt.Printf("Warning: failed to close debug log: %v\n", err)
		}
	}

	return logger, closeLog, nil
}

// discardLogger is used when debug logging is off
func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
