// ABOUTME: Entry point for the video-player application
// ABOUTME: Handles command-line parsing, profiling, and routing to REPL or TUI modes

// Package main provides the entry point for video-player, an in-memory video catalog simulator.
package main

import (
	"flag"
	"fmt"
	"log"
	"log/slog"
	"math/rand/v2"
	"os"
	"runtime"
	"runtime/pprof"

	"golang.org/x/term"

	"video-player/command"
	"video-player/config"
	"video-player/player"
	"video-player/tui"
)

func main() {
	os.Exit(run())
}

func run() int {
	cpuprofile := flag.String("cpuprofile", "", "write cpu profile to file")
	memprofile := flag.String("memprofile", "", "write memory profile to file")
	catalogPath := flag.String("catalog", "", "load videos from this catalog file (Title | id | #tag , #tag)")
	mediaDir := flag.String("media-dir", "", "build the catalog by scanning media files in this directory")
	visual := flag.Bool("visual", false, "run in visual/interactive terminal mode")
	debug := flag.Bool("debug", false, "enable debug logging to "+debugLogFile)
	configPath := flag.String("config", "", "config file (default: ./video-player.toml or ~/.config/video-player/config.toml)")
	writeConfig := flag.Bool("write-config", false, "write the effective config to the config file and exit")
	seed := flag.Uint64("seed", 0, "seed for PLAY_RANDOM (0: random)")
	flag.Parse()

	if flag.NArg() != 0 {
		fmt.Println("Usage: video-player [flags]")
		fmt.Println("Example: video-player -media-dir ~/Videos -visual")
		fmt.Println("\nFlags:")
		flag.PrintDefaults()

		return 1
	}

	if *cpuprofile != "" {
		stopCPUProfile := setupCPUProfile(*cpuprofile)
		defer stopCPUProfile()
	}

	if *memprofile != "" {
		defer writeMemoryProfile(*memprofile)
	}

	path := *configPath
	if path == "" {
		path = config.GetConfigPath()
	}

	cfg, err := config.LoadConfig(path)
	if err != nil {
		log.Printf("Warning: %v (using defaults)", err)
	}

	// An explicit source on the command line replaces both configured sources
	if *catalogPath != "" {
		cfg.CatalogPath, cfg.MediaDir = *catalogPath, ""
	}

	if *mediaDir != "" {
		cfg.CatalogPath, cfg.MediaDir = "", *mediaDir
	}

	if *writeConfig {
		if err := config.SaveConfig(path, cfg); err != nil {
			log.Printf("Config error: %v", err)

			return 1
		}

		fmt.Printf("Wrote config to: %s\n", path)

		return 0
	}

	logger := discardLogger()

	if *debug {
		debugLogger, closeLog, err := SetupDebugLog(debugLogFile)
		if err != nil {
			log.Printf("Failed to setup debug log: %v", err)

			return 1
		}
		defer closeLog()

		logger = debugLogger
	}

	videos, err := LoadCatalog(cfg, logger)
	if err != nil {
		log.Printf("Catalog error: %v", err)

		return 1
	}

	var rnd player.Rand
	if *seed != 0 {
		rnd = rand.New(rand.NewPCG(*seed, *seed))
	}

	dispatcher := command.New(command.Options{
		Catalog:       videos,
		Rand:          rnd,
		Logger:        logger,
		DefaultReason: cfg.DefaultFlagReason,
	})

	if *visual {
		return runVisual(cfg, dispatcher, logger)
	}

	if err := RunREPL(os.Stdin, os.Stdout, dispatcher, cfg.Prompt, term.IsTerminal(int(os.Stdin.Fd()))); err != nil {
		log.Printf("REPL error: %v", err)

		return 1
	}

	return 0
}

// runVisual starts the TUI, watching the catalog file when configured to
func runVisual(cfg config.Config, dispatcher *command.Dispatcher, logger *slog.Logger) int {
	opts := tui.Options{
		Prompt:      cfg.Prompt,
		HistorySize: cfg.HistorySize,
	}

	if cfg.WatchCatalog && cfg.CatalogPath != "" {
		opts.WatchPath = cfg.CatalogPath
	}

	if err := tui.Run(opts, tui.Dependencies{Dispatcher: dispatcher, Logger: logger}); err != nil {
		log.Printf("TUI error: %v", err)

		return 1
	}

	return 0
}

// setupCPUProfile starts CPU profiling, returns cleanup function
func setupCPUProfile(filename string) func() {
	f, err := os.Create(filename)
	if err != nil {
		log.Fatalf("could not create CPU profile: %v", err)
	}

	if err := pprof.StartCPUProfile(f); err != nil {
		_ = f.Close()
		log.Fatalf("could not start CPU profile: %v", err)
	}

	return func() {
		pprof.StopCPUProfile()

		if err := f.Close(); err != nil {
			log.Printf("Warning: failed to close CPU profile: %v", err)
		}
	}
}

// writeMemoryProfile writes memory profile to file
func writeMemoryProfile(filename string) {
	f, err := os.Create(filename)
	if err != nil {
		log.Printf("could not create memory profile: %v", err)

		return
	}

	defer func() {
		if err := f.Close(); err != nil {
			log.Printf("Warning: failed to close memory profile: %v", err)
		}
	}()

	runtime.GC()

	if err := pprof.WriteHeapProfile(f); err != nil {
		log.Printf("could not write memory profile: %v", err)
	}
}
