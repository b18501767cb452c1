// ABOUTME: Tests for the REPL loop and catalog source selection
// ABOUTME: Feeds scripted input and compares the printed transcript

package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"video-player/catalog"
	"video-player/command"
	"video-player/config"
)

type firstRand struct{}

func (firstRand) IntN(int) int { return 0 }

func runScript(t *testing.T, script string, interactive bool) string {
	t.Helper()

	d := command.New(command.Options{Catalog: catalog.Default(), Rand: firstRand{}})

	var out bytes.Buffer
	if err := RunREPL(strings.NewReader(script), &out, d, "YT> ", interactive); err != nil {
		t.Fatalf("RunREPL failed: %v", err)
	}

	return out.String()
}

func TestRunREPLTranscript(t *testing.T) {
	script := strings.Join([]string{
		"CREATE_PLAYLIST my_playlist",
		"ADD_TO_PLAYLIST my_playlist funny_dogs_video_id",
		"PLAY funny_dogs_video_id",
		"SHOW_PLAYING",
		"EXIT",
		"NUMBER_OF_VIDEOS",
	}, "\n")

	want := strings.Join([]string{
		welcome[0],
		welcome[1],
		"Successfully created new playlist: my_playlist",
		"Added video to my_playlist: Funny Dogs",
		"Playing video: Funny Dogs",
		"Currently playing: Funny Dogs (funny_dogs_video_id) [#dog #animal]",
		"YouTube has now terminated its execution. Thank you and goodbye!",
	}, "\n") + "\n"

	if got := runScript(t, script, false); got != want {
		t.Errorf("Unexpected transcript:\ngot:\n%s\nwant:\n%s", got, want)
	}
}

func TestRunREPLSearchSelection(t *testing.T) {
	got := runScript(t, "SEARCH_VIDEOS cat\n2\nSHOW_PLAYING\n", false)

	if !strings.Contains(got, "Playing video: Another Cat Video\n") {
		t.Errorf("Expected selected video to play, got:\n%s", got)
	}

	if !strings.Contains(got, "Currently playing: Another Cat Video") {
		t.Errorf("Expected next line treated as a command, got:\n%s", got)
	}
}

func TestRunREPLSearchDeclined(t *testing.T) {
	got := runScript(t, "SEARCH_VIDEOS cat\nNUMBER_OF_VIDEOS\nSHOW_PLAYING\n", false)

	if strings.Contains(got, "5 videos in the library") {
		t.Errorf("Expected the answer line not to run as a command, got:\n%s", got)
	}

	if !strings.Contains(got, "No video is currently playing") {
		t.Errorf("Expected nothing playing after declining, got:\n%s", got)
	}
}

func TestRunREPLPrompt(t *testing.T) {
	if got := runScript(t, "NUMBER_OF_VIDEOS\n", true); strings.Count(got, "YT> ") != 2 {
		t.Errorf("Expected a prompt per read in interactive mode, got:\n%s", got)
	}

	if got := runScript(t, "NUMBER_OF_VIDEOS\n", false); strings.Contains(got, "YT> ") {
		t.Errorf("Expected no prompt when not interactive, got:\n%s", got)
	}
}

func TestLoadCatalogSources(t *testing.T) {
	dir := t.TempDir()

	catalogFile := filepath.Join(dir, "videos.txt")
	if err := os.WriteFile(catalogFile, []byte("Only One | only_id | #solo\n"), 0644); err != nil {
		t.Fatal(err)
	}

	mediaDir := filepath.Join(dir, "media")
	if err := os.Mkdir(mediaDir, 0755); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name    string
		cfg     config.Config
		want    int
		wantErr bool
	}{
		{"built-in", config.Config{}, 5, false},
		{"catalog file", config.Config{CatalogPath: catalogFile}, 1, false},
		{"catalog file wins", config.Config{CatalogPath: catalogFile, MediaDir: mediaDir}, 1, false},
		{"empty media dir", config.Config{MediaDir: mediaDir}, 0, false},
		{"missing catalog file", config.Config{CatalogPath: filepath.Join(dir, "missing.txt")}, 0, true},
		{"missing media dir", config.Config{MediaDir: filepath.Join(dir, "missing")}, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := LoadCatalog(tt.cfg, discardLogger())
			if (err != nil) != tt.wantErr {
				t.Fatalf("LoadCatalog error = %v, wantErr %v", err, tt.wantErr)
			}

			if err == nil && c.Len() != tt.want {
				t.Errorf("Expected %d videos, got %d", tt.want, c.Len())
			}
		})
	}
}

func TestSetupDebugLog(t *testing.T) {
	path := filepath.Join(t.TempDir(), "debug.log")

	logger, closeLog, err := SetupDebugLog(path)
	if err != nil {
		t.Fatalf("SetupDebugLog failed: %v", err)
	}

	logger.Debug("command", "name", "PLAY")
	closeLog()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}

	if !strings.Contains(string(data), "name=PLAY") {
		t.Errorf("Expected debug record in log, got %q", data)
	}
}
