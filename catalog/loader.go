// ABOUTME: Reads catalog data files in the "Title | id | #tag , #tag" format
// ABOUTME: Ships the default catalog embedded in the binary

package catalog

import (
	"bufio"
	_ "embed"
	"fmt"
	"io"
	"os"
	"strings"
)

//go:embed videos.txt
var defaultData string

// Default returns the catalog embedded in the binary
func Default() *Catalog {
	videos, err := Parse(strings.NewReader(defaultData))
	if err != nil {
		// The embedded file is part of the build; a parse failure is a bug
		panic(fmt.Sprintf("embedded catalog is invalid: %v", err))
	}

	return New(videos)
}

// Load reads a catalog data file from disk
func Load(path string) (*Catalog, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open catalog: %w", err)
	}

	defer func() {
		_ = file.Close() // Explicitly ignore error for read-only file
	}()

	videos, err := Parse(file)
	if err != nil {
		return nil, fmt.Errorf("failed to parse catalog %s: %w", path, err)
	}

	return New(videos), nil
}

// Parse reads videos line by line.
// Blank lines and lines starting with "//" are skipped; the tag field is optional.
func Parse(r io.Reader) ([]Video, error) {
	var videos []Video

	scanner := bufio.NewScanner(r)
	lineNo := 0

	for scanner.Scan() {
		lineNo++

		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "//") {
			continue
		}

		video, err := parseLine(line)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNo, err)
		}

		videos = append(videos, video)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading catalog: %w", err)
	}

	return videos, nil
}

func parseLine(line string) (Video, error) {
	fields := strings.Split(line, "|")
	if len(fields) < 2 || len(fields) > 3 {
		return Video{}, fmt.Errorf("expected 2 or 3 '|' separated fields, got %d", len(fields))
	}

	title := strings.TrimSpace(fields[0])
	id := strings.TrimSpace(fields[1])

	if id == "" {
		return Video{}, fmt.Errorf("missing video id")
	}

	var tags []string

	if len(fields) == 3 {
		for _, tag := range strings.Split(fields[2], ",") {
			if tag = strings.TrimSpace(tag); tag != "" {
				tags = append(tags, tag)
			}
		}
	}

	return NewVideo(id, title, tags...), nil
}
