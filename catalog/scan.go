// ABOUTME: Builds a catalog by reading embedded tags from media files in a directory
// ABOUTME: Tag reading runs in parallel on the worker pool; results keep path order

package catalog

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/dhowden/tag"

	"video-player/pool"
)

// mediaExtensions lists the file types the scanner will read tags from
var mediaExtensions = map[string]bool{
	".mp4":  true,
	".m4v":  true,
	".m4a":  true,
	".mp3":  true,
	".flac": true,
	".ogg":  true,
}

// ScanResult reports what a directory scan found
type ScanResult struct {
	Catalog *Catalog
	Skipped map[string]error // path -> reason the file was not imported
}

// ScanDir walks dir, reads the tags of every media file and returns a catalog.
// The id of each video is its file name without extension. Files whose tags
// cannot be read are reported in Skipped rather than failing the scan.
func ScanDir(dir string, workers int) (*ScanResult, error) {
	var paths []string

	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if d.IsDir() {
			if path != dir && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}

			return nil
		}

		if mediaExtensions[strings.ToLower(filepath.Ext(path))] {
			paths = append(paths, path)
		}

		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan media directory: %w", err)
	}

	slices.Sort(paths)

	videos := make([]Video, len(paths))
	errs := make([]error, len(paths))

	p := pool.NewWorkerPool(workers, len(paths))
	defer p.Close()

	for i, path := range paths {
		p.Submit(func() {
			videos[i], errs[i] = readVideo(path)
		})
	}

	p.Wait()

	result := &ScanResult{Skipped: map[string]error{}}

	var found []Video

	for i, path := range paths {
		if errs[i] != nil {
			result.Skipped[path] = errs[i]

			continue
		}

		found = append(found, videos[i])
	}

	result.Catalog = New(found)

	return result, nil
}

// readVideo builds a Video from one media file's tags
func readVideo(path string) (Video, error) {
	file, err := os.Open(path)
	if err != nil {
		return Video{}, fmt.Errorf("failed to open file: %w", err)
	}
	defer func() { _ = file.Close() }()

	metadata, err := tag.ReadFrom(file)
	if err != nil {
		return Video{}, fmt.Errorf("failed to read metadata: %w", err)
	}

	id := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))

	title := strings.TrimSpace(metadata.Title())
	if title == "" {
		title = id
	}

	return NewVideo(id, title, tagsFromMetadata(metadata.Genre(), metadata.Artist())...), nil
}

// tagsFromMetadata turns genre words and the artist into "#tag" labels
func tagsFromMetadata(genre, artist string) []string {
	var tags []string

	seen := map[string]bool{}
	add := func(word string) {
		word = strings.ToLower(strings.TrimSpace(word))
		if word == "" || seen[word] {
			return
		}

		seen[word] = true
		tags = append(tags, "#"+word)
	}

	for _, word := range strings.FieldsFunc(genre, func(r rune) bool {
		return r == ',' || r == ';' || r == '/' || r == ' '
	}) {
		add(word)
	}

	add(strings.ReplaceAll(strings.TrimSpace(artist), " ", "_"))

	return tags
}
