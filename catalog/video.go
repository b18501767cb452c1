// ABOUTME: Defines the immutable Video record and the read-only Catalog
// ABOUTME: Provides lookup by id, title substring search and exact tag search

// Package catalog holds the read-only library of videos known to the player.
// Videos are loaded once (from the pipe-delimited data file or by scanning a
// media directory) and never mutated afterwards.
package catalog

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

// ErrVideoNotFound is returned when an id does not match any catalog video
var ErrVideoNotFound = errors.New("video does not exist")

// Video is a single catalog entry. Treat values as immutable.
type Video struct {
	ID    string
	Title string
	tags  []string
}

// NewVideo builds a video, copying tags so the caller cannot mutate them later
func NewVideo(id, title string, tags ...string) Video {
	return Video{
		ID:    id,
		Title: title,
		tags:  slices.Clone(tags),
	}
}

// Tags returns a copy of the video's tags in their original order
func (v Video) Tags() []string {
	return slices.Clone(v.tags)
}

// HasTag reports whether any tag equals tag, ignoring case
func (v Video) HasTag(tag string) bool {
	for _, t := range v.tags {
		if strings.EqualFold(t, tag) {
			return true
		}
	}

	return false
}

// Is reports whether the video has the given id (case-insensitive)
func (v Video) Is(id string) bool {
	return strings.EqualFold(v.ID, id)
}

// String renders the video as "Title (id) [tag1 tag2]"
func (v Video) String() string {
	return fmt.Sprintf("%s (%s) [%s]", v.Title, v.ID, strings.Join(v.tags, " "))
}

// Catalog is an ordered, read-only collection of videos
type Catalog struct {
	videos []Video
	byID   map[string]int
}

// New creates a catalog from videos in the given order.
// Later duplicates of an id (case-insensitive) are dropped.
func New(videos []Video) *Catalog {
	c := &Catalog{
		videos: make([]Video, 0, len(videos)),
		byID:   make(map[string]int, len(videos)),
	}

	for _, v := range videos {
		key := strings.ToLower(v.ID)
		if _, exists := c.byID[key]; exists {
			continue
		}

		c.byID[key] = len(c.videos)
		c.videos = append(c.videos, v)
	}

	return c
}

// Get returns the video with the given id
func (c *Catalog) Get(id string) (Video, bool) {
	i, ok := c.byID[strings.ToLower(id)]
	if !ok {
		return Video{}, false
	}

	return c.videos[i], true
}

// Lookup is Get with an error result for callers that propagate failures
func (c *Catalog) Lookup(id string) (Video, error) {
	v, ok := c.Get(id)
	if !ok {
		return Video{}, fmt.Errorf("%w: %s", ErrVideoNotFound, id)
	}

	return v, nil
}

// Search returns videos whose title contains term (case-insensitive), in catalog order
func (c *Catalog) Search(term string) []Video {
	needle := strings.ToLower(term)

	var matches []Video

	for _, v := range c.videos {
		if strings.Contains(strings.ToLower(v.Title), needle) {
			matches = append(matches, v)
		}
	}

	return matches
}

// SearchByTag returns videos carrying tag exactly (case-insensitive), in catalog order
func (c *Catalog) SearchByTag(tag string) []Video {
	var matches []Video

	for _, v := range c.videos {
		if v.HasTag(tag) {
			matches = append(matches, v)
		}
	}

	return matches
}

// All returns every video in catalog order
func (c *Catalog) All() []Video {
	return slices.Clone(c.videos)
}

// Len returns the number of videos
func (c *Catalog) Len() int {
	return len(c.videos)
}

// SortByTitle sorts videos in place by title using ordinal comparison
func SortByTitle(videos []Video) {
	slices.SortStableFunc(videos, func(a, b Video) int {
		return strings.Compare(a.Title, b.Title)
	})
}
