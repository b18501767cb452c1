// ABOUTME: In-memory store of named playlists and their ordered videos
// ABOUTME: Enforces case-insensitive unique names and duplicate-free membership

// Package playlist manages named, ordered, duplicate-free lists of catalog videos.
package playlist

import (
	"errors"
	"slices"
	"strings"

	"github.com/google/uuid"

	"video-player/catalog"
)

var (
	// ErrPlaylistNotFound is returned when no playlist matches a name
	ErrPlaylistNotFound = errors.New("playlist does not exist")
	// ErrAlreadyExists is returned when creating a playlist whose name is taken
	ErrAlreadyExists = errors.New("a playlist with the same name already exists")
	// ErrDuplicateVideo is returned when a video is already in the playlist
	ErrDuplicateVideo = errors.New("video already added")
	// ErrVideoNotInPlaylist is returned when removing a video that is not a member
	ErrVideoNotInPlaylist = errors.New("video is not in playlist")
)

// Screen decides whether a video may be added to a playlist
type Screen interface {
	Check(videoID string) error
}

// Playlist is a named, ordered list of videos
type Playlist struct {
	ID     uuid.UUID
	Name   string // Display name, as given at creation
	videos []catalog.Video
}

// Videos returns a copy of the playlist's videos in insertion order
func (p *Playlist) Videos() []catalog.Video {
	return slices.Clone(p.videos)
}

// Len returns the number of videos in the playlist
func (p *Playlist) Len() int {
	return len(p.videos)
}

// indexOf returns the position of videoID or -1
func (p *Playlist) indexOf(videoID string) int {
	return slices.IndexFunc(p.videos, func(v catalog.Video) bool {
		return v.Is(videoID)
	})
}

// Store owns every playlist, keyed by lower-cased name
type Store struct {
	screen    Screen
	playlists map[string]*Playlist
}

// NewStore creates an empty store. screen is consulted before every add.
func NewStore(screen Screen) *Store {
	if screen == nil {
		panic("playlist: nil screen")
	}

	return &Store{
		screen:    screen,
		playlists: map[string]*Playlist{},
	}
}

func key(name string) string {
	return strings.ToLower(name)
}

// Create adds an empty playlist
func (s *Store) Create(name string) (*Playlist, error) {
	k := key(name)
	if _, exists := s.playlists[k]; exists {
		return nil, ErrAlreadyExists
	}

	p := &Playlist{ID: uuid.New(), Name: name}
	s.playlists[k] = p

	return p, nil
}

// Find looks a playlist up by name, ignoring case
func (s *Store) Find(name string) (*Playlist, bool) {
	p, ok := s.playlists[key(name)]

	return p, ok
}

func (s *Store) get(name string) (*Playlist, error) {
	p, ok := s.Find(name)
	if !ok {
		return nil, ErrPlaylistNotFound
	}

	return p, nil
}

// AddVideo appends video to the named playlist
func (s *Store) AddVideo(name string, video catalog.Video) error {
	p, err := s.get(name)
	if err != nil {
		return err
	}

	if err := s.screen.Check(video.ID); err != nil {
		return err
	}

	if p.indexOf(video.ID) >= 0 {
		return ErrDuplicateVideo
	}

	p.videos = append(p.videos, video)

	return nil
}

// RemoveVideo removes videoID from the named playlist and returns the removed video
func (s *Store) RemoveVideo(name, videoID string) (catalog.Video, error) {
	p, err := s.get(name)
	if err != nil {
		return catalog.Video{}, err
	}

	i := p.indexOf(videoID)
	if i < 0 {
		return catalog.Video{}, ErrVideoNotInPlaylist
	}

	removed := p.videos[i]
	p.videos = slices.Delete(p.videos, i, i+1)

	return removed, nil
}

// Contains reports whether videoID is in the named playlist
func (s *Store) Contains(name, videoID string) (bool, error) {
	p, err := s.get(name)
	if err != nil {
		return false, err
	}

	return p.indexOf(videoID) >= 0, nil
}

// Clear removes every video but keeps the playlist
func (s *Store) Clear(name string) error {
	p, err := s.get(name)
	if err != nil {
		return err
	}

	p.videos = nil

	return nil
}

// Delete removes the playlist
func (s *Store) Delete(name string) error {
	if _, err := s.get(name); err != nil {
		return err
	}

	delete(s.playlists, key(name))

	return nil
}

// ListNames returns the display names sorted with ordinal, case-sensitive order.
// Lookup ignores case but sorting does not, so "Zoo" sorts before "apple".
func (s *Store) ListNames() []string {
	names := make([]string, 0, len(s.playlists))
	for _, p := range s.playlists {
		names = append(names, p.Name)
	}

	slices.Sort(names)

	return names
}

// ListVideos returns the named playlist's videos in insertion order
func (s *Store) ListVideos(name string) ([]catalog.Video, error) {
	p, err := s.get(name)
	if err != nil {
		return nil, err
	}

	return p.Videos(), nil
}

// Len returns the number of playlists
func (s *Store) Len() int {
	return len(s.playlists)
}
