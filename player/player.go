// ABOUTME: Playback state machine for the single "now playing" slot
// ABOUTME: Tracks Stopped/Playing/Paused and refuses flagged videos

// Package player owns the current video and its play/pause state.
//
// Every transition returns the events it produced instead of printing, so
// callers decide how to present them. Replacing one video with another is
// modelled as two transitions (stop, then start) and yields two events.
package player

import (
	"errors"

	"video-player/catalog"
)

var (
	// ErrNothingPlaying is returned by Stop, Pause and Continue from Stopped
	ErrNothingPlaying = errors.New("no video is currently playing")
	// ErrNotPaused is returned by Continue while Playing
	ErrNotPaused = errors.New("video is not paused")
	// ErrAlreadyPaused is returned by Pause while Paused; state is unchanged
	ErrAlreadyPaused = errors.New("video already paused")
	// ErrNoAvailableVideos is returned by PlayRandom when every video is flagged
	ErrNoAvailableVideos = errors.New("no videos available")
)

// State is the playback status
type State int

// Player states
const (
	Stopped State = iota
	Playing
	Paused
)

// String returns a human-readable label for the state
func (s State) String() string {
	switch s {
	case Stopped:
		return "Stopped"
	case Playing:
		return "Playing"
	case Paused:
		return "Paused"
	default:
		return "Unknown"
	}
}

// EventKind identifies the transition that produced an Event
type EventKind int

// Event kinds
const (
	EventStarted EventKind = iota
	EventStopped
	EventPaused
	EventContinued
)

// Event records one transition and the video it applied to
type Event struct {
	Kind  EventKind
	Video catalog.Video
}

// Screen decides whether a video may be played
type Screen interface {
	Check(videoID string) error
}

// Rand supplies random indexes; *math/rand/v2.Rand satisfies it
type Rand interface {
	IntN(n int) int
}

// Player holds the current video and pause flag.
// paused is only ever true while current is set.
type Player struct {
	screen  Screen
	rand    Rand
	current *catalog.Video
	paused  bool
}

// New creates a stopped player
func New(screen Screen, rnd Rand) *Player {
	if screen == nil || rnd == nil {
		panic("player: nil dependency")
	}

	return &Player{screen: screen, rand: rnd}
}

// State returns the current playback state
func (p *Player) State() State {
	switch {
	case p.current == nil:
		return Stopped
	case p.paused:
		return Paused
	default:
		return Playing
	}
}

// Paused reports whether the current video is paused
func (p *Player) Paused() bool {
	return p.paused
}

// Current returns the playing or paused video
func (p *Player) Current() (catalog.Video, bool) {
	if p.current == nil {
		return catalog.Video{}, false
	}

	return *p.current, true
}

// stop is the Playing/Paused -> Stopped transition
func (p *Player) stop() Event {
	ev := Event{Kind: EventStopped, Video: *p.current}
	p.current = nil
	p.paused = false

	return ev
}

// start is the Stopped -> Playing transition
func (p *Player) start(video catalog.Video) Event {
	p.current = &video
	p.paused = false

	return Event{Kind: EventStarted, Video: video}
}

// Play starts video, stopping whatever was playing first.
// A flagged video is refused and the state is left untouched.
func (p *Player) Play(video catalog.Video) ([]Event, error) {
	if err := p.screen.Check(video.ID); err != nil {
		return nil, err
	}

	var events []Event
	if p.current != nil {
		events = append(events, p.stop())
	}

	return append(events, p.start(video)), nil
}

// Stop stops the current video
func (p *Player) Stop() (Event, error) {
	if p.current == nil {
		return Event{}, ErrNothingPlaying
	}

	return p.stop(), nil
}

// Pause pauses the current video.
// Pausing twice returns ErrAlreadyPaused together with the paused video.
func (p *Player) Pause() (Event, error) {
	if p.current == nil {
		return Event{}, ErrNothingPlaying
	}

	ev := Event{Kind: EventPaused, Video: *p.current}
	if p.paused {
		return ev, ErrAlreadyPaused
	}

	p.paused = true

	return ev, nil
}

// Continue resumes a paused video
func (p *Player) Continue() (Event, error) {
	if p.current == nil {
		return Event{}, ErrNothingPlaying
	}

	if !p.paused {
		return Event{}, ErrNotPaused
	}

	p.paused = false

	return Event{Kind: EventContinued, Video: *p.current}, nil
}

// OnFlagged must be called after a video is flagged.
// If it is the current video, playback stops regardless of pause state.
func (p *Player) OnFlagged(videoID string) (Event, bool) {
	if p.current == nil || !p.current.Is(videoID) {
		return Event{}, false
	}

	return p.stop(), true
}

// PlayRandom plays a uniformly chosen video from candidates, skipping flagged ones
func (p *Player) PlayRandom(candidates []catalog.Video) ([]Event, error) {
	available := make([]catalog.Video, 0, len(candidates))

	for _, v := range candidates {
		if p.screen.Check(v.ID) == nil {
			available = append(available, v)
		}
	}

	if len(available) == 0 {
		return nil, ErrNoAvailableVideos
	}

	return p.Play(available[p.rand.IntN(len(available))])
}
