// ABOUTME: Tests for the playback state machine
// ABOUTME: Covers every transition, flag interaction and seeded random selection

package player

import (
	"errors"
	"testing"

	"video-player/catalog"
	"video-player/moderation"
)

var (
	v1 = catalog.NewVideo("v1", "Amazing Cat Video", "#cat", "#animal")
	v2 = catalog.NewVideo("v2", "Funny Dogs", "#dog", "#animal")
	v3 = catalog.NewVideo("v3", "Life at Google", "#google")
)

// fixedRand always returns the same index (clamped to n)
type fixedRand struct {
	index int
	calls []int
}

func (r *fixedRand) IntN(n int) int {
	r.calls = append(r.calls, n)
	if r.index >= n {
		return n - 1
	}

	return r.index
}

func newTestPlayer() (*Player, *moderation.Registry, *fixedRand) {
	flags := moderation.NewRegistry()
	rnd := &fixedRand{}

	return New(flags, rnd), flags, rnd
}

func TestPlayThenStop(t *testing.T) {
	for _, video := range []catalog.Video{v1, v2, v3} {
		t.Run(video.ID, func(t *testing.T) {
			p, _, _ := newTestPlayer()

			if _, err := p.Play(video); err != nil {
				t.Fatalf("Play failed: %v", err)
			}

			ev, err := p.Stop()
			if err != nil {
				t.Fatalf("Stop failed: %v", err)
			}

			if ev.Kind != EventStopped || ev.Video.ID != video.ID {
				t.Errorf("Unexpected stop event: %+v", ev)
			}

			if p.State() != Stopped {
				t.Errorf("Expected Stopped, got %s", p.State())
			}
		})
	}
}

func TestStopWhenStopped(t *testing.T) {
	p, _, _ := newTestPlayer()

	if _, err := p.Stop(); !errors.Is(err, ErrNothingPlaying) {
		t.Errorf("Expected ErrNothingPlaying, got %v", err)
	}
}

// TestPlayReplacesCurrent covers Stopped -> Playing(v1) -> Playing(v2)
func TestPlayReplacesCurrent(t *testing.T) {
	p, _, _ := newTestPlayer()

	events, err := p.Play(v1)
	if err != nil {
		t.Fatalf("Play v1 failed: %v", err)
	}

	if len(events) != 1 || events[0].Kind != EventStarted {
		t.Fatalf("Expected a single start event, got %+v", events)
	}

	events, err = p.Play(v2)
	if err != nil {
		t.Fatalf("Play v2 failed: %v", err)
	}

	if len(events) != 2 {
		t.Fatalf("Expected stop and start events, got %+v", events)
	}

	if events[0].Kind != EventStopped || events[0].Video.ID != "v1" {
		t.Errorf("Expected stop of v1 first, got %+v", events[0])
	}

	if events[1].Kind != EventStarted || events[1].Video.ID != "v2" {
		t.Errorf("Expected start of v2 second, got %+v", events[1])
	}

	if cur, _ := p.Current(); cur.ID != "v2" || p.State() != Playing {
		t.Errorf("Expected Playing(v2), got %s(%s)", p.State(), cur.ID)
	}
}

func TestPlayFromPausedResetsPause(t *testing.T) {
	p, _, _ := newTestPlayer()
	_, _ = p.Play(v1)
	_, _ = p.Pause()

	events, err := p.Play(v2)
	if err != nil {
		t.Fatalf("Play failed: %v", err)
	}

	if len(events) != 2 {
		t.Errorf("Expected stop and start events, got %d", len(events))
	}

	if p.State() != Playing {
		t.Errorf("Expected Playing, got %s", p.State())
	}
}

// TestPlayFlagged covers flag "Dead link" then play: refused, still Stopped
func TestPlayFlagged(t *testing.T) {
	p, flags, _ := newTestPlayer()
	_, _ = flags.Flag("v1", "Dead link")

	events, err := p.Play(v1)
	if !errors.Is(err, moderation.ErrVideoFlagged) {
		t.Fatalf("Expected ErrVideoFlagged, got %v", err)
	}

	var fe *moderation.FlaggedError
	if !errors.As(err, &fe) || fe.Reason != "Dead link" {
		t.Errorf("Expected reason Dead link, got %v", err)
	}

	if len(events) != 0 {
		t.Errorf("Expected no events, got %+v", events)
	}

	if p.State() != Stopped {
		t.Errorf("Expected Stopped, got %s", p.State())
	}
}

func TestPlayFlaggedKeepsCurrent(t *testing.T) {
	p, flags, _ := newTestPlayer()
	_, _ = p.Play(v1)
	_, _ = p.Pause()
	_, _ = flags.Flag("v2", "")

	if _, err := p.Play(v2); err == nil {
		t.Fatal("Expected flagged play to fail")
	}

	if cur, _ := p.Current(); cur.ID != "v1" || p.State() != Paused {
		t.Errorf("Expected Paused(v1) unchanged, got %s(%s)", p.State(), cur.ID)
	}
}

// TestPause covers Stopped -> NothingPlaying, Playing -> Paused, Paused -> already paused
func TestPause(t *testing.T) {
	p, _, _ := newTestPlayer()

	if _, err := p.Pause(); !errors.Is(err, ErrNothingPlaying) {
		t.Errorf("Expected ErrNothingPlaying, got %v", err)
	}

	_, _ = p.Play(v1)

	ev, err := p.Pause()
	if err != nil {
		t.Fatalf("Pause failed: %v", err)
	}

	if ev.Kind != EventPaused || p.State() != Paused || !p.Paused() {
		t.Errorf("Expected Paused, got %s (%+v)", p.State(), ev)
	}

	ev, err = p.Pause()
	if !errors.Is(err, ErrAlreadyPaused) {
		t.Errorf("Expected ErrAlreadyPaused, got %v", err)
	}

	if ev.Video.ID != "v1" {
		t.Errorf("Expected already-paused report to name v1, got %q", ev.Video.ID)
	}

	if p.State() != Paused {
		t.Errorf("Expected state unchanged, got %s", p.State())
	}
}

func TestContinue(t *testing.T) {
	p, _, _ := newTestPlayer()

	if _, err := p.Continue(); !errors.Is(err, ErrNothingPlaying) {
		t.Errorf("Expected ErrNothingPlaying, got %v", err)
	}

	_, _ = p.Play(v1)

	if _, err := p.Continue(); !errors.Is(err, ErrNotPaused) {
		t.Errorf("Expected ErrNotPaused, got %v", err)
	}

	_, _ = p.Pause()

	ev, err := p.Continue()
	if err != nil {
		t.Fatalf("Continue failed: %v", err)
	}

	if ev.Kind != EventContinued || p.State() != Playing {
		t.Errorf("Expected Playing after continue, got %s", p.State())
	}
}

func TestOnFlagged(t *testing.T) {
	tests := []struct {
		name      string
		pause     bool
		flagged   string
		wantStop  bool
		wantState State
	}{
		{"current while playing", false, "v1", true, Stopped},
		{"current while paused", true, "V1", true, Stopped},
		{"other video", false, "v2", false, Playing},
		{"other video paused", true, "v2", false, Paused},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, _, _ := newTestPlayer()
			_, _ = p.Play(v1)

			if tt.pause {
				_, _ = p.Pause()
			}

			ev, stopped := p.OnFlagged(tt.flagged)
			if stopped != tt.wantStop {
				t.Errorf("OnFlagged stopped = %v, want %v", stopped, tt.wantStop)
			}

			if stopped && (ev.Kind != EventStopped || ev.Video.ID != "v1") {
				t.Errorf("Unexpected event: %+v", ev)
			}

			if p.State() != tt.wantState {
				t.Errorf("Expected %s, got %s", tt.wantState, p.State())
			}
		})
	}
}

func TestOnFlaggedWhenStopped(t *testing.T) {
	p, _, _ := newTestPlayer()

	if _, stopped := p.OnFlagged("v1"); stopped {
		t.Error("Expected no stop when nothing is playing")
	}
}

func TestPlayRandomSkipsFlagged(t *testing.T) {
	p, flags, rnd := newTestPlayer()
	_, _ = flags.Flag("v1", "")

	rnd.index = 0

	events, err := p.PlayRandom([]catalog.Video{v1, v2, v3})
	if err != nil {
		t.Fatalf("PlayRandom failed: %v", err)
	}

	if len(rnd.calls) != 1 || rnd.calls[0] != 2 {
		t.Errorf("Expected a draw over 2 available videos, got %v", rnd.calls)
	}

	if events[len(events)-1].Video.ID != "v2" {
		t.Errorf("Expected v2 to play, got %+v", events)
	}
}

func TestPlayRandomAllFlagged(t *testing.T) {
	p, flags, rnd := newTestPlayer()
	_, _ = flags.Flag("v1", "")
	_, _ = flags.Flag("v2", "")

	if _, err := p.PlayRandom([]catalog.Video{v1, v2}); !errors.Is(err, ErrNoAvailableVideos) {
		t.Errorf("Expected ErrNoAvailableVideos, got %v", err)
	}

	if _, err := p.PlayRandom(nil); !errors.Is(err, ErrNoAvailableVideos) {
		t.Errorf("Expected ErrNoAvailableVideos for empty catalog, got %v", err)
	}

	if len(rnd.calls) != 0 {
		t.Errorf("Expected no random draw, got %v", rnd.calls)
	}
}

func TestStateString(t *testing.T) {
	for state, want := range map[State]string{Stopped: "Stopped", Playing: "Playing", Paused: "Paused", State(9): "Unknown"} {
		if got := state.String(); got != want {
			t.Errorf("State(%d).String() = %q, want %q", state, got, want)
		}
	}
}
