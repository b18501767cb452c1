// ABOUTME: Flag registry mapping video ids to the reason they were blocked
// ABOUTME: Provides the screen used by playlists and the player to refuse flagged videos

// Package moderation tracks flagged videos. A flagged video cannot be played
// or added to a playlist until it is allowed again.
package moderation

import (
	"errors"
	"fmt"
	"strings"
)

// DefaultReason is stored when a video is flagged without a reason
const DefaultReason = "Not supplied"

var (
	// ErrVideoFlagged is matched by *FlaggedError
	ErrVideoFlagged = errors.New("video is currently flagged")
	// ErrAlreadyFlagged is returned when flagging a video twice
	ErrAlreadyFlagged = errors.New("video is already flagged")
	// ErrNotFlagged is returned when allowing a video that has no flag
	ErrNotFlagged = errors.New("video is not flagged")
)

// FlaggedError reports that a video was refused because of its flag
type FlaggedError struct {
	VideoID string
	Reason  string
}

func (e *FlaggedError) Error() string {
	return fmt.Sprintf("%s (reason: %s)", ErrVideoFlagged, e.Reason)
}

// Is lets errors.Is(err, ErrVideoFlagged) match
func (e *FlaggedError) Is(target error) bool {
	return target == ErrVideoFlagged
}

// Registry holds the flagged videos keyed by lower-cased video id
type Registry struct {
	reasons map[string]string
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{reasons: map[string]string{}}
}

func key(videoID string) string {
	return strings.ToLower(videoID)
}

// Flag marks a video. An empty reason is stored as DefaultReason.
// Returns the stored reason.
func (r *Registry) Flag(videoID, reason string) (string, error) {
	k := key(videoID)
	if _, exists := r.reasons[k]; exists {
		return "", ErrAlreadyFlagged
	}

	if strings.TrimSpace(reason) == "" {
		reason = DefaultReason
	}

	r.reasons[k] = reason

	return reason, nil
}

// Allow removes a video's flag
func (r *Registry) Allow(videoID string) error {
	k := key(videoID)
	if _, exists := r.reasons[k]; !exists {
		return ErrNotFlagged
	}

	delete(r.reasons, k)

	return nil
}

// IsFlagged reports whether the video has a flag
func (r *Registry) IsFlagged(videoID string) bool {
	_, exists := r.reasons[key(videoID)]

	return exists
}

// Reason returns the stored reason for a flagged video
func (r *Registry) Reason(videoID string) (string, bool) {
	reason, exists := r.reasons[key(videoID)]

	return reason, exists
}

// Check returns a *FlaggedError for flagged videos and nil otherwise
func (r *Registry) Check(videoID string) error {
	if reason, exists := r.Reason(videoID); exists {
		return &FlaggedError{VideoID: videoID, Reason: reason}
	}

	return nil
}

// Len returns the number of flagged videos
func (r *Registry) Len() int {
	return len(r.reasons)
}
