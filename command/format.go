// ABOUTME: Text presentation of videos, player events and failures
// ABOUTME: Reproduces the messages of the classic command-line video player

package command

import (
	"errors"
	"fmt"
	"strconv"

	"video-player/catalog"
	"video-player/moderation"
	"video-player/player"
)

// describeVideo renders "Title (id) [tags]" plus a flag suffix when flagged
func (d *Dispatcher) describeVideo(v catalog.Video) string {
	if reason, flagged := d.flags.Reason(v.ID); flagged {
		return fmt.Sprintf("%s - FLAGGED (reason: %s)", v, reason)
	}

	return v.String()
}

// numbered renders search results as "1) Title (id) [tags]"
func numbered(videos []catalog.Video) []string {
	lines := make([]string, len(videos))
	for i, v := range videos {
		lines[i] = strconv.Itoa(i+1) + ") " + v.String()
	}

	return lines
}

// eventLine renders a player event
func eventLine(ev player.Event) string {
	switch ev.Kind {
	case player.EventStarted:
		return "Playing video: " + ev.Video.Title
	case player.EventStopped:
		return "Stopping video: " + ev.Video.Title
	case player.EventPaused:
		return "Pausing video: " + ev.Video.Title
	case player.EventContinued:
		return "Continuing video: " + ev.Video.Title
	default:
		return ""
	}
}

func eventLines(events []player.Event) []string {
	lines := make([]string, 0, len(events))
	for _, ev := range events {
		lines = append(lines, eventLine(ev))
	}

	return lines
}

// reason explains err the way the command-line messages phrase it
func reason(err error) string {
	var flagged *moderation.FlaggedError

	switch {
	case errors.As(err, &flagged):
		return fmt.Sprintf("Video is currently flagged (reason: %s)", flagged.Reason)
	case errors.Is(err, catalog.ErrVideoNotFound):
		return "Video does not exist"
	case errors.Is(err, moderation.ErrAlreadyFlagged):
		return "Video is already flagged"
	case errors.Is(err, moderation.ErrNotFlagged):
		return "Video is not flagged"
	case errors.Is(err, player.ErrNothingPlaying):
		return "No video is currently playing"
	case errors.Is(err, player.ErrNotPaused):
		return "Video is not paused"
	default:
		return capitalize(err.Error())
	}
}

// capitalize upper-cases the first ASCII letter of an error message
func capitalize(s string) string {
	if s == "" || s[0] < 'a' || s[0] > 'z' {
		return s
	}

	return string(s[0]-'a'+'A') + s[1:]
}
