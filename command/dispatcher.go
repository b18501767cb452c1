// ABOUTME: Parses command lines and runs them against the catalog, playlists, flags and player
// ABOUTME: Returns text responses; never prints, so the REPL and the TUI share it

// Package command turns textual commands into operations on the video
// player's state and renders the results as lines of text.
package command

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math/rand/v2"
	"strconv"
	"strings"

	"video-player/catalog"
	"video-player/moderation"
	"video-player/player"
	"video-player/playlist"
)

const (
	invalidCommand = "Please enter a valid command, type HELP for a list of available commands."
	farewell       = "YouTube has now terminated its execution. Thank you and goodbye!"
	searchPrompt1  = "Would you like to play any of the above? If yes, specify the number of the video."
	searchPrompt2  = "If your answer is not a valid number, we will assume it's a no."
)

// Response is the outcome of one command
type Response struct {
	Lines   []string
	Choices []catalog.Video // Non-empty when the caller should read a selection next
	Quit    bool
}

func lines(l ...string) Response {
	return Response{Lines: l}
}

// Options configures a Dispatcher
type Options struct {
	Catalog       *catalog.Catalog
	Rand          player.Rand  // Seeded from the runtime when nil
	Logger        *slog.Logger // Discarded when nil
	DefaultReason string       // Flag reason used when none is given; empty means moderation.DefaultReason
}

// Dispatcher owns the playlist store, flag registry and player for one session
type Dispatcher struct {
	catalog       *catalog.Catalog
	flags         *moderation.Registry
	playlists     *playlist.Store
	player        *player.Player
	log           *slog.Logger
	defaultReason string
	handlers      map[string]handler
}

type handler struct {
	minArgs int
	usage   string
	run     func(d *Dispatcher, args []string) Response
}

// New creates a dispatcher with empty playlists and no flags
func New(opts Options) *Dispatcher {
	if opts.Catalog == nil {
		panic("command: nil catalog")
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	rnd := opts.Rand
	if rnd == nil {
		rnd = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}

	flags := moderation.NewRegistry()

	d := &Dispatcher{
		catalog:       opts.Catalog,
		flags:         flags,
		playlists:     playlist.NewStore(flags),
		player:        player.New(flags, rnd),
		log:           logger,
		defaultReason: opts.DefaultReason,
	}
	d.handlers = commandTable()

	return d
}

// Catalog returns the catalog in use
func (d *Dispatcher) Catalog() *catalog.Catalog {
	return d.catalog
}

// SetCatalog swaps in a freshly loaded catalog.
// Playlists, flags and the current video keep the records they already hold.
func (d *Dispatcher) SetCatalog(c *catalog.Catalog) {
	d.catalog = c
	d.log.Info("catalog replaced", "videos", c.Len())
}

// NowPlaying returns the current video and player state
func (d *Dispatcher) NowPlaying() (catalog.Video, player.State) {
	v, _ := d.player.Current()

	return v, d.player.State()
}

// Execute runs one command line
func (d *Dispatcher) Execute(line string) Response {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return Response{}
	}

	name := strings.ToUpper(fields[0])
	args := fields[1:]

	h, ok := d.handlers[name]
	if !ok {
		d.log.Debug("unknown command", "input", line)

		return lines(invalidCommand)
	}

	if len(args) < h.minArgs {
		return lines(h.usage)
	}

	d.log.Debug("command", "name", name, "args", args)

	return h.run(d, args)
}

// Choose handles the answer to a search prompt.
// A number in range plays that video; anything else is taken as "no".
func (d *Dispatcher) Choose(choices []catalog.Video, input string) Response {
	n, err := strconv.Atoi(strings.TrimSpace(input))
	if err != nil || n < 1 || n > len(choices) {
		return Response{}
	}

	return d.play(choices[n-1].ID)
}

func commandTable() map[string]handler {
	return map[string]handler{
		"NUMBER_OF_VIDEOS": {run: (*Dispatcher).numberOfVideos},
		"SHOW_ALL_VIDEOS":  {run: (*Dispatcher).showAllVideos},
		"PLAY": {1, "Please enter PLAY command followed by video_id.", func(d *Dispatcher, a []string) Response {
			return d.play(a[0])
		}},
		"PLAY_RANDOM":  {run: (*Dispatcher).playRandom},
		"STOP":         {run: (*Dispatcher).stop},
		"PAUSE":        {run: (*Dispatcher).pause},
		"CONTINUE":     {run: (*Dispatcher).continuePlayback},
		"SHOW_PLAYING": {run: (*Dispatcher).showPlaying},
		"CREATE_PLAYLIST": {1, "Please enter CREATE_PLAYLIST command followed by a playlist name.", func(d *Dispatcher, a []string) Response {
			return d.createPlaylist(a[0])
		}},
		"ADD_TO_PLAYLIST": {2, "Please enter ADD_TO_PLAYLIST command followed by a playlist name and video_id to add.", func(d *Dispatcher, a []string) Response {
			return d.addToPlaylist(a[0], a[1])
		}},
		"REMOVE_FROM_PLAYLIST": {2, "Please enter REMOVE_FROM_PLAYLIST command followed by a playlist name and video_id to remove.", func(d *Dispatcher, a []string) Response {
			return d.removeFromPlaylist(a[0], a[1])
		}},
		"CLEAR_PLAYLIST": {1, "Please enter CLEAR_PLAYLIST command followed by a playlist name.", func(d *Dispatcher, a []string) Response {
			return d.clearPlaylist(a[0])
		}},
		"DELETE_PLAYLIST": {1, "Please enter DELETE_PLAYLIST command followed by a playlist name.", func(d *Dispatcher, a []string) Response {
			return d.deletePlaylist(a[0])
		}},
		"SHOW_PLAYLIST": {1, "Please enter SHOW_PLAYLIST command followed by a playlist name.", func(d *Dispatcher, a []string) Response {
			return d.showPlaylist(a[0])
		}},
		"SHOW_ALL_PLAYLISTS": {run: (*Dispatcher).showAllPlaylists},
		"SEARCH_VIDEOS": {1, "Please enter SEARCH_VIDEOS command followed by a search term.", func(d *Dispatcher, a []string) Response {
			return d.searchResults(a[0], d.catalog.Search(a[0]))
		}},
		"SEARCH_VIDEOS_WITH_TAG": {1, "Please enter SEARCH_VIDEOS_WITH_TAG command followed by a video tag.", func(d *Dispatcher, a []string) Response {
			return d.searchResults(a[0], d.catalog.SearchByTag(a[0]))
		}},
		"FLAG_VIDEO": {1, "Please enter FLAG_VIDEO command followed by a video_id and an optional flag reason.", func(d *Dispatcher, a []string) Response {
			return d.flagVideo(a[0], strings.Join(a[1:], " "))
		}},
		"ALLOW_VIDEO": {1, "Please enter ALLOW_VIDEO command followed by a video_id.", func(d *Dispatcher, a []string) Response {
			return d.allowVideo(a[0])
		}},
		"HELP": {run: func(*Dispatcher, []string) Response { return lines(helpLines...) }},
		"EXIT": {run: func(*Dispatcher, []string) Response { return Response{Lines: []string{farewell}, Quit: true} }},
	}
}

func (d *Dispatcher) numberOfVideos(_ []string) Response {
	return lines(fmt.Sprintf("%d videos in the library", d.catalog.Len()))
}

func (d *Dispatcher) showAllVideos(_ []string) Response {
	videos := d.catalog.All()
	catalog.SortByTitle(videos)

	out := []string{"Here's a list of all available videos:"}
	for _, v := range videos {
		out = append(out, d.describeVideo(v))
	}

	return lines(out...)
}

func (d *Dispatcher) play(id string) Response {
	video, err := d.catalog.Lookup(id)
	if err == nil {
		var events []player.Event

		events, err = d.player.Play(video)
		if err == nil {
			return lines(eventLines(events)...)
		}
	}

	return lines("Cannot play video: " + reason(err))
}

func (d *Dispatcher) playRandom(_ []string) Response {
	events, err := d.player.PlayRandom(d.catalog.All())
	if errors.Is(err, player.ErrNoAvailableVideos) {
		return lines("No videos available")
	}

	if err != nil {
		return lines("Cannot play video: " + reason(err))
	}

	return lines(eventLines(events)...)
}

func (d *Dispatcher) stop(_ []string) Response {
	ev, err := d.player.Stop()
	if err != nil {
		return lines("Cannot stop video: " + reason(err))
	}

	return lines(eventLine(ev))
}

func (d *Dispatcher) pause(_ []string) Response {
	ev, err := d.player.Pause()

	switch {
	case errors.Is(err, player.ErrAlreadyPaused):
		return lines("Video already paused: " + ev.Video.Title)
	case err != nil:
		return lines("Cannot pause video: " + reason(err))
	default:
		return lines(eventLine(ev))
	}
}

func (d *Dispatcher) continuePlayback(_ []string) Response {
	ev, err := d.player.Continue()
	if err != nil {
		return lines("Cannot continue video: " + reason(err))
	}

	return lines(eventLine(ev))
}

func (d *Dispatcher) showPlaying(_ []string) Response {
	video, ok := d.player.Current()
	if !ok {
		return lines("No video is currently playing")
	}

	line := "Currently playing: " + video.String()
	if d.player.State() == player.Paused {
		line += " - PAUSED"
	}

	return lines(line)
}

func (d *Dispatcher) createPlaylist(name string) Response {
	p, err := d.playlists.Create(name)
	if err != nil {
		return lines("Cannot create playlist: " + reason(err))
	}

	d.log.Debug("playlist created", "name", p.Name, "id", p.ID)

	return lines("Successfully created new playlist: " + name)
}

func (d *Dispatcher) addToPlaylist(name, id string) Response {
	fail := func(err error) Response {
		return lines(fmt.Sprintf("Cannot add video to %s: %s", name, reason(err)))
	}

	// Playlist errors take precedence over video errors
	if _, ok := d.playlists.Find(name); !ok {
		return fail(playlist.ErrPlaylistNotFound)
	}

	video, err := d.catalog.Lookup(id)
	if err != nil {
		return fail(err)
	}

	if err := d.playlists.AddVideo(name, video); err != nil {
		return fail(err)
	}

	return lines(fmt.Sprintf("Added video to %s: %s", name, video.Title))
}

func (d *Dispatcher) removeFromPlaylist(name, id string) Response {
	fail := func(err error) Response {
		return lines(fmt.Sprintf("Cannot remove video from %s: %s", name, reason(err)))
	}

	if _, ok := d.playlists.Find(name); !ok {
		return fail(playlist.ErrPlaylistNotFound)
	}

	if _, err := d.catalog.Lookup(id); err != nil {
		return fail(err)
	}

	removed, err := d.playlists.RemoveVideo(name, id)
	if err != nil {
		return fail(err)
	}

	return lines(fmt.Sprintf("Removed video from %s: %s", name, removed.Title))
}

func (d *Dispatcher) clearPlaylist(name string) Response {
	if err := d.playlists.Clear(name); err != nil {
		return lines(fmt.Sprintf("Cannot clear playlist %s: %s", name, reason(err)))
	}

	return lines("Successfully removed all videos from " + name)
}

func (d *Dispatcher) deletePlaylist(name string) Response {
	if err := d.playlists.Delete(name); err != nil {
		return lines(fmt.Sprintf("Cannot delete playlist %s: %s", name, reason(err)))
	}

	return lines("Deleted playlist: " + name)
}

func (d *Dispatcher) showPlaylist(name string) Response {
	videos, err := d.playlists.ListVideos(name)
	if err != nil {
		return lines(fmt.Sprintf("Cannot show playlist %s: %s", name, reason(err)))
	}

	out := []string{"Showing playlist: " + name}
	if len(videos) == 0 {
		return lines(append(out, "No videos here yet")...)
	}

	for _, v := range videos {
		out = append(out, d.describeVideo(v))
	}

	return lines(out...)
}

func (d *Dispatcher) showAllPlaylists(_ []string) Response {
	names := d.playlists.ListNames()
	if len(names) == 0 {
		return lines("No playlists exist yet")
	}

	return lines(append([]string{"Showing all playlists:"}, names...)...)
}

// searchResults lists unflagged matches sorted by title and asks for a selection
func (d *Dispatcher) searchResults(term string, matches []catalog.Video) Response {
	var results []catalog.Video

	for _, v := range matches {
		if !d.flags.IsFlagged(v.ID) {
			results = append(results, v)
		}
	}

	if len(results) == 0 {
		return lines("No search results for " + term)
	}

	catalog.SortByTitle(results)

	out := []string{fmt.Sprintf("Here are the results for %s:", term)}
	out = append(out, numbered(results)...)
	out = append(out, searchPrompt1, searchPrompt2)

	return Response{Lines: out, Choices: results}
}

func (d *Dispatcher) flagVideo(id, why string) Response {
	video, err := d.catalog.Lookup(id)
	if err != nil {
		return lines("Cannot flag video: " + reason(err))
	}

	if strings.TrimSpace(why) == "" {
		why = d.defaultReason
	}

	stored, err := d.flags.Flag(video.ID, why)
	if err != nil {
		return lines("Cannot flag video: " + reason(err))
	}

	var out []string
	if ev, stopped := d.player.OnFlagged(video.ID); stopped {
		out = append(out, eventLine(ev))
	}

	d.log.Info("video flagged", "id", video.ID, "reason", stored)

	return lines(append(out, fmt.Sprintf("Successfully flagged video: %s (reason: %s)", video.Title, stored))...)
}

func (d *Dispatcher) allowVideo(id string) Response {
	video, err := d.catalog.Lookup(id)
	if err == nil {
		err = d.flags.Allow(video.ID)
	}

	if err != nil {
		return lines("Cannot remove flag from video: " + reason(err))
	}

	d.log.Info("video allowed", "id", video.ID)

	return lines("Successfully removed flag from video: " + video.Title)
}
