package player

import (
	"fmt"

	"Lumen/catalog"
	"Lumen/playlist"
)

// Random is the source used by PlayRandom. *rand.Rand satisfies it.
type Random interface {
	Intn(n int) int
}

// Entry is a video annotated with its flag state
type Entry struct {
	Video   *catalog.Video
	Flagged bool
	Reason  string
}

// Details formats the video, appending the flag reason when flagged
func (e Entry) Details() string {
	if !e.Flagged {
		return e.Video.Details()
	}
	return fmt.Sprintf("%s - FLAGGED (reason: %s)", e.Video.Details(), e.Reason)
}

type PlayResult struct {
	Stopped *catalog.Video // Previously selected video, nil if the slot was empty
	Playing *catalog.Video
}

type PauseResult struct {
	Video         *catalog.Video
	AlreadyPaused bool // True when the video was paused before the call, nothing changed
}

type Playback struct {
	Video  *catalog.Video
	Paused bool
}

type FlagResult struct {
	Video   *catalog.Video
	Reason  string
	Stopped *catalog.Video // Set when the flagged video was selected and got stopped
}

type PlaylistView struct {
	Name    string
	Entries []Entry // Playlist order, empty when the playlist has no videos
}

// Snapshot is the mutable part of a controller, used to save and restore sessions
type Snapshot struct {
	Playlists []playlist.Playlist
	Flags     map[string]string
}
