package player

import (
	"errors"
	"fmt"

	"Lumen/flags"
	"Lumen/playlist"
)

var (
	ErrNoSuchVideo       = errors.New("video does not exist")
	ErrNoSuchPlaylist    = errors.New("playlist does not exist")
	ErrAlreadyExists     = playlist.ErrAlreadyExists
	ErrAlreadyInPlaylist = errors.New("video already added")
	ErrNotInPlaylist     = errors.New("video is not in playlist")
	ErrAlreadyFlagged    = flags.ErrAlreadyFlagged
	ErrNotFlagged        = flags.ErrNotFlagged
	ErrFlagged           = errors.New("video is currently flagged")
	ErrNothingSelected   = errors.New("no video is currently playing")
	ErrNotPaused         = errors.New("video is not paused")
	ErrNoneAvailable     = errors.New("no videos available")
	ErrNoPlaylists       = errors.New("no playlists exist yet")
	ErrNoResults         = errors.New("no search results")
)

// FlaggedError is returned when an operation touches a flagged video. It matches ErrFlagged.
type FlaggedError struct {
	Reason string
}

func (e *FlaggedError) Error() string {
	return fmt.Sprintf("video is currently flagged (reason: %s)", e.Reason)
}

func (e *FlaggedError) Is(target error) bool {
	return target == ErrFlagged
}
