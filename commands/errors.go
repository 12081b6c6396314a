package commands

import (
	"errors"
	"fmt"

	"Lumen/player"

	"github.com/Strum355/log"
)

type commandError struct {
	err     error
	message string
}

// Handle logs the error and turns it into the reply shown to the user
func (e *commandError) Handle() *Response {
	log.WithError(e.err).Error(e.message)
	return reply(e.message)
}

// describe renders a controller failure the way it is shown to users
func describe(err error) string {
	var flagged *player.FlaggedError
	switch {
	case errors.As(err, &flagged):
		return fmt.Sprintf("Video is currently flagged (reason: %s)", flagged.Reason)
	case errors.Is(err, player.ErrNoSuchVideo):
		return "Video does not exist"
	case errors.Is(err, player.ErrNoSuchPlaylist):
		return "Playlist does not exist"
	case errors.Is(err, player.ErrAlreadyExists):
		return "A playlist with the same name already exists"
	case errors.Is(err, player.ErrAlreadyInPlaylist):
		return "Video already added"
	case errors.Is(err, player.ErrNotInPlaylist):
		return "Video is not in playlist"
	case errors.Is(err, player.ErrAlreadyFlagged):
		return "Video is already flagged"
	case errors.Is(err, player.ErrNotFlagged):
		return "Video is not flagged"
	case errors.Is(err, player.ErrNothingSelected):
		return "No video is currently playing"
	case errors.Is(err, player.ErrNotPaused):
		return "Video is not paused"
	case errors.Is(err, player.ErrNoneAvailable):
		return "No videos available"
	case errors.Is(err, player.ErrNoPlaylists):
		return "No playlists exist yet"
	}
	return err.Error()
}
