package commands

import (
	"context"
	"fmt"

	"Lumen/session"
)

func createPlaylist(ctx context.Context, sess *session.Session, args []string) (*Response, *commandError) {
	name := args[0]
	if _, err := sess.Player.CreatePlaylist(name); err != nil {
		return reply("Cannot create playlist: " + describe(err)), nil
	}
	return reply("Successfully created new playlist: " + name), nil
}

func addToPlaylist(ctx context.Context, sess *session.Session, args []string) (*Response, *commandError) {
	name, id := args[0], args[1]
	video, err := sess.Player.AddToPlaylist(name, id)
	if err != nil {
		return reply(fmt.Sprintf("Cannot add video to %s: %s", name, describe(err))), nil
	}
	return reply(fmt.Sprintf("Added video to %s: %s", name, video.Title)), nil
}

func showAllPlaylists(ctx context.Context, sess *session.Session, args []string) (*Response, *commandError) {
	names, err := sess.Player.AllPlaylists()
	if err != nil {
		return reply(describe(err)), nil
	}
	return reply(append([]string{"Showing all playlists:"}, names...)...), nil
}

// showPlaylist lists the videos of a playlist in the order they were added
func showPlaylist(ctx context.Context, sess *session.Session, args []string) (*Response, *commandError) {
	name := args[0]
	view, err := sess.Player.ShowPlaylist(name)
	if err != nil {
		return reply(fmt.Sprintf("Cannot show playlist %s: %s", name, describe(err))), nil
	}
	resp := reply("Showing playlist: " + name)
	if len(view.Entries) == 0 {
		resp.Lines = append(resp.Lines, "No videos here yet")
		return resp, nil
	}
	for _, e := range view.Entries {
		resp.Lines = append(resp.Lines, e.Details())
	}
	return resp, nil
}

func removeFromPlaylist(ctx context.Context, sess *session.Session, args []string) (*Response, *commandError) {
	name, id := args[0], args[1]
	video, err := sess.Player.RemoveFromPlaylist(name, id)
	if err != nil {
		return reply(fmt.Sprintf("Cannot remove video from %s: %s", name, describe(err))), nil
	}
	return reply(fmt.Sprintf("Removed video from %s: %s", name, video.Title)), nil
}

func clearPlaylist(ctx context.Context, sess *session.Session, args []string) (*Response, *commandError) {
	name := args[0]
	if err := sess.Player.ClearPlaylist(name); err != nil {
		return reply(fmt.Sprintf("Cannot clear playlist %s: %s", name, describe(err))), nil
	}
	return reply("Successfully removed all videos from " + name), nil
}

func deletePlaylist(ctx context.Context, sess *session.Session, args []string) (*Response, *commandError) {
	name := args[0]
	if err := sess.Player.DeletePlaylist(name); err != nil {
		return reply(fmt.Sprintf("Cannot delete playlist %s: %s", name, describe(err))), nil
	}
	return reply("Deleted playlist: " + name), nil
}
