package commands

import (
	"context"
	"fmt"

	"Lumen/player"
	"Lumen/session"
)

// playVideo plays the given video, stopping whatever was selected before
func playVideo(ctx context.Context, sess *session.Session, args []string) (*Response, *commandError) {
	return play(sess, args[0]), nil
}

// play runs Play on the session and renders the outcome. Callers hold the session lock.
func play(sess *session.Session, id string) *Response {
	res, err := sess.Player.Play(id)
	if err != nil {
		return reply("Cannot play video: " + describe(err))
	}
	return reply(playLines(res)...)
}

func playLines(res player.PlayResult) []string {
	var lines []string
	if res.Stopped != nil {
		lines = append(lines, "Stopping video: "+res.Stopped.Title)
	}
	return append(lines, "Playing video: "+res.Playing.Title)
}

// playRandomVideo plays a random video that is not flagged
func playRandomVideo(ctx context.Context, sess *session.Session, args []string) (*Response, *commandError) {
	res, err := sess.Player.PlayRandom()
	if err != nil {
		return reply(describe(err)), nil
	}
	return reply(playLines(res)...), nil
}

// stopVideo stops the current video
func stopVideo(ctx context.Context, sess *session.Session, args []string) (*Response, *commandError) {
	stopped, err := sess.Player.Stop()
	if err != nil {
		return reply("Cannot stop video: " + describe(err)), nil
	}
	return reply("Stopping video: " + stopped.Title), nil
}

// pauseVideo pauses the current video
func pauseVideo(ctx context.Context, sess *session.Session, args []string) (*Response, *commandError) {
	res, err := sess.Player.Pause()
	if err != nil {
		return reply("Cannot pause video: " + describe(err)), nil
	}
	if res.AlreadyPaused {
		return reply("Video already paused: " + res.Video.Title), nil
	}
	return reply("Pausing video: " + res.Video.Title), nil
}

// continueVideo resumes the paused video
func continueVideo(ctx context.Context, sess *session.Session, args []string) (*Response, *commandError) {
	video, err := sess.Player.Resume()
	if err != nil {
		return reply("Cannot continue video: " + describe(err)), nil
	}
	return reply("Continuing video: " + video.Title), nil
}

// showPlaying shows the selected video and whether it is paused
func showPlaying(ctx context.Context, sess *session.Session, args []string) (*Response, *commandError) {
	pb, ok := sess.Player.Current()
	if !ok {
		return reply("No video is currently playing"), nil
	}
	suffix := ""
	if pb.Paused {
		suffix = " - PAUSED"
	}
	return reply(fmt.Sprintf("Currently playing: %s%s", pb.Video.Details(), suffix)), nil
}
