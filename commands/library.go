package commands

import (
	"context"
	"fmt"
	"strings"

	"Lumen/catalog"
	"Lumen/session"
)

func numberOfVideos(ctx context.Context, sess *session.Session, args []string) (*Response, *commandError) {
	return reply(fmt.Sprintf("%d videos in the library", sess.Player.Count())), nil
}

func showAllVideos(ctx context.Context, sess *session.Session, args []string) (*Response, *commandError) {
	resp := reply("Here's a list of all available videos:")
	for _, e := range sess.Player.ListAll() {
		resp.Lines = append(resp.Lines, e.Details())
	}
	return resp, nil
}

// searchVideos offers every unflagged video whose title contains the term
func searchVideos(ctx context.Context, sess *session.Session, args []string) (*Response, *commandError) {
	term := strings.ToLower(strings.Join(args, " "))
	found, err := sess.Player.Search(term)
	if err != nil {
		return reply("No search results for " + term), nil
	}
	return searchResults(term, found), nil
}

// searchVideosWithTag offers every unflagged video carrying the tag
func searchVideosWithTag(ctx context.Context, sess *session.Session, args []string) (*Response, *commandError) {
	tag := strings.ToLower(args[0])
	found, err := sess.Player.SearchByTag(tag)
	if err != nil {
		return reply("No search results for " + tag), nil
	}
	return searchResults(tag, found), nil
}

// searchResults renders the numbered menu and records the candidates for selection
func searchResults(label string, videos []*catalog.Video) *Response {
	resp := reply(fmt.Sprintf("Here are the results for %s:", label))
	for i, v := range videos {
		resp.Lines = append(resp.Lines, fmt.Sprintf("%d) %s", i+1, v.Details()))
		resp.Choices = append(resp.Choices, v.ID)
	}
	resp.Lines = append(resp.Lines,
		"Would you like to play any of the above? If yes, specify the number of the video.",
		"If your answer is not a valid number, we will assume it's a no.",
	)
	return resp
}

// flagVideo flags a video, the rest of the line is the reason
func flagVideo(ctx context.Context, sess *session.Session, args []string) (*Response, *commandError) {
	res, err := sess.Player.Flag(args[0], strings.Join(args[1:], " "))
	if err != nil {
		return reply("Cannot flag video: " + describe(err)), nil
	}
	resp := reply()
	if res.Stopped != nil {
		resp.Lines = append(resp.Lines, "Stopping video: "+res.Stopped.Title)
	}
	resp.Lines = append(resp.Lines, fmt.Sprintf("Successfully flagged video: %s (reason: %s)", res.Video.Title, res.Reason))
	return resp, nil
}

func allowVideo(ctx context.Context, sess *session.Session, args []string) (*Response, *commandError) {
	video, err := sess.Player.Unflag(args[0])
	if err != nil {
		return reply("Cannot remove flag from video: " + describe(err)), nil
	}
	return reply("Successfully removed flag from video: " + video.Title), nil
}
