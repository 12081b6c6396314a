package commands

import (
	"context"
	"errors"
	"sort"
	"strconv"
	"strings"

	"Lumen/session"

	"github.com/Strum355/log"
	"github.com/agnivade/levenshtein"
)

// maxSuggestDistance bounds how far a typo may be from a command name to be suggested
const maxSuggestDistance = 3

type CommandHandler func(ctx context.Context, sess *session.Session, args []string) (*Response, *commandError)

type Command struct {
	Name        string // Upper-case command name
	Args        string // Argument synopsis shown in help
	Description string
	MinArgs     int    // Required argument count
	Usage       string // Message shown when arguments are missing
}

// Response is the outcome of one command
type Response struct {
	Lines   []string
	Choices []string // Video ids offered for selection, set by searches
}

// String joins the lines with newlines
func (r *Response) String() string {
	return strings.Join(r.Lines, "\n")
}

func reply(lines ...string) *Response {
	return &Response{Lines: lines}
}

type Commands struct {
	commands []*Command
	handlers map[string]CommandHandler
}

// NewRegistry returns a Commands with every video player command registered
func NewRegistry() *Commands {
	c := &Commands{}

	c.Add(&Command{Name: "NUMBER_OF_VIDEOS", Description: "Shows how many videos are in the library."}, numberOfVideos)
	c.Add(&Command{Name: "SHOW_ALL_VIDEOS", Description: "Lists all videos."}, showAllVideos)
	c.Add(&Command{
		Name: "PLAY", Args: "<video_id>", Description: "Plays the specified video.",
		MinArgs: 1, Usage: "Please enter PLAY command followed by video_id.",
	}, playVideo)
	c.Add(&Command{Name: "PLAY_RANDOM", Description: "Plays a random video from the library."}, playRandomVideo)
	c.Add(&Command{Name: "STOP", Description: "Stop the current video."}, stopVideo)
	c.Add(&Command{Name: "PAUSE", Description: "Pause the current video."}, pauseVideo)
	c.Add(&Command{Name: "CONTINUE", Description: "Resume the current paused video."}, continueVideo)
	c.Add(&Command{Name: "SHOW_PLAYING", Description: "Displays the title, video_id, video tags and paused status of the video that is currently playing (or paused)."}, showPlaying)
	c.Add(&Command{
		Name: "CREATE_PLAYLIST", Args: "<playlist_name>", Description: "Creates a new (empty) playlist with the provided name.",
		MinArgs: 1, Usage: "Please enter CREATE_PLAYLIST command followed by a playlist name.",
	}, createPlaylist)
	c.Add(&Command{
		Name: "ADD_TO_PLAYLIST", Args: "<playlist_name> <video_id>", Description: "Adds the requested video to the playlist.",
		MinArgs: 2, Usage: "Please enter ADD_TO_PLAYLIST command followed by a playlist name and video_id to add.",
	}, addToPlaylist)
	c.Add(&Command{
		Name: "REMOVE_FROM_PLAYLIST", Args: "<playlist_name> <video_id>", Description: "Removes the specified video from the specified playlist.",
		MinArgs: 2, Usage: "Please enter REMOVE_FROM_PLAYLIST command followed by a playlist name and video_id to remove.",
	}, removeFromPlaylist)
	c.Add(&Command{
		Name: "CLEAR_PLAYLIST", Args: "<playlist_name>", Description: "Removes all videos from the playlist.",
		MinArgs: 1, Usage: "Please enter CLEAR_PLAYLIST command followed by a playlist name.",
	}, clearPlaylist)
	c.Add(&Command{
		Name: "DELETE_PLAYLIST", Args: "<playlist_name>", Description: "Deletes the playlist.",
		MinArgs: 1, Usage: "Please enter DELETE_PLAYLIST command followed by a playlist name.",
	}, deletePlaylist)
	c.Add(&Command{
		Name: "SHOW_PLAYLIST", Args: "<playlist_name>", Description: "Show all videos in a playlist.",
		MinArgs: 1, Usage: "Please enter SHOW_PLAYLIST command followed by a playlist name.",
	}, showPlaylist)
	c.Add(&Command{Name: "SHOW_ALL_PLAYLISTS", Description: "Display all the available playlists."}, showAllPlaylists)
	c.Add(&Command{
		Name: "SEARCH_VIDEOS", Args: "<search_term>", Description: "Display all the videos whose titles contain the search_term.",
		MinArgs: 1, Usage: "Please enter SEARCH_VIDEOS command followed by a search term.",
	}, searchVideos)
	c.Add(&Command{
		Name: "SEARCH_VIDEOS_WITH_TAG", Args: "<tag_name>", Description: "Display all videos whose tags contains the provided tag.",
		MinArgs: 1, Usage: "Please enter SEARCH_VIDEOS_WITH_TAG command followed by a video tag.",
	}, searchVideosWithTag)
	c.Add(&Command{
		Name: "FLAG_VIDEO", Args: "<video_id> [flag_reason]", Description: "Mark a video as flagged.",
		MinArgs: 1, Usage: "Please enter FLAG_VIDEO command followed by a video_id and an optional flag reason.",
	}, flagVideo)
	c.Add(&Command{
		Name: "ALLOW_VIDEO", Args: "<video_id>", Description: "Removes a flag from a video.",
		MinArgs: 1, Usage: "Please enter ALLOW_VIDEO command followed by a video_id.",
	}, allowVideo)
	c.Add(&Command{Name: "HELP", Description: "Displays help."}, func(ctx context.Context, sess *session.Session, args []string) (*Response, *commandError) {
		return reply(c.Help()...), nil
	})

	return c
}

// Add registers a command and its handler
func (c *Commands) Add(com *Command, handler CommandHandler) {
	c.commands = append(c.commands, com)
	if c.handlers == nil {
		c.handlers = map[string]CommandHandler{}
	}
	c.handlers[com.Name] = handler
}

// All returns the registered commands in registration order
func (c *Commands) All() []*Command {
	out := make([]*Command, len(c.commands))
	copy(out, c.commands)
	return out
}

// Synopsis is the command name followed by its arguments
func (com *Command) Synopsis() string {
	if com.Args == "" {
		return com.Name
	}
	return com.Name + " " + com.Args
}

// Lookup returns the command registered under name, ignoring case
func (c *Commands) Lookup(name string) (*Command, bool) {
	name = strings.ToUpper(name)
	for _, com := range c.commands {
		if com.Name == name {
			return com, true
		}
	}
	return nil, false
}

// Help lists every command with its arguments and description
func (c *Commands) Help() []string {
	lines := []string{"Available commands:"}
	for _, com := range c.commands {
		lines = append(lines, "    "+com.Synopsis()+" - "+com.Description)
	}
	return lines
}

// Handle routes a line of input for sess. When a search is awaiting a selection
// the line is taken as that selection, otherwise it is dispatched as a command.
func (c *Commands) Handle(ctx context.Context, sess *session.Session, line string) *Response {
	var pending []string
	sess.Do(func() {
		pending = sess.TakePending()
	})
	if len(pending) > 0 {
		return c.Select(ctx, sess, pending, line)
	}
	return c.Dispatch(ctx, sess, line)
}

// Dispatch parses line as "COMMAND arg..." and runs it against sess
func (c *Commands) Dispatch(ctx context.Context, sess *session.Session, line string) *Response {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return reply()
	}
	name, args := strings.ToUpper(fields[0]), fields[1:]

	com, ok := c.Lookup(name)
	if !ok {
		return c.unknown(name)
	}

	ctx = withCommandFields(ctx, sess, com.Name)
	log.WithContext(ctx).Info("Invoking command")

	if len(args) < com.MinArgs {
		cErr := &commandError{errors.New("missing arguments for " + com.Name), com.Usage}
		return cErr.Handle()
	}

	var resp *Response
	var cErr *commandError
	sess.Do(func() {
		resp, cErr = c.handlers[com.Name](ctx, sess, args)
		if cErr == nil && len(resp.Choices) > 0 {
			sess.SetPending(resp.Choices)
		}
	})
	if cErr != nil {
		return cErr.Handle()
	}
	return resp
}

// Select plays candidates[n-1] when input is a number n within 1..len(candidates).
// Any other input is a silent no.
func (c *Commands) Select(ctx context.Context, sess *session.Session, candidates []string, input string) *Response {
	n, err := strconv.Atoi(strings.TrimSpace(input))
	if err != nil || n < 1 || n > len(candidates) {
		log.WithContext(ctx).Info("Search selection declined")
		return reply()
	}

	var resp *Response
	sess.Do(func() {
		resp = play(sess, candidates[n-1])
	})
	return resp
}

func (c *Commands) unknown(name string) *Response {
	resp := reply("Please enter a valid command, type HELP for a list of available commands.")
	if suggestion := c.suggest(name); suggestion != "" {
		resp.Lines = append(resp.Lines, "Did you mean "+suggestion+"?")
	}
	return resp
}

// suggest returns the closest command name, or "" when nothing is close enough
func (c *Commands) suggest(name string) string {
	type candidate struct {
		name     string
		distance int
	}
	var candidates []candidate
	for _, com := range c.commands {
		d := levenshtein.ComputeDistance(name, com.Name)
		if d <= maxSuggestDistance {
			candidates = append(candidates, candidate{com.Name, d})
		}
	}
	if len(candidates) == 0 {
		return ""
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].distance < candidates[j].distance
	})
	return candidates[0].name
}

// withCommandFields adds the session and command to the log fields already carried by ctx
func withCommandFields(ctx context.Context, sess *session.Session, name string) context.Context {
	fields := log.Fields{}
	if parent, ok := ctx.Value(log.Key).(log.Fields); ok {
		for k, v := range parent {
			fields[k] = v
		}
	}
	fields["session_id"] = sess.ID
	fields["session_key"] = sess.Key
	fields["command"] = name
	return context.WithValue(ctx, log.Key, fields)
}
