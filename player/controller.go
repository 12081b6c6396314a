package player

import (
	"sort"
	"strings"

	"Lumen/catalog"
	"Lumen/flags"
	"Lumen/playlist"
	"Lumen/utils"
)

// Controller owns the playlists, flags and playback slot of one session over a shared catalog
type Controller struct {
	catalog   *catalog.Catalog
	playlists *playlist.Store
	flags     *flags.Store
	random    Random

	current *catalog.Video // Selected video, nil when the slot is empty
	playing bool           // False when the selected video is paused
}

func New(c *catalog.Catalog, random Random) *Controller {
	return &Controller{
		catalog:   c,
		playlists: playlist.NewStore(),
		flags:     flags.NewStore(),
		random:    random,
	}
}

// Count returns the number of videos in the catalog
func (c *Controller) Count() int {
	return c.catalog.Len()
}

// ListAll returns every catalog video sorted by title, annotated with flags
func (c *Controller) ListAll() []Entry {
	videos := c.catalog.ListAll()
	sortByTitle(videos)
	return c.entries(videos)
}

// Play selects id as the playing video, stopping any current selection first
func (c *Controller) Play(id string) (PlayResult, error) {
	video, ok := c.catalog.Find(id)
	if !ok {
		return PlayResult{}, ErrNoSuchVideo
	}
	if c.flags.IsFlagged(id) {
		return PlayResult{}, &FlaggedError{Reason: c.flags.Reason(id)}
	}

	res := PlayResult{Stopped: c.current, Playing: video}
	c.current = video
	c.playing = true
	return res, nil
}

// Stop clears the playback slot and returns the video that was selected
func (c *Controller) Stop() (*catalog.Video, error) {
	if c.current == nil {
		return nil, ErrNothingSelected
	}
	stopped := c.current
	c.current = nil
	c.playing = false
	return stopped, nil
}

// PlayRandom plays a uniformly chosen video that is not flagged
func (c *Controller) PlayRandom() (PlayResult, error) {
	available := c.unflagged(c.catalog.ListAll())
	if len(available) == 0 {
		return PlayResult{}, ErrNoneAvailable
	}
	return c.Play(available[c.random.Intn(len(available))].ID)
}

func (c *Controller) Pause() (PauseResult, error) {
	if c.current == nil {
		return PauseResult{}, ErrNothingSelected
	}
	if !c.playing {
		return PauseResult{Video: c.current, AlreadyPaused: true}, nil
	}
	c.playing = false
	return PauseResult{Video: c.current}, nil
}

func (c *Controller) Resume() (*catalog.Video, error) {
	if c.current == nil {
		return nil, ErrNothingSelected
	}
	if c.playing {
		return nil, ErrNotPaused
	}
	c.playing = true
	return c.current, nil
}

// Current returns the selected video, false when the slot is empty
func (c *Controller) Current() (Playback, bool) {
	if c.current == nil {
		return Playback{}, false
	}
	return Playback{Video: c.current, Paused: !c.playing}, true
}

func (c *Controller) CreatePlaylist(name string) (*playlist.Playlist, error) {
	return c.playlists.Create(name)
}

func (c *Controller) AddToPlaylist(name, id string) (*catalog.Video, error) {
	p, ok := c.playlists.Get(name)
	if !ok {
		return nil, ErrNoSuchPlaylist
	}
	video, ok := c.catalog.Find(id)
	if !ok {
		return nil, ErrNoSuchVideo
	}
	if c.flags.IsFlagged(id) {
		return nil, &FlaggedError{Reason: c.flags.Reason(id)}
	}
	if !p.Add(id) {
		return nil, ErrAlreadyInPlaylist
	}
	return video, nil
}

// AllPlaylists returns playlist names sorted case-insensitively
func (c *Controller) AllPlaylists() ([]string, error) {
	if c.playlists.Len() == 0 {
		return nil, ErrNoPlaylists
	}
	var names []string
	for _, p := range c.playlists.ListAll() {
		names = append(names, p.Name)
	}
	return names, nil
}

func (c *Controller) ShowPlaylist(name string) (PlaylistView, error) {
	p, ok := c.playlists.Get(name)
	if !ok {
		return PlaylistView{}, ErrNoSuchPlaylist
	}
	videos := make([]*catalog.Video, 0, len(p.VideoIDs))
	for _, id := range p.VideoIDs {
		if v, ok := c.catalog.Find(id); ok {
			videos = append(videos, v)
		}
	}
	return PlaylistView{Name: p.Name, Entries: c.entries(videos)}, nil
}

func (c *Controller) RemoveFromPlaylist(name, id string) (*catalog.Video, error) {
	p, ok := c.playlists.Get(name)
	if !ok {
		return nil, ErrNoSuchPlaylist
	}
	video, ok := c.catalog.Find(id)
	if !ok {
		return nil, ErrNoSuchVideo
	}
	if !p.Remove(id) {
		return nil, ErrNotInPlaylist
	}
	return video, nil
}

// ClearPlaylist empties the playlist but keeps it
func (c *Controller) ClearPlaylist(name string) error {
	p, ok := c.playlists.Get(name)
	if !ok {
		return ErrNoSuchPlaylist
	}
	p.Clear()
	return nil
}

func (c *Controller) DeletePlaylist(name string) error {
	if !c.playlists.Delete(name) {
		return ErrNoSuchPlaylist
	}
	return nil
}

// Search matches term as a case-insensitive substring of unflagged titles
func (c *Controller) Search(term string) ([]*catalog.Video, error) {
	return c.search(func(v *catalog.Video) bool {
		return utils.ContainsFold(v.Title, term)
	})
}

// SearchByTag matches unflagged videos carrying tag, ignoring case
func (c *Controller) SearchByTag(tag string) ([]*catalog.Video, error) {
	return c.search(func(v *catalog.Video) bool {
		return v.HasTag(tag)
	})
}

// Flag hides id with reason, stopping it if it is the selected video
func (c *Controller) Flag(id, reason string) (FlagResult, error) {
	video, ok := c.catalog.Find(id)
	if !ok {
		return FlagResult{}, ErrNoSuchVideo
	}
	stored, err := c.flags.Flag(id, strings.TrimSpace(reason))
	if err != nil {
		return FlagResult{}, err
	}

	res := FlagResult{Video: video, Reason: stored}
	if c.current != nil && c.current.ID == id {
		res.Stopped, _ = c.Stop()
	}
	return res, nil
}

// Unflag clears the flag on id. Playback is not restored.
func (c *Controller) Unflag(id string) (*catalog.Video, error) {
	video, ok := c.catalog.Find(id)
	if !ok {
		return nil, ErrNoSuchVideo
	}
	if err := c.flags.Unflag(id); err != nil {
		return nil, err
	}
	return video, nil
}

// Snapshot copies the playlists and flags
func (c *Controller) Snapshot() Snapshot {
	snap := Snapshot{Flags: c.flags.All()}
	for _, p := range c.playlists.ListAll() {
		snap.Playlists = append(snap.Playlists, playlist.Playlist{
			Name:     p.Name,
			VideoIDs: append([]string{}, p.VideoIDs...),
		})
	}
	return snap
}

// Restore replaces playlists and flags with snap and empties the playback slot.
// Ids missing from the catalog and repeated playlist names are dropped.
func (c *Controller) Restore(snap Snapshot) {
	c.playlists = playlist.NewStore()
	c.flags = flags.NewStore()
	c.current = nil
	c.playing = false

	for id, reason := range snap.Flags {
		if _, ok := c.catalog.Find(id); ok {
			c.flags.Flag(id, reason)
		}
	}
	for _, sp := range snap.Playlists {
		p, err := c.playlists.Create(sp.Name)
		if err != nil {
			continue
		}
		for _, id := range sp.VideoIDs {
			if _, ok := c.catalog.Find(id); ok {
				p.Add(id)
			}
		}
	}
}

func (c *Controller) search(match func(v *catalog.Video) bool) ([]*catalog.Video, error) {
	var found []*catalog.Video
	for _, v := range c.unflagged(c.catalog.ListAll()) {
		if match(v) {
			found = append(found, v)
		}
	}
	if len(found) == 0 {
		return nil, ErrNoResults
	}
	sortByTitle(found)
	return found, nil
}

func (c *Controller) unflagged(videos []*catalog.Video) []*catalog.Video {
	out := videos[:0]
	for _, v := range videos {
		if !c.flags.IsFlagged(v.ID) {
			out = append(out, v)
		}
	}
	return out
}

func (c *Controller) entries(videos []*catalog.Video) []Entry {
	out := make([]Entry, 0, len(videos))
	for _, v := range videos {
		out = append(out, Entry{
			Video:   v,
			Flagged: c.flags.IsFlagged(v.ID),
			Reason:  c.flags.Reason(v.ID),
		})
	}
	return out
}

func sortByTitle(videos []*catalog.Video) {
	sort.SliceStable(videos, func(i, j int) bool {
		return utils.LessFold(videos[i].Title, videos[j].Title)
	})
}
