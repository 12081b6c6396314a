package playlist

import (
	"errors"
	"sort"

	"Lumen/utils"
)

var ErrAlreadyExists = errors.New("playlist already exists")

type Playlist struct {
	Name     string   // Name as given by its creator
	VideoIDs []string // Ordered video ids, no duplicates
}

// Contains reports whether id is already in the playlist
func (p *Playlist) Contains(id string) bool {
	return p.indexOf(id) >= 0
}

// Add appends id, returning false when it is already present
func (p *Playlist) Add(id string) bool {
	if p.Contains(id) {
		return false
	}
	p.VideoIDs = append(p.VideoIDs, id)
	return true
}

// Remove drops id, returning false when it was not present
func (p *Playlist) Remove(id string) bool {
	i := p.indexOf(id)
	if i < 0 {
		return false
	}
	p.VideoIDs = append(p.VideoIDs[:i], p.VideoIDs[i+1:]...)
	return true
}

func (p *Playlist) Clear() {
	p.VideoIDs = []string{}
}

func (p *Playlist) indexOf(id string) int {
	for i, v := range p.VideoIDs {
		if v == id {
			return i
		}
	}
	return -1
}

// Store holds playlists keyed by lower-cased name
type Store struct {
	playlists map[string]*Playlist
}

func NewStore() *Store {
	return &Store{playlists: make(map[string]*Playlist)}
}

// Create adds an empty playlist unless one with the same case-insensitive name exists
func (s *Store) Create(name string) (*Playlist, error) {
	key := utils.FoldKey(name)
	if _, exists := s.playlists[key]; exists {
		return nil, ErrAlreadyExists
	}
	p := &Playlist{Name: name, VideoIDs: []string{}}
	s.playlists[key] = p
	return p, nil
}

func (s *Store) Get(name string) (*Playlist, bool) {
	p, ok := s.playlists[utils.FoldKey(name)]
	return p, ok
}

// Delete removes the playlist, returning false when it did not exist
func (s *Store) Delete(name string) bool {
	key := utils.FoldKey(name)
	if _, exists := s.playlists[key]; !exists {
		return false
	}
	delete(s.playlists, key)
	return true
}

// ListAll returns every playlist sorted by lower-cased name
func (s *Store) ListAll() []*Playlist {
	keys := make([]string, 0, len(s.playlists))
	for k := range s.playlists {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make([]*Playlist, 0, len(keys))
	for _, k := range keys {
		out = append(out, s.playlists[k])
	}
	return out
}

func (s *Store) Len() int {
	return len(s.playlists)
}
