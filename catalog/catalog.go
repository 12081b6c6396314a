package catalog

import (
	"errors"
	"fmt"
)

var (
	ErrEmptyID     = errors.New("video id is empty")
	ErrDuplicateID = errors.New("duplicate video id")
)

// Catalog is the immutable set of videos available for a session
type Catalog struct {
	videos []*Video          // Videos in load order
	byID   map[string]*Video // Index by video id
}

// New builds a catalog, rejecting empty and duplicate ids
func New(videos []Video) (*Catalog, error) {
	c := &Catalog{
		videos: make([]*Video, 0, len(videos)),
		byID:   make(map[string]*Video, len(videos)),
	}
	for _, v := range videos {
		if v.ID == "" {
			return nil, fmt.Errorf("%w: %q", ErrEmptyID, v.Title)
		}
		if _, exists := c.byID[v.ID]; exists {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateID, v.ID)
		}
		video := &Video{
			Title: v.Title,
			ID:    v.ID,
			Tags:  append([]string(nil), v.Tags...),
		}
		c.videos = append(c.videos, video)
		c.byID[video.ID] = video
	}
	return c, nil
}

// Find returns the video with the given id
func (c *Catalog) Find(id string) (*Video, bool) {
	v, ok := c.byID[id]
	return v, ok
}

// ListAll returns every video in load order. The slice is a copy, callers may resort it.
func (c *Catalog) ListAll() []*Video {
	out := make([]*Video, len(c.videos))
	copy(out, c.videos)
	return out
}

func (c *Catalog) Len() int {
	return len(c.videos)
}
