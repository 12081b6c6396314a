package yt

import (
	"regexp"
	"strings"
	"time"

	"Lumen/catalog"
)

// Metadata is the subset of YouTube video metadata cached in Redis
type Metadata struct {
	ID          string        `json:"id"`
	Title       string        `json:"title"`
	Author      string        `json:"author"`
	Description string        `json:"description"`
	Duration    time.Duration `json:"duration"`
}

var hashtagPattern = regexp.MustCompile(`#[\p{L}\p{N}_]+`)

// Video converts the metadata into a catalog video tagged with its description hashtags
func (m *Metadata) Video() catalog.Video {
	return catalog.Video{
		Title: m.Title,
		ID:    m.ID,
		Tags:  Hashtags(m.Description),
	}
}

// Hashtags returns the distinct lower-cased hashtags of text in order of appearance
func Hashtags(text string) []string {
	tags := []string{}
	seen := map[string]bool{}
	for _, tag := range hashtagPattern.FindAllString(text, -1) {
		tag = strings.ToLower(tag)
		if !seen[tag] {
			seen[tag] = true
			tags = append(tags, tag)
		}
	}
	return tags
}
