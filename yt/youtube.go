package yt

import (
	"context"

	"github.com/kkdai/youtube/v2"
)

// FetchVideoMetadata fetches basic metadata for a given videoID from YouTube
func FetchVideoMetadata(ctx context.Context, videoID string) (*Metadata, error) {
	client := youtube.Client{}
	video, err := client.GetVideoContext(ctx, videoID)
	if err != nil {
		return nil, err
	}
	return &Metadata{
		ID:          video.ID,
		Title:       video.Title,
		Author:      video.Author,
		Description: video.Description,
		Duration:    video.Duration,
	}, nil
}
