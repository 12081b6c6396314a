package yt

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"Lumen/catalog"

	"github.com/Strum355/log"
	"github.com/kkdai/youtube/v2"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/viper"
)

const metadataKeyPrefix = "ytmeta:"

// Fetcher retrieves metadata for a single video id
type Fetcher func(ctx context.Context, videoID string) (*Metadata, error)

type YouTubeManager struct {
	redis        *redis.Client
	cacheYoutube time.Duration
	fetch        Fetcher
}

// NewYouTubeManager creates a YouTubeManager with Redis cache. rdb may be nil to disable caching.
func NewYouTubeManager(rdb *redis.Client) *YouTubeManager {
	return &YouTubeManager{
		redis:        rdb,
		cacheYoutube: time.Duration(viper.GetInt("cache.youtube")) * time.Second,
		fetch:        FetchVideoMetadata,
	}
}

// GetVideoMetadata returns metadata for videoID, preferring the Redis cache
func (ym *YouTubeManager) GetVideoMetadata(ctx context.Context, videoID string) (*Metadata, error) {
	if ym.redis != nil {
		cached, err := ym.redis.Get(ctx, metadataKeyPrefix+videoID).Result()
		if err == nil && cached != "" {
			var meta Metadata
			if err := json.Unmarshal([]byte(cached), &meta); err == nil {
				return &meta, nil
			}
		} else if err != nil && err != redis.Nil {
			log.WithError(err).Error("Failed to read metadata cache")
		}
	}

	meta, err := ym.fetch(ctx, videoID)
	if err != nil {
		return nil, fmt.Errorf("fetch metadata %s: %w", videoID, err)
	}

	if ym.redis != nil {
		data, _ := json.Marshal(meta)
		if err := ym.redis.Set(ctx, metadataKeyPrefix+videoID, data, ym.cacheYoutube).Err(); err != nil {
			log.WithError(err).Error("Failed to write metadata cache")
		}
	}
	return meta, nil
}

// Videos resolves YouTube URLs or ids into catalog videos with limited concurrency.
// Results keep the order of refs. Refs that fail to resolve or repeat an earlier video are skipped.
func (ym *YouTubeManager) Videos(ctx context.Context, refs []string, maxConcurrency int) []catalog.Video {
	if maxConcurrency < 1 {
		maxConcurrency = 1
	}
	ordered := make([]*catalog.Video, len(refs))
	var wg sync.WaitGroup
	concurrencySem := make(chan struct{}, maxConcurrency)

	// Loops over each ref and runs go-routines to fetch concurrently
	for idx, ref := range refs {
		wg.Add(1)
		go func(index int, ref string) {
			defer wg.Done()

			concurrencySem <- struct{}{}
			defer func() { <-concurrencySem }()

			videoID, err := youtube.ExtractVideoID(ref)
			if err != nil {
				log.WithError(err).Error("Invalid YouTube reference " + ref)
				return
			}
			meta, err := ym.GetVideoMetadata(ctx, videoID)
			if err != nil {
				log.WithError(err).Error("Failed to resolve YouTube video " + videoID)
				return
			}
			v := meta.Video()
			ordered[index] = &v
		}(idx, ref)
	}

	wg.Wait()

	// Filter out failed fetches and repeated ids, keeping the first
	var videos []catalog.Video
	seen := make(map[string]bool)
	for _, v := range ordered {
		if v == nil {
			continue
		}
		if seen[v.ID] {
			log.Info("Skipping repeated YouTube video " + v.ID)
			continue
		}
		seen[v.ID] = true
		videos = append(videos, *v)
	}
	return videos
}
