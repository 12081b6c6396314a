package catalog

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

type tomlFile struct {
	Video []struct {
		Title string   `toml:"title"`
		ID    string   `toml:"id"`
		Tags  []string `toml:"tags"`
	} `toml:"video"`
}

// LoadFile reads a catalog from disk. Files ending in .toml hold [[video]] tables,
// anything else is read as "Title | id | tag1,tag2" lines.
func LoadFile(path string) (*Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open catalog: %w", err)
	}
	defer f.Close()

	var videos []Video
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		videos, err = ParseTOML(f)
	} else {
		videos, err = ParseLines(f)
	}
	if err != nil {
		return nil, fmt.Errorf("parse catalog %s: %w", path, err)
	}
	return New(videos)
}

// ParseTOML decodes [[video]] tables
func ParseTOML(r io.Reader) ([]Video, error) {
	var file tomlFile
	if _, err := toml.NewDecoder(r).Decode(&file); err != nil {
		return nil, err
	}
	videos := make([]Video, 0, len(file.Video))
	for _, v := range file.Video {
		videos = append(videos, Video{
			Title: strings.TrimSpace(v.Title),
			ID:    strings.TrimSpace(v.ID),
			Tags:  cleanTags(v.Tags),
		})
	}
	return videos, nil
}

// ParseLines reads one video per line in the form "Title | id | tag1,tag2"
func ParseLines(r io.Reader) ([]Video, error) {
	var videos []Video
	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		parts := strings.Split(line, "|")
		if len(parts) < 2 {
			return nil, fmt.Errorf("line %d: expected \"title | id | tags\"", lineNo)
		}
		video := Video{
			Title: strings.TrimSpace(parts[0]),
			ID:    strings.TrimSpace(parts[1]),
		}
		if len(parts) > 2 {
			video.Tags = cleanTags(strings.Split(parts[2], ","))
		}
		videos = append(videos, video)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return videos, nil
}

func cleanTags(raw []string) []string {
	tags := []string{}
	for _, t := range raw {
		if t = strings.TrimSpace(t); t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}
