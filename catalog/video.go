package catalog

import (
	"fmt"
	"strings"
)

type Video struct {
	Title string   // Display title
	ID    string   // Unique, case-sensitive id
	Tags  []string // Tags in catalog order, may be empty
}

// Details formats the video as "Title (id) [tag1 tag2]"
func (v *Video) Details() string {
	return fmt.Sprintf("%s (%s) [%s]", v.Title, v.ID, strings.Join(v.Tags, " "))
}

// HasTag reports whether any tag matches tag case-insensitively
func (v *Video) HasTag(tag string) bool {
	for _, t := range v.Tags {
		if strings.EqualFold(t, tag) {
			return true
		}
	}
	return false
}
