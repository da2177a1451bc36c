package model

import (
	"strings"
	"time"
)

// TagSignal captures the tag set of the most recent post a user read or
// published. At most one signal of each kind exists at a time; it is fully
// overwritten by the next qualifying action.
type TagSignal struct {
	PostID    string    `json:"postId"`
	Tags      []string  `json:"tags"`
	Timestamp time.Time `json:"timestamp"`
}

// NormalizeTags splits a comma-delimited tag string into trimmed, lower-cased
// tags, dropping empty entries.
func NormalizeTags(csv string) []string {
	var tags []string
	for _, tag := range strings.Split(csv, ",") {
		tag = strings.ToLower(strings.TrimSpace(tag))
		if tag != "" {
			tags = append(tags, tag)
		}
	}
	return tags
}
