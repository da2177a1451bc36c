package dto

import (
	"github.com/WriteMind/blog-service/internal/model"
)

type SaveStatus string

const (
	// SavedRemote means the post reached the remote store.
	SavedRemote SaveStatus = "remote"
	// SavedLocal means the remote write failed after retries and the post
	// was kept in the in-memory collection only. It is lost on restart.
	SavedLocal SaveStatus = "local"
	SaveFailed SaveStatus = "failed"
)

// SaveResult is the tagged outcome of a save; callers branch on Status
// instead of catching errors. Message is ready for a transient notification.
type SaveResult struct {
	Status  SaveStatus  `json:"status"`
	Post    *model.Post `json:"post,omitempty"`
	Message string      `json:"message"`
	Err     error       `json:"-"`
}
