package model

import (
	"time"
)

// Like marks that a user liked a post. There is at most one record per
// (post, user) pair; the like count of a post is the cardinality of its
// like collection, not a separate counter.
type Like struct {
	PostID    string    `json:"postId"`
	UserID    string    `json:"userId"`
	CreatedAt time.Time `json:"createdAt"`
}
