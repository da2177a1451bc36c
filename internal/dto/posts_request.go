package dto

import (
	"github.com/WriteMind/blog-service/internal/model"
)

type CreatePostRequest struct {
	Title    string           `json:"title"`
	Content  string           `json:"content"`
	Tags     string           `json:"tags"`
	Status   model.PostStatus `json:"status"`
	ImageURL *string          `json:"imageUrl"`
}

type UpdatePostRequest struct {
	Title    string           `json:"title"`
	Content  string           `json:"content"`
	Tags     string           `json:"tags"`
	Status   model.PostStatus `json:"status"`
	ImageURL *string          `json:"imageUrl"`
}

// SavePostRequest is the editor's save input. ID is empty for new posts.
type SavePostRequest struct {
	ID       string           `json:"id"`
	Title    string           `json:"title"`
	Content  string           `json:"content"`
	Tags     string           `json:"tags"`
	Status   model.PostStatus `json:"status"`
	ImageURL *string          `json:"imageUrl"`
}
