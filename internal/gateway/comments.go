package gateway

import (
	"context"
	"fmt"
	"time"

	"github.com/WriteMind/blog-service/internal/docstore"
	"github.com/WriteMind/blog-service/internal/model"
)

func commentsCollection(postID string) string {
	return fmt.Sprintf("%s/%s/comments", POSTS_COLLECTION, postID)
}

func commentPath(postID, commentID string) string {
	return commentsCollection(postID) + "/" + commentID
}

// AddComment appends a comment to a post. All four arguments are required.
func (g *Gateway) AddComment(ctx context.Context, postID, content, userID, userName string) (*model.Comment, error) {
	if postID == "" || content == "" || userID == "" || userName == "" {
		return nil, ErrMissingParameters
	}

	data := map[string]any{
		"content":    content,
		"authorId":   userID,
		"authorName": userName,
		"createdAt":  docstore.ServerTimestamp,
	}

	var id string
	err := g.withRetry(ctx, "add comment", func() error {
		var addErr error
		id, addErr = g.store.Add(ctx, commentsCollection(postID), data)
		return addErr
	})
	if err != nil {
		g.logger.Sugar().Errorf("failed to add user(%s) comment on post(%s): %s", userID, postID, err.Error())
		return nil, err
	}

	return &model.Comment{
		ID:         id,
		PostID:     postID,
		AuthorID:   userID,
		AuthorName: userName,
		Content:    content,
		CreatedAt:  time.Now().UTC(),
	}, nil
}

// Comments returns a post's comments, newest first. Fails closed to an
// empty slice.
func (g *Gateway) Comments(ctx context.Context, postID string) []model.Comment {
	docs, err := g.store.Query(ctx, commentsCollection(postID), docstore.Query{OrderBy: "createdAt", Descending: true})
	if err != nil {
		g.logger.Sugar().Errorf("failed to get comments on post(%s): %s", postID, err.Error())
		return nil
	}

	comments := make([]model.Comment, 0, len(docs))
	for _, doc := range docs {
		comments = append(comments, model.Comment{
			ID:         doc.ID,
			PostID:     postID,
			AuthorID:   asString(doc.Data["authorId"]),
			AuthorName: asString(doc.Data["authorName"]),
			Content:    asString(doc.Data["content"]),
			CreatedAt:  asTime(doc.Data["createdAt"]),
		})
	}
	return comments
}

// DeleteComment removes a comment. Authorization (author or administrator)
// is enforced by the caller.
func (g *Gateway) DeleteComment(ctx context.Context, postID, commentID string) error {
	if postID == "" || commentID == "" {
		return ErrMissingParameters
	}

	err := g.withRetry(ctx, "delete comment", func() error {
		return g.store.Delete(ctx, commentPath(postID, commentID))
	})
	if err != nil {
		g.logger.Sugar().Errorf("failed to delete comment(%s) on post(%s): %s", commentID, postID, err.Error())
		return err
	}
	return nil
}
