package gateway

import (
	"context"
	"fmt"

	"github.com/WriteMind/blog-service/internal/docstore"
)

func likesCollection(postID string) string {
	return fmt.Sprintf("%s/%s/likes", POSTS_COLLECTION, postID)
}

func likePath(postID, userID string) string {
	return likesCollection(postID) + "/" + userID
}

// ToggleLike flips the like record for (postID, userID): an existing record
// is removed and false returned, otherwise one is created and true returned.
// Calling twice restores the original state.
func (g *Gateway) ToggleLike(ctx context.Context, postID, userID string) (bool, error) {
	if postID == "" || userID == "" {
		return false, ErrMissingParameters
	}

	err := g.withRetry(ctx, "check like", func() error {
		_, err := g.store.Get(ctx, likePath(postID, userID))
		return err
	})
	switch {
	case err == nil:
		err := g.withRetry(ctx, "unlike post", func() error {
			return g.store.Delete(ctx, likePath(postID, userID))
		})
		if err != nil {
			g.logger.Sugar().Errorf("failed to remove user(%s) like on post(%s): %s", userID, postID, err.Error())
			return false, err
		}
		return false, nil

	case docstore.IsNotFound(err):
		data := map[string]any{
			"userId":    userID,
			"createdAt": docstore.ServerTimestamp,
		}
		err := g.withRetry(ctx, "like post", func() error {
			return g.store.Set(ctx, likePath(postID, userID), data)
		})
		if err != nil {
			g.logger.Sugar().Errorf("failed to add user(%s) like on post(%s): %s", userID, postID, err.Error())
			return false, err
		}
		return true, nil

	default:
		g.logger.Sugar().Errorf("failed to check user(%s) like on post(%s): %s", userID, postID, err.Error())
		return false, err
	}
}

// LikeCount is the cardinality of the post's like collection. An absent
// subcollection is indistinguishable from zero likes at this layer, so any
// failure yields 0.
func (g *Gateway) LikeCount(ctx context.Context, postID string) int {
	docs, err := g.store.Query(ctx, likesCollection(postID), docstore.Query{})
	if err != nil {
		g.logger.Sugar().Errorf("failed to count likes on post(%s): %s", postID, err.Error())
		return 0
	}
	return len(docs)
}

// HasLiked reports whether the user's like record exists. Read failures are
// reported as false; this is display state, not an authorization input.
func (g *Gateway) HasLiked(ctx context.Context, postID, userID string) bool {
	_, err := g.store.Get(ctx, likePath(postID, userID))
	if err != nil {
		if !docstore.IsNotFound(err) {
			g.logger.Sugar().Errorf("failed to check user(%s) like on post(%s): %s", userID, postID, err.Error())
		}
		return false
	}
	return true
}
