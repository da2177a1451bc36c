// Package session is the application-side consumer of the persistence
// gateway. It owns the in-memory post collection, enforces ownership before
// every mutation (the gateway itself is ownership-blind), implements the
// degraded local-save path, and feeds the recommender's signals.
package session

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/WriteMind/blog-service/internal/gateway"
	"github.com/WriteMind/blog-service/internal/localkv"
	"github.com/WriteMind/blog-service/internal/model"
	"github.com/WriteMind/blog-service/internal/recommend"
	"go.uber.org/zap"
)

var (
	ErrNotSignedIn      = errors.New("user is not signed in")
	ErrNotPostOwner     = errors.New("you can only modify your own posts")
	ErrNotCommentAuthor = errors.New("you can only delete your own comments")
	ErrPostNotFound     = errors.New("post not found")
)

type Session struct {
	logger  *zap.Logger
	gateway *gateway.Gateway
	recs    *recommend.Recommender
	drafts  localkv.Store
	now     func() time.Time

	mu    sync.Mutex
	user  model.User
	posts []model.Post
}

func New(logger *zap.Logger, gw *gateway.Gateway, recs *recommend.Recommender, drafts localkv.Store) *Session {
	return &Session{
		logger:  logger,
		gateway: gw,
		recs:    recs,
		drafts:  drafts,
		now:     time.Now,
	}
}

func (s *Session) SetUser(user model.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.user = user
}

func (s *Session) User() model.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.user
}

// RefreshPosts reloads the collection through the gateway. An empty result
// may mean the store was unreachable, so a non-empty collection is never
// replaced by nothing.
func (s *Session) RefreshPosts(ctx context.Context) []model.Post {
	posts := s.gateway.ListPosts(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	if len(posts) > 0 {
		s.posts = posts
	}
	return clonePosts(s.posts)
}

// Posts returns a copy of the in-memory collection.
func (s *Session) Posts() []model.Post {
	s.mu.Lock()
	defer s.mu.Unlock()
	return clonePosts(s.posts)
}

// ViewPost returns a post from the collection and records it as the
// reader's last-read signal.
func (s *Session) ViewPost(ctx context.Context, id string) (*model.Post, error) {
	post := s.findPost(id)
	if post == nil {
		return nil, ErrPostNotFound
	}
	s.recs.RecordRead(ctx, *post)
	return post, nil
}

// DeletePost removes a post after checking that the signed-in user is its
// author or an administrator.
func (s *Session) DeletePost(ctx context.Context, id string) error {
	user := s.User()
	if user.ID == "" {
		return ErrNotSignedIn
	}

	existing := s.findPost(id)
	if existing == nil {
		return ErrPostNotFound
	}
	if !canModify(user, existing.AuthorID) {
		return ErrNotPostOwner
	}

	if err := s.gateway.DeletePost(ctx, id); err != nil {
		return err
	}
	s.removePost(id)
	return nil
}

// ToggleLike flips the signed-in user's like on a post.
func (s *Session) ToggleLike(ctx context.Context, postID string) (bool, error) {
	user := s.User()
	if user.ID == "" {
		return false, ErrNotSignedIn
	}
	return s.gateway.ToggleLike(ctx, postID, user.ID)
}

// AddComment posts a comment under the signed-in identity.
func (s *Session) AddComment(ctx context.Context, postID, content string) (*model.Comment, error) {
	user := s.User()
	if user.ID == "" {
		return nil, ErrNotSignedIn
	}
	return s.gateway.AddComment(ctx, postID, content, user.ID, user.Name)
}

// DeleteComment removes a comment after checking that the signed-in user is
// its author or an administrator.
func (s *Session) DeleteComment(ctx context.Context, comment model.Comment) error {
	user := s.User()
	if user.ID == "" {
		return ErrNotSignedIn
	}
	if !canModify(user, comment.AuthorID) {
		return ErrNotCommentAuthor
	}
	return s.gateway.DeleteComment(ctx, comment.PostID, comment.ID)
}

// Recommendations returns the recommender's ranking over the in-memory
// collection, falling back to the latest published posts when it has no
// signal to work from.
func (s *Session) Recommendations(ctx context.Context, limit int) []model.Post {
	if limit <= 0 {
		return nil
	}
	candidates := s.Posts()

	recs := s.recs.Recommend(ctx, candidates, limit)
	if len(recs) > 0 {
		return recs
	}

	var published []model.Post
	for _, post := range candidates {
		if post.Status == model.StatusPublished {
			published = append(published, post)
		}
	}
	sort.SliceStable(published, func(i, j int) bool {
		return published[i].UpdatedAt.After(published[j].UpdatedAt)
	})
	if len(published) > limit {
		published = published[:limit]
	}
	return published
}

func canModify(user model.User, authorID string) bool {
	return user.Admin || user.ID == authorID
}

func (s *Session) findPost(id string) *model.Post {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, post := range s.posts {
		if post.ID == id {
			found := post
			return &found
		}
	}
	return nil
}

func (s *Session) prependPost(post model.Post) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.posts = append([]model.Post{post}, s.posts...)
}

func (s *Session) mergePost(post model.Post) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.posts {
		if s.posts[i].ID == post.ID {
			s.posts[i] = post
			return
		}
	}
	s.posts = append([]model.Post{post}, s.posts...)
}

func (s *Session) removePost(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.posts {
		if s.posts[i].ID == id {
			s.posts = append(s.posts[:i], s.posts[i+1:]...)
			return
		}
	}
}

func clonePosts(posts []model.Post) []model.Post {
	out := make([]model.Post, len(posts))
	copy(out, posts)
	return out
}
