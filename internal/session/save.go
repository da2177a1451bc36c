package session

import (
	"context"
	"errors"
	"strconv"

	"github.com/WriteMind/blog-service/internal/dto"
	"github.com/WriteMind/blog-service/internal/gateway"
	"github.com/WriteMind/blog-service/internal/model"
)

// SavePost writes a new or existing post through the gateway and reports
// which path the save took. When the remote write fails after its retries,
// the post is synthesized into the in-memory collection only. It keeps the
// editing session alive but is lost on reload.
func (s *Session) SavePost(ctx context.Context, req dto.SavePostRequest) dto.SaveResult {
	user := s.User()
	if user.ID == "" {
		return dto.SaveResult{
			Status:  dto.SaveFailed,
			Err:     ErrNotSignedIn,
			Message: "Please log in to create or edit posts",
		}
	}

	if req.ID != "" {
		return s.saveExisting(ctx, user, req)
	}
	return s.saveNew(ctx, user, req)
}

func (s *Session) saveExisting(ctx context.Context, user model.User, req dto.SavePostRequest) dto.SaveResult {
	existing := s.findPost(req.ID)
	if existing == nil {
		return dto.SaveResult{Status: dto.SaveFailed, Err: ErrPostNotFound, Message: "Post not found"}
	}
	if !canModify(user, existing.AuthorID) {
		return dto.SaveResult{Status: dto.SaveFailed, Err: ErrNotPostOwner, Message: "You can only edit your own posts"}
	}
	// There is no unpublish path: once published, a post stays published.
	if existing.Status == model.StatusPublished {
		req.Status = model.StatusPublished
	}

	updated, err := s.gateway.UpdatePost(ctx, req.ID, dto.UpdatePostRequest{
		Title:    req.Title,
		Content:  req.Content,
		Tags:     req.Tags,
		Status:   req.Status,
		ImageURL: req.ImageURL,
	})
	if err == nil {
		merged := overlay(*existing, *updated)
		s.mergePost(merged)
		s.recordIfPublished(ctx, merged)
		return dto.SaveResult{Status: dto.SavedRemote, Post: &merged, Message: "Post saved successfully!"}
	}
	if terminal(err) {
		return dto.SaveResult{Status: dto.SaveFailed, Err: err, Message: gateway.UserMessage(err)}
	}

	s.logger.Sugar().Warnf("remote update of post(%s) failed, keeping it locally: %s", req.ID, err.Error())
	local := *existing
	local.Title = req.Title
	local.Content = req.Content
	local.Tags = req.Tags
	local.Excerpt = model.Excerpt(req.Content)
	local.UpdatedAt = s.now().UTC()
	if req.Status != "" {
		local.Status = req.Status
	}
	if req.ImageURL != nil {
		local.ImageURL = *req.ImageURL
	}
	s.mergePost(local)
	s.recordIfPublished(ctx, local)
	return dto.SaveResult{Status: dto.SavedLocal, Post: &local, Message: "Post saved locally (remote store unavailable)"}
}

func (s *Session) saveNew(ctx context.Context, user model.User, req dto.SavePostRequest) dto.SaveResult {
	created, err := s.gateway.CreatePost(ctx, dto.CreatePostRequest{
		Title:    req.Title,
		Content:  req.Content,
		Tags:     req.Tags,
		Status:   req.Status,
		ImageURL: req.ImageURL,
	}, user.ID, user.Name)
	if err == nil {
		s.prependPost(*created)
		s.recordIfPublished(ctx, *created)
		return dto.SaveResult{Status: dto.SavedRemote, Post: created, Message: "Post saved successfully!"}
	}
	if terminal(err) {
		return dto.SaveResult{Status: dto.SaveFailed, Err: err, Message: gateway.UserMessage(err)}
	}

	s.logger.Sugar().Warnf("remote create failed, keeping post locally: %s", err.Error())
	now := s.now().UTC()
	status := req.Status
	if status == "" {
		status = model.StatusDraft
	}
	local := model.Post{
		ID:         strconv.FormatInt(now.UnixMilli(), 10),
		AuthorID:   user.ID,
		AuthorName: user.Name,
		Title:      req.Title,
		Content:    req.Content,
		Excerpt:    model.Excerpt(req.Content),
		Tags:       req.Tags,
		Status:     status,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if req.ImageURL != nil {
		local.ImageURL = *req.ImageURL
	}
	s.prependPost(local)
	s.recordIfPublished(ctx, local)
	return dto.SaveResult{Status: dto.SavedLocal, Post: &local, Message: "Post saved locally (remote store unavailable)"}
}

// terminal reports errors the local fallback must not mask: the user's own
// input or identity is at fault, not the remote store.
func terminal(err error) bool {
	return errors.Is(err, gateway.ErrAuthenticationRequired) || errors.Is(err, gateway.ErrMissingParameters)
}

func (s *Session) recordIfPublished(ctx context.Context, post model.Post) {
	if post.Status == model.StatusPublished {
		s.recs.RecordWritten(ctx, post)
	}
}

// overlay merges a gateway write result over the known post, keeping fields
// the partial result does not carry.
func overlay(existing, updated model.Post) model.Post {
	out := existing
	out.Title = updated.Title
	out.Content = updated.Content
	out.Tags = updated.Tags
	out.Excerpt = updated.Excerpt
	if updated.Status != "" {
		out.Status = updated.Status
	}
	if updated.ImageURL != "" {
		out.ImageURL = updated.ImageURL
	}
	if updated.AuthorID != "" {
		out.AuthorID = updated.AuthorID
		out.AuthorName = updated.AuthorName
	}
	if !updated.CreatedAt.IsZero() {
		out.CreatedAt = updated.CreatedAt
	}
	if !updated.UpdatedAt.IsZero() {
		out.UpdatedAt = updated.UpdatedAt
	}
	return out
}
