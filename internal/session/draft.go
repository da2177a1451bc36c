package session

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/WriteMind/blog-service/internal/localkv"
)

const (
	DRAFT_KEY   = "unsavedDraft"
	draftMaxAge = 24 * time.Hour
)

// Draft is the editor state stashed when the user navigates away without
// saving.
type Draft struct {
	PostID   string    `json:"postId,omitempty"`
	Title    string    `json:"title"`
	Content  string    `json:"content"`
	Tags     string    `json:"tags"`
	ImageURL string    `json:"imageUrl,omitempty"`
	SavedAt  time.Time `json:"savedAt"`
}

// StashDraft stores the editor state so it survives an accidental exit.
// Empty drafts are not worth keeping.
func (s *Session) StashDraft(ctx context.Context, draft Draft) error {
	if draft.Title == "" && draft.Content == "" {
		return nil
	}

	draft.SavedAt = s.now().UTC()
	raw, err := json.Marshal(draft)
	if err != nil {
		return err
	}
	return s.drafts.Set(ctx, DRAFT_KEY, string(raw))
}

// RestoreDraft returns the stashed draft if one exists and is younger than
// 24 hours. The stash is cleared either way; a draft is restored at most
// once.
func (s *Session) RestoreDraft(ctx context.Context) (*Draft, error) {
	raw, err := s.drafts.Get(ctx, DRAFT_KEY)
	if errors.Is(err, localkv.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	if err := s.drafts.Delete(ctx, DRAFT_KEY); err != nil {
		s.logger.Sugar().Errorf("failed to clear unsaved draft: %s", err.Error())
	}

	var draft Draft
	if err := json.Unmarshal([]byte(raw), &draft); err != nil {
		s.logger.Sugar().Errorf("failed to decode unsaved draft, discarding: %s", err.Error())
		return nil, nil
	}
	if s.now().Sub(draft.SavedAt) > draftMaxAge {
		return nil, nil
	}
	return &draft, nil
}
