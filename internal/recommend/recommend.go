// Package recommend ranks candidate posts by tag affinity with the reader's
// two most recent behavioral signals: the last post read and the last post
// published.
package recommend

import (
	"context"
	"slices"
	"sort"
	"time"

	"github.com/WriteMind/blog-service/internal/model"
	"go.uber.org/zap"
)

// Tags the user wrote about recently weigh three times more than tags they
// merely read about.
const (
	writtenWeight = 3
	readWeight    = 1
)

type Recommender struct {
	logger  *zap.Logger
	signals *SignalStore
	now     func() time.Time
}

func New(logger *zap.Logger, signals *SignalStore) *Recommender {
	return &Recommender{
		logger:  logger,
		signals: signals,
		now:     time.Now,
	}
}

// RecordRead overwrites the last-read signal with the post's tag set.
// Posts without tags leave the signal untouched.
func (r *Recommender) RecordRead(ctx context.Context, post model.Post) {
	sig := signalFor(post, r.now())
	if sig == nil {
		return
	}
	if err := r.signals.SetLastRead(ctx, *sig); err != nil {
		r.logger.Sugar().Errorf("failed to record last read post(%s): %s", post.ID, err.Error())
	}
}

// RecordWritten overwrites the last-written signal; it is invoked when a
// post transitions to published.
func (r *Recommender) RecordWritten(ctx context.Context, post model.Post) {
	sig := signalFor(post, r.now())
	if sig == nil {
		return
	}
	if err := r.signals.SetLastWritten(ctx, *sig); err != nil {
		r.logger.Sugar().Errorf("failed to record last written post(%s): %s", post.ID, err.Error())
	}
}

// Recommend ranks candidates by weighted tag overlap with the stored
// signals and returns at most limit posts. Without any signal it returns
// nothing; falling back to recency is deliberately left to the caller.
// The signal state is never mutated.
func (r *Recommender) Recommend(ctx context.Context, candidates []model.Post, limit int) []model.Post {
	if limit <= 0 || len(candidates) == 0 {
		return nil
	}

	lastRead := r.load(ctx, LAST_READ_KEY)
	lastWritten := r.load(ctx, LAST_WRITTEN_KEY)
	if lastRead == nil && lastWritten == nil {
		return nil
	}

	type scored struct {
		post  model.Post
		score int
	}
	var ranked []scored
	for _, post := range candidates {
		// Never recommend the post the user just interacted with.
		if lastRead != nil && post.ID == lastRead.PostID {
			continue
		}
		if lastWritten != nil && post.ID == lastWritten.PostID {
			continue
		}
		if post.Status != model.StatusPublished {
			continue
		}

		tags := model.NormalizeTags(post.Tags)
		score := writtenWeight*overlap(tags, lastWritten) + readWeight*overlap(tags, lastRead)
		if score == 0 {
			continue
		}
		ranked = append(ranked, scored{post: post, score: score})
	}

	// Stable: ties keep the candidate list's original relative order.
	sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].score > ranked[j].score })
	if len(ranked) > limit {
		ranked = ranked[:limit]
	}

	posts := make([]model.Post, 0, len(ranked))
	for _, entry := range ranked {
		posts = append(posts, entry.post)
	}
	return posts
}

// load treats an unreadable signal as absent so a corrupt local store can
// never break browsing.
func (r *Recommender) load(ctx context.Context, key string) *model.TagSignal {
	var (
		sig *model.TagSignal
		err error
	)
	switch key {
	case LAST_READ_KEY:
		sig, err = r.signals.LastRead(ctx)
	case LAST_WRITTEN_KEY:
		sig, err = r.signals.LastWritten(ctx)
	}
	if err != nil {
		r.logger.Sugar().Errorf("failed to load %s signal: %s", key, err.Error())
		return nil
	}
	return sig
}

func signalFor(post model.Post, now time.Time) *model.TagSignal {
	tags := model.NormalizeTags(post.Tags)
	if len(tags) == 0 {
		return nil
	}
	return &model.TagSignal{
		PostID:    post.ID,
		Tags:      tags,
		Timestamp: now.UTC(),
	}
}

func overlap(tags []string, sig *model.TagSignal) int {
	if sig == nil {
		return 0
	}
	count := 0
	for _, tag := range tags {
		if slices.Contains(sig.Tags, tag) {
			count++
		}
	}
	return count
}
