package recommend

import (
	"context"
	"testing"

	"github.com/WriteMind/blog-service/internal/localkv"
	"github.com/WriteMind/blog-service/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestRecommender() (*Recommender, localkv.Store) {
	kv := localkv.NewMemory()
	return New(zap.NewNop(), NewSignalStore(kv)), kv
}

func published(id, tags string) model.Post {
	return model.Post{ID: id, Tags: tags, Status: model.StatusPublished}
}

func TestRecommendWithoutSignals(t *testing.T) {
	r, _ := newTestRecommender()

	candidates := []model.Post{published("p1", "go"), published("p2", "rust")}
	assert.Empty(t, r.Recommend(context.Background(), candidates, 3), "no signal means no guess")
}

func TestRecommendExcludesSignalPosts(t *testing.T) {
	r, _ := newTestRecommender()
	ctx := context.Background()

	read := published("p1", "react, hooks")
	r.RecordRead(ctx, read)

	recs := r.Recommend(ctx, []model.Post{read, published("p2", "react")}, 5)
	require.Len(t, recs, 1)
	assert.Equal(t, "p2", recs[0].ID, "the post just read is never recommended")
}

func TestRecommendWeighting(t *testing.T) {
	r, _ := newTestRecommender()
	ctx := context.Background()

	r.RecordWritten(ctx, published("w", "react, hooks"))
	r.RecordRead(ctx, published("r", "react"))

	a := published("a", "react")
	b := published("b", "react, hooks")

	// Writing about a topic outweighs reading about it 3:1, so B's extra
	// written-tag match must rank it above A regardless of input order.
	recs := r.Recommend(ctx, []model.Post{a, b}, 5)
	require.Len(t, recs, 2)
	assert.Equal(t, "b", recs[0].ID)
	assert.Equal(t, "a", recs[1].ID)
}

func TestRecommendSkipsUnpublishedAndUnrelated(t *testing.T) {
	r, _ := newTestRecommender()
	ctx := context.Background()

	r.RecordWritten(ctx, published("w", "react, hooks"))

	draft := model.Post{ID: "d", Tags: "react", Status: model.StatusDraft}
	unrelated := published("u", "cooking")
	match := published("m", "hooks")

	recs := r.Recommend(ctx, []model.Post{draft, unrelated, match}, 5)
	require.Len(t, recs, 1)
	assert.Equal(t, "m", recs[0].ID)
}

func TestRecommendTiesKeepCandidateOrder(t *testing.T) {
	r, _ := newTestRecommender()
	ctx := context.Background()

	r.RecordRead(ctx, published("r", "go"))

	first := published("p1", "go")
	second := published("p2", "go, extra")
	third := published("p3", "go")

	recs := r.Recommend(ctx, []model.Post{first, second, third}, 2)
	require.Len(t, recs, 2)
	assert.Equal(t, "p1", recs[0].ID)
	assert.Equal(t, "p2", recs[1].ID)
}

func TestRecommendNormalizesTags(t *testing.T) {
	r, _ := newTestRecommender()
	ctx := context.Background()

	r.RecordWritten(ctx, published("w", " React ,HOOKS"))

	recs := r.Recommend(ctx, []model.Post{published("p1", "react")}, 5)
	require.Len(t, recs, 1)
	assert.Equal(t, "p1", recs[0].ID)
}

func TestRecordSkipsUntaggedPosts(t *testing.T) {
	r, kv := newTestRecommender()
	ctx := context.Background()

	r.RecordRead(ctx, published("p1", ""))
	r.RecordWritten(ctx, published("p2", " , ,"))

	_, err := kv.Get(ctx, LAST_READ_KEY)
	assert.ErrorIs(t, err, localkv.ErrNotFound)
	_, err = kv.Get(ctx, LAST_WRITTEN_KEY)
	assert.ErrorIs(t, err, localkv.ErrNotFound)
}

func TestRecordOverwritesPreviousSignal(t *testing.T) {
	r, _ := newTestRecommender()
	ctx := context.Background()

	r.RecordRead(ctx, published("old", "go"))
	r.RecordRead(ctx, published("new", "rust"))

	recs := r.Recommend(ctx, []model.Post{published("p1", "go"), published("p2", "rust")}, 5)
	require.Len(t, recs, 1)
	assert.Equal(t, "p2", recs[0].ID, "only the most recent read counts")
}

func TestRecommendDoesNotMutateSignals(t *testing.T) {
	r, kv := newTestRecommender()
	ctx := context.Background()

	r.RecordRead(ctx, published("r", "go"))
	before, err := kv.Get(ctx, LAST_READ_KEY)
	require.NoError(t, err)

	r.Recommend(ctx, []model.Post{published("p1", "go")}, 5)

	after, err := kv.Get(ctx, LAST_READ_KEY)
	require.NoError(t, err)
	assert.Equal(t, before, after)
	_, err = kv.Get(ctx, LAST_WRITTEN_KEY)
	assert.ErrorIs(t, err, localkv.ErrNotFound)
}

func TestPublishThenRecommendScenario(t *testing.T) {
	r, _ := newTestRecommender()
	ctx := context.Background()

	r.RecordWritten(ctx, published("p1", "react,hooks"))

	recs := r.Recommend(ctx, []model.Post{published("p2", "react"), published("p3", "css")}, 3)
	require.Len(t, recs, 1)
	assert.Equal(t, "p2", recs[0].ID)
}
