package memstore

import (
	"context"
	"testing"
	"time"

	"github.com/WriteMind/blog-service/internal/docstore"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetGetDelete(t *testing.T) {
	s := New()
	ctx := context.Background()

	require.NoError(t, s.Set(ctx, "posts/p1", map[string]any{"title": "hello"}))

	doc, err := s.Get(ctx, "posts/p1")
	require.NoError(t, err)
	assert.Equal(t, "p1", doc.ID)
	assert.Equal(t, "hello", doc.Data["title"])

	require.NoError(t, s.Delete(ctx, "posts/p1"))
	_, err = s.Get(ctx, "posts/p1")
	assert.Equal(t, docstore.CodeNotFound, docstore.ErrCode(err))

	// Deleting again is not an error.
	assert.NoError(t, s.Delete(ctx, "posts/p1"))
}

func TestAddGeneratesIDs(t *testing.T) {
	s := New()
	ctx := context.Background()

	id1, err := s.Add(ctx, "posts", map[string]any{"title": "a"})
	require.NoError(t, err)
	id2, err := s.Add(ctx, "posts", map[string]any{"title": "b"})
	require.NoError(t, err)
	assert.NotEqual(t, id1, id2)

	doc, err := s.Get(ctx, "posts/"+id1)
	require.NoError(t, err)
	assert.Equal(t, "a", doc.Data["title"])
}

func TestUpdateMergesIntoExisting(t *testing.T) {
	s := New()
	ctx := context.Background()

	require.NoError(t, s.Set(ctx, "posts/p1", map[string]any{"title": "old", "status": "draft"}))
	require.NoError(t, s.Update(ctx, "posts/p1", map[string]any{"title": "new"}))

	doc, err := s.Get(ctx, "posts/p1")
	require.NoError(t, err)
	assert.Equal(t, "new", doc.Data["title"])
	assert.Equal(t, "draft", doc.Data["status"], "unmentioned fields survive")

	err = s.Update(ctx, "posts/missing", map[string]any{"title": "x"})
	assert.Equal(t, docstore.CodeNotFound, docstore.ErrCode(err))
}

func TestServerTimestampsAreResolved(t *testing.T) {
	s := New()
	ctx := context.Background()

	require.NoError(t, s.Set(ctx, "posts/p1", map[string]any{"createdAt": docstore.ServerTimestamp}))

	doc, err := s.Get(ctx, "posts/p1")
	require.NoError(t, err)
	created, ok := doc.Data["createdAt"].(time.Time)
	require.True(t, ok)
	assert.WithinDuration(t, time.Now(), created, time.Minute)
}

func TestQueryReturnsDirectChildrenOnly(t *testing.T) {
	s := New()
	ctx := context.Background()

	require.NoError(t, s.Set(ctx, "posts/p1", map[string]any{"title": "post"}))
	require.NoError(t, s.Set(ctx, "posts/p1/likes/u1", map[string]any{"userId": "u1"}))

	docs, err := s.Query(ctx, "posts", docstore.Query{})
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, "p1", docs[0].ID)

	likes, err := s.Query(ctx, "posts/p1/likes", docstore.Query{})
	require.NoError(t, err)
	require.Len(t, likes, 1)
	assert.Equal(t, "u1", likes[0].ID)
}

func TestQueryOrderAndFilter(t *testing.T) {
	s := New()
	ctx := context.Background()

	base := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	require.NoError(t, s.Set(ctx, "posts/p1", map[string]any{"authorId": "u1", "updatedAt": base}))
	require.NoError(t, s.Set(ctx, "posts/p2", map[string]any{"authorId": "u2", "updatedAt": base.Add(time.Hour)}))
	require.NoError(t, s.Set(ctx, "posts/p3", map[string]any{"authorId": "u1", "updatedAt": base.Add(2 * time.Hour)}))

	docs, err := s.Query(ctx, "posts", docstore.Query{OrderBy: "updatedAt", Descending: true})
	require.NoError(t, err)
	require.Len(t, docs, 3)
	assert.Equal(t, "p3", docs[0].ID)
	assert.Equal(t, "p1", docs[2].ID)

	docs, err = s.Query(ctx, "posts", docstore.Query{FilterField: "authorId", FilterValue: "u1", OrderBy: "updatedAt"})
	require.NoError(t, err)
	require.Len(t, docs, 2)
	assert.Equal(t, "p1", docs[0].ID)
	assert.Equal(t, "p3", docs[1].ID)
}

func TestGetReturnsACopy(t *testing.T) {
	s := New()
	ctx := context.Background()

	require.NoError(t, s.Set(ctx, "posts/p1", map[string]any{"title": "original"}))

	doc, err := s.Get(ctx, "posts/p1")
	require.NoError(t, err)
	doc.Data["title"] = "mutated"

	again, err := s.Get(ctx, "posts/p1")
	require.NoError(t, err)
	assert.Equal(t, "original", again.Data["title"])
}
