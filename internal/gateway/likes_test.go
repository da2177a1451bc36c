package gateway

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToggleLike(t *testing.T) {
	store := newTestStore()
	g := newTestGateway(store, nil)
	ctx := context.Background()

	liked, err := g.ToggleLike(ctx, "p1", "u1")
	require.NoError(t, err)
	assert.True(t, liked)
	assert.Equal(t, 1, g.LikeCount(ctx, "p1"))
	assert.True(t, g.HasLiked(ctx, "p1", "u1"))

	// A second identical call restores the original state.
	liked, err = g.ToggleLike(ctx, "p1", "u1")
	require.NoError(t, err)
	assert.False(t, liked)
	assert.Equal(t, 0, g.LikeCount(ctx, "p1"))
	assert.False(t, g.HasLiked(ctx, "p1", "u1"))
}

func TestToggleLikeRequiresIDs(t *testing.T) {
	g := newTestGateway(newTestStore(), nil)

	_, err := g.ToggleLike(context.Background(), "", "u1")
	assert.ErrorIs(t, err, ErrMissingParameters)

	_, err = g.ToggleLike(context.Background(), "p1", "")
	assert.ErrorIs(t, err, ErrMissingParameters)
}

func TestLikeCountIsPerPost(t *testing.T) {
	store := newTestStore()
	g := newTestGateway(store, nil)
	ctx := context.Background()

	for _, userID := range []string{"u1", "u2", "u3"} {
		_, err := g.ToggleLike(ctx, "p1", userID)
		require.NoError(t, err)
	}
	_, err := g.ToggleLike(ctx, "p2", "u1")
	require.NoError(t, err)

	assert.Equal(t, 3, g.LikeCount(ctx, "p1"))
	assert.Equal(t, 1, g.LikeCount(ctx, "p2"))
}

func TestLikeReadsFailClosed(t *testing.T) {
	store := newTestStore()
	store.failReads = unavailable()
	g := newTestGateway(store, nil)

	assert.Equal(t, 0, g.LikeCount(context.Background(), "p1"))
	assert.False(t, g.HasLiked(context.Background(), "p1", "u1"))
}

func TestToggleLikeRetriesExistenceCheck(t *testing.T) {
	var sleeps []time.Duration
	store := newTestStore()
	store.failReads = unavailable()
	store.readsLeft = 1
	g := newTestGateway(store, &sleeps)

	liked, err := g.ToggleLike(context.Background(), "p1", "u1")
	require.NoError(t, err)
	assert.True(t, liked, "transient blip on the check must not fail the toggle")
	assert.Equal(t, 2, store.readCalls)
	assert.Equal(t, []time.Duration{1 * time.Second}, sleeps)
}

func TestToggleLikeExistenceCheckRetryBound(t *testing.T) {
	var sleeps []time.Duration
	store := newTestStore()
	store.failReads = unavailable()
	g := newTestGateway(store, &sleeps)

	_, err := g.ToggleLike(context.Background(), "p1", "u1")
	require.Error(t, err)
	assert.Equal(t, 3, store.readCalls)
	assert.Equal(t, 0, store.writeCalls)
	assert.Equal(t, []time.Duration{1 * time.Second, 2 * time.Second}, sleeps)
}

func TestToggleLikeRetriesWrite(t *testing.T) {
	var sleeps []time.Duration
	store := newTestStore()
	store.failWrites = unavailable()
	g := newTestGateway(store, &sleeps)

	_, err := g.ToggleLike(context.Background(), "p1", "u1")
	require.Error(t, err)
	assert.Equal(t, 3, store.writeCalls)
	assert.Equal(t, []time.Duration{1 * time.Second, 2 * time.Second}, sleeps)
}
