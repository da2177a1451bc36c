// Package gateway is the sole path through which the application reads and
// mutates posts, likes and comments on the remote document store. It masks
// transient failures with a bounded retry policy; authorization decisions
// belong to its callers.
package gateway

import (
	"context"
	"time"

	"github.com/WriteMind/blog-service/internal/docstore"
	"go.uber.org/zap"
)

const (
	POSTS_COLLECTION = "posts"

	defaultAttempts    = 3
	defaultBackoffUnit = time.Second
)

type Config struct {
	// Attempts bounds the number of tries per remote write, including the
	// first one.
	Attempts int
	// BackoffUnit scales the linear backoff: the sleep after attempt n is
	// n × BackoffUnit. No jitter.
	BackoffUnit time.Duration
	// Sleep is replaceable by tests; it defaults to a context-aware sleep.
	Sleep func(ctx context.Context, d time.Duration) error
}

type Gateway struct {
	logger *zap.Logger
	store  docstore.Store
	cfg    Config
}

func New(logger *zap.Logger, store docstore.Store, cfg Config) *Gateway {
	if cfg.Attempts <= 0 {
		cfg.Attempts = defaultAttempts
	}
	if cfg.BackoffUnit <= 0 {
		cfg.BackoffUnit = defaultBackoffUnit
	}
	if cfg.Sleep == nil {
		cfg.Sleep = sleepCtx
	}
	return &Gateway{
		logger: logger,
		store:  store,
		cfg:    cfg,
	}
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
