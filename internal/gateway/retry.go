package gateway

import (
	"context"
	"time"

	"github.com/WriteMind/blog-service/internal/docstore"
)

// withRetry runs fn up to cfg.Attempts times, sleeping attempt×BackoffUnit
// between tries. Retries are strictly sequential. Terminal failures such as
// permission denials surface immediately.
func (g *Gateway) withRetry(ctx context.Context, op string, fn func() error) error {
	var err error
	for attempt := 1; attempt <= g.cfg.Attempts; attempt++ {
		err = fn()
		if err == nil {
			return nil
		}
		if !docstore.IsTransient(err) || attempt == g.cfg.Attempts {
			return err
		}

		g.logger.Sugar().Warnf("%s attempt %d/%d failed, retrying: %s", op, attempt, g.cfg.Attempts, err.Error())
		if sleepErr := g.cfg.Sleep(ctx, time.Duration(attempt)*g.cfg.BackoffUnit); sleepErr != nil {
			return sleepErr
		}
	}
	return err
}
