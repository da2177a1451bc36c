// Package rediskv backs the local key-value store with Redis for
// deployments where session state must survive the process.
package rediskv

import (
	"context"
	"errors"

	"github.com/WriteMind/blog-service/internal/localkv"
	"github.com/redis/go-redis/v9"
)

const KEY_PREFIX = "writemind:"

type Store struct {
	rdb *redis.Client
}

func New(rdb *redis.Client) *Store {
	return &Store{
		rdb: rdb,
	}
}

func (s *Store) Get(ctx context.Context, key string) (string, error) {
	value, err := s.rdb.Get(ctx, KEY_PREFIX+key).Result()
	if errors.Is(err, redis.Nil) {
		return "", localkv.ErrNotFound
	}
	if err != nil {
		return "", err
	}
	return value, nil
}

func (s *Store) Set(ctx context.Context, key string, value string) error {
	return s.rdb.Set(ctx, KEY_PREFIX+key, value, 0).Err()
}

func (s *Store) Delete(ctx context.Context, key string) error {
	return s.rdb.Del(ctx, KEY_PREFIX+key).Err()
}
