// Package filekv persists the local key-value store to a single file, the
// closest server-less analog to browser local storage.
package filekv

import (
	"context"
	"os"
	"sync"

	"github.com/WriteMind/blog-service/internal/localkv"
	cache "github.com/patrickmn/go-cache"
)

type Store struct {
	mu   sync.Mutex
	c    *cache.Cache
	path string
}

// Open loads the store from path, starting empty when the file does not
// exist yet.
func Open(path string) (*Store, error) {
	c := cache.New(cache.NoExpiration, 0)
	if _, err := os.Stat(path); err == nil {
		if err := c.LoadFile(path); err != nil {
			return nil, err
		}
	} else if !os.IsNotExist(err) {
		return nil, err
	}

	return &Store{c: c, path: path}, nil
}

func (s *Store) Get(_ context.Context, key string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	v, ok := s.c.Get(key)
	if !ok {
		return "", localkv.ErrNotFound
	}
	value, ok := v.(string)
	if !ok {
		return "", localkv.ErrNotFound
	}
	return value, nil
}

func (s *Store) Set(_ context.Context, key string, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.c.Set(key, value, cache.NoExpiration)
	return s.c.SaveFile(s.path)
}

func (s *Store) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.c.Delete(key)
	return s.c.SaveFile(s.path)
}
