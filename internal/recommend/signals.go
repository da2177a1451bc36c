package recommend

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/WriteMind/blog-service/internal/localkv"
	"github.com/WriteMind/blog-service/internal/model"
)

const (
	LAST_READ_KEY    = "lastRead"
	LAST_WRITTEN_KEY = "lastWritten"
)

// SignalStore holds the two behavioral signals as JSON records in the local
// key-value store. A missing key reads back as a nil signal.
type SignalStore struct {
	kv localkv.Store
}

func NewSignalStore(kv localkv.Store) *SignalStore {
	return &SignalStore{
		kv: kv,
	}
}

func (s *SignalStore) LastRead(ctx context.Context) (*model.TagSignal, error) {
	return s.get(ctx, LAST_READ_KEY)
}

func (s *SignalStore) SetLastRead(ctx context.Context, sig model.TagSignal) error {
	return s.set(ctx, LAST_READ_KEY, sig)
}

func (s *SignalStore) LastWritten(ctx context.Context) (*model.TagSignal, error) {
	return s.get(ctx, LAST_WRITTEN_KEY)
}

func (s *SignalStore) SetLastWritten(ctx context.Context, sig model.TagSignal) error {
	return s.set(ctx, LAST_WRITTEN_KEY, sig)
}

func (s *SignalStore) get(ctx context.Context, key string) (*model.TagSignal, error) {
	raw, err := s.kv.Get(ctx, key)
	if errors.Is(err, localkv.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var sig model.TagSignal
	if err := json.Unmarshal([]byte(raw), &sig); err != nil {
		return nil, err
	}
	return &sig, nil
}

func (s *SignalStore) set(ctx context.Context, key string, sig model.TagSignal) error {
	raw, err := json.Marshal(sig)
	if err != nil {
		return err
	}
	return s.kv.Set(ctx, key, string(raw))
}
