// Package memstore is a map-backed document store used by tests and local
// development. It mirrors the remote store's semantics closely enough for the
// gateway to be exercised without any network dependency.
package memstore

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/WriteMind/blog-service/internal/docstore"
	"github.com/google/uuid"
)

var errNoDocument = errors.New("no document at path")

type Store struct {
	mu   sync.RWMutex
	docs map[string]map[string]any
	now  func() time.Time
}

func New() *Store {
	return &Store{
		docs: make(map[string]map[string]any),
		now:  time.Now,
	}
}

func (s *Store) Add(ctx context.Context, collection string, data map[string]any) (string, error) {
	id := uuid.NewString()
	if err := s.Set(ctx, collection+"/"+id, data); err != nil {
		return "", err
	}
	return id, nil
}

func (s *Store) Set(_ context.Context, path string, data map[string]any) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.docs[path] = s.resolve(data)
	return nil
}

func (s *Store) Update(_ context.Context, path string, data map[string]any) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.docs[path]
	if !ok {
		return docstore.NewError(docstore.CodeNotFound, "memstore.Update", errNoDocument)
	}
	for k, v := range s.resolve(data) {
		existing[k] = v
	}
	return nil
}

func (s *Store) Delete(_ context.Context, path string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.docs, path)
	return nil
}

func (s *Store) Get(_ context.Context, path string) (*docstore.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	data, ok := s.docs[path]
	if !ok {
		return nil, docstore.NewError(docstore.CodeNotFound, "memstore.Get", errNoDocument)
	}
	return &docstore.Document{ID: docID(path), Path: path, Data: copyData(data)}, nil
}

func (s *Store) Query(_ context.Context, collection string, q docstore.Query) ([]*docstore.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var docs []*docstore.Document
	prefix := collection + "/"
	for path, data := range s.docs {
		rest, ok := strings.CutPrefix(path, prefix)
		if !ok || strings.Contains(rest, "/") {
			continue
		}
		if q.FilterField != "" && data[q.FilterField] != q.FilterValue {
			continue
		}
		docs = append(docs, &docstore.Document{ID: rest, Path: path, Data: copyData(data)})
	}

	// Path order as a tiebreak keeps results deterministic across runs.
	sort.Slice(docs, func(i, j int) bool { return docs[i].Path < docs[j].Path })
	if q.OrderBy != "" {
		sort.SliceStable(docs, func(i, j int) bool {
			a, b := docs[i].Data[q.OrderBy], docs[j].Data[q.OrderBy]
			if q.Descending {
				return fieldLess(b, a)
			}
			return fieldLess(a, b)
		})
	}
	return docs, nil
}

// resolve deep-copies data, substituting the store clock for server
// timestamp placeholders.
func (s *Store) resolve(data map[string]any) map[string]any {
	out := make(map[string]any, len(data))
	for k, v := range data {
		if v == docstore.ServerTimestamp {
			out[k] = s.now().UTC()
			continue
		}
		out[k] = v
	}
	return out
}

func copyData(data map[string]any) map[string]any {
	out := make(map[string]any, len(data))
	for k, v := range data {
		out[k] = v
	}
	return out
}

func fieldLess(a, b any) bool {
	if at, ok := a.(time.Time); ok {
		if bt, ok := b.(time.Time); ok {
			return at.Before(bt)
		}
	}
	as, _ := a.(string)
	bs, _ := b.(string)
	return as < bs
}

func docID(path string) string {
	parts := strings.Split(path, "/")
	return parts[len(parts)-1]
}
