// Package pgxstore implements the document store capability on PostgreSQL,
// holding each document as a JSONB row keyed by its hierarchical path.
package pgxstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/WriteMind/blog-service/internal/config"
	"github.com/WriteMind/blog-service/internal/docstore"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Store struct {
	db *pgxpool.Pool
}

func New(db *pgxpool.Pool) *Store {
	return &Store{
		db: db,
	}
}

func DB(ctx context.Context, cfg config.DBConfig) (*pgxpool.Pool, error) {
	return pgxpool.New(ctx, cfg.URL())
}

func (s *Store) Add(ctx context.Context, collection string, data map[string]any) (string, error) {
	id := uuid.NewString()
	if err := s.Set(ctx, collection+"/"+id, data); err != nil {
		return "", err
	}
	return id, nil
}

func (s *Store) Set(ctx context.Context, path string, data map[string]any) error {
	encoded, err := encode(data)
	if err != nil {
		return docstore.NewError(docstore.CodeUnknown, "pgxstore.Set", err)
	}

	_, err = s.db.Exec(
		ctx,
		`INSERT INTO documents(path, collection, data)
		VALUES($1, $2, $3)
		ON CONFLICT (path) DO UPDATE SET data = EXCLUDED.data, updated_at = now()`,
		path,
		parentCollection(path),
		encoded,
	)
	if err != nil {
		return classify("pgxstore.Set", err)
	}
	return nil
}

func (s *Store) Update(ctx context.Context, path string, data map[string]any) error {
	encoded, err := encode(data)
	if err != nil {
		return docstore.NewError(docstore.CodeUnknown, "pgxstore.Update", err)
	}

	tag, err := s.db.Exec(
		ctx,
		"UPDATE documents SET data = data || $2, updated_at = now() WHERE path = $1",
		path,
		encoded,
	)
	if err != nil {
		return classify("pgxstore.Update", err)
	}
	if tag.RowsAffected() == 0 {
		return docstore.NewError(docstore.CodeNotFound, "pgxstore.Update", pgx.ErrNoRows)
	}
	return nil
}

func (s *Store) Delete(ctx context.Context, path string) error {
	if _, err := s.db.Exec(ctx, "DELETE FROM documents WHERE path = $1", path); err != nil {
		return classify("pgxstore.Delete", err)
	}
	return nil
}

func (s *Store) Get(ctx context.Context, path string) (*docstore.Document, error) {
	var raw []byte
	if err := s.db.QueryRow(ctx, "SELECT data FROM documents WHERE path = $1", path).Scan(&raw); err != nil {
		return nil, classify("pgxstore.Get", err)
	}

	data, err := decode(raw)
	if err != nil {
		return nil, docstore.NewError(docstore.CodeUnknown, "pgxstore.Get", err)
	}
	return &docstore.Document{ID: docID(path), Path: path, Data: data}, nil
}

var identPattern = regexp.MustCompile(`^[a-zA-Z][a-zA-Z0-9_]*$`)

func (s *Store) Query(ctx context.Context, collection string, q docstore.Query) ([]*docstore.Document, error) {
	query := "SELECT path, data FROM documents WHERE collection = $1"
	args := []any{collection}

	if q.FilterField != "" {
		if !identPattern.MatchString(q.FilterField) {
			return nil, docstore.NewError(docstore.CodeUnknown, "pgxstore.Query", fmt.Errorf("invalid filter field %q", q.FilterField))
		}
		args = append(args, fmt.Sprint(q.FilterValue))
		query += fmt.Sprintf(" AND data->>'%s' = $2", q.FilterField)
	}
	if q.OrderBy != "" {
		if !identPattern.MatchString(q.OrderBy) {
			return nil, docstore.NewError(docstore.CodeUnknown, "pgxstore.Query", fmt.Errorf("invalid order field %q", q.OrderBy))
		}
		// Timestamps are stored as RFC 3339 strings, so lexical order is
		// chronological order.
		query += fmt.Sprintf(" ORDER BY data->>'%s'", q.OrderBy)
		if q.Descending {
			query += " DESC"
		}
	} else {
		query += " ORDER BY path"
	}

	rows, err := s.db.Query(ctx, query, args...)
	if err != nil {
		return nil, classify("pgxstore.Query", err)
	}
	defer rows.Close()

	var docs []*docstore.Document
	for rows.Next() {
		var (
			path string
			raw  []byte
		)
		if err := rows.Scan(&path, &raw); err != nil {
			return nil, classify("pgxstore.Query", err)
		}
		data, err := decode(raw)
		if err != nil {
			return nil, docstore.NewError(docstore.CodeUnknown, "pgxstore.Query", err)
		}
		docs = append(docs, &docstore.Document{ID: docID(path), Path: path, Data: data})
	}
	if err := rows.Err(); err != nil {
		return nil, classify("pgxstore.Query", err)
	}

	return docs, nil
}

// encode marshals document data to JSONB, substituting the wall clock for
// server timestamp placeholders.
func encode(data map[string]any) ([]byte, error) {
	resolved := make(map[string]any, len(data))
	for k, v := range data {
		if v == docstore.ServerTimestamp {
			resolved[k] = time.Now().UTC().Format(time.RFC3339Nano)
			continue
		}
		if t, ok := v.(time.Time); ok {
			resolved[k] = t.UTC().Format(time.RFC3339Nano)
			continue
		}
		resolved[k] = v
	}
	return json.Marshal(resolved)
}

func decode(raw []byte) (map[string]any, error) {
	var data map[string]any
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, err
	}
	return data, nil
}

func classify(op string, err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return docstore.NewError(docstore.CodeNotFound, op, err)
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return docstore.NewError(docstore.CodeUnavailable, op, err)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch {
		case pgErr.Code == "42501" || strings.HasPrefix(pgErr.Code, "28"):
			return docstore.NewError(docstore.CodePermissionDenied, op, err)
		case strings.HasPrefix(pgErr.Code, "08") || strings.HasPrefix(pgErr.Code, "57"):
			return docstore.NewError(docstore.CodeUnavailable, op, err)
		}
		return docstore.NewError(docstore.CodeUnknown, op, err)
	}
	if pgconn.SafeToRetry(err) || pgconn.Timeout(err) {
		return docstore.NewError(docstore.CodeUnavailable, op, err)
	}
	return docstore.NewError(docstore.CodeUnknown, op, err)
}

func parentCollection(path string) string {
	idx := strings.LastIndex(path, "/")
	if idx < 0 {
		return ""
	}
	return path[:idx]
}

func docID(path string) string {
	parts := strings.Split(path, "/")
	return parts[len(parts)-1]
}
