package pgxstore

import (
	"errors"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	_ "github.com/golang-migrate/migrate/v4/source/file"
)

// Migrate brings the documents schema up to date. databaseURL is a
// postgres:// connection string; sourceURL points at the migration files,
// e.g. "file://migrations".
func Migrate(sourceURL, databaseURL string) error {
	m, err := migrate.New(sourceURL, strings.Replace(databaseURL, "postgres://", "pgx5://", 1))
	if err != nil {
		return err
	}
	defer m.Close()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return err
	}
	return nil
}
