package migrations

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"

	"github.com/pressly/goose/v3"

	"github.com/MKhiriev/eigen-library/internal/logger"
)

//go:embed *.sql
var embedMigrations embed.FS

var ErrNilDB = errors.New("migration error: db is nil")

// Migrate applies the embedded migrations using the goose dialect given
// ("pgx" or "sqlite3"). goose progress is written to log; a nil log
// silences it.
func Migrate(db *sql.DB, dialect string, log *logger.Logger) error {
	if db == nil {
		return ErrNilDB
	}

	goose.SetBaseFS(embedMigrations)
	goose.SetLogger(newGooseLogger(log))

	if err := goose.SetDialect(dialect); err != nil {
		return fmt.Errorf("migration error setting dialect for db: %w", err)
	}

	if err := goose.Up(db, "."); err != nil {
		return fmt.Errorf("migration error: %w", err)
	}

	return nil
}
