package store

import (
	"fmt"
	"strings"

	sq "github.com/Masterminds/squirrel"
)

// Dialect captures what differs between the supported databases.
type Dialect struct {
	// DriverName is the database/sql driver name.
	DriverName string

	// GooseDialect is passed to goose.SetDialect.
	GooseDialect string

	Placeholder sq.PlaceholderFormat

	// RowLocks reports whether SELECT ... FOR UPDATE is available.
	RowLocks bool

	// MaxOpenConns limits the pool; zero keeps the database/sql default.
	MaxOpenConns int

	Classifier ErrorClassificator
}

var (
	postgresDialect = Dialect{
		DriverName:   "pgx",
		GooseDialect: "pgx",
		Placeholder:  sq.Dollar,
		RowLocks:     true,
		MaxOpenConns: 10,
		Classifier:   NewPostgresErrorClassifier(),
	}

	// sqlite allows a single writer, so one connection avoids SQLITE_BUSY
	// between pooled connections.
	sqliteDialect = Dialect{
		DriverName:   "sqlite3",
		GooseDialect: "sqlite3",
		Placeholder:  sq.Question,
		RowLocks:     false,
		MaxOpenConns: 1,
		Classifier:   NewSQLiteErrorClassifier(),
	}
)

// dialectFromDSN picks the dialect from the DSN scheme and returns the DSN
// in the form the driver expects.
//
//	postgres://..., postgresql://..., host=... -> pgx
//	sqlite://path, sqlite3://path            -> sqlite3 with path
//	file:..., :memory:                       -> sqlite3 as is
func dialectFromDSN(dsn string) (Dialect, string, error) {
	dsn = strings.TrimSpace(dsn)

	switch {
	case strings.HasPrefix(dsn, "postgres://"), strings.HasPrefix(dsn, "postgresql://"),
		strings.Contains(dsn, "host="):
		return postgresDialect, dsn, nil
	case strings.HasPrefix(dsn, "sqlite3://"):
		return sqliteDialect, strings.TrimPrefix(dsn, "sqlite3://"), nil
	case strings.HasPrefix(dsn, "sqlite://"):
		return sqliteDialect, strings.TrimPrefix(dsn, "sqlite://"), nil
	case strings.HasPrefix(dsn, "file:"), dsn == ":memory:":
		return sqliteDialect, dsn, nil
	}

	return Dialect{}, "", fmt.Errorf("%w: %q", ErrUnsupportedDSN, redactDSN(dsn))
}

// redactDSN strips credentials before a DSN is logged or returned in errors.
func redactDSN(dsn string) string {
	at := strings.LastIndex(dsn, "@")
	scheme := strings.Index(dsn, "://")
	if at < 0 || scheme < 0 || at < scheme {
		return dsn
	}
	return dsn[:scheme+3] + "***" + dsn[at:]
}
