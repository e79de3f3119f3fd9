package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	_ "github.com/jackc/pgx/v5/stdlib"
	_ "github.com/mattn/go-sqlite3"

	"github.com/MKhiriev/eigen-library/internal/config"
	"github.com/MKhiriev/eigen-library/internal/logger"
	"github.com/MKhiriev/eigen-library/migrations"
)

// querier is satisfied by both *sql.DB and *sql.Tx.
type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// DB is the shared database handle used by every repository.
type DB struct {
	*sql.DB
	dialect Dialect
	logger  *logger.Logger
}

// NewDB opens the database named by cfg.DSN, configures the pool for its
// dialect and checks the connection.
func NewDB(ctx context.Context, cfg config.DB, log *logger.Logger) (*DB, error) {
	dialect, dsn, err := dialectFromDSN(cfg.DSN)
	if err != nil {
		return nil, err
	}

	conn, err := sql.Open(dialect.DriverName, dsn)
	if err != nil {
		log.Err(err).Str("func", "NewDB").Msg("error occured during database connection")
		return nil, fmt.Errorf("error occured during database connection: %w", err)
	}

	if dialect.MaxOpenConns > 0 {
		conn.SetMaxOpenConns(dialect.MaxOpenConns)
	}

	if err = conn.PingContext(ctx); err != nil {
		log.Err(err).Str("func", "NewDB").Msg("error connecting database (ping)")
		conn.Close()
		return nil, fmt.Errorf("error connecting database: %w", err)
	}

	log.Info().
		Str("func", "NewDB").
		Str("driver", dialect.DriverName).
		Str("dsn", redactDSN(cfg.DSN)).
		Msg("connected to database successfully")

	return newDB(conn, dialect, log), nil
}

func newDB(conn *sql.DB, dialect Dialect, log *logger.Logger) *DB {
	return &DB{
		DB:      conn,
		dialect: dialect,
		logger:  log,
	}
}

// Migrate applies the embedded schema and seed migrations.
func (db *DB) Migrate() error {
	return migrations.Migrate(db.DB, db.dialect.GooseDialect, db.logger)
}

// Ping implements [Pinger].
func (db *DB) Ping(ctx context.Context) error {
	if err := db.PingContext(ctx); err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	return nil
}

// builder returns a squirrel statement builder with the dialect's placeholders.
func (db *DB) builder() sq.StatementBuilderType {
	return sq.StatementBuilder.PlaceholderFormat(db.dialect.Placeholder)
}

// querier returns the transaction carried by ctx, or the pool.
func (db *DB) querier(ctx context.Context) querier {
	if tx, ok := txFromContext(ctx); ok {
		return tx
	}
	return db.DB
}

// lockRows reports whether reads made with ctx should lock the selected
// rows: ctx carries a transaction and the dialect supports row locks.
func (db *DB) lockRows(ctx context.Context) bool {
	_, ok := txFromContext(ctx)
	return ok && db.dialect.RowLocks
}

// lockRow takes a row lock on table's row with the given code when ctx
// carries a transaction on a dialect with row locks. Reads issued after it
// see every change committed by the previous lock holder. A missing row is
// reported as [sql.ErrNoRows].
func (db *DB) lockRow(ctx context.Context, table, code string) error {
	if !db.lockRows(ctx) {
		return nil
	}

	query, args, err := lockRowQuery(db.builder(), table, code).ToSql()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var locked string
	return db.querier(ctx).QueryRowContext(ctx, query, args...).Scan(&locked)
}

func isNoRows(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}
