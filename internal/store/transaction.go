package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/MKhiriev/eigen-library/internal/logger"
)

const maxTransactionAttempts = 3

type txCtxKey struct{}

func txFromContext(ctx context.Context) (*sql.Tx, bool) {
	tx, ok := ctx.Value(txCtxKey{}).(*sql.Tx)
	return tx, ok
}

// WithinTransaction implements [Transactor]. Errors classified as
// [Retryable] repeat the whole unit of work up to three times.
func (db *DB) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if _, ok := txFromContext(ctx); ok {
		return fn(ctx)
	}

	log := logger.FromContext(ctx)

	var err error
	for attempt := 1; attempt <= maxTransactionAttempts; attempt++ {
		err = db.runInTransaction(ctx, fn)
		if err == nil || db.dialect.Classifier.Classify(err) != Retryable {
			return err
		}

		log.Warn().Err(err).Int("attempt", attempt).Msg("transaction failed with retryable error")
	}

	return err
}

func (db *DB) runInTransaction(ctx context.Context, fn func(ctx context.Context) error) (err error) {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBeginningTransaction, err)
	}

	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if err = fn(context.WithValue(ctx, txCtxKey{}, tx)); err != nil {
		return err
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("%w: %w", ErrCommitingTransaction, err)
	}

	return nil
}
