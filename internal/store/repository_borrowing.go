package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/MKhiriev/eigen-library/internal/logger"
	"github.com/MKhiriev/eigen-library/models"
)

type borrowingRepository struct {
	*DB
	logger *logger.Logger
}

func NewBorrowingRepository(db *DB, logger *logger.Logger) BorrowingRepository {
	logger.Debug().Msg("creating borrowing repository")
	return &borrowingRepository{
		DB:     db,
		logger: logger,
	}
}

func (r *borrowingRepository) CreateBorrowing(ctx context.Context, borrowing models.Borrowing) error {
	log := logger.FromContext(ctx)

	query, args, err := insertBorrowingQuery(r.builder(),
		borrowing.ID, borrowing.MemberCode, borrowing.BookCode, borrowing.BorrowedAt.UTC()).ToSql()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err = r.querier(ctx).ExecContext(ctx, query, args...); err != nil {
		log.Err(err).
			Str("func", "*borrowingRepository.CreateBorrowing").
			Str("member_code", borrowing.MemberCode).
			Str("book_code", borrowing.BookCode).
			Msg("failed to insert borrowing")
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return nil
}

func (r *borrowingRepository) FindActiveBorrowing(ctx context.Context, memberCode, bookCode string) (models.Borrowing, error) {
	log := logger.FromContext(ctx)

	query, args, err := findActiveBorrowingQuery(r.builder(), memberCode, bookCode).ToSql()
	if err != nil {
		return models.Borrowing{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	borrowing, err := scanBorrowing(r.querier(ctx).QueryRowContext(ctx, query, args...))
	if err != nil {
		if isNoRows(err) {
			return models.Borrowing{}, ErrBorrowingNotFound
		}
		log.Err(err).
			Str("func", "*borrowingRepository.FindActiveBorrowing").
			Str("member_code", memberCode).
			Str("book_code", bookCode).
			Msg("failed to find active borrowing")
		return models.Borrowing{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return borrowing, nil
}

func (r *borrowingRepository) ListActiveBorrowings(ctx context.Context, memberCode string) ([]models.Borrowing, error) {
	log := logger.FromContext(ctx)

	query, args, err := listActiveBorrowingsQuery(r.builder(), memberCode).ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.querier(ctx).QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*borrowingRepository.ListActiveBorrowings").Msg("failed to execute query")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	borrowings := make([]models.Borrowing, 0, 4)
	for rows.Next() {
		borrowing, scanErr := scanBorrowing(rows)
		if scanErr != nil {
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, scanErr)
		}
		borrowings = append(borrowings, borrowing)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return borrowings, nil
}

func (r *borrowingRepository) CountActiveBorrowings(ctx context.Context, memberCode string) (int, error) {
	query, args, err := countActiveBorrowingsQuery(r.builder(), memberCode).ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var count int
	if err = r.querier(ctx).QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "*borrowingRepository.CountActiveBorrowings").
			Str("member_code", memberCode).
			Msg("failed to count active borrowings")
		return 0, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return count, nil
}

func (r *borrowingRepository) MarkReturned(ctx context.Context, id string, returnedAt time.Time) error {
	query, args, err := markReturnedQuery(r.builder(), id, returnedAt.UTC()).ToSql()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	result, err := r.querier(ctx).ExecContext(ctx, query, args...)
	if err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "*borrowingRepository.MarkReturned").
			Str("id", id).
			Msg("failed to mark borrowing returned")
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	if affected == 0 {
		return ErrBorrowingNotFound
	}

	return nil
}

func scanBorrowing(row rowScanner) (models.Borrowing, error) {
	var borrowing models.Borrowing
	var returnedAt sql.NullTime

	if err := row.Scan(&borrowing.ID, &borrowing.MemberCode, &borrowing.BookCode, &borrowing.BorrowedAt, &returnedAt); err != nil {
		return models.Borrowing{}, err
	}

	borrowing.BorrowedAt = borrowing.BorrowedAt.UTC()
	borrowing.ReturnedAt = nullTimePtr(returnedAt)
	return borrowing, nil
}
