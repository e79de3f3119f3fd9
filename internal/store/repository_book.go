package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/MKhiriev/eigen-library/internal/logger"
	"github.com/MKhiriev/eigen-library/models"
)

type bookRepository struct {
	*DB
	logger *logger.Logger
}

func NewBookRepository(db *DB, logger *logger.Logger) BookRepository {
	logger.Debug().Msg("creating book repository")
	return &bookRepository{
		DB:     db,
		logger: logger,
	}
}

func (r *bookRepository) ListBooks(ctx context.Context) ([]models.Book, error) {
	log := logger.FromContext(ctx)

	query, args, err := listBooksQuery(r.builder()).ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.querier(ctx).QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*bookRepository.ListBooks").Msg("failed to execute query")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	books := make([]models.Book, 0, 16)
	for rows.Next() {
		book, scanErr := scanBook(rows)
		if scanErr != nil {
			log.Err(scanErr).Str("func", "*bookRepository.ListBooks").Msg("failed to scan book row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, scanErr)
		}
		books = append(books, book)
	}

	if err = rows.Err(); err != nil {
		log.Err(err).Str("func", "*bookRepository.ListBooks").Msg("error occurred during rows iteration")
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return books, nil
}

func (r *bookRepository) GetBook(ctx context.Context, code string) (models.Book, error) {
	log := logger.FromContext(ctx)

	if err := r.lockRow(ctx, booksTable, code); err != nil {
		if isNoRows(err) {
			return models.Book{}, ErrBookNotFound
		}
		log.Err(err).Str("func", "*bookRepository.GetBook").Str("code", code).Msg("failed to lock book row")
		return models.Book{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	query, args, err := getBookQuery(r.builder(), code).ToSql()
	if err != nil {
		return models.Book{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	book, err := scanBook(r.querier(ctx).QueryRowContext(ctx, query, args...))
	if err != nil {
		if isNoRows(err) {
			return models.Book{}, ErrBookNotFound
		}
		log.Err(err).Str("func", "*bookRepository.GetBook").Str("code", code).Msg("failed to get book")
		return models.Book{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return book, nil
}

func (r *bookRepository) CreateBook(ctx context.Context, book models.Book) (models.Book, error) {
	log := logger.FromContext(ctx)

	createdAt := time.Now().UTC()
	if book.CreatedAt != nil {
		createdAt = *book.CreatedAt
	}

	query, args, err := insertBookQuery(r.builder(), book.Code, book.Title, book.Author, book.Stock, createdAt).ToSql()
	if err != nil {
		return models.Book{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err = r.querier(ctx).ExecContext(ctx, query, args...); err != nil {
		if r.dialect.Classifier.IsUniqueViolation(err) {
			return models.Book{}, ErrBookAlreadyExists
		}
		log.Err(err).Str("func", "*bookRepository.CreateBook").Str("code", book.Code).Msg("failed to insert book")
		return models.Book{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	book.Available = book.Stock
	book.CreatedAt = &createdAt

	return book, nil
}

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanBook(row rowScanner) (models.Book, error) {
	var book models.Book
	var createdAt sql.NullTime

	if err := row.Scan(&book.Code, &book.Title, &book.Author, &book.Stock, &book.Available, &createdAt); err != nil {
		return models.Book{}, err
	}

	book.CreatedAt = nullTimePtr(createdAt)
	return book, nil
}

func nullTimePtr(t sql.NullTime) *time.Time {
	if !t.Valid {
		return nil
	}
	v := t.Time.UTC()
	return &v
}
