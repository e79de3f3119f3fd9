package service

import (
	"context"

	"github.com/MKhiriev/eigen-library/internal/logger"
	"github.com/MKhiriev/eigen-library/internal/store"
	"github.com/MKhiriev/eigen-library/models"
)

type bookService struct {
	bookRepository store.BookRepository

	logger *logger.Logger
}

func NewBookService(bookRepository store.BookRepository, logger *logger.Logger) BookService {
	return &bookService{
		bookRepository: bookRepository,
		logger:         logger,
	}
}

func (s *bookService) ListBooks(ctx context.Context) ([]models.Book, error) {
	return s.bookRepository.ListBooks(ctx)
}

func (s *bookService) GetBook(ctx context.Context, code string) (models.Book, error) {
	return s.bookRepository.GetBook(ctx, code)
}

func (s *bookService) CreateBook(ctx context.Context, book models.Book) (models.Book, error) {
	created, err := s.bookRepository.CreateBook(ctx, book)
	if err != nil {
		return models.Book{}, err
	}

	logger.FromContext(ctx).Info().
		Str("func", "*bookService.CreateBook").
		Str("book_code", created.Code).
		Int("stock", created.Stock).
		Msg("book added to catalogue")

	return created, nil
}
