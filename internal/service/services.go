package service

import (
	"github.com/MKhiriev/eigen-library/internal/config"
	"github.com/MKhiriev/eigen-library/internal/logger"
	"github.com/MKhiriev/eigen-library/internal/store"
	"github.com/MKhiriev/eigen-library/internal/utils"
	"github.com/MKhiriev/eigen-library/internal/validators"
)

type Services struct {
	BookService      BookService
	MemberService    MemberService
	BorrowingService BorrowingService
	AppInfoService   AppInfoService
}

// NewServices builds the domain services on top of storages. Book, member and
// borrowing services are wrapped with request validation.
func NewServices(storages *store.Storages, cfg config.App, logger *logger.Logger) (*Services, error) {
	appInfoService, err := NewAppInfoService(cfg, storages.Pinger, logger)
	if err != nil {
		return nil, err
	}

	validator := validators.NewStructValidator()

	bookService := NewBookValidationService(validator).
		Wrap(NewBookService(storages.BookRepository, logger))

	memberService := NewMemberValidationService(validator).
		Wrap(NewMemberService(storages.MemberRepository, storages.BorrowingRepository, utcNow, logger))

	borrowingService := NewBorrowingValidationService(validator).
		Wrap(NewBorrowingService(storages, utils.NewUUIDGenerator(), utcNow, cfg, logger))

	return &Services{
		BookService:      bookService,
		MemberService:    memberService,
		BorrowingService: borrowingService,
		AppInfoService:   appInfoService,
	}, nil
}
