package service

import (
	"context"
	"time"

	"github.com/MKhiriev/eigen-library/models"
)

type BookService interface {
	ListBooks(ctx context.Context) ([]models.Book, error)
	GetBook(ctx context.Context, code string) (models.Book, error)
	CreateBook(ctx context.Context, book models.Book) (models.Book, error)
}

type MemberService interface {
	ListMembers(ctx context.Context) ([]models.Member, error)
	GetMember(ctx context.Context, code string) (models.Member, error)
	CreateMember(ctx context.Context, member models.Member) (models.Member, error)

	// ListBorrowings returns the books the member currently holds.
	ListBorrowings(ctx context.Context, memberCode string) ([]models.Borrowing, error)
}

type BorrowingService interface {
	Borrow(ctx context.Context, request models.BorrowRequest) (models.Borrowing, error)
	Return(ctx context.Context, request models.ReturnRequest) (models.ReturnResult, error)

	// ReleaseExpiredPenalties lifts penalties that have run out and reports
	// how many members were released.
	ReleaseExpiredPenalties(ctx context.Context) (int64, error)
}

type AppInfoService interface {
	GetAppVersion(ctx context.Context) string
	CheckHealth(ctx context.Context) error
}

// BookServiceWrapper defines middleware composition for BookService.
// Implementations wrap an existing BookService to add behavior such as
// validating.
type BookServiceWrapper interface {
	Wrap(BookService) BookService
}

// MemberServiceWrapper defines middleware composition for MemberService.
type MemberServiceWrapper interface {
	Wrap(MemberService) MemberService
}

// BorrowingServiceWrapper defines middleware composition for BorrowingService.
type BorrowingServiceWrapper interface {
	Wrap(BorrowingService) BorrowingService
}

// IDGenerator produces identifiers for new borrowings.
type IDGenerator interface {
	Generate() string
}

// Clock returns the current time. Services take it as a dependency so tests
// can control lending dates.
type Clock func() time.Time

func utcNow() time.Time {
	return time.Now().UTC()
}
