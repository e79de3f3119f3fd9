package http

import (
	"context"

	"github.com/MKhiriev/eigen-library/models"
)

// ─────────────────────────────────────────────
// Hand-written service mocks
// ─────────────────────────────────────────────

type mockBookService struct {
	listBooksFn  func(ctx context.Context) ([]models.Book, error)
	getBookFn    func(ctx context.Context, code string) (models.Book, error)
	createBookFn func(ctx context.Context, book models.Book) (models.Book, error)
}

func (m *mockBookService) ListBooks(ctx context.Context) ([]models.Book, error) {
	return m.listBooksFn(ctx)
}

func (m *mockBookService) GetBook(ctx context.Context, code string) (models.Book, error) {
	return m.getBookFn(ctx, code)
}

func (m *mockBookService) CreateBook(ctx context.Context, book models.Book) (models.Book, error) {
	return m.createBookFn(ctx, book)
}

type mockMemberService struct {
	listMembersFn    func(ctx context.Context) ([]models.Member, error)
	getMemberFn      func(ctx context.Context, code string) (models.Member, error)
	createMemberFn   func(ctx context.Context, member models.Member) (models.Member, error)
	listBorrowingsFn func(ctx context.Context, memberCode string) ([]models.Borrowing, error)
}

func (m *mockMemberService) ListMembers(ctx context.Context) ([]models.Member, error) {
	return m.listMembersFn(ctx)
}

func (m *mockMemberService) GetMember(ctx context.Context, code string) (models.Member, error) {
	return m.getMemberFn(ctx, code)
}

func (m *mockMemberService) CreateMember(ctx context.Context, member models.Member) (models.Member, error) {
	return m.createMemberFn(ctx, member)
}

func (m *mockMemberService) ListBorrowings(ctx context.Context, memberCode string) ([]models.Borrowing, error) {
	return m.listBorrowingsFn(ctx, memberCode)
}

type mockBorrowingService struct {
	borrowFn  func(ctx context.Context, request models.BorrowRequest) (models.Borrowing, error)
	returnFn  func(ctx context.Context, request models.ReturnRequest) (models.ReturnResult, error)
	releaseFn func(ctx context.Context) (int64, error)
}

func (m *mockBorrowingService) Borrow(ctx context.Context, request models.BorrowRequest) (models.Borrowing, error) {
	return m.borrowFn(ctx, request)
}

func (m *mockBorrowingService) Return(ctx context.Context, request models.ReturnRequest) (models.ReturnResult, error) {
	return m.returnFn(ctx, request)
}

func (m *mockBorrowingService) ReleaseExpiredPenalties(ctx context.Context) (int64, error) {
	return m.releaseFn(ctx)
}

// mockAppInfoService implements service.AppInfoService for testing.
type mockAppInfoService struct {
	version   string
	healthErr error
}

func (m *mockAppInfoService) GetAppVersion(_ context.Context) string {
	return m.version
}

func (m *mockAppInfoService) CheckHealth(_ context.Context) error {
	return m.healthErr
}
