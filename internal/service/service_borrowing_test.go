package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/eigen-library/internal/config"
	"github.com/MKhiriev/eigen-library/internal/logger"
	"github.com/MKhiriev/eigen-library/internal/mock"
	"github.com/MKhiriev/eigen-library/internal/store"
	"github.com/MKhiriev/eigen-library/models"
)

var testNow = time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

type fixedIDGenerator string

func (g fixedIDGenerator) Generate() string { return string(g) }

type borrowingMocks struct {
	tx         *mock.MockTransactor
	books      *mock.MockBookRepository
	members    *mock.MockMemberRepository
	borrowings *mock.MockBorrowingRepository
}

func testAppConfig() config.App {
	return config.App{
		Version:          "1.5",
		MaxBorrowedBooks: 2,
		BorrowPeriod:     7 * 24 * time.Hour,
		PenaltyDuration:  3 * 24 * time.Hour,
	}
}

// newTestBorrowingSvc creates a borrowingService over gomock repositories
// whose transactor simply runs the callback.
func newTestBorrowingSvc(t *testing.T, ctrl *gomock.Controller) (BorrowingService, borrowingMocks) {
	t.Helper()

	m := borrowingMocks{
		tx:         mock.NewMockTransactor(ctrl),
		books:      mock.NewMockBookRepository(ctrl),
		members:    mock.NewMockMemberRepository(ctrl),
		borrowings: mock.NewMockBorrowingRepository(ctrl),
	}
	m.tx.EXPECT().WithinTransaction(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, fn func(context.Context) error) error {
			return fn(ctx)
		}).AnyTimes()

	storages := &store.Storages{
		Transactor:          m.tx,
		BookRepository:      m.books,
		MemberRepository:    m.members,
		BorrowingRepository: m.borrowings,
	}

	svc := NewBorrowingService(storages, fixedIDGenerator("b-1"), func() time.Time { return testNow }, testAppConfig(), logger.Nop())
	return svc, m
}

// ── Borrow ───────────────────────────────────────────────────────────────────

func TestBorrowingService_Borrow_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, m := newTestBorrowingSvc(t, ctrl)
	ctx := context.Background()

	gomock.InOrder(
		m.members.EXPECT().GetMember(gomock.Any(), "M001").Return(models.Member{Code: "M001", Name: "Angga"}, nil),
		m.borrowings.EXPECT().CountActiveBorrowings(gomock.Any(), "M001").Return(1, nil),
		m.books.EXPECT().GetBook(gomock.Any(), "JK-45").Return(models.Book{Code: "JK-45", Stock: 1, Available: 1}, nil),
		m.borrowings.EXPECT().FindActiveBorrowing(gomock.Any(), "M001", "JK-45").Return(models.Borrowing{}, store.ErrBorrowingNotFound),
		m.borrowings.EXPECT().CreateBorrowing(gomock.Any(), models.Borrowing{
			ID: "b-1", MemberCode: "M001", BookCode: "JK-45", BorrowedAt: testNow,
		}).Return(nil),
	)

	borrowing, err := svc.Borrow(ctx, models.BorrowRequest{MemberCode: "M001", BookCode: "JK-45"})
	require.NoError(t, err)
	assert.Equal(t, "b-1", borrowing.ID)
	assert.Equal(t, testNow, borrowing.BorrowedAt)
	assert.True(t, borrowing.IsActive())
}

func TestBorrowingService_Borrow_MemberNotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, m := newTestBorrowingSvc(t, ctrl)

	m.members.EXPECT().GetMember(gomock.Any(), "M999").Return(models.Member{}, store.ErrMemberNotFound)

	_, err := svc.Borrow(context.Background(), models.BorrowRequest{MemberCode: "M999", BookCode: "JK-45"})
	require.ErrorIs(t, err, store.ErrMemberNotFound)
}

func TestBorrowingService_Borrow_MemberPenalized(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, m := newTestBorrowingSvc(t, ctrl)

	until := testNow.Add(24 * time.Hour)
	m.members.EXPECT().GetMember(gomock.Any(), "M002").Return(models.Member{Code: "M002", PenaltyUntil: &until}, nil)

	_, err := svc.Borrow(context.Background(), models.BorrowRequest{MemberCode: "M002", BookCode: "JK-45"})
	require.ErrorIs(t, err, ErrMemberPenalized)
}

func TestBorrowingService_Borrow_ExpiredPenaltyAllowsBorrow(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, m := newTestBorrowingSvc(t, ctrl)

	until := testNow.Add(-time.Minute)
	m.members.EXPECT().GetMember(gomock.Any(), "M002").Return(models.Member{Code: "M002", PenaltyUntil: &until}, nil)
	m.borrowings.EXPECT().CountActiveBorrowings(gomock.Any(), "M002").Return(0, nil)
	m.books.EXPECT().GetBook(gomock.Any(), "TW-11").Return(models.Book{Code: "TW-11", Stock: 1, Available: 1}, nil)
	m.borrowings.EXPECT().FindActiveBorrowing(gomock.Any(), "M002", "TW-11").Return(models.Borrowing{}, store.ErrBorrowingNotFound)
	m.borrowings.EXPECT().CreateBorrowing(gomock.Any(), gomock.Any()).Return(nil)

	_, err := svc.Borrow(context.Background(), models.BorrowRequest{MemberCode: "M002", BookCode: "TW-11"})
	require.NoError(t, err)
}

func TestBorrowingService_Borrow_LimitReached(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, m := newTestBorrowingSvc(t, ctrl)

	m.members.EXPECT().GetMember(gomock.Any(), "M001").Return(models.Member{Code: "M001"}, nil)
	m.borrowings.EXPECT().CountActiveBorrowings(gomock.Any(), "M001").Return(2, nil)

	_, err := svc.Borrow(context.Background(), models.BorrowRequest{MemberCode: "M001", BookCode: "SHR-1"})
	require.ErrorIs(t, err, ErrBorrowLimitReached)
	assert.Contains(t, err.Error(), "2 books")
}

func TestBorrowingService_Borrow_BookNotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, m := newTestBorrowingSvc(t, ctrl)

	m.members.EXPECT().GetMember(gomock.Any(), "M001").Return(models.Member{Code: "M001"}, nil)
	m.borrowings.EXPECT().CountActiveBorrowings(gomock.Any(), "M001").Return(0, nil)
	m.books.EXPECT().GetBook(gomock.Any(), "NOPE").Return(models.Book{}, store.ErrBookNotFound)

	_, err := svc.Borrow(context.Background(), models.BorrowRequest{MemberCode: "M001", BookCode: "NOPE"})
	require.ErrorIs(t, err, store.ErrBookNotFound)
}

func TestBorrowingService_Borrow_AlreadyBorrowedBySameMember(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, m := newTestBorrowingSvc(t, ctrl)

	m.members.EXPECT().GetMember(gomock.Any(), "M001").Return(models.Member{Code: "M001"}, nil)
	m.borrowings.EXPECT().CountActiveBorrowings(gomock.Any(), "M001").Return(1, nil)
	m.books.EXPECT().GetBook(gomock.Any(), "JK-45").Return(models.Book{Code: "JK-45", Stock: 1, Available: 0}, nil)
	m.borrowings.EXPECT().FindActiveBorrowing(gomock.Any(), "M001", "JK-45").Return(models.Borrowing{ID: "old"}, nil)

	_, err := svc.Borrow(context.Background(), models.BorrowRequest{MemberCode: "M001", BookCode: "JK-45"})
	require.ErrorIs(t, err, ErrBookAlreadyBorrowed)
}

func TestBorrowingService_Borrow_BorrowedByOtherMember(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, m := newTestBorrowingSvc(t, ctrl)

	m.members.EXPECT().GetMember(gomock.Any(), "M003").Return(models.Member{Code: "M003"}, nil)
	m.borrowings.EXPECT().CountActiveBorrowings(gomock.Any(), "M003").Return(0, nil)
	m.books.EXPECT().GetBook(gomock.Any(), "JK-45").Return(models.Book{Code: "JK-45", Stock: 1, Available: 0}, nil)
	m.borrowings.EXPECT().FindActiveBorrowing(gomock.Any(), "M003", "JK-45").Return(models.Borrowing{}, store.ErrBorrowingNotFound)

	_, err := svc.Borrow(context.Background(), models.BorrowRequest{MemberCode: "M003", BookCode: "JK-45"})
	require.ErrorIs(t, err, ErrBookNotAvailable)
}

func TestBorrowingService_Borrow_CreateError(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, m := newTestBorrowingSvc(t, ctrl)
	dbErr := errors.New("insert failed")

	m.members.EXPECT().GetMember(gomock.Any(), "M001").Return(models.Member{Code: "M001"}, nil)
	m.borrowings.EXPECT().CountActiveBorrowings(gomock.Any(), "M001").Return(0, nil)
	m.books.EXPECT().GetBook(gomock.Any(), "JK-45").Return(models.Book{Code: "JK-45", Stock: 1, Available: 1}, nil)
	m.borrowings.EXPECT().FindActiveBorrowing(gomock.Any(), "M001", "JK-45").Return(models.Borrowing{}, store.ErrBorrowingNotFound)
	m.borrowings.EXPECT().CreateBorrowing(gomock.Any(), gomock.Any()).Return(dbErr)

	_, err := svc.Borrow(context.Background(), models.BorrowRequest{MemberCode: "M001", BookCode: "JK-45"})
	require.ErrorIs(t, err, dbErr)
}

// ── Return ───────────────────────────────────────────────────────────────────

func TestBorrowingService_Return_OnTime(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, m := newTestBorrowingSvc(t, ctrl)

	borrowedAt := testNow.Add(-7 * 24 * time.Hour)
	m.members.EXPECT().GetMember(gomock.Any(), "M001").Return(models.Member{Code: "M001"}, nil)
	m.borrowings.EXPECT().FindActiveBorrowing(gomock.Any(), "M001", "JK-45").
		Return(models.Borrowing{ID: "b-1", MemberCode: "M001", BookCode: "JK-45", BorrowedAt: borrowedAt}, nil)
	m.borrowings.EXPECT().MarkReturned(gomock.Any(), "b-1", testNow).Return(nil)

	result, err := svc.Return(context.Background(), models.ReturnRequest{MemberCode: "M001", BookCode: "JK-45"})
	require.NoError(t, err)
	assert.False(t, result.Late)
	assert.Nil(t, result.PenaltyUntil)
	require.NotNil(t, result.Borrowing.ReturnedAt)
	assert.Equal(t, testNow, *result.Borrowing.ReturnedAt)
}

func TestBorrowingService_Return_LatePenalizesMember(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, m := newTestBorrowingSvc(t, ctrl)

	borrowedAt := testNow.Add(-8 * 24 * time.Hour)
	wantPenalty := testNow.Add(3 * 24 * time.Hour)

	m.members.EXPECT().GetMember(gomock.Any(), "M002").Return(models.Member{Code: "M002"}, nil)
	m.borrowings.EXPECT().FindActiveBorrowing(gomock.Any(), "M002", "TW-11").
		Return(models.Borrowing{ID: "b-7", MemberCode: "M002", BookCode: "TW-11", BorrowedAt: borrowedAt}, nil)
	m.borrowings.EXPECT().MarkReturned(gomock.Any(), "b-7", testNow).Return(nil)
	m.members.EXPECT().SetPenalty(gomock.Any(), "M002", wantPenalty).Return(nil)

	result, err := svc.Return(context.Background(), models.ReturnRequest{MemberCode: "M002", BookCode: "TW-11"})
	require.NoError(t, err)
	assert.True(t, result.Late)
	require.NotNil(t, result.PenaltyUntil)
	assert.Equal(t, wantPenalty, *result.PenaltyUntil)
}

func TestBorrowingService_Return_NotBorrowed(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, m := newTestBorrowingSvc(t, ctrl)

	m.members.EXPECT().GetMember(gomock.Any(), "M003").Return(models.Member{Code: "M003"}, nil)
	m.borrowings.EXPECT().FindActiveBorrowing(gomock.Any(), "M003", "JK-45").Return(models.Borrowing{}, store.ErrBorrowingNotFound)

	_, err := svc.Return(context.Background(), models.ReturnRequest{MemberCode: "M003", BookCode: "JK-45"})
	require.ErrorIs(t, err, store.ErrBorrowingNotFound)
}

func TestBorrowingService_Return_PenaltyError(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, m := newTestBorrowingSvc(t, ctrl)
	dbErr := errors.New("update failed")

	m.members.EXPECT().GetMember(gomock.Any(), "M002").Return(models.Member{Code: "M002"}, nil)
	m.borrowings.EXPECT().FindActiveBorrowing(gomock.Any(), "M002", "TW-11").
		Return(models.Borrowing{ID: "b-7", BorrowedAt: testNow.Add(-30 * 24 * time.Hour)}, nil)
	m.borrowings.EXPECT().MarkReturned(gomock.Any(), "b-7", testNow).Return(nil)
	m.members.EXPECT().SetPenalty(gomock.Any(), "M002", gomock.Any()).Return(dbErr)

	_, err := svc.Return(context.Background(), models.ReturnRequest{MemberCode: "M002", BookCode: "TW-11"})
	require.ErrorIs(t, err, dbErr)
}

// ── ReleaseExpiredPenalties ──────────────────────────────────────────────────

func TestBorrowingService_ReleaseExpiredPenalties(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, m := newTestBorrowingSvc(t, ctrl)

	m.members.EXPECT().ClearExpiredPenalties(gomock.Any(), testNow).Return(int64(2), nil)

	released, err := svc.ReleaseExpiredPenalties(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(2), released)
}

func TestBorrowingService_ReleaseExpiredPenalties_Error(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, m := newTestBorrowingSvc(t, ctrl)

	m.members.EXPECT().ClearExpiredPenalties(gomock.Any(), testNow).Return(int64(0), store.ErrExecutingQuery)

	_, err := svc.ReleaseExpiredPenalties(context.Background())
	require.ErrorIs(t, err, store.ErrExecutingQuery)
	assert.Contains(t, err.Error(), "releasing expired penalties")
}
