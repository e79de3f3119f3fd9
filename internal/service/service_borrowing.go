package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/MKhiriev/eigen-library/internal/config"
	"github.com/MKhiriev/eigen-library/internal/logger"
	"github.com/MKhiriev/eigen-library/internal/store"
	"github.com/MKhiriev/eigen-library/models"
)

type borrowingService struct {
	transactor          store.Transactor
	bookRepository      store.BookRepository
	memberRepository    store.MemberRepository
	borrowingRepository store.BorrowingRepository

	idGenerator IDGenerator
	now         Clock
	cfg         config.App

	logger *logger.Logger
}

func NewBorrowingService(storages *store.Storages, idGenerator IDGenerator, now Clock, cfg config.App, logger *logger.Logger) BorrowingService {
	return &borrowingService{
		transactor:          storages.Transactor,
		bookRepository:      storages.BookRepository,
		memberRepository:    storages.MemberRepository,
		borrowingRepository: storages.BorrowingRepository,
		idGenerator:         idGenerator,
		now:                 now,
		cfg:                 cfg,
		logger:              logger,
	}
}

// Borrow lends one copy of a book to a member. The member row is read before
// the book row so concurrent borrows lock in the same order.
func (s *borrowingService) Borrow(ctx context.Context, request models.BorrowRequest) (models.Borrowing, error) {
	log := logger.FromContext(ctx)
	now := s.now()

	var borrowing models.Borrowing
	err := s.transactor.WithinTransaction(ctx, func(ctx context.Context) error {
		member, err := s.memberRepository.GetMember(ctx, request.MemberCode)
		if err != nil {
			return err
		}

		if member.IsPenalized(now) {
			return fmt.Errorf("%w until %s", ErrMemberPenalized, member.PenaltyUntil.Format("2006-01-02 15:04:05"))
		}

		active, err := s.borrowingRepository.CountActiveBorrowings(ctx, member.Code)
		if err != nil {
			return err
		}
		if active >= s.cfg.MaxBorrowedBooks {
			return fmt.Errorf("%w of %d books", ErrBorrowLimitReached, s.cfg.MaxBorrowedBooks)
		}

		book, err := s.bookRepository.GetBook(ctx, request.BookCode)
		if err != nil {
			return err
		}

		_, err = s.borrowingRepository.FindActiveBorrowing(ctx, member.Code, book.Code)
		switch {
		case err == nil:
			return ErrBookAlreadyBorrowed
		case !errors.Is(err, store.ErrBorrowingNotFound):
			return err
		}

		if book.Available <= 0 {
			return ErrBookNotAvailable
		}

		borrowing = models.Borrowing{
			ID:         s.idGenerator.Generate(),
			MemberCode: member.Code,
			BookCode:   book.Code,
			BorrowedAt: now,
		}

		return s.borrowingRepository.CreateBorrowing(ctx, borrowing)
	})
	if err != nil {
		return models.Borrowing{}, err
	}

	log.Info().
		Str("func", "*borrowingService.Borrow").
		Str("member_code", borrowing.MemberCode).
		Str("book_code", borrowing.BookCode).
		Str("borrowing_id", borrowing.ID).
		Msg("book borrowed")

	return borrowing, nil
}

// Return closes the member's active borrowing of the book. A return after the
// borrow period penalizes the member for the penalty duration.
func (s *borrowingService) Return(ctx context.Context, request models.ReturnRequest) (models.ReturnResult, error) {
	log := logger.FromContext(ctx)
	now := s.now()

	var result models.ReturnResult
	err := s.transactor.WithinTransaction(ctx, func(ctx context.Context) error {
		member, err := s.memberRepository.GetMember(ctx, request.MemberCode)
		if err != nil {
			return err
		}

		borrowing, err := s.borrowingRepository.FindActiveBorrowing(ctx, member.Code, request.BookCode)
		if err != nil {
			return err
		}

		if err = s.borrowingRepository.MarkReturned(ctx, borrowing.ID, now); err != nil {
			return err
		}

		returnedAt := now
		borrowing.ReturnedAt = &returnedAt
		result = models.ReturnResult{Borrowing: borrowing}

		if now.Sub(borrowing.BorrowedAt) <= s.cfg.BorrowPeriod {
			return nil
		}

		penaltyUntil := now.Add(s.cfg.PenaltyDuration)
		if err = s.memberRepository.SetPenalty(ctx, member.Code, penaltyUntil); err != nil {
			return err
		}

		result.Late = true
		result.PenaltyUntil = &penaltyUntil
		return nil
	})
	if err != nil {
		return models.ReturnResult{}, err
	}

	event := log.Info()
	if result.Late {
		event = log.Warn().Time("penalty_until", *result.PenaltyUntil)
	}
	event.
		Str("func", "*borrowingService.Return").
		Str("member_code", result.Borrowing.MemberCode).
		Str("book_code", result.Borrowing.BookCode).
		Bool("late", result.Late).
		Msg("book returned")

	return result, nil
}

func (s *borrowingService) ReleaseExpiredPenalties(ctx context.Context) (int64, error) {
	released, err := s.memberRepository.ClearExpiredPenalties(ctx, s.now())
	if err != nil {
		return 0, fmt.Errorf("error releasing expired penalties: %w", err)
	}

	return released, nil
}
