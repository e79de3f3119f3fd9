// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"time"

	"github.com/MKhiriev/eigen-library/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

// Transactor runs a unit of work inside one database transaction. The
// transaction travels in the context passed to fn, and every repository
// call made with that context joins it.
type Transactor interface {
	// WithinTransaction commits when fn returns nil and rolls back otherwise.
	// Calls nested inside an active transaction reuse it.
	WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// BookRepository persists the book catalogue.
type BookRepository interface {
	// ListBooks returns every book ordered by code with Available computed
	// from active borrowings.
	ListBooks(ctx context.Context) ([]models.Book, error)

	// GetBook returns one book by code or [ErrBookNotFound]. Inside a
	// transaction the row is locked on databases that support row locks,
	// and Available is read by a separate statement after the lock is held.
	GetBook(ctx context.Context, code string) (models.Book, error)

	// CreateBook inserts a new book or returns [ErrBookAlreadyExists].
	CreateBook(ctx context.Context, book models.Book) (models.Book, error)
}

// MemberRepository persists library members and their penalties.
type MemberRepository interface {
	ListMembers(ctx context.Context) ([]models.Member, error)

	// GetMember returns one member by code or [ErrMemberNotFound], locking
	// the row inside a transaction like [BookRepository.GetBook].
	GetMember(ctx context.Context, code string) (models.Member, error)

	// CreateMember inserts a new member or returns [ErrMemberAlreadyExists].
	CreateMember(ctx context.Context, member models.Member) (models.Member, error)

	// SetPenalty bars the member from borrowing until the given moment.
	SetPenalty(ctx context.Context, code string, until time.Time) error

	// ClearExpiredPenalties removes penalties that ended at or before now and
	// reports how many members were released.
	ClearExpiredPenalties(ctx context.Context, now time.Time) (int64, error)
}

// BorrowingRepository persists lending records.
type BorrowingRepository interface {
	CreateBorrowing(ctx context.Context, borrowing models.Borrowing) error

	// FindActiveBorrowing returns the oldest unreturned borrowing of the book
	// by the member or [ErrBorrowingNotFound].
	FindActiveBorrowing(ctx context.Context, memberCode, bookCode string) (models.Borrowing, error)

	ListActiveBorrowings(ctx context.Context, memberCode string) ([]models.Borrowing, error)

	CountActiveBorrowings(ctx context.Context, memberCode string) (int, error)

	// MarkReturned closes an active borrowing or returns [ErrBorrowingNotFound].
	MarkReturned(ctx context.Context, id string, returnedAt time.Time) error
}

// Pinger checks database connectivity.
type Pinger interface {
	Ping(ctx context.Context) error
}

// ErrorClassificator interprets driver-specific errors.
type ErrorClassificator interface {
	Classify(err error) ErrorClassification
	IsUniqueViolation(err error) bool
}
