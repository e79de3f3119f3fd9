// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// Borrowing records one copy of a book lent to a member. A borrowing is
// active while ReturnedAt is nil.
type Borrowing struct {
	ID         string     `json:"id"`
	MemberCode string     `json:"member_code"`
	BookCode   string     `json:"book_code"`
	BorrowedAt time.Time  `json:"borrowed_at"`
	ReturnedAt *time.Time `json:"returned_at,omitempty"`
}

// IsActive reports whether the book has not been returned yet.
func (b Borrowing) IsActive() bool {
	return b.ReturnedAt == nil
}

// BorrowRequest is the payload of POST /api/borrowings.
type BorrowRequest struct {
	MemberCode string `json:"member_code" validate:"required,max=32"`
	BookCode   string `json:"book_code" validate:"required,max=32"`
}

// ReturnRequest is the payload of POST /api/borrowings/return.
type ReturnRequest struct {
	MemberCode string `json:"member_code" validate:"required,max=32"`
	BookCode   string `json:"book_code" validate:"required,max=32"`
}

// ReturnResult describes a completed return. Late is true when the book was
// held longer than the borrow period, in which case PenaltyUntil holds the
// moment the member may borrow again.
type ReturnResult struct {
	Borrowing    Borrowing  `json:"borrowing"`
	Late         bool       `json:"late"`
	PenaltyUntil *time.Time `json:"penalty_until,omitempty"`
}
