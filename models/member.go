// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// Member is a library member who can borrow books.
type Member struct {
	// Code is the unique member code, e.g. "M001".
	Code string `json:"code" validate:"required,max=32"`

	Name string `json:"name" validate:"required,max=255"`

	// PenaltyUntil is set when the member returned a book late. While it lies
	// in the future the member cannot borrow.
	PenaltyUntil *time.Time `json:"penalty_until,omitempty"`

	// BorrowedBooks is the number of books the member holds right now.
	BorrowedBooks int `json:"borrowed_books"`

	// Penalized is derived from PenaltyUntil at read time.
	Penalized bool `json:"is_penalized"`

	CreatedAt *time.Time `json:"created_at,omitempty"`
}

// IsPenalized reports whether the member is still serving a penalty at now.
func (m Member) IsPenalized(now time.Time) bool {
	return m.PenaltyUntil != nil && now.Before(*m.PenaltyUntil)
}

// CreateMemberRequest is the payload of POST /api/members.
type CreateMemberRequest struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

func (r CreateMemberRequest) ToMember() Member {
	return Member{
		Code: r.Code,
		Name: r.Name,
	}
}
