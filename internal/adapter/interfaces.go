// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter provides the client-side transport to the library API.
//
// The primary abstraction is [ServerAdapter]. The package ships an HTTP/REST
// implementation ([NewHTTPServerAdapter]) built on resty.
//
// Error values defined in errors.go are mapped from HTTP status codes by
// mapHTTPError so that callers can use [errors.Is] (e.g. [ErrConflict] for
// 409, [ErrForbidden] for a penalized member).
package adapter

import (
	"context"

	"github.com/MKhiriev/eigen-library/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/server_adapter_mock.go -package=mock

// ServerAdapter defines communication with the library API server.
// Implementations handle serialisation and map non-2xx responses to the
// sentinel values defined in this package.
type ServerAdapter interface {
	// ListBooks returns every book with its available count.
	ListBooks(ctx context.Context) ([]models.Book, error)

	// ListMembers returns every member with the number of books held.
	ListMembers(ctx context.Context) ([]models.Member, error)

	// ListMemberBorrowings returns the active borrowings of one member.
	// Returns [ErrNotFound] (wrapped) for an unknown member code.
	ListMemberBorrowings(ctx context.Context, memberCode string) ([]models.Borrowing, error)

	// Borrow lends a book to a member. Returns [ErrForbidden] (wrapped) when
	// the member is penalized and [ErrConflict] (wrapped) when the member is
	// at the limit or the book is not available.
	Borrow(ctx context.Context, req models.BorrowRequest) (models.Borrowing, error)

	// Return gives a borrowed book back. The result reports whether the
	// return was late and the resulting penalty.
	Return(ctx context.Context, req models.ReturnRequest) (models.ReturnResult, error)

	// Version returns the API version reported by the server.
	Version(ctx context.Context) (string, error)
}
