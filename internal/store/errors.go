package store

import "errors"

// Domain lookup and conflict errors.
var (
	ErrBookNotFound = errors.New("book was not found")

	ErrMemberNotFound = errors.New("member was not found")

	ErrBorrowingNotFound = errors.New("active borrowing was not found")

	ErrBookAlreadyExists = errors.New("book with this code already exists")

	ErrMemberAlreadyExists = errors.New("member with this code already exists")
)

// Infrastructure errors.
var (
	ErrUnsupportedDSN = errors.New("unsupported database DSN")

	ErrBuildingSQLQuery = errors.New("error building sql query")

	ErrExecutingQuery = errors.New("error executing sql query")

	ErrBeginningTransaction = errors.New("failed to begin transaction")

	ErrCommitingTransaction = errors.New("failed to commit transaction")

	ErrScanningRow = errors.New("failed to scan row")

	ErrScanningRows = errors.New("failed to scan rows")
)
