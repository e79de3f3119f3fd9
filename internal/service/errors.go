package service

import "errors"

var (
	ErrInvalidDataProvided = errors.New("invalid data provided")

	ErrVersionIsNotSpecified = errors.New("app version is not specified")

	ErrMemberPenalized     = errors.New("member is penalized and cannot borrow books")
	ErrBorrowLimitReached  = errors.New("member has reached the borrowing limit")
	ErrBookNotAvailable    = errors.New("book is not available")
	ErrBookAlreadyBorrowed = errors.New("member already borrowed this book")
)
