package service

import (
	"context"
	"fmt"

	"github.com/MKhiriev/eigen-library/internal/validators"
	"github.com/MKhiriev/eigen-library/models"
)

type BookValidationService struct {
	inner     BookService
	validator validators.Validator
}

func NewBookValidationService(validator validators.Validator) BookServiceWrapper {
	return &BookValidationService{validator: validator}
}

func (v *BookValidationService) ListBooks(ctx context.Context) ([]models.Book, error) {
	return v.inner.ListBooks(ctx)
}

func (v *BookValidationService) GetBook(ctx context.Context, code string) (models.Book, error) {
	if err := v.validator.Validate(ctx, models.Book{Code: code}, "code"); err != nil {
		return models.Book{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	return v.inner.GetBook(ctx, code)
}

func (v *BookValidationService) CreateBook(ctx context.Context, book models.Book) (models.Book, error) {
	if err := v.validator.Validate(ctx, book); err != nil {
		return models.Book{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	return v.inner.CreateBook(ctx, book)
}

func (v *BookValidationService) Wrap(wrapped BookService) BookService {
	v.inner = wrapped
	return v
}

type MemberValidationService struct {
	inner     MemberService
	validator validators.Validator
}

func NewMemberValidationService(validator validators.Validator) MemberServiceWrapper {
	return &MemberValidationService{validator: validator}
}

func (v *MemberValidationService) ListMembers(ctx context.Context) ([]models.Member, error) {
	return v.inner.ListMembers(ctx)
}

func (v *MemberValidationService) GetMember(ctx context.Context, code string) (models.Member, error) {
	if err := v.validateCode(ctx, code); err != nil {
		return models.Member{}, err
	}

	return v.inner.GetMember(ctx, code)
}

func (v *MemberValidationService) CreateMember(ctx context.Context, member models.Member) (models.Member, error) {
	if err := v.validator.Validate(ctx, member); err != nil {
		return models.Member{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	return v.inner.CreateMember(ctx, member)
}

func (v *MemberValidationService) ListBorrowings(ctx context.Context, memberCode string) ([]models.Borrowing, error) {
	if err := v.validateCode(ctx, memberCode); err != nil {
		return nil, err
	}

	return v.inner.ListBorrowings(ctx, memberCode)
}

func (v *MemberValidationService) validateCode(ctx context.Context, code string) error {
	if err := v.validator.Validate(ctx, models.Member{Code: code}, "code"); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}
	return nil
}

func (v *MemberValidationService) Wrap(wrapped MemberService) MemberService {
	v.inner = wrapped
	return v
}

type BorrowingValidationService struct {
	inner     BorrowingService
	validator validators.Validator
}

func NewBorrowingValidationService(validator validators.Validator) BorrowingServiceWrapper {
	return &BorrowingValidationService{validator: validator}
}

func (v *BorrowingValidationService) Borrow(ctx context.Context, request models.BorrowRequest) (models.Borrowing, error) {
	if err := v.validator.Validate(ctx, request); err != nil {
		return models.Borrowing{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	return v.inner.Borrow(ctx, request)
}

func (v *BorrowingValidationService) Return(ctx context.Context, request models.ReturnRequest) (models.ReturnResult, error) {
	if err := v.validator.Validate(ctx, request); err != nil {
		return models.ReturnResult{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	return v.inner.Return(ctx, request)
}

func (v *BorrowingValidationService) ReleaseExpiredPenalties(ctx context.Context) (int64, error) {
	return v.inner.ReleaseExpiredPenalties(ctx)
}

func (v *BorrowingValidationService) Wrap(wrapped BorrowingService) BorrowingService {
	v.inner = wrapped
	return v
}
