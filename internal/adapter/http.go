package adapter

import (
	"context"
	"errors"
	"fmt"
	"net/url"

	"github.com/MKhiriev/eigen-library/internal/config"
	"github.com/MKhiriev/eigen-library/internal/logger"
	"github.com/MKhiriev/eigen-library/internal/utils"
	"github.com/MKhiriev/eigen-library/models"
)

var errEmptyAddress = errors.New("empty address")

type httpServerAdapter struct {
	client *utils.HTTPClient

	logger *logger.Logger
}

// NewHTTPServerAdapter constructs an HTTP/REST implementation of [ServerAdapter]
// for the server at adapterCfg.HTTPAddress. A bare host:port is treated as
// an http address.
func NewHTTPServerAdapter(adapterCfg config.Adapter, logger *logger.Logger) (ServerAdapter, error) {
	if adapterCfg.HTTPAddress == "" {
		return nil, fmt.Errorf("invalid adapter http address: %w", errEmptyAddress)
	}

	client := utils.NewHTTPClient(adapterCfg.HTTPAddress, adapterCfg.RequestTimeout)
	if _, err := url.ParseRequestURI(client.BaseURL); err != nil {
		return nil, fmt.Errorf("invalid adapter http address: %w", err)
	}

	return &httpServerAdapter{client: client, logger: logger}, nil
}

func (h *httpServerAdapter) ListBooks(ctx context.Context) ([]models.Book, error) {
	var books []models.Book

	resp, err := h.client.R().
		SetContext(ctx).
		SetResult(&books).
		Get("/api/books")
	if err != nil {
		return nil, fmt.Errorf("list books request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return nil, err
	}

	return books, nil
}

func (h *httpServerAdapter) ListMembers(ctx context.Context) ([]models.Member, error) {
	var members []models.Member

	resp, err := h.client.R().
		SetContext(ctx).
		SetResult(&members).
		Get("/api/members")
	if err != nil {
		return nil, fmt.Errorf("list members request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return nil, err
	}

	return members, nil
}

func (h *httpServerAdapter) ListMemberBorrowings(ctx context.Context, memberCode string) ([]models.Borrowing, error) {
	var borrowings []models.Borrowing

	resp, err := h.client.R().
		SetContext(ctx).
		SetPathParam("code", memberCode).
		SetResult(&borrowings).
		Get("/api/members/{code}/borrowings")
	if err != nil {
		return nil, fmt.Errorf("list borrowings request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return nil, err
	}

	return borrowings, nil
}

// Borrow implements [ServerAdapter]. It POSTs req to POST /api/borrowings.
func (h *httpServerAdapter) Borrow(ctx context.Context, req models.BorrowRequest) (models.Borrowing, error) {
	var borrowing models.Borrowing

	resp, err := h.client.R().
		SetContext(ctx).
		SetBody(req).
		SetResult(&borrowing).
		Post("/api/borrowings")
	if err != nil {
		return models.Borrowing{}, fmt.Errorf("borrow request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		h.logger.Debug().Err(err).Str("member", req.MemberCode).Str("book", req.BookCode).Msg("borrow rejected")
		return models.Borrowing{}, err
	}

	return borrowing, nil
}

// Return implements [ServerAdapter]. It POSTs req to POST /api/borrowings/return.
func (h *httpServerAdapter) Return(ctx context.Context, req models.ReturnRequest) (models.ReturnResult, error) {
	var result models.ReturnResult

	resp, err := h.client.R().
		SetContext(ctx).
		SetBody(req).
		SetResult(&result).
		Post("/api/borrowings/return")
	if err != nil {
		return models.ReturnResult{}, fmt.Errorf("return request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.ReturnResult{}, err
	}

	return result, nil
}

func (h *httpServerAdapter) Version(ctx context.Context) (string, error) {
	var version models.VersionResponse

	resp, err := h.client.R().
		SetContext(ctx).
		SetResult(&version).
		Get("/api/version")
	if err != nil {
		return "", fmt.Errorf("version request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return "", err
	}

	return version.Version, nil
}
