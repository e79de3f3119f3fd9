// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/eigen-library/internal/config"
	"github.com/MKhiriev/eigen-library/internal/logger"
	"github.com/MKhiriev/eigen-library/models"
)

// newTestAdapter builds an httpServerAdapter pointed at the test server.
func newTestAdapter(t *testing.T, serverURL string) *httpServerAdapter {
	t.Helper()

	a, err := NewHTTPServerAdapter(config.Adapter{HTTPAddress: serverURL, RequestTimeout: 5 * time.Second}, logger.Nop())
	require.NoError(t, err)
	return a.(*httpServerAdapter)
}

func writeJSON(t *testing.T, w http.ResponseWriter, status int, v any) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	require.NoError(t, json.NewEncoder(w).Encode(v))
}

func writeEnvelope(t *testing.T, w http.ResponseWriter, r *http.Request, status int, message string) {
	writeJSON(t, w, status, models.ErrorResponse{
		StatusCode: status,
		Message:    message,
		Error:      http.StatusText(status),
		Path:       r.URL.Path,
	})
}

// ── constructor ─────────────────────────────────────────────────────────────

func TestNewHTTPServerAdapter(t *testing.T) {
	t.Run("empty address", func(t *testing.T) {
		_, err := NewHTTPServerAdapter(config.Adapter{}, logger.Nop())
		assert.ErrorIs(t, err, errEmptyAddress)
	})

	t.Run("bare host gets http scheme", func(t *testing.T) {
		a, err := NewHTTPServerAdapter(config.Adapter{HTTPAddress: "localhost:3000/"}, logger.Nop())
		require.NoError(t, err)
		assert.Equal(t, "http://localhost:3000", a.(*httpServerAdapter).client.BaseURL)
	})
}

// ── ListBooks ───────────────────────────────────────────────────────────────

func TestListBooks_Success(t *testing.T) {
	want := []models.Book{
		{Code: "JK-45", Title: "Harry Potter", Author: "J.K Rowling", Stock: 1, Available: 1},
		{Code: "NRN-7", Title: "The Lion, the Witch and the Wardrobe", Author: "C.S. Lewis", Stock: 1},
	}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/books", r.URL.Path)
		writeJSON(t, w, http.StatusOK, want)
	}))
	defer srv.Close()

	got, err := newTestAdapter(t, srv.URL).ListBooks(context.Background())

	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestListBooks_InternalServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeEnvelope(t, w, r, http.StatusInternalServerError, "Internal server error")
	}))
	defer srv.Close()

	_, err := newTestAdapter(t, srv.URL).ListBooks(context.Background())

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInternalServerError)
	assert.Contains(t, err.Error(), "Internal server error")
}

// ── ListMembers ─────────────────────────────────────────────────────────────

func TestListMembers_Success(t *testing.T) {
	want := []models.Member{{Code: "M001", Name: "Angga", BorrowedBooks: 1}}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/members", r.URL.Path)
		writeJSON(t, w, http.StatusOK, want)
	}))
	defer srv.Close()

	got, err := newTestAdapter(t, srv.URL).ListMembers(context.Background())

	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestListMemberBorrowings_UnknownMember(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/members/M404/borrowings", r.URL.Path)
		writeEnvelope(t, w, r, http.StatusNotFound, "member not found")
	}))
	defer srv.Close()

	_, err := newTestAdapter(t, srv.URL).ListMemberBorrowings(context.Background(), "M404")

	assert.ErrorIs(t, err, ErrNotFound)
	assert.Contains(t, err.Error(), "member not found")
}

// ── Borrow ──────────────────────────────────────────────────────────────────

func TestBorrow_Success(t *testing.T) {
	req := models.BorrowRequest{MemberCode: "M001", BookCode: "JK-45"}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/borrowings", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var got models.BorrowRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		assert.Equal(t, req, got)

		writeJSON(t, w, http.StatusCreated, models.Borrowing{ID: "b-1", MemberCode: got.MemberCode, BookCode: got.BookCode})
	}))
	defer srv.Close()

	borrowing, err := newTestAdapter(t, srv.URL).Borrow(context.Background(), req)

	require.NoError(t, err)
	assert.Equal(t, "b-1", borrowing.ID)
	assert.Equal(t, "JK-45", borrowing.BookCode)
}

func TestBorrow_Rejections(t *testing.T) {
	tests := []struct {
		name   string
		status int
		want   error
	}{
		{name: "penalized", status: http.StatusForbidden, want: ErrForbidden},
		{name: "limit reached", status: http.StatusConflict, want: ErrConflict},
		{name: "validation", status: http.StatusBadRequest, want: ErrBadRequest},
		{name: "unknown member", status: http.StatusNotFound, want: ErrNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				writeEnvelope(t, w, r, tt.status, tt.name)
			}))
			defer srv.Close()

			_, err := newTestAdapter(t, srv.URL).Borrow(context.Background(), models.BorrowRequest{MemberCode: "M001", BookCode: "JK-45"})

			assert.ErrorIs(t, err, tt.want)
			assert.Contains(t, err.Error(), tt.name)
		})
	}
}

// ── Return ──────────────────────────────────────────────────────────────────

func TestReturn_Late(t *testing.T) {
	penaltyUntil := time.Date(2026, 3, 13, 12, 0, 0, 0, time.UTC)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/borrowings/return", r.URL.Path)
		writeJSON(t, w, http.StatusOK, models.ReturnResult{
			Borrowing:    models.Borrowing{ID: "b-1"},
			Late:         true,
			PenaltyUntil: &penaltyUntil,
		})
	}))
	defer srv.Close()

	result, err := newTestAdapter(t, srv.URL).Return(context.Background(), models.ReturnRequest{MemberCode: "M001", BookCode: "JK-45"})

	require.NoError(t, err)
	assert.True(t, result.Late)
	require.NotNil(t, result.PenaltyUntil)
	assert.True(t, penaltyUntil.Equal(*result.PenaltyUntil))
}

// ── Version ─────────────────────────────────────────────────────────────────

func TestVersion(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/version", r.URL.Path)
		writeJSON(t, w, http.StatusOK, models.VersionResponse{Version: "1.5"})
	}))
	defer srv.Close()

	version, err := newTestAdapter(t, srv.URL).Version(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "1.5", version)
}

func TestRequest_ServerUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	_, err := newTestAdapter(t, url).Version(context.Background())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "version request")
}

// ── mapHTTPError ────────────────────────────────────────────────────────────

func TestMapHTTPError_PlainBodyAndUnknownStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/plain":
			w.WriteHeader(http.StatusServiceUnavailable)
			_, _ = io.WriteString(w, "  maintenance  ")
		default:
			w.WriteHeader(http.StatusTeapot)
		}
	}))
	defer srv.Close()

	client := newTestAdapter(t, srv.URL).client

	resp, err := client.R().Get("/plain")
	require.NoError(t, err)
	mapped := mapHTTPError(resp)
	assert.ErrorIs(t, mapped, ErrServiceUnavailable)
	assert.True(t, strings.HasSuffix(mapped.Error(), ": maintenance"))

	resp, err = client.R().Get("/teapot")
	require.NoError(t, err)
	assert.EqualError(t, mapHTTPError(resp), "http 418: I'm a teapot")
}
