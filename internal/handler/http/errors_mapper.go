package http

import (
	"errors"
	"net/http"

	"github.com/MKhiriev/eigen-library/internal/service"
	"github.com/MKhiriev/eigen-library/internal/store"
	"github.com/MKhiriev/eigen-library/internal/utils"
	"github.com/MKhiriev/eigen-library/internal/validators"
)

type errorStatus struct {
	err    error
	status int
}

// errorStatuses is scanned in order and the first match wins, so an error
// wrapping several sentinels maps to the same status on every call.
// Specific causes come before the generic storage wrappers.
var errorStatuses = []errorStatus{
	{utils.ErrBodyTooLarge, http.StatusRequestEntityTooLarge},
	{errInvalidRequestBody, http.StatusBadRequest},
	{service.ErrInvalidDataProvided, http.StatusBadRequest},
	{validators.ErrValidation, http.StatusBadRequest},

	{service.ErrMemberPenalized, http.StatusForbidden},
	{service.ErrBorrowLimitReached, http.StatusConflict},
	{service.ErrBookNotAvailable, http.StatusConflict},
	{service.ErrBookAlreadyBorrowed, http.StatusConflict},

	{store.ErrBookNotFound, http.StatusNotFound},
	{store.ErrMemberNotFound, http.StatusNotFound},
	{store.ErrBorrowingNotFound, http.StatusNotFound},
	{store.ErrBookAlreadyExists, http.StatusConflict},
	{store.ErrMemberAlreadyExists, http.StatusConflict},

	{store.ErrBuildingSQLQuery, http.StatusInternalServerError},
	{store.ErrExecutingQuery, http.StatusInternalServerError},
	{store.ErrBeginningTransaction, http.StatusInternalServerError},
	{store.ErrCommitingTransaction, http.StatusInternalServerError},
	{store.ErrScanningRow, http.StatusInternalServerError},
	{store.ErrScanningRows, http.StatusInternalServerError},
	{errPanicRecovered, http.StatusInternalServerError},
}

func statusFromError(err error) int {
	for _, es := range errorStatuses {
		if errors.Is(err, es.err) {
			return es.status
		}
	}
	return http.StatusInternalServerError
}
