package http

import (
	"net/http"

	"github.com/MKhiriev/eigen-library/models"
)

// borrowBook godoc
//
//	@Summary		Borrow book
//	@Description	Members may hold at most two books, cannot borrow a book that is lent out and cannot borrow while penalized.
//	@Tags			Borrowings
//	@Accept			json
//	@Produce		json
//	@Param			request	body		models.BorrowRequest	true	"Member and book codes"
//	@Success		201		{object}	models.Borrowing
//	@Failure		400		{object}	models.ErrorResponse
//	@Failure		403		{object}	models.ErrorResponse
//	@Failure		404		{object}	models.ErrorResponse
//	@Failure		409		{object}	models.ErrorResponse
//	@Router			/borrowings [post]
func (h *Handler) borrowBook(w http.ResponseWriter, r *http.Request) {
	var request models.BorrowRequest
	if !decodeRequest(w, r, &request) {
		return
	}

	borrowing, err := h.services.BorrowingService.Borrow(r.Context(), request)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeResponse(w, r, borrowing, http.StatusCreated)
}

// returnBook godoc
//
//	@Summary		Return book
//	@Description	A book returned more than 7 days after borrowing penalizes the member for 3 days.
//	@Tags			Borrowings
//	@Accept			json
//	@Produce		json
//	@Param			request	body		models.ReturnRequest	true	"Member and book codes"
//	@Success		200		{object}	models.ReturnResult
//	@Failure		400		{object}	models.ErrorResponse
//	@Failure		404		{object}	models.ErrorResponse
//	@Router			/borrowings/return [post]
func (h *Handler) returnBook(w http.ResponseWriter, r *http.Request) {
	var request models.ReturnRequest
	if !decodeRequest(w, r, &request) {
		return
	}

	result, err := h.services.BorrowingService.Return(r.Context(), request)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeResponse(w, r, result, http.StatusOK)
}
