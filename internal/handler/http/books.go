package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MKhiriev/eigen-library/models"
)

// listBooks godoc
//
//	@Summary		Check books
//	@Description	Lists every book with the number of copies that are not borrowed.
//	@Tags			Books
//	@Produce		json
//	@Success		200	{array}		models.Book
//	@Failure		500	{object}	models.ErrorResponse
//	@Router			/books [get]
func (h *Handler) listBooks(w http.ResponseWriter, r *http.Request) {
	books, err := h.services.BookService.ListBooks(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeResponse(w, r, books, http.StatusOK)
}

// getBook godoc
//
//	@Summary	Get book
//	@Tags		Books
//	@Produce	json
//	@Param		code	path		string	true	"Book code"
//	@Success	200		{object}	models.Book
//	@Failure	404		{object}	models.ErrorResponse
//	@Router		/books/{code} [get]
func (h *Handler) getBook(w http.ResponseWriter, r *http.Request) {
	book, err := h.services.BookService.GetBook(r.Context(), chi.URLParam(r, "code"))
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeResponse(w, r, book, http.StatusOK)
}

// createBook godoc
//
//	@Summary	Add book
//	@Tags		Books
//	@Accept		json
//	@Produce	json
//	@Param		book	body		models.CreateBookRequest	true	"New book"
//	@Success	201		{object}	models.Book
//	@Failure	400		{object}	models.ErrorResponse
//	@Failure	409		{object}	models.ErrorResponse
//	@Router		/books [post]
func (h *Handler) createBook(w http.ResponseWriter, r *http.Request) {
	var request models.CreateBookRequest
	if !decodeRequest(w, r, &request) {
		return
	}

	book, err := h.services.BookService.CreateBook(r.Context(), request.ToBook())
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeResponse(w, r, book, http.StatusCreated)
}
