package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MKhiriev/eigen-library/models"
)

// listMembers godoc
//
//	@Summary		Check members
//	@Description	Lists every member with the number of books being borrowed.
//	@Tags			Members
//	@Produce		json
//	@Success		200	{array}		models.Member
//	@Failure		500	{object}	models.ErrorResponse
//	@Router			/members [get]
func (h *Handler) listMembers(w http.ResponseWriter, r *http.Request) {
	members, err := h.services.MemberService.ListMembers(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeResponse(w, r, members, http.StatusOK)
}

// getMember godoc
//
//	@Summary	Get member
//	@Tags		Members
//	@Produce	json
//	@Param		code	path		string	true	"Member code"
//	@Success	200		{object}	models.Member
//	@Failure	404		{object}	models.ErrorResponse
//	@Router		/members/{code} [get]
func (h *Handler) getMember(w http.ResponseWriter, r *http.Request) {
	member, err := h.services.MemberService.GetMember(r.Context(), chi.URLParam(r, "code"))
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeResponse(w, r, member, http.StatusOK)
}

// createMember godoc
//
//	@Summary	Register member
//	@Tags		Members
//	@Accept		json
//	@Produce	json
//	@Param		member	body		models.CreateMemberRequest	true	"New member"
//	@Success	201		{object}	models.Member
//	@Failure	400		{object}	models.ErrorResponse
//	@Failure	409		{object}	models.ErrorResponse
//	@Router		/members [post]
func (h *Handler) createMember(w http.ResponseWriter, r *http.Request) {
	var request models.CreateMemberRequest
	if !decodeRequest(w, r, &request) {
		return
	}

	member, err := h.services.MemberService.CreateMember(r.Context(), request.ToMember())
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeResponse(w, r, member, http.StatusCreated)
}

// listMemberBorrowings godoc
//
//	@Summary	Books held by member
//	@Tags		Members
//	@Produce	json
//	@Param		code	path		string	true	"Member code"
//	@Success	200		{array}		models.Borrowing
//	@Failure	404		{object}	models.ErrorResponse
//	@Router		/members/{code}/borrowings [get]
func (h *Handler) listMemberBorrowings(w http.ResponseWriter, r *http.Request) {
	borrowings, err := h.services.MemberService.ListBorrowings(r.Context(), chi.URLParam(r, "code"))
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeResponse(w, r, borrowings, http.StatusOK)
}
