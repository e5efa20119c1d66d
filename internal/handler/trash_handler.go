package handler

import (
	"net/http"

	"planboard/internal/middleware"
	"planboard/internal/service"
	"planboard/pkg/response"
)

type TrashHandler struct {
	service *service.TrashService
}

func NewTrashHandler(service *service.TrashService) *TrashHandler {
	return &TrashHandler{service: service}
}

// List returns the combined trash: notes and versions in one view ordered by
// deletion date, each with its retention counter.
func (h *TrashHandler) List(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r)

	items, err := h.service.List(userID)
	if err != nil {
		response.InternalError(w, "Failed to list trash")
		return
	}

	response.Success(w, items)
}

// ListNotes returns the user's trashed notes as full rows, for clients that
// compute the trash view themselves.
func (h *TrashHandler) ListNotes(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r)

	notes, err := h.service.ListNotes(userID)
	if err != nil {
		response.InternalError(w, "Failed to list trashed notes")
		return
	}

	response.Success(w, notes)
}

// ListVersions returns the trashed versions of the user's notes as full rows.
func (h *TrashHandler) ListVersions(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r)

	versions, err := h.service.ListVersions(userID)
	if err != nil {
		response.InternalError(w, "Failed to list trashed versions")
		return
	}

	response.Success(w, versions)
}
