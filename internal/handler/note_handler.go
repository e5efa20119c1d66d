package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"planboard/internal/domain"
	"planboard/internal/middleware"
	"planboard/internal/service"
	"planboard/pkg/response"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
)

type NoteHandler struct {
	service  *service.NoteService
	validate *validator.Validate
}

func NewNoteHandler(service *service.NoteService) *NoteHandler {
	return &NoteHandler{
		service:  service,
		validate: validator.New(),
	}
}

func (h *NoteHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateNoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request payload")
		return
	}

	userID := middleware.GetUserID(r)

	note, err := h.service.Create(userID, &req)
	if err != nil {
		response.InternalError(w, "Failed to create note")
		return
	}

	response.Created(w, note)
}

func (h *NoteHandler) List(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r)

	notes, err := h.service.List(userID)
	if err != nil {
		response.InternalError(w, "Failed to list notes")
		return
	}

	response.Success(w, notes)
}

func (h *NoteHandler) Get(w http.ResponseWriter, r *http.Request) {
	noteID := mux.Vars(r)["id"]
	userID := middleware.GetUserID(r)

	note, err := h.service.GetByID(userID, noteID)
	if err != nil {
		writeNoteError(w, err, "Note not found")
		return
	}

	response.Success(w, note)
}

func (h *NoteHandler) Update(w http.ResponseWriter, r *http.Request) {
	noteID := mux.Vars(r)["id"]

	var req domain.UpdateNoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request payload")
		return
	}

	userID := middleware.GetUserID(r)

	note, err := h.service.Update(userID, noteID, &req)
	if err != nil {
		writeNoteError(w, err, "Failed to update note")
		return
	}

	response.Success(w, note)
}

// Delete soft-deletes: the note moves to the trash together with its active
// versions.
func (h *NoteHandler) Delete(w http.ResponseWriter, r *http.Request) {
	noteID := mux.Vars(r)["id"]
	userID := middleware.GetUserID(r)

	if err := h.service.SoftDelete(userID, noteID); err != nil {
		writeNoteError(w, err, "Failed to delete note")
		return
	}

	response.Success(w, map[string]string{"message": "Note moved to trash"})
}

func (h *NoteHandler) Restore(w http.ResponseWriter, r *http.Request) {
	noteID := mux.Vars(r)["id"]
	userID := middleware.GetUserID(r)

	note, err := h.service.Restore(userID, noteID)
	if err != nil {
		writeNoteError(w, err, "Failed to restore note")
		return
	}

	response.Success(w, note)
}

func (h *NoteHandler) PermanentDelete(w http.ResponseWriter, r *http.Request) {
	noteID := mux.Vars(r)["id"]
	userID := middleware.GetUserID(r)

	if err := h.service.PermanentDelete(userID, noteID); err != nil {
		writeNoteError(w, err, "Failed to permanently delete note")
		return
	}

	response.Success(w, map[string]string{"message": "Note permanently deleted"})
}

func (h *NoteHandler) CreateVersion(w http.ResponseWriter, r *http.Request) {
	noteID := mux.Vars(r)["id"]

	var req domain.CreateVersionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request payload")
		return
	}

	if err := h.validate.Struct(req); err != nil {
		response.BadRequest(w, err.Error())
		return
	}

	userID := middleware.GetUserID(r)

	version, err := h.service.CreateVersion(userID, noteID, &req)
	if err != nil {
		writeNoteError(w, err, "Failed to create version")
		return
	}

	response.Created(w, version)
}

func (h *NoteHandler) ListVersions(w http.ResponseWriter, r *http.Request) {
	noteID := mux.Vars(r)["id"]
	userID := middleware.GetUserID(r)

	versions, err := h.service.ListVersions(userID, noteID)
	if err != nil {
		writeNoteError(w, err, "Failed to list versions")
		return
	}

	response.Success(w, versions)
}

func (h *NoteHandler) DeleteVersion(w http.ResponseWriter, r *http.Request) {
	versionID := mux.Vars(r)["id"]
	userID := middleware.GetUserID(r)

	if err := h.service.SoftDeleteVersion(userID, versionID); err != nil {
		writeNoteError(w, err, "Failed to delete version")
		return
	}

	response.Success(w, map[string]string{"message": "Version moved to trash"})
}

func (h *NoteHandler) RestoreVersion(w http.ResponseWriter, r *http.Request) {
	versionID := mux.Vars(r)["id"]
	userID := middleware.GetUserID(r)

	version, err := h.service.RestoreVersion(userID, versionID)
	if err != nil {
		writeNoteError(w, err, "Failed to restore version")
		return
	}

	response.Success(w, version)
}

func (h *NoteHandler) PermanentDeleteVersion(w http.ResponseWriter, r *http.Request) {
	versionID := mux.Vars(r)["id"]
	userID := middleware.GetUserID(r)

	if err := h.service.PermanentDeleteVersion(userID, versionID); err != nil {
		writeNoteError(w, err, "Failed to permanently delete version")
		return
	}

	response.Success(w, map[string]string{"message": "Version permanently deleted"})
}

func writeNoteError(w http.ResponseWriter, err error, fallback string) {
	switch {
	case errors.Is(err, service.ErrNotOwner):
		response.Forbidden(w, err.Error())
	case errors.Is(err, service.ErrParentTrashed),
		errors.Is(err, service.ErrAlreadyTrashed),
		errors.Is(err, service.ErrNotTrashed):
		response.Conflict(w, err.Error())
	default:
		response.NotFound(w, fallback)
	}
}
