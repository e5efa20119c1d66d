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

type CommentHandler struct {
	service  *service.CommentService
	validate *validator.Validate
}

func NewCommentHandler(service *service.CommentService) *CommentHandler {
	return &CommentHandler{
		service:  service,
		validate: validator.New(),
	}
}

func (h *CommentHandler) Create(w http.ResponseWriter, r *http.Request) {
	noteID := mux.Vars(r)["id"]

	var req domain.CreateCommentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request payload")
		return
	}

	if err := h.validate.Struct(req); err != nil {
		response.BadRequest(w, err.Error())
		return
	}

	userID := middleware.GetUserID(r)

	comment, err := h.service.Create(userID, noteID, &req)
	if err != nil {
		writeCommentError(w, err, "Failed to create comment")
		return
	}

	response.Created(w, comment)
}

func (h *CommentHandler) ListByNote(w http.ResponseWriter, r *http.Request) {
	noteID := mux.Vars(r)["id"]
	userID := middleware.GetUserID(r)

	comments, err := h.service.ListByNote(userID, noteID)
	if err != nil {
		writeCommentError(w, err, "Failed to list comments")
		return
	}

	response.Success(w, comments)
}

func (h *CommentHandler) Update(w http.ResponseWriter, r *http.Request) {
	commentID := mux.Vars(r)["id"]

	var req domain.UpdateCommentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request payload")
		return
	}

	userID := middleware.GetUserID(r)

	comment, err := h.service.Update(userID, commentID, &req)
	if err != nil {
		writeCommentError(w, err, "Failed to update comment")
		return
	}

	response.Success(w, comment)
}

func (h *CommentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	commentID := mux.Vars(r)["id"]
	userID := middleware.GetUserID(r)

	if err := h.service.Delete(userID, commentID); err != nil {
		writeCommentError(w, err, "Failed to delete comment")
		return
	}

	response.Success(w, map[string]string{"message": "Comment deleted"})
}

func writeCommentError(w http.ResponseWriter, err error, fallback string) {
	if errors.Is(err, service.ErrNotOwner) {
		response.Forbidden(w, err.Error())
		return
	}
	response.NotFound(w, fallback)
}
