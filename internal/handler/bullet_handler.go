package handler

import (
	"net/http"

	"planboard/internal/service"
	"planboard/pkg/response"
)

type BulletHandler struct {
	service *service.BulletService
}

func NewBulletHandler(service *service.BulletService) *BulletHandler {
	return &BulletHandler{service: service}
}

func (h *BulletHandler) List(w http.ResponseWriter, r *http.Request) {
	templates, err := h.service.List()
	if err != nil {
		response.InternalError(w, "Failed to list bullet templates")
		return
	}

	response.Success(w, templates)
}
