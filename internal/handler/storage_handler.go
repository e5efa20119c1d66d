package handler

import (
	"net/http"

	"planboard/internal/service"
	"planboard/pkg/response"
)

type StorageHandler struct {
	service *service.StorageService
}

func NewStorageHandler(service *service.StorageService) *StorageHandler {
	return &StorageHandler{service: service}
}

// PublicURL resolves an object path to its public URL, matching the gateway
// contract's getPublicUrl.
func (h *StorageHandler) PublicURL(w http.ResponseWriter, r *http.Request) {
	path := r.URL.Query().Get("path")

	url, err := h.service.PublicURL(path)
	if err != nil {
		response.BadRequest(w, "Invalid object path")
		return
	}

	response.Success(w, map[string]string{"url": url})
}
