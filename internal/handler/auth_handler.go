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
)

type AuthHandler struct {
	service  *service.AuthService
	validate *validator.Validate
}

func NewAuthHandler(service *service.AuthService) *AuthHandler {
	return &AuthHandler{
		service:  service,
		validate: validator.New(),
	}
}

func (h *AuthHandler) LoginGuest(w http.ResponseWriter, r *http.Request) {
	var req domain.GuestLoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request payload")
		return
	}

	if err := h.validate.Struct(req); err != nil {
		response.BadRequest(w, err.Error())
		return
	}

	session, err := h.service.LoginGuest(&req)
	if err != nil {
		response.Unauthorized(w, "Invalid credentials")
		return
	}

	response.Success(w, session)
}

func (h *AuthHandler) RequestMagicLink(w http.ResponseWriter, r *http.Request) {
	var req domain.MagicLinkRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request payload")
		return
	}

	if err := h.validate.Struct(req); err != nil {
		response.BadRequest(w, err.Error())
		return
	}

	resp, err := h.service.RequestMagicLink(&req)
	if err != nil {
		if errors.Is(err, service.ErrEmailNotAllowed) {
			response.Forbidden(w, "Email is not permitted to sign in")
			return
		}
		response.InternalError(w, "Failed to issue magic link")
		return
	}

	response.Success(w, resp)
}

func (h *AuthHandler) VerifyMagicLink(w http.ResponseWriter, r *http.Request) {
	var req domain.MagicLinkVerifyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request payload")
		return
	}

	if err := h.validate.Struct(req); err != nil {
		response.BadRequest(w, err.Error())
		return
	}

	session, err := h.service.VerifyMagicLink(&req)
	if err != nil {
		response.Unauthorized(w, "Invalid or expired magic link")
		return
	}

	response.Success(w, session)
}

func (h *AuthHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	var req domain.RefreshTokenRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request payload")
		return
	}

	if err := h.validate.Struct(req); err != nil {
		response.BadRequest(w, err.Error())
		return
	}

	tokens, err := h.service.Refresh(&req)
	if err != nil {
		response.Unauthorized(w, "Invalid or expired refresh token")
		return
	}

	response.Success(w, tokens)
}

// Session resolves the current user from the bearer token, matching the
// gateway contract's getSession.
func (h *AuthHandler) Session(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r)

	user, err := h.service.CurrentUser(userID)
	if err != nil {
		response.Unauthorized(w, "Session is no longer valid")
		return
	}

	response.Success(w, user)
}

// Logout is stateless on the server; tokens simply expire. The endpoint
// exists so clients have a definite sign-out call.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	response.Success(w, map[string]string{"message": "Signed out"})
}
