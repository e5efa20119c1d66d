package domain

import "time"

type User struct {
	ID          string    `json:"id"`
	Email       string    `json:"email" validate:"required,email"`
	DisplayName string    `json:"display_name,omitempty"`
	IsGuest     bool      `json:"is_guest"`
	Password    string    `json:"password,omitempty"` // bcrypt hash, only set for the guest account
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type Session struct {
	User         *User  `json:"user"`
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int64  `json:"expires_in"`
}

type GuestLoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type MagicLinkRequest struct {
	Email      string `json:"email" validate:"required,email"`
	RedirectTo string `json:"redirect_to"`
}

type MagicLinkResponse struct {
	// Link is only populated outside production; real deployments deliver it by mail.
	Link    string `json:"link,omitempty"`
	Message string `json:"message"`
}

type MagicLinkVerifyRequest struct {
	Token string `json:"token" validate:"required"`
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

type TokenResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int64  `json:"expires_in"`
}
