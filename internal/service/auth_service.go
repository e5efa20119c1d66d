package service

import (
	"fmt"
	"log"
	"net/url"
	"strings"
	"time"

	"planboard/internal/domain"
	"planboard/internal/repository"
	"planboard/pkg/hash"
	"planboard/pkg/jwt"

	"github.com/google/uuid"
)

type AuthService struct {
	userRepo          repository.UserRepository
	jwtSecret         string
	jwtExpiration     time.Duration
	refreshExpiration time.Duration
	magicExpiration   time.Duration
	guestEmail        string
	allowedEmails     []string
	magicLinkBaseURL  string
	devMode           bool
}

func NewAuthService(
	userRepo repository.UserRepository,
	jwtSecret string,
	jwtExp, refreshExp, magicExp time.Duration,
	guestEmail string,
	allowedEmails []string,
	magicLinkBaseURL string,
	devMode bool,
) *AuthService {
	return &AuthService{
		userRepo:          userRepo,
		jwtSecret:         jwtSecret,
		jwtExpiration:     jwtExp,
		refreshExpiration: refreshExp,
		magicExpiration:   magicExp,
		guestEmail:        guestEmail,
		allowedEmails:     allowedEmails,
		magicLinkBaseURL:  magicLinkBaseURL,
		devMode:           devMode,
	}
}

// EnsureGuestUser seeds the fixed guest account on startup so the guest
// credential sign-in always has a target row.
func (s *AuthService) EnsureGuestUser(password string) error {
	exists, err := s.userRepo.EmailExists(s.guestEmail)
	if err != nil {
		return fmt.Errorf("failed to check guest account: %w", err)
	}
	if exists {
		return nil
	}

	hashedPassword, err := hash.Hash(password)
	if err != nil {
		return fmt.Errorf("failed to hash guest password: %w", err)
	}

	user := &domain.User{
		ID:          uuid.New().String(),
		Email:       s.guestEmail,
		DisplayName: "Guest",
		IsGuest:     true,
		Password:    hashedPassword,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}

	if err := s.userRepo.Create(user); err != nil {
		return fmt.Errorf("failed to create guest account: %w", err)
	}

	return nil
}

// LoginGuest signs in with the fixed guest credential. Only the guest
// account accepts password sign-in.
func (s *AuthService) LoginGuest(req *domain.GuestLoginRequest) (*domain.Session, error) {
	if !strings.EqualFold(req.Email, s.guestEmail) {
		return nil, ErrInvalidCredentials
	}

	user, err := s.userRepo.FindByEmail(s.guestEmail)
	if err != nil {
		return nil, ErrInvalidCredentials
	}

	if err := hash.Compare(user.Password, req.Password); err != nil {
		return nil, ErrInvalidCredentials
	}

	return s.newSession(user)
}

// RequestMagicLink issues a sign-in link for an allowlisted email. The link
// is returned to the caller only outside production; real delivery happens
// by mail and is out of scope here.
func (s *AuthService) RequestMagicLink(req *domain.MagicLinkRequest) (*domain.MagicLinkResponse, error) {
	if !s.emailAllowed(req.Email) {
		return nil, ErrEmailNotAllowed
	}

	user, err := s.userRepo.FindByEmail(req.Email)
	if err != nil {
		user = &domain.User{
			ID:        uuid.New().String(),
			Email:     strings.ToLower(req.Email),
			CreatedAt: time.Now(),
			UpdatedAt: time.Now(),
		}
		if err := s.userRepo.Create(user); err != nil {
			return nil, fmt.Errorf("failed to create user for magic link: %w", err)
		}
	}

	token, err := jwt.GenerateMagicToken(user.ID, s.magicExpiration, s.jwtSecret)
	if err != nil {
		return nil, fmt.Errorf("failed to generate magic token: %w", err)
	}

	link := s.buildMagicLink(token, req.RedirectTo)
	log.Printf("magic link issued for %s", user.Email)

	resp := &domain.MagicLinkResponse{
		Message: "Magic link sent",
	}
	if s.devMode {
		resp.Link = link
	}

	return resp, nil
}

// VerifyMagicLink exchanges a magic token for a session.
func (s *AuthService) VerifyMagicLink(req *domain.MagicLinkVerifyRequest) (*domain.Session, error) {
	claims, err := jwt.ValidateTokenType(req.Token, s.jwtSecret, jwt.TypeMagic)
	if err != nil {
		return nil, ErrInvalidCredentials
	}

	user, err := s.userRepo.FindByID(claims.UserID)
	if err != nil {
		return nil, ErrInvalidCredentials
	}

	return s.newSession(user)
}

// Refresh mints a new access token from a valid refresh token.
func (s *AuthService) Refresh(req *domain.RefreshTokenRequest) (*domain.TokenResponse, error) {
	claims, err := jwt.ValidateTokenType(req.RefreshToken, s.jwtSecret, jwt.TypeRefresh)
	if err != nil {
		return nil, ErrInvalidCredentials
	}

	if _, err := s.userRepo.FindByID(claims.UserID); err != nil {
		return nil, ErrInvalidCredentials
	}

	accessToken, err := jwt.GenerateToken(claims.UserID, s.jwtExpiration, s.jwtSecret)
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}

	return &domain.TokenResponse{
		AccessToken: accessToken,
		ExpiresIn:   int64(s.jwtExpiration.Seconds()),
	}, nil
}

// CurrentUser resolves the session's user row.
func (s *AuthService) CurrentUser(userID string) (*domain.User, error) {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		return nil, err
	}

	user.Password = ""
	return user, nil
}

func (s *AuthService) newSession(user *domain.User) (*domain.Session, error) {
	accessToken, err := jwt.GenerateToken(user.ID, s.jwtExpiration, s.jwtSecret)
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}

	refreshToken, err := jwt.GenerateRefreshToken(user.ID, s.refreshExpiration, s.jwtSecret)
	if err != nil {
		return nil, fmt.Errorf("failed to generate refresh token: %w", err)
	}

	sessionUser := *user
	sessionUser.Password = ""

	return &domain.Session{
		User:         &sessionUser,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresIn:    int64(s.jwtExpiration.Seconds()),
	}, nil
}

func (s *AuthService) emailAllowed(email string) bool {
	for _, allowed := range s.allowedEmails {
		if strings.EqualFold(allowed, email) {
			return true
		}
	}
	return false
}

func (s *AuthService) buildMagicLink(token, redirectTo string) string {
	values := url.Values{}
	values.Set("token", token)
	if redirectTo != "" {
		values.Set("redirect_to", redirectTo)
	}
	return fmt.Sprintf("%s/auth/verify?%s", strings.TrimRight(s.magicLinkBaseURL, "/"), values.Encode())
}
