package service

import (
	"errors"
	"strings"
	"testing"
	"time"

	"planboard/internal/domain"
)

type mockUserRepo struct {
	users map[string]*domain.User
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{
		users: make(map[string]*domain.User),
	}
}

func (m *mockUserRepo) Create(user *domain.User) error {
	m.users[user.ID] = user
	return nil
}

func (m *mockUserRepo) FindByID(id string) (*domain.User, error) {
	if u, exists := m.users[id]; exists {
		return u, nil
	}
	return nil, errors.New("user not found")
}

func (m *mockUserRepo) FindByEmail(email string) (*domain.User, error) {
	for _, u := range m.users {
		if strings.EqualFold(u.Email, email) {
			return u, nil
		}
	}
	return nil, errors.New("user not found")
}

func (m *mockUserRepo) EmailExists(email string) (bool, error) {
	_, err := m.FindByEmail(email)
	return err == nil, nil
}

func newTestAuthService(repo *mockUserRepo) *AuthService {
	return NewAuthService(
		repo,
		"test-secret",
		15*time.Minute,
		7*24*time.Hour,
		15*time.Minute,
		"guest@planboard.local",
		[]string{"teacher@example.com"},
		"http://localhost:5173/auth",
		true,
	)
}

func TestAuthService_GuestLogin(t *testing.T) {
	repo := newMockUserRepo()
	service := newTestAuthService(repo)

	if err := service.EnsureGuestUser("letmein99"); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	session, err := service.LoginGuest(&domain.GuestLoginRequest{
		Email:    "guest@planboard.local",
		Password: "letmein99",
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if session.AccessToken == "" || session.RefreshToken == "" {
		t.Error("expected both tokens issued")
	}
	if !session.User.IsGuest {
		t.Error("expected guest user")
	}
}

func TestAuthService_GuestLoginWrongPassword(t *testing.T) {
	repo := newMockUserRepo()
	service := newTestAuthService(repo)
	service.EnsureGuestUser("letmein99")

	_, err := service.LoginGuest(&domain.GuestLoginRequest{
		Email:    "guest@planboard.local",
		Password: "wrong",
	})
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthService_GuestLoginOtherEmail(t *testing.T) {
	repo := newMockUserRepo()
	service := newTestAuthService(repo)
	service.EnsureGuestUser("letmein99")

	_, err := service.LoginGuest(&domain.GuestLoginRequest{
		Email:    "teacher@example.com",
		Password: "letmein99",
	})
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("password sign-in is guest-only, got %v", err)
	}
}

func TestAuthService_MagicLinkAllowlist(t *testing.T) {
	repo := newMockUserRepo()
	service := newTestAuthService(repo)

	if _, err := service.RequestMagicLink(&domain.MagicLinkRequest{Email: "stranger@example.com"}); !errors.Is(err, ErrEmailNotAllowed) {
		t.Errorf("expected ErrEmailNotAllowed, got %v", err)
	}

	resp, err := service.RequestMagicLink(&domain.MagicLinkRequest{Email: "teacher@example.com"})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if resp.Link == "" {
		t.Error("dev mode should return the link")
	}
}

func TestAuthService_MagicLinkRoundtrip(t *testing.T) {
	repo := newMockUserRepo()
	service := newTestAuthService(repo)

	resp, err := service.RequestMagicLink(&domain.MagicLinkRequest{Email: "teacher@example.com"})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	// The link carries the token in its query string.
	idx := strings.Index(resp.Link, "token=")
	if idx < 0 {
		t.Fatalf("expected token in link, got %q", resp.Link)
	}
	token := resp.Link[idx+len("token="):]
	if amp := strings.IndexByte(token, '&'); amp >= 0 {
		token = token[:amp]
	}

	session, err := service.VerifyMagicLink(&domain.MagicLinkVerifyRequest{Token: token})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if !strings.EqualFold(session.User.Email, "teacher@example.com") {
		t.Errorf("expected session for requested email, got %q", session.User.Email)
	}
}

func TestAuthService_VerifyRejectsAccessToken(t *testing.T) {
	repo := newMockUserRepo()
	service := newTestAuthService(repo)
	service.EnsureGuestUser("letmein99")

	session, err := service.LoginGuest(&domain.GuestLoginRequest{
		Email:    "guest@planboard.local",
		Password: "letmein99",
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if _, err := service.VerifyMagicLink(&domain.MagicLinkVerifyRequest{Token: session.AccessToken}); err == nil {
		t.Error("expected access token to be rejected as a magic token")
	}
}

func TestAuthService_Refresh(t *testing.T) {
	repo := newMockUserRepo()
	service := newTestAuthService(repo)
	service.EnsureGuestUser("letmein99")

	session, err := service.LoginGuest(&domain.GuestLoginRequest{
		Email:    "guest@planboard.local",
		Password: "letmein99",
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	tokens, err := service.Refresh(&domain.RefreshTokenRequest{RefreshToken: session.RefreshToken})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if tokens.AccessToken == "" {
		t.Error("expected new access token")
	}

	if _, err := service.Refresh(&domain.RefreshTokenRequest{RefreshToken: session.AccessToken}); err == nil {
		t.Error("expected access token to be rejected as a refresh token")
	}
}
