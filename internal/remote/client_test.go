package remote

import (
	"context"
	"testing"

	"github.com/rs/zerolog"

	"planboard/internal/domain"
)

func TestSessionListenersSeeRestoreAndSignOut(t *testing.T) {
	c := NewClient("http://localhost:8080", zerolog.Nop())

	var got []*domain.Session
	c.OnSessionChange(func(s *domain.Session) {
		got = append(got, s)
	})
	c.OnSessionChange(func(s *domain.Session) {
		got = append(got, s)
	})

	session := &domain.Session{AccessToken: "at", RefreshToken: "rt"}
	c.RestoreSession(session)

	if len(got) != 2 {
		t.Fatalf("expected both listeners notified, got %d calls", len(got))
	}
	for _, s := range got {
		if s != session {
			t.Error("expected restored session delivered to listener")
		}
	}

	current, err := c.GetSession(context.Background())
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if current != session {
		t.Error("expected restored session to be current")
	}

	c.RestoreSession(nil)
	if len(got) != 4 || got[2] != nil || got[3] != nil {
		t.Errorf("expected nil session broadcast on sign-out, got %v", got[2:])
	}
}

func TestBaseURLTrimsTrailingSlash(t *testing.T) {
	c := NewClient("http://localhost:8080/", zerolog.Nop())
	if got := c.BaseURL(); got != "http://localhost:8080" {
		t.Errorf("expected trimmed base url, got %q", got)
	}
}
