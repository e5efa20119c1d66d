package store

import (
	"context"

	"planboard/internal/domain"
)

// BindSession wires the store to an auth gateway. The current user is
// tracked from session changes, and a sign-out drops every cached
// collection so a later sign-in starts from a clean slate.
func (s *Store) BindSession(auth AuthGateway) {
	auth.OnSessionChange(func(session *domain.Session) {
		s.mu.Lock()
		defer s.mu.Unlock()
		if session == nil {
			s.user = nil
			s.resetLocked()
			s.notifyLocked()
			return
		}
		s.user = session.User
		s.notifyLocked()
	})
	if session, err := auth.GetSession(context.Background()); err == nil && session != nil {
		s.mu.Lock()
		s.user = session.User
		s.notifyLocked()
		s.mu.Unlock()
	}
}

// User returns the signed-in user, or nil.
func (s *Store) User() *domain.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.user == nil {
		return nil
	}
	u := *s.user
	return &u
}

func (s *Store) resetLocked() {
	s.bullets = nil
	s.notes = nil
	s.activeNoteID = ""
	s.versionsByNote = make(map[string][]domain.NoteVersion)
	s.commentsByNote = make(map[string][]domain.Comment)
	s.trashedNotes = nil
	s.trashedVersions = nil
}
