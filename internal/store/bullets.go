package store

import "context"

// FetchBullets replaces the bullet collection with the remote rows. The
// client-side Active and Hidden flags are reset on every fetch; a failed
// fetch keeps whatever collection was already loaded.
func (s *Store) FetchBullets(ctx context.Context) error {
	s.mu.Lock()
	s.loadingBullets = true
	s.notifyLocked()
	s.mu.Unlock()

	rows, err := s.gw.ListBullets(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.loadingBullets = false
	if err != nil {
		s.log.Error().Err(err).Msg("bullet fetch failed, keeping cached templates")
		s.notifyLocked()
		return err
	}
	s.bullets = s.bullets[:0]
	for _, row := range rows {
		b := *row
		b.Active = false
		b.Hidden = false
		s.bullets = append(s.bullets, b)
	}
	s.notifyLocked()
	return nil
}

// SetBulletActive toggles the session-local highlight flag. Unknown ids are
// ignored.
func (s *Store) SetBulletActive(id string, active bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.bullets {
		if s.bullets[i].ID == id {
			s.bullets[i].Active = active
			s.notifyLocked()
			return
		}
	}
}

// SetBulletHidden toggles the session-local hide flag. Unknown ids are
// ignored.
func (s *Store) SetBulletHidden(id string, hidden bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.bullets {
		if s.bullets[i].ID == id {
			s.bullets[i].Hidden = hidden
			s.notifyLocked()
			return
		}
	}
}
