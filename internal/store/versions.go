package store

import (
	"context"

	"planboard/internal/domain"
)

// FetchVersions loads the active versions of a note into the cache and
// returns them.
func (s *Store) FetchVersions(ctx context.Context, noteID string) ([]domain.NoteVersion, error) {
	rows, err := s.gw.ListVersions(ctx, noteID)
	if err != nil {
		return nil, err
	}
	versions := make([]domain.NoteVersion, 0, len(rows))
	for _, row := range rows {
		versions = append(versions, *row)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.versionsByNote[noteID] = versions
	s.notifyLocked()
	return append([]domain.NoteVersion(nil), versions...), nil
}

// Versions returns the cached versions of a note. The second result reports
// whether the note's versions have been fetched at all.
func (s *Store) Versions(noteID string) ([]domain.NoteVersion, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	versions, ok := s.versionsByNote[noteID]
	return append([]domain.NoteVersion(nil), versions...), ok
}

// EnsureVersions returns the cached versions, fetching them first if the
// note has never been loaded.
func (s *Store) EnsureVersions(ctx context.Context, noteID string) ([]domain.NoteVersion, error) {
	if versions, ok := s.Versions(noteID); ok {
		return versions, nil
	}
	return s.FetchVersions(ctx, noteID)
}

// CreateVersion snapshots content under a note.
func (s *Store) CreateVersion(ctx context.Context, noteID string, req domain.CreateVersionRequest) (*domain.NoteVersion, error) {
	created, err := s.gw.InsertVersion(ctx, noteID, req)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.versionsByNote[noteID]; ok {
		s.versionsByNote[noteID] = append(s.versionsByNote[noteID], *created)
	}
	s.notifyLocked()
	return created, nil
}

// SoftDeleteVersion trashes a single version. The parent note is unaffected.
func (s *Store) SoftDeleteVersion(ctx context.Context, noteID, id string) error {
	if err := s.gw.SoftDeleteVersion(ctx, id); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	versions := s.versionsByNote[noteID]
	for i := range versions {
		if versions[i].ID == id {
			trashed := versions[i]
			now := s.now()
			trashed.DeletedAt = &now
			s.trashedVersions = append(s.trashedVersions, trashed)
			s.versionsByNote[noteID] = append(versions[:i], versions[i+1:]...)
			break
		}
	}
	s.notifyLocked()
	return nil
}

// RestoreVersion reactivates a trashed version. The gateway rejects the
// restore while the parent note is still in the trash.
func (s *Store) RestoreVersion(ctx context.Context, id string) (*domain.NoteVersion, error) {
	restored, err := s.gw.RestoreVersion(ctx, id)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.removeTrashedVersion(id)
	if _, ok := s.versionsByNote[restored.NoteID]; ok {
		s.versionsByNote[restored.NoteID] = append(s.versionsByNote[restored.NoteID], *restored)
	}
	s.notifyLocked()
	return restored, nil
}

// PermanentDeleteVersion erases a version everywhere.
func (s *Store) PermanentDeleteVersion(ctx context.Context, id string) error {
	if err := s.gw.HardDeleteVersion(ctx, id); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.removeTrashedVersion(id)
	for noteID, versions := range s.versionsByNote {
		for i := range versions {
			if versions[i].ID == id {
				s.versionsByNote[noteID] = append(versions[:i], versions[i+1:]...)
				break
			}
		}
	}
	s.notifyLocked()
	return nil
}

func (s *Store) removeTrashedVersion(id string) {
	for i := range s.trashedVersions {
		if s.trashedVersions[i].ID == id {
			s.trashedVersions = append(s.trashedVersions[:i], s.trashedVersions[i+1:]...)
			return
		}
	}
}
