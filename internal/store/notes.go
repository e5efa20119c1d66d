package store

import (
	"context"

	"planboard/internal/domain"
)

// FetchNotes reloads the active note list. On failure the previously loaded
// list stays in place. When the active note no longer appears in the fresh
// list the active selection is cleared.
func (s *Store) FetchNotes(ctx context.Context) error {
	s.mu.Lock()
	s.loadingNotes = true
	s.notifyLocked()
	s.mu.Unlock()

	rows, err := s.gw.ListNotes(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.loadingNotes = false
	if err != nil {
		s.log.Error().Err(err).Msg("note fetch failed, keeping cached notes")
		s.notifyLocked()
		return err
	}
	s.notes = s.notes[:0]
	for _, row := range rows {
		s.notes = append(s.notes, *row)
	}
	if s.activeNoteID != "" && s.noteIndex(s.activeNoteID) < 0 {
		s.activeNoteID = ""
	}
	s.notifyLocked()
	return nil
}

// CreateNote inserts through the gateway and, on success, appends the
// canonical row and makes it the active note. On failure the store is left
// untouched.
func (s *Store) CreateNote(ctx context.Context, req domain.CreateNoteRequest) (*domain.Note, error) {
	created, err := s.gw.InsertNote(ctx, req)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.notes = append(s.notes, *created)
	s.activeNoteID = created.ID
	s.notifyLocked()
	return created, nil
}

// UpdateNote applies the patch optimistically, then asks the gateway to
// confirm it. On success the locally patched row is replaced by the server
// echo; on failure the pre-mutation row is restored and the error returned.
func (s *Store) UpdateNote(ctx context.Context, id string, req domain.UpdateNoteRequest) (*domain.Note, error) {
	s.mu.Lock()
	idx := s.noteIndex(id)
	if idx < 0 {
		s.mu.Unlock()
		return nil, ErrNotLoaded
	}
	prior := s.notes[idx]
	patched := prior
	applyNotePatch(&patched, req)
	s.notes[idx] = patched
	s.notifyLocked()
	s.mu.Unlock()

	updated, err := s.gw.UpdateNote(ctx, id, req)

	s.mu.Lock()
	defer s.mu.Unlock()
	idx = s.noteIndex(id)
	if err != nil {
		s.log.Warn().Err(err).Str("note_id", id).Msg("note update rejected, rolling back")
		if idx >= 0 {
			s.notes[idx] = prior
		}
		s.notifyLocked()
		return nil, err
	}
	if idx >= 0 {
		s.notes[idx] = *updated
	}
	s.notifyLocked()
	return updated, nil
}

// SetActiveNote marks the note the UI is focused on. An empty id clears the
// selection.
func (s *Store) SetActiveNote(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if id != "" && s.noteIndex(id) < 0 {
		return
	}
	s.activeNoteID = id
	s.notifyLocked()
}

// SoftDeleteNote moves the note to the trash. The row leaves the active list
// and becomes retrievable through the trash listing; versions of the note
// are trashed alongside it by the remote side.
func (s *Store) SoftDeleteNote(ctx context.Context, id string) error {
	if err := s.gw.SoftDeleteNote(ctx, id); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if idx := s.noteIndex(id); idx >= 0 {
		trashed := s.notes[idx]
		now := s.now()
		trashed.DeletedAt = &now
		s.trashedNotes = append(s.trashedNotes, trashed)
		s.notes = append(s.notes[:idx], s.notes[idx+1:]...)
	}
	if s.activeNoteID == id {
		s.activeNoteID = ""
	}
	// Cached versions were cascaded remotely; drop them so the next read
	// refetches the authoritative rows.
	delete(s.versionsByNote, id)
	s.notifyLocked()
	return nil
}

// RestoreNote brings a trashed note back to the active list. Versions
// trashed by the cascade stay in the trash.
func (s *Store) RestoreNote(ctx context.Context, id string) (*domain.Note, error) {
	restored, err := s.gw.RestoreNote(ctx, id)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.removeTrashedNote(id)
	if idx := s.noteIndex(id); idx >= 0 {
		s.notes[idx] = *restored
	} else {
		s.notes = append(s.notes, *restored)
	}
	s.notifyLocked()
	return restored, nil
}

// PermanentDeleteNote erases the note and all of its versions everywhere.
func (s *Store) PermanentDeleteNote(ctx context.Context, id string) error {
	if err := s.gw.HardDeleteNote(ctx, id); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if idx := s.noteIndex(id); idx >= 0 {
		s.notes = append(s.notes[:idx], s.notes[idx+1:]...)
	}
	if s.activeNoteID == id {
		s.activeNoteID = ""
	}
	s.removeTrashedNote(id)
	delete(s.versionsByNote, id)
	delete(s.commentsByNote, id)
	kept := s.trashedVersions[:0]
	for _, v := range s.trashedVersions {
		if v.NoteID != id {
			kept = append(kept, v)
		}
	}
	s.trashedVersions = kept
	s.notifyLocked()
	return nil
}

func (s *Store) removeTrashedNote(id string) {
	for i := range s.trashedNotes {
		if s.trashedNotes[i].ID == id {
			s.trashedNotes = append(s.trashedNotes[:i], s.trashedNotes[i+1:]...)
			return
		}
	}
}

func applyNotePatch(n *domain.Note, req domain.UpdateNoteRequest) {
	if req.Title != nil {
		n.Title = *req.Title
	}
	if req.Content != nil {
		n.Content = *req.Content
	}
	if req.Summary != nil {
		n.Summary = *req.Summary
	}
}
