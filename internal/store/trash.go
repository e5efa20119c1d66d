package store

import (
	"context"
	"sort"

	"planboard/internal/domain"
)

// FetchTrash reloads the trashed notes and versions from the gateway.
func (s *Store) FetchTrash(ctx context.Context) error {
	notes, err := s.gw.ListTrashedNotes(ctx)
	if err != nil {
		return err
	}
	versions, err := s.gw.ListTrashedVersions(ctx)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.trashedNotes = s.trashedNotes[:0]
	for _, n := range notes {
		s.trashedNotes = append(s.trashedNotes, *n)
	}
	s.trashedVersions = s.trashedVersions[:0]
	for _, v := range versions {
		s.trashedVersions = append(s.trashedVersions, *v)
	}
	s.notifyLocked()
	return nil
}

// TrashItems returns the combined trash listing, newest deletion first, with
// the retention counter computed against the store clock.
func (s *Store) TrashItems() []domain.TrashItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now()
	items := make([]domain.TrashItem, 0, len(s.trashedNotes)+len(s.trashedVersions))
	for _, n := range s.trashedNotes {
		if n.DeletedAt == nil {
			continue
		}
		items = append(items, domain.TrashItem{
			Kind:          domain.TrashKindNote,
			ID:            n.ID,
			Title:         n.Title,
			DeletedAt:     *n.DeletedAt,
			DaysRemaining: domain.DaysRemaining(*n.DeletedAt, now),
		})
	}
	for _, v := range s.trashedVersions {
		if v.DeletedAt == nil {
			continue
		}
		items = append(items, domain.TrashItem{
			Kind:          domain.TrashKindVersion,
			ID:            v.ID,
			NoteID:        v.NoteID,
			Title:         v.Summary,
			DeletedAt:     *v.DeletedAt,
			DaysRemaining: domain.DaysRemaining(*v.DeletedAt, now),
		})
	}
	sort.Slice(items, func(i, j int) bool {
		return items[i].DeletedAt.After(items[j].DeletedAt)
	})
	return items
}

// TrashedNote returns the cached trashed note row, if present.
func (s *Store) TrashedNote(id string) (*domain.Note, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.trashedNotes {
		if s.trashedNotes[i].ID == id {
			n := s.trashedNotes[i]
			return &n, true
		}
	}
	return nil, false
}
