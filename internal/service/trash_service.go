package service

import (
	"sort"
	"time"

	"planboard/internal/domain"
	"planboard/internal/repository"
)

// TrashService assembles the combined trash listing: trashed notes and
// trashed versions of the user, in one view ordered by deletion date.
type TrashService struct {
	noteRepo    repository.NoteRepository
	versionRepo repository.NoteVersionRepository
	now         func() time.Time
}

func NewTrashService(noteRepo repository.NoteRepository, versionRepo repository.NoteVersionRepository) *TrashService {
	return &TrashService{
		noteRepo:    noteRepo,
		versionRepo: versionRepo,
		now:         time.Now,
	}
}

// ListNotes returns the user's trashed notes as full rows.
func (s *TrashService) ListNotes(userID string) ([]*domain.Note, error) {
	return s.noteRepo.ListTrashed(userID)
}

// ListVersions returns the trashed versions whose parent note the user
// owns, as full rows.
func (s *TrashService) ListVersions(userID string) ([]*domain.NoteVersion, error) {
	owned, err := s.ownedNotes(userID)
	if err != nil {
		return nil, err
	}
	trashedVersions, err := s.versionRepo.ListTrashed()
	if err != nil {
		return nil, err
	}
	versions := make([]*domain.NoteVersion, 0, len(trashedVersions))
	for _, v := range trashedVersions {
		if _, ok := owned[v.NoteID]; ok {
			versions = append(versions, v)
		}
	}
	return versions, nil
}

func (s *TrashService) ownedNotes(userID string) (map[string]*domain.Note, error) {
	// Version ownership goes through the parent note; collect every note id
	// the user owns, trashed or not.
	activeNotes, err := s.noteRepo.ListActive(userID)
	if err != nil {
		return nil, err
	}
	trashedNotes, err := s.noteRepo.ListTrashed(userID)
	if err != nil {
		return nil, err
	}
	owned := make(map[string]*domain.Note, len(activeNotes)+len(trashedNotes))
	for _, n := range activeNotes {
		owned[n.ID] = n
	}
	for _, n := range trashedNotes {
		owned[n.ID] = n
	}
	return owned, nil
}

func (s *TrashService) List(userID string) ([]*domain.TrashItem, error) {
	now := s.now()

	trashedNotes, err := s.noteRepo.ListTrashed(userID)
	if err != nil {
		return nil, err
	}
	owned, err := s.ownedNotes(userID)
	if err != nil {
		return nil, err
	}

	var items []*domain.TrashItem
	for _, n := range trashedNotes {
		items = append(items, &domain.TrashItem{
			Kind:          domain.TrashKindNote,
			ID:            n.ID,
			Title:         n.Title,
			DeletedAt:     *n.DeletedAt,
			DaysRemaining: domain.DaysRemaining(*n.DeletedAt, now),
		})
	}

	trashedVersions, err := s.versionRepo.ListTrashed()
	if err != nil {
		return nil, err
	}
	for _, v := range trashedVersions {
		parent, ok := owned[v.NoteID]
		if !ok {
			continue
		}
		items = append(items, &domain.TrashItem{
			Kind:          domain.TrashKindVersion,
			ID:            v.ID,
			NoteID:        v.NoteID,
			Title:         parent.Title,
			DeletedAt:     *v.DeletedAt,
			DaysRemaining: domain.DaysRemaining(*v.DeletedAt, now),
		})
	}

	sort.Slice(items, func(i, j int) bool {
		return items[i].DeletedAt.After(items[j].DeletedAt)
	})

	return items, nil
}
