package service

import (
	"fmt"
	"time"

	"planboard/internal/domain"
	"planboard/internal/repository"
	"planboard/internal/websocket"

	"github.com/google/uuid"
)

type NoteService struct {
	repo        repository.NoteRepository
	versionRepo repository.NoteVersionRepository
	feed        *ChangeFeed
}

func NewNoteService(
	repo repository.NoteRepository,
	versionRepo repository.NoteVersionRepository,
	feed *ChangeFeed,
) *NoteService {
	return &NoteService{
		repo:        repo,
		versionRepo: versionRepo,
		feed:        feed,
	}
}

func (s *NoteService) Create(userID string, req *domain.CreateNoteRequest) (*domain.Note, error) {
	title := req.Title
	if title == "" {
		title = "Untitled"
	}

	now := time.Now()
	note := &domain.Note{
		ID:        uuid.New().String(),
		Owner:     userID,
		Title:     title,
		Content:   req.Content,
		Summary:   req.Summary,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.repo.Create(note); err != nil {
		return nil, err
	}

	s.feed.Broadcast(userID, "note", websocket.OpInsert, note.ID, "", note)

	return note, nil
}

// List returns the user's active notes; trashed ones only surface through
// the trash listing.
func (s *NoteService) List(userID string) ([]*domain.Note, error) {
	return s.repo.ListActive(userID)
}

func (s *NoteService) GetByID(userID, noteID string) (*domain.Note, error) {
	note, err := s.repo.FindByID(noteID)
	if err != nil {
		return nil, err
	}

	if note.Owner != userID {
		return nil, ErrNotOwner
	}

	return note, nil
}

// Update patches the note. When the content changes, the previous content is
// snapshotted as a new version first.
func (s *NoteService) Update(userID, noteID string, req *domain.UpdateNoteRequest) (*domain.Note, error) {
	note, err := s.GetByID(userID, noteID)
	if err != nil {
		return nil, err
	}

	if req.Content != nil && *req.Content != note.Content && note.Content != "" {
		version := &domain.NoteVersion{
			ID:        uuid.New().String(),
			NoteID:    note.ID,
			Content:   note.Content,
			Summary:   note.Summary,
			CreatedAt: time.Now(),
		}
		if err := s.versionRepo.Create(version); err != nil {
			return nil, fmt.Errorf("failed to snapshot version: %w", err)
		}
		s.feed.Broadcast(userID, "version", websocket.OpInsert, version.ID, note.ID, version)
	}

	if req.Title != nil {
		note.Title = *req.Title
	}
	if req.Content != nil {
		note.Content = *req.Content
	}
	if req.Summary != nil {
		note.Summary = *req.Summary
	}
	note.UpdatedAt = time.Now()

	if err := s.repo.Update(note); err != nil {
		return nil, err
	}

	s.feed.Broadcast(userID, "note", websocket.OpUpdate, note.ID, "", note)

	return note, nil
}

// SoftDelete moves a note to the trash together with its active versions.
// A parent in the trash implies full inclusion of its children.
func (s *NoteService) SoftDelete(userID, noteID string) error {
	note, err := s.GetByID(userID, noteID)
	if err != nil {
		return err
	}

	if note.Trashed() {
		return ErrAlreadyTrashed
	}

	deletedAt := time.Now()

	versions, err := s.versionRepo.ListByNote(noteID)
	if err != nil {
		return err
	}
	for _, v := range versions {
		if err := s.versionRepo.SoftDelete(v.ID, deletedAt); err != nil {
			return err
		}
		s.feed.Broadcast(userID, "version", websocket.OpSoftDelete, v.ID, noteID, nil)
	}

	if err := s.repo.SoftDelete(noteID, deletedAt); err != nil {
		return err
	}

	s.feed.Broadcast(userID, "note", websocket.OpSoftDelete, noteID, "", nil)

	return nil
}

// Restore brings a trashed note back to the active list. Its versions stay
// in the trash and are restored individually.
func (s *NoteService) Restore(userID, noteID string) (*domain.Note, error) {
	note, err := s.GetByID(userID, noteID)
	if err != nil {
		return nil, err
	}

	if !note.Trashed() {
		return nil, ErrNotTrashed
	}

	if err := s.repo.Restore(noteID); err != nil {
		return nil, err
	}

	note.DeletedAt = nil
	s.feed.Broadcast(userID, "note", websocket.OpRestore, noteID, "", note)

	return note, nil
}

// PermanentDelete physically removes the note and every version under it.
func (s *NoteService) PermanentDelete(userID, noteID string) error {
	if _, err := s.GetByID(userID, noteID); err != nil {
		return err
	}

	versions, err := s.versionRepo.ListByNote(noteID)
	if err != nil {
		return err
	}
	trashed, err := s.versionRepo.ListTrashed()
	if err != nil {
		return err
	}
	for _, v := range trashed {
		if v.NoteID == noteID {
			versions = append(versions, v)
		}
	}

	for _, v := range versions {
		if err := s.versionRepo.HardDelete(v.ID); err != nil {
			return err
		}
		s.feed.Broadcast(userID, "version", websocket.OpHardDelete, v.ID, noteID, nil)
	}

	if err := s.repo.HardDelete(noteID); err != nil {
		return err
	}

	s.feed.Broadcast(userID, "note", websocket.OpHardDelete, noteID, "", nil)

	return nil
}

func (s *NoteService) CreateVersion(userID, noteID string, req *domain.CreateVersionRequest) (*domain.NoteVersion, error) {
	note, err := s.GetByID(userID, noteID)
	if err != nil {
		return nil, err
	}

	if note.Trashed() {
		return nil, ErrParentTrashed
	}

	version := &domain.NoteVersion{
		ID:        uuid.New().String(),
		NoteID:    noteID,
		Content:   req.Content,
		Summary:   req.Summary,
		CreatedAt: time.Now(),
	}

	if err := s.versionRepo.Create(version); err != nil {
		return nil, err
	}

	s.feed.Broadcast(userID, "version", websocket.OpInsert, version.ID, noteID, version)

	return version, nil
}

func (s *NoteService) ListVersions(userID, noteID string) ([]*domain.NoteVersion, error) {
	if _, err := s.GetByID(userID, noteID); err != nil {
		return nil, err
	}
	return s.versionRepo.ListByNote(noteID)
}

func (s *NoteService) SoftDeleteVersion(userID, versionID string) error {
	version, err := s.ownedVersion(userID, versionID)
	if err != nil {
		return err
	}

	if version.Trashed() {
		return ErrAlreadyTrashed
	}

	if err := s.versionRepo.SoftDelete(versionID, time.Now()); err != nil {
		return err
	}

	s.feed.Broadcast(userID, "version", websocket.OpSoftDelete, versionID, version.NoteID, nil)

	return nil
}

// RestoreVersion requires the parent note to be active: a version cannot
// live outside the trash while its note sits in it.
func (s *NoteService) RestoreVersion(userID, versionID string) (*domain.NoteVersion, error) {
	version, err := s.ownedVersion(userID, versionID)
	if err != nil {
		return nil, err
	}

	if !version.Trashed() {
		return nil, ErrNotTrashed
	}

	note, err := s.repo.FindByID(version.NoteID)
	if err != nil {
		return nil, fmt.Errorf("parent note not found: %w", err)
	}
	if note.Trashed() {
		return nil, ErrParentTrashed
	}

	if err := s.versionRepo.Restore(versionID); err != nil {
		return nil, err
	}

	version.DeletedAt = nil
	s.feed.Broadcast(userID, "version", websocket.OpRestore, versionID, version.NoteID, version)

	return version, nil
}

func (s *NoteService) PermanentDeleteVersion(userID, versionID string) error {
	version, err := s.ownedVersion(userID, versionID)
	if err != nil {
		return err
	}

	if err := s.versionRepo.HardDelete(versionID); err != nil {
		return err
	}

	s.feed.Broadcast(userID, "version", websocket.OpHardDelete, versionID, version.NoteID, nil)

	return nil
}

func (s *NoteService) ownedVersion(userID, versionID string) (*domain.NoteVersion, error) {
	version, err := s.versionRepo.FindByID(versionID)
	if err != nil {
		return nil, err
	}

	note, err := s.repo.FindByID(version.NoteID)
	if err != nil {
		return nil, fmt.Errorf("parent note not found: %w", err)
	}
	if note.Owner != userID {
		return nil, ErrNotOwner
	}

	return version, nil
}
