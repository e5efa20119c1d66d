package service

import (
	"time"

	"planboard/internal/domain"
	"planboard/internal/repository"
	"planboard/internal/websocket"

	"github.com/google/uuid"
)

type CommentService struct {
	repo     repository.CommentRepository
	noteRepo repository.NoteRepository
	feed     *ChangeFeed
}

func NewCommentService(
	repo repository.CommentRepository,
	noteRepo repository.NoteRepository,
	feed *ChangeFeed,
) *CommentService {
	return &CommentService{
		repo:     repo,
		noteRepo: noteRepo,
		feed:     feed,
	}
}

func (s *CommentService) Create(userID, noteID string, req *domain.CreateCommentRequest) (*domain.Comment, error) {
	if err := s.checkNoteAccess(userID, noteID); err != nil {
		return nil, err
	}

	comment := &domain.Comment{
		ID:        uuid.New().String(),
		NoteID:    noteID,
		Author:    userID,
		Content:   req.Content,
		CreatedAt: time.Now(),
	}

	if err := s.repo.Create(comment); err != nil {
		return nil, err
	}

	s.feed.Broadcast(userID, "comment", websocket.OpInsert, comment.ID, noteID, comment)

	return comment, nil
}

func (s *CommentService) ListByNote(userID, noteID string) ([]*domain.Comment, error) {
	if err := s.checkNoteAccess(userID, noteID); err != nil {
		return nil, err
	}
	return s.repo.ListByNote(noteID)
}

func (s *CommentService) Update(userID, commentID string, req *domain.UpdateCommentRequest) (*domain.Comment, error) {
	comment, err := s.repo.FindByID(commentID)
	if err != nil {
		return nil, err
	}

	if err := s.checkNoteAccess(userID, comment.NoteID); err != nil {
		return nil, err
	}

	if req.Content != nil {
		comment.Content = *req.Content
	}
	if req.IsResolved != nil {
		comment.IsResolved = *req.IsResolved
	}

	if err := s.repo.Update(comment); err != nil {
		return nil, err
	}

	s.feed.Broadcast(userID, "comment", websocket.OpUpdate, comment.ID, comment.NoteID, comment)

	return comment, nil
}

func (s *CommentService) Delete(userID, commentID string) error {
	comment, err := s.repo.FindByID(commentID)
	if err != nil {
		return err
	}

	if err := s.checkNoteAccess(userID, comment.NoteID); err != nil {
		return err
	}

	if err := s.repo.Delete(commentID); err != nil {
		return err
	}

	s.feed.Broadcast(userID, "comment", websocket.OpHardDelete, commentID, comment.NoteID, nil)

	return nil
}

func (s *CommentService) checkNoteAccess(userID, noteID string) error {
	note, err := s.noteRepo.FindByID(noteID)
	if err != nil {
		return err
	}
	if note.Owner != userID {
		return ErrNotOwner
	}
	return nil
}
