package store

import (
	"context"

	"planboard/internal/domain"
)

// FetchComments loads the comment thread of a note into the cache.
func (s *Store) FetchComments(ctx context.Context, noteID string) ([]domain.Comment, error) {
	rows, err := s.gw.ListComments(ctx, noteID)
	if err != nil {
		return nil, err
	}
	comments := make([]domain.Comment, 0, len(rows))
	for _, row := range rows {
		comments = append(comments, *row)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.commentsByNote[noteID] = comments
	s.notifyLocked()
	return append([]domain.Comment(nil), comments...), nil
}

// Comments returns the cached thread of a note.
func (s *Store) Comments(noteID string) []domain.Comment {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.Comment(nil), s.commentsByNote[noteID]...)
}

// AddComment appends a comment to a note's thread.
func (s *Store) AddComment(ctx context.Context, noteID string, req domain.CreateCommentRequest) (*domain.Comment, error) {
	created, err := s.gw.InsertComment(ctx, noteID, req)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.commentsByNote[noteID] = append(s.commentsByNote[noteID], *created)
	s.notifyLocked()
	return created, nil
}

// UpdateComment edits or resolves a comment and stores the server echo.
func (s *Store) UpdateComment(ctx context.Context, noteID, id string, req domain.UpdateCommentRequest) (*domain.Comment, error) {
	updated, err := s.gw.UpdateComment(ctx, id, req)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	comments := s.commentsByNote[noteID]
	for i := range comments {
		if comments[i].ID == id {
			comments[i] = *updated
			break
		}
	}
	s.notifyLocked()
	return updated, nil
}

// DeleteComment removes a comment outright. Comments have no trash.
func (s *Store) DeleteComment(ctx context.Context, noteID, id string) error {
	if err := s.gw.HardDeleteComment(ctx, id); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	comments := s.commentsByNote[noteID]
	for i := range comments {
		if comments[i].ID == id {
			s.commentsByNote[noteID] = append(comments[:i], comments[i+1:]...)
			break
		}
	}
	s.notifyLocked()
	return nil
}
