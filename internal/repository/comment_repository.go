package repository

import (
	"context"
	"fmt"

	"planboard/internal/domain"

	"github.com/go-kivik/kivik/v4"
)

type CommentRepository interface {
	Create(comment *domain.Comment) error
	FindByID(id string) (*domain.Comment, error)
	ListByNote(noteID string) ([]*domain.Comment, error)
	Update(comment *domain.Comment) error
	Delete(id string) error
}

type commentRepository struct {
	client *kivik.Client
	dbName string
}

func NewCommentRepository(client *kivik.Client, dbName string) CommentRepository {
	return &commentRepository{
		client: client,
		dbName: dbName,
	}
}

func commentDocID(id string) string {
	return fmt.Sprintf("comment:%s", id)
}

func (r *commentRepository) Create(comment *domain.Comment) error {
	db := r.client.DB(r.dbName)

	_, err := db.Put(context.Background(), commentDocID(comment.ID), comment)
	if err != nil {
		return fmt.Errorf("failed to create comment: %w", err)
	}

	return nil
}

func (r *commentRepository) FindByID(id string) (*domain.Comment, error) {
	db := r.client.DB(r.dbName)

	row := db.Get(context.Background(), commentDocID(id))

	var comment domain.Comment
	if err := row.ScanDoc(&comment); err != nil {
		return nil, fmt.Errorf("failed to find comment: %w", err)
	}

	return &comment, nil
}

func (r *commentRepository) ListByNote(noteID string) ([]*domain.Comment, error) {
	db := r.client.DB(r.dbName)

	query := map[string]interface{}{
		"selector": map[string]interface{}{
			"_id":     map[string]interface{}{"$gte": "comment:", "$lt": "comment:￰"},
			"note_id": noteID,
		},
	}

	rows := db.Find(context.Background(), query)
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list comments: %w", err)
	}
	defer rows.Close()

	var comments []*domain.Comment
	for rows.Next() {
		var comment domain.Comment
		if err := rows.ScanDoc(&comment); err != nil {
			continue
		}
		comments = append(comments, &comment)
	}

	return comments, nil
}

func (r *commentRepository) Update(comment *domain.Comment) error {
	db := r.client.DB(r.dbName)
	docID := commentDocID(comment.ID)

	var existingDoc map[string]interface{}
	row := db.Get(context.Background(), docID)
	if err := row.ScanDoc(&existingDoc); err != nil {
		return fmt.Errorf("failed to fetch existing comment for update: %w", err)
	}

	existingDoc["content"] = comment.Content
	existingDoc["is_resolved"] = comment.IsResolved

	_, err := db.Put(context.Background(), docID, existingDoc)
	if err != nil {
		return fmt.Errorf("failed to update comment: %w", err)
	}

	return nil
}

func (r *commentRepository) Delete(id string) error {
	return hardDeleteDoc(r.client, r.dbName, commentDocID(id))
}
