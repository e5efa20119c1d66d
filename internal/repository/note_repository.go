package repository

import (
	"context"
	"fmt"
	"time"

	"planboard/internal/domain"

	"github.com/go-kivik/kivik/v4"
)

type NoteRepository interface {
	Create(note *domain.Note) error
	FindByID(id string) (*domain.Note, error)
	ListActive(owner string) ([]*domain.Note, error)
	ListTrashed(owner string) ([]*domain.Note, error)
	Update(note *domain.Note) error
	SoftDelete(id string, deletedAt time.Time) error
	Restore(id string) error
	HardDelete(id string) error
}

type noteRepository struct {
	client *kivik.Client
	dbName string
}

func NewNoteRepository(client *kivik.Client, dbName string) NoteRepository {
	return &noteRepository{
		client: client,
		dbName: dbName,
	}
}

func noteDocID(id string) string {
	return fmt.Sprintf("note:%s", id)
}

func (r *noteRepository) Create(note *domain.Note) error {
	db := r.client.DB(r.dbName)

	_, err := db.Put(context.Background(), noteDocID(note.ID), note)
	if err != nil {
		return fmt.Errorf("failed to create note: %w", err)
	}

	return nil
}

func (r *noteRepository) FindByID(id string) (*domain.Note, error) {
	db := r.client.DB(r.dbName)

	row := db.Get(context.Background(), noteDocID(id))

	var note domain.Note
	if err := row.ScanDoc(&note); err != nil {
		return nil, fmt.Errorf("failed to find note: %w", err)
	}

	return &note, nil
}

func (r *noteRepository) ListActive(owner string) ([]*domain.Note, error) {
	return r.list(map[string]interface{}{
		"_id":        map[string]interface{}{"$gte": "note:", "$lt": "note:￰"},
		"owner":      owner,
		"deleted_at": map[string]interface{}{"$exists": false},
	})
}

func (r *noteRepository) ListTrashed(owner string) ([]*domain.Note, error) {
	return r.list(map[string]interface{}{
		"_id":        map[string]interface{}{"$gte": "note:", "$lt": "note:￰"},
		"owner":      owner,
		"deleted_at": map[string]interface{}{"$exists": true},
	})
}

func (r *noteRepository) list(selector map[string]interface{}) ([]*domain.Note, error) {
	db := r.client.DB(r.dbName)

	rows := db.Find(context.Background(), map[string]interface{}{"selector": selector})
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list notes: %w", err)
	}
	defer rows.Close()

	var notes []*domain.Note
	for rows.Next() {
		var note domain.Note
		if err := rows.ScanDoc(&note); err != nil {
			continue
		}
		notes = append(notes, &note)
	}

	return notes, nil
}

func (r *noteRepository) Update(note *domain.Note) error {
	db := r.client.DB(r.dbName)
	docID := noteDocID(note.ID)

	var existingDoc map[string]interface{}
	row := db.Get(context.Background(), docID)
	if err := row.ScanDoc(&existingDoc); err != nil {
		return fmt.Errorf("failed to fetch existing note for update: %w", err)
	}

	existingDoc["title"] = note.Title
	existingDoc["content"] = note.Content
	existingDoc["summary"] = note.Summary
	existingDoc["updated_at"] = time.Now()

	_, err := db.Put(context.Background(), docID, existingDoc)
	if err != nil {
		return fmt.Errorf("failed to update note: %w", err)
	}

	return nil
}

func (r *noteRepository) SoftDelete(id string, deletedAt time.Time) error {
	return softDeleteDoc(r.client, r.dbName, noteDocID(id), deletedAt)
}

func (r *noteRepository) Restore(id string) error {
	return restoreDoc(r.client, r.dbName, noteDocID(id))
}

func (r *noteRepository) HardDelete(id string) error {
	return hardDeleteDoc(r.client, r.dbName, noteDocID(id))
}
