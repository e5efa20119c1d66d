package repository

import (
	"context"
	"fmt"
	"time"

	"planboard/internal/domain"

	"github.com/go-kivik/kivik/v4"
)

type NoteVersionRepository interface {
	Create(version *domain.NoteVersion) error
	FindByID(id string) (*domain.NoteVersion, error)
	ListByNote(noteID string) ([]*domain.NoteVersion, error)
	ListTrashed() ([]*domain.NoteVersion, error)
	SoftDelete(id string, deletedAt time.Time) error
	Restore(id string) error
	HardDelete(id string) error
}

type noteVersionRepository struct {
	client *kivik.Client
	dbName string
}

func NewNoteVersionRepository(client *kivik.Client, dbName string) NoteVersionRepository {
	return &noteVersionRepository{
		client: client,
		dbName: dbName,
	}
}

func versionDocID(id string) string {
	return fmt.Sprintf("version:%s", id)
}

func (r *noteVersionRepository) Create(version *domain.NoteVersion) error {
	db := r.client.DB(r.dbName)

	_, err := db.Put(context.Background(), versionDocID(version.ID), version)
	if err != nil {
		return fmt.Errorf("failed to create version: %w", err)
	}

	return nil
}

func (r *noteVersionRepository) FindByID(id string) (*domain.NoteVersion, error) {
	db := r.client.DB(r.dbName)

	row := db.Get(context.Background(), versionDocID(id))

	var version domain.NoteVersion
	if err := row.ScanDoc(&version); err != nil {
		return nil, fmt.Errorf("failed to find version: %w", err)
	}

	return &version, nil
}

// ListByNote returns the note's versions that are not in the trash.
func (r *noteVersionRepository) ListByNote(noteID string) ([]*domain.NoteVersion, error) {
	return r.list(map[string]interface{}{
		"_id":        map[string]interface{}{"$gte": "version:", "$lt": "version:￰"},
		"note_id":    noteID,
		"deleted_at": map[string]interface{}{"$exists": false},
	})
}

// ListTrashed returns every trashed version. Ownership is resolved by the
// service through the parent note.
func (r *noteVersionRepository) ListTrashed() ([]*domain.NoteVersion, error) {
	return r.list(map[string]interface{}{
		"_id":        map[string]interface{}{"$gte": "version:", "$lt": "version:￰"},
		"deleted_at": map[string]interface{}{"$exists": true},
	})
}

func (r *noteVersionRepository) list(selector map[string]interface{}) ([]*domain.NoteVersion, error) {
	db := r.client.DB(r.dbName)

	rows := db.Find(context.Background(), map[string]interface{}{"selector": selector})
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list versions: %w", err)
	}
	defer rows.Close()

	var versions []*domain.NoteVersion
	for rows.Next() {
		var version domain.NoteVersion
		if err := rows.ScanDoc(&version); err != nil {
			continue
		}
		versions = append(versions, &version)
	}

	return versions, nil
}

func (r *noteVersionRepository) SoftDelete(id string, deletedAt time.Time) error {
	return softDeleteDoc(r.client, r.dbName, versionDocID(id), deletedAt)
}

func (r *noteVersionRepository) Restore(id string) error {
	return restoreDoc(r.client, r.dbName, versionDocID(id))
}

func (r *noteVersionRepository) HardDelete(id string) error {
	return hardDeleteDoc(r.client, r.dbName, versionDocID(id))
}
