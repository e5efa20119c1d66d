package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/go-kivik/kivik/v4"
)

// Soft-delete helpers shared by the note, version and (hard-delete only)
// dashboard repositories. Restore removes the deleted_at key entirely so the
// active-list selectors, which test field existence, behave correctly.

func softDeleteDoc(client *kivik.Client, dbName, docID string, deletedAt time.Time) error {
	db := client.DB(dbName)

	var existingDoc map[string]interface{}
	row := db.Get(context.Background(), docID)
	if err := row.ScanDoc(&existingDoc); err != nil {
		return fmt.Errorf("failed to fetch doc for soft delete: %w", err)
	}

	existingDoc["deleted_at"] = deletedAt
	existingDoc["updated_at"] = time.Now()

	if _, err := db.Put(context.Background(), docID, existingDoc); err != nil {
		return fmt.Errorf("failed to soft delete doc: %w", err)
	}

	return nil
}

func restoreDoc(client *kivik.Client, dbName, docID string) error {
	db := client.DB(dbName)

	var existingDoc map[string]interface{}
	row := db.Get(context.Background(), docID)
	if err := row.ScanDoc(&existingDoc); err != nil {
		return fmt.Errorf("failed to fetch doc for restore: %w", err)
	}

	delete(existingDoc, "deleted_at")
	existingDoc["updated_at"] = time.Now()

	if _, err := db.Put(context.Background(), docID, existingDoc); err != nil {
		return fmt.Errorf("failed to restore doc: %w", err)
	}

	return nil
}

func hardDeleteDoc(client *kivik.Client, dbName, docID string) error {
	db := client.DB(dbName)

	var existingDoc map[string]interface{}
	row := db.Get(context.Background(), docID)
	if err := row.ScanDoc(&existingDoc); err != nil {
		return fmt.Errorf("failed to fetch doc for delete: %w", err)
	}

	rev, _ := existingDoc["_rev"].(string)

	if _, err := db.Delete(context.Background(), docID, rev); err != nil {
		return fmt.Errorf("failed to delete doc: %w", err)
	}

	return nil
}
