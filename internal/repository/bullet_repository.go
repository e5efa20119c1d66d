package repository

import (
	"context"
	"fmt"

	"planboard/internal/domain"

	"github.com/go-kivik/kivik/v4"
)

type BulletRepository interface {
	Create(template *domain.BulletTemplate) error
	List() ([]*domain.BulletTemplate, error)
}

type bulletRepository struct {
	client *kivik.Client
	dbName string
}

func NewBulletRepository(client *kivik.Client, dbName string) BulletRepository {
	return &bulletRepository{
		client: client,
		dbName: dbName,
	}
}

func bulletDocID(id string) string {
	return fmt.Sprintf("bullet:%s", id)
}

// Create seeds a template. Templates are immutable afterwards; there is no
// update path on purpose.
func (r *bulletRepository) Create(template *domain.BulletTemplate) error {
	db := r.client.DB(r.dbName)

	_, err := db.Put(context.Background(), bulletDocID(template.ID), template)
	if err != nil {
		return fmt.Errorf("failed to create bullet template: %w", err)
	}

	return nil
}

func (r *bulletRepository) List() ([]*domain.BulletTemplate, error) {
	db := r.client.DB(r.dbName)

	query := map[string]interface{}{
		"selector": map[string]interface{}{
			"_id": map[string]interface{}{"$gte": "bullet:", "$lt": "bullet:￰"},
		},
	}

	rows := db.Find(context.Background(), query)
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list bullet templates: %w", err)
	}
	defer rows.Close()

	var templates []*domain.BulletTemplate
	for rows.Next() {
		var template domain.BulletTemplate
		if err := rows.ScanDoc(&template); err != nil {
			continue
		}
		templates = append(templates, &template)
	}

	return templates, nil
}
