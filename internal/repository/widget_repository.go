package repository

import (
	"context"
	"fmt"
	"time"

	"planboard/internal/domain"

	"github.com/go-kivik/kivik/v4"
)

type WidgetRepository interface {
	Create(widget *domain.Widget) error
	FindByID(id string) (*domain.Widget, error)
	ListByTab(tabID string) ([]*domain.Widget, error)
	Update(widget *domain.Widget) error
	UpdateLayout(id string, layout domain.Layout) error
	Delete(id string) error
}

type widgetRepository struct {
	client *kivik.Client
	dbName string
}

func NewWidgetRepository(client *kivik.Client, dbName string) WidgetRepository {
	return &widgetRepository{
		client: client,
		dbName: dbName,
	}
}

func widgetDocID(id string) string {
	return fmt.Sprintf("widget:%s", id)
}

func (r *widgetRepository) Create(widget *domain.Widget) error {
	db := r.client.DB(r.dbName)

	_, err := db.Put(context.Background(), widgetDocID(widget.ID), widget)
	if err != nil {
		return fmt.Errorf("failed to create widget: %w", err)
	}

	return nil
}

func (r *widgetRepository) FindByID(id string) (*domain.Widget, error) {
	db := r.client.DB(r.dbName)

	row := db.Get(context.Background(), widgetDocID(id))

	var widget domain.Widget
	if err := row.ScanDoc(&widget); err != nil {
		return nil, fmt.Errorf("failed to find widget: %w", err)
	}

	return &widget, nil
}

func (r *widgetRepository) ListByTab(tabID string) ([]*domain.Widget, error) {
	db := r.client.DB(r.dbName)

	query := map[string]interface{}{
		"selector": map[string]interface{}{
			"_id":    map[string]interface{}{"$gte": "widget:", "$lt": "widget:￰"},
			"tab_id": tabID,
		},
	}

	rows := db.Find(context.Background(), query)
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list widgets: %w", err)
	}
	defer rows.Close()

	var widgets []*domain.Widget
	for rows.Next() {
		var widget domain.Widget
		if err := rows.ScanDoc(&widget); err != nil {
			continue
		}
		widgets = append(widgets, &widget)
	}

	return widgets, nil
}

func (r *widgetRepository) Update(widget *domain.Widget) error {
	db := r.client.DB(r.dbName)
	docID := widgetDocID(widget.ID)

	var existingDoc map[string]interface{}
	row := db.Get(context.Background(), docID)
	if err := row.ScanDoc(&existingDoc); err != nil {
		return fmt.Errorf("failed to fetch existing widget for update: %w", err)
	}

	existingDoc["layout"] = widget.Layout
	if widget.Config != nil {
		existingDoc["config"] = widget.Config
	}
	existingDoc["updated_at"] = time.Now()

	_, err := db.Put(context.Background(), docID, existingDoc)
	if err != nil {
		return fmt.Errorf("failed to update widget: %w", err)
	}

	return nil
}

func (r *widgetRepository) UpdateLayout(id string, layout domain.Layout) error {
	db := r.client.DB(r.dbName)
	docID := widgetDocID(id)

	var existingDoc map[string]interface{}
	row := db.Get(context.Background(), docID)
	if err := row.ScanDoc(&existingDoc); err != nil {
		return fmt.Errorf("failed to fetch existing widget for layout update: %w", err)
	}

	existingDoc["layout"] = layout
	existingDoc["updated_at"] = time.Now()

	_, err := db.Put(context.Background(), docID, existingDoc)
	if err != nil {
		return fmt.Errorf("failed to update widget layout: %w", err)
	}

	return nil
}

func (r *widgetRepository) Delete(id string) error {
	return hardDeleteDoc(r.client, r.dbName, widgetDocID(id))
}
