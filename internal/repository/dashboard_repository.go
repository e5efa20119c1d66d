package repository

import (
	"context"
	"fmt"
	"time"

	"planboard/internal/domain"

	"github.com/go-kivik/kivik/v4"
)

type DashboardRepository interface {
	Create(dashboard *domain.Dashboard) error
	FindByID(id string) (*domain.Dashboard, error)
	ListByOwner(ownerID string) ([]*domain.Dashboard, error)
	Update(dashboard *domain.Dashboard) error
	HardDelete(id string) error

	CreateTab(tab *domain.Tab) error
	FindTabByID(id string) (*domain.Tab, error)
	ListTabs(dashboardID string) ([]*domain.Tab, error)
	UpdateTab(tab *domain.Tab) error
	DeleteTab(id string) error
}

type dashboardRepository struct {
	client *kivik.Client
	dbName string
}

func NewDashboardRepository(client *kivik.Client, dbName string) DashboardRepository {
	return &dashboardRepository{
		client: client,
		dbName: dbName,
	}
}

func dashboardDocID(id string) string {
	return fmt.Sprintf("dashboard:%s", id)
}

func tabDocID(id string) string {
	return fmt.Sprintf("tab:%s", id)
}

func (r *dashboardRepository) Create(dashboard *domain.Dashboard) error {
	db := r.client.DB(r.dbName)

	_, err := db.Put(context.Background(), dashboardDocID(dashboard.ID), dashboard)
	if err != nil {
		return fmt.Errorf("failed to create dashboard: %w", err)
	}

	return nil
}

func (r *dashboardRepository) FindByID(id string) (*domain.Dashboard, error) {
	db := r.client.DB(r.dbName)

	row := db.Get(context.Background(), dashboardDocID(id))

	var dashboard domain.Dashboard
	if err := row.ScanDoc(&dashboard); err != nil {
		return nil, fmt.Errorf("failed to find dashboard: %w", err)
	}

	return &dashboard, nil
}

func (r *dashboardRepository) ListByOwner(ownerID string) ([]*domain.Dashboard, error) {
	db := r.client.DB(r.dbName)

	query := map[string]interface{}{
		"selector": map[string]interface{}{
			"_id":      map[string]interface{}{"$gte": "dashboard:", "$lt": "dashboard:￰"},
			"owner_id": ownerID,
		},
	}

	rows := db.Find(context.Background(), query)
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list dashboards: %w", err)
	}
	defer rows.Close()

	var dashboards []*domain.Dashboard
	for rows.Next() {
		var dashboard domain.Dashboard
		if err := rows.ScanDoc(&dashboard); err != nil {
			continue
		}
		dashboards = append(dashboards, &dashboard)
	}

	return dashboards, nil
}

func (r *dashboardRepository) Update(dashboard *domain.Dashboard) error {
	db := r.client.DB(r.dbName)
	docID := dashboardDocID(dashboard.ID)

	var existingDoc map[string]interface{}
	row := db.Get(context.Background(), docID)
	if err := row.ScanDoc(&existingDoc); err != nil {
		return fmt.Errorf("failed to fetch existing dashboard for update: %w", err)
	}

	existingDoc["title"] = dashboard.Title
	existingDoc["shared_with"] = dashboard.SharedWith
	existingDoc["updated_at"] = time.Now()

	_, err := db.Put(context.Background(), docID, existingDoc)
	if err != nil {
		return fmt.Errorf("failed to update dashboard: %w", err)
	}

	return nil
}

func (r *dashboardRepository) HardDelete(id string) error {
	return hardDeleteDoc(r.client, r.dbName, dashboardDocID(id))
}

func (r *dashboardRepository) CreateTab(tab *domain.Tab) error {
	db := r.client.DB(r.dbName)

	_, err := db.Put(context.Background(), tabDocID(tab.ID), tab)
	if err != nil {
		return fmt.Errorf("failed to create tab: %w", err)
	}

	return nil
}

func (r *dashboardRepository) FindTabByID(id string) (*domain.Tab, error) {
	db := r.client.DB(r.dbName)

	row := db.Get(context.Background(), tabDocID(id))

	var tab domain.Tab
	if err := row.ScanDoc(&tab); err != nil {
		return nil, fmt.Errorf("failed to find tab: %w", err)
	}

	return &tab, nil
}

func (r *dashboardRepository) ListTabs(dashboardID string) ([]*domain.Tab, error) {
	db := r.client.DB(r.dbName)

	query := map[string]interface{}{
		"selector": map[string]interface{}{
			"_id":          map[string]interface{}{"$gte": "tab:", "$lt": "tab:￰"},
			"dashboard_id": dashboardID,
		},
	}

	rows := db.Find(context.Background(), query)
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list tabs: %w", err)
	}
	defer rows.Close()

	var tabs []*domain.Tab
	for rows.Next() {
		var tab domain.Tab
		if err := rows.ScanDoc(&tab); err != nil {
			continue
		}
		tabs = append(tabs, &tab)
	}

	return tabs, nil
}

func (r *dashboardRepository) UpdateTab(tab *domain.Tab) error {
	db := r.client.DB(r.dbName)
	docID := tabDocID(tab.ID)

	var existingDoc map[string]interface{}
	row := db.Get(context.Background(), docID)
	if err := row.ScanDoc(&existingDoc); err != nil {
		return fmt.Errorf("failed to fetch existing tab for update: %w", err)
	}

	existingDoc["title"] = tab.Title
	existingDoc["order_index"] = tab.OrderIndex
	existingDoc["color"] = tab.Color
	existingDoc["presentation"] = tab.Presentation

	_, err := db.Put(context.Background(), docID, existingDoc)
	if err != nil {
		return fmt.Errorf("failed to update tab: %w", err)
	}

	return nil
}

func (r *dashboardRepository) DeleteTab(id string) error {
	return hardDeleteDoc(r.client, r.dbName, tabDocID(id))
}
