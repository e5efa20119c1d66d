package domain

import "time"

type Dashboard struct {
	ID         string    `json:"id"`
	OwnerID    string    `json:"owner_id"`
	Title      string    `json:"title"`
	SharedWith []string  `json:"shared_with,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

type Tab struct {
	ID           string    `json:"id"`
	DashboardID  string    `json:"dashboard_id"`
	Title        string    `json:"title"`
	OrderIndex   int       `json:"order_index"`
	Color        string    `json:"color,omitempty"`
	Presentation bool      `json:"presentation"`
	CreatedAt    time.Time `json:"created_at"`
}

// TabWithWidgets is the nested shape a dashboard load returns.
type TabWithWidgets struct {
	Tab
	Widgets []*Widget `json:"widgets"`
}

type CreateDashboardRequest struct {
	Title string `json:"title" validate:"required"`
}

type UpdateDashboardRequest struct {
	Title      *string   `json:"title"`
	SharedWith *[]string `json:"shared_with"`
}

type CreateTabRequest struct {
	Title        string `json:"title" validate:"required"`
	Color        string `json:"color"`
	Presentation bool   `json:"presentation"`
}

type UpdateTabRequest struct {
	Title        *string `json:"title"`
	OrderIndex   *int    `json:"order_index"`
	Color        *string `json:"color"`
	Presentation *bool   `json:"presentation"`
}
