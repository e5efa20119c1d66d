package remote

import (
	"context"
	"net/http"
	"net/url"

	"planboard/internal/domain"
)

// GetDashboard returns the user's dashboard, creating one on first use.
func (c *Client) GetDashboard(ctx context.Context) (*domain.Dashboard, error) {
	var boards []*domain.Dashboard
	if err := c.call(ctx, http.MethodGet, apiPrefix+"/dashboards", nil, &boards); err != nil {
		return nil, err
	}
	if len(boards) > 0 {
		return boards[0], nil
	}
	var board domain.Dashboard
	req := domain.CreateDashboardRequest{Title: "My dashboard"}
	if err := c.call(ctx, http.MethodPost, apiPrefix+"/dashboards", req, &board); err != nil {
		return nil, err
	}
	return &board, nil
}

func (c *Client) UpdateDashboard(ctx context.Context, id string, req domain.UpdateDashboardRequest) (*domain.Dashboard, error) {
	var board domain.Dashboard
	if err := c.call(ctx, http.MethodPatch, apiPrefix+"/dashboards/"+id, req, &board); err != nil {
		return nil, err
	}
	return &board, nil
}

func (c *Client) ListTabs(ctx context.Context, dashboardID string) ([]*domain.TabWithWidgets, error) {
	var tabs []*domain.TabWithWidgets
	if err := c.call(ctx, http.MethodGet, apiPrefix+"/dashboards/"+dashboardID+"/tabs", nil, &tabs); err != nil {
		return nil, err
	}
	return tabs, nil
}

func (c *Client) InsertTab(ctx context.Context, dashboardID string, req domain.CreateTabRequest) (*domain.Tab, error) {
	var tab domain.Tab
	if err := c.call(ctx, http.MethodPost, apiPrefix+"/dashboards/"+dashboardID+"/tabs", req, &tab); err != nil {
		return nil, err
	}
	return &tab, nil
}

func (c *Client) UpdateTab(ctx context.Context, tabID string, req domain.UpdateTabRequest) (*domain.Tab, error) {
	var tab domain.Tab
	if err := c.call(ctx, http.MethodPatch, apiPrefix+"/tabs/"+tabID, req, &tab); err != nil {
		return nil, err
	}
	return &tab, nil
}

func (c *Client) DeleteTab(ctx context.Context, tabID string) error {
	return c.call(ctx, http.MethodDelete, apiPrefix+"/tabs/"+tabID, nil, nil)
}

func (c *Client) InsertWidget(ctx context.Context, tabID string, req domain.CreateWidgetRequest) (*domain.Widget, error) {
	var widget domain.Widget
	if err := c.call(ctx, http.MethodPost, apiPrefix+"/tabs/"+tabID+"/widgets", req, &widget); err != nil {
		return nil, err
	}
	return &widget, nil
}

func (c *Client) UpdateWidget(ctx context.Context, widgetID string, req domain.UpdateWidgetRequest) (*domain.Widget, error) {
	var widget domain.Widget
	if err := c.call(ctx, http.MethodPatch, apiPrefix+"/widgets/"+widgetID, req, &widget); err != nil {
		return nil, err
	}
	return &widget, nil
}

// UpdateWidgetLayout persists one widget's placement through the batch
// layout endpoint.
func (c *Client) UpdateWidgetLayout(ctx context.Context, widgetID string, layout domain.Layout) error {
	updates := []domain.LayoutUpdate{{
		ID: widgetID,
		X:  layout.X,
		Y:  layout.Y,
		W:  layout.W,
		H:  layout.H,
	}}
	return c.UpdateWidgetLayouts(ctx, updates)
}

// UpdateWidgetLayouts persists a drag/resize batch in one call.
func (c *Client) UpdateWidgetLayouts(ctx context.Context, updates []domain.LayoutUpdate) error {
	return c.call(ctx, http.MethodPut, apiPrefix+"/widgets/layouts", updates, nil)
}

func (c *Client) DeleteWidget(ctx context.Context, widgetID string) error {
	return c.call(ctx, http.MethodDelete, apiPrefix+"/widgets/"+widgetID, nil, nil)
}

// PublicURL resolves a stored object path to its public URL.
func (c *Client) PublicURL(ctx context.Context, objectPath string) (string, error) {
	var out struct {
		URL string `json:"url"`
	}
	path := apiPrefix + "/storage/public-url?path=" + url.QueryEscape(objectPath)
	if err := c.call(ctx, http.MethodGet, path, nil, &out); err != nil {
		return "", err
	}
	return out.URL, nil
}
