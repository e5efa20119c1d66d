package dashboard

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"planboard/internal/domain"
)

// Gateway is the coordinator's view of the remote dashboard service.
type Gateway interface {
	GetDashboard(ctx context.Context) (*domain.Dashboard, error)
	ListTabs(ctx context.Context, dashboardID string) ([]*domain.TabWithWidgets, error)
	InsertTab(ctx context.Context, dashboardID string, req domain.CreateTabRequest) (*domain.Tab, error)
	UpdateTab(ctx context.Context, tabID string, req domain.UpdateTabRequest) (*domain.Tab, error)
	DeleteTab(ctx context.Context, tabID string) error
	InsertWidget(ctx context.Context, tabID string, req domain.CreateWidgetRequest) (*domain.Widget, error)
	UpdateWidget(ctx context.Context, widgetID string, req domain.UpdateWidgetRequest) (*domain.Widget, error)
	UpdateWidgetLayout(ctx context.Context, widgetID string, layout domain.Layout) error
	DeleteWidget(ctx context.Context, widgetID string) error
}

// Coordinator owns the dashboard's tab strip and the widgets of the active
// tab. Tabs stay in order-index order; the active tab falls back to the
// first tab when the previous selection disappears, and to nothing when no
// tabs exist.
type Coordinator struct {
	mu  sync.Mutex
	gw  Gateway
	log zerolog.Logger

	dashboard   *domain.Dashboard
	tabs        []domain.TabWithWidgets
	activeTabID string
}

func NewCoordinator(gw Gateway, log zerolog.Logger) *Coordinator {
	return &Coordinator{
		gw:  gw,
		log: log.With().Str("component", "dashboard").Logger(),
	}
}

// Load fetches the dashboard and its tabs with nested widgets. The active
// tab is kept when it still exists and otherwise reset to the first tab.
func (c *Coordinator) Load(ctx context.Context) error {
	board, err := c.gw.GetDashboard(ctx)
	if err != nil {
		return err
	}
	tabs, err := c.gw.ListTabs(ctx, board.ID)
	if err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.dashboard = board
	c.tabs = c.tabs[:0]
	for _, tab := range tabs {
		c.tabs = append(c.tabs, *tab)
	}
	if c.tabIndex(c.activeTabID) < 0 {
		c.activeTabID = ""
	}
	if c.activeTabID == "" && len(c.tabs) > 0 {
		c.activeTabID = c.tabs[0].ID
	}
	return nil
}

// Dashboard returns the loaded dashboard, or nil before Load.
func (c *Coordinator) Dashboard() *domain.Dashboard {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.dashboard == nil {
		return nil
	}
	d := *c.dashboard
	return &d
}

// Tabs returns the tab strip in display order.
func (c *Coordinator) Tabs() []domain.TabWithWidgets {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]domain.TabWithWidgets(nil), c.tabs...)
}

// ActiveTab returns the focused tab, or nil when no tabs exist.
func (c *Coordinator) ActiveTab() *domain.TabWithWidgets {
	c.mu.Lock()
	defer c.mu.Unlock()
	if idx := c.tabIndex(c.activeTabID); idx >= 0 {
		tab := c.tabs[idx]
		return &tab
	}
	return nil
}

// SelectTab focuses a tab. Unknown ids are ignored.
func (c *Coordinator) SelectTab(tabID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.tabIndex(tabID) >= 0 {
		c.activeTabID = tabID
	}
}

// AddTab creates a tab at the end of the strip. The first tab created on an
// empty dashboard becomes active immediately.
func (c *Coordinator) AddTab(ctx context.Context, req domain.CreateTabRequest) (*domain.Tab, error) {
	c.mu.Lock()
	if c.dashboard == nil {
		c.mu.Unlock()
		return nil, ErrNotLoaded
	}
	dashboardID := c.dashboard.ID
	c.mu.Unlock()

	created, err := c.gw.InsertTab(ctx, dashboardID, req)
	if err != nil {
		return nil, err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.tabs = append(c.tabs, domain.TabWithWidgets{Tab: *created})
	if c.activeTabID == "" {
		c.activeTabID = created.ID
	}
	return created, nil
}

// UpdateTab edits a tab's title, color, order or presentation flag.
func (c *Coordinator) UpdateTab(ctx context.Context, tabID string, req domain.UpdateTabRequest) (*domain.Tab, error) {
	updated, err := c.gw.UpdateTab(ctx, tabID, req)
	if err != nil {
		return nil, err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if idx := c.tabIndex(tabID); idx >= 0 {
		c.tabs[idx].Tab = *updated
	}
	return updated, nil
}

// DeleteTab removes a tab and its widgets. When the active tab is deleted
// the focus moves to the first remaining tab.
func (c *Coordinator) DeleteTab(ctx context.Context, tabID string) error {
	if err := c.gw.DeleteTab(ctx, tabID); err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if idx := c.tabIndex(tabID); idx >= 0 {
		c.tabs = append(c.tabs[:idx], c.tabs[idx+1:]...)
	}
	if c.activeTabID == tabID {
		c.activeTabID = ""
		if len(c.tabs) > 0 {
			c.activeTabID = c.tabs[0].ID
		}
	}
	return nil
}

func (c *Coordinator) tabIndex(tabID string) int {
	if tabID == "" {
		return -1
	}
	for i := range c.tabs {
		if c.tabs[i].ID == tabID {
			return i
		}
	}
	return -1
}
