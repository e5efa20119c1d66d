package service

import (
	"sort"
	"time"

	"planboard/internal/domain"
	"planboard/internal/repository"
	"planboard/internal/websocket"

	"github.com/google/uuid"
)

type DashboardService struct {
	repo       repository.DashboardRepository
	widgetRepo repository.WidgetRepository
	feed       *ChangeFeed
}

func NewDashboardService(
	repo repository.DashboardRepository,
	widgetRepo repository.WidgetRepository,
	feed *ChangeFeed,
) *DashboardService {
	return &DashboardService{
		repo:       repo,
		widgetRepo: widgetRepo,
		feed:       feed,
	}
}

func (s *DashboardService) Create(ownerID string, req *domain.CreateDashboardRequest) (*domain.Dashboard, error) {
	dashboard := &domain.Dashboard{
		ID:        uuid.New().String(),
		OwnerID:   ownerID,
		Title:     req.Title,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}

	if err := s.repo.Create(dashboard); err != nil {
		return nil, err
	}

	s.feed.Broadcast(ownerID, "dashboard", websocket.OpInsert, dashboard.ID, "", dashboard)

	return dashboard, nil
}

func (s *DashboardService) List(userID string) ([]*domain.Dashboard, error) {
	return s.repo.ListByOwner(userID)
}

// GetByID allows the owner and anyone the dashboard is shared with.
func (s *DashboardService) GetByID(userID, dashboardID string) (*domain.Dashboard, error) {
	dashboard, err := s.repo.FindByID(dashboardID)
	if err != nil {
		return nil, err
	}

	if dashboard.OwnerID != userID && !contains(dashboard.SharedWith, userID) {
		return nil, ErrNotOwner
	}

	return dashboard, nil
}

func (s *DashboardService) Update(userID, dashboardID string, req *domain.UpdateDashboardRequest) (*domain.Dashboard, error) {
	dashboard, err := s.ownedDashboard(userID, dashboardID)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		dashboard.Title = *req.Title
	}
	if req.SharedWith != nil {
		dashboard.SharedWith = *req.SharedWith
	}
	dashboard.UpdatedAt = time.Now()

	if err := s.repo.Update(dashboard); err != nil {
		return nil, err
	}

	s.feed.Broadcast(userID, "dashboard", websocket.OpUpdate, dashboard.ID, "", dashboard)

	return dashboard, nil
}

// Delete removes the dashboard and everything under it: tabs and widgets.
func (s *DashboardService) Delete(userID, dashboardID string) error {
	if _, err := s.ownedDashboard(userID, dashboardID); err != nil {
		return err
	}

	tabs, err := s.repo.ListTabs(dashboardID)
	if err != nil {
		return err
	}
	for _, tab := range tabs {
		if err := s.deleteTabTree(userID, tab); err != nil {
			return err
		}
	}

	if err := s.repo.HardDelete(dashboardID); err != nil {
		return err
	}

	s.feed.Broadcast(userID, "dashboard", websocket.OpHardDelete, dashboardID, "", nil)

	return nil
}

func (s *DashboardService) CreateTab(userID, dashboardID string, req *domain.CreateTabRequest) (*domain.Tab, error) {
	if _, err := s.ownedDashboard(userID, dashboardID); err != nil {
		return nil, err
	}

	existing, err := s.repo.ListTabs(dashboardID)
	if err != nil {
		return nil, err
	}

	orderIndex := 0
	for _, t := range existing {
		if t.OrderIndex >= orderIndex {
			orderIndex = t.OrderIndex + 1
		}
	}

	tab := &domain.Tab{
		ID:           uuid.New().String(),
		DashboardID:  dashboardID,
		Title:        req.Title,
		OrderIndex:   orderIndex,
		Color:        req.Color,
		Presentation: req.Presentation,
		CreatedAt:    time.Now(),
	}

	if err := s.repo.CreateTab(tab); err != nil {
		return nil, err
	}

	s.feed.Broadcast(userID, "tab", websocket.OpInsert, tab.ID, dashboardID, tab)

	return tab, nil
}

// ListTabs returns the dashboard's tabs ordered by their order index, each
// with its widgets nested.
func (s *DashboardService) ListTabs(userID, dashboardID string) ([]*domain.TabWithWidgets, error) {
	if _, err := s.GetByID(userID, dashboardID); err != nil {
		return nil, err
	}

	tabs, err := s.repo.ListTabs(dashboardID)
	if err != nil {
		return nil, err
	}

	sortTabs(tabs)

	result := make([]*domain.TabWithWidgets, 0, len(tabs))
	for _, tab := range tabs {
		widgets, err := s.widgetRepo.ListByTab(tab.ID)
		if err != nil {
			return nil, err
		}
		result = append(result, &domain.TabWithWidgets{Tab: *tab, Widgets: widgets})
	}

	return result, nil
}

func (s *DashboardService) UpdateTab(userID, tabID string, req *domain.UpdateTabRequest) (*domain.Tab, error) {
	tab, err := s.ownedTab(userID, tabID)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		tab.Title = *req.Title
	}
	if req.OrderIndex != nil {
		tab.OrderIndex = *req.OrderIndex
	}
	if req.Color != nil {
		tab.Color = *req.Color
	}
	if req.Presentation != nil {
		tab.Presentation = *req.Presentation
	}

	if err := s.repo.UpdateTab(tab); err != nil {
		return nil, err
	}

	s.feed.Broadcast(userID, "tab", websocket.OpUpdate, tab.ID, tab.DashboardID, tab)

	return tab, nil
}

func (s *DashboardService) DeleteTab(userID, tabID string) error {
	tab, err := s.ownedTab(userID, tabID)
	if err != nil {
		return err
	}

	return s.deleteTabTree(userID, tab)
}

func (s *DashboardService) CreateWidget(userID, tabID string, req *domain.CreateWidgetRequest) (*domain.Widget, error) {
	tab, err := s.ownedTab(userID, tabID)
	if err != nil {
		return nil, err
	}

	layout := domain.DefaultLayout(req.Type)
	if req.Layout != nil {
		layout = *req.Layout
	}

	widget := &domain.Widget{
		ID:        uuid.New().String(),
		TabID:     tab.ID,
		Type:      req.Type,
		Layout:    layout,
		Config:    req.Config,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}

	if err := s.widgetRepo.Create(widget); err != nil {
		return nil, err
	}

	s.feed.Broadcast(userID, "widget", websocket.OpInsert, widget.ID, tab.ID, widget)

	return widget, nil
}

func (s *DashboardService) UpdateWidget(userID, widgetID string, req *domain.UpdateWidgetRequest) (*domain.Widget, error) {
	widget, err := s.ownedWidget(userID, widgetID)
	if err != nil {
		return nil, err
	}

	if req.Layout != nil {
		widget.Layout = *req.Layout
	}
	if req.Config != nil {
		widget.Config = req.Config
	}
	widget.UpdatedAt = time.Now()

	if err := s.widgetRepo.Update(widget); err != nil {
		return nil, err
	}

	s.feed.Broadcast(userID, "widget", websocket.OpUpdate, widget.ID, widget.TabID, widget)

	return widget, nil
}

// UpdateLayouts persists a drag/resize batch. Entries are independent; a
// failing entry does not stop the rest and the first error is returned.
func (s *DashboardService) UpdateLayouts(userID string, updates []domain.LayoutUpdate) error {
	var firstErr error
	for _, u := range updates {
		widget, err := s.ownedWidget(userID, u.ID)
		if err != nil {
			if firstErr == nil {
				firstErr = err
			}
			continue
		}

		layout := domain.Layout{X: u.X, Y: u.Y, W: u.W, H: u.H}
		if err := s.widgetRepo.UpdateLayout(u.ID, layout); err != nil {
			if firstErr == nil {
				firstErr = err
			}
			continue
		}

		s.feed.Broadcast(userID, "widget", websocket.OpUpdate, widget.ID, widget.TabID, nil)
	}

	return firstErr
}

func (s *DashboardService) DeleteWidget(userID, widgetID string) error {
	widget, err := s.ownedWidget(userID, widgetID)
	if err != nil {
		return err
	}

	if err := s.widgetRepo.Delete(widgetID); err != nil {
		return err
	}

	s.feed.Broadcast(userID, "widget", websocket.OpHardDelete, widgetID, widget.TabID, nil)

	return nil
}

func (s *DashboardService) ownedDashboard(userID, dashboardID string) (*domain.Dashboard, error) {
	dashboard, err := s.repo.FindByID(dashboardID)
	if err != nil {
		return nil, err
	}
	if dashboard.OwnerID != userID {
		return nil, ErrNotOwner
	}
	return dashboard, nil
}

func (s *DashboardService) ownedTab(userID, tabID string) (*domain.Tab, error) {
	tab, err := s.repo.FindTabByID(tabID)
	if err != nil {
		return nil, err
	}
	if _, err := s.ownedDashboard(userID, tab.DashboardID); err != nil {
		return nil, err
	}
	return tab, nil
}

func (s *DashboardService) ownedWidget(userID, widgetID string) (*domain.Widget, error) {
	widget, err := s.widgetRepo.FindByID(widgetID)
	if err != nil {
		return nil, err
	}
	if _, err := s.ownedTab(userID, widget.TabID); err != nil {
		return nil, err
	}
	return widget, nil
}

func (s *DashboardService) deleteTabTree(userID string, tab *domain.Tab) error {
	widgets, err := s.widgetRepo.ListByTab(tab.ID)
	if err != nil {
		return err
	}
	for _, w := range widgets {
		if err := s.widgetRepo.Delete(w.ID); err != nil {
			return err
		}
		s.feed.Broadcast(userID, "widget", websocket.OpHardDelete, w.ID, tab.ID, nil)
	}

	if err := s.repo.DeleteTab(tab.ID); err != nil {
		return err
	}

	s.feed.Broadcast(userID, "tab", websocket.OpHardDelete, tab.ID, tab.DashboardID, nil)

	return nil
}

func sortTabs(tabs []*domain.Tab) {
	sort.Slice(tabs, func(i, j int) bool {
		return tabs[i].OrderIndex < tabs[j].OrderIndex
	})
}

func contains(values []string, target string) bool {
	for _, v := range values {
		if v == target {
			return true
		}
	}
	return false
}
