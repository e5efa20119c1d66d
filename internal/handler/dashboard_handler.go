package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"planboard/internal/domain"
	"planboard/internal/middleware"
	"planboard/internal/service"
	"planboard/pkg/response"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
)

type DashboardHandler struct {
	service  *service.DashboardService
	validate *validator.Validate
}

func NewDashboardHandler(service *service.DashboardService) *DashboardHandler {
	return &DashboardHandler{
		service:  service,
		validate: validator.New(),
	}
}

func (h *DashboardHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateDashboardRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request payload")
		return
	}

	if err := h.validate.Struct(req); err != nil {
		response.BadRequest(w, err.Error())
		return
	}

	userID := middleware.GetUserID(r)

	dashboard, err := h.service.Create(userID, &req)
	if err != nil {
		response.InternalError(w, "Failed to create dashboard")
		return
	}

	response.Created(w, dashboard)
}

func (h *DashboardHandler) List(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r)

	dashboards, err := h.service.List(userID)
	if err != nil {
		response.InternalError(w, "Failed to list dashboards")
		return
	}

	response.Success(w, dashboards)
}

func (h *DashboardHandler) Get(w http.ResponseWriter, r *http.Request) {
	dashboardID := mux.Vars(r)["id"]
	userID := middleware.GetUserID(r)

	dashboard, err := h.service.GetByID(userID, dashboardID)
	if err != nil {
		writeDashboardError(w, err, "Dashboard not found")
		return
	}

	response.Success(w, dashboard)
}

func (h *DashboardHandler) Update(w http.ResponseWriter, r *http.Request) {
	dashboardID := mux.Vars(r)["id"]

	var req domain.UpdateDashboardRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request payload")
		return
	}

	userID := middleware.GetUserID(r)

	dashboard, err := h.service.Update(userID, dashboardID, &req)
	if err != nil {
		writeDashboardError(w, err, "Failed to update dashboard")
		return
	}

	response.Success(w, dashboard)
}

func (h *DashboardHandler) Delete(w http.ResponseWriter, r *http.Request) {
	dashboardID := mux.Vars(r)["id"]
	userID := middleware.GetUserID(r)

	if err := h.service.Delete(userID, dashboardID); err != nil {
		writeDashboardError(w, err, "Failed to delete dashboard")
		return
	}

	response.Success(w, map[string]string{"message": "Dashboard deleted"})
}

// ListTabs returns the dashboard's tabs with widgets nested; this is the
// payload a dashboard load works from.
func (h *DashboardHandler) ListTabs(w http.ResponseWriter, r *http.Request) {
	dashboardID := mux.Vars(r)["id"]
	userID := middleware.GetUserID(r)

	tabs, err := h.service.ListTabs(userID, dashboardID)
	if err != nil {
		writeDashboardError(w, err, "Failed to list tabs")
		return
	}

	response.Success(w, tabs)
}

func (h *DashboardHandler) CreateTab(w http.ResponseWriter, r *http.Request) {
	dashboardID := mux.Vars(r)["id"]

	var req domain.CreateTabRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request payload")
		return
	}

	if err := h.validate.Struct(req); err != nil {
		response.BadRequest(w, err.Error())
		return
	}

	userID := middleware.GetUserID(r)

	tab, err := h.service.CreateTab(userID, dashboardID, &req)
	if err != nil {
		writeDashboardError(w, err, "Failed to create tab")
		return
	}

	response.Created(w, tab)
}

func (h *DashboardHandler) UpdateTab(w http.ResponseWriter, r *http.Request) {
	tabID := mux.Vars(r)["id"]

	var req domain.UpdateTabRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request payload")
		return
	}

	userID := middleware.GetUserID(r)

	tab, err := h.service.UpdateTab(userID, tabID, &req)
	if err != nil {
		writeDashboardError(w, err, "Failed to update tab")
		return
	}

	response.Success(w, tab)
}

func (h *DashboardHandler) DeleteTab(w http.ResponseWriter, r *http.Request) {
	tabID := mux.Vars(r)["id"]
	userID := middleware.GetUserID(r)

	if err := h.service.DeleteTab(userID, tabID); err != nil {
		writeDashboardError(w, err, "Failed to delete tab")
		return
	}

	response.Success(w, map[string]string{"message": "Tab deleted"})
}

func (h *DashboardHandler) CreateWidget(w http.ResponseWriter, r *http.Request) {
	tabID := mux.Vars(r)["id"]

	var req domain.CreateWidgetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request payload")
		return
	}

	if err := h.validate.Struct(req); err != nil {
		response.BadRequest(w, err.Error())
		return
	}

	userID := middleware.GetUserID(r)

	widget, err := h.service.CreateWidget(userID, tabID, &req)
	if err != nil {
		writeDashboardError(w, err, "Failed to create widget")
		return
	}

	response.Created(w, widget)
}

func (h *DashboardHandler) UpdateWidget(w http.ResponseWriter, r *http.Request) {
	widgetID := mux.Vars(r)["id"]

	var req domain.UpdateWidgetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request payload")
		return
	}

	userID := middleware.GetUserID(r)

	widget, err := h.service.UpdateWidget(userID, widgetID, &req)
	if err != nil {
		writeDashboardError(w, err, "Failed to update widget")
		return
	}

	response.Success(w, widget)
}

// UpdateLayouts persists a drag/resize batch in one call. Entries are
// independent; partial failure returns the first error after attempting all.
func (h *DashboardHandler) UpdateLayouts(w http.ResponseWriter, r *http.Request) {
	var updates []domain.LayoutUpdate
	if err := json.NewDecoder(r.Body).Decode(&updates); err != nil {
		response.BadRequest(w, "Invalid request payload")
		return
	}

	userID := middleware.GetUserID(r)

	if err := h.service.UpdateLayouts(userID, updates); err != nil {
		writeDashboardError(w, err, "Failed to update widget layouts")
		return
	}

	response.Success(w, map[string]string{"message": "Layouts updated"})
}

func (h *DashboardHandler) DeleteWidget(w http.ResponseWriter, r *http.Request) {
	widgetID := mux.Vars(r)["id"]
	userID := middleware.GetUserID(r)

	if err := h.service.DeleteWidget(userID, widgetID); err != nil {
		writeDashboardError(w, err, "Failed to delete widget")
		return
	}

	response.Success(w, map[string]string{"message": "Widget deleted"})
}

func writeDashboardError(w http.ResponseWriter, err error, fallback string) {
	if errors.Is(err, service.ErrNotOwner) {
		response.Forbidden(w, err.Error())
		return
	}
	response.NotFound(w, fallback)
}
