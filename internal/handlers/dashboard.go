package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	log "github.com/sirupsen/logrus"
	"github.com/ukydev/fleet-care/internal/alerts"
	"github.com/ukydev/fleet-care/internal/dashboard"
	"github.com/ukydev/fleet-care/internal/db"
	"github.com/ukydev/fleet-care/internal/middleware"
	"github.com/ukydev/fleet-care/internal/search"
)

// Dashboard is the service behind the REST handlers.
type Dashboard interface {
	Alerts(ctx context.Context) (alerts.Report, error)
	Summary(ctx context.Context) (alerts.Summary, error)
	Equipment(ctx context.Context) ([]alerts.Alert, error)
	EquipmentByTag(ctx context.Context, tag string) (alerts.Alert, error)
	Search(ctx context.Context, query string) []search.Result
	RecordReading(ctx context.Context, tag string, in dashboard.ReadingInput) error
	SetInterval(ctx context.Context, tag string, in dashboard.IntervalInput) error
	ClearInterval(ctx context.Context, tag string) error
}

// DashboardHandler handles the fleet maintenance endpoints.
type DashboardHandler struct {
	service Dashboard
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(service Dashboard) *DashboardHandler {
	return &DashboardHandler{service: service}
}

// Health reports liveness.
func (h *DashboardHandler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// Alerts returns the bucketed alert report.
func (h *DashboardHandler) Alerts(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	report, err := h.service.Alerts(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}

// Summary returns the dashboard counters.
func (h *DashboardHandler) Summary(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	summary, err := h.service.Summary(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

// Equipment lists every equipment with its evaluated status.
func (h *DashboardHandler) Equipment(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	list, err := h.service.Equipment(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

// EquipmentDetail returns the evaluated status of the equipment in the path.
func (h *DashboardHandler) EquipmentDetail(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	a, err := h.service.EquipmentByTag(r.Context(), r.PathValue("tag"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, a)
}

// Search runs the cross-entity search for the q parameter.
func (h *DashboardHandler) Search(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	writeJSON(w, http.StatusOK, h.service.Search(r.Context(), r.URL.Query().Get("q")))
}

// Readings records a counter sync for the equipment in the path.
func (h *DashboardHandler) Readings(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	var in dashboard.ReadingInput
	if !decodeBody(w, r, &in) {
		return
	}
	if err := h.service.RecordReading(r.Context(), r.PathValue("tag"), in); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Interval sets (PUT) or clears (DELETE) the equipment's maintenance interval.
func (h *DashboardHandler) Interval(w http.ResponseWriter, r *http.Request) {
	tag := r.PathValue("tag")
	var err error
	switch r.Method {
	case http.MethodPut:
		var in dashboard.IntervalInput
		if !decodeBody(w, r, &in) {
			return
		}
		err = h.service.SetInterval(r.Context(), tag, in)
	case http.MethodDelete:
		err = h.service.ClearInterval(r.Context(), tag)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Me returns the authenticated caller's claims.
func (h *DashboardHandler) Me(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	claims, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		http.Error(w, "User context not found", http.StatusUnauthorized)
		return
	}
	writeJSON(w, http.StatusOK, claims)
}

func decodeBody(w http.ResponseWriter, r *http.Request, out interface{}) bool {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, "Failed to read request body", http.StatusBadRequest)
		return false
	}
	if err := json.Unmarshal(body, out); err != nil {
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return false
	}
	return true
}

func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, dashboard.ErrInvalidInput):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, db.ErrEquipmentNotFound):
		http.Error(w, "Equipment not found", http.StatusNotFound)
	default:
		log.WithError(err).Error("Request failed")
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.WithError(err).Error("Failed to encode response")
	}
}
