package dashboardhandler

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"grc/internal/domain/auth"
	"grc/internal/domain/dashboard"
	"grc/internal/transport/http/api"
	"grc/internal/transport/http/middleware"
	"grc/internal/transport/http/shared"
)

type Handler struct {
	Service *dashboard.Service
	Perms   middleware.PermissionStore
}

func NewHandler(service *dashboard.Service, perms middleware.PermissionStore) *Handler {
	return &Handler{Service: service, Perms: perms}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/dashboard", func(r chi.Router) {
		r.With(middleware.RequirePermission(auth.PermDashboardRead, h.Perms)).Get("/summary", h.handleSummary)
		r.With(middleware.RequirePermission(auth.PermDashboardRead, h.Perms)).Get("/standards", h.handleStandardProgress)
		r.With(middleware.RequirePermission(auth.PermDashboardRead, h.Perms)).Get("/risk-matrix", h.handleRiskMatrix)
		r.With(middleware.RequirePermission(auth.PermDashboardRead, h.Perms)).Get("/dsr", h.handleDSRSummary)
	})
}

// asOf lets reporting views be pinned to a point in time; it defaults to now.
func asOf(r *http.Request) (time.Time, bool) {
	raw := r.URL.Query().Get("asOf")
	if raw == "" {
		return time.Now().UTC(), true
	}
	parsed, err := shared.ParseDate(raw)
	if err != nil {
		return time.Time{}, false
	}
	return parsed, true
}

func (h *Handler) handleSummary(w http.ResponseWriter, r *http.Request) {
	at, ok := asOf(r)
	if !ok {
		api.Fail(w, http.StatusBadRequest, "invalid_date", "asOf must be an RFC3339 or YYYY-MM-DD date", middleware.GetRequestID(r.Context()))
		return
	}
	summary, err := h.Service.Summary(r.Context(), at)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "summary_failed", "failed to build compliance summary", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, summary, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleStandardProgress(w http.ResponseWriter, r *http.Request) {
	progress, err := h.Service.StandardProgress(r.Context())
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "progress_failed", "failed to build standard progress", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, progress, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleRiskMatrix(w http.ResponseWriter, r *http.Request) {
	matrix, err := h.Service.Matrix(r.Context())
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "matrix_failed", "failed to build risk matrix", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, matrix, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleDSRSummary(w http.ResponseWriter, r *http.Request) {
	at, ok := asOf(r)
	if !ok {
		api.Fail(w, http.StatusBadRequest, "invalid_date", "asOf must be an RFC3339 or YYYY-MM-DD date", middleware.GetRequestID(r.Context()))
		return
	}
	summary, err := h.Service.DSRSummary(r.Context(), at)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "dsr_summary_failed", "failed to build request summary", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, summary, middleware.GetRequestID(r.Context()))
}
