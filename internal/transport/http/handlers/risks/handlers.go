package riskshandler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"grc/internal/domain/audit"
	"grc/internal/domain/auth"
	"grc/internal/domain/risks"
	"grc/internal/transport/http/api"
	"grc/internal/transport/http/middleware"
	"grc/internal/transport/http/shared"
)

type Handler struct {
	Service *risks.Service
	Store   risks.StoreAPI
	Perms   middleware.PermissionStore
	Audit   *audit.Service
}

func NewHandler(service *risks.Service, store risks.StoreAPI, perms middleware.PermissionStore, auditSvc *audit.Service) *Handler {
	return &Handler{Service: service, Store: store, Perms: perms, Audit: auditSvc}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/risks", func(r chi.Router) {
		r.With(middleware.RequirePermission(auth.PermRisksRead, h.Perms)).Get("/", h.handleList)
		r.With(middleware.RequirePermission(auth.PermRisksRead, h.Perms)).Get("/{riskID}", h.handleGet)
		r.With(middleware.RequirePermission(auth.PermRisksWrite, h.Perms)).Post("/", h.handleCreate)
		r.With(middleware.RequirePermission(auth.PermRisksWrite, h.Perms)).Put("/{riskID}", h.handleUpdate)
		r.With(middleware.RequirePermission(auth.PermRisksWrite, h.Perms)).Post("/{riskID}/status", h.handleChangeStatus)
	})
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	filter := risks.Filter{
		Status:   r.URL.Query().Get("status"),
		Category: r.URL.Query().Get("category"),
	}
	page := shared.ParsePagination(r, 50, 200)

	list, err := h.Store.List(r.Context(), filter, page.Limit, page.Offset)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "risks_failed", "failed to list risk assessments", middleware.GetRequestID(r.Context()))
		return
	}
	total, err := h.Store.Count(r.Context(), filter)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "risks_failed", "failed to count risk assessments", middleware.GetRequestID(r.Context()))
		return
	}

	scored := make([]risks.ScoredRisk, 0, len(list))
	for _, assessment := range list {
		scored = append(scored, risks.Scored(assessment))
	}
	api.Success(w, map[string]any{"items": scored, "total": total, "limit": page.Limit, "offset": page.Offset}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	assessment, err := h.Store.Get(r.Context(), chi.URLParam(r, "riskID"))
	if err != nil {
		if errors.Is(err, risks.ErrRiskNotFound) {
			api.Fail(w, http.StatusNotFound, "not_found", "risk assessment not found", middleware.GetRequestID(r.Context()))
			return
		}
		api.Fail(w, http.StatusInternalServerError, "risk_failed", "failed to load risk assessment", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, risks.Scored(assessment), middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", middleware.GetRequestID(r.Context()))
		return
	}

	var payload risks.RiskAssessment
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}

	created, err := h.Service.Create(r.Context(), payload)
	if err != nil {
		if shared.WriteDomainError(w, err, middleware.GetRequestID(r.Context())) {
			return
		}
		api.Fail(w, http.StatusInternalServerError, "risk_create_failed", "failed to create risk assessment", middleware.GetRequestID(r.Context()))
		return
	}

	if err := h.Audit.Record(r.Context(), user.UserID, "risk.create", "risk_assessment", created.ID, middleware.GetRequestID(r.Context()), shared.ClientIP(r), nil, created); err != nil {
		slog.Warn("audit risk.create failed", "err", err)
	}
	api.Created(w, created, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", middleware.GetRequestID(r.Context()))
		return
	}

	var payload risks.RiskAssessment
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}

	riskID := chi.URLParam(r, "riskID")
	before, err := h.Store.Get(r.Context(), riskID)
	if err != nil {
		if errors.Is(err, risks.ErrRiskNotFound) {
			api.Fail(w, http.StatusNotFound, "not_found", "risk assessment not found", middleware.GetRequestID(r.Context()))
			return
		}
		api.Fail(w, http.StatusInternalServerError, "risk_failed", "failed to load risk assessment", middleware.GetRequestID(r.Context()))
		return
	}

	updated, err := h.Service.Update(r.Context(), riskID, payload)
	if err != nil {
		if shared.WriteDomainError(w, err, middleware.GetRequestID(r.Context())) {
			return
		}
		api.Fail(w, http.StatusInternalServerError, "risk_update_failed", "failed to update risk assessment", middleware.GetRequestID(r.Context()))
		return
	}

	if err := h.Audit.Record(r.Context(), user.UserID, "risk.update", "risk_assessment", riskID, middleware.GetRequestID(r.Context()), shared.ClientIP(r), before, updated); err != nil {
		slog.Warn("audit risk.update failed", "err", err)
	}
	api.Success(w, updated, middleware.GetRequestID(r.Context()))
}

type statusChangeRequest struct {
	Status string `json:"status"`
}

func (h *Handler) handleChangeStatus(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", middleware.GetRequestID(r.Context()))
		return
	}

	var payload statusChangeRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}

	riskID := chi.URLParam(r, "riskID")
	before, err := h.Store.Get(r.Context(), riskID)
	if err != nil {
		if errors.Is(err, risks.ErrRiskNotFound) {
			api.Fail(w, http.StatusNotFound, "not_found", "risk assessment not found", middleware.GetRequestID(r.Context()))
			return
		}
		api.Fail(w, http.StatusInternalServerError, "risk_failed", "failed to load risk assessment", middleware.GetRequestID(r.Context()))
		return
	}

	updated, err := h.Service.ChangeStatus(r.Context(), riskID, payload.Status)
	if err != nil {
		if shared.WriteDomainError(w, err, middleware.GetRequestID(r.Context())) {
			return
		}
		api.Fail(w, http.StatusInternalServerError, "risk_status_failed", "failed to change risk status", middleware.GetRequestID(r.Context()))
		return
	}

	if err := h.Audit.Record(r.Context(), user.UserID, "risk.status", "risk_assessment", riskID, middleware.GetRequestID(r.Context()), shared.ClientIP(r), map[string]string{"status": before.Status}, map[string]string{"status": updated.Status}); err != nil {
		slog.Warn("audit risk.status failed", "err", err)
	}
	api.Success(w, updated, middleware.GetRequestID(r.Context()))
}
