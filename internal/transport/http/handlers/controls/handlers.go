package controlshandler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"grc/internal/domain/audit"
	"grc/internal/domain/auth"
	"grc/internal/domain/controls"
	"grc/internal/domain/standards"
	"grc/internal/transport/http/api"
	"grc/internal/transport/http/middleware"
	"grc/internal/transport/http/shared"
)

type Handler struct {
	Service *controls.Service
	Store   controls.StoreAPI
	Perms   middleware.PermissionStore
	Audit   *audit.Service
}

func NewHandler(service *controls.Service, store controls.StoreAPI, perms middleware.PermissionStore, auditSvc *audit.Service) *Handler {
	return &Handler{Service: service, Store: store, Perms: perms, Audit: auditSvc}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/controls", func(r chi.Router) {
		r.With(middleware.RequirePermission(auth.PermControlsRead, h.Perms)).Get("/", h.handleList)
		r.With(middleware.RequirePermission(auth.PermControlsRead, h.Perms)).Get("/{instanceID}", h.handleGet)
		r.With(middleware.RequirePermission(auth.PermControlsWrite, h.Perms)).Post("/{libraryControlID}/activate", h.handleActivate)
		r.With(middleware.RequirePermission(auth.PermControlsWrite, h.Perms)).Post("/{instanceID}/evidence", h.handleRecordEvidence)
		r.With(middleware.RequirePermission(auth.PermControlsRead, h.Perms)).Get("/{instanceID}/evidence", h.handleListEvidence)
		r.With(middleware.RequirePermission(auth.PermControlsWrite, h.Perms)).Post("/{instanceID}/deactivate", h.handleDeactivate)
	})
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	filter := controls.Filter{
		StandardID: r.URL.Query().Get("standardId"),
		Status:     r.URL.Query().Get("status"),
		ActiveOnly: r.URL.Query().Get("active") == "true",
	}
	page := shared.ParsePagination(r, 50, 200)

	list, err := h.Store.List(r.Context(), filter, page.Limit, page.Offset)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "controls_failed", "failed to list control instances", middleware.GetRequestID(r.Context()))
		return
	}
	total, err := h.Store.Count(r.Context(), filter)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "controls_failed", "failed to count control instances", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, map[string]any{"items": list, "total": total, "limit": page.Limit, "offset": page.Offset}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	instance, err := h.Store.Get(r.Context(), chi.URLParam(r, "instanceID"))
	if err != nil {
		if errors.Is(err, controls.ErrControlNotFound) {
			api.Fail(w, http.StatusNotFound, "not_found", "control instance not found", middleware.GetRequestID(r.Context()))
			return
		}
		api.Fail(w, http.StatusInternalServerError, "control_failed", "failed to load control instance", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, instance, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleActivate(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", middleware.GetRequestID(r.Context()))
		return
	}

	var payload controls.ActivateInput
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}

	libraryControlID := chi.URLParam(r, "libraryControlID")
	instance, err := h.Service.Activate(r.Context(), libraryControlID, payload, time.Now().UTC())
	if err != nil {
		if shared.WriteDomainError(w, err, middleware.GetRequestID(r.Context())) {
			return
		}
		switch {
		case errors.Is(err, standards.ErrControlNotFound):
			api.Fail(w, http.StatusNotFound, "not_found", "library control not found", middleware.GetRequestID(r.Context()))
		case errors.Is(err, controls.ErrAlreadyActivated):
			api.Fail(w, http.StatusConflict, "already_activated", "library control is already activated", middleware.GetRequestID(r.Context()))
		default:
			api.Fail(w, http.StatusInternalServerError, "activate_failed", "failed to activate control", middleware.GetRequestID(r.Context()))
		}
		return
	}

	if err := h.Audit.Record(r.Context(), user.UserID, "control.activate", "control_instance", instance.ID, middleware.GetRequestID(r.Context()), shared.ClientIP(r), nil, instance); err != nil {
		slog.Warn("audit control.activate failed", "err", err)
	}
	api.Created(w, instance, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleRecordEvidence(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", middleware.GetRequestID(r.Context()))
		return
	}

	var payload controls.EvidenceInput
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}

	instanceID := chi.URLParam(r, "instanceID")
	before, err := h.Store.Get(r.Context(), instanceID)
	if err != nil {
		if errors.Is(err, controls.ErrControlNotFound) {
			api.Fail(w, http.StatusNotFound, "not_found", "control instance not found", middleware.GetRequestID(r.Context()))
			return
		}
		api.Fail(w, http.StatusInternalServerError, "control_failed", "failed to load control instance", middleware.GetRequestID(r.Context()))
		return
	}

	updated, entry, err := h.Service.RecordEvidence(r.Context(), instanceID, user.UserID, payload, time.Now().UTC())
	if err != nil {
		if shared.WriteDomainError(w, err, middleware.GetRequestID(r.Context())) {
			return
		}
		api.Fail(w, http.StatusInternalServerError, "evidence_failed", "failed to record evidence", middleware.GetRequestID(r.Context()))
		return
	}

	if err := h.Audit.Record(r.Context(), user.UserID, "control.evidence", "control_instance", instanceID, middleware.GetRequestID(r.Context()), shared.ClientIP(r), before, updated); err != nil {
		slog.Warn("audit control.evidence failed", "err", err)
	}
	api.Created(w, map[string]any{"instance": updated, "evidence": entry}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleListEvidence(w http.ResponseWriter, r *http.Request) {
	instanceID := chi.URLParam(r, "instanceID")
	page := shared.ParsePagination(r, 50, 200)

	entries, err := h.Store.ListEvidence(r.Context(), instanceID, page.Limit, page.Offset)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "evidence_failed", "failed to list evidence", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, entries, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleDeactivate(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", middleware.GetRequestID(r.Context()))
		return
	}

	instanceID := chi.URLParam(r, "instanceID")
	before, err := h.Store.Get(r.Context(), instanceID)
	if err != nil {
		if errors.Is(err, controls.ErrControlNotFound) {
			api.Fail(w, http.StatusNotFound, "not_found", "control instance not found", middleware.GetRequestID(r.Context()))
			return
		}
		api.Fail(w, http.StatusInternalServerError, "control_failed", "failed to load control instance", middleware.GetRequestID(r.Context()))
		return
	}

	if err := h.Service.Deactivate(r.Context(), instanceID); err != nil {
		api.Fail(w, http.StatusInternalServerError, "deactivate_failed", "failed to deactivate control", middleware.GetRequestID(r.Context()))
		return
	}

	if err := h.Audit.Record(r.Context(), user.UserID, "control.deactivate", "control_instance", instanceID, middleware.GetRequestID(r.Context()), shared.ClientIP(r), before, nil); err != nil {
		slog.Warn("audit control.deactivate failed", "err", err)
	}
	api.Success(w, map[string]string{"status": "deactivated"}, middleware.GetRequestID(r.Context()))
}
