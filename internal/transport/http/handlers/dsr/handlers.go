package dsrhandler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"grc/internal/domain/audit"
	"grc/internal/domain/auth"
	"grc/internal/domain/dsr"
	"grc/internal/transport/http/api"
	"grc/internal/transport/http/middleware"
	"grc/internal/transport/http/shared"
)

type Handler struct {
	Service *dsr.Service
	Store   dsr.StoreAPI
	Perms   middleware.PermissionStore
	Audit   *audit.Service
}

func NewHandler(service *dsr.Service, store dsr.StoreAPI, perms middleware.PermissionStore, auditSvc *audit.Service) *Handler {
	return &Handler{Service: service, Store: store, Perms: perms, Audit: auditSvc}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/dsr", func(r chi.Router) {
		r.With(middleware.RequirePermission(auth.PermDSRRead, h.Perms)).Get("/", h.handleList)
		r.With(middleware.RequirePermission(auth.PermDSRRead, h.Perms)).Get("/{requestID}", h.handleGet)
		r.With(middleware.RequirePermission(auth.PermDSRWrite, h.Perms)).Post("/", h.handleCreate)
		r.With(middleware.RequirePermission(auth.PermDSRWrite, h.Perms)).Post("/{requestID}/status", h.handleChangeStatus)
	})
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	filter := dsr.Filter{
		Status:      r.URL.Query().Get("status"),
		RequestType: r.URL.Query().Get("type"),
	}
	v := shared.NewValidator()
	v.Enum("type", filter.RequestType, dsr.RequestTypes, "must be a known request type")
	if v.Reject(w, middleware.GetRequestID(r.Context())) {
		return
	}
	page := shared.ParsePagination(r, 50, 200)

	list, err := h.Store.List(r.Context(), filter, page.Limit, page.Offset)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "dsr_failed", "failed to list requests", middleware.GetRequestID(r.Context()))
		return
	}
	total, err := h.Store.Count(r.Context(), filter)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "dsr_failed", "failed to count requests", middleware.GetRequestID(r.Context()))
		return
	}

	now := time.Now().UTC()
	views := make([]dsr.RequestView, 0, len(list))
	for _, request := range list {
		views = append(views, dsr.View(request, now))
	}
	api.Success(w, map[string]any{"items": views, "total": total, "limit": page.Limit, "offset": page.Offset}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	request, err := h.Store.Get(r.Context(), chi.URLParam(r, "requestID"))
	if err != nil {
		if errors.Is(err, dsr.ErrRequestNotFound) {
			api.Fail(w, http.StatusNotFound, "not_found", "request not found", middleware.GetRequestID(r.Context()))
			return
		}
		api.Fail(w, http.StatusInternalServerError, "dsr_failed", "failed to load request", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, dsr.View(request, time.Now().UTC()), middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", middleware.GetRequestID(r.Context()))
		return
	}

	var payload dsr.CreateInput
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}

	created, err := h.Service.Create(r.Context(), payload, time.Now().UTC())
	if err != nil {
		if shared.WriteDomainError(w, err, middleware.GetRequestID(r.Context())) {
			return
		}
		api.Fail(w, http.StatusInternalServerError, "dsr_create_failed", "failed to create request", middleware.GetRequestID(r.Context()))
		return
	}

	if err := h.Audit.Record(r.Context(), user.UserID, "dsr.create", "dsr_request", created.ID, middleware.GetRequestID(r.Context()), shared.ClientIP(r), nil, created); err != nil {
		slog.Warn("audit dsr.create failed", "err", err)
	}
	api.Created(w, created, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleChangeStatus(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", middleware.GetRequestID(r.Context()))
		return
	}

	var payload dsr.TransitionInput
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}

	requestID := chi.URLParam(r, "requestID")
	before, err := h.Store.Get(r.Context(), requestID)
	if err != nil {
		if errors.Is(err, dsr.ErrRequestNotFound) {
			api.Fail(w, http.StatusNotFound, "not_found", "request not found", middleware.GetRequestID(r.Context()))
			return
		}
		api.Fail(w, http.StatusInternalServerError, "dsr_failed", "failed to load request", middleware.GetRequestID(r.Context()))
		return
	}

	updated, err := h.Service.ChangeStatus(r.Context(), requestID, payload, time.Now().UTC())
	if err != nil {
		if shared.WriteDomainError(w, err, middleware.GetRequestID(r.Context())) {
			return
		}
		api.Fail(w, http.StatusInternalServerError, "dsr_status_failed", "failed to change request status", middleware.GetRequestID(r.Context()))
		return
	}

	if err := h.Audit.Record(r.Context(), user.UserID, "dsr.status", "dsr_request", requestID, middleware.GetRequestID(r.Context()), shared.ClientIP(r), map[string]string{"status": before.Status}, map[string]string{"status": updated.Status}); err != nil {
		slog.Warn("audit dsr.status failed", "err", err)
	}
	api.Success(w, updated, middleware.GetRequestID(r.Context()))
}
