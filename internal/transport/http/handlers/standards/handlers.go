package standardshandler

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"grc/internal/domain/auth"
	"grc/internal/domain/standards"
	"grc/internal/transport/http/api"
	"grc/internal/transport/http/middleware"
)

type Handler struct {
	Store *standards.Store
	Perms middleware.PermissionStore
}

func NewHandler(store *standards.Store, perms middleware.PermissionStore) *Handler {
	return &Handler{Store: store, Perms: perms}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/standards", func(r chi.Router) {
		r.With(middleware.RequirePermission(auth.PermControlsRead, h.Perms)).Get("/", h.handleList)
		r.With(middleware.RequirePermission(auth.PermControlsRead, h.Perms)).Get("/{standardID}/controls", h.handleListControls)
	})
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	list, err := h.Store.ListStandards(r.Context())
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "standards_failed", "failed to list standards", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, list, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleListControls(w http.ResponseWriter, r *http.Request) {
	standardID := chi.URLParam(r, "standardID")
	list, err := h.Store.ListControls(r.Context(), standardID)
	if err != nil {
		if errors.Is(err, standards.ErrControlNotFound) {
			api.Fail(w, http.StatusNotFound, "not_found", "standard not found", middleware.GetRequestID(r.Context()))
			return
		}
		api.Fail(w, http.StatusInternalServerError, "controls_failed", "failed to list library controls", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, list, middleware.GetRequestID(r.Context()))
}
