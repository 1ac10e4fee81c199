package http

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/MisakSofoyan1/product-app/internal/controller"
	"github.com/MisakSofoyan1/product-app/internal/domain"
	"github.com/MisakSofoyan1/product-app/internal/filter"
	"github.com/MisakSofoyan1/product-app/internal/service"
	apperrors "github.com/MisakSofoyan1/product-app/pkg/errors"
	"github.com/MisakSofoyan1/product-app/pkg/httputil"
	"github.com/MisakSofoyan1/product-app/pkg/validator"
)

// SessionHandler serves the browsing session endpoints.
type SessionHandler struct {
	service     *service.SessionService
	logger      *slog.Logger
	waitTimeout time.Duration
}

const defaultWaitTimeout = 10 * time.Second

// NewSessionHandler creates a session HTTP handler. waitTimeout bounds how
// long ?wait=true blocks for outstanding fetches.
func NewSessionHandler(svc *service.SessionService, logger *slog.Logger, waitTimeout time.Duration) *SessionHandler {
	if waitTimeout <= 0 {
		waitTimeout = defaultWaitTimeout
	}
	return &SessionHandler{
		service:     svc,
		logger:      logger,
		waitTimeout: waitTimeout,
	}
}

// --- Request DTOs ---

// ToggleRequest selects or deselects a category or brand.
type ToggleRequest struct {
	Dimension string `json:"dimension" validate:"required,oneof=category brand"`
	Value     string `json:"value"`
}

// DragRequest moves one slider handle.
type DragRequest struct {
	Handle string   `json:"handle" validate:"required,oneof=low high"`
	Value  *float64 `json:"value" validate:"required"`
}

// PageRequest moves to another page.
type PageRequest struct {
	Page int `json:"page" validate:"gte=1"`
}

// LimitRequest changes the page size.
type LimitRequest struct {
	Limit int `json:"limit" validate:"required,oneof=6 10 20 50"`
}

// --- Response DTOs ---

// SessionResponse is the body returned by every session endpoint.
type SessionResponse struct {
	ID        string          `json:"id"`
	CreatedAt time.Time       `json:"createdAt"`
	View      controller.View `json:"view"`
}

// --- Handlers ---

// Create handles POST /api/v1/sessions
func (h *SessionHandler) Create(w http.ResponseWriter, r *http.Request) {
	sess := h.service.Create(r.Context())
	h.respond(w, r, http.StatusCreated, sess, sess.Controller.Snapshot())
}

// Get handles GET /api/v1/sessions/{id}
func (h *SessionHandler) Get(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.session(w, r)
	if !ok {
		return
	}
	h.respond(w, r, http.StatusOK, sess, sess.Controller.Snapshot())
}

// Delete handles DELETE /api/v1/sessions/{id}
func (h *SessionHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Toggle handles POST /api/v1/sessions/{id}/filters/toggle
func (h *SessionHandler) Toggle(w http.ResponseWriter, r *http.Request) {
	var req ToggleRequest
	if !decode(w, r, &req) {
		return
	}
	h.act(w, r, func(ctx context.Context, c *controller.Controller) (controller.State, error) {
		return c.Toggle(ctx, domain.Dimension(req.Dimension), req.Value)
	})
}

// ClearAll handles POST /api/v1/sessions/{id}/filters/clear
func (h *SessionHandler) ClearAll(w http.ResponseWriter, r *http.Request) {
	h.act(w, r, func(ctx context.Context, c *controller.Controller) (controller.State, error) {
		return c.ClearAll(ctx), nil
	})
}

// Drag handles POST /api/v1/sessions/{id}/ranges/{dimension}/drag
func (h *SessionHandler) Drag(w http.ResponseWriter, r *http.Request) {
	dim, ok := rangeDimension(w, r)
	if !ok {
		return
	}
	var req DragRequest
	if !decode(w, r, &req) {
		return
	}
	h.act(w, r, func(ctx context.Context, c *controller.Controller) (controller.State, error) {
		return c.Drag(ctx, dim, filter.Handle(req.Handle), *req.Value)
	})
}

// Commit handles POST /api/v1/sessions/{id}/ranges/{dimension}/commit
func (h *SessionHandler) Commit(w http.ResponseWriter, r *http.Request) {
	dim, ok := rangeDimension(w, r)
	if !ok {
		return
	}
	h.act(w, r, func(ctx context.Context, c *controller.Controller) (controller.State, error) {
		return c.Commit(ctx, dim)
	})
}

// ClearRange handles DELETE /api/v1/sessions/{id}/ranges/{dimension}
func (h *SessionHandler) ClearRange(w http.ResponseWriter, r *http.Request) {
	dim, ok := rangeDimension(w, r)
	if !ok {
		return
	}
	h.act(w, r, func(ctx context.Context, c *controller.Controller) (controller.State, error) {
		return c.ClearRange(ctx, dim)
	})
}

// SetPage handles PUT /api/v1/sessions/{id}/page
func (h *SessionHandler) SetPage(w http.ResponseWriter, r *http.Request) {
	var req PageRequest
	if !decode(w, r, &req) {
		return
	}
	h.act(w, r, func(ctx context.Context, c *controller.Controller) (controller.State, error) {
		return c.SetPage(ctx, req.Page)
	})
}

// SetLimit handles PUT /api/v1/sessions/{id}/limit
func (h *SessionHandler) SetLimit(w http.ResponseWriter, r *http.Request) {
	var req LimitRequest
	if !decode(w, r, &req) {
		return
	}
	h.act(w, r, func(ctx context.Context, c *controller.Controller) (controller.State, error) {
		return c.SetLimit(ctx, req.Limit)
	})
}

// RefreshFacets handles POST /api/v1/sessions/{id}/facets/refresh
func (h *SessionHandler) RefreshFacets(w http.ResponseWriter, r *http.Request) {
	h.act(w, r, func(ctx context.Context, c *controller.Controller) (controller.State, error) {
		return c.RefreshFacets(ctx), nil
	})
}

// --- Helpers ---

type action func(ctx context.Context, c *controller.Controller) (controller.State, error)

func (h *SessionHandler) act(w http.ResponseWriter, r *http.Request, fn action) {
	sess, ok := h.session(w, r)
	if !ok {
		return
	}

	state, err := fn(r.Context(), sess.Controller)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	h.respond(w, r, http.StatusOK, sess, state)
}

func (h *SessionHandler) session(w http.ResponseWriter, r *http.Request) (*service.Session, bool) {
	sess, err := h.service.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return nil, false
	}
	return sess, true
}

// respond writes the session view. With ?wait=true it first waits for
// outstanding fetches; when the wait times out the current view is sent.
func (h *SessionHandler) respond(w http.ResponseWriter, r *http.Request, status int, sess *service.Session, state controller.State) {
	if wait, _ := strconv.ParseBool(r.URL.Query().Get("wait")); wait {
		ctx, cancel := context.WithTimeout(r.Context(), h.waitTimeout)
		defer cancel()
		state, _ = sess.Controller.Settle(ctx)
	}

	httputil.WriteData(w, status, SessionResponse{
		ID:        sess.ID,
		CreatedAt: sess.CreatedAt,
		View:      controller.BuildView(state),
	})
}

const maxBodyBytes = 1 << 20

func decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := validator.DecodeAndValidate(r, dst); err != nil {
		httputil.WriteValidationError(w, err)
		return false
	}
	return true
}

func rangeDimension(w http.ResponseWriter, r *http.Request) (domain.Dimension, bool) {
	raw := chi.URLParam(r, "dimension")
	dim, err := domain.ParseDimension(raw)
	if err == nil && !dim.IsRange() {
		err = fmt.Errorf("dimension %q is not a range", raw)
	}
	if err != nil {
		httputil.WriteError(w, r, apperrors.InvalidInput(err.Error()), nil)
		return "", false
	}
	return dim, true
}
