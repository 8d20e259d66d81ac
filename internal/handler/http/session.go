package http

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/sdk788-art/ec-agent/internal/dataset"
	"github.com/sdk788-art/ec-agent/internal/session"
	apperrors "github.com/sdk788-art/ec-agent/pkg/errors"
	"github.com/sdk788-art/ec-agent/pkg/httputil"
	"github.com/sdk788-art/ec-agent/pkg/validator"
)

// SessionHandler manages the single active shopping session.
type SessionHandler struct {
	sessions *session.Manager
	store    *dataset.Store
	logger   *slog.Logger
}

// NewSessionHandler creates a new session handler.
func NewSessionHandler(sessions *session.Manager, store *dataset.Store, logger *slog.Logger) *SessionHandler {
	return &SessionHandler{sessions: sessions, store: store, logger: logger}
}

// LoginRequest is the payload for POST /api/v1/session/login.
type LoginRequest struct {
	CustomerID int64 `json:"customer_id" validate:"required,min=1"`
}

// Login handles POST /api/v1/session/login.
func (h *SessionHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := validator.DecodeAndValidate(r, &req); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	customer, found := h.store.CustomerByID(req.CustomerID)
	if !found {
		httputil.WriteError(w, r,
			apperrors.NotFound("customer", strconv.FormatInt(req.CustomerID, 10)), h.logger)
		return
	}

	if err := h.sessions.Login(r.Context(), customer); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	state, _ := h.sessions.Current()
	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: state})
}

// Logout handles POST /api/v1/session/logout.
func (h *SessionHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.sessions.Logout(r.Context()); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, httputil.Response{
		Data: map[string]string{"status": "logged out"},
	})
}

// Current handles GET /api/v1/session.
func (h *SessionHandler) Current(w http.ResponseWriter, r *http.Request) {
	state, ok := h.sessions.Current()
	if !ok {
		httputil.WriteError(w, r, apperrors.NotFound("session", "active"), h.logger)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: state})
}

// AddToCart handles POST /api/v1/session/cart/{productID}.
func (h *SessionHandler) AddToCart(w http.ResponseWriter, r *http.Request) {
	id, ok := httputil.ParseID(w, chi.URLParam(r, "productID"))
	if !ok {
		return
	}
	if !h.store.HasProduct(id) {
		httputil.WriteError(w, r, apperrors.NotFound("product", strconv.FormatInt(id, 10)), h.logger)
		return
	}

	if err := h.sessions.AddToCart(id); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	cart, err := h.sessions.Cart()
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, httputil.Response{
		Data: map[string]any{"cart": cart},
	})
}

// Cart handles GET /api/v1/session/cart.
func (h *SessionHandler) Cart(w http.ResponseWriter, r *http.Request) {
	cart, err := h.sessions.Cart()
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, httputil.Response{
		Data: map[string]any{"cart": cart},
	})
}
