package http

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/sdk788-art/ec-agent/internal/dataset"
	"github.com/sdk788-art/ec-agent/internal/domain"
	apperrors "github.com/sdk788-art/ec-agent/pkg/errors"
	"github.com/sdk788-art/ec-agent/pkg/httputil"
)

// CustomerHandler serves the customer directory used to pick a login identity.
type CustomerHandler struct {
	store  *dataset.Store
	logger *slog.Logger
}

// NewCustomerHandler creates a new customer handler.
func NewCustomerHandler(store *dataset.Store, logger *slog.Logger) *CustomerHandler {
	return &CustomerHandler{store: store, logger: logger}
}

type customerView struct {
	domain.Customer
	DisplayName string `json:"display_name"`
}

// List handles GET /api/v1/customers.
func (h *CustomerHandler) List(w http.ResponseWriter, r *http.Request) {
	customers := h.store.Customers()
	views := make([]customerView, 0, len(customers))
	for _, c := range customers {
		views = append(views, customerView{Customer: c, DisplayName: c.DisplayName()})
	}
	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: views})
}

// Get handles GET /api/v1/customers/{id}.
func (h *CustomerHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := httputil.ParseID(w, chi.URLParam(r, "id"))
	if !ok {
		return
	}

	customer, found := h.store.CustomerByID(id)
	if !found {
		httputil.WriteError(w, r, apperrors.NotFound("customer", strconv.FormatInt(id, 10)), h.logger)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, httputil.Response{
		Data: customerView{Customer: customer, DisplayName: customer.DisplayName()},
	})
}
