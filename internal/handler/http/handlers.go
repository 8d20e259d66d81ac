package http

import (
	"net/http"
	"strconv"

	"github.com/sdk788-art/ec-agent/internal/dataset"
	"github.com/sdk788-art/ec-agent/internal/domain"
	"github.com/sdk788-art/ec-agent/internal/session"
	apperrors "github.com/sdk788-art/ec-agent/pkg/errors"
)

// resolveCustomer picks the customer a personalized request runs for.
// An explicit customer_id query parameter wins; otherwise the active
// session's customer is used.
func resolveCustomer(r *http.Request, store *dataset.Store, sessions *session.Manager) (domain.Customer, error) {
	if raw := r.URL.Query().Get("customer_id"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || id < 1 {
			return domain.Customer{}, apperrors.InvalidInput("invalid customer_id: " + raw)
		}
		customer, ok := store.CustomerByID(id)
		if !ok {
			return domain.Customer{}, apperrors.NotFound("customer", raw)
		}
		return customer, nil
	}

	if state, ok := sessions.Current(); ok {
		return state.Customer, nil
	}
	return domain.Customer{}, apperrors.InvalidInput("customer_id is required when no customer is logged in")
}
