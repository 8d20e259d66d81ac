package http

import (
	"log/slog"
	"net/http"
	"strings"
	"unicode/utf8"

	"github.com/sdk788-art/ec-agent/internal/assistant"
	"github.com/sdk788-art/ec-agent/internal/catalog"
	"github.com/sdk788-art/ec-agent/internal/dataset"
	"github.com/sdk788-art/ec-agent/internal/domain"
	"github.com/sdk788-art/ec-agent/internal/session"
	apperrors "github.com/sdk788-art/ec-agent/pkg/errors"
	"github.com/sdk788-art/ec-agent/pkg/httputil"
	"github.com/sdk788-art/ec-agent/pkg/pagination"
)

// SearchHandler handles natural-language product search.
type SearchHandler struct {
	assistant *assistant.Service
	catalog   *catalog.Engine
	store     *dataset.Store
	sessions  *session.Manager
	logger    *slog.Logger
}

// NewSearchHandler creates a new search handler.
func NewSearchHandler(
	assistantSvc *assistant.Service,
	engine *catalog.Engine,
	store *dataset.Store,
	sessions *session.Manager,
	logger *slog.Logger,
) *SearchHandler {
	return &SearchHandler{
		assistant: assistantSvc,
		catalog:   engine,
		store:     store,
		sessions:  sessions,
		logger:    logger,
	}
}

// SearchResponse is the payload for GET /api/v1/search.
type SearchResponse struct {
	Query    string                                 `json:"query"`
	Intent   domain.SearchIntent                    `json:"intent"`
	Products pagination.Result[catalog.ProductStats] `json:"products"`
}

// Search handles GET /api/v1/search?q=...&customer_id=...
//
// The free-text query is normalized into a structured intent by the
// generation service, then resolved against the catalog deterministically.
// The same query always yields the same candidate set for a given customer.
func (h *SearchHandler) Search(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	query := strings.TrimSpace(r.URL.Query().Get("q"))
	if query == "" {
		httputil.WriteError(w, r, apperrors.InvalidInput("query parameter q is required"), h.logger)
		return
	}
	if utf8.RuneCountInString(query) > assistant.MaxQueryLength {
		httputil.WriteError(w, r, apperrors.InvalidInput("query exceeds maximum length"), h.logger)
		return
	}

	customer, err := resolveCustomer(r, h.store, h.sessions)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	intent, err := h.assistant.NormalizeIntent(ctx, query)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	results := h.catalog.Search(intent, customer)

	if state, ok := h.sessions.Current(); ok && state.Customer.ID == customer.ID {
		if err := h.sessions.TrackQuery(ctx, query, intent); err != nil {
			h.logger.WarnContext(ctx, "failed to track query", slog.String("error", err.Error()))
		}
	}

	params := pagination.FromRequest(r)
	page := paginate(results, params)

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{
		Data: SearchResponse{
			Query:    query,
			Intent:   intent,
			Products: pagination.NewResult(page, len(results), params),
		},
	})
}

// paginate slices an in-memory result set according to the given params.
func paginate[T any](items []T, params pagination.Params) []T {
	if params.Offset >= len(items) {
		return []T{}
	}
	end := params.Offset + params.PerPage
	if end > len(items) {
		end = len(items)
	}
	return items[params.Offset:end]
}
