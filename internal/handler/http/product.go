package http

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/sdk788-art/ec-agent/internal/assistant"
	"github.com/sdk788-art/ec-agent/internal/catalog"
	"github.com/sdk788-art/ec-agent/internal/dataset"
	"github.com/sdk788-art/ec-agent/internal/domain"
	"github.com/sdk788-art/ec-agent/internal/gencache"
	"github.com/sdk788-art/ec-agent/internal/insight"
	"github.com/sdk788-art/ec-agent/internal/session"
	apperrors "github.com/sdk788-art/ec-agent/pkg/errors"
	"github.com/sdk788-art/ec-agent/pkg/httputil"
)

// ProductHandler serves product detail and the generated insight endpoints.
type ProductHandler struct {
	catalog   *catalog.Engine
	insight   *insight.Service
	assistant *assistant.Service
	cache     gencache.Cache
	store     *dataset.Store
	sessions  *session.Manager
	logger    *slog.Logger
}

// NewProductHandler creates a new product handler.
func NewProductHandler(
	engine *catalog.Engine,
	insightSvc *insight.Service,
	assistantSvc *assistant.Service,
	cache gencache.Cache,
	store *dataset.Store,
	sessions *session.Manager,
	logger *slog.Logger,
) *ProductHandler {
	return &ProductHandler{
		catalog:   engine,
		insight:   insightSvc,
		assistant: assistantSvc,
		cache:     cache,
		store:     store,
		sessions:  sessions,
		logger:    logger,
	}
}

// Get handles GET /api/v1/products/{id}.
func (h *ProductHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := httputil.ParseID(w, chi.URLParam(r, "id"))
	if !ok {
		return
	}

	product, found := h.store.ProductByID(id)
	if !found {
		httputil.WriteError(w, r, apperrors.NotFound("product", strconv.FormatInt(id, 10)), h.logger)
		return
	}

	stats := h.catalog.Aggregate([]domain.Product{product})
	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: stats[0]})
}

// ReviewInsightResponse is the payload for GET /api/v1/products/{id}/review-insight.
type ReviewInsightResponse struct {
	ProductID int64                `json:"product_id"`
	SkinType  domain.SkinType      `json:"skin_type"`
	Metrics   domain.ReviewMetrics `json:"metrics"`
	Sample    []domain.Review      `json:"sample"`
	Summary   *string              `json:"summary"`
}

// ReviewInsight handles GET /api/v1/products/{id}/review-insight.
//
// Reviews are sampled from customers with the same base skin type as the
// requesting customer. The generated summary degrades to null when the
// generation service is unavailable; metrics and the sample are always served.
func (h *ProductHandler) ReviewInsight(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, ok := httputil.ParseID(w, chi.URLParam(r, "id"))
	if !ok {
		return
	}
	if !h.store.HasProduct(id) {
		httputil.WriteError(w, r, apperrors.NotFound("product", strconv.FormatInt(id, 10)), h.logger)
		return
	}

	customer, err := resolveCustomer(r, h.store, h.sessions)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	sample, metrics := h.insight.SampleCohortReviews(id, customer.BaseSkinType)

	var summary *string
	if metrics.TotalReviews > 0 {
		key := gencache.ReviewSummaryKey(id, customer.BaseSkinType)
		text := h.generate(ctx, key, func() (string, error) {
			return h.assistant.SummarizeReviews(ctx, customer.BaseSkinType, metrics, sample)
		})
		if text != nil && *text != "" {
			summary = text
		}
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{
		Data: ReviewInsightResponse{
			ProductID: id,
			SkinType:  customer.BaseSkinType,
			Metrics:   metrics,
			Sample:    sample,
			Summary:   summary,
		},
	})
}

// CrossSellResponse is the payload for GET /api/v1/products/{id}/cross-sell.
type CrossSellResponse struct {
	ProductID int64            `json:"product_id"`
	Products  []domain.Product `json:"products"`
	Message   *string          `json:"message"`
}

// CrossSell handles GET /api/v1/products/{id}/cross-sell?top_n=N.
//
// Recommendations come from co-purchase counts only; the generation service
// merely phrases them and the response degrades to a null message when it
// is unavailable.
func (h *ProductHandler) CrossSell(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, ok := httputil.ParseID(w, chi.URLParam(r, "id"))
	if !ok {
		return
	}
	selected, found := h.store.ProductByID(id)
	if !found {
		httputil.WriteError(w, r, apperrors.NotFound("product", strconv.FormatInt(id, 10)), h.logger)
		return
	}

	topN := insight.DefaultCrossSellCount
	if raw := r.URL.Query().Get("top_n"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil || v < 1 || v > 20 {
			httputil.WriteError(w, r, apperrors.InvalidInput("top_n must be between 1 and 20"), h.logger)
			return
		}
		topN = v
	}

	products := h.insight.RankCoPurchases(id, topN)

	var message *string
	if len(products) > 0 {
		customer, err := resolveCustomer(r, h.store, h.sessions)
		if err != nil {
			httputil.WriteError(w, r, err, h.logger)
			return
		}
		key := gencache.CrossSellKey(id, customer.ID)
		text := h.generate(ctx, key, func() (string, error) {
			return h.assistant.CrossSellMessage(ctx, selected, products, customer.SkinConcerns)
		})
		if text != nil && *text != "" {
			message = text
		}
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{
		Data: CrossSellResponse{
			ProductID: id,
			Products:  products,
			Message:   message,
		},
	})
}

// generate returns cached text for key, calling gen on a miss and storing the
// result. Returns nil when generation fails; cache errors are logged and
// treated as misses so the cache backend can never take the endpoint down.
func (h *ProductHandler) generate(ctx context.Context, key string, gen func() (string, error)) *string {
	if text, hit, err := h.cache.Get(ctx, key); err != nil {
		h.logger.WarnContext(ctx, "generated text cache read failed",
			slog.String("key", key),
			slog.String("error", err.Error()),
		)
	} else if hit {
		return &text
	}

	text, err := gen()
	if err != nil {
		h.logger.WarnContext(ctx, "text generation degraded",
			slog.String("key", key),
			slog.String("error", err.Error()),
		)
		return nil
	}

	if err := h.cache.Set(ctx, key, text); err != nil {
		h.logger.WarnContext(ctx, "generated text cache write failed",
			slog.String("key", key),
			slog.String("error", err.Error()),
		)
	}
	return &text
}
