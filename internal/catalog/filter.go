package catalog

import (
	"log/slog"

	"github.com/sdk788-art/ec-agent/internal/dataset"
	"github.com/sdk788-art/ec-agent/internal/domain"
)

// Engine filters the catalog for a customer and annotates the result with
// review and sales aggregates. All operations are pure functions of the
// immutable dataset plus their parameters: the same (intent, customer) pair
// always yields the same result, which makes boundary-level caching safe.
type Engine struct {
	store  *dataset.Store
	logger *slog.Logger
}

// NewEngine creates a catalog engine over the given dataset.
func NewEngine(store *dataset.Store, logger *slog.Logger) *Engine {
	return &Engine{
		store:  store,
		logger: logger,
	}
}

// Filter narrows the catalog through three sequential stages:
//
//  1. category: exact product type match, skipped when the intent has none
//  2. skin type: the product's target skin types must contain the customer's
//     base skin type (always applied)
//  3. concerns: the union of the intent's and the customer's concerns must
//     intersect the product's target concerns; a no-op when the union is empty
//
// Each stage only removes products, so the result is always a subset of the
// previous stage. Catalog order is preserved; an empty result is valid.
func (e *Engine) Filter(intent domain.SearchIntent, customer domain.Customer) []domain.Product {
	result := e.store.Products()

	if intent.HasProductType() {
		result = keep(result, func(p domain.Product) bool {
			return p.Type == intent.ProductType
		})
	}

	result = keep(result, func(p domain.Product) bool {
		return p.TargetSkinTypes.Contains(customer.BaseSkinType)
	})

	effective := intent.Concerns.Union(customer.SkinConcerns)
	if len(effective) > 0 {
		result = keep(result, func(p domain.Product) bool {
			return p.TargetConcerns.Intersects(effective)
		})
	}

	e.logger.Debug("catalog filtered",
		slog.String("product_type", string(intent.ProductType)),
		slog.Int("effective_concerns", len(effective)),
		slog.Int("matched", len(result)),
	)

	return result
}

// Search filters the catalog and annotates the matches with aggregates in a
// single call.
func (e *Engine) Search(intent domain.SearchIntent, customer domain.Customer) []ProductStats {
	return e.Aggregate(e.Filter(intent, customer))
}

// keep returns the products satisfying pred, preserving order. It always
// allocates so callers never alias the store's backing array.
func keep(products []domain.Product, pred func(domain.Product) bool) []domain.Product {
	out := make([]domain.Product, 0, len(products))
	for _, p := range products {
		if pred(p) {
			out = append(out, p)
		}
	}
	return out
}
