// Package gencache caches generated text outside the core pipeline. The
// core's operations are deterministic and cheap to re-invoke; only the
// generation calls are worth caching, keyed by the facts that shaped the
// prompt. The cache is invalidated wholesale when the search query or the
// logged-in customer changes.
package gencache

import (
	"context"
	"fmt"

	"github.com/sdk788-art/ec-agent/internal/domain"
)

// Cache stores generated text under composite keys.
type Cache interface {
	// Get returns the cached text for key and whether it was present.
	Get(ctx context.Context, key string) (string, bool, error)

	// Set stores text under key, subject to the backend's TTL.
	Set(ctx context.Context, key, value string) error

	// Flush removes all generated-text entries.
	Flush(ctx context.Context) error
}

// ReviewSummaryKey keys a review summary by product and skin-type cohort, so
// a customer with a different skin type triggers a fresh summary.
func ReviewSummaryKey(productID int64, skinType domain.SkinType) string {
	return fmt.Sprintf("review_summary:%d:%s", productID, skinType)
}

// CrossSellKey keys a cross-sell message by product and customer, since the
// message depends on the customer's concern labels.
func CrossSellKey(productID, customerID int64) string {
	return fmt.Sprintf("cross_sell:%d:%d", productID, customerID)
}
