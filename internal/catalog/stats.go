package catalog

import (
	"math"

	"github.com/sdk788-art/ec-agent/internal/domain"
)

// ProductStats is a catalog product annotated with review and sales
// aggregates.
type ProductStats struct {
	domain.Product

	// AvgRating is the mean review rating across all customers, rounded to
	// one decimal. 0.0 when the product has no reviews.
	AvgRating float64 `json:"avg_rating"`

	// ReviewCount is the number of reviews across all customers.
	ReviewCount int `json:"review_count"`

	// SalesVolume is the number of purchase log entries for the product.
	SalesVolume int `json:"sales_volume"`
}

// Aggregate joins review and purchase aggregates onto the given products.
// Input order is preserved and the result always carries all three fields,
// including for an empty input. Reviews and log entries referencing a
// customer that does not exist in the dataset are excluded.
func (e *Engine) Aggregate(products []domain.Product) []ProductStats {
	out := make([]ProductStats, 0, len(products))
	if len(products) == 0 {
		return out
	}

	wanted := make(map[int64]bool, len(products))
	for _, p := range products {
		wanted[p.ID] = true
	}

	ratingSum := make(map[int64]float64)
	reviewCount := make(map[int64]int)
	for _, r := range e.store.Reviews() {
		if !wanted[r.ProductID] || !e.store.HasCustomer(r.CustomerID) {
			continue
		}
		ratingSum[r.ProductID] += r.Rating
		reviewCount[r.ProductID]++
	}

	salesVolume := make(map[int64]int)
	for _, l := range e.store.Logs() {
		if l.Action != domain.ActionPurchase {
			continue
		}
		if !wanted[l.ProductID] || !e.store.HasCustomer(l.CustomerID) {
			continue
		}
		salesVolume[l.ProductID]++
	}

	for _, p := range products {
		stats := ProductStats{Product: p}
		if n := reviewCount[p.ID]; n > 0 {
			stats.AvgRating = round1(ratingSum[p.ID] / float64(n))
			stats.ReviewCount = n
		}
		stats.SalesVolume = salesVolume[p.ID]
		out = append(out, stats)
	}

	return out
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
