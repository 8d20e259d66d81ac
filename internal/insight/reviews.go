package insight

import (
	"log/slog"
	"math"
	"sort"

	"github.com/sdk788-art/ec-agent/internal/dataset"
	"github.com/sdk788-art/ec-agent/internal/domain"
)

// Sampling bounds for the review sample handed to the summarization step.
const (
	maxSampleSize  = 5
	maxReviewChars = 300
	ellipsis       = "..."
)

// satisfactionThreshold is the minimum rating counted as a satisfied review.
const satisfactionThreshold = 4.0

// Service computes cohort review samples and co-purchase rankings over the
// immutable dataset.
type Service struct {
	store  *dataset.Store
	logger *slog.Logger
}

// NewService creates an insight service over the given dataset.
func NewService(store *dataset.Store, logger *slog.Logger) *Service {
	return &Service{
		store:  store,
		logger: logger,
	}
}

// SampleCohortReviews selects the reviews of the given product written by
// customers sharing the given base skin type, and returns:
//
//   - a bounded sample: newest-first, at most 5 entries, bodies truncated to
//     300 characters plus an ellipsis marker when longer
//   - metrics computed over the FULL cohort-filtered set, not the sample
//
// An empty cohort yields zero-valued metrics and an empty sample; callers
// use TotalReviews == 0 as the signal to skip summarization entirely.
func (s *Service) SampleCohortReviews(productID int64, skinType domain.SkinType) ([]domain.Review, domain.ReviewMetrics) {
	cohort := make(map[int64]bool)
	for _, c := range s.store.Customers() {
		if c.BaseSkinType == skinType {
			cohort[c.ID] = true
		}
	}

	filtered := make([]domain.Review, 0)
	if s.store.HasProduct(productID) {
		for _, r := range s.store.Reviews() {
			if r.ProductID == productID && cohort[r.CustomerID] {
				filtered = append(filtered, r)
			}
		}
	}

	metrics := computeMetrics(filtered)

	sort.SliceStable(filtered, func(i, j int) bool {
		return filtered[i].CreatedAt.After(filtered[j].CreatedAt)
	})
	if len(filtered) > maxSampleSize {
		filtered = filtered[:maxSampleSize]
	}

	sample := make([]domain.Review, len(filtered))
	for i, r := range filtered {
		r.Body = truncate(r.Body, maxReviewChars)
		sample[i] = r
	}

	s.logger.Debug("cohort reviews sampled",
		slog.Int64("product_id", productID),
		slog.String("skin_type", string(skinType)),
		slog.Int("total", metrics.TotalReviews),
		slog.Int("sample", len(sample)),
	)

	return sample, metrics
}

// computeMetrics aggregates the full cohort-filtered set. Ratios are guarded
// so a zero-review cohort yields defined zero values rather than NaN.
func computeMetrics(reviews []domain.Review) domain.ReviewMetrics {
	total := len(reviews)
	if total == 0 {
		return domain.ReviewMetrics{}
	}

	var sum float64
	satisfied := 0
	for _, r := range reviews {
		sum += r.Rating
		if r.Rating >= satisfactionThreshold {
			satisfied++
		}
	}

	return domain.ReviewMetrics{
		TotalReviews:    total,
		AvgRating:       round2(sum / float64(total)),
		SatisfactionPct: round1(float64(satisfied) / float64(total) * 100),
	}
}

// truncate shortens s to max characters, appending an ellipsis marker when
// anything was cut. Counting is by rune, not byte.
func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max]) + ellipsis
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
