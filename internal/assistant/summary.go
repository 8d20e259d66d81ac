package assistant

import (
	"context"
	"fmt"
	"strings"

	"github.com/sdk788-art/ec-agent/internal/domain"
)

const summaryMaxTokens = 512

// SummarizeReviews generates a short summary of a cohort's review sample.
// The input is strictly the pre-filtered material: the skin-type label, the
// cohort metrics, and the bounded, already-truncated sample. Reviews without
// text bodies contribute nothing; if no sample entry has a body, no call is
// made and the empty string is returned.
//
// Callers must not invoke this when metrics.TotalReviews is zero; that skip
// policy lives at the call site, keyed on the metrics.
func (s *Service) SummarizeReviews(ctx context.Context, skinType domain.SkinType, metrics domain.ReviewMetrics, sample []domain.Review) (string, error) {
	bodies := make([]string, 0, len(sample))
	for _, r := range sample {
		if r.Body != "" {
			bodies = append(bodies, "- "+r.Body)
		}
	}
	if len(bodies) == 0 {
		return "", nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "The following reviews were written by customers with %s skin.\n", skinType.Label())
	fmt.Fprintf(&b, "[Metrics] %d reviews total, average rating %.2f, satisfaction (4.0 or higher) %.1f%%\n\n",
		metrics.TotalReviews, metrics.AvgRating, metrics.SatisfactionPct)
	fmt.Fprintf(&b, "[Reviews]\n%s\n\n", strings.Join(bodies, "\n"))
	b.WriteString("Summarize what these customers were satisfied and dissatisfied with, in 2-3 natural sentences.")

	text, err := s.client.Complete(ctx, CompletionRequest{
		Prompt:    b.String(),
		MaxTokens: summaryMaxTokens,
	})
	observeOutcome(opSummary, err)
	if err != nil {
		return "", completionErr(err)
	}
	return text, nil
}
