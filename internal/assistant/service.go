package assistant

import (
	"errors"
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	apperrors "github.com/sdk788-art/ec-agent/pkg/errors"
)

// Generation call operations, used as metric labels.
const (
	opIntent    = "intent_extraction"
	opSummary   = "review_summary"
	opCrossSell = "cross_sell"
)

var generationRequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "generation_requests_total",
		Help: "Total number of generation-service calls by operation and outcome",
	},
	[]string{"operation", "outcome"},
)

// Service is the generation boundary: it builds minimized prompts from
// pre-filtered, aggregated facts and hands them to the completion service.
// It never sees the dataset store; callers pass in only what the prompt
// needs.
type Service struct {
	client Completer
	logger *slog.Logger
}

// NewService creates the generation-boundary service.
func NewService(client Completer, logger *slog.Logger) *Service {
	return &Service{
		client: client,
		logger: logger,
	}
}

// completionErr normalizes a completer failure so it keeps its
// GENERATION_UNAVAILABLE identity regardless of the Completer implementation.
// A failure that is already marked passes through untouched; anything else is
// wrapped so it cannot surface as an internal fault.
func completionErr(err error) error {
	if errors.Is(err, apperrors.ErrGenerationUnavailable) {
		return err
	}
	return apperrors.GenerationUnavailable(err)
}

func observeOutcome(operation string, err error) {
	outcome := "success"
	if err != nil {
		outcome = "error"
	}
	generationRequestsTotal.WithLabelValues(operation, outcome).Inc()
}
