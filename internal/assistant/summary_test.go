package assistant

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/sdk788-art/ec-agent/internal/domain"
	apperrors "github.com/sdk788-art/ec-agent/pkg/errors"
)

func sampleReview(body string) domain.Review {
	return domain.Review{
		ID: 1, ProductID: 10, CustomerID: 1, Rating: 4.5, Body: body,
		CreatedAt: time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC),
	}
}

func TestSummarizeReviews_BuildsPromptFromSample(t *testing.T) {
	completer := new(mockCompleter)
	var captured CompletionRequest
	completer.On("Complete", mock.Anything, mock.MatchedBy(func(req CompletionRequest) bool {
		captured = req
		return true
	})).Return("Customers with dry skin loved the hydration.", nil)

	metrics := domain.ReviewMetrics{TotalReviews: 4, AvgRating: 4.25, SatisfactionPct: 75.0}
	sample := []domain.Review{
		sampleReview("very hydrating"),
		sampleReview("calmed my skin"),
	}

	text, err := newTestService(completer).SummarizeReviews(context.Background(), domain.SkinDry, metrics, sample)

	require.NoError(t, err)
	assert.Equal(t, "Customers with dry skin loved the hydration.", text)
	assert.Contains(t, captured.Prompt, "dry skin")
	assert.Contains(t, captured.Prompt, "4 reviews total")
	assert.Contains(t, captured.Prompt, "4.25")
	assert.Contains(t, captured.Prompt, "75.0%")
	assert.Contains(t, captured.Prompt, "- very hydrating")
	assert.Contains(t, captured.Prompt, "- calmed my skin")
}

func TestSummarizeReviews_NoTextBodies_SkipsCall(t *testing.T) {
	completer := new(mockCompleter)

	metrics := domain.ReviewMetrics{TotalReviews: 2, AvgRating: 4.0, SatisfactionPct: 100.0}
	sample := []domain.Review{sampleReview(""), sampleReview("")}

	text, err := newTestService(completer).SummarizeReviews(context.Background(), domain.SkinOily, metrics, sample)

	require.NoError(t, err)
	assert.Equal(t, "", text)
	completer.AssertNotCalled(t, "Complete", mock.Anything, mock.Anything)
}

func TestSummarizeReviews_MixedBodies_OnlyTextContributes(t *testing.T) {
	completer := new(mockCompleter)
	var captured CompletionRequest
	completer.On("Complete", mock.Anything, mock.MatchedBy(func(req CompletionRequest) bool {
		captured = req
		return true
	})).Return("summary", nil)

	sample := []domain.Review{sampleReview(""), sampleReview("works well")}
	metrics := domain.ReviewMetrics{TotalReviews: 2, AvgRating: 4.5, SatisfactionPct: 100.0}

	_, err := newTestService(completer).SummarizeReviews(context.Background(), domain.SkinDry, metrics, sample)

	require.NoError(t, err)
	assert.Contains(t, captured.Prompt, "- works well")
}

func TestSummarizeReviews_ServiceFailure(t *testing.T) {
	completer := new(mockCompleter)
	completer.On("Complete", mock.Anything, mock.Anything).
		Return("", apperrors.GenerationUnavailable(fmt.Errorf("timeout")))

	sample := []domain.Review{sampleReview("nice")}
	metrics := domain.ReviewMetrics{TotalReviews: 1, AvgRating: 4.5, SatisfactionPct: 100.0}

	text, err := newTestService(completer).SummarizeReviews(context.Background(), domain.SkinDry, metrics, sample)

	require.Error(t, err)
	assert.Equal(t, "", text)
	assert.True(t, errors.Is(err, apperrors.ErrGenerationUnavailable))
}

func TestSummarizeReviews_BareFailureWrappedAsUnavailable(t *testing.T) {
	completer := new(mockCompleter)
	completer.On("Complete", mock.Anything, mock.Anything).
		Return("", errors.New("i/o timeout"))

	sample := []domain.Review{sampleReview("nice")}
	metrics := domain.ReviewMetrics{TotalReviews: 1, AvgRating: 4.5, SatisfactionPct: 100.0}

	_, err := newTestService(completer).SummarizeReviews(context.Background(), domain.SkinDry, metrics, sample)

	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrGenerationUnavailable))
}

// --- CrossSellMessage ---

func TestCrossSellMessage_BuildsPrompt(t *testing.T) {
	completer := new(mockCompleter)
	var captured CompletionRequest
	completer.On("Complete", mock.Anything, mock.MatchedBy(func(req CompletionRequest) bool {
		captured = req
		return true
	})).Return("Pair them for a full routine.", nil)

	selected := domain.Product{ID: 10, Name: "Hydra Toner", Type: domain.TypeToner}
	crossSell := []domain.Product{
		{ID: 11, Name: "Barrier Cream", Type: domain.TypeMoistureCream},
		{ID: 12, Name: "Mild Cleanser", Type: domain.TypeCleansingFoam},
	}
	concerns := domain.ConcernSet{domain.ConcernDryness, domain.ConcernRedness}

	text, err := newTestService(completer).CrossSellMessage(context.Background(), selected, crossSell, concerns)

	require.NoError(t, err)
	assert.Equal(t, "Pair them for a full routine.", text)
	assert.Contains(t, captured.Prompt, "severe dryness, redness")
	assert.Contains(t, captured.Prompt, "'Hydra Toner' (toner)")
	assert.Contains(t, captured.Prompt, "'Barrier Cream' (moisture cream)")
	assert.Contains(t, captured.Prompt, "'Mild Cleanser' (cleansing foam)")
}

func TestCrossSellMessage_NoConcerns(t *testing.T) {
	completer := new(mockCompleter)
	var captured CompletionRequest
	completer.On("Complete", mock.Anything, mock.MatchedBy(func(req CompletionRequest) bool {
		captured = req
		return true
	})).Return("message", nil)

	selected := domain.Product{ID: 10, Name: "Sun Stick", Type: domain.TypeSunCare}
	crossSell := []domain.Product{{ID: 11, Name: "Toner", Type: domain.TypeToner}}

	_, err := newTestService(completer).CrossSellMessage(context.Background(), selected, crossSell, nil)

	require.NoError(t, err)
	assert.Contains(t, captured.Prompt, "concerns are: none")
}

func TestCrossSellMessage_ServiceFailure(t *testing.T) {
	completer := new(mockCompleter)
	completer.On("Complete", mock.Anything, mock.Anything).
		Return("", apperrors.GenerationUnavailable(fmt.Errorf("breaker open")))

	selected := domain.Product{ID: 10, Name: "Toner", Type: domain.TypeToner}

	text, err := newTestService(completer).CrossSellMessage(context.Background(), selected,
		[]domain.Product{{ID: 11, Name: "Cream", Type: domain.TypeMoistureCream}}, nil)

	require.Error(t, err)
	assert.Equal(t, "", text)
	assert.True(t, errors.Is(err, apperrors.ErrGenerationUnavailable))
}

func TestCrossSellMessage_BareFailureWrappedAsUnavailable(t *testing.T) {
	completer := new(mockCompleter)
	completer.On("Complete", mock.Anything, mock.Anything).
		Return("", errors.New("connection reset"))

	selected := domain.Product{ID: 10, Name: "Toner", Type: domain.TypeToner}

	_, err := newTestService(completer).CrossSellMessage(context.Background(), selected,
		[]domain.Product{{ID: 11, Name: "Cream", Type: domain.TypeMoistureCream}}, nil)

	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrGenerationUnavailable))
}
