package assistant

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"

	"github.com/sdk788-art/ec-agent/internal/domain"
	apperrors "github.com/sdk788-art/ec-agent/pkg/errors"
)

// MaxQueryLength bounds free-text search queries.
const MaxQueryLength = 200

const intentMaxTokens = 256

// intentInstruction is the fixed system prompt for intent extraction. It
// names the allowed vocabulary; only the raw query string accompanies it.
func intentInstruction() string {
	types := make([]string, 0, len(domain.ValidProductTypes()))
	for _, t := range domain.ValidProductTypes() {
		types = append(types, string(t))
	}
	concerns := make([]string, 0, len(domain.ValidConcerns()))
	for _, c := range domain.ValidConcerns() {
		concerns = append(concerns, string(c))
	}

	var b strings.Builder
	b.WriteString("You are a search parameter extractor for a skin-care e-commerce store.\n")
	b.WriteString("Extract the product category (product_type) and the desired effects or skin concerns (concerns) from the user's search query, ")
	b.WriteString("and return ONLY a JSON object in the following shape. Output no other text.\n\n")
	b.WriteString(`{"product_type": "category or null", "concerns": ["concern1", "concern2"]}`)
	b.WriteString("\n\nAllowed product_type values (null if none apply):\n")
	b.WriteString(strings.Join(types, ", "))
	b.WriteString("\n\nAllowed concerns values (empty array [] if none apply):\n")
	b.WriteString(strings.Join(concerns, ", "))
	return b.String()
}

// NormalizeIntent translates a free-text query into a structured search
// intent via the completion service. No catalog data is ever sent; only the
// raw query string and the fixed vocabulary instruction.
//
// A response that is not valid JSON after fence unwrapping, or that omits
// the product_type or concerns keys, yields ErrIntentParse. Service failures
// (network, timeout, open breaker) keep their ErrGenerationUnavailable
// identity and are never reported as parse failures.
func (s *Service) NormalizeIntent(ctx context.Context, query string) (domain.SearchIntent, error) {
	raw, err := s.client.Complete(ctx, CompletionRequest{
		System:    intentInstruction(),
		Prompt:    query,
		MaxTokens: intentMaxTokens,
	})
	observeOutcome(opIntent, err)
	if err != nil {
		return domain.SearchIntent{}, completionErr(err)
	}

	unwrapped := stripCodeFence(raw)

	var fields map[string]json.RawMessage
	if err := json.Unmarshal([]byte(unwrapped), &fields); err != nil {
		return domain.SearchIntent{}, apperrors.IntentParse("intent response is not valid JSON")
	}

	typeRaw, ok := fields["product_type"]
	if !ok {
		return domain.SearchIntent{}, apperrors.IntentParse("intent response omits product_type")
	}
	concernsRaw, ok := fields["concerns"]
	if !ok {
		return domain.SearchIntent{}, apperrors.IntentParse("intent response omits concerns")
	}

	var intent domain.SearchIntent

	var productType *string
	if err := json.Unmarshal(typeRaw, &productType); err != nil {
		return domain.SearchIntent{}, apperrors.IntentParse("product_type must be a string or null")
	}
	if productType != nil {
		intent.ProductType = domain.ProductType(*productType)
	}

	var concerns []string
	if string(concernsRaw) != "null" {
		if err := json.Unmarshal(concernsRaw, &concerns); err != nil {
			return domain.SearchIntent{}, apperrors.IntentParse("concerns must be an array of strings")
		}
	}
	intent.Concerns = make(domain.ConcernSet, 0, len(concerns))
	for _, c := range concerns {
		intent.Concerns = append(intent.Concerns, domain.Concern(c))
	}

	s.logger.DebugContext(ctx, "intent extracted",
		slog.String("product_type", string(intent.ProductType)),
		slog.Int("concerns", len(intent.Concerns)),
	)

	return intent, nil
}

// stripCodeFence unwraps a response the model wrapped in a markdown code
// block, tolerating an optional language tag after the opening fence.
func stripCodeFence(raw string) string {
	raw = strings.TrimSpace(raw)
	if !strings.Contains(raw, "```") {
		return raw
	}

	parts := strings.SplitN(raw, "```", 3)
	if len(parts) < 2 {
		return raw
	}

	inner := strings.TrimSpace(parts[1])
	if strings.HasPrefix(inner, "json") {
		inner = strings.TrimSpace(strings.TrimPrefix(inner, "json"))
	}
	return inner
}
