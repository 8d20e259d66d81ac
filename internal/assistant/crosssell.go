package assistant

import (
	"context"
	"fmt"
	"strings"

	"github.com/sdk788-art/ec-agent/internal/domain"
)

const crossSellMaxTokens = 512

// CrossSellMessage generates a short cross-selling message for the products
// most frequently purchased alongside the selected one. The prompt carries
// only the selected product's name and category, the ranked list's names and
// categories, and the customer's concern labels.
func (s *Service) CrossSellMessage(ctx context.Context, selected domain.Product, crossSell []domain.Product, concerns domain.ConcernSet) (string, error) {
	concernStr := "none"
	if len(concerns) > 0 {
		concernStr = strings.Join(domain.ConcernLabels(concerns), ", ")
	}

	items := make([]string, 0, len(crossSell))
	for _, p := range crossSell {
		items = append(items, fmt.Sprintf("'%s' (%s)", p.Name, p.Type.Label()))
	}

	var b strings.Builder
	fmt.Fprintf(&b, "The customer's skin concerns are: %s.\n", concernStr)
	fmt.Fprintf(&b, "They are currently viewing '%s' (%s). ", selected.Name, selected.Type.Label())
	fmt.Fprintf(&b, "Write an appealing cross-sell message of 2-3 sentences highlighting the synergy of using it together with %s.",
		strings.Join(items, ", "))

	text, err := s.client.Complete(ctx, CompletionRequest{
		Prompt:    b.String(),
		MaxTokens: crossSellMaxTokens,
	})
	observeOutcome(opCrossSell, err)
	if err != nil {
		return "", completionErr(err)
	}
	return text, nil
}
