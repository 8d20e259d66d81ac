package insight

import (
	"log/slog"
	"sort"

	"github.com/sdk788-art/ec-agent/internal/domain"
)

// DefaultCrossSellCount is the number of cross-sell products returned when
// the caller does not ask for a specific count.
const DefaultCrossSellCount = 2

// RankCoPurchases returns up to topN products most frequently purchased
// alongside the given product, ranked by descending co-purchase frequency.
// Ties are broken by ascending product ID so the ranking is deterministic.
// Products without any co-purchase history yield an empty slice.
func (s *Service) RankCoPurchases(productID int64, topN int) []domain.Product {
	if topN <= 0 {
		topN = DefaultCrossSellCount
	}

	purchases := make([]domain.InteractionLog, 0)
	for _, l := range s.store.Logs() {
		if l.Action != domain.ActionPurchase {
			continue
		}
		if !s.store.HasCustomer(l.CustomerID) || !s.store.HasProduct(l.ProductID) {
			continue
		}
		purchases = append(purchases, l)
	}

	buyers := make(map[int64]bool)
	for _, l := range purchases {
		if l.ProductID == productID {
			buyers[l.CustomerID] = true
		}
	}
	if len(buyers) == 0 {
		return []domain.Product{}
	}

	counts := make(map[int64]int)
	for _, l := range purchases {
		if buyers[l.CustomerID] && l.ProductID != productID {
			counts[l.ProductID]++
		}
	}
	if len(counts) == 0 {
		return []domain.Product{}
	}

	type ranked struct {
		productID int64
		count     int
	}
	order := make([]ranked, 0, len(counts))
	for id, n := range counts {
		order = append(order, ranked{productID: id, count: n})
	}
	sort.Slice(order, func(i, j int) bool {
		if order[i].count != order[j].count {
			return order[i].count > order[j].count
		}
		return order[i].productID < order[j].productID
	})

	if len(order) > topN {
		order = order[:topN]
	}

	out := make([]domain.Product, 0, len(order))
	for _, r := range order {
		if p, ok := s.store.ProductByID(r.productID); ok {
			out = append(out, p)
		}
	}

	s.logger.Debug("co-purchases ranked",
		slog.Int64("product_id", productID),
		slog.Int("buyers", len(buyers)),
		slog.Int("returned", len(out)),
	)

	return out
}
