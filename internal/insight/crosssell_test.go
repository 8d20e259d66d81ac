package insight

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sdk788-art/ec-agent/internal/domain"
)

func purchase(customerID, productID int64) domain.InteractionLog {
	return domain.InteractionLog{CustomerID: customerID, ProductID: productID, Action: domain.ActionPurchase}
}

func TestRankCoPurchases_RanksByFrequency(t *testing.T) {
	// Customers 1 and 2 bought product 10. Both also bought 11; only
	// customer 1 bought 12.
	logs := []domain.InteractionLog{
		purchase(1, 10), purchase(2, 10),
		purchase(1, 11), purchase(2, 11),
		purchase(1, 12),
		// Customer 3 never bought 10, so this must not count.
		purchase(3, 13),
	}
	s := fixtureService(nil, logs)

	got := s.RankCoPurchases(10, 2)

	require.Len(t, got, 2)
	assert.Equal(t, int64(11), got[0].ID)
	assert.Equal(t, int64(12), got[1].ID)
}

func TestRankCoPurchases_TieBreakByProductID(t *testing.T) {
	logs := []domain.InteractionLog{
		purchase(1, 10),
		purchase(1, 13),
		purchase(1, 11),
		purchase(1, 12),
	}
	s := fixtureService(nil, logs)

	got := s.RankCoPurchases(10, 3)

	require.Len(t, got, 3)
	assert.Equal(t, int64(11), got[0].ID)
	assert.Equal(t, int64(12), got[1].ID)
	assert.Equal(t, int64(13), got[2].ID)
}

func TestRankCoPurchases_TopNLimits(t *testing.T) {
	logs := []domain.InteractionLog{
		purchase(1, 10), purchase(1, 11), purchase(1, 12), purchase(1, 13),
	}
	s := fixtureService(nil, logs)

	assert.Len(t, s.RankCoPurchases(10, 1), 1)
	assert.Len(t, s.RankCoPurchases(10, 3), 3)
	// Asking for more than exist returns what exists.
	assert.Len(t, s.RankCoPurchases(10, 10), 3)
}

func TestRankCoPurchases_ZeroTopNUsesDefault(t *testing.T) {
	logs := []domain.InteractionLog{
		purchase(1, 10), purchase(1, 11), purchase(1, 12), purchase(1, 13),
	}
	s := fixtureService(nil, logs)

	got := s.RankCoPurchases(10, 0)

	assert.Len(t, got, DefaultCrossSellCount)
}

func TestRankCoPurchases_NoBuyers(t *testing.T) {
	logs := []domain.InteractionLog{
		purchase(1, 11),
		{CustomerID: 1, ProductID: 10, Action: domain.ActionView},
	}
	s := fixtureService(nil, logs)

	got := s.RankCoPurchases(10, 2)

	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestRankCoPurchases_BuyersWithNoOtherPurchases(t *testing.T) {
	logs := []domain.InteractionLog{
		purchase(1, 10),
	}
	s := fixtureService(nil, logs)

	got := s.RankCoPurchases(10, 2)

	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestRankCoPurchases_IgnoresDanglingReferences(t *testing.T) {
	logs := []domain.InteractionLog{
		purchase(1, 10),
		purchase(1, 11),
		// Unknown customer and unknown product.
		purchase(99, 10),
		purchase(1, 999),
	}
	s := fixtureService(nil, logs)

	got := s.RankCoPurchases(10, 5)

	require.Len(t, got, 1)
	assert.Equal(t, int64(11), got[0].ID)
}

func TestRankCoPurchases_ExcludesSelectedProduct(t *testing.T) {
	logs := []domain.InteractionLog{
		purchase(1, 10), purchase(1, 10), purchase(1, 11),
	}
	s := fixtureService(nil, logs)

	got := s.RankCoPurchases(10, 5)

	for _, p := range got {
		assert.NotEqual(t, int64(10), p.ID)
	}
}
