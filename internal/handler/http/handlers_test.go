package http

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/sdk788-art/ec-agent/internal/assistant"
	"github.com/sdk788-art/ec-agent/internal/catalog"
	"github.com/sdk788-art/ec-agent/internal/dataset"
	"github.com/sdk788-art/ec-agent/internal/domain"
	"github.com/sdk788-art/ec-agent/internal/gencache"
	"github.com/sdk788-art/ec-agent/internal/insight"
	"github.com/sdk788-art/ec-agent/internal/session"
	"github.com/sdk788-art/ec-agent/pkg/httputil"
)

// ============================================================================
// Mock completion service
// ============================================================================

type mockCompleter struct {
	mock.Mock
}

func (m *mockCompleter) Complete(ctx context.Context, req assistant.CompletionRequest) (string, error) {
	args := m.Called(ctx, req)
	return args.String(0), args.Error(1)
}

// ============================================================================
// Test fixture
// ============================================================================

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
}

func day(n int) time.Time {
	return time.Date(2024, 3, n, 12, 0, 0, 0, time.UTC)
}

// fixtureStore builds a small dataset:
//
//	customer 1: dry skin, severe_dryness concern
//	customer 2: oily skin, no concerns
//	product 10: Hydra Toner   (toner, dry/normal, severe_dryness)
//	product 11: Pore Toner    (toner, oily, pores/acne_trouble)
//	product 12: Barrier Cream (moisture_cream, dry, severe_dryness)
//
// Customer 1 purchased products 10 and 12, so 12 is the co-purchase
// recommendation for 10. Product 10 has one review by each customer.
func fixtureStore() *dataset.Store {
	customers := []domain.Customer{
		{ID: 1, Gender: "female", Age: 31, BaseSkinType: domain.SkinDry,
			SkinConcerns: domain.ConcernSet{domain.ConcernDryness}},
		{ID: 2, Gender: "male", Age: 27, BaseSkinType: domain.SkinOily},
	}
	products := []domain.Product{
		{ID: 10, Name: "Hydra Toner", Brand: "Dewlab", Type: domain.TypeToner,
			Price: 15000, Stock: 10,
			TargetSkinTypes: domain.SkinTypeSet{domain.SkinDry, domain.SkinNormal},
			TargetConcerns:  domain.ConcernSet{domain.ConcernDryness}},
		{ID: 11, Name: "Pore Toner", Brand: "Dewlab", Type: domain.TypeToner,
			Price: 16000, Stock: 10,
			TargetSkinTypes: domain.SkinTypeSet{domain.SkinOily},
			TargetConcerns:  domain.ConcernSet{domain.ConcernPores, domain.ConcernAcne}},
		{ID: 12, Name: "Barrier Cream", Brand: "Dewlab", Type: domain.TypeMoistureCream,
			Price: 28000, Stock: 10,
			TargetSkinTypes: domain.SkinTypeSet{domain.SkinDry},
			TargetConcerns:  domain.ConcernSet{domain.ConcernDryness}},
	}
	logs := []domain.InteractionLog{
		{CustomerID: 1, ProductID: 10, Action: domain.ActionPurchase, CreatedAt: day(1)},
		{CustomerID: 1, ProductID: 12, Action: domain.ActionPurchase, CreatedAt: day(2)},
		{CustomerID: 2, ProductID: 11, Action: domain.ActionPurchase, CreatedAt: day(3)},
	}
	reviews := []domain.Review{
		{ID: 100, ProductID: 10, CustomerID: 1, Rating: 5, Body: "Deeply hydrating.", CreatedAt: day(5)},
		{ID: 101, ProductID: 10, CustomerID: 2, Rating: 3, Body: "Too rich for me.", CreatedAt: day(6)},
	}
	return dataset.NewStore(customers, products, logs, reviews)
}

// testEnv wires the full handler stack over the fixture store, an in-memory
// cache and a mocked completion service.
type testEnv struct {
	completer *mockCompleter
	store     *dataset.Store
	cache     *gencache.Memory
	sessions  *session.Manager
	router    *chi.Mux
}

func newTestEnv() *testEnv {
	logger := testLogger()
	store := fixtureStore()
	completer := new(mockCompleter)
	cache := gencache.NewMemory(0)

	assistantSvc := assistant.NewService(completer, logger)
	engine := catalog.NewEngine(store, logger)
	insightSvc := insight.NewService(store, logger)
	sessions := session.NewManager(cache, logger)

	searchHandler := NewSearchHandler(assistantSvc, engine, store, sessions, logger)
	productHandler := NewProductHandler(engine, insightSvc, assistantSvc, cache, store, sessions, logger)
	customerHandler := NewCustomerHandler(store, logger)
	sessionHandler := NewSessionHandler(sessions, store, logger)

	// Route layout matches the production router without its middleware.
	r := chi.NewRouter()
	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/search", searchHandler.Search)
		r.Route("/products", func(r chi.Router) {
			r.Get("/{id}", productHandler.Get)
			r.Get("/{id}/review-insight", productHandler.ReviewInsight)
			r.Get("/{id}/cross-sell", productHandler.CrossSell)
		})
		r.Route("/customers", func(r chi.Router) {
			r.Get("/", customerHandler.List)
			r.Get("/{id}", customerHandler.Get)
		})
		r.Route("/session", func(r chi.Router) {
			r.Get("/", sessionHandler.Current)
			r.Post("/login", sessionHandler.Login)
			r.Post("/logout", sessionHandler.Logout)
			r.Post("/cart/{productID}", sessionHandler.AddToCart)
			r.Get("/cart", sessionHandler.Cart)
		})
	})

	return &testEnv{
		completer: completer,
		store:     store,
		cache:     cache,
		sessions:  sessions,
		router:    r,
	}
}

func (e *testEnv) login(t *testing.T, customerID int64) {
	t.Helper()
	customer, ok := e.store.CustomerByID(customerID)
	require.True(t, ok)
	require.NoError(t, e.sessions.Login(context.Background(), customer))
}

func decodeResponse(t *testing.T, rec *httptest.ResponseRecorder) httputil.Response {
	t.Helper()
	var resp httputil.Response
	err := json.NewDecoder(rec.Body).Decode(&resp)
	require.NoError(t, err)
	return resp
}

// decodeData re-decodes the envelope's data field into dst.
func decodeData(t *testing.T, rec *httptest.ResponseRecorder, dst any) {
	t.Helper()
	resp := decodeResponse(t, rec)
	require.Nil(t, resp.Error)
	raw, err := json.Marshal(resp.Data)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(raw, dst))
}
