// Package session owns the mutable, UI-facing state the core never touches:
// the logged-in customer, the last search query, and the cart. It also
// drives generated-text cache invalidation, since a new query or a customer
// switch makes previously generated text stale.
package session

import (
	"context"
	"log/slog"
	"sort"
	"sync"

	"github.com/sdk788-art/ec-agent/internal/domain"
	"github.com/sdk788-art/ec-agent/internal/gencache"
	apperrors "github.com/sdk788-art/ec-agent/pkg/errors"
)

// State is a snapshot of the current session.
type State struct {
	Customer  domain.Customer      `json:"customer"`
	LastQuery string               `json:"last_query,omitempty"`
	Intent    *domain.SearchIntent `json:"intent,omitempty"`
	Cart      []int64              `json:"cart"`
}

// Manager holds the single active shopping session. Thread-safe.
type Manager struct {
	mu     sync.Mutex
	active bool
	state  State
	cart   map[int64]bool

	cache  gencache.Cache
	logger *slog.Logger
}

// NewManager creates a session manager that invalidates the given cache on
// session transitions.
func NewManager(cache gencache.Cache, logger *slog.Logger) *Manager {
	return &Manager{
		cache:  cache,
		logger: logger,
	}
}

// Login starts a session for the customer, discarding any previous session
// state and flushing all generated text.
func (m *Manager) Login(ctx context.Context, customer domain.Customer) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.active = true
	m.state = State{Customer: customer}
	m.cart = make(map[int64]bool)

	if err := m.cache.Flush(ctx); err != nil {
		return apperrors.Wrap(err, "flush generated text on login")
	}

	m.logger.InfoContext(ctx, "customer logged in",
		slog.Int64("customer_id", customer.ID),
		slog.String("skin_type", string(customer.BaseSkinType)),
	)
	return nil
}

// Logout ends the session and flushes all generated text.
func (m *Manager) Logout(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.active {
		return apperrors.InvalidInput("no customer is logged in")
	}

	customerID := m.state.Customer.ID
	m.active = false
	m.state = State{}
	m.cart = nil

	if err := m.cache.Flush(ctx); err != nil {
		return apperrors.Wrap(err, "flush generated text on logout")
	}

	m.logger.InfoContext(ctx, "customer logged out",
		slog.Int64("customer_id", customerID),
	)
	return nil
}

// Current returns a snapshot of the active session, if any.
func (m *Manager) Current() (State, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.active {
		return State{}, false
	}
	return m.snapshot(), true
}

// TrackQuery records a search query. When it differs from the previous one,
// stale generated text is flushed and the cart is reset; repeating the same
// query keeps both, so re-searching never costs extra generation calls.
func (m *Manager) TrackQuery(ctx context.Context, query string, intent domain.SearchIntent) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.active {
		return nil
	}

	if query != m.state.LastQuery {
		if err := m.cache.Flush(ctx); err != nil {
			return apperrors.Wrap(err, "flush generated text on new query")
		}
		m.cart = make(map[int64]bool)
		m.state.LastQuery = query
	}
	m.state.Intent = &intent
	return nil
}

// AddToCart records a product in the session cart.
func (m *Manager) AddToCart(productID int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.active {
		return apperrors.InvalidInput("no customer is logged in")
	}
	m.cart[productID] = true
	return nil
}

// Cart returns the cart contents in ascending product-ID order.
func (m *Manager) Cart() ([]int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.active {
		return nil, apperrors.InvalidInput("no customer is logged in")
	}
	return m.cartItems(), nil
}

// snapshot copies the state; callers hold the lock.
func (m *Manager) snapshot() State {
	s := m.state
	s.Cart = m.cartItems()
	return s
}

func (m *Manager) cartItems() []int64 {
	items := make([]int64, 0, len(m.cart))
	for id := range m.cart {
		items = append(items, id)
	}
	sort.Slice(items, func(i, j int) bool { return items[i] < items[j] })
	return items
}
