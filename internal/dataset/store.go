package dataset

import (
	"github.com/sdk788-art/ec-agent/internal/domain"
)

// Store holds the four static relations in memory. It is populated once at
// startup and read-only thereafter, so it needs no locking. Accessors return
// the underlying slices; callers must not mutate them.
type Store struct {
	customers []domain.Customer
	products  []domain.Product
	logs      []domain.InteractionLog
	reviews   []domain.Review

	customerByID map[int64]int
	productByID  map[int64]int
}

// NewStore builds a store from already-loaded relations and indexes them by
// identifier.
func NewStore(
	customers []domain.Customer,
	products []domain.Product,
	logs []domain.InteractionLog,
	reviews []domain.Review,
) *Store {
	s := &Store{
		customers:    customers,
		products:     products,
		logs:         logs,
		reviews:      reviews,
		customerByID: make(map[int64]int, len(customers)),
		productByID:  make(map[int64]int, len(products)),
	}
	for i, c := range customers {
		s.customerByID[c.ID] = i
	}
	for i, p := range products {
		s.productByID[p.ID] = i
	}
	return s
}

// Customers returns all customers in dataset order.
func (s *Store) Customers() []domain.Customer { return s.customers }

// Products returns the full catalog in dataset order.
func (s *Store) Products() []domain.Product { return s.products }

// Logs returns all interaction log entries.
func (s *Store) Logs() []domain.InteractionLog { return s.logs }

// Reviews returns all reviews.
func (s *Store) Reviews() []domain.Review { return s.reviews }

// CustomerByID looks up a customer by identifier.
func (s *Store) CustomerByID(id int64) (domain.Customer, bool) {
	i, ok := s.customerByID[id]
	if !ok {
		return domain.Customer{}, false
	}
	return s.customers[i], true
}

// ProductByID looks up a product by identifier.
func (s *Store) ProductByID(id int64) (domain.Product, bool) {
	i, ok := s.productByID[id]
	if !ok {
		return domain.Product{}, false
	}
	return s.products[i], true
}

// HasCustomer reports whether a customer with the given ID exists.
func (s *Store) HasCustomer(id int64) bool {
	_, ok := s.customerByID[id]
	return ok
}

// HasProduct reports whether a product with the given ID exists.
func (s *Store) HasProduct(id int64) bool {
	_, ok := s.productByID[id]
	return ok
}
