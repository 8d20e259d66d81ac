package dataset

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/sdk788-art/ec-agent/internal/domain"
	"github.com/sdk788-art/ec-agent/pkg/slug"
)

// Relation file names expected inside the data directory.
const (
	customersFile = "customers.json"
	productsFile  = "products.json"
	logsFile      = "logs.json"
	reviewsFile   = "reviews.json"
)

// Load reads the four relation files from dir and builds an immutable Store.
// Set-valued fields are canonicalized during decoding (see domain.SkinTypeSet)
// and each product gets a URL slug derived from its name. Reviews and log
// entries that reference a nonexistent product or customer are kept in the
// store but logged here; the aggregators exclude them from results.
func Load(dir string, logger *slog.Logger) (*Store, error) {
	var customers []domain.Customer
	if err := readRelation(dir, customersFile, &customers); err != nil {
		return nil, err
	}

	var products []domain.Product
	if err := readRelation(dir, productsFile, &products); err != nil {
		return nil, err
	}
	for i := range products {
		products[i].Slug = slug.Generate(products[i].Name)
	}

	var logs []domain.InteractionLog
	if err := readRelation(dir, logsFile, &logs); err != nil {
		return nil, err
	}

	var reviews []domain.Review
	if err := readRelation(dir, reviewsFile, &reviews); err != nil {
		return nil, err
	}

	store := NewStore(customers, products, logs, reviews)

	dangling := 0
	for _, r := range reviews {
		if !store.HasProduct(r.ProductID) || !store.HasCustomer(r.CustomerID) {
			dangling++
		}
	}
	for _, l := range logs {
		if !store.HasProduct(l.ProductID) || !store.HasCustomer(l.CustomerID) {
			dangling++
		}
	}
	if dangling > 0 {
		logger.Warn("dataset contains dangling references; they will be excluded from aggregates",
			slog.Int("count", dangling),
		)
	}

	logger.Info("dataset loaded",
		slog.Int("customers", len(customers)),
		slog.Int("products", len(products)),
		slog.Int("logs", len(logs)),
		slog.Int("reviews", len(reviews)),
	)

	return store, nil
}

func readRelation(dir, name string, dst any) error {
	path := filepath.Join(dir, name)
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", name, err)
	}
	if err := json.Unmarshal(data, dst); err != nil {
		return fmt.Errorf("decode %s: %w", name, err)
	}
	return nil
}
