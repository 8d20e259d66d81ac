package domain

// SearchIntent is the structured shape derived from a free-text search query.
// It lives only for the duration of the search that produced it.
type SearchIntent struct {
	// ProductType is the extracted category selector. Empty means the query
	// did not target a specific category and the category filter is skipped.
	ProductType ProductType `json:"product_type"`

	// Concerns are the skin concerns extracted from the query.
	Concerns ConcernSet `json:"concerns"`
}

// HasProductType reports whether the intent carries a usable category
// selector. The extraction service may emit the literal string "null" for an
// absent category; that sentinel counts as absent.
func (i SearchIntent) HasProductType() bool {
	return i.ProductType != "" && i.ProductType != "null"
}
