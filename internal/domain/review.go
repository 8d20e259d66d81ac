package domain

import (
	"encoding/json"
	"fmt"
	"time"
)

// Review is a customer's review of a product. Reviews are append-only in the
// source dataset; this system never mutates them.
type Review struct {
	ID         int64     `json:"review_id"`
	ProductID  int64     `json:"product_id"`
	CustomerID int64     `json:"customer_id"`
	Rating     float64   `json:"rate"`
	Body       string    `json:"review,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

// reviewAlias avoids infinite recursion in UnmarshalJSON.
type reviewAlias struct {
	ID         int64    `json:"review_id"`
	ProductID  int64    `json:"product_id"`
	CustomerID int64    `json:"customer_id"`
	Rating     float64  `json:"rate"`
	Body       *string  `json:"review"`
	CreatedAt  FlexTime `json:"created_at"`
}

// UnmarshalJSON normalizes the source shape: a null review body becomes the
// empty string and timestamps are accepted in several common layouts.
func (r *Review) UnmarshalJSON(data []byte) error {
	var a reviewAlias
	if err := json.Unmarshal(data, &a); err != nil {
		return err
	}
	r.ID = a.ID
	r.ProductID = a.ProductID
	r.CustomerID = a.CustomerID
	r.Rating = a.Rating
	if a.Body != nil {
		r.Body = *a.Body
	}
	r.CreatedAt = time.Time(a.CreatedAt)
	return nil
}

// ReviewMetrics summarizes a cohort-filtered review set. Computed over the
// full filtered set, never over a truncated sample.
type ReviewMetrics struct {
	TotalReviews    int     `json:"total_reviews"`
	AvgRating       float64 `json:"avg_rate"`
	SatisfactionPct float64 `json:"satisfaction_pct"`
}

// FlexTime is a time.Time that unmarshals from RFC 3339 as well as the
// date-only and space-separated layouts found in the source dataset.
type FlexTime time.Time

var flexTimeLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// UnmarshalJSON implements json.Unmarshaler.
func (t *FlexTime) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("timestamp: %w", err)
	}
	if s == "" {
		*t = FlexTime(time.Time{})
		return nil
	}
	for _, layout := range flexTimeLayouts {
		if parsed, err := time.Parse(layout, s); err == nil {
			*t = FlexTime(parsed)
			return nil
		}
	}
	return fmt.Errorf("unrecognized timestamp %q", s)
}
