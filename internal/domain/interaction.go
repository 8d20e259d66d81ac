package domain

import (
	"encoding/json"
	"time"
)

// Interaction action kinds. Other kinds may appear in the dataset but only
// purchases are consumed by this system.
const (
	ActionPurchase = "purchase"
	ActionView     = "view"
	ActionCart     = "cart"
)

// InteractionLog is a single customer-product interaction event.
type InteractionLog struct {
	CustomerID int64     `json:"customer_id"`
	ProductID  int64     `json:"product_id"`
	Action     string    `json:"action_type"`
	CreatedAt  time.Time `json:"created_at"`
}

type interactionAlias struct {
	CustomerID int64    `json:"customer_id"`
	ProductID  int64    `json:"product_id"`
	Action     string   `json:"action_type"`
	CreatedAt  FlexTime `json:"created_at"`
}

// UnmarshalJSON accepts the timestamp layouts found in the source dataset.
func (l *InteractionLog) UnmarshalJSON(data []byte) error {
	var a interactionAlias
	if err := json.Unmarshal(data, &a); err != nil {
		return err
	}
	l.CustomerID = a.CustomerID
	l.ProductID = a.ProductID
	l.Action = a.Action
	l.CreatedAt = time.Time(a.CreatedAt)
	return nil
}
