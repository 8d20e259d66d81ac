package domain

import "fmt"

// Customer represents a registered shopper. Customers are loaded once at
// startup and immutable for the life of the process.
type Customer struct {
	ID           int64      `json:"customer_id"`
	Gender       string     `json:"gender"`
	Age          int        `json:"age"`
	BaseSkinType SkinType   `json:"base_skin_type"`
	IsSensitive  bool       `json:"is_sensitive"`
	SkinConcerns ConcernSet `json:"skin_concerns"`
}

// DisplayName returns the label shown in the customer picklist.
func (c Customer) DisplayName() string {
	return fmt.Sprintf("Customer %02d — %s, %d", c.ID, c.Gender, c.Age)
}
