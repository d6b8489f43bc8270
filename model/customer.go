package model

import "time"

// Customer is a directory entry that owns zero or more accounts.
// Customers are immutable once created; there is no update or delete path.
type Customer struct {
	CustomerID string                 `json:"customer_id"`
	Name       string                 `json:"name"`
	Email      string                 `json:"email"`
	CreatedAt  time.Time              `json:"created_at"`
	MetaData   map[string]interface{} `json:"meta_data,omitempty"`
}
