package model

import "time"

// Wish is an owned resource. OwnerID is set from the authenticated
// principal at creation and is immutable; it is never read from a request
// body.
type Wish struct {
	ID            int64     `json:"id"`
	Title         string    `json:"title"`
	Link          *string   `json:"link"`
	PriceEstimate *float64  `json:"price_estimate"`
	Notes         *string   `json:"notes"`
	OwnerID       int64     `json:"owner_id"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}
