package domain

import (
	"time"
)

// Campaign discount bounds (percentage points).
const (
	MinDiscountPct = 1
	MaxDiscountPct = 100
)

// Campaign represents a promotional banner that applies a percentage discount
// to a set of products.
type Campaign struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	ImageURL    string    `json:"image_url"`
	DiscountPct int       `json:"discount_pct"`
	StartDate   time.Time `json:"start_date"`
	EndDate     time.Time `json:"end_date"`
	ProductIDs  []string  `json:"product_ids"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// AppliesTo reports whether the campaign covers the given product.
func (c *Campaign) AppliesTo(productID string) bool {
	for _, id := range c.ProductIDs {
		if id == productID {
			return true
		}
	}
	return false
}

// DiscountedPrice returns the unit price after applying the campaign discount.
// The discount amount is computed with integer division, so fractional minor
// units are truncated in the shopper's favor.
func (c *Campaign) DiscountedPrice(price int64) int64 {
	return price - price*int64(c.DiscountPct)/100
}
