package domain

import (
	"time"
)

// Sort field constants for product listings.
const (
	SortByPrice  = "price"
	SortByTitle  = "title"
	SortByRating = "rating"
)

// Sort order constants.
const (
	OrderAsc  = "asc"
	OrderDesc = "desc"
)

// Product represents a product in the catalog. Price is stored in minor
// currency units.
type Product struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Category    string    `json:"category"`
	Price       int64     `json:"price"`
	ImageURL    string    `json:"image_url"`
	Rating      float64   `json:"rating"`
	ReviewCount int       `json:"review_count"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ValidSortFields returns the set of valid product sort fields.
func ValidSortFields() []string {
	return []string{SortByPrice, SortByTitle, SortByRating}
}

// IsValidSortField checks whether the given field is a valid product sort field.
func IsValidSortField(field string) bool {
	for _, f := range ValidSortFields() {
		if f == field {
			return true
		}
	}
	return false
}

// IsValidOrder checks whether the given order is asc or desc.
func IsValidOrder(order string) bool {
	return order == OrderAsc || order == OrderDesc
}
