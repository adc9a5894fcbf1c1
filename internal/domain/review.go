package domain

import (
	"math"
	"time"
)

// Review rating bounds.
const (
	MinRating = 1
	MaxRating = 5
)

// Review represents a product review submitted by a shopper.
type Review struct {
	ID        string    `json:"id"`
	ProductID string    `json:"product_id"`
	Author    string    `json:"author"`
	Rating    int       `json:"rating"`
	Title     string    `json:"title"`
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"created_at"`
}

// ReviewSummary contains aggregate review statistics for a product.
type ReviewSummary struct {
	AverageRating float64 `json:"average_rating"`
	TotalCount    int     `json:"total_count"`
}

// AverageRating computes the mean of the given ratings rounded to one decimal
// place. Returns 0 for an empty slice.
func AverageRating(ratings []int) float64 {
	if len(ratings) == 0 {
		return 0
	}
	var sum int
	for _, r := range ratings {
		sum += r
	}
	avg := float64(sum) / float64(len(ratings))
	return math.Round(avg*10) / 10
}
