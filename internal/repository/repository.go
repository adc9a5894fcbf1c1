package repository

import (
	"context"

	"github.com/uzgnsodyum/shopping-site-2/internal/domain"
)

// ListQuery defines search, sort, and pagination criteria for product
// listings.
type ListQuery struct {
	Search  string
	SortBy  string // price, title, or rating; empty means newest first
	Order   string // asc or desc
	Page    int
	PerPage int
}

// ProductRepository defines the interface for product persistence operations.
type ProductRepository interface {
	// Create inserts a new product into the store.
	Create(ctx context.Context, product *domain.Product) error

	// GetByID retrieves a product by its unique identifier.
	GetByID(ctx context.Context, id string) (*domain.Product, error)

	// List returns products matching the given query along with the total count.
	List(ctx context.Context, query ListQuery) ([]domain.Product, int, error)

	// UpdateRating sets the denormalized rating and review count on a product.
	UpdateRating(ctx context.Context, productID string, rating float64, reviewCount int) error
}

// ReviewRepository defines the interface for review persistence operations.
type ReviewRepository interface {
	// Create inserts a new review.
	Create(ctx context.Context, review *domain.Review) error

	// ListByProduct returns all reviews for a product, newest first.
	ListByProduct(ctx context.Context, productID string) ([]domain.Review, error)

	// Ratings returns the rating values of all reviews for a product.
	Ratings(ctx context.Context, productID string) ([]int, error)
}

// CampaignRepository defines the interface for campaign persistence operations.
type CampaignRepository interface {
	// Create inserts a new campaign.
	Create(ctx context.Context, campaign *domain.Campaign) error

	// GetByID retrieves a campaign by its unique identifier.
	GetByID(ctx context.Context, id string) (*domain.Campaign, error)

	// List returns all campaigns in creation order.
	List(ctx context.Context) ([]domain.Campaign, error)
}

// CartRepository defines the interface for cart persistence operations.
type CartRepository interface {
	// Get retrieves the cart for a user. Returns ErrNotFound if none exists.
	Get(ctx context.Context, userID string) (*domain.Cart, error)

	// SaveIfVersion stores the cart only if the persisted version still equals
	// expectedVersion. Returns ErrConflict on a version mismatch.
	SaveIfVersion(ctx context.Context, cart *domain.Cart, expectedVersion int) error

	// Delete removes the cart for a user.
	Delete(ctx context.Context, userID string) error
}
