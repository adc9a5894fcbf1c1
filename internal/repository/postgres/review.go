package postgres

import (
	"context"
	"fmt"

	"github.com/uzgnsodyum/shopping-site-2/internal/domain"
	"github.com/uzgnsodyum/shopping-site-2/pkg/database"
)

// ReviewRepository implements repository.ReviewRepository using PostgreSQL.
type ReviewRepository struct {
	db database.DBTX
}

// NewReviewRepository creates a new PostgreSQL-backed review repository.
func NewReviewRepository(db database.DBTX) *ReviewRepository {
	return &ReviewRepository{db: db}
}

// Create inserts a new review into the database.
func (r *ReviewRepository) Create(ctx context.Context, rev *domain.Review) error {
	query := `
		INSERT INTO product_reviews (id, product_id, author, rating, title, comment, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := r.db.Exec(ctx, query,
		rev.ID,
		rev.ProductID,
		rev.Author,
		rev.Rating,
		rev.Title,
		rev.Comment,
		rev.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert review: %w", err)
	}

	return nil
}

// ListByProduct returns all reviews for a product, newest first.
func (r *ReviewRepository) ListByProduct(ctx context.Context, productID string) ([]domain.Review, error) {
	query := `
		SELECT id, product_id, author, rating, title, comment, created_at
		FROM product_reviews
		WHERE product_id = $1
		ORDER BY created_at DESC`

	rows, err := r.db.Query(ctx, query, productID)
	if err != nil {
		return nil, fmt.Errorf("list reviews: %w", err)
	}
	defer rows.Close()

	var reviews []domain.Review
	for rows.Next() {
		var rev domain.Review
		if err := rows.Scan(
			&rev.ID,
			&rev.ProductID,
			&rev.Author,
			&rev.Rating,
			&rev.Title,
			&rev.Comment,
			&rev.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan review row: %w", err)
		}
		reviews = append(reviews, rev)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate review rows: %w", err)
	}

	if reviews == nil {
		reviews = []domain.Review{}
	}

	return reviews, nil
}

// Ratings returns the rating values of all reviews for a product.
func (r *ReviewRepository) Ratings(ctx context.Context, productID string) ([]int, error) {
	query := `SELECT rating FROM product_reviews WHERE product_id = $1`

	rows, err := r.db.Query(ctx, query, productID)
	if err != nil {
		return nil, fmt.Errorf("list ratings: %w", err)
	}
	defer rows.Close()

	var ratings []int
	for rows.Next() {
		var rating int
		if err := rows.Scan(&rating); err != nil {
			return nil, fmt.Errorf("scan rating: %w", err)
		}
		ratings = append(ratings, rating)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate ratings: %w", err)
	}

	return ratings, nil
}
