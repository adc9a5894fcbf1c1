package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	apperrors "github.com/uzgnsodyum/shopping-site-2/pkg/errors"

	"github.com/uzgnsodyum/shopping-site-2/internal/domain"
	"github.com/uzgnsodyum/shopping-site-2/internal/event"
	"github.com/uzgnsodyum/shopping-site-2/internal/repository"
)

// AddReviewInput holds the parameters for submitting a review.
type AddReviewInput struct {
	Author  string `json:"author" validate:"required"`
	Rating  int    `json:"rating" validate:"required,gte=1,lte=5"`
	Title   string `json:"title"`
	Comment string `json:"comment"`
}

// ReviewList is a page of reviews together with the aggregate summary.
type ReviewList struct {
	Reviews []domain.Review      `json:"reviews"`
	Summary domain.ReviewSummary `json:"summary"`
}

// ReviewService implements the business logic for product reviews. Appending
// a review recomputes the product's denormalized rating so catalog listings
// and sorting stay consistent without joining the reviews table.
type ReviewService struct {
	reviews  repository.ReviewRepository
	products repository.ProductRepository
	producer *event.Producer
	logger   *slog.Logger
}

// NewReviewService creates a new review service.
func NewReviewService(reviews repository.ReviewRepository, products repository.ProductRepository, producer *event.Producer, logger *slog.Logger) *ReviewService {
	return &ReviewService{
		reviews:  reviews,
		products: products,
		producer: producer,
		logger:   logger,
	}
}

// AddReview validates and persists a review, then recomputes the product's
// average rating.
func (s *ReviewService) AddReview(ctx context.Context, productID string, input AddReviewInput) (*domain.Review, error) {
	if productID == "" {
		return nil, apperrors.InvalidInput("product id is required")
	}
	if input.Author == "" {
		return nil, apperrors.InvalidInput("author is required")
	}
	if input.Rating < domain.MinRating || input.Rating > domain.MaxRating {
		return nil, apperrors.InvalidInput(fmt.Sprintf("rating must be between %d and %d", domain.MinRating, domain.MaxRating))
	}

	if _, err := s.products.GetByID(ctx, productID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("lookup product: %w", err)
	}

	review := &domain.Review{
		ID:        uuid.New().String(),
		ProductID: productID,
		Author:    input.Author,
		Rating:    input.Rating,
		Title:     input.Title,
		Comment:   input.Comment,
		CreatedAt: time.Now().UTC(),
	}

	if err := s.reviews.Create(ctx, review); err != nil {
		return nil, fmt.Errorf("create review: %w", err)
	}

	ratings, err := s.reviews.Ratings(ctx, productID)
	if err != nil {
		return nil, fmt.Errorf("load ratings: %w", err)
	}
	newRating := domain.AverageRating(ratings)

	if err := s.products.UpdateRating(ctx, productID, newRating, len(ratings)); err != nil {
		return nil, fmt.Errorf("update product rating: %w", err)
	}

	if s.producer != nil {
		if err := s.producer.PublishReviewCreated(ctx, review, newRating); err != nil {
			s.logger.ErrorContext(ctx, "failed to publish review.created event",
				slog.String("review_id", review.ID),
				slog.String("error", err.Error()),
			)
		}
	}

	s.logger.InfoContext(ctx, "review created",
		slog.String("review_id", review.ID),
		slog.String("product_id", productID),
		slog.Int("rating", input.Rating),
		slog.Float64("new_rating", newRating),
	)

	return review, nil
}

// ListReviews returns a product's reviews, newest first, with the aggregate
// summary.
func (s *ReviewService) ListReviews(ctx context.Context, productID string) (*ReviewList, error) {
	if productID == "" {
		return nil, apperrors.InvalidInput("product id is required")
	}

	if _, err := s.products.GetByID(ctx, productID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("lookup product: %w", err)
	}

	reviews, err := s.reviews.ListByProduct(ctx, productID)
	if err != nil {
		return nil, fmt.Errorf("list reviews: %w", err)
	}

	ratings := make([]int, 0, len(reviews))
	for _, r := range reviews {
		ratings = append(ratings, r.Rating)
	}

	return &ReviewList{
		Reviews: reviews,
		Summary: domain.ReviewSummary{
			AverageRating: domain.AverageRating(ratings),
			TotalCount:    len(reviews),
		},
	}, nil
}
