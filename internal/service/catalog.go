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
	"github.com/uzgnsodyum/shopping-site-2/internal/repository"
)

// Listing upper bound so unpaginated catalog requests stay cheap.
const maxPerPage = 100

// CatalogService implements the business logic for product browsing.
type CatalogService struct {
	products repository.ProductRepository
	reviews  repository.ReviewRepository
	logger   *slog.Logger
}

// NewCatalogService creates a new catalog service.
func NewCatalogService(products repository.ProductRepository, reviews repository.ReviewRepository, logger *slog.Logger) *CatalogService {
	return &CatalogService{
		products: products,
		reviews:  reviews,
		logger:   logger,
	}
}

// ListProductsInput holds search, sort, and pagination parameters.
type ListProductsInput struct {
	Search  string
	SortBy  string
	Order   string
	Page    int
	PerPage int
}

// CreateProductInput holds the parameters for creating a product.
type CreateProductInput struct {
	Title       string `json:"title" validate:"required"`
	Description string `json:"description"`
	Category    string `json:"category"`
	Price       int64  `json:"price" validate:"required,gt=0"`
	ImageURL    string `json:"image_url"`
}

// ProductDetail is a product together with its reviews.
type ProductDetail struct {
	Product domain.Product       `json:"product"`
	Reviews []domain.Review      `json:"reviews"`
	Summary domain.ReviewSummary `json:"review_summary"`
}

// ListProducts returns products matching the given search and sort criteria.
// An unknown sort field falls back to newest-first ordering.
func (s *CatalogService) ListProducts(ctx context.Context, input ListProductsInput) ([]domain.Product, int, error) {
	sortBy := input.SortBy
	if sortBy != "" && !domain.IsValidSortField(sortBy) {
		// Unknown sort keys fall back to the default newest-first ordering.
		s.logger.DebugContext(ctx, "unknown sort field, using default ordering",
			slog.String("sort", sortBy),
		)
		sortBy = ""
	}

	order := input.Order
	if order != "" && !domain.IsValidOrder(order) {
		order = ""
	}
	if sortBy != "" && order == "" {
		order = domain.OrderAsc
	}

	perPage := input.PerPage
	if perPage <= 0 || perPage > maxPerPage {
		perPage = maxPerPage
	}

	products, total, err := s.products.List(ctx, repository.ListQuery{
		Search:  input.Search,
		SortBy:  sortBy,
		Order:   order,
		Page:    input.Page,
		PerPage: perPage,
	})
	if err != nil {
		return nil, 0, fmt.Errorf("list products: %w", err)
	}

	return products, total, nil
}

// GetProduct returns a single product with its reviews.
func (s *CatalogService) GetProduct(ctx context.Context, id string) (*ProductDetail, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("product id is required")
	}

	product, err := s.products.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("get product: %w", err)
	}

	reviews, err := s.reviews.ListByProduct(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("list product reviews: %w", err)
	}

	return &ProductDetail{
		Product: *product,
		Reviews: reviews,
		Summary: domain.ReviewSummary{
			AverageRating: product.Rating,
			TotalCount:    product.ReviewCount,
		},
	}, nil
}

// CreateProduct creates a new catalog product.
func (s *CatalogService) CreateProduct(ctx context.Context, input CreateProductInput) (*domain.Product, error) {
	if input.Title == "" {
		return nil, apperrors.InvalidInput("title is required")
	}
	if input.Price <= 0 {
		return nil, apperrors.InvalidInput("price must be positive")
	}

	now := time.Now().UTC()
	product := &domain.Product{
		ID:          uuid.New().String(),
		Title:       input.Title,
		Description: input.Description,
		Category:    input.Category,
		Price:       input.Price,
		ImageURL:    input.ImageURL,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.products.Create(ctx, product); err != nil {
		return nil, fmt.Errorf("create product: %w", err)
	}

	s.logger.InfoContext(ctx, "product created",
		slog.String("product_id", product.ID),
		slog.String("title", product.Title),
	)

	return product, nil
}
