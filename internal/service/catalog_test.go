package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	apperrors "github.com/uzgnsodyum/shopping-site-2/pkg/errors"

	"github.com/uzgnsodyum/shopping-site-2/internal/domain"
	"github.com/uzgnsodyum/shopping-site-2/internal/repository"
)

func newTestCatalogService(products *mockProductRepository, reviews *mockReviewRepository) *CatalogService {
	return NewCatalogService(products, reviews, newTestLogger())
}

func TestListProducts(t *testing.T) {
	products := new(mockProductRepository)
	svc := newTestCatalogService(products, new(mockReviewRepository))
	ctx := context.Background()

	expected := []domain.Product{*chargerProduct()}
	products.On("List", ctx, repository.ListQuery{
		Search:  "charger",
		SortBy:  domain.SortByPrice,
		Order:   domain.OrderDesc,
		PerPage: 20,
	}).Return(expected, 1, nil)

	result, total, err := svc.ListProducts(ctx, ListProductsInput{
		Search:  "charger",
		SortBy:  domain.SortByPrice,
		Order:   domain.OrderDesc,
		PerPage: 20,
	})

	require.NoError(t, err)
	assert.Equal(t, expected, result)
	assert.Equal(t, 1, total)

	products.AssertExpectations(t)
}

func TestListProducts_UnknownSortFieldFallsBack(t *testing.T) {
	products := new(mockProductRepository)
	svc := newTestCatalogService(products, new(mockReviewRepository))
	ctx := context.Background()

	products.On("List", ctx, mock.MatchedBy(func(q repository.ListQuery) bool {
		return q.SortBy == "" && q.Order == ""
	})).Return([]domain.Product{}, 0, nil)

	_, _, err := svc.ListProducts(ctx, ListProductsInput{SortBy: "popularity"})

	require.NoError(t, err)
	products.AssertExpectations(t)
}

func TestListProducts_UnknownOrderFallsBack(t *testing.T) {
	products := new(mockProductRepository)
	svc := newTestCatalogService(products, new(mockReviewRepository))
	ctx := context.Background()

	products.On("List", ctx, mock.MatchedBy(func(q repository.ListQuery) bool {
		return q.SortBy == domain.SortByPrice && q.Order == domain.OrderAsc
	})).Return([]domain.Product{}, 0, nil)

	_, _, err := svc.ListProducts(ctx, ListProductsInput{SortBy: domain.SortByPrice, Order: "sideways"})

	require.NoError(t, err)
	products.AssertExpectations(t)
}

func TestListProducts_DefaultsOrderToAscending(t *testing.T) {
	products := new(mockProductRepository)
	svc := newTestCatalogService(products, new(mockReviewRepository))
	ctx := context.Background()

	products.On("List", ctx, mock.MatchedBy(func(q repository.ListQuery) bool {
		return q.SortBy == domain.SortByPrice && q.Order == domain.OrderAsc
	})).Return([]domain.Product{}, 0, nil)

	_, _, err := svc.ListProducts(ctx, ListProductsInput{SortBy: domain.SortByPrice})

	require.NoError(t, err)
	products.AssertExpectations(t)
}

func TestListProducts_CapsPerPage(t *testing.T) {
	products := new(mockProductRepository)
	svc := newTestCatalogService(products, new(mockReviewRepository))
	ctx := context.Background()

	products.On("List", ctx, mock.MatchedBy(func(q repository.ListQuery) bool {
		return q.PerPage == maxPerPage
	})).Return([]domain.Product{}, 0, nil)

	_, _, err := svc.ListProducts(ctx, ListProductsInput{PerPage: 5000})

	require.NoError(t, err)
	products.AssertExpectations(t)
}

func TestGetProduct(t *testing.T) {
	products := new(mockProductRepository)
	reviews := new(mockReviewRepository)
	svc := newTestCatalogService(products, reviews)
	ctx := context.Background()

	product := chargerProduct()
	product.Rating = 4.3
	product.ReviewCount = 3

	products.On("GetByID", ctx, "prod-1").Return(product, nil)
	reviews.On("ListByProduct", ctx, "prod-1").Return([]domain.Review{
		{ID: "rev-1", ProductID: "prod-1", Author: "alice", Rating: 5},
	}, nil)

	detail, err := svc.GetProduct(ctx, "prod-1")

	require.NoError(t, err)
	assert.Equal(t, *product, detail.Product)
	assert.Len(t, detail.Reviews, 1)
	assert.Equal(t, 4.3, detail.Summary.AverageRating)
	assert.Equal(t, 3, detail.Summary.TotalCount)
}

func TestGetProduct_NotFound(t *testing.T) {
	products := new(mockProductRepository)
	svc := newTestCatalogService(products, new(mockReviewRepository))
	ctx := context.Background()

	products.On("GetByID", ctx, "missing").Return(nil, apperrors.NotFound("product", "missing"))

	_, err := svc.GetProduct(ctx, "missing")

	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestCreateProduct(t *testing.T) {
	products := new(mockProductRepository)
	svc := newTestCatalogService(products, new(mockReviewRepository))
	ctx := context.Background()

	products.On("Create", ctx, mock.AnythingOfType("*domain.Product")).Return(nil)

	product, err := svc.CreateProduct(ctx, CreateProductInput{
		Title:    "Wireless Phone Charger",
		Category: "electronics",
		Price:    500,
	})

	require.NoError(t, err)
	assert.NotEmpty(t, product.ID)
	assert.Equal(t, int64(500), product.Price)
	assert.NotZero(t, product.CreatedAt)
}

func TestCreateProduct_Invalid(t *testing.T) {
	svc := newTestCatalogService(new(mockProductRepository), new(mockReviewRepository))
	ctx := context.Background()

	_, err := svc.CreateProduct(ctx, CreateProductInput{Price: 100})
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)

	_, err = svc.CreateProduct(ctx, CreateProductInput{Title: "Charger", Price: 0})
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
}
