package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	pgxmock "github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/uzgnsodyum/shopping-site-2/pkg/errors"

	"github.com/uzgnsodyum/shopping-site-2/internal/domain"
	"github.com/uzgnsodyum/shopping-site-2/internal/repository"
	"github.com/uzgnsodyum/shopping-site-2/pkg/database"
)

// ---------------------------------------------------------------------------
// helpers
// ---------------------------------------------------------------------------

func setupProductRepo(t *testing.T) (*ProductRepository, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := database.NewMockPool()
	require.NoError(t, err)
	return NewProductRepository(mock), mock
}

func sampleProduct() *domain.Product {
	now := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	return &domain.Product{
		ID:          "prod-001",
		Title:       "Wireless Phone Charger",
		Description: "Fast 15W wireless charging pad",
		Category:    "electronics",
		Price:       500,
		ImageURL:    "https://img.example.com/charger.jpg",
		Rating:      4.5,
		ReviewCount: 12,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

func productColumns() []string {
	return []string{"id", "title", "description", "category", "price", "image_url", "rating", "review_count", "created_at", "updated_at"}
}

func productRow(p *domain.Product) *pgxmock.Rows {
	return pgxmock.NewRows(productColumns()).
		AddRow(p.ID, p.Title, p.Description, p.Category, p.Price, p.ImageURL, p.Rating, p.ReviewCount, p.CreatedAt, p.UpdatedAt)
}

func productListRow(totalCount int, products ...*domain.Product) *pgxmock.Rows {
	rows := pgxmock.NewRows(append(productColumns(), "total_count"))
	for _, p := range products {
		rows.AddRow(p.ID, p.Title, p.Description, p.Category, p.Price, p.ImageURL, p.Rating, p.ReviewCount, p.CreatedAt, p.UpdatedAt, totalCount)
	}
	return rows
}

// ---------------------------------------------------------------------------
// Create
// ---------------------------------------------------------------------------

func TestProductRepository_Create_Success(t *testing.T) {
	repo, mock := setupProductRepo(t)
	defer mock.Close()

	p := sampleProduct()
	mock.ExpectExec("INSERT INTO products").
		WithArgs(p.ID, p.Title, p.Description, p.Category, p.Price, p.ImageURL, p.Rating, p.ReviewCount, p.CreatedAt, p.UpdatedAt).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	err := repo.Create(context.Background(), p)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProductRepository_Create_UniqueViolation(t *testing.T) {
	repo, mock := setupProductRepo(t)
	defer mock.Close()

	p := sampleProduct()
	mock.ExpectExec("INSERT INTO products").
		WithArgs(p.ID, p.Title, p.Description, p.Category, p.Price, p.ImageURL, p.Rating, p.ReviewCount, p.CreatedAt, p.UpdatedAt).
		WillReturnError(errors.New("ERROR: duplicate key value violates unique constraint (SQLSTATE 23505)"))

	err := repo.Create(context.Background(), p)
	assert.ErrorIs(t, err, apperrors.ErrAlreadyExists)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// ---------------------------------------------------------------------------
// GetByID
// ---------------------------------------------------------------------------

func TestProductRepository_GetByID_Success(t *testing.T) {
	repo, mock := setupProductRepo(t)
	defer mock.Close()

	p := sampleProduct()
	mock.ExpectQuery("SELECT (.+) FROM products").
		WithArgs(p.ID).
		WillReturnRows(productRow(p))

	got, err := repo.GetByID(context.Background(), p.ID)
	require.NoError(t, err)
	assert.Equal(t, p.Title, got.Title)
	assert.Equal(t, int64(500), got.Price)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProductRepository_GetByID_NotFound(t *testing.T) {
	repo, mock := setupProductRepo(t)
	defer mock.Close()

	mock.ExpectQuery("SELECT (.+) FROM products").
		WithArgs("missing").
		WillReturnRows(pgxmock.NewRows(productColumns()))

	_, err := repo.GetByID(context.Background(), "missing")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// ---------------------------------------------------------------------------
// List
// ---------------------------------------------------------------------------

func TestProductRepository_List_NoFilters(t *testing.T) {
	repo, mock := setupProductRepo(t)
	defer mock.Close()

	p := sampleProduct()
	mock.ExpectQuery("SELECT (.+) FROM products").
		WithArgs(20, 0).
		WillReturnRows(productListRow(1, p))

	products, total, err := repo.List(context.Background(), repository.ListQuery{})
	require.NoError(t, err)
	assert.Len(t, products, 1)
	assert.Equal(t, 1, total)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProductRepository_List_SearchAndSort(t *testing.T) {
	repo, mock := setupProductRepo(t)
	defer mock.Close()

	p := sampleProduct()
	mock.ExpectQuery("SELECT (.+) FROM products (.+)ILIKE(.+)ORDER BY price ASC").
		WithArgs("%phone%", 20, 0).
		WillReturnRows(productListRow(1, p))

	products, total, err := repo.List(context.Background(), repository.ListQuery{
		Search: "phone",
		SortBy: domain.SortByPrice,
		Order:  domain.OrderAsc,
	})
	require.NoError(t, err)
	assert.Len(t, products, 1)
	assert.Equal(t, 1, total)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProductRepository_List_Empty(t *testing.T) {
	repo, mock := setupProductRepo(t)
	defer mock.Close()

	mock.ExpectQuery("SELECT (.+) FROM products").
		WithArgs("%nothing%", 20, 0).
		WillReturnRows(productListRow(0))

	products, total, err := repo.List(context.Background(), repository.ListQuery{Search: "nothing"})
	require.NoError(t, err)
	assert.NotNil(t, products)
	assert.Empty(t, products)
	assert.Equal(t, 0, total)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProductRepository_List_Pagination(t *testing.T) {
	repo, mock := setupProductRepo(t)
	defer mock.Close()

	p := sampleProduct()
	mock.ExpectQuery("SELECT (.+) FROM products").
		WithArgs(10, 20).
		WillReturnRows(productListRow(35, p))

	_, total, err := repo.List(context.Background(), repository.ListQuery{Page: 3, PerPage: 10})
	require.NoError(t, err)
	assert.Equal(t, 35, total)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// ---------------------------------------------------------------------------
// UpdateRating
// ---------------------------------------------------------------------------

func TestProductRepository_UpdateRating_Success(t *testing.T) {
	repo, mock := setupProductRepo(t)
	defer mock.Close()

	mock.ExpectExec("UPDATE products").
		WithArgs(4.3, 3, "prod-001").
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	err := repo.UpdateRating(context.Background(), "prod-001", 4.3, 3)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProductRepository_UpdateRating_NotFound(t *testing.T) {
	repo, mock := setupProductRepo(t)
	defer mock.Close()

	mock.ExpectExec("UPDATE products").
		WithArgs(4.3, 3, "missing").
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	err := repo.UpdateRating(context.Background(), "missing", 4.3, 3)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}
