package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	apperrors "github.com/uzgnsodyum/shopping-site-2/pkg/errors"

	"github.com/uzgnsodyum/shopping-site-2/internal/domain"
	"github.com/uzgnsodyum/shopping-site-2/internal/repository"
	"github.com/uzgnsodyum/shopping-site-2/pkg/database"
)

// ProductRepository implements repository.ProductRepository using PostgreSQL.
type ProductRepository struct {
	db database.DBTX
}

// NewProductRepository creates a new PostgreSQL-backed product repository.
func NewProductRepository(db database.DBTX) *ProductRepository {
	return &ProductRepository{db: db}
}

// Create inserts a new product into the database.
func (r *ProductRepository) Create(ctx context.Context, p *domain.Product) error {
	query := `
		INSERT INTO products (id, title, description, category, price, image_url, rating, review_count, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

	_, err := r.db.Exec(ctx, query,
		p.ID,
		p.Title,
		p.Description,
		p.Category,
		p.Price,
		p.ImageURL,
		p.Rating,
		p.ReviewCount,
		p.CreatedAt,
		p.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.AlreadyExists("product", "id", p.ID)
		}
		return fmt.Errorf("insert product: %w", err)
	}

	return nil
}

// GetByID retrieves a product by its ID.
func (r *ProductRepository) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	query := `
		SELECT id, title, description, category, price, image_url, rating, review_count, created_at, updated_at
		FROM products
		WHERE id = $1`

	var p domain.Product
	err := r.db.QueryRow(ctx, query, id).Scan(
		&p.ID,
		&p.Title,
		&p.Description,
		&p.Category,
		&p.Price,
		&p.ImageURL,
		&p.Rating,
		&p.ReviewCount,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NotFound("product", id)
		}
		return nil, fmt.Errorf("scan product: %w", err)
	}

	return &p, nil
}

// sortColumns maps domain sort fields to their SQL columns. Title sorting is
// case-insensitive.
var sortColumns = map[string]string{
	domain.SortByPrice:  "price",
	domain.SortByTitle:  "lower(title)",
	domain.SortByRating: "rating",
}

// List returns products matching the given query with the total count.
// Search matches title or description case-insensitively.
func (r *ProductRepository) List(ctx context.Context, q repository.ListQuery) ([]domain.Product, int, error) {
	var (
		conditions []string
		args       []any
		argIndex   = 1
	)

	if q.Search != "" {
		conditions = append(conditions, fmt.Sprintf("(title ILIKE $%d OR description ILIKE $%d)", argIndex, argIndex))
		args = append(args, "%"+q.Search+"%")
		argIndex++
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = "WHERE " + strings.Join(conditions, " AND ")
	}

	orderClause := "ORDER BY created_at DESC"
	if col, ok := sortColumns[q.SortBy]; ok {
		dir := "ASC"
		if q.Order == domain.OrderDesc {
			dir = "DESC"
		}
		// Stable tiebreaker so pages do not shuffle between requests.
		orderClause = fmt.Sprintf("ORDER BY %s %s, id ASC", col, dir)
	}

	// count(*) OVER() gives the total count in a single query.
	query := fmt.Sprintf(`
		SELECT id, title, description, category, price, image_url, rating, review_count, created_at, updated_at,
			   count(*) OVER() AS total_count
		FROM products
		%s
		%s
		LIMIT $%d OFFSET $%d`,
		whereClause, orderClause, argIndex, argIndex+1,
	)

	limit := q.PerPage
	if limit <= 0 {
		limit = 20
	}
	offset := 0
	if q.Page > 1 {
		offset = (q.Page - 1) * limit
	}

	args = append(args, limit, offset)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()

	var (
		products   []domain.Product
		totalCount int
	)

	for rows.Next() {
		var p domain.Product
		if err := rows.Scan(
			&p.ID,
			&p.Title,
			&p.Description,
			&p.Category,
			&p.Price,
			&p.ImageURL,
			&p.Rating,
			&p.ReviewCount,
			&p.CreatedAt,
			&p.UpdatedAt,
			&totalCount,
		); err != nil {
			return nil, 0, fmt.Errorf("scan product row: %w", err)
		}
		products = append(products, p)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate product rows: %w", err)
	}

	if products == nil {
		products = []domain.Product{}
	}

	return products, totalCount, nil
}

// UpdateRating sets the denormalized rating and review count for a product.
func (r *ProductRepository) UpdateRating(ctx context.Context, productID string, rating float64, reviewCount int) error {
	query := `
		UPDATE products
		SET rating = $1, review_count = $2, updated_at = now()
		WHERE id = $3`

	ct, err := r.db.Exec(ctx, query, rating, reviewCount, productID)
	if err != nil {
		return fmt.Errorf("update product rating: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return apperrors.NotFound("product", productID)
	}

	return nil
}

// isUniqueViolation checks if the error is a PostgreSQL unique constraint
// violation (SQLSTATE 23505).
func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "23505")
}
