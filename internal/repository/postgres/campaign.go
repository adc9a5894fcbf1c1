package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	apperrors "github.com/uzgnsodyum/shopping-site-2/pkg/errors"

	"github.com/uzgnsodyum/shopping-site-2/internal/domain"
	"github.com/uzgnsodyum/shopping-site-2/pkg/database"
)

// CampaignRepository implements repository.CampaignRepository using PostgreSQL.
type CampaignRepository struct {
	db database.DBTX
}

// NewCampaignRepository creates a new PostgreSQL-backed campaign repository.
func NewCampaignRepository(db database.DBTX) *CampaignRepository {
	return &CampaignRepository{db: db}
}

// Create inserts a new campaign into the database.
func (r *CampaignRepository) Create(ctx context.Context, c *domain.Campaign) error {
	productsJSON, err := json.Marshal(c.ProductIDs)
	if err != nil {
		return fmt.Errorf("marshal product_ids: %w", err)
	}

	query := `
		INSERT INTO campaigns (id, title, description, image_url, discount_pct, start_date, end_date, product_ids, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

	_, err = r.db.Exec(ctx, query,
		c.ID,
		c.Title,
		c.Description,
		c.ImageURL,
		c.DiscountPct,
		c.StartDate,
		c.EndDate,
		productsJSON,
		c.CreatedAt,
		c.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.AlreadyExists("campaign", "id", c.ID)
		}
		return fmt.Errorf("insert campaign: %w", err)
	}

	return nil
}

// GetByID retrieves a campaign by its ID.
func (r *CampaignRepository) GetByID(ctx context.Context, id string) (*domain.Campaign, error) {
	query := `
		SELECT id, title, description, image_url, discount_pct, start_date, end_date, product_ids, created_at, updated_at
		FROM campaigns
		WHERE id = $1`

	var (
		c            domain.Campaign
		productsJSON []byte
	)
	err := r.db.QueryRow(ctx, query, id).Scan(
		&c.ID,
		&c.Title,
		&c.Description,
		&c.ImageURL,
		&c.DiscountPct,
		&c.StartDate,
		&c.EndDate,
		&productsJSON,
		&c.CreatedAt,
		&c.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NotFound("campaign", id)
		}
		return nil, fmt.Errorf("scan campaign: %w", err)
	}

	if productsJSON != nil {
		if err := json.Unmarshal(productsJSON, &c.ProductIDs); err != nil {
			return nil, fmt.Errorf("unmarshal product_ids: %w", err)
		}
	}

	return &c, nil
}

// List returns all campaigns in creation order. Pricing applies campaigns
// sequentially, so this ordering determines which discount wins when a
// product appears in several campaigns.
func (r *CampaignRepository) List(ctx context.Context) ([]domain.Campaign, error) {
	query := `
		SELECT id, title, description, image_url, discount_pct, start_date, end_date, product_ids, created_at, updated_at
		FROM campaigns
		ORDER BY created_at ASC, id ASC`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list campaigns: %w", err)
	}
	defer rows.Close()

	var campaigns []domain.Campaign
	for rows.Next() {
		var (
			c            domain.Campaign
			productsJSON []byte
		)
		if err := rows.Scan(
			&c.ID,
			&c.Title,
			&c.Description,
			&c.ImageURL,
			&c.DiscountPct,
			&c.StartDate,
			&c.EndDate,
			&productsJSON,
			&c.CreatedAt,
			&c.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan campaign row: %w", err)
		}

		if productsJSON != nil {
			if err := json.Unmarshal(productsJSON, &c.ProductIDs); err != nil {
				return nil, fmt.Errorf("unmarshal product_ids: %w", err)
			}
		}

		campaigns = append(campaigns, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate campaign rows: %w", err)
	}

	if campaigns == nil {
		campaigns = []domain.Campaign{}
	}

	return campaigns, nil
}
