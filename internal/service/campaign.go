package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	apperrors "github.com/uzgnsodyum/shopping-site-2/pkg/errors"

	"github.com/uzgnsodyum/shopping-site-2/internal/domain"
	"github.com/uzgnsodyum/shopping-site-2/internal/event"
	"github.com/uzgnsodyum/shopping-site-2/internal/repository"
)

// CreateCampaignInput holds the parameters for creating a campaign.
type CreateCampaignInput struct {
	Title       string    `json:"title" validate:"required"`
	Description string    `json:"description" validate:"required"`
	ImageURL    string    `json:"image_url" validate:"required,url"`
	DiscountPct int       `json:"discount_pct" validate:"required,gte=1,lte=100"`
	StartDate   time.Time `json:"start_date" validate:"required"`
	EndDate     time.Time `json:"end_date" validate:"required"`
	ProductIDs  []string  `json:"product_ids" validate:"required,min=1"`
}

// CampaignService implements the business logic for campaign operations.
type CampaignService struct {
	repo     repository.CampaignRepository
	producer *event.Producer
	logger   *slog.Logger
}

// NewCampaignService creates a new campaign service.
func NewCampaignService(repo repository.CampaignRepository, producer *event.Producer, logger *slog.Logger) *CampaignService {
	return &CampaignService{
		repo:     repo,
		producer: producer,
		logger:   logger,
	}
}

// CreateCampaign validates and persists a new campaign.
func (s *CampaignService) CreateCampaign(ctx context.Context, input CreateCampaignInput) (*domain.Campaign, error) {
	if input.Title == "" {
		return nil, apperrors.InvalidInput("title is required")
	}
	if input.Description == "" {
		return nil, apperrors.InvalidInput("description is required")
	}
	if input.ImageURL == "" {
		return nil, apperrors.InvalidInput("image url is required")
	}
	if input.DiscountPct < domain.MinDiscountPct || input.DiscountPct > domain.MaxDiscountPct {
		return nil, apperrors.InvalidInput(fmt.Sprintf("discount must be between %d and %d percent", domain.MinDiscountPct, domain.MaxDiscountPct))
	}
	if input.StartDate.IsZero() || input.EndDate.IsZero() {
		return nil, apperrors.InvalidInput("start and end dates are required")
	}
	if !input.EndDate.After(input.StartDate) {
		return nil, apperrors.InvalidInput("end date must be after start date")
	}
	if len(input.ProductIDs) == 0 {
		return nil, apperrors.InvalidInput("at least one product is required")
	}

	now := time.Now().UTC()
	campaign := &domain.Campaign{
		ID:          uuid.New().String(),
		Title:       input.Title,
		Description: input.Description,
		ImageURL:    input.ImageURL,
		DiscountPct: input.DiscountPct,
		StartDate:   input.StartDate,
		EndDate:     input.EndDate,
		ProductIDs:  input.ProductIDs,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.repo.Create(ctx, campaign); err != nil {
		return nil, fmt.Errorf("create campaign: %w", err)
	}

	if s.producer != nil {
		if err := s.producer.PublishCampaignCreated(ctx, campaign); err != nil {
			s.logger.ErrorContext(ctx, "failed to publish campaign.created event",
				slog.String("campaign_id", campaign.ID),
				slog.String("error", err.Error()),
			)
		}
	}

	s.logger.InfoContext(ctx, "campaign created",
		slog.String("campaign_id", campaign.ID),
		slog.String("title", campaign.Title),
		slog.Int("discount_pct", campaign.DiscountPct),
	)

	return campaign, nil
}

// GetCampaign retrieves a single campaign by ID.
func (s *CampaignService) GetCampaign(ctx context.Context, id string) (*domain.Campaign, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("campaign id is required")
	}
	campaign, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return campaign, nil
}

// ListCampaigns returns all campaigns in creation order.
func (s *CampaignService) ListCampaigns(ctx context.Context) ([]domain.Campaign, error) {
	campaigns, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list campaigns: %w", err)
	}
	return campaigns, nil
}
