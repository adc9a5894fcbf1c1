package event

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/uzgnsodyum/shopping-site-2/internal/domain"
	pkgkafka "github.com/uzgnsodyum/shopping-site-2/pkg/kafka"
)

// Kafka topic constants for storefront domain events.
const (
	TopicCartUpdated       = "storefront.cart.updated"
	TopicCartCleared       = "storefront.cart.cleared"
	TopicCampaignCreated   = "storefront.campaign.created"
	TopicReviewCreated     = "storefront.review.created"
	TopicCheckoutCompleted = "storefront.checkout.completed"
)

// Aggregate type constants.
const (
	AggregateTypeCart     = "cart"
	AggregateTypeCampaign = "campaign"
	AggregateTypeProduct  = "product"
	AggregateTypeOrder    = "order"
)

// Source identifier for events originating from this service.
const Source = "storefront"

// CartUpdatedData is the payload for a cart.updated event.
type CartUpdatedData struct {
	UserID      string `json:"user_id"`
	ItemCount   int    `json:"item_count"`
	TotalAmount int64  `json:"total_amount"`
}

// CartClearedData is the payload for a cart.cleared event.
type CartClearedData struct {
	UserID string `json:"user_id"`
}

// CampaignCreatedData is the payload for a campaign.created event.
type CampaignCreatedData struct {
	CampaignID  string   `json:"campaign_id"`
	Title       string   `json:"title"`
	DiscountPct int      `json:"discount_pct"`
	ProductIDs  []string `json:"product_ids"`
}

// ReviewCreatedData is the payload for a review.created event.
type ReviewCreatedData struct {
	ReviewID  string  `json:"review_id"`
	ProductID string  `json:"product_id"`
	Rating    int     `json:"rating"`
	NewRating float64 `json:"new_rating"`
}

// CheckoutCompletedData is the payload for a checkout.completed event.
type CheckoutCompletedData struct {
	OrderID     string `json:"order_id"`
	UserID      string `json:"user_id"`
	ItemCount   int    `json:"item_count"`
	Subtotal    int64  `json:"subtotal"`
	DeliveryFee int64  `json:"delivery_fee"`
	Total       int64  `json:"total"`
}

// Producer publishes storefront domain events to Kafka.
type Producer struct {
	kafka  *pkgkafka.Producer
	logger *slog.Logger
}

// NewProducer creates a new event producer.
func NewProducer(kafka *pkgkafka.Producer, logger *slog.Logger) *Producer {
	return &Producer{
		kafka:  kafka,
		logger: logger,
	}
}

// PublishCartUpdated publishes a cart.updated event.
func (p *Producer) PublishCartUpdated(ctx context.Context, cart *domain.Cart) error {
	data := CartUpdatedData{
		UserID:      cart.UserID,
		ItemCount:   cart.ItemCount(),
		TotalAmount: cart.TotalAmount(),
	}

	event, err := pkgkafka.NewEvent(TopicCartUpdated, cart.UserID, AggregateTypeCart, Source, data)
	if err != nil {
		return fmt.Errorf("create cart.updated event: %w", err)
	}

	if err := p.kafka.Publish(ctx, TopicCartUpdated, event); err != nil {
		return fmt.Errorf("publish cart.updated event: %w", err)
	}

	p.logger.DebugContext(ctx, "published cart.updated event",
		slog.String("user_id", cart.UserID),
		slog.Int("item_count", cart.ItemCount()),
	)

	return nil
}

// PublishCartCleared publishes a cart.cleared event.
func (p *Producer) PublishCartCleared(ctx context.Context, userID string) error {
	event, err := pkgkafka.NewEvent(TopicCartCleared, userID, AggregateTypeCart, Source, CartClearedData{UserID: userID})
	if err != nil {
		return fmt.Errorf("create cart.cleared event: %w", err)
	}

	if err := p.kafka.Publish(ctx, TopicCartCleared, event); err != nil {
		return fmt.Errorf("publish cart.cleared event: %w", err)
	}

	return nil
}

// PublishCampaignCreated publishes a campaign.created event.
func (p *Producer) PublishCampaignCreated(ctx context.Context, c *domain.Campaign) error {
	data := CampaignCreatedData{
		CampaignID:  c.ID,
		Title:       c.Title,
		DiscountPct: c.DiscountPct,
		ProductIDs:  c.ProductIDs,
	}

	event, err := pkgkafka.NewEvent(TopicCampaignCreated, c.ID, AggregateTypeCampaign, Source, data)
	if err != nil {
		return fmt.Errorf("create campaign.created event: %w", err)
	}

	if err := p.kafka.Publish(ctx, TopicCampaignCreated, event); err != nil {
		return fmt.Errorf("publish campaign.created event: %w", err)
	}

	return nil
}

// PublishReviewCreated publishes a review.created event. newRating is the
// product's recomputed average after the review was stored.
func (p *Producer) PublishReviewCreated(ctx context.Context, review *domain.Review, newRating float64) error {
	data := ReviewCreatedData{
		ReviewID:  review.ID,
		ProductID: review.ProductID,
		Rating:    review.Rating,
		NewRating: newRating,
	}

	event, err := pkgkafka.NewEvent(TopicReviewCreated, review.ProductID, AggregateTypeProduct, Source, data)
	if err != nil {
		return fmt.Errorf("create review.created event: %w", err)
	}

	if err := p.kafka.Publish(ctx, TopicReviewCreated, event); err != nil {
		return fmt.Errorf("publish review.created event: %w", err)
	}

	return nil
}

// PublishCheckoutCompleted publishes a checkout.completed event.
func (p *Producer) PublishCheckoutCompleted(ctx context.Context, order *domain.Order) error {
	itemCount := 0
	for _, item := range order.Items {
		itemCount += item.Quantity
	}

	data := CheckoutCompletedData{
		OrderID:     order.ID,
		UserID:      order.UserID,
		ItemCount:   itemCount,
		Subtotal:    order.Subtotal,
		DeliveryFee: order.DeliveryFee,
		Total:       order.Total,
	}

	event, err := pkgkafka.NewEvent(TopicCheckoutCompleted, order.ID, AggregateTypeOrder, Source, data)
	if err != nil {
		return fmt.Errorf("create checkout.completed event: %w", err)
	}

	if err := p.kafka.Publish(ctx, TopicCheckoutCompleted, event); err != nil {
		return fmt.Errorf("publish checkout.completed event: %w", err)
	}

	p.logger.DebugContext(ctx, "published checkout.completed event",
		slog.String("order_id", order.ID),
		slog.String("user_id", order.UserID),
	)

	return nil
}
