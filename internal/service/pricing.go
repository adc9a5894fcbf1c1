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

// PricingOptions control optional pricing behavior, set from configuration.
type PricingOptions struct {
	// DiscountsEnabled applies campaign discounts when quoting. When false,
	// every line is priced at the catalog price.
	DiscountsEnabled bool
	// CheckoutReviewsEnabled includes the purchased product IDs in the
	// checkout result so the client can prompt for reviews.
	CheckoutReviewsEnabled bool
}

// CheckoutResult is the outcome of a completed checkout.
type CheckoutResult struct {
	Order *domain.Order `json:"order"`
	// ReviewableProductIDs lists the purchased products, in cart order, when
	// review prompting is enabled. Nil otherwise.
	ReviewableProductIDs []string `json:"reviewable_product_ids,omitempty"`
}

// PricingService computes cart quotes and runs checkout. Campaigns are
// applied in creation order and the last campaign matching a product
// determines its discount.
type PricingService struct {
	carts     repository.CartRepository
	campaigns repository.CampaignRepository
	producer  *event.Producer
	logger    *slog.Logger
	opts      PricingOptions
}

// NewPricingService creates a new pricing service.
func NewPricingService(carts repository.CartRepository, campaigns repository.CampaignRepository, producer *event.Producer, logger *slog.Logger, opts PricingOptions) *PricingService {
	return &PricingService{
		carts:     carts,
		campaigns: campaigns,
		producer:  producer,
		logger:    logger,
		opts:      opts,
	}
}

// Quote prices the user's current cart. A missing cart quotes the same as an
// empty one, including the standard delivery fee.
func (s *PricingService) Quote(ctx context.Context, userID string) (*domain.Quote, error) {
	if userID == "" {
		return nil, apperrors.InvalidInput("user id is required")
	}

	cart, err := s.carts.Get(ctx, userID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("get cart: %w", err)
		}
		cart = newEmptyCart(userID)
	}

	return s.quoteCart(ctx, cart)
}

func (s *PricingService) quoteCart(ctx context.Context, cart *domain.Cart) (*domain.Quote, error) {
	var campaigns []domain.Campaign
	if s.opts.DiscountsEnabled && len(cart.Items) > 0 {
		var err error
		campaigns, err = s.campaigns.List(ctx)
		if err != nil {
			return nil, fmt.Errorf("list campaigns: %w", err)
		}
	}

	quote := &domain.Quote{Items: make([]domain.QuoteItem, 0, len(cart.Items))}
	for _, item := range cart.Items {
		qi := domain.QuoteItem{
			ProductID:       item.ProductID,
			Title:           item.Title,
			Quantity:        item.Quantity,
			UnitPrice:       item.Price,
			DiscountedPrice: item.Price,
			SpecialNote:     item.SpecialNote,
		}
		// Later campaigns overwrite earlier ones, so the newest matching
		// campaign sets the effective price.
		for _, c := range campaigns {
			if c.AppliesTo(item.ProductID) {
				qi.DiscountedPrice = c.DiscountedPrice(item.Price)
				qi.CampaignID = c.ID
			}
		}
		qi.LineTotal = qi.DiscountedPrice * int64(qi.Quantity)
		quote.Subtotal += qi.LineTotal
		quote.Items = append(quote.Items, qi)
	}

	// The delivery fee is keyed on the undiscounted cart total, so a
	// discount never reintroduces the fee on an otherwise qualifying cart.
	quote.DeliveryFee = domain.DeliveryFeeFor(cart.TotalAmount())
	quote.Total = quote.Subtotal + quote.DeliveryFee

	return quote, nil
}

// Checkout prices the cart, records the order, and clears the cart. Payment
// is simulated: every non-empty cart checks out successfully.
func (s *PricingService) Checkout(ctx context.Context, userID string) (*CheckoutResult, error) {
	if userID == "" {
		return nil, apperrors.InvalidInput("user id is required")
	}

	cart, err := s.carts.Get(ctx, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.InvalidInput("cart is empty")
		}
		return nil, fmt.Errorf("get cart: %w", err)
	}
	if len(cart.Items) == 0 {
		return nil, apperrors.InvalidInput("cart is empty")
	}

	quote, err := s.quoteCart(ctx, cart)
	if err != nil {
		return nil, err
	}

	order := &domain.Order{
		ID:          uuid.New().String(),
		UserID:      userID,
		Items:       quote.Items,
		Subtotal:    quote.Subtotal,
		DeliveryFee: quote.DeliveryFee,
		Total:       quote.Total,
		Status:      domain.OrderStatusConfirmed,
		CreatedAt:   time.Now().UTC(),
	}

	if err := s.carts.Delete(ctx, userID); err != nil {
		return nil, fmt.Errorf("clear cart after checkout: %w", err)
	}

	if s.producer != nil {
		if err := s.producer.PublishCheckoutCompleted(ctx, order); err != nil {
			s.logger.ErrorContext(ctx, "failed to publish checkout.completed event",
				slog.String("order_id", order.ID),
				slog.String("error", err.Error()),
			)
		}
		if err := s.producer.PublishCartCleared(ctx, userID); err != nil {
			s.logger.ErrorContext(ctx, "failed to publish cart.cleared event",
				slog.String("user_id", userID),
				slog.String("error", err.Error()),
			)
		}
	}

	result := &CheckoutResult{Order: order}
	if s.opts.CheckoutReviewsEnabled {
		ids := make([]string, 0, len(order.Items))
		for _, item := range order.Items {
			ids = append(ids, item.ProductID)
		}
		result.ReviewableProductIDs = ids
	}

	s.logger.InfoContext(ctx, "checkout completed",
		slog.String("order_id", order.ID),
		slog.String("user_id", userID),
		slog.Int64("total", order.Total),
	)

	return result, nil
}
