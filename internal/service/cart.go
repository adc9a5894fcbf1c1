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

// AddItemInput holds the parameters for adding an item to the cart. Title,
// price, and image are snapshotted from the catalog, not trusted from the
// request.
type AddItemInput struct {
	ProductID   string `json:"product_id" validate:"required"`
	Quantity    int    `json:"quantity" validate:"required,gte=1,lte=99"`
	SpecialNote string `json:"special_note"`
}

// UpdateItemInput holds the parameters for updating a cart line. A nil
// SpecialNote keeps the existing note.
type UpdateItemInput struct {
	Quantity    int     `json:"quantity" validate:"required,gte=1,lte=99"`
	SpecialNote *string `json:"special_note"`
}

// CartService implements the business logic for cart operations. All
// mutations use optimistic versioning: a concurrent modification surfaces as
// ErrConflict rather than a silent lost update.
type CartService struct {
	repo     repository.CartRepository
	products repository.ProductRepository
	producer *event.Producer
	logger   *slog.Logger
}

// NewCartService creates a new cart service.
func NewCartService(repo repository.CartRepository, products repository.ProductRepository, producer *event.Producer, logger *slog.Logger) *CartService {
	return &CartService{
		repo:     repo,
		products: products,
		producer: producer,
		logger:   logger,
	}
}

// GetCart retrieves the cart for a user. If no cart exists, returns an empty
// cart rather than an error.
func (s *CartService) GetCart(ctx context.Context, userID string) (*domain.Cart, error) {
	if userID == "" {
		return nil, apperrors.InvalidInput("user id is required")
	}

	cart, err := s.repo.Get(ctx, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return newEmptyCart(userID), nil
		}
		return nil, fmt.Errorf("get cart: %w", err)
	}

	return cart, nil
}

// AddItem adds a product to the user's cart. If the product is already in the
// cart the quantities are merged; the existing line's special note is kept.
func (s *CartService) AddItem(ctx context.Context, userID string, input AddItemInput) (*domain.Cart, error) {
	if userID == "" {
		return nil, apperrors.InvalidInput("user id is required")
	}
	if input.ProductID == "" {
		return nil, apperrors.InvalidInput("product id is required")
	}
	if input.Quantity < domain.MinQuantity || input.Quantity > domain.MaxQuantity {
		return nil, apperrors.InvalidInput(fmt.Sprintf("quantity must be between %d and %d", domain.MinQuantity, domain.MaxQuantity))
	}

	product, err := s.products.GetByID(ctx, input.ProductID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("lookup product: %w", err)
	}

	cart, err := s.getOrCreateCart(ctx, userID)
	if err != nil {
		return nil, err
	}

	expectedVersion := cart.Version

	if i := cart.FindItemIndex(input.ProductID); i >= 0 {
		newQty := cart.Items[i].Quantity + input.Quantity
		if newQty > domain.MaxQuantity {
			newQty = domain.MaxQuantity
		}
		cart.Items[i].Quantity = newQty
		// Refresh the catalog snapshot but keep the shopper's note.
		cart.Items[i].Title = product.Title
		cart.Items[i].Price = product.Price
		cart.Items[i].ImageURL = product.ImageURL
	} else {
		cart.Items = append(cart.Items, domain.CartItem{
			ID:          uuid.New().String(),
			ProductID:   product.ID,
			Title:       product.Title,
			Price:       product.Price,
			Quantity:    input.Quantity,
			SpecialNote: input.SpecialNote,
			ImageURL:    product.ImageURL,
		})
	}

	if err := s.repo.SaveIfVersion(ctx, cart, expectedVersion); err != nil {
		if errors.Is(err, apperrors.ErrConflict) {
			return nil, err
		}
		return nil, fmt.Errorf("save cart: %w", err)
	}

	s.publishCartUpdated(ctx, cart)

	s.logger.InfoContext(ctx, "item added to cart",
		slog.String("user_id", userID),
		slog.String("product_id", input.ProductID),
		slog.Int("quantity", input.Quantity),
	)

	return cart, nil
}

// UpdateItem sets the quantity (and optionally the note) of a cart line.
func (s *CartService) UpdateItem(ctx context.Context, userID, itemID string, input UpdateItemInput) (*domain.Cart, error) {
	if userID == "" {
		return nil, apperrors.InvalidInput("user id is required")
	}
	if itemID == "" {
		return nil, apperrors.InvalidInput("item id is required")
	}
	if input.Quantity < domain.MinQuantity || input.Quantity > domain.MaxQuantity {
		return nil, apperrors.InvalidInput(fmt.Sprintf("quantity must be between %d and %d", domain.MinQuantity, domain.MaxQuantity))
	}

	cart, err := s.repo.Get(ctx, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NotFound("cart item", itemID)
		}
		return nil, fmt.Errorf("get cart for update: %w", err)
	}

	expectedVersion := cart.Version

	i := cart.FindItemByID(itemID)
	if i < 0 {
		return nil, apperrors.NotFound("cart item", itemID)
	}

	cart.Items[i].Quantity = input.Quantity
	if input.SpecialNote != nil {
		cart.Items[i].SpecialNote = *input.SpecialNote
	}

	if err := s.repo.SaveIfVersion(ctx, cart, expectedVersion); err != nil {
		if errors.Is(err, apperrors.ErrConflict) {
			return nil, err
		}
		return nil, fmt.Errorf("save cart: %w", err)
	}

	s.publishCartUpdated(ctx, cart)

	s.logger.InfoContext(ctx, "cart item updated",
		slog.String("user_id", userID),
		slog.String("item_id", itemID),
		slog.Int("quantity", input.Quantity),
	)

	return cart, nil
}

// RemoveItem removes a line from the cart.
func (s *CartService) RemoveItem(ctx context.Context, userID, itemID string) (*domain.Cart, error) {
	if userID == "" {
		return nil, apperrors.InvalidInput("user id is required")
	}
	if itemID == "" {
		return nil, apperrors.InvalidInput("item id is required")
	}

	cart, err := s.repo.Get(ctx, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NotFound("cart item", itemID)
		}
		return nil, fmt.Errorf("get cart for removal: %w", err)
	}

	expectedVersion := cart.Version

	i := cart.FindItemByID(itemID)
	if i < 0 {
		return nil, apperrors.NotFound("cart item", itemID)
	}
	cart.Items = append(cart.Items[:i], cart.Items[i+1:]...)

	if err := s.repo.SaveIfVersion(ctx, cart, expectedVersion); err != nil {
		if errors.Is(err, apperrors.ErrConflict) {
			return nil, err
		}
		return nil, fmt.Errorf("save cart: %w", err)
	}

	s.publishCartUpdated(ctx, cart)

	return cart, nil
}

// ClearCart removes all items from the user's cart. Clearing a missing cart
// is a no-op.
func (s *CartService) ClearCart(ctx context.Context, userID string) error {
	if userID == "" {
		return apperrors.InvalidInput("user id is required")
	}

	if err := s.repo.Delete(ctx, userID); err != nil {
		return fmt.Errorf("clear cart: %w", err)
	}

	if s.producer != nil {
		if err := s.producer.PublishCartCleared(ctx, userID); err != nil {
			s.logger.ErrorContext(ctx, "failed to publish cart.cleared event",
				slog.String("user_id", userID),
				slog.String("error", err.Error()),
			)
		}
	}

	s.logger.InfoContext(ctx, "cart cleared", slog.String("user_id", userID))

	return nil
}

func newEmptyCart(userID string) *domain.Cart {
	now := time.Now().UTC()
	return &domain.Cart{
		UserID:    userID,
		Items:     []domain.CartItem{},
		Version:   0,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func (s *CartService) getOrCreateCart(ctx context.Context, userID string) (*domain.Cart, error) {
	cart, err := s.repo.Get(ctx, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return newEmptyCart(userID), nil
		}
		return nil, fmt.Errorf("get cart: %w", err)
	}
	return cart, nil
}

// publishCartUpdated publishes the event best-effort: a broker outage must
// not fail the cart operation.
func (s *CartService) publishCartUpdated(ctx context.Context, cart *domain.Cart) {
	if s.producer == nil {
		return
	}
	if err := s.producer.PublishCartUpdated(ctx, cart); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish cart.updated event",
			slog.String("user_id", cart.UserID),
			slog.String("error", err.Error()),
		)
	}
}
