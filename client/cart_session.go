package client

import (
	"context"
	"log/slog"
	"sync"

	"github.com/uzgnsodyum/shopping-site-2/internal/domain"
	"github.com/uzgnsodyum/shopping-site-2/internal/service"
)

// CartSession is a client-side view of one shopper's cart. The server is the
// source of truth: every mutation refreshes the local state from the API, and
// a failed refresh resets the session to an empty cart rather than serving
// stale line items.
type CartSession struct {
	client *Client
	logger *slog.Logger

	mu    sync.RWMutex
	items []domain.CartItem
	total int64
}

// NewCartSession creates a session bound to the client's user.
func NewCartSession(client *Client, logger *slog.Logger) *CartSession {
	return &CartSession{
		client: client,
		logger: logger,
		items:  []domain.CartItem{},
	}
}

// Items returns a copy of the current line items.
func (s *CartSession) Items() []domain.CartItem {
	s.mu.RLock()
	defer s.mu.RUnlock()
	items := make([]domain.CartItem, len(s.items))
	copy(items, s.items)
	return items
}

// TotalAmount returns the undiscounted total of the current items.
func (s *CartSession) TotalAmount() int64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.total
}

// ItemCount returns the total quantity across all line items.
func (s *CartSession) ItemCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	count := 0
	for _, item := range s.items {
		count += item.Quantity
	}
	return count
}

// Refresh reloads the cart from the server. On failure the session is reset
// to an empty cart and the error is logged, so render paths always see a
// consistent, if empty, state.
func (s *CartSession) Refresh(ctx context.Context) {
	cart, err := s.client.GetCart(ctx)
	if err != nil {
		s.logger.WarnContext(ctx, "cart refresh failed, resetting to empty",
			slog.String("error", err.Error()),
		)
		s.set(nil)
		return
	}
	s.set(cart.Items)
}

// AddItem adds a product to the cart and refreshes. Returns true when the
// server accepted the item.
func (s *CartSession) AddItem(ctx context.Context, productID string, quantity int, note string) bool {
	_, err := s.client.AddCartItem(ctx, service.AddItemInput{
		ProductID:   productID,
		Quantity:    quantity,
		SpecialNote: note,
	})
	if err != nil {
		s.logger.WarnContext(ctx, "add to cart failed",
			slog.String("product_id", productID),
			slog.String("error", err.Error()),
		)
		return false
	}
	s.Refresh(ctx)
	return true
}

// UpdateItem sets a line's quantity (and optionally note) and refreshes.
func (s *CartSession) UpdateItem(ctx context.Context, itemID string, quantity int, note *string) bool {
	_, err := s.client.UpdateCartItem(ctx, itemID, service.UpdateItemInput{
		Quantity:    quantity,
		SpecialNote: note,
	})
	if err != nil {
		s.logger.WarnContext(ctx, "cart item update failed",
			slog.String("item_id", itemID),
			slog.String("error", err.Error()),
		)
		return false
	}
	s.Refresh(ctx)
	return true
}

// RemoveItem removes a line and refreshes.
func (s *CartSession) RemoveItem(ctx context.Context, itemID string) bool {
	if _, err := s.client.RemoveCartItem(ctx, itemID); err != nil {
		s.logger.WarnContext(ctx, "cart item removal failed",
			slog.String("item_id", itemID),
			slog.String("error", err.Error()),
		)
		return false
	}
	s.Refresh(ctx)
	return true
}

// Checkout completes the purchase and resets the session on success.
func (s *CartSession) Checkout(ctx context.Context) (*CheckoutResult, bool) {
	result, err := s.client.Checkout(ctx)
	if err != nil {
		s.logger.WarnContext(ctx, "checkout failed",
			slog.String("error", err.Error()),
		)
		return nil, false
	}
	s.set(nil)
	return result, true
}

func (s *CartSession) set(items []domain.CartItem) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if items == nil {
		items = []domain.CartItem{}
	}
	s.items = items
	cart := domain.Cart{Items: items}
	s.total = cart.TotalAmount()
}
