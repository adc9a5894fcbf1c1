package client

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/uzgnsodyum/shopping-site-2/pkg/errors"

	"github.com/uzgnsodyum/shopping-site-2/internal/domain"
	"github.com/uzgnsodyum/shopping-site-2/internal/service"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
}

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return New(Config{BaseURL: srv.URL, UserID: "user-1"}, testLogger())
}

func writeData(t *testing.T, w http.ResponseWriter, status int, data any) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	require.NoError(t, json.NewEncoder(w).Encode(map[string]any{"data": data}))
}

func TestGetProducts(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/products", r.URL.Path)
		assert.Equal(t, "charger", r.URL.Query().Get("q"))
		assert.Equal(t, "price", r.URL.Query().Get("sort"))
		writeData(t, w, http.StatusOK, ProductPage{
			Products: []domain.Product{{ID: "prod-1", Title: "Wireless Phone Charger", Price: 500}},
			Total:    1,
		})
	})

	page, err := c.GetProducts(context.Background(), "charger", "price", "asc", 0, 0)

	require.NoError(t, err)
	require.Len(t, page.Products, 1)
	assert.Equal(t, int64(500), page.Products[0].Price)
	assert.Equal(t, 1, page.Total)
}

func TestGetProduct_NotFound(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"error":{"code":"NOT_FOUND","message":"product not found"}}`))
	})

	_, err := c.GetProduct(context.Background(), "missing")

	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestGetCart_SendsUserIDHeader(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "user-1", r.Header.Get("X-User-ID"))
		writeData(t, w, http.StatusOK, domain.Cart{UserID: "user-1", Items: []domain.CartItem{}})
	})

	cart, err := c.GetCart(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "user-1", cart.UserID)
}

func TestAddCartItem_Conflict(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusConflict)
		_, _ = w.Write([]byte(`{"error":{"code":"CONFLICT","message":"cart was modified concurrently"}}`))
	})

	_, err := c.AddCartItem(context.Background(), service.AddItemInput{ProductID: "prod-1", Quantity: 1})

	assert.ErrorIs(t, err, apperrors.ErrConflict)
}

func TestQuote(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/cart/quote", r.URL.Path)
		writeData(t, w, http.StatusOK, domain.Quote{Subtotal: 560, DeliveryFee: 50, Total: 610})
	})

	quote, err := c.Quote(context.Background())

	require.NoError(t, err)
	assert.Equal(t, int64(610), quote.Total)
}

func TestCheckout(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		writeData(t, w, http.StatusCreated, CheckoutResult{
			Order: &domain.Order{ID: "order-1", Total: 610, Status: domain.OrderStatusConfirmed},
		})
	})

	result, err := c.Checkout(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "order-1", result.Order.ID)
}

func TestCartSession_RefreshResetsOnFailure(t *testing.T) {
	calls := 0
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls == 1 {
			writeData(t, w, http.StatusOK, domain.Cart{
				UserID: "user-1",
				Items:  []domain.CartItem{{ID: "item-1", ProductID: "prod-1", Price: 20, Quantity: 3}},
			})
			return
		}
		w.WriteHeader(http.StatusBadGateway)
	})

	session := NewCartSession(c, testLogger())
	ctx := context.Background()

	session.Refresh(ctx)
	assert.Len(t, session.Items(), 1)
	assert.Equal(t, int64(60), session.TotalAmount())

	// The upstream now fails; the session falls back to an empty cart.
	session.Refresh(ctx)
	assert.Empty(t, session.Items())
	assert.Equal(t, int64(0), session.TotalAmount())
}

func TestCartSession_AddItem(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		cart := domain.Cart{
			UserID: "user-1",
			Items:  []domain.CartItem{{ID: "item-1", ProductID: "prod-1", Price: 500, Quantity: 2}},
		}
		writeData(t, w, http.StatusOK, cart)
	})

	session := NewCartSession(c, testLogger())

	ok := session.AddItem(context.Background(), "prod-1", 2, "")

	assert.True(t, ok)
	assert.Equal(t, 2, session.ItemCount())
	assert.Equal(t, int64(1000), session.TotalAmount())
}

func TestCartSession_AddItemFailure(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":{"code":"INVALID_INPUT","message":"quantity must be between 1 and 99"}}`))
	})

	session := NewCartSession(c, testLogger())

	ok := session.AddItem(context.Background(), "prod-1", 100, "")

	assert.False(t, ok)
	assert.Empty(t, session.Items())
}

func TestCartSession_Checkout(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeData(t, w, http.StatusCreated, CheckoutResult{
			Order: &domain.Order{ID: "order-1", Total: 610},
		})
	})

	session := NewCartSession(c, testLogger())

	result, ok := session.Checkout(context.Background())

	require.True(t, ok)
	assert.Equal(t, "order-1", result.Order.ID)
	assert.Empty(t, session.Items())
}
