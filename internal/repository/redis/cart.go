package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	apperrors "github.com/uzgnsodyum/shopping-site-2/pkg/errors"

	"github.com/uzgnsodyum/shopping-site-2/internal/domain"
)

const keyPrefix = "cart:"

// CartRepository implements repository.CartRepository using Redis.
type CartRepository struct {
	client *redis.Client
	ttl    time.Duration
}

// NewCartRepository creates a new Redis-backed cart repository. Carts expire
// after the given TTL of inactivity.
func NewCartRepository(client *redis.Client, ttl time.Duration) *CartRepository {
	return &CartRepository{
		client: client,
		ttl:    ttl,
	}
}

// Get retrieves a cart by user ID from Redis.
func (r *CartRepository) Get(ctx context.Context, userID string) (*domain.Cart, error) {
	key := keyPrefix + userID

	data, err := r.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, apperrors.NotFound("cart", userID)
		}
		return nil, fmt.Errorf("redis get cart: %w", err)
	}

	var cart domain.Cart
	if err := json.Unmarshal(data, &cart); err != nil {
		return nil, fmt.Errorf("unmarshal cart: %w", err)
	}

	return &cart, nil
}

// SaveIfVersion persists the cart only if the stored version still equals
// expectedVersion. It uses a WATCH/MULTI transaction so a concurrent writer
// causes ErrConflict rather than a lost update. A missing key is treated as
// version 0, which lets first writes create the cart.
func (r *CartRepository) SaveIfVersion(ctx context.Context, cart *domain.Cart, expectedVersion int) error {
	key := keyPrefix + cart.UserID

	txn := func(tx *redis.Tx) error {
		stored, err := tx.Get(ctx, key).Bytes()
		switch {
		case errors.Is(err, redis.Nil):
			if expectedVersion != 0 {
				return apperrors.Conflict("cart was modified concurrently")
			}
		case err != nil:
			return fmt.Errorf("redis get cart: %w", err)
		default:
			var current domain.Cart
			if err := json.Unmarshal(stored, &current); err != nil {
				return fmt.Errorf("unmarshal cart: %w", err)
			}
			if current.Version != expectedVersion {
				return apperrors.Conflict("cart was modified concurrently")
			}
		}

		cart.Version = expectedVersion + 1
		cart.UpdatedAt = time.Now().UTC()

		data, err := json.Marshal(cart)
		if err != nil {
			return fmt.Errorf("marshal cart: %w", err)
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, data, r.ttl)
			return nil
		})
		return err
	}

	err := r.client.Watch(ctx, txn, key)
	if errors.Is(err, redis.TxFailedErr) {
		return apperrors.Conflict("cart was modified concurrently")
	}
	return err
}

// Delete removes a cart from Redis by user ID.
func (r *CartRepository) Delete(ctx context.Context, userID string) error {
	key := keyPrefix + userID

	if err := r.client.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("redis del cart: %w", err)
	}

	return nil
}
