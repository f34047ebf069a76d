// Package cart keeps per-user carts in Redis: one hash per user keyed by
// product id, values are JSON-encoded cart items. The cart is the only
// client-visible mutable state between checkout steps, so every operation is
// written to be safe under re-issue (clearing an already empty cart is a no-op).
package cart

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/atletia/storefront/internal/models"
	"github.com/redis/go-redis/v9"
)

// CartKey is the redis key holding the cart hash for a user.
func CartKey(userID string) string {
	return fmt.Sprintf("storefront:cart:%s", userID)
}

// Store is a redis-backed cart store.
type Store struct {
	rdb *redis.Client
}

// NewStore creates new Store instance
func NewStore(rdb *redis.Client) *Store {
	return &Store{rdb: rdb}
}

// AddItem adds an item to the user's cart. If the product is already present
// its quantity is increased by item.Quantity.
func (s *Store) AddItem(ctx context.Context, userID string, item models.CartItem) error {
	key := CartKey(userID)

	cur, err := s.rdb.HGet(ctx, key, item.ProductID).Result()
	if err != nil && err != redis.Nil {
		return err
	}
	if err == nil {
		existing := models.CartItem{}
		if err := json.Unmarshal([]byte(cur), &existing); err != nil {
			return err
		}
		item.Quantity += existing.Quantity
	}

	return s.putItem(ctx, key, item)
}

// UpdateQuantity sets the quantity of a cart line. Zero or negative removes it.
func (s *Store) UpdateQuantity(ctx context.Context, userID string, productID string, quantity int32) error {
	if quantity <= 0 {
		return s.RemoveItem(ctx, userID, productID)
	}

	key := CartKey(userID)
	cur, err := s.rdb.HGet(ctx, key, productID).Result()
	if err != nil {
		if err == redis.Nil {
			return models.ErrDataNotFound
		}
		return err
	}

	item := models.CartItem{}
	if err := json.Unmarshal([]byte(cur), &item); err != nil {
		return err
	}
	item.Quantity = quantity

	return s.putItem(ctx, key, item)
}

// RemoveItem removes a cart line
func (s *Store) RemoveItem(ctx context.Context, userID string, productID string) error {
	return s.rdb.HDel(ctx, CartKey(userID), productID).Err()
}

// Clear drops the whole cart. Clearing an empty cart is a no-op.
func (s *Store) Clear(ctx context.Context, userID string) error {
	return s.rdb.Del(ctx, CartKey(userID)).Err()
}

// Items returns all cart lines for a user
func (s *Store) Items(ctx context.Context, userID string) ([]models.CartItem, error) {
	m, err := s.rdb.HGetAll(ctx, CartKey(userID)).Result()
	if err != nil {
		return nil, err
	}

	items := []models.CartItem{}
	for _, raw := range m {
		item := models.CartItem{}
		if err := json.Unmarshal([]byte(raw), &item); err != nil {
			continue
		}
		items = append(items, item)
	}

	return items, nil
}

func (s *Store) putItem(ctx context.Context, key string, item models.CartItem) error {
	raw, err := json.Marshal(item)
	if err != nil {
		return err
	}
	return s.rdb.HSet(ctx, key, item.ProductID, raw).Err()
}
