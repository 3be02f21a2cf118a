package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/jewellerymart/catalog/internal/models"
)

const productTTL = 10 * time.Minute

// ProductCache is a read-through cache for single-product lookups. Misses
// and errors both fall back to the database; mutations invalidate the key.
type ProductCache struct {
	rdb *redis.Client
}

func New(rdb *redis.Client) *ProductCache {
	return &ProductCache{rdb: rdb}
}

func key(id string) string {
	return fmt.Sprintf("product:%s", id)
}

func (c *ProductCache) Get(ctx context.Context, id string) (*models.Product, error) {
	val, err := c.rdb.Get(ctx, key(id)).Result()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var prod models.Product
	if err := json.Unmarshal([]byte(val), &prod); err != nil {
		return nil, err
	}
	return &prod, nil
}

func (c *ProductCache) Set(ctx context.Context, prod *models.Product) error {
	data, err := json.Marshal(prod)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, key(prod.ID), data, productTTL).Err()
}

func (c *ProductCache) Invalidate(ctx context.Context, id string) error {
	return c.rdb.Del(ctx, key(id)).Err()
}
