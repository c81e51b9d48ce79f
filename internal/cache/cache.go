package cache

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/brandkit/asset-pipeline-go/internal/port"
	"github.com/brandkit/asset-pipeline-go/internal/uuid"
	"github.com/redis/go-redis/v9"
)

type Cache struct {
	client *redis.Client
}

// compile-time check: *Cache must satisfy port.Cache
var _ port.Cache = (*Cache)(nil)

func NewCache(addr, password string) *Cache {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       0,
	})

	return &Cache{client: rdb}
}

func (c *Cache) GetAssetDetails(ctx context.Context, id uuid.UUID) ([]byte, error) {
	val, err := c.client.Get(ctx, getCacheKey(id.String())).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil // cache miss
	}
	if err != nil {
		return nil, fmt.Errorf("redis get failed: %w", err)
	}
	return val, nil
}

func (c *Cache) SetAssetDetails(ctx context.Context, id uuid.UUID, data []byte, validUntil time.Time) {
	ttl := time.Until(validUntil)
	if ttl <= 0 {
		return
	}
	if err := c.client.Set(ctx, getCacheKey(id.String()), data, ttl).Err(); err != nil {
		log.Printf("failed caching details for asset #%s: %v", id, err)
	}
}

func (c *Cache) DeleteAssetDetails(ctx context.Context, id uuid.UUID) error {
	log.Printf("deleting cache entry for asset #%s...", id)

	if err := c.client.Del(ctx, getCacheKey(id.String())).Err(); err != nil {
		return fmt.Errorf("redis del failed: %w", err)
	}
	return nil
}

func getCacheKey(id string) string {
	return "asset_details:" + id
}
