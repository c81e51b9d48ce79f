package cache

import (
	"context"
	"time"

	"github.com/brandkit/asset-pipeline-go/internal/port"
	"github.com/brandkit/asset-pipeline-go/internal/uuid"
)

// NoopCache is used when no Redis instance is configured.
type NoopCache struct{}

var _ port.Cache = (*NoopCache)(nil)

func NewNoopCache() *NoopCache { return &NoopCache{} }

func (c *NoopCache) GetAssetDetails(ctx context.Context, id uuid.UUID) ([]byte, error) {
	return nil, nil
}

func (c *NoopCache) SetAssetDetails(ctx context.Context, id uuid.UUID, data []byte, validUntil time.Time) {
}

func (c *NoopCache) DeleteAssetDetails(ctx context.Context, id uuid.UUID) error {
	return nil
}
