package port

import (
	"context"
	"time"

	"github.com/brandkit/asset-pipeline-go/internal/uuid"
)

// Cache provides caching capabilities for asset detail retrieval.
type Cache interface {
	GetAssetDetails(ctx context.Context, id uuid.UUID) ([]byte, error)
	SetAssetDetails(ctx context.Context, id uuid.UUID, data []byte, validUntil time.Time)
	DeleteAssetDetails(ctx context.Context, id uuid.UUID) error
}
