package port

import (
	"context"
	"time"

	"github.com/brandkit/asset-pipeline-go/internal/model"
	"github.com/brandkit/asset-pipeline-go/internal/uuid"
)

// AssetRepository defines persistence operations for assets.
type AssetRepository interface {
	Create(ctx context.Context, asset *model.Asset) error
	Update(ctx context.Context, asset *model.Asset) error
	GetByID(ctx context.Context, ID uuid.UUID) (*model.Asset, error)
	ListStuckProcessingBefore(ctx context.Context, before time.Time) ([]uuid.UUID, error)
	ListPendingThumbnailsBefore(ctx context.Context, before time.Time) ([]uuid.UUID, error)
}
