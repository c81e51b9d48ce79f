package port

import (
	"context"

	"github.com/brandkit/asset-pipeline-go/internal/model"
	"github.com/brandkit/asset-pipeline-go/internal/uuid"
)

// VersionRepository defines persistence operations for asset versions.
type VersionRepository interface {
	Create(ctx context.Context, version *model.AssetVersion) error
	GetByID(ctx context.Context, ID uuid.UUID) (*model.AssetVersion, error)
	ListByAsset(ctx context.Context, assetID uuid.UUID) ([]model.AssetVersion, error)
	// MarkCurrent flips the current pointer to the given version, clearing it
	// on every other version of the asset in the same transaction.
	MarkCurrent(ctx context.Context, assetID, versionID uuid.UUID) error
}
