package port

import (
	"context"

	"github.com/brandkit/asset-pipeline-go/internal/model"
	"github.com/brandkit/asset-pipeline-go/internal/uuid"
)

// ComplianceScoreRepository persists derived compliance scores.
type ComplianceScoreRepository interface {
	// Upsert writes the score for (asset, brand), replacing any previous one.
	Upsert(ctx context.Context, score *model.ComplianceScore) error
	GetByAssetAndBrand(ctx context.Context, assetID, brandID uuid.UUID) (*model.ComplianceScore, error)
}

// BrandModelRepository looks up the active compliance model of a brand.
// Implementations return sql.ErrNoRows when the brand has no active model.
type BrandModelRepository interface {
	GetActiveModel(ctx context.Context, brandID uuid.UUID) (*model.ComplianceModel, error)
}
