package port

import (
	"context"
	"time"

	"github.com/brandkit/asset-pipeline-go/internal/model"
	"github.com/brandkit/asset-pipeline-go/internal/uuid"
)

// ThumbnailGenerator produces raster previews for an asset and records a
// terminal thumbnail status.
type ThumbnailGenerator interface {
	GenerateThumbnails(ctx context.Context, in GenerateThumbnailsInput) error
}
type GenerateThumbnailsInput struct {
	ID    uuid.UUID
	Sizes map[string]int
}

// MetadataExtractor derives automatic metadata from completed thumbnails.
type MetadataExtractor interface {
	ExtractMetadata(ctx context.Context, in ExtractMetadataInput) error
}
type ExtractMetadataInput struct {
	ID      uuid.UUID
	Attempt int
}

// AssetTagger derives semantic tags from completed thumbnails.
type AssetTagger interface {
	TagAsset(ctx context.Context, id uuid.UUID) error
}

// ComplianceScorer scores an asset against its brand's active compliance model.
type ComplianceScorer interface {
	ScoreCompliance(ctx context.Context, id uuid.UUID) error
}

// VersionPromoter makes a version current and resynchronises asset state from it.
type VersionPromoter interface {
	PromoteVersion(ctx context.Context, in PromoteVersionInput) error
}
type PromoteVersionInput struct {
	AssetID   uuid.UUID
	VersionID uuid.UUID
}

// BacklogSweeper redispatches thumbnail work for stuck or never-started assets.
type BacklogSweeper interface {
	SweepBacklog(ctx context.Context) error
}

// AssetDetailsGetter returns the processing state of an asset for display.
type AssetDetailsGetter interface {
	GetAssetDetails(ctx context.Context, id uuid.UUID) (*AssetDetailsOutput, error)
}
type ComplianceOutput struct {
	EvaluationStatus string  `json:"evaluation_status"`
	Score            float64 `json:"score"`
}
type AssetDetailsOutput struct {
	ValidUntil      time.Time             `json:"valid_until"`
	ThumbnailStatus model.ThumbnailStatus `json:"thumbnail_status"`
	ThumbnailURLs   map[string]string     `json:"thumbnail_urls,omitempty"`
	Metadata        model.Metadata        `json:"metadata"`
	Compliance      *ComplianceOutput     `json:"compliance,omitempty"`
	OpenIncidents   int                   `json:"open_incidents,omitempty"`
}
