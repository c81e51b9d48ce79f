package pipeline

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/brandkit/asset-pipeline-go/internal/port"
	"github.com/brandkit/asset-pipeline-go/internal/uuid"
)

// detailsTTL bounds both the cache entry and the presigned URLs it carries.
const detailsTTL = 30 * time.Minute

type assetDetailsGetterSrv struct {
	repo      port.AssetRepository
	scores    port.ComplianceScoreRepository
	incidents port.IncidentSink
	strg      port.Storage
	cache     port.Cache
}

// compile-time check: *assetDetailsGetterSrv must satisfy port.AssetDetailsGetter
var _ port.AssetDetailsGetter = (*assetDetailsGetterSrv)(nil)

// NewAssetDetailsGetter constructs an AssetDetailsGetter implementation.
func NewAssetDetailsGetter(repo port.AssetRepository, scores port.ComplianceScoreRepository, incidents port.IncidentSink, strg port.Storage, cache port.Cache) port.AssetDetailsGetter {
	return &assetDetailsGetterSrv{repo, scores, incidents, strg, cache}
}

// GetAssetDetails returns the current processing state of an asset, with
// presigned download URLs for its thumbnails. Responses are cached until
// the URLs expire; every pipeline stage invalidates the entry on write.
func (s *assetDetailsGetterSrv) GetAssetDetails(ctx context.Context, id uuid.UUID) (*port.AssetDetailsOutput, error) {
	if raw, err := s.cache.GetAssetDetails(ctx, id); err == nil && raw != nil {
		var out port.AssetDetailsOutput
		if err := json.Unmarshal(raw, &out); err == nil {
			return &out, nil
		}
		log.Printf("unreadable cache entry for asset #%s, rebuilding", id)
	}

	asset, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrAssetNotFound
		}
		return nil, err
	}

	out := &port.AssetDetailsOutput{
		ValidUntil:      time.Now().Add(detailsTTL),
		ThumbnailStatus: asset.ThumbnailStatus,
		Metadata:        asset.Metadata,
	}

	if len(asset.Metadata.Thumbnails) > 0 {
		out.ThumbnailURLs = make(map[string]string, len(asset.Metadata.Thumbnails))
		for name, key := range asset.Metadata.Thumbnails {
			url, err := s.strg.GeneratePresignedDownloadURL(ctx, asset.Bucket, key, detailsTTL)
			if err != nil {
				return nil, fmt.Errorf("failed to presign thumbnail %q: %w", key, err)
			}
			out.ThumbnailURLs[name] = url
		}
	}

	if asset.BrandID != nil {
		score, err := s.scores.GetByAssetAndBrand(ctx, asset.ID, *asset.BrandID)
		switch {
		case err == nil:
			out.Compliance = &port.ComplianceOutput{
				EvaluationStatus: score.EvaluationStatus,
				Score:            score.Score,
			}
		case errors.Is(err, sql.ErrNoRows):
			// not scored yet
		default:
			return nil, fmt.Errorf("failed loading compliance score: %w", err)
		}
	}

	openIncidents, err := s.incidents.OpenCount(ctx, IncidentSourceTypeAsset, asset.ID)
	if err != nil {
		return nil, fmt.Errorf("failed counting open incidents: %w", err)
	}
	out.OpenIncidents = openIncidents

	if raw, err := json.Marshal(out); err == nil {
		s.cache.SetAssetDetails(ctx, id, raw, out.ValidUntil)
	}
	return out, nil
}
