package pipeline

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"log"

	"github.com/brandkit/asset-pipeline-go/internal/port"
	"github.com/brandkit/asset-pipeline-go/internal/uuid"
)

type assetTaggerSrv struct {
	repo   port.AssetRepository
	tagger port.Tagger
	strg   port.Storage
	cache  port.Cache
}

// compile-time check: *assetTaggerSrv must satisfy port.AssetTagger
var _ port.AssetTagger = (*assetTaggerSrv)(nil)

// NewAssetTagger constructs an AssetTagger implementation.
func NewAssetTagger(repo port.AssetRepository, tagger port.Tagger, strg port.Storage, cache port.Cache) port.AssetTagger {
	return &assetTaggerSrv{repo, tagger, strg, cache}
}

// TagAsset labels the asset from its medium thumbnail. When the gate misses
// the stage still finishes: it records skip markers on the metadata document
// and completes without error, leaving AITaggingCompleted untouched so a
// later successful run reads as a first completion, not a redo.
func (s *assetTaggerSrv) TagAsset(ctx context.Context, id uuid.UUID) error {
	asset, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrAssetNotFound
		}
		return err
	}

	// A COMPLETED status without a medium thumbnail can happen when the
	// configured sizes changed between runs. The stage input is the medium
	// preview, so the asset is treated as unavailable and skipped, not failed.
	mediumKey, hasMedium := asset.Metadata.Thumbnails[SizeMedium]
	if !thumbnailsReady(asset) || !hasMedium {
		log.Printf("thumbnails unavailable for asset #%s, skipping AI tagging", asset.ID)
		asset.Metadata.AITaggingSkipped = true
		asset.Metadata.AITaggingSkipReason = SkipReasonThumbnailUnavailable
		if err := s.repo.Update(ctx, asset); err != nil {
			return fmt.Errorf("failed updating asset: %w", err)
		}
		// the skip markers are reader-visible state too
		if err := s.cache.DeleteAssetDetails(ctx, asset.ID); err != nil {
			log.Printf("failed deleting cache for asset #%s: %v", asset.ID, err)
		}
		return nil
	}

	reader, err := s.strg.GetFile(ctx, asset.Bucket, mediumKey)
	if err != nil {
		return fmt.Errorf("failed to open medium thumbnail %q: %w", mediumKey, err)
	}
	defer func(reader io.ReadSeekCloser) {
		_ = reader.Close()
	}(reader)

	data, err := io.ReadAll(reader)
	if err != nil {
		return fmt.Errorf("failed to read medium thumbnail %q: %w", mediumKey, err)
	}

	labels, err := s.tagger.Labels(ctx, data, "image/webp")
	if err != nil {
		return fmt.Errorf("tagging service failed for asset #%s: %w", asset.ID, err)
	}

	asset.Metadata.AITags = labels
	asset.Metadata.AITaggingCompleted = true
	asset.Metadata.ClearAITaggingSkip()

	if err := s.repo.Update(ctx, asset); err != nil {
		return fmt.Errorf("failed updating asset: %w", err)
	}
	if err := s.cache.DeleteAssetDetails(ctx, asset.ID); err != nil {
		log.Printf("failed deleting cache for asset #%s: %v", asset.ID, err)
	}
	return nil
}
