package pipeline

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"log"
	"time"

	"github.com/brandkit/asset-pipeline-go/internal/model"
	"github.com/brandkit/asset-pipeline-go/internal/port"
)

// RetryPolicy bounds the extraction retry gate.
type RetryPolicy struct {
	MaxAttempts int
	Delay       time.Duration
}

type metadataExtractorSrv struct {
	repo      port.AssetRepository
	colors    port.ColorExtractor
	strg      port.Storage
	tasks     port.TaskDispatcher
	incidents port.IncidentSink
	cache     port.Cache
	retry     RetryPolicy
}

// compile-time check: *metadataExtractorSrv must satisfy port.MetadataExtractor
var _ port.MetadataExtractor = (*metadataExtractorSrv)(nil)

// NewMetadataExtractor constructs a MetadataExtractor implementation.
func NewMetadataExtractor(repo port.AssetRepository, colors port.ColorExtractor, strg port.Storage, tasks port.TaskDispatcher, incidents port.IncidentSink, cache port.Cache, retry RetryPolicy) port.MetadataExtractor {
	return &metadataExtractorSrv{repo, colors, strg, tasks, incidents, cache, retry}
}

// ExtractMetadata derives dominant colors, resolution class and orientation
// from the medium thumbnail. The stage is gated on thumbnail completion:
// until the gate passes it reschedules itself with a growing delay, and it
// gives up for good once the thumbnail status turns terminal-unavailable or
// the attempt budget runs out.
func (s *metadataExtractorSrv) ExtractMetadata(ctx context.Context, in port.ExtractMetadataInput) error {
	asset, err := s.repo.GetByID(ctx, in.ID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrAssetNotFound
		}
		return err
	}

	if thumbnailsUnobtainable(asset) {
		log.Printf("thumbnails %s for asset #%s, metadata extraction will never run", asset.ThumbnailStatus, asset.ID)
		return nil
	}
	if !thumbnailsReady(asset) {
		if in.Attempt >= s.retry.MaxAttempts {
			return s.incidents.Raise(ctx, port.RaiseIncidentInput{
				SourceType: IncidentSourceTypeAsset,
				SourceID:   asset.ID,
				Title:      IncidentTitleExtractionRetriesExhausted,
				Detail:     fmt.Sprintf("thumbnails still %s after %d attempts", asset.ThumbnailStatus, in.Attempt),
			})
		}
		delay := s.retry.Delay * time.Duration(in.Attempt+1)
		log.Printf("thumbnails not ready for asset #%s, retrying extraction in %v (attempt %d)", asset.ID, delay, in.Attempt+1)
		return s.tasks.EnqueueExtractMetadataIn(ctx, asset.ID, delay, in.Attempt+1)
	}

	mediumKey, keyOK := asset.Metadata.Thumbnails[SizeMedium]
	mediumDims, dimsOK := asset.Metadata.ThumbnailDimensions[SizeMedium]
	if !keyOK || !dimsOK || mediumDims.Width <= 0 || mediumDims.Height <= 0 {
		log.Printf("asset #%s completed thumbnails but left no usable medium preview", asset.ID)
		return s.incidents.Raise(ctx, port.RaiseIncidentInput{
			SourceType: IncidentSourceTypeAsset,
			SourceID:   asset.ID,
			Title:      IncidentTitleMissingVisualMetadata,
			Detail:     fmt.Sprintf("medium thumbnail key present: %t, dimensions present: %t", keyOK, dimsOK),
		})
	}

	reader, err := s.strg.GetFile(ctx, asset.Bucket, mediumKey)
	if err != nil {
		return fmt.Errorf("failed to open medium thumbnail %q: %w", mediumKey, err)
	}
	defer func(reader io.ReadSeekCloser) {
		_ = reader.Close()
	}(reader)

	dominant, err := s.colors.DominantColors(reader, maxDominantColors)
	if err != nil {
		return fmt.Errorf("failed to extract dominant colors: %w", err)
	}

	asset.Metadata.DominantColors = dominant
	asset.Metadata.ResolutionClass = resolutionClass(mediumDims)
	asset.Metadata.Orientation = orientation(mediumDims)
	asset.Metadata.MetadataExtracted = true

	if err := s.repo.Update(ctx, asset); err != nil {
		return fmt.Errorf("failed updating asset: %w", err)
	}
	if err := s.cache.DeleteAssetDetails(ctx, asset.ID); err != nil {
		log.Printf("failed deleting cache for asset #%s: %v", asset.ID, err)
	}

	if asset.BrandID != nil {
		if err := s.tasks.EnqueueScoreCompliance(ctx, asset.ID); err != nil {
			log.Printf("failed to enqueue score-compliance task for asset #%s: %v", asset.ID, err)
		}
	}
	return nil
}

func resolutionClass(d model.Dimensions) string {
	longest := d.Width
	if d.Height > longest {
		longest = d.Height
	}
	switch {
	case longest < 320:
		return "low"
	case longest < 1024:
		return "standard"
	default:
		return "high"
	}
}

func orientation(d model.Dimensions) string {
	switch {
	case d.Width > d.Height:
		return "landscape"
	case d.Height > d.Width:
		return "portrait"
	default:
		return "square"
	}
}
