package pipeline

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"

	"github.com/brandkit/asset-pipeline-go/internal/model"
	"github.com/brandkit/asset-pipeline-go/internal/port"
)

type versionPromoterSrv struct {
	assets   port.AssetRepository
	versions port.VersionRepository
	strg     port.Storage
	tasks    port.TaskDispatcher
	cache    port.Cache
}

// compile-time check: *versionPromoterSrv must satisfy port.VersionPromoter
var _ port.VersionPromoter = (*versionPromoterSrv)(nil)

// NewVersionPromoter constructs a VersionPromoter implementation.
func NewVersionPromoter(assets port.AssetRepository, versions port.VersionRepository, strg port.Storage, tasks port.TaskDispatcher, cache port.Cache) port.VersionPromoter {
	return &versionPromoterSrv{assets, versions, strg, tasks, cache}
}

// PromoteVersion makes the version current, merges its metadata snapshot
// into the asset document and restarts the pipeline from the thumbnail
// stage. The merge keeps every asset value the snapshot does not carry,
// so category assignment and completion flags survive a sparse version.
func (s *versionPromoterSrv) PromoteVersion(ctx context.Context, in port.PromoteVersionInput) error {
	asset, err := s.assets.GetByID(ctx, in.AssetID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrAssetNotFound
		}
		return err
	}
	version, err := s.versions.GetByID(ctx, in.VersionID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrVersionNotFound
		}
		return err
	}
	if version.AssetID != asset.ID {
		return ErrVersionMismatch
	}

	// Promoting a version whose object is gone would repoint the asset at a
	// key every later stage fails on, so check before touching any state.
	exists, err := s.strg.FileExists(ctx, asset.Bucket, version.ObjectKey)
	if err != nil {
		return fmt.Errorf("failed checking version object %q: %w", version.ObjectKey, err)
	}
	if !exists {
		return ErrVersionObjectMissing
	}

	if err := s.versions.MarkCurrent(ctx, asset.ID, version.ID); err != nil {
		return fmt.Errorf("failed marking version #%s current: %w", version.ID, err)
	}

	asset.ObjectKey = version.ObjectKey
	if version.MimeType != nil {
		asset.MimeType = version.MimeType
	}
	if version.SizeBytes != nil {
		asset.SizeBytes = version.SizeBytes
	}
	asset.Metadata.ApplyVersion(version.Metadata)

	// The promoted file needs its own previews: restart the thumbnail stage.
	// The old preview maps stay in place until regeneration replaces them
	// wholesale, so consumers keep something to display in the meantime.
	asset.ThumbnailStatus = model.ThumbnailStatusPending
	asset.ThumbnailStartedAt = nil
	asset.ThumbnailError = nil
	asset.Metadata.ThumbnailTimeout = false

	if err := s.assets.Update(ctx, asset); err != nil {
		return fmt.Errorf("failed updating asset: %w", err)
	}
	if err := s.cache.DeleteAssetDetails(ctx, asset.ID); err != nil {
		log.Printf("failed deleting cache for asset #%s: %v", asset.ID, err)
	}

	if err := s.tasks.EnqueueGenerateThumbnails(ctx, asset.ID); err != nil {
		return fmt.Errorf("failed to enqueue generate-thumbnails task for asset #%s: %w", asset.ID, err)
	}
	return nil
}
