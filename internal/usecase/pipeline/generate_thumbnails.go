package pipeline

import (
	"bytes"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"path"
	"time"

	"github.com/brandkit/asset-pipeline-go/internal/logger"
	"github.com/brandkit/asset-pipeline-go/internal/model"
	"github.com/brandkit/asset-pipeline-go/internal/pipeline_context"
	"github.com/brandkit/asset-pipeline-go/internal/port"
	"github.com/brandkit/asset-pipeline-go/internal/uuid"
	"golang.org/x/net/context"
)

type thumbnailGeneratorSrv struct {
	repo     port.AssetRepository
	renderer port.ThumbnailRenderer
	strg     port.Storage
	tasks    port.TaskDispatcher
	cache    port.Cache

	// stuckAfter is how long a PROCESSING marker is trusted before the run
	// that wrote it is presumed dead.
	stuckAfter time.Duration
}

// compile-time check: *thumbnailGeneratorSrv must satisfy port.ThumbnailGenerator
var _ port.ThumbnailGenerator = (*thumbnailGeneratorSrv)(nil)

// NewThumbnailGenerator constructs a ThumbnailGenerator implementation.
func NewThumbnailGenerator(repo port.AssetRepository, renderer port.ThumbnailRenderer, strg port.Storage, tasks port.TaskDispatcher, cache port.Cache, stuckAfter time.Duration) port.ThumbnailGenerator {
	return &thumbnailGeneratorSrv{repo, renderer, strg, tasks, cache, stuckAfter}
}

// GenerateThumbnails renders webp previews for the asset and records a
// terminal thumbnail status. Once the in-flight marker is written, no code
// path leaves without settling on COMPLETED, FAILED or SKIPPED: generation
// failures are captured into the record instead of propagating to the
// scheduler. Only record-store failures bubble up for a scheduler retry.
func (s *thumbnailGeneratorSrv) GenerateThumbnails(ctx context.Context, in port.GenerateThumbnailsInput) error {
	asset, err := s.repo.GetByID(ctx, in.ID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrAssetNotFound
		}
		return err
	}
	ctx = pipeline_context.WithTenantID(ctx, asset.TenantID)

	switch asset.ThumbnailStatus {
	case model.ThumbnailStatusCompleted:
		// already converged, nothing to redo
		return nil
	case model.ThumbnailStatusProcessing:
		if asset.ThumbnailStartedAt != nil && time.Since(*asset.ThumbnailStartedAt) < s.stuckAfter {
			// another worker is live on this asset
			return nil
		}
		// stale marker from a crashed run: do not trust it, regenerate
		logger.Warnf(ctx, "asset #%s stuck in processing since %v, recovering", asset.ID, asset.ThumbnailStartedAt)
		asset.Metadata.ThumbnailTimeout = true
	}

	now := time.Now().UTC()
	asset.ThumbnailStatus = model.ThumbnailStatusProcessing
	asset.ThumbnailStartedAt = &now
	if err := s.repo.Update(ctx, asset); err != nil {
		return err
	}
	// the in-flight marker is visible state, readers must not keep a
	// pre-processing snapshot
	s.invalidateDetails(ctx, asset.ID)

	if asset.MimeType == nil {
		// the upload path does not always record a mime type, fall back to
		// the stored object's content type
		if info, statErr := s.strg.StatFile(ctx, asset.Bucket, asset.ObjectKey); statErr != nil {
			logger.Warnf(ctx, "could not stat original of asset #%s: %v", asset.ID, statErr)
		} else if info.ContentType != "" {
			ct := info.ContentType
			asset.MimeType = &ct
		}
	}

	if asset.MimeType == nil || !s.renderer.Supports(*asset.MimeType) {
		mt := ""
		if asset.MimeType != nil {
			mt = *asset.MimeType
		}
		logger.Infof(ctx, "asset #%s has unprocessable mime type %q, skipping thumbnails", asset.ID, mt)
		asset.ThumbnailStatus = model.ThumbnailStatusSkipped
		return s.concludeAndFanOut(ctx, asset)
	}

	if genErr := s.generate(ctx, asset, in.Sizes); genErr != nil {
		logger.Warnf(ctx, "thumbnail generation failed for asset #%s: %v", asset.ID, genErr)
		msg := genErr.Error()
		asset.ThumbnailStatus = model.ThumbnailStatusFailed
		asset.ThumbnailError = &msg
		return s.concludeAndFanOut(ctx, asset)
	}

	asset.ThumbnailStatus = model.ThumbnailStatusCompleted
	asset.ThumbnailError = nil
	asset.Metadata.PreviewGenerated = true
	return s.concludeAndFanOut(ctx, asset)
}

// generate renders and stores every requested size, replacing the metadata
// maps wholesale so reruns converge instead of accumulating entries. A
// panicking decoder is downgraded to a plain error so the caller can still
// settle a terminal status.
func (s *thumbnailGeneratorSrv) generate(ctx context.Context, asset *model.Asset, sizes map[string]int) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("thumbnail renderer panicked: %v", r)
		}
	}()

	originalReader, err := s.strg.GetFile(ctx, asset.Bucket, asset.ObjectKey)
	if err != nil {
		return err
	}
	defer func(originalReader io.ReadSeekCloser) {
		_ = originalReader.Close()
	}(originalReader)

	rendered, err := s.renderer.Render(*asset.MimeType, originalReader, sizes)
	if err != nil {
		return err
	}

	// page count is derived from the same source read, paged formats only
	if _, seekErr := originalReader.Seek(0, io.SeekStart); seekErr == nil {
		if pages, countErr := s.renderer.PageCount(*asset.MimeType, originalReader); countErr != nil {
			logger.Warnf(ctx, "page count failed for asset #%s: %v", asset.ID, countErr)
		} else if pages > 0 {
			asset.Metadata.PageCount = pages
		}
	}

	thumbs := make(map[string]string, len(rendered))
	dims := make(map[string]model.Dimensions, len(rendered))
	for _, thumb := range rendered {
		key := path.Join("thumbnails", asset.ID.String(), thumb.SizeName+".webp")
		if err := s.strg.SaveFile(ctx, asset.Bucket, key, bytes.NewReader(thumb.Data), int64(len(thumb.Data)), map[string]string{"Content-Type": "image/webp"}); err != nil {
			return fmt.Errorf("failed to save thumbnail %q: %w", key, err)
		}
		thumbs[thumb.SizeName] = key
		dims[thumb.SizeName] = model.Dimensions{Width: thumb.Width, Height: thumb.Height}
	}

	// sizes dropped from configuration would leave orphaned objects behind
	for name, oldKey := range asset.Metadata.Thumbnails {
		if _, still := thumbs[name]; still {
			continue
		}
		if err := s.strg.RemoveFile(ctx, asset.Bucket, oldKey); err != nil {
			logger.Warnf(ctx, "failed removing stale thumbnail %q of asset #%s: %v", oldKey, asset.ID, err)
		}
	}

	asset.Metadata.Thumbnails = thumbs
	asset.Metadata.ThumbnailDimensions = dims
	return nil
}

// concludeAndFanOut durably records the terminal status, then dispatches the
// dependent stages. The status write comes first: gate checks in those
// stages read the persisted record, so ordering holds without any lock.
func (s *thumbnailGeneratorSrv) concludeAndFanOut(ctx context.Context, asset *model.Asset) error {
	if err := s.repo.Update(ctx, asset); err != nil {
		// The in-flight marker stays behind; the backlog sweeper will pick
		// the asset up again once the marker goes stale.
		return fmt.Errorf("failed updating asset: %w", err)
	}
	s.invalidateDetails(ctx, asset.ID)

	if err := s.tasks.EnqueueExtractMetadata(ctx, asset.ID); err != nil {
		logger.Warnf(ctx, "failed to enqueue extract-metadata task for asset #%s: %v", asset.ID, err)
	}
	if err := s.tasks.EnqueueTagAsset(ctx, asset.ID); err != nil {
		logger.Warnf(ctx, "failed to enqueue tag-asset task for asset #%s: %v", asset.ID, err)
	}
	return nil
}

func (s *thumbnailGeneratorSrv) invalidateDetails(ctx context.Context, id uuid.UUID) {
	if err := s.cache.DeleteAssetDetails(ctx, id); err != nil {
		logger.Warnf(ctx, "failed deleting cache for asset #%s: %v", id, err)
	}
}
