package mariadb

import (
	"context"
	"database/sql"
	"log"
	"time"

	"github.com/brandkit/asset-pipeline-go/internal/model"
	"github.com/brandkit/asset-pipeline-go/internal/port"
	"github.com/brandkit/asset-pipeline-go/internal/uuid"
)

type AssetRepository struct {
	db *sql.DB
}

// compile-time check: *AssetRepository must satisfy port.AssetRepository
var _ port.AssetRepository = (*AssetRepository)(nil)

func NewAssetRepository(db *sql.DB) *AssetRepository {
	return &AssetRepository{db: db}
}

func (r *AssetRepository) Create(ctx context.Context, asset *model.Asset) error {
	log.Printf("creating database record for asset #%s, at thumbnail status %q...", asset.ID, asset.ThumbnailStatus)

	const query = `
      INSERT INTO assets
        (id, tenant_id, brand_id, bucket, object_key, mime_type, size_bytes, thumbnail_status, thumbnail_started_at, thumbnail_error, metadata)
      VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
    `
	_, err := r.db.ExecContext(ctx, query,
		asset.ID, asset.TenantID, asset.BrandID,
		asset.Bucket, asset.ObjectKey, asset.MimeType,
		asset.SizeBytes, asset.ThumbnailStatus,
		asset.ThumbnailStartedAt, asset.ThumbnailError, asset.Metadata,
	)
	if err != nil {
		return err
	}

	return nil
}

func (r *AssetRepository) Update(ctx context.Context, asset *model.Asset) error {
	log.Printf("updating database record for asset #%s, with thumbnail status %q...", asset.ID, asset.ThumbnailStatus)

	const query = `
      UPDATE assets
      SET
        bucket               = ?,
        object_key           = ?,
        mime_type            = ?,
        size_bytes           = ?,
        thumbnail_status     = ?,
        thumbnail_started_at = ?,
        thumbnail_error      = ?,
        metadata             = ?
      WHERE id = ?
    `
	_, err := r.db.ExecContext(ctx, query,
		asset.Bucket,
		asset.ObjectKey,
		asset.MimeType,
		asset.SizeBytes,
		asset.ThumbnailStatus,
		asset.ThumbnailStartedAt,
		asset.ThumbnailError,
		asset.Metadata,
		asset.ID, // WHERE clause
	)
	if err != nil {
		return err
	}

	return nil
}

func (r *AssetRepository) GetByID(ctx context.Context, ID uuid.UUID) (*model.Asset, error) {
	const query = `
      SELECT id, tenant_id, brand_id, bucket, object_key, mime_type, size_bytes, thumbnail_status, thumbnail_started_at, thumbnail_error, metadata, created_at, updated_at
      FROM assets
      WHERE id = ?
    `
	row := r.db.QueryRowContext(ctx, query, ID)
	var asset model.Asset
	if err := row.Scan(
		&asset.ID, &asset.TenantID, &asset.BrandID,
		&asset.Bucket, &asset.ObjectKey, &asset.MimeType,
		&asset.SizeBytes, &asset.ThumbnailStatus,
		&asset.ThumbnailStartedAt, &asset.ThumbnailError, &asset.Metadata,
		&asset.CreatedAt, &asset.UpdatedAt,
	); err != nil {
		return nil, err
	}

	return &asset, nil
}

func (r *AssetRepository) ListStuckProcessingBefore(ctx context.Context, before time.Time) ([]uuid.UUID, error) {
	const query = `
      SELECT id
      FROM assets
      WHERE thumbnail_status = 'processing' AND thumbnail_started_at < ?
    `
	return r.listIDs(ctx, query, before)
}

func (r *AssetRepository) ListPendingThumbnailsBefore(ctx context.Context, before time.Time) ([]uuid.UUID, error) {
	const query = `
      SELECT id
      FROM assets
      WHERE thumbnail_status = 'pending' AND created_at < ?
    `
	return r.listIDs(ctx, query, before)
}

func (r *AssetRepository) listIDs(ctx context.Context, query string, args ...interface{}) ([]uuid.UUID, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var ids []uuid.UUID
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
