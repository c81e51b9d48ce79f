package mariadb

import (
	"context"
	"database/sql"
	"fmt"
	"log"

	"github.com/brandkit/asset-pipeline-go/internal/model"
	"github.com/brandkit/asset-pipeline-go/internal/port"
	"github.com/brandkit/asset-pipeline-go/internal/uuid"
)

type VersionRepository struct {
	db *sql.DB
}

// compile-time check: *VersionRepository must satisfy port.VersionRepository
var _ port.VersionRepository = (*VersionRepository)(nil)

func NewVersionRepository(db *sql.DB) *VersionRepository {
	return &VersionRepository{db: db}
}

func (r *VersionRepository) Create(ctx context.Context, version *model.AssetVersion) error {
	log.Printf("creating version #%d for asset #%s...", version.VersionNumber, version.AssetID)

	const query = `
      INSERT INTO asset_versions
        (id, asset_id, version_number, object_key, checksum, mime_type, size_bytes, width, height, metadata, is_current)
      VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
    `
	_, err := r.db.ExecContext(ctx, query,
		version.ID, version.AssetID, version.VersionNumber,
		version.ObjectKey, version.Checksum, version.MimeType,
		version.SizeBytes, version.Width, version.Height,
		version.Metadata, version.IsCurrent,
	)
	return err
}

func (r *VersionRepository) GetByID(ctx context.Context, ID uuid.UUID) (*model.AssetVersion, error) {
	const query = `
      SELECT id, asset_id, version_number, object_key, checksum, mime_type, size_bytes, width, height, metadata, is_current, created_at
      FROM asset_versions
      WHERE id = ?
    `
	row := r.db.QueryRowContext(ctx, query, ID)
	var v model.AssetVersion
	if err := row.Scan(
		&v.ID, &v.AssetID, &v.VersionNumber,
		&v.ObjectKey, &v.Checksum, &v.MimeType,
		&v.SizeBytes, &v.Width, &v.Height,
		&v.Metadata, &v.IsCurrent, &v.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &v, nil
}

func (r *VersionRepository) ListByAsset(ctx context.Context, assetID uuid.UUID) ([]model.AssetVersion, error) {
	const query = `
      SELECT id, asset_id, version_number, object_key, checksum, mime_type, size_bytes, width, height, metadata, is_current, created_at
      FROM asset_versions
      WHERE asset_id = ?
      ORDER BY version_number DESC
    `
	rows, err := r.db.QueryContext(ctx, query, assetID)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var versions []model.AssetVersion
	for rows.Next() {
		var v model.AssetVersion
		if err := rows.Scan(
			&v.ID, &v.AssetID, &v.VersionNumber,
			&v.ObjectKey, &v.Checksum, &v.MimeType,
			&v.SizeBytes, &v.Width, &v.Height,
			&v.Metadata, &v.IsCurrent, &v.CreatedAt,
		); err != nil {
			return nil, err
		}
		versions = append(versions, v)
	}
	return versions, rows.Err()
}

// MarkCurrent flips the current pointer inside one transaction so there is
// never a moment with zero or two current versions visible.
func (r *VersionRepository) MarkCurrent(ctx context.Context, assetID, versionID uuid.UUID) error {
	log.Printf("marking version #%s current for asset #%s...", versionID, assetID)

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx,
		`UPDATE asset_versions SET is_current = 0 WHERE asset_id = ?`, assetID,
	); err != nil {
		return err
	}

	res, err := tx.ExecContext(ctx,
		`UPDATE asset_versions SET is_current = 1 WHERE id = ? AND asset_id = ?`, versionID, assetID,
	)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return fmt.Errorf("version #%s does not belong to asset #%s", versionID, assetID)
	}

	return tx.Commit()
}
