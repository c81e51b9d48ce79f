package mariadb

import (
	"context"
	"database/sql"
	"log"

	"github.com/brandkit/asset-pipeline-go/internal/model"
	"github.com/brandkit/asset-pipeline-go/internal/port"
	"github.com/brandkit/asset-pipeline-go/internal/uuid"
)

type ComplianceScoreRepository struct {
	db *sql.DB
}

// compile-time check: *ComplianceScoreRepository must satisfy port.ComplianceScoreRepository
var _ port.ComplianceScoreRepository = (*ComplianceScoreRepository)(nil)

func NewComplianceScoreRepository(db *sql.DB) *ComplianceScoreRepository {
	return &ComplianceScoreRepository{db: db}
}

// Upsert relies on the unique key over (asset_id, brand_id) so repeated
// scoring runs always converge on a single row.
func (r *ComplianceScoreRepository) Upsert(ctx context.Context, score *model.ComplianceScore) error {
	log.Printf("upserting compliance score for asset #%s against brand #%s (%s)...", score.AssetID, score.BrandID, score.EvaluationStatus)

	const query = `
      INSERT INTO compliance_scores
        (id, asset_id, brand_id, model_version, evaluation_status, score, breakdown)
      VALUES (?, ?, ?, ?, ?, ?, ?)
      ON DUPLICATE KEY UPDATE
        model_version     = VALUES(model_version),
        evaluation_status = VALUES(evaluation_status),
        score             = VALUES(score),
        breakdown         = VALUES(breakdown)
    `
	_, err := r.db.ExecContext(ctx, query,
		score.ID, score.AssetID, score.BrandID,
		score.ModelVersion, score.EvaluationStatus,
		score.Score, score.Breakdown,
	)
	return err
}

func (r *ComplianceScoreRepository) GetByAssetAndBrand(ctx context.Context, assetID, brandID uuid.UUID) (*model.ComplianceScore, error) {
	const query = `
      SELECT id, asset_id, brand_id, model_version, evaluation_status, score, breakdown, created_at, updated_at
      FROM compliance_scores
      WHERE asset_id = ? AND brand_id = ?
    `
	row := r.db.QueryRowContext(ctx, query, assetID, brandID)
	var s model.ComplianceScore
	if err := row.Scan(
		&s.ID, &s.AssetID, &s.BrandID,
		&s.ModelVersion, &s.EvaluationStatus,
		&s.Score, &s.Breakdown,
		&s.CreatedAt, &s.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &s, nil
}
