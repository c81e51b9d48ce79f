package mariadb

import (
	"context"
	"database/sql"

	"github.com/brandkit/asset-pipeline-go/internal/model"
	"github.com/brandkit/asset-pipeline-go/internal/port"
	"github.com/brandkit/asset-pipeline-go/internal/uuid"
)

type BrandModelRepository struct {
	db *sql.DB
}

// compile-time check: *BrandModelRepository must satisfy port.BrandModelRepository
var _ port.BrandModelRepository = (*BrandModelRepository)(nil)

func NewBrandModelRepository(db *sql.DB) *BrandModelRepository {
	return &BrandModelRepository{db: db}
}

// GetActiveModel returns the highest active model version of the brand, or
// sql.ErrNoRows when the brand has none.
func (r *BrandModelRepository) GetActiveModel(ctx context.Context, brandID uuid.UUID) (*model.ComplianceModel, error) {
	const query = `
      SELECT id, brand_id, version, rules, created_at
      FROM brand_compliance_models
      WHERE brand_id = ? AND is_active = 1
      ORDER BY version DESC
      LIMIT 1
    `
	row := r.db.QueryRowContext(ctx, query, brandID)
	var m model.ComplianceModel
	if err := row.Scan(&m.ID, &m.BrandID, &m.Version, &m.Rules, &m.CreatedAt); err != nil {
		return nil, err
	}
	return &m, nil
}
