package mock

import (
	"context"

	"github.com/brandkit/asset-pipeline-go/internal/model"
	"github.com/brandkit/asset-pipeline-go/internal/uuid"
)

// MockComplianceScoreRepo implements compliance score persistence for tests.
type MockComplianceScoreRepo struct {
	ScoreRecord *model.ComplianceScore

	UpsertErr error
	GetErr    error

	Upserted    *model.ComplianceScore
	UpsertCount int
	GetCalled   bool
}

func (m *MockComplianceScoreRepo) Upsert(ctx context.Context, score *model.ComplianceScore) error {
	m.Upserted = score
	m.UpsertCount++
	return m.UpsertErr
}

func (m *MockComplianceScoreRepo) GetByAssetAndBrand(ctx context.Context, assetID, brandID uuid.UUID) (*model.ComplianceScore, error) {
	m.GetCalled = true
	if m.GetErr != nil {
		return nil, m.GetErr
	}
	return m.ScoreRecord, nil
}

// MockBrandModelRepo implements brand model lookup for tests.
type MockBrandModelRepo struct {
	ModelRecord *model.ComplianceModel

	GetErr error

	GetCalled bool
	GotBrand  uuid.UUID
}

func (m *MockBrandModelRepo) GetActiveModel(ctx context.Context, brandID uuid.UUID) (*model.ComplianceModel, error) {
	m.GetCalled = true
	m.GotBrand = brandID
	if m.GetErr != nil {
		return nil, m.GetErr
	}
	return m.ModelRecord, nil
}
