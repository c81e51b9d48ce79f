package mock

import (
	"context"

	"github.com/brandkit/asset-pipeline-go/internal/model"
	"github.com/brandkit/asset-pipeline-go/internal/uuid"
)

// MockVersionRepo implements version repository operations for tests.
type MockVersionRepo struct {
	VersionRecord *model.AssetVersion
	ListOut       []model.AssetVersion

	GetErr         error
	CreateErr      error
	ListErr        error
	MarkCurrentErr error

	GetCalled         bool
	Created           *model.AssetVersion
	ListCalled        bool
	MarkCurrentCalled bool
	MarkedAssetID     uuid.UUID
	MarkedVersionID   uuid.UUID
}

func (m *MockVersionRepo) Create(ctx context.Context, version *model.AssetVersion) error {
	m.Created = version
	return m.CreateErr
}

func (m *MockVersionRepo) GetByID(ctx context.Context, id uuid.UUID) (*model.AssetVersion, error) {
	m.GetCalled = true
	if m.GetErr != nil {
		return nil, m.GetErr
	}
	return m.VersionRecord, nil
}

func (m *MockVersionRepo) ListByAsset(ctx context.Context, assetID uuid.UUID) ([]model.AssetVersion, error) {
	m.ListCalled = true
	if m.ListErr != nil {
		return nil, m.ListErr
	}
	return m.ListOut, nil
}

func (m *MockVersionRepo) MarkCurrent(ctx context.Context, assetID, versionID uuid.UUID) error {
	m.MarkCurrentCalled = true
	m.MarkedAssetID = assetID
	m.MarkedVersionID = versionID
	return m.MarkCurrentErr
}
