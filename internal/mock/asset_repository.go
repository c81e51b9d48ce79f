package mock

import (
	"context"
	"time"

	"github.com/brandkit/asset-pipeline-go/internal/model"
	"github.com/brandkit/asset-pipeline-go/internal/uuid"
)

// MockAssetRepo implements asset repository operations for tests.
type MockAssetRepo struct {
	AssetRecord *model.Asset

	GetErr    error
	CreateErr error
	UpdateErr error

	ListStuckErr    error
	ListStuckOut    []uuid.UUID
	ListStuckBefore time.Time

	ListPendingErr    error
	ListPendingOut    []uuid.UUID
	ListPendingBefore time.Time

	GetCalled         bool
	Created           *model.Asset
	Updated           *model.Asset
	UpdateCount       int
	ListStuckCalled   bool
	ListPendingCalled bool
}

func (m *MockAssetRepo) GetByID(ctx context.Context, id uuid.UUID) (*model.Asset, error) {
	m.GetCalled = true
	if m.GetErr != nil {
		return nil, m.GetErr
	}
	return m.AssetRecord, nil
}

func (m *MockAssetRepo) Create(ctx context.Context, asset *model.Asset) error {
	m.Created = asset
	return m.CreateErr
}

func (m *MockAssetRepo) Update(ctx context.Context, asset *model.Asset) error {
	m.Updated = asset
	m.UpdateCount++
	return m.UpdateErr
}

func (m *MockAssetRepo) ListStuckProcessingBefore(ctx context.Context, before time.Time) ([]uuid.UUID, error) {
	m.ListStuckCalled = true
	m.ListStuckBefore = before
	if m.ListStuckErr != nil {
		return nil, m.ListStuckErr
	}
	return m.ListStuckOut, nil
}

func (m *MockAssetRepo) ListPendingThumbnailsBefore(ctx context.Context, before time.Time) ([]uuid.UUID, error) {
	m.ListPendingCalled = true
	m.ListPendingBefore = before
	if m.ListPendingErr != nil {
		return nil, m.ListPendingErr
	}
	return m.ListPendingOut, nil
}
