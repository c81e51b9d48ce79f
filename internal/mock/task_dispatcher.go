package mock

import (
	"context"
	"time"

	"github.com/brandkit/asset-pipeline-go/internal/uuid"
)

// MockDispatcher implements task dispatching for tests.
type MockDispatcher struct {
	GenerateCalled bool
	GenerateIDs    []uuid.UUID
	GenerateErr    error

	ExtractCalled bool
	ExtractIDs    []uuid.UUID
	ExtractErr    error

	ExtractInCalled  bool
	ExtractInIDs     []uuid.UUID
	ExtractInDelay   time.Duration
	ExtractInAttempt int
	ExtractInErr     error

	TagCalled bool
	TagIDs    []uuid.UUID
	TagErr    error

	ScoreCalled bool
	ScoreIDs    []uuid.UUID
	ScoreErr    error
}

func (m *MockDispatcher) EnqueueGenerateThumbnails(ctx context.Context, id uuid.UUID) error {
	m.GenerateCalled = true
	m.GenerateIDs = append(m.GenerateIDs, id)
	return m.GenerateErr
}

func (m *MockDispatcher) EnqueueExtractMetadata(ctx context.Context, id uuid.UUID) error {
	m.ExtractCalled = true
	m.ExtractIDs = append(m.ExtractIDs, id)
	return m.ExtractErr
}

func (m *MockDispatcher) EnqueueExtractMetadataIn(ctx context.Context, id uuid.UUID, delay time.Duration, attempt int) error {
	m.ExtractInCalled = true
	m.ExtractInIDs = append(m.ExtractInIDs, id)
	m.ExtractInDelay = delay
	m.ExtractInAttempt = attempt
	return m.ExtractInErr
}

func (m *MockDispatcher) EnqueueTagAsset(ctx context.Context, id uuid.UUID) error {
	m.TagCalled = true
	m.TagIDs = append(m.TagIDs, id)
	return m.TagErr
}

func (m *MockDispatcher) EnqueueScoreCompliance(ctx context.Context, id uuid.UUID) error {
	m.ScoreCalled = true
	m.ScoreIDs = append(m.ScoreIDs, id)
	return m.ScoreErr
}
