package task

import (
	"context"
	"time"

	"github.com/brandkit/asset-pipeline-go/internal/port"
	"github.com/brandkit/asset-pipeline-go/internal/uuid"
)

type NoopDispatcher struct{}

var _ port.TaskDispatcher = (*NoopDispatcher)(nil)

func NewNoopDispatcher() *NoopDispatcher { return &NoopDispatcher{} }

func (d *NoopDispatcher) EnqueueGenerateThumbnails(ctx context.Context, id uuid.UUID) error {
	return nil
}

func (d *NoopDispatcher) EnqueueExtractMetadata(ctx context.Context, id uuid.UUID) error {
	return nil
}

func (d *NoopDispatcher) EnqueueExtractMetadataIn(ctx context.Context, id uuid.UUID, delay time.Duration, attempt int) error {
	return nil
}

func (d *NoopDispatcher) EnqueueTagAsset(ctx context.Context, id uuid.UUID) error {
	return nil
}

func (d *NoopDispatcher) EnqueueScoreCompliance(ctx context.Context, id uuid.UUID) error {
	return nil
}
