package port

import (
	"context"
	"time"

	"github.com/brandkit/asset-pipeline-go/internal/uuid"
)

// TaskDispatcher enqueues asynchronous pipeline stage tasks.
type TaskDispatcher interface {
	EnqueueGenerateThumbnails(ctx context.Context, id uuid.UUID) error
	EnqueueExtractMetadata(ctx context.Context, id uuid.UUID) error
	// EnqueueExtractMetadataIn redispatches the extraction stage after a delay,
	// carrying the attempt counter used by the retry gate.
	EnqueueExtractMetadataIn(ctx context.Context, id uuid.UUID, delay time.Duration, attempt int) error
	EnqueueTagAsset(ctx context.Context, id uuid.UUID) error
	EnqueueScoreCompliance(ctx context.Context, id uuid.UUID) error
}
