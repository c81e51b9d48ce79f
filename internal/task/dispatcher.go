package task

import (
	"context"
	"time"

	"github.com/brandkit/asset-pipeline-go/internal/port"
	"github.com/brandkit/asset-pipeline-go/internal/uuid"
	"github.com/hibiken/asynq"
)

type Dispatcher struct {
	client *asynq.Client
}

// compile-time check
var _ port.TaskDispatcher = (*Dispatcher)(nil)

func NewDispatcher(addr, password string) *Dispatcher {
	c := asynq.NewClient(asynq.RedisClientOpt{Addr: addr, Password: password})
	return &Dispatcher{client: c}
}

func (d *Dispatcher) EnqueueGenerateThumbnails(ctx context.Context, id uuid.UUID) error {
	t, err := NewGenerateThumbnailsTask(id.String())
	if err != nil {
		return err
	}
	if _, err := d.client.EnqueueContext(ctx, t); err != nil {
		return err
	}
	return nil
}

func (d *Dispatcher) EnqueueExtractMetadata(ctx context.Context, id uuid.UUID) error {
	t, err := NewExtractMetadataTask(id.String(), 0)
	if err != nil {
		return err
	}
	if _, err := d.client.EnqueueContext(ctx, t); err != nil {
		return err
	}
	return nil
}

func (d *Dispatcher) EnqueueExtractMetadataIn(ctx context.Context, id uuid.UUID, delay time.Duration, attempt int) error {
	t, err := NewExtractMetadataTask(id.String(), attempt)
	if err != nil {
		return err
	}
	if _, err := d.client.EnqueueContext(ctx, t, asynq.ProcessIn(delay)); err != nil {
		return err
	}
	return nil
}

func (d *Dispatcher) EnqueueTagAsset(ctx context.Context, id uuid.UUID) error {
	t, err := NewTagAssetTask(id.String())
	if err != nil {
		return err
	}
	if _, err := d.client.EnqueueContext(ctx, t); err != nil {
		return err
	}
	return nil
}

func (d *Dispatcher) EnqueueScoreCompliance(ctx context.Context, id uuid.UUID) error {
	t, err := NewScoreComplianceTask(id.String())
	if err != nil {
		return err
	}
	if _, err := d.client.EnqueueContext(ctx, t); err != nil {
		return err
	}
	return nil
}
