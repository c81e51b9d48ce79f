package pipeline

import (
	"context"
	"time"

	"github.com/brandkit/asset-pipeline-go/internal/logger"
	"github.com/brandkit/asset-pipeline-go/internal/port"
)

type backlogSweeperSrv struct {
	repo  port.AssetRepository
	tasks port.TaskDispatcher

	stuckAfter   time.Duration
	pendingAfter time.Duration
}

// compile-time check: *backlogSweeperSrv must satisfy port.BacklogSweeper
var _ port.BacklogSweeper = (*backlogSweeperSrv)(nil)

// NewBacklogSweeper constructs a BacklogSweeper implementation.
func NewBacklogSweeper(repo port.AssetRepository, tasks port.TaskDispatcher, stuckAfter, pendingAfter time.Duration) port.BacklogSweeper {
	return &backlogSweeperSrv{repo, tasks, stuckAfter, pendingAfter}
}

// SweepBacklog looks for assets whose thumbnail work stalled, either stuck
// mid-processing past the liveness threshold or never picked up at all, and
// enqueues generation tasks for them.
func (s *backlogSweeperSrv) SweepBacklog(ctx context.Context) error {
	now := time.Now()

	stuckIDs, err := s.repo.ListStuckProcessingBefore(ctx, now.Add(-s.stuckAfter))
	if err != nil {
		return err
	}

	if len(stuckIDs) == 0 {
		logger.Info(ctx, "no assets found stuck in processing")
	}

	for _, id := range stuckIDs {
		logger.Infof(ctx, "recovering stuck thumbnail run for asset #%s", id)
		if err := s.tasks.EnqueueGenerateThumbnails(ctx, id); err != nil {
			logger.Warnf(ctx, "failed to enqueue generate-thumbnails task for asset #%s: %v", id, err)
		}
	}

	pendingIDs, err := s.repo.ListPendingThumbnailsBefore(ctx, now.Add(-s.pendingAfter))
	if err != nil {
		return err
	}

	if len(pendingIDs) == 0 {
		logger.Info(ctx, "no assets found with unstarted thumbnails")
	}

	for _, id := range pendingIDs {
		logger.Infof(ctx, "starting overdue thumbnail run for asset #%s", id)
		if err := s.tasks.EnqueueGenerateThumbnails(ctx, id); err != nil {
			logger.Warnf(ctx, "failed to enqueue generate-thumbnails task for asset #%s: %v", id, err)
		}
	}
	return nil
}
