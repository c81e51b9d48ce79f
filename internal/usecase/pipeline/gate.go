package pipeline

import "github.com/brandkit/asset-pipeline-go/internal/model"

// GatePolicy is how a stage reacts when the thumbnail gate misses.
//
// The coordinator rule is the same for every image-derived stage: nothing
// runs to completion until the asset's thumbnail status is COMPLETED. What
// differs per stage is the failure mode on a miss: extraction reschedules
// itself (RETRY), tagging records a skip marker and finishes (SKIP). The two
// policies are intentionally kept separate; unifying them is a product
// decision, not a refactor.
type GatePolicy int

const (
	GateRetry GatePolicy = iota
	GateSkip
)

func (p GatePolicy) String() string {
	if p == GateRetry {
		return "retry"
	}
	return "skip"
}

// thumbnailsReady is the gate check. It reads the currently persisted
// status: thumbnail completion is durably recorded before any dependent
// stage is dispatched, so read-after-write visibility on the asset record
// is the only ordering mechanism needed.
func thumbnailsReady(a *model.Asset) bool {
	return a.ThumbnailStatus == model.ThumbnailStatusCompleted
}

// thumbnailsUnobtainable reports a terminal non-completed status: the gate
// can never pass for this asset without new thumbnail work, so a retry-gated
// stage must stop rescheduling.
func thumbnailsUnobtainable(a *model.Asset) bool {
	return a.ThumbnailStatus == model.ThumbnailStatusFailed ||
		a.ThumbnailStatus == model.ThumbnailStatusSkipped
}
