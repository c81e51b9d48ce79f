package port

import (
	"context"

	"github.com/brandkit/asset-pipeline-go/internal/uuid"
)

// RaiseIncidentInput identifies and describes an operator-visible incident.
type RaiseIncidentInput struct {
	SourceType string
	SourceID   uuid.UUID
	Title      string
	Detail     string
}

// IncidentSink records incidents. Raising an incident that is already open
// for the same (source_type, source_id, title) is a no-op.
type IncidentSink interface {
	Raise(ctx context.Context, in RaiseIncidentInput) error
	// OpenCount reports how many incidents are currently open for a source.
	OpenCount(ctx context.Context, sourceType string, sourceID uuid.UUID) (int, error)
}
