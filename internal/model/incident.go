package model

import (
	"time"

	"github.com/brandkit/asset-pipeline-go/internal/uuid"
)

// SystemIncident is an operator-visible record of an expected-but-missing
// precondition. Incidents stay open until manually resolved; at most one
// open incident exists per (source_type, source_id, title).
type SystemIncident struct {
	ID         uuid.UUID  `json:"id"`
	SourceType string     `json:"source_type"`
	SourceID   uuid.UUID  `json:"source_id"`
	Title      string     `json:"title"`
	Detail     string     `json:"detail"`
	ResolvedAt *time.Time `json:"resolved_at,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
}
