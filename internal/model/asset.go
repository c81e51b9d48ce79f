package model

import (
	"time"

	"github.com/brandkit/asset-pipeline-go/internal/uuid"
)

// ThumbnailStatus tracks the lifecycle of preview generation for an asset.
// The only implicit transition allowed is PROCESSING → re-attempt once the
// in-flight marker is older than the stuck threshold; every stage run must
// leave the status at a terminal value.
type ThumbnailStatus string

const (
	ThumbnailStatusPending    ThumbnailStatus = "pending"
	ThumbnailStatusProcessing ThumbnailStatus = "processing"
	ThumbnailStatusCompleted  ThumbnailStatus = "completed"
	ThumbnailStatusFailed     ThumbnailStatus = "failed"
	ThumbnailStatusSkipped    ThumbnailStatus = "skipped"
)

// Terminal reports whether the status is one a finished stage run may leave behind.
func (s ThumbnailStatus) Terminal() bool {
	return s == ThumbnailStatusCompleted || s == ThumbnailStatusFailed || s == ThumbnailStatusSkipped
}

// Asset is one logical uploaded file, owned by a tenant and optionally
// attached to a brand. Its Metadata document is shared by all pipeline
// stages; each stage only writes the keys it owns.
type Asset struct {
	ID                 uuid.UUID       `json:"id"`
	TenantID           uuid.UUID       `json:"tenant_id"`
	BrandID            *uuid.UUID      `json:"brand_id,omitempty"`
	Bucket             string          `json:"bucket"`
	ObjectKey          string          `json:"object_key"`
	MimeType           *string         `json:"mime_type,omitempty"`
	SizeBytes          *int64          `json:"size_bytes,omitempty"`
	ThumbnailStatus    ThumbnailStatus `json:"thumbnail_status"`
	ThumbnailStartedAt *time.Time      `json:"thumbnail_started_at,omitempty"`
	ThumbnailError     *string         `json:"thumbnail_error,omitempty"`
	Metadata           Metadata        `json:"metadata"`
	CreatedAt          time.Time       `json:"created_at"`
	UpdatedAt          time.Time       `json:"updated_at"`
}
