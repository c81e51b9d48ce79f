package model

import (
	"time"

	"github.com/brandkit/asset-pipeline-go/internal/uuid"
)

// AssetVersion is an immutable-once-created snapshot of one file revision.
// Exactly one version per asset is current at a time.
type AssetVersion struct {
	ID            uuid.UUID       `json:"id"`
	AssetID       uuid.UUID       `json:"asset_id"`
	VersionNumber int             `json:"version_number"`
	ObjectKey     string          `json:"object_key"`
	Checksum      string          `json:"checksum"`
	MimeType      *string         `json:"mime_type,omitempty"`
	SizeBytes     *int64          `json:"size_bytes,omitempty"`
	Width         int             `json:"width,omitempty"`
	Height        int             `json:"height,omitempty"`
	Metadata      VersionMetadata `json:"metadata"`
	IsCurrent     bool            `json:"is_current"`
	CreatedAt     time.Time       `json:"created_at"`
}
