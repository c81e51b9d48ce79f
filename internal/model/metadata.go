package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"

	"github.com/brandkit/asset-pipeline-go/internal/uuid"
)

// Dimensions is a width/height pair in pixels.
type Dimensions struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Metadata is the per-asset derived-data document. Each field is owned by
// exactly one pipeline stage:
//
//   - thumbnail stage: Thumbnails, ThumbnailDimensions, PreviewGenerated, ThumbnailTimeout, PageCount
//   - metadata extraction: DominantColors, ResolutionClass, Orientation, MetadataExtracted
//   - AI tagging: AITags, AITaggingCompleted, AITaggingSkipped, AITaggingSkipReason
//   - surrounding application: CategoryID
type Metadata struct {
	CategoryID *uuid.UUID `json:"category_id,omitempty"`

	// thumbnail stage
	Thumbnails          map[string]string     `json:"thumbnails,omitempty"`
	ThumbnailDimensions map[string]Dimensions `json:"thumbnail_dimensions,omitempty"`
	PreviewGenerated    bool                  `json:"preview_generated,omitempty"`
	ThumbnailTimeout    bool                  `json:"thumbnail_timeout,omitempty"`
	PageCount           int                   `json:"page_count,omitempty"`

	// metadata extraction stage
	DominantColors    []string `json:"dominant_colors,omitempty"`
	ResolutionClass   string   `json:"resolution_class,omitempty"`
	Orientation       string   `json:"orientation,omitempty"`
	MetadataExtracted bool     `json:"metadata_extracted,omitempty"`

	// AI tagging stage
	AITags              []string `json:"ai_tags,omitempty"`
	AITaggingCompleted  bool     `json:"ai_tagging_completed,omitempty"`
	AITaggingSkipped    bool     `json:"_ai_tagging_skipped,omitempty"`
	AITaggingSkipReason string   `json:"_ai_tagging_skip_reason,omitempty"`
}

func (m Metadata) Value() (driver.Value, error) {
	b, err := json.Marshal(m)
	if err != nil {
		return nil, fmt.Errorf("marshal Metadata: %w", err)
	}
	return b, nil
}
func (m *Metadata) Scan(src interface{}) error {
	if src == nil {
		*m = Metadata{}
		return nil
	}
	data, ok := src.([]byte)
	if !ok {
		return fmt.Errorf("Metadata.Scan: expected []byte, got %T", src)
	}
	if err := json.Unmarshal(data, m); err != nil {
		return fmt.Errorf("unmarshal Metadata: %w", err)
	}
	return nil
}

// VersionMetadata is the sparse metadata snapshot carried by an asset version.
// Fields are pointers (or nilable) so "absent" and "set" stay distinguishable
// when the document round-trips through JSON.
type VersionMetadata struct {
	CategoryID          *uuid.UUID            `json:"category_id,omitempty"`
	Thumbnails          map[string]string     `json:"thumbnails,omitempty"`
	ThumbnailDimensions map[string]Dimensions `json:"thumbnail_dimensions,omitempty"`
	DominantColors      []string              `json:"dominant_colors,omitempty"`
	MetadataExtracted   *bool                 `json:"metadata_extracted,omitempty"`
	PreviewGenerated    *bool                 `json:"preview_generated,omitempty"`
}

func (m VersionMetadata) Value() (driver.Value, error) {
	b, err := json.Marshal(m)
	if err != nil {
		return nil, fmt.Errorf("marshal VersionMetadata: %w", err)
	}
	return b, nil
}
func (m *VersionMetadata) Scan(src interface{}) error {
	if src == nil {
		*m = VersionMetadata{}
		return nil
	}
	data, ok := src.([]byte)
	if !ok {
		return fmt.Errorf("VersionMetadata.Scan: expected []byte, got %T", src)
	}
	if err := json.Unmarshal(data, m); err != nil {
		return fmt.Errorf("unmarshal VersionMetadata: %w", err)
	}
	return nil
}

// ApplyVersion merges a version's metadata snapshot into the asset document.
// A version value wins only when it is present and non-null; for every key
// the snapshot does not carry, the asset's existing value is retained. This
// is what keeps category assignment and completion flags from being wiped
// by a sparse snapshot.
func (m *Metadata) ApplyVersion(v VersionMetadata) {
	if v.CategoryID != nil {
		m.CategoryID = v.CategoryID
	}
	if len(v.Thumbnails) > 0 {
		m.Thumbnails = v.Thumbnails
	}
	if len(v.ThumbnailDimensions) > 0 {
		m.ThumbnailDimensions = v.ThumbnailDimensions
	}
	if len(v.DominantColors) > 0 {
		m.DominantColors = v.DominantColors
	}
	if v.MetadataExtracted != nil {
		m.MetadataExtracted = *v.MetadataExtracted
	}
	if v.PreviewGenerated != nil {
		m.PreviewGenerated = *v.PreviewGenerated
	}
}

// ClearAITaggingSkip removes any skip markers left by a previous gated run.
func (m *Metadata) ClearAITaggingSkip() {
	m.AITaggingSkipped = false
	m.AITaggingSkipReason = ""
}
