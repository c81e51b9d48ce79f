package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/brandkit/asset-pipeline-go/internal/uuid"
)

const (
	EvaluationStatusComplete   = "complete"
	EvaluationStatusIncomplete = "incomplete"
)

// Rule types understood by the compliance scorer.
const (
	RuleTypePalette       = "palette"
	RuleTypeMinResolution = "min_resolution"
	RuleTypeOrientation   = "orientation"
)

// ComplianceRule is one weighted scoring rule of a brand model version.
type ComplianceRule struct {
	Type   string  `json:"type"`
	Weight float64 `json:"weight"`

	// palette
	Colors []string `json:"colors,omitempty"`

	// min_resolution
	MinWidth  int `json:"min_width,omitempty"`
	MinHeight int `json:"min_height,omitempty"`

	// orientation
	Orientation string `json:"orientation,omitempty"`
}

type ComplianceRules []ComplianceRule

func (r ComplianceRules) Value() (driver.Value, error) {
	return json.Marshal(r)
}
func (r *ComplianceRules) Scan(src interface{}) error {
	if src == nil {
		*r = nil
		return nil
	}
	data, ok := src.([]byte)
	if !ok {
		return fmt.Errorf("ComplianceRules.Scan: expected []byte, got %T", src)
	}
	return json.Unmarshal(data, r)
}

// ComplianceModel is the active rule set of a brand.
type ComplianceModel struct {
	ID        uuid.UUID       `json:"id"`
	BrandID   uuid.UUID       `json:"brand_id"`
	Version   int             `json:"version"`
	Rules     ComplianceRules `json:"rules"`
	CreatedAt time.Time       `json:"created_at"`
}

// RuleScores maps a rule type to its 0..1 score.
type RuleScores map[string]float64

func (s RuleScores) Value() (driver.Value, error) {
	return json.Marshal(s)
}
func (s *RuleScores) Scan(src interface{}) error {
	if src == nil {
		*s = nil
		return nil
	}
	data, ok := src.([]byte)
	if !ok {
		return fmt.Errorf("RuleScores.Scan: expected []byte, got %T", src)
	}
	return json.Unmarshal(data, s)
}

// ComplianceScore is the derived score record, one per (asset, brand) pair.
type ComplianceScore struct {
	ID               uuid.UUID  `json:"id"`
	AssetID          uuid.UUID  `json:"asset_id"`
	BrandID          uuid.UUID  `json:"brand_id"`
	ModelVersion     int        `json:"model_version"`
	EvaluationStatus string     `json:"evaluation_status"`
	Score            float64    `json:"score"`
	Breakdown        RuleScores `json:"breakdown"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`
}
