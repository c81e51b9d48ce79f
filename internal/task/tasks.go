package task

import (
	"encoding/json"
	"fmt"

	"github.com/hibiken/asynq"
)

const (
	TypeGenerateThumbnails = "pipeline:generate_thumbnails"
	TypeExtractMetadata    = "pipeline:extract_metadata"
	TypeTagAsset           = "pipeline:tag_asset"
	TypeScoreCompliance    = "pipeline:score_compliance"
)

type GenerateThumbnailsPayload struct {
	AssetID string `json:"asset_id" validate:"required,uuid"`
}

type ExtractMetadataPayload struct {
	AssetID string `json:"asset_id" validate:"required,uuid"`
	Attempt int    `json:"attempt" validate:"gte=0"`
}

type TagAssetPayload struct {
	AssetID string `json:"asset_id" validate:"required,uuid"`
}

type ScoreCompliancePayload struct {
	AssetID string `json:"asset_id" validate:"required,uuid"`
}

// NewGenerateThumbnailsTask creates an Asynq task for generating an asset's thumbnails.
func NewGenerateThumbnailsTask(assetID string) (*asynq.Task, error) {
	data, err := json.Marshal(GenerateThumbnailsPayload{AssetID: assetID})
	if err != nil {
		return nil, fmt.Errorf("could not marshal generate-thumbnails payload: %w", err)
	}
	return asynq.NewTask(TypeGenerateThumbnails, data), nil
}

// ParseGenerateThumbnailsPayload parses the task payload to GenerateThumbnailsPayload.
func ParseGenerateThumbnailsPayload(t *asynq.Task) (GenerateThumbnailsPayload, error) {
	var p GenerateThumbnailsPayload
	if err := json.Unmarshal(t.Payload(), &p); err != nil {
		return GenerateThumbnailsPayload{}, fmt.Errorf("could not unmarshal payload: %w", err)
	}
	return p, nil
}

// NewExtractMetadataTask creates an Asynq task for extracting an asset's metadata.
// The attempt counter travels with the payload so the retry gate can back off.
func NewExtractMetadataTask(assetID string, attempt int) (*asynq.Task, error) {
	data, err := json.Marshal(ExtractMetadataPayload{AssetID: assetID, Attempt: attempt})
	if err != nil {
		return nil, fmt.Errorf("could not marshal extract-metadata payload: %w", err)
	}
	return asynq.NewTask(TypeExtractMetadata, data), nil
}

// ParseExtractMetadataPayload parses the task payload to ExtractMetadataPayload.
func ParseExtractMetadataPayload(t *asynq.Task) (ExtractMetadataPayload, error) {
	var p ExtractMetadataPayload
	if err := json.Unmarshal(t.Payload(), &p); err != nil {
		return ExtractMetadataPayload{}, fmt.Errorf("could not unmarshal payload: %w", err)
	}
	return p, nil
}

// NewTagAssetTask creates an Asynq task for AI-tagging an asset.
func NewTagAssetTask(assetID string) (*asynq.Task, error) {
	data, err := json.Marshal(TagAssetPayload{AssetID: assetID})
	if err != nil {
		return nil, fmt.Errorf("could not marshal tag-asset payload: %w", err)
	}
	return asynq.NewTask(TypeTagAsset, data), nil
}

// ParseTagAssetPayload parses the task payload to TagAssetPayload.
func ParseTagAssetPayload(t *asynq.Task) (TagAssetPayload, error) {
	var p TagAssetPayload
	if err := json.Unmarshal(t.Payload(), &p); err != nil {
		return TagAssetPayload{}, fmt.Errorf("could not unmarshal payload: %w", err)
	}
	return p, nil
}

// NewScoreComplianceTask creates an Asynq task for compliance-scoring an asset.
func NewScoreComplianceTask(assetID string) (*asynq.Task, error) {
	data, err := json.Marshal(ScoreCompliancePayload{AssetID: assetID})
	if err != nil {
		return nil, fmt.Errorf("could not marshal score-compliance payload: %w", err)
	}
	return asynq.NewTask(TypeScoreCompliance, data), nil
}

// ParseScoreCompliancePayload parses the task payload to ScoreCompliancePayload.
func ParseScoreCompliancePayload(t *asynq.Task) (ScoreCompliancePayload, error) {
	var p ScoreCompliancePayload
	if err := json.Unmarshal(t.Payload(), &p); err != nil {
		return ScoreCompliancePayload{}, fmt.Errorf("could not unmarshal payload: %w", err)
	}
	return p, nil
}
