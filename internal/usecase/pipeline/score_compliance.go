package pipeline

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"strconv"
	"strings"

	"github.com/brandkit/asset-pipeline-go/internal/model"
	"github.com/brandkit/asset-pipeline-go/internal/port"
	"github.com/brandkit/asset-pipeline-go/internal/uuid"
)

// paletteTolerance is the max per-channel-summed RGB distance for a dominant
// color to count as matching a palette entry.
const paletteTolerance = 90

type complianceScorerSrv struct {
	repo      port.AssetRepository
	brands    port.BrandModelRepository
	scores    port.ComplianceScoreRepository
	incidents port.IncidentSink
	cache     port.Cache
}

// compile-time check: *complianceScorerSrv must satisfy port.ComplianceScorer
var _ port.ComplianceScorer = (*complianceScorerSrv)(nil)

// NewComplianceScorer constructs a ComplianceScorer implementation.
func NewComplianceScorer(repo port.AssetRepository, brands port.BrandModelRepository, scores port.ComplianceScoreRepository, incidents port.IncidentSink, cache port.Cache) port.ComplianceScorer {
	return &complianceScorerSrv{repo, brands, scores, incidents, cache}
}

// ScoreCompliance evaluates the asset against its brand's active model and
// upserts a single score row per (asset, brand). Rules whose inputs are
// missing from the metadata document are left out of the weighted average
// and the record is marked incomplete instead of failing the task.
func (s *complianceScorerSrv) ScoreCompliance(ctx context.Context, id uuid.UUID) error {
	asset, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrAssetNotFound
		}
		return err
	}
	if asset.BrandID == nil {
		log.Printf("asset #%s has no brand, nothing to score", asset.ID)
		return nil
	}

	mdl, err := s.brands.GetActiveModel(ctx, *asset.BrandID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Printf("brand #%s has no active compliance model, skipping scoring for asset #%s", asset.BrandID, asset.ID)
			return nil
		}
		return fmt.Errorf("failed loading compliance model: %w", err)
	}

	status := model.EvaluationStatusComplete
	breakdown := make(model.RuleScores, len(mdl.Rules))
	var weighted, totalWeight float64
	missingInputs := make([]string, 0, 2)

	for _, rule := range mdl.Rules {
		score, ok := evaluateRule(rule, asset)
		if !ok {
			status = model.EvaluationStatusIncomplete
			missingInputs = append(missingInputs, rule.Type)
			continue
		}
		breakdown[rule.Type] = score
		weighted += score * rule.Weight
		totalWeight += rule.Weight
	}

	var total float64
	if totalWeight > 0 {
		total = weighted / totalWeight
	}

	if len(missingInputs) > 0 {
		err := s.incidents.Raise(ctx, port.RaiseIncidentInput{
			SourceType: IncidentSourceTypeAsset,
			SourceID:   asset.ID,
			Title:      IncidentTitleMissingVisualMetadata,
			Detail:     fmt.Sprintf("compliance rules missing inputs: %s", strings.Join(missingInputs, ", ")),
		})
		if err != nil {
			log.Printf("failed raising incident for asset #%s: %v", asset.ID, err)
		}
	}

	record := &model.ComplianceScore{
		ID:               uuid.NewUUID(),
		AssetID:          asset.ID,
		BrandID:          *asset.BrandID,
		ModelVersion:     mdl.Version,
		EvaluationStatus: status,
		Score:            total,
		Breakdown:        breakdown,
	}
	if err := s.scores.Upsert(ctx, record); err != nil {
		return fmt.Errorf("failed upserting compliance score: %w", err)
	}

	if err := s.cache.DeleteAssetDetails(ctx, asset.ID); err != nil {
		log.Printf("failed deleting cache for asset #%s: %v", asset.ID, err)
	}
	return nil
}

// evaluateRule scores one rule in 0..1. The second return is false when the
// metadata the rule needs was never derived.
func evaluateRule(rule model.ComplianceRule, asset *model.Asset) (float64, bool) {
	switch rule.Type {
	case model.RuleTypePalette:
		colors := asset.Metadata.DominantColors
		if len(colors) == 0 {
			return 0, false
		}
		matched := 0
		for _, c := range colors {
			if paletteContains(rule.Colors, c) {
				matched++
			}
		}
		return float64(matched) / float64(len(colors)), true

	case model.RuleTypeMinResolution:
		dims, ok := asset.Metadata.ThumbnailDimensions[SizeMedium]
		if !ok || dims.Width <= 0 || dims.Height <= 0 {
			return 0, false
		}
		if dims.Width >= rule.MinWidth && dims.Height >= rule.MinHeight {
			return 1, true
		}
		return 0, true

	case model.RuleTypeOrientation:
		if asset.Metadata.Orientation == "" {
			return 0, false
		}
		if asset.Metadata.Orientation == rule.Orientation {
			return 1, true
		}
		return 0, true
	}

	// unknown rule type counts as missing input
	return 0, false
}

func paletteContains(palette []string, hex string) bool {
	r, g, b, ok := parseHexColor(hex)
	if !ok {
		return false
	}
	for _, p := range palette {
		pr, pg, pb, ok := parseHexColor(p)
		if !ok {
			continue
		}
		if abs(r-pr)+abs(g-pg)+abs(b-pb) <= paletteTolerance {
			return true
		}
	}
	return false
}

func parseHexColor(s string) (r, g, b int, ok bool) {
	s = strings.TrimPrefix(strings.ToLower(s), "#")
	if len(s) != 6 {
		return 0, 0, 0, false
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return 0, 0, 0, false
	}
	return int(v >> 16), int(v >> 8 & 0xff), int(v & 0xff), true
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
