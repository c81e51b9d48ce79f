package worker

import (
	"context"
	"log"

	"github.com/brandkit/asset-pipeline-go/internal/pipeline_context"
	"github.com/brandkit/asset-pipeline-go/internal/port"
	"github.com/brandkit/asset-pipeline-go/internal/task"
	"github.com/brandkit/asset-pipeline-go/internal/uuid"
	"github.com/brandkit/asset-pipeline-go/internal/validation"
)

// TagAssetHandler handles a tag-asset task.
// It validates the incoming payload and delegates the call to the service.
func TagAssetHandler(ctx context.Context, p task.TagAssetPayload, svc port.AssetTagger) error {
	if err := validation.ValidateStruct(p); err != nil {
		log.Printf("❌  Payload validation failed: %v", err)
		return err
	}

	id, err := uuid.Parse(p.AssetID)
	if err != nil {
		log.Printf("❌  Invalid asset ID %q: %v", p.AssetID, err)
		return err
	}

	ctx = pipeline_context.WithAssetID(ctx, id)
	if err := svc.TagAsset(ctx, id); err != nil {
		log.Printf("❌  Failed to tag asset #%s: %v", id, err)
		return err
	}

	log.Printf("✅  Finished AI tagging for asset #%s", id)
	return nil
}
