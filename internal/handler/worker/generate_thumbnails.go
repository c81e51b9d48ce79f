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

// GenerateThumbnailsHandler handles a generate-thumbnails task.
// It validates the incoming payload and delegates the call to the service.
func GenerateThumbnailsHandler(ctx context.Context, p task.GenerateThumbnailsPayload, sizes map[string]int, svc port.ThumbnailGenerator) error {
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
	in := port.GenerateThumbnailsInput{ID: id, Sizes: sizes}
	if err := svc.GenerateThumbnails(ctx, in); err != nil {
		log.Printf("❌  Failed to generate thumbnails for asset #%s: %v", id, err)
		return err
	}

	log.Printf("✅  Finished thumbnail run for asset #%s", id)
	return nil
}
