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

// ExtractMetadataHandler handles an extract-metadata task.
// It validates the incoming payload and delegates the call to the service.
func ExtractMetadataHandler(ctx context.Context, p task.ExtractMetadataPayload, svc port.MetadataExtractor) error {
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
	in := port.ExtractMetadataInput{ID: id, Attempt: p.Attempt}
	if err := svc.ExtractMetadata(ctx, in); err != nil {
		log.Printf("❌  Failed to extract metadata for asset #%s: %v", id, err)
		return err
	}

	log.Printf("✅  Finished metadata extraction for asset #%s", id)
	return nil
}
