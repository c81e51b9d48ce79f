package pipeline

import (
	"bytes"
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/brandkit/asset-pipeline-go/internal/mock"
	"github.com/brandkit/asset-pipeline-go/internal/model"
	pluuid "github.com/brandkit/asset-pipeline-go/internal/uuid"
)

func TestTagAsset_GetByIDNotFound(t *testing.T) {
	repo := &mock.MockAssetRepo{GetErr: sql.ErrNoRows}
	svc := NewAssetTagger(repo, &mock.Tagger{}, &mock.Storage{}, &mock.Cache{})

	err := svc.TagAsset(context.Background(), pluuid.NewUUID())
	if !errors.Is(err, ErrAssetNotFound) {
		t.Fatalf("expected ErrAssetNotFound, got %v", err)
	}
}

func TestTagAsset_SkipsWithoutThumbnails(t *testing.T) {
	a := newPendingAsset()
	a.ThumbnailStatus = model.ThumbnailStatusFailed
	a.Metadata.AITaggingCompleted = true // from a previous binary, must survive
	repo := &mock.MockAssetRepo{AssetRecord: a}
	tg := &mock.Tagger{}
	ca := &mock.Cache{}
	svc := NewAssetTagger(repo, tg, &mock.Storage{}, ca)

	if err := svc.TagAsset(context.Background(), a.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tg.Called {
		t.Error("expected no tagger call without thumbnails")
	}
	if !a.Metadata.AITaggingSkipped {
		t.Error("expected skip marker set")
	}
	if a.Metadata.AITaggingSkipReason != SkipReasonThumbnailUnavailable {
		t.Errorf("skip reason = %q; want %q", a.Metadata.AITaggingSkipReason, SkipReasonThumbnailUnavailable)
	}
	if !a.Metadata.AITaggingCompleted {
		t.Error("expected completion flag untouched by a skip")
	}
	if repo.Updated == nil {
		t.Error("expected skip markers persisted")
	}
	if !ca.DelDetailsCalled {
		t.Error("expected details cache invalidated after persisting skip markers")
	}
}

func TestTagAsset_CompletedWithoutMediumSkips(t *testing.T) {
	a := newThumbnailedAsset()
	delete(a.Metadata.Thumbnails, SizeMedium)
	repo := &mock.MockAssetRepo{AssetRecord: a}
	tg := &mock.Tagger{}
	svc := NewAssetTagger(repo, tg, &mock.Storage{}, &mock.Cache{})

	if err := svc.TagAsset(context.Background(), a.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tg.Called {
		t.Error("expected no tagger call without a medium thumbnail")
	}
	if !a.Metadata.AITaggingSkipped || a.Metadata.AITaggingSkipReason != SkipReasonThumbnailUnavailable {
		t.Error("expected skip markers for a completed asset missing its medium preview")
	}
}

func TestTagAsset_TaggerErrorPropagates(t *testing.T) {
	a := newThumbnailedAsset()
	repo := &mock.MockAssetRepo{AssetRecord: a}
	tg := &mock.Tagger{LabelsErr: errors.New("service down")}
	svc := NewAssetTagger(repo, tg, &mock.Storage{}, &mock.Cache{})

	err := svc.TagAsset(context.Background(), a.ID)
	if err == nil {
		t.Fatal("expected tagger error to propagate")
	}
	if a.Metadata.AITaggingCompleted {
		t.Error("expected no completion flag on failure")
	}
}

func TestTagAsset_Success(t *testing.T) {
	a := newThumbnailedAsset()
	a.Metadata.AITaggingSkipped = true
	a.Metadata.AITaggingSkipReason = SkipReasonThumbnailUnavailable
	repo := &mock.MockAssetRepo{AssetRecord: a}
	strg := &mock.Storage{GetOut: bytes.NewReader([]byte("webp-bytes"))}
	tg := &mock.Tagger{LabelsOut: []string{"logo", "outdoor"}}
	ca := &mock.Cache{}
	svc := NewAssetTagger(repo, tg, strg, ca)

	if err := svc.TagAsset(context.Background(), a.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(a.Metadata.AITags) != 2 {
		t.Errorf("ai tags = %v; want 2 entries", a.Metadata.AITags)
	}
	if !a.Metadata.AITaggingCompleted {
		t.Error("expected completion flag set")
	}
	if a.Metadata.AITaggingSkipped || a.Metadata.AITaggingSkipReason != "" {
		t.Error("expected skip markers cleared after a successful run")
	}
	if tg.GotMime != "image/webp" {
		t.Errorf("tagger mime = %q; want image/webp", tg.GotMime)
	}
	if string(tg.GotData) != "webp-bytes" {
		t.Errorf("tagger got %q; want the medium thumbnail bytes", tg.GotData)
	}
	if !ca.DelDetailsCalled {
		t.Error("expected details cache invalidated")
	}
}
