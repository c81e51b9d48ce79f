package pipeline

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/brandkit/asset-pipeline-go/internal/mock"
	"github.com/brandkit/asset-pipeline-go/internal/model"
	"github.com/brandkit/asset-pipeline-go/internal/port"
	pluuid "github.com/brandkit/asset-pipeline-go/internal/uuid"
)

func newVersionFor(a *model.Asset) *model.AssetVersion {
	mt := "image/jpeg"
	size := int64(4096)
	return &model.AssetVersion{
		ID:            pluuid.NewUUID(),
		AssetID:       a.ID,
		VersionNumber: 2,
		ObjectKey:     "originals/foo_v2.jpg",
		Checksum:      "deadbeef",
		MimeType:      &mt,
		SizeBytes:     &size,
	}
}

func TestPromoteVersion_AssetNotFound(t *testing.T) {
	assets := &mock.MockAssetRepo{GetErr: sql.ErrNoRows}
	svc := NewVersionPromoter(assets, &mock.MockVersionRepo{}, &mock.Storage{ExistsOut: true}, &mock.MockDispatcher{}, &mock.Cache{})

	err := svc.PromoteVersion(context.Background(), port.PromoteVersionInput{AssetID: pluuid.NewUUID(), VersionID: pluuid.NewUUID()})
	if !errors.Is(err, ErrAssetNotFound) {
		t.Fatalf("expected ErrAssetNotFound, got %v", err)
	}
}

func TestPromoteVersion_VersionNotFound(t *testing.T) {
	a := newThumbnailedAsset()
	assets := &mock.MockAssetRepo{AssetRecord: a}
	versions := &mock.MockVersionRepo{GetErr: sql.ErrNoRows}
	svc := NewVersionPromoter(assets, versions, &mock.Storage{ExistsOut: true}, &mock.MockDispatcher{}, &mock.Cache{})

	err := svc.PromoteVersion(context.Background(), port.PromoteVersionInput{AssetID: a.ID, VersionID: pluuid.NewUUID()})
	if !errors.Is(err, ErrVersionNotFound) {
		t.Fatalf("expected ErrVersionNotFound, got %v", err)
	}
}

func TestPromoteVersion_VersionMismatch(t *testing.T) {
	a := newThumbnailedAsset()
	v := newVersionFor(a)
	v.AssetID = pluuid.NewUUID()
	assets := &mock.MockAssetRepo{AssetRecord: a}
	versions := &mock.MockVersionRepo{VersionRecord: v}
	svc := NewVersionPromoter(assets, versions, &mock.Storage{ExistsOut: true}, &mock.MockDispatcher{}, &mock.Cache{})

	err := svc.PromoteVersion(context.Background(), port.PromoteVersionInput{AssetID: a.ID, VersionID: v.ID})
	if !errors.Is(err, ErrVersionMismatch) {
		t.Fatalf("expected ErrVersionMismatch, got %v", err)
	}
}

func TestPromoteVersion_SparseMergeKeepsAssetValues(t *testing.T) {
	a := newThumbnailedAsset()
	cat := pluuid.NewUUID()
	a.Metadata.CategoryID = &cat
	a.Metadata.MetadataExtracted = true
	v := newVersionFor(a)
	// sparse snapshot: no category, no completion flags
	assets := &mock.MockAssetRepo{AssetRecord: a}
	versions := &mock.MockVersionRepo{VersionRecord: v}
	dispatcher := &mock.MockDispatcher{}
	svc := NewVersionPromoter(assets, versions, &mock.Storage{ExistsOut: true}, dispatcher, &mock.Cache{})

	if err := svc.PromoteVersion(context.Background(), port.PromoteVersionInput{AssetID: a.ID, VersionID: v.ID}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if a.Metadata.CategoryID == nil || *a.Metadata.CategoryID != cat {
		t.Error("expected category assignment to survive a sparse snapshot")
	}
	if !a.Metadata.MetadataExtracted {
		t.Error("expected completion flag to survive a sparse snapshot")
	}
	if a.ObjectKey != v.ObjectKey {
		t.Errorf("object key = %q; want the version's %q", a.ObjectKey, v.ObjectKey)
	}
	if a.MimeType == nil || *a.MimeType != "image/jpeg" {
		t.Errorf("mime type = %v; want the version's image/jpeg", a.MimeType)
	}
	if a.ThumbnailStatus != model.ThumbnailStatusPending {
		t.Errorf("status = %s; want pending for regeneration", a.ThumbnailStatus)
	}
	if !versions.MarkCurrentCalled || versions.MarkedVersionID != v.ID {
		t.Error("expected the version marked current")
	}
	if !dispatcher.GenerateCalled {
		t.Error("expected a generate-thumbnails dispatch")
	}
}

func TestPromoteVersion_SnapshotValuesWin(t *testing.T) {
	a := newThumbnailedAsset()
	v := newVersionFor(a)
	newCat := pluuid.NewUUID()
	extracted := false
	v.Metadata = model.VersionMetadata{
		CategoryID:        &newCat,
		MetadataExtracted: &extracted,
	}
	assets := &mock.MockAssetRepo{AssetRecord: a}
	versions := &mock.MockVersionRepo{VersionRecord: v}
	svc := NewVersionPromoter(assets, versions, &mock.Storage{ExistsOut: true}, &mock.MockDispatcher{}, &mock.Cache{})

	if err := svc.PromoteVersion(context.Background(), port.PromoteVersionInput{AssetID: a.ID, VersionID: v.ID}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if a.Metadata.CategoryID == nil || *a.Metadata.CategoryID != newCat {
		t.Error("expected the snapshot's category to win")
	}
	if a.Metadata.MetadataExtracted {
		t.Error("expected the snapshot's explicit false to win")
	}
}

func TestPromoteVersion_MarkCurrentError(t *testing.T) {
	a := newThumbnailedAsset()
	v := newVersionFor(a)
	assets := &mock.MockAssetRepo{AssetRecord: a}
	versions := &mock.MockVersionRepo{VersionRecord: v, MarkCurrentErr: errors.New("db fail")}
	svc := NewVersionPromoter(assets, versions, &mock.Storage{ExistsOut: true}, &mock.MockDispatcher{}, &mock.Cache{})

	if err := svc.PromoteVersion(context.Background(), port.PromoteVersionInput{AssetID: a.ID, VersionID: v.ID}); err == nil {
		t.Fatal("expected mark-current error to propagate")
	}
	if assets.Updated != nil {
		t.Error("expected no asset update after a failed mark-current")
	}
}

func TestPromoteVersion_ObjectMissing(t *testing.T) {
	a := newThumbnailedAsset()
	v := newVersionFor(a)
	assets := &mock.MockAssetRepo{AssetRecord: a}
	versions := &mock.MockVersionRepo{VersionRecord: v}
	strg := &mock.Storage{ExistsOut: false}
	svc := NewVersionPromoter(assets, versions, strg, &mock.MockDispatcher{}, &mock.Cache{})

	err := svc.PromoteVersion(context.Background(), port.PromoteVersionInput{AssetID: a.ID, VersionID: v.ID})
	if !errors.Is(err, ErrVersionObjectMissing) {
		t.Fatalf("expected ErrVersionObjectMissing, got %v", err)
	}
	if versions.MarkCurrentCalled {
		t.Error("expected no mark-current for a missing object")
	}
	if assets.Updated != nil {
		t.Error("expected no asset update for a missing object")
	}
}
