package mariadb

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/brandkit/asset-pipeline-go/internal/model"
	pluuid "github.com/brandkit/asset-pipeline-go/internal/uuid"
)

func TestVersionRepository_Create_Success(t *testing.T) {
	sqlDB, mock := newMockDB(t)
	repo := NewVersionRepository(sqlDB)

	mt := "image/jpeg"
	v := &model.AssetVersion{
		ID:            pluuid.NewUUID(),
		AssetID:       pluuid.NewUUID(),
		VersionNumber: 2,
		ObjectKey:     "originals/foo_v2.jpg",
		Checksum:      "deadbeef",
		MimeType:      &mt,
		Width:         800,
		Height:        600,
	}

	mock.ExpectExec("INSERT INTO asset_versions").
		WithArgs(
			v.ID, v.AssetID, v.VersionNumber,
			v.ObjectKey, v.Checksum, v.MimeType,
			v.SizeBytes, v.Width, v.Height,
			sqlmock.AnyArg(), // metadata JSON
			v.IsCurrent,
		).
		WillReturnResult(sqlmock.NewResult(1, 1))

	if err := repo.Create(context.Background(), v); err != nil {
		t.Errorf("Create() returned unexpected error: %v", err)
	}
}

func TestVersionRepository_ListByAsset(t *testing.T) {
	sqlDB, mock := newMockDB(t)
	repo := NewVersionRepository(sqlDB)

	assetID := pluuid.NewUUID()
	id1 := pluuid.NewUUID()
	id2 := pluuid.NewUUID()
	assetB, _ := assetID.Value()
	b1, _ := id1.Value()
	b2, _ := id2.Value()
	now := time.Now()

	cols := []string{"id", "asset_id", "version_number", "object_key", "checksum", "mime_type", "size_bytes", "width", "height", "metadata", "is_current", "created_at"}
	rows := sqlmock.NewRows(cols).
		AddRow(b2, assetB, 2, "k2", "c2", nil, nil, 0, 0, []byte(`{}`), true, now).
		AddRow(b1, assetB, 1, "k1", "c1", nil, nil, 0, 0, []byte(`{}`), false, now)

	mock.ExpectQuery(regexp.QuoteMeta("ORDER BY version_number DESC")).
		WithArgs(assetID).
		WillReturnRows(rows)

	got, err := repo.ListByAsset(context.Background(), assetID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 2 || got[0].VersionNumber != 2 || !got[0].IsCurrent {
		t.Errorf("versions = %+v; want newest first and current", got)
	}
}

func TestVersionRepository_MarkCurrent_Success(t *testing.T) {
	sqlDB, mock := newMockDB(t)
	repo := NewVersionRepository(sqlDB)

	assetID := pluuid.NewUUID()
	versionID := pluuid.NewUUID()

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("SET is_current = 0 WHERE asset_id = ?")).
		WithArgs(assetID).
		WillReturnResult(sqlmock.NewResult(0, 3))
	mock.ExpectExec(regexp.QuoteMeta("SET is_current = 1 WHERE id = ? AND asset_id = ?")).
		WithArgs(versionID, assetID).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	if err := repo.MarkCurrent(context.Background(), assetID, versionID); err != nil {
		t.Errorf("MarkCurrent() returned unexpected error: %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("there were unfulfilled expectations: %s", err)
	}
}

func TestVersionRepository_MarkCurrent_WrongVersionRollsBack(t *testing.T) {
	sqlDB, mock := newMockDB(t)
	repo := NewVersionRepository(sqlDB)

	assetID := pluuid.NewUUID()
	versionID := pluuid.NewUUID()

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("SET is_current = 0")).
		WithArgs(assetID).
		WillReturnResult(sqlmock.NewResult(0, 3))
	mock.ExpectExec(regexp.QuoteMeta("SET is_current = 1")).
		WithArgs(versionID, assetID).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	err := repo.MarkCurrent(context.Background(), assetID, versionID)
	if err == nil || !strings.Contains(err.Error(), "does not belong") {
		t.Fatalf("expected a mismatch error, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("there were unfulfilled expectations: %s", err)
	}
}

func TestVersionRepository_MarkCurrent_BeginError(t *testing.T) {
	sqlDB, mock := newMockDB(t)
	repo := NewVersionRepository(sqlDB)

	mock.ExpectBegin().WillReturnError(errors.New("tx fail"))

	if err := repo.MarkCurrent(context.Background(), pluuid.NewUUID(), pluuid.NewUUID()); err == nil {
		t.Fatal("expected begin error to propagate")
	}
}
