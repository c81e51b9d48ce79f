package worker

import (
	"context"
	"errors"
	"testing"

	"github.com/brandkit/asset-pipeline-go/internal/port"
	"github.com/brandkit/asset-pipeline-go/internal/task"
	pluuid "github.com/brandkit/asset-pipeline-go/internal/uuid"
	"github.com/google/uuid"
)

type mockMetadataExtractor struct {
	in     port.ExtractMetadataInput
	called bool
	err    error
}

func (m *mockMetadataExtractor) ExtractMetadata(ctx context.Context, in port.ExtractMetadataInput) error {
	m.called = true
	m.in = in
	return m.err
}

func TestExtractMetadataHandler_InvalidID(t *testing.T) {
	svc := &mockMetadataExtractor{}
	err := ExtractMetadataHandler(context.Background(), task.ExtractMetadataPayload{AssetID: "invalid"}, svc)
	if err == nil {
		t.Fatal("expected error for invalid UUID")
	}
	if svc.called {
		t.Error("service should not be called on invalid id")
	}
}

func TestExtractMetadataHandler_NegativeAttempt(t *testing.T) {
	id := pluuid.UUID(uuid.MustParse("aaaaaaaa-bbbb-cccc-dddd-eeeeeeeeeeee"))
	svc := &mockMetadataExtractor{}
	err := ExtractMetadataHandler(context.Background(), task.ExtractMetadataPayload{AssetID: id.String(), Attempt: -1}, svc)
	if err == nil {
		t.Fatal("expected validation error for negative attempt")
	}
	if svc.called {
		t.Error("service should not be called on invalid payload")
	}
}

func TestExtractMetadataHandler_ServiceError(t *testing.T) {
	id := pluuid.UUID(uuid.MustParse("aaaaaaaa-bbbb-cccc-dddd-eeeeeeeeeeee"))
	svcErr := errors.New("svc fail")
	svc := &mockMetadataExtractor{err: svcErr}

	err := ExtractMetadataHandler(context.Background(), task.ExtractMetadataPayload{AssetID: id.String()}, svc)
	if !errors.Is(err, svcErr) {
		t.Fatalf("got error %v; want %v", err, svcErr)
	}
	if !svc.called {
		t.Error("service not called")
	}
}

func TestExtractMetadataHandler_Success(t *testing.T) {
	id := pluuid.UUID(uuid.MustParse("aaaaaaaa-bbbb-cccc-dddd-eeeeeeeeeeee"))
	svc := &mockMetadataExtractor{}

	err := ExtractMetadataHandler(context.Background(), task.ExtractMetadataPayload{AssetID: id.String(), Attempt: 2}, svc)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !svc.called {
		t.Error("service not called")
	}
	if svc.in.ID != id {
		t.Errorf("service got id %s; want %s", svc.in.ID, id)
	}
	if svc.in.Attempt != 2 {
		t.Errorf("service got attempt %d; want 2", svc.in.Attempt)
	}
}
