package mock

import (
	"context"

	"github.com/brandkit/asset-pipeline-go/internal/port"
	"github.com/brandkit/asset-pipeline-go/internal/uuid"
)

// MockIncidentSink records raised incidents for tests.
type MockIncidentSink struct {
	RaiseErr     error
	OpenCountOut int
	OpenCountErr error

	RaiseCalled     bool
	OpenCountCalled bool
	Raised          []port.RaiseIncidentInput
}

func (m *MockIncidentSink) Raise(ctx context.Context, in port.RaiseIncidentInput) error {
	m.RaiseCalled = true
	m.Raised = append(m.Raised, in)
	return m.RaiseErr
}

func (m *MockIncidentSink) OpenCount(ctx context.Context, sourceType string, sourceID uuid.UUID) (int, error) {
	m.OpenCountCalled = true
	if m.OpenCountErr != nil {
		return 0, m.OpenCountErr
	}
	return m.OpenCountOut, nil
}
