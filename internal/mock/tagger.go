package mock

import "context"

// Tagger implements label derivation for tests.
type Tagger struct {
	LabelsOut []string
	LabelsErr error

	Called  bool
	GotData []byte
	GotMime string
}

func (m *Tagger) Labels(ctx context.Context, imageData []byte, mimeType string) ([]string, error) {
	m.Called = true
	m.GotData = imageData
	m.GotMime = mimeType
	if m.LabelsErr != nil {
		return nil, m.LabelsErr
	}
	return m.LabelsOut, nil
}
