package mock

import (
	"io"

	"github.com/brandkit/asset-pipeline-go/internal/port"
)

// Renderer implements thumbnail rendering for tests.
type Renderer struct {
	SupportsOut  bool
	RenderOut    []port.RenderedThumbnail
	RenderErr    error
	RenderPanic  bool
	PageCountOut int
	PageCountErr error

	SupportsCalled  bool
	RenderCalled    bool
	RenderedMime    string
	RenderedSizes   map[string]int
	PageCountCalled bool
}

func (m *Renderer) Supports(mimeType string) bool {
	m.SupportsCalled = true
	return m.SupportsOut
}

func (m *Renderer) Render(mimeType string, r io.Reader, sizes map[string]int) ([]port.RenderedThumbnail, error) {
	m.RenderCalled = true
	m.RenderedMime = mimeType
	m.RenderedSizes = sizes
	if m.RenderPanic {
		panic("renderer exploded")
	}
	if m.RenderErr != nil {
		return nil, m.RenderErr
	}
	return m.RenderOut, nil
}

func (m *Renderer) PageCount(mimeType string, r io.Reader) (int, error) {
	m.PageCountCalled = true
	if m.PageCountErr != nil {
		return 0, m.PageCountErr
	}
	return m.PageCountOut, nil
}

// ColorExtractor implements dominant color extraction for tests.
type ColorExtractor struct {
	ColorsOut []string
	ColorsErr error

	Called bool
	GotMax int
}

func (m *ColorExtractor) DominantColors(r io.Reader, max int) ([]string, error) {
	m.Called = true
	m.GotMax = max
	if m.ColorsErr != nil {
		return nil, m.ColorsErr
	}
	return m.ColorsOut, nil
}
