package port

import "io"

// RenderedThumbnail is one generated preview, already encoded as webp.
type RenderedThumbnail struct {
	SizeName string
	Data     []byte
	Width    int
	Height   int
}

// ThumbnailRenderer turns a source file into raster previews.
type ThumbnailRenderer interface {
	// Supports reports whether the renderer can produce previews for the mime type.
	Supports(mimeType string) bool
	// Render decodes the source and produces one preview per entry of sizes
	// (size name → max width in pixels), never upscaling.
	Render(mimeType string, r io.Reader, sizes map[string]int) ([]RenderedThumbnail, error)
	// PageCount returns the number of pages of a paged document, or 0 for
	// formats without a page concept.
	PageCount(mimeType string, r io.Reader) (int, error)
}

// ColorExtractor derives the dominant colors of an encoded image.
type ColorExtractor interface {
	DominantColors(r io.Reader, max int) ([]string, error)
}
