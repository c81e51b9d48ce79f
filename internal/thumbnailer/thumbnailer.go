package thumbnailer

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"io"
	"log"

	"github.com/brandkit/asset-pipeline-go/internal/port"
	"golang.org/x/image/draw"
)

const webpQuality = 80

var ErrUnsupportedMimeType = errors.New("thumbnailer: unsupported mime type")

var rasterMimeTypes = map[string]bool{
	"image/png":  true,
	"image/jpeg": true,
	"image/webp": true,
}

// Renderer produces webp previews from raster images and PDFs.
type Renderer struct {
	webpEnc WebPEncoder
	pdf     PDFCoverExtractor
}

// compile-time check: *Renderer must satisfy port.ThumbnailRenderer
var _ port.ThumbnailRenderer = (*Renderer)(nil)

func NewRenderer(webpEnc WebPEncoder, pdf PDFCoverExtractor) *Renderer {
	log.Println("initialising thumbnail renderer...")
	return &Renderer{webpEnc: webpEnc, pdf: pdf}
}

func (t *Renderer) Supports(mimeType string) bool {
	return rasterMimeTypes[mimeType] || mimeType == "application/pdf"
}

// Render decodes the source once and encodes one webp preview per requested
// size. Sources narrower than a size's max width are re-encoded at their
// native dimensions, never upscaled.
func (t *Renderer) Render(mimeType string, r io.Reader, sizes map[string]int) ([]port.RenderedThumbnail, error) {
	src, err := t.decode(mimeType, r)
	if err != nil {
		return nil, err
	}

	srcW := src.Bounds().Dx()
	srcH := src.Bounds().Dy()
	if srcW <= 0 || srcH <= 0 {
		return nil, fmt.Errorf("thumbnailer: source has empty bounds")
	}

	out := make([]port.RenderedThumbnail, 0, len(sizes))
	for name, maxWidth := range sizes {
		if maxWidth <= 0 {
			continue
		}

		w, h := srcW, srcH
		scaled := src
		if srcW > maxWidth {
			w = maxWidth
			h = srcH * maxWidth / srcW
			if h < 1 {
				h = 1
			}
			dst := image.NewRGBA(image.Rect(0, 0, w, h))
			draw.CatmullRom.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Over, nil)
			scaled = dst
		}

		buf := &bytes.Buffer{}
		if err := t.webpEnc.Encode(scaled, webpQuality, buf); err != nil {
			return nil, fmt.Errorf("thumbnailer: failed to encode %q preview: %w", name, err)
		}
		out = append(out, port.RenderedThumbnail{
			SizeName: name,
			Data:     buf.Bytes(),
			Width:    w,
			Height:   h,
		})
	}
	return out, nil
}

// PageCount counts the pages of a PDF source. Raster images have no page
// concept and report 0 without reading the source.
func (t *Renderer) PageCount(mimeType string, r io.Reader) (int, error) {
	if mimeType != "application/pdf" {
		return 0, nil
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return 0, fmt.Errorf("thumbnailer: failed to read PDF: %w", err)
	}
	pages, err := t.pdf.PageCount(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return 0, fmt.Errorf("thumbnailer: failed to count PDF pages: %w", err)
	}
	return pages, nil
}

func (t *Renderer) decode(mimeType string, r io.Reader) (image.Image, error) {
	switch {
	case rasterMimeTypes[mimeType]:
		img, _, err := t.webpEnc.Decode(r)
		if err != nil {
			return nil, fmt.Errorf("thumbnailer: failed to decode image: %w", err)
		}
		return img, nil

	case mimeType == "application/pdf":
		// pdfcpu needs a ReadSeeker, so buffer the document.
		data, err := io.ReadAll(r)
		if err != nil {
			return nil, fmt.Errorf("thumbnailer: failed to read PDF: %w", err)
		}
		img, err := t.pdf.ExtractCover(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("thumbnailer: failed to extract PDF cover: %w", err)
		}
		return img, nil

	default:
		return nil, ErrUnsupportedMimeType
	}
}
