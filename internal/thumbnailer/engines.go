package thumbnailer

import (
	"errors"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"io"

	"github.com/chai2010/webp"
	"github.com/ledongthuc/pdf"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	_ "golang.org/x/image/webp"
)

// ChaiWebPEncoder encodes thumbnails as lossy webp and decodes any
// registered raster format.
type ChaiWebPEncoder struct{}

var _ WebPEncoder = (*ChaiWebPEncoder)(nil)

func NewWebPEncoder() *ChaiWebPEncoder { return &ChaiWebPEncoder{} }

func (e *ChaiWebPEncoder) Encode(img image.Image, quality float32, w io.Writer) error {
	return webp.Encode(w, img, &webp.Options{Quality: quality})
}

func (e *ChaiWebPEncoder) Decode(r io.Reader) (image.Image, string, error) {
	return image.Decode(r)
}

// PdfcpuCoverExtractor pulls the first embedded image out of a PDF to use
// as its preview. PDFs without any embedded image on page one cannot be
// rasterised by this engine.
type PdfcpuCoverExtractor struct{}

var _ PDFCoverExtractor = (*PdfcpuCoverExtractor)(nil)

func NewPDFCoverExtractor() *PdfcpuCoverExtractor { return &PdfcpuCoverExtractor{} }

var ErrNoCoverImage = errors.New("thumbnailer: no extractable image on first page")

func (e *PdfcpuCoverExtractor) ExtractCover(rs io.ReadSeeker) (image.Image, error) {
	pages, err := api.ExtractImagesRaw(rs, []string{"1"}, nil)
	if err != nil {
		return nil, err
	}
	for _, imgs := range pages {
		for _, raw := range imgs {
			img, _, err := image.Decode(raw)
			if err != nil {
				continue
			}
			return img, nil
		}
	}
	return nil, ErrNoCoverImage
}

func (e *PdfcpuCoverExtractor) PageCount(ra io.ReaderAt, size int64) (int, error) {
	reader, err := pdf.NewReader(ra, size)
	if err != nil {
		return 0, err
	}
	return reader.NumPage(), nil
}
