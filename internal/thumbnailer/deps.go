package thumbnailer

import (
	"image"
	"io"
)

type WebPEncoder interface {
	Encode(img image.Image, quality float32, w io.Writer) error
	Decode(r io.Reader) (image.Image, string, error)
}

type PDFCoverExtractor interface {
	// ExtractCover returns a raster image representing the first page.
	ExtractCover(rs io.ReadSeeker) (image.Image, error)
	PageCount(ra io.ReaderAt, size int64) (int, error)
}
