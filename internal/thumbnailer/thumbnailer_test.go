package thumbnailer

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"io"
	"testing"
)

// fakeEncoder stands in for the webp engine so tests stay deterministic.
type fakeEncoder struct {
	encodeErr error
	decodeErr error
	encoded   int
}

func (f *fakeEncoder) Encode(img image.Image, quality float32, w io.Writer) error {
	if f.encodeErr != nil {
		return f.encodeErr
	}
	f.encoded++
	_, err := w.Write([]byte("webp-data"))
	return err
}

func (f *fakeEncoder) Decode(r io.Reader) (image.Image, string, error) {
	if f.decodeErr != nil {
		return nil, "", f.decodeErr
	}
	img, err := png.Decode(r)
	return img, "png", err
}

type fakePDF struct {
	cover    image.Image
	err      error
	pages    int
	pagesErr error
}

func (f *fakePDF) ExtractCover(rs io.ReadSeeker) (image.Image, error) {
	return f.cover, f.err
}

func (f *fakePDF) PageCount(ra io.ReaderAt, size int64) (int, error) {
	return f.pages, f.pagesErr
}

func solidPNG(t *testing.T, w, h int, c color.Color) []byte {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, c)
		}
	}
	buf := &bytes.Buffer{}
	if err := png.Encode(buf, img); err != nil {
		t.Fatalf("png encode: %v", err)
	}
	return buf.Bytes()
}

func TestSupports(t *testing.T) {
	r := NewRenderer(&fakeEncoder{}, &fakePDF{})
	for mime, want := range map[string]bool{
		"image/png":       true,
		"image/jpeg":      true,
		"image/webp":      true,
		"application/pdf": true,
		"image/svg+xml":   false,
		"video/mp4":       false,
	} {
		if got := r.Supports(mime); got != want {
			t.Errorf("Supports(%s) = %t; want %t", mime, got, want)
		}
	}
}

func TestRender_ScalesDown(t *testing.T) {
	r := NewRenderer(&fakeEncoder{}, &fakePDF{})
	src := solidPNG(t, 800, 600, color.White)

	out, err := r.Render("image/png", bytes.NewReader(src), map[string]int{"medium": 400})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(out) != 1 {
		t.Fatalf("expected 1 preview, got %d", len(out))
	}
	if out[0].Width != 400 || out[0].Height != 300 {
		t.Errorf("dimensions = %dx%d; want 400x300", out[0].Width, out[0].Height)
	}
	if string(out[0].Data) != "webp-data" {
		t.Errorf("data = %q; want encoder output", out[0].Data)
	}
}

func TestRender_NeverUpscales(t *testing.T) {
	r := NewRenderer(&fakeEncoder{}, &fakePDF{})
	src := solidPNG(t, 200, 100, color.White)

	out, err := r.Render("image/png", bytes.NewReader(src), map[string]int{"large": 1280})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out[0].Width != 200 || out[0].Height != 100 {
		t.Errorf("dimensions = %dx%d; want native 200x100", out[0].Width, out[0].Height)
	}
}

func TestRender_MultipleSizes(t *testing.T) {
	enc := &fakeEncoder{}
	r := NewRenderer(enc, &fakePDF{})
	src := solidPNG(t, 800, 600, color.White)

	out, err := r.Render("image/png", bytes.NewReader(src), map[string]int{"thumb": 150, "medium": 400})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(out) != 2 || enc.encoded != 2 {
		t.Fatalf("expected 2 previews encoded, got %d/%d", len(out), enc.encoded)
	}
}

func TestRender_DecodeError(t *testing.T) {
	r := NewRenderer(&fakeEncoder{decodeErr: errors.New("bad bytes")}, &fakePDF{})

	if _, err := r.Render("image/png", bytes.NewReader([]byte("junk")), map[string]int{"medium": 400}); err == nil {
		t.Fatal("expected a decode error")
	}
}

func TestRender_UnsupportedMime(t *testing.T) {
	r := NewRenderer(&fakeEncoder{}, &fakePDF{})

	_, err := r.Render("video/mp4", bytes.NewReader(nil), map[string]int{"medium": 400})
	if !errors.Is(err, ErrUnsupportedMimeType) {
		t.Fatalf("expected ErrUnsupportedMimeType, got %v", err)
	}
}

func TestRender_PDFCover(t *testing.T) {
	cover := image.NewRGBA(image.Rect(0, 0, 600, 800))
	r := NewRenderer(&fakeEncoder{}, &fakePDF{cover: cover})

	out, err := r.Render("application/pdf", bytes.NewReader([]byte("%PDF-1.7")), map[string]int{"medium": 400})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out[0].Width != 400 || out[0].Height != 533 {
		t.Errorf("dimensions = %dx%d; want 400x533", out[0].Width, out[0].Height)
	}
}

func TestRender_PDFCoverError(t *testing.T) {
	r := NewRenderer(&fakeEncoder{}, &fakePDF{err: errors.New("no images")})

	if _, err := r.Render("application/pdf", bytes.NewReader([]byte("%PDF-1.7")), map[string]int{"medium": 400}); err == nil {
		t.Fatal("expected a cover extraction error")
	}
}

func TestPageCount_PDF(t *testing.T) {
	r := NewRenderer(&fakeEncoder{}, &fakePDF{pages: 5})

	pages, err := r.PageCount("application/pdf", bytes.NewReader([]byte("%PDF-1.7")))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if pages != 5 {
		t.Errorf("pages = %d; want 5", pages)
	}
}

func TestPageCount_NonPagedFormat(t *testing.T) {
	// pagesErr would propagate if the raster path ever reached the engine
	r := NewRenderer(&fakeEncoder{}, &fakePDF{pagesErr: errors.New("should not be called")})

	pages, err := r.PageCount("image/png", bytes.NewReader([]byte("png-bytes")))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if pages != 0 {
		t.Errorf("pages = %d; want 0 for a raster image", pages)
	}
}

func TestPageCount_EngineError(t *testing.T) {
	r := NewRenderer(&fakeEncoder{}, &fakePDF{pagesErr: errors.New("corrupt xref")})

	if _, err := r.PageCount("application/pdf", bytes.NewReader([]byte("%PDF-1.7"))); err == nil {
		t.Fatal("expected the page count error to propagate")
	}
}
