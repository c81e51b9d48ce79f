package thumbnailer

import (
	"fmt"
	"image"
	"io"
	"sort"

	"github.com/brandkit/asset-pipeline-go/internal/port"
)

// PaletteExtractor derives dominant colors by bucketing sampled pixels into
// a coarse 12-bit RGB space and keeping the most populated buckets.
type PaletteExtractor struct{}

// compile-time check: *PaletteExtractor must satisfy port.ColorExtractor
var _ port.ColorExtractor = (*PaletteExtractor)(nil)

func NewPaletteExtractor() *PaletteExtractor { return &PaletteExtractor{} }

// sampleGrid caps sampling at roughly sampleGrid² pixels per image.
const sampleGrid = 100

func (e *PaletteExtractor) DominantColors(r io.Reader, max int) ([]string, error) {
	if max <= 0 {
		return nil, nil
	}

	img, _, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("colors: failed to decode image: %w", err)
	}

	bounds := img.Bounds()
	stepX := bounds.Dx() / sampleGrid
	if stepX < 1 {
		stepX = 1
	}
	stepY := bounds.Dy() / sampleGrid
	if stepY < 1 {
		stepY = 1
	}

	counts := make(map[uint32]int)
	for y := bounds.Min.Y; y < bounds.Max.Y; y += stepY {
		for x := bounds.Min.X; x < bounds.Max.X; x += stepX {
			cr, cg, cb, ca := img.At(x, y).RGBA()
			if ca < 0x8000 {
				continue // ignore mostly-transparent pixels
			}
			key := (cr>>12)<<8 | (cg>>12)<<4 | cb>>12
			counts[key]++
		}
	}
	if len(counts) == 0 {
		return nil, nil
	}

	keys := make([]uint32, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	// count desc, then key asc, so repeated runs stay deterministic
	sort.Slice(keys, func(i, j int) bool {
		if counts[keys[i]] != counts[keys[j]] {
			return counts[keys[i]] > counts[keys[j]]
		}
		return keys[i] < keys[j]
	})

	if len(keys) > max {
		keys = keys[:max]
	}
	colors := make([]string, 0, len(keys))
	for _, k := range keys {
		// expand each 4-bit channel to the centre of its bucket
		cr := uint8((k>>8)&0xF)<<4 | 0x8
		cg := uint8((k>>4)&0xF)<<4 | 0x8
		cb := uint8(k&0xF)<<4 | 0x8
		colors = append(colors, fmt.Sprintf("#%02x%02x%02x", cr, cg, cb))
	}
	return colors, nil
}
