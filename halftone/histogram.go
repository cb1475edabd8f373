package halftone

import (
	"errors"
	"image"
	"math"
)

// ErrEmptyPattern is returned when a pattern has no pixels to sample.
var ErrEmptyPattern = errors.New("halftone: empty pattern")

// Histogram holds a brightness histogram of Buckets counts for each of
// LODRes levels of detail. Row i occupies Counts[Buckets*i : Buckets*(i+1)].
type Histogram struct {
	Counts [Buckets * LODRes]uint32

	// Samples is the number of samples accumulated into every row.
	Samples int
}

// Row returns the counts of the given LOD.
func (h *Histogram) Row(lod int) []uint32 {
	return h.Counts[Buckets*lod : Buckets*(lod+1)]
}

// Total returns the sum of counts of the given LOD.
func (h *Histogram) Total(lod int) uint64 {
	var n uint64
	for _, c := range h.Row(lod) {
		n += uint64(c)
	}
	return n
}

// BuildPatternHistogram resets h and fills it from src sampled at every LOD.
//
// Each LOD row blends a sample at base frequency with one at double frequency
// by f = lod/(LODRes-1), emulating a mipmap interpolation between two
// resolutions of the pattern. If src is nil, ProceduralDots is sampled on a
// ProceduralRes grid instead.
func BuildPatternHistogram(h *Histogram, src image.Image) error {
	*h = Histogram{}

	p := newPattern(src)
	nx, ny := p.size()
	if nx*ny == 0 {
		return ErrEmptyPattern
	}
	h.Samples = nx * ny

	for lod := 0; lod < LODRes; lod++ {
		f := float64(lod) / (LODRes - 1)
		row := h.Row(lod)
		for x := 0; x < nx; x++ {
			for y := 0; y < ny; y++ {
				var value float64
				if p == nil {
					fx, fy := float64(x)/ProceduralRes, float64(y)/ProceduralRes
					lo := ProceduralDots(fx, fy)
					hi := ProceduralDots(2*fx, 2*fy)
					value = 255 * lerp(lo, hi, f)
				} else {
					lo := p.at(x, y)
					hi := p.at((2*x)%nx, (2*y)%ny)
					value = lerp(lo, hi, f)
				}
				row[bucket(value)]++
			}
		}
	}
	return nil
}

// bucket rounds brightness in [0, 255] to a histogram index.
func bucket(value float64) int {
	return clamp(int(math.Round(math.Min(255, value))), 0, Buckets-1)
}
