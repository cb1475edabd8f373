package halftone

import (
	"errors"
	"fmt"
	"image"
	"math"

	"github.com/nfnt/resize"
	"golang.org/x/image/draw"
)

// DefaultPeriod is the pattern tile size in pixels used when Screen.Period is unset.
const DefaultPeriod = 16

// Screen renders tone images through a halftone pattern, adjusting the
// threshold of every pixel by a correction texture.
type Screen struct {
	// Pattern is the halftone texture; nil uses ProceduralDots.
	Pattern image.Image

	// Correction is a texture from BuildCorrectionTex; nil thresholds tone directly.
	Correction *image.Gray

	// Period is the tile size in pixels at Scale 1.
	Period float64

	// Scale zooms the pattern. Every doubling of Scale doubles pattern
	// frequency so tiles keep their size on screen; the fraction of an
	// octave selects the LOD.
	Scale float64

	// Softness is the half width of the threshold transition; defaults to 0.1.
	Softness float64

	// Interp resamples tone images whose size differs from the output.
	Interp resize.InterpolationFunction
}

// tile returns the tile size in pixels and the LOD for s.Scale.
func (s *Screen) tile() (size, lod float64) {
	period, scale := s.Period, s.Scale
	if period <= 0 {
		period = DefaultPeriod
	}
	if scale <= 0 || equals(scale, 1) {
		return period, 0
	}
	l := math.Log2(scale)
	k := math.Floor(l)
	return period * scale / math.Exp2(k), l - k
}

// Lookup returns the corrected threshold in [0, 1] for tone and lod, both in
// [0, 1], interpolating bilinearly between texels.
func (s *Screen) Lookup(tone, lod float64) float64 {
	m := s.Correction
	if m == nil {
		return tone
	}
	b := m.Bounds()
	if b.Empty() {
		return tone
	}
	x := clamp(tone, 0, 1) * float64(b.Dx()-1)
	y := clamp(lod, 0, 1) * float64(b.Dy()-1)
	x0, y0 := int(x), int(y)
	x1, y1 := clamp(x0+1, 0, b.Dx()-1), clamp(y0+1, 0, b.Dy()-1)
	fx, fy := x-float64(x0), y-float64(y0)

	at := func(x, y int) float64 {
		return float64(m.GrayAt(b.Min.X+x, b.Min.Y+y).Y) / 255
	}
	return lerp(
		lerp(at(x0, y0), at(x1, y0), fx),
		lerp(at(x0, y1), at(x1, y1), fx),
		fy,
	)
}

// Render screens tone, resized to w x h if needed, and returns the halftoned image.
func (s *Screen) Render(tone image.Image, w, h int) (*image.Gray, error) {
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("halftone: invalid screen size %dx%d", w, h)
	}
	if tone == nil || tone.Bounds().Empty() {
		return nil, errors.New("halftone: empty tone image")
	}
	if b := tone.Bounds(); b.Dx() != w || b.Dy() != h {
		tone = resize.Resize(uint(w), uint(h), tone, s.Interp)
	}
	src := image.NewGray(image.Rect(0, 0, w, h))
	draw.Draw(src, src.Bounds(), tone, tone.Bounds().Min, draw.Src)

	p := newPattern(s.Pattern)
	if nx, ny := p.size(); nx*ny == 0 {
		return nil, ErrEmptyPattern
	}
	soft := s.Softness
	if soft <= 0 {
		soft = band
	}
	size, lod := s.tile()

	dst := image.NewGray(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			t := s.Lookup(float64(src.Pix[y*src.Stride+x])/255, lod)
			v := p.blend(float64(x)/size, float64(y)/size, lod)
			dst.Pix[y*dst.Stride+x] = uint8(255 * SmoothStep(-soft, soft, t-v))
		}
	}
	return dst, nil
}
