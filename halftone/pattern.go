package halftone

import (
	"fmt"
	"image"
	"image/png"
	"math"
	"os"

	_ "image/jpeg"

	"golang.org/x/image/draw"
)

// pattern holds the red channel of a halftone texture; a nil *pattern is the
// procedural pattern.
type pattern struct {
	pix  []uint8
	w, h int
}

// newPattern reads the non-premultiplied red channel of src; returns nil if
// src is nil.
func newPattern(src image.Image) *pattern {
	if src == nil {
		return nil
	}
	b := src.Bounds()
	m, ok := src.(*image.NRGBA)
	if !ok {
		m = image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
		draw.Draw(m, m.Bounds(), src, b.Min, draw.Src)
	}

	p := &pattern{pix: make([]uint8, b.Dx()*b.Dy()), w: b.Dx(), h: b.Dy()}
	mb := m.Bounds()
	for y := 0; y < p.h; y++ {
		for x := 0; x < p.w; x++ {
			p.pix[y*p.w+x] = m.Pix[m.PixOffset(mb.Min.X+x, mb.Min.Y+y)]
		}
	}
	return p
}

// size returns the sampling grid of the pattern.
func (p *pattern) size() (int, int) {
	if p == nil {
		return ProceduralRes, ProceduralRes
	}
	return p.w, p.h
}

// at returns brightness in [0, 255] at grid coordinates, wrapping out of range indices.
func (p *pattern) at(x, y int) float64 {
	return float64(p.pix[pmod(y, p.h)*p.w+pmod(x, p.w)])
}

// sample returns brightness in [0, 1] at tile coordinates u, v where one
// tile spans [0, 1); coordinates wrap.
func (p *pattern) sample(u, v float64) float64 {
	u, v = frac(u), frac(v)
	if p == nil {
		return ProceduralDots(u, v)
	}
	x := int(math.Floor(u * float64(p.w)))
	y := int(math.Floor(v * float64(p.h)))
	return p.at(x, y) / 255
}

// blend returns the pattern at tile coordinates u, v blended from base to
// double frequency by lod.
func (p *pattern) blend(u, v, lod float64) float64 {
	lo := p.sample(u, v)
	hi := p.sample(2*u, 2*v)
	return lerp(lo, hi, lod)
}

func pmod(x, n int) int { return (x%n + n) % n }

// LoadPattern decodes a pattern texture from a png or jpeg file.
func LoadPattern(name string) (image.Image, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	m, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode pattern %s: %w", name, err)
	}
	return m, nil
}

// SavePNG encodes m to the named file.
func SavePNG(name string, m image.Image) error {
	out, err := os.Create(name)
	if err != nil {
		return err
	}
	if err := png.Encode(out, m); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
