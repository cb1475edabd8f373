package halftone

import (
	"image"
	"image/color"
)

// NewCorrectionImage returns a blank correction texture CorrRes wide and rows tall.
func NewCorrectionImage(rows int) *image.Gray {
	return image.NewGray(image.Rect(0, 0, CorrRes, rows))
}

// Response returns the fraction of the pattern at lod that a threshold at
// tone leaves white. Counts are accumulated through a smooth step of width
// 2*band around each bucket's brightness rather than a hard cut, so the
// response is a softened cumulative distribution, non-decreasing in tone.
func Response(h *Histogram, lod int, tone float64) float64 {
	var r float64
	for i, c := range h.Row(lod) {
		if c == 0 {
			continue
		}
		r += float64(c) * SmoothStep(-band, band, tone-float64(i)/255)
	}
	return r / float64(h.Samples)
}

// ComputeInverseR fills dst with the inverse of the response of every LOD
// row of h, one LOD per image row.
//
// Tone is swept in CorrRes steps. Whenever the response crosses one or more
// column positions, those columns get the tone interpolated between the last
// crossing and the current one by where the column falls between the two
// responses. The first column of a crossing may sit below the last response,
// in which case its tone is extrapolated and clamped to black. Columns the
// response never reaches are left as they are, except the last column which
// is always set to white.
func ComputeInverseR(dst *image.Gray, h *Histogram) {
	rows := dst.Bounds().Dy()
	if rows > LODRes {
		rows = LODRes
	}
	y0, x0 := dst.Rect.Min.Y, dst.Rect.Min.X
	for lod := 0; lod < rows; lod++ {
		var oldR, oldTone float64
		for i := 0; i < CorrRes; i++ {
			tone := float64(i) / (CorrRes - 1)
			r := Response(h, lod, tone)
			c0, c1 := int(oldR*CorrRes), int(r*CorrRes)
			if c1 <= c0 {
				continue
			}
			for c := c0; c < c1; c++ {
				t := (float64(c)/CorrRes - oldR) / (r - oldR)
				v := clamp(255*lerp(oldTone, tone, t), 0, 255)
				dst.SetGray(x0+c, y0+lod, color.Gray{Y: uint8(v)})
			}
			oldR, oldTone = r, tone
		}
		dst.SetGray(x0+CorrRes-1, y0+lod, color.Gray{Y: 255})
	}
}

// ComputeForwardR fills the first row of dst with the response of the first
// LOD row of h.
//
// Column 0 is forced to black. A white write is also issued at column
// CorrRes, one past the texture; *image.Gray ignores writes out of bounds.
func ComputeForwardR(dst *image.Gray, h *Histogram) {
	y0, x0 := dst.Rect.Min.Y, dst.Rect.Min.X
	for i := 0; i < CorrRes; i++ {
		tone := float64(i) / (CorrRes - 1)
		r := Response(h, 0, tone)
		dst.SetGray(x0+i, y0, color.Gray{Y: uint8(255 * r)})
	}
	dst.SetGray(x0, y0, color.Gray{Y: 0})
	// TODO confirm whether this write should target CorrRes-1.
	dst.SetGray(x0+CorrRes, y0, color.Gray{Y: 255})
}
