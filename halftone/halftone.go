// Package halftone builds tone correction textures for halftone patterns.
//
// A halftone pattern is thresholded against a desired tone to decide ink
// coverage. Because the pattern's brightness distribution is not uniform, the
// coverage a threshold produces is a nonlinear function of tone, and that
// function changes as the pattern is blended between two frequencies to
// emulate mipmap level of detail. This package measures the pattern with one
// histogram per LOD and inverts the resulting response into a lookup texture
// indexed by tone and LOD.
package halftone

import (
	"math"

	"golang.org/x/exp/constraints"
)

const (
	// Buckets is the number of brightness buckets per histogram row.
	Buckets = 256

	// LODRes is the number of level of detail rows.
	LODRes = 16

	// CorrRes is the width of correction textures.
	CorrRes = 256

	// ProceduralRes is the side of the sampling grid used for the procedural pattern.
	ProceduralRes = 256
)

// dotAmplitude is the cosine amplitude of ProceduralDots.
const dotAmplitude = 0.4

// band is the half width of the smooth step used when accumulating responses.
const band = 0.1

// SmoothStep returns the cubic Hermite interpolation of x between edge0 and
// edge1; 0 at or below edge0 and 1 at or above edge1.
func SmoothStep(edge0, edge1, x float64) float64 {
	t := clamp((x-edge0)/(edge1-edge0), 0, 1)
	return t * t * (3 - 2*t)
}

// ProceduralDots is a synthetic dot pattern in [0.1, 0.9] with period 1 in x and y.
// It stands in for a pattern texture when none is given.
func ProceduralDots(x, y float64) float64 {
	if x > 1 {
		x -= 1
	}
	if y > 1 {
		y -= 1
	}
	return (0.5 + dotAmplitude*math.Cos(x*2*math.Pi) + 0.5 + dotAmplitude*math.Cos(y*2*math.Pi)) / 2
}

func clamp[T constraints.Ordered](x, lo, hi T) T {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}

// lerp interpolates from a to b by t.
func lerp[T constraints.Float](a, b, t T) T { return a + t*(b-a) }

// frac returns the fractional part of x in [0, 1).
func frac(x float64) float64 { return x - math.Floor(x) }

const epsilon = 0.0001

func equals(a, b float64) bool {
	return equaleps(a, b, epsilon)
}

func equaleps(a, b float64, eps float64) bool {
	return (a-b) < eps && (b-a) < eps
}
