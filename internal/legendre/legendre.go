// Package legendre evaluates fully normalized (orthonormal) associated
// Legendre functions P̄lm(x) in the canonical packed layout.
//
// Normalization is "orthonormal over the sphere": the real harmonic
// P̄lm(cosθ)·cos(mφ) integrates to one against itself, which makes
// P̄00 = 1/sqrt(4π). The Condon–Shortley phase (−1)^m is included.
package legendre

import (
	"math"

	"geospec/domain/core"
	"geospec/domain/spherical"
)

// Packed evaluates P̄lm(x) for all (l,m) with 0 <= m <= l <= maxDegree and
// returns them in canonical packing order (length (L+1)(L+2)/2).
//
// The computation is the standard forward column recursion on normalized
// functions, which is stable to high degree. The orthonormal scale is seeded
// into the l=0 start value so every recursion step stays normalized; no
// factorial ratios are ever formed.
//
// x is cos(colatitude) and must lie in [-1, 1] for meaningful results;
// out-of-range or NaN inputs propagate silently, as the estimator contract
// requires.
func Packed(maxDegree int, x float64) ([]float64, error) {
	if maxDegree < 0 {
		return nil, core.NewInvalidDegreeError(maxDegree)
	}

	p := make([]float64, spherical.PairCount(maxDegree))
	u := math.Sqrt(1 - x*x) // sin(colatitude)

	p[0] = 1 / math.Sqrt(4*math.Pi)
	if maxDegree == 0 {
		return p, nil
	}

	// Sectoral seeds P̄mm. The m=1 step carries the extra sqrt(2) that the
	// real-harmonic normalization attaches to every m > 0 term.
	p[spherical.PackedIndex(1, 1)] = math.Sqrt(3) * u * p[0]
	for m := 2; m <= maxDegree; m++ {
		f := math.Sqrt((2*float64(m) + 1) / (2 * float64(m)))
		p[spherical.PackedIndex(m, m)] = f * u * p[spherical.PackedIndex(m-1, m-1)]
	}

	// First off-sectoral term of each column: P̄(m+1)m = sqrt(2m+3)·x·P̄mm.
	for m := 0; m < maxDegree; m++ {
		p[spherical.PackedIndex(m+1, m)] = math.Sqrt(2*float64(m)+3) * x * p[spherical.PackedIndex(m, m)]
	}

	// Three-term recursion up each column.
	for m := 0; m <= maxDegree-2; m++ {
		for l := m + 2; l <= maxDegree; l++ {
			fl := float64(l)
			fm := float64(m)
			a := math.Sqrt((2*fl - 1) * (2*fl + 1) / ((fl - fm) * (fl + fm)))
			b := math.Sqrt((2*fl + 1) * (fl + fm - 1) * (fl - fm - 1) /
				((fl - fm) * (fl + fm) * (2*fl - 3)))
			p[spherical.PackedIndex(l, m)] = a*x*p[spherical.PackedIndex(l-1, m)] -
				b*p[spherical.PackedIndex(l-2, m)]
		}
	}

	// Condon–Shortley phase.
	for l := 1; l <= maxDegree; l++ {
		for m := 1; m <= l; m += 2 {
			p[spherical.PackedIndex(l, m)] = -p[spherical.PackedIndex(l, m)]
		}
	}

	return p, nil
}
