package analysis

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat/distuv"

	"geospec/domain/core"
	"geospec/domain/spherical"
)

// DefaultConfidenceLevels is used when a caller passes no levels. Order is
// significant: it fixes the bound column order of the output.
var DefaultConfidenceLevels = []float64{0.80, 0.95, 0.99}

// Correlator computes, for two spherical harmonic coefficient sets, the
// correlation coefficient at each degree and a symmetric confidence envelope
// for the null hypothesis of zero true correlation.
type Correlator struct{}

// NewCorrelator creates a degree correlator.
func NewCorrelator() *Correlator {
	return &Correlator{}
}

// Correlate consumes four coefficient arrays in canonical packing order with
// the monopole already dropped: c1/s1 from dataset 1, c2/s2 from dataset 2.
// Array lengths are validated against maxDegree before any arithmetic runs;
// a degree whose sum of squares is zero in either dataset yields NaN for r
// rather than an error.
func (c *Correlator) Correlate(c1, s1, c2, s2 []float64, maxDegree int, levels []float64) (spherical.CorrelationTable, error) {
	if maxDegree < 0 {
		return spherical.CorrelationTable{}, core.NewInvalidDegreeError(maxDegree)
	}
	want := spherical.TrimmedCount(maxDegree)
	for _, in := range []struct {
		name string
		arr  []float64
	}{
		{"c1", c1}, {"s1", s1}, {"c2", c2}, {"s2", s2},
	} {
		if len(in.arr) != want {
			return spherical.CorrelationTable{}, core.NewShapeMismatchError(in.name, len(in.arr), want)
		}
	}

	if levels == nil {
		levels = DefaultConfidenceLevels
	}
	for _, level := range levels {
		if !(level > 0 && level < 1) || math.IsNaN(level) {
			return spherical.CorrelationTable{}, core.NewInvalidConfidenceError(level)
		}
	}

	table := spherical.CorrelationTable{
		MaxDegree: maxDegree,
		Levels:    append([]float64(nil), levels...),
		Rows:      make([]spherical.CorrelationRow, 0, maxDegree),
	}

	for l := 1; l <= maxDegree; l++ {
		off, n := spherical.DegreeBlock(l)
		bc1, bs1 := c1[off:off+n], s1[off:off+n]
		bc2, bs2 := c2[off:off+n], s2[off:off+n]

		num := floats.Dot(bc1, bc2) + floats.Dot(bs1, bs2)
		sos1 := floats.Dot(bc1, bc1) + floats.Dot(bs1, bs1)
		sos2 := floats.Dot(bc2, bc2) + floats.Dot(bs2, bs2)

		row := spherical.CorrelationRow{
			Degree: l,
			R:      num / math.Sqrt(sos1*sos2),
			Bounds: make([]spherical.ConfidenceBound, 0, len(levels)),
		}
		for _, level := range levels {
			upper := nullEnvelope(l, level)
			row.Bounds = append(row.Bounds, spherical.ConfidenceBound{
				Level: level,
				Lower: -upper,
				Upper: upper,
			})
		}
		table.Rows = append(table.Rows, row)
	}

	return table, nil
}

// nullEnvelope returns the upper confidence bound on r at degree l under the
// zero-correlation null. The effective sample size for degree l is taken as
// 2l, the discipline convention for independent coefficient pairs; it is
// preserved as-is, not re-derived.
func nullEnvelope(l int, level float64) float64 {
	alpha := 1 - level
	df := 2 * float64(l)
	t := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: df}.Quantile(1 - alpha/2)
	return t * math.Sqrt(1/(df+t*t))
}
