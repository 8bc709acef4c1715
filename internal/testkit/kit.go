// Package testkit provides deterministic fixtures shared by the package
// tests: reference sphere samplings and seeded synthetic coefficient sets.
package testkit

import (
	"math"
	"math/rand"

	"geospec/domain/spherical"
)

// FibonacciSphere returns n points that cover the sphere nearly uniformly,
// as (latitudes, longitudes) in degrees. The lattice is deterministic, so
// tests built on it are reproducible without a seed.
func FibonacciSphere(n int) (lats, lons []float64) {
	lats = make([]float64, n)
	lons = make([]float64, n)
	golden := math.Pi * (3 - math.Sqrt(5))
	for i := 0; i < n; i++ {
		z := 1 - 2*(float64(i)+0.5)/float64(n)
		lats[i] = 90 - math.Acos(z)*180/math.Pi
		lon := math.Mod(golden*float64(i), 2*math.Pi) * 180 / math.Pi
		if lon > 180 {
			lon -= 360
		}
		lons[i] = lon
	}
	return lats, lons
}

// EquatorialCross returns the four cardinal points on the equator.
func EquatorialCross() (lats, lons []float64) {
	return []float64{0, 0, 0, 0}, []float64{0, 90, 180, 270}
}

// NorthPole returns a single sample at the pole, for which every degree's
// power works out to exactly one.
func NorthPole() (lats, lons []float64) {
	return []float64{90}, []float64{0}
}

// RandomCoefficients builds a coefficient table for degrees 1..maxDegree
// filled with seeded standard-normal draws.
func RandomCoefficients(maxDegree int, seed int64) spherical.CoefficientTable {
	rng := rand.New(rand.NewSource(seed))
	table := spherical.CoefficientTable{
		MaxDegree: maxDegree,
		Rows:      make([]spherical.Coefficient, 0, spherical.TrimmedCount(maxDegree)),
	}
	for _, idx := range spherical.Indices(maxDegree)[1:] {
		table.Rows = append(table.Rows, spherical.Coefficient{
			Degree: idx.Degree,
			Order:  idx.Order,
			C:      rng.NormFloat64(),
			S:      rng.NormFloat64(),
		})
	}
	return table
}

// Negate returns a copy of the table with every coefficient sign-flipped.
func Negate(t spherical.CoefficientTable) spherical.CoefficientTable {
	out := spherical.CoefficientTable{MaxDegree: t.MaxDegree, Rows: make([]spherical.Coefficient, len(t.Rows))}
	for i, row := range t.Rows {
		row.C, row.S = -row.C, -row.S
		out.Rows[i] = row
	}
	return out
}
