package analysis

import (
	"context"
	"math"
	"runtime"
	"sync"

	"golang.org/x/sync/semaphore"

	"geospec/domain/core"
	"geospec/domain/spherical"
	"geospec/internal/legendre"
)

// DefaultMaxDegree is the truncation degree used when a caller does not pick one.
const DefaultMaxDegree = 20

// chunkSize is the number of samples handed to one worker at a time.
const chunkSize = 256

// Expander estimates a truncated spherical harmonic expansion of a set of
// sample coordinates by unweighted point summation. This is deliberately not
// a quadrature- or least-squares inversion: accuracy depends on how uniformly
// the samples cover the sphere, and that property is part of the contract.
type Expander struct {
	workers int
}

// NewExpander creates a serial expander.
func NewExpander() *Expander {
	return &Expander{workers: 1}
}

// NewParallelExpander creates an expander that reduces samples across up to
// workers goroutines. workers <= 0 means one per CPU. Floating-point
// reassociation across workers can shift results by rounding noise, so
// comparisons against the serial path must be tolerance-based.
func NewParallelExpander(workers int) *Expander {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	return &Expander{workers: workers}
}

// Expand computes spherical harmonic coefficients and per-degree power for
// the given sample latitudes and longitudes (degrees), truncated at
// maxDegree. Coordinates are not range-checked; NaN or out-of-range values
// propagate into the trigonometric transforms, as the estimator contract
// requires. An empty sample set is not an error: it surfaces as NaN power.
func (e *Expander) Expand(ctx context.Context, lats, lons []float64, maxDegree int) (spherical.CoefficientTable, spherical.PowerTable, error) {
	if maxDegree < 0 {
		return spherical.CoefficientTable{}, spherical.PowerTable{}, core.NewInvalidDegreeError(maxDegree)
	}
	if len(lats) != len(lons) {
		return spherical.CoefficientTable{}, spherical.PowerTable{},
			core.NewShapeMismatchError("longitudes", len(lons), len(lats))
	}

	pairs := spherical.Indices(maxDegree)

	var clm, slm []float64
	var err error
	if e.workers > 1 && len(lats) > chunkSize {
		clm, slm, err = e.reduceParallel(ctx, lats, lons, maxDegree, pairs)
	} else {
		clm = make([]float64, len(pairs))
		slm = make([]float64, len(pairs))
		err = accumulate(ctx, lats, lons, maxDegree, pairs, clm, slm)
	}
	if err != nil {
		return spherical.CoefficientTable{}, spherical.PowerTable{}, err
	}

	coefs := spherical.CoefficientTable{
		MaxDegree: maxDegree,
		Rows:      make([]spherical.Coefficient, 0, spherical.TrimmedCount(maxDegree)),
	}
	for k := 1; k < len(pairs); k++ {
		coefs.Rows = append(coefs.Rows, spherical.Coefficient{
			Degree: pairs[k].Degree,
			Order:  pairs[k].Order,
			C:      clm[k],
			S:      slm[k],
		})
	}

	power := spherical.PowerTable{
		MaxDegree:   maxDegree,
		SampleCount: len(lats),
		Rows:        make([]spherical.PowerRow, 0, maxDegree),
	}
	n := float64(len(lats))
	for l := 1; l <= maxDegree; l++ {
		off := spherical.PackedIndex(l, 0)
		var sum float64
		for m := 0; m <= l; m++ {
			sum += clm[off+m]*clm[off+m] + slm[off+m]*slm[off+m]
		}
		// 4π/(N(2l+1)) is the classical degree-variance scale. N = 0 makes
		// the scale infinite and the sum zero, so power comes out NaN rather
		// than raising a fault.
		scale := 4 * math.Pi / (n * (2*float64(l) + 1))
		power.Rows = append(power.Rows, spherical.PowerRow{Degree: l, Power: scale * sum})
	}

	return coefs, power, nil
}

// accumulate folds samples [0, len(lats)) into the packed coefficient sums.
func accumulate(ctx context.Context, lats, lons []float64, maxDegree int, pairs []spherical.Index, clm, slm []float64) error {
	for i := range lats {
		if err := ctx.Err(); err != nil {
			return err
		}
		theta := (90 - lats[i]) * math.Pi / 180 // colatitude
		phi := lons[i] * math.Pi / 180

		plm, err := legendre.Packed(maxDegree, math.Cos(theta))
		if err != nil {
			return err
		}
		for k, pair := range pairs {
			mphi := float64(pair.Order) * phi
			clm[k] += plm[k] * math.Cos(mphi)
			slm[k] += plm[k] * math.Sin(mphi)
		}
	}
	return nil
}

// reduceParallel splits samples into chunks, folds each chunk in its own
// goroutine bounded by a weighted semaphore, and merges the partial sums.
// Addition order differs from the serial path, which is allowed: the
// reduction is associative up to floating-point rounding.
func (e *Expander) reduceParallel(ctx context.Context, lats, lons []float64, maxDegree int, pairs []spherical.Index) (clm, slm []float64, err error) {
	sem := semaphore.NewWeighted(int64(e.workers))

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		firstErr error
	)
	clm = make([]float64, len(pairs))
	slm = make([]float64, len(pairs))

	for start := 0; start < len(lats); start += chunkSize {
		end := start + chunkSize
		if end > len(lats) {
			end = len(lats)
		}

		if err := sem.Acquire(ctx, 1); err != nil {
			// Context cancelled; wait for in-flight chunks before reporting.
			wg.Wait()
			return nil, nil, err
		}

		wg.Add(1)
		go func(lo, hi int) {
			defer wg.Done()
			defer sem.Release(1)

			partC := make([]float64, len(pairs))
			partS := make([]float64, len(pairs))
			chunkErr := accumulate(ctx, lats[lo:hi], lons[lo:hi], maxDegree, pairs, partC, partS)

			mu.Lock()
			defer mu.Unlock()
			if chunkErr != nil {
				if firstErr == nil {
					firstErr = chunkErr
				}
				return
			}
			for k := range clm {
				clm[k] += partC[k]
				slm[k] += partS[k]
			}
		}(start, end)
	}

	wg.Wait()
	if firstErr != nil {
		return nil, nil, firstErr
	}
	return clm, slm, nil
}
