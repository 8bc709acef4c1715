package app

import (
	"context"
	"time"

	"geospec/adapters/csvio"
	"geospec/domain/run"
	"geospec/domain/spherical"
	"geospec/internal"
	"geospec/internal/analysis"
	"geospec/internal/errors"
)

// SpectralService orchestrates the two analysis cores: sample expansion and
// degree correlation, with optional delimited-text export of the resulting
// tables. Export failures never alter the in-memory results: a request that
// computed successfully always returns its tables, even when a file write
// fails afterwards.
type SpectralService struct {
	expander   *analysis.Expander
	correlator *analysis.Correlator
	logger     *internal.Logger
}

// NewSpectralService creates a service using the given expander.
func NewSpectralService(expander *analysis.Expander) *SpectralService {
	return &SpectralService{
		expander:   expander,
		correlator: analysis.NewCorrelator(),
		logger:     internal.DefaultLogger.WithPrefix("spectral"),
	}
}

// ExpandRequest defines the inputs for one harmonic expansion run.
type ExpandRequest struct {
	Lats      []float64
	Lons      []float64
	MaxDegree int

	// Optional export destinations; empty means no export.
	CoefficientsFile string
	PowerFile        string
}

// ExpandResult contains the complete output of an expansion run.
type ExpandResult struct {
	Manifest     *run.Manifest              `json:"manifest"`
	Coefficients spherical.CoefficientTable `json:"coefficients"`
	Power        spherical.PowerTable       `json:"power"`
}

// Expand runs the harmonic expander and optionally persists both tables.
func (s *SpectralService) Expand(ctx context.Context, req ExpandRequest) (*ExpandResult, error) {
	start := time.Now()

	coefs, power, err := s.expander.Expand(ctx, req.Lats, req.Lons, req.MaxDegree)
	if err != nil {
		return nil, err
	}

	manifest := run.NewManifest(run.KindExpand, req.MaxDegree)
	manifest.SampleCount = len(req.Lats)
	manifest.RuntimeMs = time.Since(start).Milliseconds()

	result := &ExpandResult{Manifest: manifest, Coefficients: coefs, Power: power}
	s.logger.Info("expansion %s: %d samples, max degree %d, %d coefficient rows (%dms)",
		manifest.RunID, manifest.SampleCount, req.MaxDegree, len(coefs.Rows), manifest.RuntimeMs)

	if req.CoefficientsFile != "" {
		if err := csvio.WriteCoefficientsFile(req.CoefficientsFile, coefs); err != nil {
			return result, errors.Wrapf(err, "export coefficients to %s", req.CoefficientsFile)
		}
	}
	if req.PowerFile != "" {
		if err := csvio.WritePowerFile(req.PowerFile, power); err != nil {
			return result, errors.Wrapf(err, "export power to %s", req.PowerFile)
		}
	}
	return result, nil
}

// CorrelateRequest defines the inputs for one degree-correlation run. The
// two coefficient tables must share the expander's packing convention.
type CorrelateRequest struct {
	Table1           spherical.CoefficientTable
	Table2           spherical.CoefficientTable
	MaxDegree        int
	ConfidenceLevels []float64

	CorrelationFile string
}

// CorrelateResult contains the complete output of a correlation run.
type CorrelateResult struct {
	Manifest    *run.Manifest              `json:"manifest"`
	Correlation spherical.CorrelationTable `json:"correlation"`
}

// Correlate runs the degree correlator and optionally persists the report.
func (s *SpectralService) Correlate(ctx context.Context, req CorrelateRequest) (*CorrelateResult, error) {
	start := time.Now()

	c1, s1 := req.Table1.Split()
	c2, s2 := req.Table2.Split()
	table, err := s.correlator.Correlate(c1, s1, c2, s2, req.MaxDegree, req.ConfidenceLevels)
	if err != nil {
		return nil, err
	}

	manifest := run.NewManifest(run.KindCorrelate, req.MaxDegree)
	manifest.ConfidenceLevels = table.Levels
	manifest.RuntimeMs = time.Since(start).Milliseconds()

	result := &CorrelateResult{Manifest: manifest, Correlation: table}
	s.logger.Info("correlation %s: %d degrees, %d confidence levels (%dms)",
		manifest.RunID, len(table.Rows), len(table.Levels), manifest.RuntimeMs)

	if req.CorrelationFile != "" {
		if err := csvio.WriteCorrelationFile(req.CorrelationFile, table); err != nil {
			return result, errors.Wrapf(err, "export correlation to %s", req.CorrelationFile)
		}
	}
	return result, nil
}
