package analysis

import (
	"github.com/montanaflynn/stats"

	"geospec/domain/spherical"
	"geospec/internal/errors"
)

// PowerSummary describes the shape of a power spectrum at a glance.
type PowerSummary struct {
	MaxDegree      int     `json:"max_degree"`
	TotalPower     float64 `json:"total_power"`
	MeanPower      float64 `json:"mean_power"`
	MedianPower    float64 `json:"median_power"`
	StdDev         float64 `json:"std_dev"`
	PeakPower      float64 `json:"peak_power"`
	DominantDegree int     `json:"dominant_degree"`
}

// SummarizePower computes descriptive statistics over a power table. An
// empty table is rejected.
func SummarizePower(t spherical.PowerTable) (PowerSummary, error) {
	values := t.Values()

	total, err := stats.Sum(values)
	if err != nil {
		return PowerSummary{}, errors.Wrap(err, "summarize power spectrum")
	}
	mean, _ := stats.Mean(values)
	median, _ := stats.Median(values)
	stdDev, _ := stats.StandardDeviation(values)
	peak, _ := stats.Max(values)

	dominant := t.Rows[0].Degree
	best := t.Rows[0].Power
	for _, row := range t.Rows[1:] {
		if row.Power > best {
			dominant, best = row.Degree, row.Power
		}
	}

	return PowerSummary{
		MaxDegree:      t.MaxDegree,
		TotalPower:     total,
		MeanPower:      mean,
		MedianPower:    median,
		StdDev:         stdDev,
		PeakPower:      peak,
		DominantDegree: dominant,
	}, nil
}
