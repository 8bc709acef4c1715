package spherical

import "fmt"

// Coefficient is one (l,m) row of an expansion: the cosine coefficient C(l,m)
// and sine coefficient S(l,m).
type Coefficient struct {
	Degree int     `json:"deg"`
	Order  int     `json:"ord"`
	C      float64 `json:"clm"`
	S      float64 `json:"slm"`
}

// CoefficientTable holds an expansion's coefficients in canonical packing
// order with the monopole row excluded.
type CoefficientTable struct {
	MaxDegree int           `json:"max_degree"`
	Rows      []Coefficient `json:"rows"`
}

// Split returns the packed C and S arrays in canonical order, the form the
// correlator consumes.
func (t CoefficientTable) Split() (c, s []float64) {
	c = make([]float64, len(t.Rows))
	s = make([]float64, len(t.Rows))
	for i, row := range t.Rows {
		c[i] = row.C
		s[i] = row.S
	}
	return c, s
}

// PowerRow is the degree-variance power at one degree.
type PowerRow struct {
	Degree int     `json:"degree"`
	Power  float64 `json:"power"`
}

// PowerTable holds per-degree power for l = 1..MaxDegree.
type PowerTable struct {
	MaxDegree   int        `json:"max_degree"`
	SampleCount int        `json:"sample_count"`
	Rows        []PowerRow `json:"rows"`
}

// Values returns the power column as a plain slice.
func (t PowerTable) Values() []float64 {
	v := make([]float64, len(t.Rows))
	for i, row := range t.Rows {
		v[i] = row.Power
	}
	return v
}

// ConfidenceBound is the symmetric zero-correlation envelope at one degree
// for one confidence level: [Lower, Upper] with Lower = -Upper.
type ConfidenceBound struct {
	Level float64 `json:"level"`
	Lower float64 `json:"lower"`
	Upper float64 `json:"upper"`
}

// CorrelationRow is the degree-binned correlation coefficient plus one bound
// per requested confidence level, in request order.
type CorrelationRow struct {
	Degree int               `json:"deg"`
	R      float64           `json:"r"`
	Bounds []ConfidenceBound `json:"bounds"`
}

// CorrelationTable is the full correlation report for degrees 1..MaxDegree.
// Levels preserves the caller's confidence-level order, which fixes the
// column order of every row and of any export.
type CorrelationTable struct {
	MaxDegree int              `json:"max_degree"`
	Levels    []float64        `json:"levels"`
	Rows      []CorrelationRow `json:"rows"`
}

// BoundLabels returns the column labels for a confidence level, e.g.
// ("min95", "max95") for 0.95.
func BoundLabels(level float64) (minLabel, maxLabel string) {
	pct := int(level * 100)
	return fmt.Sprintf("min%d", pct), fmt.Sprintf("max%d", pct)
}
