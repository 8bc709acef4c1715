package run

import (
	"fmt"

	"geospec/domain/core"
)

// Kind distinguishes the two analysis runs the system performs.
type Kind string

const (
	KindExpand    Kind = "expand"
	KindCorrelate Kind = "correlate"
)

// Manifest is the audit record emitted for every service-level run. It is
// the replay reference for a result: every input dimension that shaped the
// output is captured here.
type Manifest struct {
	RunID            core.RunID     `json:"run_id"`
	Kind             Kind           `json:"kind"`
	MaxDegree        int            `json:"max_degree"`
	SampleCount      int            `json:"sample_count,omitempty"`
	ConfidenceLevels []float64      `json:"confidence_levels,omitempty"`
	CreatedAt        core.Timestamp `json:"created_at"`
	RuntimeMs        int64          `json:"runtime_ms"`
}

// NewManifest creates a manifest with a fresh run ID.
func NewManifest(kind Kind, maxDegree int) *Manifest {
	return &Manifest{
		RunID:     core.RunID(core.NewID()),
		Kind:      kind,
		MaxDegree: maxDegree,
		CreatedAt: core.Now(),
	}
}

// Validate checks if the manifest is complete
func (m *Manifest) Validate() error {
	if core.ID(m.RunID).IsEmpty() {
		return fmt.Errorf("run manifest: run_id cannot be empty")
	}
	if m.MaxDegree < 0 {
		return core.NewInvalidDegreeError(m.MaxDegree)
	}
	return nil
}
