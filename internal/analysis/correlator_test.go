package analysis

import (
	"math"
	"testing"

	"geospec/domain/core"
	"geospec/internal/testkit"
)

func TestCorrelateSelfIsOne(t *testing.T) {
	table := testkit.RandomCoefficients(10, 42)
	c, s := table.Split()

	corr, err := NewCorrelator().Correlate(c, s, c, s, 10, nil)
	if err != nil {
		t.Fatalf("correlate: %v", err)
	}
	if len(corr.Rows) != 10 {
		t.Fatalf("expected 10 rows, got %d", len(corr.Rows))
	}
	for _, row := range corr.Rows {
		if math.Abs(row.R-1) > 1e-12 {
			t.Errorf("degree %d self-correlation = %.15f, want 1", row.Degree, row.R)
		}
	}
}

func TestCorrelateNegationIsMinusOne(t *testing.T) {
	table := testkit.RandomCoefficients(8, 7)
	neg := testkit.Negate(table)
	c1, s1 := table.Split()
	c2, s2 := neg.Split()

	corr, err := NewCorrelator().Correlate(c1, s1, c2, s2, 8, nil)
	if err != nil {
		t.Fatalf("correlate: %v", err)
	}
	for _, row := range corr.Rows {
		if math.Abs(row.R+1) > 1e-12 {
			t.Errorf("degree %d negated correlation = %.15f, want -1", row.Degree, row.R)
		}
	}
}

func TestCorrelateOutputShape(t *testing.T) {
	table1 := testkit.RandomCoefficients(3, 1)
	table2 := testkit.RandomCoefficients(3, 2)
	c1, s1 := table1.Split()
	c2, s2 := table2.Split()
	if len(c1) != 9 {
		t.Fatalf("trimmed packing for L=3 must be 9 entries, got %d", len(c1))
	}

	corr, err := NewCorrelator().Correlate(c1, s1, c2, s2, 3, []float64{0.95})
	if err != nil {
		t.Fatalf("correlate: %v", err)
	}
	if len(corr.Rows) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(corr.Rows))
	}
	for i, row := range corr.Rows {
		if row.Degree != i+1 {
			t.Errorf("row %d degree = %d, want %d", i, row.Degree, i+1)
		}
		if len(row.Bounds) != 1 {
			t.Fatalf("row %d has %d bounds, want 1", i, len(row.Bounds))
		}
		if row.R < -1-1e-12 || row.R > 1+1e-12 {
			t.Errorf("degree %d r = %g outside [-1, 1]", row.Degree, row.R)
		}
	}
}

func TestConfidenceBoundsSymmetricAndNarrowing(t *testing.T) {
	table1 := testkit.RandomCoefficients(15, 3)
	table2 := testkit.RandomCoefficients(15, 4)
	c1, s1 := table1.Split()
	c2, s2 := table2.Split()

	corr, err := NewCorrelator().Correlate(c1, s1, c2, s2, 15, []float64{0.80, 0.95, 0.99})
	if err != nil {
		t.Fatalf("correlate: %v", err)
	}

	for levelIdx := range corr.Levels {
		prev := math.Inf(1)
		for _, row := range corr.Rows {
			bound := row.Bounds[levelIdx]
			if bound.Lower != -bound.Upper {
				t.Errorf("degree %d level %g: bounds not symmetric (%g, %g)",
					row.Degree, bound.Level, bound.Lower, bound.Upper)
			}
			if bound.Upper <= 0 || bound.Upper >= 1 {
				t.Errorf("degree %d level %g: upper bound %g outside (0, 1)",
					row.Degree, bound.Level, bound.Upper)
			}
			if bound.Upper > prev {
				t.Errorf("degree %d level %g: bound %g widened from %g",
					row.Degree, bound.Level, bound.Upper, prev)
			}
			prev = bound.Upper
		}
	}

	// Wider level must give the wider envelope at every degree.
	for _, row := range corr.Rows {
		if !(row.Bounds[0].Upper < row.Bounds[1].Upper && row.Bounds[1].Upper < row.Bounds[2].Upper) {
			t.Errorf("degree %d: bounds not ordered across levels: %v", row.Degree, row.Bounds)
		}
	}
}

func TestConfidenceBoundDegreeOne(t *testing.T) {
	// At degree 1 the t quantile has two degrees of freedom:
	// t(0.975, ν=2) = 4.30265, so the bound is 4.30265/sqrt(2 + t²) ≈ 0.950.
	got := nullEnvelope(1, 0.95)
	if math.Abs(got-0.950) > 1e-3 {
		t.Errorf("degree-1 95%% bound = %.6f, want 0.950", got)
	}
}

func TestCorrelateZeroDegreeBlockIsNaN(t *testing.T) {
	table1 := testkit.RandomCoefficients(2, 5)
	table2 := testkit.RandomCoefficients(2, 6)
	c1, s1 := table1.Split()
	c2, s2 := table2.Split()

	// Zero out dataset 1's degree-1 block; r(1) becomes 0/0.
	c1[0], c1[1], s1[0], s1[1] = 0, 0, 0, 0

	corr, err := NewCorrelator().Correlate(c1, s1, c2, s2, 2, []float64{0.95})
	if err != nil {
		t.Fatalf("correlate: %v", err)
	}
	if !math.IsNaN(corr.Rows[0].R) {
		t.Errorf("degree 1 r = %v, want NaN for zero sum of squares", corr.Rows[0].R)
	}
	if math.IsNaN(corr.Rows[1].R) {
		t.Errorf("degree 2 r must stay finite, got NaN")
	}
}

func TestCorrelateValidation(t *testing.T) {
	table := testkit.RandomCoefficients(3, 9)
	c, s := table.Split()

	if _, err := NewCorrelator().Correlate(c[:5], s, c, s, 3, nil); !core.IsValidationError(err) {
		t.Errorf("short c1: got %v, want shape mismatch", err)
	}
	if _, err := NewCorrelator().Correlate(c, s, c, s, 4, nil); !core.IsValidationError(err) {
		t.Errorf("degree/length disagreement: got %v, want shape mismatch", err)
	}
	if _, err := NewCorrelator().Correlate(c, s, c, s, -2, nil); !core.IsValidationError(err) {
		t.Errorf("negative degree: got %v, want validation error", err)
	}
	for _, level := range []float64{0, 1, -0.5, 1.2, math.NaN()} {
		if _, err := NewCorrelator().Correlate(c, s, c, s, 3, []float64{level}); !core.IsValidationError(err) {
			t.Errorf("level %v: got %v, want invalid confidence error", level, err)
		}
	}
}

func TestCorrelateDefaultLevels(t *testing.T) {
	table := testkit.RandomCoefficients(4, 11)
	c, s := table.Split()

	corr, err := NewCorrelator().Correlate(c, s, c, s, 4, nil)
	if err != nil {
		t.Fatalf("correlate: %v", err)
	}
	want := []float64{0.80, 0.95, 0.99}
	if len(corr.Levels) != len(want) {
		t.Fatalf("default levels = %v, want %v", corr.Levels, want)
	}
	for i, level := range want {
		if corr.Levels[i] != level {
			t.Errorf("default level %d = %g, want %g", i, corr.Levels[i], level)
		}
	}
}
