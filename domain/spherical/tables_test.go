package spherical

import "testing"

func TestSplitPreservesPackingOrder(t *testing.T) {
	table := CoefficientTable{
		MaxDegree: 2,
		Rows: []Coefficient{
			{Degree: 1, Order: 0, C: 1, S: -1},
			{Degree: 1, Order: 1, C: 2, S: -2},
			{Degree: 2, Order: 0, C: 3, S: -3},
			{Degree: 2, Order: 1, C: 4, S: -4},
			{Degree: 2, Order: 2, C: 5, S: -5},
		},
	}

	c, s := table.Split()
	if len(c) != 5 || len(s) != 5 {
		t.Fatalf("split lengths = %d, %d, want 5, 5", len(c), len(s))
	}
	for i := range c {
		if c[i] != float64(i+1) || s[i] != -float64(i+1) {
			t.Errorf("entry %d = (%g, %g), want (%d, %d)", i, c[i], s[i], i+1, -(i + 1))
		}
	}
}

func TestBoundLabels(t *testing.T) {
	cases := []struct {
		level    float64
		min, max string
	}{
		{0.80, "min80", "max80"},
		{0.95, "min95", "max95"},
		{0.99, "min99", "max99"},
	}
	for _, tc := range cases {
		minLabel, maxLabel := BoundLabels(tc.level)
		if minLabel != tc.min || maxLabel != tc.max {
			t.Errorf("BoundLabels(%g) = %q, %q, want %q, %q", tc.level, minLabel, maxLabel, tc.min, tc.max)
		}
	}
}
