package telemetry

import (
	"math"
	"testing"

	"github.com/pthm-cable/gradient/field"
)

func TestMeasureCoverageSumsToOne(t *testing.T) {
	p := field.DefaultParams()
	c := MeasureCoverage(4.0, field.NewPointerState(), &p, 8)

	if len(c.Stops) != 3 {
		t.Fatalf("expected 3 stops, got %d", len(c.Stops))
	}

	var meanSum, domSum float64
	for _, s := range c.Stops {
		meanSum += s.Mean
		domSum += s.Dominant
		if s.StdDev < 0 {
			t.Errorf("negative stddev %f", s.StdDev)
		}
	}
	// Weights are normalized per probe, so their means sum to one too.
	if math.Abs(meanSum-1) > 1e-9 {
		t.Errorf("mean weights sum to %f, want 1", meanSum)
	}
	if math.Abs(domSum-1) > 1e-9 {
		t.Errorf("dominance fractions sum to %f, want 1", domSum)
	}
	if c.Balance < 0 || c.Balance > 1+1e-9 {
		t.Errorf("balance %f out of [0,1]", c.Balance)
	}
}

func TestMeasureCoverageSingleStop(t *testing.T) {
	p := field.DefaultParams()
	p.Palette = p.Palette[:1]
	c := MeasureCoverage(0, field.NewPointerState(), &p, 4)

	if c.Balance != 1 {
		t.Errorf("single stop balance = %f, want 1", c.Balance)
	}
	if math.Abs(c.Stops[0].Mean-1) > 1e-9 {
		t.Errorf("single stop mean = %f, want 1", c.Stops[0].Mean)
	}
	if c.Spread() != 0 {
		t.Errorf("single stop spread = %f, want 0", c.Spread())
	}
}

func TestMeasureCoverageEmpty(t *testing.T) {
	p := field.DefaultParams()
	p.Palette = nil
	if c := MeasureCoverage(0, field.NewPointerState(), &p, 4); len(c.Stops) != 0 {
		t.Errorf("expected no coverage for empty palette, got %+v", c)
	}
}
