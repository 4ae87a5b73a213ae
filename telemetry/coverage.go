package telemetry

import (
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/pthm-cable/gradient/field"
)

// StopCoverage summarizes how much of the frame one color stop owns.
type StopCoverage struct {
	Mean     float64 // mean normalized weight
	StdDev   float64 // spread of the weight across the probe grid
	Dominant float64 // fraction of probes where this stop has the largest weight
}

// Coverage is a sparse probe of the field at one instant.
type Coverage struct {
	Stops   []StopCoverage
	Balance float64 // normalized entropy of dominance, 1 = every stop equally present
}

// MeasureCoverage samples the field on a grid×grid lattice of cell centers
// and aggregates per-stop weight statistics.
func MeasureCoverage(t float64, ps field.PointerState, p *field.Params, grid int) Coverage {
	n := p.Stops()
	if n == 0 || grid < 1 {
		return Coverage{}
	}

	weights := make([][]float64, n)
	for i := range weights {
		weights[i] = make([]float64, 0, grid*grid)
	}
	dominant := make([]float64, n)

	inv := 1 / float64(grid)
	for y := 0; y < grid; y++ {
		for x := 0; x < grid; x++ {
			uv := field.V((float64(x)+0.5)*inv, (float64(y)+0.5)*inv)
			s := field.EvaluateDetail(uv, t, ps, p)
			best := 0
			for i := 0; i < n; i++ {
				weights[i] = append(weights[i], s.Weights[i])
				if s.Weights[i] > s.Weights[best] {
					best = i
				}
			}
			dominant[best]++
		}
	}

	total := float64(grid * grid)
	c := Coverage{Stops: make([]StopCoverage, n)}
	for i := 0; i < n; i++ {
		mean, std := stat.MeanStdDev(weights[i], nil)
		if math.IsNaN(std) {
			std = 0
		}
		dominant[i] /= total
		c.Stops[i] = StopCoverage{Mean: mean, StdDev: std, Dominant: dominant[i]}
	}

	if n > 1 {
		c.Balance = stat.Entropy(dominant) / math.Log(float64(n))
	} else {
		c.Balance = 1
	}
	return c
}

// MeanWeights returns the per-stop mean weights.
func (c Coverage) MeanWeights() []float64 {
	out := make([]float64, len(c.Stops))
	for i, s := range c.Stops {
		out[i] = s.Mean
	}
	return out
}

// Spread is the standard deviation of the per-stop mean weights;
// zero when every stop covers the frame equally.
func (c Coverage) Spread() float64 {
	if len(c.Stops) < 2 {
		return 0
	}
	return stat.PopStdDev(c.MeanWeights(), nil)
}
