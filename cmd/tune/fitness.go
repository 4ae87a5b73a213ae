package main

import (
	"math"

	"github.com/pthm-cable/gradient/field"
	"github.com/pthm-cable/gradient/telemetry"
)

// minEdgeGap is the narrowest smoothstep ramp that is not penalized; a
// collapsed ramp turns the blend into hard-edged posterization.
const minEdgeGap = 0.08

// FitnessEvaluator scores band edges by how evenly the stops share the frame
// over a set of sample times.
type FitnessEvaluator struct {
	params   *ParamVector
	base     field.Params
	times    []float64
	grid     int
	contrast float64 // weight of spatial weight variation in the score

	lastBalance   float64
	lastSpread    float64
	lastVariation float64
}

// NewFitnessEvaluator creates an evaluator sampling the field at times on a
// grid×grid probe.
func NewFitnessEvaluator(params *ParamVector, base field.Params, times []float64, grid int, contrast float64) *FitnessEvaluator {
	return &FitnessEvaluator{
		params:   params,
		base:     base,
		times:    times,
		grid:     grid,
		contrast: contrast,
	}
}

// Evaluate returns the fitness (lower is better) of raw band edges.
func (fe *FitnessEvaluator) Evaluate(raw []float64) float64 {
	p := fe.base.Clone()
	fe.params.ApplyToParams(&p, raw)

	ps := field.NewPointerState()
	var balance, spread, variation float64
	for _, t := range fe.times {
		cov := telemetry.MeasureCoverage(t, ps, &p, fe.grid)
		balance += cov.Balance
		spread += cov.Spread()
		variation += meanStdDev(cov)
	}
	n := float64(len(fe.times))
	if n > 0 {
		balance /= n
		spread /= n
		variation /= n
	}
	fe.lastBalance = balance
	fe.lastSpread = spread
	fe.lastVariation = variation

	return -(balance + fe.contrast*variation) + spread + edgePenalty(fe.params.Clamp(raw))
}

// meanStdDev is the average spatial variation of the stop weights. A flat
// wash, where every stop is blended everywhere, scores zero.
func meanStdDev(c telemetry.Coverage) float64 {
	if len(c.Stops) == 0 {
		return 0
	}
	var sum float64
	for _, s := range c.Stops {
		sum += s.StdDev
	}
	return sum / float64(len(c.Stops))
}

// edgePenalty grows quadratically as any band's hi approaches or passes lo.
func edgePenalty(v []float64) float64 {
	var penalty float64
	for i := 0; i+1 < len(v); i += 2 {
		gap := v[i+1] - v[i]
		if gap < minEdgeGap {
			penalty += 10 * math.Pow(minEdgeGap-gap, 2) / (minEdgeGap * minEdgeGap)
		}
	}
	return penalty
}

// LastBalance returns the mean coverage balance of the last evaluation.
func (fe *FitnessEvaluator) LastBalance() float64 {
	return fe.lastBalance
}

// LastSpread returns the mean imbalance of stop weights of the last evaluation.
func (fe *FitnessEvaluator) LastSpread() float64 {
	return fe.lastSpread
}

// LastVariation returns the mean spatial weight variation of the last evaluation.
func (fe *FitnessEvaluator) LastVariation() float64 {
	return fe.lastVariation
}
