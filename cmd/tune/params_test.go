package main

import (
	"math"
	"testing"

	"github.com/pthm-cable/gradient/config"
)

func TestParamVectorRoundTrip(t *testing.T) {
	cfg, err := config.Default()
	if err != nil {
		t.Fatal(err)
	}
	pv := NewParamVector(cfg, 3)
	if pv.Dim() != 6 {
		t.Fatalf("Dim = %d, want 6", pv.Dim())
	}

	def := pv.DefaultVector()
	back := pv.Denormalize(pv.Normalize(def))
	for i := range def {
		if math.Abs(back[i]-def[i]) > 1e-12 {
			t.Errorf("param %s: %f != %f", pv.Specs[i].Name, back[i], def[i])
		}
	}
	if def[0] != cfg.Bands[0].Lo || def[1] != cfg.Bands[0].Hi {
		t.Errorf("defaults should come from the config bands")
	}
}

func TestApplyToConfigClamps(t *testing.T) {
	cfg, err := config.Default()
	if err != nil {
		t.Fatal(err)
	}
	pv := NewParamVector(cfg, 2)
	pv.ApplyToConfig(cfg, []float64{-1, 2, 0.3, 0.6})

	if cfg.Bands[0].Lo != pv.Specs[0].Min || cfg.Bands[0].Hi != pv.Specs[1].Max {
		t.Errorf("band 0 not clamped: %+v", cfg.Bands[0])
	}
	if cfg.Bands[1].Lo != 0.3 || cfg.Bands[1].Hi != 0.6 {
		t.Errorf("band 1 = %+v", cfg.Bands[1])
	}
}

func TestEdgePenalty(t *testing.T) {
	if p := edgePenalty([]float64{0.3, 0.6}); p != 0 {
		t.Errorf("wide ramp penalized: %f", p)
	}
	narrow := edgePenalty([]float64{0.5, 0.52})
	inverted := edgePenalty([]float64{0.6, 0.4})
	if narrow <= 0 || inverted <= narrow {
		t.Errorf("penalty should grow as the ramp collapses: narrow=%f inverted=%f", narrow, inverted)
	}
}

func TestEvaluatorPrefersBalancedEdges(t *testing.T) {
	cfg, err := config.Default()
	if err != nil {
		t.Fatal(err)
	}
	base := cfg.FieldParams()
	pv := NewParamVector(cfg, base.Stops())
	fe := NewFitnessEvaluator(pv, base, sampleTimes(2, 10), 8, 1)

	good := fe.Evaluate(pv.DefaultVector())
	if fe.LastBalance() < 0 || fe.LastBalance() > 1 {
		t.Errorf("balance out of range: %f", fe.LastBalance())
	}

	// Collapse every ramp to a step: heavy penalty.
	bad := make([]float64, pv.Dim())
	for i := 0; i < len(bad); i += 2 {
		bad[i], bad[i+1] = 0.7, 0.25
	}
	if fe.Evaluate(bad) <= good {
		t.Errorf("inverted edges should score worse than defaults")
	}
}
