package main

import (
	"fmt"

	"github.com/pthm-cable/gradient/config"
	"github.com/pthm-cable/gradient/field"
)

// ParamSpec defines a single optimizable parameter.
type ParamSpec struct {
	Name    string  // Human-readable name
	Path    string  // Config path for logging
	Min     float64 // Lower bound
	Max     float64 // Upper bound
	Default float64 // Default value
}

// ParamVector holds the smoothstep edges of every active band, lo then hi
// per stop.
type ParamVector struct {
	Specs []ParamSpec
}

// NewParamVector creates the band edge parameters for the first n bands of
// cfg, using the configured edges as defaults.
func NewParamVector(cfg *config.Config, n int) *ParamVector {
	pv := &ParamVector{}
	for i := 0; i < n && i < len(cfg.Bands); i++ {
		b := cfg.Bands[i]
		pv.Specs = append(pv.Specs,
			ParamSpec{Name: fmt.Sprintf("band%d_lo", i), Path: fmt.Sprintf("bands[%d].lo", i), Min: 0.05, Max: 0.7, Default: b.Lo},
			ParamSpec{Name: fmt.Sprintf("band%d_hi", i), Path: fmt.Sprintf("bands[%d].hi", i), Min: 0.25, Max: 0.95, Default: b.Hi},
		)
	}
	return pv
}

// Dim returns the number of parameters.
func (pv *ParamVector) Dim() int {
	return len(pv.Specs)
}

// DefaultVector returns the default parameter values as a slice.
func (pv *ParamVector) DefaultVector() []float64 {
	v := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		v[i] = spec.Default
	}
	return v
}

// Normalize converts raw parameter values to [0,1] range.
func (pv *ParamVector) Normalize(raw []float64) []float64 {
	normalized := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		normalized[i] = (raw[i] - spec.Min) / (spec.Max - spec.Min)
	}
	return normalized
}

// Denormalize converts [0,1] values back to raw parameter values.
func (pv *ParamVector) Denormalize(normalized []float64) []float64 {
	raw := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		raw[i] = spec.Min + normalized[i]*(spec.Max-spec.Min)
	}
	return raw
}

// Clamp ensures all values are within bounds.
func (pv *ParamVector) Clamp(v []float64) []float64 {
	clamped := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		val := v[i]
		if val < spec.Min {
			val = spec.Min
		}
		if val > spec.Max {
			val = spec.Max
		}
		clamped[i] = val
	}
	return clamped
}

// ApplyToParams writes band edges into p.
func (pv *ParamVector) ApplyToParams(p *field.Params, values []float64) {
	clamped := pv.Clamp(values)
	for i := 0; i+1 < len(clamped) && i/2 < len(p.Bands); i += 2 {
		p.Bands[i/2].Lo = clamped[i]
		p.Bands[i/2].Hi = clamped[i+1]
	}
}

// ApplyToConfig writes band edges into cfg.
func (pv *ParamVector) ApplyToConfig(cfg *config.Config, values []float64) {
	clamped := pv.Clamp(values)
	for i := 0; i+1 < len(clamped) && i/2 < len(cfg.Bands); i += 2 {
		cfg.Bands[i/2].Lo = clamped[i]
		cfg.Bands[i/2].Hi = clamped[i+1]
	}
}
