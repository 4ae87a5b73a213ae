// Package renderer provides raylib backends for the field.
package renderer

import (
	"fmt"

	"github.com/pthm-cable/gradient/config"
	"github.com/pthm-cable/gradient/scheduler"
	"github.com/pthm-cable/gradient/viewport"
)

// Backend is a scheduler backend that owns window resources.
type Backend interface {
	scheduler.Backend
	Resize(w, h int32)
	Unload()
}

// New creates the backend selected by cfg.Backend.Kind.
func New(cfg *config.Config, vp *viewport.Viewport) (Backend, error) {
	w, h := int32(vp.W), int32(vp.H)
	switch cfg.Backend.Kind {
	case config.BackendDense:
		return NewDenseBackend(w, h, float32(cfg.Backend.ResolutionScale), cfg.Backend.Workers, vp.FlipY), nil
	case config.BackendShader:
		return NewShaderBackend(w, h, vp.FlipY), nil
	case config.BackendSparse:
		return NewSparseBackend(vp), nil
	}
	return nil, fmt.Errorf("unknown backend %q", cfg.Backend.Kind)
}

// Kinds lists the backend kinds in cycling order.
var Kinds = []string{config.BackendDense, config.BackendShader, config.BackendSparse}

// NextKind returns the kind after k, wrapping around.
func NextKind(k string) string {
	for i, kind := range Kinds {
		if kind == k {
			return Kinds[(i+1)%len(Kinds)]
		}
	}
	return Kinds[0]
}
