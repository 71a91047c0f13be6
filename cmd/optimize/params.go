// Package main provides CMA-ES optimization of species creation
// probabilities for long-lived ecosystems.
package main

import (
	"github.com/pthm-cable/habitat/config"
)

// Bounds on every creation probability.
const (
	probMin = 0.001
	probMax = 0.9
)

// ParamSpec defines a single optimizable parameter.
type ParamSpec struct {
	Name    string // Human-readable name
	Index   int    // Position in the species registry
	Min     float64
	Max     float64
	Default float64
}

// ParamVector holds the set of all optimizable parameters.
type ParamVector struct {
	Specs []ParamSpec
}

// NewParamVector creates one parameter per registry entry of cfg, seeded
// with its configured probability.
func NewParamVector(cfg *config.Config) *ParamVector {
	pv := &ParamVector{}
	for i, e := range cfg.Derived.Registry {
		pv.Specs = append(pv.Specs, ParamSpec{
			Name:    e.Species.String() + "_creation",
			Index:   i,
			Min:     probMin,
			Max:     probMax,
			Default: e.Probability,
		})
	}
	pv.clampDefaults()
	return pv
}

func (pv *ParamVector) clampDefaults() {
	d := pv.Clamp(pv.DefaultVector())
	for i := range pv.Specs {
		pv.Specs[i].Default = d[i]
	}
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
		clamped[i] = min(max(v[i], spec.Min), spec.Max)
	}
	return clamped
}

// ApplyToConfig writes clamped values into both the species list and the
// resolved registry of cfg.
func (pv *ParamVector) ApplyToConfig(cfg *config.Config, values []float64) {
	clamped := pv.Clamp(values)
	for i, spec := range pv.Specs {
		cfg.Species[spec.Index].CreationProbability = clamped[i]
		cfg.Derived.Registry[spec.Index].Probability = clamped[i]
	}
}

// ExtractFromConfig reads the current parameter values from cfg.
func (pv *ParamVector) ExtractFromConfig(cfg *config.Config) []float64 {
	v := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		v[i] = cfg.Derived.Registry[spec.Index].Probability
	}
	return v
}
