package main

import (
	"github.com/glowlab/synaptic/config"
)

// ParamSpec is one tunable knob: its bounds, its default, and a binding to
// the config field it drives.
type ParamSpec struct {
	Name    string
	Min     float64
	Max     float64
	Default float64
	bind    func(*config.Config) *float64
}

// ParamVector is the ordered set of tunable parameters. Vector positions
// follow Specs order everywhere.
type ParamVector struct {
	Specs []ParamSpec
}

// NewParamVector declares the tuned subset of the config: the flow and
// ambient motion ranges plus the trail cadence.
func NewParamVector() *ParamVector {
	return &ParamVector{Specs: []ParamSpec{
		{Name: "flow_speed_min", Min: 0.02, Max: 0.15, Default: 0.08,
			bind: func(c *config.Config) *float64 { return &c.Flow.SpeedMin }},
		{Name: "flow_speed_max", Min: 0.10, Max: 0.50, Default: 0.25,
			bind: func(c *config.Config) *float64 { return &c.Flow.SpeedMax }},
		{Name: "flow_osc_amplitude", Min: 0, Max: 0.40, Default: 0.12,
			bind: func(c *config.Config) *float64 { return &c.Flow.OscAmplitude }},
		{Name: "flow_reroll_chance", Min: 0, Max: 1, Default: 0.3,
			bind: func(c *config.Config) *float64 { return &c.Flow.RerollChance }},
		{Name: "flow_fade_portion", Min: 0.02, Max: 0.30, Default: 0.1,
			bind: func(c *config.Config) *float64 { return &c.Flow.FadePortion }},
		{Name: "ambient_speed_min", Min: 0.01, Max: 0.08, Default: 0.03,
			bind: func(c *config.Config) *float64 { return &c.Ambient.SpeedMin }},
		{Name: "ambient_speed_max", Min: 0.05, Max: 0.20, Default: 0.1,
			bind: func(c *config.Config) *float64 { return &c.Ambient.SpeedMax }},
		{Name: "trail_activate_chance", Min: 0.001, Max: 0.05, Default: 0.015,
			bind: func(c *config.Config) *float64 { return &c.Trail.ActivateChance }},
		{Name: "trail_speed_min", Min: 0.10, Max: 0.40, Default: 0.2,
			bind: func(c *config.Config) *float64 { return &c.Trail.SpeedMin }},
		{Name: "trail_speed_max", Min: 0.25, Max: 0.80, Default: 0.45,
			bind: func(c *config.Config) *float64 { return &c.Trail.SpeedMax }},
	}}
}

// Dim returns the vector length.
func (pv *ParamVector) Dim() int { return len(pv.Specs) }

// DefaultVector returns each parameter default in vector order.
func (pv *ParamVector) DefaultVector() []float64 {
	out := make([]float64, len(pv.Specs))
	for i := range pv.Specs {
		out[i] = pv.Specs[i].Default
	}
	return out
}

// Normalize maps raw values onto [0, 1] using the parameter bounds.
func (pv *ParamVector) Normalize(raw []float64) []float64 {
	out := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		out[i] = (raw[i] - spec.Min) / (spec.Max - spec.Min)
	}
	return out
}

// Denormalize maps [0, 1] values back to raw parameter space.
func (pv *ParamVector) Denormalize(norm []float64) []float64 {
	out := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		out[i] = spec.Min + norm[i]*(spec.Max-spec.Min)
	}
	return out
}

// Clamp pins every value inside its parameter bounds. CMA-ES proposes
// points outside the box, so this runs before any value reaches a config.
func (pv *ParamVector) Clamp(raw []float64) []float64 {
	out := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		v := raw[i]
		if v < spec.Min {
			v = spec.Min
		}
		if v > spec.Max {
			v = spec.Max
		}
		out[i] = v
	}
	return out
}

// ApplyToConfig clamps values and writes them to their bound fields, then
// re-orders the speed ranges: the optimizer explores corners where a max
// falls below its min.
func (pv *ParamVector) ApplyToConfig(cfg *config.Config, values []float64) {
	clamped := pv.Clamp(values)
	for i, spec := range pv.Specs {
		*spec.bind(cfg) = clamped[i]
	}
	orderRange(&cfg.Flow.SpeedMin, &cfg.Flow.SpeedMax)
	orderRange(&cfg.Ambient.SpeedMin, &cfg.Ambient.SpeedMax)
	orderRange(&cfg.Trail.SpeedMin, &cfg.Trail.SpeedMax)
}

// ExtractFromConfig reads the bound fields in vector order.
func (pv *ParamVector) ExtractFromConfig(cfg *config.Config) []float64 {
	out := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		out[i] = *spec.bind(cfg)
	}
	return out
}

func orderRange(min, max *float64) {
	if *max < *min {
		*max = *min
	}
}
