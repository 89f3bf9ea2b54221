package freesurface

import (
	"strconv"

	"mad-lbm/internal/scenario"
	"mad-lbm/pkg/lbm"
)

// DefaultScenario is the layout used when none is configured.
const DefaultScenario = "flowing-water"

// Params holds the tunable physics and pacing of the free-surface sim.
type Params struct {
	Viscosity float64
	Gravity   float64
	Beta      float64
	Inflow    float64

	MaxUPS int
}

// Config controls the free-surface simulation dimensions and layout.
type Config struct {
	Width  int
	Height int

	Seed     int64
	Scenario string

	Params Params
}

// DefaultConfig returns the standard configuration.
func DefaultConfig() Config {
	p := lbm.DefaultParams()
	return Config{
		Width:    200,
		Height:   80,
		Seed:     1,
		Scenario: DefaultScenario,
		Params: Params{
			Viscosity: p.Viscosity,
			Gravity:   p.Gravity,
			Beta:      p.Beta,
			Inflow:    scenario.DefaultOptions().Inflow,
			MaxUPS:    1000,
		},
	}
}

// FromMap populates the config from a string map (flag-style key/value pairs).
// Unparsable values and unknown scenarios keep their defaults.
func FromMap(cfg map[string]string) Config {
	c := DefaultConfig()
	if cfg == nil {
		return c
	}
	if v, ok := cfg["w"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed >= 3 {
			c.Width = parsed
		}
	}
	if v, ok := cfg["h"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed >= 3 {
			c.Height = parsed
		}
	}
	if v, ok := cfg["seed"]; ok {
		if parsed, err := strconv.ParseInt(v, 10, 64); err == nil {
			c.Seed = parsed
		}
	}
	if v, ok := cfg["scenario"]; ok {
		if _, known := scenario.Lookup(v); known {
			c.Scenario = v
		}
	}
	if v, ok := cfg["viscosity"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil && parsed > 0 {
			c.Params.Viscosity = parsed
		}
	}
	if v, ok := cfg["gravity"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil && parsed >= 0 {
			c.Params.Gravity = parsed
		}
	}
	if v, ok := cfg["beta"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil && parsed >= 0 {
			c.Params.Beta = parsed
		}
	}
	if v, ok := cfg["inflow"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil {
			c.Params.Inflow = parsed
		}
	}
	if v, ok := cfg["max_ups"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed >= 0 {
			c.Params.MaxUPS = parsed
		}
	}
	return c
}

func (p Params) solver() lbm.Params {
	return lbm.Params{Viscosity: p.Viscosity, Gravity: p.Gravity, Beta: p.Beta}
}
