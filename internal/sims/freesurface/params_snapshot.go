package freesurface

import (
	"strconv"

	"mad-lbm/internal/core"
)

// Parameters reports the live configuration grouped for the HUD.
func (s *Sim) Parameters() core.ParameterSnapshot {
	params := s.cfg.Params
	groups := []core.ParameterGroup{
		{
			Name: "Lattice",
			Params: []core.Parameter{
				intParam("w", "Width", s.cfg.Width),
				intParam("h", "Height", s.cfg.Height),
				int64Param("seed", "Seed", s.cfg.Seed),
				stringParam("scenario", "Scenario", s.cfg.Scenario),
			},
		},
		{
			Name: "Physics",
			Params: []core.Parameter{
				floatParam("viscosity", "Viscosity", params.Viscosity),
				floatParam("gravity", "Gravity", params.Gravity),
				floatParam("beta", "Fill hysteresis", params.Beta),
				floatParam("inflow", "Inflow speed", params.Inflow),
			},
		},
		{
			Name: "Runner",
			Params: []core.Parameter{
				intParam("max_ups", "Max updates/s", params.MaxUPS),
			},
		},
	}
	return core.ParameterSnapshot{Groups: groups}
}

// ParameterControls lists the values the HUD may adjust while running.
func (s *Sim) ParameterControls() []core.ParameterControl {
	return []core.ParameterControl{
		{Key: "viscosity", Label: "Viscosity", Type: core.ParamTypeFloat, Step: 0.005, Min: 0.005, Max: 0.2, HasMin: true, HasMax: true},
		{Key: "gravity", Label: "Gravity", Type: core.ParamTypeFloat, Step: 0.0005, Min: 0, Max: 0.01, HasMin: true, HasMax: true},
		{Key: "inflow", Label: "Inflow", Type: core.ParamTypeFloat, Step: 0.01, Min: -0.2, Max: 0.2, HasMin: true, HasMax: true},
		{Key: "max_ups", Label: "Max UPS", Type: core.ParamTypeInt, Step: 10, Min: 0, Max: 5000, HasMin: true, HasMax: true},
	}
}

func (s *Sim) control(key string) (core.ParameterControl, bool) {
	for _, c := range s.ParameterControls() {
		if c.Key == key {
			return c, true
		}
	}
	return core.ParameterControl{}, false
}

// SetFloatParameter updates a physics value. Values are clamped to the
// control bounds. It reports whether key names a float control.
func (s *Sim) SetFloatParameter(key string, value float64) bool {
	c, ok := s.control(key)
	if !ok || c.Type != core.ParamTypeFloat {
		return false
	}
	value = c.Clamp(value)
	switch key {
	case "viscosity":
		s.cfg.Params.Viscosity = value
	case "gravity":
		s.cfg.Params.Gravity = value
	case "inflow":
		s.cfg.Params.Inflow = value
	default:
		return false
	}
	return true
}

// SetIntParameter updates an integer control.
func (s *Sim) SetIntParameter(key string, value int) bool {
	c, ok := s.control(key)
	if !ok || c.Type != core.ParamTypeInt {
		return false
	}
	value = int(c.Clamp(float64(value)))
	switch key {
	case "max_ups":
		s.cfg.Params.MaxUPS = value
	default:
		return false
	}
	return true
}

func intParam(key, label string, value int) core.Parameter {
	return core.Parameter{
		Key:   key,
		Label: label,
		Type:  core.ParamTypeInt,
		Value: strconv.Itoa(value),
	}
}

func int64Param(key, label string, value int64) core.Parameter {
	return core.Parameter{
		Key:   key,
		Label: label,
		Type:  core.ParamTypeInt,
		Value: strconv.FormatInt(value, 10),
	}
}

func floatParam(key, label string, value float64) core.Parameter {
	return core.Parameter{
		Key:   key,
		Label: label,
		Type:  core.ParamTypeFloat,
		Value: strconv.FormatFloat(value, 'f', -1, 64),
	}
}

func stringParam(key, label, value string) core.Parameter {
	return core.Parameter{
		Key:   key,
		Label: label,
		Type:  core.ParamTypeString,
		Value: value,
	}
}
