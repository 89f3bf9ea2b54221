package ui

import (
	"fmt"
	"image"
	"math"
	"strconv"

	"mad-lbm/internal/core"
	"mad-lbm/pkg/lbm"
)

// statsRows is the number of HUD rows reserved for Stats.
const statsRows = 8

// Stats is the live readout shown above the controls.
type Stats struct {
	Scenario string
	Field    string
	Steps    uint64
	UPS      float64
	Mass     float64
	Drift    float64
	Phases   lbm.PhaseCounts
	Paused   bool
	Err      error
}

// Lines formats the readout, one entry per HUD row.
func (s Stats) Lines() []string {
	state := "running"
	if s.Paused {
		state = "paused"
	}
	lines := []string{
		fmt.Sprintf("%s [%s]", s.Scenario, state),
		fmt.Sprintf("view %s", s.Field),
		fmt.Sprintf("step %d  %.0f ups", s.Steps, s.UPS),
		fmt.Sprintf("mass %.3f", s.Mass),
		fmt.Sprintf("drift %+.2e", s.Drift),
		fmt.Sprintf("fluid %d  surf %d", s.Phases.Fluid, s.Phases.Interface),
		fmt.Sprintf("gas %d  src %d", s.Phases.Gas, s.Phases.Source),
	}
	if s.Err != nil {
		lines = append(lines, "UNSTABLE, press R")
	}
	return lines
}

type hudControlState struct {
	control core.ParameterControl
	value   string

	intValue   int
	floatValue float64
	hasValue   bool

	top       int
	minusRect image.Rectangle
	plusRect  image.Rectangle
}

func (s *hudControlState) refresh(snapshot core.ParameterSnapshot) {
	s.hasValue = false
	s.value = "--"
	param, ok := snapshot.Find(s.control.Key)
	if !ok {
		return
	}
	switch s.control.Type {
	case core.ParamTypeInt:
		parsed, err := strconv.Atoi(param.Value)
		if err != nil {
			return
		}
		s.intValue = parsed
		s.floatValue = float64(parsed)
		s.value = strconv.Itoa(parsed)
		s.hasValue = true
	case core.ParamTypeFloat:
		parsed, err := strconv.ParseFloat(param.Value, 64)
		if err != nil {
			return
		}
		s.floatValue = parsed
		s.value = formatFloat(s.control, parsed)
		s.hasValue = true
	}
}

// target returns the value one step in direction, clamped to the control
// bounds. ok is false when the step would not change anything.
func (s *hudControlState) target(direction int) (float64, bool) {
	if !s.hasValue || direction == 0 {
		return 0, false
	}
	switch s.control.Type {
	case core.ParamTypeInt:
		step := int(math.Round(s.control.Step))
		if step <= 0 {
			step = 1
		}
		next := int(math.Round(s.control.Clamp(float64(s.intValue + direction*step))))
		return float64(next), next != s.intValue
	case core.ParamTypeFloat:
		step := s.control.Step
		if step <= 0 {
			step = 0.05
		}
		next := s.control.Clamp(s.floatValue + float64(direction)*step)
		return next, math.Abs(next-s.floatValue) >= 1e-9
	default:
		return 0, false
	}
}

func formatFloat(ctrl core.ParameterControl, value float64) string {
	step := ctrl.Step
	if step <= 0 {
		step = 0.05
	}
	var precision int
	switch {
	case step < 0.001:
		precision = 4
	case step < 0.01:
		precision = 3
	case step < 0.1:
		precision = 2
	default:
		precision = 1
	}
	return strconv.FormatFloat(value, 'f', precision, 64)
}

func pointInRect(x, y int, rect image.Rectangle) bool {
	return x >= rect.Min.X && x < rect.Max.X && y >= rect.Min.Y && y < rect.Max.Y
}
