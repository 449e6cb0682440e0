package schelling

import (
	"strconv"

	"schelling/internal/core"
)

// Parameters reports the tunables currently in effect.
func (s *Simulation) Parameters() core.ParameterSnapshot {
	params := s.cfg.Params
	groups := []core.ParameterGroup{
		{
			Name: "Grid",
			Params: []core.Parameter{
				intParam("size", "Grid size", s.cfg.Size),
				int64Param("seed", "Seed", s.cfg.Seed),
			},
		},
		{
			Name: "Population",
			Params: []core.Parameter{
				floatParam("empty_ratio", "Empty house ratio", params.EmptyRatio),
				floatParam("type_a_ratio", "Type A ratio", params.TypeARatio),
			},
		},
		{
			Name: "Behaviour",
			Params: []core.Parameter{
				floatParam("relocation_threshold", "Relocation threshold", params.RelocationThreshold),
			},
		},
	}
	return core.ParameterSnapshot{Groups: groups}
}

// ParameterControls lists the HUD-adjustable parameters. Size and ratios
// apply on the next reset; the threshold applies to the next step.
func (s *Simulation) ParameterControls() []core.ParameterControl {
	return []core.ParameterControl{
		{Key: "size", Label: "Grid size", Type: core.ParamTypeInt, Step: 10, Min: 10, HasMin: true, Max: 400, HasMax: true},
		{Key: "empty_ratio", Label: "Empty ratio", Type: core.ParamTypeFloat, Step: 0.01, Min: 0, HasMin: true, Max: 1, HasMax: true},
		{Key: "type_a_ratio", Label: "Type A ratio", Type: core.ParamTypeFloat, Step: 0.05, Min: 0, HasMin: true, Max: 1, HasMax: true},
		{Key: "relocation_threshold", Label: "Threshold", Type: core.ParamTypeFloat, Step: 0.05, Min: 0, HasMin: true, Max: 1, HasMax: true},
	}
}

// SetFloatParameter updates a ratio. Values outside [0,1] are rejected.
func (s *Simulation) SetFloatParameter(key string, value float64) bool {
	if checkRatio(key, value) != nil {
		return false
	}
	switch key {
	case "empty_ratio":
		s.cfg.Params.EmptyRatio = value
	case "type_a_ratio":
		s.cfg.Params.TypeARatio = value
	case "relocation_threshold":
		s.cfg.Params.RelocationThreshold = value
		// A new threshold may make converged agents unhappy again.
		s.state = Running
	default:
		return false
	}
	return true
}

// SetIntParameter updates the grid size used by the next reset.
func (s *Simulation) SetIntParameter(key string, value int) bool {
	if key != "size" || value <= 0 {
		return false
	}
	s.cfg.Size = value
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
