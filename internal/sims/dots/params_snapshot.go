package dots

import (
	"strconv"

	"dotsim/internal/core"
	"dotsim/internal/mat"
	"dotsim/internal/world"
)

func (s *Session) Parameters() core.ParameterSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	t := s.cfg.Tuning
	groups := []core.ParameterGroup{
		{
			Name: "World",
			Params: []core.Parameter{
				intParam("w", "Width", s.cfg.Width),
				intParam("h", "Height", s.cfg.Height),
				int64Param("seed", "Seed", s.cfg.Seed),
				floatParam("ambient", "Ambient temperature", t.Ambient),
				floatParam("spawner_temp", "Spawner temperature", t.SpawnerTemperature),
			},
		},
		{
			Name: "Tools",
			Params: []core.Parameter{
				choiceParam("tool", "Tool", s.tool.String()),
				choiceParam("material", "Material", s.material.String()),
				intParam("radius", "Radius", t.Radius),
				floatParam("brush_temp", "Brush temperature", t.BrushTemperature),
				floatParam("heat_delta", "Heat delta", t.HeatDelta),
			},
		},
	}
	return core.ParameterSnapshot{Groups: groups}
}

func (s *Session) ParameterControls() []core.ParameterControl {
	tools := make([]string, world.ToolCount)
	for i := range tools {
		tools[i] = world.Tool(i).String()
	}
	materials := make([]string, 0, mat.Count-1)
	for _, m := range mat.All()[1:] {
		materials = append(materials, m.String())
	}
	return []core.ParameterControl{
		{Key: "tool", Label: "Tool", Type: core.ParamTypeChoice, Choices: tools},
		{Key: "material", Label: "Material", Type: core.ParamTypeChoice, Choices: materials},
		{Key: "radius", Label: "Radius", Type: core.ParamTypeInt, Step: 1, Min: 0, Max: MaxRadius, HasMin: true, HasMax: true},
		{Key: "brush_temp", Label: "Brush temperature", Type: core.ParamTypeFloat, Step: 50, Min: 0, HasMin: true},
		{Key: "heat_delta", Label: "Heat delta", Type: core.ParamTypeFloat, Step: 10, Min: 0, HasMin: true},
		{Key: "spawner_temp", Label: "Spawner temperature", Type: core.ParamTypeFloat, Step: 50, Min: 0, HasMin: true},
	}
}

// SetIntParameter updates integer tunables. Out of range values are clamped.
func (s *Session) SetIntParameter(key string, value int) bool {
	switch key {
	case "radius":
		s.SetRadius(value)
		return true
	}
	return false
}

// SetFloatParameter updates temperature tunables. Negative values clamp to 0.
func (s *Session) SetFloatParameter(key string, value float64) bool {
	value = max(0, value)
	s.mu.Lock()
	defer s.mu.Unlock()
	switch key {
	case "brush_temp":
		s.cfg.Tuning.BrushTemperature = value
	case "heat_delta":
		s.cfg.Tuning.HeatDelta = value
	case "spawner_temp":
		s.cfg.Tuning.SpawnerTemperature = value
	default:
		return false
	}
	return true
}

// SetChoiceParameter selects the tool or material by name.
func (s *Session) SetChoiceParameter(key, value string) bool {
	switch key {
	case "tool":
		t, ok := world.ParseTool(value)
		if !ok {
			return false
		}
		s.SetTool(t)
		return true
	case "material":
		m, ok := mat.Parse(value)
		if !ok {
			return false
		}
		return s.SetMaterial(m)
	}
	return false
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

func choiceParam(key, label, value string) core.Parameter {
	return core.Parameter{
		Key:   key,
		Label: label,
		Type:  core.ParamTypeChoice,
		Value: value,
	}
}
