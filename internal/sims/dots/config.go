package dots

import "strconv"

// Tuning holds the temperatures and tool sizes the session applies.
type Tuning struct {
	Ambient            float64
	SpawnerTemperature float64
	BrushTemperature   float64
	Radius             int
	HeatDelta          float64
}

// Config controls the dots world dimensions and tool defaults.
type Config struct {
	Width  int
	Height int

	Seed int64

	// Scene names a YAML scene file applied on every Reset.
	Scene string

	Tuning Tuning
}

const (
	// MaxRadius bounds the tool radius exposed on the HUD.
	MaxRadius = 64
)

// DefaultConfig returns the standard configuration.
func DefaultConfig() Config {
	return Config{
		Width:  160,
		Height: 120,
		Seed:   1337,
		Tuning: Tuning{
			Ambient:            293.15,
			SpawnerTemperature: 293.15,
			BrushTemperature:   293.15,
			Radius:             3,
			HeatDelta:          50,
		},
	}
}

// FromMap populates the config from a string map (flag-style key/value pairs).
func FromMap(cfg map[string]string) Config {
	c := DefaultConfig()
	if cfg == nil {
		return c
	}
	if v, ok := cfg["w"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			c.Width = parsed
		}
	}
	if v, ok := cfg["h"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			c.Height = parsed
		}
	}
	if v, ok := cfg["seed"]; ok {
		if parsed, err := strconv.ParseInt(v, 10, 64); err == nil {
			c.Seed = parsed
		}
	}
	if v, ok := cfg["scene"]; ok {
		c.Scene = v
	}
	if v, ok := cfg["ambient"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil && parsed >= 0 {
			c.Tuning.Ambient = parsed
		}
	}
	if v, ok := cfg["spawner_temp"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil && parsed >= 0 {
			c.Tuning.SpawnerTemperature = parsed
		}
	}
	if v, ok := cfg["brush_temp"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil && parsed >= 0 {
			c.Tuning.BrushTemperature = parsed
		}
	}
	if v, ok := cfg["radius"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed >= 0 {
			c.Tuning.Radius = min(parsed, MaxRadius)
		}
	}
	if v, ok := cfg["heat_delta"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil && parsed >= 0 {
			c.Tuning.HeatDelta = parsed
		}
	}
	return c
}
