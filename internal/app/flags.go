package app

import (
	"flag"

	"dotsim/internal/sims/dots"
)

// Config represents the command-line parameters for the application.
type Config struct {
	Sim   string
	Scale int
	TPS   int
	// HUD is the width of the side panel in pixels; 0 hides it.
	HUD int

	Dots dots.Config
}

// NewConfig returns a Config populated with sensible defaults.
func NewConfig() *Config {
	return &Config{Sim: "demo", Scale: 4, TPS: 24, HUD: 260, Dots: dots.DefaultConfig()}
}

// Bind attaches the configuration to the provided FlagSet.
func (c *Config) Bind(fs *flag.FlagSet) {
	fs.StringVar(&c.Sim, "sim", c.Sim, "simulation to run (sandbox, demo)")
	fs.IntVar(&c.Scale, "scale", c.Scale, "pixel scale multiplier")
	fs.IntVar(&c.TPS, "tps", c.TPS, "ticks per second")
	fs.IntVar(&c.HUD, "hud", c.HUD, "side panel width in pixels, 0 to hide")
	BindWorld(fs, &c.Dots)
}

// BindWorld attaches the world and tool settings to fs.
func BindWorld(fs *flag.FlagSet, c *dots.Config) {
	fs.IntVar(&c.Width, "w", c.Width, "world width in cells")
	fs.IntVar(&c.Height, "h", c.Height, "world height in cells")
	fs.Int64Var(&c.Seed, "seed", c.Seed, "seed for layout and reset")
	fs.StringVar(&c.Scene, "scene", c.Scene, "YAML scene file applied on reset")
	fs.Float64Var(&c.Tuning.Ambient, "ambient", c.Tuning.Ambient, "ambient temperature in kelvin")
	fs.Float64Var(&c.Tuning.SpawnerTemperature, "spawner-temp", c.Tuning.SpawnerTemperature, "temperature of spawned material")
	fs.Float64Var(&c.Tuning.BrushTemperature, "brush-temp", c.Tuning.BrushTemperature, "temperature of brushed material")
	fs.IntVar(&c.Tuning.Radius, "radius", c.Tuning.Radius, "tool radius in cells")
	fs.Float64Var(&c.Tuning.HeatDelta, "heat-delta", c.Tuning.HeatDelta, "heater/cooler change per application")
}
