package app

import (
	"flag"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"mad-lbm/internal/render"
	"mad-lbm/internal/scenario"
	"mad-lbm/internal/sims/freesurface"
)

// Config holds the command-line settings of the viewer and the headless tools.
type Config struct {
	Scenario  string
	Scale     int
	Width     int
	Height    int
	Seed      int64
	Viscosity float64
	Gravity   float64
	MaxUPS    int
	TPS       int
	HUDWidth  int
	Field     string

	Set KeyValues
}

// NewConfig returns flag defaults matching freesurface.DefaultConfig.
func NewConfig() Config {
	def := freesurface.DefaultConfig()
	return Config{
		Scenario:  def.Scenario,
		Scale:     4,
		Width:     def.Width,
		Height:    def.Height,
		Seed:      def.Seed,
		Viscosity: def.Params.Viscosity,
		Gravity:   def.Params.Gravity,
		MaxUPS:    def.Params.MaxUPS,
		TPS:       60,
		HUDWidth:  240,
		Field:     "phase",
		Set:       KeyValues{},
	}
}

// Bind registers the flags on fs, using the current values as defaults.
func (c *Config) Bind(fs *flag.FlagSet) {
	if c.Set == nil {
		c.Set = KeyValues{}
	}
	fs.StringVar(&c.Scenario, "scenario", c.Scenario, "initial layout")
	fs.IntVar(&c.Scale, "scale", c.Scale, "screen pixels per cell")
	fs.IntVar(&c.Width, "w", c.Width, "lattice width in cells")
	fs.IntVar(&c.Height, "h", c.Height, "lattice height in cells")
	fs.Int64Var(&c.Seed, "seed", c.Seed, "seed for randomized layouts")
	fs.Float64Var(&c.Viscosity, "viscosity", c.Viscosity, "kinematic viscosity in lattice units")
	fs.Float64Var(&c.Gravity, "gravity", c.Gravity, "gravitational acceleration in lattice units")
	fs.IntVar(&c.MaxUPS, "max-ups", c.MaxUPS, "update cap per second (0 starts paused)")
	fs.IntVar(&c.TPS, "tps", c.TPS, "viewer ticks per second")
	fs.IntVar(&c.HUDWidth, "hud", c.HUDWidth, "HUD panel width in pixels (0 hides it)")
	fs.StringVar(&c.Field, "field", c.Field, "initial view: phase, speed, density, curl or fill")
	fs.Var(c.Set, "set", "extra sim setting as key=value (repeatable, applied last)")
}

// SimConfig renders the settings into the key/value form accepted by
// freesurface.FromMap. Entries given with -set win over the dedicated flags.
func (c Config) SimConfig() map[string]string {
	m := map[string]string{
		"scenario":  c.Scenario,
		"w":         strconv.Itoa(c.Width),
		"h":         strconv.Itoa(c.Height),
		"seed":      strconv.FormatInt(c.Seed, 10),
		"viscosity": strconv.FormatFloat(c.Viscosity, 'g', -1, 64),
		"gravity":   strconv.FormatFloat(c.Gravity, 'g', -1, 64),
		"max_ups":   strconv.Itoa(c.MaxUPS),
	}
	for k, v := range c.Set {
		m[k] = v
	}
	return m
}

// KeyValues is a repeatable key=value flag.
type KeyValues map[string]string

func (kv KeyValues) String() string {
	keys := make([]string, 0, len(kv))
	for k := range kv {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = k + "=" + kv[k]
	}
	return strings.Join(parts, ",")
}

// Set parses one key=value pair.
func (kv KeyValues) Set(s string) error {
	key, value, ok := strings.Cut(s, "=")
	key = strings.TrimSpace(key)
	if !ok || key == "" {
		return fmt.Errorf("expected key=value, got %q", s)
	}
	kv[key] = strings.TrimSpace(value)
	return nil
}

// Validate reports settings the tools cannot run with.
func (c Config) Validate() error {
	names := scenario.Names()
	for i, name := range []string{c.Scenario, c.Set["scenario"]} {
		if i > 0 && name == "" {
			continue
		}
		if _, ok := scenario.Lookup(name); !ok {
			return fmt.Errorf("unknown scenario %q (available: %s)", name, strings.Join(names, ", "))
		}
	}
	if c.Width < 3 || c.Height < 3 {
		return fmt.Errorf("lattice %dx%d is too small, need at least 3x3", c.Width, c.Height)
	}
	if c.Scale <= 0 {
		return fmt.Errorf("scale must be positive, got %d", c.Scale)
	}
	if _, ok := render.ParseField(c.Field); !ok {
		return fmt.Errorf("unknown field %q", c.Field)
	}
	return nil
}
