// Package config loads the simulator settings from embedded defaults, an
// optional YAML file, and command-line overrides.
package config

import (
	_ "embed"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"conway/pkg/sims/life"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// ErrInvalidConfig wraps every validation failure.
var ErrInvalidConfig = errors.New("invalid configuration")

// Config holds all simulator settings.
type Config struct {
	Grid      GridConfig      `yaml:"grid"`
	Run       RunConfig       `yaml:"run"`
	Display   DisplayConfig   `yaml:"display"`
	Telemetry TelemetryConfig `yaml:"telemetry"`
	Log       LogConfig       `yaml:"log"`
}

// GridConfig describes the initial board.
type GridConfig struct {
	Size    int      `yaml:"size"`
	Pattern string   `yaml:"pattern"` // built-in pattern name, empty for none
	Origin  [2]int   `yaml:"origin"`  // {row, col} of the pattern's top-left cell
	Cells   [][2]int `yaml:"cells"`   // extra live cells as {row, col}
	Seed    int64    `yaml:"seed"`
	Density float64  `yaml:"density"` // random fill probability; 0 disables
}

// RunConfig controls pacing and automatic halting.
type RunConfig struct {
	IntervalMS     int  `yaml:"interval_ms"`
	MaxGenerations int  `yaml:"max_generations"` // 0 means unlimited
	HaltOnStable   bool `yaml:"halt_on_stable"`
	CycleWindow    int  `yaml:"cycle_window"`
}

// Interval returns the tick period as a duration.
func (r RunConfig) Interval() time.Duration {
	return time.Duration(r.IntervalMS) * time.Millisecond
}

// DisplayConfig holds GUI settings.
type DisplayConfig struct {
	Scale     int  `yaml:"scale"`
	HUDWidth  int  `yaml:"hud_width"`
	GridLines bool `yaml:"grid_lines"`
}

// TelemetryConfig selects where per-generation records are written.
type TelemetryConfig struct {
	Output string `yaml:"output"`
}

// LogConfig selects the slog handler.
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"` // text or json
}

// Default returns the embedded defaults.
func Default() *Config {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		panic(fmt.Sprintf("config: embedded defaults: %v", err))
	}
	return cfg
}

// Load reads configuration from a YAML file merged over the embedded
// defaults. An empty path yields the defaults.
func Load(path string) (*Config, error) {
	cfg, err := read(path)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Resolve loads path like Load, then re-applies every flag explicitly set on
// fs so that the command line wins over the file.
func Resolve(path string, fs *flag.FlagSet) (*Config, error) {
	cfg, err := read(path)
	if err != nil {
		return nil, err
	}
	overrides := flag.NewFlagSet("overrides", flag.ContinueOnError)
	overrides.SetOutput(io.Discard)
	cfg.Bind(overrides)
	var setErr error
	fs.Visit(func(f *flag.Flag) {
		if setErr != nil || overrides.Lookup(f.Name) == nil {
			return
		}
		if err := overrides.Set(f.Name, f.Value.String()); err != nil {
			setErr = fmt.Errorf("flag -%s: %w", f.Name, err)
		}
	})
	if setErr != nil {
		return nil, setErr
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func read(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}
	return cfg, nil
}

// Bind attaches overridable settings to the provided FlagSet.
func (c *Config) Bind(fs *flag.FlagSet) {
	fs.IntVar(&c.Grid.Size, "size", c.Grid.Size, "grid size N (N x N cells)")
	fs.StringVar(&c.Grid.Pattern, "pattern", c.Grid.Pattern, "initial pattern ("+strings.Join(life.Names(), ", ")+")")
	fs.Int64Var(&c.Grid.Seed, "seed", c.Grid.Seed, "seed for random fill")
	fs.Float64Var(&c.Grid.Density, "density", c.Grid.Density, "random fill density in [0,1]; 0 disables")
	fs.IntVar(&c.Run.IntervalMS, "interval", c.Run.IntervalMS, "milliseconds between generations")
	fs.IntVar(&c.Run.MaxGenerations, "max-generations", c.Run.MaxGenerations, "stop after this many generations (0 = unlimited)")
	fs.BoolVar(&c.Run.HaltOnStable, "halt-on-stable", c.Run.HaltOnStable, "stop when the grid repeats a recent state")
	fs.IntVar(&c.Display.Scale, "scale", c.Display.Scale, "pixels per cell")
	fs.StringVar(&c.Telemetry.Output, "telemetry", c.Telemetry.Output, "CSV file for per-generation records")
	fs.StringVar(&c.Log.Level, "log-level", c.Log.Level, "log level (debug, info, warn, error)")
	fs.StringVar(&c.Log.Format, "log-format", c.Log.Format, "log format (text, json)")
}

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	if err := life.ValidateSize(c.Grid.Size); err != nil {
		return fmt.Errorf("%w: grid.size: %w", ErrInvalidConfig, err)
	}
	if c.Grid.Pattern != "" {
		p, ok := life.Lookup(c.Grid.Pattern)
		if !ok {
			return fmt.Errorf("%w: grid.pattern: unknown pattern %q", ErrInvalidConfig, c.Grid.Pattern)
		}
		if p.Rows > c.Grid.Size || p.Cols > c.Grid.Size {
			return fmt.Errorf("%w: grid.pattern: %s is %dx%d and does not fit a %dx%d grid",
				ErrInvalidConfig, p.Name, p.Rows, p.Cols, c.Grid.Size, c.Grid.Size)
		}
	}
	for _, rc := range c.Grid.Cells {
		if rc[0] < 0 || rc[0] >= c.Grid.Size || rc[1] < 0 || rc[1] >= c.Grid.Size {
			return fmt.Errorf("%w: grid.cells: (%d,%d) outside %dx%d grid",
				ErrInvalidConfig, rc[0], rc[1], c.Grid.Size, c.Grid.Size)
		}
	}
	if c.Grid.Density < 0 || c.Grid.Density > 1 {
		return fmt.Errorf("%w: grid.density %v outside [0,1]", ErrInvalidConfig, c.Grid.Density)
	}
	if c.Run.IntervalMS <= 0 {
		return fmt.Errorf("%w: run.interval_ms must be positive", ErrInvalidConfig)
	}
	if c.Run.MaxGenerations < 0 {
		return fmt.Errorf("%w: run.max_generations must not be negative", ErrInvalidConfig)
	}
	if c.Run.CycleWindow < 1 {
		return fmt.Errorf("%w: run.cycle_window must be at least 1", ErrInvalidConfig)
	}
	if c.Display.Scale <= 0 {
		return fmt.Errorf("%w: display.scale must be positive", ErrInvalidConfig)
	}
	if _, err := c.Log.SlogLevel(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	switch c.Log.Format {
	case "text", "json":
	default:
		return fmt.Errorf("%w: log.format %q", ErrInvalidConfig, c.Log.Format)
	}
	return nil
}

// Build creates the initial grid described by the grid section.
func (g GridConfig) Build() (*life.Grid, error) {
	grid, err := life.New(g.Size)
	if err != nil {
		return nil, err
	}
	if err := g.Apply(grid); err != nil {
		return nil, err
	}
	return grid, nil
}

// Apply stamps the configured pattern, explicit cells, and random fill onto grid.
func (g GridConfig) Apply(grid *life.Grid) error {
	if g.Density > 0 {
		grid.Randomize(g.Seed, g.Density)
	}
	if g.Pattern != "" {
		p, ok := life.Lookup(g.Pattern)
		if !ok {
			return fmt.Errorf("unknown pattern %q", g.Pattern)
		}
		if err := grid.Place(p, g.Origin[0], g.Origin[1]); err != nil {
			return fmt.Errorf("placing %s: %w", g.Pattern, err)
		}
	}
	for _, rc := range g.Cells {
		if err := grid.Set(rc[0], rc[1], life.Alive); err != nil {
			return fmt.Errorf("grid.cells: %w", err)
		}
	}
	return nil
}

// SlogLevel parses the configured level name.
func (l LogConfig) SlogLevel() (slog.Level, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(l.Level)); err != nil {
		return lvl, fmt.Errorf("log.level: %w", err)
	}
	return lvl, nil
}

// NewLogger builds a slog.Logger writing to w.
func (l LogConfig) NewLogger(w io.Writer) *slog.Logger {
	lvl, err := l.SlogLevel()
	if err != nil {
		lvl = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: lvl}
	if l.Format == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
