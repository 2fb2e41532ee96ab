package app

import (
	"log/slog"
	"strconv"
	"time"

	"conway/internal/core"
	"conway/internal/telemetry"
	"conway/pkg/sims/life"
)

// Mode is the presentation-side simulation state. It decides which grid
// operations user input may dispatch.
type Mode int

const (
	// ModeEditable accepts toggles; the timer does not step.
	ModeEditable Mode = iota
	// ModeRunning steps on every timer tick; toggles are refused.
	ModeRunning
	// ModeHalted is a finished run. Only Reset or Create leave it.
	ModeHalted
)

func (m Mode) String() string {
	switch m {
	case ModeEditable:
		return "editable"
	case ModeRunning:
		return "running"
	case ModeHalted:
		return "halted"
	default:
		return "mode(" + strconv.Itoa(int(m)) + ")"
	}
}

// HaltReason explains why a run stopped on its own.
type HaltReason string

const (
	HaltNone            HaltReason = ""
	HaltGenerationLimit HaltReason = "generation limit"
	HaltExtinct         HaltReason = "extinct"
	HaltStable          HaltReason = "stable"
)

// Options tune a Controller.
type Options struct {
	// MaxGenerations halts a run after this many generations; 0 disables.
	MaxGenerations int
	// HaltOnStable halts when the grid repeats one of the last CycleWindow
	// states. Extinction always halts.
	HaltOnStable bool
	CycleWindow  int
	Interval     time.Duration
	// Seed is stamped on telemetry records.
	Seed     int64
	Logger   *slog.Logger
	Recorder *telemetry.Recorder
}

const (
	minGridSize   = 1
	maxGridSize   = 400
	intervalStep  = 25
	minIntervalMS = 25
	maxIntervalMS = 2000
)

// Controller owns the grid on behalf of the presentation layer and gates
// every grid operation on the current Mode.
type Controller struct {
	grid   *life.Grid
	mode   Mode
	reason HaltReason
	opts   Options
	log    *slog.Logger
	rec    *telemetry.Recorder

	history     []uint64
	pendingSize int
	intervalMS  int
	lastDelta   life.Delta
}

// NewController wraps grid, which must not be shared with other callers.
func NewController(grid *life.Grid, opts Options) *Controller {
	if opts.CycleWindow < 1 {
		opts.CycleWindow = 1
	}
	if opts.Interval <= 0 {
		opts.Interval = core.DefaultInterval
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Controller{
		grid:        grid,
		opts:        opts,
		log:         logger,
		rec:         opts.Recorder,
		pendingSize: grid.Size(),
		intervalMS:  int(opts.Interval / time.Millisecond),
	}
}

// Mode returns the current mode.
func (c *Controller) Mode() Mode { return c.mode }

// HaltReason returns why the last run halted, or HaltNone.
func (c *Controller) HaltReason() HaltReason { return c.reason }

// Generation returns the grid's generation counter.
func (c *Controller) Generation() int { return c.grid.Generation() }

// Population returns the number of live cells.
func (c *Controller) Population() int { return c.grid.Population() }

// LastDelta returns the births and deaths of the most recent step.
func (c *Controller) LastDelta() life.Delta { return c.lastDelta }

// Snapshot returns a copy of the grid.
func (c *Controller) Snapshot() life.Snapshot { return c.grid.Snapshot() }

// Name returns the simulation identifier.
func (c *Controller) Name() string { return c.grid.Name() }

// Size returns the grid dimensions.
func (c *Controller) Size() core.Size { return core.Size{W: c.grid.Size(), H: c.grid.Size()} }

// Cells exposes the current cell buffer for rendering.
func (c *Controller) Cells() []uint8 { return c.grid.Cells() }

// Interval returns the configured time between generations.
func (c *Controller) Interval() time.Duration {
	return time.Duration(c.intervalMS) * time.Millisecond
}

// PendingSize is the size the next Create call from the HUD will use.
func (c *Controller) PendingSize() int { return c.pendingSize }

// Create replaces the grid with a fresh all-dead grid of the given size and
// returns to ModeEditable. An invalid size leaves the current grid in place.
func (c *Controller) Create(size int) error {
	grid, err := life.New(size)
	if err != nil {
		c.log.Warn("grid not created", "size", size, "error", err)
		return err
	}
	c.grid = grid
	c.pendingSize = size
	c.enterEditable()
	c.log.Info("grid created", "size", size)
	return nil
}

// Toggle flips a cell while editing. It reports whether the grid changed.
func (c *Controller) Toggle(row, col int) bool {
	if c.mode != ModeEditable {
		return false
	}
	return c.grid.Toggle(row, col)
}

// Randomize refills the grid while editing.
func (c *Controller) Randomize(seed int64, density float64) bool {
	if c.mode != ModeEditable {
		return false
	}
	c.grid.Randomize(seed, density)
	c.opts.Seed = seed
	c.log.Info("grid randomized", "seed", seed, "density", density, "population", c.grid.Population())
	return true
}

// Start begins or resumes a run from ModeEditable.
func (c *Controller) Start() bool {
	if c.mode != ModeEditable {
		return false
	}
	c.mode = ModeRunning
	c.reason = HaltNone
	c.history = c.history[:0]
	c.remember(c.grid.Hash())
	c.record(life.Delta{})
	c.log.Info("run started", "generation", c.grid.Generation(), "population", c.grid.Population())
	return true
}

// Pause returns a running simulation to ModeEditable without clearing it.
func (c *Controller) Pause() bool {
	if c.mode != ModeRunning {
		return false
	}
	c.mode = ModeEditable
	c.log.Info("run paused", "generation", c.grid.Generation())
	return true
}

// Tick advances one generation when running. It reports whether a step
// happened.
func (c *Controller) Tick() bool {
	if c.mode != ModeRunning {
		return false
	}
	c.advance()
	if reason := c.haltReason(); reason != HaltNone {
		c.mode = ModeHalted
		c.reason = reason
		c.log.Info("run halted", "reason", string(reason), "generation", c.grid.Generation(), "population", c.grid.Population())
	}
	return true
}

// StepOnce advances a single generation while editing.
func (c *Controller) StepOnce() bool {
	if c.mode != ModeEditable {
		return false
	}
	c.advance()
	return true
}

// Reset kills every cell, zeroes the generation counter and returns to
// ModeEditable from any mode.
func (c *Controller) Reset() {
	c.grid.Reset()
	c.enterEditable()
	c.log.Info("grid reset", "size", c.grid.Size())
}

func (c *Controller) enterEditable() {
	c.mode = ModeEditable
	c.reason = HaltNone
	c.history = c.history[:0]
	c.lastDelta = life.Delta{}
}

func (c *Controller) advance() {
	c.lastDelta = c.grid.Step()
	c.record(c.lastDelta)
	c.log.Debug("step", "generation", c.grid.Generation(), "births", c.lastDelta.Births, "deaths", c.lastDelta.Deaths)
}

func (c *Controller) haltReason() HaltReason {
	if c.grid.Population() == 0 {
		return HaltExtinct
	}
	if c.opts.HaltOnStable {
		h := c.grid.Hash()
		if c.seen(h) {
			return HaltStable
		}
		c.remember(h)
	}
	if c.opts.MaxGenerations > 0 && c.grid.Generation() >= c.opts.MaxGenerations {
		return HaltGenerationLimit
	}
	return HaltNone
}

func (c *Controller) seen(h uint64) bool {
	for _, v := range c.history {
		if v == h {
			return true
		}
	}
	return false
}

func (c *Controller) remember(h uint64) {
	if len(c.history) == c.opts.CycleWindow {
		copy(c.history, c.history[1:])
		c.history = c.history[:len(c.history)-1]
	}
	c.history = append(c.history, h)
}

func (c *Controller) record(d life.Delta) {
	if c.rec == nil {
		return
	}
	err := c.rec.Write(telemetry.Record{
		Seed:       c.opts.Seed,
		Generation: c.grid.Generation(),
		Population: c.grid.Population(),
		Births:     d.Births,
		Deaths:     d.Deaths,
	})
	if err != nil {
		c.log.Warn("telemetry disabled", "error", err)
		c.rec = nil
	}
}

// Parameters exposes the values shown on the HUD.
func (c *Controller) Parameters() core.ParameterSnapshot {
	reason := string(c.reason)
	if reason == "" {
		reason = "-"
	}
	return core.ParameterSnapshot{Groups: []core.ParameterGroup{
		{
			Name: "Grid",
			Params: []core.Parameter{
				intParam("grid", "Current size", c.grid.Size()),
				intParam("size", "New size", c.pendingSize),
				intParam("population", "Population", c.grid.Population()),
			},
		},
		{
			Name: "Run",
			Params: []core.Parameter{
				intParam("generation", "Generation", c.grid.Generation()),
				stringParam("mode", "Mode", c.mode.String()),
				stringParam("halt", "Halt", reason),
				intParam("interval_ms", "Interval ms", c.intervalMS),
			},
		},
	}}
}

// ParameterControls lists the HUD-adjustable values.
func (c *Controller) ParameterControls() []core.ParameterControl {
	return []core.ParameterControl{
		{Key: "size", Label: "New size", Type: core.ParamTypeInt, Step: 1, Min: minGridSize, Max: maxGridSize, HasMin: true, HasMax: true},
		{Key: "interval_ms", Label: "Interval ms", Type: core.ParamTypeInt, Step: intervalStep, Min: minIntervalMS, Max: maxIntervalMS, HasMin: true, HasMax: true},
	}
}

// SetIntParameter applies a HUD adjustment, clamping to the control bounds.
func (c *Controller) SetIntParameter(key string, value int) bool {
	switch key {
	case "size":
		c.pendingSize = clampInt(value, minGridSize, maxGridSize)
		return true
	case "interval_ms":
		c.intervalMS = clampInt(value, minIntervalMS, maxIntervalMS)
		return true
	}
	return false
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func intParam(key, label string, value int) core.Parameter {
	return core.Parameter{Key: key, Label: label, Type: core.ParamTypeInt, Value: strconv.Itoa(value)}
}

func stringParam(key, label, value string) core.Parameter {
	return core.Parameter{Key: key, Label: label, Type: core.ParamTypeString, Value: value}
}
