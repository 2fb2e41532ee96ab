package app

import (
	"bytes"
	"errors"
	"io"
	"log/slog"
	"slices"
	"strings"
	"testing"
	"time"

	"conway/internal/telemetry"
	"conway/pkg/sims/life"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newController(t *testing.T, n int, opts Options) *Controller {
	t.Helper()
	grid, err := life.New(n)
	if err != nil {
		t.Fatal(err)
	}
	if opts.Logger == nil {
		opts.Logger = quietLogger()
	}
	return NewController(grid, opts)
}

func TestModeGatesToggle(t *testing.T) {
	c := newController(t, 5, Options{})
	if c.Mode() != ModeEditable {
		t.Fatalf("new controller mode = %s", c.Mode())
	}
	if !c.Toggle(1, 1) {
		t.Fatal("toggle should work while editable")
	}
	if !c.Start() {
		t.Fatal("start from editable failed")
	}
	if c.Toggle(2, 2) {
		t.Fatal("toggle must be refused while running")
	}
	if c.Start() {
		t.Fatal("start while running should be refused")
	}
	if c.Snapshot().At(2, 2) != life.Dead {
		t.Fatal("refused toggle changed the grid")
	}
}

func TestTickOnlyWhileRunning(t *testing.T) {
	c := newController(t, 5, Options{})
	if c.Tick() {
		t.Fatal("tick while editable should not step")
	}
	c.Toggle(2, 1)
	c.Toggle(2, 2)
	c.Toggle(2, 3)
	c.Start()
	for i := 1; i <= 3; i++ {
		if !c.Tick() {
			t.Fatalf("tick %d did not step", i)
		}
		if c.Generation() != i {
			t.Fatalf("generation = %d, want %d", c.Generation(), i)
		}
	}
	if !c.Pause() || c.Mode() != ModeEditable {
		t.Fatal("pause should return to editable")
	}
	if c.Generation() != 3 {
		t.Fatal("pause must keep generation")
	}
	if !c.StepOnce() || c.Generation() != 4 {
		t.Fatal("single step while editable should advance")
	}
}

func TestResetFromAnyMode(t *testing.T) {
	c := newController(t, 6, Options{})
	c.Randomize(5, 0.5)
	c.Start()
	c.Tick()
	c.Tick()
	c.Reset()
	if c.Mode() != ModeEditable || c.Generation() != 0 || c.Population() != 0 {
		t.Fatalf("after reset: mode=%s gen=%d pop=%d", c.Mode(), c.Generation(), c.Population())
	}
	if c.Size().W != 6 || c.Size().H != 6 {
		t.Fatal("reset changed size")
	}
}

func TestCreateValidatesSize(t *testing.T) {
	c := newController(t, 4, Options{})
	c.Toggle(0, 0)
	err := c.Create(0)
	if !errors.Is(err, life.ErrInvalidSize) {
		t.Fatalf("Create(0) err = %v", err)
	}
	if c.Size().W != 4 || c.Population() != 1 {
		t.Fatal("failed create must keep the current grid")
	}
	if err := c.Create(9); err != nil {
		t.Fatal(err)
	}
	if c.Size().W != 9 || c.Population() != 0 || c.Generation() != 0 {
		t.Fatal("create should yield a fresh grid")
	}
	if c.PendingSize() != 9 {
		t.Fatalf("pending size = %d", c.PendingSize())
	}
}

func TestHaltsAtGenerationLimit(t *testing.T) {
	c := newController(t, 8, Options{MaxGenerations: 3})
	glider, _ := life.Lookup("glider")
	c.grid.Place(glider, 1, 1)
	c.Start()
	for i := 0; i < 10; i++ {
		c.Tick()
	}
	if c.Mode() != ModeHalted || c.HaltReason() != HaltGenerationLimit {
		t.Fatalf("mode=%s reason=%q", c.Mode(), c.HaltReason())
	}
	if c.Generation() != 3 {
		t.Fatalf("halted at generation %d, want 3", c.Generation())
	}
	if c.Start() || c.Toggle(0, 0) {
		t.Fatal("halted controller should only accept reset/create")
	}
}

func TestHaltsOnExtinction(t *testing.T) {
	c := newController(t, 5, Options{HaltOnStable: true, CycleWindow: 4})
	c.Toggle(2, 2)
	c.Start()
	c.Tick()
	if c.HaltReason() != HaltExtinct {
		t.Fatalf("reason = %q", c.HaltReason())
	}
}

func TestExtinctionHaltsWithoutStableDetection(t *testing.T) {
	c := newController(t, 5, Options{MaxGenerations: 200})
	c.Toggle(2, 2)
	c.Start()
	if !c.Tick() {
		t.Fatal("tick did not step")
	}
	if c.Mode() != ModeHalted || c.HaltReason() != HaltExtinct {
		t.Fatalf("pop=%d mode=%s reason=%q", c.Population(), c.Mode(), c.HaltReason())
	}
	if c.Tick() || c.Generation() != 1 {
		t.Fatalf("extinct run kept stepping: gen=%d", c.Generation())
	}
}

func TestHaltsOnStillLifeAndOscillator(t *testing.T) {
	block, _ := life.Lookup("block")
	c := newController(t, 6, Options{HaltOnStable: true, CycleWindow: 4})
	c.grid.Place(block, 2, 2)
	c.Start()
	c.Tick()
	if c.HaltReason() != HaltStable || c.Generation() != 1 {
		t.Fatalf("block: reason=%q gen=%d", c.HaltReason(), c.Generation())
	}

	blinker, _ := life.Lookup("blinker")
	c = newController(t, 6, Options{HaltOnStable: true, CycleWindow: 4})
	c.grid.Place(blinker, 2, 1)
	c.Start()
	c.Tick()
	if c.Mode() != ModeRunning {
		t.Fatal("blinker should still run after one step")
	}
	c.Tick()
	if c.HaltReason() != HaltStable || c.Generation() != 2 {
		t.Fatalf("blinker: reason=%q gen=%d", c.HaltReason(), c.Generation())
	}
}

func TestStableDetectionOffKeepsRunning(t *testing.T) {
	block, _ := life.Lookup("block")
	c := newController(t, 6, Options{})
	c.grid.Place(block, 2, 2)
	c.Start()
	for i := 0; i < 20; i++ {
		c.Tick()
	}
	if c.Mode() != ModeRunning || c.Generation() != 20 {
		t.Fatalf("mode=%s gen=%d", c.Mode(), c.Generation())
	}
}

func TestRecordsTelemetry(t *testing.T) {
	var buf bytes.Buffer
	c := newController(t, 5, Options{Seed: 77, Recorder: telemetry.NewRecorder(&buf)})
	c.Toggle(2, 1)
	c.Toggle(2, 2)
	c.Toggle(2, 3)
	c.Start()
	c.Tick()
	c.Tick()

	records, err := telemetry.ReadRecords(strings.NewReader(buf.String()))
	if err != nil {
		t.Fatal(err)
	}
	gens := make([]int, len(records))
	for i, r := range records {
		gens[i] = r.Generation
		if r.Seed != 77 || r.Population != 3 {
			t.Fatalf("record %d = %+v", i, r)
		}
	}
	if !slices.Equal(gens, []int{0, 1, 2}) {
		t.Fatalf("generations = %v", gens)
	}
	if records[1].Births != 2 || records[1].Deaths != 2 {
		t.Fatalf("delta not recorded: %+v", records[1])
	}
}

func TestParameterControls(t *testing.T) {
	c := newController(t, 10, Options{Interval: 200 * time.Millisecond})
	if c.Interval() != 200*time.Millisecond {
		t.Fatalf("interval = %s", c.Interval())
	}
	if !c.SetIntParameter("size", 0) || c.PendingSize() != minGridSize {
		t.Fatalf("size should clamp to %d, got %d", minGridSize, c.PendingSize())
	}
	if !c.SetIntParameter("interval_ms", 10000) || c.Interval() != maxIntervalMS*time.Millisecond {
		t.Fatalf("interval should clamp, got %s", c.Interval())
	}
	if c.SetIntParameter("bogus", 1) {
		t.Fatal("unknown key accepted")
	}

	snap := c.Parameters()
	if p, ok := snap.Lookup("mode"); !ok || p.Value != "editable" {
		t.Fatalf("mode param = %+v", p)
	}
	if p, ok := snap.Lookup("grid"); !ok || p.Value != "10" {
		t.Fatalf("grid param = %+v", p)
	}
	if len(c.ParameterControls()) != 2 {
		t.Fatal("expected two controls")
	}
}

func TestModeString(t *testing.T) {
	if ModeRunning.String() != "running" || Mode(9).String() != "mode(9)" {
		t.Fatal("unexpected mode names")
	}
}
