//go:build ebiten

package main

import (
	"errors"
	"flag"
	"log/slog"
	"os"

	"conway/internal/app"
	"conway/internal/config"
	"conway/internal/telemetry"

	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	configPath := flag.String("config", "", "YAML config file (empty = embedded defaults)")
	config.Default().Bind(flag.CommandLine)
	flag.Parse()

	cfg, err := config.Resolve(*configPath, flag.CommandLine)
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := cfg.Log.NewLogger(os.Stderr)
	slog.SetDefault(logger)

	grid, err := cfg.Grid.Build()
	if err != nil {
		logger.Error("failed to seed grid", "error", err)
		os.Exit(1)
	}

	rec, err := telemetry.Create(cfg.Telemetry.Output)
	if err != nil {
		logger.Error("failed to open telemetry output", "error", err)
		os.Exit(1)
	}
	defer rec.Close()

	ctrl := app.NewController(grid, app.Options{
		MaxGenerations: cfg.Run.MaxGenerations,
		HaltOnStable:   cfg.Run.HaltOnStable,
		CycleWindow:    cfg.Run.CycleWindow,
		Interval:       cfg.Run.Interval(),
		Seed:           cfg.Grid.Seed,
		Logger:         logger,
		Recorder:       rec,
	})
	game := app.New(ctrl, app.GameOptions{
		Scale:     cfg.Display.Scale,
		HUDWidth:  cfg.Display.HUDWidth,
		GridLines: cfg.Display.GridLines,
		Seed:      cfg.Grid.Seed,
		Density:   cfg.Grid.Density,
		Logger:    logger,
	})

	ebiten.SetWindowTitle("Conway's Game of Life")
	ebiten.SetWindowSize(game.WindowSize())
	logger.Info("starting", "size", cfg.Grid.Size, "pattern", cfg.Grid.Pattern, "interval", cfg.Run.Interval())

	if err := ebiten.RunGame(game); err != nil && !errors.Is(err, ebiten.Termination) {
		logger.Error("game loop failed", "error", err)
		os.Exit(1)
	}
}
