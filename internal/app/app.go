//go:build ebiten

package app

import (
	"image/color"
	"log/slog"

	"conway/internal/core"
	"conway/internal/render"
	"conway/internal/ui"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// GameOptions configures the ebiten front end.
type GameOptions struct {
	Scale     int
	HUDWidth  int
	GridLines bool
	Seed      int64
	Density   float64
	Logger    *slog.Logger
}

var (
	aliveColor color.Color = color.RGBA{R: 220, G: 30, B: 30, A: 255}
	deadColor  color.Color = color.White
)

// Game adapts a Controller to the ebiten.Game interface.
type Game struct {
	ctrl    *Controller
	painter *render.GridPainter
	hud     *ui.HUD
	overlay *ui.Overlay
	timer   *core.FixedStep
	log     *slog.Logger

	scale    int
	hudWidth int
	seed     int64
	density  float64
}

// New constructs a Game driving ctrl.
func New(ctrl *Controller, opts GameOptions) *Game {
	if opts.Scale <= 0 {
		opts.Scale = 1
	}
	if opts.Density <= 0 {
		opts.Density = 0.25
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	size := ctrl.Size()
	g := &Game{
		ctrl:     ctrl,
		painter:  render.NewGridPainter(size, aliveColor, deadColor),
		hud:      ui.NewHUD(ctrl, opts.HUDWidth),
		overlay:  ui.NewOverlay(ctrl, opts.Scale),
		timer:    core.NewFixedStep(ctrl.Interval()),
		log:      logger,
		scale:    opts.Scale,
		hudWidth: opts.HUDWidth,
		seed:     opts.Seed,
		density:  opts.Density,
	}
	g.overlay.SetGridLines(opts.GridLines)
	return g
}

// WindowSize returns the outer window size for the current grid.
func (g *Game) WindowSize() (int, int) {
	return g.Layout(0, 0)
}

// Update handles per-frame input and advances the simulation on timer ticks.
func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		mx, my := ebiten.CursorPosition()
		if row, col, ok := CellAt(mx, my, g.scale, g.ctrl.Size().W); ok {
			g.ctrl.Toggle(row, col)
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEnter) {
		g.start()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		if !g.ctrl.Pause() {
			g.start()
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyN) {
		g.ctrl.StepOnce()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.ctrl.Reset()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyG) {
		g.seed++
		g.ctrl.Randomize(g.seed, g.density)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyC) {
		g.create(g.ctrl.PendingSize())
	}

	g.overlay.Update()
	g.hud.Update(g.ctrl.Size().W * g.scale)

	g.timer.SetInterval(g.ctrl.Interval())
	if g.ctrl.Mode() == ModeRunning && g.timer.ShouldStep() {
		g.ctrl.Tick()
	}
	return nil
}

func (g *Game) start() {
	if g.ctrl.Start() {
		g.timer.Restart()
	}
}

func (g *Game) create(size int) {
	if err := g.ctrl.Create(size); err != nil {
		return
	}
	s := g.ctrl.Size()
	if !g.painter.Fits(s) {
		g.painter = render.NewGridPainter(s, aliveColor, deadColor)
	}
	ebiten.SetWindowSize(g.WindowSize())
	g.log.Debug("window resized", "cells", s.W, "scale", g.scale)
}

// Draw renders the grid, overlay and HUD.
func (g *Game) Draw(screen *ebiten.Image) {
	g.painter.Draw(screen, g.ctrl.Cells(), g.scale)
	g.overlay.Draw(screen)
	g.hud.Draw(screen, g.ctrl.Size().W*g.scale, g.scale)
}

// Layout returns the logical screen size: the grid plus the HUD panel.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	s := g.ctrl.Size()
	h := s.H * g.scale
	if h < ui.MinPanelHeight && g.hudWidth > 0 {
		h = ui.MinPanelHeight
	}
	return s.W*g.scale + g.hudWidth, h
}
