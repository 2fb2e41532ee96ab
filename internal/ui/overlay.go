//go:build ebiten

package ui

import (
	"image/color"

	"conway/internal/core"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// Overlay draws optional visuals on top of the cell image.
type Overlay struct {
	sim       core.Sim
	scale     int
	gridLines bool
	lineColor color.Color
}

// NewOverlay constructs a new overlay instance.
func NewOverlay(sim core.Sim, scale int) *Overlay {
	return &Overlay{sim: sim, scale: scale, lineColor: color.Black}
}

// SetGridLines enables or disables cell borders.
func (o *Overlay) SetGridLines(on bool) { o.gridLines = on }

// Update toggles grid lines on L.
func (o *Overlay) Update() {
	if inpututil.IsKeyJustPressed(ebiten.KeyL) {
		o.gridLines = !o.gridLines
	}
}

// Draw renders the overlay onto the provided screen.
func (o *Overlay) Draw(screen *ebiten.Image) {
	if !o.gridLines || o.scale < 3 {
		return
	}
	size := o.sim.Size()
	w := float32(size.W * o.scale)
	h := float32(size.H * o.scale)
	for x := 0; x <= size.W; x++ {
		fx := float32(x * o.scale)
		vector.StrokeLine(screen, fx, 0, fx, h, 1, o.lineColor, false)
	}
	for y := 0; y <= size.H; y++ {
		fy := float32(y * o.scale)
		vector.StrokeLine(screen, 0, fy, w, fy, 1, o.lineColor, false)
	}
}
