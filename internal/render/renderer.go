//go:build ebiten

package render

import (
	"image/color"

	"conway/internal/core"

	"github.com/hajimehoshi/ebiten/v2"
)

// GridPainter keeps one texel per cell and scales it onto the screen.
type GridPainter struct {
	size      core.Size
	alive     color.Color
	dead      color.Color
	img       *ebiten.Image
	pixels    []byte
	drawOpts  ebiten.DrawImageOptions
	lastScale int
}

func NewGridPainter(size core.Size, alive, dead color.Color) *GridPainter {
	return &GridPainter{
		size:   size,
		alive:  alive,
		dead:   dead,
		img:    ebiten.NewImage(size.W, size.H),
		pixels: make([]byte, 4*size.W*size.H),
	}
}

// Fits reports whether the painter was allocated for size.
func (gp *GridPainter) Fits(size core.Size) bool { return gp.size == size }

// Draw uploads cells and draws them at scale. A cell slice of the wrong
// length is ignored.
func (gp *GridPainter) Draw(dst *ebiten.Image, cells []uint8, scale int) {
	if len(cells) != gp.size.W*gp.size.H {
		return
	}
	fillBinaryRGBA(gp.pixels, cells, gp.alive, gp.dead)
	gp.img.WritePixels(gp.pixels)

	if scale != gp.lastScale {
		gp.drawOpts.GeoM.Reset()
		gp.drawOpts.GeoM.Scale(float64(scale), float64(scale))
		gp.lastScale = scale
	}
	dst.DrawImage(gp.img, &gp.drawOpts)
}
