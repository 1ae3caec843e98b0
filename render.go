package main

import (
	"image/color"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/milk9111/confetti/ecs"
	"github.com/milk9111/confetti/ecs/component"
	"github.com/milk9111/confetti/ground"
)

// groundLayer mirrors the ground grid into a texture, re-uploading only
// after the grid changes.
type groundLayer struct {
	grid     *ground.Grid
	img      *ebiten.Image
	pix      []byte
	version  uint64
	uploaded bool
}

func newGroundLayer(grid *ground.Grid) *groundLayer {
	return &groundLayer{
		grid: grid,
		img:  ebiten.NewImage(grid.Width, grid.Height),
		pix:  make([]byte, grid.Len()*4),
	}
}

func (l *groundLayer) Draw(screen *ebiten.Image) {
	if !l.uploaded || l.grid.Version() != l.version {
		version, err := l.grid.CopyPixelsFlipped(l.pix)
		if err != nil {
			log.Printf("Render: ground upload: %v", err)
			return
		}
		l.img.WritePixels(l.pix)
		l.version = version
		l.uploaded = true
	}
	screen.DrawImage(l.img, nil)
}

func drawParticles(w *ecs.World, screen *ebiten.Image, width, height int) {
	ecs.ForEach3(w,
		component.TransformComponent.Kind(),
		component.SpriteComponent.Kind(),
		component.TintComponent.Kind(),
		func(_ ecs.Entity, t *component.Transform, s *component.Sprite, tint *component.Tint) {
			sx, sy := worldToScreen(t.X, t.Y, width, height)
			c := ground.Quantize(tint.R, tint.G, tint.B)
			vector.FillRect(screen,
				float32(sx-s.Width/2), float32(sy-s.Height/2),
				float32(s.Width), float32(s.Height),
				color.RGBA{R: c.R, G: c.G, B: c.B, A: 0xff}, false)
		})
}
