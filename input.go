package main

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// cursorSource samples the mouse in world coordinates: origin at the
// viewport center, y up.
type cursorSource struct {
	width, height int

	// set after a menu click so the same press does not also spawn
	holdUntilRelease bool
}

func newCursorSource(width, height int) *cursorSource {
	return &cursorSource{width: width, height: height}
}

func (c *cursorSource) Pointer() (float64, float64, bool) {
	cx, cy := ebiten.CursorPosition()
	x, y := screenToWorld(float64(cx), float64(cy), c.width, c.height)

	pressed := ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)
	if c.holdUntilRelease {
		if pressed {
			return x, y, false
		}
		c.holdUntilRelease = false
	}
	return x, y, pressed
}

func screenToWorld(sx, sy float64, width, height int) (float64, float64) {
	return sx - float64(width)/2, float64(height)/2 - sy
}

func worldToScreen(x, y float64, width, height int) (float64, float64) {
	return x + float64(width)/2, float64(height)/2 - y
}
