package main

import (
	"fmt"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"golang.design/x/clipboard"
)

type debugOverlay struct {
	clipboardReady bool
}

func newDebugOverlay() *debugOverlay {
	o := &debugOverlay{}
	if err := clipboard.Init(); err != nil {
		log.Printf("Debug: clipboard unavailable: %v", err)
	} else {
		o.clipboardReady = true
	}
	return o
}

func (o *debugOverlay) Draw(screen *ebiten.Image, text string) {
	ebitenutil.DebugPrintAt(screen, text, 10, 10)
}

// Copy puts a snapshot of the overlay text on the system clipboard.
func (o *debugOverlay) Copy(text string) {
	if !o.clipboardReady {
		log.Printf("Debug: clipboard unavailable, snapshot:\n%s", text)
		return
	}
	clipboard.Write(clipboard.FmtText, []byte(text))
	log.Printf("Debug: snapshot copied to clipboard")
}

func (g *Game) debugText() string {
	return fmt.Sprintf("%s\nSolid cells: %d\nTick: %d\nTPS: %.1f  FPS: %.1f\n[F3] overlay  [F4] physics  [C] copy  [R] clear",
		g.sim.Debug.String(),
		g.sim.Ground.SolidCount(),
		g.sim.Ticks(),
		ebiten.ActualTPS(),
		ebiten.ActualFPS(),
	)
}
