package main

import (
	"image/color"
	"log"
	"math/rand/v2"
	"os"
	"path/filepath"

	"github.com/ebitenui/ebitenui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/milk9111/confetti/config"
	"github.com/milk9111/confetti/sim"
)

type Game struct {
	sim        *sim.Simulation
	cursor     *cursorSource
	ground     *groundLayer
	pauseUI    *ebitenui.UI
	overlay    *debugOverlay
	watcher    *config.Watcher
	configPath string
	clearColor color.RGBA

	paused       bool
	quit         bool
	debug        bool
	physicsDebug bool
}

func NewGame(cfg config.Config, configPath string, rng *rand.Rand, debug bool) (*Game, error) {
	cursor := newCursorSource(cfg.Window.Width, cfg.Window.Height)
	s, err := sim.New(cfg, cursor, rng)
	if err != nil {
		return nil, err
	}
	s.SetVerbose(debug)

	g := &Game{
		sim:        s,
		cursor:     cursor,
		ground:     newGroundLayer(s.Ground),
		overlay:    newDebugOverlay(),
		configPath: configPath,
		clearColor: cfg.ClearColor(),
		debug:      debug,
	}
	g.pauseUI = NewPauseUI(g)
	g.watcher = watchConfig(configPath)
	return g, nil
}

// watchConfig watches whichever config directories exist on disk. Hot reload
// is optional, so failures only log.
func watchConfig(configPath string) *config.Watcher {
	var dirs []string
	for _, dir := range []string{config.Dir, filepath.Join(config.Dir, "scripts")} {
		if info, err := os.Stat(dir); err == nil && info.IsDir() {
			dirs = append(dirs, dir)
		}
	}
	if configPath != "" {
		if dir := filepath.Dir(configPath); dir != config.Dir {
			dirs = append(dirs, dir)
		}
	}
	if len(dirs) == 0 {
		return nil
	}

	w, err := config.NewWatcher(dirs...)
	if err != nil {
		log.Printf("ConfigWatcher: disabled: %v", err)
		return nil
	}
	return w
}

func (g *Game) Update() error {
	g.pollConfig()

	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		g.setPaused(!g.paused)
	}
	if g.paused {
		g.pauseUI.Update()
	}
	if g.quit {
		return ebiten.Termination
	}
	if g.paused {
		return nil
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.sim.ResetGround()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF3) {
		g.debug = !g.debug
		g.sim.SetVerbose(g.debug)
	}
	if g.debug {
		if inpututil.IsKeyJustPressed(ebiten.KeyF4) {
			g.physicsDebug = !g.physicsDebug
		}
		if inpututil.IsKeyJustPressed(ebiten.KeyC) {
			g.overlay.Copy(g.debugText())
		}
	}

	g.sim.Tick()
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	cfg := g.sim.Config()
	screen.Fill(g.clearColor)

	g.ground.Draw(screen)
	drawParticles(g.sim.World, screen, cfg.Window.Width, cfg.Window.Height)

	if g.debug {
		if g.physicsDebug {
			DrawPhysicsDebug(g.sim.Physics.Space(), screen, cfg.Window.Width, cfg.Window.Height)
		}
		g.overlay.Draw(screen, g.debugText())
	}

	if g.paused {
		g.pauseUI.Draw(screen)
	}
}

func (g *Game) LayoutF(outsideWidth, outsideHeight float64) (float64, float64) {
	cfg := g.sim.Config()
	return float64(cfg.Window.Width), float64(cfg.Window.Height)
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	panic("shouldn't use Layout")
}

func (g *Game) setPaused(paused bool) {
	if g.paused && !paused {
		g.cursor.holdUntilRelease = true
	}
	g.paused = paused
}

func (g *Game) pollConfig() {
	if g.watcher == nil {
		return
	}
	for {
		select {
		case name, ok := <-g.watcher.Events:
			if !ok {
				g.watcher = nil
				return
			}
			g.reload(name)
		case err, ok := <-g.watcher.Errors:
			if !ok {
				g.watcher = nil
				return
			}
			log.Printf("ConfigWatcher: %v", err)
		default:
			return
		}
	}
}

func (g *Game) reload(changed string) {
	cfg, err := loadConfig(g.configPath)
	if err != nil {
		log.Printf("Game: reload after %s: %v", changed, err)
		return
	}
	if err := g.sim.Apply(cfg); err != nil {
		log.Printf("Game: reload after %s: %v", changed, err)
		return
	}
	g.clearColor = cfg.ClearColor()
	log.Printf("Game: reloaded config after %s", changed)
}

// Close stops the config watcher.
func (g *Game) Close() {
	if g.watcher != nil {
		if err := g.watcher.Close(); err != nil {
			log.Printf("ConfigWatcher: close: %v", err)
		}
		g.watcher = nil
	}
}
